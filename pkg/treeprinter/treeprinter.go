package treeprinter

import (
	"fmt"
	"strings"
)

const (
	StyleASCII   = 0
	StyleUnicode = 1
)

// MultiNode 多叉树节点，分组结果按 键 -> 值 -> 子元素 的层级挂上来
type MultiNode struct {
	Data     any // 节点数据，可以是任意类型
	Children []*MultiNode
}

// Add 追加一个子节点并返回它，方便连续构建
func (n *MultiNode) Add(data any) *MultiNode {
	child := &MultiNode{Data: data}
	n.Children = append(n.Children, child)
	return child
}

type MultiTreePrinter struct {
	Root     *MultiNode
	Style    int                     // 0 = ascii, 1 = unicode
	FormatFn func(*MultiNode) string // 可选的自定义格式化函数
	HideRoot bool                    // 根节点只是容器时不打印
}

func PrintMultiTree(printer MultiTreePrinter) string {
	if printer.Root == nil {
		return "tree is empty\n"
	}

	var b strings.Builder

	connector := "'-- "
	branch := "|-- "
	space := "|   "
	if printer.Style == StyleUnicode {
		connector = "└── "
		branch = "├── "
		space = "│   "
	}

	label := func(node *MultiNode) string {
		// 使用 FormatFn，如果没有就用默认 Data 的字符串
		if printer.FormatFn != nil {
			return printer.FormatFn(node)
		}
		return fmt.Sprintf("%v", node.Data)
	}

	var dfs func(node *MultiNode, prefix string, isLast bool)
	dfs = func(node *MultiNode, prefix string, isLast bool) {
		if node == nil {
			return
		}

		if isLast {
			b.WriteString(fmt.Sprintf("%s%s%s\n", prefix, connector, label(node)))
		} else {
			b.WriteString(fmt.Sprintf("%s%s%s\n", prefix, branch, label(node)))
		}

		for i, child := range node.Children {
			newPrefix := prefix
			if isLast {
				newPrefix += "    "
			} else {
				newPrefix += space
			}
			dfs(child, newPrefix, i == len(node.Children)-1)
		}
	}

	if printer.HideRoot {
		if len(printer.Root.Children) == 0 {
			return ""
		}
		// 第一层直接顶格打印
		for i, child := range printer.Root.Children {
			last := i == len(printer.Root.Children)-1
			if last {
				b.WriteString(connector + label(child) + "\n")
			} else {
				b.WriteString(branch + label(child) + "\n")
			}
			childPrefix := space
			if last {
				childPrefix = "    "
			}
			for j, gc := range child.Children {
				dfs(gc, childPrefix, j == len(child.Children)-1)
			}
		}
		return b.String()
	}

	dfs(printer.Root, "", true)
	return b.String()
}
