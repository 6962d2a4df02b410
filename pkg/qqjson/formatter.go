package qqjson

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/tidwall/gjson"

	"stream_tool/pkg/graph"
	"stream_tool/pkg/sh"
	"stream_tool/pkg/treeprinter"
)

// Options 格式化时用到的附加参数
type Options struct {
	VarName    string     // sh 输出时的变量名，默认 RESULT
	Name       string     // tree 的根节点名 / dot 的图名
	JSONFormat JSONFormat // txt 输出时 one 或者 mul
	Unicode    bool       // tree 使用 unicode 连线
}

type OutputFormatter interface {
	Format(w io.Writer, res gjson.Result, opts Options) error
}

type BashFormatter struct{}

func (BashFormatter) Format(w io.Writer, res gjson.Result, opts Options) error {
	_, err := io.WriteString(w, outputBash(opts.VarName, res))
	return err
}

type TextFormatter struct{}

func (TextFormatter) Format(w io.Writer, res gjson.Result, opts Options) error {
	out, err := outputText(res, opts.JSONFormat)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

type TypeFormatter struct{}

func (TypeFormatter) Format(w io.Writer, res gjson.Result, _ Options) error {
	_, err := fmt.Fprintln(w, TypeName(res))
	return err
}

type TreeFormatter struct{}

func (TreeFormatter) Format(w io.Writer, res gjson.Result, opts Options) error {
	_, err := io.WriteString(w, outputTree(res, opts))
	return err
}

type TableFormatter struct{}

func (TableFormatter) Format(w io.Writer, res gjson.Result, _ Options) error {
	out, err := outputTable(res)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

type DotFormatter struct{}

func (DotFormatter) Format(w io.Writer, res gjson.Result, opts Options) error {
	groups, err := ToGroups(res)
	if err != nil {
		return err
	}
	name := opts.Name
	if name == "" {
		name = "result"
	}
	dot, err := graph.RenderDOT(name, groups)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, dot)
	return err
}

var formatters = map[string]OutputFormatter{
	"sh":    BashFormatter{},
	"txt":   TextFormatter{},
	"type":  TypeFormatter{},
	"tree":  TreeFormatter{},
	"table": TableFormatter{},
	"dot":   DotFormatter{},
}

// GetFormatter 按名字取格式化器
func GetFormatter(name string) (OutputFormatter, bool) {
	f, ok := formatters[name]
	return f, ok
}

// FormatterNames 已注册格式化器的名字，已排序
func FormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for k := range formatters {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// TypeName JSON 值的类型名
func TypeName(res gjson.Result) string {
	switch {
	case res.IsObject():
		return "object"
	case res.IsArray():
		return "array"
	case res.Type == gjson.String:
		return "string"
	case res.Type == gjson.Number:
		return "number"
	case res.Type == gjson.Null:
		return "null"
	case res.Type == gjson.True:
		return "true"
	case res.Type == gjson.False:
		return "false"
	default:
		return "unknown"
	}
}

// 使用 declare 确保是局部变量
func outputBash(name string, res gjson.Result) string {
	if name == "" {
		name = "RESULT"
	}

	if res.IsArray() {
		var parts []string
		res.ForEach(func(_, v gjson.Result) bool {
			parts = append(parts, v.String())
			return true
		})
		return sh.DeclareArray(name, parts)
	}

	if res.IsObject() {
		var keys []string
		values := make(map[string]string)
		res.ForEach(func(k, v gjson.Result) bool {
			keys = append(keys, k.String())
			values[k.String()] = v.String()
			return true
		})
		return sh.DeclareAssoc(name, keys, values)
	}

	// 原始值(确保是局部变量)
	return sh.DeclareScalar(name, res.String())
}

func outputText(res gjson.Result, jsonFormat JSONFormat) (string, error) {
	// 字符串直接打印内容，不带引号
	if res.Type == gjson.String {
		return res.String() + "\n", nil
	}
	if !gjson.Valid(res.Raw) {
		return "", fmt.Errorf("不是有效的 JSON 字符串: %q", res.Raw)
	}
	out, err := Marshal(res.Value(), jsonFormat)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(out), "\n") + "\n", nil
}

// sortedMembers 对象的键按数字优先排序，数字键 "10" 排在 "9" 后面
func sortedMembers(res gjson.Result) []gjson.Result {
	type kv struct{ k, v gjson.Result }
	var items []kv
	res.ForEach(func(k, v gjson.Result) bool {
		items = append(items, kv{k, v})
		return true
	})
	sort.SliceStable(items, func(i, j int) bool {
		a, errA := strconv.ParseFloat(items[i].k.String(), 64)
		b, errB := strconv.ParseFloat(items[j].k.String(), 64)
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return items[i].k.String() < items[j].k.String()
	})
	out := make([]gjson.Result, 0, len(items)*2)
	for _, it := range items {
		out = append(out, it.k, it.v)
	}
	return out
}

// displayKey 空白或者空的键加上引号，否则表格里看不见
func displayKey(k string) string {
	if strings.TrimSpace(k) == "" {
		return strconv.Quote(k)
	}
	return k
}

func isScalar(res gjson.Result) bool {
	return !res.IsObject() && !res.IsArray()
}

func outputTree(res gjson.Result, opts Options) string {
	name := opts.Name
	if name == "" {
		name = "result"
	}
	root := &treeprinter.MultiNode{Data: name}
	buildTree(root, res)
	style := treeprinter.StyleASCII
	if opts.Unicode {
		style = treeprinter.StyleUnicode
	}
	return treeprinter.PrintMultiTree(treeprinter.MultiTreePrinter{Root: root, Style: style})
}

func buildTree(node *treeprinter.MultiNode, res gjson.Result) {
	switch {
	case res.IsObject():
		members := sortedMembers(res)
		for i := 0; i < len(members); i += 2 {
			k, v := displayKey(members[i].String()), members[i+1]
			if isScalar(v) {
				node.Add(k + ": " + v.String())
				continue
			}
			buildTree(node.Add(k), v)
		}
	case res.IsArray():
		idx := 0
		res.ForEach(func(_, v gjson.Result) bool {
			if isScalar(v) {
				node.Add(v.String())
			} else {
				buildTree(node.Add(fmt.Sprintf("[%d]", idx)), v)
			}
			idx++
			return true
		})
	default:
		node.Add(res.String())
	}
}

// outputTable 对象输出成两列表格(键 | 值)，值是数组时用逗号连接
func outputTable(res gjson.Result) (string, error) {
	var rows [][2]string
	switch {
	case res.IsObject():
		members := sortedMembers(res)
		for i := 0; i < len(members); i += 2 {
			rows = append(rows, [2]string{displayKey(members[i].String()), cellText(members[i+1])})
		}
	case res.IsArray():
		idx := 0
		res.ForEach(func(_, v gjson.Result) bool {
			rows = append(rows, [2]string{strconv.Itoa(idx), cellText(v)})
			idx++
			return true
		})
	default:
		return "", fmt.Errorf("table 格式只支持对象或者数组，当前类型: %s", TypeName(res))
	}

	keyWidth, valWidth := runewidth.StringWidth("KEY"), runewidth.StringWidth("VALUE")
	for _, r := range rows {
		keyWidth = max(keyWidth, runewidth.StringWidth(r[0]))
		valWidth = max(valWidth, runewidth.StringWidth(r[1]))
	}

	var b strings.Builder
	sep := "+" + strings.Repeat("-", keyWidth+2) + "+" + strings.Repeat("-", valWidth+2) + "+\n"
	line := func(k, v string) {
		fmt.Fprintf(&b, "| %s | %s |\n", runewidth.FillRight(k, keyWidth), runewidth.FillRight(v, valWidth))
	}
	b.WriteString(sep)
	line("KEY", "VALUE")
	b.WriteString(sep)
	for _, r := range rows {
		line(r[0], r[1])
	}
	b.WriteString(sep)
	return b.String(), nil
}

func cellText(v gjson.Result) string {
	if v.IsArray() {
		var parts []string
		v.ForEach(func(_, item gjson.Result) bool {
			parts = append(parts, item.String())
			return true
		})
		return strings.Join(parts, ", ")
	}
	if v.IsObject() {
		return v.Raw
	}
	return v.String()
}

// ToGroups 对象转成分组: 键 -> 成员，标量值当成单个成员
func ToGroups(res gjson.Result) ([]graph.Group, error) {
	if !res.IsObject() {
		return nil, fmt.Errorf("dot 格式只支持对象，当前类型: %s", TypeName(res))
	}
	var groups []graph.Group
	members := sortedMembers(res)
	for i := 0; i < len(members); i += 2 {
		grp := graph.Group{Key: members[i].String()}
		v := members[i+1]
		if v.IsArray() {
			v.ForEach(func(_, item gjson.Result) bool {
				grp.Members = append(grp.Members, item.String())
				return true
			})
		} else {
			grp.Members = []string{v.String()}
		}
		groups = append(groups, grp)
	}
	return groups, nil
}
