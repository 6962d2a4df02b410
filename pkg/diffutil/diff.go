package diffutil

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/tidwall/pretty"
)

// 标记含义: "|" 相同, "-" 只在左边, "+" 只在右边, "~" 同一位置内容不同
const (
	MarkEqual   = "|"
	MarkDelete  = "-"
	MarkInsert  = "+"
	MarkReplace = "~"
)

type DiffLine struct {
	Left  string
	Right string
	Mark  string
}

// Changed 是否存在差异行
func Changed(lines []DiffLine) bool {
	for _, l := range lines {
		if l.Mark != MarkEqual {
			return true
		}
	}
	return false
}

// CompareMultiline 按行比较两段文本
func CompareMultiline(before, after string) []DiffLine {
	dmp := diffmatchpatch.New()
	text1, text2, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(text1, text2, false)
	dmp.DiffCleanupSemantic(diffs)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var result []DiffLine
	i := 0
	for i < len(diffs) {
		d := diffs[i]
		// 删除紧跟插入，视为同一位置的修改，左右并排
		if d.Type == diffmatchpatch.DiffDelete &&
			i+1 < len(diffs) &&
			diffs[i+1].Type == diffmatchpatch.DiffInsert {

			delLines := strings.Split(d.Text, "\n")
			insLines := strings.Split(diffs[i+1].Text, "\n")

			for j := range max(len(delLines), len(insLines)) {
				l, r := "", ""
				if j < len(delLines) {
					l = delLines[j]
				}
				if j < len(insLines) {
					r = insLines[j]
				}
				if l == "" && r == "" {
					continue
				}
				result = append(result, DiffLine{Left: l, Right: r, Mark: MarkReplace})
			}
			i += 2
			continue
		}

		for _, line := range strings.Split(d.Text, "\n") {
			if line == "" {
				continue
			}
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				result = append(result, DiffLine{Left: line, Right: line, Mark: MarkEqual})
			case diffmatchpatch.DiffDelete:
				result = append(result, DiffLine{Left: line, Right: "", Mark: MarkDelete})
			case diffmatchpatch.DiffInsert:
				result = append(result, DiffLine{Left: "", Right: line, Mark: MarkInsert})
			}
		}
		i++
	}
	return result
}

// Render 把任意值渲染成多行文本用于比较
// encoding/json 对 map 的键排序，所以两个相等的 map 渲染结果一定相同
func Render(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(pretty.PrettyOptions(data, &pretty.Options{Width: 80, Indent: "  ", SortKeys: true}))
}

// CompareValues 比较期望值和实际值
func CompareValues(expected, actual any) []DiffLine {
	return CompareMultiline(Render(expected), Render(actual))
}
