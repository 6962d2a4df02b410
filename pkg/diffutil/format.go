package diffutil

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

type textInfo struct {
	CharsCount   int
	DisplayWidth int
}

// len(s): 字节宽度
// utf8.RuneCountInString(s): 字符数
// runewidth.StringWidth(s): 显示宽度
// fmt.Sprintf 是按照字符数打印
// 总字符数 = 字符数 + (最大显示宽度 - 当前行显示宽度)
func FormatSideBySide(diff []DiffLine, titles ...string) string {
	leftTitle, rightTitle := "* Expected", "* Actual"
	if len(titles) == 2 {
		leftTitle, rightTitle = titles[0], titles[1]
	}

	cond := runewidth.NewCondition()
	// 修正宽度判断(模糊字符按照宽度1计算)
	cond.EastAsianWidth = false

	maxDisplayWidth := cond.StringWidth(leftTitle)
	leftInfo := make([]textInfo, 0, len(diff))
	for _, d := range diff {
		w := cond.StringWidth(d.Left)
		if w > maxDisplayWidth {
			maxDisplayWidth = w
		}
		leftInfo = append(leftInfo, textInfo{
			CharsCount:   utf8.RuneCountInString(d.Left),
			DisplayWidth: w,
		})
	}

	var out []string
	header := fmt.Sprintf("%-*s  %s  %s", maxDisplayWidth, leftTitle, " ", rightTitle)
	out = append(out, header)
	out = append(out, strings.Repeat("-", cond.StringWidth(header)))

	for idx, d := range diff {
		// 原始的字符数+补充的空格数
		out = append(out, fmt.Sprintf(
			"%-*s  %s  %s",
			leftInfo[idx].CharsCount+maxDisplayWidth-leftInfo[idx].DisplayWidth,
			d.Left, d.Mark, d.Right))
	}

	return strings.Join(out, "\n")
}
