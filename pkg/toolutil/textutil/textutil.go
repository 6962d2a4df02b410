// Package textutil 把一段文本拆成可以进入 Stream 的元素：字符、单词、首字母。
//
// 拆分规则：
//   - Expand：每个字符(rune)一个元素，空格和重复字符都保留
//   - SplitWords：按空白(空格 \t \n \v \f \r)拆分，末尾的空片段丢弃，开头如果是空白会产生一个空片段
//   - FirstToken：按 " +" 拆分后的第一个片段，行首是空格时得到空字符串
//   - FirstLetter：第一个字符，空字符串返回 toolutil.ErrEmptyInput
//
// 示例：
//
//	words := textutil.SplitWords("Be a person of great integrity is is ")
//	// ["Be" "a" "person" "of" "great" "integrity" "is" "is"]
package textutil

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"stream_tool/pkg/toolutil"
)

var (
	// RE2 的 \s 不含 \v，这里显式列出
	whitespaceRe = regexp.MustCompile(`[\t\n\v\f\r ]+`)
	spacesRe     = regexp.MustCompile(` +`)
)

// Expand 把字符串展开成单字符切片
func Expand(s string) []string {
	out := make([]string, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// splitDropTrailing 正则拆分，没有匹配时返回原字符串，末尾连续的空片段去掉
func splitDropTrailing(re *regexp.Regexp, s string) []string {
	if !re.MatchString(s) {
		return []string{s}
	}
	parts := re.Split(s, -1)
	end := len(parts)
	for end > 0 && parts[end-1] == "" {
		end--
	}
	return parts[:end]
}

// SplitWords 按空白拆分单词
func SplitWords(line string) []string {
	return splitDropTrailing(whitespaceRe, line)
}

// FirstToken 取按空格拆分后的第一个片段
func FirstToken(line string) string {
	parts := splitDropTrailing(spacesRe, line)
	if len(parts) == 0 {
		// 整行都是空格
		return ""
	}
	return parts[0]
}

// FirstLetter 取第一个字符，作为分组键使用
func FirstLetter(s string) (string, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return "", fmt.Errorf("%w: first letter of empty string", toolutil.ErrEmptyInput)
	}
	return string(r), nil
}

// Length 按字符数计算长度，分组键使用
func Length(s string) int {
	return utf8.RuneCountInString(s)
}
