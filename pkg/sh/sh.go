package sh

import (
	"fmt"
	"strings"
)

// 下面用来测试
// $'\a\b\t\n\v\f\r\E\\\'\000\001ABC中文'
// BashANSIQuote 将任意字符串转为 $'...' 形式的 ANSI-C 样式安全字符串
func BashANSIQuote(s string) string {
	var b strings.Builder
	b.WriteString("$'")

	for _, r := range s {
		switch r {
		case 27: // Escape (ASCII 27)
			b.WriteString(`\E`)
		case '\a':
			b.WriteString(`\a`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\v':
			b.WriteString(`\v`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		default:
			if r < 32 || r == 127 {
				// 对不可打印字符使用 \ooo 八进制转义
				b.WriteString(fmt.Sprintf(`\%03o`, r))
			} else {
				b.WriteRune(r)
			}
		}
	}

	b.WriteString("'")
	return b.String()
}

// 使用 declare 确保是局部变量，先 unset 防止残留旧值
func DeclareScalar(name, value string) string {
	return fmt.Sprintf("unset -v %s ; declare %s=%s\n", name, name, BashANSIQuote(value))
}

func DeclareArray(name string, values []string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = BashANSIQuote(v)
	}
	return fmt.Sprintf("unset -v %s ; declare -a %s=(%s)\n", name, name, strings.Join(parts, " "))
}

// DeclareAssoc 关联数组，keys 决定输出顺序
func DeclareAssoc(name string, keys []string, values map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "unset -v %s ; declare -A %s=(\n", name, name)
	for _, k := range keys {
		fmt.Fprintf(&b, "    [%s]=%s\n", BashANSIQuote(k), BashANSIQuote(values[k]))
	}
	b.WriteString(")\n")
	return b.String()
}
