package qqjson

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

type JSONFormat string

const (
	JSONFormatOne JSONFormat = "one"
	JSONFormatMul JSONFormat = "mul"
)

// 为了让 VarP 接收自定义类型，实现 flag.Value 接口(String Set Type)即可：
func (f *JSONFormat) String() string { return string(*f) }

func (f *JSONFormat) Set(val string) error {
	switch val {
	case string(JSONFormatMul), string(JSONFormatOne):
		*f = JSONFormat(val)
		return nil
	default:
		return fmt.Errorf("无效的 jsonformat 值: %s", val)
	}
}

func (f *JSONFormat) Type() string {
	return "jsonformat" // 这个字符串用于帮助文档与类型提示
}

// 列出所有的合法值
func (JSONFormat) Values() []string {
	return []string{
		string(JSONFormatMul),
		string(JSONFormatOne),
	}
}

// Marshal 序列化后按格式整理: mul 多行缩进(4 空格)，one 压缩成一行
func Marshal(v any, format JSONFormat) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("序列化失败: %w", err)
	}
	return Reformat(raw, format), nil
}

// Reformat 只调整空白，不改变键的顺序
func Reformat(raw []byte, format JSONFormat) []byte {
	if format == JSONFormatOne {
		return pretty.Ugly(raw)
	}
	return pretty.PrettyOptions(raw, &pretty.Options{Width: 80, Indent: "    "})
}

// Parse 把任意值转成 gjson.Result，后面的格式化都基于它
func Parse(v any) (gjson.Result, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("序列化失败: %w", err)
	}
	return gjson.ParseBytes(raw), nil
}

// Query 在 JSON 文本中按 gjson 路径取值，路径为空返回整个文档
func Query(raw []byte, path string) (gjson.Result, error) {
	// 校验 JSON 格式
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, fmt.Errorf("输入内容不是有效的 JSON")
	}
	if strings.TrimSpace(path) == "" {
		return gjson.ParseBytes(raw), nil
	}
	res := gjson.GetBytes(raw, path)
	if !res.Exists() {
		return res, fmt.Errorf("字段 %q 不存在", path)
	}
	return res, nil
}

// SetPath 在 JSON 文本指定路径写入值，路径不存在时自动创建
func SetPath(raw []byte, path string, value any) ([]byte, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	return sjson.SetBytes(raw, path, value)
}

// SetRawPath 写入一段已经是 JSON 的文本(不再二次转义)
func SetRawPath(raw []byte, path string, value []byte) ([]byte, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	return sjson.SetRawBytes(raw, path, value)
}

// EscapePath 路径段里的 . [ ] 要转义，例如单个字符键 "." 或者 " "
func EscapePath(paths ...string) string {
	escaped := make([]string, len(paths))
	for i, p := range paths {
		p = strings.ReplaceAll(p, ".", `\.`)
		p = strings.ReplaceAll(p, "*", `\*`)
		p = strings.ReplaceAll(p, "?", `\?`)
		escaped[i] = p
	}
	return strings.Join(escaped, ".")
}
