package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"stream_tool/pkg/errorutil"
	"stream_tool/pkg/qqjson"
	"stream_tool/pkg/showcase"
)

// 除 txt 和 json 外都交给 qqjson 的格式化器
var outputFormats = []string{"txt", "json", "sh", "tree", "table", "dot"}

func formatUsage() string {
	return "(" + strings.Join(outputFormats, "|") + ")"
}

func validateFormat(format string) error {
	if !slices.Contains(outputFormats, format) {
		return errorutil.NewExitError(errorutil.CodeInvalidUsage,
			fmt.Errorf("不支持的输出格式: %q，可选 %s", format, formatUsage()))
	}
	return nil
}

// render 输出一个例程的结果
// txt 优先用结果自己的 String()，sh/tree/table/dot 只画 View() 那一部分
func (a *app) render(w io.Writer, name string, result any) error {
	switch a.cfg.Format {
	case "txt":
		if s, ok := result.(fmt.Stringer); ok {
			_, err := io.WriteString(w, strings.TrimRight(s.String(), "\n")+"\n")
			return err
		}
	case "json":
		data, err := qqjson.Marshal(result, a.jsonFmt())
		if err != nil {
			return errorutil.NewExitError(errorutil.CodeInternalErr, err)
		}
		_, err = io.WriteString(w, strings.TrimRight(string(data), "\n")+"\n")
		return err
	}

	view := result
	if v, ok := result.(showcase.Viewer); ok && a.cfg.Format != "txt" {
		view = v.View()
	}
	res, err := qqjson.Parse(view)
	if err != nil {
		return errorutil.NewExitError(errorutil.CodeInternalErr, err)
	}
	formatter, ok := qqjson.GetFormatter(a.cfg.Format)
	if !ok {
		return validateFormat(a.cfg.Format)
	}
	if err := formatter.Format(w, res, qqjson.Options{
		VarName:    "RESULT",
		Name:       name,
		JSONFormat: a.jsonFmt(),
	}); err != nil {
		return errorutil.NewExitErrorWithMessage(errorutil.CodeInvalidUsage,
			fmt.Sprintf("%s 的结果不能输出为 %s", name, a.cfg.Format), err)
	}
	return nil
}
