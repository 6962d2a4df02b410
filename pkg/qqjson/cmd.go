package qqjson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"stream_tool/pkg/errorutil"
)

// CLIOptions json 子命令的参数
type CLIOptions struct {
	Mode       string // r / w / d
	Kind       string // 默认 stdin / file / str
	InArg      string
	Path       string
	UseArgPath bool
	Format     string
	VarName    string
	StrInput   string
	JSONInput  string
	JSONFormat JSONFormat
	Unicode    bool

	out io.Writer
	in  io.Reader
}

// JsonCmd 处理 verify 生成的报告或者 run -t json 的输出
func JsonCmd() *cobra.Command {
	opts := &CLIOptions{}

	cmd := &cobra.Command{
		Use:   "json [path...]",
		Short: "读取、写入、删除 JSON 中的字段",
		Long: `读取、写入、删除 JSON 中的字段

1. 读取报告里失败的例程数
gostream verify -t json | gostream json -m r -p failed

2. 读取到 bash 数据结构
eval -- "$(gostream run words -t json | gostream json -m r -t sh -P mostSeen -v words)"

3. 分组结果画成表格或者树
gostream run groupby -t json | gostream json -m r -t table

4. 写入字段(sjson 路径，带 . 的键需要转义，或者用 -P 从参数读路径)
gostream json -m w -k file -i report.json -P meta host -s build01
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.UseArgPath {
				opts.Path = EscapePath(args...)
			}
			opts.out = cmd.OutOrStdout()
			opts.in = cmd.InOrStdin()

			switch opts.Mode {
			case "r":
				return opts.readValue()
			case "w":
				var val any = opts.StrInput
				if opts.JSONInput != "" {
					if err := json.Unmarshal([]byte(opts.JSONInput), &val); err != nil {
						return errorutil.NewExitErrorWithMessage(errorutil.CodeInvalidData, "无效的 JSON 字符串", err)
					}
				}
				return opts.modify(func(raw []byte) ([]byte, error) {
					return SetPath(raw, opts.Path, val)
				})
			case "d":
				return opts.modify(func(raw []byte) ([]byte, error) {
					return sjson.DeleteBytes(raw, opts.Path)
				})
			default:
				return errorutil.NewExitError(errorutil.CodeInvalidUsage,
					fmt.Errorf("未知模式: %q，请使用 r / w / d", opts.Mode))
			}
		},
	}

	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "r", "r / w / d 操作模式")
	cmd.Flags().StringVarP(&opts.Path, "path", "p", "", "gjson / sjson 原始路径")
	cmd.Flags().BoolVarP(&opts.UseArgPath, "argpath", "P", false, "从命令行中读取路径（空格分隔，自动转义）")
	cmd.Flags().StringVarP(&opts.Kind, "kind", "k", "", "json来源类别（默认 stdin / file / str）")
	cmd.Flags().StringVarP(&opts.InArg, "inarg", "i", "", "json来源的值")
	cmd.Flags().StringVarP(&opts.Format, "format", "t", "txt",
		"输出格式："+strings.Join(FormatterNames(), "/"))
	cmd.Flags().StringVarP(&opts.VarName, "varname", "v", "RESULT", "sh 输出变量名")
	cmd.Flags().StringVarP(&opts.StrInput, "strinput", "s", "", "写入的字符串值")
	cmd.Flags().StringVarP(&opts.JSONInput, "jsoninput", "j", "", "写入的 JSON 字符串")
	cmd.Flags().BoolVarP(&opts.Unicode, "unicode", "u", false, "tree 输出使用 unicode 连线")
	opts.JSONFormat = JSONFormatMul
	cmd.Flags().VarP(&opts.JSONFormat, "jsonformat", "F", "输出的 JSON 的格式(mul|one)，代表多行或者一行")

	return cmd
}

func (opts *CLIOptions) readInput() ([]byte, error) {
	switch opts.Kind {
	case "file":
		raw, err := os.ReadFile(opts.InArg)
		if err != nil {
			return nil, errorutil.NewExitErrorWithMessage(errorutil.CodeIOError, "无法读取文件", err)
		}
		return raw, nil
	case "str":
		return []byte(opts.InArg), nil
	default:
		// 没有任何参数的情况 或者 stdin 的情况
		raw, err := io.ReadAll(opts.in)
		if err != nil {
			return nil, errorutil.NewExitErrorWithMessage(errorutil.CodeIOError, "读取失败", err)
		}
		return raw, nil
	}
}

func (opts *CLIOptions) readValue() error {
	formatter, ok := GetFormatter(opts.Format)
	if !ok {
		return errorutil.NewExitError(errorutil.CodeInvalidUsage, fmt.Errorf("不支持的格式: %s", opts.Format))
	}

	raw, err := opts.readInput()
	if err != nil {
		return err
	}
	res, err := Query(raw, opts.Path)
	if err != nil {
		if opts.Format == "sh" {
			// 失败时清掉变量，调用方可以用 ${var@A} 判断
			fmt.Fprintf(opts.out, "unset -v %s\n", opts.VarName)
		}
		return errorutil.NewExitError(errorutil.CodeInvalidData, err)
	}
	return formatter.Format(opts.out, res, Options{
		VarName:    opts.VarName,
		JSONFormat: opts.JSONFormat,
		Unicode:    opts.Unicode,
		Name:       opts.Path,
	})
}

// modify 文件来源时写回文件，其它来源打印到输出
func (opts *CLIOptions) modify(op func([]byte) ([]byte, error)) error {
	if strings.TrimSpace(opts.Path) == "" {
		return errorutil.NewExitError(errorutil.CodeInvalidUsage, fmt.Errorf("写入和删除必须指定路径"))
	}

	var raw []byte
	var err error
	if opts.Kind == "file" {
		if _, statErr := os.Stat(opts.InArg); os.IsNotExist(statErr) {
			raw = []byte("{}")
		} else if raw, err = opts.readInput(); err != nil {
			return err
		}
	} else if raw, err = opts.readInput(); err != nil {
		return err
	}

	updated, err := op(raw)
	if err != nil {
		return errorutil.NewExitErrorWithMessage(errorutil.CodeInvalidData, "修改 JSON 失败", err)
	}
	out := Reformat(updated, opts.JSONFormat)

	if opts.Kind == "file" {
		if err := os.WriteFile(opts.InArg, out, 0644); err != nil {
			return errorutil.NewExitErrorWithMessage(errorutil.CodeIOError, "写入文件失败", err)
		}
		return nil
	}
	_, err = opts.out.Write(out)
	return err
}
