package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"stream_tool/pkg/errorutil"
	"stream_tool/pkg/logutil"
	"stream_tool/pkg/runner"
	"stream_tool/pkg/showcase"
	"stream_tool/pkg/toolutil"
)

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [prefix]",
		Short: "列出所有例程",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			routines := a.registry.Select(prefix)
			type item struct {
				Name  string `json:"name"`
				Short string `json:"short"`
			}
			items := lo.Map(routines, func(r runner.Routine, _ int) item { return item{r.Name, r.Short} })

			if a.cfg.Format != "txt" {
				// 其它格式统一输出 名字 -> 说明
				return a.render(a.out, "routines", lo.SliceToMap(items, func(it item) (string, string) {
					return it.Name, it.Short
				}))
			}
			width := lo.Max(lo.Map(items, func(it item, _ int) int { return runewidth.StringWidth(it.Name) }))
			for _, it := range items {
				fmt.Fprintf(a.out, "%s  %s\n", runewidth.FillRight(it.Name, width), it.Short)
			}
			return nil
		},
	}
}

// routineOptions 命令行优先，其次配置文件
type routineOptions struct {
	n         int64
	merge     string
	separator string
	top       int
	input     string
}

func (a *app) buildOptions(cmd *cobra.Command, ro routineOptions) (runner.Options, error) {
	opts := runner.Options{
		N:         ro.n,
		HasN:      cmd.Flags().Changed("n"),
		Merge:     ro.merge,
		Separator: a.cfg.Separator,
		Top:       a.cfg.Top,
	}
	f := cmd.Flags()
	if f.Changed("sep") {
		opts.Separator = ro.separator
	}
	if f.Changed("top") {
		opts.Top = ro.top
	}
	input := a.cfg.InputFile
	if f.Changed("input") {
		input = ro.input
	}
	if input != "" {
		lines, err := toolutil.ReadFileToLines(input)
		if err != nil {
			return opts, errorutil.NewExitErrorWithMessage(errorutil.CodeMissingInput, "无法读取输入文件", err)
		}
		// 空文件也是输入，不能退回内置数据
		if lines == nil {
			lines = []string{}
		}
		opts.Input = lines
	}
	return opts, nil
}

func addRoutineFlags(cmd *cobra.Command, ro *routineOptions) {
	cmd.Flags().StringVar(&ro.separator, "sep", "\n", "join 合并时的分隔符")
	cmd.Flags().IntVar(&ro.top, "top", 0, "words 例程额外输出前 N 个高频词")
	cmd.Flags().StringVar(&ro.input, "input", "", "按行读取文件替换内置数据")
}

func (a *app) runCmd() *cobra.Command {
	var ro routineOptions
	cmd := &cobra.Command{
		Use:   "run <routine>",
		Short: "运行一个例程并输出结果，名字可以只写唯一前缀",
		Example: `  gostream run reduce --n 30
  gostream run tomap --merge join --sep " / "
  gostream run words --top 5 -t json
  gostream run groupby -t table`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.registry.Lookup(args[0])
			if err != nil {
				return errorutil.NewExitError(errorutil.CodeInvalidUsage, err)
			}
			opts, err := a.buildOptions(cmd, ro)
			if err != nil {
				return err
			}

			logutil.Debug("run %s with options %s", rt.Name, toolutil.ToJSON(opts))
			out := runner.Run(rt, opts)
			logutil.Debug("routine %s finished: %s in %s", rt.Name, out.Status, out.Elapsed)
			switch out.Status {
			case runner.StatusFault:
				code := errorutil.CodeInternalErr
				if errors.Is(out.Err, showcase.ErrUnknownMerge) || errors.Is(out.Err, showcase.ErrInvalidOption) {
					code = errorutil.CodeInvalidUsage
				} else if errors.Is(out.Err, toolutil.ErrEmptyInput) || errors.Is(out.Err, toolutil.ErrNoSuchElement) {
					code = errorutil.CodeInvalidData
				}
				return errorutil.NewRoutineError(code, rt.Name, out.Err)
			case runner.StatusFail:
				if err := a.render(a.out, rt.Name, out.Result); err != nil {
					return err
				}
				fmt.Fprint(a.errOut, out.Diff)
				return errorutil.NewRoutineError(errorutil.CodeAssertionFailed, rt.Name, out.Err)
			}
			return a.render(a.out, rt.Name, out.Result)
		},
	}
	cmd.Flags().Int64Var(&ro.n, "n", 0, "reduce 的 n / compose 的输入(不给时分别是 21 和 5)")
	cmd.Flags().StringVar(&ro.merge, "merge", "", "tomap 合并策略 "+strings.Join(showcase.MergeNames, "/")+"(默认全部)")
	addRoutineFlags(cmd, &ro)
	return cmd
}

func (a *app) verifyCmd() *cobra.Command {
	var ro routineOptions
	var withResults bool
	cmd := &cobra.Command{
		Use:   "verify [prefix]",
		Short: "运行并校验例程，汇总通过/失败/故障数",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			routines := a.registry.Select(prefix)
			if len(routines) == 0 {
				return errorutil.NewExitError(errorutil.CodeInvalidUsage,
					fmt.Errorf("%w: no routine matches %q", runner.ErrUnknownRoutine, prefix))
			}
			opts, err := a.buildOptions(cmd, ro)
			if err != nil {
				return err
			}

			rep := runner.RunAll(routines, opts)
			switch a.cfg.Format {
			case "txt":
				a.printReport(rep)
			case "json":
				data, err := rep.JSON(a.jsonFmt(), withResults)
				if err != nil {
					return errorutil.NewExitError(errorutil.CodeInternalErr, err)
				}
				fmt.Fprintln(a.out, strings.TrimRight(string(data), "\n"))
			default:
				status := lo.SliceToMap(rep.Outcomes, func(o runner.Outcome) (string, string) {
					return o.Routine, string(o.Status)
				})
				if err := a.render(a.out, "verify", status); err != nil {
					return err
				}
			}
			return rep.Err()
		},
	}
	cmd.Flags().BoolVar(&withResults, "results", false, "json 报告中带上每个例程的结果")
	addRoutineFlags(cmd, &ro)
	return cmd
}

func (a *app) printReport(rep runner.Report) {
	for _, o := range rep.Outcomes {
		fmt.Fprintf(a.out, "%-5s %-10s %s\n", strings.ToUpper(string(o.Status)), o.Routine, o.Elapsed.Round(time.Microsecond))
		if o.Status == runner.StatusPass {
			continue
		}
		fmt.Fprintf(a.out, "      %s\n", o.Error)
		if o.Diff != "" {
			fmt.Fprint(a.out, o.Diff)
		}
	}
	fmt.Fprintf(a.out, "%d passed, %d failed, %d faulted\n", rep.Passed, rep.Failed, rep.Faulted)
}
