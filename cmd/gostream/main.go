package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"stream_tool/pkg/errorutil"
	"stream_tool/pkg/initutil"
	"stream_tool/pkg/logutil"
	"stream_tool/pkg/qqjson"
	"stream_tool/pkg/runner"
	"stream_tool/pkg/showcase"
)

const TOOL_VERSION = "1.0.0+20250702"

// app 命令行共享的状态，子命令通过闭包拿到
type app struct {
	out    io.Writer
	errOut io.Writer

	logLevel   logutil.Level
	logFile    string
	configPath string
	format     string
	jsonFormat qqjson.JSONFormat

	cfg      initutil.Config
	registry *runner.Registry
}

func newRootCmd(out, errOut io.Writer) (*cobra.Command, error) {
	reg, err := runner.NewRegistry(showcase.Routines()...)
	if err != nil {
		return nil, err
	}
	a := &app{out: out, errOut: errOut, registry: reg, logLevel: logutil.WARN, jsonFormat: qqjson.JSONFormatMul}

	rootCmd := &cobra.Command{
		Use:   "gostream",
		Short: fmt.Sprintf("Gostream v%s 分组归约例程的运行与校验工具", TOOL_VERSION),
		Long: "                      _                            \n" +
			"   __ _  ___  ___| |_ _ __ ___  __ _ _ __ ___  \n" +
			"  / _` |/ _ \\/ __| __| '__/ _ \\/ _` | '_ ` _ \\ \n" +
			" | (_| | (_) \\__ \\ |_| | |  __/ (_| | | | | | |\n" +
			"  \\__, |\\___/|___/\\__|_|  \\___|\\__,_|_| |_| |_|\n" +
			"  |___/                                         \n" +
			fmt.Sprintf("\nGostream v%s 运行 reduce/groupby/counting 等分组归约例程，并校验结果\n", TOOL_VERSION),
		Version: TOOL_VERSION,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	// 定义全局flag(屁股后面带P的函数才支持短选项)
	pf := rootCmd.PersistentFlags()
	pf.VarP(&a.logLevel, "log-level", "e", "日志等级(DEBUG/INFO/WARN/ERROR)")
	pf.StringVarP(&a.logFile, "log-file", "l", "", "日志文件名(stdout/stderr 表示标准输出/标准错误，默认取配置)")
	pf.StringVarP(&a.configPath, "config", "c", "", "配置文件(默认可执行文件旁边的 "+initutil.DefaultConfigName+")")
	pf.StringVarP(&a.format, "format", "t", "", "输出格式 "+formatUsage())
	pf.VarP(&a.jsonFormat, "jsonformat", "F", "输出的 JSON 的格式(mul|one)，代表多行或者一行")

	// 阻止 Cobra 在命令参数错误时输出帮助
	rootCmd.SilenceUsage = true
	// 阻止Cobra自动打印RunEs返回的错误内容
	rootCmd.SilenceErrors = true
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errorutil.NewExitError(errorutil.CodeInvalidUsage, err)
	})

	// PersistentPreRunE 回调，这个钩子会在用户的命令解析完成、flag 值填充后执行
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := initutil.InitSystem(a.configPath, func(c *initutil.Config) { a.applyFlags(cmd, c) })
		if err != nil {
			return err
		}
		a.cfg = cfg
		logutil.SetLogLevel(cfg.LogLevel)
		return validateFormat(cfg.Format)
	}

	rootCmd.AddCommand(a.listCmd(), a.runCmd(), a.verifyCmd(), qqjson.JsonCmd())
	return rootCmd, nil
}

// applyFlags 只有用户显式给出的参数才覆盖配置
// json 子命令自己也有 -t/-F，被子命令同名参数遮住的全局参数不算
func (a *app) applyFlags(cmd *cobra.Command, c *initutil.Config) {
	changed := func(name string) bool {
		fl := cmd.InheritedFlags().Lookup(name)
		if fl == nil && cmd.Root() == cmd {
			fl = cmd.PersistentFlags().Lookup(name)
		}
		return fl != nil && fl.Changed
	}
	if changed("log-level") {
		c.LogLevel = a.logLevel
	}
	if changed("log-file") {
		c.LogFile = a.logFile
	}
	if changed("format") {
		c.Format = a.format
	}
	if changed("jsonformat") {
		c.JSONFormat = string(a.jsonFormat)
	}
}

func (a *app) jsonFmt() qqjson.JSONFormat {
	if a.cfg.JSONFormat == string(qqjson.JSONFormatOne) {
		return qqjson.JSONFormatOne
	}
	return qqjson.JSONFormatMul
}

// execute 返回进程退出码
func execute(args []string, out, errOut io.Writer) int {
	rootCmd, err := newRootCmd(out, errOut)
	if err == nil {
		rootCmd.SetArgs(args)
		err = rootCmd.Execute()
	}
	if err == nil {
		return errorutil.CodeSuccess
	}
	// cobra 自己产生的错误(未知子命令、参数个数不对)都是用法错误
	if !errorutil.HasExitCode(err) {
		err = errorutil.NewExitError(errorutil.CodeInvalidUsage, err)
	}
	msg, code := errorutil.FormatErrorAndCode(err)
	fmt.Fprintln(errOut, msg)
	logutil.Info("命令执行失败: %v (根因: %v)", err, errorutil.RootError(err))
	return code
}

func main() {
	code := execute(os.Args[1:], os.Stdout, os.Stderr)
	// 不要用defer，因为defer是在函数返回前执行的，而不是os.Exit()执行前执行
	logutil.CloseLogger()
	os.Exit(code)
}
