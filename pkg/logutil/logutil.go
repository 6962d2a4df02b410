package logutil

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"reflect"
	"runtime"
	"strings"
	"sync"

	"github.com/tidwall/pretty"

	"stream_tool/pkg/toolutil"
)

// Level 日志级别，实现了 pflag.Value，可以直接挂到 cobra 的 flag 上
type Level int

// 定义日志级别
const (
	DEBUG Level = iota // 0
	INFO               // 1
	WARN               // 2
	ERROR              // 3
)

// 定义日志级别映射字符串
var LOG_LEVELS = map[string]Level{
	"DEBUG": DEBUG,
	"INFO":  INFO,
	"WARN":  WARN,
	"ERROR": ERROR,
}

func (l *Level) String() string {
	for name, v := range LOG_LEVELS {
		if v == *l {
			return name
		}
	}
	return fmt.Sprintf("Level(%d)", int(*l))
}

func (l *Level) Set(val string) error {
	v, ok := LOG_LEVELS[strings.ToUpper(strings.TrimSpace(val))]
	if !ok {
		return fmt.Errorf("无效的日志级别: %s", val)
	}
	*l = v
	return nil
}

func (l *Level) Type() string {
	return "level"
}

// ParseLevel 配置文件里的字符串转成级别，不认识的返回 def
func ParseLevel(val string, def Level) Level {
	l := def
	if err := l.Set(val); err != nil {
		return def
	}
	return l
}

var (
	logger       *log.Logger
	logFile      io.WriteCloser
	once         sync.Once
	mu           sync.Mutex
	currentLevel = INFO // 默认日志级别
)

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// InitLogger 初始化日志，允许指定输出目标（stdout / stderr 或 文件）
func InitLogger(output string, level Level) {
	once.Do(func() {
		switch output {
		case "stdout":
			logFile = nopCloser{os.Stdout}
		case "", "stderr":
			logFile = nopCloser{os.Stderr}
		default:
			f, err := os.OpenFile(
				// 以追加模式打开日志文件，不会覆盖已有内容
				output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err != nil {
				log.Fatal("无法创建日志文件:", err)
			}
			logFile = f
		}
		logger = log.New(logFile, "", log.LstdFlags)
		SetLogLevel(level)
	})
}

// SetOutput 测试里把日志重定向到 buffer
func SetOutput(w io.Writer) {
	once.Do(func() {})
	mu.Lock()
	defer mu.Unlock()
	logFile = nopCloser{w}
	logger = log.New(w, "", 0)
}

// formatArg 集合类型转换成紧凑 JSON，结构体展开字段
func formatArg(arg any) any {
	v := reflect.ValueOf(arg)
	if !v.IsValid() {
		return arg
	}
	// 先检查是否是指针，如果是，则解引用
	if v.Kind() == reflect.Ptr && !v.IsNil() {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		if s, ok := arg.(fmt.Stringer); ok {
			return s.String()
		}
		return PrintStruct(arg, false)
	case reflect.Slice, reflect.Map:
		jsonData, err := json.Marshal(arg)
		if err != nil {
			return fmt.Sprintf("无法格式化: %v", err)
		}
		// 多行日志不好 grep，统一压成一行
		return string(pretty.Ugly(jsonData))
	default:
		return arg
	}
}

// logMessage 记录日志，**仅输出符合当前级别的日志**
func logMessage(level Level, msg string, args ...any) {
	if logger == nil {
		InitLogger("stderr", INFO)
	}
	mu.Lock()
	defer mu.Unlock()
	if level < currentLevel { // 值越小打印得越多
		return
	}
	_, file, line, _ := runtime.Caller(2) // 获取真正调用的文件+行号

	formattedArgs := make([]any, 0, len(args))
	for _, arg := range args {
		formattedArgs = append(formattedArgs, formatArg(arg))
	}

	formattedMsg := fmt.Sprintf(msg, formattedArgs...) // 重新格式化消息
	logger.Printf("[%s:%d] %s", toolutil.TrimToProjectPath(file), line, formattedMsg)
}

// 设置日志级别
func SetLogLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	currentLevel = level
}

// Info 记录 INFO 日志
func Info(msg string, args ...any) {
	logMessage(INFO, "[INFO] "+msg, args...)
}

// Warn 记录 WARN 日志
func Warn(msg string, args ...any) {
	logMessage(WARN, "[WARN] "+msg, args...)
}

// Error 记录 ERROR 日志，附带调用堆栈
func Error(msg string, args ...any) {
	size := 1024 // 初始缓冲区大小
	for {
		buf := make([]byte, size)
		n := runtime.Stack(buf, false)

		if n < size { // 如果数据小于缓冲区，则不需要扩展
			// 堆栈作为参数传进去，避免里面的 % 被当成格式符
			logMessage(ERROR, "[ERR] "+msg+"\n调用堆栈:\n%s", append(args, string(buf[:n]))...)
			return
		}

		// 扩展缓冲区大小，倍增策略
		size *= 2
	}
}

// Debug 记录 DEBUG 日志
func Debug(msg string, args ...any) {
	// 确保参数被展开在传入进去
	logMessage(DEBUG, "[DBG] "+msg, args...)
}

// 关闭日志文件（如果有的话）
func CloseLogger() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		return logFile.Close()
	}
	return nil
}

// 递归格式化结构体信息
func formatStruct(s any, indent string) string {
	v := reflect.ValueOf(s)
	// 先检查是否是指针，如果是，则解引用
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	// 处理非结构体类型
	if v.Kind() != reflect.Struct {
		return fmt.Sprintf("%s非结构体类型: %#v\n", indent, v.Kind())
	}
	t := v.Type()

	var builder strings.Builder

	// 遍历结构体字段
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i)
		if !field.IsExported() {
			continue
		}

		if value.Kind() != reflect.Struct {
			// 如果不是嵌套结构体，就直接打印内容
			builder.WriteString(fmt.Sprintf("%s%s: %#v\n", indent, field.Name, value))
		} else {
			// 如果是嵌套结构体,先打印标头,再递归处理
			builder.WriteString(fmt.Sprintf("%s%s:\n", indent, field.Name))
			builder.WriteString(formatStruct(value.Interface(), indent+"    "))
		}
	}

	return builder.String()
}

// 打印结构体信息（支持控制是否输出到标准输出）
func PrintStruct(s any, printToStdout bool) string {
	result := formatStruct(s, "")

	if printToStdout {
		fmt.Print(result) // 直接打印到标准输出
	}

	return result // 返回格式化字符串
}
