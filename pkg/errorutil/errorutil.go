package errorutil

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	CodeSuccess = 0 // 成功执行

	// 60–69: 用户输入或调用错误
	CodeInvalidUsage = 64 // 命令行用法错误（参数不合法、未知例程等）
	CodeMissingInput = 65 // 缺失必须输入（如文件、路径等）
	CodeInvalidData  = 66 // 用户输入格式错误（数据非法，比如空行取首字母）

	CodeAssertionFailed = 68 // 断言失败（期望值和实际值不符）

	// 70–79: 程序自身错误
	CodeIOError     = 72 // 文件读写失败
	CodeInternalErr = 74 // 例程故障: 返回了错误或者 panic

	// 80–89: 配置相关
	CodeConfigError = 80 // 配置文件有误
)

// omitempty 的作用是空字段不出现
type ExitErrorWithCode struct {
	Code    int    `json:"code"`              // 框架/业务层级错误码
	Message string `json:"message,omitempty"` // 可读消息
	Routine string `json:"routine,omitempty"` // 出错的例程名(仅在 run/verify 时填充)
	Err     error  `json:"-"`
}

func (e *ExitErrorWithCode) Error() string {
	if e.Err != nil {
		if e.Message != "" {
			return e.Message + ": " + e.Err.Error()
		}
		return e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Exit with code: %d", e.Code)
}

func (e *ExitErrorWithCode) Unwrap() error {
	return e.Err
}

func NewExitError(code int, err error) error {
	return &ExitErrorWithCode{Code: code, Err: err}
}

// 带错误消息的错误
func NewExitErrorWithMessage(code int, message string, err error) error {
	return &ExitErrorWithCode{Code: code, Message: message, Err: err}
}

// NewRoutineError 例程执行失败时带上例程名
func NewRoutineError(code int, routine string, err error) error {
	return &ExitErrorWithCode{Code: code, Routine: routine, Err: err}
}

// os.Exit(errorutil.ExitCodeFromError(err))
func ExitCodeFromError(err error) int {
	if err == nil {
		return CodeSuccess
	}
	var exitErr *ExitErrorWithCode
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return CodeInternalErr
}

// msg := errorutil.UserMessage(err)
func UserMessage(err error) string {
	var e *ExitErrorWithCode
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return ""
}

// 判断当前的错误是否是带退出码的错误
func HasExitCode(err error) bool {
	var exitErr *ExitErrorWithCode
	return errors.As(err, &exitErr)
}

// 提取原始错误
func RootError(err error) error {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

func (e *ExitErrorWithCode) JSON() string {
	type jsonErr struct {
		Code    int    `json:"code"`
		Message string `json:"message,omitempty"`
		Routine string `json:"routine,omitempty"`
		Err     string `json:"error,omitempty"`
	}

	data := jsonErr{
		Code:    e.Code,
		Message: e.Message,
		Routine: e.Routine,
	}
	if e.Err != nil {
		data.Err = e.Err.Error()
	}
	jsonBytes, _ := json.Marshal(data)
	return string(jsonBytes)
}

func FormatErrorAndCode(err error) (string, int) {
	var e *ExitErrorWithCode
	if errors.As(err, &e) {
		return e.JSON(), e.Code
	}
	// 构建一个临时 ExitErrorWithCode 对象，并直接调用其 JSON() 方法
	return (&ExitErrorWithCode{
		Code:    CodeInternalErr,
		Message: "未知错误",
		Err:     err,
	}).JSON(), CodeInternalErr
}
