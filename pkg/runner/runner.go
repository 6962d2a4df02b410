package runner

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/samber/lo"

	"stream_tool/pkg/errorutil"
	"stream_tool/pkg/logutil"
	"stream_tool/pkg/qqjson"
)

var (
	ErrUnknownRoutine   = errors.New("runner: unknown routine")
	ErrAmbiguousRoutine = errors.New("runner: ambiguous routine name")
)

// PanicError 例程 panic 时恢复出来的错误
type PanicError struct {
	Value any
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap panic 的值本身是 error 时继续向下暴露
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Outcome 单个例程的执行结果
type Outcome struct {
	Routine string        `json:"routine"`
	Status  Status        `json:"status"`
	Result  any           `json:"result,omitempty"`
	Error   string        `json:"error,omitempty"`
	Diff    string        `json:"diff,omitempty"`
	Stack   string        `json:"stack,omitempty"`
	Elapsed time.Duration `json:"elapsedNs"`

	Err error `json:"-"`
}

// Run 执行一个例程，错误和 panic 都转换成 fault，不会传到调用方
func Run(rt Routine, opts Options) (out Outcome) {
	out.Routine = rt.Name
	start := time.Now()
	defer func() {
		out.Elapsed = time.Since(start)
		if rec := recover(); rec != nil {
			perr := &PanicError{Value: rec, Stack: string(debug.Stack())}
			out.Status = StatusFault
			out.Err = perr
			out.Error = perr.Error()
			out.Stack = perr.Stack
			logutil.Error("例程 %s panic: %v", rt.Name, rec)
		}
	}()

	logutil.Debug("run routine %s opts: %v", rt.Name, opts)
	result, err := rt.Run(opts)
	if err != nil {
		out.Status = StatusFault
		out.Err = err
		out.Error = err.Error()
		logutil.Warn("例程 %s 执行失败: %s", rt.Name, err)
		return out
	}
	out.Result = result

	if rt.Check != nil {
		if err := rt.Check(opts, result); err != nil {
			out.Err = err
			out.Error = err.Error()
			var ae *AssertionError
			if errors.As(err, &ae) {
				out.Status = StatusFail
				out.Diff = ae.SideBySide()
				logutil.Warn("例程 %s 断言失败: %s", rt.Name, err)
				return out
			}
			out.Status = StatusFault
			logutil.Warn("例程 %s 校验出错: %s", rt.Name, err)
			return out
		}
	}
	out.Status = StatusPass
	return out
}

// Report 一批例程的汇总
type Report struct {
	Total    int       `json:"total"`
	Passed   int       `json:"passed"`
	Failed   int       `json:"failed"`
	Faulted  int       `json:"faulted"`
	Outcomes []Outcome `json:"outcomes"`
}

// RunAll 依次执行，某个例程失败不影响后面的例程
func RunAll(routines []Routine, opts Options) Report {
	rep := Report{Outcomes: make([]Outcome, 0, len(routines))}
	for _, rt := range routines {
		rep.add(Run(rt, opts))
	}
	logutil.Info("verify done: %d passed, %d failed, %d faulted", rep.Passed, rep.Failed, rep.Faulted)
	return rep
}

func (r *Report) add(o Outcome) {
	r.Total++
	switch o.Status {
	case StatusPass:
		r.Passed++
	case StatusFail:
		r.Failed++
	case StatusFault:
		r.Faulted++
	}
	r.Outcomes = append(r.Outcomes, o)
}

// Names 指定状态的例程名
func (r Report) Names(status Status) []string {
	return lo.FilterMap(r.Outcomes, func(o Outcome, _ int) (string, bool) {
		return o.Routine, o.Status == status
	})
}

// Err 有故障优先返回 CodeInternalErr，只有断言失败返回 CodeAssertionFailed
func (r Report) Err() error {
	switch {
	case r.Faulted > 0:
		return errorutil.NewExitErrorWithMessage(errorutil.CodeInternalErr,
			fmt.Sprintf("%d routine(s) faulted", r.Faulted),
			fmt.Errorf("faulted: %v", r.Names(StatusFault)))
	case r.Failed > 0:
		return errorutil.NewExitErrorWithMessage(errorutil.CodeAssertionFailed,
			fmt.Sprintf("%d routine(s) failed", r.Failed),
			fmt.Errorf("failed: %v", r.Names(StatusFail)))
	}
	return nil
}

// JSON 逐字段写入，outcomes 用 sjson 的 -1 路径逐个追加，字段顺序固定
// withResults 为 false 时去掉每个例程的 result
func (r Report) JSON(format qqjson.JSONFormat, withResults bool) ([]byte, error) {
	raw := []byte("{}")
	var err error
	for _, kv := range []struct {
		path string
		val  int
	}{{"total", r.Total}, {"passed", r.Passed}, {"failed", r.Failed}, {"faulted", r.Faulted}} {
		if raw, err = qqjson.SetPath(raw, kv.path, kv.val); err != nil {
			return nil, err
		}
	}
	if raw, err = qqjson.SetRawPath(raw, "outcomes", []byte("[]")); err != nil {
		return nil, err
	}
	for _, o := range r.Outcomes {
		if !withResults {
			o.Result = nil
		}
		item, err := json.Marshal(o)
		if err != nil {
			return nil, fmt.Errorf("outcome %s: %w", o.Routine, err)
		}
		if raw, err = qqjson.SetRawPath(raw, "outcomes.-1", item); err != nil {
			return nil, err
		}
	}
	return qqjson.Reformat(raw, format), nil
}
