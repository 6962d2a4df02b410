package runner

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"stream_tool/internal/testutils"
	"stream_tool/pkg/errorutil"
	"stream_tool/pkg/qqjson"
)

var errBoom = errors.New("boom")

func fixedRoutine(name string, result any, check func(Options, any) error) Routine {
	return Routine{
		Name:  name,
		Short: "test routine " + name,
		Run:   func(Options) (any, error) { return result, nil },
		Check: check,
	}
}

func sampleRoutines() []Routine {
	return []Routine{
		fixedRoutine("compose", 15, func(_ Options, r any) error {
			return AssertEqual("compose(5)", 15, r)
		}),
		fixedRoutine("counting", map[string]int64{"a": 2}, func(_ Options, r any) error {
			return AssertEqual("counts", map[string]int64{"a": 3}, r)
		}),
		{
			Name: "reduce",
			Run:  func(Options) (any, error) { return nil, errBoom },
		},
		{
			Name: "words",
			Run: func(Options) (any, error) {
				var m map[string]int
				m["x"] = 1 // nil map 写入触发 panic
				return m, nil
			},
		},
	}
}

func TestRun_Statuses(t *testing.T) {
	rs := sampleRoutines()

	tests := []struct {
		name   string
		rt     Routine
		status Status
	}{
		{"pass", rs[0], StatusPass},
		{"assertion fails", rs[1], StatusFail},
		{"returned error faults", rs[2], StatusFault},
		{"panic faults", rs[3], StatusFault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Run(tt.rt, Options{})
			assert.Equal(t, tt.status, out.Status)
			assert.Equal(t, tt.rt.Name, out.Routine)
		})
	}
}

func TestRun_FailCarriesDiff(t *testing.T) {
	out := Run(sampleRoutines()[1], Options{})
	var ae *AssertionError
	require.ErrorAs(t, out.Err, &ae)
	assert.Equal(t, "counts", ae.What)
	assert.Contains(t, out.Diff, "* Expected")
}

func TestRun_FaultKeepsCause(t *testing.T) {
	out := Run(sampleRoutines()[2], Options{})
	assert.ErrorIs(t, out.Err, errBoom)
	assert.Nil(t, out.Result)

	out = Run(sampleRoutines()[3], Options{})
	var pe *PanicError
	require.ErrorAs(t, out.Err, &pe)
	assert.NotEmpty(t, out.Stack)
}

func TestRun_CheckReturnsPlainError(t *testing.T) {
	rt := fixedRoutine("x", 1, func(Options, any) error { return errBoom })
	out := Run(rt, Options{})
	assert.Equal(t, StatusFault, out.Status)
}

func TestRunAll_Report(t *testing.T) {
	rep := RunAll(sampleRoutines(), Options{})
	assert.Equal(t, 4, rep.Total)
	assert.Equal(t, 1, rep.Passed)
	assert.Equal(t, 1, rep.Failed)
	assert.Equal(t, 2, rep.Faulted)
	assert.Equal(t, []string{"reduce", "words"}, rep.Names(StatusFault))

	// 有故障时优先报告故障
	assert.Equal(t, errorutil.CodeInternalErr, errorutil.ExitCodeFromError(rep.Err()))

	onlyFail := RunAll(sampleRoutines()[:2], Options{})
	assert.Equal(t, errorutil.CodeAssertionFailed, errorutil.ExitCodeFromError(onlyFail.Err()))

	allPass := RunAll(sampleRoutines()[:1], Options{})
	assert.NoError(t, allPass.Err())
}

func TestReport_JSON(t *testing.T) {
	rep := RunAll(sampleRoutines()[:2], Options{})

	raw, err := rep.JSON(qqjson.JSONFormatOne, true)
	require.NoError(t, err)
	testutils.RequireJSONPath(t, raw, "total", "2")
	testutils.RequireJSONPath(t, raw, "outcomes.0.routine", "compose")
	testutils.RequireJSONPath(t, raw, "outcomes.0.result", "15")
	testutils.RequireJSONPath(t, raw, "outcomes.1.status", "fail")

	raw, err = rep.JSON(qqjson.JSONFormatMul, false)
	require.NoError(t, err)
	assert.False(t, gjson.GetBytes(raw, "outcomes.0.result").Exists())
}

func TestAssertEqual(t *testing.T) {
	assert.NoError(t, AssertEqual("big", big.NewInt(42), new(big.Int).SetInt64(42)))
	assert.NoError(t, AssertEqual("empty", []string{}, []string(nil)))
	assert.Error(t, AssertEqual("map", map[int][]string{4: {"this"}}, map[int][]string{4: {"that"}}))
}

func TestAssertElementsMatch(t *testing.T) {
	assert.NoError(t, AssertElementsMatch("words", []string{"is", "and", "your"}, []string{"your", "is", "and"}))
	err := AssertElementsMatch("words", []string{"is"}, []string{"you"})
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, []string{"is"}, ae.Expected)
}
