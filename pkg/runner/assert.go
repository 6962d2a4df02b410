package runner

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"stream_tool/pkg/diffutil"
)

// AssertionError 计算结果和期望不一致
type AssertionError struct {
	What     string
	Expected any
	Actual   any
	Diff     []diffutil.DiffLine
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %v, got %v", e.What, e.Expected, e.Actual)
}

// SideBySide 左右对照的差异表格
func (e *AssertionError) SideBySide() string {
	return diffutil.FormatSideBySide(e.Diff)
}

var cmpOptions = cmp.Options{
	// big.Int 有未导出字段，按数值比较
	cmp.Comparer(func(a, b *big.Int) bool {
		if a == nil || b == nil {
			return a == b
		}
		return a.Cmp(b) == 0
	}),
	cmpopts.EquateEmpty(),
}

func newAssertionError(what string, expected, actual any) *AssertionError {
	return &AssertionError{
		What:     what,
		Expected: expected,
		Actual:   actual,
		Diff:     diffutil.CompareValues(expected, actual),
	}
}

// AssertEqual 深度比较，空切片和 nil 视为相等
func AssertEqual(what string, expected, actual any) error {
	if cmp.Equal(expected, actual, cmpOptions) {
		return nil
	}
	return newAssertionError(what, expected, actual)
}

// AssertElementsMatch 忽略顺序比较两个字符串切片
func AssertElementsMatch(what string, expected, actual []string) error {
	e, a := slices.Clone(expected), slices.Clone(actual)
	slices.Sort(e)
	slices.Sort(a)
	if slices.Equal(e, a) {
		return nil
	}
	return newAssertionError(what, e, a)
}

// AssertTrue 条件不成立时报告 detail 描述的期望
func AssertTrue(what string, cond bool, expected, actual any) error {
	if cond {
		return nil
	}
	return newAssertionError(what, expected, actual)
}
