package toolutil

import (
	"fmt"
	"sort"

	"golang.org/x/exp/constraints"

	"github.com/mohae/deepcopy"
)

// Stream 是一个数据流容器，支持链式数据处理
// 元素顺序就是遇到顺序(encounter order)，所有操作都不修改原始切片
type Stream[T any] struct {
	data []T
}

// StreamOf 将切片包装为 Stream 对象
func StreamOf[T any](data []T) Stream[T] {
	return Stream[T]{data}
}

// RangeClosed 生成 [from, to] 闭区间的整数流，from > to 时为空流
func RangeClosed(from, to int64) Stream[int64] {
	if from > to {
		return Stream[int64]{}
	}
	out := make([]int64, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return Stream[int64]{out}
}

func (s Stream[T]) ToSlice() []T {
	return s.data
}

func (s Stream[T]) Count() int {
	return len(s.data)
}

func (s Stream[T]) First() (T, bool) {
	if len(s.data) == 0 {
		var zero T
		return zero, false
	}
	return s.data[0], true
}

func (s Stream[T]) Last() (T, bool) {
	if len(s.data) == 0 {
		var zero T
		return zero, false
	}
	return s.data[len(s.data)-1], true
}

// 干活但是不回报，副作用函数，不能改变原始数据
func (s Stream[T]) ForEach(f func(T)) {
	for _, v := range s.data {
		f(v)
	}
}

// Filter 过滤切片中满足条件的元素
func Filter[T any](s Stream[T], pred func(T) bool) Stream[T] {
	var out []T
	for _, v := range s.data {
		if pred(v) {
			out = append(out, v)
		}
	}
	return Stream[T]{out}
}

// Map 映射元素为另一个类型
func Map[T any, R any](s Stream[T], f func(T) R) Stream[R] {
	out := make([]R, len(s.data))
	for i, v := range s.data {
		out[i] = f(v)
	}
	return Stream[R]{out}
}

// MapSafe 使用 deepcopy 保护每个返回值，防止引用泄漏
func MapSafe[T any, R any](s Stream[T], f func(T) R) Stream[R] {
	out := make([]R, len(s.data))
	for i, v := range s.data {
		mapped := f(v)
		out[i] = deepcopy.Copy(mapped).(R) // 强转回目标类型
	}
	return Stream[R]{out}
}

// FlatMap 每个元素映射成一个切片，再按顺序拍平成一条流
func FlatMap[T any, R any](s Stream[T], f func(T) []R) Stream[R] {
	out := make([]R, 0, len(s.data))
	for _, v := range s.data {
		out = append(out, f(v)...)
	}
	return Stream[R]{out}
}

// Peek 对每个元素执行副作用操作（如打印），返回原流
func Peek[T any](s Stream[T], f func(T)) Stream[T] {
	for _, v := range s.data {
		f(v)
	}
	return s
}

// Reduce 将流中的元素从左到右归约为一个值，init 是显式的种子
func Reduce[T any, R any](s Stream[T], init R, comb func(R, T) R) R {
	acc := init
	for _, v := range s.data {
		acc = comb(acc, v)
	}
	return acc
}

// Distinct 去重元素，eq 用于判断是否相等
func Distinct[T any](s Stream[T], eq func(T, T) bool) Stream[T] {
	var result []T
	for _, v := range s.data {
		found := false
		for _, r := range result {
			if eq(v, r) {
				found = true
				break
			}
		}
		if !found {
			result = append(result, v)
		}
	}
	return Stream[T]{result}
}

// Sorted 按指定比较函数排序(稳定排序)，不改原流
func Sorted[T any](s Stream[T], less func(T, T) bool) Stream[T] {
	cloned := make([]T, len(s.data))
	copy(cloned, s.data)
	sort.SliceStable(cloned, func(i, j int) bool {
		return less(cloned[i], cloned[j])
	})
	return Stream[T]{cloned}
}

// Take 获取前 n 项
func Take[T any](s Stream[T], n int) Stream[T] {
	if n >= len(s.data) {
		return s
	}
	if n <= 0 {
		return Stream[T]{}
	}
	return Stream[T]{s.data[:n]}
}

// Skip 跳过前 n 项
func Skip[T any](s Stream[T], n int) Stream[T] {
	if n >= len(s.data) {
		return Stream[T]{}
	}
	if n <= 0 {
		return s
	}
	return Stream[T]{s.data[n:]}
}

func Max[T constraints.Ordered](s Stream[T]) (T, bool) {
	if len(s.data) == 0 {
		var zero T
		return zero, false
	}
	max := s.data[0]
	for _, v := range s.data[1:] {
		if v > max {
			max = v
		}
	}
	return max, true
}

func Min[T constraints.Ordered](s Stream[T]) (T, bool) {
	if len(s.data) == 0 {
		var zero T
		return zero, false
	}
	min := s.data[0]
	for _, v := range s.data[1:] {
		if v < min {
			min = v
		}
	}
	return min, true
}

// MaxBy 按 less 找最大元素，空流返回 ErrNoSuchElement
// 多个元素并列最大时保留先遇到的那个，流的顺序如果来自 map 遍历，结果就是任意的
func MaxBy[T any](s Stream[T], less func(a, b T) bool) (T, error) {
	if len(s.data) == 0 {
		var zero T
		return zero, fmt.Errorf("%w: max of empty stream", ErrNoSuchElement)
	}
	max := s.data[0]
	for _, v := range s.data[1:] {
		if less(max, v) {
			max = v
		}
	}
	return max, nil
}
