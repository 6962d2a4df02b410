package toolutil

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/mohae/deepcopy"
	"golang.org/x/exp/constraints"
)

// Collector 描述一次可变归约：
// Supplier 产生种子累加器，Accumulator 把一个元素折叠进累加器，Finisher 把累加器转换成最终结果
// Accumulator 返回错误时整个收集立即失败，不返回部分结果
type Collector[T any, A any, R any] struct {
	Supplier    func() A
	Accumulator func(A, T) (A, error)
	Finisher    func(A) (R, error)
}

// MergeFunc 决定重复键的两个值如何合并，old 是先遇到的值，cur 是后遇到的值
type MergeFunc[V any] func(old, cur V) V

// Set 是 ToSet 收集出来的无序集合
type Set[T comparable] map[T]struct{}

func (s Set[T]) Contains(v T) bool {
	_, ok := s[v]
	return ok
}

func (s Set[T]) Len() int { return len(s) }

// Slice 返回集合元素，顺序不保证
func (s Set[T]) Slice() []T {
	out := make([]T, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	return out
}

// Collect 把流按照收集器从左到右归约
func Collect[T any, A any, R any](s Stream[T], c Collector[T, A, R]) (R, error) {
	acc := c.Supplier()
	var err error
	for i, v := range s.data {
		acc, err = c.Accumulator(acc, v)
		if err != nil {
			var zero R
			return zero, fmt.Errorf("collect element %d: %w", i, err)
		}
	}
	return c.Finisher(acc)
}

func identity[A any](a A) (A, error) { return a, nil }

// Counting 计数，种子 0，每个元素 +1
func Counting[T any]() Collector[T, int64, int64] {
	return Collector[T, int64, int64]{
		Supplier:    func() int64 { return 0 },
		Accumulator: func(n int64, _ T) (int64, error) { return n + 1, nil },
		Finisher:    identity[int64],
	}
}

// ToList 按遇到顺序收集
func ToList[T any]() Collector[T, []T, []T] {
	return Collector[T, []T, []T]{
		Supplier: func() []T { return []T{} },
		Accumulator: func(l []T, v T) ([]T, error) {
			return append(l, v), nil
		},
		Finisher: identity[[]T],
	}
}

// ToSet 去重收集，顺序无意义
func ToSet[T comparable]() Collector[T, Set[T], Set[T]] {
	return Collector[T, Set[T], Set[T]]{
		Supplier: func() Set[T] { return Set[T]{} },
		Accumulator: func(s Set[T], v T) (Set[T], error) {
			s[v] = struct{}{}
			return s, nil
		},
		Finisher: identity[Set[T]],
	}
}

// Joining 按遇到顺序用 sep 拼接
func Joining(sep string) Collector[string, []string, string] {
	return Collector[string, []string, string]{
		Supplier: func() []string { return nil },
		Accumulator: func(parts []string, s string) ([]string, error) {
			return append(parts, s), nil
		},
		Finisher: func(parts []string) (string, error) {
			return strings.Join(parts, sep), nil
		},
	}
}

// Mapping 先用 mapper 转换元素，再交给下游收集器
func Mapping[T any, U any, A any, R any](mapper func(T) U, downstream Collector[U, A, R]) Collector[T, A, R] {
	return Collector[T, A, R]{
		Supplier: downstream.Supplier,
		Accumulator: func(a A, v T) (A, error) {
			return downstream.Accumulator(a, mapper(v))
		},
		Finisher: downstream.Finisher,
	}
}

// CollectingAndThen 在收集器的结果上再做一次转换
func CollectingAndThen[T any, A any, R any, RR any](c Collector[T, A, R], finisher func(R) RR) Collector[T, A, RR] {
	return Collector[T, A, RR]{
		Supplier:    c.Supplier,
		Accumulator: c.Accumulator,
		Finisher: func(a A) (RR, error) {
			r, err := c.Finisher(a)
			if err != nil {
				var zero RR
				return zero, err
			}
			return finisher(r), nil
		},
	}
}

// GroupingBy 按 key 分组，每组用 downstream 归约
func GroupingBy[T any, K comparable, A any, R any](key func(T) K, downstream Collector[T, A, R]) Collector[T, map[K]A, map[K]R] {
	return GroupingByE(func(v T) (K, error) { return key(v), nil }, downstream)
}

// GroupingByE 和 GroupingBy 一样，但是键提取可能失败，失败直接向上传递
func GroupingByE[T any, K comparable, A any, R any](key func(T) (K, error), downstream Collector[T, A, R]) Collector[T, map[K]A, map[K]R] {
	return Collector[T, map[K]A, map[K]R]{
		Supplier: func() map[K]A { return make(map[K]A) },
		Accumulator: func(m map[K]A, v T) (map[K]A, error) {
			k, err := key(v)
			if err != nil {
				return m, fmt.Errorf("group key: %w", err)
			}
			acc, ok := m[k]
			if !ok {
				acc = downstream.Supplier()
			}
			acc, err = downstream.Accumulator(acc, v)
			if err != nil {
				return m, err
			}
			m[k] = acc
			return m, nil
		},
		Finisher: func(m map[K]A) (map[K]R, error) {
			out := make(map[K]R, len(m))
			for k, acc := range m {
				r, err := downstream.Finisher(acc)
				if err != nil {
					return nil, fmt.Errorf("group %v: %w", k, err)
				}
				out[k] = r
			}
			return out, nil
		},
	}
}

// GroupingBySorted 分组结果按键升序输出，内部用红黑树 treemap 保存分组
func GroupingBySorted[T any, K constraints.Ordered, A any, R any](key func(T) K, downstream Collector[T, A, R]) Collector[T, *treemap.Map, []Entry[K, R]] {
	return Collector[T, *treemap.Map, []Entry[K, R]]{
		Supplier: func() *treemap.Map {
			return treemap.NewWith(func(a, b any) int {
				return cmp.Compare(a.(K), b.(K))
			})
		},
		Accumulator: func(tm *treemap.Map, v T) (*treemap.Map, error) {
			k := key(v)
			var acc A
			if old, found := tm.Get(k); found {
				acc = old.(A)
			} else {
				acc = downstream.Supplier()
			}
			acc, err := downstream.Accumulator(acc, v)
			if err != nil {
				return tm, err
			}
			tm.Put(k, acc)
			return tm, nil
		},
		Finisher: func(tm *treemap.Map) ([]Entry[K, R], error) {
			out := make([]Entry[K, R], 0, tm.Size())
			it := tm.Iterator()
			for it.Next() {
				k := it.Key().(K)
				r, err := downstream.Finisher(it.Value().(A))
				if err != nil {
					return nil, fmt.Errorf("group %v: %w", k, err)
				}
				out = append(out, Entry[K, R]{Key: k, Value: r})
			}
			return out, nil
		},
	}
}

// ToMap 每个键只保留一个值
// merge 为 nil 时遇到重复键直接失败(ErrDuplicateKey)，没有隐式默认策略
func ToMap[T any, K comparable, V any](key func(T) K, value func(T) V, merge MergeFunc[V]) Collector[T, map[K]V, map[K]V] {
	return ToMapE(func(v T) (K, error) { return key(v), nil }, value, merge)
}

// ToMapE 键提取可能失败的 ToMap
func ToMapE[T any, K comparable, V any](key func(T) (K, error), value func(T) V, merge MergeFunc[V]) Collector[T, map[K]V, map[K]V] {
	return Collector[T, map[K]V, map[K]V]{
		Supplier: func() map[K]V { return make(map[K]V) },
		Accumulator: func(m map[K]V, v T) (map[K]V, error) {
			k, err := key(v)
			if err != nil {
				return m, fmt.Errorf("map key: %w", err)
			}
			val := value(v)
			if old, ok := m[k]; ok {
				if merge == nil {
					return m, fmt.Errorf("%w %v (attempted merging values %v and %v)", ErrDuplicateKey, k, old, val)
				}
				val = merge(old, val)
			}
			m[k] = val
			return m, nil
		},
		Finisher: identity[map[K]V],
	}
}

// KeepFirst 重复键保留先遇到的值
func KeepFirst[V any]() MergeFunc[V] {
	return func(old, _ V) V { return old }
}

// KeepLast 重复键保留后遇到的值
func KeepLast[V any]() MergeFunc[V] {
	return func(_, cur V) V { return cur }
}

// JoinWith 重复键的字符串按遇到顺序用 sep 拼接
func JoinWith(sep string) MergeFunc[string] {
	return func(old, cur string) string { return old + sep + cur }
}

// AppendAll 重复键的切片按遇到顺序拼接
func AppendAll[E any]() MergeFunc[[]E] {
	return func(old, cur []E) []E {
		// 三下标切片，避免写进 old 的底层数组
		return append(old[:len(old):len(old)], cur...)
	}
}

// CopyMap 深拷贝一个 map，收集结果交出去之前用它切断引用
func CopyMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return map[K]V{}
	}
	return deepcopy.Copy(m).(map[K]V)
}
