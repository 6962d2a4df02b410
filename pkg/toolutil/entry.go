package toolutil

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Entry 是 map 里的一个键值对，级联分组时把上一次的结果重新变成流
type Entry[K any, V any] struct {
	Key   K `json:"key"`
	Value V `json:"value"`
}

func (e Entry[K, V]) String() string {
	return fmt.Sprintf("%v=%v", e.Key, e.Value)
}

// Entries 把 map 转换为键值对流，顺序是 map 的遍历顺序(随机)
func Entries[K comparable, V any](m map[K]V) Stream[Entry[K, V]] {
	out := make([]Entry[K, V], 0, len(m))
	for k, v := range m {
		out = append(out, Entry[K, V]{Key: k, Value: v})
	}
	return Stream[Entry[K, V]]{out}
}

// ComparingByKey 按键比较，给 MaxBy/Sorted 用
func ComparingByKey[K constraints.Ordered, V any]() func(a, b Entry[K, V]) bool {
	return func(a, b Entry[K, V]) bool { return a.Key < b.Key }
}

// ComparingByValue 按值比较
func ComparingByValue[K any, V constraints.Ordered]() func(a, b Entry[K, V]) bool {
	return func(a, b Entry[K, V]) bool { return a.Value < b.Value }
}

// EntryKey / EntryValue 用在 GroupingBy 和 Mapping 里做键和值提取
func EntryKey[K any, V any](e Entry[K, V]) K { return e.Key }

func EntryValue[K any, V any](e Entry[K, V]) V { return e.Value }
