package btree

import (
	"github.com/google/btree"
	"golang.org/x/exp/constraints"

	"stream_tool/pkg/toolutil"
)

// 分组结果是 map，遍历顺序随机，打印前用 B 树按键排好
const degree = 8

// OrderedMap 按键有序的键值表，只用来做稳定输出
type OrderedMap[K constraints.Ordered, V any] struct {
	tr *btree.BTreeG[toolutil.Entry[K, V]]
}

func NewOrderedMap[K constraints.Ordered, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		tr: btree.NewG(degree, func(a, b toolutil.Entry[K, V]) bool {
			return a.Key < b.Key
		}),
	}
}

// FromMap 把普通 map 装进有序表
func FromMap[K constraints.Ordered, V any](m map[K]V) *OrderedMap[K, V] {
	om := NewOrderedMap[K, V]()
	for k, v := range m {
		om.Put(k, v)
	}
	return om
}

// Put 键已存在时覆盖
func (om *OrderedMap[K, V]) Put(k K, v V) {
	om.tr.ReplaceOrInsert(toolutil.Entry[K, V]{Key: k, Value: v})
}

func (om *OrderedMap[K, V]) Get(k K) (V, bool) {
	e, ok := om.tr.Get(toolutil.Entry[K, V]{Key: k})
	return e.Value, ok
}

func (om *OrderedMap[K, V]) Len() int {
	return om.tr.Len()
}

// Ascend 按键升序遍历，fn 返回 false 停止
func (om *OrderedMap[K, V]) Ascend(fn func(k K, v V) bool) {
	om.tr.Ascend(func(e toolutil.Entry[K, V]) bool {
		return fn(e.Key, e.Value)
	})
}

// Entries 按键升序返回所有键值对
func (om *OrderedMap[K, V]) Entries() []toolutil.Entry[K, V] {
	out := make([]toolutil.Entry[K, V], 0, om.tr.Len())
	om.tr.Ascend(func(e toolutil.Entry[K, V]) bool {
		out = append(out, e)
		return true
	})
	return out
}

// SortedEntries 一步到位: map -> 有序键值对
func SortedEntries[K constraints.Ordered, V any](m map[K]V) []toolutil.Entry[K, V] {
	return FromMap(m).Entries()
}
