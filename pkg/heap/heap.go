package heap

import (
	"container/heap"
)

type GenericHeap[T any] struct {
	data []T
	less func(a, b T) bool
}

func New[T any](less func(a, b T) bool) *GenericHeap[T] {
	h := &GenericHeap[T]{less: less}
	heap.Init(h)
	return h
}

func (h GenericHeap[T]) Len() int           { return len(h.data) }
func (h GenericHeap[T]) Less(i, j int) bool { return h.less(h.data[i], h.data[j]) }
func (h GenericHeap[T]) Swap(i, j int)      { h.data[i], h.data[j] = h.data[j], h.data[i] }

func (h *GenericHeap[T]) Push(x any) {
	h.data = append(h.data, x.(T))
}

func (h *GenericHeap[T]) Pop() any {
	n := len(h.data)
	x := h.data[n-1]
	h.data = h.data[:n-1]
	return x
}

func (h *GenericHeap[T]) PushItem(x T) {
	heap.Push(h, x)
}

func (h *GenericHeap[T]) PopItem() T {
	return heap.Pop(h).(T)
}

// 空堆调用会 panic，调用前先看 Len
func (h *GenericHeap[T]) Peek() T {
	return h.data[0]
}

// TopN 返回按 less 排序最大的 n 个元素，从大到小
// 维护一个大小为 n 的小顶堆，堆顶就是当前第 n 大
func TopN[T any](items []T, n int, less func(a, b T) bool) []T {
	if n <= 0 || len(items) == 0 {
		return []T{}
	}
	h := New(less)
	for _, it := range items {
		if h.Len() < n {
			h.PushItem(it)
			continue
		}
		if less(h.Peek(), it) {
			h.PopItem()
			h.PushItem(it)
		}
	}

	out := make([]T, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = h.PopItem()
	}
	return out
}
