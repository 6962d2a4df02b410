package showcase

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"

	"stream_tool/pkg/btree"
	"stream_tool/pkg/toolutil"
)

// Viewer 结果里最适合画成表格、树或者图的那一部分
// json 输出完整结果，table/tree/dot/sh 只输出 View()
type Viewer interface {
	View() any
}

type FactorialResult struct {
	N     int64    `json:"n"`
	Value *big.Int `json:"value"`
}

func (r FactorialResult) String() string {
	return fmt.Sprintf("%d! = %s", r.N, humanize.BigComma(r.Value))
}

type ComposeResult struct {
	Input  int `json:"input"`
	Output int `json:"output"`
}

func (r ComposeResult) String() string {
	return fmt.Sprintf("compose(%d) = %d", r.Input, r.Output)
}

// ToMapResult 三种合并策略的结果，以及不给合并函数时是否因为重复键失败
type ToMapResult struct {
	First        map[string]string `json:"first"`
	Last         map[string]string `json:"last"`
	Join         map[string]string `json:"join"`
	DuplicateKey bool              `json:"duplicateKey"`
	NoneError    string            `json:"noneError,omitempty"`
}

func (r ToMapResult) View() any { return r.Join }

func (r ToMapResult) String() string {
	var b strings.Builder
	for _, part := range []struct {
		name string
		m    map[string]string
	}{{"first", r.First}, {"last", r.Last}, {"join", r.Join}} {
		fmt.Fprintf(&b, "[%s]\n%s", part.name, VerseMap(part.m))
	}
	if r.DuplicateKey {
		fmt.Fprintf(&b, "[none]\n%s\n", r.NoneError)
	}
	return b.String()
}

// VerseMap 单一合并策略的结果
type VerseMap map[string]string

func (m VerseMap) String() string {
	var b strings.Builder
	for _, e := range btree.SortedEntries(m) {
		// join 出来的值可能带换行，续行缩进对齐
		fmt.Fprintf(&b, "%s => %s\n", e.Key, strings.ReplaceAll(e.Value, "\n", "\n     "))
	}
	return b.String()
}

type GroupByResult struct {
	ViaToMap      map[int][]string `json:"viaToMap"`
	ViaGroupingBy map[int][]string `json:"viaGroupingBy"`
}

func (r GroupByResult) View() any { return r.ViaGroupingBy }

func (r GroupByResult) String() string {
	var b strings.Builder
	for _, e := range btree.SortedEntries(r.ViaGroupingBy) {
		fmt.Fprintf(&b, "%d: %s\n", e.Key, strings.Join(e.Value, ", "))
	}
	return b.String()
}

// Counts 键 -> 次数
type Counts map[string]int64

func (c Counts) String() string {
	var b strings.Builder
	for _, e := range btree.SortedEntries(c) {
		fmt.Fprintf(&b, "%s => %d\n", e.Key, e.Value)
	}
	return b.String()
}

type MappingResult struct {
	Grouped    map[string][]string `json:"grouped"`
	FirstWords map[string][]string `json:"firstWords"`
}

func (r MappingResult) View() any { return r.FirstWords }

func (r MappingResult) String() string {
	var b strings.Builder
	for _, e := range btree.SortedEntries(r.Grouped) {
		fmt.Fprintf(&b, "%s (%s)\n", e.Key, strings.Join(r.FirstWords[e.Key], ", "))
		for _, v := range e.Value {
			fmt.Fprintf(&b, "    %s\n", v)
		}
	}
	return b.String()
}

type LettersResult struct {
	Frequency map[string]int64                `json:"frequency"`
	Sorted    []toolutil.Entry[string, int64] `json:"-"`
	Total     int64                           `json:"total"`
}

func (r LettersResult) View() any { return r.Frequency }

func (r LettersResult) String() string {
	var b strings.Builder
	for _, e := range r.Sorted {
		fmt.Fprintf(&b, "%q => %d\n", e.Key, e.Value)
	}
	fmt.Fprintf(&b, "total: %d\n", r.Total)
	return b.String()
}

type WordsResult struct {
	Frequency    map[string]int64                `json:"frequency"`
	MostFrequent toolutil.Entry[string, int64]   `json:"mostFrequent"`
	ByCount      map[int64][]string              `json:"byCount"`
	MostSeen     toolutil.Entry[int64, []string] `json:"mostSeen"`
	Top          []toolutil.Entry[string, int64] `json:"top,omitempty"`
}

func (r WordsResult) View() any { return r.ByCount }

func (r WordsResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Most frequent word %s\n", r.MostFrequent)
	fmt.Fprintf(&b, "Most seen words %d=[%s]\n", r.MostSeen.Key, strings.Join(r.MostSeen.Value, ", "))
	for i, e := range r.Top {
		fmt.Fprintf(&b, "%2d. %s (%d)\n", i+1, e.Key, e.Value)
	}
	return b.String()
}
