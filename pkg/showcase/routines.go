package showcase

import (
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strings"

	"stream_tool/pkg/heap"
	"stream_tool/pkg/toolutil"
	"stream_tool/pkg/toolutil/textutil"
)

var (
	ErrInvalidOption = errors.New("showcase: invalid option")
	ErrUnknownMerge  = errors.New("showcase: unknown merge strategy")
)

const (
	DefaultFactorialN   = 21
	DefaultComposeInput = 5
	DefaultSeparator    = "\n"
)

// MergeNames tomap 支持的合并策略，none 表示不给合并函数
var MergeNames = []string{"first", "last", "join", "none"}

// FactorialOf 1..n 的大整数乘积
func FactorialOf(n int64) (FactorialResult, error) {
	if n < 0 {
		return FactorialResult{}, fmt.Errorf("%w: factorial of negative number %d", ErrInvalidOption, n)
	}
	return FactorialResult{N: n, Value: toolutil.Factorial(n)}, nil
}

// DefaultOperators x+1, x*2, x+3 依次执行
var DefaultOperators = []toolutil.IntUnaryOperator{
	func(i int) int { return i + 1 },
	func(i int) int { return i * 2 },
	func(i int) int { return i + 3 },
}

func ComposeOf(x int) ComposeResult {
	return ComposeResult{Input: x, Output: toolutil.Compose(DefaultOperators...)(x)}
}

// MergeByName 按名字取合并函数，none 返回 nil
func MergeByName(name, sep string) (toolutil.MergeFunc[string], error) {
	switch name {
	case "first":
		return toolutil.KeepFirst[string](), nil
	case "last":
		return toolutil.KeepLast[string](), nil
	case "join":
		return toolutil.JoinWith(sep), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownMerge, name, MergeNames)
	}
}

// VersesByFirstLetter 首字母 -> 诗句，首字母重复时交给 merge
func VersesByFirstLetter(verses []string, merge toolutil.MergeFunc[string]) (map[string]string, error) {
	return toolutil.Collect(toolutil.StreamOf(verses),
		toolutil.ToMapE(textutil.FirstLetter, func(s string) string { return s }, merge))
}

// AllMerges 四种合并策略各跑一遍
func AllMerges(verses []string, sep string) (ToMapResult, error) {
	var res ToMapResult
	var err error
	if res.First, err = VersesByFirstLetter(verses, toolutil.KeepFirst[string]()); err != nil {
		return res, err
	}
	if res.Last, err = VersesByFirstLetter(verses, toolutil.KeepLast[string]()); err != nil {
		return res, err
	}
	if res.Join, err = VersesByFirstLetter(verses, toolutil.JoinWith(sep)); err != nil {
		return res, err
	}
	if _, err = VersesByFirstLetter(verses, nil); err != nil {
		if !errors.Is(err, toolutil.ErrDuplicateKey) {
			return res, err
		}
		res.DuplicateKey = true
		res.NoneError = err.Error()
	}
	return res, nil
}

// WordsByLength 同一个分组分别用 ToMap+合并 和 GroupingBy 做一遍
func WordsByLength(words []string) (GroupByResult, error) {
	viaToMap, err := toolutil.Collect(toolutil.StreamOf(words),
		toolutil.ToMap(textutil.Length, func(s string) []string { return []string{s} }, toolutil.AppendAll[string]()))
	if err != nil {
		return GroupByResult{}, err
	}
	viaGrouping, err := toolutil.Collect(toolutil.StreamOf(words),
		toolutil.GroupingBy(textutil.Length, toolutil.ToList[string]()))
	if err != nil {
		return GroupByResult{}, err
	}
	return GroupByResult{ViaToMap: viaToMap, ViaGroupingBy: viaGrouping}, nil
}

// CountByFirstLetter 首字母 -> 单词个数
func CountByFirstLetter(words []string) (Counts, error) {
	return toolutil.Collect(toolutil.StreamOf(words),
		toolutil.GroupingByE(textutil.FirstLetter, toolutil.Counting[string]()))
}

func sortedSlice(s toolutil.Set[string]) []string {
	out := s.Slice()
	slices.Sort(out)
	return out
}

// GroupVerses 按首字母分组，一份保留整句，一份只保留每句的第一个词(去重)
func GroupVerses(verses []string) (MappingResult, error) {
	grouped, err := toolutil.Collect(toolutil.StreamOf(verses),
		toolutil.GroupingByE(textutil.FirstLetter, toolutil.ToList[string]()))
	if err != nil {
		return MappingResult{}, err
	}
	firstWords, err := toolutil.Collect(toolutil.StreamOf(verses),
		toolutil.GroupingByE(textutil.FirstLetter,
			toolutil.Mapping(textutil.FirstToken,
				toolutil.CollectingAndThen(toolutil.ToSet[string](), sortedSlice))))
	if err != nil {
		return MappingResult{}, err
	}
	return MappingResult{Grouped: grouped, FirstWords: firstWords}, nil
}

// LetterFrequency 所有字符(包括空格)的出现次数
func LetterFrequency(lines []string) (LettersResult, error) {
	letters := toolutil.FlatMap(toolutil.StreamOf(lines), textutil.Expand)
	self := func(s string) string { return s }

	freq, err := toolutil.Collect(letters, toolutil.GroupingBy(self, toolutil.Counting[string]()))
	if err != nil {
		return LettersResult{}, err
	}
	sorted, err := toolutil.Collect(letters, toolutil.GroupingBySorted(self, toolutil.Counting[string]()))
	if err != nil {
		return LettersResult{}, err
	}
	return LettersResult{Frequency: freq, Sorted: sorted, Total: int64(letters.Count())}, nil
}

// WordFrequency 转小写后按空白拆词计数，结果是一份独立的拷贝
func WordFrequency(lines []string) (map[string]int64, error) {
	words := toolutil.FlatMap(toolutil.Map(toolutil.StreamOf(lines), strings.ToLower), textutil.SplitWords)
	return toolutil.Collect(words,
		toolutil.CollectingAndThen(
			toolutil.GroupingBy(func(w string) string { return w }, toolutil.Counting[string]()),
			toolutil.CopyMap[string, int64]))
}

// byCountThenWord 次数相同按单词倒序，TopN 取出来后就是字母序
func byCountThenWord(a, b toolutil.Entry[string, int64]) bool {
	if a.Value != b.Value {
		return a.Value < b.Value
	}
	return a.Key > b.Key
}

// AnalyzeWords 词频、最高频单词、按次数级联分组以及出现次数最多的那一组
// 空输入时最大值不存在，返回 ErrNoSuchElement
func AnalyzeWords(lines []string, top int) (WordsResult, error) {
	freq, err := WordFrequency(lines)
	if err != nil {
		return WordsResult{}, err
	}

	mostFrequent, err := toolutil.MaxBy(toolutil.Entries(freq), toolutil.ComparingByValue[string, int64]())
	if err != nil {
		return WordsResult{}, fmt.Errorf("most frequent word: %w", err)
	}

	byCount, err := toolutil.Collect(toolutil.Entries(freq),
		toolutil.GroupingBy(toolutil.EntryValue[string, int64],
			toolutil.Mapping(toolutil.EntryKey[string, int64], toolutil.ToList[string]())))
	if err != nil {
		return WordsResult{}, err
	}

	mostSeen, err := toolutil.MaxBy(toolutil.Entries(byCount), toolutil.ComparingByKey[int64, []string]())
	if err != nil {
		return WordsResult{}, fmt.Errorf("most seen words: %w", err)
	}

	res := WordsResult{
		Frequency:    freq,
		MostFrequent: mostFrequent,
		ByCount:      byCount,
		MostSeen:     mostSeen,
	}
	if top > 0 {
		res.Top = heap.TopN(toolutil.Entries(freq).ToSlice(), top, byCountThenWord)
	}
	return res, nil
}

// 大整数乘法的朴素版本，给 Check 对照用
func naiveFactorial(n int64) *big.Int {
	r := big.NewInt(1)
	for i := int64(2); i <= n; i++ {
		r.Mul(r, big.NewInt(i))
	}
	return r
}
