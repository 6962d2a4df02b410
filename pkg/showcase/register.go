package showcase

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/samber/lo"

	"stream_tool/pkg/runner"
	"stream_tool/pkg/toolutil"
	"stream_tool/pkg/toolutil/textutil"
)

// Routines 全部例程，cmd 注册到 runner.Registry
func Routines() []runner.Routine {
	return []runner.Routine{
		{
			Name:  "reduce",
			Short: "用大整数折叠计算 n! (默认 21)",
			Run:   runReduce,
			Check: checkReduce,
		},
		{
			Name:  "compose",
			Short: "组合 x+1, x*2, x+3 后作用在输入上 (默认 5)",
			Run:   runCompose,
			Check: checkCompose,
		},
		{
			Name:  "tomap",
			Short: "诗句按首字母建表，重复键按 first/last/join/none 合并",
			Run:   runToMap,
			Check: checkToMap,
		},
		{
			Name:  "groupby",
			Short: "单词按长度分组，ToMap 合并和 GroupingBy 两种做法结果一致",
			Run:   runGroupBy,
			Check: checkGroupBy,
		},
		{
			Name:  "counting",
			Short: "单词按首字母计数",
			Run:   runCounting,
			Check: checkCounting,
		},
		{
			Name:  "mapping",
			Short: "诗句按首字母分组，以及每组诗句的首词集合",
			Run:   runMapping,
			Check: checkMapping,
		},
		{
			Name:  "letters",
			Short: "统计诗句中每个字符的出现次数",
			Run:   runLetters,
			Check: checkLetters,
		},
		{
			Name:  "words",
			Short: "词频、最高频单词，以及按次数级联分组后出现次数最多的单词",
			Run:   runWords,
			Check: checkWords,
		},
	}
}

func resultAs[T any](result any) (T, error) {
	r, ok := result.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("unexpected result type %T, want %T", result, zero)
	}
	return r, nil
}

func separator(opts runner.Options) string {
	if opts.Separator == "" {
		return DefaultSeparator
	}
	return opts.Separator
}

// firstRune 对照实现里用的首字符，空串返回 ok=false
func firstRune(s string) (string, bool) {
	for _, r := range s {
		return string(r), true
	}
	return "", false
}

func runReduce(opts runner.Options) (any, error) {
	n := int64(DefaultFactorialN)
	if opts.HasN {
		n = opts.N
	}
	return FactorialOf(n)
}

func checkReduce(_ runner.Options, result any) error {
	r, err := resultAs[FactorialResult](result)
	if err != nil {
		return err
	}
	if r.N == DefaultFactorialN {
		if err := runner.AssertEqual("21!", "51090942171709440000", r.Value.String()); err != nil {
			return err
		}
	}
	return runner.AssertEqual(fmt.Sprintf("%d!", r.N), naiveFactorial(r.N), r.Value)
}

func runCompose(opts runner.Options) (any, error) {
	x := DefaultComposeInput
	if opts.HasN {
		x = int(opts.N)
	}
	return ComposeOf(x), nil
}

func checkCompose(_ runner.Options, result any) error {
	r, err := resultAs[ComposeResult](result)
	if err != nil {
		return err
	}
	if r.Input == DefaultComposeInput {
		if err := runner.AssertEqual("compose(5)", 15, r.Output); err != nil {
			return err
		}
	}
	return runner.AssertEqual(fmt.Sprintf("compose(%d)", r.Input), (r.Input+1)*2+3, r.Output)
}

func runToMap(opts runner.Options) (any, error) {
	verses := pick(opts.Input, Verses)
	if opts.Merge == "" {
		return AllMerges(verses, separator(opts))
	}
	merge, err := MergeByName(opts.Merge, separator(opts))
	if err != nil {
		return nil, err
	}
	m, err := VersesByFirstLetter(verses, merge)
	if err != nil {
		return nil, err
	}
	return VerseMap(m), nil
}

// naiveToMap 朴素循环版本，ok=false 表示有重复键
func naiveToMap(verses []string, strategy, sep string) (map[string]string, bool) {
	m := make(map[string]string)
	dup := false
	for _, v := range verses {
		k, _ := firstRune(v)
		old, exists := m[k]
		if !exists {
			m[k] = v
			continue
		}
		dup = true
		switch strategy {
		case "last":
			m[k] = v
		case "join":
			m[k] = old + sep + v
		}
	}
	return m, !dup
}

func checkToMap(opts runner.Options, result any) error {
	verses := pick(opts.Input, Verses)
	sep := separator(opts)

	if opts.Merge != "" {
		r, err := resultAs[VerseMap](result)
		if err != nil {
			return err
		}
		want, _ := naiveToMap(verses, opts.Merge, sep)
		return runner.AssertEqual("verses merged by "+opts.Merge, want, map[string]string(r))
	}

	r, err := resultAs[ToMapResult](result)
	if err != nil {
		return err
	}
	for _, c := range []struct {
		strategy string
		got      map[string]string
	}{{"first", r.First}, {"last", r.Last}, {"join", r.Join}} {
		want, _ := naiveToMap(verses, c.strategy, sep)
		if err := runner.AssertEqual("verses merged by "+c.strategy, want, c.got); err != nil {
			return err
		}
	}
	_, unique := naiveToMap(verses, "first", sep)
	if err := runner.AssertEqual("duplicate key without merge", !unique, r.DuplicateKey); err != nil {
		return err
	}

	if opts.Input == nil {
		return runner.AssertEqual("default verses joined", map[string]string{
			"Y": Verses[0] + sep + Verses[1],
			"B": Verses[2],
		}, r.Join)
	}
	return nil
}

func runGroupBy(opts runner.Options) (any, error) {
	return WordsByLength(pick(opts.Input, Words))
}

func checkGroupBy(opts runner.Options, result any) error {
	r, err := resultAs[GroupByResult](result)
	if err != nil {
		return err
	}
	if err := runner.AssertEqual("toMap vs groupingBy", r.ViaGroupingBy, r.ViaToMap); err != nil {
		return err
	}
	want := make(map[int][]string)
	for _, w := range pick(opts.Input, Words) {
		want[textutil.Length(w)] = append(want[textutil.Length(w)], w)
	}
	if err := runner.AssertEqual("words by length", want, r.ViaGroupingBy); err != nil {
		return err
	}
	if opts.Input == nil {
		return runner.AssertEqual("default words by length", map[int][]string{
			4:  {"this", "that"},
			5:  {"about", "those", "these"},
			6:  {"jamica"},
			10: {"apostrophe"},
		}, r.ViaGroupingBy)
	}
	return nil
}

func runCounting(opts runner.Options) (any, error) {
	return CountByFirstLetter(pick(opts.Input, Words))
}

func checkCounting(opts runner.Options, result any) error {
	r, err := resultAs[Counts](result)
	if err != nil {
		return err
	}
	words := pick(opts.Input, Words)
	want := make(map[string]int64)
	for _, w := range words {
		k, _ := firstRune(w)
		want[k]++
	}
	if err := runner.AssertEqual("counts by first letter", want, map[string]int64(r)); err != nil {
		return err
	}
	if err := runner.AssertEqual("sum of counts", int64(len(words)), lo.Sum(lo.Values(map[string]int64(r)))); err != nil {
		return err
	}
	if opts.Input == nil {
		return runner.AssertEqual("default counts", map[string]int64{"a": 2, "t": 4, "j": 1}, map[string]int64(r))
	}
	return nil
}

func runMapping(opts runner.Options) (any, error) {
	return GroupVerses(pick(opts.Input, Verses))
}

func checkMapping(opts runner.Options, result any) error {
	r, err := resultAs[MappingResult](result)
	if err != nil {
		return err
	}
	grouped := make(map[string][]string)
	firstWords := make(map[string][]string)
	for _, v := range pick(opts.Input, Verses) {
		k, _ := firstRune(v)
		grouped[k] = append(grouped[k], v)
		w := textutil.FirstToken(v)
		if !slices.Contains(firstWords[k], w) {
			firstWords[k] = append(firstWords[k], w)
		}
	}
	for _, ws := range firstWords {
		slices.Sort(ws)
	}
	if err := runner.AssertEqual("verses grouped by first letter", grouped, r.Grouped); err != nil {
		return err
	}
	if err := runner.AssertEqual("first words by first letter", firstWords, r.FirstWords); err != nil {
		return err
	}
	if opts.Input == nil {
		return runner.AssertEqual("default first words",
			map[string][]string{"Y": {"Your"}, "B": {"Be"}}, r.FirstWords)
	}
	return nil
}

func runLetters(opts runner.Options) (any, error) {
	return LetterFrequency(pick(opts.Input, Verses))
}

func checkLetters(opts runner.Options, result any) error {
	r, err := resultAs[LettersResult](result)
	if err != nil {
		return err
	}
	total := lo.SumBy(pick(opts.Input, Verses), textutil.Length)
	if err := runner.AssertEqual("total characters", int64(total), r.Total); err != nil {
		return err
	}
	if err := runner.AssertEqual("sum of letter counts", r.Total, lo.Sum(lo.Values(r.Frequency))); err != nil {
		return err
	}
	// 有序分组和普通分组必须是同一份数据
	sortedKeys := lo.Map(r.Sorted, func(e toolutil.Entry[string, int64], _ int) string { return e.Key })
	if err := runner.AssertEqual("sorted letters", toolutil.SortedKeys(r.Frequency), sortedKeys); err != nil {
		return err
	}
	for _, e := range r.Sorted {
		if err := runner.AssertEqual(fmt.Sprintf("count of %q", e.Key), r.Frequency[e.Key], e.Value); err != nil {
			return err
		}
	}
	return nil
}

func runWords(opts runner.Options) (any, error) {
	return AnalyzeWords(pick(opts.Input, WordVerses), opts.Top)
}

func checkWords(opts runner.Options, result any) error {
	r, err := resultAs[WordsResult](result)
	if err != nil {
		return err
	}

	freq := make(map[string]int64)
	for _, line := range pick(opts.Input, WordVerses) {
		for _, w := range textutil.SplitWords(strings.ToLower(line)) {
			freq[w]++
		}
	}
	if err := runner.AssertEqual("word frequency", freq, r.Frequency); err != nil {
		return err
	}

	maxCount := lo.Max(lo.Values(freq))
	mostSeen := lo.Keys(lo.PickBy(freq, func(_ string, n int64) bool { return n == maxCount }))

	// 并列时取哪一个不确定，只要求次数是最大值
	if err := runner.AssertEqual("most frequent count", maxCount, r.MostFrequent.Value); err != nil {
		return err
	}
	if err := runner.AssertEqual("most frequent word count", maxCount, freq[r.MostFrequent.Key]); err != nil {
		return err
	}
	if err := runner.AssertEqual("most seen count", maxCount, r.MostSeen.Key); err != nil {
		return err
	}
	if err := runner.AssertElementsMatch("most seen words", mostSeen, r.MostSeen.Value); err != nil {
		return err
	}

	// 级联分组里每组单词的顺序来自 map 遍历，比较前排序
	byCount := make(map[int64][]string)
	for w, n := range freq {
		byCount[n] = append(byCount[n], w)
	}
	normalize := func(m map[int64][]string) map[int64][]string {
		out := maps.Clone(m)
		for k, v := range out {
			out[k] = slices.Sorted(slices.Values(v))
		}
		return out
	}
	if err := runner.AssertEqual("words by count", normalize(byCount), normalize(r.ByCount)); err != nil {
		return err
	}

	if opts.Top > 0 {
		if err := runner.AssertEqual("top size", min(opts.Top, len(freq)), len(r.Top)); err != nil {
			return err
		}
		for i := 1; i < len(r.Top); i++ {
			if err := runner.AssertTrue("top order", r.Top[i-1].Value >= r.Top[i].Value,
				r.Top[i-1], r.Top[i]); err != nil {
				return err
			}
		}
	}

	if opts.Input == nil {
		if err := runner.AssertEqual("default most seen count", int64(3), r.MostSeen.Key); err != nil {
			return err
		}
		return runner.AssertElementsMatch("default most seen words", []string{"and", "is", "your"}, r.MostSeen.Value)
	}
	return nil
}
