package showcase

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stream_tool/internal/testutils"
	"stream_tool/pkg/runner"
	"stream_tool/pkg/toolutil"
)

func TestFactorialOf(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "1"},
		{1, "1"},
		{5, "120"},
		{20, "2432902008176640000"},
		{21, "51090942171709440000"}, // 超过 int64
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			r, err := FactorialOf(tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Value.String())
		})
	}

	_, err := FactorialOf(-1)
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestFactorialResult_String(t *testing.T) {
	r, err := FactorialOf(21)
	require.NoError(t, err)
	assert.Equal(t, "21! = 51,090,942,171,709,440,000", r.String())
}

func TestComposeOf(t *testing.T) {
	assert.Equal(t, ComposeResult{Input: 5, Output: 15}, ComposeOf(5))
	assert.Equal(t, 3, ComposeOf(-1).Output)
}

func TestAllMerges(t *testing.T) {
	r, err := AllMerges(Verses, "\n")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"Y": Verses[0], "B": Verses[2]}, r.First)
	assert.Equal(t, map[string]string{"Y": Verses[1], "B": Verses[2]}, r.Last)
	assert.Equal(t, Verses[0]+"\n"+Verses[1], r.Join["Y"])
	assert.Len(t, r.Join, 2)
	assert.True(t, r.DuplicateKey)
	assert.Contains(t, r.NoneError, "duplicate key Y")
}

func TestVersesByFirstLetter_Errors(t *testing.T) {
	_, err := VersesByFirstLetter(Verses, nil)
	assert.ErrorIs(t, err, toolutil.ErrDuplicateKey)

	// 空行取不到首字母，不能被静默跳过
	_, err = VersesByFirstLetter([]string{"Be", ""}, toolutil.KeepFirst[string]())
	assert.ErrorIs(t, err, toolutil.ErrEmptyInput)

	m, err := VersesByFirstLetter(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestMergeByName(t *testing.T) {
	for _, name := range MergeNames {
		_, err := MergeByName(name, "|")
		assert.NoError(t, err, name)
	}
	merge, err := MergeByName("none", "|")
	require.NoError(t, err)
	assert.Nil(t, merge)

	_, err = MergeByName("longest", "|")
	assert.ErrorIs(t, err, ErrUnknownMerge)
}

func TestWordsByLength(t *testing.T) {
	r, err := WordsByLength(Words)
	require.NoError(t, err)

	want := map[int][]string{
		4:  {"this", "that"},
		5:  {"about", "those", "these"},
		6:  {"jamica"},
		10: {"apostrophe"},
	}
	if diff := cmp.Diff(want, r.ViaGroupingBy); diff != "" {
		t.Errorf("Mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, r.ViaGroupingBy, r.ViaToMap)
	assert.Equal(t, "4: this, that\n5: about, those, these\n6: jamica\n10: apostrophe\n", r.String())
}

func TestCountByFirstLetter(t *testing.T) {
	c, err := CountByFirstLetter(Words)
	require.NoError(t, err)
	assert.Equal(t, Counts{"a": 2, "t": 4, "j": 1}, c)
	assert.Equal(t, "a => 2\nj => 1\nt => 4\n", c.String())
}

func TestGroupVerses(t *testing.T) {
	r, err := GroupVerses(Verses)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"Y": {Verses[0], Verses[1]}, "B": {Verses[2]}}, r.Grouped)
	assert.Equal(t, map[string][]string{"Y": {"Your"}, "B": {"Be"}}, r.FirstWords)
}

func TestLetterFrequency(t *testing.T) {
	r, err := LetterFrequency([]string{"aab", " a"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"a": 3, "b": 1, " ": 1}, r.Frequency)
	assert.Equal(t, int64(5), r.Total)
	assert.Equal(t, []toolutil.Entry[string, int64]{{Key: " ", Value: 1}, {Key: "a", Value: 3}, {Key: "b", Value: 1}}, r.Sorted)
}

func TestAnalyzeWords(t *testing.T) {
	r, err := AnalyzeWords(WordVerses, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(3), r.Frequency["your"])
	assert.Equal(t, int64(3), r.Frequency["and"])
	assert.Equal(t, int64(3), r.Frequency["is"])
	assert.Equal(t, int64(2), r.Frequency["you"])
	assert.Equal(t, int64(3), r.MostFrequent.Value)
	assert.Contains(t, []string{"your", "and", "is"}, r.MostFrequent.Key)

	assert.Equal(t, int64(3), r.MostSeen.Key)
	assert.ElementsMatch(t, []string{"your", "and", "is"}, r.MostSeen.Value)
	assert.ElementsMatch(t, []string{"you", "of"}, r.ByCount[2])

	// 并列按字母序
	assert.Equal(t, []toolutil.Entry[string, int64]{{Key: "and", Value: 3}, {Key: "is", Value: 3}}, r.Top)
}

func TestAnalyzeWords_Empty(t *testing.T) {
	_, err := AnalyzeWords([]string{}, 0)
	assert.ErrorIs(t, err, toolutil.ErrNoSuchElement)
}

func TestRoutines_DefaultDataPasses(t *testing.T) {
	routines := Routines()
	names := lo.Map(routines, func(r runner.Routine, _ int) string { return r.Name })
	assert.Equal(t, []string{"reduce", "compose", "tomap", "groupby", "counting", "mapping", "letters", "words"}, names)

	rep := runner.RunAll(routines, runner.Options{Top: 3})
	for _, o := range rep.Outcomes {
		assert.Equal(t, runner.StatusPass, o.Status, "%s: %s", o.Routine, o.Error)
	}
	assert.NoError(t, rep.Err())
}

func TestRoutines_SingleMerge(t *testing.T) {
	reg, err := runner.NewRegistry(Routines()...)
	require.NoError(t, err)
	rt, ok := reg.Get("tomap")
	require.True(t, ok)

	tests := []struct {
		merge  string
		status runner.Status
	}{
		{"first", runner.StatusPass},
		{"last", runner.StatusPass},
		{"join", runner.StatusPass},
		{"none", runner.StatusFault}, // 重复键
		{"bogus", runner.StatusFault},
	}
	for _, tt := range tests {
		t.Run(tt.merge, func(t *testing.T) {
			out := runner.Run(rt, runner.Options{Merge: tt.merge, Separator: " | "})
			assert.Equal(t, tt.status, out.Status, out.Error)
		})
	}

	out := runner.Run(rt, runner.Options{Merge: "none"})
	assert.ErrorIs(t, out.Err, toolutil.ErrDuplicateKey)
}

func TestRoutines_InputFile(t *testing.T) {
	root, err := testutils.FindGoModRoot()
	require.NoError(t, err)
	lines, err := toolutil.ReadFileToLines(filepath.Join(root, "testdata", "verses.txt"))
	require.NoError(t, err)
	require.NotEmpty(t, lines)

	rep := runner.RunAll(Routines(), runner.Options{Input: lines, Top: 2})
	for _, o := range rep.Outcomes {
		assert.Equal(t, runner.StatusPass, o.Status, "%s: %s", o.Routine, o.Error)
	}
}

func TestRoutines_EmptyLineFaults(t *testing.T) {
	reg, err := runner.NewRegistry(Routines()...)
	require.NoError(t, err)

	for _, name := range []string{"tomap", "counting", "mapping"} {
		rt, ok := reg.Get(name)
		require.True(t, ok)
		out := runner.Run(rt, runner.Options{Input: []string{"Be", ""}})
		assert.Equal(t, runner.StatusFault, out.Status, name)
		assert.ErrorIs(t, out.Err, toolutil.ErrEmptyInput, name)
	}
}

func TestRoutines_EmptyInput(t *testing.T) {
	reg, err := runner.NewRegistry(Routines()...)
	require.NoError(t, err)
	empty := runner.Options{Input: []string{}}

	// 空输入得到空映射，不能退回内置数据
	for _, name := range []string{"tomap", "groupby", "counting", "mapping", "letters"} {
		rt, ok := reg.Get(name)
		require.True(t, ok)
		out := runner.Run(rt, empty)
		assert.Equal(t, runner.StatusPass, out.Status, "%s: %s", name, out.Error)
	}

	rt, _ := reg.Get("groupby")
	out := runner.Run(rt, empty)
	assert.Empty(t, out.Result.(GroupByResult).ViaGroupingBy)

	rt, _ = reg.Get("words")
	out = runner.Run(rt, empty)
	assert.Equal(t, runner.StatusFault, out.Status)
	assert.ErrorIs(t, out.Err, toolutil.ErrNoSuchElement)
}

func TestRoutines_ExplicitZeroN(t *testing.T) {
	res, err := runReduce(runner.Options{N: 0, HasN: true})
	require.NoError(t, err)
	assert.Equal(t, "0! = 1", res.(FactorialResult).String())

	res, err = runCompose(runner.Options{HasN: true})
	require.NoError(t, err)
	assert.Equal(t, ComposeResult{Input: 0, Output: 3}, res)

	res, err = runCompose(runner.Options{N: 9})
	require.NoError(t, err)
	assert.Equal(t, DefaultComposeInput, res.(ComposeResult).Input, "没有 HasN 时用默认值")
}

func TestRoutines_CheckDetectsWrongResult(t *testing.T) {
	err := checkCompose(runner.Options{}, ComposeResult{Input: 5, Output: 16})
	var ae *runner.AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 15, ae.Expected)

	err = checkCounting(runner.Options{}, Counts{"a": 1})
	assert.ErrorAs(t, err, &ae)

	assert.Error(t, checkReduce(runner.Options{}, "not a factorial"))
}
