package showcase

import (
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/samber/lo"

	"stream_tool/pkg/toolutil"
)

func TestProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("toMap with append equals groupingBy", prop.ForAll(
		func(words []string) bool {
			r, err := WordsByLength(words)
			return err == nil && reflect.DeepEqual(r.ViaToMap, r.ViaGroupingBy)
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("letter counts sum to total characters", prop.ForAll(
		func(lines []string) bool {
			r, err := LetterFrequency(lines)
			if err != nil {
				return false
			}
			total := int64(lo.SumBy(lines, func(s string) int { return len([]rune(s)) }))
			return r.Total == total && lo.Sum(lo.Values(r.Frequency)) == total
		},
		gen.SliceOf(gen.AnyString()),
	))

	properties.Property("keep first / keep last / join follow encounter order", prop.ForAll(
		func(verses []string) bool {
			first, err1 := VersesByFirstLetter(verses, toolutil.KeepFirst[string]())
			last, err2 := VersesByFirstLetter(verses, toolutil.KeepLast[string]())
			joined, err3 := VersesByFirstLetter(verses, toolutil.JoinWith("|"))
			if err1 != nil || err2 != nil || err3 != nil {
				return false
			}
			wantFirst, _ := naiveToMap(verses, "first", "|")
			wantLast, _ := naiveToMap(verses, "last", "|")
			wantJoin, _ := naiveToMap(verses, "join", "|")
			return reflect.DeepEqual(wantFirst, first) &&
				reflect.DeepEqual(wantLast, last) &&
				reflect.DeepEqual(wantJoin, joined)
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.Property("no merge fails exactly when a first letter repeats", prop.ForAll(
		func(verses []string) bool {
			_, err := VersesByFirstLetter(verses, nil)
			letters := lo.Map(verses, func(v string, _ int) string { return v[:1] })
			hasDup := len(lo.Uniq(letters)) != len(letters)
			return (err != nil) == hasDup
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.Property("most seen words all share the maximal count", prop.ForAll(
		func(lines []string) bool {
			r, err := AnalyzeWords(lines, 0)
			if err != nil {
				return false
			}
			maxCount := lo.Max(lo.Values(r.Frequency))
			return r.MostSeen.Key == maxCount && lo.EveryBy(r.MostSeen.Value, func(w string) bool {
				return r.Frequency[w] == maxCount
			})
		},
		gen.SliceOfN(3, gen.Identifier()).Map(func(ws []string) []string {
			return []string{strings.Join(ws, " ")}
		}),
	))

	properties.TestingRun(t)
}
