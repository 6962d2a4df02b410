package qqjson

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const groupsJSON = `{"10":["apostrophe"],"4":["this","that"],"5":["about","those","these"]}`

func TestJSONFormat_Set(t *testing.T) {
	var f JSONFormat
	require.NoError(t, f.Set("one"))
	assert.Equal(t, JSONFormatOne, f)
	assert.Error(t, f.Set("three"))
	assert.Equal(t, []string{"mul", "one"}, f.Values())
}

func TestMarshal(t *testing.T) {
	v := map[string]int{"b": 2, "a": 1}
	one, err := Marshal(v, JSONFormatOne)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2}`, string(one))

	mul, err := Marshal(v, JSONFormatMul)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": 1,\n    \"b\": 2\n}\n", string(mul))
}

func TestQuery(t *testing.T) {
	res, err := Query([]byte(groupsJSON), "5.1")
	require.NoError(t, err)
	assert.Equal(t, "those", res.String())

	_, err = Query([]byte(groupsJSON), "7")
	assert.Error(t, err)

	_, err = Query([]byte("{bad"), "")
	assert.Error(t, err)
}

func TestSetPath(t *testing.T) {
	out, err := SetPath(nil, EscapePath("meta", "a.b"), "x")
	require.NoError(t, err)
	assert.Equal(t, "x", gjson.GetBytes(out, `meta.a\.b`).String())

	out, err = SetRawPath(out, "list", []byte(`[1,2]`))
	require.NoError(t, err)
	assert.Equal(t, int64(2), gjson.GetBytes(out, "list.#").Int())
}

func TestFormatters(t *testing.T) {
	res := gjson.Parse(groupsJSON)

	tests := []struct {
		name   string
		format string
		opts   Options
		want   string
	}{
		{
			name:   "bash assoc keeps document order",
			format: "sh",
			opts:   Options{VarName: "G"},
			want: "unset -v G ; declare -A G=(\n" +
				"    [$'10']=$'[\"apostrophe\"]'\n" +
				"    [$'4']=$'[\"this\",\"that\"]'\n" +
				"    [$'5']=$'[\"about\",\"those\",\"these\"]'\n" +
				")\n",
		},
		{
			name:   "type",
			format: "type",
			want:   "object\n",
		},
		{
			name:   "tree sorts numeric keys",
			format: "tree",
			opts:   Options{Name: "byLength"},
			want: "'-- byLength\n" +
				"    |-- 4\n" +
				"    |   |-- this\n" +
				"    |   '-- that\n" +
				"    |-- 5\n" +
				"    |   |-- about\n" +
				"    |   |-- those\n" +
				"    |   '-- these\n" +
				"    '-- 10\n" +
				"        '-- apostrophe\n",
		},
		{
			name:   "table",
			format: "table",
			want: "+-----+---------------------+\n" +
				"| KEY | VALUE               |\n" +
				"+-----+---------------------+\n" +
				"| 4   | this, that          |\n" +
				"| 5   | about, those, these |\n" +
				"| 10  | apostrophe          |\n" +
				"+-----+---------------------+\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := GetFormatter(tt.format)
			require.True(t, ok)
			var buf bytes.Buffer
			require.NoError(t, f.Format(&buf, res, tt.opts))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestTextFormatter_String(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TextFormatter{}.Format(&buf, gjson.Parse(`"hello"`), Options{}))
	assert.Equal(t, "hello\n", buf.String())
}

func TestTableFormatter_Scalar(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, TableFormatter{}.Format(&buf, gjson.Parse(`12`), Options{}))
}

func TestToGroups(t *testing.T) {
	groups, err := ToGroups(gjson.Parse(`{"a":1,"t":["this","that"]}`))
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "a", groups[0].Key)
	assert.Equal(t, []string{"1"}, groups[0].Members)
	assert.Equal(t, []string{"this", "that"}, groups[1].Members)

	_, err = ToGroups(gjson.Parse(`[1,2]`))
	assert.Error(t, err)
}

func TestDotFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DotFormatter{}.Format(&buf, gjson.Parse(`{"t":["this"]}`), Options{Name: "first"}))
	assert.Contains(t, buf.String(), `"k:t"`)
	assert.Contains(t, buf.String(), `"m:this"`)
}

func TestJsonCmd_Read(t *testing.T) {
	cmd := JsonCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(groupsJSON))
	cmd.SetArgs([]string{"-m", "r", "-t", "sh", "-v", "w", "-P", "4"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "unset -v w ; declare -a w=($'this' $'that')\n", out.String())
}

func TestJsonCmd_WriteFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "report.json")
	cmd := JsonCmd()
	cmd.SetArgs([]string{"-m", "w", "-k", "file", "-i", file, "-F", "one", "-P", "meta", "host", "-s", "build01"})
	require.NoError(t, cmd.Execute())

	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "build01", gjson.GetBytes(raw, "meta.host").String())
}
