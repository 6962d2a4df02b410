package logutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_FlagValue(t *testing.T) {
	var lvl Level = INFO
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.VarP(&lvl, "log-level", "e", "日志级别")

	require.NoError(t, fs.Parse([]string{"-e", "debug"}))
	assert.Equal(t, DEBUG, lvl)
	assert.Equal(t, "DEBUG", lvl.String())
	assert.Equal(t, "level", lvl.Type())

	assert.Error(t, fs.Parse([]string{"--log-level", "verbose"}))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, ERROR, ParseLevel(" error ", INFO))
	assert.Equal(t, WARN, ParseLevel("nope", WARN))
}

func TestLogMessage_Levels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLogLevel(WARN)
	defer SetLogLevel(INFO)

	Debug("hidden %d", 1)
	Info("hidden %d", 2)
	Warn("shown %v", map[string]int{"b": 2, "a": 1})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `[WARN] shown {"a":1,"b":2}`)
	assert.Contains(t, out, "logutil_test.go:")
}

func TestError_IncludesStack(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLogLevel(DEBUG)
	defer SetLogLevel(INFO)

	Error("failed %s", "100%")
	out := buf.String()
	assert.Contains(t, out, "[ERR] failed 100%")
	assert.True(t, strings.Contains(out, "调用堆栈"))
}

type sample struct {
	Name  string
	Inner struct{ N int }
}

func TestPrintStruct(t *testing.T) {
	s := sample{Name: "x"}
	s.Inner.N = 3
	assert.Equal(t, "Name: \"x\"\nInner:\n    N: 3\n", PrintStruct(s, false))
}
