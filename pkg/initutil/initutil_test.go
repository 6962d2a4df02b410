package initutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stream_tool/pkg/errorutil"
	"stream_tool/pkg/logutil"
)

func TestExtractIntConfig(t *testing.T) {
	conf := `
top=3;
top_extra=15;
bad=xx;
# top=should_be_ignored
`

	tests := []struct {
		name       string
		key        string
		defaultVal int
		want       int
	}{
		{"top present", "top", 0, 3},
		{"prefix key is distinct", "top_extra", 0, 15},
		{"missing key fallback", "nonexistent", 42, 42},
		{"invalid value fallback", "bad", 7, 7},
		{"commented-out key", "#top", 123, 123}, // 注释行不能匹配
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractIntConfig(conf, tt.key, tt.defaultVal)
			if got != tt.want {
				t.Errorf("key=%q expect=%d got=%d", tt.key, tt.want, got)
			}
		})
	}
}

func TestParseConfig(t *testing.T) {
	conf := `
# gostream 配置
log_level=debug;
log_file = /tmp/gostream.log
format=table
separator=" | "
top=5
`
	want := DefaultConfig()
	want.LogLevel = logutil.DEBUG
	want.LogFile = "/tmp/gostream.log"
	want.Format = "table"
	want.Separator = " | "
	want.Top = 5

	got := ParseConfig(conf, DefaultConfig())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"GOSTREAM_FORMAT":    "json",
		"GOSTREAM_LOG_LEVEL": "error",
		"GOSTREAM_TOP":       "2",
	}
	got := ApplyEnv(DefaultConfig(), func(k string) string { return env[k] })

	want := DefaultConfig()
	want.Format = "json"
	want.LogLevel = logutil.ERROR
	want.Top = 2
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigName)
	require.NoError(t, os.WriteFile(path, []byte("format=tree\nseparator=\"\\n\"\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.ConfigFile)
	assert.Equal(t, "tree", cfg.Format)
	assert.Equal(t, "\n", cfg.Separator)

	_, err = LoadConfig(filepath.Join(dir, "missing.ini"))
	require.Error(t, err)
	assert.Equal(t, errorutil.CodeConfigError, errorutil.ExitCodeFromError(err))
}
