package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// FindGoModRoot 从当前工作目录往上找 go.mod 所在的目录
// go test 会自动进入包目录，测试数据要按项目根目录定位
func FindGoModRoot() (string, error) {
	curPath, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("获取当前工作目录失败: %w", err)
	}
	dir := filepath.Clean(filepath.FromSlash(curPath))
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("从 %s 往上没有找到 go.mod", curPath)
		}
		dir = parent
	}
}

// WriteTempFile 在测试临时目录下写一个文件，返回完整路径
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// RequireJSONPath 断言 JSON 文本中 path 处的值(按字符串比较)
func RequireJSONPath(t *testing.T, raw []byte, path string, want string) {
	t.Helper()
	require.True(t, gjson.ValidBytes(raw), "不是有效的 JSON: %s", raw)
	res := gjson.GetBytes(raw, path)
	require.True(t, res.Exists(), "字段 %q 不存在: %s", path, raw)
	require.Equal(t, want, res.String(), "字段 %q", path)
}
