package toolutil

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/exp/constraints"
)

const ProjectPrefix = "stream_tool/"

func TrimToProjectPath(file string) string {
	// 统一分隔符，确保在不同操作系统下都表现一致
	path := filepath.ToSlash(file)

	// 查找前缀位置
	if idx := strings.Index(path, ProjectPrefix); idx >= 0 {
		return path[idx+len(ProjectPrefix):]
	}
	return path
}

// 读取文件并返回按行拆分的字符串列表，适用于所有操作系统
func ReadFileToLines(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("无法打开文件 %s: %w", filePath, err)
	}

	// 使用 defer + 匿名函数捕获 file.Close() 错误
	var closeErr error
	defer func() {
		if cerr := file.Close(); cerr != nil {
			closeErr = fmt.Errorf("关闭文件 %s 失败: %w", filePath, cerr)
		}
	}()

	var lines []string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		// 自动处理不同操作系统的换行符
		lines = append(lines, scanner.Text())
	}

	readErr := scanner.Err()
	if readErr != nil {
		readErr = fmt.Errorf("读取文件 %s 出错: %w", filePath, readErr)
	}

	if readErr != nil || closeErr != nil {
		return lines, errors.Join(readErr, closeErr)
	}

	return lines, nil
}

// 把任意对象转换成JSON格式(紧凑)
func ToJSON(obj any) string {
	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal object: %s"}`, err)
	}
	return string(data)
}

// SortedKeys 将 map 的 key 排序后返回
func SortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
