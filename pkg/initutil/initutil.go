package initutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"stream_tool/pkg/errorutil"
	"stream_tool/pkg/logutil"
	"stream_tool/pkg/toolutil"
)

const (
	DefaultConfigName = "gostream.ini"
	EnvPrefix         = "GOSTREAM_"
)

type Config struct {
	ConfigFile string // 实际加载的配置文件，没有则为空
	LogFile    string // stdout / stderr / 文件路径
	LogLevel   logutil.Level
	Format     string // 默认输出格式 txt/json/sh/tree/table/dot
	JSONFormat string // mul / one
	Separator  string // join 合并时的分隔符
	Top        int    // words 例程默认取前几个
	InputFile  string // 替换内置诗句的输入文件
}

func DefaultConfig() Config {
	return Config{
		LogFile:    "stderr",
		LogLevel:   logutil.WARN,
		Format:     "txt",
		JSONFormat: "mul",
		Separator:  "\n",
	}
}

var (
	globalConfig = DefaultConfig()
	once         sync.Once
	initErr      error
)

// 配置文件默认放在可执行文件旁边
func defaultConfigPath() string {
	execPath, err := os.Executable()
	if err != nil {
		logutil.Warn("无法获取执行路径: %s", err)
		return ""
	}
	// 统一转换路径格式（适用于 Windows 和 Unix）
	return filepath.Join(filepath.Dir(filepath.FromSlash(execPath)), DefaultConfigName)
}

// extractValue 从 key=value; 格式的文本中取值，# 开头的行是注释
func extractValue(conf string, key string) (string, bool) {
	re := regexp.MustCompile(`(?m)^\s*` + regexp.QuoteMeta(key) + `\s*=([^;\r\n]*)`)
	m := re.FindStringSubmatch(conf)
	if len(m) < 2 {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

func extractIntConfig(conf string, key string, defaultVal int) int {
	val, ok := extractValue(conf, key)
	if !ok {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		logutil.Warn("配置项 %s=%s 不是整数，使用默认值 %d", key, val, defaultVal)
		return defaultVal
	}
	return n
}

// unquote 分隔符这类值允许写成 "\n" 的形式
func unquote(val string) string {
	if len(val) >= 2 && val[0] == '"' && val[len(val)-1] == '"' {
		if s, err := strconv.Unquote(val); err == nil {
			return s
		}
	}
	return val
}

// ParseConfig 在 base 的基础上用配置文本覆盖
func ParseConfig(conf string, base Config) Config {
	cfg := base
	if v, ok := extractValue(conf, "log_file"); ok && v != "" {
		cfg.LogFile = v
	}
	if v, ok := extractValue(conf, "log_level"); ok {
		cfg.LogLevel = logutil.ParseLevel(v, cfg.LogLevel)
	}
	if v, ok := extractValue(conf, "format"); ok && v != "" {
		cfg.Format = v
	}
	if v, ok := extractValue(conf, "json_format"); ok && v != "" {
		cfg.JSONFormat = v
	}
	if v, ok := extractValue(conf, "separator"); ok {
		cfg.Separator = unquote(v)
	}
	if v, ok := extractValue(conf, "input"); ok {
		cfg.InputFile = v
	}
	cfg.Top = extractIntConfig(conf, "top", cfg.Top)
	return cfg
}

// ApplyEnv 环境变量 GOSTREAM_* 覆盖配置文件
func ApplyEnv(cfg Config, getenv func(string) string) Config {
	lines := make([]string, 0, 7)
	for _, key := range []string{"log_file", "log_level", "format", "json_format", "separator", "input", "top"} {
		if v := getenv(EnvPrefix + strings.ToUpper(key)); v != "" {
			lines = append(lines, key+"="+v)
		}
	}
	if len(lines) == 0 {
		return cfg
	}
	return ParseConfig(strings.Join(lines, "\n"), cfg)
}

// LoadConfig 读取配置文件，path 为空时找可执行文件旁边的 gostream.ini
// 默认位置没有文件不算错误，显式指定的文件不存在要报错
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}
	if path != "" {
		lines, err := toolutil.ReadFileToLines(path)
		switch {
		case err == nil:
			cfg = ParseConfig(strings.Join(lines, "\n"), cfg)
			cfg.ConfigFile = path
		case explicit || !errors.Is(err, os.ErrNotExist):
			return cfg, errorutil.NewExitErrorWithMessage(errorutil.CodeConfigError,
				fmt.Sprintf("无法加载配置文件 %s", path), err)
		}
	}
	return ApplyEnv(cfg, os.Getenv), nil
}

// InitSystem 加载配置并初始化日志，文件和环境变量只读一次
// override 用来让命令行参数覆盖配置，每次调用都会重新作用在一份拷贝上
func InitSystem(path string, override func(*Config)) (Config, error) {
	first := false
	once.Do(func() {
		first = true
		globalConfig, initErr = LoadConfig(path)
	})
	if initErr != nil {
		return Config{}, initErr
	}
	cfg := globalConfig
	if override != nil {
		override(&cfg)
	}
	if first {
		logutil.InitLogger(cfg.LogFile, cfg.LogLevel)
		// 漂亮打印完整的结构体
		logutil.Debug("globalConfig struct:\n%v", cfg)
	}
	return cfg, nil
}

// GetConfig 获取全局配置
func GetConfig() Config {
	return globalConfig
}
