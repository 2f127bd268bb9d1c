package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server     ServerConfig     `toml:"server"`
	Data       DataConfig       `toml:"data"`
	Generation GenerationConfig `toml:"generation"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置，相对路径以可执行文件所在目录为基准
type DataConfig struct {
	DataDir         string `toml:"data_dir"`
	DictionariesDir string `toml:"dictionaries_dir"`
	ThemesDir       string `toml:"themes_dir"`
}

// GenerationConfig 短语生成预算
type GenerationConfig struct {
	MaxWords    int   `toml:"max_words"`
	MaxPhrases  int   `toml:"max_phrases"`
	MaxAttempts int   `toml:"max_attempts"`
	Seed        int64 `toml:"seed"` // 非 0 时使用固定种子（调试用）
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    5006,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir:         "data",
			DictionariesDir: "dictionaries",
			ThemesDir:       "themes",
		},
		Generation: GenerationConfig{
			MaxWords:    6,
			MaxPhrases:  50,
			MaxAttempts: 500,
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

func exeDirOrDot() string {
	dir, err := GetExeDir()
	if err != nil || dir == "" {
		return "."
	}
	return dir
}

// LoadConfigWithInfo 从可执行文件同目录的 config.toml 加载配置并返回元信息
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	return LoadConfigFile(filepath.Join(exeDirOrDot(), "config.toml"))
}

// LoadConfigFile 从指定路径加载配置，文件不存在时使用默认配置
func LoadConfigFile(configPath string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, info, err
		}
	} else {
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, err
		}
	}

	// 环境变量覆盖（用于部署 / 本地运行）
	if v := os.Getenv("GEMATRIA_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("GEMATRIA_DICTIONARIES_DIR"); v != "" {
		config.Data.DictionariesDir = v
	}
	if v := os.Getenv("GEMATRIA_THEMES_DIR"); v != "" {
		config.Data.ThemesDir = v
	}

	return config, info, nil
}

// ResolvePath 相对路径转换为以可执行文件目录为基准的路径
func ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(exeDirOrDot(), path)
}

// EnsureDataDir 确保数据目录存在
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := ResolvePath(config.Data.DataDir)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}
