package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/RecoveryAshes/hashfetch/internal/models"
	"github.com/RecoveryAshes/hashfetch/internal/utils"
	"github.com/spf13/viper"
)

const (
	// MaxConfigFileSize 配置文件最大大小 (1MB)
	MaxConfigFileSize = 1 * 1024 * 1024
)

// Config 应用程序配置
type Config struct {
	Download models.DownloadConfig `mapstructure:"download"`
	Headers  map[string]string     `mapstructure:"headers"`
	Logging  LoggingConfig         `mapstructure:"logging"`
	Report   ReportConfig          `mapstructure:"report"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level    string         `mapstructure:"level"`
	LogDir   string         `mapstructure:"log_dir"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig 日志轮转配置
type RotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"`
	Compress   bool `mapstructure:"compress"`
}

// ReportConfig 报告配置
type ReportConfig struct {
	// Path 报告保存路径,为空时不保存
	Path string `mapstructure:"path"`
}

// defaultSearchPaths 未指定配置文件时的搜索目录
func defaultSearchPaths() []string {
	paths := []string{"./configs", "."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".hashfetch"))
	}
	return paths
}

// LoadConfig 加载配置文件
// configPath为空时在./configs、.、~/.hashfetch中搜索config.yaml,找不到则使用默认值
func LoadConfig(configPath string) (*Config, error) {
	return loadConfig(configPath, defaultSearchPaths())
}

func loadConfig(configPath string, searchPaths []string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		// 指定的配置文件必须存在
		if err := ValidateFileSize(configPath); err != nil {
			return nil, err
		}
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, p := range searchPaths {
			v.AddConfigPath(p)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, &models.ConfigError{FilePath: v.ConfigFileUsed(), Cause: err}
		}
		utils.Debugf("未找到配置文件, 使用默认配置")
	} else if configPath == "" {
		if err := ValidateFileSize(v.ConfigFileUsed()); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, &models.ConfigError{
			FilePath: v.ConfigFileUsed(),
			Cause:    fmt.Errorf("配置绑定失败: %w", err),
		}
	}

	// 配置文件存在但headers为空
	if config.Headers == nil {
		config.Headers = make(map[string]string)
	}

	if err := config.Download.Validate(); err != nil {
		return nil, &models.ConfigError{FilePath: v.ConfigFileUsed(), Cause: err}
	}

	return &config, nil
}

// ValidateFileSize 验证配置文件大小是否在限制内
func ValidateFileSize(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &models.ConfigError{
			FilePath: path,
			Cause:    fmt.Errorf("无法读取配置文件信息: %w", err),
		}
	}

	if info.Size() > MaxConfigFileSize {
		return &models.ConfigError{
			FilePath: path,
			Cause: fmt.Errorf("配置文件过大: %d 字节 (最大 %d 字节)",
				info.Size(), MaxConfigFileSize),
		}
	}

	return nil
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	defaults := models.DefaultDownloadConfig()

	// 下载配置默认值
	v.SetDefault("download.append_known_extensions", defaults.AppendKnownExtensions)
	v.SetDefault("download.output_dir", defaults.OutputDir)
	v.SetDefault("download.timeout", "0s")
	v.SetDefault("download.insecure_skip_verify", false)

	// 日志配置默认值
	logDefaults := utils.DefaultLogConfig()
	v.SetDefault("logging.level", logDefaults.Level)
	v.SetDefault("logging.log_dir", logDefaults.LogDir)
	v.SetDefault("logging.rotation.max_size", logDefaults.MaxSize)
	v.SetDefault("logging.rotation.max_backups", logDefaults.MaxBackups)
	v.SetDefault("logging.rotation.max_age", logDefaults.MaxAge)
	v.SetDefault("logging.rotation.compress", logDefaults.Compress)

	v.SetDefault("report.path", "")
}

// LogConfig 转换为日志系统配置
func (c *Config) LogConfig() utils.LogConfig {
	return utils.LogConfig{
		Level:      c.Logging.Level,
		LogDir:     c.Logging.LogDir,
		MaxSize:    c.Logging.Rotation.MaxSize,
		MaxBackups: c.Logging.Rotation.MaxBackups,
		MaxAge:     c.Logging.Rotation.MaxAge,
		Compress:   c.Logging.Rotation.Compress,
	}
}
