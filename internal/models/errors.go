package models

import (
	"fmt"
	"os"
	"path/filepath"
)

// MissingSourceFileError URL列表文件不存在或不是普通文件
// 在创建下载器时返回,调用方不应继续下载
type MissingSourceFileError struct {
	// Path 调用方传入的路径
	Path string

	// Cause 底层错误 (如os.Stat返回的fs.ErrNotExist)
	Cause error
}

// Error 实现error接口
// 相对路径会拼接当前工作目录,便于排查
func (e *MissingSourceFileError) Error() string {
	return fmt.Sprintf("No such file: '%s'", displayPath(e.Path))
}

// Unwrap 支持errors.Is(err, fs.ErrNotExist)
func (e *MissingSourceFileError) Unwrap() error {
	return e.Cause
}

func displayPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	return cwd + string(filepath.Separator) + path
}

// ValidationError 头部验证错误
// 表示头部验证失败的详细信息
type ValidationError struct {
	// Field 出错的字段 ("name" 或 "value")
	Field string

	// HeaderName 头部名称
	HeaderName string

	// Reason 错误原因
	Reason string

	// Suggestion 修复建议 (可选)
	Suggestion string
}

// Error 实现error接口
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("头部验证失败 [%s]: %s", e.HeaderName, e.Reason)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (建议: %s)", e.Suggestion)
	}
	return msg
}

// ConfigError 配置文件错误
type ConfigError struct {
	// FilePath 配置文件路径
	FilePath string

	// Cause 底层错误 (如viper.ConfigParseError)
	Cause error
}

// Error 实现error接口
func (e *ConfigError) Error() string {
	return fmt.Sprintf("配置文件错误 [%s]: %v", e.FilePath, e.Cause)
}

// Unwrap 支持errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Cause
}
