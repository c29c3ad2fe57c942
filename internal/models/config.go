package models

import (
	"fmt"
	"time"
)

// KnownExtensions 可保留的图片扩展名 (区分大小写)
var KnownExtensions = []string{"jpg", "jpeg", "png", "gif"}

// DownloadConfig 下载配置
type DownloadConfig struct {
	SourcePath            string        `json:"source_path" mapstructure:"-"`                                      // URL列表文件
	AppendKnownExtensions bool          `json:"append_known_extensions" mapstructure:"append_known_extensions"` // 保留已知图片扩展名 (默认:true)
	OutputDir             string        `json:"output_dir" mapstructure:"output_dir"`                           // 输出目录 (默认:.)
	Timeout               time.Duration `json:"timeout" mapstructure:"timeout"`                                 // HTTP超时, 0表示不限制
	InsecureSkipVerify    bool          `json:"insecure_skip_verify" mapstructure:"insecure_skip_verify"`       // 跳过TLS证书验证
}

// DefaultDownloadConfig 默认下载配置
func DefaultDownloadConfig() DownloadConfig {
	return DownloadConfig{
		AppendKnownExtensions: true,
		OutputDir:             ".",
	}
}

// Validate 验证配置
func (c *DownloadConfig) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("输出目录不能为空")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("超时时间不能为负数: %v", c.Timeout)
	}
	return nil
}
