package main

import (
	"fmt"
	"os"

	"github.com/RecoveryAshes/hashfetch/internal/models"
	"github.com/spf13/cobra"
)

// mergeDownloadFlags 合并命令行参数到下载配置
// 只有显式指定的参数才覆盖配置文件
func mergeDownloadFlags(cmd *cobra.Command, base models.DownloadConfig) models.DownloadConfig {
	flags := cmd.Flags()

	if flags.Changed("no-extensions") {
		base.AppendKnownExtensions = !noExtensions
	}
	if flags.Changed("output") {
		base.OutputDir = outputDir
	}
	if flags.Changed("timeout") {
		base.Timeout = timeout
	}
	if flags.Changed("insecure") {
		base.InsecureSkipVerify = insecure
	}

	return base
}

// ValidateFlags 验证合并后的下载配置
func ValidateFlags(config models.DownloadConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("参数错误: %w", err)
	}
	return nil
}

// ValidateURLFile 验证URL文件路径
// 文件不存在或不是普通文件时返回*models.MissingSourceFileError
func ValidateURLFile(path string) error {
	if path == "" {
		return fmt.Errorf("URL文件路径不能为空")
	}

	info, err := os.Stat(path)
	if err != nil {
		return &models.MissingSourceFileError{Path: path, Cause: err}
	}
	if !info.Mode().IsRegular() {
		return &models.MissingSourceFileError{
			Path:  path,
			Cause: fmt.Errorf("不是普通文件: %s", info.Mode()),
		}
	}
	return nil
}
