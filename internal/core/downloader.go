package core

import (
	"fmt"
	"time"

	"github.com/RecoveryAshes/hashfetch/internal/fetchers"
	"github.com/RecoveryAshes/hashfetch/internal/models"
	"github.com/RecoveryAshes/hashfetch/internal/utils"
	"github.com/spf13/afero"
)

// Fetcher 单URL下载接口
// 成功返回写入的字节数,失败返回*models.FetchError
type Fetcher interface {
	Fetch(rawURL, filename string) (int64, error)
}

// Downloader 批量下载器
// 按URL列表文件逐行下载,每行产生一个结果
type Downloader struct {
	config   models.DownloadConfig
	fetcher  Fetcher
	sourceFs afero.Fs
}

// NewDownloader 创建下载器
// 参数:
//   - config: 下载配置,SourcePath为URL列表文件
//   - fetcher: 单URL下载器
//   - sourceFs: 读取URL列表的文件系统,为nil时使用操作系统文件系统
//
// 返回:
//   - *Downloader: 下载器实例
//   - error: URL列表文件不存在或不是普通文件时返回*models.MissingSourceFileError
func NewDownloader(config models.DownloadConfig, fetcher Fetcher, sourceFs afero.Fs) (*Downloader, error) {
	if sourceFs == nil {
		sourceFs = afero.NewOsFs()
	}

	info, err := sourceFs.Stat(config.SourcePath)
	if err != nil {
		return nil, &models.MissingSourceFileError{Path: config.SourcePath, Cause: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &models.MissingSourceFileError{
			Path:  config.SourcePath,
			Cause: fmt.Errorf("不是普通文件: %s", info.Mode()),
		}
	}

	utils.Debugf("URL列表文件: %s (%d bytes)", config.SourcePath, info.Size())

	return &Downloader{
		config:   config,
		fetcher:  fetcher,
		sourceFs: sourceFs,
	}, nil
}

// DownloadSingleURL 下载单个URL
// 空字符串直接返回Skipped,不生成文件名也不发起请求
func (d *Downloader) DownloadSingleURL(rawURL string) models.Outcome {
	outcome, _ := d.downloadOne(rawURL)
	return outcome
}

// downloadOne 下载单个URL并返回结果和写入的字节数
func (d *Downloader) downloadOne(rawURL string) (models.Outcome, int64) {
	if rawURL == "" {
		return models.SkippedOutcome(rawURL), 0
	}

	filename := fetchers.DeriveFilename(rawURL, d.config.AppendKnownExtensions)

	startTime := time.Now()
	size, err := d.fetcher.Fetch(rawURL, filename)
	if err != nil {
		outcome := models.FailedOutcome(rawURL, err)
		utils.Warnf("❌ %s", outcome.StatusText())
		return outcome, 0
	}

	utils.Debugf("✅ %s -> %s (%d bytes, %v)", rawURL, filename, size, time.Since(startTime))
	return models.OkOutcome(rawURL, filename), size
}
