package core

import (
	"fmt"
	"time"

	"github.com/RecoveryAshes/hashfetch/internal/models"
	"github.com/RecoveryAshes/hashfetch/internal/utils"
)

// Sink 接收单个结果
// 按输入顺序调用;返回错误时批量下载停止
type Sink func(models.Outcome) error

// Stream 逐行下载URL列表,每个结果产生后立即交给sink
// 不保留已产生的结果,内存占用与文件大小无关
// 单个URL失败不会中止;只有读取URL文件失败或sink返回错误时提前结束
func (d *Downloader) Stream(sink Sink) (models.BatchSummary, error) {
	var summary models.BatchSummary

	file, err := d.sourceFs.Open(d.config.SourcePath)
	if err != nil {
		return summary, fmt.Errorf("打开URL文件失败: %w", err)
	}
	defer file.Close()

	utils.Infof("🚀 开始批量下载: %s", d.config.SourcePath)
	startTime := time.Now()

	err = utils.ScanLines(file, func(record models.UrlRecord) error {
		outcome, size := d.downloadOne(record.URL)
		outcome = outcome.WithLineNumber(record.LineNumber)
		summary.Add(outcome, size)

		if err := sink(outcome); err != nil {
			return fmt.Errorf("输出结果失败 (行 %d): %w", record.LineNumber, err)
		}
		return nil
	})

	summary.Duration = time.Since(startTime).Seconds()
	d.printSummary(summary)

	return summary, err
}

// DownloadAll 下载URL列表中的全部URL
// 返回的结果与输入行一一对应,顺序一致
func (d *Downloader) DownloadAll() ([]models.Outcome, error) {
	outcomes := make([]models.Outcome, 0)

	_, err := d.Stream(func(o models.Outcome) error {
		outcomes = append(outcomes, o)
		return nil
	})
	return outcomes, err
}

// printSummary 打印批量下载摘要
func (d *Downloader) printSummary(summary models.BatchSummary) {
	utils.Info("==================================================")
	utils.Info("📊 批量下载摘要")
	utils.Info("==================================================")
	utils.Infof("总行数: %d", summary.TotalURLs)
	utils.Infof("✅ 成功: %d", summary.OkCount)
	utils.Infof("⏭️  跳过: %d", summary.SkippedCount)
	utils.Infof("❌ 失败: %d", summary.FailCount)
	utils.Infof("📦 总大小: %.2f MB", float64(summary.TotalBytes)/(1024*1024))
	utils.Infof("⏱️  总耗时: %.2f秒", summary.Duration)
	utils.Info("==================================================")
}
