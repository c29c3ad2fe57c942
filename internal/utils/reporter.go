package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/RecoveryAshes/hashfetch/internal/models"
	"github.com/schollz/progressbar/v3"
)

// Reporter 下载结果输出
type Reporter struct {
	out io.Writer
}

// NewReporter 创建结果输出器
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// WriteList 以缩进JSON数组输出全部结果
func (r *Reporter) WriteList(outcomes []models.Outcome) error {
	if outcomes == nil {
		outcomes = []models.Outcome{}
	}

	enc := json.NewEncoder(r.out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(outcomes); err != nil {
		return fmt.Errorf("输出结果失败: %w", err)
	}
	return nil
}

// WriteLine 以单行JSON输出一个结果 (流式模式)
func (r *Reporter) WriteLine(outcome models.Outcome) error {
	enc := json.NewEncoder(r.out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(outcome); err != nil {
		return fmt.Errorf("输出结果失败: %w", err)
	}
	return nil
}

// SaveReport 保存完整的批量下载报告
func (r *Reporter) SaveReport(path string, report *models.BatchReport) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建报告目录失败: %w", err)
		}
	}

	if err := report.SaveToFile(path); err != nil {
		return fmt.Errorf("写入报告文件失败: %w", err)
	}

	Infof("✅ 报告已生成: %s", path)
	return nil
}

// NewProgressBar 创建进度条
// max为-1时显示为不定长进度
func NewProgressBar(max int, description string, out io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(out)
		}),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
