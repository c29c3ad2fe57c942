package models

import (
	"encoding/json"
	"os"
	"time"
)

// BatchSummary 批量下载摘要
type BatchSummary struct {
	TotalURLs    int     `json:"total_urls"`
	OkCount      int     `json:"ok"`
	SkippedCount int     `json:"skipped"`
	FailCount    int     `json:"failed"`
	TotalBytes   int64   `json:"total_bytes"`
	Duration     float64 `json:"duration"` // 秒
}

// Add 计入一个结果
func (s *BatchSummary) Add(o Outcome, size int64) {
	s.TotalURLs++
	switch o.Status {
	case StatusOk:
		s.OkCount++
		s.TotalBytes += size
	case StatusSkipped:
		s.SkippedCount++
	default:
		s.FailCount++
	}
}

// BatchReport 批量下载报告
type BatchReport struct {
	RunID      string    `json:"run_id"`
	SourcePath string    `json:"source_path"`
	OutputDir  string    `json:"output_dir"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`

	Summary  BatchSummary `json:"summary"`
	Outcomes []Outcome    `json:"outcomes"`

	// 配置快照
	Config DownloadConfig `json:"config"`
}

// NewBatchReport 创建报告,分配运行ID
func NewBatchReport(config DownloadConfig) *BatchReport {
	return &BatchReport{
		RunID:      generateID(),
		SourcePath: config.SourcePath,
		OutputDir:  config.OutputDir,
		StartTime:  time.Now(),
		Outcomes:   make([]Outcome, 0),
		Config:     config,
	}
}

// Finish 记录结束时间和摘要
func (r *BatchReport) Finish(summary BatchSummary) {
	r.EndTime = time.Now()
	r.Summary = summary
}

// ToJSON 序列化为JSON
func (r *BatchReport) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// SaveToFile 保存到文件
func (r *BatchReport) SaveToFile(filepath string) error {
	data, err := r.ToJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}
