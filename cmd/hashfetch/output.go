package main

import (
	"fmt"
	"os"

	"github.com/RecoveryAshes/hashfetch/internal/core"
	"github.com/RecoveryAshes/hashfetch/internal/models"
	"github.com/RecoveryAshes/hashfetch/internal/utils"
)

// batchRunner 逐个交付下载结果
type batchRunner interface {
	Stream(sink core.Sink) (models.BatchSummary, error)
}

// outputOptions 结果输出选项
type outputOptions struct {
	stream     bool   // 逐行输出JSON
	reportPath string // 为空时不保存报告
	progress   bool   // stderr进度条
}

// writeResults 执行批量下载并输出结果
// 批量下载中途出错时,已产生的结果和报告照常输出,再返回错误
func writeResults(runner batchRunner, reporter *utils.Reporter, report *models.BatchReport, opts outputOptions) error {
	var outcomes []models.Outcome
	sink := func(o models.Outcome) error {
		if report != nil {
			report.Outcomes = append(report.Outcomes, o)
		}
		if opts.stream {
			return reporter.WriteLine(o)
		}
		outcomes = append(outcomes, o)
		return nil
	}

	if opts.progress {
		bar := utils.NewProgressBar(-1, "下载中", os.Stderr)
		inner := sink
		sink = func(o models.Outcome) error {
			bar.Add(1)
			return inner(o)
		}
		defer bar.Finish()
	}

	summary, runErr := runner.Stream(sink)
	if runErr != nil {
		utils.Errorf("批量下载提前结束, 已完成%d行: %v", summary.TotalURLs, runErr)
	}

	if !opts.stream {
		if err := reporter.WriteList(outcomes); err != nil {
			return err
		}
	}

	if report != nil {
		report.Finish(summary)
		if err := reporter.SaveReport(opts.reportPath, report); err != nil {
			return err
		}
	}

	if runErr != nil {
		return fmt.Errorf("批量下载失败: %w", runErr)
	}
	return nil
}
