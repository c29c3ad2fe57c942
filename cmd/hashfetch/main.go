package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RecoveryAshes/hashfetch/internal/config"
	"github.com/RecoveryAshes/hashfetch/internal/core"
	"github.com/RecoveryAshes/hashfetch/internal/fetchers"
	"github.com/RecoveryAshes/hashfetch/internal/models"
	"github.com/RecoveryAshes/hashfetch/internal/utils"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

// 命令行参数
var (
	// 全局参数
	configFile string
	verbose    bool
	logLevel   string

	// HTTP头部参数
	headers        []string // 自定义HTTP请求头
	validateConfig bool     // 验证配置文件

	// 下载参数
	noExtensions bool
	outputDir    string
	timeout      time.Duration
	insecure     bool

	// 输出参数
	stream       bool
	reportPath   string
	showProgress bool
)

// appConfig 在PersistentPreRunE中加载
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "hashfetch [flags] <url-file>",
	Short: "按URL列表批量下载文件,以URL哈希命名",
	Long: `hashfetch - 批量URL下载工具

逐行读取URL列表文件,下载每个URL并保存为 <URL的SHA-256>[.扩展名]:
  • 空行记为 Skipped,不发起请求
  • 单个URL失败不影响其他URL
  • jpg/jpeg/png/gif 扩展名默认保留 (--no-extensions 关闭)
  • 只支持 http:// 和 https:// URL,其他协议记为 InvalidURL
  • 结果以JSON输出到stdout,日志输出到stderr

示例:
  # 下载到当前目录
  hashfetch urls.txt

  # 指定输出目录和超时,逐行输出结果
  hashfetch -o images --timeout 30s --stream urls.txt

  # 自定义HTTP头部
  hashfetch -H "Referer: https://example.com/" -H "Cookie: session=abc" urls.txt

  # 验证配置文件
  hashfetch --validate-config

版本: ` + Version + `
构建时间: ` + BuildTime,
	Version:       Version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 加载配置
		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}
		appConfig = cfg

		// 初始化日志系统
		logConfig := cfg.LogConfig()

		// 命令行参数覆盖配置文件
		if logLevel != "" {
			logConfig.Level = logLevel
		} else if verbose {
			logConfig.Level = "debug"
		}

		if err := utils.InitLogger(logConfig); err != nil {
			return fmt.Errorf("初始化日志系统失败: %w", err)
		}

		if verbose {
			utils.Info("详细模式已启用")
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// 设置信号处理(Ctrl+C退出)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		go func() {
			sig := <-sigChan
			utils.Warnf("收到中断信号: %v, 正在退出...", sig)
			os.Exit(130)
		}()

		// 创建HTTP头部管理器
		headerManager, err := core.NewHeaderManager(appConfig.Headers, headers)
		if err != nil {
			return fmt.Errorf("创建HTTP头部管理器失败: %w", err)
		}

		// 如果用户请求验证配置
		if validateConfig {
			return runValidateConfig(headerManager)
		}

		// 如果没有提供URL文件,显示帮助信息
		if len(args) == 0 {
			return cmd.Help()
		}

		downloadConfig := mergeDownloadFlags(cmd, appConfig.Download)
		downloadConfig.SourcePath = args[0]
		if reportPath == "" {
			reportPath = appConfig.Report.Path
		}

		if err := ValidateFlags(downloadConfig); err != nil {
			return err
		}
		if err := ValidateURLFile(downloadConfig.SourcePath); err != nil {
			return err
		}
		if err := headerManager.Validate(); err != nil {
			return fmt.Errorf("HTTP头部验证失败: %w", err)
		}
		utils.Debugf("当前有效的HTTP头部: %s", utils.NewHeaderRedactor().RedactToString(headerManager.GetMergedHeaders()))

		return runDownload(downloadConfig, headerManager)
	},
}

// runValidateConfig 验证头部配置并显示脱敏后的有效头部
func runValidateConfig(headerManager *core.HeaderManager) error {
	utils.Info("🔍 验证HTTP头部配置...")
	if err := headerManager.Validate(); err != nil {
		return fmt.Errorf("配置验证失败: %w", err)
	}

	safeHeaders := headerManager.GetSafeHeaders()
	utils.Info("✅ 配置验证通过!")
	utils.Infof("当前有效的HTTP头部 (%d个):", len(safeHeaders))
	for name, value := range safeHeaders {
		utils.Infof("  %s: %s", name, value)
	}
	return nil
}

// runDownload 执行批量下载并输出结果
func runDownload(downloadConfig models.DownloadConfig, headerProvider models.HeaderProvider) error {
	outputFs, err := fetchers.NewOutputFs(downloadConfig.OutputDir)
	if err != nil {
		return err
	}

	fetcher := fetchers.NewHTTPFetcher(downloadConfig, outputFs, headerProvider)
	downloader, err := core.NewDownloader(downloadConfig, fetcher, nil)
	if err != nil {
		return err
	}

	var report *models.BatchReport
	if reportPath != "" {
		report = models.NewBatchReport(downloadConfig)
	}

	opts := outputOptions{stream: stream, reportPath: reportPath, progress: showProgress}
	if err := writeResults(downloader, utils.NewReporter(os.Stdout), report, opts); err != nil {
		return err
	}

	utils.Info("✨ 批量下载任务完成!")
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hashfetch %s\n", Version)
		fmt.Printf("构建时间: %s\n", BuildTime)
	},
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config [path]",
	Short: "生成配置文件模板",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "configs/config.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.WriteTemplate(path); err != nil {
			return err
		}
		utils.Infof("✅ 配置文件已生成: %s", path)
		return nil
	},
}

func init() {
	// 全局参数
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "配置文件路径")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "详细输出模式")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "日志级别 (trace|debug|info|warn|error)")

	// HTTP头部参数
	rootCmd.PersistentFlags().StringArrayVarP(&headers, "header", "H", []string{}, "自定义HTTP头部,格式: 'Name: Value',可多次指定")
	rootCmd.PersistentFlags().BoolVar(&validateConfig, "validate-config", false, "验证配置文件正确性")

	// 下载参数
	rootCmd.Flags().BoolVar(&noExtensions, "no-extensions", false, "不保留jpg/jpeg/png/gif扩展名")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", ".", "输出目录")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "单个URL的HTTP超时 (如 30s, 0表示不限制)")
	rootCmd.Flags().BoolVar(&insecure, "insecure", false, "跳过TLS证书验证")

	// 输出参数
	rootCmd.Flags().BoolVar(&stream, "stream", false, "每个URL完成后立即输出一行JSON")
	rootCmd.Flags().StringVar(&reportPath, "report", "", "保存完整JSON报告的路径")
	rootCmd.Flags().BoolVar(&showProgress, "progress", false, "在stderr显示进度条")

	// 添加子命令
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
