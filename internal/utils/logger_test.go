package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testLogConfig(dir, level string, console *bytes.Buffer) LogConfig {
	return LogConfig{
		Level:      level,
		LogDir:     dir,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   false,
		Console:    console,
	}
}

func TestInitLogger(t *testing.T) {
	tempDir := filepath.Join(t.TempDir(), "logs")

	var console bytes.Buffer
	if err := InitLogger(testLogConfig(tempDir, "debug", &console)); err != nil {
		t.Fatalf("初始化日志器失败: %v", err)
	}

	if _, err := os.Stat(tempDir); os.IsNotExist(err) {
		t.Errorf("日志目录未创建: %s", tempDir)
	}

	Info("测试信息日志")
	Debug("测试调试日志")

	// 等待日志写入
	time.Sleep(100 * time.Millisecond)

	mainLogPath := filepath.Join(tempDir, MainLogFile)
	if _, err := os.Stat(mainLogPath); os.IsNotExist(err) {
		t.Errorf("主日志文件未创建: %s", mainLogPath)
	}

	if !strings.Contains(console.String(), "测试信息日志") {
		t.Errorf("控制台输出缺少日志: %q", console.String())
	}
}

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()

	var console bytes.Buffer
	if err := InitLogger(testLogConfig(tempDir, "info", &console)); err != nil {
		t.Fatalf("初始化日志器失败: %v", err)
	}

	Infof("格式化信息日志: %s", "测试")
	Warnf("格式化警告日志: %d", 123)
	Debugf("调试日志不应输出: %v", true)

	time.Sleep(100 * time.Millisecond)

	content, err := os.ReadFile(filepath.Join(tempDir, MainLogFile))
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}

	if !strings.Contains(string(content), "格式化信息日志: 测试") {
		t.Error("主日志文件缺少信息日志")
	}
	if strings.Contains(string(content), "调试日志不应输出") {
		t.Error("info级别下不应写入调试日志")
	}
}

func TestErrorLogOnlyReceivesErrors(t *testing.T) {
	tempDir := t.TempDir()

	var console bytes.Buffer
	if err := InitLogger(testLogConfig(tempDir, "info", &console)); err != nil {
		t.Fatalf("初始化日志器失败: %v", err)
	}

	Warn("只是警告")
	Errorf("真正的错误: %s", "boom")

	time.Sleep(100 * time.Millisecond)

	content, err := os.ReadFile(filepath.Join(tempDir, ErrorLogFile))
	if err != nil {
		t.Fatalf("读取错误日志失败: %v", err)
	}

	if !strings.Contains(string(content), "真正的错误: boom") {
		t.Error("错误日志缺少错误级别日志")
	}
	if strings.Contains(string(content), "只是警告") {
		t.Error("错误日志不应包含警告级别日志")
	}
}

func TestDefaultLogConfig(t *testing.T) {
	config := DefaultLogConfig()

	if config.Level != "info" {
		t.Errorf("默认日志级别错误: 期望 'info', 得到 '%s'", config.Level)
	}
	if config.LogDir != "logs" {
		t.Errorf("默认日志目录错误: 期望 'logs', 得到 '%s'", config.LogDir)
	}
	if config.MaxSize != 10 || config.MaxBackups != 3 || config.MaxAge != 28 {
		t.Errorf("默认轮转配置错误: %+v", config)
	}
	if !config.Compress {
		t.Error("默认应该启用压缩")
	}
	if config.Console != nil {
		t.Error("默认控制台输出应为nil (使用os.Stderr)")
	}
}
