package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed config_template.yaml
var defaultConfigTemplate string

// WriteTemplate 在path生成配置文件模板
// 文件已存在时不覆盖并返回错误
func WriteTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("配置文件已存在 [%s]", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("无法创建配置目录 [%s]: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0644); err != nil {
		return fmt.Errorf("无法生成配置文件 [%s]: %w", path, err)
	}
	return nil
}
