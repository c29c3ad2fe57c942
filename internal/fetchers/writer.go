package fetchers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// NewOutputFs 创建以dir为根的输出文件系统
// 目录不存在时自动创建
func NewOutputFs(dir string) (afero.Fs, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("解析输出目录失败 [%s]: %w", dir, err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败 [%s]: %w", absDir, err)
	}
	return afero.NewBasePathFs(afero.NewOsFs(), absDir), nil
}

// writeFileAtomic 把r的内容流式写入同目录下的临时文件,完整写入后再重命名为目标文件
// 任一步骤失败都会删除临时文件,目标文件保持原状
// 返回写入的字节数
func writeFileAtomic(fs afero.Fs, name string, r io.Reader) (written int64, err error) {
	tmp, err := afero.TempFile(fs, filepath.Dir(name), "."+filepath.Base(name)+".*.part")
	if err != nil {
		return 0, fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			fs.Remove(tmpName)
		}
	}()

	if written, err = io.Copy(tmp, r); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("写入文件失败: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return 0, fmt.Errorf("关闭文件失败: %w", err)
	}
	if err = fs.Chmod(tmpName, 0644); err != nil {
		return 0, fmt.Errorf("设置文件权限失败: %w", err)
	}
	if err = fs.Rename(tmpName, name); err != nil {
		return 0, fmt.Errorf("重命名文件失败: %w", err)
	}
	return written, nil
}
