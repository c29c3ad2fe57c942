package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/RecoveryAshes/hashfetch/internal/models"
)

// ScanLines 逐行读取URL列表,每行去除首尾空白后回调
// 行号从0开始;空行同样回调,由调用方决定如何处理
// 不限制单行长度,超长URL照常交给回调,由下载器判定成败
// 回调返回错误时停止读取并原样返回该错误
func ScanLines(r io.Reader, fn func(record models.UrlRecord) error) error {
	reader := bufio.NewReader(r)

	for lineNum := 0; ; lineNum++ {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("读取URL文件失败 (行 %d): %w", lineNum, err)
		}
		// 文件以换行结尾时不产生额外的空行
		if err == io.EOF && line == "" {
			return nil
		}

		record := models.UrlRecord{LineNumber: lineNum, URL: strings.TrimSpace(line)}
		if cbErr := fn(record); cbErr != nil {
			return cbErr
		}

		if err == io.EOF {
			return nil
		}
	}
}
