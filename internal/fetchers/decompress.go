package fetchers

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"strings"

	"github.com/RecoveryAshes/hashfetch/internal/utils"
	"github.com/andybalholm/brotli"
)

// decodeReader 根据Content-Encoding包装响应体
// 支持 gzip, deflate, br (Brotli);未知编码记录警告并返回原始内容
func decodeReader(contentEncoding string, body io.Reader) (io.Reader, error) {
	encoding := strings.ToLower(strings.TrimSpace(contentEncoding))

	if encoding == "" || encoding == "identity" {
		return body, nil
	}

	// 空响应体直接保存为空文件,不交给解压器
	br := bufio.NewReader(body)
	if _, err := br.Peek(1); err == io.EOF {
		return br, nil
	}

	switch encoding {
	case "gzip", "x-gzip":
		reader, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("gzip解压失败: %w", err)
		}
		return reader, nil

	case "deflate":
		// 规范上是zlib封装,部分服务器直接发送裸deflate
		if isZlibHeader(br) {
			reader, err := zlib.NewReader(br)
			if err != nil {
				return nil, fmt.Errorf("deflate解压失败: %w", err)
			}
			return reader, nil
		}
		return flate.NewReader(br), nil

	case "br":
		return brotli.NewReader(br), nil

	default:
		utils.Warnf("未知的Content-Encoding: %s, 保存原始内容", contentEncoding)
		return br, nil
	}
}

// isZlibHeader 检查前两个字节是否为zlib头 (RFC 1950)
func isZlibHeader(br *bufio.Reader) bool {
	header, err := br.Peek(2)
	if err != nil {
		return false
	}
	cmf, flg := header[0], header[1]
	return cmf&0x0f == 8 && (uint16(cmf)<<8|uint16(flg))%31 == 0
}
