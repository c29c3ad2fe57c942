package fetchers

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/RecoveryAshes/hashfetch/internal/models"
)

// HashURL 计算URL的SHA-256哈希 (小写十六进制)
func HashURL(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:])
}

// candidateExtension 返回最后一个'.'之后的内容
// 没有'.'时返回整个字符串
func candidateExtension(rawURL string) string {
	if idx := strings.LastIndexByte(rawURL, '.'); idx != -1 {
		return rawURL[idx+1:]
	}
	return rawURL
}

// isKnownExtension 精确匹配(区分大小写)已知图片扩展名
func isKnownExtension(ext string) bool {
	for _, known := range models.KnownExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

// DeriveFilename 根据URL生成本地文件名
// 文件名只取决于URL和appendKnownExtensions,相同输入总是得到相同结果
//
// 规则:
//   - 基础文件名为URL的SHA-256哈希
//   - appendKnownExtensions为true且最后一段是jpg/jpeg/png/gif时追加扩展名
//   - 判断只看最后一个'.'之后的字符,不解析查询参数或路径
func DeriveFilename(rawURL string, appendKnownExtensions bool) string {
	filename := HashURL(rawURL)
	if !appendKnownExtensions {
		return filename
	}

	if ext := candidateExtension(rawURL); isKnownExtension(ext) {
		filename += "." + ext
	}
	return filename
}
