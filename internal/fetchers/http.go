package fetchers

import (
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/RecoveryAshes/hashfetch/internal/models"
	"github.com/RecoveryAshes/hashfetch/internal/utils"
	"github.com/spf13/afero"
)

// HTTPFetcher 单URL下载器
// 同步执行,响应体边读边写入临时文件,不在内存中缓存完整内容
type HTTPFetcher struct {
	client *http.Client
	fs     afero.Fs

	// HTTP头部提供者
	headerProvider models.HeaderProvider
}

// NewHTTPFetcher 创建下载器
// 参数:
//   - config: 下载配置 (超时、TLS)
//   - fs: 输出文件系统,文件名相对于它的根目录
//   - headerProvider: 请求头部提供者,可为nil
func NewHTTPFetcher(config models.DownloadConfig, fs afero.Fs, headerProvider models.HeaderProvider) *HTTPFetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if config.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true, // 允许自签名、过期或主机名不匹配的证书
		}
		utils.Debugf("下载器: TLS证书验证已禁用")
	}

	utils.Debugf("下载器: HTTP超时 %v (0表示不限制)", config.Timeout)

	return &HTTPFetcher{
		// Timeout为0表示不限制; 重定向沿用默认策略(最多10次)
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
		fs:             fs,
		headerProvider: headerProvider,
	}
}

// applyHeaders 把头部提供者的头部写入请求
// 显式设置Accept-Encoding后Transport不再自动解压,由decodeReader处理
func (f *HTTPFetcher) applyHeaders(req *http.Request) {
	if f.headerProvider == nil {
		return
	}

	headers, err := f.headerProvider.GetHeaders()
	if err != nil {
		utils.Warnf("获取HTTP头部失败: %v", err)
		return
	}
	for name, values := range headers {
		if len(values) > 0 {
			req.Header.Set(name, values[0])
		}
	}
}

// Fetch 下载rawURL并保存为filename
// 返回写入的字节数;失败时返回*models.FetchError
func (f *HTTPFetcher) Fetch(rawURL, filename string) (int64, error) {
	if err := models.ValidateURL(rawURL); err != nil {
		return 0, models.NewFetchError(models.ErrorKindInvalidURL, rawURL, err)
	}

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, models.NewFetchError(models.ErrorKindInvalidURL, rawURL, err)
	}
	f.applyHeaders(req)

	startTime := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		utils.Debugf("请求失败 [%s]: %v", rawURL, err)
		return 0, models.NewFetchError(models.ErrorKindNetwork, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, models.NewFetchError(models.ErrorKindHTTP, rawURL,
			fmt.Errorf("HTTP Error %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	body, err := decodeReader(resp.Header.Get("Content-Encoding"), resp.Body)
	if err != nil {
		return 0, models.NewFetchError(models.ErrorKindNetwork, rawURL, err)
	}

	// 区分读取失败(网络/解码)和写入失败(本地IO)
	tracked := &trackingReader{r: body}
	written, err := writeFileAtomic(f.fs, filename, tracked)
	if err != nil {
		if tracked.err != nil {
			return 0, models.NewFetchError(models.ErrorKindNetwork, rawURL, tracked.err)
		}
		return 0, models.NewFetchError(models.ErrorKindIO, rawURL, err)
	}

	utils.Debugf("下载完成 [%s]: %d bytes, 耗时 %v", rawURL, written, time.Since(startTime))
	return written, nil
}

// trackingReader 记录读取过程中出现的第一个非EOF错误
type trackingReader struct {
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF && t.err == nil {
		t.err = err
	}
	return n, err
}
