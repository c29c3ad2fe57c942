package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// OutcomeStatus 单个URL的处理结果标签
type OutcomeStatus string

const (
	StatusOk      OutcomeStatus = "Ok"      // 下载成功
	StatusSkipped OutcomeStatus = "Skipped" // 空行,未发起请求
	StatusFailed  OutcomeStatus = "Failed"  // 下载失败,原因见FetchError
)

// ErrorKind 下载失败的类别 (机器可读)
type ErrorKind string

const (
	ErrorKindInvalidURL ErrorKind = "InvalidURL"   // URL无法解析或协议不支持
	ErrorKindNetwork    ErrorKind = "NetworkError" // DNS/连接/TLS/超时/读取响应体失败
	ErrorKindHTTP       ErrorKind = "HTTPError"    // 非2xx响应
	ErrorKindIO         ErrorKind = "IOError"      // 本地写入失败
)

// UrlRecord URL列表文件中的一行
type UrlRecord struct {
	LineNumber int    // 行号(从0开始)
	URL        string // 去除首尾空白后的内容,可能为空
}

// FetchError 单个URL下载失败的详细信息
type FetchError struct {
	Kind ErrorKind
	URL  string
	Err  error
}

// NewFetchError 创建下载错误
func NewFetchError(kind ErrorKind, rawURL string, err error) *FetchError {
	return &FetchError{Kind: kind, URL: rawURL, Err: err}
}

// Error 实现error接口
// 格式与历史状态文本保持一致: Could not download URL '<url>' due to <Kind>: <message>
func (e *FetchError) Error() string {
	return fmt.Sprintf("Could not download URL '%s' due to %s: %v", e.URL, e.Kind, e.Err)
}

// Unwrap 支持errors.Unwrap
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Outcome 单个URL的处理结果
// 每行生成一次,生成后不再修改
type Outcome struct {
	URL        string
	Filename   string // 未写入文件时为空
	Status     OutcomeStatus
	LineNumber int
	Err        *FetchError // 仅Status为Failed时非nil
}

// OkOutcome 创建成功结果
func OkOutcome(rawURL, filename string) Outcome {
	return Outcome{URL: rawURL, Filename: filename, Status: StatusOk}
}

// SkippedOutcome 创建跳过结果
func SkippedOutcome(rawURL string) Outcome {
	return Outcome{URL: rawURL, Status: StatusSkipped}
}

// FailedOutcome 根据错误创建失败结果
// 非FetchError的错误按NetworkError归类
func FailedOutcome(rawURL string, err error) Outcome {
	var fe *FetchError
	if !errors.As(err, &fe) {
		fe = NewFetchError(ErrorKindNetwork, rawURL, err)
	}
	return Outcome{URL: rawURL, Status: StatusFailed, Err: fe}
}

// WithLineNumber 返回带行号的副本
func (o Outcome) WithLineNumber(n int) Outcome {
	o.LineNumber = n
	return o
}

// IsOk 是否下载成功
func (o Outcome) IsOk() bool {
	return o.Status == StatusOk
}

// StatusText 返回状态文本: "Ok"、"Skipped"或失败描述
func (o Outcome) StatusText() string {
	if o.Status == StatusFailed && o.Err != nil {
		return o.Err.Error()
	}
	return string(o.Status)
}

// ErrorKind 返回失败类别,非失败结果返回空字符串
func (o Outcome) ErrorKind() ErrorKind {
	if o.Err == nil {
		return ""
	}
	return o.Err.Kind
}

// outcomeJSON 输出格式: {url, filename, status, linenum[, error_kind]}
type outcomeJSON struct {
	URL        string    `json:"url"`
	Filename   string    `json:"filename"`
	Status     string    `json:"status"`
	LineNumber int       `json:"linenum"`
	ErrorKind  ErrorKind `json:"error_kind,omitempty"`
}

// MarshalJSON 实现json.Marshaler
// URL中的&等字符不做HTML转义
func (o Outcome) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(outcomeJSON{
		URL:        o.URL,
		Filename:   o.Filename,
		Status:     o.StatusText(),
		LineNumber: o.LineNumber,
		ErrorKind:  o.ErrorKind(),
	}); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
