// Package fetchers 负责单个URL的下载和本地保存
//
// 文件名由DeriveFilename根据URL的SHA-256哈希生成,
// HTTPFetcher下载响应体并以原子方式写入输出文件系统。
// 所有失败都以*models.FetchError返回,按InvalidURL/NetworkError/HTTPError/IOError分类。
package fetchers
