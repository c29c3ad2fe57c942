package core

import (
	"testing"
)

func TestHeaderManager_GetMergedHeaders(t *testing.T) {
	t.Run("默认头部存在", func(t *testing.T) {
		hm, err := NewHeaderManager(nil, nil)
		if err != nil {
			t.Fatalf("创建HeaderManager失败: %v", err)
		}

		headers := hm.GetMergedHeaders()
		if headers.Get("User-Agent") != DefaultUserAgent {
			t.Errorf("User-Agent = %q", headers.Get("User-Agent"))
		}
		if headers.Get("Accept-Encoding") != "gzip, deflate, br" {
			t.Errorf("Accept-Encoding = %q", headers.Get("Accept-Encoding"))
		}
	})

	t.Run("优先级: 默认 < 配置 < 命令行", func(t *testing.T) {
		configHeaders := map[string]string{
			"user-agent": "ConfigBot/1.0",
			"referer":    "http://example.com/",
		}
		hm, err := NewHeaderManager(configHeaders, []string{"User-Agent: CliBot/2.0"})
		if err != nil {
			t.Fatalf("创建HeaderManager失败: %v", err)
		}

		headers := hm.GetMergedHeaders()
		if headers.Get("User-Agent") != "CliBot/2.0" {
			t.Errorf("命令行应覆盖配置, User-Agent = %q", headers.Get("User-Agent"))
		}
		if headers.Get("Referer") != "http://example.com/" {
			t.Errorf("配置头部未合并, Referer = %q", headers.Get("Referer"))
		}
		if headers.Get("Accept") != "*/*" {
			t.Errorf("默认头部丢失, Accept = %q", headers.Get("Accept"))
		}
	})

	t.Run("命令行格式错误", func(t *testing.T) {
		if _, err := NewHeaderManager(nil, []string{"NoColon"}); err == nil {
			t.Error("缺少冒号应该报错")
		}
	})
}

func TestHeaderManager_GetSafeHeaders(t *testing.T) {
	hm, err := NewHeaderManager(nil, []string{
		"Authorization: Bearer secret-token-12345",
		"X-API-Key: api-key-67890",
	})
	if err != nil {
		t.Fatalf("创建HeaderManager失败: %v", err)
	}

	safe := hm.GetSafeHeaders()
	if safe["Authorization"] != "Bearer ***" {
		t.Errorf("Authorization = %q, want %q", safe["Authorization"], "Bearer ***")
	}
	if safe["X-Api-Key"] == "api-key-67890" {
		t.Error("X-Api-Key应该被脱敏")
	}
	if safe["User-Agent"] != DefaultUserAgent {
		t.Errorf("非敏感头部不应脱敏, User-Agent = %q", safe["User-Agent"])
	}
}

func TestHeaderManager_GetHeaders(t *testing.T) {
	tests := []struct {
		name    string
		config  map[string]string
		cli     []string
		wantErr bool
	}{
		{"合法头部", map[string]string{"x-trace": "abc"}, []string{"X-Custom: value"}, false},
		{"禁止的头部", nil, []string{"Host: evil.example.com"}, true},
		{"值包含换行", map[string]string{"x-bad": "a\nb"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hm, err := NewHeaderManager(tt.config, tt.cli)
			if err != nil {
				t.Fatalf("创建HeaderManager失败: %v", err)
			}

			headers, err := hm.GetHeaders()
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetHeaders() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && headers.Get("User-Agent") == "" {
				t.Error("合并后的头部应包含User-Agent")
			}
		})
	}
}
