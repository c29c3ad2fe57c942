package fetchers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RecoveryAshes/hashfetch/internal/models"
	"github.com/andybalholm/brotli"
	"github.com/spf13/afero"
)

// staticHeaders 固定头部提供者
type staticHeaders http.Header

func (h staticHeaders) GetHeaders() (http.Header, error) {
	return http.Header(h), nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/textures/kitchen.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("\xff\xd8\xff\xe0kitchen"))
	})
	mux.HandleFunc("/textures/brotli.png", func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		bw := brotli.NewWriter(&buf)
		bw.Write([]byte("\x89PNG brotli body"))
		bw.Close()

		w.Header().Set("Content-Encoding", "br")
		w.Write(buf.Bytes())
	})
	mux.HandleFunc("/empty.gif", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", r.URL.Query().Get("enc"))
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/echo-agent", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.Header.Get("User-Agent")))
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte("late"))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func assertKind(t *testing.T, err error, want models.ErrorKind) {
	t.Helper()

	var fetchErr *models.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("错误类型应为*models.FetchError, 得到 %T: %v", err, err)
	}
	if fetchErr.Kind != want {
		t.Errorf("Kind = %v, want %v (err: %v)", fetchErr.Kind, want, err)
	}
}

func TestHTTPFetcher_Success(t *testing.T) {
	server := newTestServer(t)
	fs := afero.NewMemMapFs()
	fetcher := NewHTTPFetcher(models.DefaultDownloadConfig(), fs, nil)

	url := server.URL + "/textures/kitchen.jpg"
	filename := DeriveFilename(url, true)

	n, err := fetcher.Fetch(url, filename)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	data, err := afero.ReadFile(fs, filename)
	if err != nil {
		t.Fatalf("读取下载文件失败: %v", err)
	}
	if string(data) != "\xff\xd8\xff\xe0kitchen" {
		t.Errorf("文件内容不匹配: %q", data)
	}
	if n != int64(len(data)) {
		t.Errorf("返回字节数 = %d, want %d", n, len(data))
	}
	assertNoPartFiles(t, fs)
}

func TestHTTPFetcher_Errors(t *testing.T) {
	server := newTestServer(t)

	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL + "/textures/kitchen.jpg"
	closed.Close()

	tests := []struct {
		name string
		url  string
		fs   afero.Fs
		want models.ErrorKind
	}{
		{"404响应", server.URL + "/textures/missing.jpg", afero.NewMemMapFs(), models.ErrorKindHTTP},
		{"非URL字符串", "vjkdfs", afero.NewMemMapFs(), models.ErrorKindInvalidURL},
		{"伪造的协议", "fdfhttp://127.0.0.1:8081/textures/wood.jpg", afero.NewMemMapFs(), models.ErrorKindInvalidURL},
		{"连接被拒绝", closedURL, afero.NewMemMapFs(), models.ErrorKindNetwork},
		{"只读输出目录", server.URL + "/textures/kitchen.jpg", afero.NewReadOnlyFs(afero.NewMemMapFs()), models.ErrorKindIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := NewHTTPFetcher(models.DefaultDownloadConfig(), tt.fs, nil)
			filename := DeriveFilename(tt.url, true)

			n, err := fetcher.Fetch(tt.url, filename)
			if err == nil {
				t.Fatal("Fetch() 应该返回错误")
			}
			assertKind(t, err, tt.want)

			if n != 0 {
				t.Errorf("失败时字节数应为0, 得到 %d", n)
			}
			if exists, _ := afero.Exists(tt.fs, filename); exists {
				t.Error("失败时不应创建目标文件")
			}
		})
	}
}

func TestHTTPFetcher_HTTPErrorMessage(t *testing.T) {
	server := newTestServer(t)
	fetcher := NewHTTPFetcher(models.DefaultDownloadConfig(), afero.NewMemMapFs(), nil)

	url := server.URL + "/textures/missing.jpg"
	_, err := fetcher.Fetch(url, "x")

	want := "Could not download URL '" + url + "' due to HTTPError: HTTP Error 404: Not Found"
	if err == nil || err.Error() != want {
		t.Errorf("Error() = %v, want %q", err, want)
	}
}

func TestHTTPFetcher_BrotliDecoded(t *testing.T) {
	server := newTestServer(t)
	fs := afero.NewMemMapFs()
	headers := staticHeaders{"Accept-Encoding": {"gzip, deflate, br"}}
	fetcher := NewHTTPFetcher(models.DefaultDownloadConfig(), fs, headers)

	if _, err := fetcher.Fetch(server.URL+"/textures/brotli.png", "br.png"); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	data, _ := afero.ReadFile(fs, "br.png")
	if string(data) != "\x89PNG brotli body" {
		t.Errorf("应保存解压后的内容, 得到 %q", data)
	}
}

func TestHTTPFetcher_EmptyEncodedBody(t *testing.T) {
	server := newTestServer(t)
	headers := staticHeaders{"Accept-Encoding": {"gzip, deflate, br"}}

	for _, encoding := range []string{"gzip", "deflate"} {
		t.Run(encoding, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			fetcher := NewHTTPFetcher(models.DefaultDownloadConfig(), fs, headers)

			n, err := fetcher.Fetch(server.URL+"/empty.gif?enc="+encoding, "empty.gif")
			if err != nil {
				t.Fatalf("空响应体应保存为空文件, 得到错误: %v", err)
			}
			if n != 0 {
				t.Errorf("写入字节数 = %d, want 0", n)
			}
			if exists, _ := afero.Exists(fs, "empty.gif"); !exists {
				t.Error("应创建空文件")
			}
		})
	}
}

func TestHTTPFetcher_CustomHeaders(t *testing.T) {
	server := newTestServer(t)
	fs := afero.NewMemMapFs()
	headers := staticHeaders{"User-Agent": {"TestBot/1.0"}}
	fetcher := NewHTTPFetcher(models.DefaultDownloadConfig(), fs, headers)

	if _, err := fetcher.Fetch(server.URL+"/echo-agent", "agent"); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	data, _ := afero.ReadFile(fs, "agent")
	if string(data) != "TestBot/1.0" {
		t.Errorf("服务器收到的User-Agent = %q, want %q", data, "TestBot/1.0")
	}
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	server := newTestServer(t)
	config := models.DefaultDownloadConfig()
	config.Timeout = 50 * time.Millisecond
	fetcher := NewHTTPFetcher(config, afero.NewMemMapFs(), nil)

	_, err := fetcher.Fetch(server.URL+"/slow", "slow")
	if err == nil {
		t.Fatal("超时应该返回错误")
	}
	assertKind(t, err, models.ErrorKindNetwork)
}
