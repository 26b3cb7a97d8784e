package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	t.Parallel()

	client := NewHTTPClient()
	assert.NotNil(t, client)

	httpClient, ok := client.(*HTTPClient)
	require.True(t, ok)
	assert.Equal(t, defaultTimeout, httpClient.Timeout())

	httpClient, ok = NewHTTPClient(WithTimeout(0)).(*HTTPClient)
	require.True(t, ok)
	assert.Zero(t, httpClient.Timeout())
}

func TestHTTPClient_DoHTTPRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		requestParam *RequestParam
		setupServer  func() *httptest.Server
		wantErr      bool
		wantErrMsg   string
		wantResponse map[string]interface{}
	}{
		{
			name: "GET 解析 JSON 响应",
			requestParam: &RequestParam{
				Method:   "GET",
				Response: &map[string]interface{}{},
			},
			setupServer: func() *httptest.Server {
				return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "GET", r.Method)
					w.WriteHeader(http.StatusOK)
					_, _ = w.Write([]byte(`{"credits": 42}`))
				}))
			},
			wantResponse: map[string]interface{}{"credits": float64(42)},
		},
		{
			name: "结构体 body 默认 application/json",
			requestParam: &RequestParam{
				Method: "POST",
				Body:   map[string]interface{}{"key": "value"},
			},
			setupServer: func() *httptest.Server {
				return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "POST", r.Method)
					assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

					body, err := io.ReadAll(r.Body)
					require.NoError(t, err)

					var data map[string]interface{}
					err = json.Unmarshal(body, &data)
					require.NoError(t, err)
					assert.Equal(t, "value", data["key"])

					w.WriteHeader(http.StatusOK)
					_, _ = w.Write([]byte(`{"received": true}`))
				}))
			},
		},
		{
			name: "io.Reader body 原样发送",
			requestParam: &RequestParam{
				Method: "POST",
				Body:   strings.NewReader(`{"reader": "body"}`),
			},
			setupServer: func() *httptest.Server {
				return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "POST", r.Method)
					assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))

					body, err := io.ReadAll(r.Body)
					require.NoError(t, err)
					assert.Equal(t, `{"reader": "body"}`, string(body))

					w.WriteHeader(http.StatusOK)
					_, _ = w.Write([]byte(`{"received": true}`))
				}))
			},
		},
		{
			name: "非 2xx 状态码",
			requestParam: &RequestParam{
				Method: "GET",
			},
			setupServer: func() *httptest.Server {
				return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"error": "server error"}`))
				}))
			},
			wantErr:    true,
			wantErrMsg: "HTTP request failed with status 500",
		},
		{
			name: "单次请求 Timeout",
			requestParam: &RequestParam{
				Method:  "GET",
				Timeout: 100 * time.Millisecond,
			},
			setupServer: func() *httptest.Server {
				return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					time.Sleep(200 * time.Millisecond)
					w.WriteHeader(http.StatusOK)
				}))
			},
			wantErr:    true,
			wantErrMsg: "context deadline exceeded",
		},
		{
			name:         "nil 参数",
			requestParam: nil,
			setupServer: func() *httptest.Server {
				return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusOK)
				}))
			},
			wantErr:    true,
			wantErrMsg: "request param is nil",
		},
		{
			name: "URL 缺少协议",
			requestParam: &RequestParam{
				Method:     "GET",
				RequestURI: "://invalid-url",
			},
			setupServer: func() *httptest.Server {
				return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusOK)
				}))
			},
			wantErr:    true,
			wantErrMsg: "missing protocol scheme",
		},
		{
			name: "body 无法序列化",
			requestParam: &RequestParam{
				Method: "POST",
				Body:   make(chan int),
			},
			setupServer: func() *httptest.Server {
				return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusOK)
				}))
			},
			wantErr:    true,
			wantErrMsg: "json: unsupported type: chan int",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var server *httptest.Server
			if tt.setupServer != nil {
				server = tt.setupServer()
				if server != nil {
					defer server.Close()
					if tt.requestParam != nil && tt.requestParam.RequestURI == "" {
						tt.requestParam.RequestURI = server.URL
					}
				}
			}

			client := NewHTTPClient()
			ctx := context.Background()

			err := client.DoHTTPRequest(ctx, tt.requestParam)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantErrMsg != "" {
					assert.Contains(t, err.Error(), tt.wantErrMsg)
				}
				return
			}
			require.NoError(t, err)
			if tt.wantResponse != nil {
				assert.Equal(t, tt.wantResponse, *tt.requestParam.Response.(*map[string]interface{}))
			}
		})
	}
}

func TestHTTPClient_DoHTTPRequest_ContextCancellation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"result": "ok"}`))
	}))
	defer server.Close()

	client := NewHTTPClient()
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	requestParam := &RequestParam{
		Method:     "GET",
		RequestURI: server.URL,
		Response:   &map[string]interface{}{},
	}

	err := client.DoHTTPRequest(ctx, requestParam)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "context canceled")
}

func TestHTTPClient_DoHTTPRequest_EmptyResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Empty(t, body)
		assert.Empty(t, r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resp := map[string]interface{}{"untouched": true}
	err := NewHTTPClient().DoHTTPRequest(context.Background(), &RequestParam{
		Method:     "POST",
		RequestURI: server.URL,
		Response:   &resp,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"untouched": true}, resp)
}

func TestHTTPClient_DoHTTPRequest_NoDefaultTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(150 * time.Millisecond)
		_, _ = w.Write([]byte(`{"result": "ok"}`))
	}))
	defer server.Close()

	var resp map[string]string
	err := NewHTTPClient(WithTimeout(0)).DoHTTPRequest(context.Background(), &RequestParam{
		Method:     "GET",
		RequestURI: server.URL,
		Response:   &resp,
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp["result"])

	err = NewHTTPClient(WithTimeout(50*time.Millisecond)).DoHTTPRequest(context.Background(), &RequestParam{
		Method:     "GET",
		RequestURI: server.URL,
	})
	assert.Error(t, err)
}

func TestHTTPClient_DoHTTPRequest_BytesReader(t *testing.T) {
	t.Parallel()

	testData := []byte("test bytes data")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, testData, body)
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"result": "ok"}`))
	}))
	defer server.Close()

	client := NewHTTPClient()
	ctx := context.Background()

	requestParam := &RequestParam{
		Method:     "POST",
		RequestURI: server.URL,
		Body:       strings.NewReader(string(testData)),
	}

	err := client.DoHTTPRequest(ctx, requestParam)
	assert.NoError(t, err)
}

func TestHTTPClient_DoHTTPRequest_ErrorStatusCodes(t *testing.T) {
	t.Parallel()

	// remove.bg: 400 参数错误, 402 余额不足, 403 key 无效, 429 限流
	statusCodes := []int{400, 402, 403, 429, 500, 503}

	for _, statusCode := range statusCodes {
		t.Run(strconv.Itoa(statusCode), func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(statusCode)
				_, _ = w.Write([]byte(`{"errors":[{"title":"Error message"}]}`))
			}))
			defer server.Close()

			client := NewHTTPClient()
			ctx := context.Background()

			requestParam := &RequestParam{
				Method:     "GET",
				RequestURI: server.URL,
			}

			err := client.DoHTTPRequest(ctx, requestParam)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "HTTP request failed with status")
			assert.Contains(t, err.Error(), "Error message")

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, statusCode, statusErr.StatusCode)
			assert.JSONEq(t, `{"errors":[{"title":"Error message"}]}`, string(statusErr.Body))
		})
	}
}

func TestHTTPClient_DoHTTPRequest_RawResponse(t *testing.T) {
	t.Parallel()

	// 二进制响应（例如图片）原样写入 *[]byte
	payload := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	var got []byte
	err := NewHTTPClient().DoHTTPRequest(context.Background(), &RequestParam{
		Method:     "POST",
		RequestURI: server.URL,
		Body:       []byte("raw"),
		Response:   &got,
	})
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestHTTPClient_DoHTTPRequest_HeaderOverridesContentType(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "multipart/form-data; boundary=abc", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	err := NewHTTPClient().DoHTTPRequest(context.Background(), &RequestParam{
		Method:     "POST",
		RequestURI: server.URL,
		Body:       strings.NewReader("--abc--"),
		Header: map[string]string{
			"Content-Type": "multipart/form-data; boundary=abc",
			"X-Api-Key":    "secret",
		},
		Response: &map[string]interface{}{},
	})
	assert.NoError(t, err)
}
