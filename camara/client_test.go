package camara

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) Config {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.Timeout = 2 * time.Second
	cfg.BackoffBase = time.Millisecond
	cfg.BackoffMax = 5 * time.Millisecond
	return cfg
}

func newTestClient(t *testing.T, cfg Config, opts ...Option) *Client {
	t.Helper()
	c, err := NewClient(cfg, zerolog.Nop(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, dados any, next string) {
	t.Helper()
	links := []Link{{Rel: "self", Href: "ignored"}}
	if next != "" {
		links = append(links, Link{Rel: "next", Href: next})
	}
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(map[string]any{"dados": dados, "links": links}))
}

// countingTransport counts how often the pool is released.
type countingTransport struct {
	http.RoundTripper
	closes atomic.Int32
}

func (t *countingTransport) CloseIdleConnections() {
	t.closes.Add(1)
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "trailing slash", modify: func(c *Config) { c.BaseURL = "http://localhost:8080/api/v2/" }},
		{name: "missing URL", modify: func(c *Config) { c.BaseURL = "" }, wantErr: "base URL is required"},
		{name: "relative URL", modify: func(c *Config) { c.BaseURL = "/api/v2" }, wantErr: "absolute http(s) URL"},
		{name: "zero timeout", modify: func(c *Config) { c.Timeout = 0 }, wantErr: "timeout must be positive"},
		{name: "negative retries", modify: func(c *Config) { c.MaxRetries = -1 }, wantErr: "max retries"},
		{name: "backoff max below base", modify: func(c *Config) { c.BackoffMax = time.Millisecond }, wantErr: "backoff max"},
		{name: "negative page size", modify: func(c *Config) { c.PageSize = -1 }, wantErr: "page size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			c, err := NewClient(cfg, zerolog.Nop())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			defer c.Close()
			assert.False(t, strings.HasSuffix(c.Config().BaseURL, "/"))
		})
	}
}

func TestClient_GetByID(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "/deputados/204554", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "camara-go/"+Version, r.Header.Get("User-Agent"))
		assert.Empty(t, r.URL.Query().Get("itens"))
		writeEnvelope(t, w, map[string]any{"id": 204554, "nomeCivil": "Fulano de Tal"}, "")
	}))
	defer server.Close()

	c := newTestClient(t, testConfig(server.URL))

	rec, err := c.Deputado(context.Background(), 204554)
	require.NoError(t, err)
	assert.Equal(t, int32(1), requests.Load())
	assert.Equal(t, float64(204554), rec["id"])
	assert.Equal(t, "Fulano de Tal", rec["nomeCivil"])
}

func TestClient_Pagination(t *testing.T) {
	var server *httptest.Server
	var requests atomic.Int32
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "/deputados", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("itens"))

		switch r.URL.Query().Get("pagina") {
		case "", "1":
			writeEnvelope(t, w, []Deputado{{ID: 1}, {ID: 2}}, server.URL+"/deputados?pagina=2&itens=2")
		case "2":
			writeEnvelope(t, w, []Deputado{{ID: 3}, {ID: 4}}, server.URL+"/deputados?pagina=3&itens=2")
		case "3":
			writeEnvelope(t, w, []Deputado{{ID: 5}}, "")
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("pagina"))
		}
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.PageSize = 2
	c := newTestClient(t, cfg)

	deputados, err := c.Deputados(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int32(3), requests.Load())

	ids := make([]int, 0, len(deputados))
	for _, d := range deputados {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids)
}

func TestClient_PaginationRelativeNext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pagina") == "2" {
			writeEnvelope(t, w, []Record{{"id": 2}}, "")
			return
		}
		writeEnvelope(t, w, []Record{{"id": 1}}, "/partidos?pagina=2")
	}))
	defer server.Close()

	c := newTestClient(t, testConfig(server.URL))

	records, err := c.List(context.Background(), "partidos", nil)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestClient_PaginationStops(t *testing.T) {
	tests := []struct {
		name         string
		maxPages     int
		handler      func(server *httptest.Server) func(w http.ResponseWriter, r *http.Request)
		wantRecords  int
		wantRequests int32
	}{
		{
			name: "empty page with next link",
			handler: func(server *httptest.Server) func(w http.ResponseWriter, r *http.Request) {
				return func(w http.ResponseWriter, r *http.Request) {
					writeEnvelope(t, w, []Record{}, server.URL+"/orgaos?pagina=2")
				}
			},
			wantRecords:  0,
			wantRequests: 1,
		},
		{
			name: "next link to the same page",
			handler: func(server *httptest.Server) func(w http.ResponseWriter, r *http.Request) {
				return func(w http.ResponseWriter, r *http.Request) {
					writeEnvelope(t, w, []Record{{"id": 1}}, server.URL+r.URL.RequestURI())
				}
			},
			wantRecords:  1,
			wantRequests: 1,
		},
		{
			name:     "max pages",
			maxPages: 2,
			handler: func(server *httptest.Server) func(w http.ResponseWriter, r *http.Request) {
				return func(w http.ResponseWriter, r *http.Request) {
					page, _ := strconv.Atoi(r.URL.Query().Get("pagina"))
					next := fmt.Sprintf("%s/orgaos?pagina=%d", server.URL, page+1)
					writeEnvelope(t, w, []Record{{"id": page}}, next)
				}
			},
			wantRecords:  2,
			wantRequests: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requests atomic.Int32
			var handler http.HandlerFunc
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests.Add(1)
				handler(w, r)
			}))
			defer server.Close()
			handler = tt.handler(server)

			cfg := testConfig(server.URL)
			cfg.MaxPages = tt.maxPages
			c := newTestClient(t, cfg)

			records, err := c.List(context.Background(), "orgaos", nil)
			require.NoError(t, err)
			assert.Len(t, records, tt.wantRecords)
			assert.Equal(t, tt.wantRequests, requests.Load())
		})
	}
}

func TestClient_PaginationFailingPage(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pagina") == "2" {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		writeEnvelope(t, w, []Deputado{{ID: 1}}, server.URL+"/deputados?pagina=2")
	}))
	defer server.Close()

	c := newTestClient(t, testConfig(server.URL))

	deputados, err := c.Deputados(context.Background(), nil)
	require.Error(t, err)
	assert.Nil(t, deputados)
	assert.Contains(t, err.Error(), "page 2")
	assert.True(t, IsNotFound(err))
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		http.Error(w, "upstream down", http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.MaxRetries = 2
	c := newTestClient(t, cfg)

	_, err := c.Partido(context.Background(), 36844)
	require.Error(t, err)
	assert.Equal(t, int32(3), requests.Load())

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, 3, httpErr.Attempts)
	assert.Contains(t, httpErr.Body, "upstream down")
	assert.True(t, httpErr.IsServerError())
	assert.True(t, IsTransient(err))
}

func TestClient_RecoversAfterServerError(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeEnvelope(t, w, map[string]any{"id": 1}, "")
	}))
	defer server.Close()

	c := newTestClient(t, testConfig(server.URL))

	rec, err := c.Evento(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, float64(1), rec["id"])
	assert.Equal(t, int32(2), requests.Load())
}

func TestClient_ClientErrorsAreNotRetried(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "not found", status: http.StatusNotFound},
		{name: "bad request", status: http.StatusBadRequest},
		{name: "too many requests", status: http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requests atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			c := newTestClient(t, testConfig(server.URL))

			_, err := c.Proposicao(context.Background(), 1)
			require.Error(t, err)
			assert.Equal(t, int32(1), requests.Load())

			var httpErr *HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.True(t, httpErr.IsClientError())
			assert.Equal(t, tt.status == http.StatusNotFound, IsNotFound(err))
			assert.False(t, IsTransient(err))
		})
	}
}

func TestClient_DecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "not JSON", body: "<html>manutenção</html>", want: "not valid JSON"},
		{name: "not an object", body: `[1, 2]`, want: "JSON object"},
		{name: "no dados", body: `{"links": []}`, want: `no "dados"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := newTestClient(t, testConfig(server.URL))

			_, err := c.Orgao(context.Background(), 180)
			require.Error(t, err)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Contains(t, decodeErr.Reason, tt.want)

			var httpErr *HTTPError
			assert.False(t, errors.As(err, &httpErr))
		})
	}
}

func TestClient_DadosShapeMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, map[string]any{"id": 1}, "")
	}))
	defer server.Close()

	c := newTestClient(t, testConfig(server.URL))

	_, err := c.Deputados(context.Background(), nil)
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Contains(t, decodeErr.Reason, "not a list")
}

func TestClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	cfg := testConfig(baseURL)
	cfg.MaxRetries = 1
	c := newTestClient(t, cfg)

	_, err := c.Deputado(context.Background(), 1)
	require.Error(t, err)

	var connErr *ConnectionError
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, 2, connErr.Attempts)
	assert.True(t, IsTransient(err))
}

func TestClient_Timeout(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Timeout = 50 * time.Millisecond
	cfg.MaxRetries = 1
	c := newTestClient(t, cfg)

	_, err := c.Deputado(context.Background(), 1)
	require.Error(t, err)

	var timeoutErr *TimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, 2, timeoutErr.Attempts)
	assert.Equal(t, int32(2), requests.Load())
}

func TestClient_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, map[string]any{}, "")
	}))
	defer server.Close()

	c := newTestClient(t, testConfig(server.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Deputado(ctx, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsTransient(err))
}

func TestClient_Close(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, map[string]any{"id": 1}, "")
	}))
	defer server.Close()

	transport := &countingTransport{RoundTripper: http.DefaultTransport}
	c, err := NewClient(testConfig(server.URL), zerolog.Nop(), WithHTTPClient(&http.Client{Transport: transport}))
	require.NoError(t, err)

	_, err = c.Deputado(context.Background(), 1)
	require.NoError(t, err)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Equal(t, int32(1), transport.closes.Load())

	_, err = c.Deputado(context.Background(), 1)
	assert.ErrorIs(t, err, ErrClientClosed)
}

func TestWith(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, map[string]any{"id": 1}, "")
	}))
	defer server.Close()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusInternalServerError)
	}))
	defer failing.Close()

	errBody := errors.New("body failed")

	tests := []struct {
		name      string
		fn        func(*Client) error
		wantErr   error
		wantPanic bool
	}{
		{
			name: "success",
			fn: func(c *Client) error {
				_, err := c.Deputado(context.Background(), 1)
				return err
			},
		},
		{
			name: "body error",
			fn: func(c *Client) error {
				if _, err := c.Deputado(context.Background(), 1); err != nil {
					return err
				}
				return errBody
			},
			wantErr: errBody,
		},
		{
			name: "failed API call",
			fn: func(c *Client) error {
				if _, err := c.Do(context.Background(), failing.URL+"/deputados/1", nil); err != nil {
					return fmt.Errorf("%w: %w", errBody, err)
				}
				return nil
			},
			wantErr: errBody,
		},
		{
			name:      "body panic",
			fn:        func(*Client) error { panic("boom") },
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &countingTransport{RoundTripper: http.DefaultTransport}
			run := func() error {
				return With(testConfig(server.URL), zerolog.Nop(), tt.fn, WithHTTPClient(&http.Client{Transport: transport}))
			}

			if tt.wantPanic {
				assert.Panics(t, func() { _ = run() })
			} else {
				err := run()
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.NoError(t, err)
				}
			}
			assert.Equal(t, int32(1), transport.closes.Load())
		})
	}
}

func TestClient_FailedCallsKeepPool(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.MaxRetries = 1
	transport := &countingTransport{RoundTripper: http.DefaultTransport}
	c := newTestClient(t, cfg, WithHTTPClient(&http.Client{Transport: transport}))

	for range 3 {
		_, err := c.Deputado(context.Background(), 1)
		require.Error(t, err)
	}
	assert.Zero(t, transport.closes.Load())

	require.NoError(t, c.Close())
	assert.Equal(t, int32(1), transport.closes.Load())
}

func TestClient_RetryAfterIsCapped(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "3")
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.MaxRetries = 1
	c := newTestClient(t, cfg)

	start := time.Now()
	_, err := c.Deputado(context.Background(), 1)
	elapsed := time.Since(start)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
	assert.Equal(t, 2, httpErr.Attempts)
	assert.Equal(t, int32(2), calls.Load())
	assert.Less(t, elapsed, time.Second)
}

func TestCappedBackoff(t *testing.T) {
	resp := &http.Response{StatusCode: http.StatusServiceUnavailable, Header: http.Header{"Retry-After": []string{"120"}}}
	assert.Equal(t, 5*time.Millisecond, cappedBackoff(time.Millisecond, 5*time.Millisecond, 0, resp))
	assert.LessOrEqual(t, cappedBackoff(time.Millisecond, 5*time.Millisecond, 10, nil), 5*time.Millisecond)
}

func TestWith_InvalidConfig(t *testing.T) {
	called := false
	err := With(Config{}, zerolog.Nop(), func(*Client) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.False(t, called)
}

func TestClient_Headers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc", r.Header.Get("X-Request-Id"))
		assert.Equal(t, "pesquisa/1.0", r.Header.Get("User-Agent"))
		writeEnvelope(t, w, map[string]any{}, "")
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.UserAgent = "pesquisa/1.0"
	c := newTestClient(t, cfg, WithHeader("X-Request-Id", "abc"))

	_, err := c.Do(context.Background(), "deputados/1", nil)
	require.NoError(t, err)
}

func TestClient_DoAbsoluteURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/partidos/36844", r.URL.Path)
		writeEnvelope(t, w, map[string]any{"sigla": "PT"}, "")
	}))
	defer server.Close()

	c := newTestClient(t, testConfig("https://dadosabertos.camara.leg.br/api/v2"))

	resp, err := c.Do(context.Background(), server.URL+"/api/v2/partidos/36844", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var partido Partido
	require.NoError(t, resp.Decode(&partido))
	assert.Equal(t, "PT", partido.Sigla)
	_, ok := resp.Next()
	assert.False(t, ok)
}
