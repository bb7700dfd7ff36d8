package camara

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// Client represents a Camara Open Data API client
type Client struct {
	cfg        Config
	httpClient *http.Client
	retry      *retryablehttp.Client
	headers    http.Header
	logger     zerolog.Logger

	closed    atomic.Bool
	closeOnce sync.Once
}

// NewClient creates a new client from cfg. No request is made until the
// first call.
func NewClient(cfg Config, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:        cfg.normalized(),
		httpClient: cleanhttp.DefaultPooledClient(),
		headers:    make(http.Header),
		logger:     logger.With().Str("component", "camara").Logger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	// Copy so a caller-supplied client keeps its own timeout.
	hc := *c.httpClient
	hc.Timeout = c.cfg.Timeout
	c.httpClient = &hc

	// retryablehttp drops idle connections after every failed call. The pool
	// is shared by concurrent callers, so only Close may release it.
	rc := *c.httpClient
	rc.Transport = keepIdle{transportOf(c.httpClient)}

	c.retry = &retryablehttp.Client{
		HTTPClient:     &rc,
		Logger:         retryLogger{c.logger},
		RetryWaitMin:   c.cfg.BackoffBase,
		RetryWaitMax:   c.cfg.BackoffMax,
		RetryMax:       c.cfg.MaxRetries,
		CheckRetry:     retryPolicy,
		Backoff:        cappedBackoff,
		ErrorHandler:   retryablehttp.PassthroughErrorHandler,
		RequestLogHook: countAttempt,
	}

	return c, nil
}

// With creates a client, runs fn with it and releases the connection pool on
// every exit path, including a panic in fn.
func With(cfg Config, logger zerolog.Logger, fn func(*Client) error, opts ...Option) error {
	c, err := NewClient(cfg, logger, opts...)
	if err != nil {
		return err
	}
	defer c.Close()

	return fn(c)
}

// Config returns a copy of the client's configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Close releases pooled connections. It is safe to call more than once;
// only the first call has an effect.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.httpClient.CloseIdleConnections()
		c.logger.Debug().Msg("Released connection pool")
	})
	return nil
}

// retryPolicy retries transport failures and 5xx responses. A 4xx is the
// caller's fault and is returned on the first attempt.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		// Delegates so that TLS, scheme and redirect-loop errors are not retried.
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	return resp.StatusCode == 0 || resp.StatusCode >= http.StatusInternalServerError, nil
}

// cappedBackoff is retryablehttp's exponential backoff with a server-sent
// Retry-After also held to the configured maximum.
func cappedBackoff(lo, hi time.Duration, attempt int, resp *http.Response) time.Duration {
	return min(retryablehttp.DefaultBackoff(lo, hi, attempt, resp), hi)
}

// keepIdle hides CloseIdleConnections of the wrapped transport.
type keepIdle struct {
	http.RoundTripper
}

func transportOf(hc *http.Client) http.RoundTripper {
	if hc.Transport != nil {
		return hc.Transport
	}
	return http.DefaultTransport
}

type attemptsKey struct{}

// countAttempt records the attempt number on the counter carried by the
// request context.
func countAttempt(_ retryablehttp.Logger, req *http.Request, attempt int) {
	if n, ok := req.Context().Value(attemptsKey{}).(*int); ok {
		*n = attempt + 1
	}
}

// Do performs one GET (with retries) against path and returns the decoded envelope.
// path is relative to the base URL; an absolute http(s) URL is used as is,
// which allows following the "uri" fields the API embeds in records.
func (c *Client) Do(ctx context.Context, path string, params url.Values) (*Response, error) {
	return c.get(ctx, c.resolve(path, params))
}

func (c *Client) resolve(path string, params url.Values) string {
	var target string
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		target = path
	} else {
		target = c.cfg.BaseURL + "/" + strings.TrimLeft(path, "/")
	}
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + params.Encode()
	}
	return target
}

func (c *Client) get(ctx context.Context, target string) (*Response, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}

	attempts := 0
	ctx = context.WithValue(ctx, attemptsKey{}, &attempts)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")
	for key, values := range c.headers {
		req.Header[key] = values
	}

	start := time.Now()
	resp, err := c.retry.Do(req)
	if err != nil {
		return nil, classify(target, attempts, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(target, attempts, err)
	}

	c.logger.Debug().
		Str("url", target).
		Int("status", resp.StatusCode).
		Int("attempts", attempts).
		Dur("elapsed", time.Since(start)).
		Msg("Camara API response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			URL:        target,
			Body:       strings.TrimSpace(string(body)),
			Attempts:   attempts,
		}
	}

	return decodeEnvelope(target, resp.StatusCode, body)
}

// classify maps a transport failure onto the error taxonomy.
func classify(target string, attempts int, err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("GET %s: %w", target, err)
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &TimeoutError{URL: target, Attempts: attempts, Err: err}
	}
	return &ConnectionError{URL: target, Attempts: attempts, Err: err}
}

// Pages calls fn for every non-empty page of a list endpoint, following the
// "next" links of the envelope. It stops at the first error; records already
// handed to fn are the caller's to discard.
func (c *Client) Pages(ctx context.Context, path string, params url.Values, fn func(*Response) error) error {
	q := url.Values{}
	for key, values := range params {
		q[key] = append([]string(nil), values...)
	}
	if c.cfg.PageSize > 0 && q.Get("itens") == "" {
		q.Set("itens", strconv.Itoa(c.cfg.PageSize))
	}

	next := c.resolve(path, q)
	visited := map[string]bool{}

	for page := 1; ; page++ {
		resp, err := c.get(ctx, next)
		if err != nil {
			return fmt.Errorf("page %d: %w", page, err)
		}
		visited[next] = true

		empty := resp.empty()
		if !empty {
			if err := fn(resp); err != nil {
				return err
			}
		}

		c.logger.Debug().
			Str("path", path).
			Int("page", page).
			Bool("empty", empty).
			Msg("Retrieved page")

		href, ok := resp.Next()
		if !ok || empty || (c.cfg.MaxPages > 0 && page >= c.cfg.MaxPages) {
			return nil
		}
		if next, err = resp.resolveLink(href); err != nil {
			return err
		}
		if visited[next] {
			c.logger.Warn().Str("url", next).Msg("Next link points to a page already read, stopping")
			return nil
		}
	}
}

// Get performs a single request and decodes its "dados" into out.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	resp, err := c.Do(ctx, path, params)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

// List reads every page of a list endpoint into records.
func (c *Client) List(ctx context.Context, path string, params url.Values) ([]Record, error) {
	return list[Record](ctx, c, path, params)
}

func list[T any](ctx context.Context, c *Client, path string, params url.Values) ([]T, error) {
	out := []T{}
	err := c.Pages(ctx, path, params, func(resp *Response) error {
		var page []T
		if err := json.Unmarshal(resp.Dados, &page); err != nil {
			return &DecodeError{URL: resp.URL, Reason: `"dados" is not a list`, Err: err}
		}
		out = append(out, page...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func fetch[T any](ctx context.Context, c *Client, path string, params url.Values) (T, error) {
	var out T
	resp, err := c.Do(ctx, path, params)
	if err != nil {
		return out, err
	}
	err = resp.Decode(&out)
	return out, err
}

// retryLogger adapts zerolog to retryablehttp.LeveledLogger. Per-attempt
// failures are logged as warnings since the final error reaches the caller.
type retryLogger struct {
	logger zerolog.Logger
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Warn().Fields(stringify(keysAndValues)).Msg(msg)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn().Fields(stringify(keysAndValues)).Msg(msg)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info().Fields(stringify(keysAndValues)).Msg(msg)
}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(stringify(keysAndValues)).Msg(msg)
}

func stringify(keysAndValues []interface{}) []interface{} {
	out := make([]interface{}, len(keysAndValues))
	for i, v := range keysAndValues {
		switch tv := v.(type) {
		case error:
			out[i] = tv.Error()
		case fmt.Stringer:
			out[i] = tv.String()
		default:
			out[i] = v
		}
	}
	return out
}
