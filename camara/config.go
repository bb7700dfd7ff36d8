package camara

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public endpoint of the Open Data API, version 2.
	DefaultBaseURL     = "https://dadosabertos.camara.leg.br/api/v2"
	DefaultTimeout     = 30 * time.Second
	DefaultMaxRetries  = 3
	DefaultBackoffBase = 500 * time.Millisecond
	DefaultBackoffMax  = 30 * time.Second
	// DefaultPageSize is the largest page the API serves.
	DefaultPageSize = 100
)

// Config holds the settings of a Client. A Client copies it on construction,
// so changing a Config afterwards has no effect on clients built from it.
type Config struct {
	BaseURL     string
	Timeout     time.Duration // per attempt
	MaxRetries  int
	BackoffBase time.Duration
	BackoffMax  time.Duration
	UserAgent   string
	PageSize    int // sent as "itens" on the first page of list calls; 0 leaves it to the API
	MaxPages    int // 0 follows every next link
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		Timeout:     DefaultTimeout,
		MaxRetries:  DefaultMaxRetries,
		BackoffBase: DefaultBackoffBase,
		BackoffMax:  DefaultBackoffMax,
		UserAgent:   "camara-go/" + Version,
		PageSize:    DefaultPageSize,
	}
}

// Validate checks the invariants of a Config.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: base URL: %v", ErrInvalidConfig, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base URL must be an absolute http(s) URL, got %q", ErrInvalidConfig, c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries must not be negative", ErrInvalidConfig)
	}
	if c.BackoffBase < 0 {
		return fmt.Errorf("%w: backoff base must not be negative", ErrInvalidConfig)
	}
	if c.BackoffMax < c.BackoffBase {
		return fmt.Errorf("%w: backoff max (%s) is below backoff base (%s)", ErrInvalidConfig, c.BackoffMax, c.BackoffBase)
	}
	if c.PageSize < 0 || c.MaxPages < 0 {
		return fmt.Errorf("%w: page size and max pages must not be negative", ErrInvalidConfig)
	}
	return nil
}

func (c Config) normalized() Config {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return c
}
