package yahoo

import (
	"time"

	"QuotePull/internal/domain/repository"
	"QuotePull/pkg/logger"
)

const (
	DefaultCookieURL   = "https://fc.yahoo.com"
	DefaultHomepageURL = "https://finance.yahoo.com"
	DefaultQuery1URL   = "https://query1.finance.yahoo.com"
	DefaultQuery2URL   = "https://query2.finance.yahoo.com"
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0"

	DefaultSessionTTL       = 60 * time.Second
	DefaultMaxRetries       = 2
	DefaultBatchSize        = 50
	DefaultBatchConcurrency = 4
	DefaultAuthTimeout      = 20 * time.Second
	DefaultFetchTimeout     = 45 * time.Second
	DefaultDividendRange    = "2y"
)

// Endpoints are the provider hosts. Tests and mirrors override them.
type Endpoints struct {
	CookieURL   string
	HomepageURL string
	Query1URL   string
	Query2URL   string
}

// Config controls session and fetch behavior.
type Config struct {
	Endpoints        Endpoints
	UserAgent        string
	SessionTTL       time.Duration
	MaxRetries       int
	BatchSize        int
	BatchConcurrency int
	AuthTimeout      time.Duration
	FetchTimeout     time.Duration
	CacheTTL         time.Duration
	CacheMaxEntries  int
}

// DefaultConfig returns the production settings.
func DefaultConfig() Config {
	return Config{
		Endpoints: Endpoints{
			CookieURL:   DefaultCookieURL,
			HomepageURL: DefaultHomepageURL,
			Query1URL:   DefaultQuery1URL,
			Query2URL:   DefaultQuery2URL,
		},
		UserAgent:        DefaultUserAgent,
		SessionTTL:       DefaultSessionTTL,
		MaxRetries:       DefaultMaxRetries,
		BatchSize:        DefaultBatchSize,
		BatchConcurrency: DefaultBatchConcurrency,
		AuthTimeout:      DefaultAuthTimeout,
		FetchTimeout:     DefaultFetchTimeout,
	}
}

// withDefaults fills zero fields from DefaultConfig. MaxRetries of zero is kept.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Endpoints.CookieURL == "" {
		c.Endpoints.CookieURL = d.Endpoints.CookieURL
	}
	if c.Endpoints.HomepageURL == "" {
		c.Endpoints.HomepageURL = d.Endpoints.HomepageURL
	}
	if c.Endpoints.Query1URL == "" {
		c.Endpoints.Query1URL = d.Endpoints.Query1URL
	}
	if c.Endpoints.Query2URL == "" {
		c.Endpoints.Query2URL = d.Endpoints.Query2URL
	}
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = d.SessionTTL
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = d.MaxRetries
	}
	if c.BatchSize <= 0 {
		c.BatchSize = d.BatchSize
	}
	if c.BatchConcurrency <= 0 {
		c.BatchConcurrency = d.BatchConcurrency
	}
	if c.AuthTimeout <= 0 {
		c.AuthTimeout = d.AuthTimeout
	}
	return c
}

// Option configures Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m repository.Metrics) Option {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithClock overrides the time source for the session and the caches.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithSession injects a prebuilt session.
func WithSession(s *Session) Option {
	return func(c *Client) {
		c.session = s
	}
}
