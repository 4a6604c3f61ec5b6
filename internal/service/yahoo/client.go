package yahoo

import (
	"context"
	"regexp"
	"time"

	"QuotePull/internal/domain/models"
	"QuotePull/internal/domain/repository"
	"QuotePull/pkg/cache"
	xhttp "QuotePull/pkg/http"
	"QuotePull/pkg/logger"
)

// authFailureBody matches provider replies that mean the crumb or cookie was rejected.
var authFailureBody = regexp.MustCompile(`(?i)invalid cookie|invalid crumb|unauthorized`)

// Client fetches quotes and dividend history, retrying with a fresh session
// when the provider rejects the current one.
type Client struct {
	cfg       Config
	http      Doer
	session   *Session
	quotes    *cache.Memory[models.Quote]
	histories *cache.Memory[[]models.DividendEvent]
	now       func() time.Time
	log       *logger.Logger
	metrics   repository.Metrics
}

// New creates a Client. Unless WithSession is given, it owns a fresh Session
// running DefaultStrategies.
func New(doer Doer, cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:     cfg.withDefaults(),
		http:    doer,
		now:     time.Now,
		log:     logger.Nop(),
		metrics: repository.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.session == nil {
		c.session = NewSession(DefaultStrategies(doer, c.cfg),
			WithSessionTTL(c.cfg.SessionTTL),
			WithAuthTimeout(c.cfg.AuthTimeout),
			WithDefaultBaseURL(c.cfg.Endpoints.Query1URL),
			WithSessionClock(c.now),
			WithSessionLogger(c.log),
			WithSessionMetrics(c.metrics),
		)
	}

	cacheOpts := []cache.MemoryOption{
		cache.WithTTL(c.cfg.CacheTTL),
		cache.WithMaxEntries(c.cfg.CacheMaxEntries),
		cache.WithClock(c.now),
	}
	c.quotes = cache.NewMemory[models.Quote](cacheOpts...)
	c.histories = cache.NewMemory[[]models.DividendEvent](cacheOpts...).WithCloner(cloneEvents)
	return c
}

// Session exposes the client's session.
func (c *Client) Session() *Session { return c.session }

type attemptOutcome int

const (
	outcomeOK attemptOutcome = iota
	outcomeAuthFailure
	outcomeConnectionFailure
)

type attempt struct {
	outcome attemptOutcome
	status  int
	body    []byte
	err     error
}

// requestBuilder turns the credentials of one attempt into a request.
type requestBuilder func(creds Credentials) (*xhttp.RequestOptions, error)

// authorizedGet runs up to MaxRetries+1 attempts. An auth failure invalidates
// the session and tries again; any other failure ends the loop.
func (c *Client) authorizedGet(ctx context.Context, endpoint string, build requestBuilder) ([]byte, error) {
	if c.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.FetchTimeout)
		defer cancel()
	}

	for try := 0; try <= c.cfg.MaxRetries; try++ {
		creds, err := c.session.EnsureAuthenticated(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, connectionError(0, err)
			}
			return nil, &FetchError{Kind: ErrAuthentication, Message: "Authentication failed: all authentication strategies failed", Err: err}
		}

		opts, err := build(creds)
		if err != nil {
			return nil, connectionError(0, err)
		}

		a := c.do(ctx, opts)
		switch a.outcome {
		case outcomeOK:
			c.metrics.RecordUpstreamRequest(endpoint, "ok")
			return a.body, nil
		case outcomeAuthFailure:
			c.metrics.RecordUpstreamRequest(endpoint, "auth_failure")
			c.session.InvalidateIf(creds)
			c.log.Warn("provider rejected session",
				logger.String("endpoint", endpoint),
				logger.Int("attempt", try+1),
				logger.Int("status", a.status),
			)
		default:
			c.metrics.RecordUpstreamRequest(endpoint, "error")
			c.log.Error("provider request failed",
				logger.String("endpoint", endpoint),
				logger.Int("status", a.status),
				logger.Error(a.errOrStatus()),
			)
			return nil, connectionError(a.status, a.err)
		}
	}
	return nil, authExhaustedError(c.cfg.MaxRetries)
}

func (c *Client) do(ctx context.Context, opts *xhttp.RequestOptions) attempt {
	resp, err := c.http.Fetch(ctx, opts)
	if err != nil {
		return attempt{outcome: outcomeConnectionFailure, err: err}
	}
	if resp.StatusCode == 401 || authFailureBody.Match(resp.Body) {
		return attempt{outcome: outcomeAuthFailure, status: resp.StatusCode}
	}
	if !resp.Success() {
		return attempt{outcome: outcomeConnectionFailure, status: resp.StatusCode}
	}
	return attempt{outcome: outcomeOK, status: resp.StatusCode, body: resp.Body}
}

func (a attempt) errOrStatus() error {
	if a.err != nil {
		return a.err
	}
	return &FetchError{Kind: ErrConnection, Message: msgConnectionFailed, Status: a.status}
}

func (c *Client) dataHeaders(creds Credentials) map[string]string {
	return map[string]string{
		"User-Agent": c.cfg.UserAgent,
		"Accept":     "application/json,text/plain,*/*",
		"Cookie":     creds.Cookie,
	}
}

func (c *Client) observe(op string, start time.Time) {
	c.metrics.RecordLatency(op, time.Since(start).Seconds())
}

func cloneEvents(in []models.DividendEvent) []models.DividendEvent {
	if in == nil {
		return nil
	}
	return append(make([]models.DividendEvent, 0, len(in)), in...)
}
