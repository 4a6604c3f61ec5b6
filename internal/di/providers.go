package di

import (
	"fmt"
	"time"

	"QuotePull/internal/domain/repository"
	"QuotePull/internal/domain/service"
	"QuotePull/internal/handler/api"
	"QuotePull/internal/service/ratelimit"
	"QuotePull/internal/service/yahoo"
	"QuotePull/pkg/config"
	xhttp "QuotePull/pkg/http"
	"QuotePull/pkg/logger"
	"QuotePull/pkg/metrics"
	"QuotePull/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const limiterPruneInterval = 5 * time.Minute

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: cfg.Log.TimeFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(logger.String("env", cfg.Environment)), nil
}

// ProvideRegistry creates the Prometheus registry shared by every collector.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.New(reg)
}

// ProvideHTTPClient creates the outbound HTTP client.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(xhttp.WithTimeout(cfg.Yahoo.RequestTimeout))
}

// ProvideYahooConfig maps the YAML section onto the client settings.
func ProvideYahooConfig(cfg *config.Config) yahoo.Config {
	y := cfg.Yahoo
	c := yahoo.Config{
		Endpoints: yahoo.Endpoints{
			CookieURL:   y.CookieURL,
			HomepageURL: y.HomepageURL,
			Query1URL:   y.Query1URL,
			Query2URL:   y.Query2URL,
		},
		UserAgent:        y.UserAgent,
		SessionTTL:       y.SessionTTL,
		MaxRetries:       yahoo.DefaultMaxRetries,
		BatchSize:        y.BatchSize,
		BatchConcurrency: y.BatchConcurrency,
		AuthTimeout:      y.AuthTimeout,
		FetchTimeout:     y.FetchTimeout,
		CacheTTL:         cfg.Cache.TTL,
		CacheMaxEntries:  cfg.Cache.MaxEntries,
	}
	if y.MaxRetries != nil {
		c.MaxRetries = *y.MaxRetries
	}
	return c
}

// ProvideYahooClient creates the quote client.
func ProvideYahooClient(doer yahoo.Doer, cfg yahoo.Config, l *logger.Logger, m repository.Metrics) *yahoo.Client {
	return yahoo.New(doer, cfg,
		yahoo.WithLogger(l.With(logger.String("component", "yahoo"))),
		yahoo.WithMetrics(m),
	)
}

// ProvideQuoteService exposes the client as the service the handlers use.
func ProvideQuoteService(c *yahoo.Client) service.QuoteService {
	return c
}

// ProvideRateLimiter returns nil when inbound rate limiting is disabled.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return ratelimit.New(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec)
}

// ProvideQuotesHandler creates the /api handler.
func ProvideQuotesHandler(l *logger.Logger, svc service.QuoteService) xhttp.Handler {
	return api.NewQuotesEchoHandler(l, svc)
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(
	cfg *config.Config,
	h xhttp.Handler,
	l *logger.Logger,
	reg *prometheus.Registry,
	limiter *ratelimit.Limiter,
) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(cfg.Metrics.Path, reg))
	}
	// a nil *Limiter must not reach the Allower interface
	if limiter != nil {
		opts = append(opts, xhttp.WithRateLimit(limiter))
	}
	return xhttp.NewServer(h, l, opts...)
}

// ProvideApp creates the application server.
func ProvideApp(srv *xhttp.Server, l *logger.Logger, limiter *ratelimit.Limiter) *server.App {
	app := server.New(srv, l)
	if limiter != nil {
		app.AddJanitor(limiterPruneInterval, func() {
			if n := limiter.Prune(); n > 0 {
				l.Debug("pruned idle rate limit buckets", logger.Int("count", n))
			}
		})
	}
	return app
}
