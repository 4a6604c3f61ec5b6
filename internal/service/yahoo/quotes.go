package yahoo

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"QuotePull/internal/domain/models"
	"QuotePull/pkg/cache"
	xhttp "QuotePull/pkg/http"
	"QuotePull/pkg/logger"

	"golang.org/x/sync/errgroup"
)

const (
	quotePath     = "/v7/finance/quote"
	endpointQuote = "quote"
)

// GetQuote returns the quote for symbol, from cache when fresh. Failures come
// back as error markers and are never cached.
func (c *Client) GetQuote(ctx context.Context, symbol string) models.QuoteResult {
	defer c.observe("get_quote", time.Now())

	key := cache.QuoteKey(symbol)
	if q, ok := c.quotes.Get(key); ok {
		c.metrics.RecordCacheLookup("quote", true)
		return models.QuoteOK(q)
	}
	c.metrics.RecordCacheLookup("quote", false)

	q, err := c.fetchQuote(ctx, symbol)
	if err != nil {
		return resultFromError(err)
	}
	c.quotes.Set(key, q)
	return models.QuoteOK(q)
}

func (c *Client) fetchQuote(ctx context.Context, symbol string) (models.Quote, error) {
	body, err := c.authorizedGet(ctx, endpointQuote, c.quoteRequest([]string{symbol}))
	if err != nil {
		return models.Quote{}, err
	}

	raws, err := parseQuotes(body)
	if err != nil {
		return models.Quote{}, malformedError(err)
	}
	if len(raws) == 0 {
		return models.Quote{}, notFoundError(symbol)
	}
	return formatQuote(raws[0]), nil
}

func (c *Client) quoteRequest(symbols []string) requestBuilder {
	joined := strings.Join(symbols, ",")
	return func(creds Credentials) (*xhttp.RequestOptions, error) {
		u, err := xhttp.JoinURL(creds.BaseURL, quotePath)
		if err != nil {
			return nil, err
		}
		return &xhttp.RequestOptions{
			Method:      xhttp.MethodGet,
			URL:         u,
			Headers:     c.dataHeaders(creds),
			QueryParams: map[string][]string{"symbols": {joined}, "crumb": {creds.Crumb}},
		}, nil
	}
}

// GetQuotes resolves every symbol. Cached symbols are served directly; the
// rest are fetched in batches of BatchSize, one request per batch.
func (c *Client) GetQuotes(ctx context.Context, symbols []string) map[string]models.QuoteResult {
	out := make(map[string]models.QuoteResult, len(symbols))
	if len(symbols) == 0 {
		return out
	}
	defer c.observe("get_quotes", time.Now())

	seen := make(map[string]struct{}, len(symbols))
	var pending []string
	for _, s := range symbols {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}

		if q, ok := c.quotes.Get(cache.QuoteKey(s)); ok {
			c.metrics.RecordCacheLookup("quote", true)
			out[s] = models.QuoteOK(q)
			continue
		}
		c.metrics.RecordCacheLookup("quote", false)
		pending = append(pending, s)
	}
	if len(pending) == 0 {
		return out
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.BatchConcurrency)
	for _, batch := range chunk(pending, c.cfg.BatchSize) {
		g.Go(func() error {
			res := c.fetchBatch(gctx, batch)
			mu.Lock()
			for s, r := range res {
				out[s] = r
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// fetchBatch makes one request for batch. A request-level failure is copied
// to every symbol of the batch.
func (c *Client) fetchBatch(ctx context.Context, batch []string) map[string]models.QuoteResult {
	res := make(map[string]models.QuoteResult, len(batch))

	body, err := c.authorizedGet(ctx, endpointQuote, c.quoteRequest(batch))
	var raws []rawQuote
	if err == nil {
		if raws, err = parseQuotes(body); err != nil {
			err = malformedError(err)
		}
	}
	if err != nil {
		failed := resultFromError(err)
		for _, s := range batch {
			res[s] = failed
		}
		c.log.Warn("quote batch failed", logger.Int("size", len(batch)), logger.Error(err))
		return res
	}

	for _, raw := range raws {
		if raw.Symbol == "" {
			continue
		}
		q := formatQuote(raw)
		c.quotes.Set(cache.QuoteKey(raw.Symbol), q)
		res[raw.Symbol] = models.QuoteOK(q)
	}
	for _, s := range batch {
		if _, ok := res[s]; !ok {
			res[s] = resultFromError(notFoundError(s))
		}
	}
	return res
}

func chunk(items []string, size int) [][]string {
	if size <= 0 {
		size = len(items)
	}
	out := make([][]string, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}

// resultFromError converts a pipeline error into an error marker.
func resultFromError(err error) models.QuoteResult {
	var fe *FetchError
	if !errors.As(err, &fe) {
		return models.QuoteFailed(models.ErrorKindConnection, msgConnectionFailed)
	}
	switch fe.Kind {
	case ErrAuthentication:
		return models.QuoteFailed(models.ErrorKindAuthentication, fe.Message)
	case ErrNotFound:
		return models.QuoteFailed(models.ErrorKindNotFound, fe.Message)
	case ErrMalformedResponse:
		return models.QuoteFailed(models.ErrorKindMalformed, fe.Message)
	default:
		return models.QuoteFailed(models.ErrorKindConnection, fe.Message)
	}
}
