package yahoo

import (
	"context"
	"net/url"
	"time"

	"QuotePull/internal/domain/models"
	"QuotePull/pkg/cache"
	xhttp "QuotePull/pkg/http"
	"QuotePull/pkg/logger"
)

const endpointChart = "chart"

// GetDividendHistory returns the dividends paid by symbol over rng, oldest
// first. Any failure yields an empty slice.
func (c *Client) GetDividendHistory(ctx context.Context, symbol, rng string) []models.DividendEvent {
	events, err := c.FetchDividendHistory(ctx, symbol, rng)
	if err != nil {
		c.log.Warn("dividend history unavailable",
			logger.String("symbol", symbol),
			logger.String("range", rng),
			logger.Error(err),
		)
		return []models.DividendEvent{}
	}
	return events
}

// FetchDividendHistory is GetDividendHistory with the failure reported. An
// empty slice with a nil error means the provider has no dividends in range.
func (c *Client) FetchDividendHistory(ctx context.Context, symbol, rng string) ([]models.DividendEvent, error) {
	defer c.observe("get_dividend_history", time.Now())

	if rng == "" {
		rng = DefaultDividendRange
	}
	key := cache.DividendHistoryKey(symbol, rng)
	if events, ok := c.histories.Get(key); ok {
		c.metrics.RecordCacheLookup("dividend_history", true)
		return events, nil
	}
	c.metrics.RecordCacheLookup("dividend_history", false)

	body, err := c.authorizedGet(ctx, endpointChart, func(creds Credentials) (*xhttp.RequestOptions, error) {
		u, err := xhttp.JoinURL(creds.BaseURL, "/v8/finance/chart/"+url.PathEscape(symbol))
		if err != nil {
			return nil, err
		}
		return &xhttp.RequestOptions{
			Method:  xhttp.MethodGet,
			URL:     u,
			Headers: c.dataHeaders(creds),
			QueryParams: map[string][]string{
				"range":    {rng},
				"interval": {"1mo"},
				"events":   {"div"},
				"crumb":    {creds.Crumb},
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	events, err := parseDividends(body)
	if err != nil {
		return nil, malformedError(err)
	}
	if len(events) > 0 {
		c.histories.Set(key, events)
	}
	return events, nil
}
