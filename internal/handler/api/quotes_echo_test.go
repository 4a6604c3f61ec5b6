package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"QuotePull/internal/domain/models"
	"QuotePull/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setup(t *testing.T) (*echo.Echo, *MockQuoteService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := NewMockQuoteService(ctrl)

	e := echo.New()
	NewQuotesEchoHandler(logger.Nop(), svc).RegisterRoutes(e.Group("/api"))
	return e, svc
}

func get(t *testing.T, e *echo.Echo, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func price(v float64) *float64 { return &v }

func TestQuoteOK(t *testing.T) {
	e, svc := setup(t)
	svc.EXPECT().GetQuote(gomock.Any(), "AAPL").
		Return(models.QuoteOK(models.Quote{Symbol: "AAPL", Price: price(190.5)}))

	rec, env := get(t, e, "/api/quote?symbol=AAPL")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusOK, env.Status)

	var q models.Quote
	require.NoError(t, json.Unmarshal(env.Data, &q))
	assert.Equal(t, "AAPL", q.Symbol)
	assert.Equal(t, 190.5, *q.Price)
}

func TestQuoteErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		result models.QuoteResult
		status int
		code   string
	}{
		{
			name:   "not found",
			result: models.QuoteFailed(models.ErrorKindNotFound, "No data was found for ZZZZ"),
			status: http.StatusNotFound,
			code:   "ERR_NOT_FOUND",
		},
		{
			name:   "auth exhausted",
			result: models.QuoteFailed(models.ErrorKindAuthentication, "Authentication failed after 2 retries"),
			status: http.StatusBadGateway,
			code:   "ERR_UPSTREAM",
		},
		{
			name:   "connection",
			result: models.QuoteFailed(models.ErrorKindConnection, "Yahoo Finance connection failed"),
			status: http.StatusBadGateway,
			code:   "ERR_UPSTREAM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, svc := setup(t)
			svc.EXPECT().GetQuote(gomock.Any(), "ZZZZ").Return(tt.result)

			rec, env := get(t, e, "/api/quote?symbol=ZZZZ")
			assert.Equal(t, tt.status, rec.Code)

			var errs []struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(env.Data, &errs))
			require.Len(t, errs, 1)
			assert.Equal(t, tt.code, errs[0].Code)
			assert.Equal(t, tt.result.Error, errs[0].Message)
		})
	}
}

func TestQuoteRequiresSymbol(t *testing.T) {
	e, _ := setup(t)

	rec, env := get(t, e, "/api/quote")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Data), "ERR_REQUIRED")
}

func TestQuotesSplitsSymbols(t *testing.T) {
	e, svc := setup(t)
	svc.EXPECT().GetQuotes(gomock.Any(), []string{"AAPL", "NOPE"}).Return(map[string]models.QuoteResult{
		"AAPL": models.QuoteOK(models.Quote{Symbol: "AAPL"}),
		"NOPE": models.QuoteFailed(models.ErrorKindNotFound, "No data was found for NOPE"),
	})

	rec, env := get(t, e, "/api/quotes?symbols=AAPL,+NOPE,")
	assert.Equal(t, http.StatusOK, rec.Code)

	var got map[string]map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "AAPL", got["AAPL"]["symbol"])
	assert.Equal(t, "No data was found for NOPE", got["NOPE"]["error"])
}

func TestQuotesLimits(t *testing.T) {
	e, _ := setup(t)

	rec, _ := get(t, e, "/api/quotes?symbols=,,")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	many := strings.TrimSuffix(strings.Repeat("A,", MaxSymbolsPerRequest+1), ",")
	rec, env := get(t, e, "/api/quotes?symbols="+many)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Data), "ERR_MAX")
}

func TestDividendsDefaultRange(t *testing.T) {
	e, svc := setup(t)
	events := []models.DividendEvent{{Date: "2024-03-14", Amount: 0.485}}
	svc.EXPECT().GetDividendHistory(gomock.Any(), "KO", "2y").Return(events)

	rec, env := get(t, e, "/api/dividends?symbol=KO")
	assert.Equal(t, http.StatusOK, rec.Code)

	var got []models.DividendEvent
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, events, got)
}

func TestDividendsRejectsUnknownRange(t *testing.T) {
	e, _ := setup(t)

	rec, env := get(t, e, "/api/dividends?symbol=KO&range=7w")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Data), "ERR_ONEOF")
}

func TestDividendsEmptyIsList(t *testing.T) {
	e, svc := setup(t)
	svc.EXPECT().GetDividendHistory(gomock.Any(), "BRK-B", "5y").Return([]models.DividendEvent{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dividends?symbol=BRK-B&range=5y", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":200,"message":"OK","data":[]}`, rec.Body.String())
}
