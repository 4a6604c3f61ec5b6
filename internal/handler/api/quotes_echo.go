package api

import (
	"fmt"

	"QuotePull/internal/domain/models"
	"QuotePull/internal/domain/service"
	xhttp "QuotePull/pkg/http"
	xlogger "QuotePull/pkg/logger"
	"QuotePull/pkg/util"

	"github.com/labstack/echo/v4"
)

// MaxSymbolsPerRequest bounds /api/quotes.
const MaxSymbolsPerRequest = 500

// QuotesEchoHandler serves quotes and dividend history over Echo.
type QuotesEchoHandler struct {
	logger *xlogger.Logger
	quotes service.QuoteService
}

func NewQuotesEchoHandler(logger *xlogger.Logger, quotes service.QuoteService) *QuotesEchoHandler {
	return &QuotesEchoHandler{logger: logger, quotes: quotes}
}

func (h *QuotesEchoHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/quote", h.Quote)
	g.GET("/quotes", h.Quotes)
	g.GET("/dividends", h.Dividends)
}

func (h *QuotesEchoHandler) Quote(c echo.Context) error {
	req := &models.QuoteRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res := h.quotes.GetQuote(c.Request().Context(), req.Symbol)
	if res.Failed() {
		h.logger.Warn("quote unavailable",
			xlogger.String("symbol", req.Symbol),
			xlogger.String("kind", string(res.Kind)),
			xlogger.String("error", res.Error),
		)
		return xhttp.AppErrorResponse(c, appErrorFor(res))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	return xhttp.SuccessResponse(c, res)
}

func (h *QuotesEchoHandler) Quotes(c echo.Context) error {
	req := &models.QuotesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	symbols := util.SplitCSV(req.Symbols)
	switch {
	case len(symbols) == 0:
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code: "ERR_REQUIRED", Field: "symbols", Message: "symbols is required",
		}})
	case len(symbols) > MaxSymbolsPerRequest:
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code:    "ERR_MAX",
			Field:   "symbols",
			Message: fmt.Sprintf("symbols must list at most %d items", MaxSymbolsPerRequest),
			Params:  map[string]interface{}{"max": MaxSymbolsPerRequest},
		}})
	}

	return xhttp.SuccessResponse(c, h.quotes.GetQuotes(c.Request().Context(), symbols))
}

func (h *QuotesEchoHandler) Dividends(c echo.Context) error {
	req := &models.DividendsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	events := h.quotes.GetDividendHistory(c.Request().Context(), req.Symbol, req.Range)
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=300")
	return xhttp.SuccessResponse(c, events)
}

// appErrorFor maps an error marker to an HTTP error: missing data is a 404,
// everything else is an upstream failure.
func appErrorFor(res models.QuoteResult) *xhttp.AppError {
	if res.Kind == models.ErrorKindNotFound {
		return xhttp.NotFoundError(res.Error)
	}
	return xhttp.BadGatewayError(res.Error).WithParam("kind", string(res.Kind))
}
