package service

import (
	"context"

	"QuotePull/internal/domain/models"
)

// QuoteService serves quotes and dividend history.
//
//go:generate mockgen -package=api -destination=../../handler/api/mock_quote_service_test.go -source=quotes.go
type QuoteService interface {
	GetQuote(ctx context.Context, symbol string) models.QuoteResult
	GetQuotes(ctx context.Context, symbols []string) map[string]models.QuoteResult
	GetDividendHistory(ctx context.Context, symbol, rng string) []models.DividendEvent
}
