package models

// Requests for quote HTTP endpoints.

type QuoteRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,max=32"`
}

type QuotesRequest struct {
	Symbols string `query:"symbols" json:"symbols" validate:"required"`
}

type DividendsRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,max=32"`
	Range  string `query:"range" json:"range" default:"2y" validate:"oneof=1mo 3mo 6mo 1y 2y 5y 10y ytd max"`
}
