package models

import "encoding/json"

// Quote is the public per-symbol quote. Nil pointers are absent values.
type Quote struct {
	Symbol           string   `json:"symbol"`
	Name             *string  `json:"name"`
	Price            *float64 `json:"price"`
	Change           *float64 `json:"change"`
	PercentChange    *float64 `json:"percent_change"`
	Volume           *int64   `json:"volume"`
	PERatio          *float64 `json:"pe_ratio"`
	EPS              *float64 `json:"eps"`
	Dividend         *float64 `json:"dividend"`
	DividendYield    *float64 `json:"dividend_yield"`
	PayoutRatio      *float64 `json:"payout_ratio"`
	MA50             *float64 `json:"ma50"`
	MA200            *float64 `json:"ma200"`
	FiftyTwoWeekHigh *float64 `json:"fifty_two_week_high"`
	FiftyTwoWeekLow  *float64 `json:"fifty_two_week_low"`
	ExDividendDate   *string  `json:"ex_dividend_date"`
	DividendDate     *string  `json:"dividend_date"`
}

// DividendEvent is a single dividend payment. Date is YYYY-MM-DD (UTC).
type DividendEvent struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// ErrorKind classifies a failed QuoteResult.
type ErrorKind string

const (
	ErrorKindAuthentication ErrorKind = "authentication"
	ErrorKindConnection     ErrorKind = "connection"
	ErrorKindNotFound       ErrorKind = "not_found"
	ErrorKindMalformed      ErrorKind = "malformed"
)

// QuoteResult holds either a Quote or an error message, never both.
type QuoteResult struct {
	Quote *Quote
	Error string
	Kind  ErrorKind
}

// QuoteOK wraps a successful quote.
func QuoteOK(q Quote) QuoteResult {
	return QuoteResult{Quote: &q}
}

// QuoteFailed builds an error marker.
func QuoteFailed(kind ErrorKind, msg string) QuoteResult {
	return QuoteResult{Error: msg, Kind: kind}
}

// Failed reports whether r is an error marker.
func (r QuoteResult) Failed() bool {
	return r.Quote == nil
}

// MarshalJSON renders the quote itself, or {"error": msg}.
func (r QuoteResult) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{Error: r.Error})
	}
	return json.Marshal(r.Quote)
}
