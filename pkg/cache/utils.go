package cache

import "strings"

const (
	quotePrefix      = "quote_"
	divHistoryPrefix = "div_history_"
)

// QuoteKey returns the cache key for a single-symbol quote.
func QuoteKey(symbol string) string {
	return quotePrefix + symbol
}

// DividendHistoryKey returns the cache key for a symbol's dividend history over rng.
func DividendHistoryKey(symbol, rng string) string {
	return GenerateKey(divHistoryPrefix+symbol, rng)
}

// GenerateKey joins key parts with underscores.
func GenerateKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}
	return prefix + "_" + strings.Join(parts, "_")
}
