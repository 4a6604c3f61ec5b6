package yahoo

import (
	"encoding/json"
	"math"
	"sort"

	"QuotePull/internal/domain/models"
	"QuotePull/pkg/util"

	"github.com/shopspring/decimal"
)

type quoteEnvelope struct {
	QuoteResponse struct {
		Result []rawQuote `json:"result"`
	} `json:"quoteResponse"`
}

type rawQuote struct {
	Symbol                     string   `json:"symbol"`
	ShortName                  *string  `json:"shortName"`
	LongName                   *string  `json:"longName"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	RegularMarketChange        *float64 `json:"regularMarketChange"`
	RegularMarketChangePercent *float64 `json:"regularMarketChangePercent"`
	RegularMarketVolume        *float64 `json:"regularMarketVolume"`
	TrailingPE                 *float64 `json:"trailingPE"`
	EPSTrailingTwelveMonths    *float64 `json:"epsTrailingTwelveMonths"`
	DividendRate               *float64 `json:"dividendRate"`
	FiftyDayAverage            *float64 `json:"fiftyDayAverage"`
	TwoHundredDayAverage       *float64 `json:"twoHundredDayAverage"`
	FiftyTwoWeekHigh           *float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow            *float64 `json:"fiftyTwoWeekLow"`
	ExDividendDate             epoch    `json:"exDividendDate"`
	DividendDate               epoch    `json:"dividendDate"`
}

type chartEnvelope struct {
	Chart struct {
		Result []struct {
			Events struct {
				Dividends map[string]rawDividend `json:"dividends"`
			} `json:"events"`
		} `json:"result"`
	} `json:"chart"`
}

type rawDividend struct {
	Amount *float64 `json:"amount"`
	Date   epoch    `json:"date"`
}

// epoch is a Unix timestamp in seconds. Anything that is not a positive
// number, including {"raw": n} objects with a non-positive raw, is left unset.
type epoch struct {
	seconds int64
	valid   bool
}

func (e *epoch) UnmarshalJSON(b []byte) error {
	*e = epoch{}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	if m, ok := v.(map[string]any); ok {
		v = m["raw"]
	}
	if f, ok := v.(float64); ok && f > 0 {
		e.seconds = int64(f)
		e.valid = true
	}
	return nil
}

func (e epoch) date() *string {
	if !e.valid {
		return nil
	}
	s := EpochDate(e.seconds)
	return &s
}

// EpochDate formats Unix seconds as a UTC calendar date.
func EpochDate(seconds int64) string {
	return util.UnixDate(seconds)
}

// formatQuote maps a provider quote entry to the public shape.
func formatQuote(raw rawQuote) models.Quote {
	name := raw.ShortName
	if name == nil {
		name = raw.LongName
	}
	return models.Quote{
		Symbol:           raw.Symbol,
		Name:             name,
		Price:            raw.RegularMarketPrice,
		Change:           raw.RegularMarketChange,
		PercentChange:    raw.RegularMarketChangePercent,
		Volume:           toInt64(raw.RegularMarketVolume),
		PERatio:          raw.TrailingPE,
		EPS:              raw.EPSTrailingTwelveMonths,
		Dividend:         raw.DividendRate,
		DividendYield:    DividendYield(raw.DividendRate, raw.RegularMarketPrice),
		PayoutRatio:      PayoutRatio(raw.DividendRate, raw.EPSTrailingTwelveMonths),
		MA50:             raw.FiftyDayAverage,
		MA200:            raw.TwoHundredDayAverage,
		FiftyTwoWeekHigh: raw.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:  raw.FiftyTwoWeekLow,
		ExDividendDate:   raw.ExDividendDate.date(),
		DividendDate:     raw.DividendDate.date(),
	}
}

// DividendYield is dividend/price*100 rounded to 2 places; nil unless there is
// a dividend and a positive price.
func DividendYield(dividend, price *float64) *float64 {
	if dividend == nil || price == nil || *price <= 0 {
		return nil
	}
	return percentOf(*dividend, *price)
}

// PayoutRatio is dividend/eps*100 rounded to 2 places; nil unless there is a
// dividend and a positive eps.
func PayoutRatio(dividend, eps *float64) *float64 {
	if dividend == nil || eps == nil || *eps <= 0 {
		return nil
	}
	return percentOf(*dividend, *eps)
}

func percentOf(num, den float64) *float64 {
	v := decimal.NewFromFloat(num).
		Div(decimal.NewFromFloat(den)).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		InexactFloat64()
	return &v
}

func toInt64(f *float64) *int64 {
	if f == nil {
		return nil
	}
	v := int64(math.Round(*f))
	return &v
}

// formatDividends converts the provider's dividend map into events sorted by
// date, dropping entries without a date or with a non-positive amount.
func formatDividends(raw map[string]rawDividend) []models.DividendEvent {
	type dated struct {
		seconds int64
		amount  float64
	}
	rows := make([]dated, 0, len(raw))
	for _, d := range raw {
		if d.Amount == nil || !d.Date.valid {
			continue
		}
		amount := decimal.NewFromFloat(*d.Amount).Round(4).InexactFloat64()
		if amount <= 0 {
			continue
		}
		rows = append(rows, dated{seconds: d.Date.seconds, amount: amount})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].seconds != rows[j].seconds {
			return rows[i].seconds < rows[j].seconds
		}
		return rows[i].amount < rows[j].amount
	})

	events := make([]models.DividendEvent, 0, len(rows))
	for _, r := range rows {
		events = append(events, models.DividendEvent{Date: EpochDate(r.seconds), Amount: r.amount})
	}
	return events
}

func parseQuotes(body []byte) ([]rawQuote, error) {
	var env quoteEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	return env.QuoteResponse.Result, nil
}

func parseDividends(body []byte) ([]models.DividendEvent, error) {
	var env chartEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	if len(env.Chart.Result) == 0 {
		return []models.DividendEvent{}, nil
	}
	return formatDividends(env.Chart.Result[0].Events.Dividends), nil
}
