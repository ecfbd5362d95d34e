package domain

import "time"

// PricePoint represents one trading day of OHLCV data
type PricePoint struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adj_close"`
	Volume   int64     `json:"volume"`
}

// TickerSeries is an ordered price history for one ticker over a closed
// date interval. Dates are strictly increasing and fall within [Start, End];
// non-trading days are never materialized.
type TickerSeries struct {
	Ticker string       `json:"ticker"`
	Start  time.Time    `json:"start"`
	End    time.Time    `json:"end"`
	Points []PricePoint `json:"points"`
}

// Empty reports whether the interval yielded no trading days
func (s TickerSeries) Empty() bool {
	return len(s.Points) == 0
}

// AdjCloses returns the adjusted close column
func (s TickerSeries) AdjCloses() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.AdjClose
	}
	return closes
}

// CompanyProfile holds display-only company fields. Every field the
// provider may omit is a pointer; a profile failure never blocks the
// price pipeline.
type CompanyProfile struct {
	Symbol           string   `json:"symbol"`
	DisplayName      *string  `json:"display_name"`
	ExchangeCode     *string  `json:"exchange_code"`
	Market           string   `json:"market"` // NASDAQ, S&P 500, Other, Unknown
	CurrentPrice     *float64 `json:"current_price"`
	MarketCap        *int64   `json:"market_cap"`
	TrailingPE       *float64 `json:"trailing_pe"`
	DividendYieldPct *float64 `json:"dividend_yield_pct"`
}

// DailyChange is a day-over-day fractional change in adjusted close
type DailyChange struct {
	Date   time.Time `json:"date"`
	Change float64   `json:"change"`
}

// ReturnMetrics holds annualized return/risk statistics derived from a
// TickerSeries with at least 2 points. RiskAdjustedReturn is nil when
// volatility is zero (undefined, never Inf or NaN).
type ReturnMetrics struct {
	DailyChanges            []DailyChange `json:"daily_changes"`
	AnnualizedReturnPct     float64       `json:"annualized_return_pct"`
	AnnualizedVolatilityPct float64       `json:"annualized_volatility_pct"`
	RiskAdjustedReturn      *float64      `json:"risk_adjusted_return"`
}

// PredictedPoint is one date/price pair produced by the trend model
type PredictedPoint struct {
	Date           time.Time `json:"date"`
	PredictedClose float64   `json:"predicted_close"`
}

// ForecastResult holds in-sample fitted values aligned to the observed
// series plus an extrapolation over HorizonDays consecutive calendar days
// (weekends included) after the last observed date.
type ForecastResult struct {
	Fitted      []PredictedPoint `json:"fitted"`
	HorizonDays int              `json:"horizon_days"`
	Future      []PredictedPoint `json:"future"`
	Intercept   float64          `json:"intercept"`
	SlopePerDay float64          `json:"slope_per_day"`
}

// StatementKind identifies a fundamental statement table
type StatementKind string

const (
	KindBalanceSheet    StatementKind = "balance-sheet"
	KindIncomeStatement StatementKind = "income-statement"
	KindCashFlow        StatementKind = "cash-flow"
)

// StatementKinds lists all statement kinds in display order
var StatementKinds = []StatementKind{KindBalanceSheet, KindIncomeStatement, KindCashFlow}

// LineItem is one row of a normalized statement; Values align with the
// statement's Periods and are nil where the vendor omits the item.
type LineItem struct {
	Name   string     `json:"name"`
	Values []*float64 `json:"values"`
}

// FundamentalStatement is a period-indexed statement table, periods most
// recent first.
type FundamentalStatement struct {
	Symbol   string        `json:"symbol"`
	Kind     StatementKind `json:"kind"`
	Currency string        `json:"currency"`
	Periods  []string      `json:"periods"`
	Items    []LineItem    `json:"items"`
}

// Sentiment is a provider-attached sentiment label
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// NewsItem is one news entry with provider-scored sentiment for its
// title and summary. Labels are passed through, never re-scored.
type NewsItem struct {
	Title            string    `json:"title"`
	PublishedAt      time.Time `json:"published_at"`
	Summary          string    `json:"summary"`
	TitleSentiment   Sentiment `json:"title_sentiment"`
	SummarySentiment Sentiment `json:"summary_sentiment"`
}

// NewsDigest is a reverse-chronological news listing truncated to the
// requested limit. Partial is set when the provider had fewer items than
// requested; the caller renders whatever is available.
type NewsDigest struct {
	Symbol  string     `json:"symbol"`
	Items   []NewsItem `json:"items"`
	Partial bool       `json:"partial"`
}
