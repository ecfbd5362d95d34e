package yahoo

import "time"

// Candle is one daily OHLCV bar from the chart API
type Candle struct {
	Date     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose float64
	Volume   int64
}

// Quote holds the display fields the quote API may return. Every field
// is optional; the provider omits whatever it does not know.
type Quote struct {
	Symbol             string   `json:"symbol"`
	ShortName          *string  `json:"shortName"`
	LongName           *string  `json:"longName"`
	Exchange           *string  `json:"exchange"`
	FullExchangeName   *string  `json:"fullExchangeName"`
	CurrentPrice       *float64 `json:"currentPrice"`
	RegularMarketPrice *float64 `json:"regularMarketPrice"`
	MarketCap          *int64   `json:"marketCap"`
	TrailingPE         *float64 `json:"trailingPE"`
	DividendYield      *float64 `json:"dividendYield"`
}

// chartResponse mirrors the v8 chart API payload
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}

// quoteResponse mirrors the v7 quote API payload
type quoteResponse struct {
	QuoteResponse struct {
		Result []Quote   `json:"result"`
		Error  *apiError `json:"error"`
	} `json:"quoteResponse"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
