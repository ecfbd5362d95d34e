package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/ramalsaham/dashboard/internal/domain"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// Client is a Yahoo Finance API client
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new Yahoo Finance client. The timeout bounds every
// request; there is no retry here, retry policy belongs to the caller.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		log: log.With().Str("client", "yahoo").Logger(),
	}
}

// HistoricalPrices fetches daily OHLCV bars for a symbol over the closed
// date interval [start, end]. An unknown symbol surfaces as
// domain.ErrTickerNotFound; transport and provider-side failures surface
// as domain.ErrDataSourceUnavailable. Null candle rows (non-trading days)
// are skipped, never materialized.
func (c *Client) HistoricalPrices(ctx context.Context, symbol string, start, end time.Time) ([]Candle, error) {
	params := url.Values{}
	params.Add("interval", "1d")
	params.Add("includeAdjustedClose", "true")
	// period2 is exclusive in the chart API, so push it past end-of-day
	params.Add("period1", strconv.FormatInt(start.Unix(), 10))
	params.Add("period2", strconv.FormatInt(end.AddDate(0, 0, 1).Unix(), 10))

	reqURL := c.baseURL + "/v8/finance/chart/" + url.PathEscape(symbol) + "?" + params.Encode()

	body, err := c.get(ctx, reqURL, symbol)
	if err != nil {
		return nil, err
	}

	var result chartResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to parse chart response: %v", domain.ErrDataSourceUnavailable, err)
	}

	if apiErr := result.Chart.Error; apiErr != nil {
		if apiErr.Code == "Not Found" {
			return nil, fmt.Errorf("%w: %s", domain.ErrTickerNotFound, symbol)
		}
		return nil, fmt.Errorf("%w: %s: %s", domain.ErrDataSourceUnavailable, apiErr.Code, apiErr.Description)
	}

	if len(result.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrTickerNotFound, symbol)
	}

	chartData := result.Chart.Result[0]
	if len(chartData.Indicators.Quote) == 0 {
		c.log.Warn().Str("symbol", symbol).Msg("No quote data in chart response")
		return []Candle{}, nil
	}

	quote := chartData.Indicators.Quote[0]

	var adjCloses []float64
	if len(chartData.Indicators.AdjClose) > 0 {
		adjCloses = chartData.Indicators.AdjClose[0].AdjClose
	}

	var candles []Candle
	for i, ts := range chartData.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			continue
		}

		// Yahoo encodes missing bars as all-zero rows
		if quote.Open[i] == 0 && quote.High[i] == 0 && quote.Low[i] == 0 && quote.Close[i] == 0 {
			continue
		}

		adjClose := quote.Close[i]
		if i < len(adjCloses) && adjCloses[i] != 0 {
			adjClose = adjCloses[i]
		}

		var volume int64
		if i < len(quote.Volume) {
			volume = quote.Volume[i]
		}

		candles = append(candles, Candle{
			Date:     time.Unix(ts, 0).UTC(),
			Open:     quote.Open[i],
			High:     quote.High[i],
			Low:      quote.Low[i],
			Close:    quote.Close[i],
			AdjClose: adjClose,
			Volume:   volume,
		})
	}

	c.log.Debug().
		Str("symbol", symbol).
		Int("count", len(candles)).
		Msg("Fetched historical prices")

	return candles, nil
}

// GetQuote fetches the display fields for a symbol from the quote API.
// Returns domain.ErrTickerNotFound when the provider returns no result
// for the symbol.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	params := url.Values{}
	params.Add("symbols", symbol)
	params.Add("fields", "symbol,shortName,longName,exchange,fullExchangeName,"+
		"currentPrice,regularMarketPrice,marketCap,trailingPE,dividendYield")

	reqURL := c.baseURL + "/v7/finance/quote?" + params.Encode()

	body, err := c.get(ctx, reqURL, symbol)
	if err != nil {
		return nil, err
	}

	var result quoteResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to parse quote response: %v", domain.ErrDataSourceUnavailable, err)
	}

	if apiErr := result.QuoteResponse.Error; apiErr != nil {
		return nil, fmt.Errorf("%w: %s: %s", domain.ErrDataSourceUnavailable, apiErr.Code, apiErr.Description)
	}

	if len(result.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrTickerNotFound, symbol)
	}

	quote := result.QuoteResponse.Result[0]
	return &quote, nil
}

// get performs a GET request and returns the body, mapping HTTP-level
// failures onto the domain taxonomy.
func (c *Client) get(ctx context.Context, reqURL, symbol string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Yahoo rejects requests without browser-looking headers
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", domain.ErrTickerNotFound, symbol)
	}

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrDataSourceUnavailable, resp.StatusCode, string(snippet))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", domain.ErrDataSourceUnavailable, err)
	}

	return body, nil
}
