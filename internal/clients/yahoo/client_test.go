package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramalsaham/dashboard/internal/domain"
)

const chartFixture = `{
	"chart": {
		"result": [{
			"timestamp": [1577923200, 1578009600, 1578268800],
			"indicators": {
				"quote": [{
					"open":   [74.06, 74.29, 73.45],
					"high":   [75.15, 75.14, 74.99],
					"low":    [73.80, 74.13, 73.19],
					"close":  [75.09, 74.36, 74.95],
					"volume": [135480400, 146322800, 118387200]
				}],
				"adjclose": [{
					"adjclose": [72.88, 72.17, 72.74]
				}]
			}
		}],
		"error": null
	}
}`

func TestHistoricalPricesParsesChart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/v8/finance/chart/AAPL")
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		w.Write([]byte(chartFixture))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zerolog.Nop())
	candles, err := client.HistoricalPrices(context.Background(),
		"AAPL", time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), time.Date(2020, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, candles, 3)
	assert.InDelta(t, 75.09, candles[0].Close, 1e-9)
	assert.InDelta(t, 72.88, candles[0].AdjClose, 1e-9)
	assert.Equal(t, int64(135480400), candles[0].Volume)
}

func TestHistoricalPricesSkipsNullRows(t *testing.T) {
	// all-zero rows encode non-trading days and must never materialize
	fixture := `{
		"chart": {
			"result": [{
				"timestamp": [1577923200, 1578009600],
				"indicators": {
					"quote": [{
						"open": [74.06, 0], "high": [75.15, 0], "low": [73.80, 0],
						"close": [75.09, 0], "volume": [1000, 0]
					}],
					"adjclose": [{"adjclose": [72.88, 0]}]
				}
			}],
			"error": null
		}
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fixture))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zerolog.Nop())
	candles, err := client.HistoricalPrices(context.Background(),
		"AAPL", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2020, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Len(t, candles, 1)
}

func TestHistoricalPricesTickerNotFound(t *testing.T) {
	t.Run("http 404", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second, zerolog.Nop())
		_, err := client.HistoricalPrices(context.Background(), "NOPE", time.Now().AddDate(0, -1, 0), time.Now())
		assert.True(t, errors.Is(err, domain.ErrTickerNotFound))
	})

	t.Run("api error payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second, zerolog.Nop())
		_, err := client.HistoricalPrices(context.Background(), "NOPE", time.Now().AddDate(0, -1, 0), time.Now())
		assert.True(t, errors.Is(err, domain.ErrTickerNotFound))
	})
}

func TestHistoricalPricesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zerolog.Nop())
	_, err := client.HistoricalPrices(context.Background(), "AAPL", time.Now().AddDate(0, -1, 0), time.Now())
	assert.True(t, errors.Is(err, domain.ErrDataSourceUnavailable))
}

func TestGetQuote(t *testing.T) {
	fixture := `{
		"quoteResponse": {
			"result": [{
				"symbol": "AAPL",
				"shortName": "Apple Inc.",
				"exchange": "NMS",
				"regularMarketPrice": 191.5,
				"marketCap": 2900000000000,
				"trailingPE": 29.8,
				"dividendYield": 0.0055
			}],
			"error": null
		}
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbols"))
		w.Write([]byte(fixture))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zerolog.Nop())
	quote, err := client.GetQuote(context.Background(), "AAPL")
	require.NoError(t, err)

	require.NotNil(t, quote.ShortName)
	assert.Equal(t, "Apple Inc.", *quote.ShortName)
	require.NotNil(t, quote.TrailingPE)
	assert.InDelta(t, 29.8, *quote.TrailingPE, 1e-9)
	assert.Nil(t, quote.CurrentPrice)
}

func TestGetQuoteEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteResponse":{"result":[],"error":null}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zerolog.Nop())
	_, err := client.GetQuote(context.Background(), "NOPE")
	assert.True(t, errors.Is(err, domain.ErrTickerNotFound))
}
