package forecast

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/ramalsaham/dashboard/internal/clients/yahoo"
	"github.com/ramalsaham/dashboard/internal/modules/history"
)

// countingMarketData records whether any provider call was made
type countingMarketData struct {
	calls int
}

func (m *countingMarketData) HistoricalPrices(ctx context.Context, symbol string, start, end time.Time) ([]yahoo.Candle, error) {
	m.calls++
	return nil, nil
}

func (m *countingMarketData) GetQuote(ctx context.Context, symbol string) (*yahoo.Quote, error) {
	m.calls++
	return &yahoo.Quote{Symbol: symbol}, nil
}

func TestHandleGetForecastRejectsHorizonBeforeFetch(t *testing.T) {
	market := &countingMarketData{}
	ingestor := history.NewService(market, zerolog.Nop())
	handlers := NewHandlers(ingestor, NewService(zerolog.Nop()), zerolog.Nop())

	r := chi.NewRouter()
	r.Mount("/forecast", handlers.Routes())

	for _, horizon := range []string{"0", "400", "-1"} {
		req := httptest.NewRequest("GET", "/forecast/AAPL?horizon="+horizon, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	assert.Zero(t, market.calls, "an out-of-range horizon must be rejected before any network work")
}
