package report

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramalsaham/dashboard/internal/clients/alphavantage"
	"github.com/ramalsaham/dashboard/internal/clients/newsfeed"
	"github.com/ramalsaham/dashboard/internal/clients/yahoo"
	"github.com/ramalsaham/dashboard/internal/database"
	"github.com/ramalsaham/dashboard/internal/domain"
	"github.com/ramalsaham/dashboard/internal/modules/forecast"
	"github.com/ramalsaham/dashboard/internal/modules/fundamentals"
	"github.com/ramalsaham/dashboard/internal/modules/history"
	"github.com/ramalsaham/dashboard/internal/modules/metrics"
	"github.com/ramalsaham/dashboard/internal/modules/news"
)

// Provider fakes. Each can be told to fail independently, mirroring the
// three independent external services.

type fakeMarket struct {
	candles  []yahoo.Candle
	quoteErr error
	priceErr error
}

func (f *fakeMarket) HistoricalPrices(ctx context.Context, symbol string, start, end time.Time) ([]yahoo.Candle, error) {
	if f.priceErr != nil {
		return nil, f.priceErr
	}
	return f.candles, nil
}

func (f *fakeMarket) GetQuote(ctx context.Context, symbol string) (*yahoo.Quote, error) {
	if f.quoteErr != nil {
		return nil, f.quoteErr
	}
	return &yahoo.Quote{Symbol: symbol}, nil
}

type fakeStatements struct {
	err error
}

func (f *fakeStatements) FetchStatement(ctx context.Context, symbol string, kind domain.StatementKind) (*alphavantage.WideTable, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &alphavantage.WideTable{
		Columns: []string{alphavantage.ColFiscalDateEnding, alphavantage.ColReportedCurrency, "netIncome"},
		Rows:    [][]string{{"2023-12-31", "USD", "1000"}},
	}, nil
}

type fakeNews struct {
	items []newsfeed.Item
	err   error
}

func (f *fakeNews) Fetch(ctx context.Context, symbol string, limit int) ([]newsfeed.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func tenCandles(start time.Time) []yahoo.Candle {
	candles := make([]yahoo.Candle, 10)
	for i := range candles {
		price := 100 + float64(i)
		candles[i] = yahoo.Candle{
			Date: start.AddDate(0, 0, i),
			Open: price, High: price, Low: price, Close: price, AdjClose: price,
			Volume: 1000,
		}
	}
	return candles
}

func tenNewsItems() []newsfeed.Item {
	items := make([]newsfeed.Item, 10)
	for i := range items {
		items[i] = newsfeed.Item{
			Title:            "headline",
			PublishedAt:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			SummarySentiment: "neutral",
			TitleSentiment:   "neutral",
		}
	}
	return items
}

func newTestService(t *testing.T, market *fakeMarket, statements *fakeStatements, feed *fakeNews, requestLog *RequestLog) *Service {
	t.Helper()
	log := zerolog.Nop()
	return NewService(
		history.NewService(market, log),
		metrics.NewService(log),
		forecast.NewService(log),
		fundamentals.NewService(statements, log),
		news.NewService(feed, log),
		requestLog,
		log,
	)
}

func testRequest(start time.Time) Request {
	return Request{
		Ticker:      "AAPL",
		Start:       start,
		End:         start.AddDate(0, 0, 30),
		HorizonDays: 30,
		NewsLimit:   10,
	}
}

func TestBuildFullReport(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	service := newTestService(t,
		&fakeMarket{candles: tenCandles(start)},
		&fakeStatements{},
		&fakeNews{items: tenNewsItems()},
		nil,
	)

	report, err := service.Build(context.Background(), testRequest(start))
	require.NoError(t, err)

	assert.NotNil(t, report.Series)
	assert.NotNil(t, report.Metrics)
	assert.NotNil(t, report.Forecast)
	assert.NotNil(t, report.Profile)
	assert.NotNil(t, report.News)
	require.NotNil(t, report.Statements)
	assert.Len(t, report.Statements, 3)
	assert.Nil(t, report.Errors)
}

func TestBuildNewsDownKeepsPriceSections(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	service := newTestService(t,
		&fakeMarket{candles: tenCandles(start)},
		&fakeStatements{},
		&fakeNews{err: domain.ErrDataSourceUnavailable},
		nil,
	)

	report, err := service.Build(context.Background(), testRequest(start))
	require.NoError(t, err)

	assert.NotNil(t, report.Series)
	assert.NotNil(t, report.Metrics)
	assert.NotNil(t, report.Forecast)
	assert.Nil(t, report.News)
	require.Contains(t, report.Errors, "news")
}

func TestBuildSeriesDownKeepsIndependentPipelines(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	service := newTestService(t,
		&fakeMarket{priceErr: domain.ErrTickerNotFound},
		&fakeStatements{},
		&fakeNews{items: tenNewsItems()},
		nil,
	)

	report, err := service.Build(context.Background(), testRequest(start))
	require.NoError(t, err)

	assert.Nil(t, report.Series)
	assert.Nil(t, report.Metrics)
	assert.Nil(t, report.Forecast)
	require.Contains(t, report.Errors, "series")
	assert.NotContains(t, report.Errors, "metrics", "downstream sections are skipped, not double-reported")

	// fundamentals and news are independent of the price pipeline
	assert.Len(t, report.Statements, 3)
	assert.NotNil(t, report.News)
}

func TestBuildFundamentalsUnavailable(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	service := newTestService(t,
		&fakeMarket{candles: tenCandles(start)},
		&fakeStatements{err: fmt.Errorf("%w: delisted", domain.ErrStatementUnavailable)},
		&fakeNews{items: tenNewsItems()},
		nil,
	)

	report, err := service.Build(context.Background(), testRequest(start))
	require.NoError(t, err)

	assert.Nil(t, report.Statements)
	require.Contains(t, report.Errors, "fundamentals")
	assert.NotNil(t, report.Metrics)
}

func TestBuildRejectsHorizonUpfront(t *testing.T) {
	market := &fakeMarket{}
	service := newTestService(t, market, &fakeStatements{}, &fakeNews{}, nil)

	req := testRequest(time.Now().UTC())
	req.HorizonDays = 400

	_, err := service.Build(context.Background(), req)
	assert.Error(t, err)
}

func TestBuildRecordsRequest(t *testing.T) {
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	requestLog := NewRequestLog(db, zerolog.Nop())
	require.NoError(t, requestLog.Migrate())

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	service := newTestService(t,
		&fakeMarket{candles: tenCandles(start)},
		&fakeStatements{},
		&fakeNews{err: domain.ErrDataSourceUnavailable},
		requestLog,
	)

	_, err = service.Build(context.Background(), testRequest(start))
	require.NoError(t, err)

	var count int
	var failed string
	row := db.QueryRow(`SELECT COUNT(*), MAX(failed_sections) FROM report_requests`)
	require.NoError(t, row.Scan(&count, &failed))
	assert.Equal(t, 1, count)
	assert.Equal(t, "news", failed)
}
