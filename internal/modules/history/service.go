package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ramalsaham/dashboard/internal/clients/yahoo"
	"github.com/ramalsaham/dashboard/internal/domain"
)

// MarketData is the provider boundary for price and profile lookups.
// Tests substitute deterministic fixtures; production wires the Yahoo
// client.
type MarketData interface {
	HistoricalPrices(ctx context.Context, symbol string, start, end time.Time) ([]yahoo.Candle, error)
	GetQuote(ctx context.Context, symbol string) (*yahoo.Quote, error)
}

// Service is the series ingestor: it turns provider candles into a
// validated TickerSeries and provider quotes into a display profile.
type Service struct {
	market MarketData
	log    zerolog.Logger
}

// NewService creates a new history service
func NewService(market MarketData, log zerolog.Logger) *Service {
	return &Service{
		market: market,
		log:    log.With().Str("module", "history").Logger(),
	}
}

// Fetch retrieves the price series for a ticker over [start, end].
// A range with no trading days yields an empty series, not an error;
// an unknown ticker propagates domain.ErrTickerNotFound so the two
// cases stay distinguishable.
func (s *Service) Fetch(ctx context.Context, ticker string, start, end time.Time) (domain.TickerSeries, error) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return domain.TickerSeries{}, fmt.Errorf("ticker is required")
	}
	if start.After(end) {
		return domain.TickerSeries{}, fmt.Errorf("%w: start %s is after end %s",
			domain.ErrInvalidRange, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	candles, err := s.market.HistoricalPrices(ctx, ticker, start, end)
	if err != nil {
		return domain.TickerSeries{}, fmt.Errorf("fetch %s: %w", ticker, err)
	}

	series := domain.TickerSeries{
		Ticker: ticker,
		Start:  start,
		End:    end,
	}

	// The provider occasionally returns bars just outside the requested
	// window or out of order; the series invariant (strictly increasing,
	// inside [start, end]) is enforced here, not assumed.
	rangeEnd := end.AddDate(0, 0, 1)
	var lastDate time.Time
	for _, c := range candles {
		if c.Date.Before(start) || !c.Date.Before(rangeEnd) {
			continue
		}
		if !lastDate.IsZero() && !c.Date.After(lastDate) {
			continue
		}
		lastDate = c.Date

		series.Points = append(series.Points, domain.PricePoint{
			Date:     c.Date,
			Open:     c.Open,
			High:     c.High,
			Low:      c.Low,
			Close:    c.Close,
			AdjClose: c.AdjClose,
			Volume:   c.Volume,
		})
	}

	s.log.Debug().
		Str("ticker", ticker).
		Int("points", len(series.Points)).
		Msg("Ingested price series")

	return series, nil
}

// Profile fetches display fields for a ticker. Best-effort: every field
// the provider omits stays nil, and callers treat a whole-profile
// failure as cosmetic.
func (s *Service) Profile(ctx context.Context, ticker string) (domain.CompanyProfile, error) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return domain.CompanyProfile{}, fmt.Errorf("ticker is required")
	}

	quote, err := s.market.GetQuote(ctx, ticker)
	if err != nil {
		return domain.CompanyProfile{}, fmt.Errorf("profile %s: %w", ticker, err)
	}

	profile := domain.CompanyProfile{
		Symbol:           ticker,
		DisplayName:      displayName(quote),
		ExchangeCode:     quote.Exchange,
		Market:           marketLabel(quote.Exchange),
		MarketCap:        quote.MarketCap,
		TrailingPE:       quote.TrailingPE,
		CurrentPrice:     currentPrice(quote),
		DividendYieldPct: dividendYieldPct(quote),
	}

	return profile, nil
}

// displayName falls back shortName -> longName -> symbol
func displayName(q *yahoo.Quote) *string {
	if q.ShortName != nil && *q.ShortName != "" {
		return q.ShortName
	}
	if q.LongName != nil && *q.LongName != "" {
		return q.LongName
	}
	if q.Symbol != "" {
		name := q.Symbol
		return &name
	}
	return nil
}

// currentPrice prefers currentPrice, falling back to the regular market
// price the way the original display did
func currentPrice(q *yahoo.Quote) *float64 {
	if q.CurrentPrice != nil && *q.CurrentPrice > 0 {
		return q.CurrentPrice
	}
	if q.RegularMarketPrice != nil && *q.RegularMarketPrice > 0 {
		return q.RegularMarketPrice
	}
	return nil
}

// dividendYieldPct converts the provider's fractional yield to percent
func dividendYieldPct(q *yahoo.Quote) *float64 {
	if q.DividendYield == nil {
		return nil
	}
	pct := *q.DividendYield * 100
	return &pct
}

// marketLabel maps provider exchange codes onto the dashboard's market
// buckets: NMS is NASDAQ, SNP is S&P 500, anything else is Other, and a
// missing code is Unknown.
func marketLabel(exchange *string) string {
	if exchange == nil || *exchange == "" {
		return "Unknown"
	}
	switch *exchange {
	case "NMS":
		return "NASDAQ"
	case "SNP":
		return "S&P 500"
	default:
		return "Other"
	}
}
