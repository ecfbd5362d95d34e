package report

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ramalsaham/dashboard/internal/domain"
	"github.com/ramalsaham/dashboard/internal/httpapi"
	"github.com/ramalsaham/dashboard/internal/modules/forecast"
	"github.com/ramalsaham/dashboard/internal/modules/fundamentals"
	"github.com/ramalsaham/dashboard/internal/modules/history"
	"github.com/ramalsaham/dashboard/internal/modules/metrics"
	"github.com/ramalsaham/dashboard/internal/modules/news"
)

// Request holds the inbound parameters for one composite report
type Request struct {
	Ticker      string
	Start       time.Time
	End         time.Time
	HorizonDays int
	NewsLimit   int
}

// Report is the composite, read-only result. Sections fail
// independently: a nil section has a matching entry in Errors, and a
// failure in one provider never suppresses the others.
type Report struct {
	Ticker     string                                          `json:"ticker"`
	Profile    *domain.CompanyProfile                          `json:"profile,omitempty"`
	Series     *domain.TickerSeries                            `json:"series,omitempty"`
	Metrics    *domain.ReturnMetrics                           `json:"metrics,omitempty"`
	Indicators *metrics.Indicators                             `json:"indicators,omitempty"`
	Forecast   *domain.ForecastResult                          `json:"forecast,omitempty"`
	Statements map[domain.StatementKind]*domain.FundamentalStatement `json:"statements,omitempty"`
	News       *domain.NewsDigest                              `json:"news,omitempty"`
	Errors     map[string]string                               `json:"errors,omitempty"`
}

// Section names used as Errors keys
const (
	sectionSeries       = "series"
	sectionProfile      = "profile"
	sectionMetrics      = "metrics"
	sectionForecast     = "forecast"
	sectionFundamentals = "fundamentals"
	sectionNews         = "news"
)

// Service composes the five pipeline components into one report
type Service struct {
	ingestor     *history.Service
	metrics      *metrics.Service
	forecaster   *forecast.Service
	fundamentals *fundamentals.Service
	news         *news.Service
	requestLog   *RequestLog
	log          zerolog.Logger
}

// NewService creates a new report service. requestLog may be nil when
// the request log is disabled.
func NewService(
	ingestor *history.Service,
	metricsSvc *metrics.Service,
	forecaster *forecast.Service,
	fundamentalsSvc *fundamentals.Service,
	newsSvc *news.Service,
	requestLog *RequestLog,
	log zerolog.Logger,
) *Service {
	return &Service{
		ingestor:     ingestor,
		metrics:      metricsSvc,
		forecaster:   forecaster,
		fundamentals: fundamentalsSvc,
		news:         newsSvc,
		requestLog:   requestLog,
		log:          log.With().Str("module", "report").Logger(),
	}
}

// Build assembles the composite report. The horizon is validated before
// any provider call. The ingested series feeds metrics and forecast,
// which run concurrently over the same read-only value; profile,
// fundamentals, and news are independent pipelines dispatched in
// parallel with them.
func (s *Service) Build(ctx context.Context, req Request) (Report, error) {
	if err := forecast.ValidateHorizon(req.HorizonDays); err != nil {
		return Report{}, err
	}

	started := time.Now()

	report := Report{
		Ticker: req.Ticker,
		Errors: map[string]string{},
	}
	var mu sync.Mutex
	var wg sync.WaitGroup

	fail := func(section string, err error) {
		_, message := httpapi.StatusForError(err)
		mu.Lock()
		report.Errors[section] = message
		mu.Unlock()
		s.log.Warn().Err(err).Str("section", section).Str("ticker", req.Ticker).Msg("Report section failed")
	}

	// Price pipeline: one ingest, then metrics and forecast in parallel
	// off the shared immutable series.
	wg.Add(1)
	go func() {
		defer wg.Done()

		series, err := s.ingestor.Fetch(ctx, req.Ticker, req.Start, req.End)
		if err != nil {
			fail(sectionSeries, err)
			return
		}

		mu.Lock()
		report.Series = &series
		mu.Unlock()

		var inner sync.WaitGroup
		inner.Add(2)

		go func() {
			defer inner.Done()
			result, err := s.metrics.Compute(series)
			if err != nil {
				fail(sectionMetrics, err)
				return
			}
			indicators := s.metrics.ComputeIndicators(series)
			mu.Lock()
			report.Metrics = &result
			report.Indicators = &indicators
			mu.Unlock()
		}()

		go func() {
			defer inner.Done()
			model, err := s.forecaster.Fit(series)
			if err != nil {
				fail(sectionForecast, err)
				return
			}
			result, err := s.forecaster.Predict(model, req.HorizonDays)
			if err != nil {
				fail(sectionForecast, err)
				return
			}
			mu.Lock()
			report.Forecast = &result
			mu.Unlock()
		}()

		inner.Wait()
	}()

	// Profile is display-only; its failure never blocks the pipeline
	wg.Add(1)
	go func() {
		defer wg.Done()
		profile, err := s.ingestor.Profile(ctx, req.Ticker)
		if err != nil {
			fail(sectionProfile, err)
			return
		}
		mu.Lock()
		report.Profile = &profile
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		results := s.fundamentals.FetchAll(ctx, req.Ticker)

		statements := map[domain.StatementKind]*domain.FundamentalStatement{}
		var firstErr error
		for _, kind := range domain.StatementKinds {
			result := results[kind]
			if result.Err != nil {
				if firstErr == nil {
					firstErr = result.Err
				}
				continue
			}
			stmt := result.Statement
			statements[kind] = &stmt
		}

		if len(statements) > 0 {
			mu.Lock()
			report.Statements = statements
			mu.Unlock()
		}
		if firstErr != nil {
			fail(sectionFundamentals, firstErr)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		digest, err := s.news.Fetch(ctx, req.Ticker, req.NewsLimit)
		if err != nil && !errors.Is(err, domain.ErrNoNewsAvailable) {
			fail(sectionNews, err)
			return
		}
		mu.Lock()
		report.News = &digest
		mu.Unlock()
	}()

	wg.Wait()

	if len(report.Errors) == 0 {
		report.Errors = nil
	}

	if s.requestLog != nil {
		s.requestLog.Record(req.Ticker, req.Start, req.End, req.HorizonDays,
			failedSections(report.Errors), time.Since(started))
	}

	return report, nil
}

func failedSections(sectionErrors map[string]string) []string {
	if len(sectionErrors) == 0 {
		return nil
	}
	sections := make([]string, 0, len(sectionErrors))
	for section := range sectionErrors {
		sections = append(sections, section)
	}
	sort.Strings(sections)
	return sections
}
