package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/ramalsaham/dashboard/internal/domain"
	"github.com/ramalsaham/dashboard/pkg/formulas"
)

// Horizon bounds for future predictions, in calendar days
const (
	MinHorizonDays = 1
	MaxHorizonDays = 365
)

// holdoutFraction is the chronological share of the series reserved as a
// validation holdout. The holdout is computed and recorded but nothing
// reads it yet; it is a hook for future validation logic, kept because
// the methodology presents an 80/20 split alongside the fit.
const holdoutFraction = 0.2

// Model is a fitted linear trend: adjusted close regressed on the
// integer day count since the first observation.
type Model struct {
	Intercept float64
	Slope     float64 // price units per calendar day

	origin   time.Time // date of the first observation
	lastDate time.Time
	lastDay  float64
	days     []float64
	dates    []time.Time

	// TrainSize and HoldoutSize record the chronological split. Only the
	// training slice informs the coefficients; the holdout is unused.
	TrainSize   int
	HoldoutSize int
}

// Service is the trend forecaster
type Service struct {
	log zerolog.Logger
}

// NewService creates a new forecast service
func NewService(log zerolog.Logger) *Service {
	return &Service{
		log: log.With().Str("module", "forecast").Logger(),
	}
}

// Fit performs an ordinary least-squares fit of adjusted close on days
// since the series start. The series is split chronologically, the last
// ceil(20%) of points held out, and the line fitted on the remainder.
// Fails with domain.ErrInsufficientData when the training slice cannot
// determine a line.
func (s *Service) Fit(series domain.TickerSeries) (*Model, error) {
	n := len(series.Points)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, have %d", domain.ErrInsufficientData, n)
	}

	holdout := int(math.Ceil(float64(n) * holdoutFraction))
	train := n - holdout
	if train < 2 {
		return nil, fmt.Errorf("%w: training slice has %d points, need at least 2",
			domain.ErrInsufficientData, train)
	}

	origin := series.Points[0].Date
	days := make([]float64, n)
	dates := make([]time.Time, n)
	closes := series.AdjCloses()
	for i, p := range series.Points {
		days[i] = daysBetween(origin, p.Date)
		dates[i] = p.Date
	}

	intercept, slope, ok := formulas.FitLine(days[:train], closes[:train])
	if !ok {
		return nil, fmt.Errorf("%w: degenerate training slice", domain.ErrInsufficientData)
	}

	s.log.Debug().
		Str("ticker", series.Ticker).
		Float64("intercept", intercept).
		Float64("slope", slope).
		Int("train", train).
		Int("holdout", holdout).
		Msg("Fitted trend model")

	return &Model{
		Intercept:   intercept,
		Slope:       slope,
		origin:      origin,
		lastDate:    dates[n-1],
		lastDay:     days[n-1],
		days:        days,
		dates:       dates,
		TrainSize:   train,
		HoldoutSize: holdout,
	}, nil
}

// Predict evaluates the model in-sample at every observed day and
// extrapolates horizonDays consecutive calendar days past the last
// observed date. Future dates include weekends; that is the documented
// approximation, not a bug to fix. The horizon must already be inside
// [1, 365]; callers validate it before any fetch or fit work.
func (s *Service) Predict(model *Model, horizonDays int) (domain.ForecastResult, error) {
	if err := ValidateHorizon(horizonDays); err != nil {
		return domain.ForecastResult{}, err
	}

	fitted := make([]domain.PredictedPoint, len(model.days))
	for i, day := range model.days {
		fitted[i] = domain.PredictedPoint{
			Date:           model.dates[i],
			PredictedClose: formulas.PredictLine(model.Intercept, model.Slope, day),
		}
	}

	future := make([]domain.PredictedPoint, horizonDays)
	for k := 0; k < horizonDays; k++ {
		future[k] = domain.PredictedPoint{
			Date:           model.lastDate.AddDate(0, 0, k+1),
			PredictedClose: formulas.PredictLine(model.Intercept, model.Slope, model.lastDay+float64(k+1)),
		}
	}

	return domain.ForecastResult{
		Fitted:      fitted,
		HorizonDays: horizonDays,
		Future:      future,
		Intercept:   model.Intercept,
		SlopePerDay: model.Slope,
	}, nil
}

// ValidateHorizon rejects horizons outside [1, 365]. Exposed so the
// HTTP layer can refuse bad requests before any network work happens.
func ValidateHorizon(horizonDays int) error {
	if horizonDays < MinHorizonDays || horizonDays > MaxHorizonDays {
		return fmt.Errorf("horizon must be between %d and %d days, got %d",
			MinHorizonDays, MaxHorizonDays, horizonDays)
	}
	return nil
}

// daysBetween returns the whole-day count from a to b
func daysBetween(a, b time.Time) float64 {
	return math.Round(b.Sub(a).Hours() / 24)
}
