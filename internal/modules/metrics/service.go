package metrics

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ramalsaham/dashboard/internal/domain"
	"github.com/ramalsaham/dashboard/pkg/formulas"
)

// Lookback windows for the display indicators
const (
	smaPeriod = 20
	rsiPeriod = 14
)

// Indicators are display-only technical statistics over adjusted close.
// Nil when the series is shorter than the lookback.
type Indicators struct {
	SMA20 *float64 `json:"sma_20"`
	RSI14 *float64 `json:"rsi_14"`
}

// Service is the return & risk calculator
type Service struct {
	log zerolog.Logger
}

// NewService creates a new metrics service
func NewService(log zerolog.Logger) *Service {
	return &Service{
		log: log.With().Str("module", "metrics").Logger(),
	}
}

// Compute derives annualized return/risk metrics from a price series.
// Defined only for series of at least 2 points; shorter input returns
// domain.ErrInsufficientData rather than a metrics object with NaN
// fields. The first point carries no prior-day delta and is dropped.
func (s *Service) Compute(series domain.TickerSeries) (domain.ReturnMetrics, error) {
	if len(series.Points) < 2 {
		return domain.ReturnMetrics{}, fmt.Errorf("%w: need at least 2 points, have %d",
			domain.ErrInsufficientData, len(series.Points))
	}

	changes := formulas.DailyChanges(series.AdjCloses())

	daily := make([]domain.DailyChange, len(changes))
	for i, change := range changes {
		daily[i] = domain.DailyChange{
			Date:   series.Points[i+1].Date,
			Change: change,
		}
	}

	annualReturn := formulas.AnnualizedReturnPct(changes)
	annualVol := formulas.AnnualizedVolatilityPct(changes)

	return domain.ReturnMetrics{
		DailyChanges:            daily,
		AnnualizedReturnPct:     annualReturn,
		AnnualizedVolatilityPct: annualVol,
		RiskAdjustedReturn:      formulas.RiskAdjustedReturn(annualReturn, annualVol),
	}, nil
}

// ComputeIndicators derives the display indicators for the pricing
// section. Never fails: short series just leave the fields nil.
func (s *Service) ComputeIndicators(series domain.TickerSeries) Indicators {
	closes := series.AdjCloses()
	return Indicators{
		SMA20: formulas.CalculateSMA(closes, smaPeriod),
		RSI14: formulas.CalculateRSI(closes, rsiPeriod),
	}
}
