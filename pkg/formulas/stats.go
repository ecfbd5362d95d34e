package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear is the fixed annualization convention. It is a
// documented constant, not derived from the actual date range.
const TradingDaysPerYear = 252

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample (n-1) standard deviation
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// DailyChanges converts prices to day-over-day fractional changes.
// Changes[i] = (Price[i+1] - Price[i]) / Price[i]. The first price has no
// prior-day delta, so the result is one shorter than the input.
func DailyChanges(prices []float64) []float64 {
	if len(prices) < 2 {
		return []float64{}
	}

	changes := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] != 0 {
			changes[i-1] = (prices[i] - prices[i-1]) / prices[i-1]
		}
	}

	return changes
}

// AnnualizedReturnPct scales the mean daily change by the 252-day
// convention, as a percentage. A point-in-time approximation, not
// compounding-accurate.
func AnnualizedReturnPct(dailyChanges []float64) float64 {
	if len(dailyChanges) == 0 {
		return 0
	}
	return Mean(dailyChanges) * TradingDaysPerYear * 100
}

// AnnualizedVolatilityPct scales the sample stddev of daily changes by
// sqrt(252), as a percentage.
func AnnualizedVolatilityPct(dailyChanges []float64) float64 {
	if len(dailyChanges) == 0 {
		return 0
	}
	return StdDev(dailyChanges) * math.Sqrt(TradingDaysPerYear) * 100
}

// RiskAdjustedReturn divides annualized return by annualized volatility
// (a Sharpe-like ratio with no risk-free rate subtracted). Returns nil
// when volatility is zero: the ratio is undefined and must be reported
// as such, never as Inf or NaN.
func RiskAdjustedReturn(annualizedReturnPct, annualizedVolatilityPct float64) *float64 {
	if annualizedVolatilityPct == 0 {
		return nil
	}
	ratio := annualizedReturnPct / annualizedVolatilityPct
	return &ratio
}
