package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyChanges(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		want   []float64
	}{
		{
			name:   "two prices one change",
			prices: []float64{100, 110},
			want:   []float64{0.1},
		},
		{
			name:   "down move",
			prices: []float64{100, 90},
			want:   []float64{-0.1},
		},
		{
			name:   "single price no change",
			prices: []float64{100},
			want:   []float64{},
		},
		{
			name:   "empty input",
			prices: []float64{},
			want:   []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DailyChanges(tt.prices)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-12)
			}
		})
	}
}

func TestDailyChangesLength(t *testing.T) {
	prices := []float64{100, 101, 99, 103, 102}
	assert.Len(t, DailyChanges(prices), len(prices)-1)
}

func TestAnnualizedReturnPct(t *testing.T) {
	// mean(0.01, 0.03) = 0.02 -> 0.02 * 252 * 100
	changes := []float64{0.01, 0.03}
	assert.InDelta(t, 0.02*252*100, AnnualizedReturnPct(changes), 1e-9)
}

func TestAnnualizedVolatilityPct(t *testing.T) {
	// sample stddev of (0.01, 0.03) is sqrt(0.0002)
	changes := []float64{0.01, 0.03}
	want := math.Sqrt(0.0002) * math.Sqrt(252) * 100
	assert.InDelta(t, want, AnnualizedVolatilityPct(changes), 1e-9)
}

func TestStdDevUsesSampleConvention(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	// sample variance = sum((x-2.5)^2) / 3
	want := math.Sqrt((2.25 + 0.25 + 0.25 + 2.25) / 3)
	assert.InDelta(t, want, StdDev(data), 1e-12)
}

func TestRiskAdjustedReturn(t *testing.T) {
	t.Run("defined ratio", func(t *testing.T) {
		got := RiskAdjustedReturn(10, 4)
		require.NotNil(t, got)
		assert.InDelta(t, 2.5, *got, 1e-12)
	})

	t.Run("zero volatility is undefined", func(t *testing.T) {
		got := RiskAdjustedReturn(10, 0)
		assert.Nil(t, got)
	})
}

func TestFitLine(t *testing.T) {
	t.Run("exact line round-trips", func(t *testing.T) {
		x := []float64{0, 1, 2, 3, 4}
		y := make([]float64, len(x))
		for i, xi := range x {
			y[i] = 3.5 + 2.25*xi
		}

		intercept, slope, ok := FitLine(x, y)
		require.True(t, ok)
		assert.InDelta(t, 3.5, intercept, 1e-9)
		assert.InDelta(t, 2.25, slope, 1e-9)
	})

	t.Run("fewer than two points", func(t *testing.T) {
		_, _, ok := FitLine([]float64{1}, []float64{2})
		assert.False(t, ok)
	})

	t.Run("constant feature is underdetermined", func(t *testing.T) {
		_, _, ok := FitLine([]float64{2, 2, 2}, []float64{1, 2, 3})
		assert.False(t, ok)
	})
}

func TestIndicatorsBelowLookback(t *testing.T) {
	short := []float64{1, 2, 3}
	assert.Nil(t, CalculateSMA(short, 20))
	assert.Nil(t, CalculateRSI(short, 14))
}
