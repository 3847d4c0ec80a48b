package indicator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/trade-journal-bot/internal/indicator"
)

func TestStochasticCloseAtExtremes(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]indicator.Bar, 20)
	for i := range bars {
		low := 100.0
		high := 110.0
		close := low + float64(i)*0.5
		bars[i] = indicator.Bar{
			Time: start.Add(time.Duration(i) * time.Hour),
			Open: close, High: high, Low: low, Close: close, Volume: 100,
		}
	}

	// Close pinned at the window high gives %K = 100.
	bars[len(bars)-1].Close = 110
	v, ok := indicator.Stochastic(bars, 14, 3)
	require.True(t, ok)
	assert.InDelta(t, 100.0, v.K, 1e-9)

	// Close pinned at the window low gives %K = 0.
	bars[len(bars)-1].Close = 100
	v, ok = indicator.Stochastic(bars, 14, 3)
	require.True(t, ok)
	assert.InDelta(t, 0.0, v.K, 1e-9)
}

func TestStochasticFlatWindowConvention(t *testing.T) {
	bars := barsFromRanges(20, 100, 0) // high == low everywhere
	v, ok := indicator.Stochastic(bars, 14, 3)
	require.True(t, ok)
	assert.InDelta(t, 50.0, v.K, 1e-9)
	assert.InDelta(t, 50.0, v.D, 1e-9)
}

func TestStochasticWarmupBoundary(t *testing.T) {
	_, ok := indicator.Stochastic(barsFromRanges(15, 100, 2), 14, 3)
	assert.False(t, ok)

	_, ok = indicator.Stochastic(barsFromRanges(16, 100, 2), 14, 3)
	assert.True(t, ok)
}

func TestStochasticDSmoothsK(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]indicator.Bar, 20)
	for i := range bars {
		close := 100 + float64(i%5)
		bars[i] = indicator.Bar{
			Time: start.Add(time.Duration(i) * time.Hour),
			Open: close, High: 106, Low: 99, Close: close, Volume: 100,
		}
	}
	v, ok := indicator.Stochastic(bars, 14, 3)
	require.True(t, ok)
	// %D is an average of recent %K values, so it sits inside their range.
	assert.GreaterOrEqual(t, v.D, 0.0)
	assert.LessOrEqual(t, v.D, 100.0)
	assert.NotEqual(t, v.K, v.D)
}

func TestCCIFlatSeriesIsZero(t *testing.T) {
	v, ok := indicator.CCI(barsFromRanges(25, 100, 0), 20)
	require.True(t, ok)
	assert.InDelta(t, 0.0, v, 1e-9)
}

func TestCCISignRespondsToPrice(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]indicator.Bar, 25)
	for i := range bars {
		base := 100.0
		if i == len(bars)-1 {
			base = 110.0 // last typical price well above the window mean
		}
		bars[i] = indicator.Bar{
			Time: start.Add(time.Duration(i) * time.Hour),
			Open: base, High: base + 1, Low: base - 1, Close: base, Volume: 100,
		}
	}
	v, ok := indicator.CCI(bars, 20)
	require.True(t, ok)
	assert.Greater(t, v, 0.0)

	bars[len(bars)-1] = indicator.Bar{
		Time: bars[len(bars)-1].Time,
		Open: 90, High: 91, Low: 89, Close: 90, Volume: 100,
	}
	v, ok = indicator.CCI(bars, 20)
	require.True(t, ok)
	assert.Less(t, v, 0.0)
}

func TestCCIWarmupBoundary(t *testing.T) {
	_, ok := indicator.CCI(barsFromRanges(19, 100, 2), 20)
	assert.False(t, ok)
}
