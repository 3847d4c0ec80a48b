package indicator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/trade-journal-bot/internal/indicator"
)

func TestRSIAllGains(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	v, ok := indicator.RSI(closes, 14)
	require.True(t, ok)
	assert.InDelta(t, 100.0, v, 1e-9)
}

func TestRSIAllLosses(t *testing.T) {
	closes := []float64{15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	v, ok := indicator.RSI(closes, 14)
	require.True(t, ok)
	assert.InDelta(t, 0.0, v, 1e-9)
}

func TestRSIWilderSmoothing(t *testing.T) {
	// period 3 over +1, +1, -1, +2: seed avgGain=2/3, avgLoss=1/3,
	// then one smoothed step gives avgGain=10/9, avgLoss=2/9, RSI=83.33.
	closes := []float64{1, 2, 3, 2, 4}
	v, ok := indicator.RSI(closes, 3)
	require.True(t, ok)
	assert.InDelta(t, 83.3333, v, 1e-3)
}

func TestRSIInsufficientData(t *testing.T) {
	closes := make([]float64, 14) // 14 closes give only 13 changes
	_, ok := indicator.RSI(closes, 14)
	assert.False(t, ok)
}

func TestRSISeriesCarriesRunningAverages(t *testing.T) {
	// The last series value must match the one-shot computation: the
	// smoothed averages are carried forward, never reconstructed.
	closes := []float64{10, 11, 10.5, 12, 11.8, 13, 12.5, 14, 13.2, 15, 14.4, 16, 15.1, 17, 16.3, 18, 17.2, 19, 18.5, 20}
	series := indicator.RSISeries(closes, 14)
	require.NotNil(t, series)
	require.Len(t, series, len(closes)-14)

	last, ok := indicator.RSI(closes, 14)
	require.True(t, ok)
	assert.InDelta(t, last, series[len(series)-1], 1e-12)

	for _, v := range series {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
}

func TestRSIRespondsToDirection(t *testing.T) {
	up := []float64{10, 10.5, 10.2, 11, 10.8, 11.5, 11.2, 12, 11.9, 12.5, 12.3, 13, 12.8, 13.5, 13.4, 14}
	down := make([]float64, len(up))
	for i, v := range up {
		down[i] = 24 - v
	}
	rsiUp, ok := indicator.RSI(up, 14)
	require.True(t, ok)
	rsiDown, ok := indicator.RSI(down, 14)
	require.True(t, ok)

	assert.Greater(t, rsiUp, 50.0)
	assert.Less(t, rsiDown, 50.0)
}
