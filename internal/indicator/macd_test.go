package indicator_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/trade-journal-bot/internal/indicator"
)

func constantCloses(n int, v float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = v
	}
	return closes
}

func TestMACDConstantSeriesIsZero(t *testing.T) {
	v, ok := indicator.MACD(constantCloses(60, 100), 12, 26, 9)
	require.True(t, ok)
	assert.InDelta(t, 0.0, v.Line, 1e-9)
	assert.InDelta(t, 0.0, v.Signal, 1e-9)
	assert.InDelta(t, 0.0, v.Histogram, 1e-9)
}

func TestMACDUptrendIsPositive(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	v, ok := indicator.MACD(closes, 12, 26, 9)
	require.True(t, ok)
	assert.Greater(t, v.Line, 0.0)
	assert.Greater(t, v.Signal, 0.0)
}

func TestMACDWarmupBoundary(t *testing.T) {
	// The signal line needs 9 MACD values, the first of which appears at
	// the 26th close.
	_, ok := indicator.MACD(constantCloses(33, 100), 12, 26, 9)
	assert.False(t, ok)

	_, ok = indicator.MACD(constantCloses(34, 100), 12, 26, 9)
	assert.True(t, ok)
}

func TestMACDSignalLagsLine(t *testing.T) {
	// After an abrupt jump the signal EMA must lag the MACD line, giving a
	// non-zero histogram. A histogram pinned at zero means the signal was
	// fed degenerate input.
	closes := make([]float64, 80)
	for i := range closes {
		closes[i] = 100.0
		if i >= 60 {
			closes[i] = 120.0
		}
	}
	v, ok := indicator.MACD(closes, 12, 26, 9)
	require.True(t, ok)
	assert.Greater(t, math.Abs(v.Histogram), 1e-6)
	assert.InDelta(t, v.Line-v.Signal, v.Histogram, 1e-9)
}

func TestMACDSeriesAlignment(t *testing.T) {
	closes := make([]float64, 50)
	for i := range closes {
		closes[i] = 100 + math.Sin(float64(i)/5)*10
	}
	line, sig, hist := indicator.MACDSeries(closes, 12, 26, 9)
	require.Len(t, line, len(closes)-25)
	require.Len(t, sig, len(line)-8)
	require.Len(t, hist, len(sig))

	// hist[i] must be line[i+signalOffset] - sig[i] for every index.
	for i := range sig {
		assert.InDelta(t, line[i+8]-sig[i], hist[i], 1e-9)
	}
}
