package indicator_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/trade-journal-bot/internal/indicator"
)

// syntheticBars generates a deterministic wavy uptrend with volume.
func syntheticBars(n int) []indicator.Bar {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]indicator.Bar, n)
	for i := range bars {
		base := 100 + float64(i)*0.3 + math.Sin(float64(i)/7)*4
		bars[i] = indicator.Bar{
			Time:   start.Add(time.Duration(i) * time.Hour),
			Open:   base - 0.5,
			High:   base + 1.5,
			Low:    base - 1.5,
			Close:  base,
			Volume: 1000 + float64(i%13)*50,
		}
	}
	return bars
}

func TestComputeFullHistory(t *testing.T) {
	res := indicator.Compute(syntheticBars(250))

	require.NotNil(t, res.EMA8)
	require.NotNil(t, res.EMA21)
	require.NotNil(t, res.EMA50)
	require.NotNil(t, res.EMA200)
	require.NotNil(t, res.SMA200)
	require.NotNil(t, res.RSI14)
	require.NotNil(t, res.MACD)
	require.NotNil(t, res.ATR14)
	require.NotNil(t, res.ADX14)
	require.NotNil(t, res.Bollinger)
	require.NotNil(t, res.Stochastic)
	require.NotNil(t, res.CCI20)
	require.NotNil(t, res.OBV)
	require.NotNil(t, res.VWAP20)
	require.NotNil(t, res.SessionVWAP)
	require.NotNil(t, res.Squeeze)

	assert.True(t, res.Warmup.CoreReady)
	assert.True(t, res.Warmup.TrendMA)
	assert.Empty(t, res.Warmup.Missing)

	// Sanity on ranges.
	assert.Greater(t, *res.RSI14, 0.0)
	assert.Less(t, *res.RSI14, 100.0)
	assert.Greater(t, *res.ATR14, 0.0)
}

func TestComputeShortHistoryIsSparse(t *testing.T) {
	res := indicator.Compute(syntheticBars(10))

	// Absence, not zero, signals "not yet computable".
	assert.Nil(t, res.RSI14)
	assert.Nil(t, res.MACD)
	assert.Nil(t, res.ATR14)
	assert.Nil(t, res.ADX14)
	assert.Nil(t, res.Bollinger)
	assert.Nil(t, res.SMA200)
	assert.Nil(t, res.Squeeze)

	// The cheap ones are already present.
	assert.NotNil(t, res.EMA8)
	assert.NotNil(t, res.OBV)
	assert.NotNil(t, res.SessionVWAP)

	assert.False(t, res.Warmup.CoreReady)
	assert.NotEmpty(t, res.Warmup.Missing)
}

func TestComputeEmptyInput(t *testing.T) {
	res := indicator.Compute(nil)
	assert.Nil(t, res.EMA8)
	assert.Nil(t, res.SessionVWAP)
	assert.False(t, res.Warmup.CoreReady)
	assert.Equal(t, 0, res.Warmup.Bars)
}

func TestComputeIsDeterministic(t *testing.T) {
	bars := syntheticBars(250)
	a := indicator.Compute(bars)
	b := indicator.Compute(bars)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("identical input produced different results (-first +second):\n%s", diff)
	}
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	bars := syntheticBars(100)
	before := make([]indicator.Bar, len(bars))
	copy(before, bars)

	indicator.Compute(bars)
	if diff := cmp.Diff(before, bars); diff != "" {
		t.Errorf("input bars mutated:\n%s", diff)
	}
}
