package indicator

import "math"

// SMA returns the simple moving average of the trailing period values.
func SMA(values []float64, period int) (float64, bool) {
	if period <= 0 || len(values) < period {
		return 0, false
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), true
}

// EMA returns the exponential moving average of the full series, seeded
// with the simple average of the first period values.
func EMA(values []float64, period int) (float64, bool) {
	series := EMASeries(values, period)
	if series == nil {
		return 0, false
	}
	return series[len(series)-1], true
}

// EMASeries returns the per-bar EMA trajectory. The returned slice has the
// same length as values; indices before the warm-up point hold NaN.
// Composite indicators (MACD, squeeze) index into this series rather than
// recomputing the EMA per bar, keeping full-series computation linear.
func EMASeries(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}
	series := make([]float64, len(values))
	for i := 0; i < period-1; i++ {
		series[i] = math.NaN()
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	ema := sum / float64(period)
	series[period-1] = ema

	k := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		ema = values[i]*k + ema*(1-k)
		series[i] = ema
	}
	return series
}
