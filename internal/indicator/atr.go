package indicator

import "math"

// TrueRange is the greatest of high-low, |high-prevClose|, |low-prevClose|.
func TrueRange(current, previous Bar) float64 {
	highLow := current.High - current.Low
	highClose := math.Abs(current.High - previous.Close)
	lowClose := math.Abs(current.Low - previous.Close)
	return math.Max(highLow, math.Max(highClose, lowClose))
}

// ATR returns the Wilder-smoothed Average True Range over the trailing
// period. It requires period+1 bars because TR needs a previous close.
func ATR(bars []Bar, period int) (float64, bool) {
	series := ATRSeries(bars, period)
	if series == nil {
		return 0, false
	}
	return series[len(series)-1], true
}

// ATRSeries returns the per-bar ATR trajectory, aligned so that series[i]
// corresponds to bars[i+period].
func ATRSeries(bars []Bar, period int) []float64 {
	if period <= 0 || len(bars) < period+1 {
		return nil
	}

	sum := 0.0
	for i := 1; i <= period; i++ {
		sum += TrueRange(bars[i], bars[i-1])
	}
	atr := sum / float64(period)

	series := make([]float64, 0, len(bars)-period)
	series = append(series, atr)
	for i := period + 1; i < len(bars); i++ {
		tr := TrueRange(bars[i], bars[i-1])
		atr = (atr*float64(period-1) + tr) / float64(period)
		series = append(series, atr)
	}
	return series
}
