package indicator

import "math"

// StochasticResult holds the %K and %D lines of the stochastic oscillator.
type StochasticResult struct {
	K float64 `json:"k"`
	D float64 `json:"d"`
}

// Stochastic returns the fast stochastic oscillator: %K over the trailing
// kPeriod bars and %D as the simple average of the last dPeriod %K values.
// It requires kPeriod+dPeriod-1 bars.
func Stochastic(bars []Bar, kPeriod, dPeriod int) (StochasticResult, bool) {
	if kPeriod <= 0 || dPeriod <= 0 || len(bars) < kPeriod+dPeriod-1 {
		return StochasticResult{}, false
	}

	kValues := make([]float64, 0, dPeriod)
	for end := len(bars) - dPeriod + 1; end <= len(bars); end++ {
		window := bars[end-kPeriod : end]
		highest := window[0].High
		lowest := window[0].Low
		for _, b := range window[1:] {
			highest = math.Max(highest, b.High)
			lowest = math.Min(lowest, b.Low)
		}
		k := 50.0 // flat window convention
		if highest != lowest {
			k = 100 * (window[len(window)-1].Close - lowest) / (highest - lowest)
		}
		kValues = append(kValues, k)
	}

	d := 0.0
	for _, k := range kValues {
		d += k
	}
	d /= float64(len(kValues))

	return StochasticResult{K: kValues[len(kValues)-1], D: d}, true
}

// CCI returns the Commodity Channel Index over the trailing period,
// using the standard 0.015 scaling constant over typical price.
func CCI(bars []Bar, period int) (float64, bool) {
	if period <= 0 || len(bars) < period {
		return 0, false
	}
	window := bars[len(bars)-period:]

	tp := make([]float64, period)
	sum := 0.0
	for i, b := range window {
		tp[i] = (b.High + b.Low + b.Close) / 3
		sum += tp[i]
	}
	mean := sum / float64(period)

	meanDev := 0.0
	for _, v := range tp {
		meanDev += math.Abs(v - mean)
	}
	meanDev /= float64(period)
	if meanDev == 0 {
		return 0, true
	}
	return (tp[period-1] - mean) / (0.015 * meanDev), true
}
