package indicator

// RSI returns Wilder's Relative Strength Index over the trailing period.
// It requires period+1 closes (period price changes).
func RSI(closes []float64, period int) (float64, bool) {
	series := RSISeries(closes, period)
	if series == nil {
		return 0, false
	}
	return series[len(series)-1], true
}

// RSISeries returns the per-bar RSI trajectory. The returned slice has one
// entry per close starting at index period (the first bar with enough
// changes); earlier values are not representable and the slice is aligned
// so that series[i] corresponds to closes[i+period].
//
// The running average gain/loss is carried forward as explicit state
// through the whole recurrence. Reconstructing a prior average by
// inverting the RSI formula from a single RSI value loses information and
// produces drifting values, so it is deliberately not done here.
func RSISeries(closes []float64, period int) []float64 {
	if period <= 0 || len(closes) < period+1 {
		return nil
	}

	// Seed: simple mean of the first period gains/losses.
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	series := make([]float64, 0, len(closes)-period)
	series = append(series, rsiFromAverages(avgGain, avgLoss))

	// Wilder smoothing for every subsequent bar.
	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		series = append(series, rsiFromAverages(avgGain, avgLoss))
	}
	return series
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}
