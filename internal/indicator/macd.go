package indicator

import "math"

// MACDResult holds the MACD line, its signal line, and the histogram.
type MACDResult struct {
	Line      float64 `json:"line"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// MACD returns the latest MACD values for the given fast/slow/signal
// periods. The sequence must cover slow+signal-1 closes before the signal
// line is defined.
func MACD(closes []float64, fast, slow, signal int) (MACDResult, bool) {
	line, sig, hist := MACDSeries(closes, fast, slow, signal)
	if len(hist) == 0 {
		return MACDResult{}, false
	}
	n := len(line) - 1
	return MACDResult{
		Line:      line[n],
		Signal:    sig[len(sig)-1],
		Histogram: hist[len(hist)-1],
	}, true
}

// MACDSeries returns the MACD line, signal, and histogram trajectories.
//
// The MACD line starts where both component EMAs are defined
// (closes[slow-1]); the compact line slice is aligned to that offset. The
// signal EMA consumes every valid MACD value from that point on, so its
// index advances with the line rather than with its own readiness.
// Advancing it only once the signal is warm would freeze the seed window
// and desynchronize the histogram permanently.
//
// signal and hist are aligned to each other; line[i+signalOffset]
// corresponds to sig[i], where signalOffset = signal-1.
func MACDSeries(closes []float64, fast, slow, signal int) (line, sig, hist []float64) {
	if fast <= 0 || slow <= fast || signal <= 0 || len(closes) < slow {
		return nil, nil, nil
	}
	fastSeries := EMASeries(closes, fast)
	slowSeries := EMASeries(closes, slow)

	line = make([]float64, 0, len(closes)-slow+1)
	for i := slow - 1; i < len(closes); i++ {
		line = append(line, fastSeries[i]-slowSeries[i])
	}

	sig = EMASeries(line, signal)
	if sig == nil {
		return line, nil, nil
	}

	hist = make([]float64, 0, len(sig))
	for i, s := range sig {
		if math.IsNaN(s) {
			continue
		}
		hist = append(hist, line[i]-s)
	}
	// Trim the NaN warm-up prefix so sig aligns with hist.
	sig = sig[signal-1:]
	return line, sig, hist
}
