package indicator

// OBV returns On-Balance Volume accumulated over the whole sequence:
// volume is added on up-closes and subtracted on down-closes. At least
// two bars are required to have a direction.
func OBV(bars []Bar) (float64, bool) {
	if len(bars) < 2 {
		return 0, false
	}
	obv := 0.0
	for i := 1; i < len(bars); i++ {
		switch {
		case bars[i].Close > bars[i-1].Close:
			obv += bars[i].Volume
		case bars[i].Close < bars[i-1].Close:
			obv -= bars[i].Volume
		}
	}
	return obv, true
}

// VWAP returns the volume-weighted average price of typical prices over
// the trailing window bars. A window of zero total volume is not
// computable.
func VWAP(bars []Bar, window int) (float64, bool) {
	if window <= 0 || len(bars) < window {
		return 0, false
	}
	return vwapOver(bars[len(bars)-window:])
}

// SessionVWAP returns the VWAP of all bars sharing the last bar's UTC
// calendar day, the session anchor used for intraday timeframes.
func SessionVWAP(bars []Bar) (float64, bool) {
	if len(bars) == 0 {
		return 0, false
	}
	last := bars[len(bars)-1].Time.UTC()
	y, m, d := last.Date()

	start := len(bars) - 1
	for start > 0 {
		py, pm, pd := bars[start-1].Time.UTC().Date()
		if py != y || pm != m || pd != d {
			break
		}
		start--
	}
	return vwapOver(bars[start:])
}

func vwapOver(bars []Bar) (float64, bool) {
	var pv, vol float64
	for _, b := range bars {
		typical := (b.High + b.Low + b.Close) / 3
		pv += typical * b.Volume
		vol += b.Volume
	}
	if vol == 0 {
		return 0, false
	}
	return pv / vol, true
}
