package indicator

import "math"

// ADX returns Wilder's Average Directional Index, a trend-strength
// measure. It needs 2*period+1 bars: period TR/DM samples to seed the
// smoothed averages, then period DX values to seed the ADX itself.
func ADX(bars []Bar, period int) (float64, bool) {
	if period <= 0 || len(bars) < 2*period+1 {
		return 0, false
	}

	var tr, pdm, mdm float64
	var adx, dxSum float64
	dxCount := 0
	seeded := false

	for i := 1; i < len(bars); i++ {
		upMove := bars[i].High - bars[i-1].High
		downMove := bars[i-1].Low - bars[i].Low

		var p, m float64
		if upMove > downMove && upMove > 0 {
			p = upMove
		}
		if downMove > upMove && downMove > 0 {
			m = downMove
		}
		t := TrueRange(bars[i], bars[i-1])

		if i <= period {
			tr += t
			pdm += p
			mdm += m
			if i == period {
				tr /= float64(period)
				pdm /= float64(period)
				mdm /= float64(period)
			}
			continue
		}

		tr = (tr*float64(period-1) + t) / float64(period)
		pdm = (pdm*float64(period-1) + p) / float64(period)
		mdm = (mdm*float64(period-1) + m) / float64(period)

		if tr == 0 {
			continue
		}
		pdi := 100 * (pdm / tr)
		mdi := 100 * (mdm / tr)
		den := pdi + mdi
		if den == 0 {
			continue
		}
		dx := 100 * math.Abs(pdi-mdi) / den

		if !seeded {
			dxSum += dx
			dxCount++
			if dxCount == period {
				adx = dxSum / float64(period)
				seeded = true
			}
			continue
		}
		adx = (adx*float64(period-1) + dx) / float64(period)
	}

	if !seeded {
		return 0, false
	}
	return adx, true
}
