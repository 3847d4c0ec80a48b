package indicator

import "math"

// BollingerResult holds the three Bollinger Band levels.
type BollingerResult struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// Width returns the band spread, upper minus lower.
func (b BollingerResult) Width() float64 {
	return b.Upper - b.Lower
}

// Bollinger returns Bollinger Bands: an SMA middle band with upper/lower
// at k population standard deviations over the trailing period.
func Bollinger(closes []float64, period int, k float64) (BollingerResult, bool) {
	middle, ok := SMA(closes, period)
	if !ok {
		return BollingerResult{}, false
	}
	variance := 0.0
	for i := len(closes) - period; i < len(closes); i++ {
		d := closes[i] - middle
		variance += d * d
	}
	sd := math.Sqrt(variance / float64(period))
	return BollingerResult{
		Upper:  middle + k*sd,
		Middle: middle,
		Lower:  middle - k*sd,
	}, true
}

// KeltnerResult holds the Keltner Channel levels.
type KeltnerResult struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// Width returns the channel spread, upper minus lower.
func (k KeltnerResult) Width() float64 {
	return k.Upper - k.Lower
}

// Keltner returns Keltner Channels: an EMA middle line with upper/lower
// offset by mult times the ATR of the same period. It requires period+1
// bars for the ATR leg.
func Keltner(bars []Bar, period int, mult float64) (KeltnerResult, bool) {
	middle, ok := EMA(Closes(bars), period)
	if !ok {
		return KeltnerResult{}, false
	}
	atr, ok := ATR(bars, period)
	if !ok {
		return KeltnerResult{}, false
	}
	return KeltnerResult{
		Upper:  middle + mult*atr,
		Middle: middle,
		Lower:  middle - mult*atr,
	}, true
}

// SqueezeResult reports Bollinger-inside-Keltner volatility compression.
type SqueezeResult struct {
	InSqueeze bool    `json:"inSqueeze"`
	Strength  float64 `json:"strength"`
}

// Squeeze detects the compression state where the Bollinger Bands(20, 2)
// sit fully inside the Keltner Channels(20, 1.5). Strength is
// 100*(1 - bbWidth/kcWidth) while the bands are nested, else 0.
func Squeeze(bars []Bar) (SqueezeResult, bool) {
	bb, ok := Bollinger(Closes(bars), 20, 2.0)
	if !ok {
		return SqueezeResult{}, false
	}
	kc, ok := Keltner(bars, 20, 1.5)
	if !ok {
		return SqueezeResult{}, false
	}

	inSqueeze := bb.Upper < kc.Upper && bb.Lower > kc.Lower
	strength := 0.0
	if inSqueeze && kc.Width() > 0 {
		strength = 100 * (1 - bb.Width()/kc.Width())
	}
	return SqueezeResult{InSqueeze: inSqueeze, Strength: strength}, true
}
