package indicator

// Result is a sparse record of indicator values at the latest bar. A nil
// field means the indicator could not be computed from the available
// history; absence is the explicit "not yet computable" signal, never a
// zero standing in for missing data.
type Result struct {
	EMA8        *float64          `json:"ema8,omitempty"`
	EMA21       *float64          `json:"ema21,omitempty"`
	EMA50       *float64          `json:"ema50,omitempty"`
	EMA200      *float64          `json:"ema200,omitempty"`
	SMA200      *float64          `json:"sma200,omitempty"`
	RSI14       *float64          `json:"rsi14,omitempty"`
	MACD        *MACDResult       `json:"macd,omitempty"`
	ATR14       *float64          `json:"atr14,omitempty"`
	ADX14       *float64          `json:"adx14,omitempty"`
	Bollinger   *BollingerResult  `json:"bollinger,omitempty"`
	Stochastic  *StochasticResult `json:"stochastic,omitempty"`
	CCI20       *float64          `json:"cci20,omitempty"`
	OBV         *float64          `json:"obv,omitempty"`
	VWAP20      *float64          `json:"vwap20,omitempty"`
	SessionVWAP *float64          `json:"sessionVwap,omitempty"`
	Squeeze     *SqueezeResult    `json:"squeeze,omitempty"`

	Warmup WarmupStatus `json:"warmup"`
}

// Compute evaluates the full indicator set at the standard parameters over
// a chronologically ordered bar sequence. Each indicator's series is
// computed once, keeping the whole pass linear in the bar count.
func Compute(bars []Bar) Result {
	res := Result{Warmup: Warmup(len(bars))}
	if len(bars) == 0 {
		return res
	}
	closes := Closes(bars)

	if v, ok := EMA(closes, 8); ok {
		res.EMA8 = &v
	}
	if v, ok := EMA(closes, 21); ok {
		res.EMA21 = &v
	}
	if v, ok := EMA(closes, 50); ok {
		res.EMA50 = &v
	}
	if v, ok := EMA(closes, 200); ok {
		res.EMA200 = &v
	}
	if v, ok := SMA(closes, 200); ok {
		res.SMA200 = &v
	}
	if v, ok := RSI(closes, 14); ok {
		res.RSI14 = &v
	}
	if v, ok := MACD(closes, 12, 26, 9); ok {
		res.MACD = &v
	}
	if v, ok := ATR(bars, 14); ok {
		res.ATR14 = &v
	}
	if v, ok := ADX(bars, 14); ok {
		res.ADX14 = &v
	}
	if v, ok := Bollinger(closes, 20, 2.0); ok {
		res.Bollinger = &v
	}
	if v, ok := Stochastic(bars, 14, 3); ok {
		res.Stochastic = &v
	}
	if v, ok := CCI(bars, 20); ok {
		res.CCI20 = &v
	}
	if v, ok := OBV(bars); ok {
		res.OBV = &v
	}
	if v, ok := VWAP(bars, 20); ok {
		res.VWAP20 = &v
	}
	if v, ok := SessionVWAP(bars); ok {
		res.SessionVWAP = &v
	}
	if v, ok := Squeeze(bars); ok {
		res.Squeeze = &v
	}
	return res
}
