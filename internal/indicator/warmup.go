package indicator

// Minimum bar counts before each indicator family is numerically
// meaningful at the default parameters used by Compute.
const (
	MinBarsRSI       = 15  // 14 changes need 15 closes
	MinBarsMACD      = 35  // slow EMA 26 plus signal EMA 9
	MinBarsATR       = 15  // TR needs a previous close
	MinBarsADX       = 29  // 2*14+1 for Wilder seeding
	MinBarsTrendMA   = 200 // EMA200 / SMA200
	MinBarsBollinger = 20
	MinBarsSqueeze   = 21 // Keltner ATR leg needs one extra bar
	MinBarsStoch     = 16 // %K 14 plus %D 3 minus 1
	MinBarsCCI       = 20
	MinBarsVWAP      = 20
	MinBarsOBV       = 2
)

// WarmupStatus reports, per indicator family, whether the bar history is
// long enough for the value to be trusted. Downstream decisioning must
// check CoreReady (or the per-family flag) before acting on a value.
type WarmupStatus struct {
	Bars      int  `json:"bars"`
	RSI       bool `json:"rsi"`
	MACD      bool `json:"macd"`
	ATR       bool `json:"atr"`
	ADX       bool `json:"adx"`
	TrendMA   bool `json:"trendMa"`
	Bollinger bool `json:"bollinger"`
	Squeeze   bool `json:"squeeze"`
	Stoch     bool `json:"stoch"`
	CCI       bool `json:"cci"`
	VWAP      bool `json:"vwap"`
	OBV       bool `json:"obv"`

	// CoreReady is true when every short-horizon family is ready. The
	// 200-bar trend averages are excluded: they warm up an order of
	// magnitude later and are reported individually instead.
	CoreReady bool     `json:"coreReady"`
	Missing   []string `json:"missing,omitempty"`
}

// Warmup derives the readiness status for a bar count.
func Warmup(bars int) WarmupStatus {
	s := WarmupStatus{
		Bars:      bars,
		RSI:       bars >= MinBarsRSI,
		MACD:      bars >= MinBarsMACD,
		ATR:       bars >= MinBarsATR,
		ADX:       bars >= MinBarsADX,
		TrendMA:   bars >= MinBarsTrendMA,
		Bollinger: bars >= MinBarsBollinger,
		Squeeze:   bars >= MinBarsSqueeze,
		Stoch:     bars >= MinBarsStoch,
		CCI:       bars >= MinBarsCCI,
		VWAP:      bars >= MinBarsVWAP,
		OBV:       bars >= MinBarsOBV,
	}
	s.CoreReady = s.RSI && s.MACD && s.ATR && s.ADX && s.Bollinger &&
		s.Squeeze && s.Stoch && s.CCI && s.VWAP && s.OBV

	for _, f := range []struct {
		name  string
		ready bool
	}{
		{"rsi", s.RSI}, {"macd", s.MACD}, {"atr", s.ATR}, {"adx", s.ADX},
		{"trendMa", s.TrendMA}, {"bollinger", s.Bollinger},
		{"squeeze", s.Squeeze}, {"stoch", s.Stoch}, {"cci", s.CCI},
		{"vwap", s.VWAP}, {"obv", s.OBV},
	} {
		if !f.ready {
			s.Missing = append(s.Missing, f.name)
		}
	}
	return s
}
