package quote

import "strings"

// Asset classes recognized by the normalizer. Unknown classes fall back
// to the equity rules.
const (
	ClassEquity = "equity"
	ClassCrypto = "crypto"
	ClassFX     = "fx"
)

// Instrument is a vendor-ready identifier derived from a journal symbol.
type Instrument struct {
	Symbol     string // normalized lookup symbol
	AssetClass string
	Base       string // FX only
	Quote      string // FX only
}

var cryptoQuoteSuffixes = []string{"-USD", "-USDT", "-USDC", "USDT", "USDC"}

// Normalize maps a raw (symbol, assetClass) pair to the identifier the
// quote vendor expects. Crypto symbols lose their quote-currency suffix,
// FX pairs split into base/quote, equities pass through uppercased.
func Normalize(symbol, assetClass string) Instrument {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	class := strings.ToLower(strings.TrimSpace(assetClass))

	switch class {
	case ClassCrypto:
		for _, suffix := range cryptoQuoteSuffixes {
			if trimmed := strings.TrimSuffix(sym, suffix); trimmed != sym && trimmed != "" {
				sym = trimmed
				break
			}
		}
		return Instrument{Symbol: sym, AssetClass: ClassCrypto}
	case ClassFX:
		base, quoteCur := splitPair(sym)
		return Instrument{Symbol: base + quoteCur, AssetClass: ClassFX, Base: base, Quote: quoteCur}
	default:
		return Instrument{Symbol: sym, AssetClass: class}
	}
}

// splitPair splits an FX pair like "EUR/USD" or "EURUSD" into base and
// quote currencies. Six-letter pairs split in the middle; anything else
// is returned as base with an empty quote.
func splitPair(sym string) (string, string) {
	if i := strings.IndexAny(sym, "/-"); i > 0 {
		return sym[:i], sym[i+1:]
	}
	if len(sym) == 6 {
		return sym[:3], sym[3:]
	}
	return sym, ""
}
