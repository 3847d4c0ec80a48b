// Package pnl computes realized performance metrics for closed positions.
package pnl

import "github.com/shopspring/decimal"

// Outcome classifies a realized result by the sign of its P&L.
type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeLoss      Outcome = "loss"
	OutcomeBreakeven Outcome = "breakeven"
)

// Metrics holds the realized performance of a single closed position.
type Metrics struct {
	PL        decimal.Decimal
	PLPercent decimal.Decimal
	RMultiple *decimal.Decimal
	Outcome   Outcome
}

// Realized computes side-aware close metrics.
//
// For a long position pl = (exit-entry)*qty; for a short position the
// sign flips: pl = (entry-exit)*qty. PLPercent mirrors the same sign
// convention scaled by the entry price. RMultiple is pl divided by the
// risked amount and is nil whenever no positive risk amount was recorded.
func Realized(long bool, entry, exit, qty decimal.Decimal, risk *decimal.Decimal) Metrics {
	diff := exit.Sub(entry)
	if !long {
		diff = entry.Sub(exit)
	}
	pl := diff.Mul(qty)

	plPercent := decimal.Zero
	if !entry.IsZero() {
		plPercent = diff.Div(entry).Mul(decimal.NewFromInt(100))
	}

	var rMultiple *decimal.Decimal
	if risk != nil && risk.IsPositive() {
		r := pl.Div(*risk)
		rMultiple = &r
	}

	outcome := OutcomeBreakeven
	switch {
	case pl.IsPositive():
		outcome = OutcomeWin
	case pl.IsNegative():
		outcome = OutcomeLoss
	}

	return Metrics{PL: pl, PLPercent: plPercent, RMultiple: rMultiple, Outcome: outcome}
}
