package pnl_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/trade-journal-bot/internal/pnl"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func TestRealizedLongLoss(t *testing.T) {
	// Long 10 @ 100 with 50 at risk, stopped out at 95.
	m := pnl.Realized(true, d("100"), d("95"), d("10"), dp("50"))

	assert.True(t, m.PL.Equal(d("-50")))
	assert.True(t, m.PLPercent.Equal(d("-5")))
	require.NotNil(t, m.RMultiple)
	assert.True(t, m.RMultiple.Equal(d("-1")))
	assert.Equal(t, pnl.OutcomeLoss, m.Outcome)
}

func TestRealizedLongWin(t *testing.T) {
	// Same position, target overshoot: exit at the fetched price of 111,
	// not the configured target of 110.
	m := pnl.Realized(true, d("100"), d("111"), d("10"), dp("50"))

	assert.True(t, m.PL.Equal(d("110")))
	assert.True(t, m.PLPercent.Equal(d("11")))
	require.NotNil(t, m.RMultiple)
	assert.True(t, m.RMultiple.Equal(d("2.2")))
	assert.Equal(t, pnl.OutcomeWin, m.Outcome)
}

func TestRealizedShortFlipsSign(t *testing.T) {
	// Short profits when price falls.
	m := pnl.Realized(false, d("100"), d("90"), d("5"), nil)
	assert.True(t, m.PL.Equal(d("50")))
	assert.True(t, m.PLPercent.Equal(d("10")))
	assert.Equal(t, pnl.OutcomeWin, m.Outcome)

	m = pnl.Realized(false, d("100"), d("110"), d("5"), nil)
	assert.True(t, m.PL.Equal(d("-50")))
	assert.Equal(t, pnl.OutcomeLoss, m.Outcome)
}

func TestRealizedBreakeven(t *testing.T) {
	m := pnl.Realized(true, d("100"), d("100"), d("10"), dp("50"))
	assert.True(t, m.PL.IsZero())
	assert.Equal(t, pnl.OutcomeBreakeven, m.Outcome)
	require.NotNil(t, m.RMultiple)
	assert.True(t, m.RMultiple.IsZero())
}

func TestRealizedRMultipleRequiresPositiveRisk(t *testing.T) {
	m := pnl.Realized(true, d("100"), d("110"), d("10"), nil)
	assert.Nil(t, m.RMultiple)

	m = pnl.Realized(true, d("100"), d("110"), d("10"), dp("0"))
	assert.Nil(t, m.RMultiple)

	m = pnl.Realized(true, d("100"), d("110"), d("10"), dp("-5"))
	assert.Nil(t, m.RMultiple)
}

func TestRealizedZeroEntryPrice(t *testing.T) {
	// Degenerate entry must not divide by zero.
	m := pnl.Realized(true, d("0"), d("10"), d("1"), nil)
	assert.True(t, m.PLPercent.IsZero())
	assert.True(t, m.PL.Equal(d("10")))
}
