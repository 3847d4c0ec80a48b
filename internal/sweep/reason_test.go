package sweep

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/your-org/trade-journal-bot/internal/journal"
)

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func position(side journal.Side, stop, target *decimal.Decimal, daysAgo int) journal.Position {
	return journal.Position{
		Side:       side,
		TradeDate:  time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC).AddDate(0, 0, -daysAgo),
		EntryPrice: decimal.NewFromInt(100),
		Quantity:   decimal.NewFromInt(10),
		StopLoss:   stop,
		Target:     target,
	}
}

var sweepNow = time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)

func TestCloseReasonLongStop(t *testing.T) {
	p := position(journal.SideLong, dec(95), dec(110), 1)

	reason, fired := closeReason(p, decimal.NewFromInt(95), sweepNow, 5)
	assert.True(t, fired)
	assert.Equal(t, journal.ExitReasonStopLoss, reason)

	// One tick above the stop does nothing.
	_, fired = closeReason(p, decimal.RequireFromString("95.01"), sweepNow, 5)
	assert.False(t, fired)
}

func TestCloseReasonLongTarget(t *testing.T) {
	p := position(journal.SideLong, dec(95), dec(110), 1)

	reason, fired := closeReason(p, decimal.NewFromInt(110), sweepNow, 5)
	assert.True(t, fired)
	assert.Equal(t, journal.ExitReasonTarget, reason)

	reason, fired = closeReason(p, decimal.NewFromInt(111), sweepNow, 5)
	assert.True(t, fired)
	assert.Equal(t, journal.ExitReasonTarget, reason)
}

func TestCloseReasonShortSideAware(t *testing.T) {
	// Short positions stop out on rising prices and take profit on falls.
	p := position(journal.SideShort, dec(105), dec(90), 1)

	reason, fired := closeReason(p, decimal.NewFromInt(105), sweepNow, 5)
	assert.True(t, fired)
	assert.Equal(t, journal.ExitReasonStopLoss, reason)

	reason, fired = closeReason(p, decimal.NewFromInt(90), sweepNow, 5)
	assert.True(t, fired)
	assert.Equal(t, journal.ExitReasonTarget, reason)

	_, fired = closeReason(p, decimal.NewFromInt(100), sweepNow, 5)
	assert.False(t, fired)
}

func TestCloseReasonStopWinsWhenBothFire(t *testing.T) {
	// A gap can satisfy stop and target in the same evaluation; the stop
	// must win.
	p := position(journal.SideLong, dec(95), dec(90), 1)

	reason, fired := closeReason(p, decimal.NewFromInt(92), sweepNow, 5)
	assert.True(t, fired)
	assert.Equal(t, journal.ExitReasonStopLoss, reason)
}

func TestCloseReasonTimeExpiry(t *testing.T) {
	// No stop or target configured: only the calendar can close it.
	p := position(journal.SideLong, nil, nil, 5)
	reason, fired := closeReason(p, decimal.NewFromInt(100), sweepNow, 5)
	assert.True(t, fired)
	assert.Equal(t, journal.ExitReasonTime, reason)

	fresh := position(journal.SideLong, nil, nil, 4)
	_, fired = closeReason(fresh, decimal.NewFromInt(100), sweepNow, 5)
	assert.False(t, fired)
}

func TestCloseReasonPriceBeatsTime(t *testing.T) {
	// An expired position whose price also hit the stop reports the stop.
	p := position(journal.SideLong, dec(95), dec(110), 9)
	reason, fired := closeReason(p, decimal.NewFromInt(94), sweepNow, 5)
	assert.True(t, fired)
	assert.Equal(t, journal.ExitReasonStopLoss, reason)
}

func TestDaysOpenUsesCalendarDays(t *testing.T) {
	// 23:00 to 01:00 next day is one calendar day despite two hours.
	from := time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 2, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, daysOpen(from, to))

	// Same day, any hours apart, is zero.
	assert.Equal(t, 0, daysOpen(
		time.Date(2025, 6, 1, 0, 1, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)))
}
