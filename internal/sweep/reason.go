package sweep

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/your-org/trade-journal-bot/internal/journal"
)

// DefaultExpiryDays is how long a position may stay open before the
// time-based exit fires regardless of price.
const DefaultExpiryDays = 5

// closeReason decides whether a position must be closed at the current
// price. Precedence is strict: stop-loss first, then target, then
// time-based expiry. A price that satisfies both stop and target (a
// gapped market) therefore resolves to the stop. Stop and target tests
// are side-aware; expiry fires only when neither price condition did.
func closeReason(p journal.Position, price decimal.Decimal, now time.Time, expiryDays int) (journal.ExitReason, bool) {
	long := p.IsLong()

	if p.StopLoss != nil {
		if (long && price.LessThanOrEqual(*p.StopLoss)) ||
			(!long && price.GreaterThanOrEqual(*p.StopLoss)) {
			return journal.ExitReasonStopLoss, true
		}
	}
	if p.Target != nil {
		if (long && price.GreaterThanOrEqual(*p.Target)) ||
			(!long && price.LessThanOrEqual(*p.Target)) {
			return journal.ExitReasonTarget, true
		}
	}
	if daysOpen(p.TradeDate, now) >= expiryDays {
		return journal.ExitReasonTime, true
	}
	return "", false
}

// daysOpen counts whole calendar days between the trade date and now,
// both taken as UTC dates.
func daysOpen(tradeDate, now time.Time) int {
	from := tradeDate.UTC().Truncate(24 * time.Hour)
	to := now.UTC().Truncate(24 * time.Hour)
	return int(to.Sub(from).Hours() / 24)
}
