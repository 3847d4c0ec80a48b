// Package journal owns the open-position model and its persistence.
package journal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Side is the direction of a position.
type Side string

const (
	SideLong  Side = "LONG"
	SideShort Side = "SHORT"
)

// Status is the lifecycle state of a position. A position is created OPEN
// and makes exactly one transition to CLOSED, after which it is immutable.
type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

// ExitReason records which close condition fired.
type ExitReason string

const (
	ExitReasonTarget   ExitReason = "tp"
	ExitReasonStopLoss ExitReason = "sl"
	ExitReasonTime     ExitReason = "time"
)

// Position is a journal entry for a single trade, owned exclusively by
// the workspace that created it. Exit fields are nil until the close
// transition populates them.
type Position struct {
	ID          uuid.UUID        `json:"id"`
	WorkspaceID string           `json:"workspaceId"`
	Symbol      string           `json:"symbol"`
	AssetClass  string           `json:"assetClass"`
	Side        Side             `json:"side"`
	TradeDate   time.Time        `json:"tradeDate"`
	EntryPrice  decimal.Decimal  `json:"entryPrice"`
	Quantity    decimal.Decimal  `json:"quantity"`
	RiskAmount  *decimal.Decimal `json:"riskAmount,omitempty"`
	StopLoss    *decimal.Decimal `json:"stopLoss,omitempty"`
	Target      *decimal.Decimal `json:"target,omitempty"`
	Notes       string           `json:"notes"`
	IsOpen      bool             `json:"isOpen"`
	Status      Status           `json:"status"`

	ExitPrice  *decimal.Decimal `json:"exitPrice,omitempty"`
	ExitDate   *time.Time       `json:"exitDate,omitempty"`
	PL         *decimal.Decimal `json:"pl,omitempty"`
	PLPercent  *decimal.Decimal `json:"plPercent,omitempty"`
	RMultiple  *decimal.Decimal `json:"rMultiple,omitempty"`
	Outcome    *string          `json:"outcome,omitempty"`
	ExitReason *ExitReason      `json:"exitReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsLong reports whether the position profits from rising prices.
func (p *Position) IsLong() bool {
	return p.Side == SideLong
}

// AutoClose describes an automated close decision to be applied to a
// position. Metrics are computed inside the close transaction from the
// locked row, not from the caller's snapshot.
type AutoClose struct {
	ExitPrice decimal.Decimal
	ExitDate  time.Time
	Reason    ExitReason
	Source    string // "sweep" or "manual", recorded in the audit note
}

// ErrAlreadyClosed is returned when a close attempt finds the position
// already closed under the row lock. This is the expected result of
// losing a race with a concurrent sweep or a manual close, not a fault.
var ErrAlreadyClosed = errors.New("position already closed")

// ErrNotFound is returned when a position id does not exist.
var ErrNotFound = errors.New("position not found")

// Store is the persistence boundary for positions. The pgx-backed
// Repository is the production implementation; InMemStore backs tests.
type Store interface {
	// OpenPositions returns up to limit open positions, oldest trade first.
	OpenPositions(ctx context.Context, limit int) ([]Position, error)

	// CloseAutomatically atomically transitions one position to CLOSED,
	// computing realized metrics from the locked row. When the position
	// is already closed it returns the row as-is along with
	// ErrAlreadyClosed so that callers can report the race distinctly.
	CloseAutomatically(ctx context.Context, id uuid.UUID, req AutoClose) (Position, error)
}
