// Package quote provides current-price lookup for journal instruments.
package quote

import (
	"context"
	"errors"
)

// ErrUnavailable signals that no usable price could be obtained this
// cycle. It is an expected outcome (vendor down, timeout, non-finite
// value) and callers retry naturally on their next cycle.
var ErrUnavailable = errors.New("quote unavailable")

// Source returns the current price for an instrument. Implementations
// must respect ctx cancellation and return ErrUnavailable rather than a
// hard error for transient vendor problems.
type Source interface {
	CurrentPrice(ctx context.Context, symbol, assetClass string) (float64, error)
}
