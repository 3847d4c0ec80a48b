// Package event appends immutable lifecycle events to the event store.
package event

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TypeTradeClosed is emitted once per automated position close.
const TypeTradeClosed = "TRADE_CLOSED"

// Event is an append-only record of a domain fact. Consumers deduplicate
// on DedupeKey, so emitting the same event twice is harmless.
type Event struct {
	ID          uuid.UUID       `json:"id"`
	WorkspaceID string          `json:"workspaceId"`
	EventType   string          `json:"eventType"`
	AggregateID string          `json:"aggregateId"`
	DedupeKey   string          `json:"dedupeKey"`
	OccurredAt  time.Time       `json:"occurredAt"`
	Payload     json.RawMessage `json:"payload"`
}

// DedupeKey derives the deterministic idempotency key for a close event.
// Two sweep executions that close the same position on the same day for
// the same reason produce the same key, so a retried emission collapses
// to a single stored event. The close date enters at day granularity.
func DedupeKey(workspaceID string, positionID uuid.UUID, reason, source string, closeDate time.Time) string {
	input := strings.Join([]string{
		workspaceID,
		positionID.String(),
		reason,
		source,
		closeDate.UTC().Format("2006-01-02"),
	}, "|")
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
