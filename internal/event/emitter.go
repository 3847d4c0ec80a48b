package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Sink accepts lifecycle events. The store, not the caller, is
// responsible for deduplication using the event's DedupeKey.
type Sink interface {
	Emit(ctx context.Context, ev Event) error
}

// Pool is the subset of pgxpool.Pool the emitter needs, abstracted for
// testability.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// Emitter writes lifecycle events to the lifecycle_events table. The
// unique index on dedupe_key makes emission idempotent: a conflicting
// insert is silently dropped, which is the desired retry behavior.
type Emitter struct {
	pool   Pool
	logger *zap.Logger
}

// NewEmitter creates a new Emitter.
func NewEmitter(pool Pool, logger *zap.Logger) *Emitter {
	return &Emitter{pool: pool, logger: logger}
}

// Emit stores the event, assigning an id when missing.
func (e *Emitter) Emit(ctx context.Context, ev Event) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	query := `
        INSERT INTO lifecycle_events (id, workspace_id, event_type, aggregate_id, dedupe_key, occurred_at, payload)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (dedupe_key) DO NOTHING;`

	tag, err := e.pool.Exec(ctx, query,
		ev.ID, ev.WorkspaceID, ev.EventType, ev.AggregateID, ev.DedupeKey, ev.OccurredAt, ev.Payload)
	if err != nil {
		return fmt.Errorf("failed to insert lifecycle event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		e.logger.Debug("lifecycle event deduplicated",
			zap.String("event_type", ev.EventType),
			zap.String("dedupe_key", ev.DedupeKey))
	}
	return nil
}

// InMemSink is an in-memory Sink for tests, deduplicating on DedupeKey
// the way the unique index does.
type InMemSink struct {
	mu     sync.Mutex
	events map[string]Event
}

// NewInMemSink creates a new InMemSink.
func NewInMemSink() *InMemSink {
	return &InMemSink{events: make(map[string]Event)}
}

// Emit stores the event unless its dedupe key was already seen.
func (s *InMemSink) Emit(ctx context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.events[ev.DedupeKey]; dup {
		return nil
	}
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	s.events[ev.DedupeKey] = ev
	return nil
}

// Events returns all stored events.
func (s *InMemSink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev)
	}
	return out
}
