// Package jobqueue enqueues downstream recompute jobs.
//
// The queue decouples the sweep's failure domain from its consumers: the
// engine fires a message with an idempotency key and moves on, and a
// retried enqueue after a crash collapses against the dedupe index
// instead of producing duplicate work.
package jobqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// TypeAnalyticsRecompute asks the analytics consumer to refresh a
// workspace's aggregates after a close.
const TypeAnalyticsRecompute = "ANALYTICS_RECOMPUTE"

// Job is one unit of downstream work.
type Job struct {
	ID          uuid.UUID       `json:"id"`
	WorkspaceID string          `json:"workspaceId"`
	JobType     string          `json:"jobType"`
	Payload     json.RawMessage `json:"payload"`
	DedupeKey   string          `json:"dedupeKey"`
	Priority    int             `json:"priority"`
	MaxAttempts int             `json:"maxAttempts"`
}

// Enqueuer accepts jobs fire-and-forget.
type Enqueuer interface {
	Enqueue(ctx context.Context, job Job) error
}

// Pool is the subset of pgxpool.Pool the queue needs.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// PGEnqueuer writes jobs to the jobs table; the unique dedupe_key index
// makes re-enqueueing after a retry a no-op.
type PGEnqueuer struct {
	pool   Pool
	logger *zap.Logger
}

// NewPGEnqueuer creates a new PGEnqueuer.
func NewPGEnqueuer(pool Pool, logger *zap.Logger) *PGEnqueuer {
	return &PGEnqueuer{pool: pool, logger: logger}
}

// Enqueue inserts the job, assigning defaults where missing.
func (q *PGEnqueuer) Enqueue(ctx context.Context, job Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.MaxAttempts <= 0 {
		job.MaxAttempts = 3
	}
	query := `
        INSERT INTO jobs (id, workspace_id, job_type, payload, dedupe_key, priority, max_attempts, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending')
        ON CONFLICT (dedupe_key) DO NOTHING;`

	tag, err := q.pool.Exec(ctx, query,
		job.ID, job.WorkspaceID, job.JobType, job.Payload, job.DedupeKey, job.Priority, job.MaxAttempts)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s job: %w", job.JobType, err)
	}
	if tag.RowsAffected() == 0 {
		q.logger.Debug("job deduplicated", zap.String("dedupe_key", job.DedupeKey))
	}
	return nil
}

// InMemQueue is an in-memory Enqueuer for tests.
type InMemQueue struct {
	mu   sync.Mutex
	jobs map[string]Job
}

// NewInMemQueue creates a new InMemQueue.
func NewInMemQueue() *InMemQueue {
	return &InMemQueue{jobs: make(map[string]Job)}
}

// Enqueue stores the job unless its dedupe key was already seen.
func (q *InMemQueue) Enqueue(ctx context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, dup := q.jobs[job.DedupeKey]; dup {
		return nil
	}
	q.jobs[job.DedupeKey] = job
	return nil
}

// Jobs returns all stored jobs.
func (q *InMemQueue) Jobs() []Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Job, 0, len(q.jobs))
	for _, j := range q.jobs {
		out = append(out, j)
	}
	return out
}
