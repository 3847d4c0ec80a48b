package jobqueue_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/trade-journal-bot/internal/jobqueue"
)

func TestInMemQueueDeduplicates(t *testing.T) {
	q := jobqueue.NewInMemQueue()
	ctx := context.Background()

	job := jobqueue.Job{
		WorkspaceID: "ws-1",
		JobType:     jobqueue.TypeAnalyticsRecompute,
		Payload:     json.RawMessage(`{"positionId":"p1"}`),
		DedupeKey:   "key-1",
		Priority:    5,
	}
	require.NoError(t, q.Enqueue(ctx, job))
	require.NoError(t, q.Enqueue(ctx, job)) // retried enqueue is a no-op
	assert.Len(t, q.Jobs(), 1)

	job.DedupeKey = "key-2"
	require.NoError(t, q.Enqueue(ctx, job))
	assert.Len(t, q.Jobs(), 2)
}

func TestInMemQueueKeepsFirstWriter(t *testing.T) {
	q := jobqueue.NewInMemQueue()
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, jobqueue.Job{DedupeKey: "k", Priority: 1}))
	require.NoError(t, q.Enqueue(ctx, jobqueue.Job{DedupeKey: "k", Priority: 9}))

	jobs := q.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, 1, jobs[0].Priority)
}
