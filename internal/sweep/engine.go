// Package sweep implements the periodic position-lifecycle evaluation.
package sweep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/your-org/trade-journal-bot/internal/alert"
	"github.com/your-org/trade-journal-bot/internal/event"
	"github.com/your-org/trade-journal-bot/internal/jobqueue"
	"github.com/your-org/trade-journal-bot/internal/journal"
	"github.com/your-org/trade-journal-bot/internal/quote"
)

// Limit bounds for one sweep invocation.
const (
	MinLimit     = 1
	MaxLimit     = 500
	DefaultLimit = 100
)

const closeSource = "sweep"

// Options controls one sweep invocation.
type Options struct {
	// Limit caps how many open positions are evaluated; values outside
	// [MinLimit, MaxLimit] are clamped and 0 means DefaultLimit.
	Limit int `json:"limit"`
	// DryRun evaluates close conditions without mutating anything.
	DryRun bool `json:"dryRun"`
}

// Failure records one position whose processing failed without stopping
// the rest of the sweep.
type Failure struct {
	PositionID uuid.UUID `json:"positionId"`
	Symbol     string    `json:"symbol"`
	Error      string    `json:"error"`
}

// Report aggregates the outcome of one sweep run.
type Report struct {
	StartedAt        time.Time `json:"startedAt"`
	FinishedAt       time.Time `json:"finishedAt"`
	DryRun           bool      `json:"dryRun"`
	Checked          int       `json:"checked"`
	Eligible         int       `json:"eligible"`
	Closed           int       `json:"closed"`
	AlreadyClosed    int       `json:"alreadyClosed"`
	PriceUnavailable int       `json:"priceUnavailable"`
	Failures         []Failure `json:"failures,omitempty"`
}

// Config tunes the engine.
type Config struct {
	// Workers bounds concurrent position evaluation. Quote fetches are
	// the dominant latency and independent per symbol.
	Workers int
	// QuoteTimeout bounds a single price lookup; beyond it the position
	// is skipped for the cycle.
	QuoteTimeout time.Duration
	// ExpiryDays is the time-based exit threshold in calendar days.
	ExpiryDays int
}

func (c *Config) applyDefaults() {
	if c.Workers <= 0 {
		c.Workers = 8
	}
	if c.QuoteTimeout <= 0 {
		c.QuoteTimeout = 5 * time.Second
	}
	if c.ExpiryDays <= 0 {
		c.ExpiryDays = DefaultExpiryDays
	}
}

// Engine evaluates every open position against live price and closes the
// ones whose exit condition fired, exactly once each.
type Engine struct {
	store    journal.Store
	quotes   quote.Source
	events   event.Sink
	jobs     jobqueue.Enqueuer
	notifier alert.Notifier
	logger   *zap.Logger
	cfg      Config
	now      func() time.Time
}

// NewEngine creates a sweep engine.
func NewEngine(store journal.Store, quotes quote.Source, events event.Sink, jobs jobqueue.Enqueuer, notifier alert.Notifier, logger *zap.Logger, cfg Config) *Engine {
	cfg.applyDefaults()
	if notifier == nil {
		notifier = alert.NewNoOpNotifier()
	}
	return &Engine{
		store:    store,
		quotes:   quotes,
		events:   events,
		jobs:     jobs,
		notifier: notifier,
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
	}
}

type itemStatus int

const (
	statusNoAction itemStatus = iota
	statusEligibleOnly // dry run: a close condition fired but nothing was mutated
	statusClosed
	statusAlreadyClosed
	statusPriceUnavailable
	statusFailed
)

type itemResult struct {
	status  itemStatus
	failure *Failure
}

// Run executes one sweep. Positions are evaluated concurrently by a
// bounded worker pool; a failure on one position never aborts the rest.
// Only the inability to list open positions fails the run itself.
func (e *Engine) Run(ctx context.Context, opts Options) (Report, error) {
	limit := opts.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < MinLimit {
		limit = MinLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	report := Report{StartedAt: e.now().UTC(), DryRun: opts.DryRun}

	positions, err := e.store.OpenPositions(ctx, limit)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list open positions: %w", err)
	}

	queue := make(chan journal.Position)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < e.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pos := range queue {
				res := e.evaluate(ctx, pos, opts.DryRun)
				mu.Lock()
				report.Checked++
				switch res.status {
				case statusEligibleOnly:
					report.Eligible++
				case statusClosed:
					report.Eligible++
					report.Closed++
				case statusAlreadyClosed:
					report.Eligible++
					report.AlreadyClosed++
				case statusPriceUnavailable:
					report.PriceUnavailable++
				case statusFailed:
					report.Eligible++
					report.Failures = append(report.Failures, *res.failure)
				}
				mu.Unlock()
			}
		}()
	}

	for _, pos := range positions {
		queue <- pos
	}
	close(queue)
	wg.Wait()

	report.FinishedAt = e.now().UTC()
	e.logger.Info("sweep finished",
		zap.Bool("dry_run", report.DryRun),
		zap.Int("checked", report.Checked),
		zap.Int("closed", report.Closed),
		zap.Int("already_closed", report.AlreadyClosed),
		zap.Int("price_unavailable", report.PriceUnavailable),
		zap.Int("failures", len(report.Failures)))

	if len(report.Failures) > 0 {
		msg := fmt.Sprintf("sweep completed with %d position failure(s) out of %d checked",
			len(report.Failures), report.Checked)
		if err := e.notifier.Send(msg); err != nil {
			e.logger.Error("failed to send sweep alert", zap.Error(err))
		}
	}
	return report, nil
}

func (e *Engine) evaluate(ctx context.Context, pos journal.Position, dryRun bool) itemResult {
	quoteCtx, cancel := context.WithTimeout(ctx, e.cfg.QuoteTimeout)
	price, err := e.quotes.CurrentPrice(quoteCtx, pos.Symbol, pos.AssetClass)
	cancel()
	if err != nil {
		// Any quote failure is "unavailable this cycle"; the position is
		// retried on the next sweep.
		e.logger.Debug("quote unavailable",
			zap.String("symbol", pos.Symbol),
			zap.Error(err))
		return itemResult{status: statusPriceUnavailable}
	}

	exitPrice := decimal.NewFromFloat(price)
	now := e.now().UTC()

	reason, fired := closeReason(pos, exitPrice, now, e.cfg.ExpiryDays)
	if !fired {
		return itemResult{status: statusNoAction}
	}
	if dryRun {
		e.logger.Info("dry run: position would close",
			zap.String("position_id", pos.ID.String()),
			zap.String("symbol", pos.Symbol),
			zap.String("exit_reason", string(reason)))
		return itemResult{status: statusEligibleOnly}
	}

	closed, err := e.store.CloseAutomatically(ctx, pos.ID, journal.AutoClose{
		ExitPrice: exitPrice,
		ExitDate:  now,
		Reason:    reason,
		Source:    closeSource,
	})
	if errors.Is(err, journal.ErrAlreadyClosed) {
		return itemResult{status: statusAlreadyClosed}
	}
	if err != nil {
		e.logger.Error("failed to close position",
			zap.String("position_id", pos.ID.String()),
			zap.String("symbol", pos.Symbol),
			zap.Error(err))
		return itemResult{status: statusFailed, failure: &Failure{
			PositionID: pos.ID,
			Symbol:     pos.Symbol,
			Error:      err.Error(),
		}}
	}

	// The authoritative state change succeeded; everything after this
	// point is best-effort and must never fail the item.
	e.afterClose(ctx, closed, reason, now)
	return itemResult{status: statusClosed}
}

// afterClose emits the lifecycle event and enqueues the analytics
// recompute job. Both carry deterministic dedupe keys, so a retried sweep
// re-emitting them is a no-op at the consumer; failures here are logged
// and swallowed because the close itself already committed.
func (e *Engine) afterClose(ctx context.Context, pos journal.Position, reason journal.ExitReason, closedAt time.Time) {
	key := event.DedupeKey(pos.WorkspaceID, pos.ID, string(reason), closeSource, closedAt)

	jobPayload, err := json.Marshal(map[string]string{
		"workspaceId": pos.WorkspaceID,
		"positionId":  pos.ID.String(),
	})
	if err == nil {
		err = e.jobs.Enqueue(ctx, jobqueue.Job{
			WorkspaceID: pos.WorkspaceID,
			JobType:     jobqueue.TypeAnalyticsRecompute,
			Payload:     jobPayload,
			DedupeKey:   key + ":recompute",
			Priority:    5,
			MaxAttempts: 3,
		})
	}
	if err != nil {
		e.logger.Error("failed to enqueue recompute job",
			zap.String("position_id", pos.ID.String()),
			zap.Error(err))
	}

	evPayload, err := json.Marshal(pos)
	if err == nil {
		err = e.events.Emit(ctx, event.Event{
			WorkspaceID: pos.WorkspaceID,
			EventType:   event.TypeTradeClosed,
			AggregateID: pos.ID.String(),
			DedupeKey:   key,
			OccurredAt:  closedAt,
			Payload:     evPayload,
		})
	}
	if err != nil {
		e.logger.Error("failed to emit lifecycle event",
			zap.String("position_id", pos.ID.String()),
			zap.Error(err))
	}
}
