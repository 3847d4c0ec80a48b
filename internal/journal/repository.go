package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/your-org/trade-journal-bot/internal/pnl"
)

const positionColumns = `
	id, workspace_id, symbol, asset_class, side, trade_date,
	entry_price, quantity, risk_amount, stop_loss, target, notes,
	is_open, status, exit_price, exit_date, pl, pl_percent, r_multiple,
	outcome, exit_reason, created_at, updated_at`

// Repository handles database operations for journal positions.
type Repository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewRepository creates a new Repository.
func NewRepository(db *pgxpool.Pool, logger *zap.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// CreatePosition inserts a new open position and returns the stored row.
func (r *Repository) CreatePosition(ctx context.Context, p Position) (Position, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	query := `
        INSERT INTO positions (
            id, workspace_id, symbol, asset_class, side, trade_date,
            entry_price, quantity, risk_amount, stop_loss, target, notes,
            is_open, status
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, TRUE, $13)
        RETURNING` + positionColumns + `;`

	row := r.db.QueryRow(ctx, query,
		p.ID, p.WorkspaceID, p.Symbol, p.AssetClass, p.Side, p.TradeDate,
		p.EntryPrice, p.Quantity, p.RiskAmount, p.StopLoss, p.Target, p.Notes,
		StatusOpen,
	)
	created, err := scanPosition(row)
	if err != nil {
		return Position{}, fmt.Errorf("failed to insert position: %w", err)
	}
	return created, nil
}

// OpenPositions fetches up to limit open positions, oldest trade first.
func (r *Repository) OpenPositions(ctx context.Context, limit int) ([]Position, error) {
	query := `
        SELECT` + positionColumns + `
        FROM positions
        WHERE is_open
        ORDER BY trade_date ASC
        LIMIT $1;`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch open positions: %w", err)
	}
	defer rows.Close()

	var positions []Position
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// ClosedPositions fetches all closed positions ordered by exit date.
func (r *Repository) ClosedPositions(ctx context.Context) ([]Position, error) {
	query := `
        SELECT` + positionColumns + `
        FROM positions
        WHERE NOT is_open
        ORDER BY exit_date ASC;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch closed positions: %w", err)
	}
	defer rows.Close()

	var positions []Position
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// CloseAutomatically transitions one position to CLOSED inside a single
// transaction. The row is re-read under FOR UPDATE so that a concurrent
// sweep worker or a manual close cannot double-process it: whichever
// writer acquires the lock second observes is_open=false and gets
// ErrAlreadyClosed together with the winner's row.
func (r *Repository) CloseAutomatically(ctx context.Context, id uuid.UUID, req AutoClose) (Position, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Position{}, fmt.Errorf("failed to begin close transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
        SELECT`+positionColumns+`
        FROM positions
        WHERE id = $1
        FOR UPDATE;`, id)
	pos, err := scanPosition(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Position{}, ErrNotFound
		}
		return Position{}, fmt.Errorf("failed to lock position %s: %w", id, err)
	}

	if !pos.IsOpen {
		r.logger.Debug("close raced, position already closed",
			zap.String("position_id", id.String()))
		return pos, ErrAlreadyClosed
	}

	metrics := pnl.Realized(pos.IsLong(), pos.EntryPrice, req.ExitPrice, pos.Quantity, pos.RiskAmount)
	outcome := string(metrics.Outcome)
	note := auditNote(req)

	updated := tx.QueryRow(ctx, `
        UPDATE positions SET
            exit_price = $2,
            exit_date = $3,
            pl = $4,
            pl_percent = $5,
            r_multiple = $6,
            outcome = $7,
            exit_reason = $8,
            is_open = FALSE,
            status = $9,
            notes = CASE WHEN notes = '' THEN $10 ELSE notes || E'\n' || $10 END,
            updated_at = NOW()
        WHERE id = $1
        RETURNING`+positionColumns+`;`,
		id, req.ExitPrice, req.ExitDate, metrics.PL, metrics.PLPercent,
		metrics.RMultiple, outcome, req.Reason, StatusClosed, note,
	)
	pos, err = scanPosition(updated)
	if err != nil {
		return Position{}, fmt.Errorf("failed to close position %s: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Position{}, fmt.Errorf("failed to commit close of position %s: %w", id, err)
	}

	r.logger.Info("position closed",
		zap.String("position_id", pos.ID.String()),
		zap.String("symbol", pos.Symbol),
		zap.String("exit_reason", string(req.Reason)),
		zap.String("pl", metrics.PL.String()))
	return pos, nil
}

func auditNote(req AutoClose) string {
	return fmt.Sprintf("[auto-close] reason=%s source=%s exit=%s at %s",
		req.Reason, req.Source, req.ExitPrice.String(),
		req.ExitDate.UTC().Format(time.RFC3339))
}

// rowScanner covers both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPosition(row rowScanner) (Position, error) {
	var p Position
	err := row.Scan(
		&p.ID, &p.WorkspaceID, &p.Symbol, &p.AssetClass, &p.Side, &p.TradeDate,
		&p.EntryPrice, &p.Quantity, &p.RiskAmount, &p.StopLoss, &p.Target, &p.Notes,
		&p.IsOpen, &p.Status, &p.ExitPrice, &p.ExitDate, &p.PL, &p.PLPercent, &p.RMultiple,
		&p.Outcome, &p.ExitReason, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}
