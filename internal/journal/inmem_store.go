package journal

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/your-org/trade-journal-bot/internal/pnl"
)

// InMemStore is an in-memory implementation of the Store interface for
// testing. Its single mutex stands in for the database row lock: close
// attempts on the same position serialize, and the loser observes the
// winner's terminal row exactly like the SQL FOR UPDATE path.
type InMemStore struct {
	mu        sync.Mutex
	positions map[uuid.UUID]Position
}

// NewInMemStore creates a new InMemStore.
func NewInMemStore() *InMemStore {
	return &InMemStore{positions: make(map[uuid.UUID]Position)}
}

// Seed adds positions for test setup, assigning ids where missing.
func (s *InMemStore) Seed(positions ...Position) []Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Position, 0, len(positions))
	for _, p := range positions {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if p.Status == "" {
			p.Status = StatusOpen
			p.IsOpen = true
		}
		s.positions[p.ID] = p
		out = append(out, p)
	}
	return out
}

// Get returns a stored position by id.
func (s *InMemStore) Get(id uuid.UUID) (Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.positions[id]
	return p, ok
}

// OpenPositions returns up to limit open positions, oldest trade first.
func (s *InMemStore) OpenPositions(ctx context.Context, limit int) ([]Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []Position
	for _, p := range s.positions {
		if p.IsOpen {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].TradeDate.Before(result[j].TradeDate)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// CloseAutomatically mirrors Repository.CloseAutomatically against the map.
func (s *InMemStore) CloseAutomatically(ctx context.Context, id uuid.UUID, req AutoClose) (Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.positions[id]
	if !ok {
		return Position{}, ErrNotFound
	}
	if !p.IsOpen {
		return p, ErrAlreadyClosed
	}

	metrics := pnl.Realized(p.IsLong(), p.EntryPrice, req.ExitPrice, p.Quantity, p.RiskAmount)
	outcome := string(metrics.Outcome)
	reason := req.Reason
	exitPrice := req.ExitPrice
	exitDate := req.ExitDate

	p.ExitPrice = &exitPrice
	p.ExitDate = &exitDate
	p.PL = &metrics.PL
	p.PLPercent = &metrics.PLPercent
	p.RMultiple = metrics.RMultiple
	p.Outcome = &outcome
	p.ExitReason = &reason
	p.IsOpen = false
	p.Status = StatusClosed
	if p.Notes == "" {
		p.Notes = auditNote(req)
	} else {
		p.Notes += "\n" + auditNote(req)
	}

	s.positions[id] = p
	return p, nil
}
