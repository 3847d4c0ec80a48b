package quote

import (
	"context"
	"encoding/json"
	"math"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/your-org/trade-journal-bot/pkg/logger"
)

// tickerMessage is one price update on the vendor's websocket feed.
type tickerMessage struct {
	Symbol string  `json:"symbol"`
	Class  string  `json:"class"`
	Price  float64 `json:"price"`
}

type cachedPrice struct {
	price float64
	at    time.Time
}

// StreamCache serves prices from a websocket ticker feed, falling back to
// a slower Source (typically the REST client) when the cache has no fresh
// entry for the instrument.
type StreamCache struct {
	wsURL    string
	fallback Source
	maxAge   time.Duration

	mu     sync.RWMutex
	prices map[string]cachedPrice
}

// NewStreamCache creates a StreamCache. maxAge bounds how stale a cached
// tick may be before the fallback source is consulted instead.
func NewStreamCache(wsURL string, fallback Source, maxAge time.Duration) *StreamCache {
	if maxAge <= 0 {
		maxAge = 30 * time.Second
	}
	return &StreamCache{
		wsURL:    wsURL,
		fallback: fallback,
		maxAge:   maxAge,
		prices:   make(map[string]cachedPrice),
	}
}

// Run connects to the vendor feed and keeps the cache updated until ctx
// is cancelled, reconnecting with exponential backoff on read errors.
func (s *StreamCache) Run(ctx context.Context) {
	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for {
		if ctx.Err() != nil {
			return
		}
		err := s.consume(ctx)
		if ctx.Err() != nil {
			return
		}
		logger.Errorf("Quote stream disconnected: %v. Reconnecting in %v...", err, backoff)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (s *StreamCache) consume(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	logger.Infof("Connected to quote stream at %s", s.wsURL)

	// Unblock ReadMessage when the context is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var tick tickerMessage
		if err := json.Unmarshal(message, &tick); err != nil {
			logger.Debugf("Skipping malformed ticker message: %v", err)
			continue
		}
		if math.IsNaN(tick.Price) || math.IsInf(tick.Price, 0) || tick.Price <= 0 {
			continue
		}
		key := Normalize(tick.Symbol, tick.Class).Symbol
		s.mu.Lock()
		s.prices[key] = cachedPrice{price: tick.Price, at: time.Now()}
		s.mu.Unlock()
	}
}

// CurrentPrice implements Source: fresh cached ticks win, otherwise the
// fallback source is asked.
func (s *StreamCache) CurrentPrice(ctx context.Context, symbol, assetClass string) (float64, error) {
	key := Normalize(symbol, assetClass).Symbol

	s.mu.RLock()
	cached, ok := s.prices[key]
	s.mu.RUnlock()

	if ok && time.Since(cached.at) <= s.maxAge {
		return cached.price, nil
	}
	if s.fallback == nil {
		return 0, ErrUnavailable
	}
	return s.fallback.CurrentPrice(ctx, symbol, assetClass)
}
