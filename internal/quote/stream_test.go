package quote_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/trade-journal-bot/internal/quote"
)

type staticSource struct {
	price float64
	err   error
	calls int
}

func (s *staticSource) CurrentPrice(ctx context.Context, symbol, assetClass string) (float64, error) {
	s.calls++
	return s.price, s.err
}

func TestStreamCacheFallsBackWhenEmpty(t *testing.T) {
	fallback := &staticSource{price: 123.45}
	cache := quote.NewStreamCache("ws://unused", fallback, 30*time.Second)

	price, err := cache.CurrentPrice(context.Background(), "AAPL", "equity")
	require.NoError(t, err)
	assert.InDelta(t, 123.45, price, 1e-9)
	assert.Equal(t, 1, fallback.calls)
}

func TestStreamCacheNoFallback(t *testing.T) {
	cache := quote.NewStreamCache("ws://unused", nil, 30*time.Second)
	_, err := cache.CurrentPrice(context.Background(), "AAPL", "equity")
	assert.ErrorIs(t, err, quote.ErrUnavailable)
}

func TestStreamCacheServesTicks(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.WriteMessage(websocket.TextMessage,
			[]byte(`{"symbol":"BTC-USD","class":"crypto","price":64000}`)))
		// Malformed and invalid ticks must be skipped, not break the stream.
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
		require.NoError(t, conn.WriteMessage(websocket.TextMessage,
			[]byte(`{"symbol":"ETH","class":"crypto","price":-1}`)))

		// Hold the connection until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	fallback := &staticSource{err: quote.ErrUnavailable}
	cache := quote.NewStreamCache(wsURL, fallback, 30*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cache.Run(ctx)

	// The cached tick is keyed by the normalized symbol, so both raw and
	// normalized lookups hit it.
	require.Eventually(t, func() bool {
		price, err := cache.CurrentPrice(ctx, "BTC-USD", "crypto")
		return err == nil && price == 64000
	}, 2*time.Second, 10*time.Millisecond)

	price, err := cache.CurrentPrice(ctx, "BTC", "crypto")
	require.NoError(t, err)
	assert.InDelta(t, 64000.0, price, 1e-9)

	// The invalid ETH tick was never cached; fallback decides.
	_, err = cache.CurrentPrice(ctx, "ETH", "crypto")
	assert.ErrorIs(t, err, quote.ErrUnavailable)
}
