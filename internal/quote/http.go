package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/your-org/trade-journal-bot/pkg/logger"
)

// VendorClient fetches current prices from the quote vendor's REST API.
type VendorClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewVendorClient creates a client for the given vendor base URL. The
// timeout bounds each lookup; a fetch that exceeds it is reported as
// unavailable for the cycle rather than as a fatal error.
func NewVendorClient(baseURL, apiKey string, timeout time.Duration) *VendorClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &VendorClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// quoteResponse is the vendor's quote payload.
type quoteResponse struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

// CurrentPrice implements Source. Vendor failures of any kind collapse to
// ErrUnavailable so that one bad symbol never aborts a batch of lookups.
func (c *VendorClient) CurrentPrice(ctx context.Context, symbol, assetClass string) (float64, error) {
	inst := Normalize(symbol, assetClass)

	endpoint := fmt.Sprintf("%s/v1/quote?%s", c.baseURL, url.Values{
		"symbol": {inst.Symbol},
		"class":  {inst.AssetClass},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build quote request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-KEY", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debugf("Quote fetch failed for %s: %v", inst.Symbol, err)
		return 0, ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Debugf("Quote vendor returned status %d for %s", resp.StatusCode, inst.Symbol)
		return 0, ErrUnavailable
	}

	var payload quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		logger.Errorf("Failed to decode quote response for %s: %v", inst.Symbol, err)
		return 0, ErrUnavailable
	}

	if math.IsNaN(payload.Price) || math.IsInf(payload.Price, 0) || payload.Price <= 0 {
		return 0, ErrUnavailable
	}
	return payload.Price, nil
}
