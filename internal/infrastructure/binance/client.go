package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"sentinel-backend/internal/domain"
)

const SpotBaseURL = "https://api.binance.com"

// Client fetches spot market data. Transient failures (network errors, 5xx,
// rate limits) are retried with bounded backoff; 429 responses honor the
// Retry-After header when present.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	maxTries   int
	backoff    time.Duration
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = SpotBaseURL
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: "SentinelBackend/1.0",
		httpClient: &http.Client{
			Timeout: 8 * time.Second,
		},
		maxTries: 4,
		backoff:  900 * time.Millisecond,
	}
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt < c.maxTries; attempt++ {
		if attempt > 0 {
			wait := c.backoff * time.Duration(attempt)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
			resp.Body.Close()
			lastErr = fmt.Errorf("binance API rate limited (429)")
			select {
			case <-time.After(retryAfter):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("binance API error: %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("binance API error: %d", resp.StatusCode)
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("binance: %s failed after %d attempts: %w", path, c.maxTries, lastErr)
}

func parseRetryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(header)
	if err != nil || secs < 1 {
		secs = 1
	}
	return time.Duration(secs) * time.Second
}

// FetchCandles returns parsed klines ordered oldest to newest. The limit is
// clamped to the 50..1000 range the endpoint accepts.
// Binance returns: [ [open_time, open, high, low, close, volume, close_time, ...], ... ]
func (c *Client) FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]domain.Candle, error) {
	if limit < 50 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("interval", interval)
	params.Set("limit", strconv.Itoa(limit))

	var raw [][]interface{}
	if err := c.getJSON(ctx, "/api/v3/klines", params, &raw); err != nil {
		return nil, err
	}

	candles := make([]domain.Candle, 0, len(raw))
	for _, k := range raw {
		if len(k) < 7 {
			continue
		}
		candles = append(candles, domain.Candle{
			OpenTime:  int64(asFloat(k[0])),
			Open:      asFloat(k[1]),
			High:      asFloat(k[2]),
			Low:       asFloat(k[3]),
			Close:     asFloat(k[4]),
			Volume:    asFloat(k[5]),
			CloseTime: int64(asFloat(k[6])),
		})
	}
	return candles, nil
}

// CurrentPrice returns the last traded price for a symbol.
func (c *Client) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	params := url.Values{}
	params.Set("symbol", symbol)

	var data struct {
		Price string `json:"price"`
	}
	if err := c.getJSON(ctx, "/api/v3/ticker/price", params, &data); err != nil {
		return 0, err
	}
	return strconv.ParseFloat(data.Price, 64)
}

func asFloat(v interface{}) float64 {
	switch val := v.(type) {
	case string:
		f, _ := strconv.ParseFloat(val, 64)
		return f
	case float64:
		return val
	}
	return 0
}
