// Package source implements the price-source adapters tried in priority
// order during a refresh cycle.
package source

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/fuelcast/gasprice-cli/internal/resilience"
)

// Source is a single price backend. FetchBatch returns a price per MSA name;
// a partial batch is still a success. The adapter is responsible for its own
// timeouts and must return a plain error rather than hang the refresh.
type Source interface {
	Name() string
	Confidence() float64
	Available() bool
	FetchBatch(ctx context.Context) (map[string]float64, error)
}

// apiClient is the shared rate-limited JSON client for the HTTP sources.
type apiClient struct {
	http    *http.Client
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

func newAPIClient(rps rate.Limit, burst int) *apiClient {
	return &apiClient{
		http:    &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rps, burst),
		retry:   resilience.DefaultRetryConfig(),
	}
}

// getJSON fetches url and decodes the body into out. Server errors and 429
// responses are marked transient so the retry layer tries again.
func (c *apiClient) getJSON(ctx context.Context, url string, headers map[string]string, out any) error {
	body, err := resilience.DoVal(ctx, c.retry, "source fetch", func(ctx context.Context) ([]byte, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "rate limiter wait")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, eris.Wrap(err, "create request")
		}
		req.Header.Set("User-Agent", "gasprice-cli/1.0")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, resilience.MarkTransient(err)
		}
		defer resp.Body.Close() //nolint:errcheck

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, resilience.MarkTransient(eris.Errorf("http %d from %s", resp.StatusCode, url))
		}
		if resp.StatusCode != http.StatusOK {
			return nil, eris.Errorf("http %d from %s", resp.StatusCode, url)
		}

		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrap(err, "decode response")
	}
	return nil
}
