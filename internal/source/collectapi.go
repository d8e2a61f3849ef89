package source

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// DefaultCollectAPIBaseURL is the CollectAPI gas-price API root.
const DefaultCollectAPIBaseURL = "https://api.collectapi.com"

// msaToState maps tracked MSA names to the state queried on the state-level
// price endpoint.
var msaToState = map[string]string{
	"New York":     "NY",
	"Los Angeles":  "CA",
	"Chicago":      "IL",
	"Houston":      "TX",
	"Phoenix":      "AZ",
	"Philadelphia": "PA",
	"Dallas":       "TX",
	"Atlanta":      "GA",
	"Miami":        "FL",
	"Seattle":      "WA",
}

// CollectAPISource fetches state-level gasoline prices from collectapi.com
// and projects them onto the tracked metros.
type CollectAPISource struct {
	client  *apiClient
	baseURL string
	apiKey  string
}

// NewCollectAPI creates a CollectAPISource. An empty API key leaves the
// source unavailable.
func NewCollectAPI(baseURL, apiKey string) *CollectAPISource {
	if baseURL == "" {
		baseURL = DefaultCollectAPIBaseURL
	}
	return &CollectAPISource{
		client:  newAPIClient(2, 2),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (s *CollectAPISource) Name() string        { return "CollectAPI" }
func (s *CollectAPISource) Confidence() float64 { return 0.85 }
func (s *CollectAPISource) Available() bool     { return s.apiKey != "" }

type collectAPIResponse struct {
	Success bool `json:"success"`
	Result  struct {
		State    string `json:"state"`
		Gasoline string `json:"gasoline"`
	} `json:"result"`
}

// FetchBatch queries the state price endpoint once per metro. Per-state
// failures are logged and skipped; the batch succeeds if any metro resolved.
func (s *CollectAPISource) FetchBatch(ctx context.Context) (map[string]float64, error) {
	headers := map[string]string{
		"authorization": "apikey " + s.apiKey,
		"content-type":  "application/json",
	}

	batch := make(map[string]float64)
	var lastErr error
	for msa, state := range msaToState {
		endpoint := fmt.Sprintf("%s/gasPrice/stateUsaPrice?state=%s", s.baseURL, state)

		var resp collectAPIResponse
		if err := s.client.getJSON(ctx, endpoint, headers, &resp); err != nil {
			lastErr = err
			zap.L().Warn("collectapi: state fetch failed",
				zap.String("msa", msa),
				zap.String("state", state),
				zap.Error(err),
			)
			continue
		}
		if !resp.Success {
			lastErr = eris.Errorf("collectapi: unsuccessful response for state %s", state)
			continue
		}

		price, err := strconv.ParseFloat(resp.Result.Gasoline, 64)
		if err != nil || price <= 0 {
			lastErr = eris.Errorf("collectapi: bad gasoline price %q for state %s", resp.Result.Gasoline, state)
			continue
		}
		batch[msa] = price
	}

	if len(batch) == 0 {
		if lastErr != nil {
			return nil, eris.Wrap(lastErr, "collectapi: no states resolved")
		}
		return nil, eris.New("collectapi: no states resolved")
	}

	return batch, nil
}
