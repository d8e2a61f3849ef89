package source

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// DefaultEIABaseURL is the EIA open-data API root.
const DefaultEIABaseURL = "https://api.eia.gov"

// eiaAreaToMSA maps EIA gasoline survey area names to tracked MSA names.
// Metros the weekly survey does not break out are covered by the state
// series closest to the metro.
var eiaAreaToMSA = map[string]string{
	"NEW YORK CITY": "New York",
	"LOS ANGELES":   "Los Angeles",
	"CHICAGO":       "Chicago",
	"HOUSTON":       "Houston",
	"PHOENIX":       "Phoenix",
	"PHILADELPHIA":  "Philadelphia",
	"DALLAS":        "Dallas",
	"ATLANTA":       "Atlanta",
	"MIAMI":         "Miami",
	"SEATTLE":       "Seattle",
}

// EIASource fetches regular-gasoline retail prices from the EIA weekly
// survey endpoint.
type EIASource struct {
	client  *apiClient
	baseURL string
	apiKey  string
}

// NewEIA creates an EIASource. An empty API key leaves the source
// unavailable so the refresh cascade skips it.
func NewEIA(baseURL, apiKey string) *EIASource {
	if baseURL == "" {
		baseURL = DefaultEIABaseURL
	}
	return &EIASource{
		client:  newAPIClient(5, 5),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (s *EIASource) Name() string        { return "EIA" }
func (s *EIASource) Confidence() float64 { return 0.9 }
func (s *EIASource) Available() bool     { return s.apiKey != "" }

type eiaResponse struct {
	Response struct {
		Data []struct {
			AreaName string   `json:"area-name"`
			Value    *float64 `json:"value"`
		} `json:"data"`
	} `json:"response"`
}

// FetchBatch returns one price per survey area the API reports. A partial
// batch is a success; an empty one is an error.
func (s *EIASource) FetchBatch(ctx context.Context) (map[string]float64, error) {
	endpoint := fmt.Sprintf(
		"%s/v2/petroleum/pri/gnd/data/?api_key=%s&frequency=weekly&data[0]=value&facets[product][]=EPMR&sort[0][column]=period&sort[0][direction]=desc&length=100",
		s.baseURL, url.QueryEscape(s.apiKey),
	)

	var resp eiaResponse
	if err := s.client.getJSON(ctx, endpoint, nil, &resp); err != nil {
		return nil, eris.Wrap(err, "eia: fetch")
	}

	batch := make(map[string]float64)
	for _, row := range resp.Response.Data {
		msa, ok := eiaAreaToMSA[row.AreaName]
		if !ok || row.Value == nil {
			continue
		}
		// Rows are sorted newest first; keep the first value per area.
		if _, seen := batch[msa]; seen {
			continue
		}
		if *row.Value > 0 {
			batch[msa] = *row.Value
		}
	}

	if len(batch) == 0 {
		return nil, eris.New("eia: no usable rows in response")
	}

	zap.L().Debug("eia: fetched batch", zap.Int("msas", len(batch)))
	return batch, nil
}
