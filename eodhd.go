package stonkstats

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// This file contains functions to access the EODHD API.

const eodhdApiKeyEnv = "EODHD_API_KEY"

// EodhdProvider fetches prices from eodhd.com. It needs an API key; get one
// at https://eodhd.com/.
type EodhdProvider struct {
	client *resty.Client
	apiKey string
}

// NewEodhdProvider returns a provider for eodhd.com using the given API key,
// or the EODHD_API_KEY environment variable when empty. Responses are cached
// on disk and expire daily.
func NewEodhdProvider(apiKey string) *EodhdProvider {
	if apiKey == "" {
		apiKey = os.Getenv(eodhdApiKeyEnv)
	}
	client := resty.New()
	client.SetBaseURL("https://eodhd.com/api")
	client.SetTimeout(30 * time.Second)
	client.SetTransport(dailyTransport())
	return &EodhdProvider{client: client, apiKey: apiKey}
}

func (p *EodhdProvider) Name() string { return "eodhd" }

// Daily returns the daily adjusted closes for a ticker.
func (p *EodhdProvider) Daily(ticker string, rng Range) (*PriceHistory, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("EODHD API key not configured (set %s)", eodhdApiKeyEnv)
	}

	params := map[string]string{
		"fmt":       "json",
		"api_token": p.apiKey,
	}
	// bounds are included in the response; format is YYYY-MM-DD.
	if !rng.From.IsZero() {
		params["from"] = rng.From.String()
	}
	if !rng.To.IsZero() {
		params["to"] = rng.To.String()
	}

	resp, err := p.client.R().SetQueryParams(params).Get("/eod/" + ticker)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch closes for %s: %w", ticker, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("eodhd error %d for %s: %s", resp.StatusCode(), ticker, resp.String())
	}

	type info struct {
		Date  Date    `json:"date"`
		Close float64 `json:"adjusted_close"`
	}
	content := make([]info, 0)
	if err := json.Unmarshal(resp.Body(), &content); err != nil {
		return nil, fmt.Errorf("cannot parse closes for %s: %w", ticker, err)
	}

	h := &PriceHistory{}
	for _, i := range content {
		h.Append(i.Date, i.Close)
	}
	return h, nil
}

// Latest returns the most recent quote for a ticker from the real-time
// endpoint (delayed on free plans, close enough for day granularity).
func (p *EodhdProvider) Latest(ticker string) (float64, error) {
	if p.apiKey == "" {
		return 0, fmt.Errorf("EODHD API key not configured (set %s)", eodhdApiKeyEnv)
	}

	resp, err := p.client.R().
		SetQueryParams(map[string]string{
			"fmt":       "json",
			"api_token": p.apiKey,
		}).
		Get("/real-time/" + ticker)
	if err != nil {
		return 0, fmt.Errorf("cannot fetch quote for %s: %w", ticker, err)
	}
	if resp.StatusCode() != 200 {
		return 0, fmt.Errorf("eodhd error %d for %s: %s", resp.StatusCode(), ticker, resp.String())
	}

	var content struct {
		Close float64 `json:"close"`
	}
	if err := json.Unmarshal(resp.Body(), &content); err != nil {
		return 0, fmt.Errorf("cannot parse quote for %s: %w", ticker, err)
	}
	if content.Close == 0 {
		return 0, fmt.Errorf("no quote for %s", ticker)
	}
	return content.Close, nil
}

var _ Provider = (*EodhdProvider)(nil)
