// Package tide looks up the current water level from the NOAA tides and
// currents API.
package tide

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultURL is the latest water level at NOAA station 9412110 in meters
// above MLLW, local standard time.
const DefaultURL = "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter?date=latest&station=9412110&product=water_level&datum=MLLW&time_zone=lst&units=metric&format=json"

// Failure is returned in place of a level when the lookup fails. It is
// forwarded to the sampler unmodified.
const Failure = "-1000"

var ErrNoData = errors.New("tide: response carries no data")

type response struct {
	Data []struct {
		V string `json:"v"`
	} `json:"data"`
}

// Client queries the tide endpoint.
type Client struct {
	url    string
	http   *http.Client
	logger *zap.Logger
}

func New(url string, httpClient *http.Client, logger *zap.Logger) *Client {
	if url == "" {
		url = DefaultURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{url: url, http: httpClient, logger: logger}
}

// Level returns the latest water level or Failure.
func (c *Client) Level(ctx context.Context) string {
	level, err := c.Fetch(ctx)
	if err != nil {
		c.logger.Warn("Tide lookup failed", zap.Error(err))
		return Failure
	}
	return level
}

// Fetch performs the lookup and returns the level as reported.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("build tide request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("tide request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tide request: unexpected status %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode tide response: %w", err)
	}
	if len(body.Data) == 0 || body.Data[0].V == "" {
		return "", ErrNoData
	}
	return body.Data[0].V, nil
}
