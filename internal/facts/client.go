package facts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ecocraftid/ecocraft-backend/pkg/config"
	"github.com/ecocraftid/ecocraft-backend/pkg/enums"
	"github.com/ecocraftid/ecocraft-backend/pkg/logger"
	"github.com/ecocraftid/ecocraft-backend/pkg/metrics"
)

// Client fetches facts from the upstream API and substitutes the fixed
// fallback dataset on any failure. Fetch never returns an error: every
// outcome is a displayable Result.
type Client struct {
	httpClient   *http.Client
	endpoint     string
	defaultCount int
	met          *metrics.StorefrontMetrics
	logg         *logger.Logger
}

type apiResponse struct {
	Data []string `json:"data"`
}

// NewClient builds the facts client. The configured timeout bounds every
// upstream request; pages previously varied between 5 and 8 seconds, now
// there is exactly one knob.
func NewClient(cfg config.FactsConfig, met *metrics.StorefrontMetrics, logg *logger.Logger) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive")
	}
	if cfg.DefaultCount <= 0 {
		return nil, fmt.Errorf("default count must be positive")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		endpoint:     cfg.Endpoint,
		defaultCount: cfg.DefaultCount,
		met:          met,
		logg:         logg,
	}, nil
}

// Fetch returns count facts from the API, or the full fallback dataset when
// the API misbehaves in any way. Results never mix the two sources.
func (c *Client) Fetch(ctx context.Context, count int) Result {
	if count <= 0 {
		count = c.defaultCount
	}

	apiFacts, err := c.fetchUpstream(ctx, count)
	if err != nil {
		ctx = c.logg.WithFields(ctx, map[string]any{
			"endpoint": c.endpoint,
			"error":    err.Error(),
		})
		c.logg.Warn(ctx, "facts.upstream_failed")
		c.met.IncFactsRequest(string(enums.FactSourceFallback))
		return Result{Facts: FallbackFacts(), Source: enums.FactSourceFallback}
	}

	c.met.IncFactsRequest(string(enums.FactSourceAPI))
	return Result{Facts: apiFacts, Source: enums.FactSourceAPI}
}

func (c *Client) fetchUpstream(ctx context.Context, count int) ([]Fact, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("count", strconv.Itoa(count))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request upstream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if len(payload.Data) == 0 {
		return nil, fmt.Errorf("payload has no facts")
	}

	facts := make([]Fact, 0, len(payload.Data))
	for i, text := range payload.Data {
		p := catProfiles[i%len(catProfiles)]
		facts = append(facts, factFromProfile(
			"api-meow-"+strconv.Itoa(i),
			text,
			enums.FactSourceAPI,
			p,
		))
	}
	return facts, nil
}
