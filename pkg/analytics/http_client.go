package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	dashboard "github.com/romaluev/horyco-dashboard/components/dashboard"
)

// HTTPConfig configures the HTTP analytics client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient talks to a remote analytics/BI service via REST endpoints.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client capable of hitting a live analytics API.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("analytics: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// FetchMetrics implements Supplier by posting the batched metric requests to
// the remote query endpoint.
func (c *HTTPClient) FetchMetrics(ctx context.Context, reqs []dashboard.MetricRequest) (dashboard.AnalyticsPayload, error) {
	payload := metricsRequest{Metrics: make([]metricQuery, len(reqs))}
	for i, req := range reqs {
		payload.Metrics[i] = metricQuery{
			Metric:   req.Metric,
			Grouping: req.Grouping,
			Filters:  req.Filters,
		}
	}
	var resp metricsResponse
	if err := c.do(ctx, http.MethodPost, "/metrics/query", payload, &resp); err != nil {
		return nil, err
	}
	return resp.toPayload(), nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("analytics: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("analytics: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("analytics: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("analytics: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("analytics: decode response: %w", err)
	}
	return nil
}

type metricQuery struct {
	Metric   string            `json:"metric"`
	Grouping string            `json:"grouping,omitempty"`
	Filters  map[string]string `json:"filters,omitempty"`
}

type metricsRequest struct {
	Metrics []metricQuery `json:"metrics"`
}

type metricPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type metricsResponse struct {
	Series map[string][]metricPoint `json:"series"`
}

func (r metricsResponse) toPayload() dashboard.AnalyticsPayload {
	payload := make(dashboard.AnalyticsPayload, len(r.Series))
	for metric, points := range r.Series {
		series := make([]dashboard.MetricPoint, len(points))
		for i, point := range points {
			series[i] = dashboard.MetricPoint{
				Label: point.Label,
				Value: point.Value,
			}
		}
		payload[metric] = series
	}
	return payload
}
