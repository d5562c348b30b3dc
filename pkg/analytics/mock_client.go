package analytics

import (
	"context"
	"fmt"
	"sync"

	dashboard "github.com/romaluev/horyco-dashboard/components/dashboard"
)

// MockClient implements Supplier with deterministic in-memory series, useful
// for tests and local demos. Fixtures override the generated defaults.
type MockClient struct {
	mu       sync.RWMutex
	fixtures dashboard.AnalyticsPayload
}

// NewMockClient builds a mock supplier. Pass fixtures to pin specific metric
// series; anything else gets a generated demo series.
func NewMockClient(fixtures dashboard.AnalyticsPayload) *MockClient {
	clone := make(dashboard.AnalyticsPayload, len(fixtures))
	for metric, series := range fixtures {
		clone[metric] = append([]dashboard.MetricPoint(nil), series...)
	}
	return &MockClient{fixtures: clone}
}

// SetSeries replaces the fixture for one metric.
func (c *MockClient) SetSeries(metric string, series []dashboard.MetricPoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fixtures[metric] = append([]dashboard.MetricPoint(nil), series...)
}

// FetchMetrics returns a series for every requested metric.
func (c *MockClient) FetchMetrics(_ context.Context, reqs []dashboard.MetricRequest) (dashboard.AnalyticsPayload, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	payload := make(dashboard.AnalyticsPayload, len(reqs))
	for _, req := range reqs {
		if series, ok := c.fixtures[req.Metric]; ok {
			payload[req.Metric] = append([]dashboard.MetricPoint(nil), series...)
			continue
		}
		payload[req.Metric] = demoSeries(req.Metric)
	}
	return payload, nil
}

// demoSeries derives a stable fake series from the metric code so repeated
// renders show the same numbers.
func demoSeries(metric string) []dashboard.MetricPoint {
	seed := 0
	for _, r := range metric {
		seed = (seed*31 + int(r)) % 997
	}
	points := make([]dashboard.MetricPoint, 7)
	for i := range points {
		value := float64((seed+i*13)%90 + 10)
		points[i] = dashboard.MetricPoint{
			Label: fmt.Sprintf("day %d", i+1),
			Value: value,
		}
	}
	return points
}
