package analytics

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	dashboard "github.com/romaluev/horyco-dashboard/components/dashboard"
)

// CachedSupplier decorates a Supplier with a short-lived per-request cache so
// repeated dashboard renders within the TTL do not hammer the upstream API.
type CachedSupplier struct {
	inner Supplier
	ttl   time.Duration

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	payload dashboard.AnalyticsPayload
	expires time.Time
}

// NewCachedSupplier wraps inner with a TTL cache. A non-positive ttl falls
// back to one minute.
func NewCachedSupplier(inner Supplier, ttl time.Duration) *CachedSupplier {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachedSupplier{
		inner:   inner,
		ttl:     ttl,
		entries: map[string]cacheEntry{},
	}
}

// FetchMetrics serves from cache when a fresh entry covers the same batch.
func (c *CachedSupplier) FetchMetrics(ctx context.Context, reqs []dashboard.MetricRequest) (dashboard.AnalyticsPayload, error) {
	key := batchKey(reqs)

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && time.Now().Before(entry.expires) {
		payload := clonePayload(entry.payload)
		c.mu.Unlock()
		return payload, nil
	}
	c.mu.Unlock()

	payload, err := c.inner.FetchMetrics(ctx, reqs)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{payload: clonePayload(payload), expires: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return payload, nil
}

func batchKey(reqs []dashboard.MetricRequest) string {
	parts := make([]string, 0, len(reqs))
	for _, req := range reqs {
		var b strings.Builder
		b.WriteString(req.Metric)
		b.WriteByte('|')
		b.WriteString(req.Grouping)
		filters := make([]string, 0, len(req.Filters))
		for k, v := range req.Filters {
			filters = append(filters, k+"="+v)
		}
		sort.Strings(filters)
		for _, f := range filters {
			b.WriteByte('|')
			b.WriteString(f)
		}
		parts = append(parts, b.String())
	}
	sort.Strings(parts)
	return strings.Join(parts, ";")
}

func clonePayload(payload dashboard.AnalyticsPayload) dashboard.AnalyticsPayload {
	out := make(dashboard.AnalyticsPayload, len(payload))
	for metric, series := range payload {
		out[metric] = append([]dashboard.MetricPoint(nil), series...)
	}
	return out
}
