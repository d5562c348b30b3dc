package analytics

import (
	"context"

	dashboard "github.com/romaluev/horyco-dashboard/components/dashboard"
)

// Supplier fetches metric series from upstream analytics services. It is the
// package-level name for the dashboard's MetricSupplier contract.
type Supplier interface {
	FetchMetrics(ctx context.Context, reqs []dashboard.MetricRequest) (dashboard.AnalyticsPayload, error)
}
