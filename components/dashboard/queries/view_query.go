package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/romaluev/horyco-dashboard/components/dashboard"
)

// ViewRequest parameterizes dashboard view resolution. Empty today; kept as a
// struct so transports have a stable query message type.
type ViewRequest struct{}

type viewService interface {
	View(ctx context.Context) (dashboard.DashboardView, error)
}

// ViewQuery executes read-only dashboard view assembly.
type ViewQuery struct {
	service viewService
}

// NewViewQuery builds the query.
func NewViewQuery(service viewService) *ViewQuery {
	return &ViewQuery{service: service}
}

var _ gocommand.Querier[ViewRequest, dashboard.DashboardView] = (*ViewQuery)(nil)

// Query resolves the full dashboard view.
func (q *ViewQuery) Query(ctx context.Context, _ ViewRequest) (dashboard.DashboardView, error) {
	return q.service.View(ctx)
}
