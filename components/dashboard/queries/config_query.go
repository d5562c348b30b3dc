package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/romaluev/horyco-dashboard/components/dashboard"
)

// ConfigRequest parameterizes config snapshot reads.
type ConfigRequest struct{}

type configService interface {
	Config(ctx context.Context) (dashboard.DashboardConfig, error)
}

// ConfigQuery returns the persisted dashboard config snapshot.
type ConfigQuery struct {
	service configService
}

// NewConfigQuery builds the query.
func NewConfigQuery(service configService) *ConfigQuery {
	return &ConfigQuery{service: service}
}

var _ gocommand.Querier[ConfigRequest, dashboard.DashboardConfig] = (*ConfigQuery)(nil)

// Query returns the current config snapshot.
func (q *ConfigQuery) Query(ctx context.Context, _ ConfigRequest) (dashboard.DashboardConfig, error) {
	return q.service.Config(ctx)
}
