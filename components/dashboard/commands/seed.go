package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// SeedDashboardInput triggers starter-dashboard installation for a tenant.
type SeedDashboardInput struct{}

type seedService interface {
	Seed(ctx context.Context) error
}

// SeedDashboardCommand installs the default widget set.
type SeedDashboardCommand struct {
	service   seedService
	telemetry Telemetry
}

// NewSeedDashboardCommand creates the command.
func NewSeedDashboardCommand(service seedService, telemetry Telemetry) *SeedDashboardCommand {
	return &SeedDashboardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SeedDashboardInput] = (*SeedDashboardCommand)(nil)

// Execute seeds the starter dashboard. Existing widget ids are skipped by the
// store's duplicate rule, so seeding is idempotent.
func (c *SeedDashboardCommand) Execute(ctx context.Context, _ SeedDashboardInput) error {
	if c.service == nil {
		return errors.New("seed command requires service")
	}
	if err := c.service.Seed(ctx); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.seed", map[string]any{})
	return nil
}
