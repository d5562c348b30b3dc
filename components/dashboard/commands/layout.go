package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/romaluev/horyco-dashboard/components/dashboard"
)

// UpdateLayoutInput carries the complete replacement layout committed by a
// drag or resize gesture. Partial deltas are not accepted.
type UpdateLayoutInput struct {
	Items []dashboard.WidgetLayoutItem `json:"items"`
}

type layoutService interface {
	UpdateLayout(ctx context.Context, items []dashboard.WidgetLayoutItem) error
}

// UpdateLayoutCommand wraps Service.UpdateLayout.
type UpdateLayoutCommand struct {
	service   layoutService
	telemetry Telemetry
}

// NewUpdateLayoutCommand creates the command.
func NewUpdateLayoutCommand(service layoutService, telemetry Telemetry) *UpdateLayoutCommand {
	return &UpdateLayoutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateLayoutInput] = (*UpdateLayoutCommand)(nil)

// Execute replaces the layout wholesale; the store normalizes malformed
// input.
func (c *UpdateLayoutCommand) Execute(ctx context.Context, msg UpdateLayoutInput) error {
	if c.service == nil {
		return errors.New("layout command requires service")
	}
	if err := c.service.UpdateLayout(ctx, msg.Items); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.update_layout", map[string]any{
		"count": len(msg.Items),
	})
	return nil
}
