package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/romaluev/horyco-dashboard/components/dashboard"
)

type addService interface {
	AddWidget(ctx context.Context, req dashboard.AddWidgetRequest) (string, error)
}

// AddWidgetCommand wraps Service.AddWidget.
type AddWidgetCommand struct {
	service   addService
	telemetry Telemetry
}

// NewAddWidgetCommand creates the command.
func NewAddWidgetCommand(service addService, telemetry Telemetry) *AddWidgetCommand {
	return &AddWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[dashboard.AddWidgetRequest] = (*AddWidgetCommand)(nil)

// Execute validates and inserts the widget.
func (c *AddWidgetCommand) Execute(ctx context.Context, msg dashboard.AddWidgetRequest) error {
	if c.service == nil {
		return errors.New("add command requires service")
	}
	id, err := c.service.AddWidget(ctx, msg)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.add_widget", map[string]any{
		"widget_id": id,
	})
	return nil
}
