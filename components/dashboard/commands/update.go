package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/romaluev/horyco-dashboard/components/dashboard"
)

// UpdateWidgetInput captures widget update payloads from the configure
// dialog.
type UpdateWidgetInput struct {
	WidgetID      string                   `json:"widget_id"`
	Name          *string                  `json:"name,omitempty"`
	Visualization *dashboard.Visualization `json:"visualization,omitempty"`
	DataSource    *dashboard.DataSource    `json:"data_source,omitempty"`
}

type updateService interface {
	UpdateWidget(ctx context.Context, id string, patch dashboard.WidgetPatch) error
}

// UpdateWidgetCommand wraps Service.UpdateWidget.
type UpdateWidgetCommand struct {
	service   updateService
	telemetry Telemetry
}

// NewUpdateWidgetCommand creates the command.
func NewUpdateWidgetCommand(service updateService, telemetry Telemetry) *UpdateWidgetCommand {
	return &UpdateWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateWidgetInput] = (*UpdateWidgetCommand)(nil)

// Execute merges the patch into the widget config.
func (c *UpdateWidgetCommand) Execute(ctx context.Context, msg UpdateWidgetInput) error {
	if c.service == nil {
		return errors.New("update command requires service")
	}
	if msg.WidgetID == "" {
		return errors.New("update command requires widget id")
	}
	patch := dashboard.WidgetPatch{
		Name:          msg.Name,
		Visualization: msg.Visualization,
		DataSource:    msg.DataSource,
	}
	if err := c.service.UpdateWidget(ctx, msg.WidgetID, patch); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.update_widget", map[string]any{
		"widget_id": msg.WidgetID,
	})
	return nil
}
