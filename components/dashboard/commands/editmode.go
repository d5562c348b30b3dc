package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// SetEditModeInput toggles drag/resize input on the grid.
type SetEditModeInput struct {
	Enabled bool `json:"enabled"`
}

// SelectWidgetInput toggles the globally selected widget. An empty id clears
// the selection.
type SelectWidgetInput struct {
	WidgetID string `json:"widget_id"`
}

type sessionService interface {
	SetEditMode(ctx context.Context, enabled bool)
	SelectWidget(id string)
}

// SetEditModeCommand wraps Service.SetEditMode.
type SetEditModeCommand struct {
	service   sessionService
	telemetry Telemetry
}

// NewSetEditModeCommand creates the command.
func NewSetEditModeCommand(service sessionService, telemetry Telemetry) *SetEditModeCommand {
	return &SetEditModeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetEditModeInput] = (*SetEditModeCommand)(nil)

// Execute flips the edit-mode flag.
func (c *SetEditModeCommand) Execute(ctx context.Context, msg SetEditModeInput) error {
	if c.service == nil {
		return errors.New("edit mode command requires service")
	}
	c.service.SetEditMode(ctx, msg.Enabled)
	c.telemetry.Record(ctx, "dashboard.command.set_edit_mode", map[string]any{
		"enabled": msg.Enabled,
	})
	return nil
}

// SelectWidgetCommand wraps Service.SelectWidget.
type SelectWidgetCommand struct {
	service   sessionService
	telemetry Telemetry
}

// NewSelectWidgetCommand creates the command.
func NewSelectWidgetCommand(service sessionService, telemetry Telemetry) *SelectWidgetCommand {
	return &SelectWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SelectWidgetInput] = (*SelectWidgetCommand)(nil)

// Execute toggles the selection.
func (c *SelectWidgetCommand) Execute(ctx context.Context, msg SelectWidgetInput) error {
	if c.service == nil {
		return errors.New("select command requires service")
	}
	c.service.SelectWidget(msg.WidgetID)
	c.telemetry.Record(ctx, "dashboard.command.select_widget", map[string]any{
		"widget_id": msg.WidgetID,
	})
	return nil
}
