package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// MoveWidgetInput is one committed drag gesture.
type MoveWidgetInput struct {
	WidgetID string `json:"widget_id"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// ResizeWidgetInput is one committed resize gesture.
type ResizeWidgetInput struct {
	WidgetID string `json:"widget_id"`
	W        int    `json:"w"`
	H        int    `json:"h"`
}

type gestureService interface {
	MoveWidget(ctx context.Context, id string, x, y int) error
	ResizeWidget(ctx context.Context, id string, w, h int) error
}

// MoveWidgetCommand wraps Service.MoveWidget.
type MoveWidgetCommand struct {
	service   gestureService
	telemetry Telemetry
}

// NewMoveWidgetCommand creates the command.
func NewMoveWidgetCommand(service gestureService, telemetry Telemetry) *MoveWidgetCommand {
	return &MoveWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[MoveWidgetInput] = (*MoveWidgetCommand)(nil)

// Execute commits the drag, pushing collisions and compacting.
func (c *MoveWidgetCommand) Execute(ctx context.Context, msg MoveWidgetInput) error {
	if c.service == nil {
		return errors.New("move command requires service")
	}
	if msg.WidgetID == "" {
		return errors.New("move command requires widget id")
	}
	if err := c.service.MoveWidget(ctx, msg.WidgetID, msg.X, msg.Y); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.move_widget", map[string]any{
		"widget_id": msg.WidgetID,
	})
	return nil
}

// ResizeWidgetCommand wraps Service.ResizeWidget.
type ResizeWidgetCommand struct {
	service   gestureService
	telemetry Telemetry
}

// NewResizeWidgetCommand creates the command.
func NewResizeWidgetCommand(service gestureService, telemetry Telemetry) *ResizeWidgetCommand {
	return &ResizeWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResizeWidgetInput] = (*ResizeWidgetCommand)(nil)

// Execute commits the resize within the widget's size bounds.
func (c *ResizeWidgetCommand) Execute(ctx context.Context, msg ResizeWidgetInput) error {
	if c.service == nil {
		return errors.New("resize command requires service")
	}
	if msg.WidgetID == "" {
		return errors.New("resize command requires widget id")
	}
	if err := c.service.ResizeWidget(ctx, msg.WidgetID, msg.W, msg.H); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.resize_widget", map[string]any{
		"widget_id": msg.WidgetID,
	})
	return nil
}
