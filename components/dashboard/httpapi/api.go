package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/romaluev/horyco-dashboard/components/dashboard"
	"github.com/romaluev/horyco-dashboard/components/dashboard/commands"
	"github.com/romaluev/horyco-dashboard/components/dashboard/queries"
)

// Executor is the command surface transports call into. Router adapters
// depend on this interface rather than concrete command types.
type Executor interface {
	Add(ctx context.Context, req dashboard.AddWidgetRequest) error
	Remove(ctx context.Context, input commands.RemoveWidgetInput) error
	Update(ctx context.Context, input commands.UpdateWidgetInput) error
	Layout(ctx context.Context, input commands.UpdateLayoutInput) error
	Move(ctx context.Context, input commands.MoveWidgetInput) error
	Resize(ctx context.Context, input commands.ResizeWidgetInput) error
	EditMode(ctx context.Context, input commands.SetEditModeInput) error
	Select(ctx context.Context, input commands.SelectWidgetInput) error
}

// CommandExecutor wires go-command commanders into the Executor surface.
type CommandExecutor struct {
	AddCommander      gocommand.Commander[dashboard.AddWidgetRequest]
	RemoveCommander   gocommand.Commander[commands.RemoveWidgetInput]
	UpdateCommander   gocommand.Commander[commands.UpdateWidgetInput]
	LayoutCommander   gocommand.Commander[commands.UpdateLayoutInput]
	MoveCommander     gocommand.Commander[commands.MoveWidgetInput]
	ResizeCommander   gocommand.Commander[commands.ResizeWidgetInput]
	EditModeCommander gocommand.Commander[commands.SetEditModeInput]
	SelectCommander   gocommand.Commander[commands.SelectWidgetInput]
}

var errCommandNotConfigured = errors.New("httpapi: command not configured")

func (e *CommandExecutor) Add(ctx context.Context, req dashboard.AddWidgetRequest) error {
	if e.AddCommander == nil {
		return errCommandNotConfigured
	}
	return e.AddCommander.Execute(ctx, req)
}

func (e *CommandExecutor) Remove(ctx context.Context, input commands.RemoveWidgetInput) error {
	if e.RemoveCommander == nil {
		return errCommandNotConfigured
	}
	return e.RemoveCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Update(ctx context.Context, input commands.UpdateWidgetInput) error {
	if e.UpdateCommander == nil {
		return errCommandNotConfigured
	}
	return e.UpdateCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Layout(ctx context.Context, input commands.UpdateLayoutInput) error {
	if e.LayoutCommander == nil {
		return errCommandNotConfigured
	}
	return e.LayoutCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Move(ctx context.Context, input commands.MoveWidgetInput) error {
	if e.MoveCommander == nil {
		return errCommandNotConfigured
	}
	return e.MoveCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Resize(ctx context.Context, input commands.ResizeWidgetInput) error {
	if e.ResizeCommander == nil {
		return errCommandNotConfigured
	}
	return e.ResizeCommander.Execute(ctx, input)
}

func (e *CommandExecutor) EditMode(ctx context.Context, input commands.SetEditModeInput) error {
	if e.EditModeCommander == nil {
		return errCommandNotConfigured
	}
	return e.EditModeCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Select(ctx context.Context, input commands.SelectWidgetInput) error {
	if e.SelectCommander == nil {
		return errCommandNotConfigured
	}
	return e.SelectCommander.Execute(ctx, input)
}

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	API    Executor
	View   gocommand.Querier[queries.ViewRequest, dashboard.DashboardView]
	Config gocommand.Querier[queries.ConfigRequest, dashboard.DashboardConfig]
}

// HandleView returns the assembled dashboard view as JSON.
func (h *Handlers) HandleView(w http.ResponseWriter, r *http.Request) {
	view, err := h.View.Query(r.Context(), queries.ViewRequest{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleConfig returns the persisted config snapshot as JSON.
func (h *Handlers) HandleConfig(w http.ResponseWriter, r *http.Request) {
	config, err := h.Config.Query(r.Context(), queries.ConfigRequest{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, config)
}

// HandleAddWidget creates a widget from the add-widget modal payload.
func (h *Handlers) HandleAddWidget(w http.ResponseWriter, r *http.Request) {
	var payload dashboard.AddWidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Add(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// HandleRemoveWidget deletes the widget with the given id.
func (h *Handlers) HandleRemoveWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	if err := h.API.Remove(r.Context(), commands.RemoveWidgetInput{WidgetID: widgetID}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUpdateWidget merges a configure-dialog patch into the widget.
func (h *Handlers) HandleUpdateWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	var payload commands.UpdateWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.WidgetID = widgetID
	if err := h.API.Update(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleUpdateLayout replaces the layout wholesale.
func (h *Handlers) HandleUpdateLayout(w http.ResponseWriter, r *http.Request) {
	var payload commands.UpdateLayoutInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Layout(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleMoveWidget commits a drag gesture.
func (h *Handlers) HandleMoveWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.MoveWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Move(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleResizeWidget commits a resize gesture.
func (h *Handlers) HandleResizeWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.ResizeWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Resize(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleSetEditMode toggles edit mode.
func (h *Handlers) HandleSetEditMode(w http.ResponseWriter, r *http.Request) {
	var payload commands.SetEditModeInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.EditMode(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleSelectWidget toggles the selected widget.
func (h *Handlers) HandleSelectWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.SelectWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Select(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
