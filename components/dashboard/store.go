package dashboard

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// LifecycleState tracks store hydration so consumers can distinguish "no
// persisted data" from "not yet checked".
type LifecycleState int

const (
	StateUninitialized LifecycleState = iota
	StateHydrating
	StateReady
)

func (s LifecycleState) String() string {
	switch s {
	case StateHydrating:
		return "hydrating"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// StoreOptions configures the layout store. Every collaborator is provided
// via interface so applications can swap implementations.
type StoreOptions struct {
	Storage     ConfigStorage
	RefreshHook RefreshHook
	Telemetry   Telemetry
}

// Store is the single source of truth for the dashboard config, the edit-mode
// flag, and the selected widget. Every mutation normalizes and compacts the
// layout, persists the full config snapshot, and notifies the refresh hook.
// Mutations are atomic with respect to Snapshot: readers never observe a
// widget registry and layout out of lock-step.
type Store struct {
	mu       sync.RWMutex
	state    LifecycleState
	config   DashboardConfig
	editMode bool
	selected string

	storage   ConfigStorage
	hook      RefreshHook
	telemetry Telemetry
}

// NewStore builds a store with safe defaults: in-memory storage, noop hook
// and telemetry.
func NewStore(opts StoreOptions) *Store {
	if opts.Storage == nil {
		opts.Storage = NewMemoryStorage()
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	return &Store{
		config:    NewDashboardConfig(),
		storage:   opts.Storage,
		hook:      opts.RefreshHook,
		telemetry: normalizeTelemetry(opts.Telemetry),
	}
}

// State returns the hydration lifecycle state.
func (s *Store) State() LifecycleState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Ready reports whether persisted state has been loaded (or ruled absent).
func (s *Store) Ready() bool {
	return s.State() == StateReady
}

// Hydrate loads the persisted config. Missing or corrupt data falls back to
// an empty default rather than failing; the store always ends up ready.
// Calling Hydrate on a ready store is a no-op.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateReady {
		s.mu.Unlock()
		return nil
	}
	s.state = StateHydrating
	s.mu.Unlock()

	config, ok, err := s.storage.Load(ctx)
	if err != nil {
		s.telemetry.Record(ctx, "dashboard.hydrate.error", map[string]any{"error": err.Error()})
		config = NewDashboardConfig()
		ok = true
	}
	if !ok {
		config = NewDashboardConfig()
	}
	if config.Widgets == nil {
		config.Widgets = map[string]WidgetConfig{}
	}
	config.Layout = NormalizeLayout(config.Widgets, config.Layout)

	s.mu.Lock()
	s.config = config
	s.state = StateReady
	s.mu.Unlock()
	s.telemetry.Record(ctx, "dashboard.hydrate", map[string]any{"widgets": len(config.Widgets)})
	return nil
}

// Snapshot returns a deep copy of the current config. Callers may not mutate
// store state through the returned value.
func (s *Store) Snapshot() DashboardConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config.Clone()
}

// EditMode reports whether the grid currently accepts drag/resize input.
func (s *Store) EditMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editMode
}

// SetEditMode toggles edit mode. The flag is session state; persisted config
// is untouched.
func (s *Store) SetEditMode(ctx context.Context, enabled bool) {
	s.mu.Lock()
	changed := s.editMode != enabled
	s.editMode = enabled
	s.mu.Unlock()
	if changed {
		s.notify(ctx, "edit_mode", "")
	}
}

// SelectedWidget returns the globally selected widget id, if any.
func (s *Store) SelectedWidget() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected, s.selected != ""
}

// SelectWidget toggles the single selected widget: selecting the already
// selected id (or the empty id) clears the selection.
func (s *Store) SelectWidget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" || s.selected == id {
		s.selected = ""
		return
	}
	if _, ok := s.config.Widgets[id]; !ok {
		return
	}
	s.selected = id
}

// UpdateLayout replaces the layout wholesale. Entries for unknown widgets are
// dropped, missing widgets get a default placement, and the result is
// compacted; malformed input is normalized, never rejected.
func (s *Store) UpdateLayout(ctx context.Context, items []WidgetLayoutItem) {
	s.mu.Lock()
	s.config.Layout = NormalizeLayout(s.config.Widgets, items)
	snapshot := s.config.Clone()
	s.mu.Unlock()
	s.persist(ctx, snapshot)
	s.notify(ctx, "layout", "")
}

// AddWidget inserts a widget and its layout entry. An empty id gets a
// generated one; a duplicate id makes the call a silent no-op. The widget id
// actually registered is returned ("" when nothing was added).
func (s *Store) AddWidget(ctx context.Context, config WidgetConfig, placement *WidgetLayoutItem) string {
	if config.ID == "" {
		config.ID = uuid.NewString()
	}
	if !config.Visualization.Valid() {
		s.telemetry.Record(ctx, "dashboard.widget.invalid_visualization", map[string]any{
			"widget_id":     config.ID,
			"visualization": string(config.Visualization),
		})
		return ""
	}
	s.mu.Lock()
	if _, exists := s.config.Widgets[config.ID]; exists {
		s.mu.Unlock()
		s.telemetry.Record(ctx, "dashboard.widget.duplicate_id", map[string]any{"widget_id": config.ID})
		return ""
	}
	item := DefaultPlacement(s.config.Layout, config.ID)
	if placement != nil {
		item = clampItem(*placement)
		item.I = config.ID
	}
	s.config.Widgets[config.ID] = config.clone()
	s.config.Layout = CompactLayout(append(s.config.Layout, item))
	snapshot := s.config.Clone()
	s.mu.Unlock()
	s.persist(ctx, snapshot)
	s.notify(ctx, "add", config.ID)
	return config.ID
}

// UpdateWidget merges the patch into an existing widget config. Unknown ids
// are a no-op. Changing the visualization kind keeps the id and layout slot.
func (s *Store) UpdateWidget(ctx context.Context, id string, patch WidgetPatch) {
	s.mu.Lock()
	widget, ok := s.config.Widgets[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	if patch.Name != nil {
		widget.Name = *patch.Name
	}
	if patch.Visualization != nil && patch.Visualization.Valid() {
		widget.Visualization = *patch.Visualization
	}
	if patch.DataSource != nil {
		widget.DataSource = patch.DataSource.clone()
	}
	s.config.Widgets[id] = widget
	snapshot := s.config.Clone()
	s.mu.Unlock()
	s.persist(ctx, snapshot)
	s.notify(ctx, "update", id)
}

// RemoveWidget deletes the widget and its layout entry, clears a matching
// selection, and compacts what remains. Unknown ids are a no-op.
func (s *Store) RemoveWidget(ctx context.Context, id string) {
	s.mu.Lock()
	if _, ok := s.config.Widgets[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.config.Widgets, id)
	remaining := make([]WidgetLayoutItem, 0, len(s.config.Layout))
	for _, item := range s.config.Layout {
		if item.I != id {
			remaining = append(remaining, item)
		}
	}
	s.config.Layout = CompactLayout(remaining)
	if s.selected == id {
		s.selected = ""
	}
	snapshot := s.config.Clone()
	s.mu.Unlock()
	s.persist(ctx, snapshot)
	s.notify(ctx, "remove", id)
}

// persist writes the full snapshot; failures are recorded and swallowed so
// the in-memory config stays authoritative for the session. Writes are
// idempotent full-state snapshots, so the next successful write recovers.
func (s *Store) persist(ctx context.Context, snapshot DashboardConfig) {
	if err := s.storage.Save(ctx, snapshot); err != nil {
		s.telemetry.Record(ctx, "dashboard.persist.error", map[string]any{"error": err.Error()})
	}
}

func (s *Store) notify(ctx context.Context, reason, widgetID string) {
	event := DashboardEvent{Reason: reason, WidgetID: widgetID}
	if err := s.hook.DashboardUpdated(ctx, event); err != nil {
		s.telemetry.Record(ctx, "dashboard.hook.error", map[string]any{
			"reason": reason,
			"error":  err.Error(),
		})
	}
	s.telemetry.Record(ctx, "dashboard.config.change", map[string]any{
		"reason":    reason,
		"widget_id": widgetID,
	})
}

type noopRefreshHook struct{}

func (noopRefreshHook) DashboardUpdated(context.Context, DashboardEvent) error {
	return nil
}
