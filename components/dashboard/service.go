package dashboard

import (
	"context"
	"errors"
	"fmt"
)

var (
	errMissingStore         = errors.New("dashboard: layout store not configured")
	errInvalidVisualization = errors.New("dashboard: visualization is not supported")
	errEditModeOff          = errors.New("dashboard: edit mode is off")
)

// Options configures the dashboard Service. Every collaborator is provided
// via interface so applications can swap implementations without importing
// internal packages.
type Options struct {
	Store     *Store
	Registry  MetricRegistry
	Supplier  MetricSupplier
	Validator SourceValidator
	Renderer  *VisualizationRenderer
	Telemetry Telemetry
}

// Service orchestrates the layout store, the data binding adapter, and the
// visualization renderer into a dashboard view.
type Service struct {
	opts Options
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Store == nil {
		opts.Store = NewStore(StoreOptions{Telemetry: opts.Telemetry})
	}
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	if opts.Validator == nil {
		opts.Validator = NewJSONSchemaValidator()
	}
	if opts.Renderer == nil {
		if renderer, err := NewVisualizationRenderer(); err == nil {
			opts.Renderer = renderer
		}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{opts: opts}
}

// Store exposes the underlying layout store.
func (s *Service) Store() *Store {
	return s.opts.Store
}

// AddWidgetRequest captures the data an "add widget" surface collects.
type AddWidgetRequest struct {
	ID            string            `json:"id,omitempty"`
	Name          string            `json:"name"`
	Visualization Visualization     `json:"visualization"`
	DataSource    DataSource        `json:"data_source"`
	Placement     *WidgetLayoutItem `json:"placement,omitempty"`
}

// AddWidget validates the request against the metric catalog and inserts the
// widget. The returned id is empty when the store declined the insert
// (duplicate id), which is a silent no-op by design.
func (s *Service) AddWidget(ctx context.Context, req AddWidgetRequest) (string, error) {
	if !req.Visualization.Valid() {
		return "", errInvalidVisualization
	}
	if err := s.validateSource(req.Visualization, req.DataSource); err != nil {
		return "", err
	}
	id := s.opts.Store.AddWidget(ctx, WidgetConfig{
		ID:            req.ID,
		Name:          req.Name,
		Visualization: req.Visualization,
		DataSource:    req.DataSource,
	}, req.Placement)
	s.opts.Telemetry.Record(ctx, "dashboard.widget.add", map[string]any{
		"widget_id":     id,
		"visualization": string(req.Visualization),
		"metric":        req.DataSource.Metric,
	})
	return id, nil
}

// UpdateWidget validates and merges a patch into an existing widget config.
// Unknown ids are a silent no-op in the store.
func (s *Service) UpdateWidget(ctx context.Context, id string, patch WidgetPatch) error {
	if id == "" {
		return errors.New("dashboard: widget id is required")
	}
	if patch.Visualization != nil && !patch.Visualization.Valid() {
		return errInvalidVisualization
	}
	if patch.DataSource != nil {
		visualization := VisualizationNumber
		if patch.Visualization != nil {
			visualization = *patch.Visualization
		} else if current, ok := s.opts.Store.Snapshot().Widgets[id]; ok {
			visualization = current.Visualization
		}
		if err := s.validateSource(visualization, *patch.DataSource); err != nil {
			return err
		}
	}
	s.opts.Store.UpdateWidget(ctx, id, patch)
	return nil
}

// RemoveWidget deletes a widget and its layout entry.
func (s *Service) RemoveWidget(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("dashboard: widget id is required")
	}
	s.opts.Store.RemoveWidget(ctx, id)
	return nil
}

// UpdateLayout replaces the layout wholesale, as committed by a drag or
// resize gesture. Malformed input is normalized, never rejected.
func (s *Service) UpdateLayout(ctx context.Context, items []WidgetLayoutItem) error {
	if s.opts.Store == nil {
		return errMissingStore
	}
	s.opts.Store.UpdateLayout(ctx, items)
	return nil
}

// MoveWidget commits a drag gesture: the widget moves to the requested cell,
// collisions push down, and the layout compacts. Requires edit mode.
func (s *Service) MoveWidget(ctx context.Context, id string, x, y int) error {
	if !s.opts.Store.EditMode() {
		return errEditModeOff
	}
	layout := MoveItem(s.opts.Store.Snapshot().Layout, id, x, y)
	s.opts.Store.UpdateLayout(ctx, layout)
	return nil
}

// ResizeWidget commits a resize gesture, bounded by the widget's min/max
// constraints. Requires edit mode.
func (s *Service) ResizeWidget(ctx context.Context, id string, w, h int) error {
	if !s.opts.Store.EditMode() {
		return errEditModeOff
	}
	layout := ResizeItem(s.opts.Store.Snapshot().Layout, id, w, h)
	s.opts.Store.UpdateLayout(ctx, layout)
	return nil
}

// SetEditMode toggles whether the grid accepts drag/resize input.
func (s *Service) SetEditMode(ctx context.Context, enabled bool) {
	s.opts.Store.SetEditMode(ctx, enabled)
}

// SelectWidget toggles the globally selected widget.
func (s *Service) SelectWidget(id string) {
	s.opts.Store.SelectWidget(id)
}

// Seed installs the starter dashboard for a new tenant. Widgets that already
// exist are skipped by the store's duplicate-id rule.
func (s *Service) Seed(ctx context.Context) error {
	var seedErr error
	for _, req := range DefaultSeedWidgets() {
		if _, err := s.AddWidget(ctx, req); err != nil {
			seedErr = errors.Join(seedErr, fmt.Errorf("seed widget %s: %w", req.ID, err))
		}
	}
	return seedErr
}

func (s *Service) validateSource(visualization Visualization, source DataSource) error {
	if visualization == VisualizationText {
		// Text widgets carry literal content, no metric binding.
		return nil
	}
	if source.Metric == "" {
		return errors.New("dashboard: data source metric is required")
	}
	def, ok := s.opts.Registry.Metric(source.Metric)
	if !ok {
		return fmt.Errorf("dashboard: unknown metric %q", source.Metric)
	}
	if s.opts.Validator == nil {
		return nil
	}
	return s.opts.Validator.Validate(def, source)
}

// Config hydrates the store if needed and returns the persisted snapshot.
func (s *Service) Config(ctx context.Context) (DashboardConfig, error) {
	if s.opts.Store == nil {
		return DashboardConfig{}, errMissingStore
	}
	if !s.opts.Store.Ready() {
		if err := s.opts.Store.Hydrate(ctx); err != nil {
			return DashboardConfig{}, err
		}
	}
	return s.opts.Store.Snapshot(), nil
}

// WidgetView is one rendered tile within the dashboard view.
type WidgetView struct {
	Widget   WidgetConfig     `json:"widget"`
	Layout   WidgetLayoutItem `json:"layout"`
	State    WidgetState      `json:"state"`
	Data     *WidgetData      `json:"data,omitempty"`
	HTML     string           `json:"html,omitempty"`
	Selected bool             `json:"selected,omitempty"`
}

// DashboardView is the fully assembled dashboard for one render pass.
type DashboardView struct {
	Hydration        string       `json:"hydration"`
	EditMode         bool         `json:"edit_mode"`
	SelectedWidgetID string       `json:"selected_widget_id,omitempty"`
	Columns          int          `json:"columns"`
	RowHeight        int          `json:"row_height"`
	Widgets          []WidgetView `json:"widgets"`
}

// View hydrates the store if needed, fetches the analytics payload for every
// bound metric, and resolves + renders each widget. A supplier failure is not
// fatal: affected widgets stay in the loading state.
func (s *Service) View(ctx context.Context) (DashboardView, error) {
	if s.opts.Store == nil {
		return DashboardView{}, errMissingStore
	}
	if !s.opts.Store.Ready() {
		if err := s.opts.Store.Hydrate(ctx); err != nil {
			return DashboardView{}, err
		}
	}

	config := s.opts.Store.Snapshot()
	selected, _ := s.opts.Store.SelectedWidget()
	view := DashboardView{
		Hydration:        s.opts.Store.State().String(),
		EditMode:         s.opts.Store.EditMode(),
		SelectedWidgetID: selected,
		Columns:          GridColumns,
		RowHeight:        GridRowHeight,
		Widgets:          make([]WidgetView, 0, len(config.Layout)),
	}

	payload := s.fetchPayload(ctx, config)
	for _, item := range sortedLayout(config.Layout) {
		widget, ok := config.Widgets[item.I]
		if !ok {
			continue
		}
		data := Resolve(widget, payload)
		wv := WidgetView{
			Widget:   widget,
			Layout:   item,
			State:    StateOf(data),
			Data:     data,
			Selected: widget.ID == selected,
		}
		if s.opts.Renderer != nil {
			html, err := s.opts.Renderer.Render(widget, data)
			if err != nil {
				s.opts.Telemetry.Record(ctx, "dashboard.widget.render_error", map[string]any{
					"widget_id": widget.ID,
					"error":     err.Error(),
				})
			} else {
				wv.HTML = html
			}
		}
		view.Widgets = append(view.Widgets, wv)
	}
	return view, nil
}

// fetchPayload collects one metric request per bound metric and asks the
// supplier for the batch. No supplier or a failed fetch yields an empty
// payload, leaving every bound widget in the loading state.
func (s *Service) fetchPayload(ctx context.Context, config DashboardConfig) AnalyticsPayload {
	if s.opts.Supplier == nil {
		return AnalyticsPayload{}
	}
	seen := map[string]bool{}
	reqs := make([]MetricRequest, 0, len(config.Widgets))
	for _, item := range sortedLayout(config.Layout) {
		widget, ok := config.Widgets[item.I]
		if !ok || widget.Visualization == VisualizationText {
			continue
		}
		metric := widget.DataSource.Metric
		if metric == "" || seen[metric] {
			continue
		}
		seen[metric] = true
		reqs = append(reqs, MetricRequest{
			Metric:   metric,
			Grouping: widget.DataSource.Grouping,
			Filters:  widget.DataSource.Filters,
		})
	}
	if len(reqs) == 0 {
		return AnalyticsPayload{}
	}
	payload, err := s.opts.Supplier.FetchMetrics(ctx, reqs)
	if err != nil {
		s.opts.Telemetry.Record(ctx, "dashboard.metrics.fetch_error", map[string]any{"error": err.Error()})
		return AnalyticsPayload{}
	}
	if payload == nil {
		return AnalyticsPayload{}
	}
	return payload
}
