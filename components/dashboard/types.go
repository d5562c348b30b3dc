package dashboard

import "context"

// Visualization identifies one of the supported widget render kinds. The set
// is closed; rendering dispatches over it exhaustively.
type Visualization string

const (
	VisualizationNumber    Visualization = "number"
	VisualizationLineChart Visualization = "line-chart"
	VisualizationBarChart  Visualization = "bar-chart"
	VisualizationPieChart  Visualization = "pie-chart"
	VisualizationList      Visualization = "list"
	VisualizationText      Visualization = "text"
)

// Visualizations returns every supported visualization kind.
func Visualizations() []Visualization {
	return []Visualization{
		VisualizationNumber,
		VisualizationLineChart,
		VisualizationBarChart,
		VisualizationPieChart,
		VisualizationList,
		VisualizationText,
	}
}

// Valid reports whether v belongs to the closed visualization set.
func (v Visualization) Valid() bool {
	switch v {
	case VisualizationNumber, VisualizationLineChart, VisualizationBarChart,
		VisualizationPieChart, VisualizationList, VisualizationText:
		return true
	}
	return false
}

// IsChart reports whether v renders through the chart pipeline.
func (v Visualization) IsChart() bool {
	switch v {
	case VisualizationLineChart, VisualizationBarChart, VisualizationPieChart:
		return true
	}
	return false
}

// DataSource describes what a widget displays: a named metric plus query
// parameters, or literal text for text widgets.
type DataSource struct {
	Metric   string            `json:"metric,omitempty" yaml:"metric,omitempty"`
	Grouping string            `json:"grouping,omitempty" yaml:"grouping,omitempty"`
	Filters  map[string]string `json:"filters,omitempty" yaml:"filters,omitempty"`
	Text     string            `json:"text,omitempty" yaml:"text,omitempty"`
}

// Params flattens the query parameters into a schema-validatable map.
func (ds DataSource) Params() map[string]any {
	params := map[string]any{}
	if ds.Grouping != "" {
		params["grouping"] = ds.Grouping
	}
	if len(ds.Filters) > 0 {
		filters := map[string]any{}
		for k, v := range ds.Filters {
			filters[k] = v
		}
		params["filters"] = filters
	}
	return params
}

func (ds DataSource) clone() DataSource {
	out := ds
	if ds.Filters != nil {
		out.Filters = make(map[string]string, len(ds.Filters))
		for k, v := range ds.Filters {
			out.Filters[k] = v
		}
	}
	return out
}

// WidgetConfig is the persisted description of one dashboard tile.
type WidgetConfig struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Visualization Visualization `json:"visualization"`
	DataSource    DataSource    `json:"data_source"`
}

func (w WidgetConfig) clone() WidgetConfig {
	out := w
	out.DataSource = w.DataSource.clone()
	return out
}

// WidgetPatch merges partial updates into an existing WidgetConfig. Nil
// fields are left untouched.
type WidgetPatch struct {
	Name          *string        `json:"name,omitempty"`
	Visualization *Visualization `json:"visualization,omitempty"`
	DataSource    *DataSource    `json:"data_source,omitempty"`
}

// WidgetLayoutItem is the grid placement for a single widget. Coordinates are
// grid cells; zero min/max bounds mean unbounded within the grid.
type WidgetLayoutItem struct {
	I      string `json:"i"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	W      int    `json:"w"`
	H      int    `json:"h"`
	MinW   int    `json:"min_w,omitempty"`
	MaxW   int    `json:"max_w,omitempty"`
	MinH   int    `json:"min_h,omitempty"`
	MaxH   int    `json:"max_h,omitempty"`
	Static bool   `json:"static,omitempty"`
}

// DashboardConfig is the aggregate persisted by the layout store. Widgets and
// Layout are kept in lock-step: every widget id has exactly one layout entry.
type DashboardConfig struct {
	Widgets map[string]WidgetConfig `json:"widgets"`
	Layout  []WidgetLayoutItem      `json:"layout"`
}

// NewDashboardConfig returns an empty, ready-to-mutate config.
func NewDashboardConfig() DashboardConfig {
	return DashboardConfig{
		Widgets: map[string]WidgetConfig{},
		Layout:  []WidgetLayoutItem{},
	}
}

// Clone deep-copies the config so snapshots never alias store state.
func (c DashboardConfig) Clone() DashboardConfig {
	out := NewDashboardConfig()
	for id, w := range c.Widgets {
		out.Widgets[id] = w.clone()
	}
	out.Layout = append(out.Layout, c.Layout...)
	return out
}

// MetricPoint is one time-bucketed value within an analytics series.
type MetricPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// AnalyticsPayload maps metric codes to their fetched series. A missing key
// means the metric has not loaded; an empty slice means it loaded with no
// data. The two states are distinct on purpose.
type AnalyticsPayload map[string][]MetricPoint

// MetricRequest identifies one series the dashboard needs.
type MetricRequest struct {
	Metric   string            `json:"metric"`
	Grouping string            `json:"grouping,omitempty"`
	Filters  map[string]string `json:"filters,omitempty"`
}

// MetricSupplier delivers analytics series for a batch of metric requests.
// Implementations live outside this package (see pkg/analytics); absence of a
// requested metric in the result is a normal, non-error condition.
type MetricSupplier interface {
	FetchMetrics(ctx context.Context, reqs []MetricRequest) (AnalyticsPayload, error)
}

// ConfigStorage persists the full DashboardConfig snapshot under a fixed
// namespace. Load returns ok=false when nothing usable is stored; corrupt
// data must degrade to ok=false, never to an error that blocks hydration.
type ConfigStorage interface {
	Load(ctx context.Context) (DashboardConfig, bool, error)
	Save(ctx context.Context, config DashboardConfig) error
}

// DashboardEvent describes a store mutation that transports may broadcast.
type DashboardEvent struct {
	Reason   string `json:"reason"`
	WidgetID string `json:"widget_id,omitempty"`
}

// RefreshHook notifies transports (REST/WebSocket) about dashboard changes.
type RefreshHook interface {
	DashboardUpdated(ctx context.Context, event DashboardEvent) error
}

// MetricRegistry stores metric definitions discoverable via hooks or
// manifests.
type MetricRegistry interface {
	RegisterMetric(def MetricDefinition) error
	Metric(code string) (MetricDefinition, bool)
	Metrics() []MetricDefinition
}
