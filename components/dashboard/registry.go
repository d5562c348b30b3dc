package dashboard

import (
	"fmt"
	"sort"
	"sync"
)

// MetricKind distinguishes time-bucketed series from ranked list queries.
type MetricKind string

const (
	MetricKindSeries MetricKind = "series"
	MetricKindList   MetricKind = "list"
)

// MetricDefinition describes one data source widgets can bind to: a KPI
// series or a ranked list exposed by the analytics backend.
type MetricDefinition struct {
	Code         string         `json:"code" yaml:"code"`
	Name         string         `json:"name" yaml:"name"`
	Description  string         `json:"description,omitempty" yaml:"description,omitempty"`
	Kind         MetricKind     `json:"kind" yaml:"kind"`
	Category     string         `json:"category,omitempty" yaml:"category,omitempty"`
	ParamsSchema map[string]any `json:"params_schema,omitempty" yaml:"params_schema,omitempty"`
}

// MetricHook lets packages register metrics during init().
type MetricHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []MetricHook
)

// RegisterMetricHook registers a hook executed against new registries.
func RegisterMetricHook(h MetricHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Registry implements MetricRegistry with hook + manifest support.
type Registry struct {
	mu      sync.RWMutex
	metrics map[string]MetricDefinition
}

// NewRegistry builds a registry preloaded with the default restaurant metric
// catalog and applies global hooks.
func NewRegistry() *Registry {
	reg := &Registry{metrics: map[string]MetricDefinition{}}
	for _, def := range DefaultMetricDefinitions() {
		_ = reg.RegisterMetric(def)
	}
	_ = reg.ApplyHooks()
	return reg
}

// ApplyHooks executes registered metric hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// RegisterMetric stores a metric definition, replacing any previous entry
// with the same code.
func (r *Registry) RegisterMetric(def MetricDefinition) error {
	if def.Code == "" {
		return fmt.Errorf("metric definition code is required")
	}
	if def.Kind == "" {
		def.Kind = MetricKindSeries
	}
	if def.Kind != MetricKindSeries && def.Kind != MetricKindList {
		return fmt.Errorf("metric %s has unknown kind %q", def.Code, def.Kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics[def.Code] = def
	return nil
}

// Metric fetches a metric definition by code.
func (r *Registry) Metric(code string) (MetricDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.metrics[code]
	return def, ok
}

// Metrics returns all registered definitions sorted by code.
func (r *Registry) Metrics() []MetricDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]MetricDefinition, 0, len(r.metrics))
	for _, def := range r.metrics {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Code < defs[j].Code })
	return defs
}
