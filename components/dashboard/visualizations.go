package dashboard

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "100%"

var sharedChartCache = NewChartCache(5 * time.Minute)

// WidgetState is the render state of one widget instance.
type WidgetState string

const (
	WidgetStateLoading   WidgetState = "loading"
	WidgetStateEmpty     WidgetState = "empty"
	WidgetStatePopulated WidgetState = "populated"
)

// StateOf classifies resolved widget data: nil is loading, an explicit empty
// result is empty, anything else is populated.
func StateOf(data *WidgetData) WidgetState {
	switch {
	case data == nil:
		return WidgetStateLoading
	case data.Empty():
		return WidgetStateEmpty
	default:
		return WidgetStatePopulated
	}
}

// VisualizationRenderer turns a (WidgetConfig, WidgetData) pair into HTML.
// Chart kinds render through go-echarts; number/list/text and the
// skeleton/empty states render through the embedded templates. Dispatch is an
// exhaustive switch over the closed Visualization set.
type VisualizationRenderer struct {
	templates  Renderer
	cache      RenderCache
	chartTheme string
	assetsHost string
}

// VisualizationRendererOption customizes renderer behavior.
type VisualizationRendererOption func(*VisualizationRenderer)

// WithRenderCache injects a chart render cache.
func WithRenderCache(cache RenderCache) VisualizationRendererOption {
	return func(r *VisualizationRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets the echarts theme (defaults to Westeros).
func WithChartTheme(theme string) VisualizationRendererOption {
	return func(r *VisualizationRenderer) {
		r.chartTheme = theme
	}
}

// WithChartAssetsHost rewrites the assets host so the ECharts runtime loads
// from a CDN or self-hosted bucket.
func WithChartAssetsHost(host string) VisualizationRendererOption {
	return func(r *VisualizationRenderer) {
		r.assetsHost = host
	}
}

// WithTemplateRenderer replaces the embedded template renderer.
func WithTemplateRenderer(templates Renderer) VisualizationRendererOption {
	return func(r *VisualizationRenderer) {
		r.templates = templates
	}
}

// NewVisualizationRenderer builds a renderer with the embedded templates and
// shared chart cache.
func NewVisualizationRenderer(options ...VisualizationRendererOption) (*VisualizationRenderer, error) {
	r := &VisualizationRenderer{
		cache:      sharedChartCache,
		chartTheme: types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(r)
	}
	if r.templates == nil {
		templates, err := NewTemplateRenderer()
		if err != nil {
			return nil, fmt.Errorf("dashboard: template renderer: %w", err)
		}
		r.templates = templates
	}
	return r, nil
}

// Render produces the HTML for one widget in its current state. Skeletons
// match the visualization's expected shape so layout does not jump when data
// arrives; an empty result renders an explicit "no data" affordance.
func (r *VisualizationRenderer) Render(widget WidgetConfig, data *WidgetData) (string, error) {
	switch StateOf(data) {
	case WidgetStateLoading:
		return r.renderSkeleton(widget)
	case WidgetStateEmpty:
		return r.templates.Render("widget_empty", templateContext(widget))
	}

	switch widget.Visualization {
	case VisualizationNumber:
		return r.renderNumber(widget, data.Number)
	case VisualizationLineChart, VisualizationBarChart, VisualizationPieChart:
		return r.renderChart(widget, data)
	case VisualizationList:
		ctx := templateContext(widget)
		ctx["rows"] = data.Rows
		return r.templates.Render("widget_list", ctx)
	case VisualizationText:
		ctx := templateContext(widget)
		ctx["text"] = data.Text
		return r.templates.Render("widget_text", ctx)
	default:
		return "", fmt.Errorf("dashboard: unsupported visualization %q", widget.Visualization)
	}
}

func (r *VisualizationRenderer) renderSkeleton(widget WidgetConfig) (string, error) {
	name := "skeleton_chart"
	switch widget.Visualization {
	case VisualizationNumber:
		name = "skeleton_number"
	case VisualizationList:
		name = "skeleton_list"
	case VisualizationText:
		name = "skeleton_text"
	}
	return r.templates.Render(name, templateContext(widget))
}

func (r *VisualizationRenderer) renderNumber(widget WidgetConfig, number *NumberValue) (string, error) {
	ctx := templateContext(widget)
	ctx["value_label"] = formatMetricValue(number.Value)
	deltaClass := "up"
	deltaLabel := "+" + formatMetricValue(number.Delta)
	if number.Delta < 0 {
		deltaClass = "down"
		deltaLabel = formatMetricValue(number.Delta)
	}
	ctx["delta_class"] = deltaClass
	ctx["delta_label"] = deltaLabel
	return r.templates.Render("widget_number", ctx)
}

func (r *VisualizationRenderer) renderChart(widget WidgetConfig, data *WidgetData) (string, error) {
	render := func() (string, error) {
		switch widget.Visualization {
		case VisualizationLineChart:
			return r.renderLineChart(widget, data.Points)
		case VisualizationBarChart:
			return r.renderBarChart(widget, data.Points)
		case VisualizationPieChart:
			return r.renderPieChart(widget, data.Points)
		default:
			return "", fmt.Errorf("dashboard: %q is not a chart visualization", widget.Visualization)
		}
	}
	if r.cache == nil {
		return render()
	}
	key := fmt.Sprintf("%s:%s:%s", widget.ID, widget.Visualization, dataHash(data))
	return r.cache.GetOrRender(key, render)
}

func (r *VisualizationRenderer) renderLineChart(widget WidgetConfig, points []SeriesPoint) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(r.globalChartOptions(widget.Name)...)
	line.SetXAxis(axisLabels(points))
	line.AddSeries(widget.Name, toLineData(points))
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return renderChart(line)
}

func (r *VisualizationRenderer) renderBarChart(widget WidgetConfig, points []SeriesPoint) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalChartOptions(widget.Name)...)
	bar.SetXAxis(axisLabels(points))
	bar.AddSeries(widget.Name, toBarData(points))
	return renderChart(bar)
}

func (r *VisualizationRenderer) renderPieChart(widget WidgetConfig, points []SeriesPoint) (string, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(r.globalChartOptions(widget.Name)...)
	pie.AddSeries(widget.Name, toPieData(points))
	return renderChart(pie)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *VisualizationRenderer) globalChartOptions(title string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.chartTheme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func templateContext(widget WidgetConfig) map[string]any {
	return map[string]any{
		"widget_id": widget.ID,
		"name":      widget.Name,
	}
}

func axisLabels(points []SeriesPoint) []string {
	labels := make([]string, len(points))
	for i, point := range points {
		labels[i] = point.Label
	}
	return labels
}

func toLineData(points []SeriesPoint) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		data[i] = opts.LineData{Name: point.Label, Value: point.Value}
	}
	return data
}

func toBarData(points []SeriesPoint) []opts.BarData {
	data := make([]opts.BarData, len(points))
	for i, point := range points {
		data[i] = opts.BarData{Name: point.Label, Value: point.Value}
	}
	return data
}

func toPieData(points []SeriesPoint) []opts.PieData {
	data := make([]opts.PieData, len(points))
	for i, point := range points {
		name := point.Label
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		data[i] = opts.PieData{Name: name, Value: point.Value}
	}
	return data
}

func formatMetricValue(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
