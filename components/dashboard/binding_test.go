package dashboard

import (
	"reflect"
	"testing"
)

func TestResolveTextWidgetIgnoresPayload(t *testing.T) {
	widget := WidgetConfig{
		ID:            "w1",
		Visualization: VisualizationText,
		DataSource:    DataSource{Text: "Soft opening Friday"},
	}
	data := Resolve(widget, nil)
	if data == nil {
		t.Fatalf("text widget must never be loading")
	}
	if data.Text != "Soft opening Friday" {
		t.Fatalf("expected literal content, got %q", data.Text)
	}
	if StateOf(data) != WidgetStatePopulated {
		t.Fatalf("expected populated state, got %s", StateOf(data))
	}
}

func TestResolveMissingMetricMeansLoading(t *testing.T) {
	widget := WidgetConfig{
		ID:            "w1",
		Visualization: VisualizationLineChart,
		DataSource:    DataSource{Metric: "sales.revenue"},
	}
	data := Resolve(widget, AnalyticsPayload{})
	if data != nil {
		t.Fatalf("absent metric must resolve to nil, got %#v", data)
	}
	if StateOf(data) != WidgetStateLoading {
		t.Fatalf("expected loading state, got %s", StateOf(data))
	}
}

func TestResolveEmptySeriesIsEmptyNotLoading(t *testing.T) {
	payload := AnalyticsPayload{"sales.revenue": {}}
	for _, vis := range []Visualization{VisualizationNumber, VisualizationLineChart, VisualizationList} {
		widget := WidgetConfig{
			ID:            "w1",
			Visualization: vis,
			DataSource:    DataSource{Metric: "sales.revenue"},
		}
		data := Resolve(widget, payload)
		if data == nil {
			t.Fatalf("%s: empty series must not look like loading", vis)
		}
		if StateOf(data) != WidgetStateEmpty {
			t.Fatalf("%s: expected empty state, got %s", vis, StateOf(data))
		}
	}
}

func TestResolveNumberSumsWindowAndComputesDelta(t *testing.T) {
	widget := WidgetConfig{
		ID:            "w1",
		Visualization: VisualizationNumber,
		DataSource:    DataSource{Metric: "sales.revenue"},
	}
	payload := AnalyticsPayload{"sales.revenue": {
		{Label: "Mon", Value: 100},
		{Label: "Tue", Value: 150},
		{Label: "Wed", Value: 120},
	}}
	data := Resolve(widget, payload)
	if data == nil || data.Number == nil {
		t.Fatalf("expected populated number, got %#v", data)
	}
	if data.Number.Value != 370 {
		t.Fatalf("expected window sum 370, got %v", data.Number.Value)
	}
	if data.Number.Delta != 20 {
		t.Fatalf("expected delta last-first = 20, got %v", data.Number.Delta)
	}
}

func TestResolveChartAndListCarrySeries(t *testing.T) {
	payload := AnalyticsPayload{"menu.top_products": {
		{Label: "Margherita", Value: 412},
		{Label: "Carbonara", Value: 268},
	}}

	chart := Resolve(WidgetConfig{
		ID:            "c",
		Visualization: VisualizationBarChart,
		DataSource:    DataSource{Metric: "menu.top_products"},
	}, payload)
	if len(chart.Points) != 2 || chart.Points[0].Label != "Margherita" {
		t.Fatalf("chart points wrong: %#v", chart.Points)
	}

	list := Resolve(WidgetConfig{
		ID:            "l",
		Visualization: VisualizationList,
		DataSource:    DataSource{Metric: "menu.top_products"},
	}, payload)
	if len(list.Rows) != 2 || list.Rows[1].Value != 268 {
		t.Fatalf("list rows wrong: %#v", list.Rows)
	}
}

func TestResolveIsPure(t *testing.T) {
	widget := WidgetConfig{
		ID:            "w1",
		Visualization: VisualizationPieChart,
		DataSource:    DataSource{Metric: "sales.category_share"},
	}
	payload := AnalyticsPayload{"sales.category_share": {
		{Label: "Kitchen", Value: 60},
		{Label: "Bar", Value: 40},
	}}
	first := Resolve(widget, payload)
	second := Resolve(widget, payload)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different output:\n%#v\n%#v", first, second)
	}
	first.Points[0].Value = 0
	if second.Points[0].Value == 0 {
		t.Fatalf("resolved data aliases between calls")
	}
}

func TestWidgetDataEmptyPerKind(t *testing.T) {
	cases := []struct {
		name  string
		data  *WidgetData
		empty bool
	}{
		{"nil is loading not empty", nil, false},
		{"number without value", &WidgetData{Visualization: VisualizationNumber}, true},
		{"number with value", &WidgetData{Visualization: VisualizationNumber, Number: &NumberValue{Value: 1}}, false},
		{"chart with empty points", &WidgetData{Visualization: VisualizationLineChart, Points: []SeriesPoint{}}, true},
		{"chart with points", &WidgetData{Visualization: VisualizationLineChart, Points: []SeriesPoint{{Value: 1}}}, false},
		{"list with empty rows", &WidgetData{Visualization: VisualizationList, Rows: []SeriesPoint{}}, true},
		{"text is never empty", &WidgetData{Visualization: VisualizationText}, false},
	}
	for _, tc := range cases {
		if got := tc.data.Empty(); got != tc.empty {
			t.Fatalf("%s: Empty() = %v, want %v", tc.name, got, tc.empty)
		}
	}
}
