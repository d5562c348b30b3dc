package dashboard

// groupingSchema is the shared parameter schema for time-bucketed series.
func groupingSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"grouping": map[string]any{
				"type": "string",
				"enum": []string{"hour", "day", "week", "month"},
			},
			"filters": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"branch": map[string]any{"type": "string"},
				},
			},
		},
	}
}

func listSchema(maxLimit int) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"filters": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"branch": map[string]any{"type": "string"},
				},
			},
			"limit": map[string]any{"type": "integer", "minimum": 1, "maximum": maxLimit},
		},
	}
}

var defaultMetricDefinitions = []MetricDefinition{
	{
		Code:         "sales.revenue",
		Name:         "Revenue",
		Description:  "Gross revenue per time bucket",
		Kind:         MetricKindSeries,
		Category:     "sales",
		ParamsSchema: groupingSchema(),
	},
	{
		Code:         "sales.orders",
		Name:         "Orders",
		Description:  "Completed order count per time bucket",
		Kind:         MetricKindSeries,
		Category:     "sales",
		ParamsSchema: groupingSchema(),
	},
	{
		Code:         "sales.avg_check",
		Name:         "Average Check",
		Description:  "Average check size per time bucket",
		Kind:         MetricKindSeries,
		Category:     "sales",
		ParamsSchema: groupingSchema(),
	},
	{
		Code:         "sales.guests",
		Name:         "Guests",
		Description:  "Guest count per time bucket",
		Kind:         MetricKindSeries,
		Category:     "sales",
		ParamsSchema: groupingSchema(),
	},
	{
		Code:         "sales.category_share",
		Name:         "Category Share",
		Description:  "Revenue share per menu category",
		Kind:         MetricKindSeries,
		Category:     "menu",
		ParamsSchema: groupingSchema(),
	},
	{
		Code:         "menu.top_products",
		Name:         "Top Products",
		Description:  "Best selling products ranked by revenue",
		Kind:         MetricKindList,
		Category:     "menu",
		ParamsSchema: listSchema(50),
	},
	{
		Code:         "inventory.writeoffs",
		Name:         "Writeoffs",
		Description:  "Writeoff value per time bucket",
		Kind:         MetricKindSeries,
		Category:     "inventory",
		ParamsSchema: groupingSchema(),
	},
	{
		Code:         "inventory.stock_alerts",
		Name:         "Stock Alerts",
		Description:  "Items at or below their reorder level",
		Kind:         MetricKindList,
		Category:     "inventory",
		ParamsSchema: listSchema(100),
	},
}

// DefaultMetricDefinitions returns the built-in restaurant KPI catalog.
func DefaultMetricDefinitions() []MetricDefinition {
	defs := make([]MetricDefinition, len(defaultMetricDefinitions))
	copy(defs, defaultMetricDefinitions)
	return defs
}

// DefaultSeedWidgets returns the starter dashboard new tenants receive.
func DefaultSeedWidgets() []AddWidgetRequest {
	return []AddWidgetRequest{
		{
			ID:            "seed.revenue_number",
			Name:          "Revenue",
			Visualization: VisualizationNumber,
			DataSource:    DataSource{Metric: "sales.revenue", Grouping: "day"},
			Placement:     &WidgetLayoutItem{X: 0, Y: 0, W: 3, H: 2, MinW: 2, MinH: 2},
		},
		{
			ID:            "seed.orders_number",
			Name:          "Orders",
			Visualization: VisualizationNumber,
			DataSource:    DataSource{Metric: "sales.orders", Grouping: "day"},
			Placement:     &WidgetLayoutItem{X: 3, Y: 0, W: 3, H: 2, MinW: 2, MinH: 2},
		},
		{
			ID:            "seed.avg_check_number",
			Name:          "Average Check",
			Visualization: VisualizationNumber,
			DataSource:    DataSource{Metric: "sales.avg_check", Grouping: "day"},
			Placement:     &WidgetLayoutItem{X: 6, Y: 0, W: 3, H: 2, MinW: 2, MinH: 2},
		},
		{
			ID:            "seed.guests_number",
			Name:          "Guests",
			Visualization: VisualizationNumber,
			DataSource:    DataSource{Metric: "sales.guests", Grouping: "day"},
			Placement:     &WidgetLayoutItem{X: 9, Y: 0, W: 3, H: 2, MinW: 2, MinH: 2},
		},
		{
			ID:            "seed.revenue_chart",
			Name:          "Revenue Trend",
			Visualization: VisualizationLineChart,
			DataSource:    DataSource{Metric: "sales.revenue", Grouping: "day"},
			Placement:     &WidgetLayoutItem{X: 0, Y: 2, W: 8, H: 4, MinW: 4, MinH: 3},
		},
		{
			ID:            "seed.category_share",
			Name:          "Category Share",
			Visualization: VisualizationPieChart,
			DataSource:    DataSource{Metric: "sales.category_share", Grouping: "day"},
			Placement:     &WidgetLayoutItem{X: 8, Y: 2, W: 4, H: 4, MinW: 3, MinH: 3},
		},
		{
			ID:            "seed.top_products",
			Name:          "Top Products",
			Visualization: VisualizationList,
			DataSource:    DataSource{Metric: "menu.top_products"},
			Placement:     &WidgetLayoutItem{X: 0, Y: 6, W: 6, H: 4, MinW: 3, MinH: 2},
		},
		{
			ID:            "seed.welcome",
			Name:          "Welcome",
			Visualization: VisualizationText,
			DataSource:    DataSource{Text: "Welcome to your back office. Switch to edit mode to rearrange widgets or add new ones."},
			Placement:     &WidgetLayoutItem{X: 6, Y: 6, W: 6, H: 4, MinH: 2},
		},
	}
}
