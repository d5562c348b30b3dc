package dashboard

// SeriesPoint is one labeled value within resolved widget data, shared by
// chart points and list rows.
type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// NumberValue is the resolved shape for number widgets: the value over the
// fetched window plus the change between its first and last buckets.
type NumberValue struct {
	Value float64 `json:"value"`
	Delta float64 `json:"delta"`
}

// WidgetData is the normalized, ephemeral shape a visualization renders.
// Exactly one of the payload fields is populated, matching the kind. It is
// replaced wholesale on every resolve, never mutated in place.
type WidgetData struct {
	Visualization Visualization `json:"visualization"`
	Number        *NumberValue  `json:"number,omitempty"`
	Points        []SeriesPoint `json:"points,omitempty"`
	Rows          []SeriesPoint `json:"rows,omitempty"`
	Text          string        `json:"text,omitempty"`
}

// Empty reports whether the data resolved to an explicit "no data" state, as
// opposed to still loading (nil *WidgetData) or being populated.
func (d *WidgetData) Empty() bool {
	if d == nil {
		return false
	}
	switch d.Visualization {
	case VisualizationNumber:
		return d.Number == nil
	case VisualizationLineChart, VisualizationBarChart, VisualizationPieChart:
		return d.Points != nil && len(d.Points) == 0
	case VisualizationList:
		return d.Rows != nil && len(d.Rows) == 0
	default:
		return false
	}
}

// Resolve maps a widget's data source plus the externally supplied analytics
// payload into the normalized shape its visualization renders.
//
// Contract: a metric absent from the payload yields nil (loading, not an
// error); a present-but-empty series yields an empty non-nil sequence; text
// widgets resolve to their literal content regardless of the payload. The
// function is pure — identical inputs always produce deep-equal output.
func Resolve(widget WidgetConfig, payload AnalyticsPayload) *WidgetData {
	switch widget.Visualization {
	case VisualizationText:
		return &WidgetData{
			Visualization: VisualizationText,
			Text:          widget.DataSource.Text,
		}
	case VisualizationNumber:
		series, ok := payload[widget.DataSource.Metric]
		if !ok {
			return nil
		}
		data := &WidgetData{Visualization: VisualizationNumber}
		if len(series) > 0 {
			value := 0.0
			for _, point := range series {
				value += point.Value
			}
			data.Number = &NumberValue{
				Value: value,
				Delta: series[len(series)-1].Value - series[0].Value,
			}
		}
		return data
	case VisualizationLineChart, VisualizationBarChart, VisualizationPieChart:
		series, ok := payload[widget.DataSource.Metric]
		if !ok {
			return nil
		}
		return &WidgetData{
			Visualization: widget.Visualization,
			Points:        toSeriesPoints(series),
		}
	case VisualizationList:
		series, ok := payload[widget.DataSource.Metric]
		if !ok {
			return nil
		}
		return &WidgetData{
			Visualization: VisualizationList,
			Rows:          toSeriesPoints(series),
		}
	default:
		return nil
	}
}

func toSeriesPoints(series []MetricPoint) []SeriesPoint {
	points := make([]SeriesPoint, len(series))
	for i, point := range series {
		points[i] = SeriesPoint{Label: point.Label, Value: point.Value}
	}
	return points
}
