package dashboard

import "testing"

func revenueDefinition() MetricDefinition {
	return MetricDefinition{
		Code:         "sales.revenue",
		Name:         "Revenue",
		Kind:         MetricKindSeries,
		ParamsSchema: groupingSchema(),
	}
}

func TestJSONSchemaValidatorAcceptsValidParams(t *testing.T) {
	validator := NewJSONSchemaValidator()
	source := DataSource{
		Metric:   "sales.revenue",
		Grouping: "day",
		Filters:  map[string]string{"branch": "downtown"},
	}
	if err := validator.Validate(revenueDefinition(), source); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}
}

func TestJSONSchemaValidatorRejectsBadEnum(t *testing.T) {
	validator := NewJSONSchemaValidator()
	source := DataSource{Metric: "sales.revenue", Grouping: "quarter"}
	if err := validator.Validate(revenueDefinition(), source); err == nil {
		t.Fatalf("grouping outside enum must fail validation")
	}
}

func TestJSONSchemaValidatorSkipsSchemalessMetrics(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := MetricDefinition{Code: "free.metric", Name: "Free"}
	if err := validator.Validate(def, DataSource{Metric: "free.metric", Grouping: "anything"}); err != nil {
		t.Fatalf("schemaless metric should accept any params: %v", err)
	}
}

func TestJSONSchemaValidatorCachesCompiledSchemas(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := revenueDefinition()
	source := DataSource{Metric: "sales.revenue", Grouping: "day"}
	if err := validator.Validate(def, source); err != nil {
		t.Fatalf("first validation: %v", err)
	}
	if err := validator.Validate(def, source); err != nil {
		t.Fatalf("second validation: %v", err)
	}
	validator.mu.RLock()
	defer validator.mu.RUnlock()
	if len(validator.compiled) != 1 {
		t.Fatalf("expected one compiled schema, got %d", len(validator.compiled))
	}
}
