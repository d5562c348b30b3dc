package commands

import (
	"context"

	dashboard "github.com/romaluev/horyco-dashboard/components/dashboard"
)

// Telemetry mirrors the dashboard telemetry contract for command wrappers.
type Telemetry = dashboard.Telemetry

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}
