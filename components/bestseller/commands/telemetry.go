package commands

import (
	"context"

	bestseller "github.com/goliatone/go-bestseller/components/bestseller"
)

// Events emitted by the widget commands.
const (
	EventInvalidate = "bestseller.command.invalidate"
	EventSeed       = "bestseller.command.seed"
)

// Telemetry is the widget telemetry sink; commands share it with the service.
type Telemetry = bestseller.Telemetry

type silentTelemetry struct{}

func (silentTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return silentTelemetry{}
	}
	return t
}
