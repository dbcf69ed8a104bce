package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	bestseller "github.com/goliatone/go-bestseller/components/bestseller"
)

// SeedDefinitionsInput controls which widget definitions are registered.
type SeedDefinitionsInput struct {
	ManifestPaths []string `json:"manifest_paths"`
}

type manifestLoader interface {
	LoadManifestFile(path string) (*bestseller.WidgetManifestDocument, error)
}

// SeedDefinitionsCommand registers the built-in widget definitions and any manifest widgets.
type SeedDefinitionsCommand struct {
	registry  bestseller.ProviderRegistry
	telemetry Telemetry
}

// NewSeedDefinitionsCommand wires dependencies.
func NewSeedDefinitionsCommand(registry bestseller.ProviderRegistry, telemetry Telemetry) *SeedDefinitionsCommand {
	return &SeedDefinitionsCommand{registry: registry, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SeedDefinitionsInput] = (*SeedDefinitionsCommand)(nil)

// Execute runs the registration pipeline.
func (c *SeedDefinitionsCommand) Execute(ctx context.Context, msg SeedDefinitionsInput) error {
	if c.registry == nil {
		return errors.New("seed command requires registry")
	}
	defs := bestseller.DefaultWidgetDefinitions()
	for _, def := range defs {
		if err := c.registry.RegisterDefinition(def); err != nil {
			return fmt.Errorf("seed definition %s: %w", def.Code, err)
		}
	}
	manifests := 0
	if len(msg.ManifestPaths) > 0 {
		loader, ok := c.registry.(manifestLoader)
		if !ok {
			return errors.New("seed command registry cannot load manifests")
		}
		for _, path := range msg.ManifestPaths {
			if _, err := loader.LoadManifestFile(path); err != nil {
				return err
			}
			manifests++
		}
	}
	c.telemetry.Record(ctx, EventSeed, map[string]any{
		"definitions": len(defs),
		"manifests":   manifests,
	})
	return nil
}
