package bestseller

import (
	core "github.com/goliatone/go-bestseller/components/bestseller"
)

// Service exposes the underlying components/bestseller.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// ProviderOptions re-export for storefront collaborator wiring.
type ProviderOptions = core.ProviderOptions

// RenderRequest re-export.
type RenderRequest = core.RenderRequest

// RenderedWidget re-export.
type RenderedWidget = core.RenderedWidget

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}
