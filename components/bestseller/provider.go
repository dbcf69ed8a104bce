package bestseller

import (
	"context"
	"net/url"
)

// Provider fetches data required to render a widget instance.
type Provider interface {
	Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error)
}

// CacheableProvider is a Provider whose output can be cached under a per-request key.
type CacheableProvider interface {
	Provider
	CacheKey(meta WidgetContext) (string, error)
}

// ProviderFunc adapts a function into a Provider.
type ProviderFunc func(ctx context.Context, meta WidgetContext) (WidgetData, error)

// Fetch implements Provider.
func (fn ProviderFunc) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	return fn(ctx, meta)
}

// WidgetContext contains the metadata needed by providers.
type WidgetContext struct {
	Instance WidgetInstance
	Viewer   ViewerContext
	Params   url.Values
}

// WidgetData is an opaque payload passed to templates.
// The "identities" key, when set to []string, tags cached output.
type WidgetData map[string]any

// Identities returns the cache tags a provider attached to its payload.
func (d WidgetData) Identities() []string {
	ids, _ := d["identities"].([]string)
	return ids
}
