package bestseller

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	errMissingDefinition = errors.New("bestseller: definition id is required")
	errUnknownDefinition = errors.New("bestseller: widget definition not registered")
	errMissingProvider   = errors.New("bestseller: no provider registered for definition")
)

// Options configures the Service. Every collaborator is provided via interface so
// applications can swap implementations without importing internal packages.
type Options struct {
	Providers       ProviderRegistry
	ConfigValidator ConfigValidator
	Renderer        Renderer
	Cache           RenderCache
	Telemetry       Telemetry
	Storefront      ProviderOptions
}

// Service renders widget instances through their providers and templates.
type Service struct {
	opts Options
}

// NewService builds a Service with safe defaults and registers the bestseller provider
// unless the registry already carries one.
func NewService(opts Options) *Service {
	if opts.Providers == nil {
		opts.Providers = NewRegistry()
	}
	if opts.ConfigValidator == nil {
		opts.ConfigValidator = NewJSONSchemaValidator()
	}
	if opts.Cache == nil {
		opts.Cache = noopRenderCache{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.Storefront.Images == nil && opts.Renderer != nil {
		opts.Storefront.Images = NewTemplateImageHelper(opts.Renderer, "")
	}
	if _, ok := opts.Providers.Provider(DefinitionCode); !ok {
		_ = opts.Providers.RegisterProvider(DefinitionCode, NewBestsellerProvider(opts.Storefront))
	}
	return &Service{opts: opts}
}

// Definitions lists the registered widget definitions.
func (s *Service) Definitions() []WidgetDefinition {
	return s.opts.Providers.Definitions()
}

// ValidateConfiguration checks option data against the definition schema.
func (s *Service) ValidateConfiguration(definitionID string, config map[string]any) error {
	def, err := s.definition(definitionID)
	if err != nil {
		return err
	}
	return s.opts.ConfigValidator.Validate(def, config)
}

// Data resolves the provider payload for a widget instance without rendering it.
func (s *Service) Data(ctx context.Context, req RenderRequest) (WidgetData, error) {
	_, provider, err := s.resolve(req)
	if err != nil {
		return nil, err
	}
	return provider.Fetch(ctx, s.widgetContext(req))
}

// Render produces the widget HTML, serving it from the render cache when possible.
func (s *Service) Render(ctx context.Context, req RenderRequest) (RenderedWidget, error) {
	def, provider, err := s.resolve(req)
	if err != nil {
		return RenderedWidget{}, err
	}
	if s.opts.Renderer == nil {
		return RenderedWidget{}, errMissingRenderer
	}
	renderID := uuid.NewString()
	meta := s.widgetContext(req)

	render := func() (CachedBlock, error) {
		data, err := provider.Fetch(ctx, meta)
		if err != nil {
			return CachedBlock{}, err
		}
		html, err := s.opts.Renderer.Render(templateName(def), map[string]any(data))
		if err != nil {
			return CachedBlock{}, fmt.Errorf("bestseller: render template %s: %w", templateName(def), err)
		}
		return CachedBlock{HTML: html, Identities: data.Identities()}, nil
	}

	var (
		key    string
		block  CachedBlock
		cached bool
	)
	if cacheable, ok := provider.(CacheableProvider); ok {
		var providerKey string
		if providerKey, err = cacheable.CacheKey(meta); err != nil {
			return RenderedWidget{}, err
		}
		key = def.Code + ":" + req.Instance.ID + ":" + providerKey
		block, cached, err = s.opts.Cache.GetOrRender(key, render)
	} else {
		block, err = render()
	}
	if err != nil {
		s.recordTelemetry(ctx, "bestseller.widget.render_error", map[string]any{
			"definition_id": def.Code,
			"instance_id":   req.Instance.ID,
			"render_id":     renderID,
			"error":         err.Error(),
		})
		return RenderedWidget{}, err
	}
	s.recordTelemetry(ctx, "bestseller.widget.render", map[string]any{
		"definition_id": def.Code,
		"instance_id":   req.Instance.ID,
		"render_id":     renderID,
		"cached":        cached,
		"store_id":      req.Viewer.StoreID,
	})
	return RenderedWidget{
		InstanceID: req.Instance.ID,
		HTML:       block.HTML,
		CacheKey:   key,
		Identities: block.Identities,
		Cached:     cached,
	}, nil
}

// InvalidateIdentities drops cached output tagged with any of the identities.
func (s *Service) InvalidateIdentities(ctx context.Context, identities []string) int {
	removed := s.opts.Cache.InvalidateTags(identities...)
	s.recordTelemetry(ctx, "bestseller.cache.invalidate", map[string]any{
		"identities": identities,
		"removed":    removed,
	})
	return removed
}

func (s *Service) resolve(req RenderRequest) (WidgetDefinition, Provider, error) {
	def, err := s.definition(req.Instance.DefinitionID)
	if err != nil {
		return WidgetDefinition{}, nil, err
	}
	provider, ok := s.opts.Providers.Provider(def.Code)
	if !ok || provider == nil {
		return WidgetDefinition{}, nil, fmt.Errorf("%w: %s", errMissingProvider, def.Code)
	}
	return def, provider, nil
}

func (s *Service) definition(definitionID string) (WidgetDefinition, error) {
	if definitionID == "" {
		return WidgetDefinition{}, errMissingDefinition
	}
	def, ok := s.opts.Providers.Definition(definitionID)
	if !ok {
		return WidgetDefinition{}, fmt.Errorf("%w: %s", errUnknownDefinition, definitionID)
	}
	return def, nil
}

func (s *Service) widgetContext(req RenderRequest) WidgetContext {
	return WidgetContext{
		Instance: req.Instance,
		Viewer:   req.Viewer,
		Params:   req.Params,
	}
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func templateName(def WidgetDefinition) string {
	if def.Template != "" {
		return def.Template
	}
	return "bestseller"
}
