package gorouter

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	gocommand "github.com/goliatone/go-command"
	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-bestseller/components/bestseller"
	"github.com/goliatone/go-bestseller/components/bestseller/commands"
)

// ViewerResolver converts a router.Context into a bestseller.ViewerContext.
type ViewerResolver func(router.Context) bestseller.ViewerContext

// Config wires go-router with the bestseller controller and commands.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *bestseller.Controller
	Instances      bestseller.InstanceSource
	Invalidate     gocommand.Commander[commands.InvalidateIdentitiesInput]
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for widget endpoints.
type RouteConfig struct {
	HTML       string
	Payload    string
	Invalidate string
}

// Register mounts storefront widget routes (HTML, JSON, invalidation) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	if cfg.Instances == nil {
		return errors.New("gorouter: widget instances are required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/storefront"
	}
	viewerResolver := cfg.ViewerResolver
	if viewerResolver == nil {
		viewerResolver = defaultViewerResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		req, status, err := renderRequest(ctx, cfg.Instances, viewerResolver)
		if err != nil {
			return respondError(ctx, status, err)
		}
		rendered, err := cfg.Controller.Render(ctx.Context(), req)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		ctx.SetHeader("X-Widget-Cache", cacheStatus(rendered.Cached))
		return ctx.Send([]byte(rendered.HTML))
	}))

	group.Get(routes.Payload, router.WrapHandler(func(ctx router.Context) error {
		req, status, err := renderRequest(ctx, cfg.Instances, viewerResolver)
		if err != nil {
			return respondError(ctx, status, err)
		}
		payload, err := cfg.Controller.Payload(ctx.Context(), req)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	if cfg.Invalidate != nil {
		group.Post(routes.Invalidate, router.WrapHandler(func(ctx router.Context) error {
			var payload commands.InvalidateIdentitiesInput
			if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			removed := 0
			payload.OnRemoved = func(n int) { removed = n }
			if err := cfg.Invalidate.Execute(ctx.Context(), payload); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			return ctx.JSON(http.StatusAccepted, map[string]any{
				"status":  "invalidated",
				"removed": removed,
			})
		}))
	}

	return nil
}

func renderRequest(ctx router.Context, instances bestseller.InstanceSource, resolver ViewerResolver) (bestseller.RenderRequest, int, error) {
	params := url.Values{}
	for key, value := range ctx.Queries() {
		params.Set(key, value)
	}
	instance, err := instances.Instance(ctx.Context(), params.Get(bestseller.InstanceParam))
	if err != nil {
		if errors.Is(err, bestseller.ErrInstanceNotFound) {
			return bestseller.RenderRequest{}, http.StatusNotFound, err
		}
		return bestseller.RenderRequest{}, http.StatusInternalServerError, err
	}
	return bestseller.RenderRequest{
		Instance: instance,
		Viewer:   resolver(ctx),
		Params:   params,
	}, http.StatusOK, nil
}

func defaultViewerResolver(ctx router.Context) bestseller.ViewerContext {
	viewer := bestseller.ViewerFromHeaders(func(name string) string {
		return ctx.Header(name)
	})
	if group, ok := ctx.Locals("customer_group").(string); ok && group != "" {
		viewer.CustomerGroup = group
	}
	if store, ok := ctx.Locals("store_id").(string); ok && store != "" {
		viewer.StoreID = store
	}
	return viewer
}

func cacheStatus(cached bool) string {
	if cached {
		return "HIT"
	}
	return "MISS"
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/widgets/bestseller"
	}
	if routes.Payload == "" {
		routes.Payload = "/widgets/bestseller.json"
	}
	if routes.Invalidate == "" {
		routes.Invalidate = "/widgets/bestseller/invalidate"
	}
	return routes
}
