package bestseller

import (
	"bytes"
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, renderer Renderer, loader *fakeLoader, report *fakeReport) (*Service, *collectingTelemetry) {
	t.Helper()
	telemetry := &collectingTelemetry{}
	svc := NewService(Options{
		Renderer:  renderer,
		Cache:     NewBlockCache(time.Minute),
		Telemetry: telemetry,
		Storefront: ProviderOptions{
			Loader: loader,
			Report: report,
			Images: fakeImages{},
			Layout: NewDefaultLayout("$"),
		},
	})
	return svc, telemetry
}

func bestsellerRequest(config map[string]any, params url.Values) RenderRequest {
	return RenderRequest{
		Instance: WidgetInstance{
			ID:            "home-bestsellers",
			DefinitionID:  DefinitionCode,
			Configuration: config,
		},
		Viewer: ViewerContext{StoreID: "1", ThemeID: "4", CustomerGroup: "0"},
		Params: params,
	}
}

func TestServiceRenderCachesByKey(t *testing.T) {
	renderer := &stubRenderer{}
	report := newFakeReport("1", "2")
	svc, telemetry := newTestService(t, renderer, newFakeLoader("1", "2"), report)
	ctx := context.Background()
	req := bestsellerRequest(map[string]any{OptionProductsCount: 2}, nil)

	first, err := svc.Render(ctx, req)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, "<bestseller>", first.HTML)
	assert.Equal(t, []string{"cat_p_1", "cat_p_2"}, first.Identities)
	assert.Contains(t, first.CacheKey, DefinitionCode+":home-bestsellers:")

	second, err := svc.Render(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.CacheKey, second.CacheKey)
	assert.Equal(t, 1, renderer.calls)
	assert.Equal(t, 1, report.calls)
	assert.Equal(t, []string{"bestseller.widget.render", "bestseller.widget.render"}, telemetry.events)
}

func TestServiceRenderKeyChangesWithPage(t *testing.T) {
	renderer := &stubRenderer{}
	svc, _ := newTestService(t, renderer, newFakeLoader("1"), newFakeReport("1"))
	ctx := context.Background()

	a, err := svc.Render(ctx, bestsellerRequest(nil, url.Values{"p": {"1"}}))
	require.NoError(t, err)
	b, err := svc.Render(ctx, bestsellerRequest(nil, url.Values{"p": {"2"}}))
	require.NoError(t, err)

	assert.NotEqual(t, a.CacheKey, b.CacheKey)
	assert.False(t, b.Cached)
	assert.Equal(t, 2, renderer.calls)
}

func TestServiceInvalidateIdentities(t *testing.T) {
	renderer := &stubRenderer{}
	svc, telemetry := newTestService(t, renderer, newFakeLoader("1", "2"), newFakeReport("1", "2"))
	ctx := context.Background()
	req := bestsellerRequest(nil, nil)

	_, err := svc.Render(ctx, req)
	require.NoError(t, err)

	assert.Zero(t, svc.InvalidateIdentities(ctx, []string{"cat_p_99"}))
	assert.Equal(t, 1, svc.InvalidateIdentities(ctx, []string{"cat_p_2"}))

	again, err := svc.Render(ctx, req)
	require.NoError(t, err)
	assert.False(t, again.Cached)
	assert.Equal(t, 2, renderer.calls)
	assert.Contains(t, telemetry.events, "bestseller.cache.invalidate")
}

func TestServiceRenderErrors(t *testing.T) {
	ctx := context.Background()
	svc, telemetry := newTestService(t, &stubRenderer{}, newFakeLoader(), newFakeReport("404"))

	_, err := svc.Render(ctx, RenderRequest{})
	assert.ErrorIs(t, err, errMissingDefinition)

	_, err = svc.Render(ctx, RenderRequest{Instance: WidgetInstance{DefinitionID: "unknown"}})
	assert.ErrorIs(t, err, errUnknownDefinition)

	_, err = svc.Render(ctx, bestsellerRequest(nil, nil))
	assert.ErrorIs(t, err, errProductNotFound)
	assert.Contains(t, telemetry.events, "bestseller.widget.render_error")

	noRenderer := NewService(Options{})
	_, err = noRenderer.Render(ctx, bestsellerRequest(nil, nil))
	assert.ErrorIs(t, err, errMissingRenderer)
}

func TestServiceDataPayload(t *testing.T) {
	svc, _ := newTestService(t, &stubRenderer{}, newFakeLoader("3", "5"), newFakeReport())

	data, err := svc.Data(context.Background(), bestsellerRequest(map[string]any{
		OptionDummyProductsIDs: "5,3",
		OptionTitle:            "Staff picks",
		OptionUseCarousel:      "1",
	}, nil))
	require.NoError(t, err)

	assert.Equal(t, "Staff picks", data["title"])
	assert.Equal(t, true, data["use_carousel"])
	assert.Equal(t, true, data["placeholder"])
	assert.Equal(t, true, data["has_products"])
	items, ok := data["products"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	assert.Equal(t, "5", items[0]["id"])
	assert.Equal(t, "3", items[1]["id"])
	assert.Equal(t, "/checkout/cart/add/product/5/", items[0]["add_to_cart_url"])
	assert.Contains(t, items[0]["price_html"], "$19.99")
	assert.Contains(t, items[0]["post_data"], `"product":"5"`)
}

func TestServiceValidateConfiguration(t *testing.T) {
	svc := NewService(Options{})

	assert.NoError(t, svc.ValidateConfiguration(DefinitionCode, map[string]any{OptionProductsCount: 3}))
	assert.Error(t, svc.ValidateConfiguration(DefinitionCode, map[string]any{OptionProductsCount: -1}))
	assert.ErrorIs(t, svc.ValidateConfiguration("", nil), errMissingDefinition)
	assert.Len(t, svc.Definitions(), 1)
}

func TestServiceRendersEmbeddedTemplates(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)
	svc := NewService(Options{
		Renderer: renderer,
		Storefront: ProviderOptions{
			Loader: newFakeLoader("1", "2"),
			Report: newFakeReport("1", "2"),
			Layout: NewDefaultLayout("$"),
		},
	})

	rendered, err := svc.Render(context.Background(), bestsellerRequest(map[string]any{
		OptionTitle:       "Bestsellers this week",
		OptionUseCarousel: 1,
	}, nil))
	require.NoError(t, err)

	assert.Contains(t, rendered.HTML, "Bestsellers this week")
	assert.Contains(t, rendered.HTML, "owl-carousel")
	assert.Contains(t, rendered.HTML, `data-product-id="1"`)
	assert.Contains(t, rendered.HTML, "Product 2")
	assert.Contains(t, rendered.HTML, `class="product-image-photo"`)
	assert.Contains(t, rendered.HTML, `<span class="price">$19.99</span>`)
}

func TestControllerRenderTemplateAndPayload(t *testing.T) {
	svc, _ := newTestService(t, &stubRenderer{}, newFakeLoader("1"), newFakeReport("1"))
	controller := NewController(svc)
	req := bestsellerRequest(map[string]any{OptionShowSalesChart: 1}, nil)

	var buf bytes.Buffer
	rendered, err := controller.RenderTemplate(context.Background(), req, &buf)
	require.NoError(t, err)
	assert.Equal(t, rendered.HTML, buf.String())

	payload, err := controller.Payload(context.Background(), req)
	require.NoError(t, err)
	assert.NotContains(t, payload, "sales_chart_html")
	assert.Equal(t, "home-bestsellers", payload["instance_id"])

	_, err = NewController(nil).Payload(context.Background(), req)
	assert.Error(t, err)
}

func TestControllerRender(t *testing.T) {
	renderer := &stubRenderer{}
	svc, _ := newTestService(t, renderer, newFakeLoader("1"), newFakeReport("1"))
	controller := NewController(svc)

	rendered, err := controller.Render(context.Background(), bestsellerRequest(nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "<bestseller>", rendered.HTML)
	assert.Equal(t, 1, renderer.calls)

	_, err = NewController(nil).Render(context.Background(), bestsellerRequest(nil, nil))
	assert.Error(t, err)
}

func TestServiceTemplateEscapesProductIDInAttributes(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)
	hostile := "9' onmouseover='alert(1)"
	svc := NewService(Options{
		Renderer: renderer,
		Storefront: ProviderOptions{
			Loader: newFakeLoader(hostile),
			Report: newFakeReport(hostile),
			Layout: NewDefaultLayout("$"),
		},
	})

	rendered, err := svc.Render(context.Background(), bestsellerRequest(nil, nil))
	require.NoError(t, err)

	assert.Contains(t, rendered.HTML, "data-post='")
	assert.NotContains(t, rendered.HTML, "onmouseover='alert(1)")
	assert.Contains(t, rendered.HTML, "&#39;")
}
