package bestseller

import (
	"context"
	"fmt"
)

// ProviderOptions wires the storefront collaborators of the bestseller provider.
type ProviderOptions struct {
	Loader    ProductLoader
	Report    BestsellerReport
	Images    ImageHelper
	URLs      URLBuilder
	PostData  PostDataHelper
	Layout    BlockLayout
	CacheKeys CacheKeyPolicy
}

// BestsellerProvider renders the bestseller widget payload for a widget instance.
type BestsellerProvider struct {
	opts ProviderOptions
}

// NewBestsellerProvider builds a provider; nil helpers fall back to the package defaults.
func NewBestsellerProvider(opts ProviderOptions) *BestsellerProvider {
	if opts.PostData == nil {
		opts.PostData = JSONPostDataHelper{}
	}
	if opts.URLs == nil {
		opts.URLs = PathURLBuilder{}
	}
	return &BestsellerProvider{opts: opts}
}

var _ CacheableProvider = (*BestsellerProvider)(nil)

// Widget builds the per-render widget for the instance, with its option data injected.
func (p *BestsellerProvider) Widget(meta WidgetContext) *Widget {
	w := NewWidget(WidgetOptions{
		Loader:    p.opts.Loader,
		Report:    p.opts.Report,
		Images:    p.opts.Images,
		URLs:      p.opts.URLs,
		Layout:    p.opts.Layout,
		Viewer:    meta.Viewer,
		Params:    meta.Params,
		CacheKeys: p.opts.CacheKeys,
	})
	w.BeforeRender(meta.Instance.Configuration)
	return w
}

// CacheKey implements CacheableProvider.
func (p *BestsellerProvider) CacheKey(meta WidgetContext) (string, error) {
	return p.Widget(meta).CacheKey()
}

// Fetch resolves products and presentation fragments for the template.
func (p *BestsellerProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	w := p.Widget(meta)
	cfg, err := w.Configuration()
	if err != nil {
		return nil, err
	}
	products, err := w.Products(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]map[string]any, 0, len(products))
	for _, product := range products {
		item, err := p.productItem(ctx, w, product)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	identities, err := w.Identities(ctx)
	if err != nil {
		return nil, err
	}
	chart, err := w.SalesChartHTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("bestseller: sales chart: %w", err)
	}
	dummy, err := w.HasDummyProducts()
	if err != nil {
		return nil, err
	}
	return WidgetData{
		"instance_id":      meta.Instance.ID,
		"title":            cfg.Title(),
		"subtitle":         cfg.Subtitle(),
		"use_carousel":     cfg.UseCarousel(),
		"products_count":   cfg.ProductsCount(),
		"placeholder":      dummy,
		"has_products":     len(items) > 0,
		"products":         items,
		"sales_chart_html": chart,
		"identities":       identities,
	}, nil
}

func (p *BestsellerProvider) productItem(ctx context.Context, w *Widget, product *BestsellerProduct) (map[string]any, error) {
	entity := product.Product()
	image, err := product.ImageHTML(ctx, nil)
	if err != nil {
		return nil, err
	}
	price, err := w.ProductPriceHTML(ctx, entity, PriceCodeFinal, ZoneItemList, nil)
	if err != nil {
		return nil, err
	}
	postData, err := product.CartPostData(p.opts.PostData, nil)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"id":                   product.ID(),
		"sku":                  entity.SKU,
		"name":                 entity.Name,
		"url":                  w.ProductURL(entity),
		"add_to_cart_url":      w.AddToCartURL(entity),
		"image_html":           image,
		"price_html":           price,
		"post_data":            postData,
		"has_required_options": product.HasRequiredOptions(),
	}, nil
}
