package bestseller

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

var (
	ErrConfigurationMissing = errors.New("bestseller: configuration not initialized")
	ErrProductNotFound      = errors.New("bestseller: product not found")
	errMissingLoader        = errors.New("bestseller: product loader not configured")
	errMissingReport        = errors.New("bestseller: bestseller report not configured")
	errMissingImageHelper   = errors.New("bestseller: image helper not configured")
)

// WidgetOptions wires the collaborators of a single widget render.
type WidgetOptions struct {
	Configuration *Configuration
	Loader        ProductLoader
	Report        BestsellerReport
	Images        ImageHelper
	URLs          URLBuilder
	Layout        BlockLayout
	Viewer        ViewerContext
	Params        url.Values
	CacheKeys     CacheKeyPolicy
}

// Widget resolves and decorates the products shown by one bestseller widget render.
// A Widget is request scoped and not safe for concurrent use.
type Widget struct {
	opts     WidgetOptions
	products []*BestsellerProduct
	rows     []ReportRow
	resolved bool
}

// NewWidget builds a widget for a single render pass.
func NewWidget(opts WidgetOptions) *Widget {
	if opts.Params == nil {
		opts.Params = url.Values{}
	}
	return &Widget{opts: opts}
}

// BeforeRender injects the instance option data into the widget configuration.
func (w *Widget) BeforeRender(data map[string]any) {
	w.opts.Configuration = NewConfiguration(data)
	w.products = nil
	w.rows = nil
	w.resolved = false
}

// Configuration returns the injected configuration.
func (w *Widget) Configuration() (*Configuration, error) {
	if w.opts.Configuration == nil {
		return nil, ErrConfigurationMissing
	}
	return w.opts.Configuration, nil
}

// HasDummyProducts reports whether placeholder ids replace the report.
func (w *Widget) HasDummyProducts() (bool, error) {
	cfg, err := w.Configuration()
	if err != nil {
		return false, err
	}
	return len(cfg.DummyProductIDs()) > 0, nil
}

// HasBestsellerProducts reports whether the resolved product list is non-empty.
func (w *Widget) HasBestsellerProducts(ctx context.Context) (bool, error) {
	products, err := w.Products(ctx)
	if err != nil {
		return false, err
	}
	return len(products) > 0, nil
}

// Products resolves the decorated products once per widget.
func (w *Widget) Products(ctx context.Context) ([]*BestsellerProduct, error) {
	if w.resolved {
		return w.products, nil
	}
	cfg, err := w.Configuration()
	if err != nil {
		return nil, err
	}
	ids := cfg.DummyProductIDs()
	if len(ids) == 0 {
		rows, err := w.BestsellerCollection(ctx)
		if err != nil {
			return nil, err
		}
		w.rows = rows
		ids = make([]string, len(rows))
		for i, row := range rows {
			ids[i] = row.ProductID
		}
	}
	products := make([]*BestsellerProduct, 0, len(ids))
	for _, id := range ids {
		product, err := w.ProductByID(ctx, id)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	w.products = products
	w.resolved = true
	return w.products, nil
}

// BestsellerCollection queries the report bounded to the configured product count.
func (w *Widget) BestsellerCollection(ctx context.Context) ([]ReportRow, error) {
	cfg, err := w.Configuration()
	if err != nil {
		return nil, err
	}
	if w.opts.Report == nil {
		return nil, errMissingReport
	}
	rows, err := w.opts.Report.Bestsellers(ctx, ReportQuery{
		Limit:   cfg.ProductsCount(),
		Page:    1,
		StoreID: w.opts.Viewer.StoreID,
	})
	if err != nil {
		return nil, err
	}
	if limit := cfg.ProductsCount(); limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// ReportRows returns the report rows behind the resolved products (empty in placeholder mode).
func (w *Widget) ReportRows(ctx context.Context) ([]ReportRow, error) {
	if _, err := w.Products(ctx); err != nil {
		return nil, err
	}
	return w.rows, nil
}

// ProductByID loads a product and decorates it with this widget.
func (w *Widget) ProductByID(ctx context.Context, id string) (*BestsellerProduct, error) {
	if w.opts.Loader == nil {
		return nil, errMissingLoader
	}
	loaded, err := w.opts.Loader.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if loaded == nil {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	product := NewBestsellerProduct(loaded)
	product.SetBlock(w)
	return product, nil
}

// Identities aggregates the cache tags of the displayed products.
func (w *Widget) Identities(ctx context.Context) ([]string, error) {
	products, err := w.Products(ctx)
	if err != nil {
		return nil, err
	}
	var identities []string
	for _, product := range products {
		identities = append(identities, product.Product().Identities()...)
	}
	if len(identities) == 0 {
		return []string{ProductCacheTag}, nil
	}
	return identities, nil
}

// Image renders product image markup through the image helper.
func (w *Widget) Image(ctx context.Context, product *Product, imageID string) (string, error) {
	if w.opts.Images == nil {
		return "", errMissingImageHelper
	}
	return w.opts.Images.ImageHTML(ctx, product, imageID)
}

// AddToCartURL builds the add-to-cart URL for the product.
func (w *Widget) AddToCartURL(product *Product) string {
	if w.opts.URLs == nil {
		return ""
	}
	return w.opts.URLs.AddToCartURL(product)
}

// ProductURL builds the product page URL.
func (w *Widget) ProductURL(product *Product) string {
	if w.opts.URLs == nil {
		return ""
	}
	return w.opts.URLs.ProductURL(product)
}

var _ Block = (*Widget)(nil)
