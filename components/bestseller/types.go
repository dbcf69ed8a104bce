package bestseller

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"
)

// ProductCacheTag is the generic cache tag for catalog products.
const ProductCacheTag = "cat_p"

// ProductLoader loads full product entities by id.
type ProductLoader interface {
	Load(ctx context.Context, id string) (*Product, error)
}

// ProductLoaderFunc adapts a function to ProductLoader.
type ProductLoaderFunc func(ctx context.Context, id string) (*Product, error)

// Load implements ProductLoader.
func (f ProductLoaderFunc) Load(ctx context.Context, id string) (*Product, error) {
	return f(ctx, id)
}

// BestsellerReport exposes the aggregated sales report ranking products by ordered quantity.
type BestsellerReport interface {
	Bestsellers(ctx context.Context, query ReportQuery) ([]ReportRow, error)
}

// ImageHelper renders product image markup for a named display preset.
type ImageHelper interface {
	ImageHTML(ctx context.Context, product *Product, imageID string) (string, error)
}

// URLBuilder builds storefront URLs for products.
type URLBuilder interface {
	AddToCartURL(product *Product) string
	ProductURL(product *Product) string
}

// PostDataHelper builds the POST payload used by add-to-cart forms.
type PostDataHelper interface {
	PostData(url string, data map[string]string) (string, error)
}

// PriceRenderer renders price markup for a product.
type PriceRenderer interface {
	Render(ctx context.Context, priceCode string, product *Product, args PriceArguments) (string, error)
}

// BlockLayout looks up shared rendering blocks by name.
type BlockLayout interface {
	PriceRenderer(name string) (PriceRenderer, bool)
}

// Block is the rendering context a decorated product reaches back into.
type Block interface {
	Image(ctx context.Context, product *Product, imageID string) (string, error)
	AddToCartURL(product *Product) string
}

// Product is a loaded catalog entity.
type Product struct {
	ID              string          `json:"id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	URLKey          string          `json:"url_key"`
	TypeID          string          `json:"type_id"`
	Price           decimal.Decimal `json:"price"`
	FinalPrice      decimal.Decimal `json:"final_price"`
	Image           string          `json:"image"`
	RequiredOptions bool            `json:"required_options"`
}

var typesRequiringOptions = map[string]bool{
	"configurable": true,
	"bundle":       true,
	"grouped":      true,
}

// HasRequiredOptions reports whether the product needs option selection before add-to-cart.
func (p *Product) HasRequiredOptions() bool {
	if p == nil {
		return false
	}
	return p.RequiredOptions || typesRequiringOptions[p.TypeID]
}

// Identities returns the cache-invalidation tags of the product.
func (p *Product) Identities() []string {
	if p == nil || p.ID == "" {
		return nil
	}
	return []string{ProductCacheTag + "_" + p.ID}
}

// ReportQuery bounds a bestseller report lookup. An empty StoreID or DefaultStoreID
// aggregates sales across every store.
type ReportQuery struct {
	Limit   int
	Page    int
	StoreID string
}

// ReportRow is a single aggregated bestseller entry.
type ReportRow struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	QtyOrdered   float64         `json:"qty_ordered"`
	RatingPos    int             `json:"rating_pos"`
}

// ViewerContext captures the storefront context of the current request.
type ViewerContext struct {
	StoreID       string
	ThemeID       string
	CustomerGroup string
	Locale        string
}

// WidgetDefinition describes a widget type and its option schema.
type WidgetDefinition struct {
	Code        string         `json:"code" yaml:"code"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string         `json:"category,omitempty" yaml:"category,omitempty"`
	Template    string         `json:"template,omitempty" yaml:"template,omitempty"`
	Schema      map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// WidgetInstance is a configured placement of a widget definition.
type WidgetInstance struct {
	ID            string         `json:"id"`
	DefinitionID  string         `json:"definition_id"`
	Configuration map[string]any `json:"configuration"`
}

// RenderRequest asks the service to render one widget instance.
type RenderRequest struct {
	Instance WidgetInstance
	Viewer   ViewerContext
	Params   url.Values
}

// RenderedWidget is the output of a render pass.
type RenderedWidget struct {
	InstanceID string   `json:"instance_id"`
	HTML       string   `json:"html"`
	CacheKey   string   `json:"cache_key"`
	Identities []string `json:"identities"`
	Cached     bool     `json:"cached"`
}
