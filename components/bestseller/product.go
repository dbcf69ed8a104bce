package bestseller

import (
	"context"
	"errors"
)

// ImagePresetWidgetGrid is the image display preset used for widget grids.
const ImagePresetWidgetGrid = "new_products_content_widget_grid"

var (
	ErrBlockMissing      = errors.New("bestseller: product has no rendering block")
	ErrPostHelperMissing = errors.New("bestseller: post data helper not configured")
)

// BestsellerProduct wraps a loaded product with the block that renders it.
type BestsellerProduct struct {
	product *Product
	block   Block
}

// NewBestsellerProduct decorates a loaded product.
func NewBestsellerProduct(product *Product) *BestsellerProduct {
	return &BestsellerProduct{product: product}
}

// Product returns the wrapped entity.
func (p *BestsellerProduct) Product() *Product {
	return p.product
}

// ID returns the wrapped product id.
func (p *BestsellerProduct) ID() string {
	if p.product == nil {
		return ""
	}
	return p.product.ID
}

// SetBlock stores the rendering block used by the helper methods.
func (p *BestsellerProduct) SetBlock(block Block) {
	p.block = block
}

// resolveBlock prefers an explicit override and falls back to the stored block.
func (p *BestsellerProduct) resolveBlock(override Block) (Block, error) {
	if override != nil {
		return override, nil
	}
	if p.block != nil {
		return p.block, nil
	}
	return nil, ErrBlockMissing
}

// ImageHTML renders the product image for the widget grid preset.
func (p *BestsellerProduct) ImageHTML(ctx context.Context, override Block) (string, error) {
	block, err := p.resolveBlock(override)
	if err != nil {
		return "", err
	}
	return block.Image(ctx, p.product, ImagePresetWidgetGrid)
}

// HasRequiredOptions delegates to the product's own option requirement check.
func (p *BestsellerProduct) HasRequiredOptions() bool {
	return p.product.HasRequiredOptions()
}

// CartPostData builds the add-to-cart POST payload for the product.
func (p *BestsellerProduct) CartPostData(helper PostDataHelper, override Block) (string, error) {
	if helper == nil {
		return "", ErrPostHelperMissing
	}
	block, err := p.resolveBlock(override)
	if err != nil {
		return "", err
	}
	return helper.PostData(block.AddToCartURL(p.product), map[string]string{
		"product": p.ID(),
	})
}
