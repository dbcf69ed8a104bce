package bestseller

import (
	"context"
	"fmt"
	"html"
	"strings"
)

const (
	// PriceRendererBlock is the layout name of the shared price renderer.
	PriceRendererBlock = "product.price.render.default"
	// PriceCodeFinal is the price type rendered for list items.
	PriceCodeFinal = "final_price"
	// ZoneItemList is the default price render zone.
	ZoneItemList = "item_list"
)

// PriceArguments are presentation arguments forwarded to the price renderer.
type PriceArguments map[string]any

// ProductPriceHTML renders price markup through the shared price renderer.
// A layout without the renderer yields an empty string.
func (w *Widget) ProductPriceHTML(ctx context.Context, product *Product, priceType, zone string, args PriceArguments) (string, error) {
	if zone == "" {
		zone = ZoneItemList
	}
	merged := PriceArguments{}
	for key, value := range args {
		merged[key] = value
	}
	if _, ok := merged["zone"]; !ok {
		merged["zone"] = zone
	}
	if _, ok := merged["price_id"]; !ok {
		merged["price_id"] = fmt.Sprintf("old-price-%s-%s", product.ID, priceType)
	}
	if _, ok := merged["include_container"]; !ok {
		merged["include_container"] = true
	}
	if _, ok := merged["display_minimal_price"]; !ok {
		merged["display_minimal_price"] = true
	}
	if w.opts.Layout == nil {
		return "", nil
	}
	renderer, ok := w.opts.Layout.PriceRenderer(PriceRendererBlock)
	if !ok || renderer == nil {
		return "", nil
	}
	return renderer.Render(ctx, PriceCodeFinal, product, merged)
}

// StaticLayout is a BlockLayout backed by a fixed set of price renderers.
type StaticLayout map[string]PriceRenderer

// PriceRenderer implements BlockLayout.
func (l StaticLayout) PriceRenderer(name string) (PriceRenderer, bool) {
	renderer, ok := l[name]
	return renderer, ok
}

// DecimalPriceRenderer formats final prices with a currency symbol.
type DecimalPriceRenderer struct {
	Currency string
}

// NewDefaultLayout returns a layout exposing the decimal price renderer.
func NewDefaultLayout(currency string) StaticLayout {
	return StaticLayout{PriceRendererBlock: DecimalPriceRenderer{Currency: currency}}
}

// Render implements PriceRenderer.
func (r DecimalPriceRenderer) Render(_ context.Context, priceCode string, product *Product, args PriceArguments) (string, error) {
	if product == nil {
		return "", nil
	}
	amount := product.FinalPrice
	if priceCode != PriceCodeFinal || amount.IsZero() {
		amount = product.Price
	}
	currency := r.Currency
	if currency == "" {
		currency = "$"
	}
	price := fmt.Sprintf(`<span class="price">%s%s</span>`, html.EscapeString(currency), amount.StringFixed(2))
	if product.FinalPrice.IsPositive() && product.FinalPrice.LessThan(product.Price) {
		price = fmt.Sprintf(`<span class="old-price"><span class="price">%s%s</span></span>`,
			html.EscapeString(currency), product.Price.StringFixed(2)) + price
	}
	if boolArg(args, "display_minimal_price") && product.HasRequiredOptions() {
		price = `<span class="price-label">From</span>` + price
	}
	id := html.EscapeString(fmt.Sprint(args["price_id"]))
	if !boolArg(args, "include_container") {
		return fmt.Sprintf(`<span id="%s" data-price-type="%s">%s</span>`, id, html.EscapeString(priceCode), price), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="price-box price-%s" data-role="priceBox" data-product-id="%s" data-zone="%s">`,
		html.EscapeString(priceCode), html.EscapeString(product.ID), html.EscapeString(fmt.Sprint(args["zone"])))
	fmt.Fprintf(&b, `<span id="%s" data-price-type="%s">%s</span>`, id, html.EscapeString(priceCode), price)
	b.WriteString(`</div>`)
	return b.String(), nil
}

func boolArg(args PriceArguments, key string) bool {
	v, ok := args[key].(bool)
	return ok && v
}
