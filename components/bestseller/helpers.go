package bestseller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// ImagePreset describes the rendered size of a named image display.
type ImagePreset struct {
	Width  int
	Height int
	Class  string
}

var defaultImagePresets = map[string]ImagePreset{
	ImagePresetWidgetGrid: {Width: 240, Height: 300, Class: "product-image-photo"},
}

// TemplateImageHelper renders product images through the "partials/image" template.
type TemplateImageHelper struct {
	renderer  Renderer
	mediaBase string
	presets   map[string]ImagePreset
}

// NewTemplateImageHelper builds an image helper serving media from mediaBase.
func NewTemplateImageHelper(renderer Renderer, mediaBase string) *TemplateImageHelper {
	presets := make(map[string]ImagePreset, len(defaultImagePresets))
	for key, preset := range defaultImagePresets {
		presets[key] = preset
	}
	return &TemplateImageHelper{
		renderer:  renderer,
		mediaBase: strings.TrimRight(mediaBase, "/"),
		presets:   presets,
	}
}

// WithPreset registers or overrides an image preset.
func (h *TemplateImageHelper) WithPreset(id string, preset ImagePreset) *TemplateImageHelper {
	h.presets[id] = preset
	return h
}

// ImageHTML implements ImageHelper.
func (h *TemplateImageHelper) ImageHTML(_ context.Context, product *Product, imageID string) (string, error) {
	if h.renderer == nil {
		return "", errMissingRenderer
	}
	preset, ok := h.presets[imageID]
	if !ok {
		return "", fmt.Errorf("bestseller: unknown image preset %q", imageID)
	}
	src := h.mediaBase + "/placeholder/small_image.jpg"
	if product.Image != "" {
		src = h.mediaBase + "/catalog/product/" + strings.TrimLeft(product.Image, "/")
	}
	return h.renderer.Render("partials/image", map[string]any{
		"src":      src,
		"alt":      product.Name,
		"width":    preset.Width,
		"height":   preset.Height,
		"class":    preset.Class,
		"image_id": imageID,
	})
}

// PathURLBuilder builds storefront URLs relative to a base URL.
type PathURLBuilder struct {
	BaseURL string
}

// AddToCartURL implements URLBuilder.
func (b PathURLBuilder) AddToCartURL(product *Product) string {
	return strings.TrimRight(b.BaseURL, "/") + "/checkout/cart/add/product/" + url.PathEscape(product.ID) + "/"
}

// ProductURL implements URLBuilder.
func (b PathURLBuilder) ProductURL(product *Product) string {
	slug := product.URLKey
	if slug == "" {
		return strings.TrimRight(b.BaseURL, "/") + "/catalog/product/view/id/" + url.PathEscape(product.ID) + "/"
	}
	return strings.TrimRight(b.BaseURL, "/") + "/" + url.PathEscape(slug) + ".html"
}

// JSONPostDataHelper encodes POST payloads as {"action": url, "data": {...}}.
type JSONPostDataHelper struct{}

// PostData implements PostDataHelper.
func (JSONPostDataHelper) PostData(action string, data map[string]string) (string, error) {
	payload := map[string]any{
		"action": action,
		"data":   data,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("bestseller: encode post data: %w", err)
	}
	return string(b), nil
}
