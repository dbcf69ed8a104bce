package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goliatone/go-bestseller/components/bestseller"
)

const fixtureYAML = `
products:
  - id: "1"
    sku: MUG
    name: Coffee Mug
    url_key: coffee-mug
    price: "9.99"
    final_price: "9.99"
    image: /m/mug.jpg
  - id: "2"
    sku: TEE
    name: Logo Tee
    type_id: configurable
    price: "25.00"
    final_price: "19.50"
sales:
  - product_id: "1"
    store_id: "1"
    qty: 3
  - product_id: "2"
    store_id: "1"
    qty: 7
`

func seedTestCatalog(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	fixtures := filepath.Join(dir, "fixtures.yaml")
	require.NoError(t, os.WriteFile(fixtures, []byte(fixtureYAML), 0o600))
	db := filepath.Join(dir, "catalog.db")

	var out bytes.Buffer
	cmd := &seedCmd{DB: db, Fixtures: fixtures}
	require.NoError(t, cmd.run(context.Background(), &out))
	assert.Contains(t, out.String(), "Seeded 2 products and 2 sales")
	return db
}

func newRenderCmd(db string) *renderCmd {
	return &renderCmd{
		DB:        db,
		Instance:  "cli-test",
		Count:     10,
		Title:     "Top sellers",
		StoreID:   "1",
		ThemeID:   "default",
		Group:     "0",
		Format:    "html",
		Currency:  "$",
		MediaBase: "/media",
		LogLevel:  "info",
	}
}

func TestRenderCommandHTML(t *testing.T) {
	db := seedTestCatalog(t)
	cmd := newRenderCmd(db)

	var out bytes.Buffer
	require.NoError(t, cmd.run(context.Background(), &out, zap.NewNop()))

	html := out.String()
	assert.Contains(t, html, "Top sellers")
	assert.Contains(t, html, "Logo Tee")
	assert.Contains(t, html, "Coffee Mug")
	assert.Less(t, strings.Index(html, "Logo Tee"), strings.Index(html, "Coffee Mug"))
	assert.Contains(t, html, "/media/catalog/product/m/mug.jpg")
}

func TestRenderCommandJSONWithDummyIDs(t *testing.T) {
	db := seedTestCatalog(t)
	cmd := newRenderCmd(db)
	cmd.Format = "json"
	cmd.DummyIDs = "1"

	var out bytes.Buffer
	require.NoError(t, cmd.run(context.Background(), &out, zap.NewNop()))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &payload))
	assert.Equal(t, true, payload["placeholder"])
	products, ok := payload["products"].([]any)
	require.True(t, ok)
	require.Len(t, products, 1)
	assert.Equal(t, "1", products[0].(map[string]any)["id"])
}

func TestRenderCommandRejectsInvalidCount(t *testing.T) {
	db := seedTestCatalog(t)
	cmd := newRenderCmd(db)
	cmd.Count = 0

	var out bytes.Buffer
	assert.Error(t, cmd.run(context.Background(), &out, zap.NewNop()))
}

func TestRenderCommandConfiguration(t *testing.T) {
	cmd := &renderCmd{Count: 4, Title: "T", Carousel: true, DummyIDs: "3,5"}
	config := cmd.configuration()

	assert.Equal(t, 4, config[bestseller.OptionProductsCount])
	assert.Equal(t, 1, config[bestseller.OptionUseCarousel])
	assert.Equal(t, 0, config[bestseller.OptionShowSalesChart])
	assert.Equal(t, "3,5", config[bestseller.OptionDummyProductsIDs])

	req := (&renderCmd{Param: map[string]string{"p": "2"}}).request(config)
	assert.True(t, strings.HasPrefix(req.Instance.ID, "cli-"))
	assert.Equal(t, "2", req.Params.Get("p"))
}

func TestScaffoldCommand(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "widgets.yaml")
	providerOut := filepath.Join(dir, "providers", "new_products_provider.go")
	cmd := &scaffoldCmd{
		Code:            "storefront.widget.new_products",
		Name:            "New Products",
		Description:     "Recently added products.",
		Category:        "catalog",
		Template:        "bestseller",
		ManifestPath:    manifest,
		ProviderPackage: "github.com/acme/widgets",
		ProviderOut:     providerOut,
	}

	var out bytes.Buffer
	require.NoError(t, cmd.run(&out))

	doc, err := bestseller.ReadManifest(manifest)
	require.NoError(t, err)
	require.Len(t, doc.Widgets, 1)
	assert.Equal(t, "github.com/acme/widgets.NewNewProductsProvider", doc.Widgets[0].Provider.Entry)

	stub, err := os.ReadFile(providerOut)
	require.NoError(t, err)
	assert.Contains(t, string(stub), "type NewProductsProvider struct{}")

	assert.Error(t, cmd.run(&out), "duplicate code without overwrite")
	cmd.Overwrite = true
	cmd.Name = "Fresh Arrivals"
	require.NoError(t, cmd.run(&out))
	doc, err = bestseller.ReadManifest(manifest)
	require.NoError(t, err)
	require.Len(t, doc.Widgets, 1)
	assert.Equal(t, "Fresh Arrivals", doc.Widgets[0].Definition.Name)
}

func TestScaffoldValidatesCode(t *testing.T) {
	cmd := &scaffoldCmd{Code: "nodots"}
	assert.Error(t, cmd.run(&bytes.Buffer{}))
	assert.Equal(t, "NewProducts", deriveBaseName("storefront.widget.new_products"))
	assert.Equal(t, "storefront_widget_new_products", sanitizeFileName("storefront.widget.new-products"))
}
