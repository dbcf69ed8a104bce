package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-bestseller/components/bestseller"
	"github.com/goliatone/go-bestseller/pkg/catalog"
)

type seedCmd struct {
	DB       string `required:"" env:"WIDGETCTL_DB" help:"Path to the SQLite catalog database."`
	Fixtures string `required:"" type:"existingfile" help:"YAML file listing products and sales."`
}

type fixtureFile struct {
	Products []fixtureProduct `yaml:"products"`
	Sales    []fixtureSale    `yaml:"sales"`
}

type fixtureProduct struct {
	ID              string `yaml:"id"`
	SKU             string `yaml:"sku"`
	Name            string `yaml:"name"`
	URLKey          string `yaml:"url_key"`
	TypeID          string `yaml:"type_id"`
	Price           string `yaml:"price"`
	FinalPrice      string `yaml:"final_price"`
	Image           string `yaml:"image"`
	RequiredOptions bool   `yaml:"required_options"`
}

type fixtureSale struct {
	ProductID string    `yaml:"product_id"`
	StoreID   string    `yaml:"store_id"`
	Qty       float64   `yaml:"qty"`
	OrderedAt time.Time `yaml:"ordered_at"`
}

func (cmd *seedCmd) Run(ctx context.Context) error {
	return cmd.run(ctx, os.Stdout)
}

func (cmd *seedCmd) run(ctx context.Context, out io.Writer) error {
	data, err := os.ReadFile(cmd.Fixtures)
	if err != nil {
		return fmt.Errorf("widgetctl: read fixtures: %w", err)
	}
	var fixtures fixtureFile
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("widgetctl: parse fixtures: %w", err)
	}
	store, err := catalog.Open(ctx, cmd.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, fixture := range fixtures.Products {
		product, err := fixture.toProduct()
		if err != nil {
			return err
		}
		if err := store.UpsertProduct(ctx, product); err != nil {
			return err
		}
	}
	for _, sale := range fixtures.Sales {
		if err := store.RecordSale(ctx, catalog.Sale{
			ProductID: sale.ProductID,
			StoreID:   sale.StoreID,
			Qty:       sale.Qty,
			OrderedAt: sale.OrderedAt,
		}); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "✓ Seeded %d products and %d sales into %s\n", len(fixtures.Products), len(fixtures.Sales), cmd.DB)
	return nil
}

func (p fixtureProduct) toProduct() (bestseller.Product, error) {
	price, err := parseAmount(p.Price)
	if err != nil {
		return bestseller.Product{}, fmt.Errorf("widgetctl: product %s price: %w", p.ID, err)
	}
	finalPrice, err := parseAmount(p.FinalPrice)
	if err != nil {
		return bestseller.Product{}, fmt.Errorf("widgetctl: product %s final price: %w", p.ID, err)
	}
	return bestseller.Product{
		ID:              p.ID,
		SKU:             p.SKU,
		Name:            p.Name,
		URLKey:          p.URLKey,
		TypeID:          p.TypeID,
		Price:           price,
		FinalPrice:      finalPrice,
		Image:           p.Image,
		RequiredOptions: p.RequiredOptions,
	}, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}
