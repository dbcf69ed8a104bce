package report

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-bestseller/components/bestseller"
)

func TestAdaptersDelegateToClient(t *testing.T) {
	mock := NewMockClient(MockData{
		Products: []bestseller.Product{{ID: "1", Name: "Mug"}, {ID: "2", Name: "Tee"}},
		Bestsellers: []bestseller.ReportRow{
			{ProductID: "2", QtyOrdered: 9, RatingPos: 1},
			{ProductID: "1", QtyOrdered: 4, RatingPos: 2},
		},
	})

	report := NewBestsellerReport(mock)
	rows, err := report.Bestsellers(context.Background(), bestseller.ReportQuery{Limit: 1, Page: 1})
	if err != nil || len(rows) != 1 || rows[0].ProductID != "2" {
		t.Fatalf("report returned %v, %v", rows, err)
	}
	rows, err = report.Bestsellers(context.Background(), bestseller.ReportQuery{Limit: 1, Page: 2})
	if err != nil || len(rows) != 1 || rows[0].ProductID != "1" {
		t.Fatalf("second page returned %v, %v", rows, err)
	}

	loader := NewProductLoader(mock)
	product, err := loader.Load(context.Background(), "1")
	if err != nil || product.Name != "Mug" {
		t.Fatalf("loader returned %v, %v", product, err)
	}
	if _, err := loader.Load(context.Background(), "9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMockClientFeedsWidget(t *testing.T) {
	mock := NewMockClient(MockData{
		Products:    []bestseller.Product{{ID: "5", Name: "Lamp"}},
		Bestsellers: []bestseller.ReportRow{{ProductID: "5", QtyOrdered: 3}},
	})
	w := bestseller.NewWidget(bestseller.WidgetOptions{
		Loader: NewProductLoader(mock),
		Report: NewBestsellerReport(mock),
	})
	w.BeforeRender(map[string]any{bestseller.OptionProductsCount: 2})

	products, err := w.Products(context.Background())
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if len(products) != 1 || products[0].ID() != "5" {
		t.Fatalf("unexpected products %v", products)
	}
}
