package bestseller

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

var errProductNotFound = errors.New("product not found")

type fakeLoader struct {
	products map[string]*Product
	calls    []string
	failOn   string
}

func newFakeLoader(ids ...string) *fakeLoader {
	loader := &fakeLoader{products: map[string]*Product{}}
	for _, id := range ids {
		loader.products[id] = &Product{
			ID:         id,
			SKU:        "SKU-" + id,
			Name:       "Product " + id,
			URLKey:     "product-" + id,
			TypeID:     "simple",
			Price:      decimal.RequireFromString("19.99"),
			FinalPrice: decimal.RequireFromString("19.99"),
			Image:      "/p/" + id + ".jpg",
		}
	}
	return loader
}

func (f *fakeLoader) Load(_ context.Context, id string) (*Product, error) {
	f.calls = append(f.calls, id)
	if id == f.failOn {
		return nil, errProductNotFound
	}
	product, ok := f.products[id]
	if !ok {
		return nil, errProductNotFound
	}
	return product, nil
}

type fakeReport struct {
	rows    []ReportRow
	calls   int
	queries []ReportQuery
	err     error
}

func newFakeReport(ids ...string) *fakeReport {
	report := &fakeReport{}
	for i, id := range ids {
		report.rows = append(report.rows, ReportRow{
			ProductID:   id,
			ProductName: "Product " + id,
			QtyOrdered:  float64(100 - i),
			RatingPos:   i + 1,
		})
	}
	return report
}

func (f *fakeReport) Bestsellers(_ context.Context, query ReportQuery) ([]ReportRow, error) {
	f.calls++
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	rows := f.rows
	if query.Limit > 0 && len(rows) > query.Limit {
		rows = rows[:query.Limit]
	}
	return rows, nil
}

type fakeImages struct{}

func (fakeImages) ImageHTML(_ context.Context, product *Product, imageID string) (string, error) {
	return fmt.Sprintf("<img src=%q data-preset=%q>", product.Image, imageID), nil
}

type fakeBlock struct {
	name string
}

func (b fakeBlock) Image(_ context.Context, product *Product, imageID string) (string, error) {
	return b.name + ":" + product.ID + ":" + imageID, nil
}

func (b fakeBlock) AddToCartURL(product *Product) string {
	return "/" + b.name + "/cart/" + product.ID
}

type recordingPriceRenderer struct {
	calls []PriceArguments
}

func (r *recordingPriceRenderer) Render(_ context.Context, priceCode string, product *Product, args PriceArguments) (string, error) {
	r.calls = append(r.calls, args)
	return priceCode + ":" + product.ID, nil
}

type stubRenderer struct {
	calls int
	last  any
}

func (s *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	s.calls++
	s.last = data
	html := "<" + name + ">"
	if len(out) > 0 && out[0] != nil {
		_, _ = out[0].Write([]byte(html))
	}
	return html, nil
}

type collectingTelemetry struct {
	events []string
}

func (c *collectingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	c.events = append(c.events, event)
}

func newTestWidget(config map[string]any, loader ProductLoader, report BestsellerReport) *Widget {
	w := NewWidget(WidgetOptions{
		Loader: loader,
		Report: report,
		Images: fakeImages{},
		URLs:   PathURLBuilder{BaseURL: "https://shop.test"},
		Viewer: ViewerContext{StoreID: "1", ThemeID: "4", CustomerGroup: "0"},
	})
	w.BeforeRender(config)
	return w
}
