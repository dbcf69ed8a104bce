package report

import (
	"context"

	"github.com/goliatone/go-bestseller/components/bestseller"
)

// NewBestsellerReport adapts a report client into the widget's report collaborator.
func NewBestsellerReport(client BestsellerClient) bestseller.BestsellerReport {
	return &bestsellerReport{client: client}
}

type bestsellerReport struct {
	client BestsellerClient
}

func (r *bestsellerReport) Bestsellers(ctx context.Context, query bestseller.ReportQuery) ([]bestseller.ReportRow, error) {
	return r.client.FetchBestsellers(ctx, query)
}

// NewProductLoader adapts a catalog client into the widget's product loader.
func NewProductLoader(client ProductClient) bestseller.ProductLoader {
	return &productLoader{client: client}
}

type productLoader struct {
	client ProductClient
}

func (l *productLoader) Load(ctx context.Context, id string) (*bestseller.Product, error) {
	return l.client.FetchProduct(ctx, id)
}
