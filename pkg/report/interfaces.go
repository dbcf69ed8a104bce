package report

import (
	"context"

	"github.com/goliatone/go-bestseller/components/bestseller"
)

// BestsellerClient fetches the aggregated bestseller report from an upstream sales service.
type BestsellerClient interface {
	FetchBestsellers(ctx context.Context, query bestseller.ReportQuery) ([]bestseller.ReportRow, error)
}

// ProductClient fetches catalog products from an upstream catalog service.
type ProductClient interface {
	FetchProduct(ctx context.Context, id string) (*bestseller.Product, error)
}

// Client is a convenience union for services that implement both calls.
type Client interface {
	BestsellerClient
	ProductClient
}
