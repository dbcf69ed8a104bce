package report

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-bestseller/components/bestseller"
)

// MockData seeds deterministic report responses for tests or local demos.
type MockData struct {
	Products    []bestseller.Product
	Bestsellers []bestseller.ReportRow
}

// MockClient implements Client using in-memory fixtures.
type MockClient struct {
	mu       sync.RWMutex
	products map[string]bestseller.Product
	rows     []bestseller.ReportRow
}

// NewMockClient builds a mock client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	products := make(map[string]bestseller.Product, len(data.Products))
	for _, product := range data.Products {
		products[product.ID] = product
	}
	return &MockClient{
		products: products,
		rows:     append([]bestseller.ReportRow(nil), data.Bestsellers...),
	}
}

// FetchBestsellers returns the configured rows for the requested page.
func (c *MockClient) FetchBestsellers(_ context.Context, query bestseller.ReportQuery) ([]bestseller.ReportRow, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rows := c.rows
	if query.Limit > 0 {
		page := query.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * query.Limit
		if start >= len(rows) {
			return []bestseller.ReportRow{}, nil
		}
		end := start + query.Limit
		if end > len(rows) {
			end = len(rows)
		}
		rows = rows[start:end]
	}
	return append([]bestseller.ReportRow(nil), rows...), nil
}

// FetchProduct returns a copy of the configured product.
func (c *MockClient) FetchProduct(_ context.Context, id string) (*bestseller.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	product, ok := c.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	return &product, nil
}
