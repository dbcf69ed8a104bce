package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-bestseller/components/bestseller"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when the remote service has no such resource.
var ErrNotFound = errors.New("report: resource not found")

// HTTPConfig configures the HTTP report client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient talks to remote catalog and sales report services via REST endpoints.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client for live report APIs.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("report: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// FetchBestsellers implements BestsellerClient via the bestseller report endpoint.
func (c *HTTPClient) FetchBestsellers(ctx context.Context, query bestseller.ReportQuery) ([]bestseller.ReportRow, error) {
	req := bestsellerRequest{
		Limit:   query.Limit,
		Page:    query.Page,
		StoreID: query.StoreID,
	}
	var resp bestsellerResponse
	if err := c.do(ctx, http.MethodPost, "/reports/bestsellers/query", req, &resp); err != nil {
		return nil, err
	}
	return resp.toRows(), nil
}

// FetchProduct implements ProductClient via the product endpoint.
func (c *HTTPClient) FetchProduct(ctx context.Context, id string) (*bestseller.Product, error) {
	var resp productResponse
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.toProduct(), nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("report: encode payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("report: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("report: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("report: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("report: decode response: %w", err)
	}
	return nil
}

type bestsellerRequest struct {
	Limit   int    `json:"limit"`
	Page    int    `json:"page"`
	StoreID string `json:"store_id,omitempty"`
}

type bestsellerItem struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	QtyOrdered   float64         `json:"qty_ordered"`
	RatingPos    int             `json:"rating_pos"`
}

type bestsellerResponse struct {
	Items []bestsellerItem `json:"items"`
}

func (r bestsellerResponse) toRows() []bestseller.ReportRow {
	rows := make([]bestseller.ReportRow, len(r.Items))
	for i, item := range r.Items {
		pos := item.RatingPos
		if pos == 0 {
			pos = i + 1
		}
		rows[i] = bestseller.ReportRow{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductPrice: item.ProductPrice,
			QtyOrdered:   item.QtyOrdered,
			RatingPos:    pos,
		}
	}
	return rows
}

type productResponse struct {
	ID              string          `json:"id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	URLKey          string          `json:"url_key"`
	TypeID          string          `json:"type_id"`
	Price           decimal.Decimal `json:"price"`
	FinalPrice      decimal.Decimal `json:"final_price"`
	Image           string          `json:"image"`
	RequiredOptions bool            `json:"required_options"`
}

func (r productResponse) toProduct() *bestseller.Product {
	return &bestseller.Product{
		ID:              r.ID,
		SKU:             r.SKU,
		Name:            r.Name,
		URLKey:          r.URLKey,
		TypeID:          r.TypeID,
		Price:           r.Price,
		FinalPrice:      r.FinalPrice,
		Image:           r.Image,
		RequiredOptions: r.RequiredOptions,
	}
}
