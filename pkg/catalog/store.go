package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-bestseller/components/bestseller"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// ErrProductNotFound is returned when the catalog has no product with the requested id.
var ErrProductNotFound = errors.New("catalog: product not found")

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id TEXT PRIMARY KEY,
	sku TEXT NOT NULL DEFAULT '',
	name TEXT NOT NULL DEFAULT '',
	url_key TEXT NOT NULL DEFAULT '',
	type_id TEXT NOT NULL DEFAULT 'simple',
	price TEXT NOT NULL DEFAULT '0',
	final_price TEXT NOT NULL DEFAULT '0',
	image TEXT NOT NULL DEFAULT '',
	required_options INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS sales (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	product_id TEXT NOT NULL,
	store_id TEXT NOT NULL DEFAULT '',
	qty REAL NOT NULL,
	ordered_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS sales_product_idx ON sales (product_id);
`

// Store is a SQLite-backed product catalog with a bestseller aggregate over recorded sales.
type Store struct {
	db *sql.DB
}

var (
	_ bestseller.ProductLoader    = (*Store)(nil)
	_ bestseller.BestsellerReport = (*Store)(nil)
)

// Open opens (or creates) the SQLite database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	store := New(db)
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// New wraps an existing database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the catalog tables.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("catalog: migrate: %w", err)
	}
	return nil
}

// UpsertProduct inserts or replaces a product.
func (s *Store) UpsertProduct(ctx context.Context, product bestseller.Product) error {
	if product.ID == "" {
		return errors.New("catalog: product id is required")
	}
	typeID := product.TypeID
	if typeID == "" {
		typeID = "simple"
	}
	const q = `INSERT INTO products (id, sku, name, url_key, type_id, price, final_price, image, required_options)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	sku = excluded.sku,
	name = excluded.name,
	url_key = excluded.url_key,
	type_id = excluded.type_id,
	price = excluded.price,
	final_price = excluded.final_price,
	image = excluded.image,
	required_options = excluded.required_options`
	_, err := s.db.ExecContext(ctx, q,
		product.ID,
		product.SKU,
		product.Name,
		product.URLKey,
		typeID,
		product.Price.String(),
		product.FinalPrice.String(),
		product.Image,
		boolToInt(product.RequiredOptions),
	)
	if err != nil {
		return fmt.Errorf("catalog: upsert product %s: %w", product.ID, err)
	}
	return nil
}

// Sale is a single ordered line counted by the bestseller aggregate.
type Sale struct {
	ProductID string
	StoreID   string
	Qty       float64
	OrderedAt time.Time
}

// RecordSale appends an ordered line.
func (s *Store) RecordSale(ctx context.Context, sale Sale) error {
	if sale.ProductID == "" {
		return errors.New("catalog: sale product id is required")
	}
	orderedAt := sale.OrderedAt
	if orderedAt.IsZero() {
		orderedAt = time.Now()
	}
	const q = `INSERT INTO sales (product_id, store_id, qty, ordered_at) VALUES (?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q, sale.ProductID, sale.StoreID, sale.Qty, orderedAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("catalog: record sale for %s: %w", sale.ProductID, err)
	}
	return nil
}

// Load implements bestseller.ProductLoader.
func (s *Store) Load(ctx context.Context, id string) (*bestseller.Product, error) {
	const q = `SELECT id, sku, name, url_key, type_id, price, final_price, image, required_options
FROM products WHERE id = ?`
	var (
		product    bestseller.Product
		price      string
		finalPrice string
		required   int
	)
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&product.ID,
		&product.SKU,
		&product.Name,
		&product.URLKey,
		&product.TypeID,
		&price,
		&finalPrice,
		&product.Image,
		&required,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: load product %s: %w", id, err)
	}
	if product.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("catalog: parse price of %s: %w", id, err)
	}
	if product.FinalPrice, err = decimal.NewFromString(finalPrice); err != nil {
		return nil, fmt.Errorf("catalog: parse final price of %s: %w", id, err)
	}
	product.RequiredOptions = required != 0
	return &product, nil
}

// Bestsellers implements bestseller.BestsellerReport, ranking products by ordered quantity.
// A non-positive limit returns every ranked product.
func (s *Store) Bestsellers(ctx context.Context, query bestseller.ReportQuery) ([]bestseller.ReportRow, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = -1
	}
	store := query.StoreID
	if store == bestseller.DefaultStoreID {
		store = ""
	}
	offset := 0
	if query.Limit > 0 && query.Page > 1 {
		offset = (query.Page - 1) * query.Limit
	}
	const q = `SELECT s.product_id, COALESCE(p.name, ''), COALESCE(p.price, '0'), SUM(s.qty) AS qty_ordered
FROM sales s
LEFT JOIN products p ON p.id = s.product_id
WHERE (? = '' OR s.store_id = ?)
GROUP BY s.product_id
ORDER BY qty_ordered DESC, s.product_id ASC
LIMIT ? OFFSET ?`
	rows, err := s.db.QueryContext(ctx, q, store, store, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("catalog: query bestsellers: %w", err)
	}
	defer rows.Close()

	out := []bestseller.ReportRow{}
	for rows.Next() {
		var (
			row   bestseller.ReportRow
			price string
		)
		if err := rows.Scan(&row.ProductID, &row.ProductName, &price, &row.QtyOrdered); err != nil {
			return nil, fmt.Errorf("catalog: scan bestseller row: %w", err)
		}
		if row.ProductPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("catalog: parse price of %s: %w", row.ProductID, err)
		}
		row.RatingPos = offset + len(out) + 1
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: iterate bestsellers: %w", err)
	}
	return out, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
