package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"fashion-scraper/models"
)

// PostgresWriter mirrors validated products into PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 5; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			id         SERIAL PRIMARY KEY,
			title      TEXT             NOT NULL,
			price      DOUBLE PRECISION NOT NULL CHECK (price > 0),
			rating     DOUBLE PRECISION NOT NULL CHECK (rating BETWEEN 0 AND 5),
			colors     BIGINT           NOT NULL,
			size       VARCHAR(8)       NOT NULL,
			gender     VARCHAR(32)      NOT NULL,
			created_at TIMESTAMPTZ      NOT NULL DEFAULT NOW(),
			UNIQUE (title, price, rating, colors, size, gender)
		);

		CREATE INDEX IF NOT EXISTS idx_products_price  ON products(price);
		CREATE INDEX IF NOT EXISTS idx_products_gender ON products(gender);
	`)
	return err
}

// Write replaces the stored products with the given batch in one transaction.
func (pw *PostgresWriter) Write(products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	tx, err := pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM products"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(products); i += batchSize {
		end := i + batchSize
		if end > len(products) {
			end = len(products)
		}
		if err := insertBatch(tx, products[i:end]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertBatch(tx *sql.Tx, batch []models.Product) error {
	const cols = 6
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, p := range batch {
		base := idx * cols
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6))
		valueArgs = append(valueArgs, p.Title, p.Price, p.Rating, p.Colors, p.Size, p.Gender)
	}

	query := fmt.Sprintf(`
		INSERT INTO products (title, price, rating, colors, size, gender)
		VALUES %s
		ON CONFLICT DO NOTHING
	`, strings.Join(valueStrings, ","))

	if _, err := tx.Exec(query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert batch: %w", err)
	}
	return nil
}

// FetchAll retrieves all stored products in insertion order.
func (pw *PostgresWriter) FetchAll() ([]models.Product, error) {
	rows, err := pw.db.Query(`
		SELECT title, price, rating, colors, size, gender
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.Title, &p.Price, &p.Rating, &p.Colors, &p.Size, &p.Gender); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
