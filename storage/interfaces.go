package storage

import "fashion-scraper/models"

// TableWriter is the interface for file-based table persistence.
type TableWriter interface {
	Write(t *models.Table, filename string) (string, error)
}

// ProductWriter is the interface any database backend must satisfy.
type ProductWriter interface {
	Write(products []models.Product) error
	FetchAll() ([]models.Product, error)
	Close() error
}
