package services

import (
	"strings"

	"fashion-scraper/models"
	"fashion-scraper/utils"
)

// TransformStats counts what happened to the raw records.
type TransformStats struct {
	Input      int
	Invalid    int
	Duplicates int
	Output     int
}

// Transformer turns raw records into a clean product table.
type Transformer struct {
	normalizer *Normalizer
	logger     *utils.Logger
}

// NewTransformer creates a Transformer with the given normalizer and logger.
func NewTransformer(normalizer *Normalizer, logger *utils.Logger) *Transformer {
	return &Transformer{normalizer: normalizer, logger: logger}
}

// Transform keeps only records whose six fields all parse, then drops exact
// duplicates keeping the first occurrence. Relative order is preserved.
func (t *Transformer) Transform(raw []models.RawProduct) (*models.Table, TransformStats) {
	stats := TransformStats{Input: len(raw)}
	seen := utils.NewSet[models.Product]()
	products := make([]models.Product, 0, len(raw))

	for i, r := range raw {
		p, invalid := t.normalizer.Normalize(r)
		if len(invalid) > 0 {
			stats.Invalid++
			t.logger.Debug("[transformer] Dropping record %d (%q): unparseable %s",
				i, r.Title, strings.Join(invalid, ", "))
			continue
		}
		if !seen.Add(p) {
			stats.Duplicates++
			t.logger.Debug("[transformer] Duplicate skipped: %s", p.Title)
			continue
		}
		products = append(products, p)
	}

	stats.Output = len(products)
	t.logger.Info("[transformer] Transformed %d → %d products (invalid %d, duplicates %d)",
		stats.Input, stats.Output, stats.Invalid, stats.Duplicates)
	return models.NewProductTable(products), stats
}
