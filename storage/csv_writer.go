package storage

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"fashion-scraper/models"
)

// CSVWriter persists a product table as UTF-8, comma-delimited text with a
// header row and no index column.
type CSVWriter struct {
	dir string
}

// NewCSVWriter creates a writer targeting dir. The directory is created on first write.
func NewCSVWriter(dir string) *CSVWriter {
	return &CSVWriter{dir: dir}
}

// Write renders the table and stores it as dir/filename, returning the path.
func (c *CSVWriter) Write(t *models.Table, filename string) (string, error) {
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, t); err != nil {
		return "", err
	}
	return WriteFileAtomic(c.dir, filename, buf.Bytes())
}

// EncodeCSV writes the table columns in their stored order. Nulls become empty fields.
func EncodeCSV(w io.Writer, t *models.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Names()); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	record := make([]string, len(t.Columns))
	for i := 0; i < t.Len(); i++ {
		for j, cell := range t.Row(i) {
			record[j] = formatField(cell)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("csv: write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatField(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}
