package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"fashion-scraper/models"
)

// ReadCSV loads a table written by CSVWriter. Product columns are coerced to
// their schema kind; other columns stay text. Empty fields become nulls.
func ReadCSV(path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()
	return DecodeCSV(f)
}

// DecodeCSV is ReadCSV over an arbitrary reader.
func DecodeCSV(r io.Reader) (*models.Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	kinds := make(map[string]models.Kind, len(models.ProductSchema))
	for _, cs := range models.ProductSchema {
		kinds[cs.Name] = cs.Kind
	}

	t := &models.Table{Columns: make([]*models.Column, len(header))}
	for i, name := range header {
		kind, ok := kinds[name]
		if !ok {
			kind = models.KindText
		}
		t.Columns[i] = &models.Column{Name: name, Kind: kind}
	}

	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read line %d: %w", line, err)
		}
		for i, c := range t.Columns {
			cell, err := parseField(c.Kind, record[i])
			if err != nil {
				return nil, fmt.Errorf("csv: line %d column %q: %w", line, c.Name, err)
			}
			c.Cells = append(c.Cells, cell)
		}
	}
	return t, nil
}

func parseField(kind models.Kind, s string) (any, error) {
	if s == "" {
		return nil, nil
	}
	switch kind {
	case models.KindFloat:
		return strconv.ParseFloat(s, 64)
	case models.KindInt:
		return strconv.ParseInt(s, 10, 64)
	default:
		return s, nil
	}
}
