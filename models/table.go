package models

import "fmt"

// Kind is the declared type of a table column.
type Kind int

const (
	KindText Kind = iota
	KindFloat
	KindInt
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "string"
	case KindFloat:
		return "float64"
	case KindInt:
		return "int64"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Column names of the product table, in file order.
const (
	ColTitle  = "Title"
	ColPrice  = "Price"
	ColRating = "Rating"
	ColColors = "Colors"
	ColSize   = "Size"
	ColGender = "Gender"
)

// ColumnSpec names a column and its expected kind.
type ColumnSpec struct {
	Name string
	Kind Kind
}

// ProductSchema is the required column layout of a product table.
var ProductSchema = []ColumnSpec{
	{ColTitle, KindText},
	{ColPrice, KindFloat},
	{ColRating, KindFloat},
	{ColColors, KindInt},
	{ColSize, KindText},
	{ColGender, KindText},
}

// Column is one named, typed column. A nil cell is a null.
// Non-nil cells are string, float64 or int64.
type Column struct {
	Name  string
	Kind  Kind
	Cells []any
}

// NullCount returns the number of nil cells.
func (c *Column) NullCount() int {
	n := 0
	for _, v := range c.Cells {
		if v == nil {
			n++
		}
	}
	return n
}

// Table is a columnar container. All columns are expected to have the same length.
type Table struct {
	Columns []*Column
}

// NewProductTable lays products out in ProductSchema order.
func NewProductTable(products []Product) *Table {
	cols := make([]*Column, len(ProductSchema))
	for i, cs := range ProductSchema {
		cols[i] = &Column{Name: cs.Name, Kind: cs.Kind, Cells: make([]any, 0, len(products))}
	}
	for _, p := range products {
		cols[0].Cells = append(cols[0].Cells, p.Title)
		cols[1].Cells = append(cols[1].Cells, p.Price)
		cols[2].Cells = append(cols[2].Cells, p.Rating)
		cols[3].Cells = append(cols[3].Cells, p.Colors)
		cols[4].Cells = append(cols[4].Cells, p.Size)
		cols[5].Cells = append(cols[5].Cells, p.Gender)
	}
	return &Table{Columns: cols}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil || len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// Column looks a column up by name.
func (t *Table) Column(name string) (*Column, bool) {
	if t == nil {
		return nil, false
	}
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Row returns the cells of row i across all columns.
func (t *Table) Row(i int) []any {
	row := make([]any, len(t.Columns))
	for j, c := range t.Columns {
		if i < len(c.Cells) {
			row[j] = c.Cells[i]
		}
	}
	return row
}

// Head returns a table holding at most the first n rows.
func (t *Table) Head(n int) *Table {
	if n > t.Len() {
		n = t.Len()
	}
	out := &Table{Columns: make([]*Column, len(t.Columns))}
	for i, c := range t.Columns {
		out.Columns[i] = &Column{Name: c.Name, Kind: c.Kind, Cells: c.Cells[:n]}
	}
	return out
}

// Products converts the table back into typed rows. It fails on missing
// product columns, ragged columns, nulls or cells of the wrong type.
func (t *Table) Products() ([]Product, error) {
	cols := make([]*Column, len(ProductSchema))
	for i, cs := range ProductSchema {
		c, ok := t.Column(cs.Name)
		if !ok {
			return nil, fmt.Errorf("table: missing column %q", cs.Name)
		}
		cols[i] = c
	}

	n := t.Len()
	for _, c := range cols {
		if len(c.Cells) != n {
			return nil, fmt.Errorf("table: column %q has %d cells, want %d", c.Name, len(c.Cells), n)
		}
	}

	out := make([]Product, n)
	for i := range out {
		var ok [6]bool
		out[i].Title, ok[0] = cols[0].Cells[i].(string)
		out[i].Price, ok[1] = cols[1].Cells[i].(float64)
		out[i].Rating, ok[2] = cols[2].Cells[i].(float64)
		out[i].Colors, ok[3] = cols[3].Cells[i].(int64)
		out[i].Size, ok[4] = cols[4].Cells[i].(string)
		out[i].Gender, ok[5] = cols[5].Cells[i].(string)
		for j, good := range ok {
			if !good {
				return nil, fmt.Errorf("table: row %d column %q: unexpected cell %v", i, cols[j].Name, cols[j].Cells[i])
			}
		}
	}
	return out, nil
}
