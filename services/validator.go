package services

import (
	"fmt"
	"strings"

	"fashion-scraper/models"
	"fashion-scraper/utils"
)

// Validator gates a product table before it is written out.
type Validator struct {
	logger *utils.Logger
}

// NewValidator creates a Validator with the given logger.
func NewValidator(logger *utils.Logger) *Validator {
	return &Validator{logger: logger}
}

// Validate runs the checks in order and stops at the first failing gate.
// The column type check is advisory: mismatches are reported, never fatal.
func (v *Validator) Validate(t *models.Table) *models.ValidationReport {
	r := &models.ValidationReport{Rows: t.Len()}
	v.logger.Info("[validator] Validating table: %d rows × %d columns", t.Len(), columnCount(t))

	steps := []func(*models.Table, *models.ValidationReport) models.CheckResult{
		checkNotEmpty,
		checkColumns,
		checkTypes,
		checkNulls,
		checkDuplicates,
		checkPrice,
		checkRating,
	}
	for _, step := range steps {
		c := step(t, r)
		r.Checks = append(r.Checks, c)
		v.logCheck(c)
		if !c.Passed && !c.Advisory {
			v.logger.Error("[validator] Validation failed at %s", c.Name)
			return r
		}
	}

	r.Valid = true
	v.logger.Info("[validator] Data validation passed")
	return r
}

func (v *Validator) logCheck(c models.CheckResult) {
	switch {
	case c.Passed:
		v.logger.Info("[validator] %-16s ok   %s", c.Name, c.Detail)
	case c.Advisory:
		v.logger.Warn("[validator] %-16s warn %s", c.Name, c.Detail)
	default:
		v.logger.Error("[validator] %-16s FAIL %s", c.Name, c.Detail)
	}
}

func checkNotEmpty(t *models.Table, _ *models.ValidationReport) models.CheckResult {
	if t.Empty() {
		return models.CheckResult{Name: models.CheckNotEmpty, Detail: "table is empty"}
	}
	return models.CheckResult{Name: models.CheckNotEmpty, Passed: true, Detail: fmt.Sprintf("%d rows", t.Len())}
}

func checkColumns(t *models.Table, r *models.ValidationReport) models.CheckResult {
	for _, cs := range models.ProductSchema {
		if _, ok := t.Column(cs.Name); !ok {
			r.MissingColumns = append(r.MissingColumns, cs.Name)
		}
	}
	if len(r.MissingColumns) > 0 {
		return models.CheckResult{
			Name:   models.CheckColumns,
			Detail: "missing columns: " + strings.Join(r.MissingColumns, ", "),
		}
	}
	return models.CheckResult{Name: models.CheckColumns, Passed: true, Detail: "all required columns present"}
}

func checkTypes(t *models.Table, r *models.ValidationReport) models.CheckResult {
	r.TypeMismatches = make(map[string]string)
	var parts []string
	for _, cs := range models.ProductSchema {
		c, _ := t.Column(cs.Name)
		got := columnKind(c)
		if got != cs.Kind.String() {
			r.TypeMismatches[cs.Name] = got
			parts = append(parts, fmt.Sprintf("%s: expected %s, got %s", cs.Name, cs.Kind, got))
		}
	}
	if len(parts) > 0 {
		return models.CheckResult{Name: models.CheckTypes, Advisory: true, Detail: strings.Join(parts, "; ")}
	}
	return models.CheckResult{Name: models.CheckTypes, Passed: true, Detail: "all column types match"}
}

// columnKind reports the declared kind, or "mixed" when a cell disagrees with it.
func columnKind(c *models.Column) string {
	for _, cell := range c.Cells {
		if cell == nil {
			continue
		}
		if !cellMatches(c.Kind, cell) {
			return "mixed"
		}
	}
	return c.Kind.String()
}

func cellMatches(k models.Kind, cell any) bool {
	switch cell.(type) {
	case string:
		return k == models.KindText
	case float64:
		return k == models.KindFloat
	case int64:
		return k == models.KindInt
	default:
		return false
	}
}

func checkNulls(t *models.Table, r *models.ValidationReport) models.CheckResult {
	r.NullCounts = make(map[string]int)
	var parts []string
	for _, c := range t.Columns {
		if n := c.NullCount(); n > 0 {
			r.NullCounts[c.Name] = n
			parts = append(parts, fmt.Sprintf("%s: %d nulls", c.Name, n))
		}
	}
	if len(parts) > 0 {
		return models.CheckResult{Name: models.CheckNulls, Detail: strings.Join(parts, ", ")}
	}
	return models.CheckResult{Name: models.CheckNulls, Passed: true, Detail: "no null values found"}
}

func checkDuplicates(t *models.Table, r *models.ValidationReport) models.CheckResult {
	seen := utils.NewSet[string]()
	for i := 0; i < t.Len(); i++ {
		if !seen.Add(rowKey(t.Row(i))) {
			r.DuplicateRows++
		}
	}
	if r.DuplicateRows > 0 {
		return models.CheckResult{Name: models.CheckDuplicates, Detail: fmt.Sprintf("found %d duplicate rows", r.DuplicateRows)}
	}
	return models.CheckResult{Name: models.CheckDuplicates, Passed: true, Detail: "no duplicate rows found"}
}

// rowKey encodes a row with its cell types so "1" and 1 never collide.
func rowKey(row []any) string {
	var b strings.Builder
	for _, cell := range row {
		fmt.Fprintf(&b, "%T:%v\x1f", cell, cell)
	}
	return b.String()
}

func checkPrice(t *models.Table, _ *models.ValidationReport) models.CheckResult {
	c, _ := t.Column(models.ColPrice)
	bad := 0
	for _, cell := range c.Cells {
		f, ok := numeric(cell)
		if !ok || f <= 0 {
			bad++
		}
	}
	if bad > 0 {
		return models.CheckResult{Name: models.CheckPrice, Detail: fmt.Sprintf("found %d non-positive price values", bad)}
	}
	return models.CheckResult{Name: models.CheckPrice, Passed: true, Detail: "all price values are positive"}
}

func checkRating(t *models.Table, _ *models.ValidationReport) models.CheckResult {
	c, _ := t.Column(models.ColRating)
	bad := 0
	for _, cell := range c.Cells {
		f, ok := numeric(cell)
		if !ok || f < 0 || f > 5 {
			bad++
		}
	}
	if bad > 0 {
		return models.CheckResult{Name: models.CheckRating, Detail: fmt.Sprintf("found %d rating values outside 0-5", bad)}
	}
	return models.CheckResult{Name: models.CheckRating, Passed: true, Detail: "all rating values are in range 0-5"}
}

func numeric(cell any) (float64, bool) {
	switch v := cell.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func columnCount(t *models.Table) int {
	if t == nil {
		return 0
	}
	return len(t.Columns)
}
