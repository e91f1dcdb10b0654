package models

import "time"

// Check names, in evaluation order.
const (
	CheckNotEmpty   = "not_empty"
	CheckColumns    = "required_columns"
	CheckTypes      = "column_types"
	CheckNulls      = "no_nulls"
	CheckDuplicates = "no_duplicates"
	CheckPrice      = "positive_price"
	CheckRating     = "rating_range"
)

// CheckResult is the outcome of one validation check.
// Advisory checks are reported but never fail validation.
type CheckResult struct {
	Name     string
	Passed   bool
	Advisory bool
	Detail   string
}

// ValidationReport is computed fresh for every load and never persisted.
type ValidationReport struct {
	Valid          bool
	Rows           int
	Checks         []CheckResult
	MissingColumns []string
	TypeMismatches map[string]string
	NullCounts     map[string]int
	DuplicateRows  int
}

// Failed returns the first failing gate check, if any.
func (r *ValidationReport) Failed() (CheckResult, bool) {
	for _, c := range r.Checks {
		if !c.Passed && !c.Advisory {
			return c, true
		}
	}
	return CheckResult{}, false
}

// ColumnStats are the descriptive statistics of one numeric column.
type ColumnStats struct {
	Name  string
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// ValueCount is the frequency of one category value.
type ValueCount struct {
	Value string
	Count int
}

// Summary holds the figures written to the companion summary file.
type Summary struct {
	GeneratedAt   time.Time
	TotalRecords  int
	ColumnTypes   []ColumnSpec
	Stats         []ColumnStats
	GenderCounts  []ValueCount
	SizeCounts    []ValueCount
	MinPrice      float64
	MaxPrice      float64
	AverageRating float64
}
