package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"fashion-scraper/models"
	"fashion-scraper/utils"
)

var numericColumns = []string{models.ColPrice, models.ColRating, models.ColColors}

// SummaryService computes and renders the dataset summary.
type SummaryService struct {
	logger *utils.Logger
	now    func() time.Time
}

func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger, now: time.Now}
}

// Generate works on the table directly so that nulls (possible when
// validation is disabled) are skipped rather than rejected.
func (s *SummaryService) Generate(t *models.Table) *models.Summary {
	sum := &models.Summary{
		GeneratedAt:  s.now(),
		TotalRecords: t.Len(),
	}

	for _, c := range t.Columns {
		sum.ColumnTypes = append(sum.ColumnTypes, models.ColumnSpec{Name: c.Name, Kind: c.Kind})
	}

	for _, name := range numericColumns {
		c, ok := t.Column(name)
		if !ok {
			continue
		}
		values := numericValues(c)
		sum.Stats = append(sum.Stats, describe(name, values))

		switch name {
		case models.ColPrice:
			if len(values) > 0 {
				sum.MinPrice, sum.MaxPrice = minMax(values)
			}
		case models.ColRating:
			sum.AverageRating = mean(values)
		}
	}

	if c, ok := t.Column(models.ColGender); ok {
		sum.GenderCounts = valueCounts(c)
	}
	if c, ok := t.Column(models.ColSize); ok {
		sum.SizeCounts = valueCounts(c)
	}
	return sum
}

// Render formats the summary as the plain-text companion file.
func (s *SummaryService) Render(sum *models.Summary) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	b.WriteString("=== ETL Pipeline Summary ===\n")
	fmt.Fprintf(&b, "Execution Time: %s\n", sum.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total Records: %d\n\n", sum.TotalRecords)

	b.WriteString("Data Types:\n")
	for _, ct := range sum.ColumnTypes {
		fmt.Fprintf(&b, "%-8s %s\n", ct.Name, ct.Kind)
	}

	b.WriteString("\nStatistical Summary:\n")
	b.WriteString(renderStats(sum.Stats))
	b.WriteString("\n\nValue Counts:\n")
	fmt.Fprintf(&b, "Gender: %s\n", formatCounts(sum.GenderCounts))
	fmt.Fprintf(&b, "Size: %s\n\n", formatCounts(sum.SizeCounts))

	b.WriteString(p.Sprintf("Price Range: $%.2f - $%.2f IDR\n", sum.MinPrice, sum.MaxPrice))
	fmt.Fprintf(&b, "Average Rating: %.2f\n", sum.AverageRating)
	return b.String()
}

// Print writes the console report shown after a successful run.
func (s *SummaryService) Print(sum *models.Summary, sample *models.Table, csvPath string) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  FASHION STUDIO ETL PIPELINE COMPLETED\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Final dataset : \033[1m%d\033[0m records\n", sum.TotalRecords)
	fmt.Printf("  Output file   : %s\n", csvPath)
	fmt.Printf("  Average rating: \033[1;32m%.2f\033[0m\n", sum.AverageRating)
	fmt.Println()

	fmt.Printf("\033[1;33m  Sample data (first %d rows)\033[0m\n", sample.Len())
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	header := table.Row{}
	for _, name := range sample.Names() {
		header = append(header, name)
	}
	tw.AppendHeader(header)
	for i := 0; i < sample.Len(); i++ {
		row := table.Row{}
		for _, cell := range sample.Row(i) {
			row = append(row, truncate(formatCell(cell), 30))
		}
		tw.AppendRow(row)
	}
	fmt.Println(tw.Render())
	fmt.Println()

	fmt.Printf("\033[1;33m  Data types\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for _, ct := range sum.ColumnTypes {
		fmt.Printf("  %-8s %s\n", ct.Name, ct.Kind)
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func renderStats(stats []models.ColumnStats) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	header := table.Row{""}
	for _, st := range stats {
		header = append(header, st.Name)
	}
	tw.AppendHeader(header)

	rows := []struct {
		label string
		value func(models.ColumnStats) string
	}{
		{"count", func(st models.ColumnStats) string { return fmt.Sprintf("%d", st.Count) }},
		{"mean", func(st models.ColumnStats) string { return formatStat(st.Mean) }},
		{"std", func(st models.ColumnStats) string { return formatStat(st.Std) }},
		{"min", func(st models.ColumnStats) string { return formatStat(st.Min) }},
		{"25%", func(st models.ColumnStats) string { return formatStat(st.Q25) }},
		{"50%", func(st models.ColumnStats) string { return formatStat(st.Q50) }},
		{"75%", func(st models.ColumnStats) string { return formatStat(st.Q75) }},
		{"max", func(st models.ColumnStats) string { return formatStat(st.Max) }},
	}
	for _, r := range rows {
		row := table.Row{r.label}
		for _, st := range stats {
			row = append(row, r.value(st))
		}
		tw.AppendRow(row)
	}

	configs := make([]table.ColumnConfig, 0, len(stats))
	for i := range stats {
		configs = append(configs, table.ColumnConfig{Number: i + 2, Align: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func formatStat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return fmt.Sprintf("%.6f", f)
}

func formatCounts(counts []models.ValueCount) string {
	parts := make([]string, len(counts))
	for i, vc := range counts {
		parts[i] = fmt.Sprintf("%s: %d", vc.Value, vc.Count)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatCell(cell any) string {
	switch v := cell.(type) {
	case nil:
		return "<null>"
	case float64:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprint(v)
	}
}

func numericValues(c *models.Column) []float64 {
	out := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if f, ok := numeric(cell); ok {
			out = append(out, f)
		}
	}
	return out
}

// describe computes count, mean, sample standard deviation, extremes and
// linearly interpolated quartiles. Empty input yields NaN figures.
func describe(name string, values []float64) models.ColumnStats {
	st := models.ColumnStats{Name: name, Count: len(values)}
	if len(values) == 0 {
		nan := math.NaN()
		st.Mean, st.Std, st.Min, st.Q25, st.Q50, st.Q75, st.Max = nan, nan, nan, nan, nan, nan, nan
		return st
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	st.Mean = mean(sorted)
	st.Std = math.NaN()
	if len(sorted) > 1 {
		var ss float64
		for _, v := range sorted {
			d := v - st.Mean
			ss += d * d
		}
		st.Std = math.Sqrt(ss / float64(len(sorted)-1))
	}
	st.Min = sorted[0]
	st.Max = sorted[len(sorted)-1]
	st.Q25 = quantile(sorted, 0.25)
	st.Q50 = quantile(sorted, 0.50)
	st.Q75 = quantile(sorted, 0.75)
	return st
}

func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func minMax(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// valueCounts sorts by count descending, ties by first appearance.
func valueCounts(c *models.Column) []models.ValueCount {
	index := make(map[string]int)
	var out []models.ValueCount
	for _, cell := range c.Cells {
		if cell == nil {
			continue
		}
		v := fmt.Sprint(cell)
		if i, ok := index[v]; ok {
			out[i].Count++
			continue
		}
		index[v] = len(out)
		out = append(out, models.ValueCount{Value: v, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

func truncate(s string, max int) string {
	return runewidth.Truncate(s, max, "...")
}
