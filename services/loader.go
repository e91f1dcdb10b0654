package services

import (
	"errors"
	"fmt"
	"os"

	"fashion-scraper/models"
	"fashion-scraper/storage"
	"fashion-scraper/utils"
)

// ErrValidationFailed is returned by Persist when the table fails validation.
var ErrValidationFailed = errors.New("data validation failed")

// ValidationError carries the report of a rejected table.
type ValidationError struct {
	Report *models.ValidationReport
}

func (e *ValidationError) Error() string {
	if c, ok := e.Report.Failed(); ok {
		return fmt.Sprintf("%v: %s (%s)", ErrValidationFailed, c.Name, c.Detail)
	}
	return ErrValidationFailed.Error()
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

// LoaderOptions configures where and how tables are persisted.
type LoaderOptions struct {
	OutputDir       string
	SummaryFilename string
	Validate        bool
}

// Loader validates a table and writes it with its summary.
type Loader struct {
	opts      LoaderOptions
	csv       storage.TableWriter
	validator *Validator
	summary   *SummaryService
	logger    *utils.Logger
}

func NewLoader(opts LoaderOptions, validator *Validator, summary *SummaryService, logger *utils.Logger) *Loader {
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if opts.SummaryFilename == "" {
		opts.SummaryFilename = "summary.txt"
	}
	return &Loader{
		opts:      opts,
		csv:       storage.NewCSVWriter(opts.OutputDir),
		validator: validator,
		summary:   summary,
		logger:    logger,
	}
}

// Persist writes the table to OutputDir/filename and the summary beside it.
// When validation is enabled and fails, nothing is written. A failed summary
// write removes the CSV again.
func (l *Loader) Persist(t *models.Table, filename string) (string, *models.Summary, error) {
	if l.opts.Validate {
		if report := l.validator.Validate(t); !report.Valid {
			return "", nil, &ValidationError{Report: report}
		}
	}

	sum := l.summary.Generate(t)
	rendered := l.summary.Render(sum)

	csvPath, err := l.csv.Write(t, filename)
	if err != nil {
		l.logger.Error("[loader] Error saving CSV file: %v", err)
		return "", nil, err
	}
	l.logger.Info("[loader] Data saved to %s", csvPath)
	if fi, err := os.Stat(csvPath); err == nil {
		l.logger.Info("[loader] File size: %d bytes", fi.Size())
	}

	summaryPath, err := storage.WriteFileAtomic(l.opts.OutputDir, l.opts.SummaryFilename, []byte(rendered))
	if err != nil {
		l.logger.Error("[loader] Error saving summary: %v", err)
		if rmErr := os.Remove(csvPath); rmErr != nil {
			l.logger.Warn("[loader] Could not remove %s: %v", csvPath, rmErr)
		}
		return "", nil, err
	}
	l.logger.Info("[loader] Summary saved to %s", summaryPath)
	l.logger.Info("[loader] Loading completed — records saved: %d", t.Len())

	return csvPath, sum, nil
}
