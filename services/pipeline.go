package services

import (
	"context"
	"fmt"
	"time"

	"fashion-scraper/config"
	"fashion-scraper/models"
	"fashion-scraper/scraper/fashion"
	"fashion-scraper/storage"
	"fashion-scraper/utils"
)

// Outcome tells how a run ended without error.
type Outcome int

const (
	OutcomeLoaded Outcome = iota
	OutcomeNoData
	OutcomeNoCleanData
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoaded:
		return "loaded"
	case OutcomeNoData:
		return "no data extracted"
	case OutcomeNoCleanData:
		return "no data after transformation"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result describes a finished run.
type Result struct {
	Outcome   Outcome
	Extracted int
	Transform TransformStats
	CSVPath   string
	Table     *models.Table
	Summary   *models.Summary
}

// Pipeline runs extract, transform and load in sequence.
type Pipeline struct {
	cfg         *config.Config
	paginator   *fashion.Paginator
	transformer *Transformer
	loader      *Loader
	logger      *utils.Logger

	// openDB is only called when the Postgres mirror is enabled.
	openDB func(dsn string) (storage.ProductWriter, error)
}

// NewPipeline wires every stage from the configuration around the given fetcher.
func NewPipeline(cfg *config.Config, fetcher fashion.PageFetcher, logger *utils.Logger) *Pipeline {
	validator := NewValidator(logger)
	return &Pipeline{
		cfg:         cfg,
		paginator:   fashion.NewPaginator(fetcher, cfg.BaseURL, utils.NewPacer(cfg.PageDelay()), cfg.ProgressEvery, logger),
		transformer: NewTransformer(NewNormalizer(cfg.ExchangeRate), logger),
		loader: NewLoader(LoaderOptions{
			OutputDir:       cfg.OutputDir,
			SummaryFilename: cfg.SummaryFilename,
			Validate:        cfg.ValidateOutput,
		}, validator, NewSummaryService(logger), logger),
		logger: logger,
		openDB: func(dsn string) (storage.ProductWriter, error) {
			return storage.NewPostgresWriter(dsn)
		},
	}
}

// Run executes the whole pipeline. Empty extraction or transformation ends the
// run early with a non-loaded Outcome and a nil error; nothing is written then.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	p.logger.Info("[pipeline] Start time: %s", start.Format("2006-01-02 15:04:05"))

	p.logger.Info("[pipeline] EXTRACT: scraping pages %d-%d", p.cfg.StartPage, p.cfg.EndPage)
	collected, err := p.paginator.Collect(ctx, p.cfg.StartPage, p.cfg.EndPage)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	res := &Result{Extracted: len(collected.Products)}
	if res.Extracted == 0 {
		p.logger.Warn("[pipeline] No data extracted. Exiting...")
		res.Outcome = OutcomeNoData
		return res, nil
	}
	p.logger.Info("[pipeline] Extraction completed: %d products", res.Extracted)

	p.logger.Info("[pipeline] TRANSFORM: cleaning records")
	tbl, stats := p.transformer.Transform(collected.Products)
	res.Transform = stats
	if tbl.Empty() {
		p.logger.Warn("[pipeline] No data after transformation. Exiting...")
		res.Outcome = OutcomeNoCleanData
		return res, nil
	}
	res.Table = tbl

	p.logger.Info("[pipeline] LOAD: writing %d products", tbl.Len())
	csvPath, sum, err := p.loader.Persist(tbl, p.cfg.CSVFilename)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	res.CSVPath = csvPath
	res.Summary = sum

	if p.cfg.PostgresEnabled {
		if err := p.mirror(tbl); err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
	}

	res.Outcome = OutcomeLoaded
	p.logger.Info("[pipeline] ETL pipeline completed in %s — %d records → %s",
		time.Since(start).Round(time.Millisecond), tbl.Len(), csvPath)
	return res, nil
}

// mirror copies the persisted table into PostgreSQL.
func (p *Pipeline) mirror(tbl *models.Table) error {
	products, err := tbl.Products()
	if err != nil {
		return err
	}

	w, err := p.openDB(p.cfg.DSN())
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Write(products); err != nil {
		return err
	}
	stored, err := w.FetchAll()
	if err != nil {
		return err
	}
	if len(stored) != len(products) {
		p.logger.Warn("[pipeline] PostgreSQL holds %d products, expected %d", len(stored), len(products))
	}
	p.logger.Info("[pipeline] %d products mirrored to PostgreSQL (table: products)", len(stored))
	return nil
}
