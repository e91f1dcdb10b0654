package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fashion-scraper/config"
	"fashion-scraper/scraper/fashion"
	"fashion-scraper/services"
	"fashion-scraper/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()
	logger.SetLevel(utils.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(cfg, logger).ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Error("Process interrupted by user")
		} else {
			logger.Error("Error in ETL pipeline: %v", err)
		}
		stop()
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, logger *utils.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fashion-scraper",
		Short:         "Scrapes the Fashion Studio catalog, cleans it and writes products.csv.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, logger)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.StartPage, "start-page", cfg.StartPage, "first catalog page to scrape")
	flags.IntVar(&cfg.EndPage, "end-page", cfg.EndPage, "last catalog page to scrape (inclusive)")
	flags.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "directory for the CSV and summary files")
	flags.StringVar(&cfg.CSVFilename, "filename", cfg.CSVFilename, "name of the CSV file")
	flags.BoolVar(&cfg.ValidateOutput, "validate", cfg.ValidateOutput, "validate the dataset before writing it")
	flags.StringVar(&cfg.FetchMode, "fetch-mode", cfg.FetchMode, "page fetcher: http or browser")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger.Info("=== Fashion Studio ETL pipeline starting ===")
	logger.Info("Config — pages: %d-%d | delay: %dms | fetch: %s | output: %s",
		cfg.StartPage, cfg.EndPage, cfg.PageDelayMs, cfg.FetchMode, cfg.OutputDir)

	var fetcher fashion.PageFetcher
	switch cfg.FetchMode {
	case config.FetchModeBrowser:
		bf := fashion.NewBrowserFetcher(cfg.BaseURL, cfg.UserAgent, cfg.ChromeBin, cfg.Timeout(), logger)
		defer bf.Close()
		fetcher = bf
	default:
		fetcher = fashion.NewHTTPFetcher(cfg.BaseURL, cfg.UserAgent, cfg.Timeout(), logger)
	}

	res, err := services.NewPipeline(cfg, fetcher, logger).Run(ctx)
	if err != nil {
		return err
	}
	if res.Outcome != services.OutcomeLoaded {
		logger.Info("Nothing to write: %s", res.Outcome)
		return nil
	}

	services.NewSummaryService(logger).Print(res.Summary, res.Table.Head(5), res.CSVPath)
	return nil
}
