package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.BaseURL != "https://fashion-studio.dicoding.dev/" {
		t.Errorf("BaseURL: got %q", cfg.BaseURL)
	}
	if cfg.StartPage != 1 || cfg.EndPage != 50 {
		t.Errorf("page range: got %d-%d, want 1-50", cfg.StartPage, cfg.EndPage)
	}
	if cfg.PageDelay() != time.Second {
		t.Errorf("PageDelay: got %v, want 1s", cfg.PageDelay())
	}
	if cfg.Timeout() != 10*time.Second {
		t.Errorf("Timeout: got %v, want 10s", cfg.Timeout())
	}
	if cfg.ExchangeRate != 16000.0 {
		t.Errorf("ExchangeRate: got %.1f, want 16000.0", cfg.ExchangeRate)
	}
	if cfg.CSVFilename != "products.csv" || cfg.SummaryFilename != "summary.txt" {
		t.Errorf("filenames: got %q / %q", cfg.CSVFilename, cfg.SummaryFilename)
	}
	if !cfg.ValidateOutput {
		t.Error("ValidateOutput should default to true")
	}
	if cfg.PostgresEnabled {
		t.Error("PostgresEnabled should default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("START_PAGE", "3")
	t.Setenv("END_PAGE", "7")
	t.Setenv("EXCHANGE_RATE", "15500.5")
	t.Setenv("VALIDATE", "false")
	t.Setenv("FETCH_MODE", "Browser")
	t.Setenv("PAGE_DELAY_MS", "not-a-number")

	cfg := Load()
	if cfg.StartPage != 3 || cfg.EndPage != 7 {
		t.Errorf("page range: got %d-%d, want 3-7", cfg.StartPage, cfg.EndPage)
	}
	if cfg.ExchangeRate != 15500.5 {
		t.Errorf("ExchangeRate: got %.1f", cfg.ExchangeRate)
	}
	if cfg.ValidateOutput {
		t.Error("ValidateOutput: got true, want false")
	}
	if cfg.FetchMode != FetchModeBrowser {
		t.Errorf("FetchMode: got %q", cfg.FetchMode)
	}
	if cfg.PageDelayMs != 1000 {
		t.Errorf("unparseable PAGE_DELAY_MS should fall back to 1000, got %d", cfg.PageDelayMs)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"zero start", func(c *Config) { c.StartPage = 0 }, ErrInvalidStartPage},
		{"reversed range", func(c *Config) { c.StartPage, c.EndPage = 5, 4 }, ErrInvalidPageRange},
		{"unknown mode", func(c *Config) { c.FetchMode = "ftp" }, ErrInvalidFetchMode},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, ErrInvalidTimeout},
		{"negative delay", func(c *Config) { c.PageDelayMs = -1 }, ErrInvalidPageDelay},
		{"zero rate", func(c *Config) { c.ExchangeRate = 0 }, ErrInvalidExchangeRate},
		{"blank filename", func(c *Config) { c.CSVFilename = " " }, ErrMissingFilename},
		{"single page", func(c *Config) { c.StartPage, c.EndPage = 2, 2 }, nil},
	}

	for _, tt := range tests {
		cfg := Load()
		tt.modify(cfg)
		if err := cfg.Validate(); !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.want)
		}
	}
}
