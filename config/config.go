package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Fetch modes.
const (
	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"
)

// Configuration validation errors.
var (
	ErrInvalidStartPage    = errors.New("start page must be at least 1")
	ErrInvalidPageRange    = errors.New("end page must not be lower than start page")
	ErrInvalidFetchMode    = errors.New("fetch mode must be 'http' or 'browser'")
	ErrInvalidTimeout      = errors.New("request timeout must be positive")
	ErrInvalidPageDelay    = errors.New("page delay must be non-negative")
	ErrInvalidExchangeRate = errors.New("exchange rate must be positive")
	ErrMissingFilename     = errors.New("csv and summary filenames are required")
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	BaseURL        string
	StartPage      int
	EndPage        int
	PageDelayMs    int
	RequestTimeout int
	UserAgent      string
	FetchMode      string
	ChromeBin      string
	ProgressEvery  int

	ExchangeRate float64

	OutputDir       string
	CSVFilename     string
	SummaryFilename string
	ValidateOutput  bool

	LogLevel string

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		BaseURL:        getEnv("BASE_URL", "https://fashion-studio.dicoding.dev/"),
		StartPage:      getEnvInt("START_PAGE", 1),
		EndPage:        getEnvInt("END_PAGE", 50),
		PageDelayMs:    getEnvInt("PAGE_DELAY_MS", 1000),
		RequestTimeout: getEnvInt("REQUEST_TIMEOUT_SEC", 10),
		UserAgent:      getEnv("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),
		FetchMode:      strings.ToLower(getEnv("FETCH_MODE", FetchModeHTTP)),
		ChromeBin:      getEnv("CHROME_BIN", ""),
		ProgressEvery:  getEnvInt("PROGRESS_EVERY", 10),

		ExchangeRate: getEnvFloat("EXCHANGE_RATE", 16000.0),

		OutputDir:       getEnv("OUTPUT_DIR", "."),
		CSVFilename:     getEnv("CSV_FILENAME", "products.csv"),
		SummaryFilename: getEnv("SUMMARY_FILENAME", "summary.txt"),
		ValidateOutput:  getEnvBool("VALIDATE", true),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "fashion_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// Validate checks the settings that would otherwise fail halfway through a run.
func (c *Config) Validate() error {
	if c.StartPage < 1 {
		return ErrInvalidStartPage
	}
	if c.EndPage < c.StartPage {
		return ErrInvalidPageRange
	}
	if c.FetchMode != FetchModeHTTP && c.FetchMode != FetchModeBrowser {
		return ErrInvalidFetchMode
	}
	if c.RequestTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.PageDelayMs < 0 {
		return ErrInvalidPageDelay
	}
	if c.ExchangeRate <= 0 {
		return ErrInvalidExchangeRate
	}
	if strings.TrimSpace(c.CSVFilename) == "" || strings.TrimSpace(c.SummaryFilename) == "" {
		return ErrMissingFilename
	}
	return nil
}

// PageDelay is the pause between two consecutive page fetches.
func (c *Config) PageDelay() time.Duration {
	return time.Duration(c.PageDelayMs) * time.Millisecond
}

// Timeout is the per-request fetch timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
