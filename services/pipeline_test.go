package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fashion-scraper/config"
	"fashion-scraper/models"
	"fashion-scraper/scraper/fashion"
	"fashion-scraper/storage"
	"fashion-scraper/utils"
)

func cardHTML(title, price, rating string) string {
	return fmt.Sprintf(`<div class="collection-card">
  <h3 class="product-title">%s</h3>
  <span class="price">%s</span>
  <p style="font-size: 14px; color: #777;">%s</p>
  <p style="font-size: 14px; color: #777;">3 Colors</p>
  <p style="font-size: 14px; color: #777;">Size: L</p>
  <p style="font-size: 14px; color: #777;">Gender: Men</p>
</div>`, title, price, rating)
}

func testConfig(baseURL, dir string, end int) *config.Config {
	return &config.Config{
		BaseURL:         baseURL,
		StartPage:       1,
		EndPage:         end,
		RequestTimeout:  5,
		UserAgent:       "pipeline-test",
		FetchMode:       config.FetchModeHTTP,
		ExchangeRate:    DefaultExchangeRate,
		OutputDir:       dir,
		CSVFilename:     "products.csv",
		SummaryFilename: "summary.txt",
		ValidateOutput:  true,
	}
}

func newTestPipeline(cfg *config.Config) *Pipeline {
	logger := utils.NewDiscardLogger()
	f := fashion.NewHTTPFetcher(cfg.BaseURL, cfg.UserAgent, cfg.Timeout(), logger)
	return NewPipeline(cfg, f, logger)
}

func TestPipelineAllFetchesFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "out")
	res, err := newTestPipeline(testConfig(srv.URL, dir, 3)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoData, res.Outcome)
	assert.Zero(t, res.Extracted)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "nothing should be written")
}

func TestPipelineNothingSurvivesTransform(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, cardHTML("Unknown Product", "$10.00", "Rating: 4.0 / 5"))
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "out")
	res, err := newTestPipeline(testConfig(srv.URL, dir, 2)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoCleanData, res.Outcome)
	assert.Equal(t, 2, res.Extracted)
	assert.Equal(t, 2, res.Transform.Invalid)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPipelineEndToEnd(t *testing.T) {
	pages := map[string]string{
		"/": cardHTML("Shirt 1", "$10.00", "Rating: ⭐ 4.0 / 5") +
			cardHTML("Shirt 2", "Price Unavailable", "Rating: Not Rated"),
		"/Page2": cardHTML("Shirt 3", "$12.50", "Rating: ⭐ 4.8 / 5") +
			cardHTML("Shirt 1", "$10.00", "Rating: ⭐ 4.0 / 5"),
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	dir := t.TempDir()
	res, err := newTestPipeline(testConfig(srv.URL, dir, 3)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeLoaded, res.Outcome)
	assert.Equal(t, 4, res.Extracted)
	assert.Equal(t, TransformStats{Input: 4, Invalid: 1, Duplicates: 1, Output: 2}, res.Transform)
	assert.Equal(t, filepath.Join(dir, "products.csv"), res.CSVPath)

	b, err := os.ReadFile(res.CSVPath)
	require.NoError(t, err)
	assert.Equal(t, "Title,Price,Rating,Colors,Size,Gender\n"+
		"Shirt 1,160000,4,3,L,Men\n"+
		"Shirt 3,200000,4.8,3,L,Men\n", string(b))

	summary, err := os.ReadFile(filepath.Join(dir, "summary.txt"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(summary), "Total Records: 2"))
}

type fakeProductWriter struct {
	written []models.Product
	closed  bool
}

func (f *fakeProductWriter) Write(products []models.Product) error {
	f.written = append(f.written, products...)
	return nil
}

func (f *fakeProductWriter) FetchAll() ([]models.Product, error) { return f.written, nil }

func (f *fakeProductWriter) Close() error {
	f.closed = true
	return nil
}

func TestPipelineMirrorsToDatabase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, cardHTML("Coat 1", "$40.00", "Rating: 3.0 / 5"))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, t.TempDir(), 1)
	cfg.PostgresEnabled = true

	db := &fakeProductWriter{}
	p := newTestPipeline(cfg)
	p.openDB = func(string) (storage.ProductWriter, error) { return db, nil }

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeLoaded, res.Outcome)
	require.Len(t, db.written, 1)
	assert.Equal(t, 640000.0, db.written[0].Price)
	assert.True(t, db.closed)
}

func TestPipelineDatabaseUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, cardHTML("Coat 1", "$40.00", "Rating: 3.0 / 5"))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, t.TempDir(), 1)
	cfg.PostgresEnabled = true

	p := newTestPipeline(cfg)
	p.openDB = func(string) (storage.ProductWriter, error) { return nil, errors.New("connection refused") }

	_, err := p.Run(context.Background())
	require.Error(t, err)
}

func TestPipelineInterrupted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, cardHTML("Coat 1", "$40.00", "Rating: 3.0 / 5"))
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "out")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestPipeline(testConfig(srv.URL, dir, 2)).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}
