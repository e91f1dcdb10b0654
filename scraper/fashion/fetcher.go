// Package fashion scrapes product listing pages of the Fashion Studio catalog.
package fashion

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"fashion-scraper/utils"
)

// PageFetcher retrieves the raw markup of one catalog page.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int) ([]byte, error)
}

// PageURL maps a 1-based page index to its URL: page 1 is the base URL,
// page N is "<base>PageN".
func PageURL(baseURL string, page int) string {
	if page <= 1 {
		return baseURL
	}
	return baseURL + "Page" + strconv.Itoa(page)
}

// HTTPStatusError reports a non-2xx response.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// HTTPFetcher issues plain GET requests through one reused resty client.
// It never retries.
type HTTPFetcher struct {
	baseURL string
	client  *resty.Client
	logger  *utils.Logger
}

// NewHTTPFetcher creates a fetcher with a fixed timeout and User-Agent.
func NewHTTPFetcher(baseURL, userAgent string, timeout time.Duration, logger *utils.Logger) *HTTPFetcher {
	client := resty.New()
	client.SetHeader("User-Agent", userAgent)
	client.SetTimeout(timeout)
	client.SetRetryCount(0)

	return &HTTPFetcher{
		baseURL: normaliseBaseURL(baseURL),
		client:  client,
		logger:  logger,
	}
}

// FetchPage downloads one page. Transport errors and non-2xx statuses are returned as errors.
func (f *HTTPFetcher) FetchPage(ctx context.Context, page int) ([]byte, error) {
	url := PageURL(f.baseURL, page)
	f.logger.Debug("[fetcher] GET %s", url)

	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch page %d: %w", page, err)
	}
	if !resp.IsSuccess() {
		return nil, &HTTPStatusError{URL: url, StatusCode: resp.StatusCode()}
	}
	return resp.Body(), nil
}

func normaliseBaseURL(u string) string {
	u = strings.TrimSpace(u)
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u
}
