package fashion

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"fashion-scraper/utils"
)

// BrowserFetcher renders pages in headless Chrome and returns the resulting DOM.
// One browser process is shared by every page; Close releases it.
type BrowserFetcher struct {
	baseURL string
	timeout time.Duration
	logger  *utils.Logger

	browserCtx    context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc
}

// NewBrowserFetcher starts the browser allocator. chromeBin may be empty to
// let the binary be discovered on PATH.
func NewBrowserFetcher(baseURL, userAgent, chromeBin string, timeout time.Duration, logger *utils.Logger) *BrowserFetcher {
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	logger.Info("[browser] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	return &BrowserFetcher{
		baseURL:       normaliseBaseURL(baseURL),
		timeout:       timeout,
		logger:        logger,
		browserCtx:    browserCtx,
		cancelBrowser: cancelBrowser,
		cancelAlloc:   cancelAlloc,
	}
}

// FetchPage navigates to the page and returns the rendered outer HTML.
func (b *BrowserFetcher) FetchPage(ctx context.Context, page int) ([]byte, error) {
	url := PageURL(b.baseURL, page)
	b.logger.Debug("[browser] Navigate %s", url)

	tabCtx, cancelTab := chromedp.NewContext(b.browserCtx)
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, b.timeout)
	defer cancelTimeout()

	// Propagate interruption of the caller into the tab.
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("browser fetch page %d: %w", page, err)
	}
	return []byte(html), nil
}

// Close shuts the browser down.
func (b *BrowserFetcher) Close() error {
	b.cancelBrowser()
	b.cancelAlloc()
	return nil
}

// chromeCandidates are tried in order; bare names go through PATH.
var chromeCandidates = []string{
	"google-chrome-stable",
	"google-chrome",
	"chromium",
	"chromium-browser",
	"/snap/bin/chromium",
}

// findChromeBinary returns the first installed candidate, or "" to let
// chromedp fall back to its own lookup.
func findChromeBinary() string {
	for _, name := range chromeCandidates {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}
