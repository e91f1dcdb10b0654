package fashion

import (
	"context"
	"errors"
	"fmt"

	"fashion-scraper/models"
	"fashion-scraper/utils"
)

// ErrInvalidRange is returned when the requested page range is unusable.
var ErrInvalidRange = errors.New("invalid page range")

// PageResult is the outcome of one page: either products (possibly none)
// or the reason the page contributed nothing.
type PageResult struct {
	Page     int
	URL      string
	Products []models.RawProduct
	Skipped  []CardError
	Err      error
}

// CollectResult aggregates a whole page range.
type CollectResult struct {
	Products []models.RawProduct
	Pages    []PageResult
}

// Failed returns the pages that produced an error.
func (r *CollectResult) Failed() []PageResult {
	var out []PageResult
	for _, p := range r.Pages {
		if p.Err != nil {
			out = append(out, p)
		}
	}
	return out
}

// Paginator walks a page range sequentially, pausing between fetches.
type Paginator struct {
	fetcher       PageFetcher
	baseURL       string
	pacer         *utils.Pacer
	progressEvery int
	logger        *utils.Logger
}

// NewPaginator wires a fetcher to a pacer. progressEvery <= 0 disables progress lines.
func NewPaginator(fetcher PageFetcher, baseURL string, pacer *utils.Pacer, progressEvery int, logger *utils.Logger) *Paginator {
	return &Paginator{
		fetcher:       fetcher,
		baseURL:       normaliseBaseURL(baseURL),
		pacer:         pacer,
		progressEvery: progressEvery,
		logger:        logger,
	}
}

// Collect fetches and extracts pages start..end inclusive. Page failures are
// recorded and skipped; only cancellation of ctx aborts, discarding everything.
func (p *Paginator) Collect(ctx context.Context, start, end int) (*CollectResult, error) {
	if start < 1 || end < start {
		return nil, fmt.Errorf("%w: %d-%d", ErrInvalidRange, start, end)
	}

	res := &CollectResult{}
	for page := start; page <= end; page++ {
		pr := p.scrapePage(ctx, page)
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("collect interrupted at page %d: %w", page, err)
		}

		res.Pages = append(res.Pages, pr)
		res.Products = append(res.Products, pr.Products...)

		if p.progressEvery > 0 && page%p.progressEvery == 0 {
			p.logger.Info("[paginator] Progress: %d/%d pages completed", page, end)
		}

		if page < end {
			if err := p.pacer.Wait(ctx); err != nil {
				return nil, fmt.Errorf("collect interrupted after page %d: %w", page, err)
			}
		}
	}

	p.logger.Info("[paginator] Extraction complete — %d products from %d pages (%d failed)",
		len(res.Products), len(res.Pages), len(res.Failed()))
	return res, nil
}

func (p *Paginator) scrapePage(ctx context.Context, page int) PageResult {
	pr := PageResult{Page: page, URL: PageURL(p.baseURL, page)}

	markup, err := p.fetcher.FetchPage(ctx, page)
	if err != nil {
		pr.Err = err
		p.logger.Warn("[paginator] Page %d failed: %v", page, err)
		return pr
	}

	extracted, err := Extract(markup)
	if err != nil {
		pr.Err = err
		p.logger.Warn("[paginator] Page %d unreadable: %v", page, err)
		return pr
	}

	for _, ce := range extracted.Skipped {
		p.logger.Warn("[extractor] Page %d card %d skipped: %s", page, ce.Index, ce.Reason)
	}

	pr.Products = extracted.Products
	pr.Skipped = extracted.Skipped
	p.logger.Info("[paginator] Scraped page %d: %d products", page, len(pr.Products))
	return pr
}
