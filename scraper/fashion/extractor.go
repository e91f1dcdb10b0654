package fashion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"fashion-scraper/models"
)

const (
	cardSelector        = "div.collection-card"
	titleSelector       = "h3.product-title"
	priceSelector       = "span.price"
	unavailableSelector = "p.price"
	detailSelector      = `p[style="font-size: 14px; color: #777;"]`
)

// CardError records a listing card that could not be read.
type CardError struct {
	Index  int
	Reason string
}

// readCard is the per-card reader used by Extract.
var readCard = extractCard

// ExtractResult is the outcome of reading one page.
type ExtractResult struct {
	Products []models.RawProduct
	Skipped  []CardError
}

// Extract reads every listing card in markup, in document order.
// A page without cards yields an empty result.
func Extract(markup []byte) (ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return ExtractResult{}, fmt.Errorf("parse markup: %w", err)
	}

	var res ExtractResult
	doc.Find(cardSelector).Each(func(i int, card *goquery.Selection) {
		p, err := safeReadCard(card)
		if err != nil {
			res.Skipped = append(res.Skipped, CardError{Index: i, Reason: err.Error()})
			return
		}
		res.Products = append(res.Products, p)
	})
	return res, nil
}

// safeReadCard turns a panic while walking a card into an error so one broken
// card cannot take the page down with it.
func safeReadCard(card *goquery.Selection) (p models.RawProduct, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("card extraction: %v", r)
		}
	}()
	return readCard(card)
}

func extractCard(card *goquery.Selection) (p models.RawProduct, err error) {
	p.Title = models.SentinelUnknownProduct
	if el := card.Find(titleSelector).First(); el.Length() > 0 {
		p.Title = strings.TrimSpace(el.Text())
	}

	p.Price = extractPrice(card)

	p.Rating = models.SentinelInvalidRating
	p.Colors = models.SentinelUnknown
	p.Size = models.SentinelUnknown
	p.Gender = models.SentinelUnknown

	card.Find(detailSelector).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		switch {
		case strings.Contains(text, "Rating:"):
			p.Rating = text
		case strings.Contains(text, "Colors"):
			p.Colors = text
		case strings.Contains(text, "Size:"):
			p.Size = text
		case strings.Contains(text, "Gender:"):
			p.Gender = text
		}
	})

	return p, nil
}

// extractPrice prefers the price display; a card without one may carry an
// explicit "unavailable" marker instead.
func extractPrice(card *goquery.Selection) string {
	if el := card.Find(priceSelector).First(); el.Length() > 0 {
		return strings.TrimSpace(el.Text())
	}
	if el := card.Find(unavailableSelector).First(); el.Length() > 0 &&
		strings.Contains(el.Text(), models.SentinelPriceUnavailable) {
		return models.SentinelPriceUnavailable
	}
	return models.SentinelUnknown
}
