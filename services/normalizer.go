package services

import (
	"regexp"
	"strconv"
	"strings"

	"fashion-scraper/models"
)

// DefaultExchangeRate converts USD list prices to IDR.
const DefaultExchangeRate = 16000.0

var (
	// priceRegexp captures a dollar amount such as "$102.15"
	priceRegexp = regexp.MustCompile(`\$(\d+\.?\d*)`)
	// ratingRegexp captures the score of "4.5 / 5"
	ratingRegexp = regexp.MustCompile(`(\d+\.?\d*)\s*/\s*5`)
	colorsRegexp = regexp.MustCompile(`(\d+)\s*Colors?`)
	sizeRegexp   = regexp.MustCompile(`Size:\s*([A-Z]+)`)
	genderRegexp = regexp.MustCompile(`Gender:\s*(\w+)`)
)

// Normalizer turns raw card text into typed values. Every method is total:
// it reports ok=false instead of failing. This is the only place that knows
// about the extractor's sentinel strings.
type Normalizer struct {
	exchangeRate float64
}

// NewNormalizer creates a Normalizer converting prices at the given rate.
func NewNormalizer(exchangeRate float64) *Normalizer {
	return &Normalizer{exchangeRate: exchangeRate}
}

// CleanPrice extracts the dollar amount and converts it to IDR.
func (n *Normalizer) CleanPrice(raw string) (float64, bool) {
	switch raw {
	case "", models.SentinelPriceUnavailable, models.SentinelUnknown:
		return 0, false
	}
	usd, ok := firstFloat(priceRegexp, raw)
	if !ok {
		return 0, false
	}
	return usd * n.exchangeRate, true
}

// CleanRating extracts the score out of five.
func (n *Normalizer) CleanRating(raw string) (float64, bool) {
	if raw == "" || strings.Contains(raw, models.SentinelInvalidRating) || strings.Contains(raw, "Not Rated") {
		return 0, false
	}
	return firstFloat(ratingRegexp, raw)
}

// CleanColors extracts the number of available colors.
func (n *Normalizer) CleanColors(raw string) (int64, bool) {
	m := colorsRegexp.FindStringSubmatch(raw)
	if len(m) < 2 {
		return 0, false
	}
	v, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// CleanSize strips the "Size:" label.
func (n *Normalizer) CleanSize(raw string) (string, bool) {
	return firstString(sizeRegexp, raw)
}

// CleanGender strips the "Gender:" label.
func (n *Normalizer) CleanGender(raw string) (string, bool) {
	return firstString(genderRegexp, raw)
}

// CleanTitle trims the title and rejects placeholder titles.
func (n *Normalizer) CleanTitle(raw string) (string, bool) {
	title := strings.TrimSpace(raw)
	if title == "" || strings.Contains(title, models.SentinelUnknownProduct) {
		return "", false
	}
	return title, true
}

// Normalize cleans all six fields independently. The product is usable only
// when ok is true; invalid lists the fields that could not be parsed.
func (n *Normalizer) Normalize(r models.RawProduct) (p models.Product, invalid []string) {
	var ok bool
	if p.Title, ok = n.CleanTitle(r.Title); !ok {
		invalid = append(invalid, models.ColTitle)
	}
	if p.Price, ok = n.CleanPrice(r.Price); !ok {
		invalid = append(invalid, models.ColPrice)
	}
	if p.Rating, ok = n.CleanRating(r.Rating); !ok {
		invalid = append(invalid, models.ColRating)
	}
	if p.Colors, ok = n.CleanColors(r.Colors); !ok {
		invalid = append(invalid, models.ColColors)
	}
	if p.Size, ok = n.CleanSize(r.Size); !ok {
		invalid = append(invalid, models.ColSize)
	}
	if p.Gender, ok = n.CleanGender(r.Gender); !ok {
		invalid = append(invalid, models.ColGender)
	}
	return p, invalid
}

func firstFloat(re *regexp.Regexp, s string) (float64, bool) {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func firstString(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}
