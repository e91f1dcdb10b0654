package models

// Sentinels written by the extractor when a card lacks a value.
const (
	SentinelUnknown          = "Unknown"
	SentinelUnknownProduct   = "Unknown Product"
	SentinelPriceUnavailable = "Price Unavailable"
	SentinelInvalidRating    = "Invalid Rating"
)

// RawProduct holds the text scraped from one listing card, before any cleaning.
// Every field carries either page text or one of the sentinels above.
type RawProduct struct {
	Title  string
	Price  string
	Rating string
	Colors string
	Size   string
	Gender string
}

// Product is one cleaned row of the output table.
// Price is in IDR after currency conversion.
type Product struct {
	Title  string
	Price  float64
	Rating float64
	Colors int64
	Size   string
	Gender string
}
