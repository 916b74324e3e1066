package models

import "time"

// Unavailable marks a field that was looked up but not found on the page.
// It distinguishes "checked and missing" from a zero value.
const Unavailable = "N/A"

// StockStatus describes the purchasability of a size option.
type StockStatus string

const (
	InStock    StockStatus = "In Stock"
	OutOfStock StockStatus = "Out of Stock"
)

// SizeOption is one size label with its stock status, in DOM order.
type SizeOption struct {
	Label  string      `json:"label"`
	Status StockStatus `json:"status"`
}

func (s SizeOption) String() string {
	return s.Label + " (" + string(s.Status) + ")"
}

// ProductRecord is the unit of output: one product, fully populated in a
// single extraction pass and never mutated afterwards.
type ProductRecord struct {
	SearchKeyword   string       `json:"search_keyword"`
	ProductURL      string       `json:"product_url,omitempty"`
	Brand           string       `json:"brand"`
	Name            string       `json:"name"`
	DiscountedPrice string       `json:"discounted_price"`
	OriginalPrice   string       `json:"original_price"`
	DiscountPercent string       `json:"discount_percent,omitempty"`
	Rating          string       `json:"rating"`
	ReviewCount     string       `json:"review_count,omitempty"`
	ImageURL        string       `json:"image_url"`
	Reviews         []string     `json:"reviews,omitempty"`
	AvailableSizes  []SizeOption `json:"available_sizes,omitempty"`
	Breadcrumb      string       `json:"breadcrumb,omitempty"`
	Site            string       `json:"site"`
	ScrapedAt       time.Time    `json:"scraped_at"`
}

// NewProductRecord returns a record with every descriptive field set to the
// Unavailable sentinel, so callers never observe an unchecked empty string.
func NewProductRecord(site, keyword string) ProductRecord {
	return ProductRecord{
		SearchKeyword:   keyword,
		Brand:           Unavailable,
		Name:            Unavailable,
		DiscountedPrice: Unavailable,
		OriginalPrice:   Unavailable,
		DiscountPercent: Unavailable,
		Rating:          Unavailable,
		ReviewCount:     Unavailable,
		ImageURL:        Unavailable,
		Breadcrumb:      Unavailable,
		Site:            site,
		ScrapedAt:       time.Now(),
	}
}

// FinalizePrices applies the pricing invariant: when the original price is
// not independently discoverable, it defaults to the discounted price.
func (p *ProductRecord) FinalizePrices() {
	if p.OriginalPrice == Unavailable || p.OriginalPrice == "" {
		p.OriginalPrice = p.DiscountedPrice
	}
}
