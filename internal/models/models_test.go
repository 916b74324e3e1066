package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProductRecordSeedsSentinels(t *testing.T) {
	rec := NewProductRecord("myntra", "white shirt")

	assert.Equal(t, "myntra", rec.Site)
	assert.Equal(t, "white shirt", rec.SearchKeyword)
	assert.False(t, rec.ScrapedAt.IsZero())

	for _, field := range []string{
		rec.Brand, rec.Name, rec.DiscountedPrice, rec.OriginalPrice,
		rec.DiscountPercent, rec.Rating, rec.ReviewCount, rec.ImageURL,
		rec.Breadcrumb,
	} {
		assert.Equal(t, Unavailable, field)
	}
}

func TestFinalizePrices(t *testing.T) {
	tests := []struct {
		name         string
		discounted   string
		original     string
		wantOriginal string
	}{
		{"both present", "Rs. 799", "Rs. 999", "Rs. 999"},
		{"original missing", "Rs. 799", Unavailable, "Rs. 799"},
		{"original empty", "Rs. 799", "", "Rs. 799"},
		{"both missing", Unavailable, Unavailable, Unavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewProductRecord("myntra", "shirt")
			rec.DiscountedPrice = tt.discounted
			rec.OriginalPrice = tt.original
			rec.FinalizePrices()
			assert.Equal(t, tt.wantOriginal, rec.OriginalPrice)
		})
	}
}

func TestSizeOptionString(t *testing.T) {
	assert.Equal(t, "S (In Stock)", SizeOption{Label: "S", Status: InStock}.String())
	assert.Equal(t, "M (Out of Stock)", SizeOption{Label: "M", Status: OutOfStock}.String())
}
