package site

import (
	"strings"

	"github.com/meera-dev/stylescrap/internal/driver"
	"github.com/meera-dev/stylescrap/internal/extract"
)

// Myntra returns the selector profile for www.myntra.com.
func Myntra() *Profile {
	return &Profile{
		Name:        "myntra",
		BaseURL:     "https://www.myntra.com",
		SearchInput: driver.Class("desktop-searchBar"),
		ListingItem: driver.Class("product-base"),
		ProductLink: driver.Tag("a"),

		DetailSpecs: []extract.FieldSpec{
			{Field: extract.FieldBrand, Sel: driver.Class("pdp-title")},
			{Field: extract.FieldName, Sel: driver.Class("pdp-name")},
			{Field: extract.FieldDiscountedPrice, Sel: driver.Class("pdp-price")},
			{Field: extract.FieldOriginalPrice, Sel: driver.Class("pdp-mrp")},
			{Field: extract.FieldRating, Sel: driver.Class("index-overallRating")},
			{Field: extract.FieldBreadcrumb, Sel: driver.CSS(".breadcrumbs-crumb"), Join: " > "},
		},

		ListingSpecs: []extract.FieldSpec{
			{Field: extract.FieldBrand, Sel: driver.Class("product-brand")},
			{Field: extract.FieldName, Sel: driver.Class("product-product")},
			{Field: extract.FieldDiscountedPrice, Sel: driver.Class("product-discountedPrice")},
			{Field: extract.FieldOriginalPrice, Sel: driver.Class("product-strike")},
			{Field: extract.FieldDiscountPercent, Sel: driver.Class("product-discountPercentage")},
			{Field: extract.FieldRating, Sel: driver.Class("product-ratingsContainer")},
			{Field: extract.FieldReviewCount, Sel: driver.CSS(".product-ratingsCount"), Clean: stripParens},
			{Field: extract.FieldProductURL, Sel: driver.CSS("a[data-refreshpage='true']"), Attr: "href"},
			{Field: extract.FieldImageURL, Sel: driver.CSS("img.img-responsive"), Attr: "src", Clean: extract.StripQuery},
		},

		ImagePrimaries: func(q driver.Queryable) []extract.Strategy {
			return []extract.Strategy{
				extract.BackgroundImageStrategy("bg-grid-image", q, driver.CSS(".image-grid-image")),
				extract.BackgroundImageStrategy("bg-grid-container", q, driver.CSS(".image-grid-imageContainer")),
				extract.AttrStrategy("img-responsive", q, driver.CSS("img.img-responsive"), "src"),
				extract.AttrStrategy("pdp-main-img", q, driver.CSS(".pdp-main-container img"), "src"),
			}
		},
		ImageKeywords: []string{"myntra", "assets"},

		SizeButtons: driver.Class("size-buttons-size-button"),
		ReviewText:  driver.XPath("//div[@class='user-review-reviewTextWrapper']"),

		PageParam: "p",
	}
}

// stripParens turns "(1.2k)" into "1.2k".
func stripParens(s string) string {
	return strings.Trim(s, "()")
}
