package site

import (
	"github.com/meera-dev/stylescrap/internal/driver"
	"github.com/meera-dev/stylescrap/internal/extract"
)

// NykaaFashion returns the selector profile for www.nykaafashion.com.
// The markup is styled-components output, so most selectors pin exact
// generated class strings (including one with a leading space).
func NykaaFashion() *Profile {
	return &Profile{
		Name:        "nykaa",
		BaseURL:     "https://www.nykaafashion.com",
		SearchInput: driver.XPath("//input[@placeholder='Search for products, styles, brands']"),
		Popups: []driver.Selector{
			driver.XPath("//button[contains(text(), 'No thanks')]"),
		},
		ListingItem: driver.XPath("//div[@class='css-384pms']"),
		ProductLink: driver.Tag("a"),

		DetailSpecs: []extract.FieldSpec{
			{Field: extract.FieldBrand, Sel: driver.XPath("//a[@class='css-6mpq2k']")},
			{Field: extract.FieldName, Sel: driver.XPath("//span[@class='css-cmh3n9']")},
			{Field: extract.FieldDiscountedPrice, Sel: driver.XPath("//span[@class='css-5pw8k6']")},
			{Field: extract.FieldOriginalPrice, Sel: driver.XPath("//span[@class=' css-1byl9fj']")},
			{Field: extract.FieldRating, Sel: driver.XPath("//div[@class='css-xoezkq']")},
		},

		// Nykaa listing cards carry too little structured data for shallow
		// extraction; only the detail-page link is collected.
		ListingSpecs: []extract.FieldSpec{
			{Field: extract.FieldProductURL, Sel: driver.Tag("a"), Attr: "href"},
		},

		ImagePrimaries: func(q driver.Queryable) []extract.Strategy {
			return []extract.Strategy{
				extract.AttrStrategy("main-img", q, driver.XPath("//img[@class=' css-kwk7lt']"), "src"),
				extract.AttrStrategy("main-img-alt", q, driver.XPath("//img[@class='css-kwk7lt']"), "src"),
				extract.AttrStrategy("product-img", q, driver.CSS(".product-image img"), "src"),
			}
		},
		ImageKeywords: []string{"nykaa", "assets", "product"},

		SizeButtons: driver.XPath("//span[@class='css-la6tof']"),
		// The upstream page sometimes renders this as a single node; it is
		// still queried as zero-or-more.
		ReviewText: driver.XPath("//p[@class='css-183zl1c']"),

		PageParam: "p",
	}
}
