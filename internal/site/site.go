// Package site holds the per-storefront selector profiles. A Profile is pure
// configuration: which selectors address which fields, how result pages
// paginate, which image strategies to prefer. The crawl algorithm never
// hard-codes a selector.
package site

import (
	"fmt"
	"strings"
	"sync"

	"github.com/meera-dev/stylescrap/internal/driver"
	"github.com/meera-dev/stylescrap/internal/extract"
	"github.com/meera-dev/stylescrap/internal/models"
)

// Profile describes one target storefront.
type Profile struct {
	Name    string
	BaseURL string

	// SearchInput is the home-page search box the session types into.
	SearchInput driver.Selector
	// Popups are dismissable dialogs that may cover the page after landing.
	Popups []driver.Selector

	// ListingItem matches one product card on a results page.
	ListingItem driver.Selector
	// ProductLink locates the detail-page anchor inside a listing item.
	ProductLink driver.Selector

	// DetailSpecs extract fields from a product detail page, ListingSpecs
	// from a listing card (shallow mode).
	DetailSpecs  []extract.FieldSpec
	ListingSpecs []extract.FieldSpec

	// ImagePrimaries builds the site's preferred image strategies, most
	// reliable first. The generic scan and static probe are appended by
	// ImageStrategies.
	ImagePrimaries func(q driver.Queryable) []extract.Strategy
	// ImageKeywords filter the last-resort <img> scan by hostname/path.
	ImageKeywords []string

	// SizeButtons matches the size option elements on a detail page.
	SizeButtons driver.Selector
	// ReviewText matches review snippets; always treated as zero-or-more.
	ReviewText driver.Selector

	// PageParam is the results-page query parameter ("p" → "&p=2").
	PageParam string
}

// PageURL builds the URL for the n-th results page by query-parameter
// convention.
func (p *Profile) PageURL(searchURL string, page int) string {
	sep := "&"
	if !strings.Contains(searchURL, "?") {
		sep = "?"
	}
	return fmt.Sprintf("%s%s%s=%d", searchURL, sep, p.PageParam, page)
}

// ImageStrategies composes the full image fallback chain for one product:
// site primaries, then the filtered <img> scan, then the static probe.
func (p *Profile) ImageStrategies(q driver.Queryable, probe func() (string, bool)) []extract.Strategy {
	var strategies []extract.Strategy
	if p.ImagePrimaries != nil {
		strategies = p.ImagePrimaries(q)
	}
	strategies = append(strategies, extract.ScanImagesStrategy("img-scan", q, p.ImageKeywords))
	if probe != nil {
		strategies = append(strategies, extract.Strategy{Name: "static-probe", Fetch: probe})
	}
	return strategies
}

// SizeOptions reads the size buttons in DOM order. A size is out of stock
// when its class carries "disabled" or it is aria-disabled.
func (p *Profile) SizeOptions(q driver.Queryable) []models.SizeOption {
	var sizes []models.SizeOption
	for _, el := range q.FindAll(p.SizeButtons) {
		label, ok := el.Text()
		if !ok {
			continue
		}
		if label = strings.TrimSpace(label); label == "" {
			continue
		}
		status := models.InStock
		if class, ok := el.Attr("class"); ok && strings.Contains(class, "disabled") {
			status = models.OutOfStock
		} else if aria, ok := el.Attr("aria-disabled"); ok && aria == "true" {
			status = models.OutOfStock
		}
		sizes = append(sizes, models.SizeOption{Label: label, Status: status})
	}
	return sizes
}

// Reviews reads review snippets in DOM order, blank entries dropped.
func (p *Profile) Reviews(q driver.Queryable) []string {
	return extract.Texts(q, p.ReviewText)
}

// DismissPopups clicks away any known dialogs. Absence of a popup is the
// common case and not reported.
func (p *Profile) DismissPopups(q driver.Queryable) {
	for _, sel := range p.Popups {
		if el, ok := q.Find(sel); ok {
			el.Click()
		}
	}
}

var (
	registry = make(map[string]*Profile)
	mu       sync.RWMutex
)

// Register adds a site profile under its name.
func Register(p *Profile) {
	mu.Lock()
	defer mu.Unlock()
	registry[p.Name] = p
}

// Get returns the profile registered under name.
func Get(name string) (*Profile, error) {
	mu.RLock()
	defer mu.RUnlock()
	p, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("site %q not registered", name)
	}
	return p, nil
}

// List returns the names of all registered sites.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
