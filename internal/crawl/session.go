// Package crawl drives the scraping session: search → URL collection →
// detail visits → pagination, one browser page used serially throughout.
// Per-field and per-product failures are absorbed here or below; only
// session-breaking errors (cancellation, persistence failure) surface.
package crawl

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/meera-dev/stylescrap/internal/driver"
	"github.com/meera-dev/stylescrap/internal/extract"
	"github.com/meera-dev/stylescrap/internal/models"
	"github.com/meera-dev/stylescrap/internal/site"
	"github.com/meera-dev/stylescrap/internal/stealth"
)

// Sink receives extracted records; each call must be durable on return.
type Sink interface {
	Append(records []models.ProductRecord) error
}

// Options configures one crawl session.
type Options struct {
	// MaxProducts caps how many detail links are collected per term in deep
	// mode. Zero means the site's full first page.
	MaxProducts int
	// MaxPages bounds shallow-mode pagination; nil runs until a page yields
	// no products.
	MaxPages *int
	// WaitTimeout bounds each wait for asynchronously rendered listings.
	WaitTimeout time.Duration
	// RecordSearchURLs, when set, receives the term → results-URL audit map
	// before shallow crawling starts.
	RecordSearchURLs func(map[string]string) error

	Delay   *stealth.HumanDelay
	Limiter *rate.Limiter
	Robots  *stealth.RobotsChecker
	Probe   *site.StaticProbe
	// UserAgent is the identity presented to robots.txt checks.
	UserAgent string
	Logger    *log.Logger
}

// Summary reports what a session accomplished. It is always produced, even
// when the session ends early.
type Summary struct {
	Terms       int
	FailedTerms int
	Pages       int
	Products    int
	Skipped     int
}

// Orchestrator owns all session-scoped state: the current term, page number
// and collected URLs live nowhere else.
type Orchestrator struct {
	page    driver.Page
	profile *site.Profile
	sink    Sink
	opts    Options
	logger  *log.Logger
}

func New(page driver.Page, profile *site.Profile, out Sink, opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = log.WithPrefix("crawl")
	}
	if opts.WaitTimeout <= 0 {
		opts.WaitTimeout = 10 * time.Second
	}
	return &Orchestrator{
		page:    page,
		profile: profile,
		sink:    out,
		opts:    opts,
		logger:  logger,
	}
}

// RunDeep crawls each term by collecting detail-page links from the first
// results page and visiting every one. A failed term or product never aborts
// the rest of the session.
func (o *Orchestrator) RunDeep(ctx context.Context, terms []string) (Summary, error) {
	var sum Summary
	for _, term := range terms {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sum.Terms++

		if !o.siteAllowed(ctx) {
			o.logger.Warn("blocked by robots.txt, skipping term", "term", term)
			sum.FailedTerms++
			continue
		}

		searchURL, ok := o.search(term)
		if !ok {
			sum.FailedTerms++
			continue
		}

		ReportProgress(ctx, fmt.Sprintf("Collecting products for %q...", term))
		urls := o.collectProductURLs(searchURL)
		o.logger.Info("collected product links", "term", term, "count", len(urls))
		if len(urls) > 0 {
			sum.Pages++
		}

		for i, productURL := range urls {
			if err := ctx.Err(); err != nil {
				return sum, err
			}
			ReportProgress(ctx, fmt.Sprintf("Scraping product %d/%d for %q", i+1, len(urls), term))

			rec, err := o.extractDetail(ctx, term, productURL)
			if err != nil {
				o.logger.Error("product skipped", "url", productURL, "err", err)
				sum.Skipped++
				continue
			}

			if err := o.sink.Append([]models.ProductRecord{rec}); err != nil {
				return sum, err
			}
			sum.Products++

			if err := o.pace(ctx); err != nil {
				return sum, err
			}
		}
	}
	return sum, nil
}

// RunShallow crawls each term's paginated results, extracting records
// directly from listing cards and appending after every page.
func (o *Orchestrator) RunShallow(ctx context.Context, terms []string) (Summary, error) {
	var sum Summary

	searchURLs := make(map[string]string, len(terms))
	for _, term := range terms {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sum.Terms++

		url := ""
		if o.siteAllowed(ctx) {
			if resolved, ok := o.search(term); ok {
				url = resolved
			}
		}
		if url == "" {
			sum.FailedTerms++
		}
		searchURLs[term] = url
	}

	if o.opts.RecordSearchURLs != nil {
		if err := o.opts.RecordSearchURLs(searchURLs); err != nil {
			return sum, err
		}
	}

	for _, term := range terms {
		baseURL := searchURLs[term]
		if baseURL == "" {
			o.logger.Warn("no results URL, skipping term", "term", term)
			continue
		}

		pages, products, err := o.paginate(ctx, term, baseURL)
		sum.Pages += pages
		sum.Products += products
		if err != nil {
			return sum, err
		}
		o.logger.Info("term complete", "term", term, "pages", pages, "products", products)
	}
	return sum, nil
}

// ProductDetail visits a single product page and returns its record. Used by
// the detail command and the MCP tools; nothing is persisted.
func (o *Orchestrator) ProductDetail(ctx context.Context, productURL string) (models.ProductRecord, error) {
	return o.extractDetail(ctx, "", productURL)
}

// ListingOnce resolves one term and extracts the first results page's records
// without persisting them.
func (o *Orchestrator) ListingOnce(ctx context.Context, term string) ([]models.ProductRecord, error) {
	searchURL, ok := o.search(term)
	if !ok {
		return nil, fmt.Errorf("search failed for %q", term)
	}
	return o.scrapeListingPage(ctx, term, o.profile.PageURL(searchURL, 1)), nil
}

// paginate walks result pages for one term until the limit is reached or a
// page yields no products. An empty page is normal termination, not failure.
func (o *Orchestrator) paginate(ctx context.Context, term, baseURL string) (pages, products int, err error) {
	for pageNum := 1; ; pageNum++ {
		if o.opts.MaxPages != nil && pageNum > *o.opts.MaxPages {
			return pages, products, nil
		}
		if err := ctx.Err(); err != nil {
			return pages, products, err
		}

		ReportProgress(ctx, fmt.Sprintf("Scraping page %d for %q", pageNum, term))
		pageURL := o.profile.PageURL(baseURL, pageNum)
		records := o.scrapeListingPage(ctx, term, pageURL)
		if len(records) == 0 {
			if pageNum == 1 {
				o.logger.Warn("no products on first page", "term", term)
			}
			return pages, products, nil
		}

		if err := o.sink.Append(records); err != nil {
			return pages, products, err
		}
		pages++
		products += len(records)
		o.logger.Info("page persisted", "term", term, "page", pageNum, "products", len(records))

		if o.opts.Delay != nil {
			if err := o.opts.Delay.WaitPage(ctx); err != nil {
				return pages, products, err
			}
		}
	}
}

// search submits the term through the storefront's search box and returns
// the resolved results URL. Failure is non-fatal to the session.
func (o *Orchestrator) search(term string) (string, bool) {
	if err := o.page.Navigate(o.profile.BaseURL); err != nil {
		o.logger.Error("search failed", "term", term, "err", err)
		return "", false
	}
	o.profile.DismissPopups(o.page)

	if err := o.page.TypeAndSubmit(o.profile.SearchInput, term); err != nil {
		o.logger.Error("search failed", "term", term, "err", err)
		return "", false
	}

	url, ok := o.page.CurrentURL()
	if !ok {
		o.logger.Error("search failed", "term", term, "err", "no results URL")
		return "", false
	}
	return url, true
}

// collectProductURLs enumerates detail-page links on the current results
// page, capped at MaxProducts. A wait-timeout yields zero links.
func (o *Orchestrator) collectProductURLs(searchURL string) []string {
	if err := o.page.Navigate(searchURL); err != nil {
		o.logger.Error("listing navigation failed", "url", searchURL, "err", err)
		return nil
	}
	if !o.page.WaitPresent(o.profile.ListingItem, o.opts.WaitTimeout) {
		o.logger.Warn("listing did not render in time", "url", searchURL)
		return nil
	}

	items := o.page.FindAll(o.profile.ListingItem)
	if max := o.opts.MaxProducts; max > 0 && len(items) > max {
		items = items[:max]
	}

	var urls []string
	for _, item := range items {
		link, ok := item.Find(o.profile.ProductLink)
		if !ok {
			continue
		}
		href, ok := link.Attr("href")
		if !ok || href == "" {
			continue
		}
		urls = append(urls, extract.ResolveURL(searchURL, href))
	}
	return urls
}

// extractDetail visits one product page and builds its record in a single
// pass. Only navigation-level failures return an error; missing fields keep
// their sentinels.
func (o *Orchestrator) extractDetail(ctx context.Context, term, productURL string) (models.ProductRecord, error) {
	if o.opts.Limiter != nil {
		if err := o.opts.Limiter.Wait(ctx); err != nil {
			return models.ProductRecord{}, err
		}
	}
	if err := o.page.Navigate(productURL); err != nil {
		return models.ProductRecord{}, err
	}

	rec := models.NewProductRecord(o.profile.Name, term)
	rec.ProductURL = productURL

	extract.Extract(o.page, &rec, o.profile.DetailSpecs)

	var probe func() (string, bool)
	if o.opts.Probe != nil {
		probe = o.opts.Probe.ImageFetch(ctx, productURL)
	}
	chain := extract.ImageChain(o.profile.ImageStrategies(o.page, probe)...)
	rec.ImageURL = chain.Resolve()

	rec.Reviews = o.profile.Reviews(o.page)
	rec.AvailableSizes = o.profile.SizeOptions(o.page)
	rec.FinalizePrices()
	return rec, nil
}

// scrapeListingPage extracts one record per listing card on pageURL. Any
// failure to render the page is treated as an empty page.
func (o *Orchestrator) scrapeListingPage(ctx context.Context, term, pageURL string) []models.ProductRecord {
	if o.opts.Limiter != nil {
		if err := o.opts.Limiter.Wait(ctx); err != nil {
			return nil
		}
	}
	if err := o.page.Navigate(pageURL); err != nil {
		o.logger.Error("page navigation failed", "url", pageURL, "err", err)
		return nil
	}
	if !o.page.WaitPresent(o.profile.ListingItem, o.opts.WaitTimeout) {
		return nil
	}

	var records []models.ProductRecord
	for _, item := range o.page.FindAll(o.profile.ListingItem) {
		rec := models.NewProductRecord(o.profile.Name, term)
		extract.Extract(item, &rec, o.profile.ListingSpecs)
		if rec.ProductURL != "" {
			rec.ProductURL = extract.ResolveURL(pageURL, rec.ProductURL)
		}
		rec.FinalizePrices()
		records = append(records, rec)
	}
	return records
}

func (o *Orchestrator) siteAllowed(ctx context.Context) bool {
	if o.opts.Robots == nil {
		return true
	}
	return o.opts.Robots.IsAllowed(ctx, o.opts.UserAgent, o.profile.BaseURL+"/")
}

func (o *Orchestrator) pace(ctx context.Context) error {
	if o.opts.Delay == nil {
		return nil
	}
	return o.opts.Delay.Wait(ctx)
}
