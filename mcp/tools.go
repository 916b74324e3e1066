package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/time/rate"

	"github.com/meera-dev/stylescrap/config"
	"github.com/meera-dev/stylescrap/internal/crawl"
	"github.com/meera-dev/stylescrap/internal/driver"
	"github.com/meera-dev/stylescrap/internal/httputil"
	"github.com/meera-dev/stylescrap/internal/site"
	"github.com/meera-dev/stylescrap/internal/stealth"
)

func registerTools(s *server.MCPServer, cfg *config.Config) {
	// search_products
	searchTool := mcp.NewTool("search_products",
		mcp.WithDescription("Search products by keyword on a fashion storefront"),
		mcp.WithString("keyword",
			mcp.Required(),
			mcp.Description("Search keyword"),
		),
		mcp.WithString("site",
			mcp.Description("Target site (default: myntra)"),
		),
	)
	s.AddTool(searchTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSearchProducts(ctx, request, cfg)
	})

	// product_detail
	detailTool := mcp.NewTool("product_detail",
		mcp.WithDescription("Get full product details (image, sizes, reviews) by URL"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Product page URL"),
		),
		mcp.WithString("site",
			mcp.Description("Target site (default: myntra)"),
		),
	)
	s.AddTool(detailTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleProductDetail(ctx, request, cfg)
	})

	// list_sites
	listTool := mcp.NewTool("list_sites",
		mcp.WithDescription("List supported storefront sites"),
	)
	s.AddTool(listTool, handleListSites)
}

// toolSession is one browser session opened for a single tool call. MCP
// calls arrive at unpredictable intervals, so no session is kept warm
// between them.
type toolSession struct {
	browser *driver.Session
	orch    *crawl.Orchestrator
}

func openToolSession(cfg *config.Config, siteName string) (*toolSession, error) {
	profile, err := site.Get(siteName)
	if err != nil {
		return nil, err
	}

	fingerprints := stealth.NewFingerprintPool()
	fp := fingerprints.Next()

	opts := driver.DefaultOptions()
	opts.Headless = cfg.Headless
	opts.UserAgent = fp.UserAgent

	browser, err := driver.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open browser session: %w", err)
	}

	probeClient := httputil.NewClient(&stealth.Transport{
		Base:        &http.Transport{},
		Fingerprint: fingerprints,
		Delay:       stealth.NewHumanDelay(stealth.DelayProfile(cfg.DelayProfile)),
		RateLimiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
	})

	orch := crawl.New(browser, profile, nil, crawl.Options{
		MaxProducts: cfg.MaxProducts,
		WaitTimeout: cfg.WaitTimeout,
		Delay:       stealth.NewHumanDelay(stealth.DelayProfile(cfg.DelayProfile)),
		Limiter:     rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
		Probe:       &site.StaticProbe{Client: probeClient},
		UserAgent:   fp.UserAgent,
	})
	return &toolSession{browser: browser, orch: orch}, nil
}

func (t *toolSession) Close() {
	t.browser.Close()
}

func handleSearchProducts(ctx context.Context, request mcp.CallToolRequest, cfg *config.Config) (*mcp.CallToolResult, error) {
	keyword := request.GetString("keyword", "")
	if keyword == "" {
		return mcp.NewToolResultError("keyword is required"), nil
	}
	siteName := request.GetString("site", cfg.DefaultSite)

	ts, err := openToolSession(cfg, siteName)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("session error: %v", err)), nil
	}
	defer ts.Close()

	records, err := ts.orch.ListingOnce(ctx, keyword)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search error: %v", err)), nil
	}

	data, _ := json.MarshalIndent(records, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func handleProductDetail(ctx context.Context, request mcp.CallToolRequest, cfg *config.Config) (*mcp.CallToolResult, error) {
	url := request.GetString("url", "")
	if url == "" {
		return mcp.NewToolResultError("url is required"), nil
	}
	siteName := request.GetString("site", cfg.DefaultSite)

	ts, err := openToolSession(cfg, siteName)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("session error: %v", err)), nil
	}
	defer ts.Close()

	record, err := ts.orch.ProductDetail(ctx, url)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("detail error: %v", err)), nil
	}

	data, _ := json.MarshalIndent(record, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func handleListSites(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, _ := json.MarshalIndent(site.List(), "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}
