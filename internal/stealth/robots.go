package stealth

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"

	"github.com/meera-dev/stylescrap/internal/httputil"
)

// RobotsChecker caches and checks robots.txt rules per domain. The crawl
// orchestrator consults it once per search term before driving the browser.
type RobotsChecker struct {
	rules    map[string]*robotstxt.RobotsData
	expiry   map[string]time.Time
	mu       sync.Mutex
	client   *http.Client
	cacheTTL time.Duration
	enabled  bool
}

// NewRobotsChecker creates a robots.txt checker. When disabled every URL is
// allowed.
func NewRobotsChecker(client *http.Client, enabled bool) *RobotsChecker {
	return &RobotsChecker{
		rules:    make(map[string]*robotstxt.RobotsData),
		expiry:   make(map[string]time.Time),
		client:   client,
		cacheTTL: time.Hour,
		enabled:  enabled,
	}
}

// IsAllowed checks whether rawURL may be crawled by userAgent. An unfetchable
// robots.txt allows the request.
func (r *RobotsChecker) IsAllowed(ctx context.Context, userAgent, rawURL string) bool {
	if !r.enabled {
		return true
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	data, err := r.getRobots(ctx, u.Scheme+"://"+u.Host)
	if err != nil {
		return true
	}

	return data.FindGroup(userAgent).Test(u.Path)
}

func (r *RobotsChecker) getRobots(ctx context.Context, domain string) (*robotstxt.RobotsData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if data, ok := r.rules[domain]; ok {
		if exp, ok := r.expiry[domain]; ok && time.Now().Before(exp) {
			return data, nil
		}
	}

	resp, err := httputil.Get(ctx, r.client, domain+"/robots.txt", 1)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := httputil.ReadBody(resp)
	if err != nil {
		return nil, err
	}

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		return nil, err
	}

	r.rules[domain] = data
	r.expiry[domain] = time.Now().Add(r.cacheTTL)
	return data, nil
}
