package stealth

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// Transport is an http.RoundTripper for the plain-HTTP side of the scraper
// (the static page probe). Pipeline: Fingerprint → RateLimiter → Delay → Send.
// Robots checks happen at the session level, not per probe request.
type Transport struct {
	Base        http.RoundTripper
	Fingerprint *FingerprintPool
	Delay       *HumanDelay
	RateLimiter *rate.Limiter
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Fingerprint != nil {
		fp := t.Fingerprint.Next()
		req.Header.Set("User-Agent", fp.UserAgent)
		for key, vals := range fp.Headers {
			if req.Header.Get(key) == "" {
				for _, v := range vals {
					req.Header.Add(key, v)
				}
			}
		}
	}

	if t.RateLimiter != nil {
		if err := t.RateLimiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	if t.Delay != nil {
		if err := t.Delay.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("delay: %w", err)
		}
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
