package stealth

import (
	"context"
	"math/rand/v2"
	"time"
)

// DelayProfile names a pacing configuration.
type DelayProfile string

const (
	ProfileCautious   DelayProfile = "cautious"
	ProfileNormal     DelayProfile = "normal"
	ProfileAggressive DelayProfile = "aggressive"
)

// HumanDelay paces the crawl with jittered sleeps between requests so a
// single serial session does not hammer the storefront.
type HumanDelay struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

// NewHumanDelay creates a pacing generator for the given profile.
func NewHumanDelay(profile DelayProfile) *HumanDelay {
	switch profile {
	case ProfileCautious:
		return &HumanDelay{MinDelay: 2 * time.Second, MaxDelay: 5 * time.Second}
	case ProfileAggressive:
		return &HumanDelay{MinDelay: 200 * time.Millisecond, MaxDelay: 800 * time.Millisecond}
	default: // normal
		return &HumanDelay{MinDelay: time.Second, MaxDelay: 2 * time.Second}
	}
}

// Wait sleeps for one visit-to-visit delay, honoring cancellation.
func (h *HumanDelay) Wait(ctx context.Context) error {
	select {
	case <-time.After(h.VisitDelay()):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitPage sleeps for the longer between-listing-pages delay.
func (h *HumanDelay) WaitPage(ctx context.Context) error {
	select {
	case <-time.After(h.PageDelay()):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// VisitDelay returns the delay between detail-page visits.
func (h *HumanDelay) VisitDelay() time.Duration {
	return h.randomBetween(h.MinDelay, h.MaxDelay)
}

// PageDelay returns the delay between listing pages.
func (h *HumanDelay) PageDelay() time.Duration {
	return h.randomBetween(h.MaxDelay, h.MaxDelay*2)
}

func (h *HumanDelay) randomBetween(min, max time.Duration) time.Duration {
	if min >= max {
		return min
	}
	return min + time.Duration(rand.Int64N(int64(max-min)))
}
