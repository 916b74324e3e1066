package extract

import (
	"strings"

	"github.com/meera-dev/stylescrap/internal/driver"
	"github.com/meera-dev/stylescrap/internal/models"
)

// Strategy is one alternative way to obtain a value. Fetch abstains with
// ok=false; any internal failure (node gone, attribute empty) is an
// abstention, never an error that escapes the chain.
type Strategy struct {
	Name  string
	Fetch func() (string, bool)
}

// Chain evaluates strategies in declared order and accepts the first value
// that passes Validate, normalized by Normalize. Order encodes preference:
// most specific selector first, broadest scan last.
type Chain struct {
	Strategies []Strategy
	Validate   func(string) bool
	Normalize  func(string) string
}

// Resolve runs the chain, short-circuiting at the first accepted strategy.
// When every strategy abstains it returns the Unavailable sentinel.
func (c Chain) Resolve() string {
	for _, s := range c.Strategies {
		value, ok := s.Fetch()
		if !ok {
			continue
		}
		if c.Validate != nil && !c.Validate(value) {
			continue
		}
		if c.Normalize != nil {
			value = c.Normalize(value)
		}
		return value
	}
	return models.Unavailable
}

// ImageChain builds a chain tuned for image URLs: accepted values must be
// scheme-qualified and are stripped of query parameters.
func ImageChain(strategies ...Strategy) Chain {
	return Chain{
		Strategies: strategies,
		Validate:   IsAbsoluteURL,
		Normalize:  StripQuery,
	}
}

// AttrStrategy reads an attribute off the first node matching sel.
func AttrStrategy(name string, q driver.Queryable, sel driver.Selector, attr string) Strategy {
	return Strategy{Name: name, Fetch: func() (string, bool) {
		el, ok := q.Find(sel)
		if !ok {
			return "", false
		}
		return el.Attr(attr)
	}}
}

// BackgroundImageStrategy reads the CSS background-image URL from a node's
// inline style.
func BackgroundImageStrategy(name string, q driver.Queryable, sel driver.Selector) Strategy {
	return Strategy{Name: name, Fetch: func() (string, bool) {
		el, ok := q.Find(sel)
		if !ok {
			return "", false
		}
		style, ok := el.Attr("style")
		if !ok {
			return "", false
		}
		return ParseBackgroundImage(style)
	}}
}

// ScanImagesStrategy is the last-resort scan: every <img> on the page,
// first src whose lowercase form contains one of the keywords.
func ScanImagesStrategy(name string, q driver.Queryable, keywords []string) Strategy {
	return Strategy{Name: name, Fetch: func() (string, bool) {
		for _, el := range q.FindAll(driver.Tag("img")) {
			src, ok := el.Attr("src")
			if !ok {
				continue
			}
			lower := strings.ToLower(src)
			for _, kw := range keywords {
				if strings.Contains(lower, kw) {
					return src, true
				}
			}
		}
		return "", false
	}}
}
