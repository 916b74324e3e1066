// Package driver wraps a rod-controlled browser behind the narrow page-driver
// capability the crawl engine needs: navigate, query, read, type. DOM queries
// report absence as (value, false) — absence is an expected outcome here, not
// an error, and nothing below this layer leaks rod types upward.
package driver

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Queryable is any DOM context that can be searched: a page or an element.
type Queryable interface {
	// Find returns the first match, or ok=false when nothing matches.
	Find(sel Selector) (Element, bool)
	// FindAll returns every match in DOM order; an empty slice when none.
	FindAll(sel Selector) []Element
}

// Element is a handle to a located DOM node.
type Element interface {
	Queryable
	// Text reads the node's visible text. ok=false only when the node became
	// unreadable (detached, navigated away).
	Text() (string, bool)
	// Attr reads an attribute value. ok=false when the attribute is absent.
	Attr(name string) (string, bool)
	// Click clicks the node. ok=false when the click could not be delivered.
	Click() bool
}

// Page is the full driving capability consumed by the orchestrator.
type Page interface {
	Queryable
	Navigate(url string) error
	CurrentURL() (string, bool)
	// WaitPresent blocks until the selector matches or the timeout elapses.
	WaitPresent(sel Selector, timeout time.Duration) bool
	// TypeAndSubmit focuses the selected input, replaces its content with
	// text and submits with Enter.
	TypeAndSubmit(sel Selector, text string) error
}

// Options configures the browser session.
type Options struct {
	Headless  bool
	UserAgent string
	Width     int
	Height    int
}

func DefaultOptions() Options {
	return Options{
		Headless: true,
		Width:    1920,
		Height:   1080,
	}
}

// Session is one live browser session. It is opened once, driven serially
// for the whole crawl, and must be closed exactly once.
type Session struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

// Open launches the browser and creates the single page the session reuses.
func Open(opts Options) (*Session, error) {
	l := launcher.New().
		Headless(opts.Headless).
		Logger(io.Discard).
		Set("no-sandbox").
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("disable-blink-features", "AutomationControlled")
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		browser.Close()
		l.Cleanup()
		return nil, fmt.Errorf("open page: %w", err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  opts.Width,
		Height: opts.Height,
	}); err != nil {
		browser.Close()
		l.Cleanup()
		return nil, fmt.Errorf("set viewport: %w", err)
	}

	if opts.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent: opts.UserAgent,
		}); err != nil {
			browser.Close()
			l.Cleanup()
			return nil, fmt.Errorf("set user agent: %w", err)
		}
	}

	return &Session{launcher: l, browser: browser, page: page}, nil
}

// Close releases the page, the browser connection and the launched process.
func (s *Session) Close() error {
	var firstErr error
	if s.page != nil {
		if err := s.page.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close page: %w", err)
		}
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close browser: %w", err)
		}
	}
	if s.launcher != nil {
		s.launcher.Cleanup()
	}
	return firstErr
}

func (s *Session) Navigate(url string) error {
	if err := s.page.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	// Best effort: give the renderer a chance to settle. A slow page is not
	// a navigation failure; element waits handle the rest.
	_ = s.page.Timeout(15 * time.Second).WaitLoad()
	return nil
}

func (s *Session) CurrentURL() (string, bool) {
	info, err := s.page.Info()
	if err != nil || info.URL == "" {
		return "", false
	}
	return info.URL, true
}

func (s *Session) WaitPresent(sel Selector, timeout time.Duration) bool {
	p := s.page.Timeout(timeout)
	var err error
	if sel.isXPath() {
		_, err = p.ElementX(sel.Query)
	} else {
		_, err = p.Element(sel.css())
	}
	return err == nil
}

func (s *Session) Find(sel Selector) (Element, bool) {
	p := s.page.Sleeper(rod.NotFoundSleeper)
	var el *rod.Element
	var err error
	if sel.isXPath() {
		el, err = p.ElementX(sel.Query)
	} else {
		el, err = p.Element(sel.css())
	}
	if err != nil {
		return nil, false
	}
	return &rodElement{el: el}, true
}

func (s *Session) FindAll(sel Selector) []Element {
	var els rod.Elements
	var err error
	if sel.isXPath() {
		els, err = s.page.ElementsX(sel.Query)
	} else {
		els, err = s.page.Elements(sel.css())
	}
	if err != nil {
		return nil
	}
	return wrapAll(els)
}

func (s *Session) TypeAndSubmit(sel Selector, text string) error {
	// The input usually renders after initial load; wait briefly for it.
	p := s.page.Timeout(10 * time.Second)
	var el *rod.Element
	var err error
	if sel.isXPath() {
		el, err = p.ElementX(sel.Query)
	} else {
		el, err = p.Element(sel.css())
	}
	if err != nil {
		return fmt.Errorf("input %q not found: %w", sel.Query, err)
	}

	_ = el.SelectAllText()
	if err := el.Input(text); err != nil {
		return fmt.Errorf("type into %q: %w", sel.Query, err)
	}
	if err := el.Type(input.Enter); err != nil {
		return fmt.Errorf("submit %q: %w", sel.Query, err)
	}
	_ = s.page.Timeout(15 * time.Second).WaitLoad()
	return nil
}

type rodElement struct {
	el *rod.Element
}

func (r *rodElement) Text() (string, bool) {
	text, err := r.el.Text()
	if err != nil {
		return "", false
	}
	return text, true
}

func (r *rodElement) Attr(name string) (string, bool) {
	val, err := r.el.Attribute(name)
	if err != nil || val == nil {
		return "", false
	}
	return *val, true
}

func (r *rodElement) Click() bool {
	return r.el.Click(proto.InputMouseButtonLeft, 1) == nil
}

func (r *rodElement) Find(sel Selector) (Element, bool) {
	e := r.el.Sleeper(rod.NotFoundSleeper)
	var el *rod.Element
	var err error
	if sel.isXPath() {
		el, err = e.ElementX(sel.Query)
	} else {
		el, err = e.Element(sel.css())
	}
	if err != nil {
		return nil, false
	}
	return &rodElement{el: el}, true
}

func (r *rodElement) FindAll(sel Selector) []Element {
	var els rod.Elements
	var err error
	if sel.isXPath() {
		els, err = r.el.ElementsX(sel.Query)
	} else {
		els, err = r.el.Elements(sel.css())
	}
	if err != nil {
		return nil
	}
	return wrapAll(els)
}

func wrapAll(els rod.Elements) []Element {
	out := make([]Element, 0, len(els))
	for _, el := range els {
		out = append(out, &rodElement{el: el})
	}
	return out
}
