package driver

// Kind identifies how a selector query addresses the DOM.
type Kind int

const (
	ByCSS Kind = iota
	ByClass
	ByXPath
	ByTag
)

// Selector is a site-specific DOM query. Selector strings are configuration
// data owned by site profiles, never by the crawl algorithm.
type Selector struct {
	Kind  Kind
	Query string
}

func CSS(q string) Selector   { return Selector{Kind: ByCSS, Query: q} }
func Class(q string) Selector { return Selector{Kind: ByClass, Query: q} }
func XPath(q string) Selector { return Selector{Kind: ByXPath, Query: q} }
func Tag(q string) Selector   { return Selector{Kind: ByTag, Query: q} }

// css flattens class and tag selectors into a CSS query. XPath selectors
// keep their own lookup path.
func (s Selector) css() string {
	switch s.Kind {
	case ByClass:
		return "." + s.Query
	case ByTag:
		return s.Query
	default:
		return s.Query
	}
}

func (s Selector) isXPath() bool { return s.Kind == ByXPath }
