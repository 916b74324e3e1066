package extract

import (
	"net/url"
	"strings"
)

// IsAbsoluteURL reports whether v looks like a scheme-qualified URL. It is
// the structural check that gates strategy-chain acceptance for image URLs.
func IsAbsoluteURL(v string) bool {
	return strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://")
}

// StripQuery truncates a URL at its first query separator. Idempotent:
// stripping an already-stripped URL is a no-op.
func StripQuery(v string) string {
	if i := strings.IndexByte(v, '?'); i >= 0 {
		return v[:i]
	}
	return v
}

// ResolveURL resolves href against base. Listing anchors often carry
// scheme-less hrefs; the attribute text is the literal markup, not the
// browser-resolved URL, so resolution has to happen here. Absolute hrefs
// pass through unchanged; unparseable input falls back to the raw href.
func ResolveURL(base, href string) string {
	if href == "" || IsAbsoluteURL(href) {
		return href
	}
	b, err := url.Parse(base)
	if err != nil || !b.IsAbs() {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}

// ParseBackgroundImage pulls the URL out of an inline style declaration like
// `background-image: url("https://...");`. ok=false when the style carries no
// background image.
func ParseBackgroundImage(style string) (string, bool) {
	const marker = "background-image"
	i := strings.Index(style, marker)
	if i < 0 {
		return "", false
	}
	rest := style[i+len(marker):]
	start := strings.Index(rest, "url(")
	if start < 0 {
		return "", false
	}
	rest = rest[start+len("url("):]
	end := strings.IndexByte(rest, ')')
	if end < 0 {
		return "", false
	}
	url := strings.Trim(rest[:end], `"' `)
	if url == "" {
		return "", false
	}
	return url, true
}
