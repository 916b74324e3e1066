package site

import (
	"context"
	"net/http"
	"strings"

	"github.com/meera-dev/stylescrap/internal/httputil"
	"golang.org/x/net/html"
)

// StaticProbe is the last image fallback: fetch the product page over plain
// HTTP and read its og:image meta tag. Useful when the rendered DOM hides
// the gallery behind lazy loading; any failure is an abstention.
type StaticProbe struct {
	Client *http.Client
}

// ImageFetch returns a strategy-chain fetch func for one product URL.
func (sp *StaticProbe) ImageFetch(ctx context.Context, pageURL string) func() (string, bool) {
	return func() (string, bool) {
		if sp == nil || sp.Client == nil || pageURL == "" {
			return "", false
		}
		resp, err := httputil.Get(ctx, sp.Client, pageURL, 1)
		if err != nil {
			return "", false
		}
		defer resp.Body.Close()

		body, err := httputil.ReadBody(resp)
		if err != nil {
			return "", false
		}
		return findOGImage(string(body))
	}
}

func findOGImage(htmlContent string) (string, bool) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", false
	}

	var found string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "meta" {
			var property, content string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "property", "name":
					property = attr.Val
				case "content":
					content = attr.Val
				}
			}
			if property == "og:image" && content != "" {
				found = content
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if found == "" {
		return "", false
	}
	return found, true
}
