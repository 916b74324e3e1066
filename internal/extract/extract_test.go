package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meera-dev/stylescrap/internal/driver"
	"github.com/meera-dev/stylescrap/internal/models"
)

// fakeNode is an in-memory DOM node for exercising the extraction engine
// without a browser. Children are keyed by selector query string.
type fakeNode struct {
	text     string
	textGone bool
	attrs    map[string]string
	children map[string][]*fakeNode
}

func (n *fakeNode) Find(sel driver.Selector) (driver.Element, bool) {
	kids := n.children[sel.Query]
	if len(kids) == 0 {
		return nil, false
	}
	return kids[0], true
}

func (n *fakeNode) FindAll(sel driver.Selector) []driver.Element {
	kids := n.children[sel.Query]
	out := make([]driver.Element, 0, len(kids))
	for _, k := range kids {
		out = append(out, k)
	}
	return out
}

func (n *fakeNode) Text() (string, bool) {
	if n.textGone {
		return "", false
	}
	return n.text, true
}

func (n *fakeNode) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

func (n *fakeNode) Click() bool { return true }

func node(children map[string][]*fakeNode) *fakeNode {
	return &fakeNode{children: children}
}

func textNode(text string) *fakeNode {
	return &fakeNode{text: text}
}

func TestExtractPopulatesMatchedFields(t *testing.T) {
	page := node(map[string][]*fakeNode{
		"pdp-title": {textNode("  Roadster  ")},
		"pdp-name":  {textNode("Men Solid Casual Shirt")},
	})
	rec := models.NewProductRecord("myntra", "white shirt")

	Extract(page, &rec, []FieldSpec{
		{Field: FieldBrand, Sel: driver.Class("pdp-title")},
		{Field: FieldName, Sel: driver.Class("pdp-name")},
	})

	assert.Equal(t, "Roadster", rec.Brand)
	assert.Equal(t, "Men Solid Casual Shirt", rec.Name)
}

func TestExtractKeepsSentinelsForMissingNodes(t *testing.T) {
	page := node(nil)
	rec := models.NewProductRecord("myntra", "white shirt")

	Extract(page, &rec, []FieldSpec{
		{Field: FieldBrand, Sel: driver.Class("pdp-title")},
		{Field: FieldRating, Sel: driver.CSS("div.ratings")},
	})

	assert.Equal(t, models.Unavailable, rec.Brand)
	assert.Equal(t, models.Unavailable, rec.Rating)
}

func TestExtractBlankTextKeepsSentinel(t *testing.T) {
	page := node(map[string][]*fakeNode{
		"pdp-title": {textNode("   ")},
	})
	rec := models.NewProductRecord("myntra", "dress")

	Extract(page, &rec, []FieldSpec{
		{Field: FieldBrand, Sel: driver.Class("pdp-title")},
	})

	assert.Equal(t, models.Unavailable, rec.Brand)
}

func TestExtractAttrMode(t *testing.T) {
	link := &fakeNode{attrs: map[string]string{"href": "https://www.myntra.com/shirts/123/buy"}}
	page := node(map[string][]*fakeNode{
		"a.product-link": {link},
	})
	rec := models.NewProductRecord("myntra", "shirt")

	Extract(page, &rec, []FieldSpec{
		{Field: FieldProductURL, Sel: driver.CSS("a.product-link"), Attr: "href"},
	})

	assert.Equal(t, "https://www.myntra.com/shirts/123/buy", rec.ProductURL)
}

func TestExtractJoinMode(t *testing.T) {
	page := node(map[string][]*fakeNode{
		"breadcrumbs-crumb": {textNode("Home"), textNode("Clothing"), textNode(" Shirts "), textNode("")},
	})
	rec := models.NewProductRecord("myntra", "shirt")

	Extract(page, &rec, []FieldSpec{
		{Field: FieldBreadcrumb, Sel: driver.Class("breadcrumbs-crumb"), Join: " > "},
	})

	assert.Equal(t, "Home > Clothing > Shirts", rec.Breadcrumb)
}

func TestExtractCleanRunsBeforeAssign(t *testing.T) {
	page := node(map[string][]*fakeNode{
		"ratingsCount": {textNode("(2.3k)")},
	})
	rec := models.NewProductRecord("myntra", "shirt")

	Extract(page, &rec, []FieldSpec{
		{Field: FieldReviewCount, Sel: driver.Class("ratingsCount"), Clean: func(s string) string {
			return strings.Trim(s, "()")
		}},
	})

	assert.Equal(t, "2.3k", rec.ReviewCount)
}

func TestTextsZeroOrMore(t *testing.T) {
	empty := node(nil)
	assert.Empty(t, Texts(empty, driver.Class("review")))

	page := node(map[string][]*fakeNode{
		"review": {textNode("Great fit"), textNode("  "), textNode("Color faded after wash")},
	})
	got := Texts(page, driver.Class("review"))
	require.Len(t, got, 2)
	assert.Equal(t, []string{"Great fit", "Color faded after wash"}, got)
}
