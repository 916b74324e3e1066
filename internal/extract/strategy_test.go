package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meera-dev/stylescrap/internal/driver"
	"github.com/meera-dev/stylescrap/internal/models"
)

func countingStrategy(name string, calls *int, value string, ok bool) Strategy {
	return Strategy{Name: name, Fetch: func() (string, bool) {
		*calls++
		return value, ok
	}}
}

func TestChainShortCircuits(t *testing.T) {
	var first, second int
	chain := ImageChain(
		countingStrategy("first", &first, "https://assets.myntra.com/a.jpg", true),
		countingStrategy("second", &second, "https://assets.myntra.com/b.jpg", true),
	)

	got := chain.Resolve()

	assert.Equal(t, "https://assets.myntra.com/a.jpg", got)
	assert.Equal(t, 1, first)
	assert.Equal(t, 0, second, "later strategies must not run once one is accepted")
}

func TestChainSkipsAbstentionsAndInvalid(t *testing.T) {
	var absent, relative, valid int
	chain := ImageChain(
		countingStrategy("absent", &absent, "", false),
		countingStrategy("relative", &relative, "/images/a.jpg", true),
		countingStrategy("valid", &valid, "https://cdn.nykaa.com/a.jpg?tr=w-200", true),
	)

	got := chain.Resolve()

	assert.Equal(t, "https://cdn.nykaa.com/a.jpg", got, "accepted value is query-stripped")
	assert.Equal(t, 1, absent)
	assert.Equal(t, 1, relative)
	assert.Equal(t, 1, valid)
}

func TestChainExhaustedReturnsUnavailable(t *testing.T) {
	var calls int
	chain := ImageChain(
		countingStrategy("a", &calls, "", false),
		countingStrategy("b", &calls, "not-a-url", true),
	)

	assert.Equal(t, models.Unavailable, chain.Resolve())
	assert.Equal(t, 2, calls)
}

func TestChainWithoutValidateAcceptsAnything(t *testing.T) {
	chain := Chain{Strategies: []Strategy{
		{Name: "raw", Fetch: func() (string, bool) { return "anything", true }},
	}}
	assert.Equal(t, "anything", chain.Resolve())
}

func TestAttrStrategy(t *testing.T) {
	img := &fakeNode{attrs: map[string]string{"src": "https://assets.myntra.com/a.jpg"}}
	page := node(map[string][]*fakeNode{"img.primary": {img}})

	value, ok := AttrStrategy("primary", page, driver.CSS("img.primary"), "src").Fetch()
	assert.True(t, ok)
	assert.Equal(t, "https://assets.myntra.com/a.jpg", value)

	_, ok = AttrStrategy("primary", node(nil), driver.CSS("img.primary"), "src").Fetch()
	assert.False(t, ok)
}

func TestBackgroundImageStrategy(t *testing.T) {
	div := &fakeNode{attrs: map[string]string{
		"style": `background-image: url("https://assets.myntra.com/bg.jpg");`,
	}}
	page := node(map[string][]*fakeNode{"image-grid-image": {div}})

	value, ok := BackgroundImageStrategy("grid", page, driver.Class("image-grid-image")).Fetch()
	assert.True(t, ok)
	assert.Equal(t, "https://assets.myntra.com/bg.jpg", value)

	plain := &fakeNode{attrs: map[string]string{"style": "color: red"}}
	page = node(map[string][]*fakeNode{"image-grid-image": {plain}})
	_, ok = BackgroundImageStrategy("grid", page, driver.Class("image-grid-image")).Fetch()
	assert.False(t, ok)
}

func TestScanImagesStrategyFiltersByKeyword(t *testing.T) {
	page := node(map[string][]*fakeNode{
		"img": {
			{attrs: map[string]string{"src": "https://tracker.example.com/pixel.gif"}},
			{attrs: map[string]string{}},
			{attrs: map[string]string{"src": "https://assets.MYNTRA.com/shirt.jpg"}},
		},
	})

	value, ok := ScanImagesStrategy("scan", page, []string{"myntra", "assets"}).Fetch()
	assert.True(t, ok)
	assert.Equal(t, "https://assets.MYNTRA.com/shirt.jpg", value)

	_, ok = ScanImagesStrategy("scan", page, []string{"nykaa"}).Fetch()
	assert.False(t, ok)
}
