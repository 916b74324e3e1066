// Package extract implements the field-extraction engine: declarative field
// specs resolved against a DOM context, and ordered fallback strategy chains
// for fields whose markup varies by page template. A missing node is never an
// error — the record keeps its Unavailable sentinel for that field.
package extract

import (
	"strings"

	"github.com/meera-dev/stylescrap/internal/driver"
	"github.com/meera-dev/stylescrap/internal/models"
)

// Field names one slot of a ProductRecord. The set is closed: specs can only
// target fields the record actually declares.
type Field int

const (
	FieldBrand Field = iota
	FieldName
	FieldDiscountedPrice
	FieldOriginalPrice
	FieldDiscountPercent
	FieldRating
	FieldReviewCount
	FieldImageURL
	FieldBreadcrumb
	FieldProductURL
)

// FieldSpec binds one record field to a selector and a read mode. Attr reads
// that attribute instead of text; Join switches to find-all and joins the
// non-blank texts of every match; Clean post-processes the raw value.
type FieldSpec struct {
	Field Field
	Sel   driver.Selector
	Attr  string
	Join  string
	Clean func(string) string
}

// Extract resolves every spec against q and stores the results into rec.
// Fields whose nodes are absent keep their sentinel defaults; the call never
// fails and performs no I/O beyond the DOM reads.
func Extract(q driver.Queryable, rec *models.ProductRecord, specs []FieldSpec) {
	for _, spec := range specs {
		value, ok := readSpec(q, spec)
		if !ok {
			continue
		}
		if spec.Clean != nil {
			value = spec.Clean(value)
		}
		if value == "" {
			continue
		}
		assign(rec, spec.Field, value)
	}
}

func readSpec(q driver.Queryable, spec FieldSpec) (string, bool) {
	if spec.Join != "" {
		parts := readAllText(q, spec.Sel)
		if len(parts) == 0 {
			return "", false
		}
		return strings.Join(parts, spec.Join), true
	}

	el, ok := q.Find(spec.Sel)
	if !ok {
		return "", false
	}
	var value string
	if spec.Attr != "" {
		value, ok = el.Attr(spec.Attr)
	} else {
		value, ok = el.Text()
	}
	if !ok {
		return "", false
	}
	return strings.TrimSpace(value), true
}

func readAllText(q driver.Queryable, sel driver.Selector) []string {
	var out []string
	for _, el := range q.FindAll(sel) {
		text, ok := el.Text()
		if !ok {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			out = append(out, text)
		}
	}
	return out
}

func assign(rec *models.ProductRecord, field Field, value string) {
	switch field {
	case FieldBrand:
		rec.Brand = value
	case FieldName:
		rec.Name = value
	case FieldDiscountedPrice:
		rec.DiscountedPrice = value
	case FieldOriginalPrice:
		rec.OriginalPrice = value
	case FieldDiscountPercent:
		rec.DiscountPercent = value
	case FieldRating:
		rec.Rating = value
	case FieldReviewCount:
		rec.ReviewCount = value
	case FieldImageURL:
		rec.ImageURL = value
	case FieldBreadcrumb:
		rec.Breadcrumb = value
	case FieldProductURL:
		rec.ProductURL = value
	}
}

// Texts returns the trimmed, non-blank text of every node matching sel, in
// DOM order. Reviews use this: the selector is treated as zero-or-more even
// on sites whose markup suggests a single node.
func Texts(q driver.Queryable, sel driver.Selector) []string {
	return readAllText(q, sel)
}
