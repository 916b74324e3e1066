package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/meera-dev/stylescrap/internal/models"
	"github.com/meera-dev/stylescrap/internal/sink"
)

// printJSON writes v to w as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printRecordsTable prints records in a human-friendly card layout.
func printRecordsTable(records []models.ProductRecord) {
	for i, rec := range records {
		if i > 0 {
			fmt.Fprintln(os.Stdout)
		}
		title := rec.Name
		if rec.Brand != models.Unavailable {
			title = rec.Brand + " - " + title
		}
		fmt.Fprintf(os.Stdout, " %d. %s\n", i+1, title)

		// Price line with optional original price and discount
		priceLine := "    Price: " + rec.DiscountedPrice
		if rec.OriginalPrice != rec.DiscountedPrice {
			priceLine += fmt.Sprintf("  (was %s", rec.OriginalPrice)
			if rec.DiscountPercent != models.Unavailable {
				priceLine += ", " + rec.DiscountPercent
			}
			priceLine += ")"
		}
		fmt.Fprintln(os.Stdout, priceLine)

		if rec.Rating != models.Unavailable {
			ratingLine := "    Rating: " + rec.Rating
			if rec.ReviewCount != models.Unavailable {
				ratingLine += fmt.Sprintf("  (%s ratings)", rec.ReviewCount)
			}
			fmt.Fprintln(os.Stdout, ratingLine)
		}
		if len(rec.AvailableSizes) > 0 {
			fmt.Fprintf(os.Stdout, "    Sizes: %s\n", sink.JoinSizes(rec.AvailableSizes))
		}
		if len(rec.Reviews) > 0 {
			fmt.Fprintf(os.Stdout, "    Reviews: %s\n", truncate(sink.JoinReviews(rec.Reviews), 160))
		}
		if rec.Breadcrumb != models.Unavailable {
			fmt.Fprintf(os.Stdout, "    Category: %s\n", rec.Breadcrumb)
		}
		if rec.ImageURL != models.Unavailable {
			fmt.Fprintf(os.Stdout, "    Image: %s\n", rec.ImageURL)
		}
		fmt.Fprintf(os.Stdout, "    %s\n", rec.ProductURL)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
