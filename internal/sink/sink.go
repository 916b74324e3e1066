// Package sink persists extracted records incrementally. Every Append is
// durable once it returns: a crash later in the crawl loses at most the unit
// of work that had not been appended yet.
package sink

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/meera-dev/stylescrap/internal/models"
)

// Header is the fixed CSV column set, written exactly once per output file.
var Header = []string{
	"search_keyword", "brand", "name", "product_url", "image_url",
	"original_price", "discounted_price", "discount_percent", "rating",
	"review_count", "reviews", "available_sizes", "breadcrumb", "site",
	"scraped_at",
}

const (
	noReviews = "No reviews"
	noSizes   = "No sizes"
)

// CSVSink appends records to a CSV file. The file is opened in append mode;
// the header is emitted only when the file is new or empty, so re-running a
// crawl keeps extending the same output.
type CSVSink struct {
	file   *os.File
	writer *csv.Writer
}

func NewCSVSink(filename string) (*CSVSink, error) {
	if err := ensureDir(filename); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat csv file: %w", err)
	}

	writer := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := writer.Write(Header); err != nil {
			f.Close()
			return nil, fmt.Errorf("write csv header: %w", err)
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			f.Close()
			return nil, fmt.Errorf("flush csv header: %w", err)
		}
	}

	return &CSVSink{file: f, writer: writer}, nil
}

// Append writes records as complete rows and flushes before returning.
func (s *CSVSink) Append(records []models.ProductRecord) error {
	for _, rec := range records {
		if err := s.writer.Write(row(rec)); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		return fmt.Errorf("flush csv records: %w", err)
	}
	return nil
}

func (s *CSVSink) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return fmt.Errorf("flush csv writer: %w", err)
	}
	return s.file.Close()
}

func row(rec models.ProductRecord) []string {
	return []string{
		rec.SearchKeyword,
		rec.Brand,
		rec.Name,
		rec.ProductURL,
		rec.ImageURL,
		rec.OriginalPrice,
		rec.DiscountedPrice,
		rec.DiscountPercent,
		rec.Rating,
		rec.ReviewCount,
		JoinReviews(rec.Reviews),
		JoinSizes(rec.AvailableSizes),
		rec.Breadcrumb,
		rec.Site,
		rec.ScrapedAt.Format(time.RFC3339),
	}
}

// JoinReviews flattens review snippets for tabular output.
func JoinReviews(reviews []string) string {
	if len(reviews) == 0 {
		return noReviews
	}
	return strings.Join(reviews, " | ")
}

// JoinSizes flattens size options for tabular output.
func JoinSizes(sizes []models.SizeOption) string {
	if len(sizes) == 0 {
		return noSizes
	}
	parts := make([]string, 0, len(sizes))
	for _, s := range sizes {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, "; ")
}

// JSONLSink appends records as one JSON document per line, multi-valued
// fields preserved as lists.
type JSONLSink struct {
	file    *os.File
	writer  *bufio.Writer
	encoder *json.Encoder
}

func NewJSONLSink(filename string) (*JSONLSink, error) {
	if err := ensureDir(filename); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open jsonl file: %w", err)
	}

	buffer := bufio.NewWriter(f)
	return &JSONLSink{file: f, writer: buffer, encoder: json.NewEncoder(buffer)}, nil
}

func (s *JSONLSink) Append(records []models.ProductRecord) error {
	for _, rec := range records {
		if err := s.encoder.Encode(rec); err != nil {
			return fmt.Errorf("encode jsonl record: %w", err)
		}
	}
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("flush jsonl writer: %w", err)
	}
	return nil
}

func (s *JSONLSink) Close() error {
	if err := s.writer.Flush(); err != nil {
		s.file.Close()
		return fmt.Errorf("flush jsonl writer: %w", err)
	}
	return s.file.Close()
}

// DualSink fans each append out to CSV and JSONL.
type DualSink struct {
	csv   *CSVSink
	jsonl *JSONLSink
}

func NewDualSink(csvFilename, jsonlFilename string) (*DualSink, error) {
	csvSink, err := NewCSVSink(csvFilename)
	if err != nil {
		return nil, err
	}
	jsonlSink, err := NewJSONLSink(jsonlFilename)
	if err != nil {
		csvSink.Close()
		return nil, err
	}
	return &DualSink{csv: csvSink, jsonl: jsonlSink}, nil
}

func (s *DualSink) Append(records []models.ProductRecord) error {
	if err := s.csv.Append(records); err != nil {
		return fmt.Errorf("csv append: %w", err)
	}
	if err := s.jsonl.Append(records); err != nil {
		return fmt.Errorf("jsonl append: %w", err)
	}
	return nil
}

func (s *DualSink) Close() error {
	errCSV := s.csv.Close()
	errJSONL := s.jsonl.Close()
	if errCSV != nil {
		return errCSV
	}
	return errJSONL
}

// WriteSearchURLs records the term → resolved-results-URL audit artifact.
// Terms whose search failed map to an empty string.
func WriteSearchURLs(filename string, urls map[string]string) error {
	if err := ensureDir(filename); err != nil {
		return err
	}
	data, err := json.MarshalIndent(urls, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal search urls: %w", err)
	}
	if err := os.WriteFile(filename, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write search urls: %w", err)
	}
	return nil
}

func ensureDir(filename string) error {
	dir := filepath.Dir(filename)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}
