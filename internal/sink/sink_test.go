package sink

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meera-dev/stylescrap/internal/models"
)

func sampleRecord(keyword, brand string) models.ProductRecord {
	rec := models.NewProductRecord("myntra", keyword)
	rec.Brand = brand
	rec.Name = "Slim Shirt"
	rec.DiscountedPrice = "Rs. 799"
	rec.OriginalPrice = "Rs. 999"
	rec.ProductURL = "https://store.test/p/1"
	rec.Reviews = []string{"Fits well", "Nice color"}
	rec.AvailableSizes = []models.SizeOption{
		{Label: "S", Status: models.InStock},
		{Label: "M", Status: models.OutOfStock},
	}
	rec.ScrapedAt = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return rec
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVSinkWritesHeaderOnceAcrossReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	s, err := NewCSVSink(path)
	require.NoError(t, err)
	require.NoError(t, s.Append([]models.ProductRecord{sampleRecord("shirt", "BrandA")}))
	require.NoError(t, s.Close())

	// Reopen: the existing header must not be duplicated.
	s, err = NewCSVSink(path)
	require.NoError(t, err)
	require.NoError(t, s.Append([]models.ProductRecord{sampleRecord("shirt", "BrandB")}))
	require.NoError(t, s.Append([]models.ProductRecord{sampleRecord("dress", "BrandC")}))
	require.NoError(t, s.Close())

	rows := readCSV(t, path)
	require.Len(t, rows, 4)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "BrandA", rows[1][1])
	assert.Equal(t, "BrandB", rows[2][1])
	assert.Equal(t, "BrandC", rows[3][1])
}

func TestCSVSinkRowShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	s, err := NewCSVSink(path)
	require.NoError(t, err)
	require.NoError(t, s.Append([]models.ProductRecord{sampleRecord("shirt", "BrandA")}))
	require.NoError(t, s.Close())

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	row := rows[1]
	require.Len(t, row, len(Header))
	assert.Equal(t, "shirt", row[0])
	assert.Equal(t, "Fits well | Nice color", row[10])
	assert.Equal(t, "S (In Stock); M (Out of Stock)", row[11])
	assert.Equal(t, "2026-08-01T12:00:00Z", row[14])
}

func TestCSVSinkAppendIsDurablePerCall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	s, err := NewCSVSink(path)
	require.NoError(t, err)
	require.NoError(t, s.Append([]models.ProductRecord{sampleRecord("shirt", "BrandA")}))

	// Readable before Close: Append flushes.
	rows := readCSV(t, path)
	assert.Len(t, rows, 2)
	require.NoError(t, s.Close())
}

func TestJSONLSinkPreservesLists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")

	s, err := NewJSONLSink(path)
	require.NoError(t, err)
	require.NoError(t, s.Append([]models.ProductRecord{
		sampleRecord("shirt", "BrandA"),
		sampleRecord("shirt", "BrandB"),
	}))
	require.NoError(t, s.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []models.ProductRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec models.ProductRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		lines = append(lines, rec)
	}
	require.Len(t, lines, 2)
	assert.Equal(t, "BrandA", lines[0].Brand)
	assert.Equal(t, []string{"Fits well", "Nice color"}, lines[0].Reviews)
	assert.Equal(t, models.OutOfStock, lines[0].AvailableSizes[1].Status)
}

func TestDualSinkFansOut(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "out.csv")
	jsonlPath := filepath.Join(dir, "out.jsonl")

	s, err := NewDualSink(csvPath, jsonlPath)
	require.NoError(t, err)
	require.NoError(t, s.Append([]models.ProductRecord{sampleRecord("shirt", "BrandA")}))
	require.NoError(t, s.Close())

	assert.Len(t, readCSV(t, csvPath), 2)
	data, err := os.ReadFile(jsonlPath)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestJoinHelpers(t *testing.T) {
	assert.Equal(t, "No reviews", JoinReviews(nil))
	assert.Equal(t, "a | b", JoinReviews([]string{"a", "b"}))

	assert.Equal(t, "No sizes", JoinSizes(nil))
	assert.Equal(t, "S (In Stock); M (Out of Stock)", JoinSizes([]models.SizeOption{
		{Label: "S", Status: models.InStock},
		{Label: "M", Status: models.OutOfStock},
	}))
}

func TestWriteSearchURLs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "search_urls.json")

	require.NoError(t, WriteSearchURLs(path, map[string]string{
		"white shirt": "https://store.test/search?q=white+shirt",
		"jacket":      "",
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "https://store.test/search?q=white+shirt", got["white shirt"])
	assert.Equal(t, "", got["jacket"])
}
