// Package catalog loads product lists and resolves the per-product assets
// (remote images, WhatsApp deep links) the renderer needs.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/cataworks/cata-api/internal/domain/model"
)

// Column names understood by the loader. The header row may carry extra
// columns; they are ignored.
const (
	colCategory = "category"
	colName     = "name"
	colPrice    = "price"
	colImageURL = "image_url"
)

// LoadProducts parses a comma-delimited product list and returns the rows
// sorted ascending by category. The sort is stable, so ties keep their
// original file order. Rows missing a category or a name are dropped without
// reporting; a malformed price fails the whole load.
func LoadProducts(path string) ([]model.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open product list: %w", err)
	}
	defer f.Close()

	products, err := parseProducts(f)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Category < products[j].Category
	})
	return products, nil
}

func parseProducts(r io.Reader) ([]model.Product, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are tolerated; missing cells read as empty

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}
	cols := headerIndex(header)

	var products []model.Product
	for line := 2; ; line++ {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("read row %d: %w", line, readErr)
		}

		category := strings.TrimSpace(field(record, cols, colCategory))
		name := strings.TrimSpace(field(record, cols, colName))
		if category == "" || name == "" {
			continue
		}

		price, priceErr := parsePrice(field(record, cols, colPrice))
		if priceErr != nil {
			return nil, fmt.Errorf("row %d: %w", line, priceErr)
		}

		products = append(products, model.Product{
			Category: category,
			Name:     name,
			Price:    price,
			ImageURL: strings.TrimSpace(field(record, cols, colImageURL)),
		})
	}
	return products, nil
}

// headerIndex maps normalized column names to their positions.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// parsePrice returns nil for a blank price. Anything non-blank must parse as
// a decimal number; there is no per-row recovery.
func parsePrice(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed price %q: %w", raw, err)
	}
	return &v, nil
}
