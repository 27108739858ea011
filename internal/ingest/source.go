// Package ingest builds the row-aligned catalog and vector artifacts from the
// raw product feed. It runs offline; the service only loads its output.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bazaar-labs/bazaarsearch/internal/domain/product"
)

// sourceProduct tolerates the loose typing of the raw feed: ids may be
// numbers or strings, text fields may be null.
type sourceProduct struct {
	ID          any    `json:"id"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	ProductType string `json:"product_type"`
	Color       string `json:"color"`
	Occasion    string `json:"occasion"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// LoadSource reads the raw product feed, normalizes records, and deduplicates
// by id keeping the first occurrence. Missing text fields become empty
// strings so each index row embeds a well-defined combined text.
func LoadSource(path string) ([]product.Product, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read product feed %s: %w", path, err)
	}

	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()

	var raw []sourceProduct
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse product feed %s: %w", path, err)
	}

	products := make([]product.Product, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for i, r := range raw {
		id, err := idString(r.ID)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		products = append(products, product.Product{
			ID:          id,
			Category:    r.Category,
			Subcategory: r.Subcategory,
			ProductType: r.ProductType,
			Color:       r.Color,
			Occasion:    r.Occasion,
			Title:       r.Title,
			Description: r.Description,
		})
	}

	return products, nil
}

func idString(v any) (string, error) {
	switch id := v.(type) {
	case string:
		if strings.TrimSpace(id) == "" {
			return "", fmt.Errorf("empty id")
		}
		return id, nil
	case json.Number:
		return id.String(), nil
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), nil
	case nil:
		return "", fmt.Errorf("missing id")
	default:
		return "", fmt.Errorf("unsupported id type %T", v)
	}
}
