// Package catalog holds the immutable, row-addressed product catalog.
// The catalog is loaded once at process start and never mutated, so
// concurrent request-time reads need no locking.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bazaar-labs/bazaarsearch/internal/domain"
	"github.com/bazaar-labs/bazaarsearch/internal/domain/product"
)

// Store is the immutable in-memory product catalog. Row i corresponds
// exactly to row i of the similarity index built from the same snapshot.
type Store struct {
	products []product.Product
}

// New builds a catalog from row-ordered products, rejecting blank or
// duplicate identifiers.
func New(products []product.Product) (*Store, error) {
	seen := make(map[string]struct{}, len(products))
	for i, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("row %d has empty id", i)
		}
		if _, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("row %d id %q: %w", i, p.ID, domain.ErrDuplicateID)
		}
		seen[p.ID] = struct{}{}
	}
	return &Store{products: products}, nil
}

// Load reads the catalog artifact produced by the index builder.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var products []product.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	store, err := New(products)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return store, nil
}

// Resolve returns the product at the given row. An out-of-range row is a
// fatal integrity error: rows come from the similarity index, which must be
// 1:1 aligned with the catalog.
func (s *Store) Resolve(row int) (product.Product, error) {
	if row < 0 || row >= len(s.products) {
		return product.Product{}, domain.NewRowOutOfRange(row, len(s.products))
	}
	return s.products[row], nil
}

// Len returns the number of catalog rows.
func (s *Store) Len() int {
	return len(s.products)
}

// Products returns the row-ordered records, for artifact writing.
func (s *Store) Products() []product.Product {
	return s.products
}
