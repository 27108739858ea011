package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingQuery signals an empty or absent search query.
	ErrMissingQuery = errors.New("missing query")
	// ErrRowOutOfRange signals a catalog/index row misalignment.
	ErrRowOutOfRange = errors.New("row out of range")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrExtractorProviderError signals an extractor provider failure.
	ErrExtractorProviderError = errors.New("extractor provider error")
	// ErrDimensionMismatch signals a vector dimension mismatch.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrDuplicateID signals a duplicate product identifier in the catalog.
	ErrDuplicateID = errors.New("duplicate product id")
)

// RowOutOfRangeError wraps ErrRowOutOfRange with the offending row.
// Rows come straight from the similarity index, so an out-of-range row means
// the index and catalog artifacts were built from different snapshots.
type RowOutOfRangeError struct {
	Row  int
	Size int
}

func (e *RowOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: row %d, catalog size %d", ErrRowOutOfRange.Error(), e.Row, e.Size)
}

func (e *RowOutOfRangeError) Unwrap() error { return ErrRowOutOfRange }

// NewRowOutOfRange creates a row integrity error.
func NewRowOutOfRange(row, size int) error {
	return &RowOutOfRangeError{Row: row, Size: size}
}
