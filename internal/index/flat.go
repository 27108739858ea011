// Package index implements the in-process similarity index over the catalog's
// embedding vectors.
package index

import (
	"fmt"
	"sort"

	"github.com/bazaar-labs/bazaarsearch/internal/domain"
)

// Candidate is one nearest-neighbor hit: a catalog row and its distance
// from the query vector.
type Candidate struct {
	Row      int
	Distance float32
}

// Flat is a brute-force exact nearest-neighbor index using squared L2
// distance. Squaring preserves the distance ordering and skips the sqrt.
// The index is append-only during build and read-only at query time.
type Flat struct {
	dim     int
	vectors [][]float32
}

// NewFlat creates an empty flat index for vectors of the given dimension.
func NewFlat(dim int) (*Flat, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("dimension must be positive, got %d", dim)
	}
	return &Flat{dim: dim}, nil
}

// Add appends a vector; its row is the number of vectors added before it.
func (f *Flat) Add(vec []float32) error {
	if len(vec) != f.dim {
		return fmt.Errorf("vector has %d dimensions, index has %d: %w",
			len(vec), f.dim, domain.ErrDimensionMismatch)
	}
	f.vectors = append(f.vectors, vec)
	return nil
}

// Search returns the k nearest rows by distance, ascending. Ties break by
// row so results are deterministic. When k exceeds the index size all rows
// are returned.
func (f *Flat) Search(query []float32, k int) ([]Candidate, error) {
	if len(query) != f.dim {
		return nil, fmt.Errorf("query has %d dimensions, index has %d: %w",
			len(query), f.dim, domain.ErrDimensionMismatch)
	}
	if k <= 0 {
		return nil, nil
	}

	candidates := make([]Candidate, len(f.vectors))
	for row, vec := range f.vectors {
		candidates[row] = Candidate{Row: row, Distance: squaredL2(query, vec)}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Distance != candidates[j].Distance {
			return candidates[i].Distance < candidates[j].Distance
		}
		return candidates[i].Row < candidates[j].Row
	})

	if k > len(candidates) {
		k = len(candidates)
	}
	return candidates[:k], nil
}

// Len returns the number of indexed vectors.
func (f *Flat) Len() int {
	return len(f.vectors)
}

// Dimension returns the vector dimension.
func (f *Flat) Dimension() int {
	return f.dim
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
