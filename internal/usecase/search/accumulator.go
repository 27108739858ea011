package search

import "github.com/bazaar-labs/bazaarsearch/internal/domain/product"

// Accumulator collects selected products across tasks of one request.
// Insertion order is selection order; the seen set guarantees no product
// appears twice even when tasks overlap. Scoped to a single request.
type Accumulator struct {
	limit int
	items []product.Product
	seen  map[string]struct{}
}

// NewAccumulator creates an accumulator with the given global capacity.
func NewAccumulator(limit int) *Accumulator {
	return &Accumulator{
		limit: limit,
		seen:  make(map[string]struct{}),
	}
}

// Remaining returns how many more products fit.
func (a *Accumulator) Remaining() int {
	return a.limit - len(a.items)
}

// Full reports whether the global cap is reached.
func (a *Accumulator) Full() bool {
	return len(a.items) >= a.limit
}

// Seen reports whether the product id was already accepted.
func (a *Accumulator) Seen(id string) bool {
	_, ok := a.seen[id]
	return ok
}

// Accept appends the product and marks it seen. Returns false without
// mutating when the accumulator is full or the id is a duplicate.
func (a *Accumulator) Accept(p product.Product) bool {
	if a.Full() || a.Seen(p.ID) {
		return false
	}
	a.items = append(a.items, p)
	a.seen[p.ID] = struct{}{}
	return true
}

// Len returns the number of accepted products.
func (a *Accumulator) Len() int {
	return len(a.items)
}

// Results returns the accepted products in selection order, never nil.
func (a *Accumulator) Results() []product.Product {
	if a.items == nil {
		return []product.Product{}
	}
	return a.items
}
