package task

import (
	"strings"

	"github.com/bazaar-labs/bazaarsearch/internal/domain/product"
)

// FilterSet maps attribute names to required values. Only attributes present
// on the originating task appear here.
type FilterSet map[string]string

// Matches reports whether the product satisfies every filter entry.
// Equality is case-insensitive and whitespace-trimmed on both sides.
func (f FilterSet) Matches(p product.Product) bool {
	for name, want := range f {
		if normalize(p.Attribute(name)) != normalize(want) {
			return false
		}
	}
	return true
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
