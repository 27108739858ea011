// Package task defines the structured search task extracted from a raw query
// and the filter semantics derived from it.
package task

import "strings"

// Task is one decomposed product intent. Nil fields mean "no constraint";
// a task with every field nil and no attributes is a valid unconstrained
// semantic search, not an error.
type Task struct {
	Category    *string
	ProductType *string
	Color       *string
	Occasion    *string
	// Attributes are free-text qualifiers that enrich the semantic query.
	// They are never used as hard filters.
	Attributes []string
}

// IsEmpty reports whether the task carries no usable signal.
func (t Task) IsEmpty() bool {
	return t.Category == nil &&
		t.ProductType == nil &&
		t.Color == nil &&
		t.Occasion == nil &&
		len(t.Attributes) == 0
}

// SemanticQuery builds the text to embed for this task: the raw query,
// with the attribute qualifiers appended when present.
func (t Task) SemanticQuery(rawQuery string) string {
	if len(t.Attributes) == 0 {
		return rawQuery
	}
	return rawQuery + " " + strings.Join(t.Attributes, " ")
}

// Filters derives the exact-match filter set from the task's present fields.
func (t Task) Filters() FilterSet {
	f := make(FilterSet)
	if t.Category != nil {
		f["category"] = *t.Category
	}
	if t.ProductType != nil {
		f["product_type"] = *t.ProductType
	}
	if t.Color != nil {
		f["color"] = *t.Color
	}
	if t.Occasion != nil {
		f["occasion"] = *t.Occasion
	}
	return f
}
