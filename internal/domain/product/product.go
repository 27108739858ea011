// Package product defines the catalog product record.
package product

import "strings"

// Product is one catalog item. Its positional row in the catalog store equals
// its row in the similarity index, fixed when the artifacts are built.
type Product struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	ProductType string `json:"product_type"`
	Color       string `json:"color"`
	Occasion    string `json:"occasion"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Attribute returns the named structured attribute used for filtering.
// Unknown names return the empty string, which never matches a filter value.
func (p Product) Attribute(name string) string {
	switch name {
	case "category":
		return p.Category
	case "subcategory":
		return p.Subcategory
	case "product_type":
		return p.ProductType
	case "color":
		return p.Color
	case "occasion":
		return p.Occasion
	default:
		return ""
	}
}

// CombinedText joins the text fields used for embedding into one string,
// in the same field order the index builder embeds them.
func (p Product) CombinedText() string {
	fields := []string{
		p.Title,
		p.Description,
		p.Category,
		p.Subcategory,
		p.Color,
		p.ProductType,
	}
	parts := fields[:0]
	for _, f := range fields {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}
