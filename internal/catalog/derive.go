package catalog

import "github.com/rafaelmbarbosa/cardapiozap-backend/pkg/enums"

// categorySubtypes declares the subtypes selectable per category. Categories
// absent from the table accept no subtype.
var categorySubtypes = map[enums.ProductCategory][]string{
	enums.ProductCategoryHamburguer: {"Tradicional", "Artesanal"},
	enums.ProductCategoryBebida:     {"Refrigerante", "Suco", "Cerveja"},
}

// incrementableDefaults declares which categories track units individually by
// default, so addons attach per physical unit.
var incrementableDefaults = map[enums.ProductCategory]bool{
	enums.ProductCategoryHamburguer: true,
}

// DefaultIncrementable derives the incrementable flag for a category. Invoked
// on every category change on the admin form; the owner can still override it.
func DefaultIncrementable(category enums.ProductCategory) bool {
	return incrementableDefaults[category]
}

// SubtypesFor returns the subtypes selectable for the category.
func SubtypesFor(category enums.ProductCategory) []string {
	subtypes := categorySubtypes[category]
	out := make([]string, len(subtypes))
	copy(out, subtypes)
	return out
}

// ValidSubtype reports whether the subtype is selectable for the category.
func ValidSubtype(category enums.ProductCategory, subtype string) bool {
	for _, candidate := range categorySubtypes[category] {
		if candidate == subtype {
			return true
		}
	}
	return false
}
