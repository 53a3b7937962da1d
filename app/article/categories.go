package article

import (
	"sort"
)

// prazaCategories maps the nine Praza Pública listing categories to the URL
// path slug of their paginated index.
var prazaCategories = map[string]string{
	"Política":             "politica",
	"Deportes":             "deportes",
	"Ciencia e tecnoloxía": "ciencia-e-tecnoloxia",
	"Acontece":             "acontece",
	"Cultura":              "cultura",
	"Lecer":                "lecer",
	"Mundo":                "mundo",
	"Economía":             "economia",
	"Movementos sociais":   "movementos-sociais",
}

// tesauroLabels maps Nós Diario NewsML "Tesauro" property values to corpus
// category labels. Unknown codes map to an empty category rather than
// failing, so new newswire codes never break parsing.
var tesauroLabels = map[string]string{
	"politica":  "Política",
	"economia":  "Economía",
	"social":    "Social",
	"cultura":   "Cultura",
	"deportes":  "Deportes",
	"mundo":     "Mundo",
	"lingua":    "Lingua",
	"sociedade": "Sociedade",
	"opinion":   "Opinión",
}

// PrazaCategories returns the known category names in sorted order.
func PrazaCategories() []string {
	names := make([]string, 0, len(prazaCategories))
	for name := range prazaCategories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PrazaCategorySlug returns the listing URL slug for a category name.
func PrazaCategorySlug(category string) (string, bool) {
	slug, ok := prazaCategories[category]
	return slug, ok
}

// TesauroLabel maps a NewsML Tesauro code to its corpus category label.
// Unknown codes return the empty string.
func TesauroLabel(code string) string {
	return tesauroLabels[code]
}
