package ppe

import "strings"

// Category is a class of personal protective equipment.
type Category string

const (
	CategoryHead        Category = "head_protection"
	CategoryVisibility  Category = "visibility"
	CategoryEye         Category = "eye_protection"
	CategoryHand        Category = "hand_protection"
	CategoryFoot        Category = "foot_protection"
	CategoryRespiratory Category = "respiratory_protection"
	CategoryHearing     Category = "hearing_protection"
)

// CatalogEntry maps one recognized equipment label to its protection category.
// Synonyms are interchangeable labels kept for display and grouping; matching
// against detections is always an exact label lookup.
type CatalogEntry struct {
	Label    string   `json:"label"`
	Category Category `json:"category"`
	Synonyms []string `json:"synonyms,omitempty"`
}

// catalog is the static equipment reference data. Every label a detector can
// emit that should count toward compliance needs a row here; anything else is
// treated as noise and ignored.
var catalog = []CatalogEntry{
	{Label: "helmet", Category: CategoryHead, Synonyms: []string{"hard hat", "safety helmet"}},
	{Label: "hard hat", Category: CategoryHead, Synonyms: []string{"helmet", "safety helmet"}},
	{Label: "safety helmet", Category: CategoryHead, Synonyms: []string{"helmet", "hard hat"}},
	{Label: "safety vest", Category: CategoryVisibility, Synonyms: []string{"high-vis vest", "reflective vest"}},
	{Label: "high-vis vest", Category: CategoryVisibility, Synonyms: []string{"safety vest", "reflective vest"}},
	{Label: "reflective vest", Category: CategoryVisibility, Synonyms: []string{"safety vest", "high-vis vest"}},
	{Label: "safety glasses", Category: CategoryEye, Synonyms: []string{"goggles", "face shield"}},
	{Label: "goggles", Category: CategoryEye, Synonyms: []string{"safety glasses", "face shield"}},
	{Label: "face shield", Category: CategoryEye, Synonyms: []string{"safety glasses", "goggles"}},
	{Label: "gloves", Category: CategoryHand, Synonyms: []string{"safety gloves", "work gloves"}},
	{Label: "safety gloves", Category: CategoryHand, Synonyms: []string{"gloves", "work gloves"}},
	{Label: "work gloves", Category: CategoryHand, Synonyms: []string{"gloves", "safety gloves"}},
	{Label: "boots", Category: CategoryFoot, Synonyms: []string{"safety boots", "steel toe boots"}},
	{Label: "safety boots", Category: CategoryFoot, Synonyms: []string{"boots", "steel toe boots"}},
	{Label: "steel toe boots", Category: CategoryFoot, Synonyms: []string{"boots", "safety boots"}},
	{Label: "mask", Category: CategoryRespiratory, Synonyms: []string{"respirator", "dust mask"}},
	{Label: "respirator", Category: CategoryRespiratory, Synonyms: []string{"mask", "dust mask"}},
	{Label: "dust mask", Category: CategoryRespiratory, Synonyms: []string{"mask", "respirator"}},
	{Label: "ear muffs", Category: CategoryHearing, Synonyms: []string{"ear plugs"}},
	{Label: "ear plugs", Category: CategoryHearing, Synonyms: []string{"ear muffs"}},
}

// personLabels are detector labels that indicate a person in the scene. Person
// presence is a precondition for compliance, not a protection category, so
// these labels are kept out of the catalog.
var personLabels = map[string]bool{
	"person": true,
	"worker": true,
}

var categoryByLabel = buildLabelIndex()

func buildLabelIndex() map[string]Category {
	index := make(map[string]Category, len(catalog))
	for _, entry := range catalog {
		index[entry.Label] = entry.Category
	}
	return index
}

// canonicalLabel normalizes a raw detector label for catalog lookup.
func canonicalLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// LookupCategory resolves a detector label to its protection category.
// The second return is false for labels the catalog does not know.
func LookupCategory(label string) (Category, bool) {
	category, ok := categoryByLabel[canonicalLabel(label)]
	return category, ok
}

// IsPersonLabel reports whether a detector label denotes a person.
func IsPersonLabel(label string) bool {
	return personLabels[canonicalLabel(label)]
}

// Catalog returns the full equipment reference data, for display purposes.
func Catalog() []CatalogEntry {
	entries := make([]CatalogEntry, len(catalog))
	copy(entries, catalog)
	return entries
}

// KnownCategory reports whether a category value is part of the fixed
// category enumeration.
func KnownCategory(category Category) bool {
	switch category {
	case CategoryHead, CategoryVisibility, CategoryEye, CategoryHand,
		CategoryFoot, CategoryRespiratory, CategoryHearing:
		return true
	}
	return false
}
