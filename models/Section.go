package models

import "strings"

// Section is the menu section, and kitchen station, a dish belongs to.
type Section string

const (
	SectionBreakfast Section = "Breakfast"
	SectionStarters  Section = "Starters"
	SectionMains     Section = "Mains"
	SectionDesserts  Section = "Desserts"
	SectionPizza     Section = "Pizza"
	SectionKids      Section = "Kids"
	SectionDrinks    Section = "Drinks"

	// DefaultSection is used when a section is missing or unrecognised.
	DefaultSection = SectionMains
)

// Sections lists every menu section in display order.
var Sections = []Section{
	SectionBreakfast,
	SectionStarters,
	SectionMains,
	SectionDesserts,
	SectionPizza,
	SectionKids,
	SectionDrinks,
}

// ValidSection reports whether value exactly names a known section.
func ValidSection(value string) bool {
	for _, s := range Sections {
		if string(s) == value {
			return true
		}
	}
	return false
}

// NormalizeSection maps value case-insensitively onto a known section,
// falling back to DefaultSection.
func NormalizeSection(value string) Section {
	trimmed := strings.TrimSpace(value)
	for _, s := range Sections {
		if strings.EqualFold(string(s), trimmed) {
			return s
		}
	}
	return DefaultSection
}
