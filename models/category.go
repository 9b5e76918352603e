package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// CategoryPrefix is the namespace prefix of category titles.
const CategoryPrefix = "Category:"

// StripCategoryPrefix removes a leading "Category:" (any letter case) and
// surrounding whitespace.
func StripCategoryPrefix(category string) string {
	category = strings.TrimSpace(category)
	if len(category) >= len(CategoryPrefix) && strings.EqualFold(category[:len(CategoryPrefix)], CategoryPrefix) {
		category = category[len(CategoryPrefix):]
	}
	return strings.TrimSpace(category)
}

// CanonicalCategory returns the stable lookup form of a category name:
// prefix stripped, underscores read as spaces, whitespace collapsed,
// NFC-normalized and case-folded. "Category:Machine_learning" and
// "machine learning" share one canonical form.
func CanonicalCategory(category string) string {
	category = StripCategoryPrefix(category)
	category = strings.ReplaceAll(category, "_", " ")
	category = strings.Join(strings.Fields(category), " ")
	return cases.Fold().String(norm.NFC.String(category))
}
