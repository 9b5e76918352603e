package wiki

import (
	"strings"
	"unicode"

	"github.com/dtnitsch/wiki-word-freq/models"
)

// variantRule rewrites the underscore form of a category name into one of the
// surface forms editors use.
type variantRule struct {
	name  string
	apply func(base string) string
}

// variantRules are tried in order; the first form with at least one article
// wins.
var variantRules = []variantRule{
	{"as given", func(s string) string { return s }},
	{"title case", titleCase},
	{"title case with spaces", func(s string) string {
		return titleCase(strings.ReplaceAll(s, "_", " "))
	}},
	{"title case with underscores", func(s string) string {
		return strings.ReplaceAll(titleCase(strings.ReplaceAll(s, "_", " ")), " ", "_")
	}},
}

// Variant is one surface form of a category name.
type Variant struct {
	Rule  string
	Title string
}

// Variants returns the surface forms of category in lookup order. The
// "Category:" prefix is stripped and spaces become underscores before the
// rules apply. A form identical to an earlier one is left out.
func Variants(category string) []Variant {
	base := strings.ReplaceAll(models.StripCategoryPrefix(category), " ", "_")
	if base == "" {
		return nil
	}

	seen := make(map[string]struct{}, len(variantRules))
	variants := make([]Variant, 0, len(variantRules))
	for _, rule := range variantRules {
		title := rule.apply(base)
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}
		variants = append(variants, Variant{Rule: rule.name, Title: title})
	}
	return variants
}

// titleCase upper-cases the first letter of every run of letters and
// lower-cases the rest, so "machine_learning" becomes "Machine_Learning" and
// "AI safety" becomes "Ai Safety".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) && prevLetter:
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToTitle(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}
