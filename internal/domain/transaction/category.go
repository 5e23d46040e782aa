package transaction

import "strings"

const CategoryOther = "Other"

// Categories are the canonical names the classifier predicts and the
// reports group by.
var Categories = []string{
	"Food & Drink",
	"Groceries",
	"Travel",
	"Entertainment",
	"Shopping",
	"Bills & Utilities",
	"Health",
	"Income",
	CategoryOther,
}

// categoryAliases maps common spellings to a canonical category.
// Keys are lower case.
var categoryAliases = map[string]string{
	"food":              "Food & Drink",
	"food and drink":    "Food & Drink",
	"food & drink":      "Food & Drink",
	"dining":            "Food & Drink",
	"restaurants":       "Food & Drink",
	"grocery":           "Groceries",
	"groceries":         "Groceries",
	"travel":            "Travel",
	"transport":         "Travel",
	"transportation":    "Travel",
	"entertainment":     "Entertainment",
	"shopping":          "Shopping",
	"bills":             "Bills & Utilities",
	"utilities":         "Bills & Utilities",
	"bills & utilities": "Bills & Utilities",
	"health":            "Health",
	"healthcare":        "Health",
	"income":            "Income",
	"salary":            "Income",
	"other":             CategoryOther,
}

// CanonicalCategory trims the name and maps known aliases to their canonical
// spelling. Unknown names are kept as given so users can define their own.
func CanonicalCategory(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if canonical, ok := categoryAliases[strings.ToLower(name)]; ok {
		return canonical
	}
	return name
}
