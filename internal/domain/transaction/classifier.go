package transaction

import (
	"slices"
	"strings"
	"unicode"

	"github.com/jbrukh/bayesian"
)

// Sample is one labelled description used to train a Classifier.
type Sample struct {
	Description string
	Category    string
}

// seedSamples is the built-in training set.
var seedSamples = []Sample{
	{"Starbucks coffee", "Food & Drink"},
	{"Domino's Pizza", "Food & Drink"},
	{"Restaurant dinner", "Food & Drink"},
	{"Lunch at cafe", "Food & Drink"},
	{"McDonald's burger", "Food & Drink"},
	{"Uber ride", "Travel"},
	{"Bus ticket", "Travel"},
	{"Train fare", "Travel"},
	{"Flight booking", "Travel"},
	{"Taxi to airport", "Travel"},
	{"Gas station fuel", "Travel"},
	{"Netflix", "Entertainment"},
	{"Spotify subscription", "Entertainment"},
	{"Movie tickets", "Entertainment"},
	{"Concert tickets", "Entertainment"},
	{"Monthly salary", "Income"},
	{"Salary deposit", "Income"},
	{"Freelance payment", "Income"},
	{"Grocery store", "Groceries"},
	{"Supermarket", "Groceries"},
	{"Walmart groceries", "Groceries"},
	{"Amazon order", "Shopping"},
	{"Clothing store", "Shopping"},
	{"Electronics purchase", "Shopping"},
	{"Electricity bill", "Bills & Utilities"},
	{"Water bill", "Bills & Utilities"},
	{"Internet bill", "Bills & Utilities"},
	{"Phone bill", "Bills & Utilities"},
	{"Rent payment", "Bills & Utilities"},
	{"Pharmacy", "Health"},
	{"Doctor visit", "Health"},
	{"Gym membership", "Health"},
}

// Classifier is a multinomial naive Bayes model over description words. It is
// read-only after construction and safe for concurrent use.
type Classifier struct {
	model *bayesian.Classifier
	// single is the only category when training saw exactly one.
	single string
	vocab  map[string]struct{}
}

// NewClassifier trains a classifier on samples.
func NewClassifier(samples []Sample) *Classifier {
	c := &Classifier{vocab: make(map[string]struct{})}

	var classes []bayesian.Class
	seen := make(map[string]bool)
	for _, s := range samples {
		if !seen[s.Category] {
			seen[s.Category] = true
			classes = append(classes, bayesian.Class(s.Category))
		}
	}
	slices.Sort(classes)

	switch len(classes) {
	case 0:
		return c
	case 1:
		c.single = string(classes[0])
	default:
		c.model = bayesian.NewClassifier(classes...)
	}

	for _, s := range samples {
		words := tokenize(s.Description)
		for _, w := range words {
			c.vocab[w] = struct{}{}
		}
		if c.model != nil {
			c.model.Learn(words, bayesian.Class(s.Category))
		}
	}
	return c
}

// DefaultClassifier returns a classifier trained on the built-in samples.
func DefaultClassifier() *Classifier {
	return NewClassifier(seedSamples)
}

// Categorize predicts the category of a description. Descriptions that share
// no word with the training data are CategoryOther.
func (c *Classifier) Categorize(description string) string {
	var known []string
	for _, w := range tokenize(description) {
		if _, ok := c.vocab[w]; ok {
			known = append(known, w)
		}
	}
	if len(known) == 0 {
		return CategoryOther
	}
	if c.model == nil {
		return c.single
	}

	_, best, _ := c.model.LogScores(known)
	return string(c.model.Classes[best])
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := fields[:0]
	for _, f := range fields {
		if len(f) > 1 {
			words = append(words, f)
		}
	}
	return words
}
