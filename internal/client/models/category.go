package models

import (
	"errors"
	"fmt"
	"strings"
)

// Category classifies a journal entry. The set is closed: the backend only
// accepts these four values, so anything else is rejected at the data-entry
// boundary.
type Category string

const (
	CategoryFact    Category = "Fact"
	CategoryWord    Category = "Word"
	CategoryInsight Category = "Insight"
	CategoryQuote   Category = "Quote"
)

var ErrUnknownCategory = errors.New("unknown category")

// Categories returns all valid categories in display order.
func Categories() []Category {
	return []Category{CategoryFact, CategoryWord, CategoryInsight, CategoryQuote}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryFact, CategoryWord, CategoryInsight, CategoryQuote:
		return true
	}
	return false
}

// ParseCategory converts user input into a Category. Matching is
// case-insensitive; the canonical spelling is returned.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}
