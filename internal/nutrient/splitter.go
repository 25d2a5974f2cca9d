// Package nutrient splits free-text nutrient lists into (name, quantity) pairs.
package nutrient

import (
	"regexp"
	"strings"

	"catexport/internal/models"
)

var (
	// itemPattern matches a comma-free run ending in a parenthesized group.
	itemPattern = regexp.MustCompile(`[^,]+\([^)]*\)`)
	// pairPattern splits an item into the text before the first "(" and the group body.
	pairPattern = regexp.MustCompile(`^(.*?)\((.*?)\)`)
)

// Split decomposes text such as "Tuky(9g),Cukr(0g), Vitamin A(700)" into ordered
// pairs. Quantities are kept verbatim, units included. A trailing fragment without
// parentheses is dropped; duplicates are kept.
func Split(text string) []models.NutrientPair {
	items := itemPattern.FindAllString(text, -1)
	if len(items) == 0 {
		return nil
	}

	pairs := make([]models.NutrientPair, 0, len(items))

	for _, item := range items {
		pairs = append(pairs, splitItem(strings.TrimSpace(item)))
	}

	return pairs
}

func splitItem(item string) models.NutrientPair {
	m := pairPattern.FindStringSubmatch(item)
	if m == nil {
		return models.NutrientPair{Name: item}
	}

	return models.NutrientPair{
		Name:     strings.TrimSpace(m[1]),
		Quantity: strings.TrimSpace(m[2]),
	}
}
