package entities

import (
	"fmt"
	"strings"
)

// StarSymbol is the glyph used to render an MMR bracket.
const StarSymbol = "★"

// MMRThresholds are the lower bounds of the six star brackets.
var MMRThresholds = []int{0, 2000, 2300, 2600, 2750, 3000}

// Stars returns the star bracket (1-6) of an MMR value. Values below zero
// still count as one star.
func Stars(mmr int) int {
	stars := 1
	for i := 1; i < len(MMRThresholds); i++ {
		if mmr >= MMRThresholds[i] {
			stars = i + 1
		}
	}
	return stars
}

// FormatMMR renders an MMR value with its star bracket, e.g. "2500 (★★★)".
func FormatMMR(mmr int) string {
	return fmt.Sprintf("%d (%s)", mmr, strings.Repeat(StarSymbol, Stars(mmr)))
}
