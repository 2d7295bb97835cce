// internal/spark/rarity.go
//
// Rarity weighting and display metadata.
//
// Context
// -------
// Rarity is cosmetic flair, but its distribution is a deliberate product
// choice: the content tooling targets roughly half the daily sparks being
// common and one in twenty legendary.  The weights below are the single
// source of truth for that shaping; the stats command in sparkctl samples
// the live selector against them.

package spark

import "github.com/luvora/luvora/internal/pool"

// rarityOrder lists classes from heaviest to lightest weight.  It doubles
// as the fallback order when a rolled class has no eligible candidates.
var rarityOrder = []pool.Rarity{
	pool.RarityCommon,
	pool.RarityRare,
	pool.RarityEpic,
	pool.RarityLegendary,
}

// Weights are percentage points out of 100.
var rarityWeights = map[pool.Rarity]int{
	pool.RarityCommon:    50,
	pool.RarityRare:      30,
	pool.RarityEpic:      15,
	pool.RarityLegendary: 5,
}

// rollRarity maps a uniform draw in [0,100) to a rarity class.
func rollRarity(roll int) pool.Rarity {
	for _, r := range rarityOrder {
		roll -= rarityWeights[r]
		if roll < 0 {
			return r
		}
	}
	return pool.RarityCommon
}

// Info is display metadata for a rarity class.
type Info struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var rarityInfo = map[pool.Rarity]Info{
	pool.RarityCommon:    {Label: "Common", Color: "#9aa4b2"},
	pool.RarityRare:      {Label: "Rare", Color: "#4f8ff7"},
	pool.RarityEpic:      {Label: "Epic", Color: "#a855f7"},
	pool.RarityLegendary: {Label: "Legendary", Color: "#f59e0b"},
}

// RarityInfo is a total lookup: unknown or empty input styles as Common,
// since this is purely cosmetic metadata and never worth an error.
func RarityInfo(r pool.Rarity) Info {
	if info, ok := rarityInfo[r]; ok {
		return info
	}
	return rarityInfo[pool.RarityCommon]
}
