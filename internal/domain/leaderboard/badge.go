// Package leaderboard derives contributor badges and ranks from counters.
// Nothing here is stored; every value is recomputed on read.
package leaderboard

type Badge string

const (
	BadgeNone     Badge = "none"
	BadgeBronze   Badge = "bronze"
	BadgeSilver   Badge = "silver"
	BadgeGold     Badge = "gold"
	BadgePlatinum Badge = "platinum"
	BadgeDiamond  Badge = "diamond"
)

type tier struct {
	badge Badge
	min   int
}

// tiers is ascending; a count earns the last tier whose min it reaches.
var tiers = []tier{
	{BadgeBronze, 3},
	{BadgeSilver, 10},
	{BadgeGold, 25},
	{BadgePlatinum, 50},
	{BadgeDiamond, 100},
}

// DeriveBadge maps a review count to its badge.
func DeriveBadge(reviewCount int) Badge {
	b := BadgeNone
	for _, t := range tiers {
		if reviewCount < t.min {
			break
		}
		b = t.badge
	}
	return b
}

// NextBadge returns the next tier above reviewCount and how many more
// reviews reach it. ok is false once the top tier is held.
func NextBadge(reviewCount int) (next Badge, remaining int, ok bool) {
	for _, t := range tiers {
		if reviewCount < t.min {
			return t.badge, t.min - reviewCount, true
		}
	}
	return "", 0, false
}
