package venues

import "strings"

// Primary names the predicate served by an equality lookup in storage.
type Primary int

const (
	PrimaryScan Primary = iota
	PrimaryRegion
	PrimaryKashrut
)

// Primary picks region if set, else kashrut, else a full scan.
func (f Filter) Primary() Primary {
	switch {
	case f.Region != nil:
		return PrimaryRegion
	case f.Kashrut != nil:
		return PrimaryKashrut
	default:
		return PrimaryScan
	}
}

// Match applies every supplied predicate as a conjunction.
func (f Filter) Match(v Venue) bool {
	if f.Region != nil && v.Region != *f.Region {
		return false
	}
	if f.Kashrut != nil && v.Kashrut != *f.Kashrut {
		return false
	}
	if f.MeatType != "" && !containsSubstring(v.MeatTypes, f.MeatType) {
		return false
	}
	if f.Style != "" && !containsSubstring(v.Styles, f.Style) {
		return false
	}
	if f.PriceRange != nil && v.PriceRange != *f.PriceRange {
		return false
	}
	if f.MinRating != nil && v.AvgRating < *f.MinRating {
		return false
	}
	return true
}

// Apply returns the venues matching f, preserving order.
func (f Filter) Apply(vs []Venue) []Venue {
	out := make([]Venue, 0, len(vs))
	for _, v := range vs {
		if f.Match(v) {
			out = append(out, v)
		}
	}
	return out
}

// containsSubstring is case-insensitive: a tag matches when it contains needle.
func containsSubstring(tags []string, needle string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}
