package venues

import (
	"context"
	"fmt"
	"sort"

	"basari/internal/geo"
)

// Nearby returns venues within q.RadiusKm of q.Center, nearest first, with
// equal distances ordered by id. A zero radius keeps only venues at the
// center and a negative one yields nothing; callers apply DefaultRadiusKm.
// A zero limit falls back to DefaultNearbyLimit.
func Nearby(ctx context.Context, s Store, q NearbyQuery) ([]NearbyVenue, error) {
	if q.Limit <= 0 {
		q.Limit = DefaultNearbyLimit
	}
	if q.RadiusKm < 0 {
		return []NearbyVenue{}, nil
	}

	candidates, err := s.ListInBounds(ctx, geo.BoundsAround(q.Center, q.RadiusKm))
	if err != nil {
		return nil, fmt.Errorf("nearby candidates: %w", err)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })

	ranked := geo.Rank(candidates, Venue.Point, q.Center, q.RadiusKm, q.Limit)
	out := make([]NearbyVenue, len(ranked))
	for i, r := range ranked {
		out[i] = NearbyVenue{Venue: r.Item, DistanceKm: r.DistanceKm}
	}
	return out, nil
}

// InBounds returns every venue inside b, unranked and uncapped.
func InBounds(ctx context.Context, s Store, b geo.Bounds) ([]Venue, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("%w: inverted bounds", ErrInvalidQuery)
	}
	vs, err := s.ListInBounds(ctx, b)
	if err != nil {
		return nil, err
	}
	out := make([]Venue, 0, len(vs))
	for _, v := range vs {
		if b.Contains(v.Point()) {
			out = append(out, v)
		}
	}
	return out, nil
}

// Search serves f with one indexed lookup and filters the rest in memory.
func Search(ctx context.Context, s Store, f Filter) ([]Venue, error) {
	var (
		base []Venue
		err  error
	)

	switch f.Primary() {
	case PrimaryRegion:
		base, err = s.ListByRegion(ctx, *f.Region)
	case PrimaryKashrut:
		base, err = s.ListByKashrut(ctx, *f.Kashrut)
	default:
		base, err = s.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("search venues: %w", err)
	}

	return f.Apply(base), nil
}
