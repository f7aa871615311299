// Package geo holds the distance math used by venue proximity search.
package geo

import (
	"math"
	"sort"
)

const (
	// EarthRadiusKm is the mean Earth radius used by the haversine formula.
	EarthRadiusKm = 6371.0
	// KmPerDegree is the length of one degree of latitude.
	KmPerDegree = 111.32

	minCos = 1e-9
)

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is an axis-aligned lat/lng rectangle, inclusive on every edge.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}

// Contains reports whether p lies inside b.
func (b Bounds) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// Valid reports whether the rectangle is non-inverted.
func (b Bounds) Valid() bool {
	return b.MinLat <= b.MaxLat && b.MinLng <= b.MaxLng
}

// BoundsAround returns the pre-filter box for a circle of radiusKm around
// center. The box is looser than the circle. Near the poles, where cos(lat)
// reaches zero, the longitude range is left unbounded.
func BoundsAround(center Point, radiusKm float64) Bounds {
	latDelta := radiusKm / KmPerDegree

	lngDelta := math.Inf(1)
	if c := math.Cos(center.Lat * math.Pi / 180); math.Abs(c) > minCos {
		lngDelta = radiusKm / (KmPerDegree * math.Abs(c))
	}

	return Bounds{
		MinLat: center.Lat - latDelta,
		MaxLat: center.Lat + latDelta,
		MinLng: center.Lng - lngDelta,
		MaxLng: center.Lng + lngDelta,
	}
}

// DistanceKm is the haversine great-circle distance between a and b.
func DistanceKm(a, b Point) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Ranked pairs an item with its distance from the search center.
type Ranked[T any] struct {
	Item       T
	DistanceKm float64
}

// Rank keeps the items inside the bounding box and within radiusKm of center,
// orders them nearest-first and truncates to limit (limit <= 0 means no cap).
// Ties keep the input order.
func Rank[T any](items []T, locate func(T) Point, center Point, radiusKm float64, limit int) []Ranked[T] {
	if radiusKm < 0 {
		return nil
	}

	box := BoundsAround(center, radiusKm)
	out := make([]Ranked[T], 0, len(items))
	for _, it := range items {
		p := locate(it)
		if !box.Contains(p) {
			continue
		}
		d := DistanceKm(center, p)
		if d > radiusKm {
			continue
		}
		out = append(out, Ranked[T]{Item: it, DistanceKm: d})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
