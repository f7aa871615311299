package venues

import (
	"context"
	"errors"
	"fmt"
	"time"

	"basari/internal/geo"
)

var (
	ErrNotFound     = errors.New("venue not found")
	ErrInvalidQuery = errors.New("invalid venue query")
)

type Region string

const (
	RegionNorth     Region = "north"
	RegionCenter    Region = "center"
	RegionSouth     Region = "south"
	RegionJerusalem Region = "jerusalem"
	RegionShfela    Region = "shfela"
)

func ParseRegion(s string) (Region, error) {
	switch r := Region(s); r {
	case RegionNorth, RegionCenter, RegionSouth, RegionJerusalem, RegionShfela:
		return r, nil
	}
	return "", fmt.Errorf("%w: unknown region %q", ErrInvalidQuery, s)
}

type Kashrut string

const (
	KashrutNone     Kashrut = "none"
	KashrutRegular  Kashrut = "regular"
	KashrutMehadrin Kashrut = "mehadrin"
	KashrutBadatz   Kashrut = "badatz"
)

func ParseKashrut(s string) (Kashrut, error) {
	switch k := Kashrut(s); k {
	case KashrutNone, KashrutRegular, KashrutMehadrin, KashrutBadatz:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown kashrut %q", ErrInvalidQuery, s)
}

// Venue represents a restaurant listed in the directory.
type Venue struct {
	ID          int64     `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Region      Region    `json:"region"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Kashrut     Kashrut   `json:"kashrut"`
	MeatTypes   []string  `json:"meat_types"`
	Styles      []string  `json:"styles"`
	PriceRange  int       `json:"price_range"` // 1-3
	HasDelivery bool      `json:"has_delivery"`
	HasSeating  bool      `json:"has_seating"`
	AvgRating   float64   `json:"avg_rating"`
	ReviewCount int       `json:"review_count"`
	IsFeatured  bool      `json:"is_featured"`
	IsVerified  bool      `json:"is_verified"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (v Venue) Point() geo.Point {
	return geo.Point{Lat: v.Lat, Lng: v.Lng}
}

// NearbyVenue is a venue ranked by its distance from a search center.
type NearbyVenue struct {
	Venue
	DistanceKm float64 `json:"distance_km"`
}

type NearbyQuery struct {
	Center   geo.Point
	RadiusKm float64
	Limit    int
}

const (
	DefaultRadiusKm    = 10.0
	DefaultNearbyLimit = 20
)

// Filter holds the optional predicates of a venue listing. Nil or empty
// fields are not applied.
type Filter struct {
	Region     *Region
	Kashrut    *Kashrut
	MeatType   string
	Style      string
	PriceRange *int
	MinRating  *float64
}

type Store interface {
	GetByID(ctx context.Context, venueID int64) (*Venue, error)
	GetBySlug(ctx context.Context, slug string) (*Venue, error)
	// LockByID reads the venue row with FOR UPDATE; only meaningful inside a transaction.
	LockByID(ctx context.Context, venueID int64) (*Venue, error)
	List(ctx context.Context) ([]Venue, error)
	ListByRegion(ctx context.Context, region Region) ([]Venue, error)
	ListByKashrut(ctx context.Context, kashrut Kashrut) ([]Venue, error)
	ListInBounds(ctx context.Context, b geo.Bounds) ([]Venue, error)
	SetRating(ctx context.Context, venueID int64, avgRating float64, reviewCount int) error
	Upsert(ctx context.Context, venue *Venue) error
}
