package venues

import (
	"context"
	"errors"
	"math"
	"testing"

	"basari/internal/geo"
)

type memStore struct {
	venues []Venue
	calls  []string
}

func (m *memStore) GetByID(_ context.Context, id int64) (*Venue, error) {
	for i := range m.venues {
		if m.venues[i].ID == id {
			v := m.venues[i]
			return &v, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) GetBySlug(_ context.Context, slug string) (*Venue, error) {
	for i := range m.venues {
		if m.venues[i].Slug == slug {
			v := m.venues[i]
			return &v, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) LockByID(ctx context.Context, id int64) (*Venue, error) {
	return m.GetByID(ctx, id)
}

func (m *memStore) List(context.Context) ([]Venue, error) {
	m.calls = append(m.calls, "scan")
	return append([]Venue(nil), m.venues...), nil
}

func (m *memStore) ListByRegion(_ context.Context, region Region) ([]Venue, error) {
	m.calls = append(m.calls, "region")
	var out []Venue
	for _, v := range m.venues {
		if v.Region == region {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memStore) ListByKashrut(_ context.Context, k Kashrut) ([]Venue, error) {
	m.calls = append(m.calls, "kashrut")
	var out []Venue
	for _, v := range m.venues {
		if v.Kashrut == k {
			out = append(out, v)
		}
	}
	return out, nil
}

// ListInBounds ignores the box on purpose so the in-memory checks are exercised.
func (m *memStore) ListInBounds(context.Context, geo.Bounds) ([]Venue, error) {
	return append([]Venue(nil), m.venues...), nil
}

func (m *memStore) SetRating(context.Context, int64, float64, int) error { return nil }
func (m *memStore) Upsert(context.Context, *Venue) error                 { return nil }

func ptr[T any](v T) *T { return &v }

func fixture() []Venue {
	return []Venue{
		{ID: 1, Name: "Shipudei Hatikva", Region: RegionCenter, Kashrut: KashrutRegular, MeatTypes: []string{"Beef", "Lamb"}, Styles: []string{"grill"}, PriceRange: 2, AvgRating: 4.5},
		{ID: 2, Name: "Burger Bar", Region: RegionCenter, Kashrut: KashrutMehadrin, MeatTypes: []string{"beef"}, Styles: []string{"burger", "fast food"}, PriceRange: 1, AvgRating: 3.9},
		{ID: 3, Name: "Machane Grill", Region: RegionJerusalem, Kashrut: KashrutMehadrin, MeatTypes: []string{"chicken", "lamb"}, Styles: []string{"grill"}, PriceRange: 3, AvgRating: 4.8},
		{ID: 4, Name: "Galil Steak", Region: RegionNorth, Kashrut: KashrutBadatz, MeatTypes: []string{"beef"}, Styles: []string{"steakhouse"}, PriceRange: 3, AvgRating: 0},
	}
}

func ids(vs []Venue) []int64 {
	out := make([]int64, len(vs))
	for i, v := range vs {
		out[i] = v.ID
	}
	return out
}

func TestSearchPrimaryPredicateSelection(t *testing.T) {
	cases := []struct {
		name    string
		filter  Filter
		primary string
	}{
		{"region wins", Filter{Region: ptr(RegionCenter), Kashrut: ptr(KashrutMehadrin)}, "region"},
		{"kashrut when no region", Filter{Kashrut: ptr(KashrutMehadrin)}, "kashrut"},
		{"scan otherwise", Filter{Style: "grill"}, "scan"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &memStore{venues: fixture()}
			if _, err := Search(context.Background(), s, tc.filter); err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(s.calls) != 1 || s.calls[0] != tc.primary {
				t.Fatalf("Search() storage calls = %v, want [%s]", s.calls, tc.primary)
			}
		})
	}
}

func TestSearchIsConjunction(t *testing.T) {
	all := fixture()
	filters := []Filter{
		{},
		{Region: ptr(RegionCenter)},
		{Kashrut: ptr(KashrutMehadrin), Style: "grill"},
		{MeatType: "LAMB"},
		{MeatType: "beef", PriceRange: ptr(3)},
		{MinRating: ptr(4.5)},
		{Region: ptr(RegionCenter), MinRating: ptr(4.0), MeatType: "bee"},
		{Region: ptr(RegionSouth)},
	}

	for _, f := range filters {
		s := &memStore{venues: all}
		got, err := Search(context.Background(), s, f)
		if err != nil {
			t.Fatalf("Search(%+v) error = %v", f, err)
		}

		var want []int64
		for _, v := range all {
			ok := (f.Region == nil || v.Region == *f.Region) &&
				(f.Kashrut == nil || v.Kashrut == *f.Kashrut) &&
				(f.MeatType == "" || containsSubstring(v.MeatTypes, f.MeatType)) &&
				(f.Style == "" || containsSubstring(v.Styles, f.Style)) &&
				(f.PriceRange == nil || v.PriceRange == *f.PriceRange) &&
				(f.MinRating == nil || v.AvgRating >= *f.MinRating)
			if ok {
				want = append(want, v.ID)
			}
		}

		gotIDs := ids(got)
		if len(gotIDs) != len(want) {
			t.Fatalf("Search(%+v) = %v, want %v", f, gotIDs, want)
		}
		for i := range want {
			if gotIDs[i] != want[i] {
				t.Fatalf("Search(%+v) = %v, want %v", f, gotIDs, want)
			}
		}
	}
}

func TestSearchExamples(t *testing.T) {
	s := &memStore{venues: fixture()}
	got, _ := Search(context.Background(), s, Filter{MeatType: "lamb", MinRating: ptr(4.6)})
	if g := ids(got); len(g) != 1 || g[0] != 3 {
		t.Fatalf("Search(lamb, >=4.6) = %v, want [3]", g)
	}

	got, _ = Search(context.Background(), s, Filter{Region: ptr(RegionCenter), Kashrut: ptr(KashrutRegular)})
	if g := ids(got); len(g) != 1 || g[0] != 1 {
		t.Fatalf("Search(center, regular) = %v, want [1]", g)
	}
}

func TestParseEnums(t *testing.T) {
	if r, err := ParseRegion("shfela"); err != nil || r != RegionShfela {
		t.Fatalf("ParseRegion(shfela) = %v, %v", r, err)
	}
	if _, err := ParseRegion("haifa"); !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("ParseRegion(haifa) error = %v, want ErrInvalidQuery", err)
	}
	if k, err := ParseKashrut("badatz"); err != nil || k != KashrutBadatz {
		t.Fatalf("ParseKashrut(badatz) = %v, %v", k, err)
	}
	if _, err := ParseKashrut("kosher-ish"); !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("ParseKashrut() error = %v, want ErrInvalidQuery", err)
	}
}

func TestNearby(t *testing.T) {
	center := geo.Point{Lat: 32.08, Lng: 34.78}
	kmPerLat := geo.EarthRadiusKm * math.Pi / 180
	at := func(id int64, km float64) Venue {
		return Venue{ID: id, Lat: center.Lat + km/kmPerLat, Lng: center.Lng}
	}

	s := &memStore{venues: []Venue{at(12, 12), at(9, 9), at(0, 0), at(5, 5)}}

	got, err := Nearby(context.Background(), s, NearbyQuery{Center: center, RadiusKm: DefaultRadiusKm})
	if err != nil {
		t.Fatalf("Nearby() error = %v", err)
	}
	want := []int64{0, 5, 9}
	if len(got) != len(want) {
		t.Fatalf("Nearby() returned %d venues, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("Nearby()[%d].ID = %d, want %d", i, got[i].ID, id)
		}
	}

	got, _ = Nearby(context.Background(), s, NearbyQuery{Center: center, RadiusKm: 50, Limit: 2})
	if len(got) != 2 || got[0].ID != 0 || got[1].ID != 5 {
		t.Fatalf("Nearby(limit=2) = %+v", got)
	}

	got, _ = Nearby(context.Background(), s, NearbyQuery{Center: center, RadiusKm: -3})
	if len(got) != 0 {
		t.Fatalf("Nearby(negative radius) = %+v, want empty", got)
	}
}

func TestNearbyZeroRadiusKeepsCenterOnly(t *testing.T) {
	center := geo.Point{Lat: 32.08, Lng: 34.78}
	kmPerLat := geo.EarthRadiusKm * math.Pi / 180
	s := &memStore{venues: []Venue{
		{ID: 1, Lat: center.Lat, Lng: center.Lng},
		{ID: 2, Lat: center.Lat + 5/kmPerLat, Lng: center.Lng},
	}}

	got, err := Nearby(context.Background(), s, NearbyQuery{Center: center, RadiusKm: 0})
	if err != nil {
		t.Fatalf("Nearby() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("Nearby(radius=0) = %+v, want only venue 1", got)
	}
}

func TestNearbyEqualDistanceOrderedByID(t *testing.T) {
	center := geo.Point{Lat: 32.08, Lng: 34.78}
	kmPerLat := geo.EarthRadiusKm * math.Pi / 180
	lat := center.Lat + 2/kmPerLat

	s := &memStore{venues: []Venue{
		{ID: 9, Lat: lat, Lng: center.Lng},
		{ID: 6, Lat: lat, Lng: center.Lng},
		{ID: 3, Lat: center.Lat, Lng: center.Lng},
	}}
	got, err := Nearby(context.Background(), s, NearbyQuery{Center: center, RadiusKm: DefaultRadiusKm})
	if err != nil {
		t.Fatalf("Nearby() error = %v", err)
	}
	want := []int64{3, 6, 9}
	if len(got) != len(want) {
		t.Fatalf("Nearby() returned %d venues, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("Nearby()[%d].ID = %d, want %d", i, got[i].ID, id)
		}
	}
}
