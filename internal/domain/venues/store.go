package venues

import (
	"context"
	"fmt"

	"basari/internal/database"
	"basari/internal/geo"

	"github.com/jackc/pgx/v5"
)

type Repository struct {
	db database.DBTX
}

func NewRepository(db database.DBTX) Store {
	return &Repository{db: db}
}

const venueColumns = `
	v.id, v.slug, v.name, v.address, v.city, v.region, v.lat, v.lng, v.kashrut,
	v.meat_types, v.styles, v.price_range, v.has_delivery, v.has_seating,
	v.avg_rating, v.review_count, v.is_featured, v.is_verified, v.tags,
	v.created_at, v.updated_at`

func scanVenue(row pgx.Row) (*Venue, error) {
	var (
		v       Venue
		region  string
		kashrut string
	)
	err := row.Scan(
		&v.ID, &v.Slug, &v.Name, &v.Address, &v.City, &region, &v.Lat, &v.Lng, &kashrut,
		&v.MeatTypes, &v.Styles, &v.PriceRange, &v.HasDelivery, &v.HasSeating,
		&v.AvgRating, &v.ReviewCount, &v.IsFeatured, &v.IsVerified, &v.Tags,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.Region = Region(region)
	v.Kashrut = Kashrut(kashrut)
	return &v, nil
}

func (r *Repository) getOne(ctx context.Context, query string, arg any) (*Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	v, err := scanVenue(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

// GetByID retrieves a venue by its ID.
func (r *Repository) GetByID(ctx context.Context, venueID int64) (*Venue, error) {
	return r.getOne(ctx, `SELECT`+venueColumns+` FROM venues v WHERE v.id = $1`, venueID)
}

func (r *Repository) GetBySlug(ctx context.Context, slug string) (*Venue, error) {
	return r.getOne(ctx, `SELECT`+venueColumns+` FROM venues v WHERE v.slug = $1`, slug)
}

// LockByID takes a row lock on the venue so concurrent review writers for the
// same venue serialize until the surrounding transaction ends.
func (r *Repository) LockByID(ctx context.Context, venueID int64) (*Venue, error) {
	return r.getOne(ctx, `SELECT`+venueColumns+` FROM venues v WHERE v.id = $1 FOR UPDATE`, venueID)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying venues: %w", err)
	}
	defer rows.Close()

	out := []Venue{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning venue row: %w", err)
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows venues: %w", err)
	}
	return out, nil
}

func (r *Repository) List(ctx context.Context) ([]Venue, error) {
	return r.list(ctx, `SELECT`+venueColumns+` FROM venues v ORDER BY v.is_featured DESC, v.name`)
}

// ListByRegion uses the venues_region_idx equality index.
func (r *Repository) ListByRegion(ctx context.Context, region Region) ([]Venue, error) {
	return r.list(ctx, `SELECT`+venueColumns+` FROM venues v WHERE v.region = $1 ORDER BY v.is_featured DESC, v.name`, string(region))
}

// ListByKashrut uses the venues_kashrut_idx equality index.
func (r *Repository) ListByKashrut(ctx context.Context, kashrut Kashrut) ([]Venue, error) {
	return r.list(ctx, `SELECT`+venueColumns+` FROM venues v WHERE v.kashrut = $1 ORDER BY v.is_featured DESC, v.name`, string(kashrut))
}

// ListInBounds returns the venues whose coordinates fall inside b. Infinite
// longitude edges are passed through as-is; postgres compares them correctly.
func (r *Repository) ListInBounds(ctx context.Context, b geo.Bounds) ([]Venue, error) {
	query := `SELECT` + venueColumns + `
		FROM venues v
		WHERE v.lat BETWEEN $1 AND $2
		  AND v.lng BETWEEN $3 AND $4
		ORDER BY v.id`
	return r.list(ctx, query, b.MinLat, b.MaxLat, b.MinLng, b.MaxLng)
}

// SetRating writes the derived rating aggregate. Only the review aggregate
// maintainer calls this.
func (r *Repository) SetRating(ctx context.Context, venueID int64, avgRating float64, reviewCount int) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	ct, err := r.db.Exec(ctx, `
		UPDATE venues
		SET avg_rating = $1, review_count = $2, updated_at = NOW()
		WHERE id = $3`, avgRating, reviewCount, venueID)
	if err != nil {
		return fmt.Errorf("failed to update venue rating: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Upsert inserts or updates a venue keyed by slug. Operator-set flags and the
// rating aggregate of an existing row survive the overwrite.
func (r *Repository) Upsert(ctx context.Context, venue *Venue) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	const query = `
	INSERT INTO venues (
		slug, name, address, city, region, lat, lng, kashrut,
		meat_types, styles, price_range, has_delivery, has_seating,
		is_featured, is_verified, tags
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8,
		$9, $10, $11, $12, $13,
		$14, $15, $16
	)
	ON CONFLICT (slug) DO UPDATE SET
		name = EXCLUDED.name,
		address = EXCLUDED.address,
		city = EXCLUDED.city,
		region = EXCLUDED.region,
		lat = EXCLUDED.lat,
		lng = EXCLUDED.lng,
		kashrut = EXCLUDED.kashrut,
		meat_types = EXCLUDED.meat_types,
		styles = EXCLUDED.styles,
		price_range = EXCLUDED.price_range,
		has_delivery = EXCLUDED.has_delivery,
		has_seating = EXCLUDED.has_seating,
		tags = EXCLUDED.tags,
		updated_at = NOW()
	RETURNING id, avg_rating, review_count, is_featured, is_verified, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		venue.Slug, venue.Name, venue.Address, venue.City, string(venue.Region),
		venue.Lat, venue.Lng, string(venue.Kashrut),
		nonNil(venue.MeatTypes), nonNil(venue.Styles), venue.PriceRange,
		venue.HasDelivery, venue.HasSeating,
		venue.IsFeatured, venue.IsVerified, nonNil(venue.Tags),
	).Scan(
		&venue.ID, &venue.AvgRating, &venue.ReviewCount,
		&venue.IsFeatured, &venue.IsVerified, &venue.CreatedAt, &venue.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert venue %q: %w", venue.Slug, err)
	}
	return nil
}

// text[] columns are NOT NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
