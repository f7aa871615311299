package venuereviews

import (
	"context"
	"fmt"

	"basari/internal/database"

	"github.com/jackc/pgx/v5"
)

type Repository struct {
	db database.DBTX
}

func NewRepository(db database.DBTX) Store {
	return &Repository{db: db}
}

func (r *Repository) CreateReview(ctx context.Context, review *Review) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	query := `
        INSERT INTO reviews (
            venue_id, user_id,
            rating_overall, rating_meat, rating_bread, rating_sides, rating_service, rating_value,
            body, image_urls, verified_visit
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id, helpful_count, created_at, updated_at
    `
	rt := review.Ratings
	return r.db.QueryRow(ctx, query,
		review.VenueID,
		review.UserID,
		rt.Overall, rt.Meat, rt.Bread, rt.Sides, rt.Service, rt.Value,
		review.Body,
		imageURLs(review.ImageURLs),
		review.VerifiedVisit,
	).Scan(&review.ID, &review.HelpfulCount, &review.CreatedAt, &review.UpdatedAt)
}

const reviewColumns = `
	r.id, r.venue_id, r.user_id,
	r.rating_overall, r.rating_meat, r.rating_bread, r.rating_sides, r.rating_service, r.rating_value,
	r.body, r.image_urls, r.helpful_count, r.verified_visit, r.created_at, r.updated_at`

func scanReview(row pgx.Row, extra ...any) (*Review, error) {
	var rv Review
	dest := []any{
		&rv.ID, &rv.VenueID, &rv.UserID,
		&rv.Ratings.Overall, &rv.Ratings.Meat, &rv.Ratings.Bread,
		&rv.Ratings.Sides, &rv.Ratings.Service, &rv.Ratings.Value,
		&rv.Body, &rv.ImageURLs, &rv.HelpfulCount, &rv.VerifiedVisit,
		&rv.CreatedAt, &rv.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *Repository) GetByID(ctx context.Context, reviewID int64) (*Review, error) {
	return r.getOne(ctx, `SELECT`+reviewColumns+` FROM reviews r WHERE r.id = $1`, reviewID)
}

func (r *Repository) LockByID(ctx context.Context, reviewID int64) (*Review, error) {
	return r.getOne(ctx, `SELECT`+reviewColumns+` FROM reviews r WHERE r.id = $1 FOR UPDATE`, reviewID)
}

func (r *Repository) getOne(ctx context.Context, query string, reviewID int64) (*Review, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	rv, err := scanReview(r.db.QueryRow(ctx, query, reviewID))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rv, nil
}

// UpdateReview persists ratings, body, images and the verified flag.
func (r *Repository) UpdateReview(ctx context.Context, review *Review) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	query := `
        UPDATE reviews SET
            rating_overall = $1, rating_meat = $2, rating_bread = $3,
            rating_sides = $4, rating_service = $5, rating_value = $6,
            body = $7, image_urls = $8, verified_visit = $9, updated_at = NOW()
        WHERE id = $10
        RETURNING updated_at
    `
	rt := review.Ratings
	err := r.db.QueryRow(ctx, query,
		rt.Overall, rt.Meat, rt.Bread, rt.Sides, rt.Service, rt.Value,
		review.Body, imageURLs(review.ImageURLs), review.VerifiedVisit,
		review.ID,
	).Scan(&review.UpdatedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update review: %w", err)
	}
	return nil
}

func (r *Repository) DeleteReview(ctx context.Context, reviewID int64) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	result, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetReviews returns the current review set of a venue, newest first.
func (r *Repository) GetReviews(ctx context.Context, venueID int64) ([]Review, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	query := `SELECT` + reviewColumns + `, COALESCE(u.display_name, ''), u.avatar_url
        FROM reviews r
        LEFT JOIN users u ON u.id = r.user_id
        WHERE r.venue_id = $1
        ORDER BY r.created_at DESC, r.id DESC`

	rows, err := r.db.Query(ctx, query, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var (
			name   string
			avatar *string
		)
		rv, err := scanReview(rows, &name, &avatar)
		if err != nil {
			return nil, err
		}
		rv.UserName = name
		rv.AvatarURL = avatar
		reviews = append(reviews, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *Repository) SetHelpfulVote(ctx context.Context, reviewID, userID int64, helpful bool) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	query := `DELETE FROM helpful_votes WHERE review_id = $1 AND user_id = $2`
	if helpful {
		query = `
        INSERT INTO helpful_votes (review_id, user_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING
    `
	}

	ct, err := r.db.Exec(ctx, query, reviewID, userID)
	if err != nil {
		return false, fmt.Errorf("helpful vote: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *Repository) AdjustHelpfulCount(ctx context.Context, reviewID int64, delta int) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	ct, err := r.db.Exec(ctx, `
        UPDATE reviews SET helpful_count = GREATEST(helpful_count + $1, 0)
        WHERE id = $2`, delta, reviewID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func imageURLs(urls []string) []string {
	if urls == nil {
		return []string{}
	}
	return urls
}
