package venuereviews

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("review not found")

// Ratings are the six sub-ratings of a review, each 1-5.
type Ratings struct {
	Overall int `json:"overall" validate:"min=1,max=5"`
	Meat    int `json:"meat" validate:"min=1,max=5"`
	Bread   int `json:"bread" validate:"min=1,max=5"`
	Sides   int `json:"sides" validate:"min=1,max=5"`
	Service int `json:"service" validate:"min=1,max=5"`
	Value   int `json:"value" validate:"min=1,max=5"`
}

type Review struct {
	ID            int64     `json:"id"`
	VenueID       int64     `json:"venue_id"`
	UserID        int64     `json:"user_id"`
	Ratings       Ratings   `json:"ratings"`
	Body          string    `json:"body"`
	ImageURLs     []string  `json:"image_urls"`
	HelpfulCount  int       `json:"helpful_count"`
	VerifiedVisit bool      `json:"verified_visit"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Joined fields
	UserName  string  `json:"user_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

type Store interface {
	CreateReview(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, reviewID int64) (*Review, error)
	// LockByID reads the review with FOR UPDATE inside a transaction.
	LockByID(ctx context.Context, reviewID int64) (*Review, error)
	UpdateReview(ctx context.Context, review *Review) error
	DeleteReview(ctx context.Context, reviewID int64) error
	GetReviews(ctx context.Context, venueID int64) ([]Review, error)
	// SetHelpfulVote records or clears a vote; changed reports whether the
	// stored state flipped.
	SetHelpfulVote(ctx context.Context, reviewID, userID int64, helpful bool) (changed bool, err error)
	AdjustHelpfulCount(ctx context.Context, reviewID int64, delta int) error
}
