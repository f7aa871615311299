package users

import (
	"context"
	"errors"
	"time"

	"basari/internal/domain/accesscontrol"
)

var ErrNotFound = errors.New("user not found")

type User struct {
	ID                 int64              `json:"id"`
	DisplayName        string             `json:"display_name"`
	AvatarURL          *string            `json:"avatar_url,omitempty"`
	City               string             `json:"city,omitempty"`
	Role               accesscontrol.Role `json:"role"`
	ReviewCount        int                `json:"review_count"`
	ArticleCount       int                `json:"article_count"`
	TotalRaffleEntries int                `json:"total_raffle_entries"`
	Email              string             `json:"-"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

type Store interface {
	GetByID(ctx context.Context, userID int64) (*User, error)
	// AdjustReviewCount adds delta to review_count, flooring at zero.
	AdjustReviewCount(ctx context.Context, userID int64, delta int) error
	IncrementRaffleEntries(ctx context.Context, userID int64) error
	SetRole(ctx context.Context, userID int64, role accesscontrol.Role) error
	// ListContributors returns users with a reviewer-equivalent role or any
	// review activity.
	ListContributors(ctx context.Context) ([]User, error)
}
