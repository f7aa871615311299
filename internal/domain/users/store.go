package users

import (
	"context"
	"fmt"

	"basari/internal/database"
	"basari/internal/domain/accesscontrol"

	"github.com/jackc/pgx/v5"
)

type Repository struct {
	db database.DBTX
}

func NewRepository(db database.DBTX) Store {
	return &Repository{db: db}
}

const userColumns = `id, display_name, avatar_url, city, role, review_count, article_count,
	total_raffle_entries, email, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var (
		u    User
		role string
	)
	err := row.Scan(&u.ID, &u.DisplayName, &u.AvatarURL, &u.City, &role, &u.ReviewCount,
		&u.ArticleCount, &u.TotalRaffleEntries, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Role, err = accesscontrol.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", u.ID, err)
	}
	return &u, nil
}

func (r *Repository) GetByID(ctx context.Context, userID int64) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *Repository) exec(ctx context.Context, query string, args ...any) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) AdjustReviewCount(ctx context.Context, userID int64, delta int) error {
	return r.exec(ctx, `
		UPDATE users
		SET review_count = GREATEST(review_count + $1, 0), updated_at = NOW()
		WHERE id = $2`, delta, userID)
}

func (r *Repository) IncrementRaffleEntries(ctx context.Context, userID int64) error {
	return r.exec(ctx, `
		UPDATE users
		SET total_raffle_entries = total_raffle_entries + 1, updated_at = NOW()
		WHERE id = $1`, userID)
}

func (r *Repository) SetRole(ctx context.Context, userID int64, role accesscontrol.Role) error {
	return r.exec(ctx, `UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`, role.String(), userID)
}

func (r *Repository) ListContributors(ctx context.Context) ([]User, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	query := `SELECT ` + userColumns + `
		FROM users
		WHERE role IN ('reviewer', 'senior_reviewer', 'admin') OR review_count > 0`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list contributors: %w", err)
	}
	defer rows.Close()

	out := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}
