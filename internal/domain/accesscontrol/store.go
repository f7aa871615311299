package accesscontrol

import (
	"context"
	"fmt"

	"basari/internal/database"
)

type Repository struct {
	db database.DBTX
}

func NewRepository(db database.DBTX) Store {
	return &Repository{db: db}
}

func (r *Repository) CreateApplication(ctx context.Context, app *Application) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	query := `
        INSERT INTO reviewer_applications (user_id, motivation, status)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at
    `
	if app.Status == "" {
		app.Status = ApplicationPending
	}
	return r.db.QueryRow(ctx, query, app.UserID, app.Motivation, string(app.Status)).
		Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
}

func (r *Repository) LockApplication(ctx context.Context, id int64) (*Application, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	var (
		a      Application
		status string
	)
	err := r.db.QueryRow(ctx, `
        SELECT id, user_id, motivation, status, decided_by, created_at, updated_at
        FROM reviewer_applications
        WHERE id = $1
        FOR UPDATE`, id,
	).Scan(&a.ID, &a.UserID, &a.Motivation, &status, &a.DecidedBy, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	a.Status = ApplicationStatus(status)
	return &a, nil
}

func (r *Repository) HasPendingApplication(ctx context.Context, userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	var exists bool
	query := `
        SELECT EXISTS (
            SELECT 1 FROM reviewer_applications
            WHERE user_id = $1 AND status = 'pending'
        )
    `
	err := r.db.QueryRow(ctx, query, userID).Scan(&exists)
	return exists, err
}

func (r *Repository) SetApplicationStatus(ctx context.Context, id int64, status ApplicationStatus, decidedBy int64) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	result, err := r.db.Exec(ctx, `
        UPDATE reviewer_applications
        SET status = $1, decided_by = $2, updated_at = NOW()
        WHERE id = $3`, string(status), decidedBy, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: id=%d", ErrApplicationNotFound, id)
	}
	return nil
}

func (r *Repository) ListApplications(ctx context.Context, status ApplicationStatus) ([]Application, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `
        SELECT id, user_id, motivation, status, decided_by, created_at, updated_at
        FROM reviewer_applications
        WHERE status = $1
        ORDER BY created_at`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []Application{}
	for rows.Next() {
		var (
			a Application
			s string
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.Motivation, &s, &a.DecidedBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		a.Status = ApplicationStatus(s)
		apps = append(apps, a)
	}
	return apps, rows.Err()
}
