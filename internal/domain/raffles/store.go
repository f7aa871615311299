package raffles

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

const raffleColumns = `id, title, prize, status, starts_at, ends_at, total_entries,
	participant_count, winner_id, winning_entry_id, created_at, updated_at`

func scanRaffle(row pgx.Row) (*Raffle, error) {
	var (
		r      Raffle
		status string
	)
	err := row.Scan(&r.ID, &r.Title, &r.Prize, &status, &r.StartsAt, &r.EndsAt, &r.TotalEntries,
		&r.ParticipantCount, &r.WinnerID, &r.WinningEntryID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.Status = Status(status)
	return &r, nil
}

func (r *Repository) getOne(ctx context.Context, query string, args ...any) (*Raffle, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	raffle, err := scanRaffle(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return raffle, nil
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

func (r *Repository) Create(ctx context.Context, raffle *Raffle) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO raffles (title, prize, status, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, total_entries, participant_count, created_at, updated_at`

	return r.db.QueryRow(ctx, query, raffle.Title, raffle.Prize, string(raffle.Status), raffle.StartsAt, raffle.EndsAt).
		Scan(&raffle.ID, &raffle.TotalEntries, &raffle.ParticipantCount, &raffle.CreatedAt, &raffle.UpdatedAt)
}

func (r *Repository) GetByID(ctx context.Context, raffleID int64) (*Raffle, error) {
	return r.getOne(ctx, `SELECT `+raffleColumns+` FROM raffles WHERE id = $1`, raffleID)
}

func (r *Repository) GetActive(ctx context.Context) (*Raffle, error) {
	return r.getOne(ctx, `SELECT `+raffleColumns+` FROM raffles WHERE status = 'active' LIMIT 1`)
}

// LockByID serializes ticket issuance and lifecycle changes on one raffle.
func (r *Repository) LockByID(ctx context.Context, raffleID int64) (*Raffle, error) {
	return r.getOne(ctx, `SELECT `+raffleColumns+` FROM raffles WHERE id = $1 FOR UPDATE`, raffleID)
}

func (r *Repository) CountActive(ctx context.Context, exceptID int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM raffles WHERE status = 'active' AND id <> $1`, exceptID).Scan(&n)
	return n, err
}

func (r *Repository) SetStatus(ctx context.Context, raffleID int64, status Status) error {
	return r.exec(ctx, `UPDATE raffles SET status = $1, updated_at = NOW() WHERE id = $2`, string(status), raffleID)
}

func (r *Repository) SetWinner(ctx context.Context, raffleID, userID, entryID int64) error {
	return r.exec(ctx, `
		UPDATE raffles
		SET winner_id = $1, winning_entry_id = $2, updated_at = NOW()
		WHERE id = $3`, userID, entryID, raffleID)
}

func (r *Repository) IncrementCounters(ctx context.Context, raffleID int64, newParticipant bool) error {
	return r.exec(ctx, `
		UPDATE raffles
		SET total_entries = total_entries + 1,
		    participant_count = participant_count + CASE WHEN $1 THEN 1 ELSE 0 END,
		    updated_at = NOW()
		WHERE id = $2`, newParticipant, raffleID)
}

const entryColumns = `id, raffle_id, user_id, source_type, source_id, created_at`

func scanEntry(row pgx.Row) (*Entry, error) {
	var (
		e   Entry
		src string
	)
	if err := row.Scan(&e.ID, &e.RaffleID, &e.UserID, &src, &e.SourceID, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.SourceType = SourceType(src)
	return &e, nil
}

func (r *Repository) FindEntry(ctx context.Context, key EntryKey) (*Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	query := `SELECT ` + entryColumns + `
		FROM raffle_entries
		WHERE raffle_id = $1 AND user_id = $2 AND source_type = $3 AND source_id = $4`

	e, err := scanEntry(r.db.QueryRow(ctx, query, key.RaffleID, key.UserID, string(key.SourceType), key.SourceID))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *Repository) InsertEntry(ctx context.Context, e *Entry) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO raffle_entries (raffle_id, user_id, source_type, source_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (raffle_id, user_id, source_type, source_id) DO NOTHING
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query, e.RaffleID, e.UserID, string(e.SourceType), e.SourceID).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *Repository) CountUserEntries(ctx context.Context, raffleID, userID int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM raffle_entries WHERE raffle_id = $1 AND user_id = $2`, raffleID, userID).Scan(&n)
	return n, err
}

func (r *Repository) listEntries(ctx context.Context, query string, arg any) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query raffle entries: %w", err)
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *Repository) ListEntries(ctx context.Context, raffleID int64) ([]Entry, error) {
	return r.listEntries(ctx, `SELECT `+entryColumns+` FROM raffle_entries WHERE raffle_id = $1 ORDER BY id`, raffleID)
}

func (r *Repository) ListUserEntries(ctx context.Context, userID int64) ([]Entry, error) {
	return r.listEntries(ctx, `SELECT `+entryColumns+` FROM raffle_entries WHERE user_id = $1 ORDER BY id DESC`, userID)
}
