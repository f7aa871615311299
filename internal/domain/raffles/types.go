package raffles

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("raffle not found")
	ErrEntryNotFound = errors.New("raffle entry not found")
)

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// CanTransition reports whether a raffle may move from one status to
// another. The only legal path is upcoming -> active -> completed.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusUpcoming:
		return to == StatusActive
	case StatusActive:
		return to == StatusCompleted
	}
	return false
}

type Raffle struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Prize            string    `json:"prize"`
	Status           Status    `json:"status"`
	StartsAt         time.Time `json:"starts_at"`
	EndsAt           time.Time `json:"ends_at"`
	TotalEntries     int       `json:"total_entries"`
	ParticipantCount int       `json:"participant_count"`
	WinnerID         *int64    `json:"winner_id,omitempty"`
	WinningEntryID   *int64    `json:"winning_entry_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type SourceType string

const SourceReview SourceType = "review"

// EntryKey identifies the contribution that earned a ticket. A key yields at
// most one entry.
type EntryKey struct {
	RaffleID   int64
	UserID     int64
	SourceType SourceType
	SourceID   int64
}

type Entry struct {
	ID         int64      `json:"id"`
	RaffleID   int64      `json:"raffle_id"`
	UserID     int64      `json:"user_id"`
	SourceType SourceType `json:"source_type"`
	SourceID   int64      `json:"source_id"`
	Code       string     `json:"code"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (e *Entry) Key() EntryKey {
	return EntryKey{RaffleID: e.RaffleID, UserID: e.UserID, SourceType: e.SourceType, SourceID: e.SourceID}
}

type Store interface {
	Create(ctx context.Context, r *Raffle) error
	GetByID(ctx context.Context, raffleID int64) (*Raffle, error)
	// GetActive returns ErrNotFound when no raffle is active.
	GetActive(ctx context.Context) (*Raffle, error)
	LockByID(ctx context.Context, raffleID int64) (*Raffle, error)
	// CountActive counts active raffles other than exceptID.
	CountActive(ctx context.Context, exceptID int64) (int, error)
	SetStatus(ctx context.Context, raffleID int64, status Status) error
	SetWinner(ctx context.Context, raffleID, userID, entryID int64) error
	IncrementCounters(ctx context.Context, raffleID int64, newParticipant bool) error

	FindEntry(ctx context.Context, key EntryKey) (*Entry, error)
	// InsertEntry reports false without error when the key already exists.
	InsertEntry(ctx context.Context, e *Entry) (bool, error)
	CountUserEntries(ctx context.Context, raffleID, userID int64) (int, error)
	ListEntries(ctx context.Context, raffleID int64) ([]Entry, error)
	ListUserEntries(ctx context.Context, userID int64) ([]Entry, error)
}
