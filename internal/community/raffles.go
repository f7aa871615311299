package community

import (
	"context"
	"errors"
	"fmt"
	"time"

	"basari/internal/database"
	"basari/internal/domain/accesscontrol"
	"basari/internal/domain/raffles"
	"basari/internal/domain/storage"
	"basari/internal/domain/users"
)

// IssueRaffleEntry grants userID a ticket in the active raffle for one
// contribution. Repeating the call for the same contribution returns the
// existing ticket. With no active raffle it does nothing and returns nil.
func (s *Service) IssueRaffleEntry(ctx context.Context, userID int64, source raffles.SourceType, sourceID int64) (*raffles.Entry, error) {
	var (
		entry  *raffles.Entry
		raffle *raffles.Raffle
		issued bool
	)

	err := s.tx.WithTx(ctx, func(r *storage.Repos) error {
		active, err := r.Raffles.GetActive(ctx)
		if errors.Is(err, raffles.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		raffle, err = r.Raffles.LockByID(ctx, active.ID)
		if err != nil {
			return err
		}
		if raffle.Status != raffles.StatusActive {
			// drawn between the read and the lock
			raffle = nil
			return nil
		}

		key := raffles.EntryKey{RaffleID: raffle.ID, UserID: userID, SourceType: source, SourceID: sourceID}
		existing, err := r.Raffles.FindEntry(ctx, key)
		if err == nil {
			entry = existing
			return nil
		}
		if !errors.Is(err, raffles.ErrEntryNotFound) {
			return err
		}

		e := &raffles.Entry{RaffleID: raffle.ID, UserID: userID, SourceType: source, SourceID: sourceID}
		inserted, err := r.Raffles.InsertEntry(ctx, e)
		if err != nil {
			return err
		}
		if !inserted {
			entry, err = r.Raffles.FindEntry(ctx, key)
			return err
		}

		n, err := r.Raffles.CountUserEntries(ctx, raffle.ID, userID)
		if err != nil {
			return err
		}
		if err := r.Raffles.IncrementCounters(ctx, raffle.ID, n == 1); err != nil {
			return err
		}
		raffle.TotalEntries++
		if n == 1 {
			raffle.ParticipantCount++
		}

		if err := r.Users.IncrementRaffleEntries(ctx, userID); err != nil {
			if !errors.Is(err, users.ErrNotFound) {
				return err
			}
			s.logger.Warnw("raffle entry issued for missing user",
				"user_id", userID, "raffle_id", raffle.ID, "entry_id", e.ID)
		}

		entry = e
		issued = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("issue raffle entry: %w", err)
	}
	if entry == nil {
		return nil, nil
	}
	if err := s.codes.Stamp(entry); err != nil {
		return nil, err
	}

	if issued && s.notifier != nil {
		nctx, cancel := notifyContext(ctx)
		defer cancel()
		if err := s.notifier.TicketIssued(nctx, raffle, entry); err != nil {
			s.logger.Warnw("ticket notification failed", "user_id", userID, "entry_id", entry.ID, "error", err)
		}
	}
	return entry, nil
}

type RaffleInput struct {
	Title    string    `validate:"required,max=200"`
	Prize    string    `validate:"required,max=500"`
	StartsAt time.Time `validate:"required"`
	EndsAt   time.Time `validate:"required,gtfield=StartsAt"`
}

// CreateRaffle stores a new raffle in the upcoming state.
func (s *Service) CreateRaffle(ctx context.Context, caller *Caller, in RaffleInput) (*raffles.Raffle, error) {
	if err := authorize(caller, accesscontrol.ActionManageRaffle); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, invalid(err)
	}

	raffle := &raffles.Raffle{
		Title:    in.Title,
		Prize:    in.Prize,
		Status:   raffles.StatusUpcoming,
		StartsAt: in.StartsAt,
		EndsAt:   in.EndsAt,
	}
	if err := s.repos.Raffles.Create(ctx, raffle); err != nil {
		return nil, err
	}
	return raffle, nil
}

// ActivateRaffle moves an upcoming raffle to active. At most one raffle may
// be active at a time.
func (s *Service) ActivateRaffle(ctx context.Context, caller *Caller, raffleID int64) (*raffles.Raffle, error) {
	if err := authorize(caller, accesscontrol.ActionManageRaffle); err != nil {
		return nil, err
	}

	var out *raffles.Raffle
	err := s.tx.WithTx(ctx, func(r *storage.Repos) error {
		raffle, err := r.Raffles.LockByID(ctx, raffleID)
		if err != nil {
			return err
		}
		if !raffles.CanTransition(raffle.Status, raffles.StatusActive) {
			return conflict("raffle %d is %s", raffle.ID, raffle.Status)
		}
		n, err := r.Raffles.CountActive(ctx, raffle.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return conflict("another raffle is already active")
		}
		if err := r.Raffles.SetStatus(ctx, raffle.ID, raffles.StatusActive); err != nil {
			if database.IsUniqueViolation(err) {
				return conflict("another raffle is already active")
			}
			return err
		}
		raffle.Status = raffles.StatusActive
		out = raffle
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}
	return out, nil
}

// DrawResult is a completed raffle and its winning ticket, if any.
type DrawResult struct {
	Raffle *raffles.Raffle `json:"raffle"`
	Entry  *raffles.Entry  `json:"winning_entry,omitempty"`
}

// DrawRaffle completes an active raffle, picking the winning ticket uniformly
// at random. A raffle without tickets completes with no winner.
func (s *Service) DrawRaffle(ctx context.Context, caller *Caller, raffleID int64) (*DrawResult, error) {
	if err := authorize(caller, accesscontrol.ActionManageRaffle); err != nil {
		return nil, err
	}

	res := &DrawResult{}
	err := s.tx.WithTx(ctx, func(r *storage.Repos) error {
		raffle, err := r.Raffles.LockByID(ctx, raffleID)
		if err != nil {
			return err
		}
		if !raffles.CanTransition(raffle.Status, raffles.StatusCompleted) {
			return conflict("raffle %d is %s", raffle.ID, raffle.Status)
		}
		entries, err := r.Raffles.ListEntries(ctx, raffle.ID)
		if err != nil {
			return err
		}
		if err := r.Raffles.SetStatus(ctx, raffle.ID, raffles.StatusCompleted); err != nil {
			return err
		}
		raffle.Status = raffles.StatusCompleted
		res.Raffle = raffle

		if len(entries) == 0 {
			return nil
		}
		i, err := s.pick(len(entries))
		if err != nil {
			return fmt.Errorf("draw: %w", err)
		}
		winner := entries[i]
		if err := r.Raffles.SetWinner(ctx, raffle.ID, winner.UserID, winner.ID); err != nil {
			return err
		}
		raffle.WinnerID = &winner.UserID
		raffle.WinningEntryID = &winner.ID
		res.Entry = &winner
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}

	if res.Entry == nil {
		return res, nil
	}
	if err := s.codes.Stamp(res.Entry); err != nil {
		return nil, err
	}
	s.notifyWinner(ctx, res)
	return res, nil
}

func (s *Service) notifyWinner(ctx context.Context, res *DrawResult) {
	if s.notifier == nil {
		return
	}
	nctx, cancel := notifyContext(ctx)
	defer cancel()

	winner, err := s.repos.Users.GetByID(nctx, res.Entry.UserID)
	if err != nil {
		s.logger.Warnw("raffle winner lookup failed", "user_id", res.Entry.UserID, "raffle_id", res.Raffle.ID, "error", err)
		return
	}
	if err := s.notifier.RaffleWon(nctx, winner, res.Raffle, res.Entry); err != nil {
		s.logger.Warnw("raffle winner notification failed", "user_id", winner.ID, "raffle_id", res.Raffle.ID, "error", err)
	}
}

// ActiveRaffle returns the active raffle, or ErrNotFound.
func (s *Service) ActiveRaffle(ctx context.Context) (*raffles.Raffle, error) {
	r, err := s.repos.Raffles.GetActive(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return r, nil
}

// UserTickets lists the caller's tickets across raffles, newest first.
func (s *Service) UserTickets(ctx context.Context, caller *Caller) ([]raffles.Entry, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}
	entries, err := s.repos.Raffles.ListUserEntries(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if err := s.codes.Stamp(&entries[i]); err != nil {
			return nil, err
		}
	}
	return entries, nil
}
