package community

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"basari/internal/domain/raffles"
)

func TestIssueRaffleEntryWithoutActiveRaffle(t *testing.T) {
	db := newMemDB()
	db.addUser(10, "r", reviewer.Role)
	db.addRaffle(1, raffles.StatusUpcoming)
	db.addRaffle(2, raffles.StatusCompleted)
	svc := newTestService(t, db)

	e, err := svc.IssueRaffleEntry(context.Background(), 10, raffles.SourceReview, 100)
	if err != nil || e != nil {
		t.Fatalf("IssueRaffleEntry() = %v, %v, want nil, nil", e, err)
	}
	if db.entryCount() != 0 || db.user(10).TotalRaffleEntries != 0 {
		t.Fatalf("no-op issuance left writes behind")
	}
}

func TestIssueRaffleEntryIdempotent(t *testing.T) {
	ctx := context.Background()
	db := newMemDB()
	db.addUser(10, "r", reviewer.Role)
	db.addRaffle(1, raffles.StatusActive)
	svc := newTestService(t, db)

	first, err := svc.IssueRaffleEntry(ctx, 10, raffles.SourceReview, 100)
	if err != nil {
		t.Fatalf("IssueRaffleEntry() error = %v", err)
	}
	second, err := svc.IssueRaffleEntry(ctx, 10, raffles.SourceReview, 100)
	if err != nil {
		t.Fatalf("IssueRaffleEntry() repeat error = %v", err)
	}
	if first.ID != second.ID || first.Code != second.Code || first.Code == "" {
		t.Fatalf("repeat issuance = %+v, want %+v", second, first)
	}

	r := db.raffle(1)
	if r.TotalEntries != 1 || r.ParticipantCount != 1 {
		t.Fatalf("raffle counters = %d/%d, want 1/1", r.TotalEntries, r.ParticipantCount)
	}
	if got := db.user(10).TotalRaffleEntries; got != 1 {
		t.Fatalf("user total_raffle_entries = %d, want 1", got)
	}
}

func TestIssueRaffleEntryConcurrentIdempotent(t *testing.T) {
	db := newMemDB()
	db.addUser(10, "r", reviewer.Role)
	db.addRaffle(1, raffles.StatusActive)
	svc := newTestService(t, db)

	var wg sync.WaitGroup
	ids := make([]int64, 16)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e, err := svc.IssueRaffleEntry(context.Background(), 10, raffles.SourceReview, 100)
			if err != nil {
				t.Errorf("IssueRaffleEntry() error = %v", err)
				return
			}
			ids[i] = e.ID
		}(i)
	}
	wg.Wait()

	for _, id := range ids[1:] {
		if id != ids[0] {
			t.Fatalf("concurrent issuance returned entries %v", ids)
		}
	}
	if db.entryCount() != 1 || db.raffle(1).TotalEntries != 1 {
		t.Fatalf("concurrent issuance stored %d entries, total_entries %d", db.entryCount(), db.raffle(1).TotalEntries)
	}
}

func TestIssueRaffleEntryParticipantCount(t *testing.T) {
	ctx := context.Background()
	db := newMemDB()
	db.addUser(10, "a", reviewer.Role)
	db.addUser(11, "b", reviewer.Role)
	db.addRaffle(1, raffles.StatusActive)
	svc := newTestService(t, db)

	issue := func(user, source int64) {
		t.Helper()
		if _, err := svc.IssueRaffleEntry(ctx, user, raffles.SourceReview, source); err != nil {
			t.Fatalf("IssueRaffleEntry(%d, %d) error = %v", user, source, err)
		}
	}
	issue(10, 100)
	issue(10, 101)
	issue(11, 102)

	r := db.raffle(1)
	if r.TotalEntries != 3 || r.ParticipantCount != 2 {
		t.Fatalf("raffle counters = %d/%d, want 3/2", r.TotalEntries, r.ParticipantCount)
	}
	if db.user(10).TotalRaffleEntries != 2 || db.user(11).TotalRaffleEntries != 1 {
		t.Fatalf("user counters = %d/%d, want 2/1", db.user(10).TotalRaffleEntries, db.user(11).TotalRaffleEntries)
	}
}

func TestIssueRaffleEntryMissingUserKeepsTicket(t *testing.T) {
	db := newMemDB()
	db.addRaffle(1, raffles.StatusActive)
	svc := newTestService(t, db)

	e, err := svc.IssueRaffleEntry(context.Background(), 77, raffles.SourceReview, 100)
	if err != nil {
		t.Fatalf("IssueRaffleEntry() error = %v", err)
	}
	if e == nil || db.entryCount() != 1 {
		t.Fatalf("ticket for missing user was not kept")
	}
	if got := db.raffle(1).TotalEntries; got != 1 {
		t.Fatalf("raffle total_entries = %d, want 1", got)
	}
}

func TestRaffleLifecycle(t *testing.T) {
	ctx := context.Background()
	db := newMemDB()
	db.addUser(10, "a", reviewer.Role)
	db.addUser(11, "b", reviewer.Role)
	notifier := &recordingNotifier{}
	svc := newTestService(t, db, WithNotifier(notifier))
	svc.pick = func(n int) (int, error) { return n - 1, nil }

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	in := RaffleInput{Title: "Hanukkah grill", Prize: "voucher", StartsAt: start, EndsAt: start.Add(30 * 24 * time.Hour)}

	if _, err := svc.CreateRaffle(ctx, reviewer, in); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("CreateRaffle(reviewer) error = %v, want ErrUnauthorized", err)
	}
	bad := in
	bad.EndsAt = start.Add(-time.Hour)
	if _, err := svc.CreateRaffle(ctx, admin, bad); !errors.Is(err, ErrValidation) {
		t.Fatalf("CreateRaffle(ends before start) error = %v, want ErrValidation", err)
	}

	first, err := svc.CreateRaffle(ctx, admin, in)
	if err != nil {
		t.Fatalf("CreateRaffle() error = %v", err)
	}
	second, err := svc.CreateRaffle(ctx, admin, in)
	if err != nil {
		t.Fatalf("CreateRaffle() error = %v", err)
	}
	if first.Status != raffles.StatusUpcoming {
		t.Fatalf("new raffle status = %s, want upcoming", first.Status)
	}

	if _, err := svc.DrawRaffle(ctx, admin, first.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("DrawRaffle(upcoming) error = %v, want ErrConflict", err)
	}
	if _, err := svc.ActivateRaffle(ctx, admin, first.ID); err != nil {
		t.Fatalf("ActivateRaffle() error = %v", err)
	}
	if _, err := svc.ActivateRaffle(ctx, admin, second.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("ActivateRaffle(second) error = %v, want ErrConflict", err)
	}
	if _, err := svc.ActivateRaffle(ctx, admin, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ActivateRaffle(missing) error = %v, want ErrNotFound", err)
	}

	if _, err := svc.IssueRaffleEntry(ctx, 10, raffles.SourceReview, 1); err != nil {
		t.Fatalf("IssueRaffleEntry() error = %v", err)
	}
	last, err := svc.IssueRaffleEntry(ctx, 11, raffles.SourceReview, 2)
	if err != nil {
		t.Fatalf("IssueRaffleEntry() error = %v", err)
	}

	res, err := svc.DrawRaffle(ctx, admin, first.ID)
	if err != nil {
		t.Fatalf("DrawRaffle() error = %v", err)
	}
	if res.Raffle.Status != raffles.StatusCompleted || res.Entry == nil || res.Entry.ID != last.ID {
		t.Fatalf("DrawRaffle() = %+v, want winning entry %d", res, last.ID)
	}
	stored := db.raffle(first.ID)
	if stored.WinnerID == nil || *stored.WinnerID != 11 || *stored.WinningEntryID != last.ID {
		t.Fatalf("stored winner = %v/%v", stored.WinnerID, stored.WinningEntryID)
	}
	if notifier.count("won") != 1 {
		t.Fatalf("winner notifications = %d, want 1", notifier.count("won"))
	}

	if _, err := svc.ActivateRaffle(ctx, admin, first.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("ActivateRaffle(completed) error = %v, want ErrConflict", err)
	}
	if e, err := svc.IssueRaffleEntry(ctx, 10, raffles.SourceReview, 3); err != nil || e != nil {
		t.Fatalf("IssueRaffleEntry() after draw = %v, %v, want nil, nil", e, err)
	}

	if _, err := svc.ActivateRaffle(ctx, admin, second.ID); err != nil {
		t.Fatalf("ActivateRaffle(second) after draw error = %v", err)
	}
}

func TestDrawRaffleWithoutEntries(t *testing.T) {
	db := newMemDB()
	db.addRaffle(1, raffles.StatusActive)
	notifier := &recordingNotifier{}
	svc := newTestService(t, db, WithNotifier(notifier))

	res, err := svc.DrawRaffle(context.Background(), admin, 1)
	if err != nil {
		t.Fatalf("DrawRaffle() error = %v", err)
	}
	if res.Entry != nil || res.Raffle.WinnerID != nil {
		t.Fatalf("DrawRaffle() with no entries picked a winner: %+v", res)
	}
	if db.raffle(1).Status != raffles.StatusCompleted {
		t.Fatalf("raffle status = %s, want completed", db.raffle(1).Status)
	}
	if notifier.count("won") != 0 {
		t.Fatalf("winner notifications sent for an empty raffle")
	}
}

func TestUserTickets(t *testing.T) {
	ctx := context.Background()
	db := newMemDB()
	db.addUser(10, "r", reviewer.Role)
	db.addRaffle(1, raffles.StatusActive)
	svc := newTestService(t, db)

	for _, src := range []int64{1, 2} {
		if _, err := svc.IssueRaffleEntry(ctx, 10, raffles.SourceReview, src); err != nil {
			t.Fatalf("IssueRaffleEntry() error = %v", err)
		}
	}
	got, err := svc.UserTickets(ctx, reviewer)
	if err != nil {
		t.Fatalf("UserTickets() error = %v", err)
	}
	if len(got) != 2 || got[0].SourceID != 2 || got[0].Code == "" {
		t.Fatalf("UserTickets() = %+v", got)
	}
	if _, err := svc.UserTickets(ctx, nil); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("UserTickets(nil) error = %v, want ErrUnauthenticated", err)
	}
}
