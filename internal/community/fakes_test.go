package community

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"basari/internal/domain/accesscontrol"
	"basari/internal/domain/raffles"
	"basari/internal/domain/storage"
	"basari/internal/domain/users"
	venuereviews "basari/internal/domain/venuereview"
	"basari/internal/domain/venues"
	"basari/internal/geo"

	"go.uber.org/zap"
)

type voteKey struct{ reviewID, userID int64 }

type memState struct {
	venues  map[int64]venues.Venue
	reviews map[int64]venuereviews.Review
	votes   map[voteKey]bool
	users   map[int64]users.User
	raffles map[int64]raffles.Raffle
	entries []raffles.Entry
	apps    map[int64]accesscontrol.Application
	nextID  int64
}

func (s memState) clone() memState {
	return memState{
		venues:  maps.Clone(s.venues),
		reviews: maps.Clone(s.reviews),
		votes:   maps.Clone(s.votes),
		users:   maps.Clone(s.users),
		raffles: maps.Clone(s.raffles),
		entries: slices.Clone(s.entries),
		apps:    maps.Clone(s.apps),
		nextID:  s.nextID,
	}
}

// memDB is an in-memory store. WithTx serializes units of work on one mutex
// and restores a snapshot when fn fails.
type memDB struct {
	mu sync.Mutex
	memState
}

func newMemDB() *memDB {
	return &memDB{memState: memState{
		venues:  map[int64]venues.Venue{},
		reviews: map[int64]venuereviews.Review{},
		votes:   map[voteKey]bool{},
		users:   map[int64]users.User{},
		raffles: map[int64]raffles.Raffle{},
		apps:    map[int64]accesscontrol.Application{},
		nextID:  1000,
	}}
}

func (d *memDB) WithTx(ctx context.Context, fn func(r *storage.Repos) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	snap := d.memState.clone()
	if err := fn(d.repos(false)); err != nil {
		d.memState = snap
		return err
	}
	return nil
}

func (d *memDB) repos(locked bool) *storage.Repos {
	b := base{db: d, locked: locked}
	return &storage.Repos{
		Venues:        memVenues{b},
		Reviews:       memReviews{b},
		Users:         memUsers{b},
		Raffles:       memRaffles{b},
		AccessControl: memApps{b},
	}
}

func (d *memDB) id() int64 {
	d.nextID++
	return d.nextID
}

func (d *memDB) addVenue(id int64) {
	d.venues[id] = venues.Venue{ID: id, Slug: "venue", Name: "venue", Region: venues.RegionCenter, Kashrut: venues.KashrutRegular}
}

func (d *memDB) addUser(id int64, name string, role accesscontrol.Role) {
	d.users[id] = users.User{ID: id, DisplayName: name, Role: role}
}

func (d *memDB) addRaffle(id int64, status raffles.Status) {
	d.raffles[id] = raffles.Raffle{ID: id, Title: "raffle", Prize: "prize", Status: status}
}

func (d *memDB) venue(id int64) venues.Venue {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.venues[id]
}

func (d *memDB) user(id int64) users.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.users[id]
}

func (d *memDB) raffle(id int64) raffles.Raffle {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.raffles[id]
}

func (d *memDB) entryCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

type base struct {
	db     *memDB
	locked bool
}

func (b base) guard() func() {
	if !b.locked {
		return func() {}
	}
	b.db.mu.Lock()
	return b.db.mu.Unlock
}

type memVenues struct{ base }

func (s memVenues) GetByID(_ context.Context, id int64) (*venues.Venue, error) {
	defer s.guard()()
	v, ok := s.db.venues[id]
	if !ok {
		return nil, venues.ErrNotFound
	}
	return &v, nil
}

func (s memVenues) GetBySlug(_ context.Context, slug string) (*venues.Venue, error) {
	defer s.guard()()
	for _, v := range s.db.venues {
		if v.Slug == slug {
			return &v, nil
		}
	}
	return nil, venues.ErrNotFound
}

func (s memVenues) LockByID(ctx context.Context, id int64) (*venues.Venue, error) {
	return s.GetByID(ctx, id)
}

func (s memVenues) all(keep func(venues.Venue) bool) []venues.Venue {
	defer s.guard()()
	out := []venues.Venue{}
	for _, v := range s.db.venues {
		if keep(v) {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b venues.Venue) int { return int(a.ID - b.ID) })
	return out
}

func (s memVenues) List(context.Context) ([]venues.Venue, error) {
	return s.all(func(venues.Venue) bool { return true }), nil
}

func (s memVenues) ListByRegion(_ context.Context, r venues.Region) ([]venues.Venue, error) {
	return s.all(func(v venues.Venue) bool { return v.Region == r }), nil
}

func (s memVenues) ListByKashrut(_ context.Context, k venues.Kashrut) ([]venues.Venue, error) {
	return s.all(func(v venues.Venue) bool { return v.Kashrut == k }), nil
}

func (s memVenues) ListInBounds(_ context.Context, b geo.Bounds) ([]venues.Venue, error) {
	return s.all(func(v venues.Venue) bool { return b.Contains(v.Point()) }), nil
}

func (s memVenues) SetRating(_ context.Context, id int64, avg float64, count int) error {
	defer s.guard()()
	v, ok := s.db.venues[id]
	if !ok {
		return venues.ErrNotFound
	}
	v.AvgRating, v.ReviewCount = avg, count
	s.db.venues[id] = v
	return nil
}

func (s memVenues) Upsert(_ context.Context, in *venues.Venue) error {
	defer s.guard()()
	for id, v := range s.db.venues {
		if v.Slug == in.Slug {
			in.ID = id
			in.IsFeatured, in.IsVerified = v.IsFeatured, v.IsVerified
			in.AvgRating, in.ReviewCount = v.AvgRating, v.ReviewCount
			s.db.venues[id] = *in
			return nil
		}
	}
	in.ID = s.db.id()
	s.db.venues[in.ID] = *in
	return nil
}

type memReviews struct{ base }

func (s memReviews) CreateReview(_ context.Context, r *venuereviews.Review) error {
	defer s.guard()()
	r.ID = s.db.id()
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	s.db.reviews[r.ID] = *r
	return nil
}

func (s memReviews) GetByID(_ context.Context, id int64) (*venuereviews.Review, error) {
	defer s.guard()()
	r, ok := s.db.reviews[id]
	if !ok {
		return nil, venuereviews.ErrNotFound
	}
	return &r, nil
}

func (s memReviews) LockByID(ctx context.Context, id int64) (*venuereviews.Review, error) {
	return s.GetByID(ctx, id)
}

func (s memReviews) UpdateReview(_ context.Context, r *venuereviews.Review) error {
	defer s.guard()()
	if _, ok := s.db.reviews[r.ID]; !ok {
		return venuereviews.ErrNotFound
	}
	s.db.reviews[r.ID] = *r
	return nil
}

func (s memReviews) DeleteReview(_ context.Context, id int64) error {
	defer s.guard()()
	if _, ok := s.db.reviews[id]; !ok {
		return venuereviews.ErrNotFound
	}
	delete(s.db.reviews, id)
	return nil
}

func (s memReviews) GetReviews(_ context.Context, venueID int64) ([]venuereviews.Review, error) {
	defer s.guard()()
	out := []venuereviews.Review{}
	for _, r := range s.db.reviews {
		if r.VenueID == venueID {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b venuereviews.Review) int { return int(a.ID - b.ID) })
	return out, nil
}

func (s memReviews) SetHelpfulVote(_ context.Context, reviewID, userID int64, helpful bool) (bool, error) {
	defer s.guard()()
	k := voteKey{reviewID, userID}
	if s.db.votes[k] == helpful {
		return false, nil
	}
	if helpful {
		s.db.votes[k] = true
	} else {
		delete(s.db.votes, k)
	}
	return true, nil
}

func (s memReviews) AdjustHelpfulCount(_ context.Context, reviewID int64, delta int) error {
	defer s.guard()()
	r, ok := s.db.reviews[reviewID]
	if !ok {
		return venuereviews.ErrNotFound
	}
	r.HelpfulCount = max(r.HelpfulCount+delta, 0)
	s.db.reviews[reviewID] = r
	return nil
}

type memUsers struct{ base }

func (s memUsers) update(id int64, fn func(u *users.User)) error {
	defer s.guard()()
	u, ok := s.db.users[id]
	if !ok {
		return users.ErrNotFound
	}
	fn(&u)
	s.db.users[id] = u
	return nil
}

func (s memUsers) GetByID(_ context.Context, id int64) (*users.User, error) {
	defer s.guard()()
	u, ok := s.db.users[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	return &u, nil
}

func (s memUsers) AdjustReviewCount(_ context.Context, id int64, delta int) error {
	return s.update(id, func(u *users.User) { u.ReviewCount = max(u.ReviewCount+delta, 0) })
}

func (s memUsers) IncrementRaffleEntries(_ context.Context, id int64) error {
	return s.update(id, func(u *users.User) { u.TotalRaffleEntries++ })
}

func (s memUsers) SetRole(_ context.Context, id int64, role accesscontrol.Role) error {
	return s.update(id, func(u *users.User) { u.Role = role })
}

func (s memUsers) ListContributors(context.Context) ([]users.User, error) {
	defer s.guard()()
	out := []users.User{}
	for _, u := range s.db.users {
		if u.Role.AtLeast(accesscontrol.RoleReviewer) || u.ReviewCount > 0 {
			out = append(out, u)
		}
	}
	return out, nil
}

type memRaffles struct{ base }

func (s memRaffles) Create(_ context.Context, r *raffles.Raffle) error {
	defer s.guard()()
	r.ID = s.db.id()
	s.db.raffles[r.ID] = *r
	return nil
}

func (s memRaffles) GetByID(_ context.Context, id int64) (*raffles.Raffle, error) {
	defer s.guard()()
	r, ok := s.db.raffles[id]
	if !ok {
		return nil, raffles.ErrNotFound
	}
	return &r, nil
}

func (s memRaffles) GetActive(context.Context) (*raffles.Raffle, error) {
	defer s.guard()()
	for _, r := range s.db.raffles {
		if r.Status == raffles.StatusActive {
			return &r, nil
		}
	}
	return nil, raffles.ErrNotFound
}

func (s memRaffles) LockByID(ctx context.Context, id int64) (*raffles.Raffle, error) {
	return s.GetByID(ctx, id)
}

func (s memRaffles) CountActive(_ context.Context, exceptID int64) (int, error) {
	defer s.guard()()
	n := 0
	for _, r := range s.db.raffles {
		if r.Status == raffles.StatusActive && r.ID != exceptID {
			n++
		}
	}
	return n, nil
}

func (s memRaffles) update(id int64, fn func(r *raffles.Raffle)) error {
	defer s.guard()()
	r, ok := s.db.raffles[id]
	if !ok {
		return raffles.ErrNotFound
	}
	fn(&r)
	s.db.raffles[id] = r
	return nil
}

func (s memRaffles) SetStatus(_ context.Context, id int64, status raffles.Status) error {
	return s.update(id, func(r *raffles.Raffle) { r.Status = status })
}

func (s memRaffles) SetWinner(_ context.Context, id, userID, entryID int64) error {
	return s.update(id, func(r *raffles.Raffle) { r.WinnerID, r.WinningEntryID = &userID, &entryID })
}

func (s memRaffles) IncrementCounters(_ context.Context, id int64, newParticipant bool) error {
	return s.update(id, func(r *raffles.Raffle) {
		r.TotalEntries++
		if newParticipant {
			r.ParticipantCount++
		}
	})
}

func (s memRaffles) FindEntry(_ context.Context, key raffles.EntryKey) (*raffles.Entry, error) {
	defer s.guard()()
	for _, e := range s.db.entries {
		if e.Key() == key {
			return &e, nil
		}
	}
	return nil, raffles.ErrEntryNotFound
}

func (s memRaffles) InsertEntry(_ context.Context, e *raffles.Entry) (bool, error) {
	defer s.guard()()
	for _, existing := range s.db.entries {
		if existing.Key() == e.Key() {
			return false, nil
		}
	}
	e.ID = s.db.id()
	e.CreatedAt = time.Now()
	s.db.entries = append(s.db.entries, *e)
	return true, nil
}

func (s memRaffles) CountUserEntries(_ context.Context, raffleID, userID int64) (int, error) {
	defer s.guard()()
	n := 0
	for _, e := range s.db.entries {
		if e.RaffleID == raffleID && e.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (s memRaffles) filterEntries(keep func(raffles.Entry) bool) []raffles.Entry {
	defer s.guard()()
	out := []raffles.Entry{}
	for _, e := range s.db.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func (s memRaffles) ListEntries(_ context.Context, raffleID int64) ([]raffles.Entry, error) {
	return s.filterEntries(func(e raffles.Entry) bool { return e.RaffleID == raffleID }), nil
}

func (s memRaffles) ListUserEntries(_ context.Context, userID int64) ([]raffles.Entry, error) {
	out := s.filterEntries(func(e raffles.Entry) bool { return e.UserID == userID })
	slices.Reverse(out)
	return out, nil
}

type memApps struct{ base }

func (s memApps) CreateApplication(_ context.Context, a *accesscontrol.Application) error {
	defer s.guard()()
	a.ID = s.db.id()
	s.db.apps[a.ID] = *a
	return nil
}

func (s memApps) LockApplication(_ context.Context, id int64) (*accesscontrol.Application, error) {
	defer s.guard()()
	a, ok := s.db.apps[id]
	if !ok {
		return nil, accesscontrol.ErrApplicationNotFound
	}
	return &a, nil
}

func (s memApps) HasPendingApplication(_ context.Context, userID int64) (bool, error) {
	defer s.guard()()
	for _, a := range s.db.apps {
		if a.UserID == userID && a.Status == accesscontrol.ApplicationPending {
			return true, nil
		}
	}
	return false, nil
}

func (s memApps) SetApplicationStatus(_ context.Context, id int64, status accesscontrol.ApplicationStatus, decidedBy int64) error {
	defer s.guard()()
	a, ok := s.db.apps[id]
	if !ok {
		return accesscontrol.ErrApplicationNotFound
	}
	a.Status, a.DecidedBy = status, &decidedBy
	s.db.apps[id] = a
	return nil
}

func (s memApps) ListApplications(_ context.Context, status accesscontrol.ApplicationStatus) ([]accesscontrol.Application, error) {
	defer s.guard()()
	out := []accesscontrol.Application{}
	for _, a := range s.db.apps {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

type notice struct {
	kind   string
	userID int64
	entry  int64
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []notice
}

func (n *recordingNotifier) TicketIssued(_ context.Context, _ *raffles.Raffle, e *raffles.Entry) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice{"ticket", e.UserID, e.ID})
	return nil
}

func (n *recordingNotifier) RaffleWon(_ context.Context, u *users.User, _ *raffles.Raffle, e *raffles.Entry) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice{"won", u.ID, e.ID})
	return nil
}

func (n *recordingNotifier) count(kind string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, x := range n.notices {
		if x.kind == kind {
			c++
		}
	}
	return c
}

type countingCache struct {
	mu sync.Mutex
	n  int
}

func (c *countingCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return nil
}

func newTestService(t *testing.T, db *memDB, opts ...Option) *Service {
	t.Helper()
	codes, err := raffles.NewTicketCodes("test-salt")
	if err != nil {
		t.Fatalf("NewTicketCodes() error = %v", err)
	}
	return NewService(db, db.repos(true), codes, zap.NewNop().Sugar(), opts...)
}

var (
	admin    = &Caller{ID: 1, Role: accesscontrol.RoleAdmin}
	senior   = &Caller{ID: 2, Role: accesscontrol.RoleSeniorReviewer}
	reviewer = &Caller{ID: 10, Role: accesscontrol.RoleReviewer}
	visitor  = &Caller{ID: 50, Role: accesscontrol.RoleVisitor}
)

func ratings(overall int) venuereviews.Ratings {
	return venuereviews.Ratings{Overall: overall, Meat: 4, Bread: 4, Sides: 4, Service: 4, Value: 4}
}

func hebrew(n int) string {
	return strings.Repeat("ש", n)
}
