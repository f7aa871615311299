// Package community holds the write paths of the venue directory: reviews
// with their rating aggregates, contributor counters, raffle tickets and
// reviewer applications. Every mutation runs in one storage transaction.
package community

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"basari/internal/domain/accesscontrol"
	"basari/internal/domain/raffles"
	"basari/internal/domain/storage"
	"basari/internal/domain/users"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Transactor opens a unit of work. *storage.Container satisfies it.
type Transactor interface {
	WithTx(ctx context.Context, fn func(r *storage.Repos) error) error
}

// Notifier delivers best-effort messages after a commit.
type Notifier interface {
	TicketIssued(ctx context.Context, raffle *raffles.Raffle, entry *raffles.Entry) error
	RaffleWon(ctx context.Context, winner *users.User, raffle *raffles.Raffle, entry *raffles.Entry) error
}

// Invalidator drops cached venue reads after rating aggregates change.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Caller is the authenticated principal of a request.
type Caller struct {
	ID   int64
	Role accesscontrol.Role
}

const notifyTimeout = 10 * time.Second

type Service struct {
	tx       Transactor
	repos    *storage.Repos
	codes    *raffles.TicketCodes
	notifier Notifier
	cache    Invalidator
	validate *validator.Validate
	logger   *zap.SugaredLogger

	// pick returns a uniform index in [0, n).
	pick func(n int) (int, error)
}

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithCache(c Invalidator) Option {
	return func(s *Service) { s.cache = c }
}

// NewService wires the service. repos serve reads outside a transaction.
func NewService(tx Transactor, repos *storage.Repos, codes *raffles.TicketCodes, logger *zap.SugaredLogger, opts ...Option) *Service {
	s := &Service{
		tx:       tx,
		repos:    repos,
		codes:    codes,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
		pick:     cryptoPick,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func cryptoPick(n int) (int, error) {
	i, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(i.Int64()), nil
}

func authorize(caller *Caller, action accesscontrol.Action) error {
	if caller == nil {
		return ErrUnauthenticated
	}
	if !accesscontrol.CanWrite(caller.Role, action) {
		return ErrUnauthorized
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warnw("venue cache invalidation failed", "error", err)
	}
}

// notifyContext detaches delivery from the request so a client disconnect
// does not cancel it.
func notifyContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
}
