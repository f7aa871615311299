package storage

import (
	"context"
	"fmt"

	"basari/internal/database"
	"basari/internal/domain/accesscontrol"
	"basari/internal/domain/pushtokens"
	"basari/internal/domain/raffles"
	"basari/internal/domain/users"
	venuereviews "basari/internal/domain/venuereview"
	"basari/internal/domain/venues"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repos is a set of repositories bound to one connection or transaction.
type Repos struct {
	Venues        venues.Store
	Reviews       venuereviews.Store
	Users         users.Store
	Raffles       raffles.Store
	AccessControl accesscontrol.Store
	PushTokens    pushtokens.Store
}

func newRepos(db database.DBTX) *Repos {
	return &Repos{
		Venues:        venues.NewRepository(db),
		Reviews:       venuereviews.NewRepository(db),
		Users:         users.NewRepository(db),
		Raffles:       raffles.NewRepository(db),
		AccessControl: accesscontrol.NewRepository(db),
		PushTokens:    pushtokens.NewRepository(db),
	}
}

type Container struct {
	pool *pgxpool.Pool // IMPORTANT: set the pool so WithTx works
	*Repos
}

func NewContainer(db *pgxpool.Pool) *Container {
	return &Container{
		pool:  db,
		Repos: newRepos(db),
	}
}

// WithTx runs a unit of work atomically with tx-scoped repositories.
func (c *Container) WithTx(ctx context.Context, fn func(r *Repos) error) error {
	if c.pool == nil {
		return fmt.Errorf("storage container pool is nil (did you forget to set pool in NewContainer?)")
	}

	return database.WithTx(c.pool, ctx, func(tx pgx.Tx) error {
		return fn(newRepos(tx))
	})
}
