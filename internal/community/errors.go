package community

import (
	"errors"
	"fmt"

	"basari/internal/domain/accesscontrol"
	"basari/internal/domain/raffles"
	"basari/internal/domain/users"
	venuereviews "basari/internal/domain/venuereview"
	"basari/internal/domain/venues"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrUnauthorized    = errors.New(accesscontrol.DeniedMessage)
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
)

// notFound wraps the domain "not found" sentinels in ErrNotFound and passes
// every other error through.
func notFound(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return err
	case errors.Is(err, venues.ErrNotFound),
		errors.Is(err, venuereviews.ErrNotFound),
		errors.Is(err, users.ErrNotFound),
		errors.Is(err, raffles.ErrNotFound),
		errors.Is(err, accesscontrol.ErrApplicationNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

func conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
