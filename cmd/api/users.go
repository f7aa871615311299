package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"basari/internal/domain/users"

	"github.com/go-chi/chi/v5"
)

type userKey string

const userCtx userKey = "user"

func getUserFromContext(r *http.Request) *users.User {
	user, _ := r.Context().Value(userCtx).(*users.User)
	return user
}

// idParam parses a positive int64 path parameter.
func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// userStandingHandler godoc
//
//	@Summary		Get a contributor's standing
//	@Description	Returns leaderboard rank, badge and progress towards the next badge. Rank is 0 when the user does not qualify for the leaderboard.
//	@Tags			users
//	@Produce		json
//	@Param			userID	path		int	true	"User ID"
//	@Success		200		{object}	leaderboard.Standing
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Failure		500		{object}	error
//	@Router			/users/{userID}/standing [get]
func (app *application) userStandingHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	standing, err := app.community.UserStanding(r.Context(), userID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, standing); err != nil {
		app.internalServerError(w, r, err)
	}
}

// myTicketsHandler godoc
//
//	@Summary		List my raffle tickets
//	@Description	Returns every ticket the authenticated user holds, newest first, with its printable code
//	@Tags			raffles
//	@Produce		json
//	@Success		200	{array}		raffles.Entry
//	@Failure		401	{object}	error
//	@Failure		500	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/me/tickets [get]
func (app *application) myTicketsHandler(w http.ResponseWriter, r *http.Request) {
	caller := callerFromRequest(r)
	if caller == nil {
		app.unauthorizedErrorResponse(w, r, errors.New("unauthorized request"))
		return
	}

	entries, err := app.community.UserTickets(r.Context(), caller)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, entries); err != nil {
		app.internalServerError(w, r, err)
	}
}
