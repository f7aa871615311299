package main

import (
	"net/http"
	"time"

	"basari/internal/community"
)

type createRafflePayload struct {
	Title    string    `json:"title"`
	Prize    string    `json:"prize"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// activeRaffleHandler godoc
//
//	@Summary		Get the active raffle
//	@Tags			raffles
//	@Produce		json
//	@Success		200	{object}	raffles.Raffle
//	@Failure		404	{object}	error	"No raffle is active"
//	@Failure		500	{object}	error
//	@Router			/raffles/active [get]
func (app *application) activeRaffleHandler(w http.ResponseWriter, r *http.Request) {
	raffle, err := app.community.ActiveRaffle(r.Context())
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, raffle); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createRaffleHandler godoc
//
//	@Summary		Create a raffle
//	@Description	Admin only. The raffle starts in the upcoming state.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		createRafflePayload	true	"Raffle"
//	@Success		201		{object}	raffles.Raffle
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Failure		403		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/raffles [post]
func (app *application) createRaffleHandler(w http.ResponseWriter, r *http.Request) {
	var payload createRafflePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	raffle, err := app.community.CreateRaffle(r.Context(), callerFromRequest(r), community.RaffleInput{
		Title:    payload.Title,
		Prize:    payload.Prize,
		StartsAt: payload.StartsAt,
		EndsAt:   payload.EndsAt,
	})
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, raffle); err != nil {
		app.internalServerError(w, r, err)
	}
}

// activateRaffleHandler godoc
//
//	@Summary		Activate a raffle
//	@Description	Admin only. Fails with 409 while another raffle is active.
//	@Tags			admin
//	@Produce		json
//	@Param			raffleID	path		int	true	"Raffle ID"
//	@Success		200			{object}	raffles.Raffle
//	@Failure		400			{object}	error
//	@Failure		403			{object}	error
//	@Failure		404			{object}	error
//	@Failure		409			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/raffles/{raffleID}/activate [post]
func (app *application) activateRaffleHandler(w http.ResponseWriter, r *http.Request) {
	raffleID, err := idParam(r, "raffleID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	raffle, err := app.community.ActivateRaffle(r.Context(), callerFromRequest(r), raffleID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, raffle); err != nil {
		app.internalServerError(w, r, err)
	}
}

// drawRaffleHandler godoc
//
//	@Summary		Draw a raffle winner
//	@Description	Admin only. Picks one ticket uniformly at random and completes the raffle. A raffle without tickets completes with no winner.
//	@Tags			admin
//	@Produce		json
//	@Param			raffleID	path		int	true	"Raffle ID"
//	@Success		200			{object}	community.DrawResult
//	@Failure		400			{object}	error
//	@Failure		403			{object}	error
//	@Failure		404			{object}	error
//	@Failure		409			{object}	error	"Raffle is not active"
//	@Security		ApiKeyAuth
//	@Router			/admin/raffles/{raffleID}/draw [post]
func (app *application) drawRaffleHandler(w http.ResponseWriter, r *http.Request) {
	raffleID, err := idParam(r, "raffleID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	result, err := app.community.DrawRaffle(r.Context(), callerFromRequest(r), raffleID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}
