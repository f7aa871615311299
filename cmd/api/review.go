package main

import (
	"errors"
	"net/http"

	"basari/internal/community"
	venuereviews "basari/internal/domain/venuereview"
)

type ratingsPayload struct {
	Overall int `json:"overall"`
	Meat    int `json:"meat"`
	Bread   int `json:"bread"`
	Sides   int `json:"sides"`
	Service int `json:"service"`
	Value   int `json:"value"`
}

func (p ratingsPayload) toRatings() venuereviews.Ratings {
	return venuereviews.Ratings(p)
}

type createReviewPayload struct {
	Ratings       ratingsPayload `json:"ratings"`
	Body          string         `json:"body"`
	ImageURLs     []string       `json:"image_urls"`
	VerifiedVisit bool           `json:"verified_visit"`
}

type updateReviewPayload struct {
	Ratings       *ratingsPayload `json:"ratings"`
	Body          *string         `json:"body"`
	ImageURLs     *[]string       `json:"image_urls"`
	VerifiedVisit *bool           `json:"verified_visit"`
}

func (p updateReviewPayload) toPatch() community.ReviewPatch {
	patch := community.ReviewPatch{
		Body:          p.Body,
		ImageURLs:     p.ImageURLs,
		VerifiedVisit: p.VerifiedVisit,
	}
	if p.Ratings != nil {
		ratings := p.Ratings.toRatings()
		patch.Ratings = &ratings
	}
	return patch
}

// createVenueReviewHandler godoc
//
//	@Summary		Review a venue
//	@Description	Stores the review, refreshes the venue's average rating and issues a ticket in the active raffle
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			venueID	path		int					true	"Venue ID"
//	@Param			payload	body		createReviewPayload	true	"Review"
//	@Success		201		{object}	venuereviews.Review
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Failure		403		{object}	error
//	@Failure		404		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/venues/{venueID}/reviews [post]
func (app *application) createVenueReviewHandler(w http.ResponseWriter, r *http.Request) {
	venueID, err := idParam(r, "venueID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload createReviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	review, err := app.community.SubmitReview(r.Context(), callerFromRequest(r), venueID, community.ReviewInput{
		Ratings:       payload.Ratings.toRatings(),
		Body:          payload.Body,
		ImageURLs:     payload.ImageURLs,
		VerifiedVisit: payload.VerifiedVisit,
	})
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

// editReviewHandler godoc
//
//	@Summary		Edit a review
//	@Description	Authors may edit their own review; senior reviewers and admins may edit any
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			reviewID	path		int					true	"Review ID"
//	@Param			payload		body		updateReviewPayload	true	"Fields to change"
//	@Success		200			{object}	venuereviews.Review
//	@Failure		400			{object}	error
//	@Failure		401			{object}	error
//	@Failure		403			{object}	error
//	@Failure		404			{object}	error
//	@Failure		500			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/reviews/{reviewID} [patch]
func (app *application) editReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := idParam(r, "reviewID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload updateReviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	review, err := app.community.EditReview(r.Context(), callerFromRequest(r), reviewID, payload.toPatch())
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteReviewHandler godoc
//
//	@Summary		Delete a review
//	@Tags			reviews
//	@Param			reviewID	path	int	true	"Review ID"
//	@Success		204
//	@Failure		400	{object}	error
//	@Failure		401	{object}	error
//	@Failure		403	{object}	error
//	@Failure		404	{object}	error
//	@Failure		500	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/reviews/{reviewID} [delete]
func (app *application) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := idParam(r, "reviewID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.community.DeleteReview(r.Context(), callerFromRequest(r), reviewID); err != nil {
		app.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// markHelpfulHandler godoc
//
//	@Summary		Mark a review helpful
//	@Description	Idempotent; authors cannot vote on their own review
//	@Tags			reviews
//	@Produce		json
//	@Param			reviewID	path		int	true	"Review ID"
//	@Success		200			{object}	venuereviews.Review
//	@Failure		400			{object}	error
//	@Failure		401			{object}	error
//	@Failure		403			{object}	error
//	@Failure		404			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/reviews/{reviewID}/helpful [put]
func (app *application) markHelpfulHandler(w http.ResponseWriter, r *http.Request) {
	app.setHelpful(w, r, true)
}

// unmarkHelpfulHandler godoc
//
//	@Summary		Withdraw a helpful vote
//	@Tags			reviews
//	@Produce		json
//	@Param			reviewID	path		int	true	"Review ID"
//	@Success		200			{object}	venuereviews.Review
//	@Failure		400			{object}	error
//	@Failure		401			{object}	error
//	@Failure		404			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/reviews/{reviewID}/helpful [delete]
func (app *application) unmarkHelpfulHandler(w http.ResponseWriter, r *http.Request) {
	app.setHelpful(w, r, false)
}

func (app *application) setHelpful(w http.ResponseWriter, r *http.Request, helpful bool) {
	reviewID, err := idParam(r, "reviewID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	caller := callerFromRequest(r)
	if caller == nil {
		app.unauthorizedErrorResponse(w, r, errors.New("unauthorized request"))
		return
	}

	review, err := app.community.MarkHelpful(r.Context(), caller, reviewID, helpful)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, review); err != nil {
		app.internalServerError(w, r, err)
	}
}
