package main

import (
	"fmt"
	"net/http"

	"basari/internal/community"
	"basari/internal/domain/accesscontrol"

	"github.com/go-chi/chi/v5"
)

type assignRolePayload struct {
	Role accesscontrol.Role `json:"role" swaggertype:"string" enums:"visitor,applicant,reviewer,senior_reviewer,admin"`
}

type importVenuePayload struct {
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Region      string   `json:"region"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Kashrut     string   `json:"kashrut"`
	MeatTypes   []string `json:"meat_types"`
	Styles      []string `json:"styles"`
	PriceRange  int      `json:"price_range"`
	HasDelivery bool     `json:"has_delivery"`
	HasSeating  bool     `json:"has_seating"`
	Tags        []string `json:"tags"`
}

// assignRoleHandler godoc
//
//	@Summary		Set a user's role
//	@Description	Admin only
//	@Tags			admin
//	@Accept			json
//	@Param			userID	path	int					true	"User ID"
//	@Param			payload	body	assignRolePayload	true	"Role"
//	@Success		204
//	@Failure		400	{object}	error
//	@Failure		403	{object}	error
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/users/{userID}/role [put]
func (app *application) assignRoleHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload assignRolePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.community.AssignRole(r.Context(), callerFromRequest(r), userID, payload.Role); err != nil {
		app.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// importVenueHandler godoc
//
//	@Summary		Import a venue
//	@Description	Admin only. Creates or updates the venue with this slug; ratings and featured flags of an existing venue are kept.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			slug	path		string				true	"Venue slug"
//	@Param			payload	body		importVenuePayload	true	"Venue"
//	@Success		200		{object}	venues.Venue
//	@Failure		400		{object}	error
//	@Failure		403		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/venues/{slug} [put]
func (app *application) importVenueHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if err := Validate.Var(slug, "slug"); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid slug %q", slug))
		return
	}

	var payload importVenuePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	venue, err := app.community.ImportVenue(r.Context(), callerFromRequest(r), slug, community.VenueInput(payload))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, venue); err != nil {
		app.internalServerError(w, r, err)
	}
}
