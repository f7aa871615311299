package main

import (
	"net/http"

	"basari/internal/community"
	"basari/internal/params"
)

const maxLeaderboardLimit = 200

// leaderboardHandler godoc
//
//	@Summary		Contributor leaderboard
//	@Description	Contributors ranked by review count, ties broken by display name in Hebrew collation
//	@Tags			users
//	@Produce		json
//	@Param			limit	query		int	false	"Max results (default 50, max 200)"
//	@Success		200		{array}		leaderboard.Standing
//	@Failure		500		{object}	error
//	@Router			/leaderboard [get]
func (app *application) leaderboardHandler(w http.ResponseWriter, r *http.Request) {
	limit := params.ParseLimit(r.URL.Query(), community.DefaultLeaderboardLimit, maxLeaderboardLimit)

	standings, err := app.community.Leaderboard(r.Context(), limit)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, standings); err != nil {
		app.internalServerError(w, r, err)
	}
}
