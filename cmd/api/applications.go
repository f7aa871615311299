package main

import (
	"net/http"
	"strings"

	"basari/internal/domain/accesscontrol"
)

type submitApplicationPayload struct {
	Motivation string `json:"motivation"`
}

// submitApplicationHandler godoc
//
//	@Summary		Apply to become a reviewer
//	@Description	The motivation must be at least 50 characters. A user may hold one pending application at a time.
//	@Tags			applications
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		submitApplicationPayload	true	"Application"
//	@Success		201		{object}	accesscontrol.Application
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Failure		403		{object}	error
//	@Failure		409		{object}	error	"An application is already pending"
//	@Security		ApiKeyAuth
//	@Router			/applications [post]
func (app *application) submitApplicationHandler(w http.ResponseWriter, r *http.Request) {
	var payload submitApplicationPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	application, err := app.community.SubmitApplication(r.Context(), callerFromRequest(r), payload.Motivation)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, application); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listApplicationsHandler godoc
//
//	@Summary		List reviewer applications
//	@Description	Admin only
//	@Tags			admin
//	@Produce		json
//	@Param			status	query		string	false	"pending|approved|rejected (default pending)"
//	@Success		200		{array}		accesscontrol.Application
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Failure		403		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/applications [get]
func (app *application) listApplicationsHandler(w http.ResponseWriter, r *http.Request) {
	status := accesscontrol.ApplicationPending
	if s := strings.TrimSpace(r.URL.Query().Get("status")); s != "" {
		status = accesscontrol.ApplicationStatus(s)
	}

	applications, err := app.community.ListApplications(r.Context(), callerFromRequest(r), status)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, applications); err != nil {
		app.internalServerError(w, r, err)
	}
}

// approveApplicationHandler godoc
//
//	@Summary		Approve a reviewer application
//	@Description	Admin only. Grants the applicant the reviewer role.
//	@Tags			admin
//	@Produce		json
//	@Param			applicationID	path		int	true	"Application ID"
//	@Success		200				{object}	accesscontrol.Application
//	@Failure		400				{object}	error
//	@Failure		403				{object}	error
//	@Failure		404				{object}	error
//	@Failure		409				{object}	error	"Already decided"
//	@Security		ApiKeyAuth
//	@Router			/admin/applications/{applicationID}/approve [post]
func (app *application) approveApplicationHandler(w http.ResponseWriter, r *http.Request) {
	app.decideApplication(w, r, true)
}

// rejectApplicationHandler godoc
//
//	@Summary		Reject a reviewer application
//	@Description	Admin only. Returns the applicant to the visitor role.
//	@Tags			admin
//	@Produce		json
//	@Param			applicationID	path		int	true	"Application ID"
//	@Success		200				{object}	accesscontrol.Application
//	@Failure		400				{object}	error
//	@Failure		403				{object}	error
//	@Failure		404				{object}	error
//	@Failure		409				{object}	error	"Already decided"
//	@Security		ApiKeyAuth
//	@Router			/admin/applications/{applicationID}/reject [post]
func (app *application) rejectApplicationHandler(w http.ResponseWriter, r *http.Request) {
	app.decideApplication(w, r, false)
}

func (app *application) decideApplication(w http.ResponseWriter, r *http.Request, approve bool) {
	applicationID, err := idParam(r, "applicationID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	application, err := app.community.DecideApplication(r.Context(), callerFromRequest(r), applicationID, approve)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, application); err != nil {
		app.internalServerError(w, r, err)
	}
}
