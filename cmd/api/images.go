package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"basari/internal/community"
	"basari/internal/domain/accesscontrol"
)

const maxReviewUploadBytes = 15 * 1024 * 1024

type uploadImagesResponse struct {
	URLs []string `json:"urls"`
}

// uploadReviewImagesHandler godoc
//
//	@Summary		Upload review images
//	@Description	Uploads up to 5 images and returns their URLs for use in a review's image_urls
//	@Tags			reviews
//	@Accept			mpfd
//	@Produce		json
//	@Param			images	formData	file	true	"Images (max 5)"
//	@Success		201		{object}	uploadImagesResponse
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Failure		403		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/reviews/images [post]
func (app *application) uploadReviewImagesHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	if user == nil {
		app.unauthorizedErrorResponse(w, r, errors.New("unauthorized request"))
		return
	}
	if !accesscontrol.CanWrite(user.Role, accesscontrol.ActionCreateReview) {
		app.forbiddenResponse(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxReviewUploadBytes)
	if err := r.ParseMultipartForm(maxReviewUploadBytes); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	files := r.MultipartForm.File["images"]
	switch {
	case len(files) == 0:
		app.badRequestResponse(w, r, errors.New("no images provided"))
		return
	case len(files) > community.MaxReviewImages:
		app.badRequestResponse(w, r, fmt.Errorf("maximum %d images allowed", community.MaxReviewImages))
		return
	}
	for _, fh := range files {
		if ct := fh.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
			app.badRequestResponse(w, r, fmt.Errorf("%s is not an image", fh.Filename))
			return
		}
	}

	urls, err := app.uploadReviewImages(r.Context(), files, user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, uploadImagesResponse{URLs: urls}); err != nil {
		app.internalServerError(w, r, err)
	}
}
