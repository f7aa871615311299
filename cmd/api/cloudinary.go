package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const reviewImagesFolder = "reviews"

func (app *application) deletePhotoFromCloudinary(ctx context.Context, photoURL string) error {
	publicID, err := extractPublicIDFromURL(photoURL)
	if err != nil {
		return fmt.Errorf("failed to extract public ID: %w", err)
	}

	_, err = app.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete photo from Cloudinary: %w", err)
	}

	return nil
}

// extractPublicIDFromURL returns the path after ".../upload/", minus the
// version segment and file extension.
func extractPublicIDFromURL(photoURL string) (string, error) {
	parsedURL, err := url.Parse(photoURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}

	pathParts := strings.Split(parsedURL.Path, "/")
	for i, part := range pathParts {
		if part != "upload" || i+1 >= len(pathParts) {
			continue
		}
		rest := pathParts[i+1:]
		if len(rest) > 1 && strings.HasPrefix(rest[0], "v") && isDigits(rest[0][1:]) {
			rest = rest[1:]
		}
		id := strings.Join(rest, "/")
		if dot := strings.LastIndex(id, "."); dot > strings.LastIndex(id, "/") {
			id = id[:dot]
		}
		if id == "" {
			break
		}
		return id, nil
	}

	return "", errors.New("failed to extract public ID from URL")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (app *application) uploadToCloudinaryWithID(ctx context.Context, file io.Reader, publicID string) (string, error) {
	resp, err := app.cld.Upload.Upload(
		ctx,
		file,
		uploader.UploadParams{
			Folder:    reviewImagesFolder,
			PublicID:  publicID,
			Overwrite: api.Bool(false),
		},
	)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return resp.SecureURL, nil
}

// uploadReviewImages uploads files under fresh ids scoped to userID. On a
// failure the images already uploaded are removed again.
func (app *application) uploadReviewImages(ctx context.Context, files []*multipart.FileHeader, userID int64) ([]string, error) {
	urls := make([]string, 0, len(files))

	for _, fileHeader := range files {
		secureURL, err := app.uploadOne(ctx, fileHeader, fmt.Sprintf("user_%d_%s", userID, uuid.NewString()))
		if err != nil {
			for _, u := range urls {
				if derr := app.deletePhotoFromCloudinary(ctx, u); derr != nil {
					app.logger.Warnw("failed to clean up review image", "url", u, "error", derr)
				}
			}
			return nil, err
		}
		urls = append(urls, secureURL)
	}

	return urls, nil
}

func (app *application) uploadOne(ctx context.Context, fileHeader *multipart.FileHeader, publicID string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return app.uploadToCloudinaryWithID(ctx, file, publicID)
}
