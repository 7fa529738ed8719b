package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// uploadImageHandler godoc
//
//	@Summary		Upload an image asset
//	@Description	Accepts a multipart form with an "image" file and an optional "folder" field.
//	@Tags			admin,images
//	@Accept			mpfd
//	@Produce		json
//	@Success		201	{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/admin/images [post]
func (app *application) uploadImageHandler(w http.ResponseWriter, r *http.Request) {
	const maxBytes = 8 * 1024 * 1024 // 8MB
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("failed to parse form: %w", err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	folder := strings.TrimSpace(r.FormValue("folder"))
	switch folder {
	case "", "categories", "products", "banners":
	default:
		app.badRequestResponse(w, r, fmt.Errorf("invalid folder: %s", folder))
		return
	}
	if folder == "" {
		folder = "categories"
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("image file is required"))
		return
	}
	defer file.Close()

	mime, err := sniffMIME(file)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("sniff mime: %w", err))
		return
	}
	allowed := map[string]bool{"image/jpeg": true, "image/png": true, "image/webp": true}
	if !allowed[mime] {
		app.badRequestResponse(w, r, fmt.Errorf("invalid image type: %s", mime))
		return
	}

	publicID := fmt.Sprintf("%s/%d_%d", folder, time.Now().Unix(), rand.Intn(9999))
	imageURL, err := app.uploadToCloudinaryWithID(file, folder, publicID)
	if err != nil {
		app.internalServerError(w, r, fmt.Errorf("failed to upload image: %w", err))
		return
	}

	app.jsonResponse(w, http.StatusCreated, map[string]string{
		"url": imageURL,
	})
}

// uploadToCloudinaryWithID uploads a file to Cloudinary using a custom public ID.
func (app *application) uploadToCloudinaryWithID(file io.Reader, folder, publicID string) (string, error) {
	resp, err := app.cld.Upload.Upload(
		context.Background(),
		file,
		uploader.UploadParams{
			Folder:    folder,
			PublicID:  publicID,
			Overwrite: api.Bool(false),
		},
	)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return resp.SecureURL, nil
}

type DeleteImagePayload struct {
	URL string `json:"url" validate:"required,url"`
}

// deleteImageHandler godoc
//
//	@Summary		Delete an image asset
//	@Tags			admin,images
//	@Accept			json
//	@Produce		json
//	@Success		204
//	@Security		ApiKeyAuth
//	@Router			/admin/images [delete]
func (app *application) deleteImageHandler(w http.ResponseWriter, r *http.Request) {
	var payload DeleteImagePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.deletePhotoFromCloudinary(payload.URL); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) deletePhotoFromCloudinary(photoURL string) error {
	publicID, err := extractPublicIDFromURL(photoURL)
	if err != nil {
		return fmt.Errorf("failed to extract public ID: %w", err)
	}

	_, err = app.cld.Upload.Destroy(context.Background(), uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete photo from Cloudinary: %w", err)
	}

	return nil
}

func extractPublicIDFromURL(photoURL string) (string, error) {
	parsedURL, err := url.Parse(photoURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}

	pathParts := strings.Split(parsedURL.Path, "/")
	for i, part := range pathParts {
		if part == "upload" && i+1 < len(pathParts) {
			return strings.Join(pathParts[i+1:], "/"), nil
		}
	}

	return "", errors.New("failed to extract public ID from URL")
}

// helper: sniff first 512 bytes and reset reader
func sniffMIME(file multipart.File) (string, error) {
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read: %w", err)
	}
	mime := http.DetectContentType(buf[:n])

	// reset so later reads start from byte 0
	if seeker, ok := file.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return "", fmt.Errorf("seek reset: %w", err)
		}
	}
	return mime, nil
}
