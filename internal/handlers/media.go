// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"contenthub/internal/middleware"
	"contenthub/internal/models"
	"contenthub/internal/storage"
	"contenthub/internal/store"
)

// maxUploadSize caps a single uploaded file at 5MB.
const maxUploadSize = 5 << 20

// allowedFileTypes matches the extensions and MIME subtypes accepted for
// upload. A file passes when either its extension or its declared MIME type
// matches.
var allowedFileTypes = regexp.MustCompile(`jpeg|jpg|png|gif|webp|svg|pdf|doc|docx|mp4`)

// Media groups the media library handlers.
type Media struct {
	media *store.MediaStore
	files *storage.Local
}

// NewMedia creates a new Media handler group.
func NewMedia(media *store.MediaStore, files *storage.Local) *Media {
	return &Media{media: media, files: files}
}

// List returns media records filtered by filename search and MIME prefix.
func (h *Media) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	mimeType := r.URL.Query().Get("type")
	if mimeType == "all" {
		mimeType = ""
	}

	items, err := h.media.List(search, mimeType)
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.Media{}
	}

	respondJSON(w, http.StatusOK, map[string]any{"media": items})
}

// Upload stores a multipart file on disk and records its metadata. The body
// is hard-capped so an oversize upload fails before it is buffered.
func (h *Media) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, badRequest("File too large. Maximum size is 5MB."))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, badRequest("No file uploaded."))
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		respondError(w, badRequest("File too large. Maximum size is 5MB."))
		return
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	mimeType := header.Header.Get("Content-Type")
	if !allowedFileTypes.MatchString(ext) && !allowedFileTypes.MatchString(mimeType) {
		respondError(w, badRequest("Invalid file type. Only images, PDFs, documents, and videos are allowed."))
		return
	}

	storageName := uuid.New().String()
	if ext != "" {
		storageName += "." + ext
	}

	size, err := h.files.Save(storageName, file)
	if err != nil {
		respondError(w, err)
		return
	}

	identity := middleware.IdentityFromCtx(r.Context())

	record, err := h.media.Create(&models.Media{
		Filename:     storageName,
		OriginalName: header.Filename,
		MimeType:     mimeType,
		Size:         size,
		URL:          h.files.URL(storageName),
		UploadedBy:   identity.UserID,
	})
	if err != nil {
		h.files.Remove(storageName)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"media":   record,
		"message": "File uploaded successfully.",
	})
}

// Delete removes the stored file and its metadata row. A file already gone
// from disk does not block removing the record.
func (h *Media) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, notFound("Media not found."))
		return
	}

	record, err := h.media.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if record == nil {
		respondError(w, notFound("Media not found."))
		return
	}

	if err := h.files.Remove(record.Filename); err != nil {
		respondError(w, err)
		return
	}
	if err := h.media.Delete(id); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Media deleted successfully."})
}
