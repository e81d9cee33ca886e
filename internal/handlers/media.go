// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"cruisepress/internal/imagemeta"
	"cruisepress/internal/models"
	"cruisepress/internal/storage"
	"cruisepress/internal/store"
)

// maxUploadSize is the maximum allowed file upload size (25 MB).
const maxUploadSize = 25 << 20

// allowedMediaTypes defines MIME types accepted for upload.
var allowedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Media handles uploads to object storage with metadata in PostgreSQL.
// Dimensions are sniffed from image headers, never by decoding pixels.
type Media struct {
	storage *storage.Client
	media   *store.MediaStore
}

// NewMedia creates the media admin handler.
func NewMedia(storageClient *storage.Client, mediaStore *store.MediaStore) *Media {
	return &Media{storage: storageClient, media: mediaStore}
}

// Upload handles multipart file upload to object storage.
func (h *Media) Upload(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		writeError(w, "object storage is not configured", http.StatusServiceUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, "file too large, maximum size is 25 MB", http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, "no file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		writeError(w, "failed to read file", http.StatusInternalServerError)
		return
	}

	// The declared Content-Type is advisory; the magic bytes decide.
	contentType := imagemeta.DetectContentType(fileBytes)
	if contentType == "" {
		contentType = header.Header.Get("Content-Type")
	}
	if !allowedMediaTypes[contentType] {
		writeError(w, fmt.Sprintf("file type %q is not allowed", contentType), http.StatusBadRequest)
		return
	}

	size := imagemeta.Dimensions(fileBytes, contentType)

	now := time.Now()
	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = extensionFromType(contentType)
	}
	fileID := uuid.New().String()
	s3Key := fmt.Sprintf("media/%d/%02d/%s%s", now.Year(), now.Month(), fileID, ext)

	err = h.storage.Put(r.Context(), s3Key, fileBytes, storage.PutOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000",
	})
	if err != nil {
		slog.Error("media upload failed", "key", s3Key, "error", err)
		writeError(w, "failed to upload file", http.StatusInternalServerError)
		return
	}

	media := &models.Media{
		Filename:    fileID + ext,
		ContentType: contentType,
		SizeBytes:   int64(len(fileBytes)),
		S3Key:       s3Key,
	}
	if size != nil {
		media.Width = &size.Width
		media.Height = &size.Height
	}
	if altText := r.FormValue("alt_text"); altText != "" {
		media.AltText = &altText
	}

	created, err := h.media.Create(media)
	if err != nil {
		slog.Error("media db insert failed", "key", s3Key, "error", err)
		writeError(w, "failed to save file metadata", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":     created.ID,
		"url":    h.storage.FileURL(created.S3Key),
		"size":   created.HumanSize(),
		"type":   created.ContentType,
		"width":  created.Width,
		"height": created.Height,
	})
}

// List handles GET /admin/media: the most recent uploads with URLs.
func (h *Media) List(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		writeError(w, "object storage is not configured", http.StatusServiceUnavailable)
		return
	}
	items, err := h.media.List(50, 0)
	if err != nil {
		slog.Error("media listing failed", "error", err)
		writeError(w, "failed to load media", http.StatusInternalServerError)
		return
	}

	type mediaView struct {
		models.Media
		URL string `json:"url"`
	}
	views := make([]mediaView, 0, len(items))
	for _, m := range items {
		views = append(views, mediaView{Media: m, URL: h.storage.FileURL(m.S3Key)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": views})
}

// Delete removes a media item from both storage and the database.
func (h *Media) Delete(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		writeError(w, "object storage is not configured", http.StatusServiceUnavailable)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "invalid id", http.StatusBadRequest)
		return
	}

	deleted, err := h.media.Delete(id)
	if err != nil {
		slog.Error("media db delete failed", "error", err)
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if deleted == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}

	// Best-effort object cleanup; the metadata row is already gone.
	if err := h.storage.Delete(r.Context(), deleted.S3Key); err != nil {
		slog.Warn("media object delete failed", "key", deleted.S3Key, "error", err)
	}

	w.WriteHeader(http.StatusNoContent)
}

// extensionFromType returns a file extension for known MIME types.
func extensionFromType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
