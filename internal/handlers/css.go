// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"cruisepress/internal/storage"
)

// CSS serves synced stylesheets straight from object storage. This is
// public, cacheable CDN content, so responses carry permissive CORS and
// a long-lived cache header.
type CSS struct {
	storage *storage.Client
}

// NewCSS creates the CSS serving handler. storage may be nil when object
// storage is unconfigured; every request then 404s.
func NewCSS(storageClient *storage.Client) *CSS {
	return &CSS{storage: storageClient}
}

// Serve handles GET /css/{filename}.
func (h *CSS) Serve(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	if !validCSSFilename(filename) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	if h.storage == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	body, contentType, err := h.storage.Get(r.Context(), "css/"+filename)
	if err != nil {
		slog.Debug("stylesheet not in storage", "filename", filename, "error", err)
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	if contentType == "" {
		contentType = "text/css; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Write(body)
}

// validCSSFilename rejects anything that is not a plain .css filename:
// path traversal, nested paths, and non-CSS extensions.
func validCSSFilename(name string) bool {
	if name == "" || !strings.HasSuffix(name, ".css") {
		return false
	}
	if strings.Contains(name, "..") || strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return false
	}
	return true
}
