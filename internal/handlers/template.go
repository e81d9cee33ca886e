// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"cruisepress/internal/cache"
	"cruisepress/internal/scraper"
	"cruisepress/internal/store"
)

// Templates exposes the template scraper over the admin API.
type Templates struct {
	scraper   *scraper.Scraper
	templates *store.TemplateStore
	pageCache *cache.PageCache
}

// NewTemplates creates the template admin handler.
func NewTemplates(sc *scraper.Scraper, templates *store.TemplateStore, pageCache *cache.PageCache) *Templates {
	return &Templates{scraper: sc, templates: templates, pageCache: pageCache}
}

// refreshRequest is the body of a template refresh or cache clear.
type refreshRequest struct {
	URL string `json:"url"`
}

// Refresh handles POST /admin/templates/refresh: forces a fresh scrape of
// one origin page and invalidates assembled pages built on it.
func (h *Templates) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, "url is required", http.StatusBadRequest)
		return
	}

	template, err := h.scraper.Refresh(r.Context(), req.URL)
	if err != nil {
		slog.Error("template refresh failed", "url", req.URL, "error", err)
		writeError(w, "scrape failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	if h.pageCache != nil {
		h.pageCache.InvalidateAll(r.Context())
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"source_url":      template.SourceURL,
		"template_hash":   template.TemplateHash,
		"size":            len(template.FullHTML),
		"has_placeholder": template.HasPlaceholder(),
		"last_scraped":    template.LastScraped,
	})
}

// ClearCache handles POST /admin/templates/clear-cache. With a url in the
// body it drops one template; with an empty body it drops them all.
func (h *Templates) ClearCache(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	// An empty or absent body means "clear everything".
	_ = json.NewDecoder(r.Body).Decode(&req)

	var err error
	if req.URL != "" {
		err = h.scraper.ClearCache(req.URL)
	} else {
		err = h.scraper.ClearAll()
	}
	if err != nil {
		slog.Error("template cache clear failed", "url", req.URL, "error", err)
		writeError(w, "cache clear failed", http.StatusInternalServerError)
		return
	}

	if h.pageCache != nil {
		h.pageCache.InvalidateAll(r.Context())
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// Status handles GET /admin/templates/status: every cached template with
// its placeholder state, so degraded-mode templates are visible to the
// operator.
func (h *Templates) Status(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templates.List()
	if err != nil {
		slog.Error("template listing failed", "error", err)
		writeError(w, "failed to load templates", http.StatusInternalServerError)
		return
	}

	type templateStatus struct {
		SourceURL      string `json:"source_url"`
		TemplateHash   string `json:"template_hash"`
		Size           int    `json:"size"`
		HasPlaceholder bool   `json:"has_placeholder"`
		LastScraped    string `json:"last_scraped"`
	}

	statuses := make([]templateStatus, 0, len(templates))
	for i := range templates {
		t := &templates[i]
		statuses = append(statuses, templateStatus{
			SourceURL:      t.SourceURL,
			TemplateHash:   t.TemplateHash,
			Size:           len(t.FullHTML),
			HasPlaceholder: t.HasPlaceholder(),
			LastScraped:    t.LastScraped.Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"templates": statuses})
}
