// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"cruisepress/internal/cache"
	"cruisepress/internal/cssresolver"
	"cruisepress/internal/csssync"
	"cruisepress/internal/models"
	"cruisepress/internal/store"
)

// Sync exposes the CSS sync pipeline over the admin API.
type Sync struct {
	syncer    *csssync.Syncer
	settings  *store.SiteSettingStore
	versions  *store.CSSVersionStore
	resolver  *cssresolver.Resolver
	pageCache *cache.PageCache
}

// NewSync creates the sync admin handler. pageCache may be nil when
// Valkey is unavailable.
func NewSync(syncer *csssync.Syncer, settings *store.SiteSettingStore, versions *store.CSSVersionStore, resolver *cssresolver.Resolver, pageCache *cache.PageCache) *Sync {
	return &Sync{
		syncer:    syncer,
		settings:  settings,
		versions:  versions,
		resolver:  resolver,
		pageCache: pageCache,
	}
}

// Trigger handles POST /admin/css-sync. Fired by the scheduler (cron
// header) or manually (trigger=manual); the middleware enforces that.
func (h *Sync) Trigger(w http.ResponseWriter, r *http.Request) {
	if h.syncer == nil {
		writeError(w, "object storage is not configured", http.StatusServiceUnavailable)
		return
	}
	if !h.settings.SyncEnabled() {
		writeError(w, "css sync is disabled", http.StatusConflict)
		return
	}

	urls := h.settings.CSSURLs()
	if len(urls) == 0 {
		writeError(w, "no stylesheet urls configured", http.StatusConflict)
		return
	}

	report := h.syncer.Sync(r.Context(), urls)
	h.afterChange(r.Context(), report.Updated > 0)

	writeJSON(w, http.StatusOK, report)
}

// uploadRequest is the body of a manual stylesheet upload.
type uploadRequest struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Upload handles POST /admin/css-sync/upload: caller-supplied stylesheet
// content recorded through the same pipeline as a fetched sync.
func (h *Sync) Upload(w http.ResponseWriter, r *http.Request) {
	if h.syncer == nil {
		writeError(w, "object storage is not configured", http.StatusServiceUnavailable)
		return
	}
	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.URL == "" || req.Content == "" {
		writeError(w, "url and content are required", http.StatusBadRequest)
		return
	}

	result, err := h.syncer.UploadOne(r.Context(), req.URL, []byte(req.Content))
	if err != nil {
		writeError(w, result.Message, http.StatusBadGateway)
		return
	}
	h.afterChange(r.Context(), result.Outcome == csssync.OutcomeUpdated)

	writeJSON(w, http.StatusOK, result)
}

// Status handles GET /admin/css-sync/status: configured URLs, the active
// version of each, and the last sync timestamp.
func (h *Sync) Status(w http.ResponseWriter, r *http.Request) {
	versions, err := h.versions.ListActive()
	if err != nil {
		slog.Error("css version listing failed", "error", err)
		writeError(w, "failed to load versions", http.StatusInternalServerError)
		return
	}

	lastSync, err := h.versions.LastDetectedAt()
	if err != nil {
		slog.Warn("last sync lookup failed", "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"enabled":   h.settings.SyncEnabled(),
		"urls":      h.settings.CSSURLs(),
		"versions":  versions,
		"last_sync": lastSync,
	})
}

// History handles GET /admin/css-sync/history?url=... : every recorded
// version for one URL, newest first.
func (h *Sync) History(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeError(w, "url query parameter is required", http.StatusBadRequest)
		return
	}

	versions, err := h.versions.History(url)
	if err != nil {
		slog.Error("css history lookup failed", "url", url, "error", err)
		writeError(w, "failed to load history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"url": url, "versions": versions})
}

// Health handles GET /admin/css-sync/health?layout=post.
func (h *Sync) Health(w http.ResponseWriter, r *http.Request) {
	layout := models.ParseLayout(r.URL.Query().Get("layout"))
	health := h.resolver.CheckHealth(r.Context(), layout)

	status := http.StatusOK
	if !health.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, health)
}

// afterChange invalidates derived caches after a sync mutated versions.
// Unchanged runs leave caches alone.
func (h *Sync) afterChange(ctx context.Context, changed bool) {
	if !changed {
		return
	}
	h.resolver.InvalidateAll()
	if h.pageCache != nil {
		h.pageCache.InvalidateAll(ctx)
	}
}
