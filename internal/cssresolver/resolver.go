// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cssresolver answers "which stylesheets does layout X need right
// now". It prefers CDN copies recorded by the sync pipeline, falls back to
// the raw origin URLs, and guarantees a page is never served unstyled by
// attaching inline critical CSS whenever any CDN copy is missing.
package cssresolver

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"cruisepress/internal/models"
)

// CSSFile is one resolved stylesheet entry. CDNURL, StorageKey, and Hash
// are empty when the sync pipeline has no active version for the URL.
type CSSFile struct {
	SourceURL  string `json:"source_url"`
	CDNURL     string `json:"cdn_url,omitempty"`
	StorageKey string `json:"storage_key,omitempty"`
	Hash       string `json:"hash,omitempty"`
}

// Mapping is the resolved CSS answer for one layout. Ordering follows the
// origin site's stylesheet load order. FallbackContent is non-empty
// whenever at least one file lacks a CDN copy.
type Mapping struct {
	Layout          models.Layout `json:"layout"`
	Files           []CSSFile     `json:"files"`
	FallbackContent string        `json:"fallback_content,omitempty"`
}

// Health is the result of probing a layout's CSS availability.
type Health struct {
	Healthy          bool    `json:"healthy"`
	CDNAvailable     bool    `json:"cdn_available"`
	SourceAccessible bool    `json:"source_accessible"`
	LastSync         *string `json:"last_sync,omitempty"`
}

// SettingsSource supplies the two settings the resolver reads.
type SettingsSource interface {
	CSSURLs() []string
	SyncEnabled() bool
}

// VersionSource is the subset of the css_versions store the resolver needs.
type VersionSource interface {
	FindActiveByURL(fileURL string) (*models.CSSVersion, error)
	LastDetectedAt() (*string, error)
}

// Resolver computes and caches per-layout CSS mappings.
type Resolver struct {
	settings SettingsSource
	versions VersionSource
	cdnBase  string
	client   *http.Client

	mu    sync.RWMutex
	cache map[models.Layout]*Mapping
}

// New creates a Resolver. cdnBase is the public base URL of object
// storage (no trailing slash). client may be nil; health checks then use
// a default client with a 10s timeout.
func New(settings SettingsSource, versions VersionSource, cdnBase string, client *http.Client) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Resolver{
		settings: settings,
		versions: versions,
		cdnBase:  cdnBase,
		client:   client,
		cache:    make(map[models.Layout]*Mapping),
	}
}

// Resolve returns the CSS mapping for a layout, cached per layout until
// explicitly invalidated. The result always carries at least one usable
// stylesheet: a CDN URL, a source URL, or inline fallback content.
func (r *Resolver) Resolve(ctx context.Context, layout models.Layout) *Mapping {
	r.mu.RLock()
	cached := r.cache[layout]
	r.mu.RUnlock()
	if cached != nil {
		return cached
	}

	mapping := r.build(ctx, layout)

	r.mu.Lock()
	r.cache[layout] = mapping
	r.mu.Unlock()
	return mapping
}

// build computes a fresh mapping from settings and version rows.
func (r *Resolver) build(ctx context.Context, layout models.Layout) *Mapping {
	urls := r.settings.CSSURLs()
	if !r.settings.SyncEnabled() || len(urls) == 0 {
		slog.Warn("css sync disabled or unconfigured, serving emergency fallback", "layout", layout)
		return &Mapping{
			Layout:          layout,
			Files:           []CSSFile{{SourceURL: emergencyCSSURL}},
			FallbackContent: CriticalCSS(layout),
		}
	}

	mapping := &Mapping{Layout: layout}
	missingCDN := false

	for _, url := range urls {
		file := CSSFile{SourceURL: url}

		active, err := r.versions.FindActiveByURL(url)
		if err != nil {
			slog.Warn("css version lookup failed", "url", url, "error", err)
		}
		if active != nil {
			file.CDNURL = r.cdnBase + "/css/" + active.CDNFilename
			file.StorageKey = active.CDNFilename
			file.Hash = active.FileHash
		} else {
			missingCDN = true
		}

		mapping.Files = append(mapping.Files, file)
	}

	// Any gap in CDN coverage means the page must carry its own critical
	// rules, since the origin URL alone may be unreachable or blocked.
	if missingCDN {
		mapping.FallbackContent = CriticalCSS(layout)
	}

	return mapping
}

// CSSForLayout returns the flattened stylesheet URL list for a layout,
// CDN copies preferred.
func (r *Resolver) CSSForLayout(ctx context.Context, layout models.Layout) []string {
	mapping := r.Resolve(ctx, layout)
	urls := make([]string, 0, len(mapping.Files))
	for _, f := range mapping.Files {
		if f.CDNURL != "" {
			urls = append(urls, f.CDNURL)
		} else {
			urls = append(urls, f.SourceURL)
		}
	}
	return urls
}

// Invalidate drops the cached mapping for one layout.
func (r *Resolver) Invalidate(layout models.Layout) {
	r.mu.Lock()
	delete(r.cache, layout)
	r.mu.Unlock()
	slog.Debug("css mapping invalidated", "layout", layout)
}

// InvalidateAll drops every cached mapping. Called after a sync run.
func (r *Resolver) InvalidateAll() {
	r.mu.Lock()
	r.cache = make(map[models.Layout]*Mapping)
	r.mu.Unlock()
	slog.Debug("css mapping cache fully cleared")
}

// CheckHealth probes the first stylesheet of a layout's mapping over both
// the CDN and origin paths. Healthy means at least one path answered.
func (r *Resolver) CheckHealth(ctx context.Context, layout models.Layout) Health {
	mapping := r.Resolve(ctx, layout)

	health := Health{}
	if len(mapping.Files) > 0 {
		first := mapping.Files[0]
		if first.CDNURL != "" {
			health.CDNAvailable = r.headOK(ctx, first.CDNURL)
		}
		health.SourceAccessible = r.headOK(ctx, first.SourceURL)
	}
	health.Healthy = health.CDNAvailable || health.SourceAccessible

	if ts, err := r.versions.LastDetectedAt(); err == nil {
		health.LastSync = ts
	}

	return health
}

// headOK issues a HEAD request and reports a 2xx/3xx answer.
func (r *Resolver) headOK(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 400
}
