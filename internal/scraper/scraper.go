// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package scraper captures origin WordPress pages as reusable page
// templates: fetch, strip third-party scripts and tracking, mark the
// content region with a placeholder, and point asset URLs at the CDN.
// Sanitized templates are cached in the database and refreshed on demand.
package scraper

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cruisepress/internal/models"
)

// TemplateCache is the subset of the template store the scraper needs.
type TemplateCache interface {
	FindByURL(sourceURL string) (*models.WordPressTemplate, error)
	Upsert(t *models.WordPressTemplate) error
	Delete(sourceURL string) error
	DeleteAll() error
}

// Scraper fetches and sanitizes origin pages.
type Scraper struct {
	cache      TemplateCache
	client     *http.Client
	userAgent  string
	originBase string
	cdnBase    string
}

// New creates a Scraper. client may be nil, in which case a default
// client with a 30s timeout is used.
func New(cache TemplateCache, client *http.Client, userAgent, originBase, cdnBase string) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Scraper{
		cache:      cache,
		client:     client,
		userAgent:  userAgent,
		originBase: strings.TrimRight(originBase, "/"),
		cdnBase:    strings.TrimRight(cdnBase, "/"),
	}
}

// Scrape fetches sourceURL, runs the full sanitization pipeline, and
// caches the result. The template hash is computed over the ORIGINAL
// fetched HTML, so origin-side changes are detectable even when the
// sanitized output happens to be identical.
func (s *Scraper) Scrape(ctx context.Context, sourceURL string) (*models.WordPressTemplate, error) {
	raw, err := s.fetch(ctx, sourceURL)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: %w", sourceURL, err)
	}

	sum := sha256.Sum256(raw)
	hash := hex.EncodeToString(sum[:])

	html := sanitize(string(raw))
	html, found := substituteContentRegion(html)
	html = rewriteAssetURLs(html, s.originBase, s.cdnBase)

	template := &models.WordPressTemplate{
		SourceURL:    sourceURL,
		FullHTML:     html,
		TemplateHash: hash,
		LastScraped:  time.Now().UTC(),
	}
	if found {
		template.ContentPlaceholder = ContentPlaceholder
	} else {
		slog.Warn("no content region found, template will serve unmodified", "url", sourceURL)
	}

	// A persist failure should not discard a successful scrape; the
	// in-memory template is still usable for this request.
	if err := s.cache.Upsert(template); err != nil {
		slog.Error("template cache write failed", "url", sourceURL, "error", err)
	}

	slog.Info("page scraped",
		"url", sourceURL,
		"size", len(html),
		"placeholder", found,
	)
	return template, nil
}

// GetOrFetch returns the cached template for sourceURL, scraping it on a
// cache miss.
func (s *Scraper) GetOrFetch(ctx context.Context, sourceURL string) (*models.WordPressTemplate, error) {
	cached, err := s.cache.FindByURL(sourceURL)
	if err != nil {
		slog.Warn("template cache read failed", "url", sourceURL, "error", err)
	}
	if cached != nil {
		return cached, nil
	}
	return s.Scrape(ctx, sourceURL)
}

// Refresh forces a fresh scrape regardless of cache state.
func (s *Scraper) Refresh(ctx context.Context, sourceURL string) (*models.WordPressTemplate, error) {
	return s.Scrape(ctx, sourceURL)
}

// ClearCache drops the cached template for one URL.
func (s *Scraper) ClearCache(sourceURL string) error {
	return s.cache.Delete(sourceURL)
}

// ClearAll drops every cached template.
func (s *Scraper) ClearAll() error {
	return s.cache.DeleteAll()
}

// Render splices rendered content into a template at its placeholder.
// Templates without a placeholder are returned unmodified.
func Render(t *models.WordPressTemplate, content string) string {
	if !t.HasPlaceholder() {
		return t.FullHTML
	}
	return strings.Replace(t.FullHTML, t.ContentPlaceholder, content, 1)
}

// fetch GETs a page with the descriptive user agent.
func (s *Scraper) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
