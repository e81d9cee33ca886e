// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package csssync mirrors the origin site's stylesheets into object
// storage. Each sync fetches every configured URL sequentially, detects
// changes by content hash, writes changed files under css/<filename>, and
// records a new active CSSVersion row while keeping full history.
package csssync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"cruisepress/internal/models"
	"cruisepress/internal/storage"
)

// sampleLength bounds the content prefix stored on each version row for
// operator inspection.
const sampleLength = 500

// cacheControl is applied to every stored stylesheet. Content addressing
// is by filename + hash metadata, and versions supersede in place, so a
// long client cache is safe.
const cacheControl = "public, max-age=31536000"

// Outcome classifies the result of syncing one URL.
type Outcome string

const (
	OutcomeUpdated   Outcome = "updated"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeError     Outcome = "error"
)

// Result is the per-URL outcome of a sync run.
type Result struct {
	URL      string  `json:"url"`
	Outcome  Outcome `json:"outcome"`
	Filename string  `json:"filename,omitempty"`
	Size     int     `json:"size,omitempty"`
	Message  string  `json:"message,omitempty"`
}

// Report aggregates the per-URL results of one sync run.
type Report struct {
	Results   []Result `json:"results"`
	Updated   int      `json:"updated"`
	Unchanged int      `json:"unchanged"`
	Errors    int      `json:"errors"`
}

// VersionStore is the subset of the css_versions store the syncer needs.
type VersionStore interface {
	FindActiveByURL(fileURL string) (*models.CSSVersion, error)
	Activate(v *models.CSSVersion) (*models.CSSVersion, error)
}

// ObjectStore is the subset of the storage client the syncer needs.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, opts storage.PutOptions) error
	Head(ctx context.Context, key string) (*storage.ObjectInfo, error)
}

// Syncer runs the fetch-and-store pipeline.
type Syncer struct {
	versions  VersionStore
	objects   ObjectStore
	client    *http.Client
	userAgent string
}

// New creates a Syncer. client may be nil, in which case a default client
// with a 30s timeout is used.
func New(versions VersionStore, objects ObjectStore, client *http.Client, userAgent string) *Syncer {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Syncer{
		versions:  versions,
		objects:   objects,
		client:    client,
		userAgent: userAgent,
	}
}

// Sync processes the configured URLs one at a time. Sequential on purpose:
// the origin is a production WordPress site and must not see a burst of
// parallel fetches. Per-URL failures are recorded and the batch continues.
func (s *Syncer) Sync(ctx context.Context, urls []string) *Report {
	report := &Report{}

	for _, url := range urls {
		result := s.syncOne(ctx, url)
		report.Results = append(report.Results, result)
		switch result.Outcome {
		case OutcomeUpdated:
			report.Updated++
		case OutcomeUnchanged:
			report.Unchanged++
		case OutcomeError:
			report.Errors++
		}
	}

	slog.Info("css sync finished",
		"updated", report.Updated,
		"unchanged", report.Unchanged,
		"errors", report.Errors,
	)
	return report
}

// syncOne fetches a single stylesheet and stores it if changed.
func (s *Syncer) syncOne(ctx context.Context, url string) Result {
	content, err := s.fetch(ctx, url)
	if err != nil {
		slog.Warn("css fetch failed", "url", url, "error", err)
		return Result{URL: url, Outcome: OutcomeError, Message: err.Error()}
	}

	newHash := Hash(content)
	changed, err := s.HasChanged(ctx, url, newHash)
	if err != nil {
		return Result{URL: url, Outcome: OutcomeError, Message: err.Error()}
	}
	if !changed {
		return Result{URL: url, Outcome: OutcomeUnchanged, Filename: StorageFilename(url)}
	}

	filename, err := s.storeAndRecord(ctx, url, content, newHash)
	if err != nil {
		slog.Warn("css store failed", "url", url, "error", err)
		return Result{URL: url, Outcome: OutcomeError, Message: err.Error()}
	}

	slog.Info("css updated", "url", url, "filename", filename, "size", len(content))
	return Result{URL: url, Outcome: OutcomeUpdated, Filename: filename, Size: len(content)}
}

// UploadOne stores caller-supplied stylesheet content for a URL, bypassing
// the fetch step. Shares hashing, change detection, storage, and version
// recording with the sync pipeline.
func (s *Syncer) UploadOne(ctx context.Context, url string, content []byte) (Result, error) {
	newHash := Hash(content)
	changed, err := s.HasChanged(ctx, url, newHash)
	if err != nil {
		return Result{URL: url, Outcome: OutcomeError, Message: err.Error()}, err
	}
	if !changed {
		return Result{URL: url, Outcome: OutcomeUnchanged, Filename: StorageFilename(url)}, nil
	}

	filename, err := s.storeAndRecord(ctx, url, content, newHash)
	if err != nil {
		return Result{URL: url, Outcome: OutcomeError, Message: err.Error()}, err
	}
	return Result{URL: url, Outcome: OutcomeUpdated, Filename: filename, Size: len(content)}, nil
}

// HasChanged reports whether the content behind url differs from the last
// accepted version. A matching hash still counts as changed when the
// stored object has gone missing — failing open toward a re-sync is
// always safer than serving nothing.
func (s *Syncer) HasChanged(ctx context.Context, url, newHash string) (bool, error) {
	active, err := s.versions.FindActiveByURL(url)
	if err != nil {
		return false, fmt.Errorf("lookup active version: %w", err)
	}
	if active == nil || active.FileHash != newHash {
		return true, nil
	}

	if _, err := s.objects.Head(ctx, "css/"+active.CDNFilename); err != nil {
		slog.Warn("stored stylesheet missing, forcing re-sync", "url", url, "key", "css/"+active.CDNFilename)
		return true, nil
	}
	return false, nil
}

// fetch GETs a stylesheet with the descriptive user agent.
func (s *Syncer) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: %s", url, resp.Status)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body %s: %w", url, err)
	}
	return content, nil
}

// storeAndRecord writes the stylesheet to object storage and activates a
// new version row.
func (s *Syncer) storeAndRecord(ctx context.Context, url string, content []byte, hash string) (string, error) {
	filename := StorageFilename(url)

	err := s.objects.Put(ctx, "css/"+filename, content, storage.PutOptions{
		ContentType:  "text/css; charset=utf-8",
		CacheControl: cacheControl,
		Metadata: map[string]string{
			"source-url":   url,
			"content-hash": hash,
			"generated-at": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("store stylesheet: %w", err)
	}

	sample := string(content)
	if len(sample) > sampleLength {
		sample = sample[:sampleLength]
	}

	if _, err := s.versions.Activate(&models.CSSVersion{
		FileURL:       url,
		FileHash:      hash,
		CDNFilename:   filename,
		ContentSample: sample,
	}); err != nil {
		return "", fmt.Errorf("record version: %w", err)
	}

	return filename, nil
}
