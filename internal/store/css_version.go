// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"cruisepress/internal/models"
)

// cssVersionColumns lists all columns for css_versions SELECTs.
const cssVersionColumns = `id, file_url, file_hash, cdn_filename, content_sample, detected_at, active`

// CSSVersionStore tracks synced stylesheet versions in PostgreSQL.
// History is append-only: activating a new version deactivates prior rows
// for the same URL inside one transaction, so the single-active invariant
// holds even if a sync is interrupted.
type CSSVersionStore struct {
	db *sql.DB
}

// NewCSSVersionStore creates a new CSSVersionStore backed by the given database.
func NewCSSVersionStore(db *sql.DB) *CSSVersionStore {
	return &CSSVersionStore{db: db}
}

// scanCSSVersion scans a single css_versions row.
func scanCSSVersion(scanner interface{ Scan(...any) error }) (*models.CSSVersion, error) {
	var v models.CSSVersion
	err := scanner.Scan(
		&v.ID, &v.FileURL, &v.FileHash, &v.CDNFilename,
		&v.ContentSample, &v.DetectedAt, &v.Active,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// FindActiveByURL returns the single active version for a source URL, or
// nil if the URL has never been synced.
func (s *CSSVersionStore) FindActiveByURL(fileURL string) (*models.CSSVersion, error) {
	row := s.db.QueryRow(`
		SELECT `+cssVersionColumns+`
		FROM css_versions
		WHERE file_url = $1 AND active
	`, fileURL)
	v, err := scanCSSVersion(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active css version: %w", err)
	}
	return v, nil
}

// ListActive returns the active version for every tracked URL.
func (s *CSSVersionStore) ListActive() ([]models.CSSVersion, error) {
	rows, err := s.db.Query(`
		SELECT ` + cssVersionColumns + `
		FROM css_versions
		WHERE active
		ORDER BY file_url
	`)
	if err != nil {
		return nil, fmt.Errorf("list active css versions: %w", err)
	}
	defer rows.Close()

	var versions []models.CSSVersion
	for rows.Next() {
		v, err := scanCSSVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan css version: %w", err)
		}
		versions = append(versions, *v)
	}
	return versions, rows.Err()
}

// History returns every recorded version for a URL, newest first.
func (s *CSSVersionStore) History(fileURL string) ([]models.CSSVersion, error) {
	rows, err := s.db.Query(`
		SELECT `+cssVersionColumns+`
		FROM css_versions
		WHERE file_url = $1
		ORDER BY detected_at DESC
	`, fileURL)
	if err != nil {
		return nil, fmt.Errorf("css version history: %w", err)
	}
	defer rows.Close()

	var versions []models.CSSVersion
	for rows.Next() {
		v, err := scanCSSVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan css version: %w", err)
		}
		versions = append(versions, *v)
	}
	return versions, rows.Err()
}

// Activate deactivates any prior versions for the URL and inserts a new
// active row, in a single transaction.
func (s *CSSVersionStore) Activate(v *models.CSSVersion) (*models.CSSVersion, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE css_versions SET active = FALSE WHERE file_url = $1 AND active
	`, v.FileURL); err != nil {
		return nil, fmt.Errorf("deactivate css versions: %w", err)
	}

	result := &models.CSSVersion{}
	err = tx.QueryRow(`
		INSERT INTO css_versions (file_url, file_hash, cdn_filename, content_sample, active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING `+cssVersionColumns,
		v.FileURL, v.FileHash, v.CDNFilename, v.ContentSample,
	).Scan(
		&result.ID, &result.FileURL, &result.FileHash, &result.CDNFilename,
		&result.ContentSample, &result.DetectedAt, &result.Active,
	)
	if err != nil {
		return nil, fmt.Errorf("insert css version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit css version: %w", err)
	}
	return result, nil
}

// LastDetectedAt returns the most recent detection timestamp across all
// tracked URLs, or nil when nothing has been synced yet. Used by health
// checks to report sync recency.
func (s *CSSVersionStore) LastDetectedAt() (*string, error) {
	var ts sql.NullString
	err := s.db.QueryRow(`
		SELECT MAX(detected_at)::text FROM css_versions WHERE active
	`).Scan(&ts)
	if err != nil {
		return nil, fmt.Errorf("last css sync timestamp: %w", err)
	}
	if !ts.Valid {
		return nil, nil
	}
	return &ts.String, nil
}
