// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"cruisepress/internal/models"
)

// templateColumns lists all columns for wordpress_templates SELECTs.
const templateColumns = `source_url, full_html, content_placeholder, template_hash, last_scraped`

// TemplateStore caches scraped, sanitized WordPress templates. One row per
// source URL; scrapes overwrite via upsert (last writer wins).
type TemplateStore struct {
	db *sql.DB
}

// NewTemplateStore creates a new TemplateStore with the given database connection.
func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

// FindByURL retrieves the cached template for a source URL. Returns nil
// when the page has never been scraped.
func (s *TemplateStore) FindByURL(sourceURL string) (*models.WordPressTemplate, error) {
	t := &models.WordPressTemplate{}
	err := s.db.QueryRow(`
		SELECT `+templateColumns+`
		FROM wordpress_templates WHERE source_url = $1
	`, sourceURL).Scan(
		&t.SourceURL, &t.FullHTML, &t.ContentPlaceholder, &t.TemplateHash, &t.LastScraped,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find template by url: %w", err)
	}
	return t, nil
}

// List returns all cached templates, most recently scraped first.
func (s *TemplateStore) List() ([]models.WordPressTemplate, error) {
	rows, err := s.db.Query(`
		SELECT ` + templateColumns + `
		FROM wordpress_templates
		ORDER BY last_scraped DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []models.WordPressTemplate
	for rows.Next() {
		var t models.WordPressTemplate
		if err := rows.Scan(
			&t.SourceURL, &t.FullHTML, &t.ContentPlaceholder, &t.TemplateHash, &t.LastScraped,
		); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// Upsert stores a scraped template, replacing any prior row for the URL.
func (s *TemplateStore) Upsert(t *models.WordPressTemplate) error {
	_, err := s.db.Exec(`
		INSERT INTO wordpress_templates (source_url, full_html, content_placeholder, template_hash, last_scraped)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (source_url)
		DO UPDATE SET
			full_html = EXCLUDED.full_html,
			content_placeholder = EXCLUDED.content_placeholder,
			template_hash = EXCLUDED.template_hash,
			last_scraped = EXCLUDED.last_scraped`,
		t.SourceURL, t.FullHTML, t.ContentPlaceholder, t.TemplateHash,
	)
	if err != nil {
		return fmt.Errorf("upsert template: %w", err)
	}
	return nil
}

// Delete removes the cached template for a source URL. Missing rows are
// not an error — cache clearing is idempotent.
func (s *TemplateStore) Delete(sourceURL string) error {
	_, err := s.db.Exec(`DELETE FROM wordpress_templates WHERE source_url = $1`, sourceURL)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// DeleteAll clears the whole template cache.
func (s *TemplateStore) DeleteAll() error {
	_, err := s.db.Exec(`DELETE FROM wordpress_templates`)
	if err != nil {
		return fmt.Errorf("delete all templates: %w", err)
	}
	return nil
}
