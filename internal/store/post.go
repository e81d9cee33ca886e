// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"cruisepress/internal/models"
)

// postColumns lists all columns for posts SELECTs.
const postColumns = `id, slug, title, layout, published, published_at, created_at, updated_at`

// PostStore provides read access to posts and their content blocks. Posts
// are authored by the admin editor; this service reads them to assemble
// public pages.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// scanPost scans a single posts row.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	var layout string
	err := scanner.Scan(
		&p.ID, &p.Slug, &p.Title, &layout, &p.Published,
		&p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Layout = models.ParseLayout(layout)
	return &p, nil
}

// FindBySlug retrieves a published post by its slug. Returns nil if not found.
func (s *PostStore) FindBySlug(slug string) (*models.Post, error) {
	row := s.db.QueryRow(`
		SELECT `+postColumns+`
		FROM posts WHERE slug = $1 AND published
	`, slug)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return p, nil
}

// ListPublished returns published posts, newest first.
func (s *PostStore) ListPublished(limit int) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+`
		FROM posts
		WHERE published
		ORDER BY published_at DESC NULLS LAST
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// BlocksByPostID returns a post's content blocks ordered by block_order.
// The renderer re-sorts defensively, but returning them ordered keeps the
// common path allocation-free.
func (s *PostStore) BlocksByPostID(postID uuid.UUID) ([]models.ContentBlock, error) {
	rows, err := s.db.Query(`
		SELECT id, post_id, block_type, block_order, content, created_at
		FROM content_blocks
		WHERE post_id = $1
		ORDER BY block_order ASC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list content blocks: %w", err)
	}
	defer rows.Close()

	var blocks []models.ContentBlock
	for rows.Next() {
		var b models.ContentBlock
		if err := rows.Scan(
			&b.ID, &b.PostID, &b.BlockType, &b.BlockOrder, &b.Content, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan content block: %w", err)
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}
