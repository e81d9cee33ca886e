// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Post is one article. Bodies are stored as ordered ContentBlocks, not as
// a single HTML blob.
type Post struct {
	ID          uuid.UUID  `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Layout      Layout     `json:"layout"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ContentBlock is one unit of article content. BlockType discriminates the
// shape of Content; BlockOrder defines render sequence. The renderer sorts
// by BlockOrder before emission, so storage order is irrelevant.
type ContentBlock struct {
	ID         uuid.UUID       `json:"id"`
	PostID     uuid.UUID       `json:"post_id"`
	BlockType  string          `json:"block_type"`
	BlockOrder int             `json:"block_order"`
	Content    json.RawMessage `json:"content"`
	CreatedAt  time.Time       `json:"created_at"`
}
