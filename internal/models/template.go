// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"
)

// WordPressTemplate is a cached, sanitized copy of a scraped origin page.
// FullHTML contains the placeholder exactly once when content-region
// detection succeeded, and not at all when every heuristic missed —
// callers must check HasPlaceholder before splicing dynamic content.
type WordPressTemplate struct {
	SourceURL          string    `json:"source_url"`
	FullHTML           string    `json:"full_html"`
	ContentPlaceholder string    `json:"content_placeholder"`
	TemplateHash       string    `json:"template_hash"`
	LastScraped        time.Time `json:"last_scraped"`
}

// HasPlaceholder reports whether the template carries a usable content
// placeholder. False means the template serves unmodified (degraded mode).
func (t *WordPressTemplate) HasPlaceholder() bool {
	if t.ContentPlaceholder == "" {
		return false
	}
	return strings.Contains(t.FullHTML, t.ContentPlaceholder)
}
