// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// CSSVersion is one tracked stylesheet state. History is append-only:
// superseding a version deactivates the old row instead of deleting it,
// so at most one row per FileURL has Active set.
type CSSVersion struct {
	ID            int64     `json:"id"`
	FileURL       string    `json:"file_url"`
	FileHash      string    `json:"file_hash"`
	CDNFilename   string    `json:"cdn_filename"`
	ContentSample string    `json:"content_sample"`
	DetectedAt    time.Time `json:"detected_at"`
	Active        bool      `json:"active"`
}
