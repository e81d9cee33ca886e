// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Setting keys read by the CSS subsystem. Values are stored as strings;
// consumers must parse defensively (bad JSON means "no URLs", a missing
// flag means "disabled") and never fail a request over a malformed value.
const (
	SettingCSSURLs     = "site_css_urls"    // JSON-encoded []string, origin load order
	SettingSyncEnabled = "css_sync_enabled" // "true" / "false"
)

// SiteSettings is a convenience map of all settings rows.
type SiteSettings map[string]string
