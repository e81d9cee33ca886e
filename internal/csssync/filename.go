// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package csssync

import (
	"strings"
)

// knownFilenames maps recognizable origin URL fragments to the semantic
// CDN filenames we publish them under. Pattern order matters: the first
// match wins, and the more specific WordPress paths come before the
// catch-all font entries.
var knownFilenames = []struct {
	fragment string
	name     string
}{
	{"wp-includes/css/dist/block-library", "wp-block-library.min.css"},
	{"themes/generatepress/assets/css/main", "generatepress-main.min.css"},
	{"uploads/generatepress/style", "generatepress-custom.min.css"},
	{"font-awesome", "font-awesome.min.css"},
	{"fonts.googleapis.com", "google-fonts.css"},
}

// StorageFilename derives the deterministic, human-readable filename a
// stylesheet is stored under. Known origin paths get semantic names; any
// other URL falls back to its last path segment normalized to .min.css.
func StorageFilename(fileURL string) string {
	for _, k := range knownFilenames {
		if strings.Contains(fileURL, k.fragment) {
			return k.name
		}
	}

	// Drop query string and fragment before taking the last segment.
	name := fileURL
	if i := strings.IndexAny(name, "?#"); i != -1 {
		name = name[:i]
	}
	name = strings.TrimRight(name, "/")
	if i := strings.LastIndexByte(name, '/'); i != -1 {
		name = name[i+1:]
	}
	if name == "" {
		name = "stylesheet"
	}

	switch {
	case strings.HasSuffix(name, ".min.css"):
		return name
	case strings.HasSuffix(name, ".css"):
		return strings.TrimSuffix(name, ".css") + ".min.css"
	default:
		return name + ".min.css"
	}
}
