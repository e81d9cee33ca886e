// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// rewrite.go swaps known origin asset URLs for their CDN equivalents.
// The table is fixed and matched by direct substitution — the origin's
// asset paths are stable and full URL parsing buys nothing here.
package scraper

import "strings"

// assetRewrites maps origin asset paths (relative to the origin base) to
// their CDN keys. These mirror the semantic filenames the sync pipeline
// publishes under css/.
var assetRewrites = []struct {
	originPath string
	cdnKey     string
}{
	{"/wp-includes/css/dist/block-library/style.min.css", "/css/wp-block-library.min.css"},
	{"/wp-content/themes/generatepress/assets/css/main.min.css", "/css/generatepress-main.min.css"},
	{"/wp-content/uploads/generatepress/style.min.css", "/css/generatepress-custom.min.css"},
	{"/wp-content/plugins/gp-premium/icons/font-awesome/css/font-awesome.min.css", "/css/font-awesome.min.css"},
}

// googleFontsURL is the one absolute (non-origin) asset that gets
// rewritten: the theme's web-font stylesheet query.
const googleFontsURL = "https://fonts.googleapis.com/css?family=Open+Sans%3A300%2C400%2C600%2C700&display=swap"

// rewriteAssetURLs replaces every known origin asset URL with its CDN
// equivalent. Unknown URLs are left alone.
func rewriteAssetURLs(html, originBase, cdnBase string) string {
	originBase = strings.TrimRight(originBase, "/")
	cdnBase = strings.TrimRight(cdnBase, "/")

	for _, rw := range assetRewrites {
		html = strings.ReplaceAll(html, originBase+rw.originPath, cdnBase+rw.cdnKey)
	}
	html = strings.ReplaceAll(html, googleFontsURL, cdnBase+"/css/google-fonts.css")
	return html
}
