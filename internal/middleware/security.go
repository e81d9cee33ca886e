// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// SecureHeaders sets baseline protection headers on every response,
// assembled pages and admin API alike. Stylesheet serving under /css
// layers its own caching and CORS headers on top of these.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		// Pages and synced stylesheets must be interpreted with their
		// declared Content-Type, never re-sniffed.
		h.Set("X-Content-Type-Options", "nosniff")

		// The blog has no embedding use case outside its own origin.
		h.Set("X-Frame-Options", "SAMEORIGIN")

		// The legacy XSS filter mangles pages; script filtering already
		// happened at scrape time.
		h.Set("X-XSS-Protection", "0")

		// Outbound links in content blocks should not leak full URLs.
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Opt out of FLoC cohort calculations.
		h.Set("Permissions-Policy", "interest-cohort=()")

		next.ServeHTTP(w, r)
	})
}
