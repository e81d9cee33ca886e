// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"net/http"
)

// CronHeader marks requests issued by the task scheduler. Its presence is
// how sync endpoints tell scheduled runs apart from manual admin calls.
const CronHeader = "X-Scheduled-Task"

// RequireCronOrAdmin gates endpoints that should only fire from the
// scheduler or an explicit manual trigger. Manual triggers must carry the
// trigger=manual query parameter so accidental GET crawls cannot start a
// sync run.
func RequireCronOrAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheduled := r.Header.Get(CronHeader) != ""
		manual := r.URL.Query().Get("trigger") == "manual"

		if !scheduled && !manual {
			slog.Warn("sync endpoint hit without cron header or manual trigger",
				"path", r.URL.Path, "remote", r.RemoteAddr)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
