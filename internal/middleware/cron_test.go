package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireCronOrAdmin(t *testing.T) {
	handler := RequireCronOrAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		cronHeader string
		query      string
		want       int
	}{
		{"cron header present", "scheduled", "", http.StatusOK},
		{"manual trigger", "", "?trigger=manual", http.StatusOK},
		{"both", "scheduled", "?trigger=manual", http.StatusOK},
		{"neither", "", "", http.StatusForbidden},
		{"wrong trigger value", "", "?trigger=yes", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin/css-sync"+tt.query, nil)
			if tt.cronHeader != "" {
				req.Header.Set(CronHeader, tt.cronHeader)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			if rr.Code != tt.want {
				t.Errorf("got status %d, want %d", rr.Code, tt.want)
			}
		})
	}
}
