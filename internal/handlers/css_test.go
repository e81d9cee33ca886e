package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestValidCSSFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     bool
	}{
		{"plain css", "generatepress-main.min.css", true},
		{"min css", "wp-block-library.min.css", true},
		{"wrong extension", "style.js", false},
		{"no extension", "style", false},
		{"empty", "", false},
		{"path traversal", "../secrets.css", false},
		{"embedded traversal", "a..b.css", false},
		{"nested path", "css/style.css", false},
		{"backslash path", `..\style.css`, false},
		{"css suffix only", ".css", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validCSSFilename(tt.filename); got != tt.want {
				t.Errorf("validCSSFilename(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestCSSServeRejectsBadFilenames(t *testing.T) {
	h := NewCSS(nil)
	r := chi.NewRouter()
	r.Get("/css/{filename}", h.Serve)

	for _, path := range []string{
		"/css/style.js",
		"/css/..%2Fsecrets.css",
		"/css/noextension",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusNotFound {
			t.Errorf("%s: got status %d, want 404", path, rr.Code)
		}
	}
}

func TestCSSServeWithoutStorage(t *testing.T) {
	h := NewCSS(nil)
	r := chi.NewRouter()
	r.Get("/css/{filename}", h.Serve)

	req := httptest.NewRequest(http.MethodGet, "/css/valid.min.css", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404 when storage is unconfigured", rr.Code)
	}
}

func TestExtensionFromType(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"image/jpeg", ".jpg"},
		{"image/png", ".png"},
		{"image/gif", ".gif"},
		{"image/webp", ".webp"},
		{"application/zip", ""},
	}

	for _, tt := range tests {
		if got := extensionFromType(tt.contentType); got != tt.want {
			t.Errorf("extensionFromType(%q) = %q, want %q", tt.contentType, got, tt.want)
		}
	}
}
