package cssresolver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cruisepress/internal/models"
)

// fakeSettings implements SettingsSource.
type fakeSettings struct {
	urls    []string
	enabled bool
}

func (f *fakeSettings) CSSURLs() []string { return f.urls }
func (f *fakeSettings) SyncEnabled() bool { return f.enabled }

// fakeVersions implements VersionSource.
type fakeVersions struct {
	active   map[string]*models.CSSVersion
	lastSync *string
	findErr  error
}

func (f *fakeVersions) FindActiveByURL(fileURL string) (*models.CSSVersion, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.active[fileURL], nil
}

func (f *fakeVersions) LastDetectedAt() (*string, error) {
	return f.lastSync, nil
}

const (
	urlA = "https://www.emmacruises.com/a.css"
	urlB = "https://www.emmacruises.com/b.css"
)

func TestResolveFullCDNCoverage(t *testing.T) {
	settings := &fakeSettings{urls: []string{urlA, urlB}, enabled: true}
	versions := &fakeVersions{active: map[string]*models.CSSVersion{
		urlA: {FileURL: urlA, FileHash: "h1", CDNFilename: "a.min.css"},
		urlB: {FileURL: urlB, FileHash: "h2", CDNFilename: "b.min.css"},
	}}

	r := New(settings, versions, "https://cdn.example.com", nil)
	mapping := r.Resolve(context.Background(), models.LayoutPost)

	if len(mapping.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(mapping.Files))
	}
	if mapping.Files[0].CDNURL != "https://cdn.example.com/css/a.min.css" {
		t.Errorf("cdn url = %q", mapping.Files[0].CDNURL)
	}
	// Order must follow the configured URL order.
	if mapping.Files[0].SourceURL != urlA || mapping.Files[1].SourceURL != urlB {
		t.Error("file order does not follow settings order")
	}
	// Full CDN coverage means no inline fallback.
	if mapping.FallbackContent != "" {
		t.Error("unexpected fallback content with full CDN coverage")
	}
}

func TestResolvePartialCoverageCarriesFallback(t *testing.T) {
	settings := &fakeSettings{urls: []string{urlA, urlB}, enabled: true}
	versions := &fakeVersions{active: map[string]*models.CSSVersion{
		urlA: {FileURL: urlA, FileHash: "h1", CDNFilename: "a.min.css"},
	}}

	r := New(settings, versions, "https://cdn.example.com", nil)
	mapping := r.Resolve(context.Background(), models.LayoutHomepage)

	if mapping.FallbackContent == "" {
		t.Error("missing CDN copy must trigger inline fallback")
	}
	if mapping.Files[1].CDNURL != "" {
		t.Error("unsynced URL must not carry a CDN URL")
	}
	// The unsynced file still exposes its source URL.
	if mapping.Files[1].SourceURL != urlB {
		t.Errorf("source url = %q", mapping.Files[1].SourceURL)
	}
}

func TestResolveDisabledServesEmergencyFallback(t *testing.T) {
	for _, layout := range []models.Layout{models.LayoutHomepage, models.LayoutCategory, models.LayoutPost} {
		t.Run(string(layout), func(t *testing.T) {
			r := New(&fakeSettings{enabled: false}, &fakeVersions{}, "https://cdn.example.com", nil)
			mapping := r.Resolve(context.Background(), layout)

			if len(mapping.Files) == 0 {
				t.Fatal("emergency mapping must carry at least one stylesheet")
			}
			if mapping.Files[0].SourceURL == "" {
				t.Error("emergency file has no source URL")
			}
			if mapping.FallbackContent == "" {
				t.Error("emergency mapping must carry inline critical CSS")
			}
		})
	}
}

func TestResolveEmptyURLListServesEmergencyFallback(t *testing.T) {
	r := New(&fakeSettings{enabled: true}, &fakeVersions{}, "https://cdn.example.com", nil)
	mapping := r.Resolve(context.Background(), models.LayoutPost)

	if len(mapping.Files) == 0 || mapping.FallbackContent == "" {
		t.Error("empty URL list must degrade to the emergency mapping")
	}
}

func TestResolveLookupErrorStillProducesUsableMapping(t *testing.T) {
	settings := &fakeSettings{urls: []string{urlA}, enabled: true}
	versions := &fakeVersions{findErr: errors.New("db down")}

	r := New(settings, versions, "https://cdn.example.com", nil)
	mapping := r.Resolve(context.Background(), models.LayoutPost)

	// The page must never go unstyled: source URL plus inline fallback.
	if mapping.Files[0].SourceURL != urlA {
		t.Error("source URL must survive a lookup failure")
	}
	if mapping.FallbackContent == "" {
		t.Error("lookup failure must trigger inline fallback")
	}
}

func TestCSSForLayoutPrefersCDN(t *testing.T) {
	settings := &fakeSettings{urls: []string{urlA, urlB}, enabled: true}
	versions := &fakeVersions{active: map[string]*models.CSSVersion{
		urlA: {FileURL: urlA, CDNFilename: "a.min.css"},
	}}

	r := New(settings, versions, "https://cdn.example.com", nil)
	urls := r.CSSForLayout(context.Background(), models.LayoutPost)

	if len(urls) != 2 {
		t.Fatalf("expected 2 urls, got %d", len(urls))
	}
	if !strings.HasPrefix(urls[0], "https://cdn.example.com/") {
		t.Errorf("synced file should resolve to CDN, got %q", urls[0])
	}
	if urls[1] != urlB {
		t.Errorf("unsynced file should fall back to source, got %q", urls[1])
	}
}

func TestCacheAndInvalidation(t *testing.T) {
	settings := &fakeSettings{urls: []string{urlA}, enabled: true}
	versions := &fakeVersions{active: map[string]*models.CSSVersion{}}

	r := New(settings, versions, "https://cdn.example.com", nil)

	first := r.Resolve(context.Background(), models.LayoutPost)
	if first.Files[0].CDNURL != "" {
		t.Fatal("precondition: no CDN copy yet")
	}

	// A sync lands a version, but the cached mapping must not change
	// until invalidated.
	versions.active[urlA] = &models.CSSVersion{FileURL: urlA, CDNFilename: "a.min.css"}
	cached := r.Resolve(context.Background(), models.LayoutPost)
	if cached.Files[0].CDNURL != "" {
		t.Error("cached mapping should not pick up new versions")
	}

	r.Invalidate(models.LayoutPost)
	fresh := r.Resolve(context.Background(), models.LayoutPost)
	if fresh.Files[0].CDNURL == "" {
		t.Error("invalidated mapping should rebuild with the new version")
	}

	// InvalidateAll clears every layout.
	r.Resolve(context.Background(), models.LayoutHomepage)
	r.InvalidateAll()
	r.mu.RLock()
	size := len(r.cache)
	r.mu.RUnlock()
	if size != 0 {
		t.Errorf("cache should be empty after InvalidateAll, has %d entries", size)
	}
}

func TestCheckHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/css/") {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	url := srv.URL + "/origin/style.css"
	settings := &fakeSettings{urls: []string{url}, enabled: true}
	ts := "2026-08-30 12:00:00+00"
	versions := &fakeVersions{
		active: map[string]*models.CSSVersion{
			url: {FileURL: url, CDNFilename: "style.min.css"},
		},
		lastSync: &ts,
	}

	r := New(settings, versions, srv.URL, srv.Client())
	health := r.CheckHealth(context.Background(), models.LayoutPost)

	if !health.CDNAvailable {
		t.Error("CDN path should be reachable")
	}
	if health.SourceAccessible {
		t.Error("origin path should be unreachable in this scenario")
	}
	if !health.Healthy {
		t.Error("one reachable path should count as healthy")
	}
	if health.LastSync == nil || *health.LastSync != ts {
		t.Error("last sync timestamp not propagated")
	}
}

func TestCriticalCSSPerLayout(t *testing.T) {
	home := CriticalCSS(models.LayoutHomepage)
	category := CriticalCSS(models.LayoutCategory)
	post := CriticalCSS(models.LayoutPost)

	if home == category || category == post || home == post {
		t.Error("each layout should carry its own critical rules")
	}
	for _, css := range []string{home, category, post} {
		if !strings.Contains(css, "body{") {
			t.Error("critical CSS must include the shared base rules")
		}
	}
	// Unknown layouts fall back to the post rules.
	if CriticalCSS(models.Layout("weird")) != post {
		t.Error("unknown layout should use the post critical CSS")
	}
}
