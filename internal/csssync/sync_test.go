package csssync

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cruisepress/internal/models"
	"cruisepress/internal/storage"
)

// fakeVersions is an in-memory VersionStore.
type fakeVersions struct {
	active    map[string]*models.CSSVersion
	activated []*models.CSSVersion
	findErr   error
}

func newFakeVersions() *fakeVersions {
	return &fakeVersions{active: make(map[string]*models.CSSVersion)}
}

func (f *fakeVersions) FindActiveByURL(fileURL string) (*models.CSSVersion, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.active[fileURL], nil
}

func (f *fakeVersions) Activate(v *models.CSSVersion) (*models.CSSVersion, error) {
	stored := *v
	stored.Active = true
	f.active[v.FileURL] = &stored
	f.activated = append(f.activated, &stored)
	return &stored, nil
}

// fakeObjects is an in-memory ObjectStore.
type fakeObjects struct {
	objects map[string][]byte
	puts    []string
	putErr  error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: make(map[string][]byte)}
}

func (f *fakeObjects) Put(ctx context.Context, key string, body []byte, opts storage.PutOptions) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[key] = body
	f.puts = append(f.puts, key)
	return nil
}

func (f *fakeObjects) Head(ctx context.Context, key string) (*storage.ObjectInfo, error) {
	body, ok := f.objects[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return &storage.ObjectInfo{Key: key, Size: int64(len(body))}, nil
}

func TestSyncMixedOutcomes(t *testing.T) {
	const (
		changedCSS   = "body{margin:0}"
		unchangedCSS = ".site-header{color:#fff}"
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/changed.css":
			w.Write([]byte(changedCSS))
		case "/unchanged.css":
			w.Write([]byte(unchangedCSS))
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	versions := newFakeVersions()
	objects := newFakeObjects()

	// Pre-seed the unchanged URL: active version with matching hash and a
	// present stored object.
	unchangedURL := srv.URL + "/unchanged.css"
	unchangedName := StorageFilename(unchangedURL)
	versions.active[unchangedURL] = &models.CSSVersion{
		FileURL:     unchangedURL,
		FileHash:    Hash([]byte(unchangedCSS)),
		CDNFilename: unchangedName,
		Active:      true,
	}
	objects.objects["css/"+unchangedName] = []byte(unchangedCSS)

	s := New(versions, objects, srv.Client(), "test-agent/1.0")
	report := s.Sync(context.Background(), []string{
		srv.URL + "/changed.css",
		srv.URL + "/broken.css",
		unchangedURL,
	})

	if report.Updated != 1 || report.Errors != 1 || report.Unchanged != 1 {
		t.Fatalf("report = %d updated, %d errors, %d unchanged; want 1/1/1",
			report.Updated, report.Errors, report.Unchanged)
	}
	if len(report.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(report.Results))
	}

	// The changed URL must be stored and recorded.
	changedName := StorageFilename(srv.URL + "/changed.css")
	if _, ok := objects.objects["css/"+changedName]; !ok {
		t.Errorf("changed stylesheet not stored under css/%s", changedName)
	}
	if len(versions.activated) != 1 {
		t.Errorf("expected exactly 1 activation, got %d", len(versions.activated))
	}

	// The failed URL must not have produced a version row.
	if _, ok := versions.active[srv.URL+"/broken.css"]; ok {
		t.Error("failed fetch must not record a version")
	}
}

func TestSyncContinuesPastFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad.css" {
			http.Error(w, "nope", http.StatusNotFound)
			return
		}
		w.Write([]byte("p{padding:0}"))
	}))
	defer srv.Close()

	s := New(newFakeVersions(), newFakeObjects(), srv.Client(), "test-agent/1.0")
	report := s.Sync(context.Background(), []string{
		srv.URL + "/bad.css",
		srv.URL + "/good.css",
	})

	// The failure of the first URL must not stop the second.
	if report.Updated != 1 {
		t.Errorf("expected the second URL to sync despite the first failing, got %d updated", report.Updated)
	}
	if report.Results[0].Outcome != OutcomeError {
		t.Errorf("first result = %s, want error", report.Results[0].Outcome)
	}
}

func TestSyncSendsUserAgent(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte("a{}"))
	}))
	defer srv.Close()

	s := New(newFakeVersions(), newFakeObjects(), srv.Client(), "CruisePress-Sync/1.0")
	s.Sync(context.Background(), []string{srv.URL + "/x.css"})

	if gotAgent != "CruisePress-Sync/1.0" {
		t.Errorf("user agent = %q", gotAgent)
	}
}

func TestHasChanged(t *testing.T) {
	url := "https://example.com/style.css"
	content := []byte("h1{font-size:2rem}")
	hash := Hash(content)
	name := StorageFilename(url)

	t.Run("no active version", func(t *testing.T) {
		s := New(newFakeVersions(), newFakeObjects(), nil, "ua")
		changed, err := s.HasChanged(context.Background(), url, hash)
		if err != nil || !changed {
			t.Errorf("got (%v, %v), want (true, nil)", changed, err)
		}
	})

	t.Run("hash differs", func(t *testing.T) {
		versions := newFakeVersions()
		versions.active[url] = &models.CSSVersion{FileURL: url, FileHash: "old", CDNFilename: name}
		s := New(versions, newFakeObjects(), nil, "ua")
		changed, err := s.HasChanged(context.Background(), url, hash)
		if err != nil || !changed {
			t.Errorf("got (%v, %v), want (true, nil)", changed, err)
		}
	})

	t.Run("hash matches and object present", func(t *testing.T) {
		versions := newFakeVersions()
		versions.active[url] = &models.CSSVersion{FileURL: url, FileHash: hash, CDNFilename: name}
		objects := newFakeObjects()
		objects.objects["css/"+name] = content
		s := New(versions, objects, nil, "ua")
		changed, err := s.HasChanged(context.Background(), url, hash)
		if err != nil || changed {
			t.Errorf("got (%v, %v), want (false, nil)", changed, err)
		}
	})

	t.Run("hash matches but object missing forces re-sync", func(t *testing.T) {
		versions := newFakeVersions()
		versions.active[url] = &models.CSSVersion{FileURL: url, FileHash: hash, CDNFilename: name}
		s := New(versions, newFakeObjects(), nil, "ua")
		changed, err := s.HasChanged(context.Background(), url, hash)
		if err != nil || !changed {
			t.Errorf("got (%v, %v), want (true, nil)", changed, err)
		}
	})

	t.Run("store error propagates", func(t *testing.T) {
		versions := newFakeVersions()
		versions.findErr = errors.New("db down")
		s := New(versions, newFakeObjects(), nil, "ua")
		if _, err := s.HasChanged(context.Background(), url, hash); err == nil {
			t.Error("expected error from version store")
		}
	})
}

func TestUploadOne(t *testing.T) {
	versions := newFakeVersions()
	objects := newFakeObjects()
	s := New(versions, objects, nil, "ua")

	url := "https://example.com/manual.css"
	content := []byte(".manual{display:block}")

	result, err := s.UploadOne(context.Background(), url, content)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if result.Outcome != OutcomeUpdated {
		t.Errorf("outcome = %s, want updated", result.Outcome)
	}

	// Second upload of identical content is a no-op.
	result, err = s.UploadOne(context.Background(), url, content)
	if err != nil {
		t.Fatalf("second upload failed: %v", err)
	}
	if result.Outcome != OutcomeUnchanged {
		t.Errorf("second outcome = %s, want unchanged", result.Outcome)
	}
	if len(versions.activated) != 1 {
		t.Errorf("expected 1 activation total, got %d", len(versions.activated))
	}
}

func TestStoreAndRecordMetadata(t *testing.T) {
	versions := newFakeVersions()
	objects := newFakeObjects()
	s := New(versions, objects, nil, "ua")

	url := "https://example.com/meta.css"
	long := make([]byte, sampleLength*2)
	for i := range long {
		long[i] = 'x'
	}

	if _, err := s.storeAndRecord(context.Background(), url, long, Hash(long)); err != nil {
		t.Fatalf("storeAndRecord: %v", err)
	}

	v := versions.active[url]
	if v == nil {
		t.Fatal("no version recorded")
	}
	if len(v.ContentSample) != sampleLength {
		t.Errorf("content sample length = %d, want %d", len(v.ContentSample), sampleLength)
	}
}
