package csssync

import "testing"

func TestStorageFilename(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			"block library",
			"https://www.emmacruises.com/wp-includes/css/dist/block-library/style.min.css?ver=6.4",
			"wp-block-library.min.css",
		},
		{
			"theme main",
			"https://www.emmacruises.com/wp-content/themes/generatepress/assets/css/main.min.css",
			"generatepress-main.min.css",
		},
		{
			"theme custom",
			"https://www.emmacruises.com/wp-content/uploads/generatepress/style.min.css",
			"generatepress-custom.min.css",
		},
		{
			"icon font",
			"https://www.emmacruises.com/wp-content/plugins/gp-premium/icons/font-awesome/css/font-awesome.min.css",
			"font-awesome.min.css",
		},
		{
			"google fonts",
			"https://fonts.googleapis.com/css?family=Open+Sans",
			"google-fonts.css",
		},
		{
			"unknown already minified",
			"https://example.com/assets/theme.min.css",
			"theme.min.css",
		},
		{
			"unknown plain css normalized",
			"https://example.com/assets/theme.css",
			"theme.min.css",
		},
		{
			"unknown no extension",
			"https://example.com/styles",
			"styles.min.css",
		},
		{
			"query string stripped",
			"https://example.com/a/b/custom.css?v=12#top",
			"custom.min.css",
		},
		{
			"trailing slash",
			"https://example.com/css/extra/",
			"extra.min.css",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StorageFilename(tt.url); got != tt.want {
				t.Errorf("StorageFilename(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestStorageFilenameDeterministic(t *testing.T) {
	url := "https://example.com/some/path/style.css?cache=1"
	first := StorageFilename(url)
	for i := 0; i < 5; i++ {
		if got := StorageFilename(url); got != first {
			t.Fatalf("filename not deterministic: %q then %q", first, got)
		}
	}
}

func TestHash(t *testing.T) {
	a := Hash([]byte("body{margin:0}"))
	b := Hash([]byte("body{margin:0}"))
	c := Hash([]byte("body{margin:1px}"))

	if a != b {
		t.Error("identical content must hash identically")
	}
	if a == c {
		t.Error("different content must hash differently")
	}
	if len(a) != 64 {
		t.Errorf("expected 64-char hex digest, got %d chars", len(a))
	}

	// Known SHA-256 of the empty string.
	if got := Hash(nil); got != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Errorf("empty-content hash mismatch: %s", got)
	}
}
