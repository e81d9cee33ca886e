package models

import "testing"

func TestParseLayout(t *testing.T) {
	tests := []struct {
		in   string
		want Layout
	}{
		{"homepage", LayoutHomepage},
		{"category", LayoutCategory},
		{"post", LayoutPost},
		{"", LayoutPost},
		{"archive", LayoutPost},
	}

	for _, tt := range tests {
		if got := ParseLayout(tt.in); got != tt.want {
			t.Errorf("ParseLayout(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTemplateHasPlaceholder(t *testing.T) {
	tests := []struct {
		name     string
		template WordPressTemplate
		want     bool
	}{
		{
			"placeholder present",
			WordPressTemplate{FullHTML: "<div><!--X--></div>", ContentPlaceholder: "<!--X-->"},
			true,
		},
		{
			"placeholder column empty",
			WordPressTemplate{FullHTML: "<div>static</div>"},
			false,
		},
		{
			"placeholder recorded but missing from html",
			WordPressTemplate{FullHTML: "<div>static</div>", ContentPlaceholder: "<!--X-->"},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.template.HasPlaceholder(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMediaHumanSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{512, "512 B"},
		{2048, "2 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}

	for _, tt := range tests {
		m := Media{SizeBytes: tt.bytes}
		if got := m.HumanSize(); got != tt.want {
			t.Errorf("HumanSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestMediaIsImage(t *testing.T) {
	if !(&Media{ContentType: "image/png"}).IsImage() {
		t.Error("png should be an image")
	}
	if (&Media{ContentType: "application/pdf"}).IsImage() {
		t.Error("pdf is not an image")
	}
}
