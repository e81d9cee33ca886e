package blocks

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"

	"cruisepress/internal/models"
)

func block(t *testing.T, blockType string, order int, content any) models.ContentBlock {
	t.Helper()
	raw, err := json.Marshal(content)
	if err != nil {
		t.Fatalf("marshal content: %v", err)
	}
	return models.ContentBlock{
		ID:         uuid.New(),
		BlockType:  blockType,
		BlockOrder: order,
		Content:    raw,
	}
}

func TestRenderBlocksOrdering(t *testing.T) {
	r := NewRenderer("https://cdn.example.com")

	// Deliberately shuffled input order.
	blocks := []models.ContentBlock{
		block(t, "paragraph", 30, ParagraphContent{Text: "third"}),
		block(t, "paragraph", 10, ParagraphContent{Text: "first"}),
		block(t, "paragraph", 20, ParagraphContent{Text: "second"}),
	}

	got := r.RenderBlocks(blocks)

	first := strings.Index(got, "first")
	second := strings.Index(got, "second")
	third := strings.Index(got, "third")
	if first == -1 || second == -1 || third == -1 {
		t.Fatalf("missing content in output: %s", got)
	}
	if !(first < second && second < third) {
		t.Errorf("output order does not follow block_order: %s", got)
	}

	// Input slice must not be mutated.
	if blocks[0].BlockOrder != 30 {
		t.Error("input slice was reordered")
	}

	if !strings.Contains(got, `role="region"`) {
		t.Error("output should be wrapped in a landmark container")
	}
}

func TestRenderHeading(t *testing.T) {
	r := NewRenderer("")

	tests := []struct {
		name    string
		content HeadingContent
		want    []string
	}{
		{
			"normal level",
			HeadingContent{Text: "Packing Tips", Level: 2, AnchorID: "packing"},
			[]string{"<h2", `id="packing"`, "Packing Tips", "</h2>"},
		},
		{
			"level clamped high",
			HeadingContent{Text: "Deep", Level: 9},
			[]string{"<h6", "</h6>"},
		},
		{
			"level clamped low",
			HeadingContent{Text: "Zero", Level: 0},
			[]string{"<h1", "</h1>"},
		},
		{
			"negative level clamped low",
			HeadingContent{Text: "Below", Level: -3},
			[]string{"<h1", "</h1>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := block(t, "heading", 0, tt.content)
			got := r.RenderBlock(&b)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("missing %q in %s", want, got)
				}
			}
		})
	}

	// Derived anchor when none is given.
	b := block(t, "heading", 0, HeadingContent{Text: "x", Level: 3})
	got := r.RenderBlock(&b)
	if !strings.Contains(got, `id="heading-`+b.ID.String()+`"`) {
		t.Errorf("anchor should derive from block id: %s", got)
	}
}

func TestRenderParagraphEscapesAndFormats(t *testing.T) {
	r := NewRenderer("")
	b := block(t, "paragraph", 0, ParagraphContent{
		Text: `Use **bold** and *italic* and ` + "`code`" + ` but <script>alert(1)</script>`,
	})

	got := r.RenderBlock(&b)

	if strings.Contains(got, "<script>") {
		t.Error("raw HTML must be escaped")
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Error("escaped form missing")
	}
	for _, tag := range []string{"<strong>bold</strong>", "<em>italic</em>", "<code>code</code>"} {
		if !strings.Contains(got, tag) {
			t.Errorf("missing inline formatting %q in %s", tag, got)
		}
	}
}

func TestRenderParagraphAlignment(t *testing.T) {
	r := NewRenderer("")

	b := block(t, "paragraph", 0, ParagraphContent{Text: "centered", Alignment: "center"})
	if got := r.RenderBlock(&b); !strings.Contains(got, "text-align:center") {
		t.Errorf("alignment style missing: %s", got)
	}

	// Unknown alignment values are dropped, not emitted.
	b = block(t, "paragraph", 0, ParagraphContent{Text: "x", Alignment: "sideways"})
	if got := r.RenderBlock(&b); strings.Contains(got, "sideways") {
		t.Errorf("bogus alignment leaked into markup: %s", got)
	}
}

func TestRenderImage(t *testing.T) {
	r := NewRenderer("https://cdn.example.com")

	b := block(t, "image", 0, ImageContent{
		URL:     "media/2026/08/ship.jpg",
		Alt:     `A "big" ship`,
		Caption: "At sea",
	})
	got := r.RenderBlock(&b)

	if !strings.Contains(got, `src="https://cdn.example.com/media/2026/08/ship.jpg"`) {
		t.Errorf("relative URL should be prefixed: %s", got)
	}
	if !strings.Contains(got, "&quot;big&quot;") {
		t.Error("alt text quotes must be escaped")
	}
	if !strings.Contains(got, `loading="lazy"`) {
		t.Error("lazy loading should be the default")
	}
	if !strings.Contains(got, "<figcaption") || !strings.Contains(got, "aria-describedby") {
		t.Error("caption should be linked via aria-describedby")
	}

	// Absolute URLs pass through untouched.
	b = block(t, "image", 0, ImageContent{URL: "https://elsewhere.example/pic.png", Alt: "x"})
	if got := r.RenderBlock(&b); !strings.Contains(got, `src="https://elsewhere.example/pic.png"`) {
		t.Errorf("absolute URL modified: %s", got)
	}

	// Per-block lazy override.
	eager := false
	b = block(t, "image", 0, ImageContent{URL: "x.jpg", Alt: "x", Lazy: &eager})
	if got := r.RenderBlock(&b); !strings.Contains(got, `loading="eager"`) {
		t.Errorf("lazy override ignored: %s", got)
	}
}

func TestRenderAccentTipRoles(t *testing.T) {
	r := NewRenderer("")

	tests := []struct {
		subtype string
		role    string
	}{
		{"tip", "note"},
		{"info", "note"},
		{"warning", "alert"},
		{"success", "status"},
		{"", "note"},
	}

	for _, tt := range tests {
		b := block(t, "accent_tip", 0, AccentTipContent{Text: "hello", Subtype: tt.subtype})
		got := r.RenderBlock(&b)
		if !strings.Contains(got, `role="`+tt.role+`"`) {
			t.Errorf("subtype %q: expected role %q in %s", tt.subtype, tt.role, got)
		}
		if !strings.Contains(got, `aria-hidden="true"`) {
			t.Error("icon must be aria-hidden")
		}
	}
}

func TestRenderQuote(t *testing.T) {
	r := NewRenderer("")

	b := block(t, "quote", 0, QuoteContent{Text: "the sea calls", Attribution: "Emma"})
	got := r.RenderBlock(&b)
	if !strings.Contains(got, "<blockquote>") || !strings.Contains(got, "<cite>Emma</cite>") {
		t.Errorf("quote markup wrong: %s", got)
	}

	b = block(t, "quote", 0, QuoteContent{Text: "no author"})
	if got := r.RenderBlock(&b); strings.Contains(got, "<cite>") {
		t.Errorf("empty attribution should not emit cite: %s", got)
	}
}

func TestRenderCTAExternal(t *testing.T) {
	r := NewRenderer("")

	b := block(t, "cta", 0, CTAContent{Text: "Book now", URL: "https://partner.example", External: true})
	got := r.RenderBlock(&b)
	for _, want := range []string{`target="_blank"`, `rel="noopener noreferrer"`, "(opens in new window)"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %s", want, got)
		}
	}

	b = block(t, "cta", 0, CTAContent{Text: "Read more", URL: "/post-slug"})
	got = r.RenderBlock(&b)
	if strings.Contains(got, "_blank") || strings.Contains(got, "opens in new window") {
		t.Errorf("internal link got external treatment: %s", got)
	}
}

func TestRenderList(t *testing.T) {
	r := NewRenderer("")

	b := block(t, "list", 0, ListContent{Items: []string{"one", "**two**", "three"}})
	got := r.RenderBlock(&b)
	if !strings.Contains(got, "<ul") || strings.Contains(got, "<ol") {
		t.Errorf("unordered list expected: %s", got)
	}
	if !strings.Contains(got, `aria-label="List of 3 items"`) {
		t.Errorf("count-bearing label missing: %s", got)
	}
	if !strings.Contains(got, "<li><strong>two</strong></li>") {
		t.Errorf("inline formatting missing in items: %s", got)
	}

	b = block(t, "list", 0, ListContent{Items: []string{"a"}, Ordered: true})
	if got := r.RenderBlock(&b); !strings.Contains(got, "<ol") {
		t.Errorf("ordered list expected: %s", got)
	}
}

func TestRenderTable(t *testing.T) {
	r := NewRenderer("")

	b := block(t, "table", 0, TableContent{
		HasHeader: true,
		Rows: [][]string{
			{"Ship", "Line"},
			{"Iona", "P&O"},
			{"Wonder", "Royal"},
		},
	})
	got := r.RenderBlock(&b)

	for _, want := range []string{
		`role="region"`, `tabindex="0"`,
		`<thead><tr><th scope="col">Ship</th>`,
		`<th scope="row">Iona</th>`,
		"<td>P&amp;O</td>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %s", want, got)
		}
	}

	// Without a header flag, all rows land in tbody.
	b = block(t, "table", 0, TableContent{Rows: [][]string{{"a", "b"}}})
	if got := r.RenderBlock(&b); strings.Contains(got, "<thead>") {
		t.Errorf("headerless table grew a thead: %s", got)
	}
}

func TestRenderContainerNesting(t *testing.T) {
	r := NewRenderer("")

	inner, _ := json.Marshal(ParagraphContent{Text: "nested text"})
	b := block(t, "columns", 0, ContainerContent{
		Children: []ChildBlock{
			{BlockType: "paragraph", Content: inner},
			{BlockType: "divider"},
		},
	})
	got := r.RenderBlock(&b)

	if !strings.Contains(got, `class="block-columns"`) {
		t.Errorf("wrapper class missing: %s", got)
	}
	if !strings.Contains(got, "nested text") {
		t.Errorf("nested block not rendered: %s", got)
	}
	if !strings.Contains(got, `<hr role="separator">`) {
		t.Errorf("nested divider not rendered: %s", got)
	}
}

func TestRenderCTAGroup(t *testing.T) {
	r := NewRenderer("")

	b := block(t, "cta-group", 0, CTAGroupContent{Buttons: []CTAContent{
		{Text: "One", URL: "/one"},
		{Text: "Two", URL: "https://x.example", External: true},
	}})
	got := r.RenderBlock(&b)

	if strings.Count(got, "cta-button") != 2 {
		t.Errorf("expected 2 buttons: %s", got)
	}
	if !strings.Contains(got, `target="_blank"`) {
		t.Error("external entry should get the external treatment")
	}
}

func TestRenderUnknownType(t *testing.T) {
	r := NewRenderer("")

	unknown := block(t, "video-embed-v2", 5, map[string]string{"src": "x"})
	after := block(t, "paragraph", 10, ParagraphContent{Text: "still here"})

	got := r.RenderBlocks([]models.ContentBlock{unknown, after})

	if !strings.Contains(got, "<!-- unknown block type: video-embed-v2 -->") {
		t.Errorf("unknown type should render as a comment: %s", got)
	}
	if !strings.Contains(got, "still here") {
		t.Error("blocks after an unknown type must still render")
	}
}

func TestRenderMalformedPayload(t *testing.T) {
	r := NewRenderer("")

	b := models.ContentBlock{
		ID:        uuid.New(),
		BlockType: "heading",
		Content:   json.RawMessage(`{"level": "not a number"`),
	}
	got := r.RenderBlock(&b)

	// Malformed JSON degrades to zero-value rendering, never a panic.
	if !strings.Contains(got, "<h1") {
		t.Errorf("malformed payload should render with defaults: %s", got)
	}
}

func TestRenderDivider(t *testing.T) {
	r := NewRenderer("")
	b := block(t, "divider", 0, struct{}{})
	if got := r.RenderBlock(&b); got != `<hr role="separator">` {
		t.Errorf("divider = %s", got)
	}
}
