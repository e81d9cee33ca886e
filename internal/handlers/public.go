// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"cruisepress/internal/blocks"
	"cruisepress/internal/cache"
	"cruisepress/internal/cssresolver"
	"cruisepress/internal/models"
	"cruisepress/internal/scraper"
	"cruisepress/internal/store"
)

// templatePaths maps each page shape to a representative origin page. The
// content-region substitution makes one scraped page reusable for every
// page of that shape.
var templatePaths = map[models.Layout]string{
	models.LayoutHomepage: "/",
	models.LayoutCategory: "/category/cruise-tips/",
	models.LayoutPost:     "/cruise-tips/",
}

// Public serves the assembled site pages: scraped template + rendered
// content blocks + resolved CSS, cached as whole pages in Valkey.
type Public struct {
	posts      *store.PostStore
	scraper    *scraper.Scraper
	resolver   *cssresolver.Resolver
	renderer   *blocks.Renderer
	pageCache  *cache.PageCache
	originBase string
}

// NewPublic creates the public page handler. pageCache may be nil.
func NewPublic(posts *store.PostStore, sc *scraper.Scraper, resolver *cssresolver.Resolver, renderer *blocks.Renderer, pageCache *cache.PageCache, originBase string) *Public {
	return &Public{
		posts:      posts,
		scraper:    sc,
		resolver:   resolver,
		renderer:   renderer,
		pageCache:  pageCache,
		originBase: strings.TrimRight(originBase, "/"),
	}
}

// Homepage handles GET /.
func (h *Public) Homepage(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, cache.HomepageKey(), models.LayoutHomepage, h.homepageContent)
}

// Category handles GET /category/{slug}.
func (h *Public) Category(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	h.servePage(w, r, cache.CategoryKey(slug), models.LayoutCategory, func(ctx context.Context) (string, error) {
		return h.categoryContent(ctx, slug)
	})
}

// Post handles GET /{slug}.
func (h *Public) Post(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.posts.FindBySlug(slug)
	if err != nil {
		slog.Error("post lookup failed", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post == nil {
		http.NotFound(w, r)
		return
	}

	h.servePage(w, r, cache.PostKey(slug), post.Layout, func(ctx context.Context) (string, error) {
		return h.postContent(ctx, post)
	})
}

// servePage is the shared assembly path: page cache, scraped template,
// content, CSS injection.
func (h *Public) servePage(w http.ResponseWriter, r *http.Request, cacheKey string, layout models.Layout, content func(context.Context) (string, error)) {
	ctx := r.Context()

	if h.pageCache != nil {
		if page, ok := h.pageCache.Get(ctx, cacheKey); ok {
			writeHTML(w, page)
			return
		}
	}

	body, err := content(ctx)
	if err != nil {
		slog.Error("page content assembly failed", "key", cacheKey, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	page := h.assemble(ctx, layout, body)

	if h.pageCache != nil {
		h.pageCache.Set(ctx, cacheKey, page)
	}
	writeHTML(w, page)
}

// assemble wraps rendered content in the scraped template for the layout
// and injects the resolved stylesheets. When no template is available at
// all, a bare page with the critical CSS keeps the content readable.
func (h *Public) assemble(ctx context.Context, layout models.Layout, content string) []byte {
	mapping := h.resolver.Resolve(ctx, layout)

	template, err := h.scraper.GetOrFetch(ctx, h.originBase+templatePaths[layout])
	if err != nil {
		slog.Warn("no template available, serving bare page", "layout", layout, "error", err)
		return h.barePage(layout, content, mapping)
	}

	page := scraper.Render(template, content)
	page = injectCSS(page, mapping)
	return []byte(page)
}

// barePage builds a minimal standalone document around the content.
func (h *Public) barePage(layout models.Layout, content string, mapping *cssresolver.Mapping) []byte {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\">")
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	b.WriteString(cssTags(mapping))
	fmt.Fprintf(&b, `<style>%s</style>`, cssresolver.CriticalCSS(layout))
	b.WriteString("</head><body>")
	b.WriteString(content)
	b.WriteString("</body></html>")
	return []byte(b.String())
}

// injectCSS inserts the resolved stylesheet tags before </head>. Pages
// without a head tag get the tags prepended instead.
func injectCSS(page string, mapping *cssresolver.Mapping) string {
	tags := cssTags(mapping)
	if idx := strings.Index(strings.ToLower(page), "</head>"); idx != -1 {
		return page[:idx] + tags + page[idx:]
	}
	return tags + page
}

// cssTags renders the mapping as link tags plus the inline fallback.
func cssTags(mapping *cssresolver.Mapping) string {
	var b strings.Builder
	for _, f := range mapping.Files {
		url := f.CDNURL
		if url == "" {
			url = f.SourceURL
		}
		fmt.Fprintf(&b, `<link rel="stylesheet" href="%s">`, html.EscapeString(url))
	}
	if mapping.FallbackContent != "" {
		fmt.Fprintf(&b, "<style>%s</style>", mapping.FallbackContent)
	}
	return b.String()
}

// homepageContent renders the latest published posts as a card grid.
func (h *Public) homepageContent(ctx context.Context) (string, error) {
	posts, err := h.posts.ListPublished(12)
	if err != nil {
		return "", fmt.Errorf("homepage posts: %w", err)
	}

	var b strings.Builder
	b.WriteString(`<div class="post-grid">`)
	for _, p := range posts {
		fmt.Fprintf(&b, `<article class="post-card"><a href="/%s"><h2>%s</h2></a></article>`,
			html.EscapeString(p.Slug), html.EscapeString(p.Title))
	}
	b.WriteString("</div>")
	return b.String(), nil
}

// categoryContent renders a listing of published posts. Categories are
// not modeled yet, so every category lists the full published set.
func (h *Public) categoryContent(ctx context.Context, slug string) (string, error) {
	posts, err := h.posts.ListPublished(50)
	if err != nil {
		return "", fmt.Errorf("category posts: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<h1 class="archive-title">%s</h1><div class="post-list">`, html.EscapeString(slug))
	for _, p := range posts {
		fmt.Fprintf(&b, `<article><a href="/%s"><h2>%s</h2></a></article>`,
			html.EscapeString(p.Slug), html.EscapeString(p.Title))
	}
	b.WriteString("</div>")
	return b.String(), nil
}

// postContent renders a single post: title plus its content blocks.
func (h *Public) postContent(ctx context.Context, post *models.Post) (string, error) {
	blockList, err := h.posts.BlocksByPostID(post.ID)
	if err != nil {
		return "", fmt.Errorf("post blocks: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<article><h1 class="entry-title">%s</h1>`, html.EscapeString(post.Title))
	b.WriteString(h.renderer.RenderBlocks(blockList))
	b.WriteString("</article>")
	return b.String(), nil
}

// writeHTML writes an assembled page with a short shared cache window.
func writeHTML(w http.ResponseWriter, page []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.Write(page)
}
