// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package blocks renders ordered content blocks to accessible HTML. Each
// block type has its own rendering rule; every user-supplied string is
// escaped before it reaches markup, and a broken block degrades to an
// HTML comment instead of blanking the article.
package blocks

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"cruisepress/internal/models"
)

// Renderer converts content blocks to HTML. MediaBaseURL is prefixed
// onto relative image URLs; LazyImages controls the default loading
// attribute on images (individual blocks can override).
type Renderer struct {
	MediaBaseURL string
	LazyImages   bool
}

// NewRenderer creates a Renderer with lazy image loading on.
func NewRenderer(mediaBaseURL string) *Renderer {
	return &Renderer{MediaBaseURL: mediaBaseURL, LazyImages: true}
}

// RenderBlocks renders a full block list, sorted by BlockOrder ascending
// regardless of input order, wrapped in an article-content landmark.
func (r *Renderer) RenderBlocks(blocks []models.ContentBlock) string {
	sorted := make([]models.ContentBlock, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BlockOrder < sorted[j].BlockOrder
	})

	var b strings.Builder
	b.WriteString(`<div class="entry-content" role="region" aria-label="Article content">`)
	for i := range sorted {
		b.WriteString(r.RenderBlock(&sorted[i]))
	}
	b.WriteString(`</div>`)
	return b.String()
}

// RenderBlock renders one block. Unknown types and rendering failures
// both produce HTML comments; this function never panics outward.
func (r *Renderer) RenderBlock(block *models.ContentBlock) (html string) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("block rendering panicked", "block_id", block.ID, "type", block.BlockType, "panic", rec)
			html = fmt.Sprintf("<!-- block %s failed to render -->", block.ID)
		}
	}()

	switch block.BlockType {
	case "heading":
		return r.renderHeading(block)
	case "paragraph":
		return r.renderParagraph(block)
	case "image":
		return r.renderImage(block)
	case "accent_tip":
		return r.renderAccentTip(block)
	case "quote":
		return r.renderQuote(block)
	case "cta":
		return r.renderCTA(block)
	case "divider":
		return `<hr role="separator">`
	case "list":
		return r.renderList(block)
	case "table":
		return r.renderTable(block)
	case "columns", "column", "section", "container", "figure":
		return r.renderContainer(block)
	case "cta-group":
		return r.renderCTAGroup(block)
	default:
		slog.Warn("unknown block type", "block_id", block.ID, "type", block.BlockType)
		return fmt.Sprintf("<!-- unknown block type: %s -->", escape(block.BlockType))
	}
}

func (r *Renderer) renderHeading(block *models.ContentBlock) string {
	var c HeadingContent
	decode(block.Content, &c)

	level := c.Level
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}

	anchor := c.AnchorID
	if anchor == "" {
		anchor = "heading-" + block.ID.String()
	}

	return fmt.Sprintf(`<h%d id="%s" aria-label="%s">%s</h%d>`,
		level, escape(anchor), summarize(c.Text), formatInline(c.Text), level)
}

func (r *Renderer) renderParagraph(block *models.ContentBlock) string {
	var c ParagraphContent
	decode(block.Content, &c)

	style := ""
	switch c.Alignment {
	case "center", "right", "justify":
		style = fmt.Sprintf(` style="text-align:%s"`, c.Alignment)
	}

	return fmt.Sprintf(`<p%s aria-label="%s">%s</p>`,
		style, summarize(c.Text), formatInline(c.Text))
}

func (r *Renderer) renderImage(block *models.ContentBlock) string {
	var c ImageContent
	decode(block.Content, &c)

	lazy := r.LazyImages
	if c.Lazy != nil {
		lazy = *c.Lazy
	}
	loading := "eager"
	if lazy {
		loading = "lazy"
	}

	src := escape(resolveURL(c.URL, r.MediaBaseURL))

	if c.Caption == "" {
		return fmt.Sprintf(`<figure><img src="%s" alt="%s" loading="%s"></figure>`,
			src, escape(c.Alt), loading)
	}

	capID := "caption-" + block.ID.String()
	return fmt.Sprintf(`<figure><img src="%s" alt="%s" loading="%s" aria-describedby="%s"><figcaption id="%s">%s</figcaption></figure>`,
		src, escape(c.Alt), loading, capID, capID, formatInline(c.Caption))
}

func (r *Renderer) renderAccentTip(block *models.ContentBlock) string {
	var c AccentTipContent
	decode(block.Content, &c)

	role := "note"
	icon := "💡"
	switch c.Subtype {
	case "warning":
		role = "alert"
		icon = "⚠️"
	case "success":
		role = "status"
		icon = "✅"
	case "info":
		icon = "ℹ️"
	}

	title := ""
	if c.Title != "" {
		title = fmt.Sprintf(`<strong class="accent-tip-title">%s</strong> `, formatInline(c.Title))
	}

	return fmt.Sprintf(`<aside class="accent-tip accent-tip-%s" role="%s"><span aria-hidden="true">%s</span> %s%s</aside>`,
		escape(nonEmpty(c.Subtype, "tip")), role, icon, title, formatInline(c.Text))
}

func (r *Renderer) renderQuote(block *models.ContentBlock) string {
	var c QuoteContent
	decode(block.Content, &c)

	if c.Attribution == "" {
		return fmt.Sprintf(`<blockquote><p>%s</p></blockquote>`, formatInline(c.Text))
	}
	return fmt.Sprintf(`<blockquote><p>%s</p><cite>%s</cite></blockquote>`,
		formatInline(c.Text), escape(c.Attribution))
}

func (r *Renderer) renderCTA(block *models.ContentBlock) string {
	var c CTAContent
	decode(block.Content, &c)
	return fmt.Sprintf(`<div class="cta-wrapper" style="text-align:center">%s</div>`, renderButton(c))
}

// renderButton is shared between cta and cta-group entries.
func renderButton(c CTAContent) string {
	attrs := ""
	label := escape(c.Text)
	if c.External {
		attrs = ` target="_blank" rel="noopener noreferrer"`
		label += " (opens in new window)"
	}
	return fmt.Sprintf(`<a class="cta-button" href="%s"%s aria-label="%s">%s</a>`,
		escape(c.URL), attrs, label, escape(c.Text))
}

func (r *Renderer) renderList(block *models.ContentBlock) string {
	var c ListContent
	decode(block.Content, &c)

	tag := "ul"
	if c.Ordered {
		tag = "ol"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<%s aria-label="List of %d items">`, tag, len(c.Items))
	for _, item := range c.Items {
		b.WriteString("<li>")
		b.WriteString(formatInline(item))
		b.WriteString("</li>")
	}
	fmt.Fprintf(&b, "</%s>", tag)
	return b.String()
}

func (r *Renderer) renderTable(block *models.ContentBlock) string {
	var c TableContent
	decode(block.Content, &c)

	var b strings.Builder
	b.WriteString(`<div class="table-wrapper" role="region" aria-label="Data table" tabindex="0"><table>`)
	if c.Caption != "" {
		fmt.Fprintf(&b, "<caption>%s</caption>", escape(c.Caption))
	}

	rows := c.Rows
	if c.HasHeader && len(rows) > 0 {
		b.WriteString("<thead><tr>")
		for _, cell := range rows[0] {
			fmt.Fprintf(&b, `<th scope="col">%s</th>`, formatInline(cell))
		}
		b.WriteString("</tr></thead>")
		rows = rows[1:]
	}

	b.WriteString("<tbody>")
	for _, row := range rows {
		b.WriteString("<tr>")
		for i, cell := range row {
			if i == 0 {
				fmt.Fprintf(&b, `<th scope="row">%s</th>`, formatInline(cell))
			} else {
				fmt.Fprintf(&b, "<td>%s</td>", formatInline(cell))
			}
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table></div>")
	return b.String()
}

func (r *Renderer) renderContainer(block *models.ContentBlock) string {
	var c ContainerContent
	decode(block.Content, &c)

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="block-%s">`, escape(block.BlockType))
	for _, child := range c.Children {
		b.WriteString(r.renderChild(block, child))
	}
	b.WriteString("</div>")
	return b.String()
}

// renderChild renders a nested block by promoting it to a full block that
// borrows the parent's identity fields.
func (r *Renderer) renderChild(parent *models.ContentBlock, child ChildBlock) string {
	nested := models.ContentBlock{
		ID:         parent.ID,
		PostID:     parent.PostID,
		BlockType:  child.BlockType,
		BlockOrder: parent.BlockOrder,
		Content:    child.Content,
	}
	return r.RenderBlock(&nested)
}

func (r *Renderer) renderCTAGroup(block *models.ContentBlock) string {
	var c CTAGroupContent
	decode(block.Content, &c)

	var b strings.Builder
	b.WriteString(`<div class="cta-group" style="text-align:center">`)
	for _, button := range c.Buttons {
		b.WriteString(renderButton(button))
	}
	b.WriteString("</div>")
	return b.String()
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
