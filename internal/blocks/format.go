// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import (
	"regexp"
	"strings"
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// escape is the single escaping routine every user-supplied string passes
// through before insertion into any attribute or text node.
func escape(s string) string {
	return escaper.Replace(s)
}

var (
	boldRe   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe = regexp.MustCompile(`\*([^*]+)\*`)
	codeRe   = regexp.MustCompile("`([^`]+)`")
	tagRe    = regexp.MustCompile(`<[^>]*>`)
)

// formatInline applies the minimal inline formatting pass: bold, italic,
// inline code. Escaping runs FIRST — the substitutions only ever wrap
// already-escaped text, so the markers cannot reintroduce raw HTML. Bold
// must run before italic or ** would be consumed as two italics.
func formatInline(s string) string {
	s = escape(s)
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicRe.ReplaceAllString(s, "<em>$1</em>")
	s = codeRe.ReplaceAllString(s, "<code>$1</code>")
	return s
}

// summarize produces a plain-text aria-label from possibly formatted
// text: tags stripped, truncated to 100 chars with an ellipsis.
func summarize(s string) string {
	plain := tagRe.ReplaceAllString(s, "")
	plain = strings.TrimSpace(plain)
	if r := []rune(plain); len(r) > 100 {
		plain = string(r[:100]) + "…"
	}
	return escape(plain)
}

// resolveURL prefixes base onto relative paths. Absolute URLs pass
// through untouched.
func resolveURL(url, base string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	if url == "" {
		return url
	}
	base = strings.TrimRight(base, "/")
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return base + url
}
