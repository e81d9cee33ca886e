// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// contentregion.go locates the primary content region of a scraped page
// and replaces its inner HTML with the placeholder sentinel. The origin
// theme is stable, so a cascade of three narrow structural heuristics is
// enough; a generic HTML parser would not preserve these assumptions.
package scraper

import (
	"regexp"
	"strings"
)

// ContentPlaceholder is the sentinel spliced into scraped templates and
// later replaced with rendered article content.
const ContentPlaceholder = "<!--CRUISEPRESS:CONTENT-->"

// Content-region heuristics, tried in order. The first tag matched by the
// first matching pattern wins.
var contentRegionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<div\b[^>]*class\s*=\s*["'][^"']*\bgrid-container\b[^"']*["'][^>]*>`),
	regexp.MustCompile(`(?i)<div\b[^>]*class\s*=\s*["'][^"']*\bgenerate-columns-container\b[^"']*["'][^>]*>`),
	regexp.MustCompile(`(?i)<main\b[^>]*class\s*=\s*["'][^"']*\bsite-main\b[^"']*["'][^>]*>`),
}

// substituteContentRegion replaces the inner content of the first matched
// region with the placeholder. Returns the (possibly unmodified) HTML and
// whether a region was found. When every heuristic misses, the HTML is
// returned untouched and the caller serves it in degraded mode.
func substituteContentRegion(html string) (string, bool) {
	for _, pattern := range contentRegionPatterns {
		loc := pattern.FindStringIndex(html)
		if loc == nil {
			continue
		}

		openTag := html[loc[0]:loc[1]]
		tagName := "div"
		if strings.HasPrefix(strings.ToLower(openTag), "<main") {
			tagName = "main"
		}

		closeStart := matchingCloseTag(html, loc[1], tagName)
		if closeStart == -1 {
			continue
		}

		return html[:loc[1]] + ContentPlaceholder + html[closeStart:], true
	}
	return html, false
}

// matchingCloseTag scans forward from offset, tracking nesting depth of
// tagName, and returns the index of the close tag that balances the
// already-open element, or -1 when the markup is unbalanced.
func matchingCloseTag(html string, offset int, tagName string) int {
	lower := strings.ToLower(html)
	open := "<" + tagName
	close := "</" + tagName

	depth := 1
	i := offset
	for i < len(lower) {
		nextOpen := strings.Index(lower[i:], open)
		nextClose := strings.Index(lower[i:], close)
		if nextClose == -1 {
			return -1
		}

		// Tag name boundary checks keep substrings like <maintext> and
		// </maintext> from being counted as <main> tags.
		if nextOpen != -1 && nextOpen < nextClose {
			after := i + nextOpen + len(open)
			if after < len(lower) && isTagBoundary(lower[after]) {
				depth++
			}
			i = after
			continue
		}

		after := i + nextClose + len(close)
		if after < len(lower) && isTagBoundary(lower[after]) {
			depth--
			if depth == 0 {
				return i + nextClose
			}
		}
		i = after
	}
	return -1
}

// isTagBoundary reports whether c legally terminates a tag name.
func isTagBoundary(c byte) bool {
	switch c {
	case ' ', '>', '\t', '\n', '\r':
		return true
	}
	return false
}
