// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// sanitize.go removes everything from a scraped page that we do not want
// to re-serve: third-party scripts, tracking pixels, and stylesheets
// outside the known theme set. Filtering is allow-list based — anything
// not recognized is dropped.
package scraper

import (
	"regexp"
	"strings"
)

// scriptAllowList holds URL fragments of external scripts that may stay
// in the template. Everything else is assumed to be tracking, ads, or
// plugin code that breaks outside WordPress.
var scriptAllowList = []string{
	"/wp-includes/js/jquery/",
	"/wp-content/themes/generatepress/assets/js/",
}

// stylesheetAllowList holds URL fragments of external stylesheets that
// may stay. Plugin CSS is generally dropped, with two carve-outs whose
// styles the theme layout depends on.
var stylesheetAllowList = []string{
	"/wp-includes/css/",
	"/wp-content/themes/generatepress/",
	"/wp-content/uploads/generatepress/",
	"fonts.googleapis.com",
	// Plugin carve-outs: these two ship layout-critical rules.
	"/wp-content/plugins/gp-premium/icons/",
	"/wp-content/plugins/wp-show-posts/css/",
}

var (
	externalScriptRe = regexp.MustCompile(`(?is)<script\b[^>]*\bsrc\s*=\s*["']([^"']+)["'][^>]*>\s*</script>`)
	inlineScriptRe   = regexp.MustCompile(`(?is)<script\b([^>]*)>(.*?)</script>`)
	stylesheetRe     = regexp.MustCompile(`(?is)<link\b[^>]*>`)
	metaTagRe        = regexp.MustCompile(`(?is)<meta\b[^>]*>`)
	noscriptRe       = regexp.MustCompile(`(?is)<noscript\b[^>]*>.*?</noscript>`)
	hrefRe           = regexp.MustCompile(`(?i)\bhref\s*=\s*["']([^"']+)["']`)
	srcRe            = regexp.MustCompile(`(?i)\bsrc\s*=\s*["']([^"']+)["']`)
)

// trackingKeywords mark meta tags and noscript fragments injected by
// analytics and ad plugins.
var trackingKeywords = []string{
	"facebook.com/tr",
	"googletagmanager",
	"google-analytics",
	"facebook-domain-verification",
	"p:domain_verify",
	"msvalidate.01",
}

// stripExternalScripts removes every <script src=...> whose URL does not
// match the allow-list.
func stripExternalScripts(html string) string {
	return externalScriptRe.ReplaceAllStringFunc(html, func(tag string) string {
		m := externalScriptRe.FindStringSubmatch(tag)
		if m == nil {
			return ""
		}
		if matchesAny(m[1], scriptAllowList) {
			return tag
		}
		return ""
	})
}

// stripInlineScripts removes inline <script> blocks, keeping only
// structured-data blocks (application/ld+json) — those are metadata, not
// tracking code. Tags with a src attribute are external and get the
// script allow-list applied to the URL: browsers execute the src and
// ignore the body, so a fallback body must not let a tracking script
// through.
func stripInlineScripts(html string) string {
	return inlineScriptRe.ReplaceAllStringFunc(html, func(tag string) string {
		m := inlineScriptRe.FindStringSubmatch(tag)
		if m == nil {
			return ""
		}
		attrs := strings.ToLower(m[1])
		if src := srcRe.FindStringSubmatch(m[1]); src != nil {
			if matchesAny(src[1], scriptAllowList) {
				return tag
			}
			return ""
		}
		if strings.Contains(attrs, "application/ld+json") {
			return tag
		}
		return ""
	})
}

// stripExternalStylesheets removes every stylesheet <link> whose href
// does not match the allow-list. Non-stylesheet links (icons, canonical,
// preconnect) are kept as-is. Inline <style> blocks are never touched —
// the theme inlines layout-critical rules and removing them breaks pages.
func stripExternalStylesheets(html string) string {
	return stylesheetRe.ReplaceAllStringFunc(html, func(tag string) string {
		lower := strings.ToLower(tag)
		if !strings.Contains(lower, `rel="stylesheet"`) && !strings.Contains(lower, `rel='stylesheet'`) {
			return tag
		}
		m := hrefRe.FindStringSubmatch(tag)
		if m == nil {
			return ""
		}
		if matchesAny(m[1], stylesheetAllowList) {
			return tag
		}
		return ""
	})
}

// stripTracking removes meta tags and noscript fragments that match
// tracking keywords (verification tags, pixel fallbacks).
func stripTracking(html string) string {
	html = metaTagRe.ReplaceAllStringFunc(html, func(tag string) string {
		if containsAnyKeyword(tag, trackingKeywords) {
			return ""
		}
		return tag
	})
	return noscriptRe.ReplaceAllStringFunc(html, func(tag string) string {
		if containsAnyKeyword(tag, trackingKeywords) {
			return ""
		}
		return tag
	})
}

// sanitize applies the filtering stages in fixed order.
func sanitize(html string) string {
	html = stripExternalScripts(html)
	html = stripInlineScripts(html)
	html = stripExternalStylesheets(html)
	html = stripTracking(html)
	return html
}

func matchesAny(url string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(url, f) {
			return true
		}
	}
	return false
}

func containsAnyKeyword(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
