// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Layout identifies one of the site's page shapes. Each layout loads its
// own ordered set of stylesheets and has its own critical-CSS fallback.
type Layout string

const (
	LayoutHomepage Layout = "homepage"
	LayoutCategory Layout = "category"
	LayoutPost     Layout = "post"
)

// ParseLayout maps a raw string to a Layout, defaulting to post for
// anything unrecognized so page serving never fails on a bad value.
func ParseLayout(s string) Layout {
	switch Layout(s) {
	case LayoutHomepage, LayoutCategory, LayoutPost:
		return Layout(s)
	default:
		return LayoutPost
	}
}
