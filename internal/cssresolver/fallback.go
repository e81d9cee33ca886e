// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cssresolver

import "cruisepress/internal/models"

// emergencyCSSURL is the known-good origin stylesheet used when sync is
// disabled or unconfigured. Pages styled only by this plus the critical
// rules below are degraded but readable.
const emergencyCSSURL = "https://www.emmacruises.com/wp-includes/css/dist/block-library/style.min.css"

// criticalBase is shared by every layout: header, typography, and the
// content column.
const criticalBase = `body{margin:0;font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",sans-serif;color:#1f2428;line-height:1.6}
.site-header{background:#0b2545;color:#fff;padding:1rem 1.5rem}
.site-header a{color:#fff;text-decoration:none}
.grid-container{max-width:1120px;margin:0 auto;padding:0 1.5rem}
img{max-width:100%;height:auto}`

// criticalByLayout holds the layout-specific additions to the emergency
// inline CSS.
var criticalByLayout = map[models.Layout]string{
	models.LayoutHomepage: criticalBase + `
.post-grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(280px,1fr));gap:1.5rem;padding:2rem 0}
.post-card{border:1px solid #dde3ea;border-radius:6px;overflow:hidden;background:#fff}
.post-card h2{font-size:1.15rem;margin:.75rem 1rem}`,
	models.LayoutCategory: criticalBase + `
.archive-title{font-size:1.6rem;margin:1.5rem 0 .5rem}
.post-list article{border-bottom:1px solid #dde3ea;padding:1.25rem 0}
.post-list h2{font-size:1.25rem;margin:0 0 .5rem}`,
	models.LayoutPost: criticalBase + `
.site-main{max-width:760px;margin:0 auto;padding:2rem 1.5rem}
.entry-title{font-size:2rem;line-height:1.25;margin:0 0 1rem}
.entry-content p{margin:0 0 1.25rem}
blockquote{border-left:4px solid #0b2545;margin:1.5rem 0;padding:.5rem 1.25rem;color:#47525d}`,
}

// CriticalCSS returns the inline fallback rules for a layout.
func CriticalCSS(layout models.Layout) string {
	if css, ok := criticalByLayout[layout]; ok {
		return css
	}
	return criticalByLayout[models.LayoutPost]
}
