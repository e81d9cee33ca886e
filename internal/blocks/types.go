// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import "encoding/json"

// Payload shapes, one per block type. Decoding is total: a payload that
// fails to unmarshal yields the zero value of its shape, and rendering
// degrades to whatever the zero value produces rather than failing the
// whole article.

// HeadingContent is the payload for "heading" blocks.
type HeadingContent struct {
	Text     string `json:"text"`
	Level    int    `json:"level"`
	AnchorID string `json:"anchor_id"`
}

// ParagraphContent is the payload for "paragraph" blocks.
type ParagraphContent struct {
	Text      string `json:"text"`
	Alignment string `json:"alignment"`
}

// ImageContent is the payload for "image" blocks.
type ImageContent struct {
	URL     string `json:"url"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
	Lazy    *bool  `json:"lazy"`
}

// AccentTipContent is the payload for "accent_tip" blocks. Subtype picks
// the ARIA role: tip/info render as notes, warning as an alert, success
// as a status.
type AccentTipContent struct {
	Text    string `json:"text"`
	Subtype string `json:"subtype"`
	Title   string `json:"title"`
}

// QuoteContent is the payload for "quote" blocks.
type QuoteContent struct {
	Text        string `json:"text"`
	Attribution string `json:"attribution"`
}

// CTAContent is the payload for "cta" blocks and each entry of a
// "cta-group".
type CTAContent struct {
	Text     string `json:"text"`
	URL      string `json:"url"`
	External bool   `json:"external"`
}

// ListContent is the payload for "list" blocks.
type ListContent struct {
	Items   []string `json:"items"`
	Ordered bool     `json:"ordered"`
}

// TableContent is the payload for "table" blocks.
type TableContent struct {
	Rows      [][]string `json:"rows"`
	HasHeader bool       `json:"has_header"`
	Caption   string     `json:"caption"`
}

// ContainerContent is the payload for the structural wrapper types:
// columns, column, section, container. Children hold nested raw blocks.
type ContainerContent struct {
	Children []ChildBlock `json:"children"`
}

// ChildBlock is a nested block inside a structural wrapper. It mirrors
// the top-level block shape minus persistence fields.
type ChildBlock struct {
	ID        string          `json:"id"`
	BlockType string          `json:"block_type"`
	Content   json.RawMessage `json:"content"`
}

// CTAGroupContent is the payload for "cta-group" blocks.
type CTAGroupContent struct {
	Buttons []CTAContent `json:"buttons"`
}

// decode unmarshals raw into dst, leaving dst at its zero value when the
// payload is malformed. Never returns an error: payload shape mismatches
// degrade, they do not abort.
func decode(raw json.RawMessage, dst any) bool {
	if len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}
