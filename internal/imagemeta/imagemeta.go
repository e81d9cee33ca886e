// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imagemeta extracts image dimensions by reading format headers
// directly, without decoding pixel data. Uploads only need width/height
// for the media table and for responsive markup, so pulling a full codec
// into the request path would be waste.
package imagemeta

import (
	"encoding/binary"

	"github.com/h2non/filetype"
)

// Size holds image dimensions in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Dimensions parses the header of buf according to the declared MIME type
// and returns the image size, or nil when the type is unsupported or the
// header is malformed or truncated. It never panics and never allocates
// beyond the return value.
func Dimensions(buf []byte, declaredType string) *Size {
	switch declaredType {
	case "image/png":
		return pngSize(buf)
	case "image/jpeg", "image/jpg":
		return jpegSize(buf)
	case "image/gif":
		return gifSize(buf)
	case "image/webp":
		return webpSize(buf)
	default:
		return nil
	}
}

// DetectContentType sniffs the MIME type from magic bytes. Returns the
// empty string for unrecognized content. Used when an upload's declared
// type is missing or contradicts the bytes.
func DetectContentType(buf []byte) string {
	kind, err := filetype.Match(buf)
	if err != nil || kind == filetype.Unknown {
		return ""
	}
	return kind.MIME.Value
}

// pngSize reads the IHDR width/height fields. The IHDR chunk is required
// to be first, so the offsets are fixed.
func pngSize(buf []byte) *Size {
	if len(buf) < 24 {
		return nil
	}
	if buf[0] != 0x89 || buf[1] != 'P' || buf[2] != 'N' || buf[3] != 'G' {
		return nil
	}
	return &Size{
		Width:  int(binary.BigEndian.Uint32(buf[16:20])),
		Height: int(binary.BigEndian.Uint32(buf[20:24])),
	}
}

// jpegSize walks the marker segments until it finds a Start-Of-Frame
// (baseline 0xC0 or progressive 0xC2), which carries the dimensions.
func jpegSize(buf []byte) *Size {
	if len(buf) < 4 || buf[0] != 0xff || buf[1] != 0xd8 {
		return nil
	}

	off := 2
	for off+9 <= len(buf) {
		if buf[off] != 0xff {
			return nil
		}
		marker := buf[off+1]
		if marker == 0xc0 || marker == 0xc2 {
			// SOF payload: length(2) precision(1) height(2) width(2)
			return &Size{
				Height: int(binary.BigEndian.Uint16(buf[off+5 : off+7])),
				Width:  int(binary.BigEndian.Uint16(buf[off+7 : off+9])),
			}
		}
		segLen := int(binary.BigEndian.Uint16(buf[off+2 : off+4]))
		if segLen < 2 {
			return nil
		}
		off += 2 + segLen
	}
	return nil
}

// gifSize reads the little-endian logical screen dimensions.
func gifSize(buf []byte) *Size {
	if len(buf) < 10 {
		return nil
	}
	if buf[0] != 'G' || buf[1] != 'I' || buf[2] != 'F' {
		return nil
	}
	return &Size{
		Width:  int(binary.LittleEndian.Uint16(buf[6:8])),
		Height: int(binary.LittleEndian.Uint16(buf[8:10])),
	}
}

// webpSize handles the lossy VP8 variant, whose frame header packs
// 14-bit dimensions. VP8L/VP8X containers are not parsed and return nil.
func webpSize(buf []byte) *Size {
	if len(buf) < 30 {
		return nil
	}
	if string(buf[0:4]) != "RIFF" || string(buf[8:12]) != "WEBP" {
		return nil
	}
	if string(buf[12:16]) != "VP8 " {
		return nil
	}
	// Keyframe start code 0x9d 0x01 0x2a precedes the dimension words.
	if buf[23] != 0x9d || buf[24] != 0x01 || buf[25] != 0x2a {
		return nil
	}
	return &Size{
		Width:  int(binary.LittleEndian.Uint16(buf[26:28])) & 0x3fff,
		Height: int(binary.LittleEndian.Uint16(buf[28:30])) & 0x3fff,
	}
}
