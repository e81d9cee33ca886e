// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package csssync

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the SHA-256 digest of content as a 64-character hex string.
// This is the change-detection fingerprint stored on every CSSVersion row.
func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
