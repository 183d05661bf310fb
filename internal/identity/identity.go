// Package identity derives the short fingerprints used as uniqueness keys
// for tracked-player rows.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const fingerprintLen = 16

// Fingerprint hashes the ordered fields into a fixed-length hex string.
// Identical inputs always produce identical output.
func Fingerprint(fields ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(fields, "\x00")))
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}

// PlayerFingerprint identifies a (name, tag, owner) registration.
func PlayerFingerprint(name, tag, ownerID string) string {
	return Fingerprint(name, tag, ownerID)
}
