// Package shortcode generates the human-shareable bill codes.
package shortcode

import (
	"crypto/rand"
	"strings"
)

// Alphabet is the 32-symbol set used for short codes: digits and uppercase
// letters minus the visually ambiguous 0, O, 1 and I.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Length is the number of characters in a short code.
const Length = 6

// Generate returns a random 6-character code drawn uniformly from Alphabet.
func Generate() string {
	buf := make([]byte, Length)
	// rand.Read never fails on supported platforms (go 1.24 crypto/rand).
	rand.Read(buf)
	for i, b := range buf {
		// 32 symbols divide 256 evenly, so masking keeps the draw uniform.
		buf[i] = Alphabet[b&31]
	}
	return string(buf)
}

// Normalize uppercases a user-entered code so lookups are case-insensitive.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
