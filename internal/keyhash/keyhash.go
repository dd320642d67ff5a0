// Package keyhash derives deterministic cache keys from structured request
// fields: a canonical ordering of the fields, joined with an explicit
// separator, then hashed. Pure functions, no hidden state: two requests
// with identical field values always produce identical keys, regardless of
// call order or object identity.
package keyhash

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// sep separates joined fields. The ASCII unit separator cannot appear in
// well-formed field values, which keeps ("ab","c") and ("a","bc") distinct.
const sep = "\x1f"

// Digest hashes the canonical join of fields with 64-bit xxHash and returns
// it as hex.
func Digest(fields ...string) string {
	h := xxhash.New()
	for i, f := range fields {
		if i > 0 {
			_, _ = h.WriteString(sep)
		}
		_, _ = h.WriteString(f)
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// Join concatenates fields with the canonical separator without hashing.
// Useful for tests and debugging of key derivation.
func Join(fields ...string) string {
	return strings.Join(fields, sep)
}

// Bool renders a boolean as the literal "true"/"false" field value.
func Bool(b bool) string {
	return strconv.FormatBool(b)
}

// Uint renders an unsigned integer field value.
func Uint(u uint64) string {
	return strconv.FormatUint(u, 10)
}
