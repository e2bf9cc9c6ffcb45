// Package digest produces the one-way digests stored in the credential file
// in place of passwords and secret words.
package digest

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Size is the length of a hex-encoded digest.
const Size = sha256.Size * 2

// Sum returns the lower-case hex SHA-256 digest of s.
func Sum(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// Matches reports whether plain hashes to stored. The comparison is
// byte-for-byte and constant time.
func Matches(plain, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(Sum(plain)), []byte(stored)) == 1
}
