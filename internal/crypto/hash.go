package crypto

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword returns the hex-encoded SHA-1 digest of password.
//
// An unsalted single-round SHA-1 is far too fast for password storage.
// It is kept because every credential already in the users collection is
// stored in this format; migrating to a real KDF means rewriting those
// documents. All hashing goes through this one function so such a
// migration has a single entry point.
func HashPassword(password string) string {
	sum := sha1.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword checks whether a password matches the stored digest.
// Uses constant-time comparison to prevent timing attacks.
func VerifyPassword(password, digest string) bool {
	candidate := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(digest)) == 1
}
