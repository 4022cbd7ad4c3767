// Package password wraps bcrypt behind the two operations the auth flow
// needs: one-way salted hashing and constant-time verification.
package password

import "golang.org/x/crypto/bcrypt"

// Hash produces a salted bcrypt digest of the plaintext. The salt is
// random per call, so hashing the same input twice yields different
// digests.
func Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the stored digest. Any
// internal failure (corrupt digest, unsupported cost) is reported as a
// plain mismatch so callers cannot distinguish the cases.
func Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
