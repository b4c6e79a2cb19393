// Package auth implements credential hashing and access token handling.
package auth

import (
	"crypto/rand"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

const saltSize = 16

// argon2id parameters: time=1, memory=64MB, threads=4, 32-byte key.
func deriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// HashPassword derives an argon2id hash of the password under a fresh random
// salt. Both are stored alongside the user record.
func HashPassword(password string) (hash, salt []byte, err error) {
	salt = make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, err
	}
	return deriveKey([]byte(password), salt), salt, nil
}

// VerifyPassword reports whether the candidate password derives the stored
// hash under the stored salt. The comparison is constant-time.
func VerifyPassword(password string, salt, hash []byte) bool {
	candidate := deriveKey([]byte(password), salt)
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}
