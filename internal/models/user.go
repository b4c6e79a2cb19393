// Package models holds the gateway's persistent and wire-facing types.
package models

import "time"

// User is a registered account. Usernames are unique; the password is stored
// as an argon2id hash next to its random salt, never in the clear.
type User struct {
	ID           string
	Username     string
	PasswordHash []byte
	Salt         []byte
	CreatedAt    time.Time
}
