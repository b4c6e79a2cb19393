package models

import "time"

// Wallet is the local metadata row written once per successful remote wallet
// creation. RemoteID is the node-facing label derived from the owning user's
// id and the chosen name; it is deliberately not unique at the store level —
// a repeated (user, name) pair conflicts at the node, not here.
type Wallet struct {
	ID        int64
	RemoteID  string
	UserID    string
	Username  string
	Mnemonic  string // the 12 recovery words, space-joined
	CreatedAt time.Time
}
