// Package common defines shared sentinel errors used across the gateway.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Authentication errors. Handlers must present both to the caller as
	// the same "incorrect login credentials" message.
	ErrUserNotFound     = errors.New("user not found")
	ErrWrongCredentials = errors.New("wrong credentials")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")

	// Wallet provisioning errors.
	ErrWalletExists = errors.New("wallet already exists")

	// ErrPartialFailure means the remote node mutation succeeded but the
	// local metadata write did not. The remote wallet exists with no
	// durable mnemonic record; callers must surface this, never swallow it.
	ErrPartialFailure = errors.New("remote created, local persistence failed")

	// Node errors.
	ErrTransport         = errors.New("node unreachable")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Generic service-level error.
	ErrInternal = errors.New("internal error")
)
