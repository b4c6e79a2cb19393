// Package mnemonic generates BIP-39 recovery phrases for provisioned wallets.
// The phrase is stored with the wallet metadata; the node derives its own
// keys, so the phrase is a recovery record, not key material.
package mnemonic

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// EntropyBits is the entropy size for 12-word mnemonics.
const EntropyBits = 128

// Generate creates a new 12-word BIP-39 mnemonic from 128 bits of
// cryptographically strong entropy, using the English wordlist.
func Generate() ([]string, error) {
	entropy, err := bip39.NewEntropy(EntropyBits)
	if err != nil {
		return nil, fmt.Errorf("generate entropy: %w", err)
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("generate mnemonic: %w", err)
	}
	return strings.Fields(phrase), nil
}

// Validate checks a space-joined phrase per BIP-39 (word count, wordlist
// membership, checksum).
func Validate(phrase string) bool {
	return bip39.IsMnemonicValid(phrase)
}
