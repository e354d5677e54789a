package identity

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"pharmatrace/internal/core/domain"
)

// AddressLength is the identity length in bytes (account-style address)
const AddressLength = 20

// New generates a fresh random identity
func New() (domain.Identity, error) {
	buf := make([]byte, AddressLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate identity: %w", err)
	}
	return domain.Identity("0x" + hex.EncodeToString(buf)), nil
}

// Parse validates and normalizes an identity string
func Parse(s string) (domain.Identity, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(normalized, "0x") {
		return "", fmt.Errorf("identity must start with 0x: %w", domain.ErrInvalidInput)
	}
	raw := normalized[2:]
	if len(raw) != AddressLength*2 {
		return "", fmt.Errorf("identity must be %d bytes: %w", AddressLength, domain.ErrInvalidInput)
	}
	if _, err := hex.DecodeString(raw); err != nil {
		return "", fmt.Errorf("identity must be hex encoded: %w", domain.ErrInvalidInput)
	}
	return domain.Identity(normalized), nil
}

// IsValid reports whether s is a well-formed identity
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}
