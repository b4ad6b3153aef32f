package identity

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Identity is the 256-bit public identity the store assigns a session.
type Identity [32]byte

// FromToken derives the identity bound to an auth token.
func FromToken(token string) Identity {
	return Identity(blake2b.Sum256([]byte(token)))
}

// Parse decodes a hex encoded identity.
func Parse(s string) (Identity, error) {
	var id Identity
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("decoding identity: %w", err)
	}
	if len(b) != len(id) {
		return id, fmt.Errorf("identity must be %d bytes, got %d", len(id), len(b))
	}
	copy(id[:], b)
	return id, nil
}

func (id Identity) String() string {
	return hex.EncodeToString(id[:])
}

func (id Identity) IsZero() bool {
	return id == Identity{}
}
