// Package identity owns the fixed-length participant identity value.
//
// Ownership boundary:
// - 32-byte identity value and its base58 text form
// - well-known constant identities (placeholder, system allocator)
package identity

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// Size is the byte length of every identity.
const Size = 32

var (
	ErrInvalidLength   = errors.New("identity: invalid length")
	ErrInvalidEncoding = errors.New("identity: invalid base58 encoding")
)

// Identity is an opaque 32-byte participant or entry reference.
type Identity [Size]byte

var (
	// Placeholder marks an unused fixed-position account slot.
	Placeholder = Identity{}

	// SystemProgram is the host's storage allocator. It shares the all-zero
	// value with Placeholder on the reference host but is a distinct role.
	SystemProgram = MustParse("11111111111111111111111111111111")
)

// FromBytes copies b into an Identity. b must be exactly Size bytes.
func FromBytes(b []byte) (Identity, error) {
	var id Identity
	if len(b) != Size {
		return id, fmt.Errorf("%w: got %d want %d", ErrInvalidLength, len(b), Size)
	}
	copy(id[:], b)
	return id, nil
}

// Parse decodes a base58 identity string.
func Parse(s string) (Identity, error) {
	if s == "" {
		return Identity{}, ErrInvalidEncoding
	}
	raw := base58.Decode(s)
	if len(raw) == 0 {
		return Identity{}, fmt.Errorf("%w: %q", ErrInvalidEncoding, s)
	}
	return FromBytes(raw)
}

// MustParse is Parse for constants and tests.
func MustParse(s string) Identity {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IsPlaceholder reports whether id is the all-zero identity.
func (id Identity) IsPlaceholder() bool {
	return id == Placeholder
}

// Bytes returns a copy of the raw identity bytes.
func (id Identity) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, id[:])
	return out
}

func (id Identity) String() string {
	return base58.Encode(id[:])
}

func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *Identity) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Ptr returns a pointer to a copy of id, for optional slots.
func Ptr(id Identity) *Identity {
	return &id
}
