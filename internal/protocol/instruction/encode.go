package instruction

import "github.com/danmuck/nameregistry/internal/protocol/borsh"

// Encode serializes req as its tag byte followed by its fields in
// declaration order.
func Encode(req Request) ([]byte, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	w := borsh.NewWriter(EncodedLen(req))
	w.U8(uint8(req.Tag()))
	req.encodeFields(w)
	return w.Output()
}

// MustEncode runs Encode and panics on a contract violation.
func MustEncode(req Request) []byte {
	b, err := Encode(req)
	if err != nil {
		panic(err)
	}
	return b
}

// EncodedLen returns the exact payload size of req.
func EncodedLen(req Request) int {
	n := 1
	switch r := req.(type) {
	case Create:
		n += 4 + len(r.HashedName) + 8 + 4
	case Update:
		n += 4 + 4 + len(r.Data)
	case Transfer:
		n += len(r.NewOwner)
	case Realloc:
		n += 4
	}
	return n
}
