package instruction

import (
	"github.com/danmuck/nameregistry/internal/identity"
	"github.com/danmuck/nameregistry/internal/protocol/borsh"
)

// Decode parses one request payload. The whole payload must be consumed.
// Zero-length byte fields decode as nil, so Decode(Encode(Create{})) yields
// Create{} exactly; a non-nil empty slice comes back as nil.
func Decode(payload []byte) (Request, error) {
	if len(payload) == 0 {
		return nil, ErrEmpty
	}
	r := borsh.NewReader(payload)
	raw, err := r.U8()
	if err != nil {
		return nil, err
	}

	var req Request
	switch Tag(raw) {
	case TagCreate:
		req, err = decodeCreate(r)
	case TagUpdate:
		req, err = decodeUpdate(r)
	case TagTransfer:
		req, err = decodeTransfer(r)
	case TagDelete:
		req = Delete{}
	case TagRealloc:
		req, err = decodeRealloc(r)
	default:
		return nil, TagError{Tag: raw}
	}
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, ErrTrailingBytes
	}
	return req, nil
}

func decodeCreate(r *borsh.Reader) (Request, error) {
	name, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	lamports, err := r.U64()
	if err != nil {
		return nil, err
	}
	space, err := r.U32()
	if err != nil {
		return nil, err
	}
	return Create{HashedName: name, Lamports: lamports, Space: space}, nil
}

func decodeUpdate(r *borsh.Reader) (Request, error) {
	offset, err := r.U32()
	if err != nil {
		return nil, err
	}
	data, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	return Update{Offset: offset, Data: data}, nil
}

func decodeTransfer(r *borsh.Reader) (Request, error) {
	raw, err := r.Fixed(identity.Size)
	if err != nil {
		return nil, err
	}
	owner, err := identity.FromBytes(raw)
	if err != nil {
		return nil, err
	}
	return Transfer{NewOwner: owner}, nil
}

func decodeRealloc(r *borsh.Reader) (Request, error) {
	space, err := r.U32()
	if err != nil {
		return nil, err
	}
	return Realloc{Space: space}, nil
}
