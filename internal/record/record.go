// Package record exposes the fixed layout of a registry entry account as the
// execution host stores it. This layer never validates or mutates entries.
package record

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/danmuck/nameregistry/internal/identity"
)

// HeaderSize is parent, owner and class identities back to back.
const HeaderSize = 3 * identity.Size

var ErrTruncated = errors.New("record: truncated header")

// Header is the fixed prefix of every entry account.
type Header struct {
	Parent identity.Identity `json:"parent"`
	Owner  identity.Identity `json:"owner"`
	Class  identity.Identity `json:"class"`
}

// Record is a header followed by the entry's data region.
type Record struct {
	Header Header `json:"header"`
	Data   []byte `json:"data"`
}

// HasParent reports whether the parent slot holds a real entry.
func (h Header) HasParent() bool {
	return !h.Parent.IsPlaceholder()
}

func (h Header) HasClass() bool {
	return !h.Class.IsPlaceholder()
}

// MarshalBinary writes parent|owner|class, 96 bytes, no prefixes.
func (h Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, HeaderSize)
	buf = append(buf, h.Parent[:]...)
	buf = append(buf, h.Owner[:]...)
	buf = append(buf, h.Class[:]...)
	return buf, nil
}

// UnmarshalHeader reads the header from the first HeaderSize bytes of b.
func UnmarshalHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("%w: got %d want %d", ErrTruncated, len(b), HeaderSize)
	}
	var h Header
	copy(h.Parent[:], b[0:identity.Size])
	copy(h.Owner[:], b[identity.Size:2*identity.Size])
	copy(h.Class[:], b[2*identity.Size:HeaderSize])
	return h, nil
}

// ParseRecord splits raw account data into header and data region. An empty
// data region parses as nil.
func ParseRecord(b []byte) (Record, error) {
	h, err := UnmarshalHeader(b)
	if err != nil {
		return Record{}, err
	}
	var data []byte
	if len(b) > HeaderSize {
		data = bytes.Clone(b[HeaderSize:])
	}
	return Record{Header: h, Data: data}, nil
}

// MarshalBinary writes the header followed by the data region.
func (r Record) MarshalBinary() ([]byte, error) {
	head, err := r.Header.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append(head, r.Data...), nil
}
