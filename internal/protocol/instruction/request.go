package instruction

import (
	"github.com/danmuck/nameregistry/internal/identity"
	"github.com/danmuck/nameregistry/internal/protocol/borsh"
)

// Request is one of the five registry request variants. The set is closed.
type Request interface {
	Tag() Tag
	Validate() error
	encodeFields(w *borsh.Writer)
}

// Create registers a new entry keyed by a pre-hashed name, funded with
// Lamports and sized Space bytes.
type Create struct {
	HashedName []byte
	Lamports   uint64
	Space      uint32
}

// Update overwrites entry data starting at Offset.
type Update struct {
	Offset uint32
	Data   []byte
}

// Transfer changes the entry's owner reference.
type Transfer struct {
	NewOwner identity.Identity
}

// Delete removes the entry and reclaims its storage.
type Delete struct{}

// Realloc resizes the entry's data region to Space bytes.
type Realloc struct {
	Space uint32
}

func (Create) Tag() Tag   { return TagCreate }
func (Update) Tag() Tag   { return TagUpdate }
func (Transfer) Tag() Tag { return TagTransfer }
func (Delete) Tag() Tag   { return TagDelete }
func (Realloc) Tag() Tag  { return TagRealloc }

func (r Create) Validate() error {
	if !borsh.FitsPrefix(len(r.HashedName)) {
		return FieldError{Tag: TagCreate, Field: "hashed_name", Err: ErrFieldTooLarge}
	}
	return nil
}

func (r Update) Validate() error {
	if !borsh.FitsPrefix(len(r.Data)) {
		return FieldError{Tag: TagUpdate, Field: "data", Err: ErrFieldTooLarge}
	}
	return nil
}

func (Transfer) Validate() error { return nil }
func (Delete) Validate() error   { return nil }
func (Realloc) Validate() error  { return nil }

func (r Create) encodeFields(w *borsh.Writer) {
	w.Bytes(r.HashedName)
	w.U64(r.Lamports)
	w.U32(r.Space)
}

func (r Update) encodeFields(w *borsh.Writer) {
	w.U32(r.Offset)
	w.Bytes(r.Data)
}

func (r Transfer) encodeFields(w *borsh.Writer) {
	w.Fixed(r.NewOwner[:])
}

func (Delete) encodeFields(*borsh.Writer) {}

func (r Realloc) encodeFields(w *borsh.Writer) {
	w.U32(r.Space)
}
