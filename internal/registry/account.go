package registry

import "github.com/danmuck/nameregistry/internal/identity"

// AccountMeta is one entry of an instruction's account list.
type AccountMeta struct {
	Identity   identity.Identity `json:"pubkey"`
	IsSigner   bool              `json:"is_signer"`
	IsWritable bool              `json:"is_writable"`
}

// Writable references an account the host may mutate.
func Writable(id identity.Identity, signer bool) AccountMeta {
	return AccountMeta{Identity: id, IsSigner: signer, IsWritable: true}
}

// ReadOnly references an account the host only reads.
func ReadOnly(id identity.Identity, signer bool) AccountMeta {
	return AccountMeta{Identity: id, IsSigner: signer}
}

// appendWithPlaceholder keeps the slot's position: a supplied identity is
// appended with the given flags, an absent one as a read-only, non-signer
// placeholder.
func appendWithPlaceholder(accounts []AccountMeta, id *identity.Identity, writable, signer bool) []AccountMeta {
	if id == nil {
		return append(accounts, ReadOnly(identity.Placeholder, false))
	}
	return append(accounts, AccountMeta{Identity: *id, IsSigner: signer, IsWritable: writable})
}

// appendIfPresent grows the list only when id is supplied.
func appendIfPresent(accounts []AccountMeta, id *identity.Identity, writable, signer bool) []AccountMeta {
	if id == nil {
		return accounts
	}
	return append(accounts, AccountMeta{Identity: *id, IsSigner: signer, IsWritable: writable})
}
