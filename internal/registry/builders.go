package registry

import (
	"crypto/sha256"

	"github.com/danmuck/nameregistry/internal/identity"
	"github.com/danmuck/nameregistry/internal/protocol/instruction"
	"github.com/rs/zerolog/log"
)

// HashPrefix is prepended to a plain name before hashing it into a
// Create request's HashedName.
const HashPrefix = "SPL Name Service"

// HashName returns sha256(HashPrefix + name).
func HashName(name string) []byte {
	sum := sha256.Sum256([]byte(HashPrefix + name))
	return sum[:]
}

// CreateParams carries the payload and participants of a Create request.
// Class, Parent and ParentOwner are optional.
type CreateParams struct {
	HashedName  []byte
	Lamports    uint64
	Space       uint32
	Entry       identity.Identity
	Payer       identity.Identity
	Owner       identity.Identity
	Class       *identity.Identity
	Parent      *identity.Identity
	ParentOwner *identity.Identity
}

// UpdateParams carries an Update request. Parent is optional.
type UpdateParams struct {
	Offset          uint32
	Data            []byte
	Entry           identity.Identity
	UpdateAuthority identity.Identity
	Parent          *identity.Identity
}

// TransferParams carries a Transfer request. Class is optional.
type TransferParams struct {
	NewOwner identity.Identity
	Entry    identity.Identity
	Owner    identity.Identity
	Class    *identity.Identity
}

// DeleteParams names the entry, its owner and where reclaimed funds go.
type DeleteParams struct {
	Entry        identity.Identity
	Owner        identity.Identity
	RefundTarget identity.Identity
}

// ReallocParams carries the new data size and the funding payer.
type ReallocParams struct {
	Space uint32
	Payer identity.Identity
	Entry identity.Identity
	Owner identity.Identity
}

// Create builds a Create request. The class and parent slots are
// fixed-position; the parent owner is a variable tail.
func Create(programID identity.Identity, p CreateParams) (Instruction, error) {
	req := instruction.Create{HashedName: p.HashedName, Lamports: p.Lamports, Space: p.Space}
	accounts := make([]AccountMeta, 0, 7)
	accounts = append(accounts,
		ReadOnly(identity.SystemProgram, false),
		Writable(p.Payer, true),
		Writable(p.Entry, false),
		ReadOnly(p.Owner, false),
	)
	accounts = appendWithPlaceholder(accounts, p.Class, false, true)
	accounts = appendWithPlaceholder(accounts, p.Parent, false, false)
	accounts = appendIfPresent(accounts, p.ParentOwner, false, true)
	return build(programID, req, accounts)
}

// Update builds an Update request; the parent, when supplied, is writable.
func Update(programID identity.Identity, p UpdateParams) (Instruction, error) {
	req := instruction.Update{Offset: p.Offset, Data: p.Data}
	accounts := make([]AccountMeta, 0, 3)
	accounts = append(accounts,
		Writable(p.Entry, false),
		ReadOnly(p.UpdateAuthority, true),
	)
	accounts = appendIfPresent(accounts, p.Parent, true, false)
	return build(programID, req, accounts)
}

// Transfer builds a Transfer request; the class, when supplied, must sign.
func Transfer(programID identity.Identity, p TransferParams) (Instruction, error) {
	req := instruction.Transfer{NewOwner: p.NewOwner}
	accounts := make([]AccountMeta, 0, 3)
	accounts = append(accounts,
		Writable(p.Entry, false),
		ReadOnly(p.Owner, true),
	)
	accounts = appendIfPresent(accounts, p.Class, false, true)
	return build(programID, req, accounts)
}

// Delete builds a Delete request: entry, owner, refund target.
func Delete(programID identity.Identity, p DeleteParams) (Instruction, error) {
	accounts := []AccountMeta{
		Writable(p.Entry, false),
		ReadOnly(p.Owner, true),
		Writable(p.RefundTarget, false),
	}
	return build(programID, instruction.Delete{}, accounts)
}

// Realloc builds a Realloc request against the system allocator.
func Realloc(programID identity.Identity, p ReallocParams) (Instruction, error) {
	accounts := []AccountMeta{
		ReadOnly(identity.SystemProgram, false),
		Writable(p.Payer, true),
		Writable(p.Entry, false),
		ReadOnly(p.Owner, true),
	}
	return build(programID, instruction.Realloc{Space: p.Space}, accounts)
}

func build(programID identity.Identity, req instruction.Request, accounts []AccountMeta) (Instruction, error) {
	data, err := instruction.Encode(req)
	if err != nil {
		log.Error().Err(err).Stringer("variant", req.Tag()).Msg("registry: encode failed")
		return Instruction{}, err
	}
	log.Debug().
		Stringer("variant", req.Tag()).
		Int("accounts", len(accounts)).
		Int("data_len", len(data)).
		Msg("registry: built instruction")
	return Instruction{ProgramID: programID, Accounts: accounts, Data: data}, nil
}
