package registry

import (
	"github.com/danmuck/nameregistry/internal/identity"
	"github.com/danmuck/nameregistry/internal/protocol/instruction"
)

// Instruction is one outgoing request: target program, ordered accounts and
// encoded payload, submitted atomically by the caller.
type Instruction struct {
	ProgramID identity.Identity `json:"program_id"`
	Accounts  []AccountMeta     `json:"accounts"`
	Data      []byte            `json:"data"`
}

// Request decodes the instruction payload back into its variant.
func (ix Instruction) Request() (instruction.Request, error) {
	return instruction.Decode(ix.Data)
}

// Signers lists identities flagged as signers, in account order.
func (ix Instruction) Signers() []identity.Identity {
	out := make([]identity.Identity, 0, len(ix.Accounts))
	for _, acc := range ix.Accounts {
		if acc.IsSigner {
			out = append(out, acc.Identity)
		}
	}
	return out
}

// Writable lists identities flagged as writable, in account order.
func (ix Instruction) Writable() []identity.Identity {
	out := make([]identity.Identity, 0, len(ix.Accounts))
	for _, acc := range ix.Accounts {
		if acc.IsWritable {
			out = append(out, acc.Identity)
		}
	}
	return out
}
