// Package envelope hands built requests to the external submission layer.
//
// One frame carries one message: either an instruction (program id, account
// table and payload) or an entry record read back from the host, as TLV
// fields validated against the schema on both sides.
package envelope

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/danmuck/nameregistry/internal/identity"
	"github.com/danmuck/nameregistry/internal/protocol/frame"
	"github.com/danmuck/nameregistry/internal/protocol/instruction"
	"github.com/danmuck/nameregistry/internal/protocol/schema"
	"github.com/danmuck/nameregistry/internal/protocol/tlv"
	"github.com/danmuck/nameregistry/internal/record"
	"github.com/danmuck/nameregistry/internal/registry"
)

// AccountEntrySize is identity(32) | writable(1) | signer(1).
const AccountEntrySize = identity.Size + 2

var (
	ErrAccountTable    = errors.New("envelope: malformed account table")
	ErrVariantMismatch = errors.New("envelope: variant field disagrees with payload tag")
	ErrMessageType     = errors.New("envelope: unexpected message type")
)

// Encode frames ix for submission.
func Encode(messageID uint64, ix registry.Instruction) ([]byte, error) {
	if len(ix.Data) == 0 {
		return nil, instruction.ErrEmpty
	}
	fields := []tlv.Field{
		tlv.Bytes(schema.FieldProgramID, ix.ProgramID[:]),
		tlv.Bytes(schema.FieldAccounts, EncodeAccounts(ix.Accounts)),
		tlv.Bytes(schema.FieldData, ix.Data),
		tlv.U8(schema.FieldVariant, ix.Data[0]),
	}
	return writeMessage(messageID, schema.MsgInstruction, fields)
}

// Decode rebuilds the instruction carried by f.
func Decode(f frame.Frame) (registry.Instruction, error) {
	if f.Header.MessageType != schema.MsgInstruction {
		return registry.Instruction{}, fmt.Errorf("%w: %d", ErrMessageType, f.Header.MessageType)
	}
	fields, err := readMessage(f, schema.MsgInstruction)
	if err != nil {
		return registry.Instruction{}, err
	}

	programField, _ := tlv.GetField(fields, schema.FieldProgramID)
	programID, err := identity.FromBytes(programField.Value)
	if err != nil {
		return registry.Instruction{}, err
	}
	accountsField, _ := tlv.GetField(fields, schema.FieldAccounts)
	accounts, err := DecodeAccounts(accountsField.Value)
	if err != nil {
		return registry.Instruction{}, err
	}
	dataField, _ := tlv.GetField(fields, schema.FieldData)
	variantField, _ := tlv.GetField(fields, schema.FieldVariant)
	variant, err := variantField.AsU8()
	if err != nil {
		return registry.Instruction{}, err
	}
	if !instruction.Tag(variant).Valid() {
		return registry.Instruction{}, instruction.TagError{Tag: variant}
	}
	req, err := instruction.Decode(dataField.Value)
	if err != nil {
		return registry.Instruction{}, err
	}
	if uint8(req.Tag()) != variant {
		return registry.Instruction{}, ErrVariantMismatch
	}
	return registry.Instruction{ProgramID: programID, Accounts: accounts, Data: dataField.Value}, nil
}

// EncodeAccounts serializes the account list in order.
func EncodeAccounts(accounts []registry.AccountMeta) []byte {
	out := make([]byte, 0, len(accounts)*AccountEntrySize)
	for _, acc := range accounts {
		out = append(out, acc.Identity[:]...)
		out = append(out, boolByte(acc.IsWritable), boolByte(acc.IsSigner))
	}
	return out
}

func DecodeAccounts(b []byte) ([]registry.AccountMeta, error) {
	if len(b)%AccountEntrySize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrAccountTable, len(b))
	}
	accounts := make([]registry.AccountMeta, 0, len(b)/AccountEntrySize)
	for off := 0; off < len(b); off += AccountEntrySize {
		var acc registry.AccountMeta
		copy(acc.Identity[:], b[off:off+identity.Size])
		writable, err := byteBool(b[off+identity.Size])
		if err != nil {
			return nil, err
		}
		signer, err := byteBool(b[off+identity.Size+1])
		if err != nil {
			return nil, err
		}
		acc.IsWritable = writable
		acc.IsSigner = signer
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// RecordMessage is an entry account read back from the host.
type RecordMessage struct {
	Entry  identity.Identity
	Slot   uint64
	Record record.Record
}

// EncodeRecord frames raw entry account data. Slot is omitted when zero.
func EncodeRecord(messageID uint64, msg RecordMessage) ([]byte, error) {
	raw, err := msg.Record.MarshalBinary()
	if err != nil {
		return nil, err
	}
	fields := []tlv.Field{
		tlv.Bytes(schema.FieldEntry, msg.Entry[:]),
		tlv.Bytes(schema.FieldRecordData, raw),
	}
	if msg.Slot != 0 {
		fields = append(fields, tlv.U64(schema.FieldSlot, msg.Slot))
	}
	return writeMessage(messageID, schema.MsgRecord, fields)
}

// DecodeRecord rebuilds the entry record carried by f.
func DecodeRecord(f frame.Frame) (RecordMessage, error) {
	if f.Header.MessageType != schema.MsgRecord {
		return RecordMessage{}, fmt.Errorf("%w: %d", ErrMessageType, f.Header.MessageType)
	}
	fields, err := readMessage(f, schema.MsgRecord)
	if err != nil {
		return RecordMessage{}, err
	}
	entryField, _ := tlv.GetField(fields, schema.FieldEntry)
	entry, err := identity.FromBytes(entryField.Value)
	if err != nil {
		return RecordMessage{}, err
	}
	dataField, _ := tlv.GetField(fields, schema.FieldRecordData)
	rec, err := record.ParseRecord(dataField.Value)
	if err != nil {
		return RecordMessage{}, err
	}
	msg := RecordMessage{Entry: entry, Record: rec}
	if slotField, ok := tlv.GetField(fields, schema.FieldSlot); ok {
		slot, err := slotField.AsU64()
		if err != nil {
			return RecordMessage{}, err
		}
		msg.Slot = slot
	}
	return msg, nil
}

// Message is one decoded frame. Exactly one of Instruction or Record is set,
// matching Type.
type Message struct {
	ID          uint64
	Type        uint32
	Instruction *registry.Instruction
	Record      *RecordMessage
}

// ReadMessage reads one frame from raw and decodes it by message type.
func ReadMessage(raw []byte) (Message, error) {
	f, err := frame.ReadFrame(bytes.NewReader(raw), frame.DefaultLimits())
	if err != nil {
		return Message{}, err
	}
	msg := Message{ID: f.Header.MessageID, Type: f.Header.MessageType}
	switch f.Header.MessageType {
	case schema.MsgInstruction:
		ix, err := Decode(f)
		if err != nil {
			return Message{}, err
		}
		msg.Instruction = &ix
	case schema.MsgRecord:
		rec, err := DecodeRecord(f)
		if err != nil {
			return Message{}, err
		}
		msg.Record = &rec
	default:
		return Message{}, fmt.Errorf("%w: %d", ErrMessageType, f.Header.MessageType)
	}
	return msg, nil
}

func writeMessage(messageID uint64, messageType uint32, fields []tlv.Field) ([]byte, error) {
	if err := schema.Validate(messageType, fields); err != nil {
		return nil, err
	}
	payload, err := tlv.EncodeFields(fields)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = frame.WriteFrame(&buf, frame.Frame{
		Header: frame.Header{
			MessageID:   messageID,
			MessageType: messageType,
		},
		Payload: payload,
	}, frame.DefaultLimits())
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func readMessage(f frame.Frame, messageType uint32) ([]tlv.Field, error) {
	fields, err := tlv.DecodeFields(f.Payload)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(messageType, fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

func byteBool(b byte) (bool, error) {
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: flag byte %d", ErrAccountTable, b)
	}
}
