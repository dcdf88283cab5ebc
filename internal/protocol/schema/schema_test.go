package schema

import (
	"testing"

	"github.com/danmuck/nameregistry/internal/protocol/tlv"
	"github.com/danmuck/nameregistry/internal/testutil/testlog"
)

func instructionFields() []tlv.Field {
	return []tlv.Field{
		tlv.Bytes(FieldProgramID, make([]byte, 32)),
		tlv.Bytes(FieldAccounts, nil),
		tlv.Bytes(FieldData, []byte{3}),
		tlv.U8(FieldVariant, 3),
	}
}

func TestValidateInstructionRequiredFields(t *testing.T) {
	testlog.Start(t)
	if err := Validate(MsgInstruction, instructionFields()); err != nil {
		t.Fatalf("validate instruction: %v", err)
	}
}

func TestValidateUnknownFieldsIgnored(t *testing.T) {
	testlog.Start(t)
	fields := append(instructionFields(), tlv.Field{ID: 9999, Type: tlv.TypeBytes, Value: []byte{0x01}})
	if err := Validate(MsgInstruction, fields); err != nil {
		t.Fatalf("validate with unknown field: %v", err)
	}
}

func TestValidateMissingRequiredDeterministic(t *testing.T) {
	testlog.Start(t)
	fields := []tlv.Field{tlv.Bytes(FieldProgramID, make([]byte, 32))}
	err := Validate(MsgInstruction, fields)
	if err == nil {
		t.Fatalf("expected error")
	}
	ve, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if ve.FieldID != FieldAccounts || ve.Reason != "missing required field" {
		t.Fatalf("unexpected validation error: %+v", ve)
	}
}

func TestValidateTypeMismatchDeterministic(t *testing.T) {
	testlog.Start(t)
	fields := instructionFields()
	fields[3] = tlv.Bytes(FieldVariant, []byte{3})
	err := Validate(MsgInstruction, fields)
	ve, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if ve.FieldID != FieldVariant || ve.Reason != "type mismatch" {
		t.Fatalf("unexpected validation error: %+v", ve)
	}
}

func TestValidateUnknownMessageType(t *testing.T) {
	testlog.Start(t)
	err := Validate(77, nil)
	ve, ok := err.(ValidationError)
	if !ok || ve.Reason != "unknown message_type" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRecord(t *testing.T) {
	testlog.Start(t)
	fields := []tlv.Field{
		tlv.Bytes(FieldEntry, make([]byte, 32)),
		tlv.Bytes(FieldRecordData, make([]byte, 96)),
	}
	if err := Validate(MsgRecord, fields); err != nil {
		t.Fatalf("validate record: %v", err)
	}
}
