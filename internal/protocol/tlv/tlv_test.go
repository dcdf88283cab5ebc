package tlv

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeDecodeFieldsRoundTripPreservesUnknown(t *testing.T) {
	in := []Field{
		Bytes(1, []byte("program")),
		{ID: 9999, Type: TypeBytes, Value: []byte{0xAA, 0xBB}}, // unknown field id
	}
	b, err := EncodeFields(in)
	if err != nil {
		t.Fatalf("encode fields: %v", err)
	}
	out, err := DecodeFields(b)
	if err != nil {
		t.Fatalf("decode fields: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(out))
	}
	if out[1].ID != 9999 || out[1].Type != TypeBytes || !bytes.Equal(out[1].Value, []byte{0xAA, 0xBB}) {
		t.Fatalf("unknown field not preserved: %+v", out[1])
	}
}

func TestDecodeFieldsMalformedHeaderIsDeterministic(t *testing.T) {
	_, err := DecodeFields([]byte{1, 2, 3})
	if !errors.Is(err, ErrShortFieldHeader) {
		t.Fatalf("expected ErrShortFieldHeader, got %v", err)
	}
}

func TestDecodeFieldsMalformedLengthIsDeterministic(t *testing.T) {
	// id=1, type=bytes, len=5, value only 2 bytes
	payload := []byte{0, 1, TypeBytes, 0, 0, 0, 5, 'a', 'b'}
	_, err := DecodeFields(payload)
	if !errors.Is(err, ErrShortFieldValue) {
		t.Fatalf("expected ErrShortFieldValue, got %v", err)
	}
}

func TestTypedAccessors(t *testing.T) {
	v, err := U8(4, 3).AsU8()
	if err != nil || v != 3 {
		t.Fatalf("u8: %d %v", v, err)
	}
	w, err := U64(5, 1<<40).AsU64()
	if err != nil || w != 1<<40 {
		t.Fatalf("u64: %d %v", w, err)
	}
	if _, err := Bytes(6, nil).AsU8(); err == nil {
		t.Fatalf("expected type mismatch")
	}
}

func TestBytesCopiesInput(t *testing.T) {
	src := []byte{1, 2}
	f := Bytes(1, src)
	src[0] = 9
	if f.Value[0] != 1 {
		t.Fatalf("field aliases caller buffer")
	}
}

func TestEncodeFieldsLayout(t *testing.T) {
	b, err := EncodeFields([]Field{U8(0x0102, 9), U64(3, 0x0A0B), Bytes(4, nil)})
	if err != nil {
		t.Fatalf("encode fields: %v", err)
	}
	want := []byte{
		0x01, 0x02, TypeU8, 0, 0, 0, 1, 9,
		0, 3, TypeU64, 0, 0, 0, 8, 0, 0, 0, 0, 0, 0, 0x0A, 0x0B,
		0, 4, TypeBytes, 0, 0, 0, 0,
	}
	if !bytes.Equal(b, want) {
		t.Fatalf("layout mismatch:\n got=%x\nwant=%x", b, want)
	}
	out, err := DecodeFields(b)
	if err != nil {
		t.Fatalf("decode fields: %v", err)
	}
	if len(out) != 3 || len(out[2].Value) != 0 {
		t.Fatalf("unexpected fields: %+v", out)
	}
}
