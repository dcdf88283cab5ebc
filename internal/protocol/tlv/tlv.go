// Package tlv owns the field encoding of submission envelope payloads:
// id(u16 BE) | type(u8) | len(u32 BE) | value.
package tlv

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	bin "github.com/gagliardetto/binary"
)

const HeaderLen = 7

var (
	ErrShortFieldHeader = errors.New("tlv: short field header")
	ErrShortFieldValue  = errors.New("tlv: short field value")
	ErrValueTooLarge    = errors.New("tlv: value exceeds u32 length")
)

// Type IDs. Gaps are reserved.
const (
	TypeU8    uint8 = 1
	TypeU64   uint8 = 4
	TypeBytes uint8 = 7
)

// Field is one decoded TLV field.
type Field struct {
	ID    uint16
	Type  uint8
	Value []byte
}

func U8(id uint16, v uint8) Field {
	return Field{ID: id, Type: TypeU8, Value: []byte{v}}
}

func U64(id uint16, v uint64) Field {
	var buf bytes.Buffer
	// writes to a bytes.Buffer cannot fail
	_ = bin.NewBinEncoder(&buf).WriteUint64(v, bin.BE)
	return Field{ID: id, Type: TypeU64, Value: buf.Bytes()}
}

func Bytes(id uint16, v []byte) Field {
	return Field{ID: id, Type: TypeBytes, Value: bytes.Clone(v)}
}

func EncodeFields(fields []Field) ([]byte, error) {
	size := 0
	for _, f := range fields {
		if uint64(len(f.Value)) > math.MaxUint32 {
			return nil, fmt.Errorf("%w: field %d", ErrValueTooLarge, f.ID)
		}
		size += HeaderLen + len(f.Value)
	}
	var buf bytes.Buffer
	buf.Grow(size)
	enc := bin.NewBinEncoder(&buf)
	for _, f := range fields {
		if err := writeField(enc, f); err != nil {
			return nil, fmt.Errorf("tlv: write field %d: %w", f.ID, err)
		}
	}
	return buf.Bytes(), nil
}

func writeField(enc *bin.Encoder, f Field) error {
	if err := enc.WriteUint16(f.ID, bin.BE); err != nil {
		return err
	}
	if err := enc.WriteUint8(f.Type); err != nil {
		return err
	}
	if err := enc.WriteUint32(uint32(len(f.Value)), bin.BE); err != nil {
		return err
	}
	return enc.WriteBytes(f.Value, false)
}

func DecodeFields(payload []byte) ([]Field, error) {
	fields := make([]Field, 0, 4)
	dec := bin.NewBinDecoder(payload)
	for dec.Remaining() > 0 {
		if dec.Remaining() < HeaderLen {
			return nil, ErrShortFieldHeader
		}
		f, err := readField(dec)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func readField(dec *bin.Decoder) (Field, error) {
	var (
		f   Field
		err error
	)
	if f.ID, err = dec.ReadUint16(bin.BE); err != nil {
		return Field{}, err
	}
	if f.Type, err = dec.ReadUint8(); err != nil {
		return Field{}, err
	}
	l, err := dec.ReadUint32(bin.BE)
	if err != nil {
		return Field{}, err
	}
	if uint64(dec.Remaining()) < uint64(l) {
		return Field{}, fmt.Errorf("%w: field %d wants %d bytes", ErrShortFieldValue, f.ID, l)
	}
	if l == 0 {
		return f, nil
	}
	val, err := dec.ReadNBytes(int(l))
	if err != nil {
		return Field{}, err
	}
	f.Value = bytes.Clone(val)
	return f, nil
}

// GetField returns the first field with id.
func GetField(fields []Field, id uint16) (Field, bool) {
	for _, f := range fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

func MustType(f Field, expected uint8) error {
	if f.Type != expected {
		return fmt.Errorf("tlv: field %d type mismatch: got %d want %d", f.ID, f.Type, expected)
	}
	return nil
}

func (f Field) AsU8() (uint8, error) {
	if err := MustType(f, TypeU8); err != nil {
		return 0, err
	}
	if len(f.Value) != 1 {
		return 0, fmt.Errorf("tlv: invalid u8 length: %d", len(f.Value))
	}
	return f.Value[0], nil
}

func (f Field) AsU64() (uint64, error) {
	if err := MustType(f, TypeU64); err != nil {
		return 0, err
	}
	if len(f.Value) != 8 {
		return 0, fmt.Errorf("tlv: invalid u64 length: %d", len(f.Value))
	}
	return bin.NewBinDecoder(f.Value).ReadUint64(bin.BE)
}
