// Package borsh adapts the Borsh encoder and decoder from
// github.com/gagliardetto/binary to the request payload.
//
// Fixed-width integers are little-endian at their declared width, byte
// sequences carry a u32 little-endian length prefix, and fixed-size arrays
// are written raw. Reads are bounds-checked up front so short input always
// reports ErrTruncated.
package borsh

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	bin "github.com/gagliardetto/binary"
)

var (
	ErrTruncated = errors.New("borsh: truncated data")
	ErrTooLarge  = errors.New("borsh: byte sequence exceeds u32 length prefix")
)

// Writer appends encoded primitives to an in-memory buffer. The first
// failure sticks and is returned by Output.
type Writer struct {
	buf *bytes.Buffer
	enc *bin.Encoder
	err error
}

func NewWriter(sizeHint int) *Writer {
	buf := bytes.NewBuffer(make([]byte, 0, sizeHint))
	return &Writer{buf: buf, enc: bin.NewBorshEncoder(buf)}
}

func (w *Writer) write(fn func() error) {
	if w.err != nil {
		return
	}
	w.err = fn()
}

func (w *Writer) U8(v uint8) {
	w.write(func() error { return w.enc.WriteUint8(v) })
}

func (w *Writer) U32(v uint32) {
	w.write(func() error { return w.enc.WriteUint32(v, bin.LE) })
}

func (w *Writer) U64(v uint64) {
	w.write(func() error { return w.enc.WriteUint64(v, bin.LE) })
}

// Bytes writes a u32 length prefix followed by b.
func (w *Writer) Bytes(b []byte) {
	w.write(func() error {
		if !FitsPrefix(len(b)) {
			return fmt.Errorf("%w: %d bytes", ErrTooLarge, len(b))
		}
		return w.enc.WriteBytes(b, true)
	})
}

// Fixed writes b raw, with no prefix.
func (w *Writer) Fixed(b []byte) {
	w.write(func() error { return w.enc.WriteBytes(b, false) })
}

// Output returns the encoded bytes or the first write failure.
func (w *Writer) Output() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.buf.Bytes(), nil
}

// FitsPrefix reports whether n is representable by the u32 length prefix.
func FitsPrefix(n int) bool {
	return n >= 0 && uint64(n) <= math.MaxUint32
}

// Reader consumes encoded primitives from a byte slice.
type Reader struct {
	dec *bin.Decoder
}

func NewReader(b []byte) *Reader {
	return &Reader{dec: bin.NewBorshDecoder(b)}
}

func (r *Reader) Remaining() int {
	return r.dec.Remaining()
}

func (r *Reader) need(n int) error {
	if n < 0 || r.dec.Remaining() < n {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, n, r.dec.Remaining())
	}
	return nil
}

func (r *Reader) U8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	return r.dec.ReadUint8()
}

func (r *Reader) U32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	return r.dec.ReadUint32(bin.LE)
}

func (r *Reader) U64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	return r.dec.ReadUint64(bin.LE)
}

// Bytes reads a u32 length prefix and returns a copy of that many bytes.
// A zero-length sequence decodes as nil.
func (r *Reader) Bytes() ([]byte, error) {
	n, err := r.U32()
	if err != nil {
		return nil, err
	}
	if uint64(n) > uint64(r.dec.Remaining()) {
		return nil, fmt.Errorf("%w: length prefix %d, have %d", ErrTruncated, n, r.dec.Remaining())
	}
	if n == 0 {
		return nil, nil
	}
	return r.read(int(n))
}

// Fixed reads exactly n raw bytes into a copy.
func (r *Reader) Fixed(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	return r.read(n)
}

func (r *Reader) read(n int) ([]byte, error) {
	b, err := r.dec.ReadNBytes(n)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(b), nil
}
