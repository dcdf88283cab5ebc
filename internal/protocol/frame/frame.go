// Package frame owns the fixed-header framing of submission envelopes.
//
// Wire layout, big-endian:
//
//	magic u32 | version u16 | message_id u64 | message_type u32 | payload_len u32 | payload
package frame

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	bin "github.com/gagliardetto/binary"
)

const (
	// Magic is "NREG" big-endian.
	Magic     uint32 = 0x4E524547
	Version   uint16 = 1
	HeaderLen        = 22
)

var (
	ErrShortHeader        = errors.New("frame: short header")
	ErrShortPayload       = errors.New("frame: short payload")
	ErrInvalidMagic       = errors.New("frame: invalid magic")
	ErrUnsupportedVersion = errors.New("frame: unsupported version")
	ErrPayloadTooLarge    = errors.New("frame: payload too large")
)

// Header is the fixed wire header. Magic, Version and PayloadLen are stamped
// by WriteFrame.
type Header struct {
	Magic       uint32
	Version     uint16
	MessageID   uint64
	MessageType uint32
	PayloadLen  uint32
}

// Frame is one submission message: a header and its TLV payload.
type Frame struct {
	Header  Header
	Payload []byte
}

// Limits bounds the payload a reader will allocate or a writer will emit.
type Limits struct {
	MaxPayloadBytes uint32
}

// DefaultLimits bounds payloads at the host's 10 MiB account size ceiling
// plus envelope overhead.
func DefaultLimits() Limits {
	return Limits{MaxPayloadBytes: 10*1024*1024 + 64*1024}
}

func ReadFrame(r io.Reader, limits Limits) (Frame, error) {
	var fixed [HeaderLen]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return Frame{}, ErrShortHeader
		}
		return Frame{}, err
	}
	h, err := decodeHeader(fixed[:])
	if err != nil {
		return Frame{}, err
	}
	if h.Magic != Magic {
		return Frame{}, fmt.Errorf("%w: %#x", ErrInvalidMagic, h.Magic)
	}
	if h.Version != Version {
		return Frame{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if h.PayloadLen > limits.MaxPayloadBytes {
		return Frame{}, fmt.Errorf("%w: %d > %d", ErrPayloadTooLarge, h.PayloadLen, limits.MaxPayloadBytes)
	}

	payload := make([]byte, h.PayloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return Frame{}, fmt.Errorf("%w: want %d bytes", ErrShortPayload, h.PayloadLen)
		}
		return Frame{}, err
	}
	return Frame{Header: h, Payload: payload}, nil
}

// WriteFrame stamps magic, version and payload length before writing f.
func WriteFrame(w io.Writer, f Frame, limits Limits) error {
	if uint64(len(f.Payload)) > uint64(limits.MaxPayloadBytes) {
		return fmt.Errorf("%w: %d > %d", ErrPayloadTooLarge, len(f.Payload), limits.MaxPayloadBytes)
	}
	h := f.Header
	h.Magic = Magic
	h.Version = Version
	h.PayloadLen = uint32(len(f.Payload))

	// header and payload go out in one write
	var buf bytes.Buffer
	buf.Grow(HeaderLen + len(f.Payload))
	if err := encodeHeader(bin.NewBinEncoder(&buf), h); err != nil {
		return err
	}
	buf.Write(f.Payload)
	_, err := w.Write(buf.Bytes())
	return err
}

func encodeHeader(enc *bin.Encoder, h Header) error {
	if err := enc.WriteUint32(h.Magic, bin.BE); err != nil {
		return err
	}
	if err := enc.WriteUint16(h.Version, bin.BE); err != nil {
		return err
	}
	if err := enc.WriteUint64(h.MessageID, bin.BE); err != nil {
		return err
	}
	if err := enc.WriteUint32(h.MessageType, bin.BE); err != nil {
		return err
	}
	return enc.WriteUint32(h.PayloadLen, bin.BE)
}

func decodeHeader(b []byte) (Header, error) {
	if len(b) != HeaderLen {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrShortHeader, len(b))
	}
	dec := bin.NewBinDecoder(b)
	var (
		h   Header
		err error
	)
	if h.Magic, err = dec.ReadUint32(bin.BE); err != nil {
		return Header{}, err
	}
	if h.Version, err = dec.ReadUint16(bin.BE); err != nil {
		return Header{}, err
	}
	if h.MessageID, err = dec.ReadUint64(bin.BE); err != nil {
		return Header{}, err
	}
	if h.MessageType, err = dec.ReadUint32(bin.BE); err != nil {
		return Header{}, err
	}
	if h.PayloadLen, err = dec.ReadUint32(bin.BE); err != nil {
		return Header{}, err
	}
	return h, nil
}
