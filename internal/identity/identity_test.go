package identity

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlaceholderIsAllZero(t *testing.T) {
	for i, b := range Placeholder {
		if b != 0 {
			t.Fatalf("placeholder byte %d = %d", i, b)
		}
	}
	if !Placeholder.IsPlaceholder() {
		t.Fatalf("expected placeholder")
	}
	if Placeholder.String() != strings.Repeat("1", Size) {
		t.Fatalf("unexpected placeholder text: %q", Placeholder.String())
	}
}

func TestSystemProgramConstant(t *testing.T) {
	require.Equal(t, "11111111111111111111111111111111", SystemProgram.String())
	require.Equal(t, Placeholder, SystemProgram)
}

func TestParseRoundTrip(t *testing.T) {
	var id Identity
	for i := range id {
		id[i] = byte(i + 1)
	}
	parsed, err := Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
	require.False(t, parsed.IsPlaceholder())
}

func TestParseRejectsBadInput(t *testing.T) {
	_, err := Parse("")
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding, got %v", err)
	}
	_, err = Parse("0OIl")
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding, got %v", err)
	}
	_, err = Parse("2g")
	if !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}

func TestFromBytesLength(t *testing.T) {
	_, err := FromBytes(make([]byte, 31))
	if !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
	id, err := FromBytes(make([]byte, Size))
	require.NoError(t, err)
	require.True(t, id.IsPlaceholder())
}

func TestBytesReturnsCopy(t *testing.T) {
	id := Identity{1, 2, 3}
	b := id.Bytes()
	b[0] = 9
	require.Equal(t, byte(1), id[0])
}

func TestTextMarshalling(t *testing.T) {
	id := Identity{0xAB, 0xCD}
	text, err := id.MarshalText()
	require.NoError(t, err)

	var out Identity
	require.NoError(t, out.UnmarshalText(text))
	require.Equal(t, id, out)
}
