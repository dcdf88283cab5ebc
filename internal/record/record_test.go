package record

import (
	"errors"
	"testing"

	"github.com/danmuck/nameregistry/internal/identity"
	"github.com/stretchr/testify/require"
)

func TestHeaderLayout(t *testing.T) {
	h := Header{
		Parent: identity.Identity{1},
		Owner:  identity.Identity{2},
		Class:  identity.Identity{3},
	}
	b, err := h.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, HeaderSize)
	require.Equal(t, byte(1), b[0])
	require.Equal(t, byte(2), b[32])
	require.Equal(t, byte(3), b[64])

	out, err := UnmarshalHeader(b)
	require.NoError(t, err)
	require.Equal(t, h, out)
	require.True(t, out.HasParent())
	require.True(t, out.HasClass())
}

func TestHeaderPlaceholderSlots(t *testing.T) {
	h := Header{Owner: identity.Identity{9}}
	require.False(t, h.HasParent())
	require.False(t, h.HasClass())
}

func TestParseRecordSplitsData(t *testing.T) {
	in := Record{Header: Header{Owner: identity.Identity{7}}, Data: []byte("hello")}
	raw, err := in.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, raw, HeaderSize+5)

	out, err := ParseRecord(raw)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestParseRecordHeaderOnly(t *testing.T) {
	out, err := ParseRecord(make([]byte, HeaderSize))
	require.NoError(t, err)
	require.Nil(t, out.Data)
	require.False(t, out.Header.HasParent())
}

func TestUnmarshalHeaderTruncated(t *testing.T) {
	_, err := UnmarshalHeader(make([]byte, HeaderSize-1))
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}
