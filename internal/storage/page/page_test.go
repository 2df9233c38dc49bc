package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageIsZeroedAndStamped(t *testing.T) {
	p := New(7)
	assert.Equal(t, ID(7), p.PageNumber())
	for _, b := range p.Data {
		require.Zero(t, b)
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	p := New(42)
	copy(p.Data[:5], []byte("hello"))

	buf := p.Serialize()
	require.Len(t, buf, Size)

	got, err := Deserialize(buf)
	require.NoError(t, err)
	assert.Equal(t, ID(42), got.PageNumber())
	assert.Equal(t, []byte("hello"), got.Data[:5])
}

func TestDeserializeRejectsShortBuffer(t *testing.T) {
	_, err := Deserialize(make([]byte, Size-1))
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestDeserializeRejectsChecksumMismatch(t *testing.T) {
	p := New(1)
	buf := p.Serialize()
	buf[headerSize] ^= 0xFF // corrupt payload without touching the stored checksum

	_, err := Deserialize(buf)
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestSetPageNumber(t *testing.T) {
	p := New(InvalidID)
	p.SetPageNumber(9)
	assert.Equal(t, ID(9), p.PageNumber())
}
