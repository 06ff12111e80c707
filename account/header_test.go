package account

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestHeaderRoundTrip(t *testing.T) {
	authority := [32]byte{0xde, 0xad}
	h := NewHeader(14, 64, authority, 123456789)
	h.SetBatchInitialized()

	data, err := h.MarshalBinary()
	assert.NilError(t, err)
	assert.Equal(t, HeaderSize, len(data))

	var got Header
	assert.NilError(t, got.UnmarshalBinary(data))
	assert.DeepEqual(t, h, got)
}

func TestHeaderShortBuffer(t *testing.T) {
	var h Header
	err := h.UnmarshalBinary(make([]byte, HeaderSize-1))
	assert.ErrorIs(t, err, ErrHeaderShort)
}

func TestHeaderBadVersion(t *testing.T) {
	h := NewHeader(3, 8, [32]byte{}, 0)
	data, err := h.MarshalBinary()
	assert.NilError(t, err)
	data[0] = 7

	var got Header
	assert.ErrorIs(t, got.UnmarshalBinary(data), ErrHeaderVersion)
}

func TestHeaderAuthority(t *testing.T) {
	authority := [32]byte{1, 2, 3}
	h := NewHeader(3, 8, authority, 0)

	assert.NilError(t, h.AssertValidAuthority(authority))
	assert.ErrorIs(t, h.AssertValidAuthority([32]byte{9}), ErrWrongAuthority)
}

func TestHeaderLeafIndexBounds(t *testing.T) {
	h := NewHeader(3, 8, [32]byte{}, 0)

	assert.NilError(t, h.AssertValidLeafIndex(0))
	assert.NilError(t, h.AssertValidLeafIndex(7))
	assert.ErrorIs(t, h.AssertValidLeafIndex(8), ErrLeafIndexOutOfTree)
}

func TestHeaderBatchFlag(t *testing.T) {
	h := NewHeader(3, 8, [32]byte{}, 0)
	assert.ErrorIs(t, h.AssertBatchInitialized(), ErrNotBatchInitialized)

	h.SetBatchInitialized()
	assert.NilError(t, h.AssertBatchInitialized())
	assert.Assert(t, h.IsBatchInitialized())
}
