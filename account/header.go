// Package account defines the byte layout of a concurrent merkle tree
// account: a fixed header, the tree's own storage region, and the canopy
// region occupying the remainder. The regions are strictly sized so that all
// placement arithmetic can be performed knowing only the header values and
// the account length.
package account

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (

	// Header layout
	//
	// .     | version | flags | reserved | max depth | max buffer | authority | creation slot | reserved |
	// .     |    0    |   1   |   2 - 3  |   4 - 7   |   8 - 11   |  12 - 43  |    44 - 51    | 52 - 63  |
	// bytes |    1    |   1   |     2    |     4     |      4     |     32    |       8       |    12    |
	//
	// The value is versioned by its first byte. The reserved bytes give the
	// format room to grow without a data migration.

	headerVersionByte        = 0
	headerFlagsByte          = 1
	headerMaxDepthFirstByte  = 4
	headerMaxDepthEnd        = headerMaxDepthFirstByte + 4
	headerMaxBufferFirstByte = headerMaxDepthEnd
	headerMaxBufferEnd       = headerMaxBufferFirstByte + 4
	headerAuthorityFirstByte = headerMaxBufferEnd
	headerAuthorityEnd       = headerAuthorityFirstByte + 32
	headerSlotFirstByte      = headerAuthorityEnd
	headerSlotEnd            = headerSlotFirstByte + 8

	HeaderSize = 64

	HeaderCurrentVersion = uint8(1)

	// FlagBatchInitialized marks a tree account created via the batch path:
	// the header exists and the canopy may be prefilled, but the tree itself
	// is not initialized until it is finalized with a root.
	FlagBatchInitialized = uint8(1 << 0)
)

var (
	ErrHeaderShort         = errors.New("too few bytes to hold the account header")
	ErrHeaderVersion       = errors.New("unsupported account header version")
	ErrWrongAuthority      = errors.New("the signing authority does not control this tree")
	ErrLeafIndexOutOfTree  = errors.New("leaf index exceeds the tree capacity")
	ErrNotBatchInitialized = errors.New("the tree account was not created by the batch path")
)

// Header carries the tree account book keeping read and written on every
// instruction.
type Header struct {
	Version       uint8
	Flags         uint8
	MaxDepth      uint32
	MaxBufferSize uint32
	Authority     [32]byte
	CreationSlot  uint64
}

func NewHeader(maxDepth, maxBufferSize uint32, authority [32]byte, creationSlot uint64) Header {
	return Header{
		Version:       HeaderCurrentVersion,
		MaxDepth:      maxDepth,
		MaxBufferSize: maxBufferSize,
		Authority:     authority,
		CreationSlot:  creationSlot,
	}
}

func (h Header) MarshalBinary() ([]byte, error) {
	data := make([]byte, HeaderSize)
	data[headerVersionByte] = h.Version
	data[headerFlagsByte] = h.Flags
	binary.BigEndian.PutUint32(data[headerMaxDepthFirstByte:headerMaxDepthEnd], h.MaxDepth)
	binary.BigEndian.PutUint32(data[headerMaxBufferFirstByte:headerMaxBufferEnd], h.MaxBufferSize)
	copy(data[headerAuthorityFirstByte:headerAuthorityEnd], h.Authority[:])
	binary.BigEndian.PutUint64(data[headerSlotFirstByte:headerSlotEnd], h.CreationSlot)
	return data, nil
}

func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: %d bytes", ErrHeaderShort, len(data))
	}
	if data[headerVersionByte] != HeaderCurrentVersion {
		return fmt.Errorf("%w: version %d", ErrHeaderVersion, data[headerVersionByte])
	}
	h.Version = data[headerVersionByte]
	h.Flags = data[headerFlagsByte]
	h.MaxDepth = binary.BigEndian.Uint32(data[headerMaxDepthFirstByte:headerMaxDepthEnd])
	h.MaxBufferSize = binary.BigEndian.Uint32(data[headerMaxBufferFirstByte:headerMaxBufferEnd])
	copy(h.Authority[:], data[headerAuthorityFirstByte:headerAuthorityEnd])
	h.CreationSlot = binary.BigEndian.Uint64(data[headerSlotFirstByte:headerSlotEnd])
	return nil
}

func (h *Header) SetBatchInitialized() {
	h.Flags |= FlagBatchInitialized
}

func (h Header) IsBatchInitialized() bool {
	return h.Flags&FlagBatchInitialized != 0
}

// AssertValidAuthority fails unless the given key is the tree's write
// authority.
func (h Header) AssertValidAuthority(authority [32]byte) error {
	if h.Authority != authority {
		return ErrWrongAuthority
	}
	return nil
}

// AssertValidLeafIndex fails unless index addresses one of the 2^MaxDepth
// leaves.
func (h Header) AssertValidLeafIndex(index uint32) error {
	if uint64(index) >= uint64(1)<<h.MaxDepth {
		return fmt.Errorf("%w: index %d, depth %d", ErrLeafIndexOutOfTree, index, h.MaxDepth)
	}
	return nil
}

func (h Header) AssertBatchInitialized() error {
	if !h.IsBatchInitialized() {
		return ErrNotBatchInitialized
	}
	return nil
}
