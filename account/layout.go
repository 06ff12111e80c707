package account

import (
	"errors"
	"fmt"

	"github.com/treecanopy/go-treecanopy/cmt"
)

// The tree storage region holds the concurrent tree's sequence counter,
// active change log index and buffer fill count, followed by the change log
// ring and the rightmost path record. Every record is padded to an 8 byte
// boundary. The sizes are derived at runtime from the header's (max depth,
// max buffer size) pair, so any combination within range is supported without
// enumerating them.

const (
	treeFixedFieldBytes = 3 * 8

	// index field plus padding, trailing every path record
	recordTrailerBytes = 8
)

var ErrAccountTooSmall = errors.New("account data cannot hold the regions its header describes")

// changeLogRecordSize is the byte size of one change log ring entry: the root
// it produced, one path node per level, and the leaf index trailer.
func changeLogRecordSize(maxDepth uint32) int {
	return cmt.NodeBytes + int(maxDepth)*cmt.NodeBytes + recordTrailerBytes
}

// rightmostRecordSize is the byte size of the rightmost path record: a full
// proof, the rightmost leaf, and the leaf index trailer.
func rightmostRecordSize(maxDepth uint32) int {
	return int(maxDepth)*cmt.NodeBytes + cmt.NodeBytes + recordTrailerBytes
}

// TreeStoreSize returns the byte size of the tree storage region for a tree
// parameterized by maxDepth and maxBufferSize.
func TreeStoreSize(maxDepth, maxBufferSize uint32) int {
	return treeFixedFieldBytes +
		int(maxBufferSize)*changeLogRecordSize(maxDepth) +
		rightmostRecordSize(maxDepth)
}

// CanopySize returns the byte size of a canopy region caching cachedDepth
// levels: a complete binary tree without its root.
func CanopySize(cachedDepth uint32) int {
	return ((1 << (cachedDepth + 1)) - 2) * cmt.NodeBytes
}

// AccountSize returns the total account allocation for the given tree
// parameters and canopy depth.
func AccountSize(maxDepth, maxBufferSize, cachedDepth uint32) int {
	return HeaderSize + TreeStoreSize(maxDepth, maxBufferSize) + CanopySize(cachedDepth)
}

// ReadHeader decodes the header region of account data.
func ReadHeader(data []byte) (Header, error) {
	h := Header{}
	if err := h.UnmarshalBinary(data); err != nil {
		return Header{}, err
	}
	return h, nil
}

// SplitAccount divides account data into the tree storage and canopy regions
// described by the header. The canopy region is whatever remains after the
// fixed regions; its own validity is the canopy package's concern. The
// returned slices alias data.
func SplitAccount(data []byte, h Header) (treeData []byte, canopyData []byte, err error) {
	treeSize := TreeStoreSize(h.MaxDepth, h.MaxBufferSize)
	if len(data) < HeaderSize+treeSize {
		return nil, nil, fmt.Errorf(
			"%w: have %d bytes, header and tree need %d",
			ErrAccountTooSmall, len(data), HeaderSize+treeSize)
	}
	rest := data[HeaderSize:]
	return rest[:treeSize], rest[treeSize:], nil
}
