// Package events defines the change log record emitted after every committed
// tree mutation, and the versioned wire form it travels in. The canopy is kept
// synchronized with the tree exclusively through these records.
package events

import (
	"errors"
	"fmt"

	"github.com/treecanopy/go-treecanopy/cmt"
)

var (
	ErrUnknownEventVersion = errors.New("change log event version is not supported")
	ErrMalformedEvent      = errors.New("change log event payload missing for its declared version")
)

// PathNode pairs a full tree node index (root = 1, children of i at 2i and
// 2i+1) with the hash written at that position by a mutation.
type PathNode struct {
	Index uint32   `cbor:"1,keyasint"`
	Node  cmt.Node `cbor:"2,keyasint"`
}

// ChangeLog records the nodes altered by one committed mutation.
//
// Path is ordered leaf to root and has one entry per tree level, so a depth D
// tree produces D+1 entries. Sequence increases by exactly one per committed
// mutation of the tree identified by TreeID.
type ChangeLog struct {
	TreeID    [32]byte   `cbor:"1,keyasint"`
	Path      []PathNode `cbor:"2,keyasint"`
	LeafIndex uint32     `cbor:"3,keyasint"`
	Sequence  uint64     `cbor:"4,keyasint"`
}

// ChangeLogEventVersion1 is the only wire variant in existence. New variants
// must be added here and to every Unwrap call site, the dispatch is required
// to be exhaustive.
const ChangeLogEventVersion1 = uint16(1)

// ChangeLogEvent is the versioned wire envelope for a ChangeLog.
type ChangeLogEvent struct {
	Version uint16     `cbor:"1,keyasint"`
	V1      *ChangeLog `cbor:"2,keyasint,omitempty"`
}

// WrapV1 envelopes a change log in the current wire version.
func WrapV1(cl *ChangeLog) *ChangeLogEvent {
	return &ChangeLogEvent{Version: ChangeLogEventVersion1, V1: cl}
}

// Unwrap returns the change log carried by the event, failing for versions
// this implementation does not know and for envelopes whose payload is
// missing for the version they declare.
func (e *ChangeLogEvent) Unwrap() (*ChangeLog, error) {
	switch e.Version {
	case ChangeLogEventVersion1:
		if e.V1 == nil {
			return nil, fmt.Errorf("%w: v1", ErrMalformedEvent)
		}
		return e.V1, nil
	default:
		return nil, fmt.Errorf("%w: version %d", ErrUnknownEventVersion, e.Version)
	}
}
