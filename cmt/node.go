// Package cmt provides the node primitives shared by the concurrent merkle
// tree account format and the canopy cache: the fixed width hash value, the
// canonical empty subtree hashes, and the small amount of bit arithmetic the
// index calculations rest on.
package cmt

import (
	"golang.org/x/crypto/sha3"
)

// NodeBytes defines the width of every node in the tree and the canopy. This
// fixed width makes it possible to derive the cached depth of a canopy region
// from nothing but its byte length.
const NodeBytes = 32

// Node is an opaque 32 byte hash value. No structural interpretation is
// imposed beyond equality with Empty.
type Node [NodeBytes]byte

// Empty is the distinguished sentinel held by every canopy slot from
// allocation until its first write.
var Empty = Node{}

// HashNodePair returns keccak256(left || right), the interior node committing
// to the two children.
func HashNodePair(left, right Node) Node {
	h := sha3.NewLegacyKeccak256()
	h.Write(left[:])
	h.Write(right[:])
	var n Node
	copy(n[:], h.Sum(nil))
	return n
}

// EmptyNode returns the canonical hash of an empty subtree of the given
// height. Height 0 is the Empty sentinel itself, and each height above is the
// pair hash of the height below:
//
//	e(0) = Empty
//	e(n) = keccak256(e(n-1) || e(n-1))
//
// Callers resolving many heights should prefer an EmptyNodeCache.
func EmptyNode(level uint32) Node {
	var c EmptyNodeCache
	return c.At(level)
}

// EmptyNodeCache memoizes the empty subtree hash ladder. The zero value is
// ready to use. The cache holds no state beyond the deterministic ladder, so
// instances are cheap and must not be shared between goroutines.
type EmptyNodeCache struct {
	ladder []Node
}

// At returns the canonical empty subtree hash for the given height, computing
// and retaining any rungs of the ladder not yet materialized.
func (c *EmptyNodeCache) At(level uint32) Node {
	if len(c.ladder) == 0 {
		c.ladder = append(c.ladder, Empty)
	}
	for uint32(len(c.ladder)) <= level {
		prev := c.ladder[len(c.ladder)-1]
		c.ladder = append(c.ladder, HashNodePair(prev, prev))
	}
	return c.ladder[level]
}
