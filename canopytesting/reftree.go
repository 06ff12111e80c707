// Package canopytesting provides shared support for tests that need a real
// tree to generate change logs and proofs against: a small in-memory
// reference merkle tree with canonical empty subtree defaults, and a context
// for producing deterministic mutation sequences.
package canopytesting

import (
	"github.com/treecanopy/go-treecanopy/cmt"
	"github.com/treecanopy/go-treecanopy/events"
)

// RefTree is a complete binary merkle tree of fixed depth held fully in
// memory. Positions never written resolve to the canonical empty subtree
// hash of their height, exactly as the production tree defines them, so the
// roots, paths and proofs it produces are canonical from the first mutation.
//
// It is deliberately naive, tests use it as the source of truth the canopy
// is checked against.
type RefTree struct {
	depth   uint32
	nodes   map[int]cmt.Node
	empties cmt.EmptyNodeCache
}

func NewRefTree(depth uint32) *RefTree {
	return &RefTree{depth: depth, nodes: map[int]cmt.Node{}}
}

func (rt *RefTree) Depth() uint32 { return rt.depth }

// Node resolves the hash at a 1 based full tree position.
func (rt *RefTree) Node(node int) cmt.Node {
	if v, ok := rt.nodes[node]; ok {
		return v
	}
	return rt.empties.At(rt.depth - (cmt.BitLength32(uint32(node)) - 1))
}

func (rt *RefTree) Root() cmt.Node { return rt.Node(1) }

// SetLeaf writes the leaf at the given 0 based index and rehashes its
// ancestors. The returned path is ordered leaf to root, one entry per level,
// which is the shape a committed mutation's change log carries.
func (rt *RefTree) SetLeaf(index uint32, leaf cmt.Node) []events.PathNode {
	node := int((uint32(1) << rt.depth) + index)
	rt.nodes[node] = leaf

	path := []events.PathNode{{Index: uint32(node), Node: leaf}}
	for node > 1 {
		parent := node >> 1
		v := cmt.HashNodePair(rt.Node(parent<<1), rt.Node(parent<<1+1))
		rt.nodes[parent] = v
		path = append(path, events.PathNode{Index: uint32(parent), Node: v})
		node = parent
	}
	return path
}

// Proof returns the full depth inclusion proof for the leaf at index,
// ordered leaf adjacent sibling first.
func (rt *RefTree) Proof(index uint32) []cmt.Node {
	var proof []cmt.Node
	for node := int((uint32(1) << rt.depth) + index); node > 1; node >>= 1 {
		proof = append(proof, rt.Node(node^1))
	}
	return proof
}

// FoldProof reduces a leaf and its proof to the root they imply.
func FoldProof(leaf cmt.Node, index uint32, proof []cmt.Node) cmt.Node {
	node := leaf
	for _, sibling := range proof {
		if index&1 == 0 {
			node = cmt.HashNodePair(node, sibling)
		} else {
			node = cmt.HashNodePair(sibling, node)
		}
		index >>= 1
	}
	return node
}
