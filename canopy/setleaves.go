package canopy

import (
	"fmt"

	"github.com/treecanopy/go-treecanopy/cmt"
)

// SetLeafNodes writes nodes into the lowest cached level of the canopy,
// starting at the 0 based canopy leaf index startIndex, then recomputes the
// parents of every modified subtree up to the top cached level. Unset
// siblings encountered on the way up resolve to canonical empty subtree
// hashes.
//
// This is the batch prefill path used when a tree is created from an existing
// root: the canopy must be populated before the tree is finalized, and it may
// be filled across several calls in any order. An empty nodes slice is a
// validated no-op.
func SetLeafNodes(canopyData []byte, maxDepth uint32, startIndex uint32, nodes []cmt.Node) error {
	cachedDepth, err := CachedDepth(canopyData, maxDepth)
	if err != nil {
		return err
	}
	if len(nodes) == 0 {
		return nil
	}
	if cachedDepth == 0 {
		return fmt.Errorf("%w: the canopy has no cached levels to write", ErrLengthMismatch)
	}
	if uint64(startIndex)+uint64(len(nodes)) > uint64(1)<<cachedDepth {
		return fmt.Errorf(
			"%w: %d nodes at index %d overflow the %d cached leaves",
			ErrLengthMismatch, len(nodes), startIndex, uint64(1)<<cachedDepth)
	}

	startNode := leafNodeIndex(cachedDepth, startIndex)
	for i, n := range nodes {
		setNode(canopyData, slotIndex(startNode+i), n)
	}

	endNode := startNode + len(nodes) - 1
	leafLevel := maxDepth - cachedDepth

	var empties cmt.EmptyNodeCache
	for level := leafLevel + 1; level < maxDepth; level++ {
		startNode >>= 1
		endNode >>= 1
		for node := startNode; node <= endNode; node++ {
			left := resolveNode(canopyData, node<<1, level-1, &empties)
			right := resolveNode(canopyData, node<<1+1, level-1, &empties)
			setNode(canopyData, slotIndex(node), cmt.HashNodePair(left, right))
		}
	}
	return nil
}

// CheckRoot recomputes the tree root from the top cached level and fails
// unless it matches expectedRoot. Never written top slots resolve to empty
// subtree hashes, so a partially prefilled canopy is checked against exactly
// what it implies. A zero depth canopy has nothing to check.
func CheckRoot(canopyData []byte, expectedRoot cmt.Node, maxDepth uint32) error {
	cachedDepth, err := CachedDepth(canopyData, maxDepth)
	if err != nil {
		return err
	}
	if cachedDepth == 0 {
		return nil
	}

	var empties cmt.EmptyNodeCache
	left := resolveNode(canopyData, 2, maxDepth-1, &empties)
	right := resolveNode(canopyData, 3, maxDepth-1, &empties)

	if root := cmt.HashNodePair(left, right); root != expectedRoot {
		return fmt.Errorf("%w: computed %x expected %x", ErrRootMismatch, root, expectedRoot)
	}
	return nil
}

// CheckNoNodesRightOfIndex fails if any cached slot strictly to the right of
// rightmostIndex's path holds a written value. A canopy prefilled for a tree
// whose rightmost leaf is at rightmostIndex must be empty beyond that path on
// every cached level, otherwise the prefill described leaves the tree does
// not have.
func CheckNoNodesRightOfIndex(canopyData []byte, maxDepth uint32, rightmostIndex uint32) error {
	cachedDepth, err := CachedDepth(canopyData, maxDepth)
	if err != nil {
		return err
	}

	node := boundaryNodeIndex(maxDepth, cachedDepth, rightmostIndex)
	for node > 1 {
		// a position of all ones is the rightmost of its level, nothing to
		// check there
		if uint32(node)&(uint32(node)+1) != 0 {
			levelEnd := 1<<cmt.BitLength32(uint32(node)) - 1
			for right := node + 1; right <= levelEnd; right++ {
				if getNode(canopyData, slotIndex(right)) != cmt.Empty {
					return fmt.Errorf("%w: node %d is set", ErrNodeRightOfRightmost, right)
				}
			}
		}
		node >>= 1
	}
	return nil
}
