package canopy

import (
	"github.com/treecanopy/go-treecanopy/cmt"
)

// The index arithmetic for the "complete binary tree without its root" layout
// is centralized here. Everything else in the package goes through these
// helpers rather than inlining the bit tricks.

// slotIndex maps a 1 based full tree position to its canopy slot.
func slotIndex(node int) int {
	return node - 2
}

// siblingSlot returns the slot holding the other child of the slot's parent.
func siblingSlot(slot int) int {
	if slot%2 == 0 {
		return slot + 1
	}
	return slot - 1
}

// leafNodeIndex returns the full tree position of the canopy's own leaf level
// entry for the given 0 based canopy leaf index.
func leafNodeIndex(cachedDepth uint32, index uint32) int {
	return int((uint32(1) << cachedDepth) + index)
}

// boundaryNodeIndex returns the full tree position of the ancestor of
// leafIndex sitting exactly cachedDepth levels below the root, which is where
// a leaf's path crosses the canopy's lower boundary.
func boundaryNodeIndex(maxDepth, cachedDepth, leafIndex uint32) int {
	return int(((uint32(1) << maxDepth) + leafIndex) >> (maxDepth - cachedDepth))
}

// nodeLevel returns the height of the subtree rooted at the given full tree
// position, for a tree of depth maxDepth.
func nodeLevel(maxDepth uint32, node int) uint32 {
	return maxDepth - (cmt.BitLength32(uint32(node)) - 1)
}

func getNode(canopyData []byte, slot int) cmt.Node {
	var n cmt.Node
	copy(n[:], canopyData[slot*cmt.NodeBytes:(slot+1)*cmt.NodeBytes])
	return n
}

func setNode(canopyData []byte, slot int, n cmt.Node) {
	copy(canopyData[slot*cmt.NodeBytes:(slot+1)*cmt.NodeBytes], n[:])
}

// resolveNode reads the canopy value for a full tree position, substituting
// the canonical empty subtree hash for slots that have never been written.
func resolveNode(canopyData []byte, node int, level uint32, empties *cmt.EmptyNodeCache) cmt.Node {
	if v := getNode(canopyData, slotIndex(node)); v != cmt.Empty {
		return v
	}
	return empties.At(level)
}
