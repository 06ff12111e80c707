package canopy

import (
	"errors"
	"fmt"

	"github.com/treecanopy/go-treecanopy/cmt"
	"github.com/treecanopy/go-treecanopy/events"
)

var (
	// ErrLengthMismatch covers every way the canopy region can disagree with
	// the tree layout: a byte length that is not a whole number of nodes, a
	// node count that is not 2 less than a power of 2, and a cached depth
	// exceeding the depth of the tree itself. None of these are recoverable,
	// the account was created with the wrong size.
	ErrLengthMismatch = errors.New("canopy length inconsistent with the tree layout")

	ErrRootMismatch         = errors.New("canopy root does not match the expected root")
	ErrNodeRightOfRightmost = errors.New("canopy holds a node to the right of the rightmost leaf")
)

// CheckCanopyBytes fails unless the canopy region is a whole number of nodes.
func CheckCanopyBytes(canopyData []byte) error {
	if len(canopyData)%cmt.NodeBytes != 0 {
		return fmt.Errorf(
			"%w: byte length %d is not a multiple of %d",
			ErrLengthMismatch, len(canopyData), cmt.NodeBytes)
	}
	return nil
}

// CachedDepth derives the number of cached levels N from the canopy region
// length. The canopy holds a complete binary tree without its root, so the
// node count must be 2^(N+1) - 2 and N may not exceed the tree depth.
//
// An empty region is the valid "no caching" configuration and yields 0.
func CachedDepth(canopyData []byte, maxDepth uint32) (uint32, error) {
	if err := CheckCanopyBytes(canopyData); err != nil {
		return 0, err
	}
	// node count + 2 restores the root's slot, making a full power of 2
	p := uint32(len(canopyData)/cmt.NodeBytes) + 2
	if !cmt.IsPow2(p) {
		return 0, fmt.Errorf(
			"%w: node count %d is not 2 less than a power of 2",
			ErrLengthMismatch, p-2)
	}
	// (1 << (maxDepth+1)) - 2 is the node count of the full tree without its
	// root, the canopy cannot cache more than that
	if uint64(p) > uint64(1)<<(maxDepth+1) {
		return 0, fmt.Errorf(
			"%w: %d cached nodes exceed the %d supported by a depth %d tree",
			ErrLengthMismatch, p-2, (uint64(1)<<(maxDepth+1))-2, maxDepth)
	}
	return cmt.Log2Uint32(p) - 1, nil
}

// Update refreshes the canopy from the change log of the most recently
// committed mutation. The top N non root entries of the mutation's path are
// written to their slots; everything off that single root to leaf path is
// left untouched. Over repeated calls this incrementally backfills the cache.
//
// A nil event is a validated no-op, callers take that path when no mutation
// occurred (tree creation).
func Update(canopyData []byte, maxDepth uint32, event *events.ChangeLogEvent) error {
	cachedDepth, err := CachedDepth(canopyData, maxDepth)
	if err != nil {
		return err
	}
	if event == nil {
		return nil
	}
	cl, err := event.Unwrap()
	if err != nil {
		return err
	}
	// The path is ordered leaf to root and the root is never cached. Walk it
	// from the root end, skip the root, and write the next cachedDepth
	// entries.
	for i := 0; i < int(cachedDepth) && i+1 < len(cl.Path); i++ {
		pn := cl.Path[len(cl.Path)-2-i]
		if pn.Index < 2 || int(pn.Index)-2 >= len(canopyData)/cmt.NodeBytes {
			return fmt.Errorf(
				"%w: path node index %d is outside the cached levels",
				events.ErrMalformedEvent, pn.Index)
		}
		setNode(canopyData, slotIndex(int(pn.Index)), pn.Node)
	}
	return nil
}

// FillInProof extends a truncated proof to the full tree depth using the
// canopy. The caller supplies the bottom maxDepth - N levels; this walks from
// where the leaf's path crosses the canopy boundary up to one step below the
// root, collecting the sibling at each level. Siblings whose slot was never
// written resolve to the canonical empty subtree hash of their height.
//
// When the caller's proof already overlaps levels the canopy can infer, the
// surplus is dropped from the near leaf end of the inferred segment, never
// from the caller's proof. This preserves the leaf to root concatenation
// order the tree verifier expects. On success with sufficient input,
// len(*proof) is exactly maxDepth.
func FillInProof(canopyData []byte, maxDepth uint32, leafIndex uint32, proof *[]cmt.Node) error {
	cachedDepth, err := CachedDepth(canopyData, maxDepth)
	if err != nil {
		return err
	}

	var empties cmt.EmptyNodeCache
	var inferred []cmt.Node

	node := boundaryNodeIndex(maxDepth, cachedDepth, leafIndex)
	for node > 1 {
		sibling := siblingSlot(slotIndex(node))
		value := getNode(canopyData, sibling)
		if value == cmt.Empty {
			value = empties.At(nodeLevel(maxDepth, node))
		}
		inferred = append(inferred, value)
		node >>= 1
	}

	overlap := len(*proof) + len(inferred) - int(maxDepth)
	if overlap < 0 {
		overlap = 0
	}
	if overlap > len(inferred) {
		overlap = len(inferred)
	}
	*proof = append(*proof, inferred[overlap:]...)
	return nil
}
