// Package canopy maintains a cache of the upper N levels of a concurrent
// merkle tree, stored as a flat array of nodes at the tail of the tree's
// account.
//
// Caching the upper N levels of a depth D tree lets callers truncate their
// merkle proofs to the first D - N nodes. Transaction payloads have a hard
// size ceiling, so without the canopy a deep tree could not be modified at
// all: a full proof for depth 31 simply does not fit.
//
// The canopy region must be allocated with the tree account and sized as
// (2^(N+1) - 2) * 32 bytes for the chosen N. It is refreshed from the change
// log of every committed mutation, see Update, and it is consulted to expand
// truncated proofs back to the full tree depth, see FillInProof. Slots that
// no mutation path has ever crossed hold the Empty sentinel and are resolved
// to the canonical empty subtree hash of the corresponding height.
//
// The canopy is laid out as a complete binary tree with the root omitted.
// Positions use the 1 based full tree indexing, root = 1 with the children of
// i at 2i and 2i+1, and the slot for position i is i - 2. Siblings therefore
// always occupy adjacent slots:
//
//	          1            (never stored)
//	       /     \
//	      2       3        slots  0  1
//	    /   \   /   \
//	   4    5   6    7     slots  2  3  4  5
//
// Every operation validates the region length before touching it, so a
// mis-sized canopy fails closed with ErrLengthMismatch.
package canopy
