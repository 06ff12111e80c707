package canopytesting

import (
	"math/rand"
	"testing"

	"github.com/treecanopy/go-treecanopy/cmt"
	"github.com/treecanopy/go-treecanopy/events"
)

type TestConfig struct {
	// We seed the RNG with Seed. It is normal to force it to some fixed value
	// so that the generated data is the same from run to run.
	Seed     int64
	MaxDepth uint32
}

type TestContext struct {
	T    *testing.T
	Cfg  TestConfig
	Rng  *rand.Rand
	Tree *RefTree

	TreeID [32]byte
	seq    uint64
}

func NewTestContext(t *testing.T, cfg TestConfig) *TestContext {
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	c := &TestContext{
		T:    t,
		Cfg:  cfg,
		Rng:  rand.New(rand.NewSource(cfg.Seed)),
		Tree: NewRefTree(cfg.MaxDepth),
	}
	c.Rng.Read(c.TreeID[:])
	return c
}

// RandomLeaf returns a deterministic pseudo random leaf hash, never the Empty
// sentinel.
func (c *TestContext) RandomLeaf() cmt.Node {
	var n cmt.Node
	c.Rng.Read(n[:])
	if n == cmt.Empty {
		n[0] = 1
	}
	return n
}

// MutateLeaf applies a leaf write to the reference tree and returns the
// change log event the committed mutation would emit.
func (c *TestContext) MutateLeaf(index uint32, leaf cmt.Node) *events.ChangeLogEvent {
	path := c.Tree.SetLeaf(index, leaf)
	c.seq++
	return events.WrapV1(&events.ChangeLog{
		TreeID:    c.TreeID,
		Path:      path,
		LeafIndex: index,
		Sequence:  c.seq,
	})
}

// TruncatedProof returns the bottom levels of the full proof for index, the
// portion a caller submits when the top cachedDepth levels are canopy
// resident.
func (c *TestContext) TruncatedProof(index uint32, cachedDepth uint32) []cmt.Node {
	full := c.Tree.Proof(index)
	return append([]cmt.Node{}, full[:c.Cfg.MaxDepth-cachedDepth]...)
}
