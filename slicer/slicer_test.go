package slicer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/gather/dataflow"
	"github.com/viant/gather/extract"
	"github.com/viant/gather/langast"
	"github.com/viant/gather/langast/langasttest"
	"github.com/viant/gather/libspec"
	"github.com/viant/gather/slicer"
	"github.com/viant/gather/source"
)

func loc(line, col, endLine, endCol int) source.Location {
	return source.New(line, col, endLine, endCol)
}

// singleBlockCFG treats every child of root as one flat statement list
// within a single block, like dataflow's own fallback CFG.
type singleBlockCFG struct{ block *singleBlock }

type singleBlock struct {
	stmts []langast.Node
}

func (b *singleBlock) ID() string                { return "block0" }
func (b *singleBlock) Statements() []langast.Node { return b.stmts }

func (c *singleBlockCFG) Blocks() []langast.Block                    { return []langast.Block{c.block} }
func (c *singleBlockCFG) Entry() langast.Block                       { return c.block }
func (c *singleBlockCFG) Exit() langast.Block                        { return c.block }
func (c *singleBlockCFG) Predecessors(langast.Block) []langast.Block { return nil }
func (c *singleBlockCFG) Successors(langast.Block) []langast.Block   { return nil }
func (c *singleBlockCFG) VisitControlDependencies(func(langast.ControlDependency)) {}

type wholeModuleCFGBuilder struct{}

func (wholeModuleCFGBuilder) Build(root langast.Node) (langast.CFG, error) {
	stmts := make([]langast.Node, 0, root.ChildCount())
	for i := 0; i < root.ChildCount(); i++ {
		stmts = append(stmts, root.Child(i))
	}
	return &singleBlockCFG{block: &singleBlock{stmts: stmts}}, nil
}

func (wholeModuleCFGBuilder) BuildFunctionBody(body langast.Node) (langast.CFG, error) {
	return wholeModuleCFGBuilder{}.Build(body)
}

// TestSlice_BackwardTwoLineAssign reproduces §8 scenario 1: "a = 1\nb =
// a\n", seeded at line 2, accepts lines {1,2}.
func TestSlice_BackwardTwoLineAssign(t *testing.T) {
	a1 := langasttest.New(langast.KindName, "a").At(loc(1, 0, 1, 1))
	one := langasttest.New(langast.KindLiteral, "1").At(loc(1, 4, 1, 5))
	stmt1 := langasttest.New(langast.KindAssign, "").At(loc(1, 0, 1, 5)).Field("left", a1).Field("right", one)

	b1 := langasttest.New(langast.KindName, "b").At(loc(2, 0, 2, 1))
	a2 := langasttest.New(langast.KindName, "a").At(loc(2, 4, 2, 5))
	stmt2 := langasttest.New(langast.KindAssign, "").At(loc(2, 0, 2, 5)).Field("left", b1).Field("right", a2)

	module := langasttest.New(langast.KindModule, "").At(loc(1, 0, 2, 5)).AddChild(stmt1).AddChild(stmt2)

	e := extract.New(libspec.New(), nil)
	analyzer := dataflow.New(e)

	seeds := []source.Location{loc(2, 0, 2, 5)}
	result, err := slicer.Slice(module, seeds, wholeModuleCFGBuilder{}, analyzer, slicer.Backward)
	require.NoError(t, err)

	lines := map[int]bool{}
	for _, l := range result.Locations() {
		lines[l.FirstLine] = true
	}
	assert.True(t, lines[1])
	assert.True(t, lines[2])
	assert.Equal(t, 2, len(lines))
}

// TestSlice_NoSeedUsesWholeInput covers §7's degenerate-seed rule.
func TestSlice_NoSeedUsesWholeInput(t *testing.T) {
	a1 := langasttest.New(langast.KindName, "a").At(loc(1, 0, 1, 1))
	one := langasttest.New(langast.KindLiteral, "1").At(loc(1, 4, 1, 5))
	stmt1 := langasttest.New(langast.KindAssign, "").At(loc(1, 0, 1, 5)).Field("left", a1).Field("right", one)
	module := langasttest.New(langast.KindModule, "").At(loc(1, 0, 1, 5)).AddChild(stmt1)

	e := extract.New(libspec.New(), nil)
	analyzer := dataflow.New(e)

	result, err := slicer.Slice(module, nil, wholeModuleCFGBuilder{}, analyzer, slicer.Backward)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Size())
}
