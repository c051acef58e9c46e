package dataflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/gather/dataflow"
	"github.com/viant/gather/extract"
	"github.com/viant/gather/langast"
	"github.com/viant/gather/langast/langasttest"
	"github.com/viant/gather/libspec"
	"github.com/viant/gather/ref"
	"github.com/viant/gather/source"
)

func loc(line, col, endLine, endCol int) source.Location {
	return source.New(line, col, endLine, endCol)
}

// straightLineCFG wraps a flat statement list into one block, mirroring
// the production fallback used when no real CFGBuilder is configured.
type straightLineCFG struct{ block *straightLineBlock }

type straightLineBlock struct {
	id    string
	stmts []langast.Node
}

func (b *straightLineBlock) ID() string                { return b.id }
func (b *straightLineBlock) Statements() []langast.Node { return b.stmts }

func (c *straightLineCFG) Blocks() []langast.Block                        { return []langast.Block{c.block} }
func (c *straightLineCFG) Entry() langast.Block                           { return c.block }
func (c *straightLineCFG) Exit() langast.Block                            { return c.block }
func (c *straightLineCFG) Predecessors(langast.Block) []langast.Block     { return nil }
func (c *straightLineCFG) Successors(langast.Block) []langast.Block       { return nil }
func (c *straightLineCFG) VisitControlDependencies(func(langast.ControlDependency)) {}

func newStraightLineCFG(stmts ...langast.Node) langast.CFG {
	return &straightLineCFG{block: &straightLineBlock{id: "b0", stmts: stmts}}
}

func simpleAssign(name string, nameLoc source.Location, stmtLoc source.Location, rhs *langasttest.Node) *langasttest.Node {
	target := langasttest.New(langast.KindName, name).At(nameLoc)
	return langasttest.New(langast.KindAssign, "").At(stmtLoc).Field("left", target).Field("right", rhs)
}

// TestAnalyze_ReachingDefinitionEdge covers the minimal two-statement
// reaching-definitions case: "a = 1; b = a" produces one edge connecting
// the two statements.
func TestAnalyze_ReachingDefinitionEdge(t *testing.T) {
	one := langasttest.New(langast.KindLiteral, "1").At(loc(1, 4, 1, 5))
	stmt1 := simpleAssign("a", loc(1, 0, 1, 1), loc(1, 0, 1, 5), one)

	aUse := langasttest.New(langast.KindName, "a").At(loc(2, 4, 2, 5))
	stmt2 := simpleAssign("b", loc(2, 0, 2, 1), loc(2, 0, 2, 5), aUse)

	cfg := newStraightLineCFG(stmt1, stmt2)
	e := extract.New(libspec.New(), nil)
	a := dataflow.New(e)

	edges, undefined := a.Analyze(cfg, nil)
	require.True(t, undefined.Empty())
	require.Len(t, edges, 1)
	assert.Equal(t, stmt1.Location(), edges[0].From.Location())
	assert.Equal(t, stmt2.Location(), edges[0].To.Location())
}

// TestAnalyze_RedefinitionKillsPriorEdge covers shadowing: "a = 1; a =
// 2; b = a" must connect b's use only to the second definition.
func TestAnalyze_RedefinitionKillsPriorEdge(t *testing.T) {
	one := langasttest.New(langast.KindLiteral, "1").At(loc(1, 4, 1, 5))
	stmt1 := simpleAssign("a", loc(1, 0, 1, 1), loc(1, 0, 1, 5), one)

	two := langasttest.New(langast.KindLiteral, "2").At(loc(2, 4, 2, 5))
	stmt2 := simpleAssign("a", loc(2, 0, 2, 1), loc(2, 0, 2, 5), two)

	aUse := langasttest.New(langast.KindName, "a").At(loc(3, 4, 3, 5))
	stmt3 := simpleAssign("b", loc(3, 0, 3, 1), loc(3, 0, 3, 5), aUse)

	cfg := newStraightLineCFG(stmt1, stmt2, stmt3)
	e := extract.New(libspec.New(), nil)
	a := dataflow.New(e)

	edges, _ := a.Analyze(cfg, nil)
	var sawFirst, sawSecond bool
	for _, edge := range edges {
		if edge.To.Location() != stmt3.Location() {
			continue
		}
		switch edge.From.Location() {
		case stmt1.Location():
			sawFirst = true
		case stmt2.Location():
			sawSecond = true
		}
	}
	assert.False(t, sawFirst, "shadowed definition must not reach the later use")
	assert.True(t, sawSecond)
}

// TestAnalyze_UndefinedUseIsFree covers a use with no reaching
// definition anywhere in the block.
func TestAnalyze_UndefinedUseIsFree(t *testing.T) {
	xUse := langasttest.New(langast.KindName, "x").At(loc(1, 4, 1, 5))
	stmt := simpleAssign("y", loc(1, 0, 1, 1), loc(1, 0, 1, 5), xUse)

	cfg := newStraightLineCFG(stmt)
	e := extract.New(libspec.New(), nil)
	a := dataflow.New(e)

	_, undefined := a.Analyze(cfg, nil)
	require.Equal(t, 1, undefined.Size())
	assert.Equal(t, "x", undefined.Items()[0].Name)
}

// TestAnalyze_SeededParamIsNotFree confirms a parameter seeded as a
// Definition satisfies a use of the same name inside the body.
func TestAnalyze_SeededParamIsNotFree(t *testing.T) {
	paramNode := langasttest.New(langast.KindParameter, "p").At(loc(1, 0, 1, 1))
	pUse := langasttest.New(langast.KindName, "p").At(loc(2, 4, 2, 5))
	stmt := simpleAssign("y", loc(2, 0, 2, 1), loc(2, 0, 2, 5), pUse)

	cfg := newStraightLineCFG(stmt)
	e := extract.New(libspec.New(), nil)
	a := dataflow.New(e)

	param := ref.New("p", ref.KindVariable, ref.LevelDefinition, paramNode.Location(), paramNode)
	seed := ref.NewSet()
	seed.Add(param)

	_, undefined := a.Analyze(cfg, seed)
	assert.True(t, undefined.Empty())
}

// TestAnalyze_ControlDependencyEdge confirms control-dependency pairs
// surface as ref-less edges.
func TestAnalyze_ControlDependencyEdge(t *testing.T) {
	cond := langasttest.New(langast.KindIf, "").At(loc(1, 0, 1, 10))
	body := langasttest.New(langast.KindAssign, "").At(loc(2, 4, 2, 9))

	block := &straightLineBlock{id: "b0", stmts: []langast.Node{cond, body}}
	cfg := &controlDepCFG{block: block, cd: langast.ControlDependency{Control: cond, Dependent: body}}

	e := extract.New(libspec.New(), nil)
	a := dataflow.New(e)
	edges, _ := a.Analyze(cfg, nil)

	found := false
	for _, edge := range edges {
		if edge.FromRef == nil && edge.ToRef == nil &&
			edge.From.Location() == cond.Location() && edge.To.Location() == body.Location() {
			found = true
		}
	}
	assert.True(t, found)
}

type controlDepCFG struct {
	block *straightLineBlock
	cd    langast.ControlDependency
}

func (c *controlDepCFG) Blocks() []langast.Block                    { return []langast.Block{c.block} }
func (c *controlDepCFG) Entry() langast.Block                       { return c.block }
func (c *controlDepCFG) Exit() langast.Block                        { return c.block }
func (c *controlDepCFG) Predecessors(langast.Block) []langast.Block { return nil }
func (c *controlDepCFG) Successors(langast.Block) []langast.Block   { return nil }
func (c *controlDepCFG) VisitControlDependencies(cb func(langast.ControlDependency)) {
	cb(c.cd)
}
