package dataflow

import "github.com/viant/gather/langast"

// simpleBlock is a single basic block holding a flat statement list.
type simpleBlock struct {
	id    string
	stmts []langast.Node
}

func (b *simpleBlock) ID() string                { return b.id }
func (b *simpleBlock) Statements() []langast.Node { return b.stmts }

// simpleCFG is a one-block, branch-insensitive CFG: every statement
// reachable from a node runs unconditionally in source order, and there
// are no control dependencies. Used as the fallback when no
// langast.CFGBuilder collaborator is configured (§6: CFG construction is
// an out-of-scope external concern); a straight-line function body is
// analyzed exactly as well this way as with a real CFG.
type simpleCFG struct {
	block *simpleBlock
}

func (c *simpleCFG) Blocks() []langast.Block                        { return []langast.Block{c.block} }
func (c *simpleCFG) Entry() langast.Block                           { return c.block }
func (c *simpleCFG) Exit() langast.Block                            { return c.block }
func (c *simpleCFG) Predecessors(langast.Block) []langast.Block     { return nil }
func (c *simpleCFG) Successors(langast.Block) []langast.Block       { return nil }
func (c *simpleCFG) VisitControlDependencies(func(langast.ControlDependency)) {}

// buildSimpleCFG treats every named child of root as one flat statement
// list within a single block.
func buildSimpleCFG(root langast.Node) langast.CFG {
	stmts := make([]langast.Node, 0, root.NamedChildCount())
	for i := 0; i < root.NamedChildCount(); i++ {
		stmts = append(stmts, root.NamedChild(i))
	}
	return &simpleCFG{block: &simpleBlock{id: root.Location().Key(), stmts: stmts}}
}

func (a *Analyzer) buildBodyCFG(body langast.Node) (langast.CFG, error) {
	if a.cfgBuilder != nil {
		return a.cfgBuilder.BuildFunctionBody(body)
	}
	return buildSimpleCFG(body), nil
}
