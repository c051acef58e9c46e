package program

import "github.com/viant/gather/langast"
import "github.com/viant/gather/source"

// taggedNode wraps a parser-produced langast.Node so that every location
// reachable from it carries path as its source.Location.Path tag (§4.G
// "annotate every parsed node's location with the cell's
// executionEventId"). Wrapping is lazy and transparent: each accessor
// re-wraps the underlying child on demand rather than building a second
// tree eagerly, since a cell's parse tree is walked at most a handful of
// times (extraction, CFG construction, printing).
type taggedNode struct {
	inner langast.Node
	path  string
}

func tag(n langast.Node, path string) langast.Node {
	if n == nil {
		return nil
	}
	return &taggedNode{inner: n, path: path}
}

func (n *taggedNode) Kind() langast.Kind        { return n.inner.Kind() }
func (n *taggedNode) Location() source.Location { return n.inner.Location().WithPath(n.path) }
func (n *taggedNode) Text() string              { return n.inner.Text() }
func (n *taggedNode) ChildCount() int           { return n.inner.ChildCount() }
func (n *taggedNode) NamedChildCount() int      { return n.inner.NamedChildCount() }

func (n *taggedNode) ChildByFieldName(field string) langast.Node {
	return tag(n.inner.ChildByFieldName(field), n.path)
}

func (n *taggedNode) Child(i int) langast.Node { return tag(n.inner.Child(i), n.path) }

func (n *taggedNode) NamedChild(i int) langast.Node { return tag(n.inner.NamedChild(i), n.path) }

func (n *taggedNode) Parent() langast.Node { return tag(n.inner.Parent(), n.path) }

// shiftedNode composes on top of an (already tagged) node, offsetting
// every location's line numbers by delta so a cell's originally
// 1-based line numbers land at its slot in the assembled Program
// (§4.G buildTo: "shift every AST node's location.first_line and
// last_line by the cumulative offset").
type shiftedNode struct {
	inner langast.Node
	delta int
}

func shift(n langast.Node, delta int) langast.Node {
	if n == nil {
		return nil
	}
	if delta == 0 {
		return n
	}
	return &shiftedNode{inner: n, delta: delta}
}

func (n *shiftedNode) Kind() langast.Kind        { return n.inner.Kind() }
func (n *shiftedNode) Location() source.Location { return n.inner.Location().Shift(n.delta) }
func (n *shiftedNode) Text() string              { return n.inner.Text() }
func (n *shiftedNode) ChildCount() int           { return n.inner.ChildCount() }
func (n *shiftedNode) NamedChildCount() int      { return n.inner.NamedChildCount() }

func (n *shiftedNode) ChildByFieldName(field string) langast.Node {
	return shift(n.inner.ChildByFieldName(field), n.delta)
}

func (n *shiftedNode) Child(i int) langast.Node { return shift(n.inner.Child(i), n.delta) }

func (n *shiftedNode) NamedChild(i int) langast.Node { return shift(n.inner.NamedChild(i), n.delta) }

func (n *shiftedNode) Parent() langast.Node { return shift(n.inner.Parent(), n.delta) }

// rootNode is a synthetic langast.Node wrapping the concatenated
// statement list of an assembled Program, so the slicer's
// CFGBuilder.Build can be handed a single AST root the way it would a
// freshly parsed module (§4.F takes an `ast langast.Node`).
type rootNode struct {
	loc   source.Location
	stmts []langast.Node
}

func (n *rootNode) Kind() langast.Kind        { return langast.KindModule }
func (n *rootNode) Location() source.Location { return n.loc }
func (n *rootNode) Text() string              { return "" }
func (n *rootNode) ChildCount() int           { return len(n.stmts) }
func (n *rootNode) NamedChildCount() int      { return len(n.stmts) }
func (n *rootNode) ChildByFieldName(string) langast.Node { return nil }
func (n *rootNode) Parent() langast.Node                 { return nil }

func (n *rootNode) Child(i int) langast.Node {
	if i < 0 || i >= len(n.stmts) {
		return nil
	}
	return n.stmts[i]
}

func (n *rootNode) NamedChild(i int) langast.Node { return n.Child(i) }
