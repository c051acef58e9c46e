// Package langasttest provides a minimal, hand-built langast.Node
// implementation for exercising the core (extractor, dataflow analyzer,
// slicer, program builder) without a real subject-language parser, which
// is an out-of-scope external collaborator (§1, §6). Tests build small
// trees with the Node builder rather than parsing real source text.
package langasttest

import "github.com/viant/gather/langast"
import "github.com/viant/gather/source"

// Node is a builder-friendly, in-memory langast.Node.
type Node struct {
	kind     langast.Kind
	text     string
	loc      source.Location
	children []*Node
	fields   map[string]*Node
	parent   *Node
}

// New creates a detached node of the given kind and raw text.
func New(kind langast.Kind, text string) *Node {
	return &Node{kind: kind, text: text, fields: map[string]*Node{}}
}

// At sets n's location and returns n for chaining.
func (n *Node) At(loc source.Location) *Node { n.loc = loc; return n }

// AddChild appends c as a positional child of n.
func (n *Node) AddChild(c *Node) *Node {
	c.parent = n
	n.children = append(n.children, c)
	return n
}

// Field binds c under the given grammar field name and also appends it
// as a positional child, matching tree-sitter's convention that a named
// field is also reachable positionally.
func (n *Node) Field(name string, c *Node) *Node {
	c.parent = n
	n.fields[name] = c
	n.children = append(n.children, c)
	return n
}

func (n *Node) Kind() langast.Kind        { return n.kind }
func (n *Node) Location() source.Location { return n.loc }
func (n *Node) Text() string              { return n.text }
func (n *Node) ChildCount() int           { return len(n.children) }
func (n *Node) NamedChildCount() int      { return len(n.children) }

func (n *Node) Parent() langast.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) Child(i int) langast.Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

func (n *Node) NamedChild(i int) langast.Node { return n.Child(i) }

func (n *Node) ChildByFieldName(field string) langast.Node {
	c, ok := n.fields[field]
	if !ok {
		return nil
	}
	return c
}
