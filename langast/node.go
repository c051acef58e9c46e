// Package langast declares the external collaborators the core consumes
// (§6): the parser, the printer, the CFG builder, the tree walker, and
// the magics rewriter. None of these is implemented here — parsing,
// CFG construction, and source printing are out of scope (§1) — but the
// Node contract is modeled on the exact method surface the teacher calls
// on *sitter.Node (Type, Child, NamedChild, ChildByFieldName, ChildCount,
// NamedChildCount, Parent), so a real tree-sitter-backed implementation
// of the subject-language grammar can satisfy this interface directly.
package langast

import "github.com/viant/gather/source"

// Kind is a closed tag identifying a node's shape in the subject
// language's grammar. The core switches on it; every component not
// handling a particular kind falls back to a default case (free-name
// gathering, or "walk children"), per §9 ("modelled as a tagged variant").
type Kind string

const (
	KindModule       Kind = "module"
	KindImport       Kind = "import"
	KindFromImport   Kind = "from"
	KindDef          Kind = "def"
	KindClass        Kind = "class"
	KindAssign       Kind = "assign"
	KindIf           Kind = "if"
	KindWhile        Kind = "while"
	KindFor          Kind = "for"
	KindTry          Kind = "try"
	KindWith         Kind = "with"
	KindCall         Kind = "call"
	KindIndex        Kind = "index"
	KindSlice        Kind = "slice"
	KindDot          Kind = "dot"
	KindName         Kind = "name"
	KindLiteral      Kind = "literal"
	KindReturn       Kind = "return"
	KindBlock        Kind = "block"
	KindAugAssign    Kind = "augassign"
	KindParameter    Kind = "parameter"
	KindArgumentList Kind = "arglist"
)

// Node is a single parse-tree node. Every node has a Kind and a
// Location; children are reachable either positionally (Child,
// ChildCount) or by the grammar's named-field convention
// (ChildByFieldName), mirroring tree-sitter's API so that a genuine
// tree-sitter grammar for the subject language can implement Node with
// no translation layer.
type Node interface {
	// Kind reports this node's tagged-variant shape.
	Kind() Kind
	// Location is this node's full source range.
	Location() source.Location
	// Text is the raw source text this node spans, when the parser keeps
	// it around (used for string-literal def-annotation scanning and for
	// deriving identifier names without a dedicated "name" accessor).
	Text() string
	// ChildByFieldName returns the child bound to the given grammar field
	// (e.g. "left", "right", "function", "body"), or nil.
	ChildByFieldName(field string) Node
	// ChildCount returns the number of (possibly unnamed, e.g. punctuation)
	// children.
	ChildCount() int
	// Child returns the i'th child, or nil if out of range.
	Child(i int) Node
	// NamedChildCount returns the number of named (non-punctuation)
	// children.
	NamedChildCount() int
	// NamedChild returns the i'th named child, or nil if out of range.
	NamedChild(i int) Node
	// Parent returns the enclosing node, or nil at the root.
	Parent() Node
}

// Module is the root of a parsed fragment: a Node together with its
// top-level statement list, in source order.
type Module struct {
	Root       Node
	Statements []Node
}

// Parser parses subject-language source text into a Module. It must
// tolerate an implicit trailing newline (§6).
type Parser interface {
	Parse(text string) (Module, error)
}

// Printer renders a Node back to source text. The rendering need only be
// semantically equivalent, not syntactically identical (§6).
type Printer interface {
	PrintNode(n Node) string
}

// MagicsRewriter replaces interactive-shell directives with benign
// syntax before parsing (§6).
type MagicsRewriter interface {
	Rewrite(text string) string
}
