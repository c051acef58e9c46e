package langast

// Walker performs a preorder/postorder traversal of a parse (sub)tree,
// invoking OnEnterNode before descending into a node's children and
// OnExitNode after. ancestors is the path from the root (inclusive) down
// to n's parent (exclusive of n itself); it is empty for the root.
type Walker interface {
	Walk(root Node, onEnter, onExit func(n Node, ancestors []Node))
}

// DefaultWalker is a straightforward recursive implementation usable by
// any Node implementation; components needing ad-hoc traversal (the
// extractor's call/def-annotation scans) use an explicit stack instead,
// matching the teacher's own style (analyzer/identifier.go's
// extractIdentifiers uses an explicit LIFO stack rather than recursion).
type DefaultWalker struct{}

func (DefaultWalker) Walk(root Node, onEnter, onExit func(n Node, ancestors []Node)) {
	var walk func(n Node, ancestors []Node)
	walk = func(n Node, ancestors []Node) {
		if n == nil {
			return
		}
		if onEnter != nil {
			onEnter(n, ancestors)
		}
		childAncestors := append(append([]Node{}, ancestors...), n)
		for i := 0; i < n.ChildCount(); i++ {
			walk(n.Child(i), childAncestors)
		}
		if onExit != nil {
			onExit(n, ancestors)
		}
	}
	walk(root, nil)
}
