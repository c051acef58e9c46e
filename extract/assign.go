package extract

import (
	"github.com/viant/gather/langast"
	"github.com/viant/gather/libspec"
	"github.com/viant/gather/ref"
)

// assignDefs implements the assignment target-analysis rule (§4.D):
//
//   - each element of the (possibly tuple) left-hand side is walked
//     independently;
//   - a bare name that IS the whole target becomes a Definition;
//   - a bare name nested under a dot or index ancestor becomes an
//     Update (the index expression's own argument is excluded — reading
//     the key isn't a def of anything);
//   - augmented assignment (x += 1) upgrades every resulting ref to
//     Update, since it both reads and rewrites the target;
//   - when a target is a bare name and its paired right-hand-side
//     expression is a call whose spec declares a return type, the
//     resulting Definition ref carries that inferred type.
func (e *Extractor) assignDefs(stmt langast.Node, incomingDefs *ref.Set) *ref.Set {
	out := ref.NewSet()
	left := stmt.ChildByFieldName("left")
	if left == nil {
		return out
	}
	augmented := stmt.Kind() == langast.KindAugAssign || stmt.ChildByFieldName("op") != nil
	targets := splitExpressionList(left)

	var sources []langast.Node
	if right := stmt.ChildByFieldName("right"); right != nil {
		sources = splitExpressionList(right)
	}

	for ti, target := range targets {
		refs := e.targetRefs(target, augmented)
		if !augmented && target.Kind() == langast.KindName && ti < len(sources) {
			if t := e.callReturnType(sources[ti], incomingDefs); t != nil {
				for i := range refs {
					if refs[i].Level == ref.LevelDefinition {
						refs[i] = refs[i].WithType(t)
					}
				}
			}
		}
		for _, r := range refs {
			out.Add(r)
		}
	}
	return out
}

// targetRefs walks a single assignment target expression, yielding one
// ref per bare name found, per the rule documented on assignDefs.
func (e *Extractor) targetRefs(root langast.Node, augmented bool) []ref.Ref {
	var out []ref.Ref
	stack := []langast.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Kind() == langast.KindName {
			if isIndexArgument(n) {
				continue
			}
			level := ref.LevelDefinition
			if n != root && hasStructuralAncestor(n, root) {
				level = ref.LevelUpdate
			}
			if augmented {
				level = ref.LevelUpdate
			}
			out = append(out, ref.New(n.Text(), ref.KindVariable, level, n.Location(), n))
			continue
		}
		stack = append(stack, descendInto(n)...)
	}
	return out
}

// descendInto returns the children a name-gathering walk should recurse
// into. A dot node's "field" child is an attribute token, not a variable
// reference, so it is never walked — only the object being accessed is
// (matching the fact that real grammars never reuse the variable-name
// production for an attribute identifier).
func descendInto(n langast.Node) []langast.Node {
	if n.Kind() == langast.KindDot {
		if operand := n.ChildByFieldName("operand"); operand != nil {
			return []langast.Node{operand}
		}
		return nil
	}
	out := make([]langast.Node, 0, n.ChildCount())
	for i := 0; i < n.ChildCount(); i++ {
		if c := n.Child(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// isIndexArgument reports whether n is the index expression of its
// parent index node (as opposed to the object being indexed).
func isIndexArgument(n langast.Node) bool {
	p := n.Parent()
	if p == nil || p.Kind() != langast.KindIndex {
		return false
	}
	idx := p.ChildByFieldName("index")
	return idx != nil && idx == n
}

// hasStructuralAncestor reports whether any node on the path from n up
// to and including root is a dot or index node.
func hasStructuralAncestor(n, root langast.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == langast.KindDot || p.Kind() == langast.KindIndex {
			return true
		}
		if p == root {
			break
		}
	}
	return false
}

// callReturnType resolves source's return type when it is a call whose
// callee spec declares one, so the matching assignment target can carry
// it as its InferredType (§3, §9).
func (e *Extractor) callReturnType(source langast.Node, incomingDefs *ref.Set) *libspec.TypeSpec {
	if source == nil || source.Kind() != langast.KindCall {
		return nil
	}
	fnNode := source.ChildByFieldName("function")
	if fnNode == nil {
		return nil
	}
	spec, resolved, _, _ := e.resolveCallee(fnNode, incomingDefs)
	if !resolved || spec == nil {
		return nil
	}
	return spec.ReturnsType
}

// splitExpressionList splits a (possibly single) expression node into
// its comma-separated elements. A leaf expression kind (name, dot,
// index, slice, call, literal) is treated as a single element; any
// other node is assumed to be a generic list wrapper and is split by its
// named children.
func splitExpressionList(n langast.Node) []langast.Node {
	switch n.Kind() {
	case langast.KindName, langast.KindDot, langast.KindIndex, langast.KindSlice, langast.KindCall, langast.KindLiteral:
		return []langast.Node{n}
	default:
		count := n.NamedChildCount()
		if count == 0 {
			return []langast.Node{n}
		}
		out := make([]langast.Node, 0, count)
		for i := 0; i < count; i++ {
			out = append(out, n.NamedChild(i))
		}
		return out
	}
}
