package extract

import (
	"github.com/viant/gather/langast"
	"github.com/viant/gather/ref"
)

// getUses implements the per-statement-kind use rule (§4.D step 3).
// Every returned ref is folded into USE by the caller regardless of its
// own Level, since "uses" here means "read, however it was produced" —
// a nested def's free variables, for instance, may themselves carry
// Update level from that body's own assignments.
func (e *Extractor) getUses(stmt langast.Node) *ref.Set {
	switch stmt.Kind() {
	case langast.KindAssign, langast.KindAugAssign:
		return e.assignUses(stmt)
	case langast.KindDef:
		return e.defUses(stmt)
	case langast.KindClass:
		return e.classUses(stmt)
	default:
		return bareNames(stmt)
	}
}

// assignUses: bare names in the sources always; bare names in targets
// only for augmented assignment, which reads the old value before
// rewriting it.
func (e *Extractor) assignUses(stmt langast.Node) *ref.Set {
	out := ref.NewSet()
	if right := stmt.ChildByFieldName("right"); right != nil {
		out = out.Union(bareNames(right))
	}
	augmented := stmt.Kind() == langast.KindAugAssign || stmt.ChildByFieldName("op") != nil
	if augmented {
		if left := stmt.ChildByFieldName("left"); left != nil {
			out = out.Union(bareNames(left))
		}
	}
	return out
}

// defUses delegates to the injected FunctionBodyAnalyzer: build a local
// CFG of the body, run dataflow seeding parameters as definitions, and
// return the free variables. Without an analyzer installed, a def
// statement is treated as having no uses — acceptable for callers that
// never nest functions.
func (e *Extractor) defUses(stmt langast.Node) *ref.Set {
	if e.bodies == nil {
		return ref.NewSet()
	}
	body := stmt.ChildByFieldName("body")
	if body == nil {
		return ref.NewSet()
	}
	params := functionParams(stmt)
	return e.bodies.FreeVariables(body, params)
}

// classUses unions the uses of every statement in the class body,
// recursively — a class's uses are the uses of the code it runs at
// definition time (decorators, default values, nested defs), not of the
// methods' own bodies (those are analyzed independently when invoked).
func (e *Extractor) classUses(stmt langast.Node) *ref.Set {
	out := ref.NewSet()
	body := stmt.ChildByFieldName("body")
	if body == nil {
		return out
	}
	for i := 0; i < body.NamedChildCount(); i++ {
		child := body.NamedChild(i)
		du := e.GetDefUseForStatement(child, ref.NewSet())
		out = out.Union(du.Use)
	}
	return out
}

// bareNames collects every KindName node in root's subtree as a
// Variable/Use ref (the "otherwise" rule, and the assign-sources rule),
// skipping a dot node's attribute-name child (descendInto).
func bareNames(root langast.Node) *ref.Set {
	out := ref.NewSet()
	stack := []langast.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Kind() == langast.KindName {
			out.Add(ref.New(n.Text(), ref.KindVariable, ref.LevelUse, n.Location(), n))
			continue
		}
		stack = append(stack, descendInto(n)...)
	}
	return out
}
