package extract

import (
	"github.com/viant/gather/langast"
	"github.com/viant/gather/libspec"
	"github.com/viant/gather/ref"
)

// callAnalysis walks stmt's whole subtree looking for call expressions
// and records the Mutation/Update refs they imply (§4.D "call
// analysis").
func (e *Extractor) callAnalysis(stmt langast.Node, incomingDefs *ref.Set) *ref.Set {
	out := ref.NewSet()
	forEachDescendant(stmt, func(n langast.Node) {
		if n.Kind() == langast.KindCall {
			e.handleCall(n, incomingDefs, out)
		}
	})
	return out
}

// handleCall resolves a single call's callee and, if the resolved spec
// declares `updates`, records a Mutation/Update ref for each mutated
// bare-name argument or receiver. An unresolved callee is handled
// conservatively: every bare-name argument and bare-name receiver is
// recorded as mutated, since without a spec there is no way to know it
// isn't (§4.D).
func (e *Extractor) handleCall(call langast.Node, incomingDefs *ref.Set, out *ref.Set) {
	fnNode := call.ChildByFieldName("function")
	if fnNode == nil {
		return
	}
	spec, resolved, receiver, dotted := e.resolveCallee(fnNode, incomingDefs)
	args := call.ChildByFieldName("arguments")

	if resolved && spec != nil {
		for _, entry := range spec.Updates {
			if !entry.IsPosition() {
				continue
			}
			pos := *entry.Position
			if pos == 0 {
				if dotted && receiver != nil && receiver.Kind() == langast.KindName {
					out.Add(ref.New(receiver.Text(), ref.KindMutation, ref.LevelUpdate, receiver.Location(), receiver))
				}
				continue
			}
			if arg := nthArg(args, pos-1); arg != nil && arg.Kind() == langast.KindName {
				out.Add(ref.New(arg.Text(), ref.KindMutation, ref.LevelUpdate, arg.Location(), arg))
			}
		}
		return
	}

	for i := 0; args != nil && i < args.NamedChildCount(); i++ {
		a := args.NamedChild(i)
		if a.Kind() == langast.KindName {
			out.Add(ref.New(a.Text(), ref.KindMutation, ref.LevelUpdate, a.Location(), a))
		}
	}
	if dotted && receiver != nil && receiver.Kind() == langast.KindName {
		out.Add(ref.New(receiver.Text(), ref.KindMutation, ref.LevelUpdate, receiver.Location(), receiver))
	}
}

// resolveCallee decides what a call's callee expression refers to:
//
//   - a bare name resolves against the symbol table's global functions
//     (or a known type's synthetic constructor);
//   - m.f where m is a name currently bound to a known module resolves
//     against that module;
//   - x.f where x is a name most-recently defined with an inferred type
//     resolves against that type's methods;
//   - anything else is unresolved.
//
// dotted reports whether the callee had a receiver at all (needed so the
// conservative fallback knows whether to also flag the receiver).
func (e *Extractor) resolveCallee(fnNode langast.Node, incomingDefs *ref.Set) (spec *libspec.FunctionSpec, resolved bool, receiver langast.Node, dotted bool) {
	switch fnNode.Kind() {
	case langast.KindName:
		if e.symtab == nil {
			return nil, false, nil, false
		}
		fn := e.symtab.LookupFunction(fnNode.Text())
		return fn, fn != nil, nil, false
	case langast.KindDot:
		receiver = fnNode.ChildByFieldName("operand")
		field := fnNode.ChildByFieldName("field")
		if field == nil {
			return nil, false, receiver, true
		}
		fieldName := field.Text()
		if receiver == nil || receiver.Kind() != langast.KindName || e.symtab == nil {
			return nil, false, receiver, true
		}
		recvName := receiver.Text()
		if mod := e.symtab.ModuleNamed(recvName); mod != nil {
			fn := mod.FunctionNamed(fieldName)
			return fn, fn != nil, receiver, true
		}
		if t := latestInferredType(incomingDefs, recvName); t != nil {
			m := t.MethodNamed(fieldName)
			return m, m != nil, receiver, true
		}
		return nil, false, receiver, true
	default:
		return nil, false, nil, false
	}
}

// latestInferredType returns the inferred type attached to a Definition
// ref named name among defs, or nil if none carries one. When several
// such refs carry a type, which one is returned is unspecified (set
// iteration order).
func latestInferredType(defs *ref.Set, name string) *libspec.TypeSpec {
	if defs == nil {
		return nil
	}
	var found *libspec.TypeSpec
	for _, r := range defs.Items() {
		if r.Name != name || r.Level != ref.LevelDefinition || r.InferredType == nil {
			continue
		}
		found = r.InferredType
	}
	return found
}

// nthArg returns the i'th named child of an arguments-list node, or nil.
func nthArg(args langast.Node, i int) langast.Node {
	if args == nil || i < 0 || i >= args.NamedChildCount() {
		return nil
	}
	return args.NamedChild(i)
}

// forEachDescendant visits every node of root's subtree, root included,
// in an unspecified order.
func forEachDescendant(root langast.Node, visit func(langast.Node)) {
	stack := []langast.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(n)
		for i := 0; i < n.ChildCount(); i++ {
			if c := n.Child(i); c != nil {
				stack = append(stack, c)
			}
		}
	}
}
