package dataflow

import (
	"github.com/viant/gather/langast"
	"github.com/viant/gather/libspec"
	"github.com/viant/gather/ref"
)

// FreeVariables implements extract.FunctionBodyAnalyzer: it builds a CFG
// for body, seeds its declared parameters as definitions, runs the
// fixed-point analysis, and returns the refs left undefined — the
// body's free variables (§4.D "def" use rule).
func (a *Analyzer) FreeVariables(body langast.Node, params []ref.Ref) *ref.Set {
	cfg, err := a.buildBodyCFG(body)
	if err != nil {
		return ref.NewSet()
	}
	seed := ref.NewSet()
	for _, p := range params {
		seed.Add(p)
	}
	_, undefined := a.Analyze(cfg, seed)
	return undefined
}

// ParameterUpdates implements extract.FunctionBodyAnalyzer: the
// parameter side-effect analysis (§4.E). It runs a fresh dataflow
// analysis of body seeding params as definitions, computes the
// statement-level transitive closure of the resulting edges, and for
// every parameter reports the 1-based position if any potentially
// side-effecting statement (a dotted/indexed assignment target, or a
// call) is reachable from it.
func (a *Analyzer) ParameterUpdates(body langast.Node, params []ref.Ref) []libspec.UpdateEntry {
	cfg, err := a.buildBodyCFG(body)
	if err != nil {
		return nil
	}
	seed := ref.NewSet()
	for _, p := range params {
		seed.Add(p)
	}
	edges, _ := a.Analyze(cfg, seed)

	stmts := allStatements(cfg)
	// Edge.From/To are already statement-granular for every edge
	// produced from body statements (dataflow.Analyze tags them with
	// their owning statement); the sole exception is the edge rooted at
	// a seeded parameter itself, whose From is the parameter's own node
	// — exactly the identity a parameter's start key below needs.
	adjacency := map[string][]string{}
	for _, e := range edges {
		if e.From == nil || e.To == nil {
			continue
		}
		fk, tk := e.From.Location().Key(), e.To.Location().Key()
		adjacency[fk] = append(adjacency[fk], tk)
	}
	sideEffecting := sideEffectingStatements(stmts)

	var out []libspec.UpdateEntry
	for i, p := range params {
		reachable := closure(p.Node.Location().Key(), adjacency)
		mutates := false
		for _, s := range sideEffecting {
			if reachable[s.Location().Key()] {
				mutates = true
				break
			}
		}
		if mutates {
			pos := i + 1
			out = append(out, libspec.UpdateEntry{Position: &pos})
		}
	}
	return out
}

func allStatements(cfg langast.CFG) []langast.Node {
	var out []langast.Node
	for _, b := range cfg.Blocks() {
		out = append(out, b.Statements()...)
	}
	return out
}

// closure returns the set of statement location keys reachable from
// start, start itself excluded unless a cycle leads back to it.
func closure(start string, adjacency map[string][]string) map[string]bool {
	visited := map[string]bool{}
	queue := []string{start}
	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[k] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return visited
}

// sideEffectingStatements filters stmts to assignments whose target is
// dotted or indexed, and statements containing a call (§4.E).
func sideEffectingStatements(stmts []langast.Node) []langast.Node {
	var out []langast.Node
	for _, s := range stmts {
		if isDottedOrIndexedAssign(s) || containsCall(s) {
			out = append(out, s)
		}
	}
	return out
}

func isDottedOrIndexedAssign(s langast.Node) bool {
	if s.Kind() != langast.KindAssign && s.Kind() != langast.KindAugAssign {
		return false
	}
	left := s.ChildByFieldName("left")
	if left == nil {
		return false
	}
	return left.Kind() == langast.KindDot || left.Kind() == langast.KindIndex
}

func containsCall(s langast.Node) bool {
	found := false
	stack := []langast.Node{s}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Kind() == langast.KindCall {
			found = true
			break
		}
		for i := 0; i < n.ChildCount(); i++ {
			if c := n.Child(i); c != nil {
				stack = append(stack, c)
			}
		}
	}
	return found
}
