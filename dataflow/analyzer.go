package dataflow

import (
	"github.com/viant/gather/extract"
	"github.com/viant/gather/langast"
	"github.com/viant/gather/ref"
)

// Option configures an Analyzer at construction.
type Option func(*Analyzer)

// WithCFGBuilder installs the collaborator used to build a function
// body's own CFG for the parameter side-effect analysis and free-variable
// computation (§4.D "def" rule, §4.E "Parameter side-effect analysis").
// Without one, body analysis falls back to treating the whole body as a
// single block (no branch-sensitivity), which is still sound for
// straight-line bodies.
func WithCFGBuilder(b langast.CFGBuilder) Option {
	return func(a *Analyzer) { a.cfgBuilder = b }
}

// Analyzer runs the fixed-point block-transfer dataflow analysis (§4.E)
// over a CFG, using extractor for per-statement def/use. It also
// implements extract.FunctionBodyAnalyzer, so it is injected back into
// the Extractor that was used to build it (via
// Extractor.SetFunctionBodyAnalyzer), closing the mutual dependency between statement-level
// extraction and nested function-body analysis without an import cycle.
type Analyzer struct {
	extractor  *extract.Extractor
	cfgBuilder langast.CFGBuilder
}

// New creates an Analyzer backed by extractor.
func New(extractor *extract.Extractor, opts ...Option) *Analyzer {
	a := &Analyzer{extractor: extractor}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the block-transfer fixed point over cfg (§4.E), returning
// the de-duplicated dataflow edges (data edges plus one per control
// dependency) and the set of refs that remained undefined at the end of
// the run.
func (a *Analyzer) Analyze(cfg langast.CFG, seedRefs *ref.Set) ([]Edge, *ref.Set) {
	blocks := cfg.Blocks()
	state := make(map[string]ref.DefUse, len(blocks))
	for _, b := range blocks {
		state[b.ID()] = ref.NewDefUse()
	}

	if seedRefs != nil && len(blocks) > 0 {
		if entry := cfg.Entry(); entry != nil {
			seedSDU := ref.NewDefUse()
			for _, r := range seedRefs.Items() {
				r.Level = ref.LevelDefinition
				seedSDU.Definition.Add(r)
			}
			// Route the seed through the same gen transform an ordinary
			// statement's def would get, so a parameter seeded as a
			// Definition is already visible to a Use/Update match on the
			// very first statement of the body, not only from the
			// second statement onward.
			state[entry.ID()] = transfer(ref.NewDefUse(), seedSDU)
		}
	}

	edges := map[string]Edge{}
	allUses := map[string]ref.Ref{}
	defined := map[string]bool{}
	// origin records, for every ref key seen so far, the statement node
	// that produced it — so an edge can connect the statements a ref
	// flows between (§4.F needs statement-granularity edges to test
	// containment against statement ranges), even though the ref's own
	// Node/Location stays the fine-grained token the extractor attached
	// (§8 "Locality").
	origin := map[string]langast.Node{}

	queue := make([]langast.Block, len(blocks))
	copy(queue, blocks)
	reverse(queue)
	queued := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		queued[b.ID()] = true
	}

	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		id := b.ID()
		queued[id] = false

		cur := cloneDefUse(state[id])
		for _, pred := range cfg.Predecessors(b) {
			cur = cur.Union(state[pred.ID()])
		}

		for _, stmt := range b.Statements() {
			sDU := a.extractor.GetDefUseForStatement(stmt, cur.Defs())

			for _, level := range []ref.Level{ref.LevelDefinition, ref.LevelUpdate, ref.LevelUse} {
				for _, to := range sDU.ByLevel(level).Items() {
					for _, from := range cur.ByLevel(level).Items() {
						if !from.SameName(to) {
							continue
						}
						fromNode := origin[from.Key()]
						if fromNode == nil {
							fromNode = from.Node
						}
						e := Edge{From: fromNode, To: stmt, FromRef: refPtr(from), ToRef: refPtr(to)}
						edges[e.Key()] = e
						defined[to.Key()] = true
					}
				}
			}
			for _, u := range sDU.Use.Items() {
				allUses[u.Key()] = u
			}
			for _, level := range []ref.Level{ref.LevelDefinition, ref.LevelUpdate, ref.LevelUse} {
				for _, r := range sDU.ByLevel(level).Items() {
					origin[r.Key()] = stmt
				}
			}

			cur = transfer(cur, sDU)
		}

		if !cur.Equals(state[id]) {
			state[id] = cur
			for _, succ := range cfg.Successors(b) {
				if !queued[succ.ID()] {
					queue = append(queue, succ)
					queued[succ.ID()] = true
				}
			}
		}
	}

	cfg.VisitControlDependencies(func(cd langast.ControlDependency) {
		e := Edge{From: cd.Control, To: cd.Dependent}
		edges[e.Key()] = e
	})

	undefined := ref.NewSet()
	for key, u := range allUses {
		if !defined[key] {
			undefined.Add(u)
		}
	}

	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		out = append(out, e)
	}
	return out, undefined
}

// transfer applies the gen/kill update to cur given the statement's own
// def/use triple sDU (§4.E step 2.d).
func transfer(cur ref.DefUse, sDU ref.DefUse) ref.DefUse {
	triggers := map[ref.Level]*ref.Set{
		ref.LevelDefinition: sDU.Definition,
		ref.LevelUpdate:     sDU.Update,
		ref.LevelUse:        sDU.Use,
	}

	// killedNames[L][name] marks refs of level L with that name as killed,
	// in whichever bucket they sit.
	killedNames := map[ref.Level]map[string]bool{
		ref.LevelDefinition: {},
		ref.LevelUpdate:     {},
		ref.LevelUse:        {},
	}
	for level, set := range triggers {
		for _, target := range killTable[level] {
			for _, r := range set.Items() {
				killedNames[target][r.Name] = true
			}
		}
	}

	next := ref.NewDefUse()
	next.Definition = keepUnkilled(cur.Definition, killedNames).Union(sDU.Definition)
	next.Update = keepUnkilled(cur.Update, killedNames).
		Union(sDU.Update).
		Union(byLevelCopy(sDU, crossGen[ref.LevelUpdate]))
	next.Use = keepUnkilled(cur.Use, killedNames).
		Union(sDU.Use).
		Union(byLevelCopy(sDU, crossGen[ref.LevelUse]))
	return next
}

// keepUnkilled returns the subset of s whose refs are not marked killed
// for their own Level and Name.
func keepUnkilled(s *ref.Set, killed map[ref.Level]map[string]bool) *ref.Set {
	return s.Filter(func(r ref.Ref) bool { return !killed[r.Level][r.Name] })
}

// byLevelCopy returns the union of sDU's buckets named in levels.
func byLevelCopy(sDU ref.DefUse, levels []ref.Level) *ref.Set {
	out := ref.NewSet()
	for _, l := range levels {
		out = out.Union(sDU.ByLevel(l))
	}
	return out
}

func cloneDefUse(d ref.DefUse) ref.DefUse {
	return ref.DefUse{
		Definition: d.Definition.Clone(),
		Update:     d.Update.Clone(),
		Use:        d.Use.Clone(),
	}
}

func refPtr(r ref.Ref) *ref.Ref { return &r }

func reverse(b []langast.Block) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
