// Package slicer implements the program slicer (§4.F): given a whole AST,
// a CFG builder, a dataflow analyzer, and seed locations, it computes the
// backward- or forward-reachable set of statement locations.
package slicer

import (
	"github.com/viant/gather/dataflow"
	"github.com/viant/gather/langast"
	"github.com/viant/gather/source"
)

// Direction selects which endpoint of a dataflow edge is treated as the
// closure's starting point.
type Direction int

const (
	// Backward follows edges from use back to definition: f -> t means
	// "t reaches back to f".
	Backward Direction = iota
	// Forward follows edges from definition out to use.
	Forward
)

// Slice runs the closure described in §4.F: it builds a CFG for ast,
// runs analyzer over it, computes the seed statements (every statement
// intersecting a seed location), and iterates the dataflow edge set
// until the accepted location set stops growing. With no seeds, the
// degenerate seed is the whole input's own range (§7: "Slicer invoked
// with no seed: degenerate seed covering the whole input is used").
func Slice(ast langast.Node, seeds []source.Location, builder langast.CFGBuilder, analyzer *dataflow.Analyzer, direction Direction) (*LocationSet, error) {
	cfg, err := builder.Build(ast)
	if err != nil {
		return nil, err
	}
	edges, _ := analyzer.Analyze(cfg, nil)

	if len(seeds) == 0 {
		seeds = []source.Location{ast.Location()}
	}

	var statements []langast.Node
	for _, b := range cfg.Blocks() {
		statements = append(statements, b.Statements()...)
	}

	seedStatements := map[string]bool{}
	accepted := NewLocationSet()
	for _, stmt := range statements {
		loc := stmt.Location()
		for _, seed := range seeds {
			if loc.Intersects(seed) {
				seedStatements[loc.Key()] = true
				accepted.Add(loc)
				break
			}
		}
	}

	for {
		grew := false
		for _, e := range edges {
			if e.From == nil || e.To == nil {
				continue
			}
			// Edge.From is the earlier, providing occurrence and Edge.To
			// the later, dependent one — §4.F's f/t labels the dependent
			// side "f" and the provider "t" ("f depends on t"), so our
			// From/To already line up with backward mode's
			// start=t.location, end=f.location with no swap; forward
			// mode is the one that swaps.
			var start, end source.Location
			if direction == Backward {
				start, end = e.From.Location(), e.To.Location()
			} else {
				start, end = e.To.Location(), e.From.Location()
			}
			if seedStatements[end.Key()] && accepted.AddIfNew(end) {
				grew = true
			}
			if accepted.ContainsLocation(end) && accepted.AddIfNew(start) {
				grew = true
			}
		}
		if !grew {
			break
		}
	}

	return accepted, nil
}
