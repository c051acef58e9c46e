// Package gather implements the execution-log slicer (§4.H), this
// module's public entry point: it records cell executions, drives the
// program builder (§4.G) and the slicer (§4.F) to turn that history
// into dataflow slices, and answers forward-dependency queries.
package gather

import (
	"fmt"
	"time"

	"github.com/viant/gather/dataflow"
	"github.com/viant/gather/graph"
	"github.com/viant/gather/langast"
	"github.com/viant/gather/libspec"
	"github.com/viant/gather/program"
	"github.com/viant/gather/slicer"
	"github.com/viant/gather/source"
)

// Cell is re-exported from program so callers of this package never
// need to import program directly just to satisfy the cell contract.
type Cell = program.Cell

// CellExecution is a single entry of the execution log (§3): a cell
// together with the wall-clock time it was logged.
type CellExecution struct {
	Cell Cell
	Time time.Time
}

// Subscriber is notified, synchronously and in registration order,
// after every logged execution (§5).
type Subscriber func(CellExecution)

// Option configures an ExecutionLogSlicer at construction.
type Option func(*ExecutionLogSlicer)

// WithLogger overrides the default no-op warning logger.
func WithLogger(l libspec.Logger) Option {
	return func(s *ExecutionLogSlicer) { s.logger = l }
}

func noopLogger(string, ...interface{}) {}

// ExecutionLogSlicer is the public API described in §4.H and §6: an
// append-only log of cell executions plus the machinery to slice
// through the virtual program they form.
type ExecutionLogSlicer struct {
	builder    *program.ProgramBuilder
	cfgBuilder langast.CFGBuilder
	analyzer   *dataflow.Analyzer
	logger     libspec.Logger

	log         []CellExecution
	subscribers []Subscriber
}

// New creates an ExecutionLogSlicer backed by builder (§4.G) and
// analyzer (§4.E). cfgBuilder may be nil, in which case every cell's
// whole parse tree is treated as one straight-line block — sound for
// branch-free notebook cells, the same fallback posture
// dataflow.Analyzer takes for an unconfigured function body.
func New(builder *program.ProgramBuilder, cfgBuilder langast.CFGBuilder, analyzer *dataflow.Analyzer, opts ...Option) *ExecutionLogSlicer {
	if cfgBuilder == nil {
		cfgBuilder = flatCFGBuilder{}
	}
	s := &ExecutionLogSlicer{
		builder:    builder,
		cfgBuilder: cfgBuilder,
		analyzer:   analyzer,
		logger:     noopLogger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers sub to be notified after every logged execution,
// in registration order (§5).
func (s *ExecutionLogSlicer) Subscribe(sub Subscriber) {
	s.subscribers = append(s.subscribers, sub)
}

// LogExecution stamps the current time, parses cell via the program
// builder, appends the resulting CellExecution to the log, and notifies
// subscribers (§4.H).
func (s *ExecutionLogSlicer) LogExecution(cell Cell) CellExecution {
	exec := CellExecution{Cell: cell, Time: time.Now()}
	s.addExecution(exec)
	return exec
}

// AddExecutionToLog appends exec without re-stamping its time — for
// replaying a previously recorded history (§4.H).
func (s *ExecutionLogSlicer) AddExecutionToLog(exec CellExecution) {
	s.addExecution(exec)
}

func (s *ExecutionLogSlicer) addExecution(exec CellExecution) {
	s.builder.Add(exec.Cell)
	s.log = append(s.log, exec)
	s.notify(exec)
}

// Reset clears both the execution log and the program builder (§4.H).
func (s *ExecutionLogSlicer) Reset() {
	s.log = nil
	s.builder.Reset()
}

// Log returns a copy of the recorded execution history, in log order.
func (s *ExecutionLogSlicer) Log() []CellExecution {
	out := make([]CellExecution, len(s.log))
	copy(out, s.log)
	return out
}

func (s *ExecutionLogSlicer) notify(exec CellExecution) {
	for _, sub := range s.subscribers {
		s.notifyOne(sub, exec)
	}
}

// notifyOne isolates a panicking subscriber so it cannot corrupt the
// log or stop later subscribers from running (§5).
func (s *ExecutionLogSlicer) notifyOne(sub Subscriber, exec CellExecution) {
	defer func() {
		if r := recover(); r != nil {
			s.logger("gather: execution subscriber panicked: %v", r)
		}
	}()
	sub(exec)
}

// far stands in for "past the end of any real coordinate", used to
// build the degenerate whole-cell seed sentinel (§7 "slicer invoked
// with no seed").
const far = 1 << 30

// SliceAllExecutions runs sliceAllExecutions (§4.H) for every logged
// execution of persistentID with a non-empty execution count:
// buildTo's cell, default or shift the seed locations to absolute
// program coordinates, slice backward, and map the result back to
// per-cell relative coordinates.
func (s *ExecutionLogSlicer) SliceAllExecutions(persistentID string, seedLocations []source.Location) ([]SlicedExecution, error) {
	var out []SlicedExecution
	for _, exec := range s.log {
		if exec.Cell.PersistentID() != persistentID {
			continue
		}
		if exec.Cell.ExecutionCount() == 0 {
			continue
		}
		eventID := exec.Cell.ExecutionEventID()
		prog, ok := s.builder.BuildTo(eventID)
		if !ok {
			continue
		}

		seeds := seedLocations
		if len(seeds) == 0 {
			seeds = []source.Location{source.New(1, 1, far, far)}
		}
		absolute := make([]source.Location, 0, len(seeds))
		for _, seed := range seeds {
			absolute = append(absolute, shiftToProgram(prog, eventID, seed))
		}

		result, err := slicer.Slice(prog.Root, absolute, s.cfgBuilder, s.analyzer, slicer.Backward)
		if err != nil {
			return nil, fmt.Errorf("gather: slice %s: %w", eventID, err)
		}

		out = append(out, SlicedExecution{
			ExecutionTime: exec.Time,
			CellSlices:    groupByCell(result, prog),
		})
	}
	return out, nil
}

// SliceLatestExecution returns the last element of SliceAllExecutions,
// or (SlicedExecution{}, false) if persistentID was never logged with a
// non-empty execution count.
func (s *ExecutionLogSlicer) SliceLatestExecution(persistentID string, seedLocations []source.Location) (SlicedExecution, bool, error) {
	all, err := s.SliceAllExecutions(persistentID, seedLocations)
	if err != nil {
		return SlicedExecution{}, false, err
	}
	if len(all) == 0 {
		return SlicedExecution{}, false, nil
	}
	return all[len(all)-1], true, nil
}

// shiftToProgram maps a seed location expressed relative to eventID's
// own cell (1-based local line numbers) onto the assembled program's
// absolute coordinates, using prog's cellToLineMap (§4.H step 3).
func shiftToProgram(prog *program.Program, eventID string, seed source.Location) source.Location {
	lines := prog.CellToLineMap[eventID]
	base := 1
	if items := lines.Items(); len(items) > 0 {
		min := items[0]
		for _, l := range items[1:] {
			if l < min {
				min = l
			}
		}
		base = min
	}
	return seed.Shift(base - 1).WithPath(eventID)
}

// groupByCell maps each slice location back to its owning cell's
// relative coordinates and groups by cell in first-occurrence order
// (§4.H step 5).
func groupByCell(result *slicer.LocationSet, prog *program.Program) []CellSlice {
	var order []string
	byEvent := map[string]*CellSlice{}

	for _, loc := range result.Locations() {
		cell, ok := prog.LineToCellMap[loc.FirstLine]
		if !ok {
			continue
		}
		eventID := cell.ExecutionEventID()
		lines := prog.CellToLineMap[eventID]
		base := loc.FirstLine
		for _, l := range lines.Items() {
			if l < base {
				base = l
			}
		}
		relative := loc.Shift(-(base - 1)).WithPath("")

		cs, ok := byEvent[eventID]
		if !ok {
			cs = &CellSlice{Cell: cell}
			byEvent[eventID] = cs
			order = append(order, eventID)
		}
		cs.Locations = append(cs.Locations, relative)
	}

	out := make([]CellSlice, 0, len(order))
	for _, id := range order {
		out = append(out, *byEvent[id])
	}
	return out
}

// GetDependentCells implements the forward query (§4.H): build the
// program from eventID's cell onward, seed a forward slice with the
// whole cell sharing eventID's PersistentID, and return the owning
// cells of the result in topological order, excluding the target
// itself. The topological order comes from a per-cell graph derived
// from the statement-level dataflow edges restricted to the slice
// result, rather than from chronological position alone, so a genuine
// dependency cycle (e.g. two cells that both flow into each other
// through a third) still sorts consistently.
func (s *ExecutionLogSlicer) GetDependentCells(eventID string) ([]Cell, error) {
	target, ok := s.builder.GetCellProgram(eventID)
	if !ok {
		return nil, fmt.Errorf("gather: unknown event id %q", eventID)
	}
	prog, ok := s.builder.BuildFrom(eventID)
	if !ok {
		return nil, fmt.Errorf("gather: unknown event id %q", eventID)
	}

	targetPID := target.Cell.PersistentID()
	var seedEventID string
	cellByPID := map[string]Cell{}
	for _, c := range prog.Cells {
		cellByPID[c.PersistentID()] = c
		if c.PersistentID() == targetPID {
			seedEventID = c.ExecutionEventID()
		}
	}
	if seedEventID == "" {
		return nil, nil
	}
	seed := prog.CellSpans[seedEventID]

	result, err := slicer.Slice(prog.Root, []source.Location{seed}, s.cfgBuilder, s.analyzer, slicer.Forward)
	if err != nil {
		return nil, fmt.Errorf("gather: forward slice %s: %w", eventID, err)
	}

	inResult := map[string]bool{}
	for _, loc := range result.Locations() {
		if c, ok := prog.LineToCellMap[loc.FirstLine]; ok {
			inResult[c.PersistentID()] = true
		}
	}

	cfg, err := s.cfgBuilder.Build(prog.Root)
	if err != nil {
		return nil, fmt.Errorf("gather: build cfg: %w", err)
	}
	edges, _ := s.analyzer.Analyze(cfg, nil)

	g := graph.New(func(id string) string { return id })
	for pid := range inResult {
		g.AddNode(pid)
	}
	for _, e := range edges {
		if e.From == nil || e.To == nil {
			continue
		}
		fromCell, ok1 := prog.LineToCellMap[e.From.Location().FirstLine]
		toCell, ok2 := prog.LineToCellMap[e.To.Location().FirstLine]
		if !ok1 || !ok2 {
			continue
		}
		fp, tp := fromCell.PersistentID(), toCell.PersistentID()
		if fp == tp || !inResult[fp] || !inResult[tp] {
			continue
		}
		g.AddEdge(fp, tp)
	}

	var out []Cell
	for _, pid := range g.TopoSort() {
		if pid == targetPID {
			continue
		}
		if c, ok := cellByPID[pid]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// flatCFGBuilder is the no-collaborator-configured fallback: every
// named child of root is one flat statement list within a single block,
// matching dataflow's own buildSimpleCFG posture for an unconfigured
// function body (§6 CFGBuilder is an external, out-of-scope
// collaborator; this is the sound branch-insensitive default).
type flatCFGBuilder struct{}

func (flatCFGBuilder) Build(root langast.Node) (langast.CFG, error) {
	stmts := make([]langast.Node, 0, root.NamedChildCount())
	for i := 0; i < root.NamedChildCount(); i++ {
		stmts = append(stmts, root.NamedChild(i))
	}
	return &flatCFG{block: &flatBlock{stmts: stmts}}, nil
}

func (b flatCFGBuilder) BuildFunctionBody(body langast.Node) (langast.CFG, error) {
	return b.Build(body)
}

type flatBlock struct{ stmts []langast.Node }

func (b *flatBlock) ID() string                { return "block0" }
func (b *flatBlock) Statements() []langast.Node { return b.stmts }

type flatCFG struct{ block *flatBlock }

func (c *flatCFG) Blocks() []langast.Block                              { return []langast.Block{c.block} }
func (c *flatCFG) Entry() langast.Block                                 { return c.block }
func (c *flatCFG) Exit() langast.Block                                  { return c.block }
func (c *flatCFG) Predecessors(langast.Block) []langast.Block           { return nil }
func (c *flatCFG) Successors(langast.Block) []langast.Block             { return nil }
func (c *flatCFG) VisitControlDependencies(func(langast.ControlDependency)) {}
