package program

import (
	"sort"

	"github.com/viant/gather/extract"
	"github.com/viant/gather/langast"
	"github.com/viant/gather/libspec"
	"github.com/viant/gather/ref"
)

// Option configures a ProgramBuilder at construction, in the same
// functional-option shape the rest of this module's packages use
// (§9 "Configuration").
type Option func(*ProgramBuilder)

// WithMagicsRewriter installs the collaborator that replaces
// interactive-shell directives with benign syntax before parsing (§6).
// Without one, cell text is parsed as-is.
func WithMagicsRewriter(r langast.MagicsRewriter) Option {
	return func(b *ProgramBuilder) { b.rewriter = r }
}

// WithLogger overrides the default no-op warning logger (§7: parse and
// analysis failures are recovered locally and surfaced only as a
// log-level warning).
func WithLogger(l libspec.Logger) Option {
	return func(b *ProgramBuilder) { b.logger = l }
}

// ProgramBuilder implements §4.G: it parses each logged cell once,
// tags its parse tree with the cell's origin identity, and assembles a
// requested endpoint's history into a single virtual Program.
type ProgramBuilder struct {
	parser    langast.Parser
	rewriter  langast.MagicsRewriter
	extractor *extract.Extractor
	logger    libspec.Logger

	order    []string
	programs map[string]*CellProgram
}

func noopLogger(string, ...interface{}) {}

// New creates a ProgramBuilder backed by parser (the out-of-scope parse
// collaborator, §6) and extractor (component D, used to compute each
// cell's own def/use summary as it is logged).
func New(parser langast.Parser, extractor *extract.Extractor, opts ...Option) *ProgramBuilder {
	b := &ProgramBuilder{
		parser:    parser,
		extractor: extractor,
		logger:    noopLogger,
		programs:  map[string]*CellProgram{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add parses cell, tags its tree with cell's ExecutionEventID, computes
// its def/use summary, and stores the resulting CellProgram (§4.G). On
// parse or analysis failure the cell is stored with Failed=true and empty
// statement/def/use lists (§7); the caller sees only a logged warning,
// never an error return, matching "recovered locally".
func (b *ProgramBuilder) Add(cell Cell) *CellProgram {
	eventID := cell.ExecutionEventID()
	text := cell.Text()
	if b.rewriter != nil {
		text = b.rewriter.Rewrite(text)
	}

	mod, err := b.parser.Parse(text)
	if err != nil {
		b.logger("program: cell %s failed to parse: %v", eventID, err)
		cp := &CellProgram{Cell: cell, Defs: ref.NewSet(), Uses: ref.NewSet(), Failed: true}
		b.record(cp)
		return cp
	}

	root := tag(mod.Root, eventID)
	stmts := make([]langast.Node, 0, len(mod.Statements))
	for _, s := range mod.Statements {
		stmts = append(stmts, tag(s, eventID))
	}

	var defs, uses *ref.Set
	failed := func() (failed bool) {
		defer func() {
			if r := recover(); r != nil {
				b.logger("program: cell %s failed analysis: %v", eventID, r)
				failed = true
			}
		}()
		defs, uses = b.cellDefUse(stmts)
		return false
	}()
	if failed {
		cp := &CellProgram{Cell: cell, Defs: ref.NewSet(), Uses: ref.NewSet(), Failed: true}
		b.record(cp)
		return cp
	}
	cp := &CellProgram{Cell: cell, Root: root, Statements: stmts, Defs: defs, Uses: uses}
	b.record(cp)
	return cp
}

// cellDefUse folds each top-level statement's def/use triple into a
// cell-wide summary, threading each statement's own defs into the next
// as "incoming defs" — the same sequential accumulation a single
// straight-line block gets from the dataflow analyzer (§4.E step 1),
// specialised here to a cell in isolation rather than the whole
// assembled program's CFG.
func (b *ProgramBuilder) cellDefUse(stmts []langast.Node) (defs, uses *ref.Set) {
	defs = ref.NewSet()
	uses = ref.NewSet()
	running := ref.NewSet()
	for _, stmt := range stmts {
		du := b.extractor.GetDefUseForStatement(stmt, running)
		defs = defs.Union(du.Defs())
		uses = uses.Union(du.Uses())
		running = running.Union(du.Defs())
	}
	return defs, uses
}

func (b *ProgramBuilder) record(cp *CellProgram) {
	id := cp.Cell.ExecutionEventID()
	if _, exists := b.programs[id]; !exists {
		b.order = append(b.order, id)
	}
	b.programs[id] = cp
}

// GetCellProgram returns the most-recent CellProgram recorded under
// eventID, and whether one was found (§4.G).
func (b *ProgramBuilder) GetCellProgram(eventID string) (*CellProgram, bool) {
	cp, ok := b.programs[eventID]
	return cp, ok
}

// Reset discards every recorded cell program (§4.H Reset: "clear both
// the log and the program builder").
func (b *ProgramBuilder) Reset() {
	b.order = nil
	b.programs = map[string]*CellProgram{}
}

func (b *ProgramBuilder) indexOf(eventID string) (int, bool) {
	for i := len(b.order) - 1; i >= 0; i-- {
		if b.order[i] == eventID {
			return i, true
		}
	}
	return -1, false
}

// BuildTo assembles the program visible to eventID (§4.G): starting
// from the target cell and walking backward through the log, it
// collects cell programs, applying the §9 Open-Question #1 resolution
// for stale re-executions — scanning backward, the first (i.e. most
// recent) occurrence of a given PersistentID wins and any earlier
// occurrence of that same PersistentID is dropped, since it has since
// been superseded. The target is always included, even if it recorded
// an error; any other errored cell is dropped. Returns (nil, false) for
// an unknown eventID (§7).
func (b *ProgramBuilder) BuildTo(eventID string) (*Program, bool) {
	idx, ok := b.indexOf(eventID)
	if !ok {
		return nil, false
	}

	claimed := map[string]bool{}
	var collected []*CellProgram
	for i := idx; i >= 0; i-- {
		cp := b.programs[b.order[i]]
		if cp == nil {
			continue
		}
		isTarget := i == idx
		pid := cp.Cell.PersistentID()
		if !isTarget {
			if claimed[pid] || cp.Failed {
				continue
			}
		}
		claimed[pid] = true
		collected = append(collected, cp)
	}
	reverseCellPrograms(collected)
	return assemble(collected), true
}

// BuildFrom assembles the program a forward ("who depends on this")
// query needs (§4.G): every distinct PersistentID whose notebook
// position — the index of its first-ever appearance in the log — is at
// or after the target's own position, each represented by its current
// (i.e. latest logged) content, in position order rather than log
// order.
//
// Position, not log chronology, is what "onward" means here: a
// notebook cell keeps a fixed slot even when it is re-executed out of
// order, so asking "what does c0 feed into" must answer against the
// CURRENT text of every downstream slot, arranged the way the notebook
// lays them out — not against whatever order the executions happened
// to log in. That is also why a query anchored at a superseded
// occurrence (an old eventID for a PersistentID that has since
// re-run) produces the same result as anchoring at the latest one:
// both resolve to the same slot. Errored cells are dropped. Returns
// (nil, false) for an unknown eventID.
func (b *ProgramBuilder) BuildFrom(eventID string) (*Program, bool) {
	idx, ok := b.indexOf(eventID)
	if !ok {
		return nil, false
	}
	targetPID := b.programs[b.order[idx]].Cell.PersistentID()

	firstPos := map[string]int{}
	for i, id := range b.order {
		cp := b.programs[id]
		if cp == nil {
			continue
		}
		pid := cp.Cell.PersistentID()
		if _, seen := firstPos[pid]; !seen {
			firstPos[pid] = i
		}
	}
	targetPos, ok := firstPos[targetPID]
	if !ok {
		targetPos = idx
	}

	latestIdxForPid := map[string]int{}
	for i, id := range b.order {
		cp := b.programs[id]
		if cp == nil || cp.Failed {
			continue
		}
		latestIdxForPid[cp.Cell.PersistentID()] = i
	}

	type slot struct {
		pos int
		cp  *CellProgram
	}
	var slots []slot
	for pid, pos := range firstPos {
		if pos < targetPos {
			continue
		}
		li, ok := latestIdxForPid[pid]
		if !ok {
			continue
		}
		slots = append(slots, slot{pos: pos, cp: b.programs[b.order[li]]})
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].pos < slots[j].pos })

	collected := make([]*CellProgram, 0, len(slots))
	for _, s := range slots {
		collected = append(collected, s.cp)
	}
	return assemble(collected), true
}

func reverseCellPrograms(cps []*CellProgram) {
	for i, j := 0, len(cps)-1; i < j; i, j = i+1, j-1 {
		cps[i], cps[j] = cps[j], cps[i]
	}
}
