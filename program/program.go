package program

import (
	"github.com/viant/gather/langast"
	"github.com/viant/gather/refset"
	"github.com/viant/gather/source"
)

// farColumn stands in for "past the end of any real column" so a
// whole-cell span Location reliably Contains/Intersects every statement
// location a parser could have produced for that cell, without this
// package needing to know the parser's own column conventions.
const farColumn = 1 << 30

// Program is the assembled virtual program built from an ordered list of
// cell programs (§3 "Program"): a concatenated statement list with every
// location shifted so lines are unique across the program, plus the line
// map in both directions.
type Program struct {
	// Root is a synthetic module node wrapping Statements, suitable as
	// the `ast` argument to a langast.CFGBuilder/slicer.Slice.
	Root langast.Node
	// Statements is the concatenated, line-shifted statement list, in
	// cell order.
	Statements []langast.Node
	// Cells lists the cells actually included, in program order.
	Cells []Cell
	// CellToLineMap maps a cell's ExecutionEventID to the set of
	// (shifted) line numbers it occupies.
	CellToLineMap map[string]refset.IntSet
	// LineToCellMap maps a shifted line number back to the owning cell.
	LineToCellMap map[int]Cell
	// CellSpans maps a cell's ExecutionEventID to its whole (shifted)
	// span, Path-tagged with that same ExecutionEventID — a convenient
	// seed location for "slice from this whole cell" queries (§4.H).
	CellSpans map[string]source.Location
}

// assemble concatenates cellPrograms (already in program order, as
// BuildTo or BuildFrom arranged them) into a Program, shifting every statement's
// lines by the cumulative line count of the cells preceding it.
func assemble(cellPrograms []*CellProgram) *Program {
	p := &Program{
		CellToLineMap: map[string]refset.IntSet{},
		LineToCellMap: map[int]Cell{},
		CellSpans:     map[string]source.Location{},
	}

	offset := 0
	for _, cp := range cellPrograms {
		n := lineCount(cp.Cell.Text())
		lines := refset.NewIntSet()
		for line := offset + 1; line <= offset+n; line++ {
			lines.Add(line)
			p.LineToCellMap[line] = cp.Cell
		}
		eventID := cp.Cell.ExecutionEventID()
		p.CellToLineMap[eventID] = lines
		p.CellSpans[eventID] = source.New(offset+1, 0, offset+n, farColumn).WithPath(eventID)

		for _, stmt := range cp.Statements {
			p.Statements = append(p.Statements, shift(stmt, offset))
		}
		p.Cells = append(p.Cells, cp.Cell)
		offset += n
	}

	p.Root = &rootNode{loc: source.New(1, 0, offset, farColumn), stmts: p.Statements}
	return p
}
