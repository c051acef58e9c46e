// Package program implements the program builder (§4.G): it parses
// logged fragments ("cells"), tags every parsed node with the fragment's
// origin identity, and assembles an ordered run of them into a single
// virtual Program with a line map in both directions, the shape the
// slicer needs to treat a notebook's history as one AST.
package program

// Cell is the external contract a notebook-style caller must satisfy for
// a single code fragment (§6 "Cell contract", §3 "Cell"). It is an
// interface rather than a concrete struct because the real cell type
// belongs to the host application (a Jupyter kernel, a REPL buffer) —
// the core only ever needs these six observations of it.
type Cell interface {
	// Text is the fragment's source.
	Text() string
	// ExecutionCount is the monotonic per-cell counter incremented on
	// each successful execution; used to order history.
	ExecutionCount() int
	// ExecutionEventID is unique per execution, even across
	// re-executions of the same cell.
	ExecutionEventID() string
	// PersistentID is stable across re-executions of the same cell.
	PersistentID() string
	// HasError reports whether this execution raised an error.
	HasError() bool
	// DeepCopy returns an independent copy of this cell, for callers
	// replaying history (§6, §4.H AddExecutionToLog).
	DeepCopy() Cell
}

// SimpleCell is a minimal, immutable Cell implementation for callers
// that don't already have their own cell type (and for tests).
type SimpleCell struct {
	text             string
	executionCount   int
	executionEventID string
	persistentID     string
	hasError         bool
}

// NewSimpleCell builds a SimpleCell.
func NewSimpleCell(text string, executionCount int, executionEventID, persistentID string, hasError bool) SimpleCell {
	return SimpleCell{
		text:             text,
		executionCount:   executionCount,
		executionEventID: executionEventID,
		persistentID:     persistentID,
		hasError:         hasError,
	}
}

func (c SimpleCell) Text() string             { return c.text }
func (c SimpleCell) ExecutionCount() int      { return c.executionCount }
func (c SimpleCell) ExecutionEventID() string { return c.executionEventID }
func (c SimpleCell) PersistentID() string     { return c.persistentID }
func (c SimpleCell) HasError() bool           { return c.hasError }
func (c SimpleCell) DeepCopy() Cell           { return c }
