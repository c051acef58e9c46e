// Package source describes source-location ranges shared by every other
// package in this module: the extractor attaches them to references, the
// dataflow analyzer keys edges by them, and the slicer accepts or rejects
// them by textual nesting.
package source

import "fmt"

// Location is a source range: (FirstLine, FirstColumn) to (LastLine,
// LastColumn), both ends treated as inclusive by Contains/Intersects. Path, when
// non-empty, is a fragment identity (an executionEventId) attached by the
// program builder so that identical (line, column) ranges from different
// cells compare distinctly.
type Location struct {
	FirstLine   int    `yaml:"firstLine"`
	FirstColumn int    `yaml:"firstColumn"`
	LastLine    int    `yaml:"lastLine"`
	LastColumn  int    `yaml:"lastColumn"`
	Path        string `yaml:"path,omitempty"`
}

// New builds a Location with no Path tag.
func New(firstLine, firstColumn, lastLine, lastColumn int) Location {
	return Location{FirstLine: firstLine, FirstColumn: firstColumn, LastLine: lastLine, LastColumn: lastColumn}
}

// WithPath returns a copy of l tagged with path.
func (l Location) WithPath(path string) Location {
	l.Path = path
	return l
}

// Key is the canonical string identity used by the def/use cache and by
// RefSet/DataFlow edge de-duplication. Two locations compare equal as map
// keys iff their Key()s are equal.
func (l Location) Key() string {
	return fmt.Sprintf("%s:%d:%d:%d:%d", l.Path, l.FirstLine, l.FirstColumn, l.LastLine, l.LastColumn)
}

func (l Location) String() string { return l.Key() }

// before reports whether (line, col) strictly precedes (oline, ocol).
func before(line, col, oline, ocol int) bool {
	if line != oline {
		return line < oline
	}
	return col < ocol
}

// Contains reports whether l fully encloses other — textual nesting.
// Locations from different fragments (differing Path) never contain one
// another.
func (l Location) Contains(other Location) bool {
	if l.Path != other.Path {
		return false
	}
	startsOK := !before(other.FirstLine, other.FirstColumn, l.FirstLine, l.FirstColumn)
	endsOK := !before(l.LastLine, l.LastColumn, other.LastLine, other.LastColumn)
	return startsOK && endsOK
}

// Intersects reports whether l and other overlap or nest — textual
// overlap. Locations from different fragments never intersect.
func (l Location) Intersects(other Location) bool {
	if l.Path != other.Path {
		return false
	}
	// disjoint iff one ends strictly before the other starts
	if before(l.LastLine, l.LastColumn, other.FirstLine, other.FirstColumn) {
		return false
	}
	if before(other.LastLine, other.LastColumn, l.FirstLine, l.FirstColumn) {
		return false
	}
	return true
}

// Shift returns a copy of l with every line number offset by lineDelta.
// Used by the program builder when concatenating cell programs.
func (l Location) Shift(lineDelta int) Location {
	l.FirstLine += lineDelta
	l.LastLine += lineDelta
	return l
}
