package program

import (
	"strings"

	"github.com/viant/gather/langast"
	"github.com/viant/gather/ref"
)

// CellProgram is the parsed form of a single cell (§3): created once
// when the cell is logged and never mutated afterwards. Statements,
// Defs, and Uses are empty and Failed is true when parsing or
// cell-level analysis (a panic while computing Defs/Uses) failed (§7).
type CellProgram struct {
	Cell       Cell
	Root       langast.Node
	Statements []langast.Node
	Defs       *ref.Set
	Uses       *ref.Set
	Failed     bool
}

// lineCount returns the number of source lines text spans, used to size
// this cell's slot in the assembled Program (§4.G "concatenating
// fragment line lengths"). A trailing newline does not count as an
// extra blank line, matching how a parser numbers a file's last
// statement.
func lineCount(text string) int {
	if text == "" {
		return 1
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	if n == 0 {
		n = 1
	}
	return n
}
