package extract

import (
	"encoding/json"
	"strings"

	"github.com/viant/gather/langast"
	"github.com/viant/gather/ref"
	"github.com/viant/gather/source"
)

const defAnnotationPrefix = "defs: "

// defEntry is one element of a "defs: <JSON>" annotation literal's
// array.
type defEntry struct {
	Name string  `json:"name"`
	Pos  [][]int `json:"pos"`
}

// defAnnotationAnalysis scans every string literal in stmt's subtree for
// the `"defs: <JSON>"` shape and yields a Magic/Definition ref for each
// entry, located on the literal's own first line plus the entry's line
// offset, with the entry's column numbers used as written (§4.D, §9: an
// entry whose pos pairs span more than one source line is dropped rather
// than guessed at).
func (e *Extractor) defAnnotationAnalysis(stmt langast.Node) *ref.Set {
	out := ref.NewSet()
	forEachDescendant(stmt, func(n langast.Node) {
		if n.Kind() != langast.KindLiteral {
			return
		}
		body, ok := annotationBody(n.Text())
		if !ok {
			return
		}
		var entries []defEntry
		if err := json.Unmarshal([]byte(body), &entries); err != nil {
			e.logger("extract: malformed defs annotation at %s: %v", n.Location().Key(), err)
			return
		}
		base := n.Location()
		for _, entry := range entries {
			loc, ok := annotationLocation(base, entry)
			if !ok {
				continue
			}
			out.Add(ref.New(entry.Name, ref.KindMagic, ref.LevelDefinition, loc, n))
		}
	})
	return out
}

// annotationBody strips surrounding quotes (if any) and the "defs: "
// prefix, returning the raw JSON text, or false if the literal doesn't
// match the shape.
func annotationBody(text string) (string, bool) {
	unquoted := strings.Trim(text, `"'`)
	if !strings.HasPrefix(unquoted, defAnnotationPrefix) {
		return "", false
	}
	return strings.TrimPrefix(unquoted, defAnnotationPrefix), true
}

// annotationLocation computes an entry's source location relative to its
// enclosing literal. Only entries whose two pos pairs share a line
// offset are honored; that offset is added to the literal's first line.
// One that spans multiple source lines can't be expressed relative to a
// single base line without guessing, so it is dropped (§9 Open Question).
func annotationLocation(base source.Location, entry defEntry) (source.Location, bool) {
	if len(entry.Pos) != 2 || len(entry.Pos[0]) != 2 || len(entry.Pos[1]) != 2 {
		return source.Location{}, false
	}
	if entry.Pos[0][0] != entry.Pos[1][0] {
		return source.Location{}, false
	}
	line := base.FirstLine + entry.Pos[0][0]
	loc := source.New(line, entry.Pos[0][1], line, entry.Pos[1][1]).WithPath(base.Path)
	return loc, true
}
