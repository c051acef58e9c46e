package gather

import (
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/viant/gather/refset"
	"github.com/viant/gather/source"
)

// CellSlice is one cell's contribution to a SlicedExecution: the cell
// and the locations within it (relative to that cell's own source, not
// the assembled program's absolute lines) that the slice accepted.
type CellSlice struct {
	Cell      Cell
	Locations []source.Location
}

// SlicedExecution is the result value type of a single slice run
// (§6): the wall-clock time the target execution was logged, and its
// accepted locations grouped by owning cell.
type SlicedExecution struct {
	ExecutionTime time.Time
	CellSlices    []CellSlice
}

// Merge unions se's per-cell location sets with every other
// SlicedExecution given, keyed by each cell's ExecutionEventID, and
// returns a new SlicedExecution whose CellSlices are sorted by
// execution count (§4.H "Merging slices"). The result does not depend
// on argument order: merging is commutative because every cell's
// locations are deduplicated through a keyed set and the final order
// is re-derived from ExecutionCount, not the order arguments were
// merged in.
func (se SlicedExecution) Merge(others ...SlicedExecution) SlicedExecution {
	byEvent := map[string]*CellSlice{}
	locSets := map[string]*refset.Set[source.Location]{}

	absorb := func(exec SlicedExecution) {
		for _, cs := range exec.CellSlices {
			id := cs.Cell.ExecutionEventID()
			set, ok := locSets[id]
			if !ok {
				set = refset.New(source.Location.Key)
				locSets[id] = set
				byEvent[id] = &CellSlice{Cell: cs.Cell}
			}
			for _, loc := range cs.Locations {
				set.Add(loc)
			}
		}
	}

	absorb(se)
	for _, o := range others {
		absorb(o)
	}

	merged := make([]CellSlice, 0, len(byEvent))
	for id, cs := range byEvent {
		locs := locSets[id].Items()
		sort.Slice(locs, func(i, j int) bool {
			if locs[i].FirstLine != locs[j].FirstLine {
				return locs[i].FirstLine < locs[j].FirstLine
			}
			return locs[i].FirstColumn < locs[j].FirstColumn
		})
		cs.Locations = locs
		merged = append(merged, *cs)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Cell.ExecutionCount() < merged[j].Cell.ExecutionCount()
	})

	return SlicedExecution{ExecutionTime: se.ExecutionTime, CellSlices: merged}
}

// dumpableCellSlice is the YAML-friendly projection of a CellSlice:
// Cell is an interface (§4.G "provided externally") with no generic
// marshaling shape of its own, so only the identifiers and locations a
// human inspecting a dump actually wants are rendered.
type dumpableCellSlice struct {
	ExecutionEventID string            `yaml:"executionEventId"`
	PersistentID     string            `yaml:"persistentId"`
	Locations        []source.Location `yaml:"locations"`
}

// DumpYAML renders this slice as YAML, the natural place a notebook
// gathering tool would expose a human-readable slice dump (SPEC_FULL
// DOMAIN STACK, gopkg.in/yaml.v3).
func (se SlicedExecution) DumpYAML() (string, error) {
	out := make([]dumpableCellSlice, 0, len(se.CellSlices))
	for _, cs := range se.CellSlices {
		out = append(out, dumpableCellSlice{
			ExecutionEventID: cs.Cell.ExecutionEventID(),
			PersistentID:     cs.Cell.PersistentID(),
			Locations:        cs.Locations,
		})
	}
	b, err := yaml.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
