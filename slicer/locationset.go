package slicer

import (
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/viant/gather/refset"
	"github.com/viant/gather/source"
)

// LocationSet is the slicer's result value type (§6): a keyed set of
// source locations.
type LocationSet struct {
	set *refset.Set[source.Location]
}

// NewLocationSet returns an empty LocationSet.
func NewLocationSet() *LocationSet {
	return &LocationSet{set: refset.New(source.Location.Key)}
}

// Add inserts loc, overwriting any existing element with the same key.
func (s *LocationSet) Add(loc source.Location) { s.set.Add(loc) }

// AddIfNew inserts loc and reports whether it was not already present.
func (s *LocationSet) AddIfNew(loc source.Location) bool {
	if s.set.HasKey(loc.Key()) {
		return false
	}
	s.set.Add(loc)
	return true
}

// ContainsLocation reports whether any accepted location fully encloses
// loc (§4.F's "any already-accepted location contains end").
func (s *LocationSet) ContainsLocation(loc source.Location) bool {
	return s.set.Some(func(l source.Location) bool { return l.Contains(loc) })
}

// Size returns the number of locations.
func (s *LocationSet) Size() int { return s.set.Size() }

// Locations returns the accepted locations sorted by first line, then
// first column — the ordering §4.H's sliceAllExecutions relies on.
func (s *LocationSet) Locations() []source.Location {
	out := s.set.Items()
	sort.Slice(out, func(i, j int) bool {
		if out[i].FirstLine != out[j].FirstLine {
			return out[i].FirstLine < out[j].FirstLine
		}
		return out[i].FirstColumn < out[j].FirstColumn
	})
	return out
}

// DumpYAML renders the sorted location list as YAML.
func (s *LocationSet) DumpYAML() (string, error) {
	b, err := yaml.Marshal(s.Locations())
	if err != nil {
		return "", err
	}
	return string(b), nil
}
