// Package ref implements the Ref/RefSet/DefUse data model (§3): an
// immutable record of a single name occurrence relevant to dataflow, a
// keyed set of such records, and the three-way Definition/Update/Use
// split a program point's def/use information is expressed as.
package ref

import (
	"fmt"

	"github.com/viant/gather/langast"
	"github.com/viant/gather/libspec"
	"github.com/viant/gather/refset"
	"github.com/viant/gather/source"
)

// Kind classifies what sort of name a Ref describes.
type Kind string

const (
	KindVariable Kind = "Variable"
	KindClass    Kind = "Class"
	KindFunction Kind = "Function"
	KindImport   Kind = "Import"
	KindMutation Kind = "Mutation"
	KindMagic    Kind = "Magic"
)

// Level classifies how a name occurrence relates to dataflow.
type Level string

const (
	LevelDefinition Level = "Definition"
	LevelUpdate     Level = "Update"
	LevelUse        Level = "Use"
)

// Ref is an immutable record of a single name occurrence. Identity
// inside a RefSet is (Name, Level, Location) — see Key.
//
// InferredType is attached only when an assignment's right-hand side is
// a call whose spec declares a return type (§3, §9), and holds the
// library-spec TypeSpec so later call resolution can look up methods on
// it directly.
type Ref struct {
	Name         string            `yaml:"name"`
	Kind         Kind              `yaml:"kind"`
	Level        Level             `yaml:"level"`
	Location     source.Location   `yaml:"location"`
	Node         langast.Node      `yaml:"-"`
	InferredType *libspec.TypeSpec `yaml:"-"`
}

// New builds a Ref at the given location.
func New(name string, kind Kind, level Level, loc source.Location, node langast.Node) Ref {
	return Ref{Name: name, Kind: kind, Level: level, Location: loc, Node: node}
}

// WithType returns a copy of r carrying the given inferred type.
func (r Ref) WithType(t *libspec.TypeSpec) Ref {
	r.InferredType = t
	return r
}

// Key is r's identity within a RefSet: (name, level, location).
func (r Ref) Key() string {
	return fmt.Sprintf("%s|%s|%s", r.Name, r.Level, r.Location.Key())
}

// SameName reports whether r and other share a bare name — the equality
// notion the dataflow analyzer uses to connect a definition to a later
// use (§4.E step b: "from.name == to.name").
func (r Ref) SameName(other Ref) bool { return r.Name == other.Name }

// Set is a RefSet: a refset.Set of Ref keyed by Ref.Key.
type Set = refset.Set[Ref]

// NewSet creates an empty RefSet.
func NewSet() *Set { return refset.New(Ref.Key) }

// SetOf creates a RefSet pre-populated with refs.
func SetOf(refs ...Ref) *Set { return refset.Of(Ref.Key, refs...) }

// FilterByName returns the subset of s whose Name equals name.
func FilterByName(s *Set, name string) *Set {
	return s.Filter(func(r Ref) bool { return r.Name == name })
}
