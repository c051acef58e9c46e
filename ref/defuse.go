package ref

// DefUse is the three-ref-set triple attached to a program point (§3):
// DEFINITION, UPDATE, and USE. Defs() = DEFINITION ∪ UPDATE; Uses() =
// UPDATE ∪ USE.
type DefUse struct {
	Definition *Set
	Update     *Set
	Use        *Set
}

// NewDefUse returns an empty triple.
func NewDefUse() DefUse {
	return DefUse{Definition: NewSet(), Update: NewSet(), Use: NewSet()}
}

// Defs returns DEFINITION ∪ UPDATE.
func (d DefUse) Defs() *Set { return d.Definition.Union(d.Update) }

// Uses returns UPDATE ∪ USE.
func (d DefUse) Uses() *Set { return d.Update.Union(d.Use) }

// ByLevel returns the set matching the given level.
func (d DefUse) ByLevel(level Level) *Set {
	switch level {
	case LevelDefinition:
		return d.Definition
	case LevelUpdate:
		return d.Update
	case LevelUse:
		return d.Use
	default:
		return NewSet()
	}
}

// Union returns a new DefUse combining d and other component-wise.
func (d DefUse) Union(other DefUse) DefUse {
	return DefUse{
		Definition: d.Definition.Union(other.Definition),
		Update:     d.Update.Union(other.Update),
		Use:        d.Use.Union(other.Use),
	}
}

// Equals reports whether d and other have equal Definition/Update/Use
// sets (used to test monotone fixed-point convergence, §8).
func (d DefUse) Equals(other DefUse) bool {
	return d.Definition.Equals(other.Definition) &&
		d.Update.Equals(other.Update) &&
		d.Use.Equals(other.Use)
}

// IsSupersetOf reports whether d is a component-wise superset of other —
// the monotonicity invariant the fixed point must preserve each
// iteration (§8).
func (d DefUse) IsSupersetOf(other DefUse) bool {
	return other.Definition.Minus(d.Definition).Empty() &&
		other.Update.Minus(d.Update).Empty() &&
		other.Use.Minus(d.Use).Empty()
}

// Add inserts a single ref into the set matching its Level.
func (d DefUse) Add(r Ref) {
	d.ByLevel(r.Level).Add(r)
}
