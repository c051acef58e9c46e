package refset

// StringSet is the string specialisation of Set.
type StringSet struct{ *Set[string] }

func identity(s string) string { return s }

// NewStringSet creates a StringSet pre-populated with vs.
func NewStringSet(vs ...string) StringSet {
	return StringSet{Of(identity, vs...)}
}
