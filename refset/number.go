package refset

import "strconv"

// IntSet is the integer specialisation of Set.
type IntSet struct{ *Set[int] }

// NewIntSet creates an empty IntSet.
func NewIntSet(vs ...int) IntSet {
	s := Of(strconv.Itoa, vs...)
	return IntSet{s}
}

// Range produces the half-open integer set [min, max).
func Range(min, max int) IntSet {
	s := New(strconv.Itoa)
	for i := min; i < max; i++ {
		s.Add(i)
	}
	return IntSet{s}
}
