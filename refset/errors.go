package refset

import "errors"

// ErrEmptySet is returned by Pop/Take on an empty set (§7: "cannot take
// from an empty set").
var ErrEmptySet = errors.New("refset: cannot take from an empty set")
