package dataflow

import "github.com/viant/gather/ref"

// crossGen lists which OTHER levels' fresh refs are additionally folded
// into a level's running state on top of its own (every level always
// absorbs its own fresh refs). Encoded as a static map per §4.D/§9's
// "encode both rules as static maps": a Definition or Update reaching a
// program point becomes visible as a prospective match for a later Use
// at that same name — implemented by also depositing it into the USE
// bucket — and a Definition additionally primes the UPDATE bucket, so a
// later in-place mutation of a freshly-defined name still finds
// something to connect to.
var crossGen = map[ref.Level][]ref.Level{
	ref.LevelUse:        {ref.LevelUpdate, ref.LevelDefinition},
	ref.LevelUpdate:     {ref.LevelDefinition},
	ref.LevelDefinition: {},
}

// killTable lists which levels of previously-reaching same-name refs a
// fresh ref of a given level evicts, from every bucket they were folded
// into: a redefinition or a mutation both invalidate any
// previously-reaching definition or update of that name.
var killTable = map[ref.Level][]ref.Level{
	ref.LevelDefinition: {ref.LevelDefinition, ref.LevelUpdate},
	ref.LevelUpdate:     {ref.LevelDefinition, ref.LevelUpdate},
	ref.LevelUse:        {},
}
