// Package dataflow implements the fixed-point block-transfer dataflow
// analyzer (§4.E): given a CFG and an optional set of seed refs, it
// produces the dataflow edge set and the refs left undefined at the end
// of the run, plus the parameter side-effect analysis that infers a
// user-defined function's `updates` spec from its body.
package dataflow

import (
	"fmt"

	"github.com/viant/gather/langast"
	"github.com/viant/gather/ref"
)

// Edge connects two statement nodes: a from-node whose ref a to-node's
// ref reaches. FromRef/ToRef are nil for control-dependency edges, which
// carry no refs (§4.E).
type Edge struct {
	From    langast.Node
	To      langast.Node
	FromRef *ref.Ref
	ToRef   *ref.Ref
}

// Key is the edge's de-duplication identity: (fromLocation, toLocation).
func (e Edge) Key() string {
	return fmt.Sprintf("%s->%s", e.From.Location().Key(), e.To.Location().Key())
}
