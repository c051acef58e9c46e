package dataflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/gather/dataflow"
	"github.com/viant/gather/extract"
	"github.com/viant/gather/langast"
	"github.com/viant/gather/langast/langasttest"
	"github.com/viant/gather/libspec"
	"github.com/viant/gather/ref"
)

func paramRef(name string, at int) ref.Ref {
	n := langasttest.New(langast.KindParameter, name).At(loc(at, 0, at, len(name)))
	return ref.New(name, ref.KindVariable, ref.LevelDefinition, n.Location(), n)
}

// TestParameterUpdates_DottedTargetMutatesParam covers §4.E: a body that
// assigns to a dotted attribute of a parameter must report that
// parameter's 1-based position in the inferred updates.
func TestParameterUpdates_DottedTargetMutatesParam(t *testing.T) {
	param := paramRef("obj", 1)

	recv := langasttest.New(langast.KindName, "obj").At(loc(2, 4, 2, 7))
	field := langasttest.New(langast.KindName, "x").At(loc(2, 8, 2, 9))
	dot := langasttest.New(langast.KindDot, "obj.x").At(loc(2, 4, 2, 9)).Field("operand", recv).Field("field", field)
	one := langasttest.New(langast.KindLiteral, "1").At(loc(2, 12, 2, 13))
	assignStmt := langasttest.New(langast.KindAssign, "").At(loc(2, 0, 2, 13)).Field("left", dot).Field("right", one)

	body := langasttest.New(langast.KindBlock, "").At(loc(2, 0, 2, 13)).AddChild(assignStmt)

	e := extract.New(libspec.New(), nil)
	a := dataflow.New(e)

	updates := a.ParameterUpdates(body, []ref.Ref{param})
	require.Len(t, updates, 1)
	require.NotNil(t, updates[0].Position)
	assert.Equal(t, 1, *updates[0].Position)
}

// TestParameterUpdates_PlainUseIsNotAnUpdate covers the negative case: a
// parameter that is only read, never mutated, contributes no entry.
func TestParameterUpdates_PlainUseIsNotAnUpdate(t *testing.T) {
	param := paramRef("obj", 1)

	use := langasttest.New(langast.KindName, "obj").At(loc(2, 4, 2, 7))
	target := langasttest.New(langast.KindName, "y").At(loc(2, 0, 2, 1))
	assignStmt := langasttest.New(langast.KindAssign, "").At(loc(2, 0, 2, 7)).Field("left", target).Field("right", use)

	body := langasttest.New(langast.KindBlock, "").At(loc(2, 0, 2, 7)).AddChild(assignStmt)

	e := extract.New(libspec.New(), nil)
	a := dataflow.New(e)

	updates := a.ParameterUpdates(body, []ref.Ref{param})
	assert.Empty(t, updates)
}

// TestFreeVariables_BodyReadsUnboundName covers §4.D's "def" use rule: a
// body reading a name that is neither a parameter nor locally defined is
// a free variable.
func TestFreeVariables_BodyReadsUnboundName(t *testing.T) {
	param := paramRef("x", 1)

	gUse := langasttest.New(langast.KindName, "g").At(loc(2, 4, 2, 5))
	target := langasttest.New(langast.KindName, "y").At(loc(2, 0, 2, 1))
	assignStmt := langasttest.New(langast.KindAssign, "").At(loc(2, 0, 2, 5)).Field("left", target).Field("right", gUse)

	body := langasttest.New(langast.KindBlock, "").At(loc(2, 0, 2, 5)).AddChild(assignStmt)

	e := extract.New(libspec.New(), nil)
	a := dataflow.New(e)

	free := a.FreeVariables(body, []ref.Ref{param})
	require.Equal(t, 1, free.Size())
	assert.Equal(t, "g", free.Items()[0].Name)
}

// TestFreeVariables_ParameterUseIsBound confirms a parameter's own use
// inside the body is not reported as free.
func TestFreeVariables_ParameterUseIsBound(t *testing.T) {
	param := paramRef("x", 1)

	xUse := langasttest.New(langast.KindName, "x").At(loc(2, 4, 2, 5))
	target := langasttest.New(langast.KindName, "y").At(loc(2, 0, 2, 1))
	assignStmt := langasttest.New(langast.KindAssign, "").At(loc(2, 0, 2, 5)).Field("left", target).Field("right", xUse)

	body := langasttest.New(langast.KindBlock, "").At(loc(2, 0, 2, 5)).AddChild(assignStmt)

	e := extract.New(libspec.New(), nil)
	a := dataflow.New(e)

	free := a.FreeVariables(body, []ref.Ref{param})
	assert.True(t, free.Empty())
}
