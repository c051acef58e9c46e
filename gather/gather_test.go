package gather_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/gather/dataflow"
	"github.com/viant/gather/extract"
	"github.com/viant/gather/gather"
	"github.com/viant/gather/langast"
	"github.com/viant/gather/langast/langasttest"
	"github.com/viant/gather/libspec"
	"github.com/viant/gather/program"
	"github.com/viant/gather/source"
)

func loc(line, col, endLine, endCol int) source.Location {
	return source.New(line, col, endLine, endCol)
}

type fakeParser struct {
	byText map[string]langast.Module
}

func newFakeParser() *fakeParser {
	return &fakeParser{byText: map[string]langast.Module{}}
}

// assign registers "<target> = <source>\n" as a one-statement module
// and returns that text, for use as a cell's Text().
func (p *fakeParser) assign(target, src string) string {
	text := fmt.Sprintf("%s = %s\n", target, src)
	t := langasttest.New(langast.KindName, target).At(loc(1, 0, 1, len(target)))
	s := langasttest.New(langast.KindName, src).At(loc(1, len(target)+3, 1, len(target)+3+len(src)))
	stmt := langasttest.New(langast.KindAssign, "").
		At(loc(1, 0, 1, len(target)+3+len(src))).
		Field("left", t).
		Field("right", s)
	root := langasttest.New(langast.KindModule, "").At(loc(1, 0, 1, len(target)+3+len(src))).AddChild(stmt)
	p.byText[text] = langast.Module{Root: root, Statements: []langast.Node{stmt}}
	return text
}

func (p *fakeParser) Parse(text string) (langast.Module, error) {
	m, ok := p.byText[text]
	if !ok {
		return langast.Module{}, fmt.Errorf("fakeParser: no fixture registered for %q", text)
	}
	return m, nil
}

func newSlicer(p *fakeParser) *gather.ExecutionLogSlicer {
	symtab := libspec.New()
	e := extract.New(symtab, nil)
	a := dataflow.New(e)
	e.SetFunctionBodyAnalyzer(a)
	b := program.New(p, e)
	return gather.New(b, nil, a)
}

// TestExecutionLogSlicer_SliceAllExecutions_TwoLineAssign reproduces §8
// scenario 1 ("a = 1\nb = a\n", seed at line 2, accepts {1,2}) through
// the public execution-log API: two one-line cells logged in sequence,
// sliced with no explicit seed (the whole second cell is the implicit
// seed), must pull in the first cell too.
func TestExecutionLogSlicer_SliceAllExecutions_TwoLineAssign(t *testing.T) {
	p := newFakeParser()
	t1 := p.assign("a", "1")
	t2 := p.assign("b", "a")
	s := newSlicer(p)

	s.LogExecution(program.NewSimpleCell(t1, 1, "e1", "c0", false))
	s.LogExecution(program.NewSimpleCell(t2, 2, "e2", "c1", false))

	results, err := s.SliceAllExecutions("c1", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)

	byEvent := map[string]gather.CellSlice{}
	for _, cs := range results[0].CellSlices {
		byEvent[cs.Cell.ExecutionEventID()] = cs
	}
	require.Contains(t, byEvent, "e1")
	require.Contains(t, byEvent, "e2")
	assert.NotEmpty(t, byEvent["e1"].Locations)
	assert.NotEmpty(t, byEvent["e2"].Locations)
}

// TestExecutionLogSlicer_GetDependentCells reproduces §8 scenario 5:
// c0 "x=3", c1 "y=x", c2 "z=y"; getDependentCells(c0) returns [c1, c2]
// in that order.
func TestExecutionLogSlicer_GetDependentCells(t *testing.T) {
	p := newFakeParser()
	t0 := p.assign("x", "3")
	t1 := p.assign("y", "x")
	t2 := p.assign("z", "y")
	s := newSlicer(p)

	s.LogExecution(program.NewSimpleCell(t0, 1, "c0", "c0", false))
	s.LogExecution(program.NewSimpleCell(t1, 1, "c1", "c1", false))
	s.LogExecution(program.NewSimpleCell(t2, 1, "c2", "c2", false))

	deps, err := s.GetDependentCells("c0")
	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.Equal(t, "c1", deps[0].PersistentID())
	assert.Equal(t, "c2", deps[1].PersistentID())
}

// TestExecutionLogSlicer_GetDependentCells_ReExecution reproduces §8
// scenario 6: a re-executed c0 ("x=2" then, later, "x=20") only reaches
// the cell that actually read the newer value.
func TestExecutionLogSlicer_GetDependentCells_ReExecution(t *testing.T) {
	p := newFakeParser()
	tx1 := p.assign("x", "2")
	ty := p.assign("y", "x")
	tq := p.assign("q", "2")
	tx2 := p.assign("x", "20")
	s := newSlicer(p)

	s.LogExecution(program.NewSimpleCell(tx1, 1, "e0", "c0", false))
	s.LogExecution(program.NewSimpleCell(ty, 1, "e1", "c1", false))
	s.LogExecution(program.NewSimpleCell(tq, 1, "e2", "c2", false))
	s.LogExecution(program.NewSimpleCell(tx2, 2, "e3", "c0", false))

	deps, err := s.GetDependentCells("e3")
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, "c1", deps[0].PersistentID())
}

// TestExecutionLogSlicer_SubscriberIsolation covers §5: a panicking
// subscriber must not corrupt the log or stop later subscribers.
func TestExecutionLogSlicer_SubscriberIsolation(t *testing.T) {
	p := newFakeParser()
	text := p.assign("x", "1")
	s := newSlicer(p)

	var calls []string
	s.Subscribe(func(gather.CellExecution) { calls = append(calls, "first") })
	s.Subscribe(func(gather.CellExecution) { panic("boom") })
	s.Subscribe(func(gather.CellExecution) { calls = append(calls, "third") })

	require.NotPanics(t, func() {
		s.LogExecution(program.NewSimpleCell(text, 1, "e1", "c0", false))
	})
	assert.Equal(t, []string{"first", "third"}, calls)
	assert.Len(t, s.Log(), 1)
}

// TestExecutionLogSlicer_Reset covers §4.H Reset.
func TestExecutionLogSlicer_Reset(t *testing.T) {
	p := newFakeParser()
	text := p.assign("x", "1")
	s := newSlicer(p)
	s.LogExecution(program.NewSimpleCell(text, 1, "e1", "c0", false))
	s.Reset()
	assert.Empty(t, s.Log())

	_, err := s.GetDependentCells("e1")
	assert.Error(t, err)
}

// TestSlicedExecution_Merge covers §8's merge properties: merging with
// a disjoint slice is stable under permutation of arguments.
func TestSlicedExecution_Merge(t *testing.T) {
	cellA := program.NewSimpleCell("a = 1\n", 1, "e1", "c0", false)
	cellB := program.NewSimpleCell("b = 2\n", 2, "e2", "c1", false)

	sliceA := gather.SlicedExecution{CellSlices: []gather.CellSlice{{Cell: cellA, Locations: []source.Location{loc(1, 0, 1, 5)}}}}
	sliceB := gather.SlicedExecution{CellSlices: []gather.CellSlice{{Cell: cellB, Locations: []source.Location{loc(1, 0, 1, 5)}}}}

	merged1 := sliceA.Merge(sliceB)
	merged2 := sliceB.Merge(sliceA)

	idsOf := func(se gather.SlicedExecution) []string {
		var ids []string
		for _, cs := range se.CellSlices {
			ids = append(ids, cs.Cell.ExecutionEventID())
		}
		return ids
	}
	assert.Equal(t, idsOf(merged1), idsOf(merged2))
	assert.Equal(t, []string{"e1", "e2"}, idsOf(merged1))
}
