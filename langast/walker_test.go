package langast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/gather/langast"
	"github.com/viant/gather/langast/langasttest"
)

func TestDefaultWalker_PreorderPostorder(t *testing.T) {
	root := langasttest.New(langast.KindBlock, "")
	a := langasttest.New(langast.KindAssign, "a = 1")
	b := langasttest.New(langast.KindAssign, "b = a")
	root.AddChild(a).AddChild(b)

	var entered, exited []string
	w := langast.DefaultWalker{}
	w.Walk(root, func(n langast.Node, ancestors []langast.Node) {
		entered = append(entered, string(n.Kind()))
	}, func(n langast.Node, ancestors []langast.Node) {
		exited = append(exited, string(n.Kind()))
	})

	assert.Equal(t, []string{"block", "assign", "assign"}, entered)
	assert.Equal(t, []string{"assign", "assign", "block"}, exited)
}
