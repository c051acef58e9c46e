package libspec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/gather/libspec"
)

func TestParse_BareStringFunctionExpands(t *testing.T) {
	data := []byte(`{"name":"m","functions":["len","str"]}`)
	m, err := libspec.Parse(data)
	require.NoError(t, err)
	require.Len(t, m.Functions, 2)
	assert.Equal(t, "len", m.Functions[0].Name)
	assert.Empty(t, m.Functions[0].Updates)
	assert.Empty(t, m.Functions[0].Reads)
}

func TestParse_ReturnsTypeResolved(t *testing.T) {
	data := []byte(`{
		"name":"pandas",
		"functions":[{"name":"read_csv","returns":"DataFrame"}],
		"types":{"DataFrame":{"name":"DataFrame","methods":[{"name":"pop","updates":[0]}]}}
	}`)
	m, err := libspec.Parse(data)
	require.NoError(t, err)
	fn := m.FunctionNamed("read_csv")
	require.NotNil(t, fn)
	require.NotNil(t, fn.ReturnsType)
	assert.Equal(t, "DataFrame", fn.ReturnsType.Name)

	pop := fn.ReturnsType.MethodNamed("pop")
	require.NotNil(t, pop)
	require.Len(t, pop.Updates, 1)
	assert.True(t, pop.Updates[0].IsPosition())
	assert.Equal(t, 0, *pop.Updates[0].Position)
}

func TestParse_UpdateEntry_GlobalString(t *testing.T) {
	data := []byte(`{"name":"random","functions":[{"name":"seed","updates":["__random_state__"]}]}`)
	m, err := libspec.Parse(data)
	require.NoError(t, err)
	fn := m.FunctionNamed("seed")
	require.Len(t, fn.Updates, 1)
	assert.False(t, fn.Updates[0].IsPosition())
	assert.Equal(t, "__random_state__", fn.Updates[0].Global)
}

func TestParse_NestedModules(t *testing.T) {
	data := []byte(`{
		"name":"sklearn",
		"modules":{"cluster":{"name":"cluster","types":{"KMeans":{"name":"KMeans"}}}}
	}`)
	m, err := libspec.Parse(data)
	require.NoError(t, err)
	require.Contains(t, m.Modules, "cluster")
	assert.Contains(t, m.Modules["cluster"].Types, "KMeans")
}

func TestDefaultRoots(t *testing.T) {
	roots := libspec.DefaultRoots()
	for _, name := range []string{"__builtins__", "random", "matplotlib", "pandas", "sklearn", "numpy"} {
		assert.Contains(t, roots, name)
	}
	pandas := roots["pandas"]
	fn := pandas.FunctionNamed("read_csv")
	require.NotNil(t, fn)
	assert.Equal(t, "DataFrame", fn.ReturnsType.Name)
}
