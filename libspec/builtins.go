package libspec

import (
	"embed"
)

//go:embed data/*.json
var defaultSpecFS embed.FS

func mustParse(name string) *ModuleSpec {
	data, err := defaultSpecFS.ReadFile("data/" + name)
	if err != nil {
		panic("libspec: missing bundled spec " + name + ": " + err.Error())
	}
	m, err := Parse(data)
	if err != nil {
		panic("libspec: malformed bundled spec " + name + ": " + err.Error())
	}
	return m
}

// Builtins returns the parsed __builtins__ module spec, pre-loaded at
// SymbolTable construction (§3).
func Builtins() *ModuleSpec { return mustParse("builtins.json") }

// DefaultRoots returns the aggregate of built-ins, random, matplotlib,
// pandas, sklearn, and numpy (§4.C "Default specs"), keyed by the name
// an import statement would reference.
func DefaultRoots() map[string]*ModuleSpec {
	return map[string]*ModuleSpec{
		"__builtins__": Builtins(),
		"random":       mustParse("random.json"),
		"matplotlib":   mustParse("matplotlib.json"),
		"pandas":       mustParse("pandas.json"),
		"sklearn":      mustParse("sklearn.json"),
		"numpy":        mustParse("numpy.json"),
	}
}
