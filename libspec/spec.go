// Package libspec models the library-spec tree (§3, §4.C): JSON
// descriptions of subject-language library modules, their functions,
// types, and methods, used by the extractor to decide whether a call
// mutates its arguments and what type it returns.
package libspec

import "encoding/json"

// FunctionSpec describes a single function or method.
type FunctionSpec struct {
	Name   string `json:"name"`
	Reads  []int  `json:"reads,omitempty"`
	// Updates lists mutated parameter positions (0 means receiver).
	Updates []UpdateEntry `json:"updates,omitempty"`
	// Returns is the declared return-type name, as written in the spec.
	Returns string `json:"returns,omitempty"`
	// ReturnsType is Returns resolved against the enclosing module's
	// Types map, populated by Normalize.
	ReturnsType *TypeSpec `json:"-"`
	// HigherOrder marks a function that takes another function/callback
	// as an argument (e.g. a map/filter/reduce combinator).
	HigherOrder bool `json:"higherorder,omitempty"`
}

// UpdateEntry is one element of a FunctionSpec's Updates list: either a
// numeric parameter position (0 = receiver) or a string naming a global
// variable the call mutates.
type UpdateEntry struct {
	Position *int   `json:"-"`
	Global   string `json:"-"`
}

// IsPosition reports whether this entry names a parameter position.
func (e UpdateEntry) IsPosition() bool { return e.Position != nil }

// UnmarshalJSON accepts either a JSON number (-> Position) or a JSON
// string (-> Global), per §4.C's "non-numeric string entries describing
// global variables are acknowledged but not modelled further".
func (e *UpdateEntry) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		e.Position = &n
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	e.Global = s
	return nil
}

// rawFunction is the on-disk shape of a function spec entry: either a
// bare string (abbreviating {name, reads: [], updates: []}) or a full
// object.
type rawFunction struct {
	bare bool
	name string
	full FunctionSpec
}

func (rf *rawFunction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		rf.bare = true
		rf.name = s
		return nil
	}
	return json.Unmarshal(data, &rf.full)
}

// TypeSpec describes a type and its methods.
type TypeSpec struct {
	Name    string          `json:"name,omitempty"`
	Methods []*FunctionSpec `json:"methods,omitempty"`
}

// MethodNamed returns t's method spec named name, or nil.
func (t *TypeSpec) MethodNamed(name string) *FunctionSpec {
	if t == nil {
		return nil
	}
	for _, m := range t.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// ModuleSpec is a library module: its functions, its types (keyed by
// name), and nested submodules (keyed by name).
type ModuleSpec struct {
	Name      string                  `json:"name,omitempty"`
	Functions []*FunctionSpec         `json:"functions,omitempty"`
	Types     map[string]*TypeSpec    `json:"types,omitempty"`
	Modules   map[string]*ModuleSpec  `json:"modules,omitempty"`
}

// rawModule mirrors ModuleSpec but accepts the abbreviated string-or-
// object function entries on disk.
type rawModule struct {
	Name      string                 `json:"name,omitempty"`
	Functions []rawFunction          `json:"functions,omitempty"`
	Types     map[string]*TypeSpec   `json:"types,omitempty"`
	Modules   map[string]rawModule   `json:"modules,omitempty"`
}

// FunctionNamed returns m's function spec named name, or nil.
func (m *ModuleSpec) FunctionNamed(name string) *FunctionSpec {
	if m == nil {
		return nil
	}
	for _, f := range m.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Parse decodes raw module-spec JSON and normalizes it: every bare-string
// function entry expands to {name, reads: [], updates: []}, and every
// function's Returns name resolves against the enclosing module's Types
// map into ReturnsType (§4.C "Loading").
func Parse(data []byte) (*ModuleSpec, error) {
	var raw rawModule
	if err := jsonUnmarshal(data, &raw); err != nil {
		return nil, err
	}
	return normalize(raw), nil
}

func normalize(raw rawModule) *ModuleSpec {
	m := &ModuleSpec{Name: raw.Name, Types: raw.Types, Modules: map[string]*ModuleSpec{}}
	for _, rf := range raw.Functions {
		if rf.bare {
			m.Functions = append(m.Functions, &FunctionSpec{Name: rf.name})
			continue
		}
		fn := rf.full
		m.Functions = append(m.Functions, &fn)
	}
	for name, sub := range raw.Modules {
		m.Modules[name] = normalize(sub)
	}
	resolveReturnTypes(m)
	return m
}

func resolveReturnTypes(m *ModuleSpec) {
	for _, fn := range m.Functions {
		if fn.Returns == "" {
			continue
		}
		if t, ok := m.Types[fn.Returns]; ok {
			fn.ReturnsType = t
		}
	}
	for _, t := range m.Types {
		for _, fn := range t.Methods {
			if fn.Returns == "" {
				continue
			}
			if rt, ok := m.Types[fn.Returns]; ok {
				fn.ReturnsType = rt
			}
		}
	}
}

// jsonUnmarshal is a direct call to encoding/json.
func jsonUnmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
