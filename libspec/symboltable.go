package libspec

import (
	"fmt"
	"strings"
)

// ImportSpec is one entry of a from-import list: {path, name}. path ==
// "*" means "every function and type in the module" (§4.C).
type ImportSpec struct {
	Path string
	Name string
}

// Logger receives warnings for recoverable spec errors (§7): an unknown
// module in a spec import. Defaults to a no-op.
type Logger func(format string, args ...interface{})

func noopLogger(string, ...interface{}) {}

// SymbolTable is a mutable collection of currently-imported modules
// (keyed by path or alias), globally-visible types, and globally-visible
// functions. The bundled built-ins are pre-loaded by New (§3, §4.C).
type SymbolTable struct {
	logger  Logger
	modules map[string]*ModuleSpec
	types   map[string]*TypeSpec
	funcs   map[string]*FunctionSpec
}

// Option configures a SymbolTable at construction.
type Option func(*SymbolTable)

// WithLogger overrides the default no-op warning logger.
func WithLogger(l Logger) Option {
	return func(s *SymbolTable) { s.logger = l }
}

// WithBuiltins preloads builtins into the global function/type maps, as
// if imported with path "*".
func WithBuiltins(builtins *ModuleSpec) Option {
	return func(s *SymbolTable) {
		s.modules["__builtins__"] = builtins
		s.importAllDefinitions(builtins)
	}
}

// New creates a SymbolTable. The bundled built-ins (Builtins()) are
// preloaded before any option runs; WithBuiltins loads a further
// built-ins module on top of them.
func New(opts ...Option) *SymbolTable {
	s := &SymbolTable{
		logger:  noopLogger,
		modules: map[string]*ModuleSpec{},
		types:   map[string]*TypeSpec{},
		funcs:   map[string]*FunctionSpec{},
	}
	s.modules["__builtins__"] = Builtins()
	s.importAllDefinitions(s.modules["__builtins__"])
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SymbolTable) importAllDefinitions(m *ModuleSpec) {
	if m == nil {
		return
	}
	for _, fn := range m.Functions {
		s.funcs[fn.Name] = fn
	}
	for name, t := range m.Types {
		s.types[name] = t
	}
}

// resolvePath walks a dotted path down the nested module map starting
// from roots, returning the final ModuleSpec or nil.
func resolvePath(roots map[string]*ModuleSpec, path string) *ModuleSpec {
	parts := strings.Split(path, ".")
	cur, ok := roots[parts[0]]
	if !ok {
		return nil
	}
	for _, part := range parts[1:] {
		if cur == nil {
			return nil
		}
		cur, ok = cur.Modules[part]
		if !ok {
			return nil
		}
	}
	return cur
}

// ImportModule resolves a dotted module path against roots, keyed by
// top-level module name. On success the module is
// registered under both its full path and alias (if given). On failure
// a warning is logged and the call is a no-op (§4.C, §7).
func (s *SymbolTable) ImportModule(roots map[string]*ModuleSpec, path, alias string) {
	m := resolvePath(roots, path)
	if m == nil {
		s.logger("libspec: unknown module %q", path)
		return
	}
	s.modules[path] = m
	if alias != "" {
		s.modules[alias] = m
	}
}

// ImportModuleDefinitions handles a from-import: imports is a list of
// {path, name} pairs. If path == "*" every function and type of the
// module named by the enclosing import path is added to the global
// function/type maps; otherwise only the named function or type is
// added (§4.C).
func (s *SymbolTable) ImportModuleDefinitions(roots map[string]*ModuleSpec, modulePath string, imports []ImportSpec) {
	m := resolvePath(roots, modulePath)
	if m == nil {
		s.logger("libspec: unknown module %q", modulePath)
		return
	}
	s.modules[modulePath] = m
	for _, imp := range imports {
		if imp.Path == "*" {
			s.importAllDefinitions(m)
			continue
		}
		if fn := m.FunctionNamed(imp.Name); fn != nil {
			s.funcs[imp.Name] = fn
			continue
		}
		if t, ok := m.Types[imp.Name]; ok {
			s.types[imp.Name] = t
			continue
		}
		s.logger("libspec: %q has no member %q", modulePath, imp.Name)
	}
}

// DefineFunction registers a function spec directly in the global
// function table (used by the extractor's parameter side-effect analysis
// to publish an inferred `updates` spec for a user-defined function,
// §4.D "as a side effect").
func (s *SymbolTable) DefineFunction(fn *FunctionSpec) {
	s.funcs[fn.Name] = fn
}

// DefineType registers a type spec directly (a `class` statement).
func (s *SymbolTable) DefineType(t *TypeSpec) {
	if t.Name != "" {
		s.types[t.Name] = t
	}
}

// LookupFunction returns the function spec known by name, or — if no
// function but a type T of that name is known — a synthetic constructor
// spec {name: "__init__", updates: [0], returnsType: T} (§4.C).
func (s *SymbolTable) LookupFunction(name string) *FunctionSpec {
	if fn, ok := s.funcs[name]; ok {
		return fn
	}
	if t, ok := s.types[name]; ok {
		zero := 0
		return &FunctionSpec{
			Name:        "__init__",
			Updates:     []UpdateEntry{{Position: &zero}},
			ReturnsType: t,
		}
	}
	return nil
}

// LookupModuleFunction returns the function spec named func in the
// module currently registered under mod (by path or alias), or nil.
func (s *SymbolTable) LookupModuleFunction(mod, function string) *FunctionSpec {
	m, ok := s.modules[mod]
	if !ok {
		return nil
	}
	return m.FunctionNamed(function)
}

// LookupType returns the type spec known by name, or nil.
func (s *SymbolTable) LookupType(name string) *TypeSpec {
	return s.types[name]
}

// ModuleNamed returns the module currently registered under name (by
// path or alias), or nil.
func (s *SymbolTable) ModuleNamed(name string) *ModuleSpec {
	return s.modules[name]
}

// String renders a compact summary, useful in test failure messages.
func (s *SymbolTable) String() string {
	return fmt.Sprintf("SymbolTable{modules=%d types=%d funcs=%d}", len(s.modules), len(s.types), len(s.funcs))
}
