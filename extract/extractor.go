// Package extract implements the per-statement def/use extractor (§4.D):
// given a single statement node and the definitions visible coming into
// it, it produces the DEFINITION/UPDATE/USE triple that feeds the
// dataflow analyzer.
package extract

import (
	"github.com/viant/gather/langast"
	"github.com/viant/gather/libspec"
	"github.com/viant/gather/ref"
)

// FunctionBodyAnalyzer is the dataflow analyzer's contribution back into
// statement-level extraction (§4.D "def" rule: a function definition's
// uses are the free variables of its body). It is implemented by
// dataflow.Analyzer and injected after construction, which keeps the
// mutual dependency between the two packages (D needs E for nested
// bodies, E needs D for every statement) from becoming a Go import
// cycle.
type FunctionBodyAnalyzer interface {
	// FreeVariables returns the refs a function body reads without
	// having defined them locally, given its declared parameters
	// already seeded as definitions.
	FreeVariables(body langast.Node, params []ref.Ref) *ref.Set
	// ParameterUpdates runs the parameter side-effect analysis (§4.E)
	// over a function body and reports which parameter positions the
	// body mutates, so the extractor can publish an inferred spec for
	// user-defined functions.
	ParameterUpdates(body langast.Node, params []ref.Ref) []libspec.UpdateEntry
}

// Option configures an Extractor at construction.
type Option func(*Extractor)

// WithFunctionBodyAnalyzer installs the dataflow analyzer used to handle
// nested function bodies. Required for "def" statements to produce
// correct uses; omitted in tests that don't exercise nested functions.
func WithFunctionBodyAnalyzer(a FunctionBodyAnalyzer) Option {
	return func(e *Extractor) { e.bodies = a }
}

// SetFunctionBodyAnalyzer installs the dataflow analyzer after
// construction. dataflow.Analyzer can only be built from an already
// existing Extractor (it calls GetDefUseForStatement per block), so the
// D<->E wiring needs a late-bound setter on this side rather than an
// Option: construct the Extractor, construct the Analyzer from it, then
// call this to close the loop. Callers that never analyze nested
// function bodies can skip it; a def statement then has no uses and no
// inferred updates spec (§4.D "def").
func (e *Extractor) SetFunctionBodyAnalyzer(a FunctionBodyAnalyzer) {
	e.bodies = a
}

// WithLogger overrides the default no-op logger.
func WithLogger(l libspec.Logger) Option {
	return func(e *Extractor) { e.logger = l }
}

// WithCache installs a pre-built Cache instead of a fresh one.
func WithCache(c *Cache) Option {
	return func(e *Extractor) { e.cache = c }
}

// Extractor computes the def/use triple of a single statement (§4.D).
type Extractor struct {
	symtab *libspec.SymbolTable
	roots  map[string]*libspec.ModuleSpec
	cache  *Cache
	bodies FunctionBodyAnalyzer
	logger libspec.Logger
}

func noopLogger(string, ...interface{}) {}

// New creates an Extractor backed by symtab, resolving import statements
// against roots (the library-spec roots a program's imports draw from,
// e.g. libspec.DefaultRoots()).
func New(symtab *libspec.SymbolTable, roots map[string]*libspec.ModuleSpec, opts ...Option) *Extractor {
	e := &Extractor{
		symtab: symtab,
		roots:  roots,
		cache:  NewCache(),
		logger: noopLogger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GetDefUseForStatement returns stmt's def/use triple (§4.D), computing
// and caching it on first request and serving every later request for
// the same location from the per-statement cache (§3).
func (e *Extractor) GetDefUseForStatement(stmt langast.Node, incomingDefs *ref.Set) ref.DefUse {
	canonical := stmt.Location().Key()
	if du, ok := e.cache.get(canonical); ok {
		return du
	}
	du := ref.NewDefUse()
	for _, r := range e.getDefs(stmt, incomingDefs).Items() {
		du.Add(r)
	}
	for _, r := range e.getUses(stmt).Items() {
		r.Level = ref.LevelUse
		du.Use.Add(r)
	}
	e.cache.put(canonical, du)
	return du
}

// getDefs is the union of call analysis, def-annotation analysis, and
// the per-statement-shape definition rule (§4.D).
func (e *Extractor) getDefs(stmt langast.Node, incomingDefs *ref.Set) *ref.Set {
	defs := ref.NewSet()
	defs = defs.Union(e.callAnalysis(stmt, incomingDefs))
	defs = defs.Union(e.defAnnotationAnalysis(stmt))
	defs = defs.Union(e.shapeDefs(stmt, incomingDefs))
	return defs
}

// shapeDefs implements the per-statement-kind definition rule (§4.D):
//
//   - import:      one Import/Definition per imported name
//   - from-import: one Import/Definition per imported name
//   - def:         one Function/Definition named by the function, plus
//     the parameter side-effect analysis side effect
//   - class:       one Class/Definition named by the class
//   - assign:      target analysis (bare-name depth-1 -> Definition,
//     nested-under-dot-or-index -> Update, augmented -> always Update)
func (e *Extractor) shapeDefs(stmt langast.Node, incomingDefs *ref.Set) *ref.Set {
	out := ref.NewSet()
	switch stmt.Kind() {
	case langast.KindImport:
		for _, entry := range importEntries(stmt) {
			out.Add(ref.New(entry.boundName, ref.KindImport, ref.LevelDefinition, entry.node.Location(), entry.node))
			if e.symtab != nil {
				e.symtab.ImportModule(e.roots, entry.path, entry.alias)
			}
		}
	case langast.KindFromImport:
		modNode := stmt.ChildByFieldName("module")
		if modNode == nil {
			return out
		}
		modulePath := modNode.Text()
		names := stmt.ChildByFieldName("names")
		if names == nil {
			names = stmt
		}
		var imports []libspec.ImportSpec
		for i := 0; i < names.NamedChildCount(); i++ {
			entry := names.NamedChild(i)
			if entry == modNode {
				continue
			}
			if entry.Text() == "*" {
				imports = append(imports, libspec.ImportSpec{Path: "*"})
				out.Add(ref.New("*", ref.KindImport, ref.LevelDefinition, entry.Location(), entry))
				continue
			}
			boundName := entry.Text()
			if alias := entry.ChildByFieldName("alias"); alias != nil {
				boundName = alias.Text()
			}
			imports = append(imports, libspec.ImportSpec{Path: modulePath, Name: nameOf(entry)})
			out.Add(ref.New(boundName, ref.KindImport, ref.LevelDefinition, entry.Location(), entry))
		}
		if e.symtab != nil && len(imports) > 0 {
			e.symtab.ImportModuleDefinitions(e.roots, modulePath, imports)
		}
	case langast.KindDef:
		nameNode := stmt.ChildByFieldName("name")
		if nameNode == nil {
			return out
		}
		out.Add(ref.New(nameNode.Text(), ref.KindFunction, ref.LevelDefinition, nameNode.Location(), nameNode))
		e.analyzeFunctionSideEffects(stmt, nameNode.Text())
	case langast.KindClass:
		nameNode := stmt.ChildByFieldName("name")
		if nameNode == nil {
			return out
		}
		out.Add(ref.New(nameNode.Text(), ref.KindClass, ref.LevelDefinition, nameNode.Location(), nameNode))
	case langast.KindAssign, langast.KindAugAssign:
		out = out.Union(e.assignDefs(stmt, incomingDefs))
	}
	return out
}

// analyzeFunctionSideEffects runs the parameter side-effect analysis
// (§4.E) over a def statement's body, if a FunctionBodyAnalyzer is
// installed, and publishes the resulting updates spec so later calls to
// this function are recognized (§4.D "as a side effect").
func (e *Extractor) analyzeFunctionSideEffects(stmt langast.Node, name string) {
	if e.bodies == nil || e.symtab == nil {
		return
	}
	body := stmt.ChildByFieldName("body")
	if body == nil {
		return
	}
	params := functionParams(stmt)
	updates := e.bodies.ParameterUpdates(body, params)
	e.symtab.DefineFunction(&libspec.FunctionSpec{Name: name, Updates: updates})
}

// functionParams extracts the declared parameter names of a def
// statement as Definition refs, in declaration order, receiver (if any)
// implicitly occupying position 0.
func functionParams(stmt langast.Node) []ref.Ref {
	params := stmt.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	var out []ref.Ref
	for i := 0; i < params.NamedChildCount(); i++ {
		p := params.NamedChild(i)
		nameNode := p
		if p.Kind() == langast.KindParameter {
			if n := p.ChildByFieldName("name"); n != nil {
				nameNode = n
			}
		}
		out = append(out, ref.New(nameNode.Text(), ref.KindVariable, ref.LevelDefinition, nameNode.Location(), nameNode))
	}
	return out
}

// nameOf returns the bare name an import-list entry refers to (ignoring
// any alias binding).
func nameOf(entry langast.Node) string {
	if n := entry.ChildByFieldName("name"); n != nil {
		return n.Text()
	}
	return entry.Text()
}

type importEntry struct {
	node      langast.Node
	path      string
	alias     string
	boundName string
}

// importEntries splits a (possibly multi-name) import statement into one
// entry per imported module, resolving the name the import binds in
// scope: the alias if given, else the dotted path itself.
func importEntries(stmt langast.Node) []importEntry {
	var out []importEntry
	n := stmt.NamedChildCount()
	if n == 0 {
		return out
	}
	for i := 0; i < n; i++ {
		item := stmt.NamedChild(i)
		path := item.Text()
		alias := ""
		if n := item.ChildByFieldName("name"); n != nil {
			path = n.Text()
		}
		if a := item.ChildByFieldName("alias"); a != nil {
			alias = a.Text()
		}
		bound := path
		if alias != "" {
			bound = alias
		}
		out = append(out, importEntry{node: item, path: path, alias: alias, boundName: bound})
	}
	return out
}
