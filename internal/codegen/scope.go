package codegen

import "fmt"

// cgScope maps a Palladium binder name to the C identifier codegen chose
// for it. Unlike sema.Scope, which only needs to answer "is this name
// live", cgScope exists to give each `let` a distinct C name: spec.md
// §4.3.1 allows shadowing a name with a new binder in the very same
// block, which C's flat block scoping does not allow redeclaring, so a
// shadowing `let` gets a fresh suffixed name instead of reusing the C
// identifier.
type cgScope struct {
	parent *cgScope
	vars   map[string]string
}

func newCgScope(parent *cgScope) *cgScope {
	return &cgScope{parent: parent, vars: make(map[string]string)}
}

func (s *cgScope) lookup(name string) string {
	if c, ok := s.vars[name]; ok {
		return c
	}
	if s.parent != nil {
		return s.parent.lookup(name)
	}
	return name
}

// bind records a new C identifier for name in this scope, renaming it with
// a unique suffix if name is already bound at this exact scope level (a
// same-block shadow); a shadow introduced in a nested block is fine as-is
// since C's own block scoping already handles that case.
func (g *Generator) bind(scope *cgScope, name string) string {
	if _, exists := scope.vars[name]; !exists {
		scope.vars[name] = name
		return name
	}
	g.tmpCounter++
	cname := fmt.Sprintf("%s__%d", name, g.tmpCounter)
	scope.vars[name] = cname
	return cname
}
