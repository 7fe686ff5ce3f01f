package sema

import "github.com/palladium-lang/palladium/internal/ast"

// State is a binder's ownership state at the current program point
// (spec.md §4.3.3).
type State int

const (
	StateLive State = iota
	StateMoved
	StateUninit
)

// Binder is one named value: a parameter, let or for binding inside a
// function body. Functions and consts live in the Checker's Funcs and
// Consts tables, not in any Scope.
type Binder struct {
	Name    string
	Type    ast.Type
	Mutable bool
	State   State
}

// Scope is a lexical scope in the binder namespace. New `let`s and
// parameters live here; shadowing a name simply inserts a new *Binder over
// the old one in the same or a child scope (spec.md §4.3.1).
type Scope struct {
	parent  *Scope
	symbols map[string]*Binder
}

func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, symbols: make(map[string]*Binder)}
}

func (s *Scope) Insert(b *Binder) { s.symbols[b.Name] = b }

func (s *Scope) Lookup(name string) *Binder {
	if b, ok := s.symbols[name]; ok {
		return b
	}
	if s.parent != nil {
		return s.parent.Lookup(name)
	}
	return nil
}
