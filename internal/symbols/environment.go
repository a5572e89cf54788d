// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package symbols

import (
	"github.com/magictrick-dev/sigmafox/internal/ast"
)

// frame is one layer of the Environment's scope stack: a hash table of
// the declarations visible in it.
type frame struct {
	t *table
}

func newFrame() *frame {
	return &frame{t: newTable()}
}

// Environment is an ordered stack of scope frames. The root (index 0) is
// global and can never be popped (spec.md §4.4).
type Environment struct {
	frames []*frame
	nextID int

	// MaxSymbols, if nonzero, caps the number of live symbols across every
	// frame. NewEnvironment leaves it zero (no cap), and internal/driver
	// does not set it.
	MaxSymbols int
	liveCount  int
}

func NewEnvironment() *Environment {
	e := &Environment{}
	e.frames = []*frame{newFrame()}
	return e
}

// Push opens a nested scope.
func (e *Environment) Push() {
	e.frames = append(e.frames, newFrame())
}

// Pop closes the innermost scope. Popping the global (root) frame is
// forbidden (spec.md §4.4 invariant) and panics as a programmer error.
func (e *Environment) Pop() {
	if len(e.frames) <= 1 {
		panic("symbols: cannot pop the global frame")
	}
	e.frames = e.frames[:len(e.frames)-1]
}

func (e *Environment) top() *frame    { return e.frames[len(e.frames)-1] }
func (e *Environment) global() *frame { return e.frames[0] }

// ExistsLocally reports whether name is declared in the innermost frame.
func (e *Environment) ExistsLocally(name string) bool { return e.top().t.Has(name) }

// ExistsGlobally reports whether name is declared in the root frame.
func (e *Environment) ExistsGlobally(name string) bool { return e.global().t.Has(name) }

// ExistsInAny reports whether name is visible from the current scope,
// searching top-down.
func (e *Environment) ExistsInAny(name string) bool {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if e.frames[i].t.Has(name) {
			return true
		}
	}
	return false
}

// ExistsButNotLocally reports whether name is visible from an outer scope
// but not declared in the innermost frame — the shadowing condition
// spec.md §4.7 treats as a warning.
func (e *Environment) ExistsButNotLocally(name string) bool {
	if e.top().t.Has(name) {
		return false
	}
	for i := len(e.frames) - 2; i >= 0; i-- {
		if e.frames[i].t.Has(name) {
			return true
		}
	}
	return false
}

// ErrResourceLimit is returned by InsertLocal/InsertGlobal when
// MaxSymbols would be exceeded.
type ErrResourceLimit struct{ Limit int }

func (e *ErrResourceLimit) Error() string {
	return "symbols: symbol table limit exceeded"
}

// InsertLocal declares name in the innermost frame. Callers must check
// ExistsLocally first; inserting a duplicate panics (spec.md §4.4
// invariant — "programmer-detectable error").
func (e *Environment) InsertLocal(name string, kind Kind, arity int, nodeRef ast.NodeID) (*Symbol, error) {
	return e.insertInto(e.top(), name, kind, arity, nodeRef)
}

// InsertGlobal declares name in the root frame regardless of current scope
// depth.
func (e *Environment) InsertGlobal(name string, kind Kind, arity int, nodeRef ast.NodeID) (*Symbol, error) {
	return e.insertInto(e.global(), name, kind, arity, nodeRef)
}

func (e *Environment) insertInto(f *frame, name string, kind Kind, arity int, nodeRef ast.NodeID) (*Symbol, error) {
	if e.MaxSymbols > 0 && e.liveCount >= e.MaxSymbols {
		return nil, &ErrResourceLimit{Limit: e.MaxSymbols}
	}
	sym := &Symbol{ID: e.nextID, Name: name, Kind: kind, Arity: arity, NodeRef: nodeRef}
	e.nextID++
	e.liveCount++
	f.t.Insert(name, sym)
	return sym, nil
}

// RetrieveAny looks up name starting at the innermost frame and searching
// outward.
func (e *Environment) RetrieveAny(name string) (*Symbol, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if sym, ok := e.frames[i].t.Get(name); ok {
			return sym, true
		}
	}
	return nil, false
}

// RetrieveLocal looks up name in the innermost frame only.
func (e *Environment) RetrieveLocal(name string) (*Symbol, bool) { return e.top().t.Get(name) }

// RetrieveGlobal looks up name in the root frame only.
func (e *Environment) RetrieveGlobal(name string) (*Symbol, bool) { return e.global().t.Get(name) }

// Depth returns the current number of open scopes (>= 1).
func (e *Environment) Depth() int { return len(e.frames) }
