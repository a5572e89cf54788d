// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

// Package symbols implements the Symbol, Symbol Table, and Symbol
// Environment of spec.md §4.4: an FNV-1a open-addressed hash map wrapped
// in a stack of scopes. Grounded on
// _examples/original_source/SFRefactor/source/compiler/symbols.hpp and
// symbolstack.hpp.
package symbols

import "github.com/magictrick-dev/sigmafox/internal/ast"

// Kind classifies what a Symbol names.
type Kind int

const (
	KindVariable Kind = iota
	KindArray
	KindFunction
	KindProcedure
	KindDeclaredUndefined
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindArray:
		return "array"
	case KindFunction:
		return "function"
	case KindProcedure:
		return "procedure"
	case KindDeclaredUndefined:
		return "declared-undefined"
	default:
		return "unknown"
	}
}

// Symbol is an entry in the symbol table. Its type is derived from its
// defining AST node (NodeRef), never stored redundantly (spec.md §3).
type Symbol struct {
	ID      int // dense ID, assigned on insertion in declaration order
	Name    string
	Kind    Kind
	Arity   int // parameter count, or array rank
	NodeRef ast.NodeID
}

// DataKind resolves the symbol's type by looking at its defining node.
func (s *Symbol) DataKind(arena *ast.Arena) ast.DataKind {
	return arena.Get(s.NodeRef).DataKind()
}
