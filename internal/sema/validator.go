// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package sema

import (
	"github.com/magictrick-dev/sigmafox/internal/ast"
	"github.com/magictrick-dev/sigmafox/internal/diag"
	"github.com/magictrick-dev/sigmafox/internal/symbols"
)

// Validator enforces the declaration-time rules of spec.md §4.7 that the
// Evaluator's expression walk does not: local redeclaration, shadowing,
// the single-`begin`-per-compilation invariant, call-site arity/kind
// checks, and direct-recursion detection. A Validator is shared across
// every module parsed in one compilation so the `begin` and recursion
// checks see the whole program.
type Validator struct {
	Eval *Evaluator

	beginSeen    bool
	beginAt      diag.Position
	callStack    []string
}

func NewValidator(eval *Evaluator) *Validator {
	v := &Validator{Eval: eval}
	eval.val = v
	return v
}

func (v *Validator) diags() *diag.Aggregator { return v.Eval.Diags }
func (v *Validator) env() *symbols.Environment { return v.Eval.Env }

// DeclareMain records the one `begin` block permitted across a
// compilation's modules (spec.md §4.7, "begin may be declared at most once
// across all modules").
func (v *Validator) DeclareMain(pos diag.Position) {
	if v.beginSeen {
		v.diags().Report(diag.Errorf(diag.CodeMultipleBegin, pos,
			"'begin' already declared at %s", v.beginAt))
		return
	}
	v.beginSeen = true
	v.beginAt = pos
}

// DeclareLocal declares name in the current frame, reporting a local
// redeclaration as an error and an outer-scope shadow as a warning, per
// spec.md §4.7's scoping rules. It returns the declared symbol, or the
// pre-existing one on a redeclaration error (so the caller can continue).
func (v *Validator) DeclareLocal(pos diag.Position, name string, kind symbols.Kind, arity int, nodeRef ast.NodeID) *symbols.Symbol {
	env := v.env()
	if env.ExistsLocally(name) {
		v.diags().Report(diag.Errorf(diag.CodeRedeclaredIdentifier, pos,
			"%q is already declared in this scope", name))
		sym, _ := env.RetrieveLocal(name)
		return sym
	}
	if env.ExistsButNotLocally(name) {
		v.diags().Report(diag.Warnf(diag.CodeShadowedIdentifier, pos,
			"%q shadows an identifier declared in an enclosing scope", name))
	}
	sym, err := env.InsertLocal(name, kind, arity, nodeRef)
	if err != nil {
		v.diags().Report(diag.Errorf(diag.CodeResourceLimitExceeded, pos, "%v", err))
		return nil
	}
	return sym
}

// DeclareGlobal is DeclareLocal's counterpart for module-level (global
// frame) declarations: functions, procedures, and top-level variables.
func (v *Validator) DeclareGlobal(pos diag.Position, name string, kind symbols.Kind, arity int, nodeRef ast.NodeID) *symbols.Symbol {
	env := v.env()
	if env.ExistsGlobally(name) {
		v.diags().Report(diag.Errorf(diag.CodeRedeclaredIdentifier, pos,
			"%q is already declared", name))
		sym, _ := env.RetrieveGlobal(name)
		return sym
	}
	sym, err := env.InsertGlobal(name, kind, arity, nodeRef)
	if err != nil {
		v.diags().Report(diag.Errorf(diag.CodeResourceLimitExceeded, pos, "%v", err))
		return nil
	}
	return sym
}

// ValidateCall resolves callee against the symbol table and checks arity;
// wantProcedure distinguishes a procedure-call statement from a
// function-call expression (spec.md §4.7). It reports diagnostics directly
// and returns the resolved symbol, or nil if resolution failed.
func (v *Validator) ValidateCall(pos diag.Position, callee string, argCount int, wantProcedure bool) *symbols.Symbol {
	for _, active := range v.callStack {
		if active == callee {
			v.diags().Report(diag.Errorf(diag.CodeDirectRecursion, pos,
				"%q recurses directly; its body will not be validated again", callee))
			sym, _ := v.env().RetrieveAny(callee)
			return sym
		}
	}
	sym, ok := v.env().RetrieveAny(callee)
	if !ok {
		v.diags().Report(diag.Errorf(diag.CodeUndeclaredIdentifier, pos, "undeclared identifier %q", callee))
		return nil
	}
	wantKind := symbols.KindFunction
	if wantProcedure {
		wantKind = symbols.KindProcedure
	}
	if sym.Kind != wantKind {
		v.diags().Report(diag.Errorf(diag.CodeKindMismatch, pos,
			"%q is a %s, not a %s", callee, sym.Kind, wantKind))
		return sym
	}
	if sym.Arity != argCount {
		v.diags().Report(diag.Errorf(diag.CodeArityMismatch, pos,
			"%q expects %d argument(s), got %d", callee, sym.Arity, argCount))
	}
	return sym
}

// EnterFunction pushes name onto the recursion-detection stack, reporting
// and refusing entry if name is already active (spec.md §4.7, "direct
// recursion ... entering a body whose identifier is already on the stack
// is reported and validation of that body is skipped").
func (v *Validator) EnterFunction(pos diag.Position, name string) bool {
	for _, active := range v.callStack {
		if active == name {
			v.diags().Report(diag.Errorf(diag.CodeDirectRecursion, pos,
				"%q recurses directly; its body will not be validated again", name))
			return false
		}
	}
	v.callStack = append(v.callStack, name)
	return true
}

// ExitFunction pops the innermost active function/procedure name.
func (v *Validator) ExitFunction() {
	v.callStack = v.callStack[:len(v.callStack)-1]
}
