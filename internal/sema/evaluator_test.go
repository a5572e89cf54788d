// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package sema

import (
	"testing"

	"github.com/magictrick-dev/sigmafox/internal/ast"
	"github.com/magictrick-dev/sigmafox/internal/diag"
	"github.com/magictrick-dev/sigmafox/internal/symbols"
	"go.uber.org/zap"
)

func newTestEvaluator(t *testing.T) (*ast.Arena, *symbols.Environment, *Evaluator) {
	t.Helper()
	arena := ast.NewArena()
	env := symbols.NewEnvironment()
	agg := diag.NewAggregator(zap.NewNop(), false)
	return arena, env, NewEvaluator(arena, env, agg)
}

func TestEvaluator_ArithmeticPromotion(t *testing.T) {
	arena, _, eval := newTestEvaluator(t)
	pos := diag.Position{Path: "t.sf", Row: 1, Column: 1}

	left := arena.NewIntegerLit(pos, 1)
	right := arena.NewRealLit(pos, 2.5)
	bin := arena.NewBinary(pos, ast.OpAdd, left, right)

	dk, sk, _ := eval.Evaluate(bin)
	if dk != ast.KindReal {
		t.Fatalf("expected promotion to real, got %s", dk)
	}
	if sk != ast.StructScalar {
		t.Fatalf("expected scalar structure, got %s", sk)
	}
	if eval.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", eval.Diags.Diagnostics())
	}
}

func TestEvaluator_StringNumericMismatch(t *testing.T) {
	arena, _, eval := newTestEvaluator(t)
	pos := diag.Position{Path: "t.sf", Row: 1, Column: 1}

	left := arena.NewStringLit(pos, "hi")
	right := arena.NewIntegerLit(pos, 1)
	bin := arena.NewBinary(pos, ast.OpAdd, left, right)

	dk, _, _ := eval.Evaluate(bin)
	if dk != ast.KindErrorData {
		t.Fatalf("expected error kind, got %s", dk)
	}
	if !eval.Diags.HasErrors() {
		t.Fatalf("expected a kind-mismatch diagnostic")
	}
}

func TestEvaluator_ConcatStringifiesRHS(t *testing.T) {
	arena, _, eval := newTestEvaluator(t)
	pos := diag.Position{Path: "t.sf", Row: 1, Column: 1}

	left := arena.NewStringLit(pos, "n=")
	right := arena.NewIntegerLit(pos, 7)
	bin := arena.NewBinary(pos, ast.OpConcat, left, right)

	dk, sk, _ := eval.Evaluate(bin)
	if dk != ast.KindString || sk != ast.StructString {
		t.Fatalf("expected string/string, got %s/%s", dk, sk)
	}
	if eval.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", eval.Diags.Diagnostics())
	}
}

func TestEvaluator_UndeclaredIdentifier(t *testing.T) {
	arena, _, eval := newTestEvaluator(t)
	pos := diag.Position{Path: "t.sf", Row: 1, Column: 1}

	id := arena.NewIdentifier(pos, "missing")
	dk, _, _ := eval.Evaluate(id)
	if dk != ast.KindErrorData {
		t.Fatalf("expected error kind for undeclared identifier, got %s", dk)
	}
	if !eval.Diags.HasErrors() {
		t.Fatalf("expected an undeclared-identifier diagnostic")
	}
}

// TestEvaluator_CallExpressionValidatesArity realizes spec.md §4.7's call
// resolution for a call reached only through expression context, not a
// procedure-call statement: `x := f(1, 2)` against a one-parameter
// function must report an arity mismatch, which only happens if VisitCall
// actually runs through Validator.ValidateCall.
func TestEvaluator_CallExpressionValidatesArity(t *testing.T) {
	arena, env, eval := newTestEvaluator(t)
	NewValidator(eval)
	pos := diag.Position{Path: "t.sf", Row: 1, Column: 1}

	fn := arena.NewFunction(pos, "f", []ast.Param{{Name: "p"}}, nil)
	fn.SetType(ast.KindInteger, ast.StructScalar, 1)
	if _, err := env.InsertGlobal("f", symbols.KindFunction, 1, fn.ID()); err != nil {
		t.Fatalf("insert f: %v", err)
	}

	call := arena.NewCall(pos, "f", []ast.Node{arena.NewIntegerLit(pos, 1), arena.NewIntegerLit(pos, 2)})

	dk, _, _ := eval.Evaluate(call)
	if dk != ast.KindInteger {
		t.Fatalf("expected f's declared return kind despite the arity error, got %s", dk)
	}
	arityReported := false
	for _, d := range eval.Diags.Diagnostics() {
		if d.Code == diag.CodeArityMismatch {
			arityReported = true
		}
	}
	if !arityReported {
		t.Fatalf("expected an arity-mismatch diagnostic for a 2-arg call to a 1-arg function, got %v", eval.Diags.Diagnostics())
	}
}

// TestEvaluator_CallExpressionReportsUndeclaredCallee covers the same
// expression-only path for a callee that was never declared at all.
func TestEvaluator_CallExpressionReportsUndeclaredCallee(t *testing.T) {
	_, _, eval := newTestEvaluator(t)
	NewValidator(eval)
	pos := diag.Position{Path: "t.sf", Row: 1, Column: 1}

	call := eval.Arena.NewCall(pos, "missing", nil)
	dk, _, _ := eval.Evaluate(call)
	if dk != ast.KindErrorData {
		t.Fatalf("expected error kind for an undeclared callee, got %s", dk)
	}
	if !eval.Diags.HasErrors() {
		t.Fatalf("expected an undeclared-identifier diagnostic")
	}
}

func TestEvaluator_VectorLengthMismatch(t *testing.T) {
	arena, env, eval := newTestEvaluator(t)
	pos := diag.Position{Path: "t.sf", Row: 1, Column: 1}

	declA := arena.NewVarDecl(pos, "a", []ast.Node{arena.NewIntegerLit(pos, 3)}, nil)
	declA.SetType(ast.KindReal, ast.StructVector, 3)
	declB := arena.NewVarDecl(pos, "b", []ast.Node{arena.NewIntegerLit(pos, 4)}, nil)
	declB.SetType(ast.KindReal, ast.StructVector, 4)

	if _, err := env.InsertGlobal("a", symbols.KindArray, 1, declA.ID()); err != nil {
		t.Fatalf("insert a: %v", err)
	}
	if _, err := env.InsertGlobal("b", symbols.KindArray, 1, declB.ID()); err != nil {
		t.Fatalf("insert b: %v", err)
	}

	left := arena.NewIdentifier(pos, "a")
	right := arena.NewIdentifier(pos, "b")
	bin := arena.NewBinary(pos, ast.OpAdd, left, right)

	dk, _, _ := eval.Evaluate(bin)
	if dk != ast.KindErrorData {
		t.Fatalf("expected error kind on length mismatch, got %s", dk)
	}
}
