// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

// Package sema implements the Semantic Validator of spec.md §4.7: type
// evaluation over expression subtrees, call resolution, array-indexing
// checks, direct-recursion detection, and the scoping rules layered on
// top of internal/symbols. Grounded on the collect-diagnostics-and-continue
// shape of _examples/mdhender-guanabana/internal/grammar/builder.go's
// Builder, adapted from grammar symbols to SigmaFox data/structure kinds.
package sema

import (
	"github.com/magictrick-dev/sigmafox/internal/ast"
	"github.com/magictrick-dev/sigmafox/internal/diag"
	"github.com/magictrick-dev/sigmafox/internal/symbols"
)

// Evaluator walks one expression subtree at a time, computing and stamping
// (DataKind, StructureKind, StructureLength) per spec.md §4.5's
// "type-evaluation hook". It is re-entered once per expression production;
// state between calls is limited to the shared Env and Diags.
type Evaluator struct {
	ast.NoopVisitor

	Arena *ast.Arena
	Env   *symbols.Environment
	Diags *diag.Aggregator

	// val is set by NewValidator once the two are paired; VisitCall uses it
	// to resolve/validate function-call expressions the same way
	// Validator.ValidateCall already validates procedure-call statements.
	val *Validator

	// result fields, written by the VisitXxx methods and read immediately
	// after Accept returns.
	dkind  ast.DataKind
	skind  ast.StructureKind
	length int
}

func NewEvaluator(arena *ast.Arena, env *symbols.Environment, diags *diag.Aggregator) *Evaluator {
	return &Evaluator{Arena: arena, Env: env, Diags: diags}
}

// Evaluate computes and stamps the type of n, returning the same triple it
// wrote onto the node.
func (e *Evaluator) Evaluate(n ast.Node) (ast.DataKind, ast.StructureKind, int) {
	n.Accept(e)
	n.SetType(e.dkind, e.skind, e.length)
	return e.dkind, e.skind, e.length
}

func (e *Evaluator) set(dk ast.DataKind, sk ast.StructureKind, length int) {
	e.dkind, e.skind, e.length = dk, sk, length
}

func (e *Evaluator) error(pos diag.Position, code diag.Code, format string, args ...any) {
	e.Diags.Report(diag.Errorf(code, pos, format, args...))
}

func (e *Evaluator) warn(pos diag.Position, code diag.Code, format string, args ...any) {
	e.Diags.Report(diag.Warnf(code, pos, format, args...))
}

func (e *Evaluator) VisitIntegerLit(n *ast.IntegerLitNode) {
	e.set(ast.KindInteger, ast.StructScalar, 1)
}

func (e *Evaluator) VisitRealLit(n *ast.RealLitNode) {
	e.set(ast.KindReal, ast.StructScalar, 1)
}

func (e *Evaluator) VisitComplexLit(n *ast.ComplexLitNode) {
	e.set(ast.KindComplex, ast.StructScalar, 1)
}

func (e *Evaluator) VisitStringLit(n *ast.StringLitNode) {
	e.set(ast.KindString, ast.StructString, len(n.Value))
}

func (e *Evaluator) VisitIdentifier(n *ast.IdentifierNode) {
	sym, ok := e.Env.RetrieveAny(n.Name)
	if !ok {
		e.error(n.Pos(), diag.CodeUndeclaredIdentifier, "undeclared identifier %q", n.Name)
		e.set(ast.KindErrorData, ast.StructUnknown, 0)
		return
	}
	defining := e.Arena.Get(sym.NodeRef)
	e.set(defining.DataKind(), defining.StructureKind(), defining.StructureLength())
}

func (e *Evaluator) VisitUnary(n *ast.UnaryNode) {
	dk, sk, length := e.Evaluate(n.Operand)
	if !dk.IsNumeric() && dk != ast.KindUnknownData {
		e.error(n.Pos(), diag.CodeKindMismatch, "unary '-' requires a numeric operand, got %s", dk)
		e.set(ast.KindErrorData, ast.StructUnknown, 0)
		return
	}
	e.set(dk, sk, length)
}

func (e *Evaluator) VisitBinary(n *ast.BinaryNode) {
	ldk, lsk, llen := e.Evaluate(n.Left)
	rdk, rsk, rlen := e.Evaluate(n.Right)

	switch n.Op {
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		e.evalComparison(n, ldk, rdk)
	case ast.OpConcat:
		e.evalConcat(n, ldk, rdk, lsk, rsk, llen, rlen)
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpPow:
		e.evalArithmetic(n, ldk, rdk, lsk, rsk, llen, rlen)
	case ast.OpExtract, ast.OpDerive:
		e.evalRuntimeCall(n, ldk, rdk)
	default:
		e.set(ast.KindErrorData, ast.StructUnknown, 0)
	}
}

func (e *Evaluator) evalComparison(n *ast.BinaryNode, ldk, rdk ast.DataKind) {
	result := ast.Promote(ldk, rdk)
	if result == ast.KindErrorData {
		e.error(n.Pos(), diag.CodeKindMismatch, "cannot compare %s with %s", ldk, rdk)
	}
	e.set(ast.KindInteger, ast.StructScalar, 1)
}

func (e *Evaluator) evalConcat(n *ast.BinaryNode, ldk, rdk ast.DataKind, lsk, rsk ast.StructureKind, llen, rlen int) {
	// Left-operand string casts the RHS to string (stringify); spec.md §4.7.
	if ldk == ast.KindString {
		e.set(ast.KindString, ast.StructString, llen+rlen)
		return
	}
	if ldk.IsNumeric() && rdk.IsNumeric() {
		if lsk == ast.StructVector || rsk == ast.StructVector {
			if ldk == ast.KindComplex || rdk == ast.KindComplex {
				e.error(n.Pos(), diag.CodeKindMismatch, "complex vectors cannot be concatenated")
				e.set(ast.KindErrorData, ast.StructUnknown, 0)
				return
			}
			e.set(ast.Promote(ldk, rdk), ast.StructVector, llen+rlen)
			return
		}
		e.set(ast.Promote(ldk, rdk), ast.StructScalar, 1)
		return
	}
	e.error(n.Pos(), diag.CodeKindMismatch, "'&' requires matching string or numeric operands, got %s and %s", ldk, rdk)
	e.set(ast.KindErrorData, ast.StructUnknown, 0)
}

func (e *Evaluator) evalArithmetic(n *ast.BinaryNode, ldk, rdk ast.DataKind, lsk, rsk ast.StructureKind, llen, rlen int) {
	if !ldk.IsNumeric() || !rdk.IsNumeric() {
		e.error(n.Pos(), diag.CodeKindMismatch, "arithmetic operator requires numeric operands, got %s and %s", ldk, rdk)
		e.set(ast.KindErrorData, ast.StructUnknown, 0)
		return
	}
	if lsk == ast.StructVector && rsk == ast.StructVector && llen != rlen {
		e.error(n.Pos(), diag.CodeVectorLengthMismatch, "vector operands have mismatched lengths %d and %d", llen, rlen)
		e.set(ast.KindErrorData, ast.StructUnknown, 0)
		return
	}
	sk := ast.StructScalar
	length := 1
	if lsk == ast.StructVector || rsk == ast.StructVector {
		sk, length = ast.StructVector, max(llen, rlen)
	}
	e.set(ast.Promote(ldk, rdk), sk, length)
}

// evalRuntimeCall covers '%' (derive) and '|' (extract), both of which
// lower to sigmafox::runtime calls (SPEC_FULL.md §4.16) and both of which
// require numeric operands, producing a real result.
func (e *Evaluator) evalRuntimeCall(n *ast.BinaryNode, ldk, rdk ast.DataKind) {
	if !ldk.IsNumeric() || !rdk.IsNumeric() {
		e.error(n.Pos(), diag.CodeKindMismatch, "'%%'/'|' require numeric operands, got %s and %s", ldk, rdk)
		e.set(ast.KindErrorData, ast.StructUnknown, 0)
		return
	}
	e.set(ast.KindReal, ast.StructScalar, 1)
}

func (e *Evaluator) VisitAssign(n *ast.AssignNode) {
	switch n.Target.(type) {
	case *ast.IdentifierNode, *ast.IndexNode:
	default:
		e.error(n.Pos(), diag.CodeInvalidAssignTarget, "assignment target must be an identifier or array index")
	}
	tdk, tsk, tlen := e.Evaluate(n.Target)
	vdk, _, _ := e.Evaluate(n.Value)
	if tdk != ast.KindErrorData && vdk != ast.KindErrorData && ast.Promote(tdk, vdk) == ast.KindErrorData {
		e.error(n.Pos(), diag.CodeKindMismatch, "cannot assign %s to %s", vdk, tdk)
	}
	e.set(tdk, tsk, tlen)
}

// VisitCall evaluates a function-call expression. Resolution (undeclared
// identifier, kind mismatch, arity, direct recursion) runs through
// Validator.ValidateCall — the same call Parser.parseProcCallStatement
// makes for a procedure-call statement, but with wantProcedure=false —
// so a call reached only through expression context (`x := f(1, 2)`,
// `fact := n * fact(n-1)`) gets exactly the checks spec.md §4.7 requires
// instead of silently evaluating to an error kind with no diagnostic.
func (e *Evaluator) VisitCall(n *ast.CallNode) {
	var sym *symbols.Symbol
	if e.val != nil {
		sym = e.val.ValidateCall(n.Pos(), n.Callee, len(n.Args), false)
	}
	for _, arg := range n.Args {
		e.Evaluate(arg)
	}
	if sym == nil || sym.Kind != symbols.KindFunction {
		e.set(ast.KindErrorData, ast.StructUnknown, 0)
		return
	}
	e.set(sym.DataKind(e.Arena), ast.StructScalar, 1)
}

func (e *Evaluator) VisitIndex(n *ast.IndexNode) {
	sym, ok := e.Env.RetrieveAny(n.Array)
	if !ok {
		e.error(n.Pos(), diag.CodeUndeclaredIdentifier, "undeclared identifier %q", n.Array)
		e.set(ast.KindErrorData, ast.StructUnknown, 0)
		return
	}
	if sym.Kind != symbols.KindArray || sym.Arity == 0 {
		e.error(n.Pos(), diag.CodeIndexNonArray, "%q is not indexable", n.Array)
		e.set(ast.KindErrorData, ast.StructUnknown, 0)
		return
	}
	if len(n.Indices) != sym.Arity {
		e.error(n.Pos(), diag.CodeArityMismatch, "%q has rank %d, indexed with %d", n.Array, sym.Arity, len(n.Indices))
	}
	for _, idx := range n.Indices {
		dk, _, _ := e.Evaluate(idx)
		if dk != ast.KindInteger && dk != ast.KindUnknownData && dk != ast.KindErrorData {
			e.error(idx.Pos(), diag.CodeKindMismatch, "array index must be integer, got %s", dk)
		}
	}
	e.set(sym.DataKind(e.Arena), ast.StructScalar, 1)
}
