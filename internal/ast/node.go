// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package ast

import "github.com/magictrick-dev/sigmafox/internal/diag"

// NodeID is a dense, arena-relative index. Symbols reference AST nodes by
// NodeID rather than by pointer (REDESIGN FLAGS, spec.md §9 "Open symbol
// type") so the symbol table never outlives or aliases the tree directly;
// both symbol and node live as long as the owning Parser's Arena does.
type NodeID int

// Node is the common interface every AST variant satisfies. Type
// information (DataKind/StructureKind/length) is populated in place by the
// semantic evaluator as each expression production returns (spec.md §4.5,
// "Type-evaluation hook").
type Node interface {
	ID() NodeID
	Kind() NodeKind
	Pos() diag.Position

	DataKind() DataKind
	StructureKind() StructureKind
	StructureLength() int
	SetType(dk DataKind, sk StructureKind, length int)

	Accept(v Visitor)
}

// base is embedded by every concrete node and implements the bookkeeping
// fields common to all variants.
type base struct {
	id     NodeID
	kind   NodeKind
	pos    diag.Position
	dkind  DataKind
	skind  StructureKind
	length int
}

func (b *base) ID() NodeID                { return b.id }
func (b *base) Kind() NodeKind            { return b.kind }
func (b *base) Pos() diag.Position        { return b.pos }
func (b *base) DataKind() DataKind        { return b.dkind }
func (b *base) StructureKind() StructureKind { return b.skind }
func (b *base) StructureLength() int      { return b.length }

func (b *base) SetType(dk DataKind, sk StructureKind, length int) {
	b.dkind, b.skind, b.length = dk, sk, length
}

// Arena owns every node a single Parser creates. The tree's lifetime is
// therefore bounded by the Parser's lifetime (spec.md §3, "AST node").
type Arena struct {
	nodes []Node
}

func NewArena() *Arena { return &Arena{} }

func (a *Arena) add(n Node) NodeID {
	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, n)
	return id
}

// Get returns the node for id; it panics on an out-of-range id, which would
// indicate a programmer error (a node from a different arena), matching
// spec.md §7's "Internal: invariant violation" category.
func (a *Arena) Get(id NodeID) Node {
	return a.nodes[id]
}

func (a *Arena) Len() int { return len(a.nodes) }

// ---- Module roots ----

// Root is either a Root (globals then Main) module per spec.md §3.
type RootNode struct {
	base
	Globals []Node
	Main    *MainNode
}

// MainNode is the `begin ... end` block; only the entry module has one.
type MainNode struct {
	base
	Body []Node
}

// ModuleNode is an included module: globals only, no Main block.
type ModuleNode struct {
	base
	Globals []Node
}

func (a *Arena) NewRoot(pos diag.Position, globals []Node, main *MainNode) *RootNode {
	n := &RootNode{base: base{kind: KindRoot, pos: pos}, Globals: globals, Main: main}
	n.id = a.add(n)
	return n
}

func (a *Arena) NewMain(pos diag.Position, body []Node) *MainNode {
	n := &MainNode{base: base{kind: KindModule, pos: pos}, Body: body}
	n.id = a.add(n)
	return n
}

func (a *Arena) NewModule(pos diag.Position, globals []Node) *ModuleNode {
	n := &ModuleNode{base: base{kind: KindModule, pos: pos}, Globals: globals}
	n.id = a.add(n)
	return n
}

// ---- Globals ----

// IncludeNode is `include "path";`. Resolved is set once the dependency
// graph has wired a child parser for Path; nil if the include failed
// (cycle, duplicate, or missing file).
type IncludeNode struct {
	base
	Literal  string // raw quoted-string literal as written
	Path     string // canonicalized path
	Resolved Node   // the included module's root, or nil
}

func (a *Arena) NewInclude(pos diag.Position, literal, path string) *IncludeNode {
	n := &IncludeNode{base: base{kind: KindInclude, pos: pos}, Literal: literal, Path: path}
	n.id = a.add(n)
	return n
}

// Param is a formal parameter of a function or procedure.
type Param struct {
	Name string
	Pos  diag.Position
}

type FunctionNode struct {
	base
	Name   string
	Params []Param
	Body   []Node
}

func (a *Arena) NewFunction(pos diag.Position, name string, params []Param, body []Node) *FunctionNode {
	n := &FunctionNode{base: base{kind: KindFunction, pos: pos}, Name: name, Params: params, Body: body}
	n.id = a.add(n)
	return n
}

type ProcedureNode struct {
	base
	Name   string
	Params []Param
	Body   []Node
}

func (a *Arena) NewProcedure(pos diag.Position, name string, params []Param, body []Node) *ProcedureNode {
	n := &ProcedureNode{base: base{kind: KindProcedure, pos: pos}, Name: name, Params: params, Body: body}
	n.id = a.add(n)
	return n
}

// ---- Statements ----

// VarDeclNode is `variable x size dim1 ... (:= init)?;`. The parser reads
// Dims[0] as a capacity that does not count toward rank, so x is an array
// of rank len(Dims)-1 when that is positive and a scalar otherwise.
type VarDeclNode struct {
	base
	Name string
	Dims []Node
	Init Node // nil if no initializer
}

func (a *Arena) NewVarDecl(pos diag.Position, name string, dims []Node, init Node) *VarDeclNode {
	n := &VarDeclNode{base: base{kind: KindVarDecl, pos: pos}, Name: name, Dims: dims, Init: init}
	n.id = a.add(n)
	return n
}

type ScopeNode struct {
	base
	Body []Node
}

func (a *Arena) NewScope(pos diag.Position, body []Node) *ScopeNode {
	n := &ScopeNode{base: base{kind: KindScope, pos: pos}, Body: body}
	n.id = a.add(n)
	return n
}

type WhileNode struct {
	base
	Cond Node
	Body []Node
}

func (a *Arena) NewWhile(pos diag.Position, cond Node, body []Node) *WhileNode {
	n := &WhileNode{base: base{kind: KindWhile, pos: pos}, Cond: cond, Body: body}
	n.id = a.add(n)
	return n
}

// LoopNode is the counted `loop i a b [s]; ... endloop;` construct. Step is
// nil when unspecified (codegen defaults to 1, spec.md §4.8).
type LoopNode struct {
	base
	Counter string
	From    Node
	To      Node
	Step    Node
	Body    []Node
	Parallel bool // true for `ploop`; spec.md §9 treats this as a plain loop
}

func (a *Arena) NewLoop(pos diag.Position, counter string, from, to, step Node, body []Node, parallel bool) *LoopNode {
	n := &LoopNode{base: base{kind: KindLoop, pos: pos}, Counter: counter, From: from, To: to, Step: step, Body: body, Parallel: parallel}
	n.id = a.add(n)
	return n
}

// IfBranch is one `if`/`elseif` arm; the final branch may have a nil Cond
// to represent a trailing `else`-like fallthrough is NOT part of the
// grammar (spec.md §6 only has if/elseif/endif), so every branch has Cond.
type IfBranch struct {
	Cond Node
	Body []Node
}

type IfNode struct {
	base
	Branches []IfBranch
}

func (a *Arena) NewIf(pos diag.Position, branches []IfBranch) *IfNode {
	n := &IfNode{base: base{kind: KindIf, pos: pos}, Branches: branches}
	n.id = a.add(n)
	return n
}

// ReadNode is `read location target;`. Location is a stream/unit
// designator expression (juxtaposed, not a quoted path — grounded on
// _examples/original_source/source/compiler/parser/statements.hpp's
// SyntaxNodeReadStatement, whose `location` field is itself a SyntaxNode).
type ReadNode struct {
	base
	Location Node
	Target   Node // identifier or index expression
}

func (a *Arena) NewRead(pos diag.Position, location, target Node) *ReadNode {
	n := &ReadNode{base: base{kind: KindRead, pos: pos}, Location: location, Target: target}
	n.id = a.add(n)
	return n
}

// WriteNode is `write location e1 e2 ...;`, space-juxtaposed like the rest
// of the grammar (no commas), grounded on the same statements.hpp's
// SyntaxNodeWriteStatement (`location` + `expressions`).
type WriteNode struct {
	base
	Location Node
	Args     []Node
}

func (a *Arena) NewWrite(pos diag.Position, location Node, args []Node) *WriteNode {
	n := &WriteNode{base: base{kind: KindWrite, pos: pos}, Location: location, Args: args}
	n.id = a.add(n)
	return n
}

// ProcCallStmtNode is a bare procedure-call statement (spec.md §4.5 lists
// `procedure-call` as its own statement production, distinct from a
// function-call expression).
type ProcCallStmtNode struct {
	base
	Call *CallNode
}

func (a *Arena) NewProcCallStmt(pos diag.Position, call *CallNode) *ProcCallStmtNode {
	n := &ProcCallStmtNode{base: base{kind: KindProcCallStmt, pos: pos}, Call: call}
	n.id = a.add(n)
	return n
}

type ExprStmtNode struct {
	base
	Expr Node
}

func (a *Arena) NewExprStmt(pos diag.Position, expr Node) *ExprStmtNode {
	n := &ExprStmtNode{base: base{kind: KindExprStmt, pos: pos}, Expr: expr}
	n.id = a.add(n)
	return n
}

// ---- Expressions ----

type AssignNode struct {
	base
	Target Node // Identifier or Index
	Value  Node
}

func (a *Arena) NewAssign(pos diag.Position, target, value Node) *AssignNode {
	n := &AssignNode{base: base{kind: KindAssign, pos: pos}, Target: target, Value: value}
	n.id = a.add(n)
	return n
}

// BinaryOp enumerates spec.md §4.5's binary operator set (equality through
// derivation).
type BinaryOp int

const (
	OpEq BinaryOp = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpConcat // &
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow       // ^ magnitude, right-associative
	OpExtract   // |
	OpDerive    // %
)

func (op BinaryOp) String() string {
	switch op {
	case OpEq:
		return "="
	case OpNe:
		return "#"
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpConcat:
		return "&"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	case OpExtract:
		return "|"
	case OpDerive:
		return "%"
	default:
		return "?"
	}
}

type BinaryNode struct {
	base
	Op    BinaryOp
	Left  Node
	Right Node
}

func (a *Arena) NewBinary(pos diag.Position, op BinaryOp, left, right Node) *BinaryNode {
	n := &BinaryNode{base: base{kind: KindBinary, pos: pos}, Op: op, Left: left, Right: right}
	n.id = a.add(n)
	return n
}

type UnaryNode struct {
	base
	Operand Node
}

func (a *Arena) NewUnary(pos diag.Position, operand Node) *UnaryNode {
	n := &UnaryNode{base: base{kind: KindUnary, pos: pos}, Operand: operand}
	n.id = a.add(n)
	return n
}

// CallNode is a function or procedure invocation; sema disambiguates by
// symbol kind (spec.md §4.7).
type CallNode struct {
	base
	Callee string
	Args   []Node
}

func (a *Arena) NewCall(pos diag.Position, callee string, args []Node) *CallNode {
	n := &CallNode{base: base{kind: KindCall, pos: pos}, Callee: callee, Args: args}
	n.id = a.add(n)
	return n
}

type IndexNode struct {
	base
	Array   string
	Indices []Node
}

func (a *Arena) NewIndex(pos diag.Position, array string, indices []Node) *IndexNode {
	n := &IndexNode{base: base{kind: KindIndex, pos: pos}, Array: array, Indices: indices}
	n.id = a.add(n)
	return n
}

type IdentifierNode struct {
	base
	Name string
}

func (a *Arena) NewIdentifier(pos diag.Position, name string) *IdentifierNode {
	n := &IdentifierNode{base: base{kind: KindIdentifier, pos: pos}, Name: name}
	n.id = a.add(n)
	return n
}

type IntegerLitNode struct {
	base
	Value int64
}

func (a *Arena) NewIntegerLit(pos diag.Position, value int64) *IntegerLitNode {
	n := &IntegerLitNode{base: base{kind: KindIntegerLit, pos: pos}, Value: value}
	n.id = a.add(n)
	return n
}

type RealLitNode struct {
	base
	Value float64
}

func (a *Arena) NewRealLit(pos diag.Position, value float64) *RealLitNode {
	n := &RealLitNode{base: base{kind: KindRealLit, pos: pos}, Value: value}
	n.id = a.add(n)
	return n
}

// ComplexLitNode is SigmaFox's `a i` imaginary literal (spec.md §4.8).
type ComplexLitNode struct {
	base
	Imag float64
}

func (a *Arena) NewComplexLit(pos diag.Position, imag float64) *ComplexLitNode {
	n := &ComplexLitNode{base: base{kind: KindComplexLit, pos: pos}, Imag: imag}
	n.id = a.add(n)
	return n
}

type StringLitNode struct {
	base
	Value string
}

func (a *Arena) NewStringLit(pos diag.Position, value string) *StringLitNode {
	n := &StringLitNode{base: base{kind: KindStringLit, pos: pos}, Value: value}
	n.id = a.add(n)
	return n
}
