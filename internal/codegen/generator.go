// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/magictrick-dev/sigmafox/internal/ast"
	"github.com/magictrick-dev/sigmafox/internal/diag"
)

// standardHeaders are the header-region #include directives spec.md §4.8
// requires for any generated file that can contain SigmaFox-derived code.
var standardHeaders = []string{
	"<iostream>", "<complex>", "<vector>", "<string>", "<cstdint>", "<cmath>",
}

// Generator walks an AST post-order (via ast.Visitor double dispatch),
// emitting C++ into the currently active GeneratedFile per spec.md §4.8's
// emission rule table. Grounded on
// _examples/original_source/SFRefactor/source/compiler/visitors/generation.hpp's
// GenerationVisitor, generalized from one main_file + include_files vector
// to a Tree keyed by canonicalized path (so shared includes are generated
// exactly once, per spec.md §4.3's "shared inclusion" invariant).
type Generator struct {
	ast.NoopVisitor

	Tree    *Tree
	Diags   *diag.Aggregator
	TabSize int

	current *GeneratedFile
	visited map[string]bool
}

// NewGenerator prepares a Generator writing into tree.
func NewGenerator(tree *Tree, diags *diag.Aggregator) *Generator {
	return &Generator{Tree: tree, Diags: diags, TabSize: 4, visited: make(map[string]bool)}
}

// GenerateRoot emits outputName.cpp (the entry module: every included
// header, its globals as free declarations, and `int main` from the
// `begin...end` block) plus one header per transitively included module,
// inserting every generated file into g.Tree for a later Commit.
func (g *Generator) GenerateRoot(root *ast.RootNode, outputName string) {
	main := NewGeneratedFile(outputName+".cpp", g.TabSize)
	g.current = main
	for _, h := range standardHeaders {
		main.InsertLine("#include " + h)
	}
	main.InsertBlankLine()

	for _, decl := range root.Globals {
		decl.Accept(g)
	}

	if root.Main != nil {
		main.InsertBlankLine()
		main.InsertLine("int main(int argc, char** argv)")
		main.InsertLine("{")
		main.PushTabs()
		for _, stmt := range root.Main.Body {
			stmt.Accept(g)
		}
		main.InsertLineWithTabs("return 0;")
		main.PopTabs()
		main.InsertLine("}")
	}

	g.Tree.Insert(main)
}

// includeGuard derives a traditional `#ifndef`/`#define` guard name from a
// module path, matching the convention `_examples/original_source/common
// /generate.h` itself uses (`SIGMAFOX_COMMON_GENERATE_H`).
func includeGuard(modulePath string) string {
	stem := strings.TrimSuffix(modulePath, ".fox")
	var b strings.Builder
	b.WriteString("SIGMAFOX_MODULE_")
	for _, r := range stem {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	b.WriteString("_HPP")
	return b.String()
}

func headerName(modulePath string) string {
	stem := strings.TrimSuffix(modulePath, ".fox")
	return stem + ".hpp"
}

func (g *Generator) VisitInclude(n *ast.IncludeNode) {
	header := headerName(n.Path)
	g.current.InsertLine(fmt.Sprintf("#include %q", header))

	if n.Resolved == nil || g.visited[n.Path] {
		return
	}
	g.visited[n.Path] = true

	module, ok := n.Resolved.(*ast.ModuleNode)
	if !ok {
		return
	}

	outer := g.current
	f := NewGeneratedFile(header, g.TabSize)
	g.current = f

	guard := includeGuard(n.Path)
	f.InsertLine("#ifndef " + guard)
	f.InsertLine("#define " + guard)
	for _, h := range standardHeaders {
		f.InsertLine("#include " + h)
	}
	f.InsertBlankLine()

	for _, decl := range module.Globals {
		decl.Accept(g)
	}

	f.InsertBlankLine()
	f.InsertLine("#endif // " + guard)

	g.Tree.Insert(f)
	g.current = outer
}

func (g *Generator) VisitFunction(n *ast.FunctionNode) {
	ret := cppType(n.DataKind(), n.StructureKind(), n.StructureLength())
	g.current.InsertLine(ret + " " + n.Name + "(" + g.paramList(n.Params) + ")")
	g.current.InsertLine("{")
	g.current.PushTabs()
	for _, stmt := range n.Body {
		stmt.Accept(g)
	}
	g.current.PopTabs()
	g.current.InsertLine("}")
	g.current.InsertBlankLine()
}

func (g *Generator) VisitProcedure(n *ast.ProcedureNode) {
	g.current.InsertLine("void " + n.Name + "(" + g.paramList(n.Params) + ")")
	g.current.InsertLine("{")
	g.current.PushTabs()
	for _, stmt := range n.Body {
		stmt.Accept(g)
	}
	g.current.PopTabs()
	g.current.InsertLine("}")
	g.current.InsertBlankLine()
}

// paramList emits every parameter as `auto`-typed; parameter kinds are not
// known until a call site informs them (spec.md §4.7's deferred-parameter-
// kind design), so codegen widens to a template-friendly `auto` parameter
// rather than guessing a concrete type.
func (g *Generator) paramList(params []ast.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = "auto " + p.Name
	}
	return strings.Join(parts, ", ")
}

func (g *Generator) VisitVarDecl(n *ast.VarDeclNode) {
	typ := cppType(n.DataKind(), n.StructureKind(), n.StructureLength())
	line := typ + " " + n.Name
	if n.StructureKind() == ast.StructVector {
		line = typ + " " + n.Name + "(" + strconv.Itoa(n.StructureLength()) + ")"
	}
	if n.Init != nil {
		line += " = " + g.expr(n.Init)
	}
	line += ";"
	g.current.InsertLineWithTabs(line)
}

func (g *Generator) VisitScope(n *ast.ScopeNode) {
	g.current.InsertLineWithTabs("{")
	g.current.PushTabs()
	for _, stmt := range n.Body {
		stmt.Accept(g)
	}
	g.current.PopTabs()
	g.current.InsertLineWithTabs("}")
}

func (g *Generator) VisitWhile(n *ast.WhileNode) {
	g.current.InsertLineWithTabs("while (" + g.expr(n.Cond) + ")")
	g.current.InsertLineWithTabs("{")
	g.current.PushTabs()
	for _, stmt := range n.Body {
		stmt.Accept(g)
	}
	g.current.PopTabs()
	g.current.InsertLineWithTabs("}")
}

// VisitLoop emits the counted `for` loop of spec.md §4.8, saving and
// restoring the counter so a loop nested inside another loop that reuses
// the same counter name cannot clobber the outer one (the original's
// `save`/`restore` keyword pair, carried forward as C++ block scoping: the
// counter is declared inside the for-statement's own scope).
func (g *Generator) VisitLoop(n *ast.LoopNode) {
	step := "1"
	if n.Step != nil {
		step = g.expr(n.Step)
	}
	header := fmt.Sprintf("for (long %s = %s; %s < %s; %s += %s)",
		n.Counter, g.expr(n.From), n.Counter, g.expr(n.To), n.Counter, step)
	g.current.InsertLineWithTabs(header)
	g.current.InsertLineWithTabs("{")
	g.current.PushTabs()
	for _, stmt := range n.Body {
		stmt.Accept(g)
	}
	g.current.PopTabs()
	g.current.InsertLineWithTabs("}")
}

func (g *Generator) VisitIf(n *ast.IfNode) {
	for i, branch := range n.Branches {
		keyword := "if"
		if i > 0 {
			keyword = "else if"
		}
		g.current.InsertLineWithTabs(keyword + " (" + g.expr(branch.Cond) + ")")
		g.current.InsertLineWithTabs("{")
		g.current.PushTabs()
		for _, stmt := range branch.Body {
			stmt.Accept(g)
		}
		g.current.PopTabs()
		g.current.InsertLineWithTabs("}")
	}
}

// VisitRead emits a stream-extraction statement anchored at std::cin.
// Location designates a unit (spec.md §4.8's `read path into x`), but
// this compiler models only the console stream — no `open`/file-unit
// operation exists anywhere else in the grammar (out of scope per
// SPEC_FULL.md's I/O non-goals) — so every designator resolves to
// std::cin. Location is still type-checked in internal/parser/
// internal/sema but cannot itself be an extraction target (`std::cin >>
// 6` doesn't compile: 6 isn't an lvalue), so it is evaluated for that
// side effect only and never emitted.
func (g *Generator) VisitRead(n *ast.ReadNode) {
	g.current.InsertLineWithTabs("std::cin >> " + g.expr(n.Target) + ";")
}

// VisitWrite emits a stream-insertion chain anchored at std::cout, per
// spec.md §4.8's `write path e1, e2, ...` -> "stream-insertion chain"
// rule. Unlike VisitRead, Location can still appear as an insertable
// value here (`<<` has no lvalue requirement), so it stays the first
// operand after std::cout: `write 1 2 3;` (spec §8 Scenario A) becomes
// `std::cout << 1 << 2 << 3;`, reproducing the literal `"123"` output
// while actually routing through the standard output stream.
func (g *Generator) VisitWrite(n *ast.WriteNode) {
	var b strings.Builder
	b.WriteString("std::cout << ")
	b.WriteString(g.expr(n.Location))
	for _, arg := range n.Args {
		b.WriteString(" << ")
		b.WriteString(g.expr(arg))
	}
	b.WriteString(";")
	g.current.InsertLineWithTabs(b.String())
}

func (g *Generator) VisitProcCallStmt(n *ast.ProcCallStmtNode) {
	g.current.InsertLineWithTabs(g.expr(n.Call) + ";")
}

func (g *Generator) VisitExprStmt(n *ast.ExprStmtNode) {
	g.current.InsertLineWithTabs(g.expr(n.Expr) + ";")
}

// expr renders an expression subtree inline; spec.md §4.8's rules are all
// expression-level substitutions, so a small recursive string renderer
// (rather than a second visitor) keeps operator precedence explicit via
// parenthesization instead of relying on C++'s own precedence matching
// SigmaFox's.
func (g *Generator) expr(n ast.Node) string {
	switch e := n.(type) {
	case *ast.IntegerLitNode:
		return strconv.FormatInt(e.Value, 10)
	case *ast.RealLitNode:
		return strconv.FormatFloat(e.Value, 'g', -1, 64)
	case *ast.ComplexLitNode:
		return fmt.Sprintf("std::complex<double>(0.0, %s)", strconv.FormatFloat(e.Imag, 'g', -1, 64))
	case *ast.StringLitNode:
		return strconv.Quote(e.Value)
	case *ast.IdentifierNode:
		return e.Name
	case *ast.UnaryNode:
		return "(-" + g.expr(e.Operand) + ")"
	case *ast.BinaryNode:
		return g.binary(e)
	case *ast.AssignNode:
		return g.expr(e.Target) + " = " + g.expr(e.Value)
	case *ast.CallNode:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = g.expr(a)
		}
		return e.Callee + "(" + strings.Join(args, ", ") + ")"
	case *ast.IndexNode:
		var b strings.Builder
		b.WriteString(e.Array)
		for _, idx := range e.Indices {
			b.WriteString("[")
			b.WriteString(g.expr(idx))
			b.WriteString("]")
		}
		return b.String()
	default:
		return ""
	}
}

// binary renders a binary expression per spec.md §4.8: most operators
// carry straight over to their C++ equivalent; `^` lowers to std::pow;
// `&` to a concatenation helper; `%`/`|` to the out-of-core runtime
// library's derive/extract calls (SPEC_FULL.md §4.16).
func (g *Generator) binary(n *ast.BinaryNode) string {
	l, r := g.expr(n.Left), g.expr(n.Right)
	switch n.Op {
	case ast.OpEq:
		return "(" + l + " == " + r + ")"
	case ast.OpNe:
		return "(" + l + " != " + r + ")"
	case ast.OpLt:
		return "(" + l + " < " + r + ")"
	case ast.OpLe:
		return "(" + l + " <= " + r + ")"
	case ast.OpGt:
		return "(" + l + " > " + r + ")"
	case ast.OpGe:
		return "(" + l + " >= " + r + ")"
	case ast.OpAdd:
		return "(" + l + " + " + r + ")"
	case ast.OpSub:
		return "(" + l + " - " + r + ")"
	case ast.OpMul:
		return "(" + l + " * " + r + ")"
	case ast.OpDiv:
		return "(" + l + " / " + r + ")"
	case ast.OpPow:
		return "std::pow(" + l + ", " + r + ")"
	case ast.OpConcat:
		return g.concat(n, l, r)
	case ast.OpExtract:
		return "sigmafox::runtime::extract(" + l + ", " + r + ")"
	case ast.OpDerive:
		return "sigmafox::runtime::derive(" + l + ", " + r + ")"
	default:
		return "(" + l + " /* unknown op */ " + r + ")"
	}
}

// concat implements the `&` "concatenation helper appropriate to operand
// kinds" rule: string-left concatenation stringifies the RHS via a
// stringstream; numeric concatenation builds a std::vector from both
// operands.
func (g *Generator) concat(n *ast.BinaryNode, l, r string) string {
	if n.Left.DataKind() == ast.KindString {
		return "(" + l + " + sigmafox::runtime::to_string(" + r + "))"
	}
	return "sigmafox::runtime::concat(" + l + ", " + r + ")"
}
