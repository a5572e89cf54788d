// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package ast

// Dumper is the reference/debug printer visitor of spec.md §4.6: it walks
// a tree and builds a plain map[string]any tree suitable for
// github.com/ohler55/ojg/oj marshaling and github.com/ohler55/ojg/jp
// JSONPath queries in tests, rather than a second bespoke pretty-printer.
type Dumper struct {
	NoopVisitor
	result map[string]any
}

// Dump renders n and its subtree as a JSON-marshalable map.
func Dump(n Node) map[string]any {
	d := &Dumper{}
	n.Accept(d)
	return d.result
}

func (d *Dumper) node(kind string, fields map[string]any) map[string]any {
	fields["kind"] = kind
	d.result = fields
	return fields
}

func dumpChild(n Node) map[string]any {
	if n == nil {
		return nil
	}
	return Dump(n)
}

func dumpChildren(ns []Node) []any {
	out := make([]any, len(ns))
	for i, n := range ns {
		out[i] = dumpChild(n)
	}
	return out
}

func (d *Dumper) VisitRoot(n *RootNode) {
	d.node("Root", map[string]any{"globals": dumpChildren(n.Globals), "main": dumpChild(n.Main)})
}

func (d *Dumper) VisitMain(n *MainNode) {
	d.node("Main", map[string]any{"body": dumpChildren(n.Body)})
}

func (d *Dumper) VisitModule(n *ModuleNode) {
	d.node("Module", map[string]any{"globals": dumpChildren(n.Globals)})
}

func (d *Dumper) VisitInclude(n *IncludeNode) {
	d.node("Include", map[string]any{"literal": n.Literal, "path": n.Path, "resolved": n.Resolved != nil})
}

func (d *Dumper) VisitFunction(n *FunctionNode) {
	d.node("Function", map[string]any{"name": n.Name, "params": paramNames(n.Params), "body": dumpChildren(n.Body)})
}

func (d *Dumper) VisitProcedure(n *ProcedureNode) {
	d.node("Procedure", map[string]any{"name": n.Name, "params": paramNames(n.Params), "body": dumpChildren(n.Body)})
}

func paramNames(params []Param) []any {
	out := make([]any, len(params))
	for i, p := range params {
		out[i] = p.Name
	}
	return out
}

func (d *Dumper) VisitVarDecl(n *VarDeclNode) {
	d.node("VarDecl", map[string]any{
		"name": n.Name, "dims": dumpChildren(n.Dims), "init": dumpChild(n.Init),
		"dataKind": n.DataKind().String(), "structureKind": n.StructureKind().String(),
	})
}

func (d *Dumper) VisitScope(n *ScopeNode) { d.node("Scope", map[string]any{"body": dumpChildren(n.Body)}) }

func (d *Dumper) VisitWhile(n *WhileNode) {
	d.node("While", map[string]any{"cond": dumpChild(n.Cond), "body": dumpChildren(n.Body)})
}

func (d *Dumper) VisitLoop(n *LoopNode) {
	d.node("Loop", map[string]any{
		"counter": n.Counter, "from": dumpChild(n.From), "to": dumpChild(n.To),
		"step": dumpChild(n.Step), "body": dumpChildren(n.Body), "parallel": n.Parallel,
	})
}

func (d *Dumper) VisitIf(n *IfNode) {
	branches := make([]any, len(n.Branches))
	for i, b := range n.Branches {
		branches[i] = map[string]any{"cond": dumpChild(b.Cond), "body": dumpChildren(b.Body)}
	}
	d.node("If", map[string]any{"branches": branches})
}

func (d *Dumper) VisitRead(n *ReadNode) {
	d.node("Read", map[string]any{"location": dumpChild(n.Location), "target": dumpChild(n.Target)})
}

func (d *Dumper) VisitWrite(n *WriteNode) {
	d.node("Write", map[string]any{"location": dumpChild(n.Location), "args": dumpChildren(n.Args)})
}

func (d *Dumper) VisitProcCallStmt(n *ProcCallStmtNode) {
	d.node("ProcCallStmt", map[string]any{"call": dumpChild(n.Call)})
}

func (d *Dumper) VisitExprStmt(n *ExprStmtNode) {
	d.node("ExprStmt", map[string]any{"expr": dumpChild(n.Expr)})
}

func (d *Dumper) VisitAssign(n *AssignNode) {
	d.node("Assign", map[string]any{"target": dumpChild(n.Target), "value": dumpChild(n.Value)})
}

func (d *Dumper) VisitBinary(n *BinaryNode) {
	d.node("Binary", map[string]any{
		"op": n.Op.String(), "left": dumpChild(n.Left), "right": dumpChild(n.Right),
		"dataKind": n.DataKind().String(),
	})
}

func (d *Dumper) VisitUnary(n *UnaryNode) {
	d.node("Unary", map[string]any{"operand": dumpChild(n.Operand)})
}

func (d *Dumper) VisitCall(n *CallNode) {
	d.node("Call", map[string]any{"callee": n.Callee, "args": dumpChildren(n.Args)})
}

func (d *Dumper) VisitIndex(n *IndexNode) {
	d.node("Index", map[string]any{"array": n.Array, "indices": dumpChildren(n.Indices)})
}

func (d *Dumper) VisitIdentifier(n *IdentifierNode) {
	d.node("Identifier", map[string]any{"name": n.Name})
}

func (d *Dumper) VisitIntegerLit(n *IntegerLitNode) {
	d.node("IntegerLit", map[string]any{"value": n.Value})
}

func (d *Dumper) VisitRealLit(n *RealLitNode) {
	d.node("RealLit", map[string]any{"value": n.Value})
}

func (d *Dumper) VisitComplexLit(n *ComplexLitNode) {
	d.node("ComplexLit", map[string]any{"imag": n.Imag})
}

func (d *Dumper) VisitStringLit(n *StringLitNode) {
	d.node("StringLit", map[string]any{"value": n.Value})
}
