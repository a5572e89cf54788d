// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package parser

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"go.uber.org/zap"

	"github.com/magictrick-dev/sigmafox/internal/deps"
	"github.com/magictrick-dev/sigmafox/internal/diag"
	"github.com/magictrick-dev/sigmafox/internal/lex"
	"github.com/magictrick-dev/sigmafox/internal/registry"
	"github.com/magictrick-dev/sigmafox/internal/sema"
	"github.com/magictrick-dev/sigmafox/internal/symbols"
)

// newRootParser writes source into an in-memory filesystem and returns a
// Parser positioned at it as a compilation's entry module.
func newRootParser(t *testing.T, path, source string) *Parser {
	t.Helper()
	fs := memfs.New()
	f, err := fs.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	if _, err := f.Write([]byte(source)); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	f.Close()

	reg := registry.New(fs)
	handle, err := reg.Create(path)
	if err != nil {
		t.Fatalf("registry create: %v", err)
	}
	if err := reg.Load(handle); err != nil {
		t.Fatalf("registry load: %v", err)
	}

	graph := deps.New()
	if _, err := graph.SetEntry(path); err != nil {
		t.Fatalf("SetEntry: %v", err)
	}
	env := symbols.NewEnvironment()
	aggregator := diag.NewAggregator(zap.NewNop(), false)
	val := sema.NewValidator(sema.NewEvaluator(nil, env, aggregator))
	p, err := New(reg, graph, env, val, aggregator, lex.Options{}, handle)
	if err != nil {
		t.Fatalf("parser.New: %v", err)
	}
	graph.SetOwner(path, p)
	// The Validator's Evaluator must share this parser's Arena so node
	// references stamped during parsing resolve correctly.
	val.Eval.Arena = p.Arena()
	return p
}

func TestParser_TrivialProgram(t *testing.T) {
	p := newRootParser(t, "/main.fox", "begin ; write 1 2 3; end;")
	root := p.ParseAsRoot()
	if p.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d, diags=%v", p.ErrorCount(), p.diags.Diagnostics())
	}
	if root.Main == nil {
		t.Fatalf("expected a Main block")
	}
	if len(root.Main.Body) != 1 {
		t.Fatalf("expected one statement in main body, got %d", len(root.Main.Body))
	}
}

func TestParser_UndeclaredIdentifier(t *testing.T) {
	p := newRootParser(t, "/main.fox", "begin; write 6 q; end;")
	p.ParseAsRoot()
	if !p.diags.HasErrors() {
		t.Fatalf("expected an undeclared-identifier diagnostic")
	}
}

func TestParser_TypePromotion(t *testing.T) {
	p := newRootParser(t, "/main.fox", "begin; variable x 8; x := 1 + 2.5; end;")
	root := p.ParseAsRoot()
	if p.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: diags=%v", p.diags.Diagnostics())
	}
	if len(root.Main.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(root.Main.Body))
	}
	sym, ok := p.env.RetrieveGlobal("x")
	if !ok {
		t.Fatalf("expected x to be declared")
	}
	if sym.Arity != 0 {
		t.Fatalf("expected x to be a scalar (arity 0), got arity %d", sym.Arity)
	}
}

func TestParser_DirectRecursionDiagnostic(t *testing.T) {
	p := newRootParser(t, "/main.fox", "function f x; f(x); endfunction; begin; end;")
	p.ParseAsRoot()
	found := false
	for _, d := range p.diags.Diagnostics() {
		if d.Code == diag.CodeDirectRecursion {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a direct-recursion diagnostic, got %v", p.diags.Diagnostics())
	}
}
