// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package parser

import (
	"github.com/magictrick-dev/sigmafox/internal/ast"
	"github.com/magictrick-dev/sigmafox/internal/diag"
	"github.com/magictrick-dev/sigmafox/internal/lex"
	"github.com/magictrick-dev/sigmafox/internal/symbols"
)

// parseLocalStatement matches the local (body) statement taxonomy of
// spec.md §4.5: include, variable declaration, scope block, while, loop,
// if/elseif chain, read, write, procedure-call, expression.
func (p *Parser) parseLocalStatement() ast.Node {
	switch {
	case p.check(lex.KindInclude):
		return p.parseInclude()
	case p.check(lex.KindVariable):
		return p.parseVarDecl()
	case p.check(lex.KindScope):
		return p.parseScope()
	case p.check(lex.KindWhile):
		return p.parseWhile()
	case p.check(lex.KindLoop):
		return p.parseLoop(false)
	case p.check(lex.KindPLoop):
		return p.parseLoop(true)
	case p.check(lex.KindIf):
		return p.parseIf()
	case p.check(lex.KindRead):
		return p.parseRead()
	case p.check(lex.KindWrite):
		return p.parseWrite()
	case p.check(lex.KindIdentifier) && p.checkNext(lex.KindLParen):
		return p.parseProcCallStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseScope() ast.Node {
	start := p.pos()
	p.advance() // 'scope'
	p.env.Push()
	var body []ast.Node
	for !p.tok.AtEnd() && !p.check(lex.KindEndScope) {
		if s := p.parseLocalStatement(); s != nil {
			body = append(body, s)
		}
	}
	p.env.Pop()
	p.match(lex.KindEndScope, "expected 'endscope'")
	p.match(lex.KindSemicolon, "expected ';' after 'endscope'")
	return p.arena.NewScope(start, body)
}

func (p *Parser) parseWhile() ast.Node {
	start := p.pos()
	p.advance() // 'while'
	cond := p.parseExpression()
	p.env.Push()
	var body []ast.Node
	for !p.tok.AtEnd() && !p.check(lex.KindEndWhile) {
		if s := p.parseLocalStatement(); s != nil {
			body = append(body, s)
		}
	}
	p.env.Pop()
	p.match(lex.KindEndWhile, "expected 'endwhile'")
	p.match(lex.KindSemicolon, "expected ';' after 'endwhile'")
	return p.arena.NewWhile(start, cond, body)
}

// parseLoop matches the counted `loop i a b [s]; ... endloop;` construct.
// `ploop` shares its grammar and codegen exactly (spec.md §9 resolves the
// open question of parallel loop semantics to "treat as a plain loop");
// parallel only distinguishes the node for a future scheduler.
func (p *Parser) parseLoop(parallel bool) ast.Node {
	start := p.pos()
	p.advance() // 'loop' or 'ploop'
	counterTok := p.match(lex.KindIdentifier, "expected a loop counter name")
	from := p.parseExpression()
	to := p.parseExpression()
	var step ast.Node
	if !p.check(lex.KindSemicolon) {
		step = p.parseExpression()
	}
	p.match(lex.KindSemicolon, "expected ';' after loop header")

	p.env.Push()
	counterSite := p.arena.NewIdentifier(counterTok.Pos(p.path), counterTok.Lexeme)
	counterSite.SetType(ast.KindInteger, ast.StructScalar, 1)
	_, _ = p.env.InsertLocal(counterTok.Lexeme, symbols.KindVariable, 0, counterSite.ID())

	var body []ast.Node
	end := lex.KindEndLoop
	if parallel {
		end = lex.KindEndPLoop
	}
	for !p.tok.AtEnd() && !p.check(end) {
		if s := p.parseLocalStatement(); s != nil {
			body = append(body, s)
		}
	}
	p.env.Pop()
	p.match(end, "expected loop terminator")
	p.match(lex.KindSemicolon, "expected ';' after loop terminator")
	return p.arena.NewLoop(start, counterTok.Lexeme, from, to, step, body, parallel)
}

func (p *Parser) parseIf() ast.Node {
	start := p.pos()
	var branches []ast.IfBranch

	p.advance() // 'if'
	branches = append(branches, p.parseIfBranch(lex.KindElseIf, lex.KindEndIf))

	for p.check(lex.KindElseIf) {
		p.advance()
		branches = append(branches, p.parseIfBranch(lex.KindElseIf, lex.KindEndIf))
	}

	p.match(lex.KindEndIf, "expected 'endif'")
	p.match(lex.KindSemicolon, "expected ';' after 'endif'")
	return p.arena.NewIf(start, branches)
}

func (p *Parser) parseIfBranch(more, end lex.Kind) ast.IfBranch {
	cond := p.parseExpression()
	p.env.Push()
	var body []ast.Node
	for !p.tok.AtEnd() && !p.check(more) && !p.check(end) {
		if s := p.parseLocalStatement(); s != nil {
			body = append(body, s)
		}
	}
	p.env.Pop()
	return ast.IfBranch{Cond: cond, Body: body}
}

// parseRead matches `read location target;`. location is a stream/unit
// designator expression and target the identifier or index written into;
// both are juxtaposed with no connecting keyword (spec.md §8 Scenario D's
// sibling `write` form).
func (p *Parser) parseRead() ast.Node {
	start := p.pos()
	p.advance() // 'read'
	location := p.parseUnary()
	p.evalType(location)
	target := p.parsePrimary()
	p.evalType(target)
	p.match(lex.KindSemicolon, "expected ';' after read statement")
	return p.arena.NewRead(start, location, target)
}

// parseWrite matches `write location e1 e2 ...;`: a leading stream/unit
// designator expression followed by a space-juxtaposed (no commas) list of
// value expressions, per spec.md §8 Scenario A/D.
func (p *Parser) parseWrite() ast.Node {
	start := p.pos()
	p.advance() // 'write'
	location := p.parseUnary()
	p.evalType(location)
	var args []ast.Node
	for !p.check(lex.KindSemicolon) && !p.tok.AtEnd() {
		args = append(args, p.parseExpression())
	}
	p.match(lex.KindSemicolon, "expected ';' after write statement")
	return p.arena.NewWrite(start, location, args)
}

func (p *Parser) parseProcCallStatement() ast.Node {
	start := p.pos()
	expr := p.parseCallOrIndexOrIdentifier()
	call, ok := expr.(*ast.CallNode)
	if !ok {
		p.report(diag.CodeMalformedExpression, "expected a procedure call")
		p.synchronizeThrough(lex.KindSemicolon)
		return nil
	}
	p.val.ValidateCall(start, call.Callee, len(call.Args), true)
	for _, arg := range call.Args {
		p.evalType(arg)
	}
	call.SetType(ast.KindVoid, ast.StructScalar, 1)
	p.match(lex.KindSemicolon, "expected ';' after procedure call")
	return p.arena.NewProcCallStmt(start, call)
}

func (p *Parser) parseExpressionStatement() ast.Node {
	start := p.pos()
	expr := p.parseExpression()
	p.match(lex.KindSemicolon, "expected ';' after expression")
	return p.arena.NewExprStmt(start, expr)
}
