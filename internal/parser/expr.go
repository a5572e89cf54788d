// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package parser

import (
	"github.com/magictrick-dev/sigmafox/internal/ast"
	"github.com/magictrick-dev/sigmafox/internal/diag"
	"github.com/magictrick-dev/sigmafox/internal/lex"
)

// parseExpression is the entry point into the full precedence chain of
// spec.md §4.5, lowest to highest binding: assignment, equality,
// comparison, concatenation, term, factor, magnitude (right-associative),
// extraction, derivation, unary, call/index, primary. On success it runs
// the semantic evaluator over the returned subtree (the "type-evaluation
// hook").
func (p *Parser) parseExpression() ast.Node {
	expr := p.parseAssignment()
	p.evalType(expr)
	return expr
}

func (p *Parser) parseAssignment() ast.Node {
	lhs := p.parseEquality()
	if !p.check(lex.KindAssign) {
		return lhs
	}
	start := p.pos()
	p.advance() // ':='
	rhs := p.parseAssignment()

	switch lhs.(type) {
	case *ast.IdentifierNode, *ast.IndexNode:
	default:
		p.report(diag.CodeInvalidAssignTarget, "assignment target must be an identifier or array index")
	}
	return p.arena.NewAssign(start, lhs, rhs)
}

func (p *Parser) parseEquality() ast.Node {
	expr := p.parseComparison()
	for p.check(lex.KindEq) || p.check(lex.KindHash) {
		op := ast.OpEq
		if p.check(lex.KindHash) {
			op = ast.OpNe
		}
		start := p.pos()
		p.advance()
		rhs := p.parseComparison()
		expr = p.arena.NewBinary(start, op, expr, rhs)
	}
	return expr
}

func (p *Parser) parseComparison() ast.Node {
	expr := p.parseConcat()
	for p.check(lex.KindLt) || p.check(lex.KindLe) || p.check(lex.KindGt) || p.check(lex.KindGe) {
		var op ast.BinaryOp
		switch p.tok.Current().Kind {
		case lex.KindLt:
			op = ast.OpLt
		case lex.KindLe:
			op = ast.OpLe
		case lex.KindGt:
			op = ast.OpGt
		default:
			op = ast.OpGe
		}
		start := p.pos()
		p.advance()
		rhs := p.parseConcat()
		expr = p.arena.NewBinary(start, op, expr, rhs)
	}
	return expr
}

func (p *Parser) parseConcat() ast.Node {
	expr := p.parseTerm()
	for p.check(lex.KindAmp) {
		start := p.pos()
		p.advance()
		rhs := p.parseTerm()
		expr = p.arena.NewBinary(start, ast.OpConcat, expr, rhs)
	}
	return expr
}

func (p *Parser) parseTerm() ast.Node {
	expr := p.parseFactor()
	for p.check(lex.KindPlus) || p.check(lex.KindMinus) {
		op := ast.OpAdd
		if p.check(lex.KindMinus) {
			op = ast.OpSub
		}
		start := p.pos()
		p.advance()
		rhs := p.parseFactor()
		expr = p.arena.NewBinary(start, op, expr, rhs)
	}
	return expr
}

func (p *Parser) parseFactor() ast.Node {
	expr := p.parseMagnitude()
	for p.check(lex.KindStar) || p.check(lex.KindSlash) {
		op := ast.OpMul
		if p.check(lex.KindSlash) {
			op = ast.OpDiv
		}
		start := p.pos()
		p.advance()
		rhs := p.parseMagnitude()
		expr = p.arena.NewBinary(start, op, expr, rhs)
	}
	return expr
}

// parseMagnitude is `^`, the sole right-associative operator (spec.md
// §4.5).
func (p *Parser) parseMagnitude() ast.Node {
	expr := p.parseExtraction()
	if p.check(lex.KindCaret) {
		start := p.pos()
		p.advance()
		rhs := p.parseMagnitude() // right-recursive for right-associativity
		return p.arena.NewBinary(start, ast.OpPow, expr, rhs)
	}
	return expr
}

func (p *Parser) parseExtraction() ast.Node {
	expr := p.parseDerivation()
	for p.check(lex.KindPipe) {
		start := p.pos()
		p.advance()
		rhs := p.parseDerivation()
		expr = p.arena.NewBinary(start, ast.OpExtract, expr, rhs)
	}
	return expr
}

func (p *Parser) parseDerivation() ast.Node {
	expr := p.parseUnary()
	for p.check(lex.KindPercent) {
		start := p.pos()
		p.advance()
		rhs := p.parseUnary()
		expr = p.arena.NewBinary(start, ast.OpDerive, expr, rhs)
	}
	return expr
}

func (p *Parser) parseUnary() ast.Node {
	if p.check(lex.KindMinus) {
		start := p.pos()
		p.advance()
		operand := p.parseUnary()
		return p.arena.NewUnary(start, operand)
	}
	return p.parseCallOrIndexOrIdentifier()
}

// parseCallOrIndexOrIdentifier implements the call/index precedence level:
// an identifier followed immediately by `(` is a call; followed by array
// index expressions is an index; otherwise it is a bare identifier.
func (p *Parser) parseCallOrIndexOrIdentifier() ast.Node {
	if p.check(lex.KindIdentifier) && p.checkNext(lex.KindLParen) {
		start := p.pos()
		name := p.advance().Lexeme
		p.advance() // '('
		var args []ast.Node
		for !p.check(lex.KindRParen) && !p.tok.AtEnd() {
			args = append(args, p.parseExpression())
			if p.check(lex.KindComma) {
				p.advance()
			} else {
				break
			}
		}
		p.match(lex.KindRParen, "expected ')' to close call arguments")
		return p.arena.NewCall(start, name, args)
	}
	return p.parsePrimary()
}

// parsePrimary matches spec.md §4.5's primary production:
// `integer|real|complex|string|identifier|( expression )`. A numeric
// literal immediately followed by the identifier `i` combines into a
// complex literal (spec.md §4.8, "complex literal `a i`").
func (p *Parser) parsePrimary() ast.Node {
	start := p.pos()

	switch {
	case p.check(lex.KindInteger):
		tok := p.advance()
		if p.check(lex.KindIdentifier) && p.tok.Current().Lexeme == "i" {
			p.advance()
			return p.arena.NewComplexLit(start, float64(parseIntLiteral(tok.Lexeme)))
		}
		return p.arena.NewIntegerLit(start, parseIntLiteral(tok.Lexeme))

	case p.check(lex.KindReal):
		tok := p.advance()
		if p.check(lex.KindIdentifier) && p.tok.Current().Lexeme == "i" {
			p.advance()
			return p.arena.NewComplexLit(start, parseRealLiteral(tok.Lexeme))
		}
		return p.arena.NewRealLit(start, parseRealLiteral(tok.Lexeme))

	case p.check(lex.KindString):
		tok := p.advance()
		return p.arena.NewStringLit(start, unquote(tok.Lexeme))

	case p.check(lex.KindIdentifier):
		return p.parseIdentifierOrIndex()

	case p.check(lex.KindLParen):
		p.advance()
		expr := p.parseExpression()
		p.match(lex.KindRParen, "expected ')' to close expression")
		return expr

	default:
		p.report(diag.CodeMalformedExpression, "expected an expression, got %s", p.tok.Current().Kind)
		p.synchronizeThrough(lex.KindSemicolon)
		return p.arena.NewIdentifier(start, "")
	}
}

func (p *Parser) parseIdentifierOrIndex() ast.Node {
	start := p.pos()
	name := p.advance().Lexeme

	var indices []ast.Node
	for p.isIndexOperand() {
		indices = append(indices, p.parsePrimary())
	}
	if len(indices) == 0 {
		return p.arena.NewIdentifier(start, name)
	}
	return p.arena.NewIndex(start, name, indices)
}

// isIndexOperand reports whether Current can begin an array-index operand.
// SigmaFox has no explicit `[` `]` bracket pair (spec.md §6's grammar is
// juxtaposition-based like the rest of the language); an index operand is
// an integer literal, an identifier, or a parenthesized expression directly
// following an array name.
func (p *Parser) isIndexOperand() bool {
	return p.check(lex.KindInteger) || p.check(lex.KindIdentifier) || p.check(lex.KindLParen)
}
