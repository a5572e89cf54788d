// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

// Package lex implements the SigmaFox tokenizer: a DFA character scanner
// plus a three-token lookahead window (spec.md §4.1). The scanner is
// grounded on the teacher's rune-at-a-time scan loop
// (_examples/mdhender-guanabana/internal/scanner/scanner.go), generalized
// from a Lemon-grammar alphabet to SigmaFox's.
package lex

import (
	"fmt"

	"github.com/magictrick-dev/sigmafox/internal/diag"
	"github.com/magictrick-dev/sigmafox/internal/registry"
)

// Kind is the closed token-kind set from spec.md §6.
type Kind int

const (
	// Literals
	KindInteger Kind = iota
	KindReal
	KindString
	KindIdentifier

	// Symbols
	KindLParen
	KindRParen
	KindComma
	KindSemicolon
	KindAssign // :=
	KindPlus
	KindMinus
	KindStar
	KindSlash
	KindCaret
	KindEq
	KindLt
	KindLe
	KindGt
	KindGe
	KindHash // #
	KindAmp  // &
	KindPipe // |
	KindPercent

	// Keywords
	KindBegin
	KindEnd
	KindProcedure
	KindEndProcedure
	KindFunction
	KindEndFunction
	KindIf
	KindElseIf
	KindEndIf
	KindWhile
	KindEndWhile
	KindLoop
	KindEndLoop
	KindPLoop
	KindEndPLoop
	KindFit
	KindEndFit
	KindScope
	KindEndScope
	KindVariable
	KindRead
	KindWrite
	KindSave
	KindInclude

	// Pseudo
	KindNewline
	KindEOF
	KindUndefined
	KindUndefinedEOF
	KindUndefinedEOL

	// Not part of the closed external set, but produced internally so
	// -t (strip-comments) has something concrete to drop
	// (SPEC_FULL.md §4.16).
	KindComment
)

var keywords = map[string]Kind{
	"begin":        KindBegin,
	"end":          KindEnd,
	"procedure":    KindProcedure,
	"endprocedure": KindEndProcedure,
	"function":     KindFunction,
	"endfunction":  KindEndFunction,
	"if":           KindIf,
	"elseif":       KindElseIf,
	"endif":        KindEndIf,
	"while":        KindWhile,
	"endwhile":     KindEndWhile,
	"loop":         KindLoop,
	"endloop":      KindEndLoop,
	"ploop":        KindPLoop,
	"endploop":     KindEndPLoop,
	"fit":          KindFit,
	"endfit":       KindEndFit,
	"scope":        KindScope,
	"endscope":     KindEndScope,
	"variable":     KindVariable,
	"read":         KindRead,
	"write":        KindWrite,
	"save":         KindSave,
	"include":      KindInclude,
}

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindString:
		return "string"
	case KindIdentifier:
		return "identifier"
	case KindLParen:
		return "("
	case KindRParen:
		return ")"
	case KindComma:
		return ","
	case KindSemicolon:
		return ";"
	case KindAssign:
		return ":="
	case KindPlus:
		return "+"
	case KindMinus:
		return "-"
	case KindStar:
		return "*"
	case KindSlash:
		return "/"
	case KindCaret:
		return "^"
	case KindEq:
		return "="
	case KindLt:
		return "<"
	case KindLe:
		return "<="
	case KindGt:
		return ">"
	case KindGe:
		return ">="
	case KindHash:
		return "#"
	case KindAmp:
		return "&"
	case KindPipe:
		return "|"
	case KindPercent:
		return "%"
	case KindNewline:
		return "newline"
	case KindEOF:
		return "eof"
	case KindUndefined:
		return "undefined"
	case KindUndefinedEOF:
		return "undefined-eof"
	case KindUndefinedEOL:
		return "undefined-eol"
	case KindComment:
		return "comment"
	default:
		for text, kw := range keywords {
			if kw == k {
				return text
			}
		}
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Token is an immutable value referencing a span of its originating
// source (spec.md §3, "Token").
type Token struct {
	Kind   Kind
	Handle registry.Handle
	Offset int
	Length int
	Row    int // 1-based
	Col    int // 1-based
	Lexeme string
}

// Pos converts a Token's location into a diag.Position, given the source's
// canonical path.
func (t Token) Pos(path string) diag.Position {
	return diag.Position{Path: path, Row: t.Row, Column: t.Col}
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Lexeme, t.Row, t.Col)
}
