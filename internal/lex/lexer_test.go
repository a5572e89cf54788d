// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package lex

import (
	"testing"

	"github.com/magictrick-dev/sigmafox/internal/registry"
)

func TestTokenizer_SimpleProgram(t *testing.T) {
	input := "begin ; write 1 2 3; end;"
	tok := New(registry.Handle(0), "<test>", []byte(input+"\x00"), Options{})

	expected := []Kind{
		KindBegin, KindSemicolon,
		KindWrite, KindInteger, KindInteger, KindInteger, KindSemicolon,
		KindEnd, KindSemicolon,
		KindEOF,
	}
	for i, want := range expected {
		got := tok.Current()
		if got.Kind != want {
			t.Fatalf("token %d: want %s, got %s (%q)", i, want, got.Kind, got.Lexeme)
		}
		tok.Shift()
	}
}

func TestTokenizer_ThreeSlotWindow(t *testing.T) {
	input := "a b c"
	tok := New(registry.Handle(0), "<test>", []byte(input+"\x00"), Options{})

	if tok.Current().Lexeme != "a" || tok.Next().Lexeme != "b" {
		t.Fatalf("expected window [_, a, b], got [%s, %s, %s]",
			tok.Previous().Lexeme, tok.Current().Lexeme, tok.Next().Lexeme)
	}
	tok.Shift()
	if tok.Previous().Lexeme != "a" || tok.Current().Lexeme != "b" || tok.Next().Lexeme != "c" {
		t.Fatalf("expected window [a, b, c], got [%s, %s, %s]",
			tok.Previous().Lexeme, tok.Current().Lexeme, tok.Next().Lexeme)
	}
}

func TestTokenizer_TrailingDotIsLexicalError(t *testing.T) {
	tok := New(registry.Handle(0), "<test>", []byte("1. x\x00"), Options{})
	if len(tok.Diagnostics()) == 0 {
		t.Fatalf("expected a diagnostic for trailing '.' with no fractional digit")
	}
}

func TestTokenizer_UnterminatedComment(t *testing.T) {
	tok := New(registry.Handle(0), "<test>", []byte("{ comment\x00"), Options{})
	if tok.Current().Kind != KindUndefinedEOF {
		t.Fatalf("want KindUndefinedEOF, got %s", tok.Current().Kind)
	}
}

func TestTokenizer_StripComments(t *testing.T) {
	tok := New(registry.Handle(0), "<test>", []byte("a { skip } b\x00"), Options{StripComments: true})
	if tok.Current().Lexeme != "a" {
		t.Fatalf("want 'a', got %q", tok.Current().Lexeme)
	}
	tok.Shift()
	if tok.Current().Lexeme != "b" {
		t.Fatalf("want 'b' immediately after comment strip, got %q", tok.Current().Lexeme)
	}
}

func TestTokenizer_KeywordsAreCaseInsensitive(t *testing.T) {
	tok := New(registry.Handle(0), "<test>", []byte("BEGIN Begin begin\x00"), Options{})
	for i := 0; i < 3; i++ {
		if tok.Current().Kind != KindBegin {
			t.Fatalf("token %d: want KindBegin, got %s", i, tok.Current().Kind)
		}
		tok.Shift()
	}
}
