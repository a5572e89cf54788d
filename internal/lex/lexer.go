// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package lex

import (
	"github.com/magictrick-dev/sigmafox/internal/diag"
	"github.com/magictrick-dev/sigmafox/internal/registry"
)

// Tokenizer exposes a three-token lookahead window over a single source's
// token stream (spec.md §4.1). After construction all three window slots
// hold the first three tokens of the stream; past end-of-file, slots
// saturate at an EOF token.
type Tokenizer struct {
	path   string
	tokens []Token
	diags  []diag.Diagnostic
	idx    int // index of Current() within tokens
}

// New tokenizes src in full (the tokenizer is not incremental; spec.md §5
// describes a single-threaded, sequential pipeline) and positions the
// window at the first token.
func New(handle registry.Handle, path string, src []byte, opts Options) *Tokenizer {
	tokens, diags := ScanAll(handle, path, src, opts)
	if len(tokens) == 0 {
		tokens = []Token{{Kind: KindEOF}}
	}
	return &Tokenizer{path: path, tokens: tokens, diags: diags, idx: 0}
}

// Diagnostics returns every lexical diagnostic collected while scanning.
func (t *Tokenizer) Diagnostics() []diag.Diagnostic { return t.diags }

func (t *Tokenizer) at(i int) Token {
	if i < 0 {
		return t.tokens[0]
	}
	if i >= len(t.tokens) {
		return Token{Kind: KindEOF, Row: t.tokens[len(t.tokens)-1].Row, Col: t.tokens[len(t.tokens)-1].Col}
	}
	return t.tokens[i]
}

// Previous returns the token before Current, saturating at the first
// token.
func (t *Tokenizer) Previous() Token { return t.at(t.idx - 1) }

// Current returns the token the window is positioned on.
func (t *Tokenizer) Current() Token { return t.at(t.idx) }

// Next returns the token after Current, saturating at a trailing EOF.
func (t *Tokenizer) Next() Token { return t.at(t.idx + 1) }

// Shift advances the window by one position and returns the new Current.
// Shifting past end-of-file is a no-op; Current stays at EOF.
func (t *Tokenizer) Shift() Token {
	if t.Current().Kind != KindEOF {
		t.idx++
	}
	return t.Current()
}

// AtEnd reports whether Current is the EOF token.
func (t *Tokenizer) AtEnd() bool { return t.Current().Kind == KindEOF }
