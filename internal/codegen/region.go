// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

// Package codegen implements the C++ Generator (spec.md §4.8): one
// GeneratedFile per SigmaFox module, each holding independently-cursored
// head/body/foot line regions; a Tree collecting every generated file and
// committing them to a billy.Filesystem; and a Generator that walks the AST,
// following each include's resolved module root, emitting C++ per spec's emission
// rule table. Grounded on
// _examples/original_source/source/compiler/generation/{sourcefile,sourcetree}.cpp
// and _examples/original_source/SFRefactor/source/compiler/visitors/generation.hpp.
package codegen

import "strings"

// region is one independently-cursored run of output lines (head, body, or
// foot of a GeneratedFile).
type region struct {
	lines []string
}

func (r *region) addLine(line string) {
	r.lines = append(r.lines, line)
}

func (r *region) addToCurrentLine(s string) {
	if len(r.lines) == 0 {
		r.addLine("")
	}
	r.lines[len(r.lines)-1] += s
}

func (r *region) currentLine() string {
	if len(r.lines) == 0 {
		r.addLine("")
	}
	return r.lines[len(r.lines)-1]
}

func (r *region) merge() string {
	var b strings.Builder
	for _, line := range r.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
