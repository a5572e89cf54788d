// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

// Package diag defines the SigmaFox compiler's diagnostic taxonomy:
// severities, machine-stable codes, and the Diagnostic value every phase of
// the pipeline (tokenizer, dependency graph, parser, validator, generator)
// reports through.
package diag

import "fmt"

// Severity classifies how serious a Diagnostic is.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Code is a machine-stable diagnostic identifier. New codes may be added;
// existing ones must never change meaning once released.
type Code string

const (
	// Lexical
	CodeUnterminatedComment Code = "unterminated-comment"
	CodeUnterminatedString  Code = "unterminated-string"
	CodeUnterminatedStringEOL Code = "unterminated-string-eol"
	CodeUnknownCharacter    Code = "unknown-character"
	CodeTrailingDot         Code = "trailing-dot"

	// Syntax
	CodeUnexpectedToken     Code = "unexpected-token"
	CodeMissingDelimiter    Code = "missing-delimiter"
	CodeMalformedExpression Code = "malformed-expression"
	CodeInvalidAssignTarget Code = "invalid-assignment-target"

	// Semantic
	CodeUndeclaredIdentifier Code = "undeclared-identifier"
	CodeRedeclaredIdentifier Code = "redeclared-identifier"
	CodeShadowedIdentifier   Code = "shadowed-identifier"
	CodeArityMismatch        Code = "arity-mismatch"
	CodeKindMismatch         Code = "kind-mismatch"
	CodeVectorLengthMismatch Code = "vector-length-mismatch"
	CodeIndexNonArray        Code = "index-non-array"
	CodeDirectRecursion      Code = "direct-recursion"
	CodeCyclicInclude        Code = "cyclic-include"
	CodeDuplicateInclude     Code = "duplicate-include"
	CodeMultipleBegin        Code = "multiple-begin"

	// I/O
	CodeMissingSourceFile Code = "missing-source-file"
	CodeUnreadableSource  Code = "unreadable-source"
	CodeUnwritableOutput  Code = "unwritable-output"

	// Resource
	CodeResourceLimitExceeded Code = "resource-limit-exceeded"

	// Internal
	CodeInternalInvariant Code = "internal-invariant-violation"
)

// Position is a 1-based (row, column) location within a canonicalized
// source path.
type Position struct {
	Path   string
	Row    int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Path, p.Row, p.Column)
}

// Diagnostic is a single user-visible compiler message.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Pos      Position
	Message  string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: [%s] %s", d.Pos, d.Severity, d.Code, d.Message)
}

func New(sev Severity, code Code, pos Position, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func Errorf(code Code, pos Position, format string, args ...any) Diagnostic {
	return New(Error, code, pos, format, args...)
}

func Warnf(code Code, pos Position, format string, args ...any) Diagnostic {
	return New(Warning, code, pos, format, args...)
}

func Infof(code Code, pos Position, format string, args ...any) Diagnostic {
	return New(Info, code, pos, format, args...)
}
