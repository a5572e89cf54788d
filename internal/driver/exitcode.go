// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package driver

import "github.com/magictrick-dev/sigmafox/internal/diag"

// Exit codes realize spec.md §6's "nonzero, distinct per class" rule.
const (
	ExitSuccess        = 0
	ExitArgumentError  = 1
	ExitMissingFile    = 2
	ExitScanParseError = 3
	ExitSemanticError  = 4
	ExitIOError        = 5
	ExitInternalError  = 6
)

// category classifies a diagnostic code into one of the exit-code classes
// above, following the Lexical/Syntax/Semantic/I/O/Resource/Internal
// grouping already laid out as comment blocks in internal/diag.Code's
// const declaration.
func category(code diag.Code) int {
	switch code {
	case diag.CodeUnterminatedComment, diag.CodeUnterminatedString, diag.CodeUnterminatedStringEOL,
		diag.CodeUnknownCharacter, diag.CodeTrailingDot,
		diag.CodeUnexpectedToken, diag.CodeMissingDelimiter, diag.CodeMalformedExpression,
		diag.CodeInvalidAssignTarget:
		return ExitScanParseError
	case diag.CodeUndeclaredIdentifier, diag.CodeRedeclaredIdentifier, diag.CodeShadowedIdentifier,
		diag.CodeArityMismatch, diag.CodeKindMismatch, diag.CodeVectorLengthMismatch,
		diag.CodeIndexNonArray, diag.CodeDirectRecursion, diag.CodeCyclicInclude,
		diag.CodeDuplicateInclude, diag.CodeMultipleBegin:
		return ExitSemanticError
	case diag.CodeMissingSourceFile:
		return ExitMissingFile
	case diag.CodeUnreadableSource, diag.CodeUnwritableOutput:
		return ExitIOError
	case diag.CodeResourceLimitExceeded:
		return ExitIOError
	case diag.CodeInternalInvariant:
		return ExitInternalError
	default:
		return ExitInternalError
	}
}

// ExitCodeFor picks the exit code for a failed compilation by taking the
// worst (highest-priority) category among diags, which must already be
// filtered to blocking diagnostics (Aggregator.BlockingDiagnostics) so a
// promoted warning (warnings-as-errors) picks the right nonzero code too.
// Scan/parse errors take priority over semantic ones since a module that
// failed to parse was never fully validated (spec.md §7).
func ExitCodeFor(diags []diag.Diagnostic) int {
	best := ExitSuccess
	bestRank := -1
	rank := map[int]int{
		ExitMissingFile:    5,
		ExitScanParseError: 4,
		ExitSemanticError:  3,
		ExitIOError:        2,
		ExitInternalError:  1,
	}
	for _, d := range diags {
		c := category(d.Code)
		if r := rank[c]; r > bestRank {
			bestRank = r
			best = c
		}
	}
	if bestRank == -1 {
		return ExitSuccess
	}
	return best
}
