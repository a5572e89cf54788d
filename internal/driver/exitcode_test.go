// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package driver

import (
	"testing"

	"github.com/magictrick-dev/sigmafox/internal/diag"
)

func TestExitCodeFor_Empty(t *testing.T) {
	if got := ExitCodeFor(nil); got != ExitSuccess {
		t.Fatalf("ExitCodeFor(nil) = %d, want ExitSuccess", got)
	}
}

func TestExitCodeFor_PicksScanParseOverSemantic(t *testing.T) {
	diags := []diag.Diagnostic{
		diag.Errorf(diag.CodeUndeclaredIdentifier, diag.Position{}, "undeclared"),
		diag.Errorf(diag.CodeUnexpectedToken, diag.Position{}, "unexpected"),
	}
	if got := ExitCodeFor(diags); got != ExitScanParseError {
		t.Fatalf("ExitCodeFor = %d, want ExitScanParseError", got)
	}
}

func TestExitCodeFor_MissingFile(t *testing.T) {
	diags := []diag.Diagnostic{diag.Errorf(diag.CodeMissingSourceFile, diag.Position{}, "missing")}
	if got := ExitCodeFor(diags); got != ExitMissingFile {
		t.Fatalf("ExitCodeFor = %d, want ExitMissingFile", got)
	}
}
