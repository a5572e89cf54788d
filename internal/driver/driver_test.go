// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package driver

import (
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"

	"github.com/magictrick-dev/sigmafox/internal/config"
	"github.com/magictrick-dev/sigmafox/internal/diag"
)

// newMemFS writes each named source into a fresh in-memory filesystem.
func newMemFS(t *testing.T, files map[string]string) *memfs.Memory {
	t.Helper()
	fs := memfs.New()
	for path, contents := range files {
		f, err := fs.Create(path)
		if err != nil {
			t.Fatalf("create %s: %v", path, err)
		}
		if _, err := f.Write([]byte(contents)); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		f.Close()
	}
	return fs
}

// TestDriver_ScenarioA_TrivialProgram realizes spec.md §8 Scenario A.
func TestDriver_ScenarioA_TrivialProgram(t *testing.T) {
	fs := newMemFS(t, map[string]string{
		"/main.fox": "begin ; write 1 2 3; end;",
	})
	opts := config.Default()
	opts.EntryPath = "/main.fox"

	res := Run(fs, opts, nil)
	if res.ExitCode != ExitSuccess {
		t.Fatalf("expected success, got exit %d, diags=%v", res.ExitCode, res.Diagnostics)
	}

	f, err := fs.Open("main.cpp")
	if err != nil {
		t.Fatalf("expected main.cpp to be generated: %v", err)
	}
	defer f.Close()
	buf := make([]byte, 4096)
	n, _ := f.Read(buf)
	src := string(buf[:n])
	if !strings.Contains(src, "std::cout << 1 << 2 << 3;") {
		t.Fatalf("expected write chain in generated source, got:\n%s", src)
	}

	if _, err := fs.Open("sigmafox.manifest.json"); err != nil {
		t.Fatalf("expected a manifest file: %v", err)
	}
}

// TestDriver_ScenarioB_CyclicInclude realizes spec.md §8 Scenario B.
func TestDriver_ScenarioB_CyclicInclude(t *testing.T) {
	fs := newMemFS(t, map[string]string{
		"/a.fox": `include "b.fox"; begin; end;`,
		"/b.fox": `include "a.fox";`,
	})
	opts := config.Default()
	opts.EntryPath = "/a.fox"

	res := Run(fs, opts, nil)
	if res.ExitCode == ExitSuccess {
		t.Fatalf("expected a failing exit code for a cyclic include")
	}
	found := false
	for _, d := range res.Diagnostics {
		if d.Code == diag.CodeCyclicInclude {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a cyclic-include diagnostic, got %v", res.Diagnostics)
	}
	if _, err := fs.Open("main.cpp"); err == nil {
		t.Fatalf("expected no output file for a failed compilation")
	}
}

// TestDriver_ScenarioE_UndeclaredIdentifier realizes spec.md §8 Scenario E.
func TestDriver_ScenarioE_UndeclaredIdentifier(t *testing.T) {
	fs := newMemFS(t, map[string]string{
		"/main.fox": "begin; write 6 q; end;",
	})
	opts := config.Default()
	opts.EntryPath = "/main.fox"

	res := Run(fs, opts, nil)
	if res.ExitCode != ExitSemanticError {
		t.Fatalf("expected ExitSemanticError, got %d, diags=%v", res.ExitCode, res.Diagnostics)
	}
	errCount := 0
	for _, d := range res.Diagnostics {
		if d.Severity == diag.Error {
			errCount++
		}
	}
	if errCount != 1 {
		t.Fatalf("expected exactly one error diagnostic, got %d: %v", errCount, res.Diagnostics)
	}
}

// TestDriver_ScenarioF_DirectRecursion realizes spec.md §8 Scenario F.
func TestDriver_ScenarioF_DirectRecursion(t *testing.T) {
	fs := newMemFS(t, map[string]string{
		"/main.fox": "function f x; f(x); endfunction; begin; end;",
	})
	opts := config.Default()
	opts.EntryPath = "/main.fox"

	res := Run(fs, opts, nil)
	found := false
	for _, d := range res.Diagnostics {
		if d.Code == diag.CodeDirectRecursion {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a direct-recursion diagnostic, got %v", res.Diagnostics)
	}
}

func TestDriver_MissingEntryFile(t *testing.T) {
	fs := memfs.New()
	opts := config.Default()
	opts.EntryPath = "/missing.fox"

	res := Run(fs, opts, nil)
	if res.ExitCode != ExitMissingFile {
		t.Fatalf("expected ExitMissingFile, got %d", res.ExitCode)
	}
}
