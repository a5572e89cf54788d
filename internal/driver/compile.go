// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package driver

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
)

// defaultCXX is used when $CXX is unset, matching common Unix toolchain
// convention.
const defaultCXX = "c++"

// CompileWithCXX invokes $CXX (or defaultCXX) over the generated entry file
// (SPEC_FULL.md §4.16's "-c" supplemental feature), producing a binary
// alongside it. This only works against a real, host-rooted filesystem —
// os/exec has no notion of an in-memory billy.Filesystem — so it resolves
// fs.Root() and errors out if that isn't a usable host directory.
func CompileWithCXX(fs billy.Filesystem, outputDirectory, entryRelPath string) (string, error) {
	root := fs.Root()
	if root == "" {
		return "", fmt.Errorf("driver: $CXX compile step requires a host-rooted filesystem")
	}
	dir := filepath.Join(root, outputDirectory)
	if _, err := os.Stat(dir); err != nil {
		return "", fmt.Errorf("driver: output directory %s: %w", dir, err)
	}

	cxx := os.Getenv("CXX")
	if cxx == "" {
		cxx = defaultCXX
	}

	binName := entryRelPath[:len(entryRelPath)-len(filepath.Ext(entryRelPath))]
	cmd := exec.Command(cxx, "-std=c++17", "-o", binName, entryRelPath)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("driver: %s failed: %w", cxx, err)
	}
	return string(out), nil
}
