// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package codegen

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
)

// Tree collects every GeneratedFile produced by a compilation and commits
// them under a chosen output directory, grounded on
// _examples/original_source/source/compiler/generation/sourcetree.cpp's
// map-of-path-to-sourcefile plus its commit() walking that map.
type Tree struct {
	OutputDirectory string
	files           map[string]*GeneratedFile
	order           []string
}

func NewTree(outputDirectory string) *Tree {
	return &Tree{OutputDirectory: outputDirectory, files: make(map[string]*GeneratedFile)}
}

// Insert adds f, keyed by its Path. It reports false without replacing the
// existing entry if Path was already inserted (mirrors sourcetree.cpp's
// insert_source returning false on a duplicate).
func (t *Tree) Insert(f *GeneratedFile) bool {
	if _, exists := t.files[f.Path]; exists {
		return false
	}
	t.files[f.Path] = f
	t.order = append(t.order, f.Path)
	return true
}

func (t *Tree) Exists(relPath string) bool {
	_, ok := t.files[relPath]
	return ok
}

func (t *Tree) Get(relPath string) (*GeneratedFile, bool) {
	f, ok := t.files[relPath]
	return f, ok
}

// Paths returns every generated file's relative path in insertion order.
func (t *Tree) Paths() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Commit writes every generated file to fs under OutputDirectory, creating
// parent directories as needed and overwriting any existing file (spec.md
// §4.8's commit() contract).
func (t *Tree) Commit(fs billy.Filesystem) error {
	for _, relPath := range t.order {
		f := t.files[relPath]
		outPath := path.Join(t.OutputDirectory, relPath)

		if parent := filepath.Dir(outPath); parent != "." {
			if err := fs.MkdirAll(parent, 0o755); err != nil {
				return fmt.Errorf("codegen: create directories for %s: %w", outPath, err)
			}
		}

		handle, err := fs.Create(outPath)
		if err != nil {
			return fmt.Errorf("codegen: create %s: %w", outPath, err)
		}
		if _, err := handle.Write([]byte(f.Source())); err != nil {
			handle.Close()
			return fmt.Errorf("codegen: write %s: %w", outPath, err)
		}
		if err := handle.Close(); err != nil {
			return fmt.Errorf("codegen: close %s: %w", outPath, err)
		}
	}
	return nil
}
