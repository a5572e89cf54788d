// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package codegen

import (
	"fmt"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/ohler55/ojg/oj"
)

// ManifestFile is one emitted file's manifest entry.
type ManifestFile struct {
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}

// Manifest is the build manifest spec.md §6 lists among "Emitted
// artifacts": enough for an external build tool ($CXX, CMake, whatever)
// to discover every file this compilation produced without re-walking the
// dependency graph itself.
type Manifest struct {
	OutputDirectory string         `json:"output_directory"`
	EntryFile       string         `json:"entry_file"`
	Files           []ManifestFile `json:"files"`
}

// BuildManifest summarizes tree: EntryFile is entryRelPath (the .cpp
// holding `main`), and Files lists every file in the tree's insertion order.
func BuildManifest(tree *Tree, entryRelPath string) Manifest {
	m := Manifest{OutputDirectory: tree.OutputDirectory, EntryFile: entryRelPath}
	for _, p := range tree.Paths() {
		f, _ := tree.Get(p)
		m.Files = append(m.Files, ManifestFile{Path: p, Bytes: len(f.Source())})
	}
	return m
}

// WriteManifest serializes m through ojg/oj (SPEC_FULL.md §4.14) and writes
// it to "<output-directory>/sigmafox.manifest.json" via fs.
func WriteManifest(fs billy.Filesystem, m Manifest) error {
	data, err := oj.Marshal(m)
	if err != nil {
		return fmt.Errorf("codegen: marshal manifest: %w", err)
	}
	outPath := path.Join(m.OutputDirectory, "sigmafox.manifest.json")
	handle, err := fs.Create(outPath)
	if err != nil {
		return fmt.Errorf("codegen: create manifest: %w", err)
	}
	defer handle.Close()
	if _, err := handle.Write(data); err != nil {
		return fmt.Errorf("codegen: write manifest: %w", err)
	}
	return nil
}
