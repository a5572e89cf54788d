// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package codegen

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
)

func TestBuildManifest_ListsEntryFileAndEveryGeneratedPath(t *testing.T) {
	tree := NewTree("out")
	main := NewGeneratedFile("main.cpp", 4)
	main.InsertLine("int main() {}")
	tree.Insert(main)
	lib := NewGeneratedFile("lib.hpp", 4)
	lib.InsertLine("#pragma once")
	tree.Insert(lib)

	got := BuildManifest(tree, "main.cpp")

	assert.Equal(t, Manifest{
		OutputDirectory: "out",
		EntryFile:       "main.cpp",
		Files: []ManifestFile{
			{Path: "main.cpp", Bytes: len(main.Source())},
			{Path: "lib.hpp", Bytes: len(lib.Source())},
		},
	}, got)
}

func TestWriteManifest_RoundTripsThroughOjg(t *testing.T) {
	fs := memfs.New()
	m := Manifest{
		OutputDirectory: "out",
		EntryFile:       "main.cpp",
		Files:           []ManifestFile{{Path: "main.cpp", Bytes: 42}},
	}

	err := WriteManifest(fs, m)
	assert.NoError(t, err)

	f, err := fs.Open("out/sigmafox.manifest.json")
	assert.NoError(t, err)
	defer f.Close()

	var buf [4096]byte
	n, _ := f.Read(buf[:])

	var roundTripped Manifest
	assert.NoError(t, oj.Unmarshal(buf[:n], &roundTripped))
	assert.Equal(t, m, roundTripped)
}
