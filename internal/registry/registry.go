// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

// Package registry implements the Source Registry (spec.md §4.2): it loads
// each source file's text exactly once per canonical path and hands out
// stable, cheap-to-copy Handles in its place. Reads go through a
// billy.Filesystem so tests can substitute an in-memory filesystem for the
// real one (SPEC_FULL.md §4.12).
package registry

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// Handle is a stable index standing in for a canonicalized filepath.
// Equality of Handles defines module identity throughout the compiler
// (spec.md §3, "Filepath handle").
type Handle int

const InvalidHandle Handle = -1

type resource struct {
	path   string
	loaded bool
	text   []byte
}

// Registry owns every source buffer for a single compilation. It is the
// sole component that reads source files from disk (spec.md §5).
type Registry struct {
	fs    billy.Filesystem
	byPath map[string]Handle
	resources []*resource
}

// New creates a Registry rooted at the given billy.Filesystem. Pass
// osfs.New(".") for a real compilation, or memfs.New() in tests.
func New(fs billy.Filesystem) *Registry {
	return &Registry{fs: fs, byPath: make(map[string]Handle)}
}

// NewOS is a convenience constructor for a Registry backed by the real
// filesystem rooted at dir.
func NewOS(dir string) *Registry {
	return New(osfs.New(dir))
}

// Create returns the Handle for path, validating that it names a regular
// file. Duplicate paths (after canonicalization) return the existing
// handle (spec.md §4.2).
func (r *Registry) Create(path string) (Handle, error) {
	canon, err := r.canonicalize(path)
	if err != nil {
		return InvalidHandle, err
	}
	if h, ok := r.byPath[canon]; ok {
		return h, nil
	}
	info, err := r.fs.Stat(canon)
	if err != nil {
		return InvalidHandle, fmt.Errorf("source registry: %s: %w", canon, err)
	}
	if info.IsDir() {
		return InvalidHandle, fmt.Errorf("source registry: %s: is a directory", canon)
	}
	h := Handle(len(r.resources))
	r.resources = append(r.resources, &resource{path: canon})
	r.byPath[canon] = h
	return h, nil
}

// canonicalize resolves path relative to the registry's filesystem root
// and cleans it, without requiring the file to already exist on the host
// OS (billy filesystems, including memfs, are not necessarily rooted at
// the real "/").
func (r *Registry) canonicalize(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("source registry: empty path")
	}
	return filepath.Clean(path), nil
}

// Load reserves (if necessary) and reads the full contents of h's file
// into memory. Load is idempotent: calling it again is a no-op.
func (r *Registry) Load(h Handle) error {
	res, err := r.resource(h)
	if err != nil {
		return err
	}
	if res.loaded {
		return nil
	}
	f, err := r.fs.Open(res.path)
	if err != nil {
		return fmt.Errorf("source registry: %s: %w", res.path, err)
	}
	defer f.Close()

	info, err := r.fs.Stat(res.path)
	if err != nil {
		return fmt.Errorf("source registry: %s: %w", res.path, err)
	}

	// One byte larger than the file, null-terminated, per spec.md §4.2.
	buf := make([]byte, info.Size()+1)
	n, err := f.Read(buf[:info.Size()])
	if err != nil && n < int(info.Size()) {
		return fmt.Errorf("source registry: %s: short read: %w", res.path, err)
	}
	buf[info.Size()] = 0

	res.text = buf
	res.loaded = true
	return nil
}

// Text returns the loaded buffer for h, including its trailing NUL byte.
// Load must have succeeded first.
func (r *Registry) Text(h Handle) ([]byte, error) {
	res, err := r.resource(h)
	if err != nil {
		return nil, err
	}
	if !res.loaded {
		return nil, fmt.Errorf("source registry: %s: not loaded", res.path)
	}
	return res.text, nil
}

// Path returns the canonical path associated with h.
func (r *Registry) Path(h Handle) (string, error) {
	res, err := r.resource(h)
	if err != nil {
		return "", err
	}
	return res.path, nil
}

// Release frees h's buffer and clears its loaded state. The Handle itself
// remains valid (and Load may be called again).
func (r *Registry) Release(h Handle) error {
	res, err := r.resource(h)
	if err != nil {
		return err
	}
	res.text = nil
	res.loaded = false
	return nil
}

// Dir returns the directory containing h's source file, used by the
// parser to resolve `include` literals relative to the including module.
func (r *Registry) Dir(h Handle) (string, error) {
	p, err := r.Path(h)
	if err != nil {
		return "", err
	}
	return filepath.Dir(p), nil
}

func (r *Registry) resource(h Handle) (*resource, error) {
	if h < 0 || int(h) >= len(r.resources) {
		return nil, fmt.Errorf("source registry: invalid handle %d", h)
	}
	return r.resources[h], nil
}
