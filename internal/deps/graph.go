// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

// Package deps implements the Dependency Graph (spec.md §4.3): an arena of
// module nodes wired by `include` edges, acyclic by construction. The
// node-map/arena variant is adopted over the alternative found in
// _examples/original_source/copy/ref/dependencygraph.hpp per spec.md §9's
// own resolution of that open question (it is the only variant supporting
// shared inclusion).
package deps

import (
	"fmt"
	"path/filepath"

	"github.com/RoaringBitmap/roaring"
)

// InsertResult distinguishes the three non-error outcomes of Insert, plus
// Cycle, matching the finer-grained status the original implementation's
// dependencygraph.cpp/graph.cpp return (SPEC_FULL.md §4.16) rather than
// collapsing "already known" into one bullet.
type InsertResult int

const (
	Created InsertResult = iota
	Reused
	DuplicateEdge
	Cycle
)

func (r InsertResult) String() string {
	switch r {
	case Created:
		return "created"
	case Reused:
		return "reused"
	case DuplicateEdge:
		return "duplicate-edge"
	case Cycle:
		return "cycle"
	default:
		return "unknown"
	}
}

type node struct {
	path      string
	parentIdx int // -1 for the root
	children  []int
	owner     any // set by internal/parser once a Parser exists for this node
}

// Graph is an arena of dependency nodes. Parent links are plain indices
// (spec.md §9, "weak (non-owning)"); children are owned by index, not by
// pointer, so cycles are structurally impossible to construct.
type Graph struct {
	nodes  []*node
	byPath map[string]int
	root   int
}

func New() *Graph {
	return &Graph{byPath: make(map[string]int), root: -1}
}

// SetEntry establishes the root node for path. It must be called exactly
// once, before any Insert.
func (g *Graph) SetEntry(path string) (int, error) {
	if g.root != -1 {
		return -1, fmt.Errorf("dependency graph: entry already set")
	}
	canon := canonicalize(path)
	idx := len(g.nodes)
	g.nodes = append(g.nodes, &node{path: canon, parentIdx: -1})
	g.byPath[canon] = idx
	g.root = idx
	return idx, nil
}

func canonicalize(path string) string {
	return filepath.Clean(path)
}

// Insert creates or reuses a child node for childPath under parentPath,
// reporting cycles and duplicate edges per spec.md §4.3. The parent must
// already be registered (an unregistered parent is a programmer error —
// this function panics, matching spec.md §7's "Internal: invariant
// violation" category).
func (g *Graph) Insert(parentPath, childPath string) (InsertResult, error) {
	parentCanon := canonicalize(parentPath)
	parentIdx, ok := g.byPath[parentCanon]
	if !ok {
		panic(fmt.Sprintf("dependency graph: parent %q is not registered", parentCanon))
	}

	childCanon := canonicalize(childPath)

	// Cycle check: is childCanon on the ancestor chain of parentIdx
	// (inclusive)? Tracked with a roaring bitmap of node indices walked
	// from parentIdx to the root (SPEC_FULL.md §4.13).
	ancestors := roaring.New()
	for i := parentIdx; i != -1; i = g.nodes[i].parentIdx {
		ancestors.Add(uint32(i))
	}
	if existingIdx, known := g.byPath[childCanon]; known && ancestors.Contains(uint32(existingIdx)) {
		return Cycle, fmt.Errorf("dependency graph: cyclic include: %q", childCanon)
	}

	// Duplicate edge: parent already lists this exact child.
	for _, c := range g.nodes[parentIdx].children {
		if g.nodes[c].path == childCanon {
			return DuplicateEdge, nil
		}
	}

	if existingIdx, known := g.byPath[childCanon]; known {
		g.nodes[parentIdx].children = append(g.nodes[parentIdx].children, existingIdx)
		return Reused, nil
	}

	childIdx := len(g.nodes)
	g.nodes = append(g.nodes, &node{path: childCanon, parentIdx: parentIdx})
	g.byPath[childCanon] = childIdx
	g.nodes[parentIdx].children = append(g.nodes[parentIdx].children, childIdx)
	return Created, nil
}

// SetOwner records the Parser instance associated with path. Exactly one
// parser exists per path (spec.md §4.3 invariant).
func (g *Graph) SetOwner(path string, owner any) {
	idx, ok := g.byPath[canonicalize(path)]
	if !ok {
		panic(fmt.Sprintf("dependency graph: SetOwner on unregistered path %q", path))
	}
	g.nodes[idx].owner = owner
}

// ParserFor returns the owner (Parser) registered for path via SetOwner.
func (g *Graph) ParserFor(path string) (any, bool) {
	idx, ok := g.byPath[canonicalize(path)]
	if !ok {
		return nil, false
	}
	return g.nodes[idx].owner, g.nodes[idx].owner != nil
}

// Deps returns the immediate dependent paths of path.
func (g *Graph) Deps(path string) []string {
	idx, ok := g.byPath[canonicalize(path)]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(g.nodes[idx].children))
	for _, c := range g.nodes[idx].children {
		out = append(out, g.nodes[c].path)
	}
	return out
}

// DepsRecursive returns the transitive closure of path's dependents in
// post-order (leaves first), the order the generator emits modules in so
// forward references are unneeded (spec.md §4.3).
func (g *Graph) DepsRecursive(path string) []string {
	idx, ok := g.byPath[canonicalize(path)]
	if !ok {
		return nil
	}
	var out []string
	visited := roaring.New()
	var walk func(i int)
	walk = func(i int) {
		if visited.Contains(uint32(i)) {
			return
		}
		visited.Add(uint32(i))
		for _, c := range g.nodes[i].children {
			walk(c)
		}
		out = append(out, g.nodes[i].path)
	}
	for _, c := range g.nodes[idx].children {
		walk(c)
	}
	return out
}

// EntryPath returns the canonical path of the root node.
func (g *Graph) EntryPath() string {
	if g.root == -1 {
		return ""
	}
	return g.nodes[g.root].path
}
