// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package deps

import "testing"

func TestGraph_InsertCreatesAndReuses(t *testing.T) {
	g := New()
	if _, err := g.SetEntry("/src/main.sf"); err != nil {
		t.Fatalf("SetEntry: %v", err)
	}

	res, err := g.Insert("/src/main.sf", "/src/util.sf")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if res != Created {
		t.Fatalf("expected Created, got %v", res)
	}

	res, err = g.Insert("/src/main.sf", "/src/util.sf")
	if err != nil {
		t.Fatalf("Insert duplicate: %v", err)
	}
	if res != DuplicateEdge {
		t.Fatalf("expected DuplicateEdge, got %v", res)
	}

	if _, err := g.Insert("/src/util.sf", "/src/helpers.sf"); err != nil {
		t.Fatalf("Insert grandchild: %v", err)
	}
	res, err = g.Insert("/src/main.sf", "/src/helpers.sf")
	if err != nil {
		t.Fatalf("Insert reused: %v", err)
	}
	if res != Reused {
		t.Fatalf("expected Reused, got %v", res)
	}
}

func TestGraph_DetectsCycle(t *testing.T) {
	g := New()
	if _, err := g.SetEntry("/src/a.sf"); err != nil {
		t.Fatalf("SetEntry: %v", err)
	}
	if _, err := g.Insert("/src/a.sf", "/src/b.sf"); err != nil {
		t.Fatalf("Insert a->b: %v", err)
	}
	res, err := g.Insert("/src/b.sf", "/src/a.sf")
	if err == nil {
		t.Fatalf("expected cycle error")
	}
	if res != Cycle {
		t.Fatalf("expected Cycle, got %v", res)
	}
}

func TestGraph_DepsRecursivePostOrder(t *testing.T) {
	g := New()
	if _, err := g.SetEntry("/src/main.sf"); err != nil {
		t.Fatalf("SetEntry: %v", err)
	}
	if _, err := g.Insert("/src/main.sf", "/src/a.sf"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := g.Insert("/src/a.sf", "/src/b.sf"); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	order := g.DepsRecursive("/src/main.sf")
	if len(order) != 2 || order[0] != "/src/b.sf" || order[1] != "/src/a.sf" {
		t.Fatalf("unexpected post-order: %v", order)
	}
}

func TestGraph_InsertPanicsOnUnregisteredParent(t *testing.T) {
	g := New()
	if _, err := g.SetEntry("/src/main.sf"); err != nil {
		t.Fatalf("SetEntry: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic inserting under an unregistered parent")
		}
	}()
	_, _ = g.Insert("/src/nope.sf", "/src/child.sf")
}
