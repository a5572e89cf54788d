// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package symbols

import "testing"

func TestEnvironment_ScopingRules(t *testing.T) {
	env := NewEnvironment()

	if _, err := env.InsertGlobal("x", KindVariable, 0, 0); err != nil {
		t.Fatalf("insert global: %v", err)
	}
	if !env.ExistsGlobally("x") {
		t.Fatalf("expected x to exist globally")
	}

	env.Push()
	if env.ExistsLocally("x") {
		t.Fatalf("x should not exist in the new local frame")
	}
	if !env.ExistsInAny("x") {
		t.Fatalf("x should still be visible from the nested scope")
	}
	if !env.ExistsButNotLocally("x") {
		t.Fatalf("x should be shadowable (exists outer, not local)")
	}

	if _, err := env.InsertLocal("y", KindVariable, 0, 1); err != nil {
		t.Fatalf("insert local: %v", err)
	}
	if !env.ExistsLocally("y") {
		t.Fatalf("y should exist locally")
	}
	if env.ExistsGlobally("y") {
		t.Fatalf("y should not leak to the global frame")
	}

	env.Pop()
	if env.ExistsInAny("y") {
		t.Fatalf("y should not survive popping its frame")
	}
}

func TestEnvironment_CannotPopGlobal(t *testing.T) {
	env := NewEnvironment()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic popping the global frame")
		}
	}()
	env.Pop()
}

func TestEnvironment_DuplicateLocalInsertPanics(t *testing.T) {
	env := NewEnvironment()
	if _, err := env.InsertLocal("x", KindVariable, 0, 0); err != nil {
		t.Fatalf("insert: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate insert into the same frame")
		}
	}()
	_, _ = env.InsertLocal("x", KindVariable, 0, 1)
}

func TestEnvironment_ResourceLimit(t *testing.T) {
	env := NewEnvironment()
	env.MaxSymbols = 1
	if _, err := env.InsertGlobal("a", KindVariable, 0, 0); err != nil {
		t.Fatalf("first insert should succeed: %v", err)
	}
	if _, err := env.InsertGlobal("b", KindVariable, 0, 1); err == nil {
		t.Fatalf("expected resource-limit error on second insert")
	}
}
