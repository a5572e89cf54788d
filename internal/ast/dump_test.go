// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package ast

import (
	"testing"

	"github.com/magictrick-dev/sigmafox/internal/diag"
	"github.com/ohler55/ojg/jp"
)

func TestDump_WriteChain(t *testing.T) {
	arena := NewArena()
	loc := arena.NewIntegerLit(diag.Position{}, 1)
	a1 := arena.NewIntegerLit(diag.Position{}, 2)
	a2 := arena.NewIntegerLit(diag.Position{}, 3)
	write := arena.NewWrite(diag.Position{}, loc, []Node{a1, a2})

	doc := Dump(write)
	if doc["kind"] != "Write" {
		t.Fatalf("expected kind Write, got %v", doc["kind"])
	}

	expr, err := jp.ParseString("$.args[1].value")
	if err != nil {
		t.Fatalf("jp.ParseString: %v", err)
	}
	got := expr.Get(doc)
	if len(got) != 1 || got[0] != int64(3) {
		t.Fatalf("expected args[1].value == 3, got %v", got)
	}
}

func TestDump_BinaryIncludesOpAndKind(t *testing.T) {
	arena := NewArena()
	l := arena.NewIntegerLit(diag.Position{}, 2)
	l.SetType(KindInteger, StructScalar, 1)
	r := arena.NewIntegerLit(diag.Position{}, 3)
	r.SetType(KindInteger, StructScalar, 1)
	bin := arena.NewBinary(diag.Position{}, OpPow, l, r)
	bin.SetType(KindReal, StructScalar, 1)

	doc := Dump(bin)
	if doc["op"] != "^" {
		t.Fatalf("expected op \"^\", got %v", doc["op"])
	}
	if doc["dataKind"] != "real" {
		t.Fatalf("expected dataKind \"real\", got %v", doc["dataKind"])
	}
}
