// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package buildinfo

import "testing"

func TestString(t *testing.T) {
	got := String()
	if got == "" {
		t.Fatal("expected a non-empty version string")
	}
}
