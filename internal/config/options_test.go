// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package config

import "testing"

func TestParseSize(t *testing.T) {
	cases := map[string]int64{
		"0":     0,
		"512":   512,
		"1KB":   1024,
		"64MB":  64 * 1024 * 1024,
		"8mb":   8 * 1024 * 1024,
		"1GB":   1024 * 1024 * 1024,
		" 2 KB": 2048,
	}
	for in, want := range cases {
		got, err := ParseSize(in)
		if err != nil {
			t.Fatalf("ParseSize(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseSize(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseSize_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "-1"} {
		if _, err := ParseSize(in); err == nil {
			t.Errorf("ParseSize(%q): expected error", in)
		}
	}
}

func TestDefault(t *testing.T) {
	d := Default()
	if d.OutputName != "main" || d.OutputDirectory != "./" {
		t.Fatalf("unexpected defaults: %+v", d)
	}
}
