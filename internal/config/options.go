// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

// Package config models the CLI/options surface of spec.md §6 as a plain
// struct, independent of how those options are sourced (pflag/cobra flags,
// an optional sigmafox.hcl file, or direct construction in tests).
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Options is the fully-resolved set of knobs a single compilation run needs.
// cmd/sigmafox builds one from Cobra flags merged with an optional HCL file;
// internal/driver only ever sees this struct.
type Options struct {
	EntryPath string

	Compile          bool
	StripComments    bool
	OutputName       string
	OutputDirectory  string
	MemoryLimit      int64
	StringPoolLimit  int64
	ConfigPath       string
	WarningsAsErrors bool

	// CheckOnly runs tokenize/parse/validate and stops, skipping
	// generation entirely. Not part of the CLI flag surface (spec.md
	// §6.1) — it backs cmd/sigmafox-mcp's sigmafox_check tool
	// (SPEC_FULL.md §4.15).
	CheckOnly bool
}

// Default returns the zero-value-safe baseline from spec.md §6.1's flag
// table: output-name "main", output-directory "./", no size limits.
func Default() Options {
	return Options{
		OutputName:      "main",
		OutputDirectory: "./",
	}
}

// ParseSize parses a human size string such as "64MB" or "8192" (bytes, no
// suffix) into a byte count. Recognized suffixes are KB, MB, GB
// (case-insensitive, base 1024), matching sizes quoted in spec.md §6.1.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size value")
	}
	upper := strings.ToUpper(s)
	multiplier := int64(1)
	numeric := upper
	switch {
	case strings.HasSuffix(upper, "GB"):
		multiplier = 1024 * 1024 * 1024
		numeric = upper[:len(upper)-2]
	case strings.HasSuffix(upper, "MB"):
		multiplier = 1024 * 1024
		numeric = upper[:len(upper)-2]
	case strings.HasSuffix(upper, "KB"):
		multiplier = 1024
		numeric = upper[:len(upper)-2]
	case strings.HasSuffix(upper, "B"):
		numeric = upper[:len(upper)-1]
	}
	numeric = strings.TrimSpace(numeric)
	n, err := strconv.ParseInt(numeric, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid size %q: negative", s)
	}
	return n * multiplier, nil
}
