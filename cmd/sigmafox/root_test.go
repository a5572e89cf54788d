// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package main

import "testing"

func TestMergeOptions_FlagsOverrideDefaults(t *testing.T) {
	cmd := newRootCommand()
	if err := cmd.ParseFlags([]string{"--output-name", "program", "--memory-limit", "64MB", "in.fox"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	var fv flagValues
	fv.outputName = "program"
	fv.memoryLimit = "64MB"

	opts, err := mergeOptions(cmd, fv)
	if err != nil {
		t.Fatalf("mergeOptions: %v", err)
	}
	if opts.OutputName != "program" {
		t.Errorf("OutputName = %q, want %q", opts.OutputName, "program")
	}
	if opts.MemoryLimit != 64*1024*1024 {
		t.Errorf("MemoryLimit = %d, want %d", opts.MemoryLimit, 64*1024*1024)
	}
	if opts.OutputDirectory != "./" {
		t.Errorf("OutputDirectory should keep its default, got %q", opts.OutputDirectory)
	}
}

func TestMergeOptions_NoFlagsKeepsDefaults(t *testing.T) {
	cmd := newRootCommand()
	if err := cmd.ParseFlags([]string{"in.fox"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	opts, err := mergeOptions(cmd, flagValues{})
	if err != nil {
		t.Fatalf("mergeOptions: %v", err)
	}
	if opts.OutputName != "main" || opts.OutputDirectory != "./" {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
}
