// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package config

import (
	"github.com/hashicorp/hcl/v2/hclsimple"
)

// fileConfig mirrors the optional sigmafox.hcl project file. Every field is
// a pointer so hclsimple only sets what the file actually mentions, letting
// LoadFile tell "absent" apart from "explicitly false/zero".
type fileConfig struct {
	Compile          *bool   `hcl:"compile,optional"`
	StripComments    *bool   `hcl:"strip_comments,optional"`
	OutputName       *string `hcl:"output_name,optional"`
	OutputDirectory  *string `hcl:"output_directory,optional"`
	MemoryLimit      *string `hcl:"memory_limit,optional"`
	StringPoolLimit  *string `hcl:"string_pool_limit,optional"`
	WarningsAsErrors *bool   `hcl:"warnings_as_errors,optional"`
}

// LoadFile reads a sigmafox.hcl project file and applies its fields onto
// opts, skipping fields the file doesn't set. Flags parsed on the command
// line are applied on top afterward by the caller, so flags always win.
func LoadFile(path string, opts *Options) error {
	var fc fileConfig
	if err := hclsimple.DecodeFile(path, nil, &fc); err != nil {
		return err
	}

	if fc.Compile != nil {
		opts.Compile = *fc.Compile
	}
	if fc.StripComments != nil {
		opts.StripComments = *fc.StripComments
	}
	if fc.OutputName != nil {
		opts.OutputName = *fc.OutputName
	}
	if fc.OutputDirectory != nil {
		opts.OutputDirectory = *fc.OutputDirectory
	}
	if fc.MemoryLimit != nil {
		n, err := ParseSize(*fc.MemoryLimit)
		if err != nil {
			return err
		}
		opts.MemoryLimit = n
	}
	if fc.StringPoolLimit != nil {
		n, err := ParseSize(*fc.StringPoolLimit)
		if err != nil {
			return err
		}
		opts.StringPoolLimit = n
	}
	if fc.WarningsAsErrors != nil {
		opts.WarningsAsErrors = *fc.WarningsAsErrors
	}
	return nil
}
