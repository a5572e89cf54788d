// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

// Command sigmafox transpiles a SigmaFox source module to C++, realizing
// spec.md §6's CLI surface as a github.com/spf13/cobra command tree. This
// replaces the teacher's (cmd/guanabana) stdlib-flag-based placeholder main,
// which the teacher itself marks "for reference only" pending a real
// Cobra tree.
package main

import (
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/magictrick-dev/sigmafox/internal/buildinfo"
	"github.com/magictrick-dev/sigmafox/internal/config"
	"github.com/magictrick-dev/sigmafox/internal/driver"
)

// flagValues holds raw flag output before it is merged with an optional
// sigmafox.hcl file into a final config.Options (mergeOptions below).
type flagValues struct {
	compile          bool
	stripComments    bool
	outputName       string
	outputDirectory  string
	memoryLimit      string
	stringPoolLimit  string
	configPath       string
	warningsAsErrors bool
	verbose          bool
}

func newRootCommand() *cobra.Command {
	var fv flagValues

	cmd := &cobra.Command{
		Use:     "sigmafox [flags] <entry-source-path>",
		Short:   "Transpile a SigmaFox source module to C++",
		Version: buildinfo.Version.String(),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := mergeOptions(cmd, fv)
			if err != nil {
				return fmt.Errorf("sigmafox: %w", err)
			}
			opts.EntryPath = args[0]

			log := driver.NewLogger(cmd.ErrOrStderr(), fv.verbose)
			fs := osfs.New(".")
			res := driver.Run(fs, opts, log)

			for _, d := range res.Diagnostics {
				fmt.Fprintln(cmd.ErrOrStderr(), d.Error())
			}
			if res.ExitCode != driver.ExitSuccess {
				cmd.SilenceUsage = true
				cmd.SilenceErrors = true
				os.Exit(res.ExitCode)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&fv.compile, "compile", "c", false, "compile generated C++ with $CXX after transpiling")
	flags.BoolVarP(&fv.stripComments, "strip-comments", "t", false, "strip comments during tokenization")
	flags.StringVar(&fv.outputName, "output-name", "", "(default \"main\")")
	flags.StringVar(&fv.outputDirectory, "output-directory", "", "(default \"./\")")
	flags.StringVar(&fv.memoryLimit, "memory-limit", "", "e.g. 64MB")
	flags.StringVar(&fv.stringPoolLimit, "string-pool-limit", "", "e.g. 8MB")
	flags.StringVar(&fv.configPath, "config", "", "path to a sigmafox.hcl config file")
	flags.BoolVar(&fv.warningsAsErrors, "warnings-as-errors", false, "promote warnings to errors")
	flags.BoolVarP(&fv.verbose, "verbose", "v", false, "enable debug-level phase logging")

	return cmd
}

// mergeOptions builds the Options for one run: defaults, then an optional
// sigmafox.hcl file, then any flag the user actually typed — in that
// order, so flags always win (SPEC_FULL.md §4.11).
func mergeOptions(cmd *cobra.Command, fv flagValues) (config.Options, error) {
	opts := config.Default()

	if fv.configPath != "" {
		opts.ConfigPath = fv.configPath
		if err := config.LoadFile(fv.configPath, &opts); err != nil {
			return opts, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("compile") {
		opts.Compile = fv.compile
	}
	if flags.Changed("strip-comments") {
		opts.StripComments = fv.stripComments
	}
	if flags.Changed("output-name") {
		opts.OutputName = fv.outputName
	}
	if flags.Changed("output-directory") {
		opts.OutputDirectory = fv.outputDirectory
	}
	if flags.Changed("memory-limit") {
		n, err := config.ParseSize(fv.memoryLimit)
		if err != nil {
			return opts, err
		}
		opts.MemoryLimit = n
	}
	if flags.Changed("string-pool-limit") {
		n, err := config.ParseSize(fv.stringPoolLimit)
		if err != nil {
			return opts, err
		}
		opts.StringPoolLimit = n
	}
	if flags.Changed("warnings-as-errors") {
		opts.WarningsAsErrors = fv.warningsAsErrors
	}
	return opts, nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(driver.ExitArgumentError)
	}
}
