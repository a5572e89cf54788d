// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

// Package driver orchestrates one compilation end to end: source registry
// load, dependency-graph-aware parse (which folds in lexing and semantic
// validation through internal/parser), C++ generation, manifest emission,
// and an optional $CXX compile step. It is the Go analog of the teacher's
// original_source Compiler type (parse/validate/generate phase split), but
// as a function rather than a stateful object, matching this module's
// otherwise-stateless package shapes.
package driver

import (
	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"

	"github.com/magictrick-dev/sigmafox/internal/codegen"
	"github.com/magictrick-dev/sigmafox/internal/config"
	"github.com/magictrick-dev/sigmafox/internal/deps"
	"github.com/magictrick-dev/sigmafox/internal/diag"
	"github.com/magictrick-dev/sigmafox/internal/lex"
	"github.com/magictrick-dev/sigmafox/internal/parser"
	"github.com/magictrick-dev/sigmafox/internal/registry"
	"github.com/magictrick-dev/sigmafox/internal/sema"
	"github.com/magictrick-dev/sigmafox/internal/symbols"
)

// Result carries everything a caller (cmd/sigmafox, cmd/sigmafox-mcp) needs
// after a compilation attempt, whether it succeeded or not.
type Result struct {
	Diagnostics []diag.Diagnostic
	ExitCode    int
	Manifest    codegen.Manifest
	CompileLog  string // $CXX stdout+stderr, only set when opts.Compile is true
}

// Run executes one compilation of opts.EntryPath against fs, writing
// generated C++ under opts.OutputDirectory. fs is the billy.Filesystem both
// source and output live on; pass osfs.New(".") for a real run and a
// memfs.New() in tests.
func Run(fs billy.Filesystem, opts config.Options, log *zap.Logger) Result {
	if log == nil {
		log = zap.NewNop()
	}
	aggregator := diag.NewAggregator(log, opts.WarningsAsErrors)

	reg := registry.New(fs)
	entryHandle, err := reg.Create(opts.EntryPath)
	if err != nil {
		aggregator.Report(diag.Errorf(diag.CodeMissingSourceFile, diag.Position{Path: opts.EntryPath}, "%v", err))
		return finish(aggregator)
	}
	if err := reg.Load(entryHandle); err != nil {
		aggregator.Report(diag.Errorf(diag.CodeUnreadableSource, diag.Position{Path: opts.EntryPath}, "%v", err))
		return finish(aggregator)
	}
	entryPath, err := reg.Path(entryHandle)
	if err != nil {
		aggregator.Report(diag.Errorf(diag.CodeInternalInvariant, diag.Position{Path: opts.EntryPath}, "%v", err))
		return finish(aggregator)
	}

	log.Info("tokenize+parse", zap.String("entry", entryPath))

	graph := deps.New()
	if _, err := graph.SetEntry(entryPath); err != nil {
		aggregator.Report(diag.Errorf(diag.CodeInternalInvariant, diag.Position{Path: entryPath}, "%v", err))
		return finish(aggregator)
	}

	env := symbols.NewEnvironment()
	validator := sema.NewValidator(sema.NewEvaluator(nil, env, aggregator))
	lexOpts := lex.Options{StripComments: opts.StripComments}

	entryParser, err := parser.New(reg, graph, env, validator, aggregator, lexOpts, entryHandle)
	if err != nil {
		aggregator.Report(diag.Errorf(diag.CodeInternalInvariant, diag.Position{Path: entryPath}, "%v", err))
		return finish(aggregator)
	}
	graph.SetOwner(entryPath, entryParser)
	validator.Eval.Arena = entryParser.Arena()

	root := entryParser.ParseAsRoot()
	reportLexDiagnostics(aggregator, entryParser, graph, entryPath)

	log.Info("validate", zap.Int("errors", entryParser.ErrorCount()))
	if aggregator.HasErrors() {
		return finish(aggregator)
	}
	if opts.CheckOnly {
		return finish(aggregator)
	}

	log.Info("generate", zap.String("output", opts.OutputDirectory))
	tree := codegen.NewTree(opts.OutputDirectory)
	gen := codegen.NewGenerator(tree, aggregator)
	gen.GenerateRoot(root, opts.OutputName)

	if err := tree.Commit(fs); err != nil {
		aggregator.Report(diag.Errorf(diag.CodeUnwritableOutput, diag.Position{Path: opts.OutputDirectory}, "%v", err))
		return finish(aggregator)
	}

	entryRel := opts.OutputName + ".cpp"
	manifest := codegen.BuildManifest(tree, entryRel)
	if err := codegen.WriteManifest(fs, manifest); err != nil {
		aggregator.Report(diag.Errorf(diag.CodeUnwritableOutput, diag.Position{Path: opts.OutputDirectory}, "%v", err))
		return finish(aggregator)
	}

	res := finish(aggregator)
	res.Manifest = manifest

	if opts.Compile && res.ExitCode == ExitSuccess {
		out, err := CompileWithCXX(fs, opts.OutputDirectory, entryRel)
		res.CompileLog = out
		if err != nil {
			aggregator.Report(diag.Errorf(diag.CodeUnwritableOutput, diag.Position{Path: opts.OutputDirectory}, "%v", err))
			res = finish(aggregator)
			res.Manifest = manifest
			res.CompileLog = out
		}
	}
	return res
}

// reportLexDiagnostics folds every module's tokenizer diagnostics into the
// shared Aggregator. internal/lex collects them per-Tokenizer rather than
// reporting through the Aggregator directly, so the driver — which is the
// only component that can see every module in the dependency graph at
// once — gathers them after parsing completes.
func reportLexDiagnostics(aggregator *diag.Aggregator, entry *parser.Parser, graph *deps.Graph, entryPath string) {
	for _, d := range entry.LexDiagnostics() {
		aggregator.Report(d)
	}
	for _, path := range graph.DepsRecursive(entryPath) {
		owner, ok := graph.ParserFor(path)
		if !ok {
			continue
		}
		p, ok := owner.(*parser.Parser)
		if !ok {
			continue
		}
		for _, d := range p.LexDiagnostics() {
			aggregator.Report(d)
		}
	}
}

func finish(aggregator *diag.Aggregator) Result {
	return Result{
		Diagnostics: aggregator.Diagnostics(),
		ExitCode:    ExitCodeFor(aggregator.BlockingDiagnostics()),
	}
}
