// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package diag

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Aggregator collects Diagnostics across every module compiled in a single
// run. One Aggregator is shared by every module's parser in a compilation;
// Merge folds in the diagnostics of a separately collected Aggregator.
type Aggregator struct {
	diagnostics       []Diagnostic
	warningsAsErrors  bool
	log               *zap.Logger
}

// NewAggregator creates an empty Aggregator. log may be nil, in which case
// a no-op logger is used.
func NewAggregator(log *zap.Logger, warningsAsErrors bool) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregator{log: log, warningsAsErrors: warningsAsErrors}
}

// Report records a Diagnostic and mirrors it to the structured logger.
func (a *Aggregator) Report(d Diagnostic) {
	a.diagnostics = append(a.diagnostics, d)
	fields := []zapcore.Field{
		zap.String("code", string(d.Code)),
		zap.String("pos", d.Pos.String()),
	}
	switch d.Severity {
	case Error:
		a.log.Error(d.Message, fields...)
	case Warning:
		a.log.Warn(d.Message, fields...)
	default:
		a.log.Info(d.Message, fields...)
	}
}

// Merge folds another Aggregator's diagnostics (e.g. from a child module's
// parser) into this one.
func (a *Aggregator) Merge(other *Aggregator) {
	if other == nil {
		return
	}
	a.diagnostics = append(a.diagnostics, other.diagnostics...)
}

// Diagnostics returns every diagnostic recorded so far, in report order.
func (a *Aggregator) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), a.diagnostics...)
}

// isFailing reports whether d should be treated as a compilation-blocking
// error under the current warnings-as-errors configuration.
func (a *Aggregator) isFailing(d Diagnostic) bool {
	if d.Severity == Error {
		return true
	}
	return a.warningsAsErrors && d.Severity == Warning
}

// BlockingDiagnostics returns every diagnostic that currently blocks
// generation under the warnings-as-errors configuration — i.e. every
// Diagnostic isFailing would accept. internal/driver's exit-code mapping
// ranks among these rather than among every diagnostic, so a promoted
// warning picks the right nonzero exit code too.
func (a *Aggregator) BlockingDiagnostics() []Diagnostic {
	var out []Diagnostic
	for _, d := range a.diagnostics {
		if a.isFailing(d) {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors reports whether any diagnostic currently blocks generation,
// applying the warnings-as-errors promotion described in spec §7.
func (a *Aggregator) HasErrors() bool {
	for _, d := range a.diagnostics {
		if a.isFailing(d) {
			return true
		}
	}
	return false
}

// Err folds every blocking diagnostic into a single multierr-wrapped error,
// or nil if the module is clean. This is what internal/driver checks before
// attempting generation.
func (a *Aggregator) Err() error {
	var err error
	for _, d := range a.diagnostics {
		if a.isFailing(d) {
			err = multierr.Append(err, d)
		}
	}
	return err
}

// Count returns (errorCount, warningCount) irrespective of promotion, for
// summary reporting.
func (a *Aggregator) Count() (errors, warnings int) {
	for _, d := range a.diagnostics {
		switch d.Severity {
		case Error:
			errors++
		case Warning:
			warnings++
		}
	}
	return
}
