// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package driver

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var consoleEncoderConfig = zapcore.EncoderConfig{
	MessageKey:     "M",
	LevelKey:       "L",
	TimeKey:        "T",
	NameKey:        "N",
	CallerKey:      "C",
	StacktraceKey:  "S",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.CapitalColorLevelEncoder,
	EncodeTime:     zapcore.ISO8601TimeEncoder,
	EncodeDuration: zapcore.StringDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
	EncodeName:     zapcore.FullNameEncoder,
}

// NewLogger builds the phase-boundary logger used across one compilation
// run (tokenize/parse/validate/generate, SPEC_FULL.md §4.9). verbose raises
// the level from Info to Debug.
func NewLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleEncoderConfig),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core)
}
