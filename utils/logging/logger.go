// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"io"

	"go.uber.org/zap"
)

// Logger defines the interface used to record the events of a run.
type Logger interface {
	// For writing pre-formatted output through the same sinks.
	io.Writer

	// Fatal reports an error the program cannot continue past.
	Fatal(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	// Verbo records per-record detail and is normally disabled.
	Verbo(msg string, fields ...zap.Field)

	// SetLevel changes the level of every sink of this logger.
	SetLevel(level Level)

	// Enabled reports whether any sink would record [lvl].
	Enabled(lvl Level) bool

	// StopOnPanic catches a panic, logs it, and repanics after flushing.
	StopOnPanic()

	// RecoverAndExit runs [f]; if it panics the panic is logged and [exit]
	// runs instead of the panic propagating.
	RecoverAndExit(f, exit func())

	// Stop flushes and closes the underlying writers.
	Stop()
}
