package fros

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with simulator-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithID adds a file id field to the logger.
func (l *Logger) WithID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("file_id", id),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogCreate logs a file or directory creation.
func (l *Logger) LogCreate(ctx context.Context, kind, name, id string, blocks []int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "create failed",
			"kind", kind,
			"name", name,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "create completed",
		"kind", kind,
		"name", name,
		"file_id", id,
		"blocks", len(blocks),
	)
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(ctx context.Context, id string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "delete failed",
			"file_id", id,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "delete completed",
			"file_id", id,
		)
	}
}

// LogRead logs a read. Reads that hit a corrupted block are warnings.
func (l *Logger) LogRead(ctx context.Context, id string, entry LogEntry, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "read failed",
			"file_id", id,
			"error", err,
		)
	case !entry.Success:
		l.WarnContext(ctx, "read hit corrupted block",
			"file_id", id,
			"file_name", entry.FileName,
			"blocks", len(entry.Blocks),
		)
	default:
		l.DebugContext(ctx, "read completed",
			"file_id", id,
			"total_time", entry.TotalTime,
		)
	}
}

// LogCrash logs a simulated crash.
func (l *Logger) LogCrash(ctx context.Context, severity float64, corrupted []int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "crash simulation rejected",
			"severity", severity,
			"error", err,
		)
		return
	}
	l.WarnContext(ctx, "crash simulated",
		"severity", severity,
		"corrupted", len(corrupted),
	)
}

// LogRecovery logs a recovery pass.
func (l *Logger) LogRecovery(ctx context.Context, res RecoveryResult) {
	if len(res.Lost) > 0 {
		l.WarnContext(ctx, "recovery completed with data loss",
			"recovered", len(res.Recovered),
			"lost", len(res.Lost),
			"files_affected", len(res.FilesAffected),
		)
	} else {
		l.InfoContext(ctx, "recovery completed",
			"recovered", len(res.Recovered),
			"files_affected", len(res.FilesAffected),
		)
	}
}

// LogFsck logs a consistency check.
func (l *Logger) LogFsck(ctx context.Context, report FsckReport) {
	if report.Consistent() {
		l.InfoContext(ctx, "fsck clean")
		return
	}
	l.WarnContext(ctx, "fsck found inconsistencies",
		"orphan_blocks", len(report.OrphanBlocks),
		"missing_blocks", len(report.MissingBlocks),
		"inconsistent_files", len(report.InconsistentFiles),
	)
}

// LogDefragment logs a defragmentation pass.
func (l *Logger) LogDefragment(ctx context.Context, res DefragResult) {
	l.InfoContext(ctx, "defragment completed",
		"moves", len(res.Moves),
		"time_saved", res.TimeSaved,
	)
}

// LogExport logs a state export.
func (l *Logger) LogExport(ctx context.Context, codecName, compression string, written int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "export failed",
			"codec", codecName,
			"compression", compression,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "export completed",
			"codec", codecName,
			"compression", compression,
			"bytes", written,
		)
	}
}
