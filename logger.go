package geonarrative

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with index-specific helpers so operations log
// with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler. If handler is nil,
// a text handler on stderr at info level is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{Logger: slog.New(handler)}
}

// LogInsert logs one insert operation.
func (l *Logger) LogInsert(ctx context.Context, id uint32, err error) {
	if err != nil {
		l.ErrorContext(ctx, "insert failed", "error", err)
	} else {
		l.DebugContext(ctx, "insert completed", "id", id)
	}
}

// LogQuery logs a joint spatiotemporal query.
func (l *Logger) LogQuery(ctx context.Context, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "query failed", "error", err)
	} else {
		l.DebugContext(ctx, "query completed", "results", results)
	}
}

// LogNearest logs a k-nearest search.
func (l *Logger) LogNearest(ctx context.Context, k, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "nearest failed", "k", k, "error", err)
	} else {
		l.DebugContext(ctx, "nearest completed", "k", k, "results", results)
	}
}

// LogHeatmap logs a heatmap computation.
func (l *Logger) LogHeatmap(ctx context.Context, cells, counted int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "heatmap failed", "error", err)
	} else {
		l.DebugContext(ctx, "heatmap completed", "cells", cells, "counted", counted)
	}
}
