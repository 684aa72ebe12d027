// Package logging defines the leveled logging contract shared by the
// collaborators and a no-op implementation used when logging is disabled.
package logging

import (
	"context"
	"maps"
	"strings"
)

// Logger is the leveled logging contract. It mirrors the interface of
// github.com/goliatone/go-logger so the glog provider adapts it directly.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	WithFields(fields map[string]any) Logger
	WithContext(ctx context.Context) Logger
}

// Provider hands out named loggers.
type Provider interface {
	GetLogger(name string) Logger
}

// Module names.
const (
	RootModule      = "codestory"
	TranslateModule = "codestory.translate"
	SpeechModule    = "codestory.speech"
	RenderModule    = "codestory.render"
	TasksModule     = "codestory.tasks"
	ExportModule    = "codestory.export"
)

// ModuleLogger returns a module-scoped logger annotated with a module field.
// A nil provider yields the no-op logger.
func ModuleLogger(provider Provider, module string) Logger {
	if strings.TrimSpace(module) == "" {
		module = RootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return logger.WithFields(map[string]any{"module": module})
}

// WithFields attaches fields to logger. Nil loggers become no-op loggers and
// the map is copied so callers may reuse it.
func WithFields(logger Logger, fields map[string]any) Logger {
	if logger == nil {
		return NoOp()
	}
	if len(fields) == 0 {
		return logger
	}
	copied := make(map[string]any, len(fields))
	maps.Copy(copied, fields)
	return logger.WithFields(copied)
}

// OrNoOp returns logger, or the no-op logger when logger is nil.
func OrNoOp(logger Logger) Logger {
	if logger == nil {
		return NoOp()
	}
	return logger
}

// NoOp returns a logger that drops every entry.
func NoOp() Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) Logger { return n }

func (n noopLogger) WithContext(context.Context) Logger { return n }
