// Package logtest provides a recording logger for tests.
package logtest

import (
	"context"
	"maps"
	"sync"

	"github.com/alnah/go-codestory/internal/logging"
)

// Entry is one recorded log call.
type Entry struct {
	Level  string
	Msg    string
	Args   []any
	Fields map[string]any
}

// Field returns the value of a field attached to the entry.
func (e Entry) Field(key string) any {
	return e.Fields[key]
}

// Recorder is a concurrency-safe logging.Logger that keeps every entry.
// Loggers derived through WithFields share the recorder's entry list.
type Recorder struct {
	mu      *sync.Mutex
	entries *[]Entry
	fields  map[string]any
}

var _ logging.Logger = (*Recorder)(nil)

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{mu: &sync.Mutex{}, entries: &[]Entry{}}
}

// Entries returns a copy of the recorded entries.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), (*r.entries)...)
}

// Count returns the number of entries recorded at level.
func (r *Recorder) Count(level string) int {
	n := 0
	for _, e := range r.Entries() {
		if e.Level == level {
			n++
		}
	}
	return n
}

// GetLogger makes Recorder usable as a logging.Provider.
func (r *Recorder) GetLogger(string) logging.Logger { return r }

func (r *Recorder) record(level, msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.entries = append(*r.entries, Entry{
		Level:  level,
		Msg:    msg,
		Args:   append([]any(nil), args...),
		Fields: maps.Clone(r.fields),
	})
}

func (r *Recorder) Trace(msg string, args ...any) { r.record("trace", msg, args) }
func (r *Recorder) Debug(msg string, args ...any) { r.record("debug", msg, args) }
func (r *Recorder) Info(msg string, args ...any)  { r.record("info", msg, args) }
func (r *Recorder) Warn(msg string, args ...any)  { r.record("warn", msg, args) }
func (r *Recorder) Error(msg string, args ...any) { r.record("error", msg, args) }

// WithFields returns a child recorder carrying the merged fields.
func (r *Recorder) WithFields(fields map[string]any) logging.Logger {
	merged := make(map[string]any, len(r.fields)+len(fields))
	maps.Copy(merged, r.fields)
	maps.Copy(merged, fields)
	return &Recorder{mu: r.mu, entries: r.entries, fields: merged}
}

func (r *Recorder) WithContext(context.Context) logging.Logger { return r }
