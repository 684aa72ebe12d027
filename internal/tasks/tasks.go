// Package tasks loads the markdown files produced by a tutorial generation
// task, either from the backend job API or from a local output directory.
package tasks

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"strings"
)

// Sentinel errors for task sources.
var (
	ErrEmptyTaskID  = errors.New("task id is empty")
	ErrTaskNotFound = errors.New("task not found")
	ErrTaskNotReady = errors.New("task not completed")
	ErrBackend      = errors.New("backend error")
	ErrTimeout      = errors.New("backend request timed out")
)

// IndexFile is always ordered first.
const IndexFile = "index.md"

// File is one generated markdown document.
type File struct {
	Name    string // cleaned file name, e.g. "01_intro.md"
	Path    string // path relative to the task output directory
	Content string

	// Title comes from front matter when present.
	Title string
}

// DisplayName returns the title, or the file name without its extension
// and with underscores shown as spaces.
func (f File) DisplayName() string {
	if f.Title != "" {
		return f.Title
	}
	return strings.ReplaceAll(strings.TrimSuffix(f.Name, ".md"), "_", " ")
}

// Source is the task/file capability.
type Source interface {
	Files(ctx context.Context, taskID string) ([]File, error)
}

var (
	multiUnderscore     = regexp.MustCompile(`__+`)
	underscoreBeforeExt = regexp.MustCompile(`_+\.`)
	trailingUnderscore  = regexp.MustCompile(`_+$`)
)

// CleanFilename collapses underscore runs and drops underscores before the
// extension and at the end of the name.
func CleanFilename(name string) string {
	name = multiUnderscore.ReplaceAllString(name, "_")
	name = underscoreBeforeExt.ReplaceAllString(name, ".")
	return trailingUnderscore.ReplaceAllString(name, "")
}

// Normalize cleans every file name and sorts the files with index.md first
// and the rest by name. The input slice is not modified.
func Normalize(files []File) []File {
	out := make([]File, len(files))
	for i, f := range files {
		f.Name = CleanFilename(f.Name)
		out[i] = f
	}
	slices.SortStableFunc(out, func(a, b File) int {
		switch {
		case a.Name == b.Name:
			return 0
		case a.Name == IndexFile:
			return -1
		case b.Name == IndexFile:
			return 1
		default:
			return strings.Compare(a.Name, b.Name)
		}
	})
	return out
}
