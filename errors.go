package codestory

import (
	"errors"

	"github.com/alnah/go-codestory/internal/tasks"
	"github.com/alnah/go-codestory/internal/translate"
)

// Sentinel errors for library operations.
var (
	ErrNoTaskSource           = errors.New("no task source configured")
	ErrNoFiles                = errors.New("task has no markdown files")
	ErrTranslationUnavailable = errors.New("translation unavailable")

	ErrEmptyTaskID         = tasks.ErrEmptyTaskID
	ErrUnsupportedLanguage = translate.ErrUnsupportedLanguage
)
