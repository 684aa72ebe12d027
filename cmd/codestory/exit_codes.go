package main

import (
	"errors"
	"os"

	goerrors "github.com/goliatone/go-errors"

	codestory "github.com/alnah/go-codestory"
	"github.com/alnah/go-codestory/internal/config"
	"github.com/alnah/go-codestory/internal/dateutil"
	"github.com/alnah/go-codestory/internal/export"
	"github.com/alnah/go-codestory/internal/fileutil"
	"github.com/alnah/go-codestory/internal/render"
	"github.com/alnah/go-codestory/internal/speech"
	"github.com/alnah/go-codestory/internal/tasks"
	"github.com/alnah/go-codestory/internal/translate"
)

// Exit codes for the codestory CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Command completed
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // File not found, permission denied
	ExitExternal = 4 // Backend, translator, speech engine or clipboard failure
)

// CLI errors.
var (
	ErrUnknownCommand     = errors.New("unknown command")
	ErrMissingArgument    = errors.New("missing argument")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrReadInput          = errors.New("failed to read input")
	ErrWriteOutput        = errors.New("failed to write output")
	ErrTranslatorSetup    = errors.New("translator not configured")
	ErrStatusNotSupported = errors.New("status requires the HTTP backend")
	ErrCopyFailed         = errors.New("copy failed")
)

const usageCode = "CLI_USAGE"

// usageError marks err as a usage problem.
func usageError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid usage").WithTextCode(usageCode)
}

// exitCodeFor returns the exit code for err. Sentinels must be wrapped with
// fmt.Errorf("%w") so errors.Is can find them.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if goerrors.IsCategory(err, goerrors.CategoryValidation) {
		return ExitUsage
	}

	if errors.Is(err, tasks.ErrBackend) ||
		errors.Is(err, tasks.ErrTaskNotReady) ||
		errors.Is(err, translate.ErrTranslatorFailed) ||
		errors.Is(err, codestory.ErrTranslationUnavailable) ||
		errors.Is(err, speech.ErrEngineUnavailable) ||
		errors.Is(err, render.ErrClipboardUnavailable) ||
		errors.Is(err, ErrCopyFailed) {
		return ExitExternal
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, tasks.ErrTaskNotFound) ||
		errors.Is(err, codestory.ErrNoFiles) ||
		errors.Is(err, fileutil.ErrPathTraversal) {
		return ExitIO
	}

	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, codestory.ErrUnsupportedLanguage) ||
		errors.Is(err, codestory.ErrEmptyTaskID) ||
		errors.Is(err, export.ErrUnknownHighlight) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, speech.ErrNothingToSay) ||
		errors.Is(err, ErrTranslatorSetup) ||
		errors.Is(err, ErrStatusNotSupported) ||
		errors.Is(err, ErrMissingArgument) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrUnknownCommand) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintedError appends an actionable hint to an error message.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() + e.hint }
func (e *hintedError) Unwrap() error { return e.err }

func withHint(err error, hint string) error {
	if err == nil || hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}
