package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-codestory/internal/assets"
	"github.com/alnah/go-codestory/internal/config"
	"github.com/alnah/go-codestory/internal/logging"
	"github.com/alnah/go-codestory/internal/render"
	"github.com/alnah/go-codestory/internal/speech"
	"github.com/alnah/go-codestory/internal/tasks"
	"github.com/alnah/go-codestory/internal/translate"
)

// Environment holds injectable dependencies for testability. Nil
// collaborators are built from the configuration.
type Environment struct {
	Now     func() time.Time
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Environ func() []string

	Config      *config.Config // base configuration, DefaultConfig when nil
	Logging     logging.Provider
	AssetLoader assets.AssetLoader
	Source      tasks.Source
	Translator  translate.Translator
	Engine      speech.Engine
	Clipboard   render.Clipboard
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Environ: os.Environ,
	}
}
