package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-codestory/internal/fileutil"
)

// readInput reads the markdown named by args[0], or stdin for "-" or no
// argument. It returns the display name and the content.
func readInput(args []string, env *Environment) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(env.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
		}
		return "stdin", string(data), nil
	}

	path := args[0]
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return path, string(data), nil
}

// writeOutput writes data to path atomically, or to stdout when path is
// empty or "-".
func writeOutput(path string, data []byte, env *Environment) error {
	if path == "" || path == "-" {
		if _, err := env.Stdout.Write(data); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// titleFromName turns "docs/01_intro.md" into "01 intro".
func titleFromName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return strings.ReplaceAll(base, "_", " ")
}
