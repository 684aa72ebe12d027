package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// sourceFlags select where task files come from.
type sourceFlags struct {
	dir     string
	backend string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log at debug level")
}

// addSourceFlags adds task source flags to a FlagSet.
func addSourceFlags(fs *flag.FlagSet, f *sourceFlags) {
	fs.StringVar(&f.dir, "dir", "", "read task files from a local output directory")
	fs.StringVar(&f.backend, "backend", "", "generator API base URL")
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(io.Discard)
	return fs
}

// parseFlags parses args and checks the positional count lies in [minArgs, maxArgs].
func parseFlags(fs *flag.FlagSet, args []string, minArgs, maxArgs int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, usageError(fmt.Errorf("%w: %v", ErrInvalidArgument, err))
	}
	positional := fs.Args()
	if len(positional) < minArgs {
		return nil, usageError(fmt.Errorf("%w: %s expects %d argument(s)", ErrMissingArgument, fs.Name(), minArgs))
	}
	if len(positional) > maxArgs {
		return nil, usageError(fmt.Errorf("%w: unexpected %q", ErrInvalidArgument, positional[maxArgs]))
	}
	return positional, nil
}
