package main

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-codestory/internal/config"
	"github.com/alnah/go-codestory/internal/yamlutil"
)

type configFlags struct {
	common commonFlags
	paths  bool
}

func configFlagSet(f *configFlags) *flag.FlagSet {
	fs := newFlagSet("config")
	fs.BoolVar(&f.paths, "paths", false, "list where a config name is searched")
	addCommonFlags(fs, &f.common)
	return fs
}

func runConfig(_ context.Context, args []string, env *Environment) error {
	var f configFlags
	positional, err := parseFlags(configFlagSet(&f), args, 0, 1)
	if err != nil {
		return err
	}
	if len(positional) == 1 {
		f.common.config = positional[0]
	}

	if f.paths {
		name := f.common.config
		if name == "" {
			name = "codestory"
		}
		for _, p := range config.SearchPaths(name) {
			fmt.Fprintln(env.Stdout, p)
		}
		return nil
	}

	rt, err := setup(env, f.common, nil)
	if err != nil {
		return err
	}
	out, err := yamlutil.Marshal(rt.cfg)
	if err != nil {
		return err
	}
	return writeOutput("", out, env)
}
