package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// maxprocs.Set only fails on an invalid GOMAXPROCS, where runtime
	// defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}

// command is one CLI subcommand.
type command struct {
	name    string
	args    string
	summary string
	flags   func() *flag.FlagSet
	run     func(ctx context.Context, args []string, env *Environment) error
}

func commandTable() []command {
	return []command{
		{"render", "<file|->", "Render markdown to the reader HTML view", func() *flag.FlagSet { return renderFlagSet(&renderFlags{}) }, runRender},
		{"chunks", "<file|->", "Split markdown into text and code chunks", func() *flag.FlagSet { return chunksFlagSet(&chunksFlags{}) }, runChunks},
		{"speech", "<file|->", "Print the text that would be spoken", func() *flag.FlagSet { return speechFlagSet(&speechFlags{}) }, runSpeech},
		{"speak", "<file|->", "Read markdown aloud", func() *flag.FlagSet { return speakFlagSet(&speakFlags{}) }, runSpeak},
		{"translate", "<file|->", "Translate markdown, keeping code fences intact", func() *flag.FlagSet { return translateFlagSet(&translateFlags{}) }, runTranslate},
		{"copy", "<file|-> [n]", "Copy the n-th code block to the clipboard", func() *flag.FlagSet { return copyFlagSet(&copyFlags{}) }, runCopy},
		{"files", "<task-id>", "List the files of a generation task", func() *flag.FlagSet { return taskFlagSet("files", &taskFlags{}) }, runFiles},
		{"status", "<task-id>", "Show the status of a generation task", func() *flag.FlagSet { return taskFlagSet("status", &taskFlags{}) }, runStatus},
		{"open", "<task-id>", "Load, translate and render a task", func() *flag.FlagSet { return openFlagSet(&openFlags{}) }, runOpen},
		{"export", "<task-id>", "Export a task as one print-ready HTML document", func() *flag.FlagSet { return exportFlagSet(&exportFlags{}) }, runExport},
		{"config", "", "Show the effective configuration", func() *flag.FlagSet { return configFlagSet(&configFlags{}) }, runConfig},
	}
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commandTable() {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// runMain dispatches args to a command and returns the process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	name, rest := args[0], args[1:]
	switch name {
	case "help", "-h", "--help":
		return runHelp(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "codestory %s\n", Version)
		return ExitSuccess
	}

	cmd, ok := lookupCommand(name)
	if !ok {
		fmt.Fprintf(env.Stderr, "error: %v\n", usageError(fmt.Errorf("%w: %s", ErrUnknownCommand, name)))
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err := cmd.run(ctx, rest, env); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printCommandUsage(env.Stdout, cmd)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}
