package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: codestory <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commandTable() {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.summary)
	}
	fmt.Fprintf(w, "  %-10s %s\n", "version", "Show version information")
	fmt.Fprintf(w, "  %-10s %s\n", "help", "Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'codestory help <command>' for details on a specific command.")
}

// printCommandUsage prints usage and flags for one command.
func printCommandUsage(w io.Writer, c command) {
	fmt.Fprintf(w, "Usage: codestory %s [flags] %s\n", c.name, c.args)
	fmt.Fprintln(w)
	fmt.Fprintln(w, c.summary+".")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, c.flags().FlagUsages())
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: codestory version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
		return ExitSuccess
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: codestory help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
		return ExitSuccess
	}

	c, ok := lookupCommand(args[0])
	if !ok {
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	printCommandUsage(env.Stdout, c)
	return ExitSuccess
}
