package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/imarsman/isoutc/internal/command"
)

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s <subcommand> [<options>] [timestamps...]\nValid subcommands: \n", os.Args[0])
		printSubcommands()
		os.Exit(1)
	}

	build, found := command.Commands[os.Args[1]]
	if !found {
		fmt.Fprintf(os.Stderr, "Invalid subcommand %s. Valid subcommands: \n", os.Args[1])
		printSubcommands()
		os.Exit(1)
	}

	cmd, err := build(command.Env{
		Args:   os.Args[2:],
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[1], err)
		os.Exit(2)
	}

	os.Exit(cmd.Run())
}

func printSubcommands() {
	names := make([]string, 0, len(command.Commands))
	for k := range command.Commands {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintf(os.Stderr, "    %s\n", k)
	}
}
