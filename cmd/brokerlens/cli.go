package main

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Options holds the global CLI options and the selected command.
type Options struct {
	ConfigPath string
	Command    string
	Args       []string
}

// ParseFlags parses the global flags in args; the first remaining argument
// is the command and the rest are its arguments.
func ParseFlags(args []string, stderr io.Writer) (Options, error) {
	fs := flag.NewFlagSet("brokerlens", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr, fs) }

	var opts Options
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to YAML config file")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return opts, fmt.Errorf("no command given")
	}
	opts.Command = rest[0]
	opts.Args = rest[1:]
	return opts, nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "usage: brokerlens [-config file] <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-14s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "global flags:")
	fs.PrintDefaults()
}

// newCommandFlags returns a flag set for a command whose usage line lists
// its positional arguments.
func newCommandFlags(name, positional string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: brokerlens %s %s\n", name, strings.TrimSpace("[flags] "+positional))
		fs.PrintDefaults()
	}
	return fs
}
