// Command brokerlens inspects broker payloads with the decoders kept under
// the preferences root.
//
//	brokerlens decoders orders
//	brokerlens decode -codec decoder:orders -file msg.bin
//	echo -n hello | brokerlens encode -codec gzip > hello.gz
//	brokerlens scalar-encode -type long 42
//	brokerlens scalar-decode -type int 00.00.00.2a
//	brokerlens inspect -topic orders -key user-7 -file msg.bin
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is the entry point after the process boundary; it returns the exit
// status.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := ParseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cmd, ok := commands[opts.Command]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", opts.Command)
		return 2
	}

	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}

	e := &env{ctx: ctx, cfg: cfg, stdin: stdin, stdout: stdout, stderr: stderr}
	if err := cmd.run(e, opts.Args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		if errors.Is(err, errUsage) {
			return 2
		}
		fmt.Fprintf(stderr, "%s: %v\n", opts.Command, err)
		return 1
	}
	return 0
}
