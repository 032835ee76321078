// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

// prefixcode compresses and decompresses files with Huffman or
// Shannon-Fano codes.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

var verbosityFlag = &cli.IntFlag{
	Name:    "verbosity",
	Usage:   "Logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
	Value:   3,
	EnvVars: []string{"PREFIXCODE_VERBOSITY"},
}

func newApp() *cli.App {
	return &cli.App{
		Name:   "prefixcode",
		Usage:  "Huffman and Shannon-Fano file compression",
		Flags:  []cli.Flag{verbosityFlag},
		Before: setupLogging,
		Commands: []*cli.Command{
			encodeCommand,
			decodeCommand,
			inspectCommand,
		},
	}
}

func setupLogging(ctx *cli.Context) error {
	lvl := log.FromLegacyLevel(ctx.Int(verbosityFlag.Name))
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(ctx.App.ErrWriter, lvl, false)))
	return nil
}

// runApp runs app on args after moving each command's flags ahead of its
// positional arguments, so "encode in.txt --shannon-fano" works as well as
// "encode --shannon-fano in.txt". Arguments after "--" are left alone.
func runApp(app *cli.App, args []string) error {
	return app.Run(hoistFlags(app, args))
}

func hoistFlags(app *cli.App, args []string) []string {
	if len(args) == 0 {
		return args
	}
	out := []string{args[0]}
	rest := args[1:]
	i := 0
	for i < len(rest) && isFlag(rest[i]) {
		i += flagWidth(app.Flags, rest[i])
	}
	i = min(i, len(rest))
	out = append(out, rest[:i]...)
	rest = rest[i:]
	if len(rest) == 0 {
		return out
	}
	out = append(out, rest[0])
	cmd := app.Command(rest[0])
	if cmd == nil {
		return append(out, rest[1:]...)
	}
	var flags, positional, literal []string
	for rest = rest[1:]; len(rest) > 0; {
		if rest[0] == "--" {
			literal = rest
			break
		}
		if !isFlag(rest[0]) {
			positional = append(positional, rest[0])
			rest = rest[1:]
			continue
		}
		w := min(flagWidth(cmd.Flags, rest[0]), len(rest))
		flags = append(flags, rest[:w]...)
		rest = rest[w:]
	}
	out = append(out, flags...)
	if literal != nil {
		// The terminator must come before the first positional to be seen.
		out = append(out, "--")
		out = append(out, positional...)
		return append(out, literal[1:]...)
	}
	return append(out, positional...)
}

func isFlag(arg string) bool {
	return len(arg) > 1 && arg[0] == '-' && arg != "--"
}

// flagWidth returns how many arguments the flag in arg consumes:
// two for "--name value", one otherwise.
func flagWidth(flags []cli.Flag, arg string) int {
	name := strings.TrimLeft(arg, "-")
	if strings.Contains(name, "=") {
		return 1
	}
	for _, f := range flags {
		vf, ok := f.(interface{ TakesValue() bool })
		if !ok || !vf.TakesValue() {
			continue
		}
		for _, n := range f.Names() {
			if n == name {
				return 2
			}
		}
	}
	return 1
}

func main() {
	if err := runApp(newApp(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
