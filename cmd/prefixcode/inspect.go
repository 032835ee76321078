// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jba/prefixcode"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

var (
	encodedFlag = &cli.BoolFlag{
		Name:  "encoded",
		Usage: "Read the code table stored in an encoded file instead of building one",
	}

	inspectCommand = &cli.Command{
		Action:    inspect,
		Name:      "inspect",
		Usage:     "Print the code table of a file",
		ArgsUsage: "<input>",
		Flags:     []cli.Flag{shannonFanoFlag, encodedFlag},
		Description: `
Without --encoded, inspect counts the bytes of the input and prints the code
that encode would build for it. With --encoded, it prints the table stored
at the start of a file written by encode; counts are not stored there.`,
	}
)

func inspect(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("need exactly one input file")
	}
	f, err := openInput(ctx.Args().First())
	if err != nil {
		return err
	}
	defer f.Close()

	var (
		stats *prefixcode.Stats
		tree  *prefixcode.CodeTree
	)
	if ctx.Bool(encodedFlag.Name) {
		tree, err = prefixcode.ReadTable(bufio.NewReader(f))
	} else {
		alg := prefixcode.Huffman
		if ctx.Bool(shannonFanoFlag.Name) {
			alg = prefixcode.ShannonFano
		}
		if stats, err = prefixcode.ScanStats(f); err == nil {
			tree, err = prefixcode.Build(alg, stats)
		}
	}
	if err != nil {
		return err
	}
	renderTable(ctx.App.Writer, tree, stats)
	return nil
}

// renderTable prints one row per symbol. stats may be nil.
func renderTable(w io.Writer, tree *prefixcode.CodeTree, stats *prefixcode.Stats) {
	var (
		rows [][]string
		bits uint64
	)
	for _, sym := range tree.Symbols() {
		c, _ := tree.Lookup(sym)
		count := "-"
		if stats != nil {
			count = strconv.FormatUint(stats.Counts[sym], 10)
			bits += stats.Counts[sym] * uint64(c.Length)
		}
		rows = append(rows, []string{symbolName(sym), count, strconv.Itoa(int(c.Length)), c.String()})
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Symbol", "Count", "Length", "Code"})
	if stats != nil && stats.Total > 0 {
		avg := float64(bits) / float64(stats.Total)
		table.SetFooter([]string{"Total", strconv.FormatUint(stats.Total, 10),
			fmt.Sprintf("%.3f bits/symbol", avg), fmt.Sprintf("%d payload bytes", (bits+7)/8)})
	}
	table.AppendBulk(rows)
	table.Render()
}

func symbolName(b byte) string {
	if b > ' ' && b < 0x7f {
		return string(rune(b))
	}
	return fmt.Sprintf("0x%02x", b)
}
