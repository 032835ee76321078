// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/jba/prefixcode"
	"github.com/urfave/cli/v2"
)

const decodeExt = ".hc"

var (
	shannonFanoFlag = &cli.BoolFlag{
		Name:    "shannon-fano",
		Usage:   "Build a Shannon-Fano code instead of a Huffman code",
		EnvVars: []string{"PREFIXCODE_SHANNON_FANO"},
	}
	encodeSuffixFlag = &cli.StringFlag{
		Name:    "suffix",
		Usage:   "Suffix appended to each input name to form the output name",
		Value:   ".encoded",
		EnvVars: []string{"PREFIXCODE_ENCODE_SUFFIX"},
	}
	decodeSuffixFlag = &cli.StringFlag{
		Name:    "suffix",
		Usage:   "Suffix appended to each input name to form the output name (inputs ending in " + decodeExt + " lose it if unset)",
		Value:   ".decoded",
		EnvVars: []string{"PREFIXCODE_DECODE_SUFFIX"},
	}

	encodeCommand = &cli.Command{
		Action:    encodeFiles,
		Name:      "encode",
		Usage:     "Compress files",
		ArgsUsage: "<input> [<input>...]",
		Flags:     []cli.Flag{shannonFanoFlag, encodeSuffixFlag},
		Description: `
Each input is read twice: once to count its bytes and once to write the
packed codes. Several inputs are compressed in parallel.`,
	}
	decodeCommand = &cli.Command{
		Action:    decodeFiles,
		Name:      "decode",
		Usage:     "Decompress files written by encode",
		ArgsUsage: "<input> [<input>...]",
		Flags:     []cli.Flag{decodeSuffixFlag},
		Description: `
A file that fails to decode leaves no output behind.`,
	}
)

func encodeFiles(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errors.New("no input files")
	}
	alg := prefixcode.Huffman
	if ctx.Bool(shannonFanoFlag.Name) {
		alg = prefixcode.ShannonFano
	}
	suffix := ctx.String(encodeSuffixFlag.Name)
	return forEachFile(ctx.Args().Slice(), func(path string) error {
		return encodeFile(path, path+suffix, alg)
	})
}

func encodeFile(src, dst string, alg prefixcode.Algorithm) error {
	if src == dst {
		return fmt.Errorf("encode %s: output would overwrite input", src)
	}
	in, err := openInput(src)
	if err != nil {
		return err
	}
	defer in.Close()

	start := time.Now()
	var sum *prefixcode.Summary
	err = writeFile(dst, func(w io.Writer) (err error) {
		sum, err = prefixcode.Encode(w, in, prefixcode.WithAlgorithm(alg), prefixcode.WithLogger(log.New("file", src)))
		return err
	})
	if err != nil {
		return fmt.Errorf("encode %s: %w", src, err)
	}
	log.Info("Encoded file", "input", src, "output", dst, "algorithm", alg.String(),
		"symbols", sum.Symbols, "distinct", sum.Distinct,
		"size", sum.HeaderBytes+sum.PayloadBytes, "elapsed", common.PrettyDuration(time.Since(start)))
	return nil
}

func decodeFiles(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errors.New("no input files")
	}
	return forEachFile(ctx.Args().Slice(), func(path string) error {
		return decodeFile(path, decodeOutput(ctx, path))
	})
}

// decodeOutput names the output for path. Without an explicit suffix,
// "x.hc" decodes to "x".
func decodeOutput(ctx *cli.Context, path string) string {
	if !ctx.IsSet(decodeSuffixFlag.Name) && filepath.Ext(path) == decodeExt && filepath.Base(path) != decodeExt {
		return strings.TrimSuffix(path, decodeExt)
	}
	return path + ctx.String(decodeSuffixFlag.Name)
}

func decodeFile(src, dst string) error {
	if src == dst {
		return fmt.Errorf("decode %s: output would overwrite input", src)
	}
	in, err := openInput(src)
	if err != nil {
		return err
	}
	defer in.Close()

	start := time.Now()
	var sum *prefixcode.Summary
	err = writeFile(dst, func(w io.Writer) (err error) {
		sum, err = prefixcode.Decode(w, in, prefixcode.WithLogger(log.New("file", src)))
		return err
	})
	if err != nil {
		return fmt.Errorf("decode %s: %w", src, err)
	}
	log.Info("Decoded file", "input", src, "output", dst, "symbols", sum.Symbols,
		"distinct", sum.Distinct, "elapsed", common.PrettyDuration(time.Since(start)))
	return nil
}
