// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package prefixcode

import (
	"bufio"
	"bytes"
	"io"

	"github.com/ethereum/go-ethereum/log"
	"github.com/icza/bitio"
)

// An encoded stream is
//
//	code table (see WriteTable)
//	8 bytes:  number of symbols to decode, big-endian
//	payload:  packed codes, least-significant bit first, last byte zero-padded
//
// There is no magic number and no checksum.
const countBits = 64

// A Summary describes one encode or decode run.
type Summary struct {
	Algorithm    Algorithm // encode only
	Symbols      uint64    // symbols in the original input
	Distinct     int       // symbols in the code table
	HeaderBytes  int64     // table and symbol count
	PayloadBytes int64     // encode only
}

type options struct {
	alg    Algorithm
	logger log.Logger
}

// An Option configures Encode and Decode.
type Option func(*options)

// WithAlgorithm selects the code construction used by Encode. The default is Huffman.
func WithAlgorithm(a Algorithm) Option {
	return func(o *options) { o.alg = a }
}

// WithLogger sets the logger for progress messages. The default is the root logger.
func WithLogger(l log.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts []Option) *options {
	o := &options{alg: Huffman}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = log.Root()
	}
	return o
}

// Encode compresses r into w. It reads r twice: once to gather statistics
// and once, after seeking back to where it started, to write the payload.
func Encode(w io.Writer, r io.ReadSeeker, opts ...Option) (*Summary, error) {
	o := newOptions(opts)
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, &IOError{Op: "seek input", Err: err}
	}
	stats, err := ScanStats(r)
	if err != nil {
		return nil, err
	}
	tree, err := Build(o.alg, stats)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("Built code table", "algorithm", o.alg.String(), "symbols", stats.Total, "distinct", tree.Len(), "depth", tree.Depth())

	out := bufio.NewWriter(w)
	hn, err := WriteTable(out, tree)
	if err != nil {
		return nil, err
	}
	if err := writeCount(out, stats.Total); err != nil {
		return nil, err
	}
	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return nil, &IOError{Op: "seek input", Err: err}
	}
	pn, err := tree.Encode(out, r)
	if err != nil {
		return nil, err
	}
	if err := out.Flush(); err != nil {
		return nil, &IOError{Op: "write output", Err: err}
	}
	sum := &Summary{
		Algorithm:    o.alg,
		Symbols:      stats.Total,
		Distinct:     tree.Len(),
		HeaderBytes:  hn + countBits/8,
		PayloadBytes: pn,
	}
	o.logger.Debug("Encoded stream", "symbols", sum.Symbols, "header", sum.HeaderBytes, "payload", sum.PayloadBytes)
	return sum, nil
}

// Decode decompresses a stream written by Encode from r into w.
// A stream that does not parse fails with [ErrFormat]; a payload that does
// not match its table fails with [ErrDesync]. Output written before such a
// failure is incomplete and should be discarded.
func Decode(w io.Writer, r io.Reader, opts ...Option) (*Summary, error) {
	o := newOptions(opts)
	br, ok := r.(interface {
		io.Reader
		io.ByteReader
	})
	if !ok {
		br = bufio.NewReader(r)
	}
	tree, err := ReadTable(br)
	if err != nil {
		return nil, err
	}
	n, err := readCount(br)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("Read code table", "symbols", n, "distinct", tree.Len(), "depth", tree.Depth())
	if err := tree.Decode(w, br, n); err != nil {
		return nil, err
	}
	return &Summary{
		Symbols:     n,
		Distinct:    tree.Len(),
		HeaderBytes: TableSize(tree.Len()) + countBits/8,
	}, nil
}

func writeCount(w io.Writer, n uint64) error {
	bw := bitio.NewWriter(w)
	if err := bw.WriteBits(n, countBits); err != nil {
		return &IOError{Op: "write symbol count", Err: err}
	}
	if err := bw.Close(); err != nil {
		return &IOError{Op: "write symbol count", Err: err}
	}
	return nil
}

func readCount(r io.Reader) (uint64, error) {
	n, err := bitio.NewReader(r).ReadBits(countBits)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, formatErrorf("missing symbol count")
		}
		return 0, &IOError{Op: "read symbol count", Err: err}
	}
	return n, nil
}

// EncodeBytes compresses data.
func EncodeBytes(data []byte, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Encode(&buf, bytes.NewReader(data), opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeBytes decompresses data produced by EncodeBytes or Encode.
func DecodeBytes(data []byte, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Decode(&buf, bytes.NewReader(data), opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
