// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package prefixcode

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// Sizes of the table fields, in bits.
const (
	tableCountBits  = 64
	tableValueBits  = 32
	tableLengthBits = 32

	// entrySize is the encoded size of one table entry, in bytes.
	entrySize = 1 + (tableValueBits+tableLengthBits)/8
)

// TableSize returns the encoded size of a table with n symbols, in bytes.
func TableSize(n int) int64 {
	return tableCountBits/8 + int64(n)*entrySize
}

// WriteTable serializes the code table of t to w.
// Layout, all integers big-endian:
//   - 8 bytes: number of symbols
//   - per symbol, in ascending order: 1 byte symbol, 4 bytes code value,
//     4 bytes code length
//
// The table says nothing about how t was built.
func WriteTable(w io.Writer, t *CodeTree) (int64, error) {
	bw := bitio.NewWriter(w)
	syms := t.Symbols()
	bw.TryWriteBits(uint64(len(syms)), tableCountBits)
	for _, sym := range syms {
		c := t.codes[sym]
		bw.TryWriteByte(sym)
		bw.TryWriteBits(uint64(c.Value), tableValueBits)
		bw.TryWriteBits(uint64(c.Length), tableLengthBits)
	}
	if bw.TryError != nil {
		return 0, &IOError{Op: "write table", Err: bw.TryError}
	}
	if err := bw.Close(); err != nil {
		return 0, &IOError{Op: "write table", Err: err}
	}
	return TableSize(len(syms)), nil
}

// ReadTable reads a table written by [WriteTable] and rebuilds its CodeTree.
// If r does not implement [io.ByteReader], ReadTable may read past the end
// of the table.
func ReadTable(r io.Reader) (*CodeTree, error) {
	br := bitio.NewReader(r)
	count := br.TryReadBits(tableCountBits)
	if br.TryError != nil {
		return nil, tableReadError(br.TryError)
	}
	if count > 256 {
		return nil, formatErrorf("table claims %d symbols", count)
	}
	codes := make(map[byte]Code, count)
	for range count {
		sym := br.TryReadByte()
		value := br.TryReadBits(tableValueBits)
		length := br.TryReadBits(tableLengthBits)
		if br.TryError != nil {
			return nil, tableReadError(br.TryError)
		}
		if length > MaxCodeLength {
			return nil, formatErrorf("code for 0x%02x has length %d", sym, length)
		}
		if _, dup := codes[sym]; dup {
			return nil, formatErrorf("symbol 0x%02x listed twice", sym)
		}
		codes[sym] = Code{Value: uint32(value), Length: uint8(length)}
	}
	return newCodeTreeFromCodes(codes)
}

func tableReadError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated table: %w", ErrFormat, io.ErrUnexpectedEOF)
	}
	return &IOError{Op: "read table", Err: err}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (t *CodeTree) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := WriteTable(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (t *CodeTree) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	u, err := ReadTable(r)
	if err != nil {
		return err
	}
	if r.Len() > 0 {
		return formatErrorf("%d bytes after table", r.Len())
	}
	*t = *u
	return nil
}
