// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package prefixcode

import (
	"fmt"
	"io"
)

// Encode reads r to the end and writes the code of each byte to w,
// packed least-significant bit first. The last byte is zero-padded.
// It returns the number of bytes written to w.
//
// A pad byte is written only when bits are pending, so a payload whose
// codes fill whole bytes has no trailing byte. Streams from encoders that
// always append one still decode here, since decoding stops after the
// stored symbol count.
//
// Every byte of r must have a code in t. A one-symbol code has length
// zero, so such input produces no payload at all; the decoder relies on
// the stored symbol count instead.
func (t *CodeTree) Encode(w io.Writer, r io.Reader) (n int64, err error) {
	bw := newBitWriter(w)
	defer func() {
		// The partial byte is flushed on every path, including errors.
		if cerr := bw.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "write payload", Err: cerr}
		}
		n = bw.n
	}()

	var buf [4096]byte
	var pos int64
	for {
		m, rerr := r.Read(buf[:])
		for _, b := range buf[:m] {
			if !t.known[b] {
				return 0, fmt.Errorf("%w: 0x%02x at offset %d", ErrUnknownSymbol, b, pos)
			}
			c := t.codes[b]
			bw.writeBits(c.Value, int(c.Length))
			pos++
		}
		if bw.Err() != nil {
			return 0, &IOError{Op: "write payload", Err: bw.Err()}
		}
		if rerr == io.EOF {
			return 0, nil
		}
		if rerr != nil {
			return 0, &IOError{Op: "read input", Err: rerr}
		}
	}
}
