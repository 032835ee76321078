// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package prefixcode

import (
	"bufio"
	"io"
)

// Decode reads a payload written by [CodeTree.Encode] from r and writes
// exactly n decoded symbols to w. Bits after the n-th symbol are ignored.
//
// Decode walks the tree from the root one bit at a time, left on 0 and
// right on 1, emitting a symbol at each leaf. A bit that leads nowhere,
// or a payload that ends too early, yields a [*DesyncError]. Nothing is
// guessed: decoding stops at the first inconsistency.
func (t *CodeTree) Decode(w io.Writer, r io.ByteReader, n uint64) error {
	if n == 0 {
		return nil
	}
	if t.size == 0 {
		return formatErrorf("%d symbols to decode with an empty code table", n)
	}
	out := bufio.NewWriter(w)
	if err := t.walk(out, r, n); err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return &IOError{Op: "write output", Err: err}
	}
	return nil
}

func (t *CodeTree) walk(out *bufio.Writer, r io.ByteReader, n uint64) error {
	const root handle = 0
	if t.nodes[root].leaf {
		sym := t.nodes[root].symbol
		for range n {
			out.WriteByte(sym)
		}
		return nil
	}

	br := newBitReader(r)
	h := root
	for decoded := uint64(0); decoded < n; {
		bit, ok := br.readBit()
		if !ok {
			if err := br.Err(); err != nil {
				return &IOError{Op: "read payload", Err: err}
			}
			return &DesyncError{Decoded: decoded, Offset: br.pos, Reason: "payload ends early"}
		}
		next := t.nodes[h].left
		if bit == 1 {
			next = t.nodes[h].right
		}
		if next == nilHandle {
			return &DesyncError{Decoded: decoded, Offset: br.pos - 1, Reason: "no code continues this path"}
		}
		if t.nodes[next].leaf {
			// bufio.Writer errors are sticky and surface at Flush.
			out.WriteByte(t.nodes[next].symbol)
			decoded++
			h = root
		} else {
			h = next
		}
	}
	return nil
}
