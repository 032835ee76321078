// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package prefixcode

import (
	"errors"
	"io"
)

var errWriterClosed = errors.New("prefixcode: write to closed bit writer")

// A bitWriter packs codes of up to 32 bits into bytes, least-significant bit first.
// Each byte is written to its contained [io.Writer] as soon as it fills.
// Write errors are stored and reported by [bitWriter.Close]
// or [bitWriter.Err].
// Close writes the final partial byte, if any, zero-padded on the high side.
type bitWriter struct {
	err error
	w   io.Writer
	// buf holds the bits of the current byte, filled from bit 0 upward.
	buf    byte
	nbits  uint  // number of bits in buf; always < 8 between calls
	n      int64 // bytes written to w
	closed bool
}

func newBitWriter(w io.Writer) *bitWriter {
	return &bitWriter{w: w}
}

// writeBits writes the n low-order bits of b, lowest bit first.
func (w *bitWriter) writeBits(b uint32, n int) {
	if w.err != nil {
		return
	}
	if w.closed {
		w.err = errWriterClosed
		return
	}
	if n < 0 || n > 32 {
		panic("bad number of bits to write")
	}
	for n > 0 {
		take := min(n, 8-int(w.nbits))
		w.buf |= byte(lowOrderBits(b, take)) << w.nbits
		w.nbits += uint(take)
		b >>= take
		n -= take
		if w.nbits == 8 {
			w.write(w.buf)
			w.buf, w.nbits = 0, 0
		}
	}
}

// Close flushes the partial byte. Only the first call writes anything.
func (w *bitWriter) Close() error {
	if w.closed {
		return w.err
	}
	w.closed = true
	if w.nbits > 0 {
		w.write(w.buf)
		w.buf, w.nbits = 0, 0
	}
	return w.err
}

func (w *bitWriter) write(b byte) {
	if w.err != nil {
		return
	}
	if bw, ok := w.w.(io.ByteWriter); ok {
		w.err = bw.WriteByte(b)
	} else {
		_, w.err = w.w.Write([]byte{b})
	}
	if w.err == nil {
		w.n++
	}
}

func (w *bitWriter) Err() error {
	return w.err
}

// A bitReader is the dual of a bitWriter. It hands out one bit at a time,
// least-significant bit first, reading a new byte every eight bits.
// Running out of input is not an error: readBit reports it by returning false.
// Any other read error is kept and reported by [bitReader.Err].
type bitReader struct {
	err   error
	r     io.ByteReader
	buf   byte  // unread bits, next bit in position 0
	nbits uint  // number of unread bits in buf
	pos   int64 // number of bits consumed
	done  bool
}

func newBitReader(r io.ByteReader) *bitReader {
	return &bitReader{r: r}
}

// fill loads the next byte. It returns false once the source is exhausted.
func (r *bitReader) fill() bool {
	if r.done {
		return false
	}
	b, err := r.r.ReadByte()
	if err != nil {
		r.done = true
		if err != io.EOF {
			r.err = err
		}
		return false
	}
	r.buf, r.nbits = b, 8
	return true
}

// readBit returns the next bit, or false if there are no bits left.
func (r *bitReader) readBit() (uint8, bool) {
	if r.nbits == 0 && !r.fill() {
		return 0, false
	}
	bit := r.buf & 1
	r.buf >>= 1
	r.nbits--
	r.pos++
	return bit, true
}

// readBits reads n bits, up to 32, in the order writeBits wrote them.
// Running out partway through is reported as false.
func (r *bitReader) readBits(n int) (uint32, bool) {
	if n < 0 || n > 32 {
		panic("bad number of bits to read")
	}
	var v uint32
	for i := range n {
		bit, ok := r.readBit()
		if !ok {
			return 0, false
		}
		v |= uint32(bit) << i
	}
	return v, true
}

func (r *bitReader) Err() error {
	return r.err
}

// lowOrderBits returns the n low-order bits of u.
func lowOrderBits[T uint8 | uint16 | uint32 | uint64](u T, n int) T {
	return u & ((T(1) << n) - 1)
}
