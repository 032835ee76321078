// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package prefixcode

import (
	"fmt"
	"strings"
)

// MaxCodeLength is the longest code, in bits, that a [CodeTree] can hold.
const MaxCodeLength = 32

// A Code is a bit string of Length bits stored in the low bits of Value.
// Bit 0 of Value is the first bit on the path from the root.
type Code struct {
	Value  uint32
	Length uint8
}

// String returns the bits of c in path order, "0110" style.
// The empty code is "-".
func (c Code) String() string {
	if c.Length == 0 {
		return "-"
	}
	var sb strings.Builder
	for i := range int(c.Length) {
		sb.WriteByte('0' + byte(c.Value>>i&1))
	}
	return sb.String()
}

// IsPrefixOf reports whether c is a prefix of d. Every code is a prefix of itself.
func (c Code) IsPrefixOf(d Code) bool {
	return c.Length <= d.Length && lowOrderBits(d.Value, int(c.Length)) == c.Value
}

func (c Code) left() Code  { return Code{c.Value, c.Length + 1} }
func (c Code) right() Code { return Code{c.Value | 1<<c.Length, c.Length + 1} }

// A handle indexes a node in a CodeTree's arena.
type handle int32

const nilHandle handle = -1

type node struct {
	left, right handle
	code        Code // path from the root
	symbol      byte // valid only if leaf
	leaf        bool
}

// A CodeTree is a prefix code over bytes, held both as a binary tree
// and as a flat symbol-to-code table. The two always describe the same code.
// The tree is non-empty iff at least one symbol has a code; its root is
// then node 0. A tree with one symbol is a root leaf with the empty code.
type CodeTree struct {
	nodes []node
	codes [256]Code
	known [256]bool
	size  int
}

func (t *CodeTree) newNode(c Code) handle {
	t.nodes = append(t.nodes, node{left: nilHandle, right: nilHandle, code: c})
	return handle(len(t.nodes) - 1)
}

func (t *CodeTree) setLeaf(h handle, sym byte) {
	t.nodes[h].leaf = true
	t.nodes[h].symbol = sym
}

// index fills the flat table from the leaves of the tree.
func (t *CodeTree) index() {
	for _, n := range t.nodes {
		if n.leaf {
			t.codes[n.symbol] = n.code
			t.known[n.symbol] = true
			t.size++
		}
	}
}

// newCodeTreeFromCodes rebuilds a tree from a flat table, walking each
// code from the root one bit at a time and creating nodes as needed.
// It fails rather than overwrite: a code may not pass through or end on
// a node that another code already uses.
func newCodeTreeFromCodes(codes map[byte]Code) (*CodeTree, error) {
	t := &CodeTree{}
	if len(codes) == 0 {
		return t, nil
	}
	t.newNode(Code{})
	for sym := range 256 {
		c, ok := codes[byte(sym)]
		if !ok {
			continue
		}
		if err := t.insert(byte(sym), c); err != nil {
			return nil, err
		}
	}
	t.index()
	return t, nil
}

func (t *CodeTree) insert(sym byte, c Code) error {
	if c.Length > MaxCodeLength {
		return formatErrorf("code for 0x%02x has length %d", sym, c.Length)
	}
	if lowOrderBits(c.Value, int(c.Length)) != c.Value {
		return formatErrorf("code value %#x for 0x%02x does not fit in %d bits", c.Value, sym, c.Length)
	}
	h := handle(0)
	for i := range int(c.Length) {
		n := t.nodes[h]
		if n.leaf {
			return formatErrorf("code %v for 0x%02x extends the code of 0x%02x", c, sym, n.symbol)
		}
		if c.Value>>i&1 == 0 {
			if n.left == nilHandle {
				t.nodes[h].left = t.newNode(n.code.left())
			}
			h = t.nodes[h].left
		} else {
			if n.right == nilHandle {
				t.nodes[h].right = t.newNode(n.code.right())
			}
			h = t.nodes[h].right
		}
	}
	n := t.nodes[h]
	switch {
	case n.leaf:
		return formatErrorf("code %v assigned to both 0x%02x and 0x%02x", c, n.symbol, sym)
	case n.left != nilHandle || n.right != nilHandle:
		return formatErrorf("code %v for 0x%02x is a prefix of another code", c, sym)
	}
	t.setLeaf(h, sym)
	return nil
}

// Lookup returns the code for sym.
func (t *CodeTree) Lookup(sym byte) (Code, bool) {
	return t.codes[sym], t.known[sym]
}

// Len returns the number of symbols in the code.
func (t *CodeTree) Len() int { return t.size }

// Symbols returns the symbols of the code in ascending order.
func (t *CodeTree) Symbols() []byte {
	syms := make([]byte, 0, t.size)
	for i, ok := range t.known {
		if ok {
			syms = append(syms, byte(i))
		}
	}
	return syms
}

// Depth returns the length of the longest code.
func (t *CodeTree) Depth() int {
	d := 0
	for i, ok := range t.known {
		if ok {
			d = max(d, int(t.codes[i].Length))
		}
	}
	return d
}

// Equal reports whether t and u assign the same code to every symbol.
func (t *CodeTree) Equal(u *CodeTree) bool {
	return t.known == u.known && t.codes == u.codes
}

func (t *CodeTree) String() string {
	var sb strings.Builder
	for i, sym := range t.Symbols() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%q:%v", sym, t.codes[sym])
	}
	return sb.String()
}
