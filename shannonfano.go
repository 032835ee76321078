// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package prefixcode

import (
	"cmp"
	"slices"
)

type weighted struct {
	sym   byte
	count uint64
}

// BuildShannonFano constructs a Shannon-Fano code for s.
//
// Symbols are ordered by increasing probability, then by increasing value.
// Each range is split where a two-ended scan balances the weight on both
// sides: the next element goes to the lighter side, and the front side
// wins ties. The front part becomes the left (0) subtree.
// Counts stand in for probabilities, which keeps every comparison exact.
func BuildShannonFano(s *Stats) (*CodeTree, error) {
	t := &CodeTree{}
	var ws []weighted
	for _, sym := range s.Symbols() {
		ws = append(ws, weighted{sym, s.Counts[sym]})
	}
	if len(ws) == 0 {
		return t, nil
	}
	slices.SortFunc(ws, func(a, b weighted) int {
		return cmp.Or(cmp.Compare(a.count, b.count), cmp.Compare(a.sym, b.sym))
	})
	if _, err := t.bisect(ws, Code{}); err != nil {
		return nil, err
	}
	t.index()
	return t, nil
}

func (t *CodeTree) bisect(ws []weighted, c Code) (handle, error) {
	h := t.newNode(c)
	if len(ws) == 1 {
		t.setLeaf(h, ws[0].sym)
		return h, nil
	}
	if c.Length >= MaxCodeLength {
		return nilHandle, ErrCodeTooLong
	}
	split := balance(ws)
	left, err := t.bisect(ws[:split], c.left())
	if err != nil {
		return nilHandle, err
	}
	right, err := t.bisect(ws[split:], c.right())
	if err != nil {
		return nilHandle, err
	}
	t.nodes[h].left, t.nodes[h].right = left, right
	return h, nil
}

// balance returns the split point of ws, which must have at least two elements.
// Both halves are non-empty because counts are positive.
func balance(ws []weighted) int {
	front, back := 0, len(ws)-1
	var left, right uint64
	for front <= back {
		if left <= right {
			left += ws[front].count
			front++
		} else {
			right += ws[back].count
			back--
		}
	}
	return front
}
