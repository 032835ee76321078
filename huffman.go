// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package prefixcode

import (
	"fmt"

	"github.com/icza/huffman"
)

// An Algorithm selects how a [CodeTree] is built from [Stats].
type Algorithm uint8

const (
	Huffman     Algorithm = iota // optimal greedy merge
	ShannonFano                  // recursive sum-balanced bisection
)

func (a Algorithm) String() string {
	switch a {
	case Huffman:
		return "huffman"
	case ShannonFano:
		return "shannon-fano"
	default:
		return fmt.Sprintf("Algorithm(%d)", uint8(a))
	}
}

// ParseAlgorithm returns the Algorithm named s, as returned by [Algorithm.String].
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "huffman":
		return Huffman, nil
	case "shannon-fano", "shannonfano":
		return ShannonFano, nil
	}
	return 0, fmt.Errorf("prefixcode: unknown algorithm %q", s)
}

// Build constructs a CodeTree for s with the given algorithm.
func Build(a Algorithm, s *Stats) (*CodeTree, error) {
	switch a {
	case Huffman:
		return BuildHuffman(s)
	case ShannonFano:
		return BuildShannonFano(s)
	}
	return nil, fmt.Errorf("prefixcode: unknown algorithm %v", a)
}

// BuildHuffman constructs a Huffman code for s.
//
// Leaves are offered to the merge in ascending symbol order. The two
// lightest nodes are merged repeatedly; a merged node is placed ahead of
// existing nodes of equal weight. The first node taken becomes the left
// (0) child and the second the right (1) child.
func BuildHuffman(s *Stats) (*CodeTree, error) {
	t := &CodeTree{}
	syms := s.Symbols()
	if len(syms) == 0 {
		return t, nil
	}
	leaves := make([]*huffman.Node, len(syms))
	for i, sym := range syms {
		leaves[i] = &huffman.Node{Value: huffman.ValueType(sym), Count: int(s.Counts[sym])}
	}
	if _, err := t.graft(huffman.Build(leaves), Code{}); err != nil {
		return nil, err
	}
	t.index()
	return t, nil
}

// graft copies the subtree rooted at n into the arena, giving each node
// its path code.
func (t *CodeTree) graft(n *huffman.Node, c Code) (handle, error) {
	h := t.newNode(c)
	if n.Left == nil && n.Right == nil {
		t.setLeaf(h, byte(n.Value))
		return h, nil
	}
	if c.Length >= MaxCodeLength {
		return nilHandle, ErrCodeTooLong
	}
	left, err := t.graft(n.Left, c.left())
	if err != nil {
		return nilHandle, err
	}
	right, err := t.graft(n.Right, c.right())
	if err != nil {
		return nilHandle, err
	}
	t.nodes[h].left, t.nodes[h].right = left, right
	return h, nil
}
