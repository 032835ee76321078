// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package prefixcode

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
)

const sample = "AAAAABAAAABAAABBBCBBCCCACCDDDADDDEEEEAE"

func TestCodeString(t *testing.T) {
	for _, test := range []struct {
		c    Code
		want string
	}{
		{Code{}, "-"},
		{Code{0, 1}, "0"},
		{Code{1, 1}, "1"},
		{Code{0b001, 3}, "100"},
		{Code{0b110, 3}, "011"},
	} {
		if got := test.c.String(); got != test.want {
			t.Errorf("%#v: got %q, want %q", test.c, got, test.want)
		}
	}
}

func TestIsPrefixOf(t *testing.T) {
	for _, test := range []struct {
		c, d Code
		want bool
	}{
		{Code{}, Code{5, 3}, true},
		{Code{1, 1}, Code{5, 3}, true},
		{Code{1, 2}, Code{5, 3}, true},
		{Code{0, 1}, Code{5, 3}, false},
		{Code{5, 3}, Code{1, 2}, false},
		{Code{5, 3}, Code{5, 3}, true},
	} {
		if got := test.c.IsPrefixOf(test.d); got != test.want {
			t.Errorf("%v.IsPrefixOf(%v) = %t, want %t", test.c, test.d, got, test.want)
		}
	}
}

func TestBuildSample(t *testing.T) {
	for _, test := range []struct {
		alg  Algorithm
		want map[byte]string
	}{
		{Huffman, map[byte]string{'A': "0", 'B': "111", 'C': "101", 'D': "110", 'E': "100"}},
		{ShannonFano, map[byte]string{'A': "11", 'B': "10", 'C': "001", 'D': "01", 'E': "000"}},
	} {
		t.Run(test.alg.String(), func(t *testing.T) {
			tree, err := Build(test.alg, StatsOf([]byte(sample)))
			if err != nil {
				t.Fatal(err)
			}
			if tree.Len() != len(test.want) {
				t.Fatalf("got %d symbols, want %d", tree.Len(), len(test.want))
			}
			for sym, want := range test.want {
				c, ok := tree.Lookup(sym)
				if !ok {
					t.Fatalf("no code for %q", sym)
				}
				if got := c.String(); got != want {
					t.Errorf("%q: got %s, want %s", sym, got, want)
				}
			}
			if _, ok := tree.Lookup('Z'); ok {
				t.Error("code for unseen symbol")
			}
			if got, want := tree.Depth(), 3; got != want {
				t.Errorf("depth: got %d, want %d", got, want)
			}
		})
	}
}

func TestShannonFanoDeterministic(t *testing.T) {
	var headers []string
	for range 2 {
		tree, err := BuildShannonFano(StatsOf([]byte(sample)))
		if err != nil {
			t.Fatal(err)
		}
		data, err := tree.MarshalBinary()
		if err != nil {
			t.Fatal(err)
		}
		headers = append(headers, string(data))
	}
	if headers[0] != headers[1] {
		t.Fatal("headers differ between runs")
	}
}

func TestPrefixFree(t *testing.T) {
	inputs := []string{
		sample,
		"a man a plan a canal panama",
		"ab",
		strings.Repeat("x", 100) + "y",
		randomText(5000, 256),
		randomText(300, 7),
	}
	for _, alg := range []Algorithm{Huffman, ShannonFano} {
		for _, in := range inputs {
			tree, err := Build(alg, StatsOf([]byte(in)))
			if err != nil {
				t.Fatal(err)
			}
			checkPrefixFree(t, tree)
		}
	}
}

func checkPrefixFree(t *testing.T, tree *CodeTree) {
	t.Helper()
	syms := tree.Symbols()
	for _, a := range syms {
		ca, _ := tree.Lookup(a)
		for _, b := range syms {
			if a == b {
				continue
			}
			cb, _ := tree.Lookup(b)
			if ca.IsPrefixOf(cb) {
				t.Fatalf("code %v of %q is a prefix of code %v of %q", ca, a, cb, b)
			}
		}
	}
}

func randomText(n, alphabet int) string {
	b := make([]byte, n)
	for i := range b {
		// Skewed so that code lengths vary.
		b[i] = byte(min(rand.IntN(alphabet), rand.IntN(alphabet)))
	}
	return string(b)
}

func TestBuildDegenerate(t *testing.T) {
	for _, alg := range []Algorithm{Huffman, ShannonFano} {
		t.Run(alg.String(), func(t *testing.T) {
			empty, err := Build(alg, StatsOf(nil))
			if err != nil {
				t.Fatal(err)
			}
			if empty.Len() != 0 || len(empty.nodes) != 0 {
				t.Errorf("empty input: got %d symbols, %d nodes", empty.Len(), len(empty.nodes))
			}

			one, err := Build(alg, StatsOf([]byte("AAAA")))
			if err != nil {
				t.Fatal(err)
			}
			c, ok := one.Lookup('A')
			if !ok || c != (Code{}) {
				t.Errorf("single symbol: got %v, %t; want empty code", c, ok)
			}
			if !one.nodes[0].leaf {
				t.Error("single symbol: root is not a leaf")
			}
		})
	}
}

func TestFromCodes(t *testing.T) {
	for _, alg := range []Algorithm{Huffman, ShannonFano} {
		for _, in := range []string{"", "A", sample, randomText(2000, 256)} {
			tree, err := Build(alg, StatsOf([]byte(in)))
			if err != nil {
				t.Fatal(err)
			}
			codes := map[byte]Code{}
			for _, sym := range tree.Symbols() {
				codes[sym], _ = tree.Lookup(sym)
			}
			got, err := newCodeTreeFromCodes(codes)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(tree) {
				t.Errorf("%v %q: rebuilt tree differs\ngot  %v\nwant %v", alg, in, got, tree)
			}
			if len(got.nodes) != len(tree.nodes) {
				t.Errorf("%v %q: rebuilt tree has %d nodes, want %d", alg, in, len(got.nodes), len(tree.nodes))
			}
		}
	}
}

func TestFromCodesConflicts(t *testing.T) {
	for _, test := range []struct {
		name  string
		codes map[byte]Code
	}{
		{"same path", map[byte]Code{'a': {0, 1}, 'b': {0, 1}}},
		{"through leaf", map[byte]Code{'a': {0, 1}, 'b': {0b10, 2}}},
		{"ends inside", map[byte]Code{'a': {0b10, 2}, 'b': {0, 1}}},
		{"empty code and more", map[byte]Code{'a': {}, 'b': {1, 1}}},
		{"too long", map[byte]Code{'a': {0, 33}}},
		{"value too wide", map[byte]Code{'a': {4, 2}}},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := newCodeTreeFromCodes(test.codes)
			if !errors.Is(err, ErrFormat) {
				t.Errorf("got %v, want %v", err, ErrFormat)
			}
		})
	}
}

func TestParseAlgorithm(t *testing.T) {
	for _, a := range []Algorithm{Huffman, ShannonFano} {
		got, err := ParseAlgorithm(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAlgorithm(%q) = %v, %v", a.String(), got, err)
		}
	}
	if _, err := ParseAlgorithm("lzw"); err == nil {
		t.Error("ParseAlgorithm(lzw) succeeded")
	}
	if _, err := Build(Algorithm(9), StatsOf(nil)); err == nil {
		t.Error("Build with unknown algorithm succeeded")
	}
}
