// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package prefixcode

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"
)

func TestScanStats(t *testing.T) {
	s, err := ScanStats(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	want := map[byte]uint64{'A': 15, 'B': 7, 'C': 6, 'D': 6, 'E': 5}
	for sym, n := range want {
		if s.Counts[sym] != n {
			t.Errorf("%q: got %d, want %d", sym, s.Counts[sym], n)
		}
	}
	if s.Total != uint64(len(sample)) {
		t.Errorf("total: got %d, want %d", s.Total, len(sample))
	}
	if got, want := s.Symbols(), []byte("ABCDE"); !slices.Equal(got, want) {
		t.Errorf("symbols: got %q, want %q", got, want)
	}
	if s.Distinct() != 5 {
		t.Errorf("distinct: got %d, want 5", s.Distinct())
	}
	if *s != *StatsOf([]byte(sample)) {
		t.Error("ScanStats and StatsOf disagree")
	}
}

func TestScanStatsEmpty(t *testing.T) {
	s, err := ScanStats(bytes.NewReader(nil))
	if err != nil {
		t.Fatal(err)
	}
	if s.Total != 0 || s.Distinct() != 0 || len(s.Symbols()) != 0 {
		t.Errorf("got %d symbols, %d distinct", s.Total, s.Distinct())
	}
}

func TestScanStatsError(t *testing.T) {
	_, err := ScanStats(io.MultiReader(strings.NewReader("abc"), &errReader{errFail}))
	var ioErr *IOError
	if !errors.As(err, &ioErr) || !errors.Is(err, errFail) {
		t.Errorf("got %v, want an *IOError wrapping %v", err, errFail)
	}
}
