// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package prefixcode

import "io"

// Stats holds the number of occurrences of each byte value in an input,
// gathered in a single pass.
// A Stats is an [io.Writer], so it can be filled with [io.Copy].
type Stats struct {
	Counts [256]uint64
	Total  uint64
}

// ScanStats reads r to the end and returns its byte statistics.
func ScanStats(r io.Reader) (*Stats, error) {
	s := new(Stats)
	if _, err := io.Copy(s, r); err != nil {
		return nil, &IOError{Op: "scan input", Err: err}
	}
	return s, nil
}

// StatsOf returns the byte statistics of data.
func StatsOf(data []byte) *Stats {
	s := new(Stats)
	s.Write(data)
	return s
}

// Write counts the bytes of data. It never fails.
func (s *Stats) Write(data []byte) (int, error) {
	for _, b := range data {
		s.Counts[b]++
	}
	s.Total += uint64(len(data))
	return len(data), nil
}

// Symbols returns the byte values that occurred at least once, in ascending order.
func (s *Stats) Symbols() []byte {
	var syms []byte
	for i, c := range s.Counts {
		if c > 0 {
			syms = append(syms, byte(i))
		}
	}
	return syms
}

// Distinct returns the number of distinct byte values seen.
func (s *Stats) Distinct() int {
	n := 0
	for _, c := range s.Counts {
		if c > 0 {
			n++
		}
	}
	return n
}
