// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package prefixcode

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat reports a malformed header: inconsistent counts,
	// a code longer than MaxCodeLength, or two symbols sharing a path.
	ErrFormat = errors.New("prefixcode: malformed code table")

	// ErrDesync reports a payload that does not match its code table.
	// Errors returned while decoding a payload wrap it as a [*DesyncError].
	ErrDesync = errors.New("prefixcode: payload does not match code table")

	// ErrCodeTooLong is returned when a built code does not fit in MaxCodeLength bits.
	ErrCodeTooLong = errors.New("prefixcode: code exceeds maximum length")

	// ErrUnknownSymbol is returned when encoding a byte that has no code.
	ErrUnknownSymbol = errors.New("prefixcode: symbol not in code table")
)

// A DesyncError describes where decoding of a payload went wrong.
type DesyncError struct {
	Decoded uint64 // symbols emitted before the failure
	Offset  int64  // payload bit offset at the failure
	Reason  string
}

func (e *DesyncError) Error() string {
	return fmt.Sprintf("prefixcode: %s at bit %d after %d symbols", e.Reason, e.Offset, e.Decoded)
}

func (e *DesyncError) Is(target error) bool { return target == ErrDesync }

// An IOError wraps a failure of the underlying reader or writer.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string { return "prefixcode: " + e.Op + ": " + e.Err.Error() }

func (e *IOError) Unwrap() error { return e.Err }

func formatErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrFormat}, args...)...)
}
