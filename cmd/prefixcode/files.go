// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// outputMode is the permission of every file written by encode and decode.
// CreateTemp would otherwise leave them readable by the owner only.
const outputMode = 0o644

func openInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("file %s does not exist", path)
	}
	return f, err
}

// writeFile writes dst through fn. The data goes to a temporary file in the
// same directory, which replaces dst only if fn and the close succeed.
func writeFile(dst string, fn func(io.Writer) error) error {
	f, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name()) // fails harmlessly after the rename

	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Chmod(outputMode); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), dst)
}

// forEachFile runs fn on every path, several at a time, and returns the
// first error. Runs do not share any state.
func forEachFile(paths []string, fn func(string) error) error {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, path := range paths {
		g.Go(func() error { return fn(path) })
	}
	return g.Wait()
}
