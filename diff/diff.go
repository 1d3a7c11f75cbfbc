// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff shows the changes a conversion makes as a unified diff,
// using the system diff tool.
package diff

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Diff returns a unified diff from old, read from the file oldName, to
// new, to be written to newName. It returns nil if the two are equal.
func Diff(oldName string, old []byte, newName string, new []byte) ([]byte, error) {
	if bytes.Equal(old, new) {
		return nil, nil
	}
	dir, err := os.MkdirTemp("", "decaf-diff")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	f1, f2 := filepath.Join(dir, "old"), filepath.Join(dir, "new")
	if err := os.WriteFile(f1, old, 0666); err != nil {
		return nil, err
	}
	if err := os.WriteFile(f2, new, 0666); err != nil {
		return nil, err
	}

	// diff exits with status 1 when the files differ.
	data, err := exec.Command("diff", "-u", "-L", oldName, "-L", newName, f1, f2).CombinedOutput()
	if err != nil && len(data) == 0 {
		return nil, err
	}
	if !bytes.HasPrefix(data, []byte("--- ")) {
		return nil, fmt.Errorf("diff: unexpected output: %s", firstLine(data))
	}
	return append([]byte(fmt.Sprintf("diff %s %s\n", oldName, newName)), data...), nil
}

func firstLine(data []byte) []byte {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return data[:i]
	}
	return data
}
