// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import "fmt"

// An Error is a lexical or syntax error at a source range.
type Error struct {
	Pos, End  int // byte offsets
	Line, Col int // zero-based position of Pos
	Msg       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line+1, e.Col+1, e.Msg)
}

// bailout is used to unwind the lexer and parser on the first error.
type bailout struct{ err *Error }

func newError(lines []int, pos, end int, format string, args ...interface{}) *Error {
	line, col := position(lines, pos)
	return &Error{Pos: pos, End: end, Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

func position(lines []int, offset int) (line, col int) {
	lo, hi := 0, len(lines)
	for lo+1 < hi {
		m := (lo + hi) / 2
		if lines[m] <= offset {
			lo = m
		} else {
			hi = m
		}
	}
	return lo, offset - lines[lo]
}

func lineStarts(src string) []int {
	lines := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return lines
}
