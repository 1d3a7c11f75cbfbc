// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convert

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"
	"golang.org/x/text/width"
	"golang.org/x/xerrors"

	"github.com/decaffeinate/decaf/patch"
	"github.com/decaffeinate/decaf/syntax"
)

// An Error is an error at a range of a stage's input.
// Line and Col are 1-based; Col counts bytes.
type Error struct {
	File      string
	Offset    int
	Line, Col int
	Msg       string

	// Excerpt is the source line holding the error, followed by a
	// line underlining the range.
	Excerpt string

	err error
}

func (e *Error) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Col, e.Msg)
}

func (e *Error) Unwrap() error { return e.err }

// positioned converts errors that carry a position in src to *Error.
// Other errors are returned unchanged.
func positioned(file, src string, err error) error {
	var (
		pe *patch.Error
		se *syntax.Error
		je *parse.Error
	)
	var start, end int
	var msg string
	switch {
	case xerrors.As(err, &pe):
		start, end, msg = pe.Start, pe.End, pe.Msg
	case xerrors.As(err, &se):
		start, end, msg = se.Pos, se.End, se.Msg
	case xerrors.As(err, &je):
		start = offsetOf(src, je.Line, je.Column)
		end, msg = start, je.Message
	default:
		return err
	}
	start = clamp(start, 0, len(src))
	end = clamp(end, start, len(src))
	lineStart := strings.LastIndexByte(src[:start], '\n') + 1
	return &Error{
		File:    file,
		Offset:  start,
		Line:    strings.Count(src[:start], "\n") + 1,
		Col:     start - lineStart + 1,
		Msg:     msg,
		Excerpt: excerpt(src, start, end),
		err:     err,
	}
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// offsetOf returns the offset of the 1-based line and column in src.
func offsetOf(src string, line, col int) int {
	off := 0
	for i := 1; i < line; i++ {
		j := strings.IndexByte(src[off:], '\n')
		if j < 0 {
			return len(src)
		}
		off += j + 1
	}
	return clamp(off+col-1, off, len(src))
}

// excerpt returns the line of src containing start and a second line
// marking [start,end) with carets, or a single caret for an empty range.
// Ranges spanning lines are marked to the end of the first line.
func excerpt(src string, start, end int) string {
	lineStart := strings.LastIndexByte(src[:start], '\n') + 1
	lineEnd := len(src)
	if i := strings.IndexByte(src[start:], '\n'); i >= 0 {
		lineEnd = start + i
	}
	if end > lineEnd {
		end = lineEnd
	}
	line := src[lineStart:lineEnd]

	var b strings.Builder
	b.WriteString(line)
	b.WriteByte('\n')
	for _, r := range src[lineStart:start] {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runeWidth(r)))
	}
	n := 0
	for _, r := range src[start:end] {
		n += runeWidth(r)
	}
	if n == 0 {
		n = 1
	}
	b.WriteString(strings.Repeat("^", n))
	return b.String()
}

// runeWidth returns the number of terminal columns r occupies.
func runeWidth(r rune) int {
	if r == utf8.RuneError {
		return 1
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

type errorKey struct {
	file   string
	offset int
	msg    string
}

// An ErrorList is a set of conversion errors from many files. It is
// also an error itself. The zero value is an empty list, ready to use.
type ErrorList struct {
	errs []error
	set  map[errorKey]bool
}

// Add adds err to l. An ErrorList is merged into l. Errors with the
// same position and message are kept once.
func (l *ErrorList) Add(err error) {
	if err == nil {
		return
	}
	if el, ok := err.(*ErrorList); ok {
		for _, e := range el.errs {
			l.Add(e)
		}
		return
	}
	k := errorKey{msg: err.Error()}
	var e *Error
	if xerrors.As(err, &e) {
		k = errorKey{e.File, e.Offset, e.Msg}
	}
	if l.set[k] {
		return
	}
	if l.set == nil {
		l.set = make(map[errorKey]bool)
	}
	l.set[k] = true
	l.errs = append(l.errs, err)
}

// Len returns the number of errors in l.
func (l *ErrorList) Len() int { return len(l.errs) }

// Error returns the errors one per line, each positioned error followed
// by its excerpt. Files appear in the order their first error was added
// and errors within a file are sorted by position. The result does not
// end in "\n".
func (l *ErrorList) Error() string {
	if len(l.errs) == 0 {
		return "no errors"
	}
	type keyed struct {
		err           error
		group, offset int
	}
	list := make([]keyed, len(l.errs))
	groups := make(map[string]int)
	for i, err := range l.errs {
		list[i] = keyed{err: err, group: i}
		var e *Error
		if !xerrors.As(err, &e) {
			continue
		}
		g, ok := groups[e.File]
		if !ok {
			g = i
			groups[e.File] = g
		}
		list[i].group, list[i].offset = g, e.Offset
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].group != list[j].group {
			return list[i].group < list[j].group
		}
		return list[i].offset < list[j].offset
	})
	for i := range list {
		l.errs[i] = list[i].err
	}

	buf := new(strings.Builder)
	for _, err := range l.errs {
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(err.Error())
		var e *Error
		if xerrors.As(err, &e) && e.Excerpt != "" {
			for _, line := range strings.Split(e.Excerpt, "\n") {
				fmt.Fprintf(buf, "\n\t%s", line)
			}
		}
	}
	return buf.String()
}

// Err returns an error equivalent to this error list.
// If the list is empty, Err returns nil.
func (l *ErrorList) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	return l
}
