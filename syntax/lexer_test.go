// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"strings"
	"testing"
)

var lexTests = []struct {
	src  string
	want string
}{
	{"f(a)", "IDENT CALL_START IDENT CALL_END"},
	{"f (a)", "IDENT ( IDENT )"},
	{"a[0]", "IDENT INDEX_START NUMBER INDEX_END"},
	{"[0]", "[ NUMBER ]"},
	{"a.if", "IDENT . IDENT"},
	{"if: 1", "IDENT : NUMBER"},
	{"@for", "@ IDENT"},
	{"a / b / c", "IDENT OPERATOR IDENT OPERATOR IDENT"},
	{"f /x/g", "IDENT REGEX"},
	{"x = /a b/", "IDENT = REGEX"},
	{`"a#{b}c"`, "STRING_START STRING_CONTENT INTERP_START IDENT INTERP_END STRING_CONTENT STRING_END"},
	{`"#{a}"`, "STRING_START INTERP_START IDENT INTERP_END STRING_END"},
	{`"plain"`, "STRING"},
	{"a ? b", "IDENT ? IDENT"},
	{"a?.b", "IDENT ?. IDENT"},
	{"a?()", "IDENT ? CALL_START CALL_END"},
	{"a::b", "IDENT :: IDENT"},
	{"# c\nx", "COMMENT IDENT"},
	{"### c ###\nx", "HERECOMMENT IDENT"},
	{"a or= b", "IDENT or = IDENT"},
	{"a += 1", "IDENT COMPOUND_ASSIGN NUMBER"},
	{"a is not b", "IDENT is not IDENT"},
	{"[1..3]", "[ NUMBER .. NUMBER ]"},
	{"[1...3]", "[ NUMBER ... NUMBER ]"},
	{"(a) => b", "( IDENT ) => IDENT"},
	{"`x()`", "JS"},
	{"yes or off", "BOOL or BOOL"},
	{"0x1F + 1.5e3", "NUMBER OPERATOR NUMBER"},
	{"1e3", "NUMBER"},
	{"x = 2E-4", "IDENT = NUMBER"},
	{"0x1e3", "NUMBER"},
	{"1.5e+3.toString()", "NUMBER . IDENT CALL_START CALL_END"},
}

func TestTokenize(t *testing.T) {
	for _, tt := range lexTests {
		list, err := Tokenize(tt.src)
		if err != nil {
			t.Errorf("Tokenize(%q): %v", tt.src, err)
			continue
		}
		var kinds []string
		for _, tok := range list.Tokens[:list.Len()] {
			kinds = append(kinds, tok.Kind.String())
		}
		if got := strings.Join(kinds, " "); got != tt.want {
			t.Errorf("Tokenize(%q) = %s, want %s", tt.src, got, tt.want)
		}
		if last := list.Tokens[len(list.Tokens)-1]; last.Kind != EOF {
			t.Errorf("Tokenize(%q) ends with %v, want EOF", tt.src, last.Kind)
		}
	}
}

func TestTokenLines(t *testing.T) {
	list, err := Tokenize("a\n  b c\n# x\nd")
	if err != nil {
		t.Fatal(err)
	}
	type pos struct {
		line, col int
		newLine   bool
	}
	want := []pos{{0, 0, true}, {1, 2, true}, {1, 4, false}, {2, 0, false}, {3, 0, true}}
	for i, w := range want {
		tok := list.At(i)
		if got := (pos{tok.Line, tok.Col, tok.NewLine}); got != w {
			t.Errorf("token %d (%s) = %+v, want %+v", i, list.Text(tok), got, w)
		}
	}
	if i := list.IndexStartingAt(6); i != 2 || list.Text(list.At(i)) != "c" {
		t.Errorf("IndexStartingAt(6) = %d, want 2", i)
	}
	if i := list.IndexEndingAt(7); i != 2 {
		t.Errorf("IndexEndingAt(7) = %d, want 2", i)
	}
	if i := list.Next(2); i != 4 {
		t.Errorf("Next(2) = %d, want 4 (skipping comment)", i)
	}
	if i := list.Prev(4); i != 2 {
		t.Errorf("Prev(4) = %d, want 2 (skipping comment)", i)
	}
	if i := list.FirstBetween(0, len(list.Src), Is(IDENT)); i != 0 {
		t.Errorf("FirstBetween = %d, want 0", i)
	}
	if i := list.LastBetween(0, 7, Is(IDENT)); i != 2 {
		t.Errorf("LastBetween = %d, want 2", i)
	}
}

var lexErrorTests = []struct {
	src string
	err string
}{
	{`"abc`, "1:1: unterminated string"},
	{"(a", "missing closing )"},
	{"a)", "unexpected )"},
	{"'''x'''", "block strings are not supported"},
	{"1abc", "invalid number literal"},
	{"1e", "invalid number literal"},
	{`a \ b`, "unexpected character"},
}

func TestTokenizeErrors(t *testing.T) {
	for _, tt := range lexErrorTests {
		_, err := Tokenize(tt.src)
		if err == nil {
			t.Errorf("Tokenize(%q) succeeded, want error %q", tt.src, tt.err)
			continue
		}
		if !strings.Contains(err.Error(), tt.err) {
			t.Errorf("Tokenize(%q) = %v, want error containing %q", tt.src, err, tt.err)
		}
	}
}
