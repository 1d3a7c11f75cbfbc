// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convert

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"golang.org/x/tools/txtar"
	"golang.org/x/xerrors"

	"github.com/decaffeinate/decaf/patch"
)

// TestGolden runs testdata/*.txt. Each archive holds in.coffee and
// either out.js, the complete converted file, or error, a substring of
// the expected error. The archive comment lists options.
func TestGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txt"), func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}
			opts := new(patch.Options)
			for _, f := range strings.Fields(string(ar.Comment)) {
				switch f {
				case "disable-suggestion-comment":
					opts.DisableSuggestionComment = true
				case "skip-verify":
					opts.SkipVerify = true
				case "run-to-normalize":
					opts.RunToStage = NormalizeStage
				case "run-to-main":
					opts.RunToStage = MainStage
				default:
					t.Fatalf("unknown option %q", f)
				}
			}
			files := make(map[string]string)
			for _, f := range ar.Files {
				files[f.Name] = string(f.Data)
			}
			out, err := Convert("in.coffee", files["in.coffee"], opts)
			if msg, ok := files["error"]; ok {
				msg = strings.TrimSpace(msg)
				if err == nil || !strings.Contains(err.Error(), msg) {
					t.Fatalf("err = %v, want error containing %q", err, msg)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if want := files["out.js"]; out != want {
				t.Errorf("have:\n%s\nwant:\n%s", out, want)
			}
		})
	}
}

func TestSuggestionComment(t *testing.T) {
	if got := SuggestionComment(nil); got != "" {
		t.Errorf("SuggestionComment(nil) = %q, want empty", got)
	}
	got := SuggestionComment([]patch.Suggestion{patch.RemoveArrayFrom, patch.ShortenNullChecks})
	want := "/*\n" +
		" * decaffeinate suggestions:\n" +
		" * DS101: Remove unnecessary use of Array.from\n" +
		" * DS207: Consider shorter variations of null checks\n" +
		" */\n"
	if got != want {
		t.Errorf("SuggestionComment = %q, want %q", got, want)
	}
}

func TestUnknownStage(t *testing.T) {
	_, err := Convert("", "a\n", &patch.Options{RunToStage: "optimize"})
	if err == nil || !strings.Contains(err.Error(), `unknown stage "optimize"`) {
		t.Errorf("err = %v, want unknown stage", err)
	}
}

func TestStageNames(t *testing.T) {
	if got := strings.Join(StageNames(), " "); got != "normalize main verify" {
		t.Errorf("StageNames() = %s", got)
	}
}

func TestVerify(t *testing.T) {
	if _, err := Verify("var a = 1;\nclass A {\n  m() { return 1; }\n}\n", nil); err != nil {
		t.Errorf("Verify(valid): %v", err)
	}
	if _, err := Verify("var = ;\n", nil); err == nil {
		t.Errorf("Verify(invalid) succeeded")
	}
}

func TestPositionedErrors(t *testing.T) {
	_, err := Convert("x.coffee", "a = 1\nclass A\n  b = 2\n", nil)
	if err == nil {
		t.Fatal("no error")
	}
	var e *Error
	if !xerrors.As(err, &e) {
		t.Fatalf("error %v (%T) has no position", err, err)
	}
	if e.File != "x.coffee" || e.Line != 3 || e.Col != 3 {
		t.Errorf("error at %s:%d:%d, want x.coffee:3:3", e.File, e.Line, e.Col)
	}
	if !strings.HasPrefix(err.Error(), "main: x.coffee:3:3: ") {
		t.Errorf("err = %q, want main: x.coffee:3:3: prefix", err)
	}
	var pe *patch.Error
	if !errors.As(err, &pe) {
		t.Errorf("error does not wrap *patch.Error")
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		src        string
		start, end int
		want       string
	}{
		{"a = b c\n", 6, 7, "a = b c\n      ^"},
		{"abc\ndef\n", 5, 5, "def\n ^"},
		{"abc\ndef\n", 1, 6, "abc\n ^^"},
		{"\tx\n", 1, 2, "\tx\n\t^"},
		{"世界 = 1\n", 7, 8, "世界 = 1\n     ^"},
		{"x = 世界\n", 4, 10, "x = 世界\n    ^^^^"},
	}
	for _, tt := range tests {
		if got := excerpt(tt.src, tt.start, tt.end); got != tt.want {
			t.Errorf("excerpt(%q, %d, %d) = %q, want %q", tt.src, tt.start, tt.end, got, tt.want)
		}
	}
}

func TestOffsetOf(t *testing.T) {
	src := "ab\ncd\nef"
	tests := []struct{ line, col, want int }{
		{1, 1, 0},
		{2, 2, 4},
		{3, 1, 6},
		{9, 1, len(src)},
	}
	for _, tt := range tests {
		if got := offsetOf(src, tt.line, tt.col); got != tt.want {
			t.Errorf("offsetOf(%d, %d) = %d, want %d", tt.line, tt.col, got, tt.want)
		}
	}
}

// TestConcurrentConvert converts the same input from many goroutines,
// as the command does for many files. Run with -race.
func TestConcurrentConvert(t *testing.T) {
	const src = "x = 1.5e3 + 0x1F\ny = /a+b/g\nz = [1..3]\n"
	opts := &patch.Options{DisableSuggestionComment: true}
	want, err := Convert("a.coffee", src, opts)
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	errs := make([]error, 16)
	outs := make([]string, 16)
	for i := range outs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outs[i], errs[i] = Convert("a.coffee", src, opts)
		}(i)
	}
	wg.Wait()
	for i := range outs {
		if errs[i] != nil {
			t.Errorf("goroutine %d: %v", i, errs[i])
		} else if outs[i] != want {
			t.Errorf("goroutine %d: have %q, want %q", i, outs[i], want)
		}
	}
}

func TestErrorList(t *testing.T) {
	var l ErrorList
	if l.Err() != nil {
		t.Fatal("empty list is an error")
	}
	e1 := &Error{File: "b.coffee", Offset: 4, Line: 1, Col: 5, Msg: "bad", Excerpt: "a = b c\n    ^"}
	e2 := &Error{File: "a.coffee", Offset: 9, Line: 2, Col: 1, Msg: "worse"}
	l.Add(e1)
	l.Add(xerrors.Errorf("main: %w", e1))
	l.Add(e2)
	l.Add(&Error{File: "b.coffee", Offset: 1, Line: 1, Col: 2, Msg: "early"})
	l.Add(nil)
	var other ErrorList
	other.Add(errors.New("plain"))
	other.Add(errors.New("plain"))
	l.Add(&other)
	if l.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", l.Len())
	}
	want := "b.coffee:1:2: early\n" +
		"b.coffee:1:5: bad\n" +
		"\ta = b c\n" +
		"\t    ^\n" +
		"a.coffee:2:1: worse\n" +
		"plain"
	if got := l.Err().Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
