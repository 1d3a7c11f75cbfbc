// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/decaffeinate/decaf/patch"
)

// TestRun runs the archives in testdata. The archive comment is the
// command line, with file arguments relative to a temporary directory
// holding the archive's files. Files named want/NAME give the expected
// content of NAME after the run, a file named absent lists files that
// must not exist, and files named stdout and error give the expected
// standard output and a substring of the expected error.
func TestRun(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no test cases")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}
			dir := t.TempDir()
			special := make(map[string][]byte)
			for _, f := range ar.Files {
				if f.Name == "stdout" || f.Name == "error" || f.Name == "absent" || strings.HasPrefix(f.Name, "want/") {
					special[f.Name] = f.Data
					continue
				}
				targ := filepath.Join(dir, f.Name)
				if err := os.MkdirAll(filepath.Dir(targ), 0777); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(targ, f.Data, 0666); err != nil {
					t.Fatal(err)
				}
			}

			var stdout bytes.Buffer
			d, args, err := newTestDecaf(strings.Fields(string(ar.Comment)), &stdout)
			if err != nil {
				t.Fatal(err)
			}
			for i, arg := range args {
				args[i] = filepath.Join(dir, arg)
			}
			err = d.run(args)

			if want, ok := special["error"]; ok {
				msg := strings.TrimSpace(string(want))
				if err == nil || !strings.Contains(err.Error(), msg) {
					t.Errorf("err = %v, want error containing %q", err, msg)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if want, ok := special["stdout"]; ok && !bytes.Equal(stdout.Bytes(), want) {
				t.Errorf("stdout:\n%s\nwant:\n%s", stdout.Bytes(), want)
			}
			for name, want := range special {
				name, ok := strings.CutPrefix(name, "want/")
				if !ok {
					continue
				}
				have, err := os.ReadFile(filepath.Join(dir, name))
				if err != nil {
					t.Errorf("%s: %v", name, err)
					continue
				}
				if !bytes.Equal(have, want) {
					t.Errorf("%s:\n%s\nwant:\n%s", name, have, want)
				}
			}
			for _, name := range strings.Fields(string(special["absent"])) {
				if _, err := os.Stat(filepath.Join(dir, name)); !errors.Is(err, os.ErrNotExist) {
					t.Errorf("%s exists", name)
				}
			}
		})
	}
}

// newTestDecaf parses a command line the way main does.
func newTestDecaf(cmdline []string, stdout io.Writer) (*decaf, []string, error) {
	fs := flag.NewFlagSet("decaf", flag.ContinueOnError)
	opts := new(patch.Options)
	optionFlags(fs, opts)
	showDiff := fs.Bool("diff", false, "")
	if err := fs.Parse(cmdline); err != nil {
		return nil, nil, err
	}
	return &decaf{opts: opts, showDiff: *showDiff, stdout: stdout}, fs.Args(), nil
}

func TestStdin(t *testing.T) {
	var stdout bytes.Buffer
	d := &decaf{opts: new(patch.Options), stdin: strings.NewReader("a?\n"), stdout: &stdout}
	if err := d.run(nil); err != nil {
		t.Fatal(err)
	}
	want := "/*\n * decaffeinate suggestions:\n * DS207: Consider shorter variations of null checks\n */\n" +
		"typeof a !== \"undefined\" && a !== null;\n"
	if stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
}

func TestStdinError(t *testing.T) {
	d := &decaf{opts: new(patch.Options), stdin: strings.NewReader("class A\n  b = 2\n"), stdout: io.Discard}
	err := d.run(nil)
	if err == nil || !strings.Contains(err.Error(), "<stdin>:2:3: cannot assign to a variable in a class body") {
		t.Errorf("err = %v", err)
	}
}

func TestDiff(t *testing.T) {
	if _, err := exec.LookPath("diff"); err != nil {
		t.Skip("diff not found")
	}
	dir := t.TempDir()
	name := filepath.Join(dir, "a.coffee")
	if err := os.WriteFile(name, []byte("a = 1\n"), 0666); err != nil {
		t.Fatal(err)
	}
	var stdout bytes.Buffer
	d := &decaf{opts: new(patch.Options), showDiff: true, stdout: &stdout}
	if err := d.run([]string{name}); err != nil {
		t.Fatal(err)
	}
	out := stdout.String()
	if !strings.Contains(out, "\n-a = 1\n") || !strings.Contains(out, "\n+var a = 1;\n") {
		t.Errorf("diff output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.js")); err == nil {
		t.Errorf("-diff wrote a.js")
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct{ in, out string }{
		{"a.coffee", "a.js"},
		{"dir/b.cs", "dir/b.js"},
		{"c", "c.js"},
	}
	for _, tt := range tests {
		if got := outputName(tt.in); got != tt.out {
			t.Errorf("outputName(%q) = %q, want %q", tt.in, got, tt.out)
		}
	}
}

func TestOpensBlock(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"a = 1", false},
		{"f = (x) ->", true},
		{"g = =>  ", true},
		{"if a", true},
		{"if a then b", false},
		{"class A", true},
		{"iffy = 1", false},
		{`a = b + \`, true},
		{"", false},
	}
	for _, tt := range tests {
		if got := opensBlock(tt.line); got != tt.want {
			t.Errorf("opensBlock(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

// scriptReader replays lines to repl.
type scriptReader struct {
	lines   []string
	prompts []string
}

func (r *scriptReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptReader) SetPrompt(p string) {
	r.prompts = append(r.prompts, p)
}

func TestREPL(t *testing.T) {
	r := &scriptReader{lines: []string{
		"a = 1",
		"if a",
		"  b",
		"",
		"class A",
		"  b = 2",
		"",
		"exit",
		"c = 3",
	}}
	var stdout, stderr bytes.Buffer
	opts := &patch.Options{DisableSuggestionComment: true}
	if err := repl(r, &stdout, &stderr, opts); err != nil {
		t.Fatal(err)
	}
	want := "var a = 1;\nif (a) {\n  b;\n}\n\n"
	if stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
	if !strings.Contains(stderr.String(), "cannot assign to a variable in a class body") {
		t.Errorf("stderr = %q", stderr.String())
	}
	wantPrompts := []string{prompt, prompt, morePrompt, morePrompt, prompt, morePrompt, morePrompt, prompt}
	if strings.Join(r.prompts, "|") != strings.Join(wantPrompts, "|") {
		t.Errorf("prompts = %q, want %q", r.prompts, wantPrompts)
	}
}
