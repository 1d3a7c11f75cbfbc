// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// optionFlags names the options a test archive may set in its comment.
var optionFlags = map[string]func(*Options){
	"loose-default-params":          func(o *Options) { o.LooseDefaultParams = true },
	"loose-for-loops":               func(o *Options) { o.LooseForLoops = true },
	"loose-includes":                func(o *Options) { o.LooseIncludes = true },
	"loose-comparison-negation":     func(o *Options) { o.LooseComparisonNegation = true },
	"prefer-let":                    func(o *Options) { o.PreferLet = true },
	"block-scoped-declarations":     func(o *Options) { o.BlockScopedDeclarations = true },
	"disallow-invalid-constructors": func(o *Options) { o.DisallowInvalidConstructors = true },
}

// parseOptions reads the options listed in the comment of a test
// archive, one or more per line. Lines starting with # are ignored.
func parseOptions(comment string) (*Options, error) {
	opts := new(Options)
	for _, line := range strings.Split(comment, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, f := range strings.Fields(line) {
			set, ok := optionFlags[f]
			if !ok {
				return nil, fmt.Errorf("unknown option %q", f)
			}
			set(opts)
		}
	}
	return opts, nil
}

// convert runs Normalize and Main on src.
func convert(src string, opts *Options) (string, error) {
	res, err := Normalize(src, opts)
	if err != nil {
		return "", fmt.Errorf("normalize: %v", err)
	}
	res, err = Main(res.Code, opts)
	if err != nil {
		return "", err
	}
	return res.Code, nil
}

// TestGolden runs the cases in testdata/*.txt. Each archive holds
// pairs of files, name.coffee and either name.js, the expected output,
// or name.error, a substring of the expected error.
func TestGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no test archives")
	}
	for _, file := range files {
		ar, err := txtar.ParseFile(file)
		if err != nil {
			t.Fatal(err)
		}
		opts, err := parseOptions(string(ar.Comment))
		if err != nil {
			t.Fatalf("%s: %v", file, err)
		}
		want := make(map[string]string)
		for _, f := range ar.Files {
			want[f.Name] = string(f.Data)
		}
		for _, f := range ar.Files {
			name, ok := strings.CutSuffix(f.Name, ".coffee")
			if !ok {
				continue
			}
			t.Run(strings.TrimSuffix(filepath.Base(file), ".txt")+"/"+name, func(t *testing.T) {
				out, err := convert(string(f.Data), opts)
				if msg, ok := want[name+".error"]; ok {
					msg = strings.TrimSpace(msg)
					if err == nil {
						t.Fatalf("converted without error, want error containing %q:\n%s", msg, out)
					}
					if !strings.Contains(err.Error(), msg) {
						t.Fatalf("error %q, want error containing %q", err, msg)
					}
					return
				}
				js, ok := want[name+".js"]
				if !ok {
					t.Fatalf("missing %s.js or %s.error", name, name)
				}
				if err != nil {
					t.Fatal(err)
				}
				if out != js {
					t.Errorf("have:\n%s\nwant:\n%s", out, js)
				}
			})
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"a if b\n", "if b then a\n"},
		{"a unless b\n", "unless b then a\n"},
		{"a while b\n", "while b then a\n"},
		{"f x for x in xs\n", "for x in xs then f x\n"},
		{"a = 1\n", "a = 1\n"},
	}
	for _, tt := range tests {
		res, err := Normalize(tt.in, nil)
		if err != nil {
			t.Errorf("Normalize(%q): %v", tt.in, err)
			continue
		}
		if res.Code != tt.out {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, res.Code, tt.out)
		}
	}
}

func TestSuggestions(t *testing.T) {
	tests := []struct {
		in  string
		ids []string
	}{
		{"a = 1\n", nil},
		{"a?\n", []string{"DS207"}},
		{"ref = 1\n@a ? @b\n", []string{"DS104"}},
		{"f = -> 1\n", []string{"DS102"}},
		{"a?\nb?\n", []string{"DS207"}},
	}
	for _, tt := range tests {
		res, err := Main(tt.in, nil)
		if err != nil {
			t.Errorf("Main(%q): %v", tt.in, err)
			continue
		}
		var ids []string
		for _, s := range res.Suggestions {
			ids = append(ids, s.ID)
		}
		if fmt.Sprint(ids) != fmt.Sprint(tt.ids) {
			t.Errorf("Main(%q) suggestions = %v, want %v", tt.in, ids, tt.ids)
		}
	}
}

// TestLowering checks fragments of output whose surroundings the golden
// archives already cover.
func TestLowering(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"x = try\n  a\n", []string{"var x = (() => { try {", "return a;", "} catch (error) {} })();"}},
		{"x = while a\n  b\n", []string{"(() => { var result = [];", "result.push(b);", "return result;", "})();"}},
		{"a?.b.c()\n", []string{`typeof a !== "undefined" && a !== null ? a.b.c() : undefined;`}},
		{"a()?.b\n", []string{"var ref;", "(ref = a()) != null ? ref.b : undefined;"}},
		{"x = [1..30]\n", []string{"var x = __range__(1, 30, true);", "function __range__("}},
		{"x = [a...b]\n", []string{"var x = __range__(a, b, false);"}},
		{"for i in [0..n] by s\n  f i\n", []string{"step = s;", "step > 0 ? i <= n : i >= n;", "i += step)"}},
		{"for x in xs by 2\n  f x\n", []string{"for (i = 0, len = xs.length; i < len; i += 2)"}},
		{"for x in xs by -1\n  f x\n", []string{"for (len = xs.length, i = len - 1; i >= 0; i--)"}},
		{"for x in xs by s\n  f x\n", []string{"step = s, len = xs.length, i = step > 0 ? 0 : len - 1;", "i += step)"}},
	}
	for _, tt := range tests {
		out, err := convert(tt.in, nil)
		if err != nil {
			t.Errorf("convert(%q): %v", tt.in, err)
			continue
		}
		for _, w := range tt.want {
			if !strings.Contains(out, w) {
				t.Errorf("convert(%q) = %q, want it to contain %q", tt.in, out, w)
			}
		}
	}
}

func TestThisBeforeSuper(t *testing.T) {
	tests := []struct {
		in       string
		disallow bool
		err      string
		suggest  bool
	}{
		{"class A extends B\n  constructor: ->\n    @x = 1\n    super()\n", false, "", true},
		{"class A extends B\n  constructor: ->\n    @x = 1\n    super()\n", true, "cannot use this before super", false},
		{"class A extends B\n  constructor: ->\n    super()\n    @x = 1\n", true, "", false},
		{"class A extends B\n  constructor: (@x) ->\n", false, "", true},
		{"class A extends B\n  constructor: ->\n    f => @x\n    super()\n", false, "", true},
		{"class A extends B\n  constructor: ->\n    f -> @x\n    super()\n", false, "", false},
		{"class A\n  constructor: ->\n    @x = 1\n", true, "", false},
	}
	for _, tt := range tests {
		res, err := Main(tt.in, &Options{DisallowInvalidConstructors: tt.disallow})
		if tt.err != "" {
			if err == nil || !strings.Contains(err.Error(), tt.err) {
				t.Errorf("Main(%q) error = %v, want %q", tt.in, err, tt.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Main(%q): %v", tt.in, err)
			continue
		}
		found := false
		for _, s := range res.Suggestions {
			found = found || s == FixInvalidConstructors
		}
		if found != tt.suggest {
			t.Errorf("Main(%q) suggests %s: %v, want %v", tt.in, FixInvalidConstructors.ID, found, tt.suggest)
		}
	}
}

func TestMergeSuggestions(t *testing.T) {
	got := MergeSuggestions(
		[]Suggestion{AvoidIIFEs, RemoveArrayFrom},
		[]Suggestion{RemoveArrayFrom, ShortenNullChecks, AvoidIIFEs},
	)
	want := []Suggestion{AvoidIIFEs, RemoveArrayFrom, ShortenNullChecks}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("MergeSuggestions = %v, want %v", got, want)
	}
}

func TestConflictingHelper(t *testing.T) {
	p := &NodePatcher{s: &session{src: "x"}, ContentEnd: 1}
	var err error
	func() {
		defer catch(&err)
		p.registerHelper("__mod__", modHelper)
		p.registerHelper("__mod__", modHelper)
	}()
	if err != nil {
		t.Fatalf("registering a helper twice: %v", err)
	}
	if len(p.s.helpers) != 1 {
		t.Fatalf("have %d helpers, want 1", len(p.s.helpers))
	}
	func() {
		defer catch(&err)
		p.registerHelper("__mod__", "function __mod__(a, b) { return a % b; }")
	}()
	if err == nil || !strings.Contains(err.Error(), "conflicting definitions of helper __mod__") {
		t.Fatalf("conflicting helper: err = %v", err)
	}
}

func TestCatchPassesOtherPanics(t *testing.T) {
	defer func() {
		if e := recover(); e != "boom" {
			t.Errorf("recovered %v, want boom", e)
		}
	}()
	var err error
	defer catch(&err)
	panic("boom")
}
