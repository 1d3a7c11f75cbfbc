// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import (
	"fmt"
	"os"

	"github.com/decaffeinate/decaf/edit"
	"github.com/decaffeinate/decaf/syntax"
)

// debugPatch prints each patcher tree before it is patched.
const debugPatch = false

// Normalize rewrites postfix conditionals and loops in src into their
// prefix forms. The result is CoffeeScript.
func Normalize(src string, opts *Options) (*Result, error) {
	return run(src, opts, normalizeTable)
}

// Main converts src, which must already be normalized, to JavaScript.
func Main(src string, opts *Options) (*Result, error) {
	return run(src, opts, mainTable)
}

func run(src string, opts *Options, t *table) (res *Result, err error) {
	if opts == nil {
		opts = new(Options)
	}
	prog, toks, err := syntax.Parse(src)
	if err != nil {
		return nil, err
	}
	defer catch(&err)

	s := &session{
		src:    src,
		toks:   toks,
		buf:    edit.NewBuffer([]byte(src)),
		opts:   opts,
		scopes: buildScopes(prog),
	}
	root := buildPatcherTree(s, t, prog)
	if debugPatch {
		dumpTree(root, "")
	}
	root.base().Patch()
	return &Result{Code: s.buf.String(), Suggestions: s.suggestions}, nil
}

func dumpTree(p Patcher, indent string) {
	b := p.base()
	fmt.Fprintf(os.Stderr, "%s%v outer=[%d,%d)\n", indent, b, b.OuterStart, b.OuterEnd)
	for _, c := range b.allChildren() {
		dumpTree(c, indent+"  ")
	}
}
