// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package patch rewrites CoffeeScript source into JavaScript by building
// a tree of patchers over the syntax tree and letting each patcher queue
// text edits against the original source.
//
// A conversion runs in stages. The Normalize stage rewrites postfix
// conditionals and loops into their prefix forms; the Main stage does
// everything else. Each stage parses its input afresh, so the output of
// one stage is ordinary CoffeeScript (or, after Main, JavaScript).
package patch

// Options controls the shape of the generated JavaScript.
type Options struct {
	// LooseDefaultParams keeps default parameters as native JavaScript
	// defaults, which apply only to undefined, instead of testing for null.
	LooseDefaultParams bool

	// LooseForLoops emits for-of loops for step-less for-in loops
	// instead of index loops.
	LooseForLoops bool

	// LooseIncludes emits b.includes(a) for a in b, assuming b is an array.
	LooseIncludes bool

	// LooseComparisonNegation negates a < b as a >= b, which is wrong for NaN.
	LooseComparisonNegation bool

	// PreferLet declares with let where const would do.
	PreferLet bool

	// BlockScopedDeclarations declares variables with let and const
	// instead of var.
	BlockScopedDeclarations bool

	// DisallowInvalidConstructors makes use of this before super in a
	// derived constructor an error.
	DisallowInvalidConstructors bool

	// DisableSuggestionComment omits the leading comment listing
	// suggested cleanups.
	DisableSuggestionComment bool

	// RunToStage stops the pipeline after the named stage
	// ("normalize" or "main").
	RunToStage string

	// SkipVerify skips re-parsing the generated JavaScript.
	SkipVerify bool
}

// A Result is the output of one stage.
type Result struct {
	Code        string
	Suggestions []Suggestion
}

// declKeyword returns the keyword used for a declaration of a binding
// that is never reassigned (constant) or may be.
func (o *Options) declKeyword(constant bool) string {
	if !o.BlockScopedDeclarations {
		return "var"
	}
	if constant && !o.PreferLet {
		return "const"
	}
	return "let"
}
