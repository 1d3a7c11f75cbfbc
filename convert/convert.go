// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package convert runs the stages that turn CoffeeScript into
// JavaScript and renders what they report: the leading suggestion
// comment and source excerpts for errors.
package convert

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
	"golang.org/x/xerrors"

	"github.com/decaffeinate/decaf/patch"
)

// A Stage rewrites source text. The output of one stage is the input
// of the next.
type Stage func(src string, opts *patch.Options) (*patch.Result, error)

// Stage names, in pipeline order.
const (
	NormalizeStage = "normalize"
	MainStage      = "main"
	VerifyStage    = "verify"
)

var pipeline = []struct {
	name string
	run  Stage
}{
	{NormalizeStage, patch.Normalize},
	{MainStage, patch.Main},
	{VerifyStage, Verify},
}

// StageNames returns the names of the stages in pipeline order.
func StageNames() []string {
	var names []string
	for _, st := range pipeline {
		names = append(names, st.name)
	}
	return names
}

// Convert converts the CoffeeScript src to JavaScript. The file name
// is used only in errors.
//
// Conversion stops after the stage named by opts.RunToStage, if set.
// Errors carrying a source range are reported as *Error, wrapped with
// the name of the failing stage.
func Convert(name, src string, opts *patch.Options) (string, error) {
	if opts == nil {
		opts = new(patch.Options)
	}
	if opts.RunToStage != "" && !isStage(opts.RunToStage) {
		return "", xerrors.Errorf("unknown stage %q (want one of %s)", opts.RunToStage, strings.Join(StageNames(), ", "))
	}

	var suggestions []patch.Suggestion
	code := src
	for _, st := range pipeline {
		if st.name == VerifyStage && opts.SkipVerify {
			break
		}
		res, err := st.run(code, opts)
		if err != nil {
			return "", xerrors.Errorf("%s: %w", st.name, positioned(name, code, err))
		}
		code = res.Code
		suggestions = patch.MergeSuggestions(suggestions, res.Suggestions)
		if st.name == opts.RunToStage {
			break
		}
	}
	if !opts.DisableSuggestionComment {
		code = SuggestionComment(suggestions) + code
	}
	return code, nil
}

func isStage(name string) bool {
	for _, st := range pipeline {
		if st.name == name {
			return true
		}
	}
	return false
}

// Verify parses src as JavaScript and passes it through unchanged.
func Verify(src string, opts *patch.Options) (*patch.Result, error) {
	if _, err := js.Parse(parse.NewInputString(src), js.Options{}); err != nil {
		return nil, err
	}
	return &patch.Result{Code: src}, nil
}

// SuggestionComment renders the suggestions as the comment block that
// leads the converted file, or returns "" if there are none.
func SuggestionComment(suggestions []patch.Suggestion) string {
	if len(suggestions) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("/*\n * decaffeinate suggestions:\n")
	for _, s := range suggestions {
		b.WriteString(" * " + s.ID + ": " + s.Message + "\n")
	}
	b.WriteString(" */\n")
	return b.String()
}
