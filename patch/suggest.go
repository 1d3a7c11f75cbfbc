// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import "golang.org/x/exp/slices"

// A Suggestion is an advisory note about generated code that a person
// may want to clean up by hand.
type Suggestion struct {
	ID      string
	Message string
}

// Suggestions made by the Main stage.
var (
	FixInvalidConstructors    = Suggestion{"DS001", "Fix invalid constructor that uses this before super"}
	RemoveArrayFrom           = Suggestion{"DS101", "Remove unnecessary use of Array.from"}
	CleanUpImplicitReturns    = Suggestion{"DS102", "Remove unnecessary code created because of implicit returns"}
	AvoidInlineAssignments    = Suggestion{"DS104", "Avoid inline assignments"}
	SimplifyDynamicRangeLoops = Suggestion{"DS202", "Simplify dynamic range loops"}
	CleanUpForOwnLoops        = Suggestion{"DS203", "Remove `|| {}` from converted for-own loops"}
	FixIncludesOrder          = Suggestion{"DS204", "Change includes calls to have a more natural evaluation order"}
	AvoidIIFEs                = Suggestion{"DS205", "Consider reworking code to avoid use of IIFEs"}
	ShortenNullChecks         = Suggestion{"DS207", "Consider shorter variations of null checks"}
)

// MergeSuggestions returns the suggestions of all lists, each ID once,
// in first-seen order.
func MergeSuggestions(lists ...[]Suggestion) []Suggestion {
	var out []Suggestion
	for _, l := range lists {
		for _, s := range l {
			if !slices.ContainsFunc(out, func(t Suggestion) bool { return t.ID == s.ID }) {
				out = append(out, s)
			}
		}
	}
	return out
}
