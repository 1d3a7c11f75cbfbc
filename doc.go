// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Decaf converts CoffeeScript programs to JavaScript.
//
// Usage:
//
//	decaf [-diff] [options] [file.coffee | dir ...]
//	decaf -repl [options]
//
// Decaf converts each named file, writing the JavaScript next to it
// with the extension .js. A directory stands for the .coffee files
// under it, skipping hidden directories and node_modules. With no
// arguments, decaf converts standard input to standard output.
//
// The -diff flag causes decaf to print a diff from each input to its
// conversion instead of writing files. The -repl flag starts an
// interactive session that converts each snippet as it is typed.
//
// # Conversion
//
// Decaf rewrites the input in place rather than printing a new program
// from a syntax tree, so comments, blank lines and formatting survive
// except where the meaning of the code requires a change. For example,
//
//	# Sum the list.
//	sum = (xs) ->
//	  total = 0
//	  total += x for x in xs
//	  total
//
// becomes
//
//	// Sum the list.
//	var sum = function(xs) {
//	  var x, i, len;
//	  var total = 0;
//	  for (i = 0, len = xs.length; i < len; i++) { x = xs[i]; total += x; }
//	  return total;
//	};
//
// Conversion runs in stages. The normalize stage turns postfix
// conditionals and loops into prefix ones; the main stage converts the
// result to JavaScript; the verify stage parses the JavaScript to check
// that it is well formed. The -run-to-stage flag stops after the named
// stage, which is useful for debugging.
//
// # Suggestions
//
// Some conversions are correct but clumsy, like the temporary
// variables introduced to evaluate an expression once, or the typeof
// checks guarding names that may never have been declared. Decaf lists
// the cleanups it suggests in a comment at the top of the file:
//
//	/*
//	 * decaffeinate suggestions:
//	 * DS207: Consider shorter variations of null checks
//	 */
//
// The -disable-suggestion-comment flag omits the comment.
//
// # Loose conversions
//
// By default decaf preserves the meaning of the program even in corner
// cases, at the cost of longer output. The -loose-* flags trade that
// for shorter code:
//
//	-loose-default-params       (a = 1) -> keeps a native default, which applies only to undefined
//	-loose-for-loops            for x in xs becomes for (x of xs)
//	-loose-includes             a in b becomes b.includes(a), assuming b is an array
//	-loose-comparison-negation  not (a < b) becomes a >= b, which differs for NaN
//
// # Declarations
//
// Variables are declared with var by default. The -block-scoped flag
// declares them with const, or let if they are reassigned; -prefer-let
// uses let throughout.
//
// # Errors
//
// Decaf reports constructs it cannot convert with the position of the
// offending code and an excerpt of the line:
//
//	decaf: main: x.coffee:3:3: cannot assign to a variable in a class body
//		  b = 2
//		  ^^^^^
//
// Errors in one file do not stop the conversion of the others.
package main
