// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntax implements a lexer and parser for the CoffeeScript
// dialect accepted by decaf. Syntax tree nodes record byte offsets
// into the original source, which the patch stages rewrite in place.
package syntax

import (
	"fmt"
	"sort"
)

// A Kind is the type tag of a token.
type Kind int

const (
	EOF Kind = iota
	COMMENT
	HERECOMMENT

	IDENT
	NUMBER
	STRING
	STRING_START
	STRING_CONTENT
	STRING_END
	INTERP_START
	INTERP_END
	REGEX
	JS

	// punctuation
	LPAREN
	RPAREN
	CALL_START
	CALL_END
	LBRACKET
	RBRACKET
	INDEX_START
	INDEX_END
	LBRACE
	RBRACE
	COMMA
	SEMICOLON
	COLON
	DOT
	SOAK_DOT
	PROTO
	SOAK_PROTO
	AT
	ARROW
	FATARROW
	RANGE
	ELLIPSIS
	EXISTENCE
	ASSIGN
	COMPOUND_ASSIGN
	OPERATOR

	// keywords
	IF
	UNLESS
	THEN
	ELSE
	WHILE
	UNTIL
	LOOP
	FOR
	IN
	OF
	OWN
	BY
	WHEN
	SWITCH
	TRY
	CATCH
	FINALLY
	CLASS
	EXTENDS
	RETURN
	THROW
	BREAK
	CONTINUE
	NEW
	THIS
	SUPER
	NULL
	UNDEFINED
	BOOL
	AND
	OR
	NOT
	IS
	ISNT
	INSTANCEOF
	TYPEOF
	DELETE
	YIELD
	DO
)

var kindNames = [...]string{
	EOF:             "EOF",
	COMMENT:         "COMMENT",
	HERECOMMENT:     "HERECOMMENT",
	IDENT:           "IDENT",
	NUMBER:          "NUMBER",
	STRING:          "STRING",
	STRING_START:    "STRING_START",
	STRING_CONTENT:  "STRING_CONTENT",
	STRING_END:      "STRING_END",
	INTERP_START:    "INTERP_START",
	INTERP_END:      "INTERP_END",
	REGEX:           "REGEX",
	JS:              "JS",
	LPAREN:          "(",
	RPAREN:          ")",
	CALL_START:      "CALL_START",
	CALL_END:        "CALL_END",
	LBRACKET:        "[",
	RBRACKET:        "]",
	INDEX_START:     "INDEX_START",
	INDEX_END:       "INDEX_END",
	LBRACE:          "{",
	RBRACE:          "}",
	COMMA:           ",",
	SEMICOLON:       ";",
	COLON:           ":",
	DOT:             ".",
	SOAK_DOT:        "?.",
	PROTO:           "::",
	SOAK_PROTO:      "?::",
	AT:              "@",
	ARROW:           "->",
	FATARROW:        "=>",
	RANGE:           "..",
	ELLIPSIS:        "...",
	EXISTENCE:       "?",
	ASSIGN:          "=",
	COMPOUND_ASSIGN: "COMPOUND_ASSIGN",
	OPERATOR:        "OPERATOR",
	IF:              "if",
	UNLESS:          "unless",
	THEN:            "then",
	ELSE:            "else",
	WHILE:           "while",
	UNTIL:           "until",
	LOOP:            "loop",
	FOR:             "for",
	IN:              "in",
	OF:              "of",
	OWN:             "own",
	BY:              "by",
	WHEN:            "when",
	SWITCH:          "switch",
	TRY:             "try",
	CATCH:           "catch",
	FINALLY:         "finally",
	CLASS:           "class",
	EXTENDS:         "extends",
	RETURN:          "return",
	THROW:           "throw",
	BREAK:           "break",
	CONTINUE:        "continue",
	NEW:             "new",
	THIS:            "this",
	SUPER:           "super",
	NULL:            "null",
	UNDEFINED:       "undefined",
	BOOL:            "BOOL",
	AND:             "and",
	OR:              "or",
	NOT:             "not",
	IS:              "is",
	ISNT:            "isnt",
	INSTANCEOF:      "instanceof",
	TYPEOF:          "typeof",
	DELETE:          "delete",
	YIELD:           "yield",
	DO:              "do",
}

func (k Kind) String() string {
	if 0 <= k && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var keywords = map[string]Kind{
	"if":         IF,
	"unless":     UNLESS,
	"then":       THEN,
	"else":       ELSE,
	"while":      WHILE,
	"until":      UNTIL,
	"loop":       LOOP,
	"for":        FOR,
	"in":         IN,
	"of":         OF,
	"own":        OWN,
	"by":         BY,
	"when":       WHEN,
	"switch":     SWITCH,
	"try":        TRY,
	"catch":      CATCH,
	"finally":    FINALLY,
	"class":      CLASS,
	"extends":    EXTENDS,
	"return":     RETURN,
	"throw":      THROW,
	"break":      BREAK,
	"continue":   CONTINUE,
	"new":        NEW,
	"this":       THIS,
	"super":      SUPER,
	"null":       NULL,
	"undefined":  UNDEFINED,
	"true":       BOOL,
	"false":      BOOL,
	"yes":        BOOL,
	"no":         BOOL,
	"on":         BOOL,
	"off":        BOOL,
	"and":        AND,
	"or":         OR,
	"not":        NOT,
	"is":         IS,
	"isnt":       ISNT,
	"instanceof": INSTANCEOF,
	"typeof":     TYPEOF,
	"delete":     DELETE,
	"yield":      YIELD,
	"do":         DO,
}

// A Token is a lexical token of the source text.
// Start and End are byte offsets; Line and Col are zero-based.
type Token struct {
	Kind  Kind
	Start int
	End   int
	Line  int
	Col   int

	// Space reports whether the token is preceded by white space
	// (including a line break).
	Space bool

	// NewLine reports whether the token is the first significant
	// (non-comment) token on its line.
	NewLine bool
}

// IsComment reports whether t is a line or block comment.
func (t Token) IsComment() bool {
	return t.Kind == COMMENT || t.Kind == HERECOMMENT
}

// A TokenList is the ordered token stream of a source file,
// comments included.
type TokenList struct {
	Src    string
	Tokens []Token
	lines  []int // offsets of line starts
}

// Len returns the number of tokens, not counting the final EOF.
func (l *TokenList) Len() int {
	return len(l.Tokens) - 1
}

// At returns the i'th token.
func (l *TokenList) At(i int) Token {
	return l.Tokens[i]
}

// Text returns the source text of t.
func (l *TokenList) Text(t Token) string {
	return l.Src[t.Start:t.End]
}

// Position returns the zero-based line and byte column of offset.
func (l *TokenList) Position(offset int) (line, col int) {
	return position(l.lines, offset)
}

// LineStart returns the offset of the start of the line containing offset.
func (l *TokenList) LineStart(offset int) int {
	line, _ := l.Position(offset)
	return l.lines[line]
}

// IndexStartingAt returns the index of the token starting at offset, or -1.
// Comments are never returned.
func (l *TokenList) IndexStartingAt(offset int) int {
	i := sort.Search(len(l.Tokens), func(i int) bool { return l.Tokens[i].Start >= offset })
	for ; i < len(l.Tokens) && l.Tokens[i].Start == offset; i++ {
		if !l.Tokens[i].IsComment() && l.Tokens[i].Kind != EOF {
			return i
		}
	}
	return -1
}

// IndexEndingAt returns the index of the token ending at offset, or -1.
// Comments are never returned.
func (l *TokenList) IndexEndingAt(offset int) int {
	i := sort.Search(len(l.Tokens), func(i int) bool { return l.Tokens[i].End > offset }) - 1
	for ; i >= 0 && l.Tokens[i].End == offset; i-- {
		if !l.Tokens[i].IsComment() && l.Tokens[i].Start < l.Tokens[i].End {
			return i
		}
	}
	return -1
}

// Prev returns the index of the significant token before index i, or -1.
func (l *TokenList) Prev(i int) int {
	for i--; i >= 0; i-- {
		if !l.Tokens[i].IsComment() {
			return i
		}
	}
	return -1
}

// Next returns the index of the significant token after index i.
// At the end of the list it returns the index of the EOF token.
func (l *TokenList) Next(i int) int {
	for i++; i < len(l.Tokens)-1; i++ {
		if !l.Tokens[i].IsComment() {
			return i
		}
	}
	return len(l.Tokens) - 1
}

// FirstBetween returns the index of the first significant token
// lying entirely within [start,end) that satisfies match, or -1.
func (l *TokenList) FirstBetween(start, end int, match func(Token) bool) int {
	i := sort.Search(len(l.Tokens), func(i int) bool { return l.Tokens[i].Start >= start })
	for ; i < len(l.Tokens) && l.Tokens[i].End <= end; i++ {
		t := l.Tokens[i]
		if t.Kind == EOF {
			break
		}
		if !t.IsComment() && match(t) {
			return i
		}
	}
	return -1
}

// LastBetween returns the index of the last significant token
// lying entirely within [start,end) that satisfies match, or -1.
func (l *TokenList) LastBetween(start, end int, match func(Token) bool) int {
	i := sort.Search(len(l.Tokens), func(i int) bool { return l.Tokens[i].End > end }) - 1
	for ; i >= 0 && l.Tokens[i].Start >= start; i-- {
		t := l.Tokens[i]
		if !t.IsComment() && t.Kind != EOF && match(t) {
			return i
		}
	}
	return -1
}

// Comments returns the indexes of all comment tokens.
func (l *TokenList) Comments() []int {
	var out []int
	for i, t := range l.Tokens {
		if t.IsComment() {
			out = append(out, i)
		}
	}
	return out
}

// Is returns a token predicate matching any of the given kinds.
func Is(kinds ...Kind) func(Token) bool {
	return func(t Token) bool {
		for _, k := range kinds {
			if t.Kind == k {
				return true
			}
		}
		return false
	}
}
