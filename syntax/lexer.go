// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/coregx/coregex"
)

// The exponent of a decimal literal is scanned by exponentLen.
const (
	numberPattern = `^(?:0[xX][0-9a-fA-F_]+|0[bB][01_]+|0[oO][0-7_]+|[0-9][0-9_]*(?:\.[0-9][0-9_]*)?)`
	regexPattern  = `^/(?:[^/\\\n\[]|\\.|\[(?:[^\]\\\n]|\\.)*\])+/[gimsuy]*`
)

// A coregex.Regexp caches match state, so each lexer takes its own
// pair from the pool.
type matchers struct {
	number, regex *coregex.Regexp
}

var matcherPool = sync.Pool{
	New: func() interface{} {
		return &matchers{number: mustCompile(numberPattern), regex: mustCompile(regexPattern)}
	},
}

func mustCompile(pattern string) *coregex.Regexp {
	re, err := coregex.Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// exponentLen returns the length of the exponent at the start of s,
// as in e10 or E-3, or 0.
func exponentLen(s string) int {
	if len(s) < 2 || s[0] != 'e' && s[0] != 'E' {
		return 0
	}
	i := 1
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	j := i
	for j < len(s) && '0' <= s[j] && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0
	}
	return j
}

// Operators and punctuation, longest first.
var punctuation = []string{
	">>>=",
	"?::", "...", "**=", "//=", "%%=", "<<=", ">>=", "&&=", "||=", ">>>",
	"->", "=>", "::", "?.", "..", "==", "!=", "<=", ">=", "&&", "||", "**",
	"//", "%%", "<<", ">>", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"?=", "++", "--",
	"(", ")", "[", "]", "{", "}", ",", ";", ":", ".", "?", "=", "+", "-",
	"*", "/", "%", "<", ">", "&", "|", "^", "!", "~", "@",
}

var punctKinds = map[string]Kind{
	",":   COMMA,
	";":   SEMICOLON,
	":":   COLON,
	".":   DOT,
	"?.":  SOAK_DOT,
	"::":  PROTO,
	"?::": SOAK_PROTO,
	"@":   AT,
	"->":  ARROW,
	"=>":  FATARROW,
	"..":  RANGE,
	"...": ELLIPSIS,
	"?":   EXISTENCE,
	"=":   ASSIGN,
}

// Tokens after which "(" starts a call and "[" starts an index
// when no white space intervenes.
var (
	callable = map[Kind]bool{
		IDENT: true, RPAREN: true, CALL_END: true, INDEX_END: true,
		THIS: true, SUPER: true, EXISTENCE: true,
	}
	indexable = map[Kind]bool{
		IDENT: true, RPAREN: true, CALL_END: true, RBRACKET: true, INDEX_END: true,
		THIS: true, STRING: true, STRING_END: true, EXISTENCE: true, RBRACE: true,
	}
	// value-ending tokens, after which "/" divides
	valueEnd = map[Kind]bool{
		IDENT: true, NUMBER: true, STRING: true, STRING_END: true, REGEX: true, JS: true,
		RPAREN: true, CALL_END: true, RBRACKET: true, INDEX_END: true, RBRACE: true,
		THIS: true, SUPER: true, NULL: true, UNDEFINED: true, BOOL: true,
	}
)

// Tokenize splits src into tokens. The returned list always ends
// with an EOF token.
func Tokenize(src string) (list *TokenList, err error) {
	re := matcherPool.Get().(*matchers)
	defer matcherPool.Put(re)
	l := &lexer{src: src, lines: lineStarts(src), re: re}
	defer func() {
		if e := recover(); e != nil {
			b, ok := e.(bailout)
			if !ok {
				panic(e)
			}
			list, err = nil, b.err
		}
	}()
	l.run(false)
	if len(l.stack) > 0 {
		l.errorf(len(src), len(src), "missing closing %s", closer(l.stack[len(l.stack)-1]))
	}
	l.emit(EOF, len(src), len(src))
	l.finish()
	return &TokenList{Src: src, Tokens: l.toks, lines: l.lines}, nil
}

type lexer struct {
	src   string
	pos   int
	lines []int
	toks  []Token
	stack []Kind
	space bool
	re    *matchers
}

func (l *lexer) errorf(pos, end int, format string, args ...interface{}) {
	panic(bailout{newError(l.lines, pos, end, format, args...)})
}

func (l *lexer) emit(k Kind, start, end int) {
	l.toks = append(l.toks, Token{Kind: k, Start: start, End: end, Space: l.space})
	l.space = false
}

// last returns the last significant token emitted.
func (l *lexer) last() (Token, bool) {
	for i := len(l.toks) - 1; i >= 0; i-- {
		if !l.toks[i].IsComment() {
			return l.toks[i], true
		}
	}
	return Token{}, false
}

func (l *lexer) top() Kind {
	if len(l.stack) == 0 {
		return EOF
	}
	return l.stack[len(l.stack)-1]
}

// run lexes tokens until the end of input or, inside a string
// interpolation, until the closing brace.
func (l *lexer) run(interp bool) {
	for {
		l.skipSpace()
		if l.pos >= len(l.src) {
			if interp {
				l.errorf(l.pos, l.pos, "unterminated string interpolation")
			}
			return
		}
		if interp && l.src[l.pos] == '}' && l.top() == INTERP_START {
			l.stack = l.stack[:len(l.stack)-1]
			l.emit(INTERP_END, l.pos, l.pos+1)
			l.pos++
			return
		}
		l.next()
	}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.pos++
			l.space = true
		case '\\':
			if strings.HasPrefix(l.src[l.pos:], "\\\n") {
				l.pos += 2
				l.space = true
				continue
			}
			return
		default:
			return
		}
	}
}

func (l *lexer) next() {
	start := l.pos
	rest := l.src[l.pos:]
	c := rest[0]
	switch {
	case c == '#':
		if strings.HasPrefix(rest, "###") && !strings.HasPrefix(rest, "####") {
			i := strings.Index(rest[3:], "###")
			if i < 0 {
				l.errorf(start, len(l.src), "unterminated block comment")
			}
			l.pos += 3 + i + 3
			l.emit(HERECOMMENT, start, l.pos)
		} else {
			i := strings.IndexByte(rest, '\n')
			if i < 0 {
				i = len(rest)
			}
			l.pos += i
			l.emit(COMMENT, start, l.pos)
		}
		l.space = true

	case isIdentStart(rest):
		l.ident()

	case '0' <= c && c <= '9':
		loc := l.re.number.FindStringIndex(rest)
		if loc == nil {
			l.errorf(start, start+1, "invalid number")
		}
		l.pos += loc[1]
		if !strings.ContainsAny(rest[:loc[1]], "xXbBoO") {
			l.pos += exponentLen(l.src[l.pos:])
		}
		if l.pos < len(l.src) && isIdentStart(l.src[l.pos:]) {
			l.errorf(start, l.pos+1, "invalid number literal %q", l.src[start:l.pos+1])
		}
		l.emit(NUMBER, start, l.pos)

	case c == '\'':
		if strings.HasPrefix(rest, "'''") {
			l.errorf(start, start+3, "block strings are not supported")
		}
		l.pos = l.quoted(start, '\'')
		l.emit(STRING, start, l.pos)

	case c == '"':
		if strings.HasPrefix(rest, `"""`) {
			l.errorf(start, start+3, "block strings are not supported")
		}
		l.doubleQuoted()

	case c == '`':
		l.pos = l.quoted(start, '`')
		l.emit(JS, start, l.pos)

	case c == '/' && l.regexAllowed():
		if strings.HasPrefix(rest, "///") {
			l.errorf(start, start+3, "block regexes are not supported")
		}
		if loc := l.re.regex.FindStringIndex(rest); loc != nil {
			l.pos += loc[1]
			l.emit(REGEX, start, l.pos)
			return
		}
		l.punct()

	default:
		l.punct()
	}
}

func isIdentStart(s string) bool {
	c := s[0]
	if c >= utf8.RuneSelf {
		r, _ := utf8.DecodeRuneInString(s)
		return r != utf8.RuneError && r != ' '
	}
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_' || c == '$'
}

func isIdentPart(s string) bool {
	return isIdentStart(s) || '0' <= s[0] && s[0] <= '9'
}

func (l *lexer) ident() {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos:]) {
		if l.src[l.pos] >= utf8.RuneSelf {
			_, size := utf8.DecodeRuneInString(l.src[l.pos:])
			l.pos += size
		} else {
			l.pos++
		}
	}
	word := l.src[start:l.pos]
	kind := IDENT
	if k, ok := keywords[word]; ok && !l.afterAccessor() && !l.followedByColon() {
		kind = k
	}
	l.emit(kind, start, l.pos)
}

// afterAccessor reports whether the previous token makes the next
// word a property name rather than a keyword.
func (l *lexer) afterAccessor() bool {
	t, ok := l.last()
	if !ok {
		return false
	}
	switch t.Kind {
	case DOT, SOAK_DOT, PROTO, SOAK_PROTO:
		return true
	case AT:
		return !l.space
	}
	return false
}

// followedByColon reports whether the word just scanned is an object key.
func (l *lexer) followedByColon() bool {
	i := l.pos
	for i < len(l.src) && (l.src[i] == ' ' || l.src[i] == '\t') {
		i++
	}
	return i < len(l.src) && l.src[i] == ':' && !strings.HasPrefix(l.src[i:], "::")
}

func (l *lexer) regexAllowed() bool {
	t, ok := l.last()
	if !ok {
		return true
	}
	if t.Kind == IDENT && l.space {
		// f /re/ is an implicit call, a / b is division.
		rest := l.src[l.pos+1:]
		return rest != "" && rest[0] != ' ' && rest[0] != '='
	}
	if t.Kind == OPERATOR {
		text := l.src[t.Start:t.End]
		return text != "++" && text != "--"
	}
	return !valueEnd[t.Kind]
}

// quoted scans a literal delimited by q starting at start
// and returns the offset just past the closing delimiter.
func (l *lexer) quoted(start int, q byte) int {
	for i := start + 1; i < len(l.src); i++ {
		switch l.src[i] {
		case '\\':
			i++
		case q:
			return i + 1
		}
	}
	l.errorf(start, len(l.src), "unterminated string")
	return 0
}

// doubleQuoted scans a double-quoted string, splitting it into
// STRING_START, STRING_CONTENT, interpolation and STRING_END tokens
// when it contains #{...} interpolations.
func (l *lexer) doubleQuoted() {
	start := l.pos
	space := l.space
	interpolated := false
	l.pos++
	content := l.pos
	for l.pos < len(l.src) {
		switch c := l.src[l.pos]; {
		case c == '\\':
			l.pos += 2
		case c == '"':
			if !interpolated {
				l.pos++
				l.emit(STRING, start, l.pos)
				return
			}
			if content < l.pos {
				l.emit(STRING_CONTENT, content, l.pos)
			}
			l.emit(STRING_END, l.pos, l.pos+1)
			l.pos++
			return
		case c == '#' && strings.HasPrefix(l.src[l.pos:], "#{"):
			if !interpolated {
				interpolated = true
				l.space = space
				l.emit(STRING_START, start, start+1)
			}
			if content < l.pos {
				l.emit(STRING_CONTENT, content, l.pos)
			}
			l.stack = append(l.stack, INTERP_START)
			l.emit(INTERP_START, l.pos, l.pos+2)
			l.pos += 2
			l.run(true)
			content = l.pos
		default:
			l.pos++
		}
	}
	l.errorf(start, len(l.src), "unterminated string")
}

func (l *lexer) punct() {
	start := l.pos
	rest := l.src[l.pos:]
	var op string
	for _, p := range punctuation {
		if strings.HasPrefix(rest, p) {
			op = p
			break
		}
	}
	if op == "" {
		r, size := utf8.DecodeRuneInString(rest)
		l.errorf(start, start+size, "unexpected character %q", r)
	}
	l.pos += len(op)

	prev, hasPrev := l.last()
	glued := hasPrev && !l.space
	var kind Kind
	switch op {
	case "(":
		kind = LPAREN
		if glued && callable[prev.Kind] {
			kind = CALL_START
		}
		l.stack = append(l.stack, kind)
	case "[":
		kind = LBRACKET
		if glued && indexable[prev.Kind] {
			kind = INDEX_START
		}
		l.stack = append(l.stack, kind)
	case "{":
		kind = LBRACE
		l.stack = append(l.stack, kind)
	case ")", "]", "}":
		open := l.top()
		if closer(open) != op {
			l.errorf(start, l.pos, "unexpected %s", op)
		}
		l.stack = l.stack[:len(l.stack)-1]
		switch open {
		case LPAREN:
			kind = RPAREN
		case CALL_START:
			kind = CALL_END
		case LBRACKET:
			kind = RBRACKET
		case INDEX_START:
			kind = INDEX_END
		case LBRACE:
			kind = RBRACE
		}
	default:
		if k, ok := punctKinds[op]; ok {
			kind = k
		} else if isCompoundAssign(op) {
			kind = COMPOUND_ASSIGN
		} else {
			kind = OPERATOR
		}
	}
	l.emit(kind, start, l.pos)
}

func isCompoundAssign(op string) bool {
	return len(op) >= 2 && op[len(op)-1] == '=' && op != "==" && op != "!=" && op != "<=" && op != ">="
}

func closer(open Kind) string {
	switch open {
	case LPAREN, CALL_START:
		return ")"
	case LBRACKET, INDEX_START:
		return "]"
	case LBRACE:
		return "}"
	case INTERP_START:
		return "} of string interpolation"
	}
	return "?"
}

// finish fills in line positions and the NewLine flags.
func (l *lexer) finish() {
	prevLine := -1
	for i := range l.toks {
		t := &l.toks[i]
		t.Line, t.Col = position(l.lines, t.Start)
		if t.IsComment() || t.Kind == EOF {
			continue
		}
		t.NewLine = t.Line > prevLine
		end := t.End
		if end > t.Start {
			end--
		}
		prevLine, _ = position(l.lines, end)
	}
}
