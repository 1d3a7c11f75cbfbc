// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import "fmt"

// Parse parses a CoffeeScript program and returns its syntax tree
// together with the token list it was parsed from.
// Errors are reported as *Error.
func Parse(src string) (prog *Program, toks *TokenList, err error) {
	toks, err = Tokenize(src)
	if err != nil {
		return nil, nil, err
	}
	p := newParser(toks)
	defer func() {
		if e := recover(); e != nil {
			b, ok := e.(bailout)
			if !ok {
				panic(e)
			}
			prog, toks, err = nil, nil, b.err
		}
	}()
	return p.program(), toks, nil
}

type parser struct {
	list   *TokenList
	toks   []Token // significant tokens, ending with EOF
	indent []int   // indentation of the line of each token
	pos    int

	stmtIndent int         // indentation of the statement being parsed
	funcs      []*Function // enclosing functions, innermost last

	// header is set while parsing the header of a block construct,
	// where an indented line starts the body, not call arguments.
	header bool

	// implicitDepth counts the implicit call argument lists being
	// parsed in the current statement.
	implicitDepth int

	// classKeys is set in a class body, where this.name and
	// Class.name are member keys.
	classKeys bool
}

func newParser(list *TokenList) *parser {
	p := &parser{list: list}
	cur := 0
	for _, t := range list.Tokens {
		if t.IsComment() {
			continue
		}
		if t.NewLine {
			cur = t.Col
		}
		p.toks = append(p.toks, t)
		p.indent = append(p.indent, cur)
	}
	return p
}

func (p *parser) tok() Token { return p.toks[p.pos] }

func (p *parser) peek(n int) Token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) at(k Kind) bool { return p.toks[p.pos].Kind == k }

func (p *parser) next() Token {
	t := p.toks[p.pos]
	if t.Kind != EOF {
		p.pos++
	}
	return t
}

// prevEnd returns the end offset of the last consumed token.
func (p *parser) prevEnd() int {
	if p.pos == 0 {
		return 0
	}
	return p.toks[p.pos-1].End
}

func (p *parser) text(t Token) string {
	return p.list.Src[t.Start:t.End]
}

func (p *parser) describe(t Token) string {
	if t.Kind == EOF {
		return "end of input"
	}
	if t.NewLine && p.pos > 0 {
		return fmt.Sprintf("%q at start of line", p.text(t))
	}
	return fmt.Sprintf("%q", p.text(t))
}

func (p *parser) errorf(t Token, format string, args ...interface{}) {
	panic(bailout{newError(p.list.lines, t.Start, t.End, format, args...)})
}

func (p *parser) unexpected() {
	p.errorf(p.tok(), "unexpected %s", p.describe(p.tok()))
}

func (p *parser) expect(k Kind, what string) Token {
	if !p.at(k) {
		p.errorf(p.tok(), "expected %s, found %s", what, p.describe(p.tok()))
	}
	return p.next()
}

func isCloser(k Kind) bool {
	switch k {
	case RPAREN, CALL_END, RBRACKET, INDEX_END, RBRACE, INTERP_END:
		return true
	}
	return false
}

// endsBlock reports whether k, at the start of a statement,
// belongs to an enclosing construct.
func endsBlock(k Kind) bool {
	switch k {
	case ELSE, CATCH, FINALLY, WHEN, THEN:
		return true
	}
	return false
}

// isTerminator reports whether t ends an optional operand,
// as in a bare return.
func isTerminator(t Token) bool {
	if t.NewLine || t.Kind == EOF || isCloser(t.Kind) || endsBlock(t.Kind) {
		return true
	}
	switch t.Kind {
	case SEMICOLON, COMMA, IF, UNLESS, WHILE, UNTIL, FOR, BY:
		return true
	}
	return false
}

func (p *parser) program() *Program {
	body := &Block{Span: Span{0, 0}}
	if !p.at(EOF) {
		body = p.block(p.indent[p.pos])
	}
	if !p.at(EOF) {
		p.unexpected()
	}
	return &Program{Span: Span{0, len(p.list.Src)}, Body: body}
}

// block parses the statements of a block whose lines are indented by indent.
func (p *parser) block(indent int) *Block {
	b := &Block{Span: Span{p.tok().Start, p.tok().Start}}
	for {
		t := p.tok()
		if len(b.Statements) > 0 {
			sameLine := false
			if t.Kind == SEMICOLON {
				p.next()
				t = p.tok()
				sameLine = !t.NewLine
			}
			if !sameLine {
				if !t.NewLine || t.Kind == EOF {
					break
				}
				if ind := p.indent[p.pos]; ind < indent {
					break
				} else if ind > indent {
					p.errorf(t, "unexpected indentation")
				}
			}
		}
		if t.Kind == EOF || isCloser(t.Kind) || endsBlock(t.Kind) {
			break
		}
		s := p.statement()
		if len(b.Statements) == 0 {
			b.Lo = s.Pos()
		}
		b.Statements = append(b.Statements, s)
		b.Hi = s.End()
	}
	return b
}

// inlineBlock parses statements written on the current line,
// as after "then".
func (p *parser) inlineBlock() *Block {
	b := &Block{Inline: true}
	for {
		s := p.statement()
		if len(b.Statements) == 0 {
			b.Lo = s.Pos()
		}
		b.Statements = append(b.Statements, s)
		b.Hi = s.End()
		if p.at(SEMICOLON) && !isTerminator(p.peek(1)) {
			p.next()
			continue
		}
		return b
	}
}

// body parses the body of a construct whose header line is indented
// by indent: "then" and an inline block, or an indented block.
// It returns nil if there is no body.
func (p *parser) body(indent int) *Block {
	t := p.tok()
	if t.Kind == THEN {
		p.next()
		return p.inlineBlock()
	}
	if t.NewLine && t.Kind != EOF && p.indent[p.pos] > indent {
		return p.block(p.indent[p.pos])
	}
	return nil
}

// looseBody is like body but accepts an inline block without "then",
// as after else, try and finally.
func (p *parser) looseBody(indent int) *Block {
	t := p.tok()
	if t.Kind == THEN {
		p.next()
		return p.inlineBlock()
	}
	if t.NewLine || t.Kind == EOF {
		if t.Kind != EOF && p.indent[p.pos] > indent {
			return p.block(p.indent[p.pos])
		}
		return nil
	}
	if isTerminator(t) {
		return nil
	}
	return p.inlineBlock()
}

func emptyBlock(at int) *Block {
	return &Block{Span: Span{at, at}}
}

func (p *parser) statement() Node {
	save, saveDepth := p.stmtIndent, p.implicitDepth
	p.stmtIndent, p.implicitDepth = p.indent[p.pos], 0
	defer func() { p.stmtIndent, p.implicitDepth = save, saveDepth }()

	start := p.tok()
	var n Node
	switch start.Kind {
	case RETURN:
		p.next()
		var x Node
		if !isTerminator(p.tok()) {
			x = p.expression()
		}
		n = &Return{Span: Span{start.Start, p.prevEnd()}, Expression: x}
	case THROW:
		p.next()
		x := p.expression()
		n = &Throw{Span: Span{start.Start, p.prevEnd()}, Expression: x}
	case BREAK:
		p.next()
		n = &Break{Span{start.Start, start.End}}
	case CONTINUE:
		p.next()
		n = &Continue{Span{start.Start, start.End}}
	default:
		n = p.expression()
	}
	return p.postfix(n, start.Start)
}

// postfix applies trailing if/unless/while/until/for modifiers to n.
func (p *parser) postfix(n Node, lo int) Node {
	for {
		t := p.tok()
		if t.NewLine {
			return n
		}
		body := &Block{Span: Span{lo, p.prevEnd()}, Statements: []Node{n}, Inline: true}
		switch t.Kind {
		case IF, UNLESS:
			p.next()
			cond := p.expression()
			n = &Conditional{
				Span:       Span{lo, p.prevEnd()},
				Condition:  cond,
				Consequent: body,
				Unless:     t.Kind == UNLESS,
				Postfix:    true,
			}
		case WHILE, UNTIL:
			p.next()
			w := &While{Body: body, Until: t.Kind == UNTIL, Postfix: true}
			w.Condition = p.expression()
			if p.at(WHEN) {
				p.next()
				w.Guard = p.expression()
			}
			w.Span = Span{lo, p.prevEnd()}
			n = w
		case FOR:
			n = p.forLoop(lo, body)
		default:
			return n
		}
	}
}

func (p *parser) expression() Node {
	t := p.tok()
	if t.Kind == YIELD {
		p.next()
		if len(p.funcs) == 0 {
			p.errorf(t, "yield outside of a function")
		}
		p.funcs[len(p.funcs)-1].Generator = true
		var x Node
		if !isTerminator(p.tok()) {
			x = p.expression()
		}
		return &Yield{Span: Span{t.Start, p.prevEnd()}, Expression: x}
	}

	start := t.Start
	left := p.binary(0)
	t = p.tok()
	if t.NewLine {
		return left
	}
	switch t.Kind {
	case ASSIGN:
		p.checkAssignable(left)
		p.next()
		right := p.expression()
		return &AssignOp{Span: Span{start, p.prevEnd()}, Assignee: left, Expression: right}
	case COMPOUND_ASSIGN:
		p.checkAssignable(left)
		op := p.text(p.next())
		right := p.expression()
		return &CompoundAssignOp{Span: Span{start, p.prevEnd()}, Assignee: left, Expression: right, Op: op}
	case OR, AND:
		if p.peek(1).Kind == ASSIGN && !p.peek(1).Space {
			p.checkAssignable(left)
			op := "||="
			if t.Kind == AND {
				op = "&&="
			}
			p.next()
			p.next()
			right := p.expression()
			return &CompoundAssignOp{Span: Span{start, p.prevEnd()}, Assignee: left, Expression: right, Op: op}
		}
	}
	return left
}

// headerExpr parses an expression in the header of a block construct.
func (p *parser) headerExpr() Node {
	save := p.header
	p.header = true
	x := p.expression()
	p.header = save
	return x
}

func (p *parser) checkAssignable(n Node) {
	switch n.(type) {
	case *Identifier, *MemberAccessOp, *SoakedMemberAccessOp, *ProtoMemberAccessOp,
		*SoakedProtoMemberAccessOp, *DynamicMemberAccessOp, *SoakedDynamicMemberAccessOp,
		*ArrayInitialiser, *ObjectInitialiser:
		return
	}
	p.errorf(p.tok(), "invalid assignment target")
}

// binaryOp reports the binary operator at the current position:
// its canonical text, its precedence, whether it is negated with
// "not", and how many tokens it spans.
func (p *parser) binaryOp() (op string, prec int, negated bool, ntoks int) {
	t := p.tok()
	switch t.Kind {
	case EXISTENCE:
		if t.Space {
			return "?", 1, false, 1
		}
	case OR:
		if n := p.peek(1); n.Kind != ASSIGN || n.Space {
			return "||", 2, false, 1
		}
	case AND:
		if n := p.peek(1); n.Kind != ASSIGN || n.Space {
			return "&&", 3, false, 1
		}
	case IS:
		return "is", 7, false, 1
	case ISNT:
		return "isnt", 7, false, 1
	case IN:
		return "in", 8, false, 1
	case OF:
		return "of", 8, false, 1
	case INSTANCEOF:
		return "instanceof", 8, false, 1
	case NOT:
		switch p.peek(1).Kind {
		case IN:
			return "in", 8, true, 2
		case OF:
			return "of", 8, true, 2
		case INSTANCEOF:
			return "instanceof", 8, true, 2
		}
	case OPERATOR:
		op := p.text(t)
		switch op {
		case "||":
			return op, 2, false, 1
		case "&&":
			return op, 3, false, 1
		case "|":
			return op, 4, false, 1
		case "^":
			return op, 5, false, 1
		case "&":
			return op, 6, false, 1
		case "==", "!=", "<", ">", "<=", ">=":
			return op, 7, false, 1
		case "<<", ">>", ">>>":
			return op, 9, false, 1
		case "+", "-":
			return op, 10, false, 1
		case "*", "/", "%", "//", "%%":
			return op, 11, false, 1
		case "**":
			return op, 12, false, 1
		}
	}
	return "", -1, false, 0
}

func (p *parser) binary(minPrec int) Node {
	start := p.tok().Start
	left := p.unary()
	for {
		if p.tok().NewLine {
			return left
		}
		op, prec, negated, ntoks := p.binaryOp()
		if prec < 0 || prec < minPrec {
			return left
		}
		for i := 0; i < ntoks; i++ {
			p.next()
		}
		var right Node
		if op == "**" {
			right = p.binary(prec)
		} else {
			right = p.binary(prec + 1)
		}
		span := Span{start, p.prevEnd()}
		switch op {
		case "?":
			left = &ExistsOp{Span: span, Left: left, Right: right}
		case "||":
			left = &LogicalOrOp{Span: span, Left: left, Right: right}
		case "&&":
			left = &LogicalAndOp{Span: span, Left: left, Right: right}
		case "==", "!=", "is", "isnt":
			left = &EqualityOp{Span: span, Left: left, Right: right, Op: op}
		case "in":
			left = &InOp{Span: span, Left: left, Right: right, Negated: negated}
		case "of":
			left = &OfOp{Span: span, Left: left, Right: right, Negated: negated}
		case "instanceof":
			left = &InstanceofOp{Span: span, Left: left, Right: right, Negated: negated}
		case "//":
			left = &FloorDivideOp{Span: span, Left: left, Right: right}
		case "%%":
			left = &ModuloOp{Span: span, Left: left, Right: right}
		default:
			left = &BinaryOp{Span: span, Left: left, Right: right, Op: op}
		}
	}
}

func (p *parser) unary() Node {
	t := p.tok()
	start := t.Start
	switch t.Kind {
	case NOT:
		p.next()
		x := p.unary()
		return &LogicalNotOp{Span: Span{start, p.prevEnd()}, Expression: x}
	case TYPEOF, DELETE:
		p.next()
		x := p.unary()
		return &UnaryOp{Span: Span{start, p.prevEnd()}, Expression: x, Op: p.text(t)}
	case NEW:
		return p.newExpr()
	case DO:
		p.errorf(t, "do expressions are not supported")
	case OPERATOR:
		switch op := p.text(t); op {
		case "!":
			p.next()
			x := p.unary()
			return &LogicalNotOp{Span: Span{start, p.prevEnd()}, Expression: x}
		case "-", "+", "~":
			p.next()
			x := p.unary()
			return &UnaryOp{Span: Span{start, p.prevEnd()}, Expression: x, Op: op}
		case "++", "--":
			p.next()
			x := p.unary()
			return &UpdateOp{Span: Span{start, p.prevEnd()}, Expression: x, Op: op, Prefix: true}
		}
	}
	return p.chain(p.primary(), start, true)
}

func (p *parser) newExpr() Node {
	start := p.next().Start
	ctorStart := p.tok().Start
	ctor := p.primary()
	for {
		switch p.tok().Kind {
		case DOT, PROTO, INDEX_START:
			if p.tok().NewLine {
				break
			}
			ctor = p.access(ctor, ctorStart)
			continue
		}
		break
	}
	n := &NewOp{Ctor: ctor}
	if p.at(CALL_START) {
		n.Arguments = p.arguments()
	} else if p.implicitArgsFollow() {
		n.Arguments = p.implicitArgs()
		n.Implicit = true
	}
	n.Span = Span{start, p.prevEnd()}
	return p.chain(n, start, true)
}

// access parses one member access, index or slice applied to x.
func (p *parser) access(x Node, start int) Node {
	t := p.next()
	switch t.Kind {
	case DOT:
		id := p.memberName()
		return &MemberAccessOp{Span: Span{start, id.Hi}, Expression: x, Member: id}
	case SOAK_DOT:
		id := p.memberName()
		return &SoakedMemberAccessOp{Span: Span{start, id.Hi}, Expression: x, Member: id}
	case PROTO:
		id := p.memberName()
		return &ProtoMemberAccessOp{Span: Span{start, id.Hi}, Expression: x, Member: id}
	case SOAK_PROTO:
		id := p.memberName()
		return &SoakedProtoMemberAccessOp{Span: Span{start, id.Hi}, Expression: x, Member: id}
	case INDEX_START:
		return p.index(x, start, false)
	}
	panic("unreachable")
}

func (p *parser) memberName() *Identifier {
	t := p.tok()
	if t.Kind != IDENT || t.Space {
		p.errorf(t, "expected property name, found %s", p.describe(t))
	}
	p.next()
	return &Identifier{Span: Span{t.Start, t.End}, Name: p.text(t)}
}

// index parses the remainder of x[...] after the opening bracket.
func (p *parser) index(x Node, start int, soaked bool) Node {
	var left Node
	if !p.at(RANGE) && !p.at(ELLIPSIS) {
		left = p.expression()
	}
	if p.at(RANGE) || p.at(ELLIPSIS) {
		t := p.next()
		if soaked {
			p.errorf(t, "soaked slices are not supported")
		}
		var right Node
		if !p.at(INDEX_END) {
			right = p.expression()
		}
		p.expect(INDEX_END, "]")
		return &Slice{Span: Span{start, p.prevEnd()}, Expression: x, Left: left, Right: right, Inclusive: t.Kind == RANGE}
	}
	p.expect(INDEX_END, "]")
	if soaked {
		return &SoakedDynamicMemberAccessOp{Span: Span{start, p.prevEnd()}, Expression: x, Indexing: left}
	}
	return &DynamicMemberAccessOp{Span: Span{start, p.prevEnd()}, Expression: x, Indexing: left}
}

func isAccessor(k Kind) bool {
	switch k {
	case DOT, SOAK_DOT, PROTO, SOAK_PROTO:
		return true
	}
	return false
}

// chain parses the accesses, calls and postfix operators following x.
// An accessor starting a new line continues the outermost chain
// of the statement.
func (p *parser) chain(x Node, start int, implicit bool) Node {
	outer := p.implicitDepth == 0
	afterImplicit := false
	for {
		t := p.tok()
		if t.NewLine && !(outer && isAccessor(t.Kind) && p.indent[p.pos] >= p.stmtIndent) {
			if implicit && !afterImplicit && canCallImplicitly(x) && p.implicitArgsFollow() {
				x = p.implicitCall(x, start)
				afterImplicit = true
				continue
			}
			return x
		}
		if !t.NewLine && afterImplicit {
			return x
		}
		if t.NewLine {
			// An accessor on a new line continues the chain
			// after any implicit call.
			afterImplicit = false
		}
		switch t.Kind {
		case DOT, SOAK_DOT, PROTO, SOAK_PROTO, INDEX_START:
			x = p.access(x, start)
			continue
		case CALL_START:
			args := p.arguments()
			x = &FunctionApplication{Span: Span{start, p.prevEnd()}, Function: x, Arguments: args}
			continue
		case EXISTENCE:
			if t.Space {
				return x
			}
			switch p.peek(1).Kind {
			case CALL_START:
				p.next()
				args := p.arguments()
				x = &SoakedFunctionApplication{Span: Span{start, p.prevEnd()}, Function: x, Arguments: args}
				continue
			case INDEX_START:
				p.next()
				p.next()
				x = p.index(x, start, true)
				continue
			}
			p.next()
			return &UnaryExistsOp{Span: Span{start, t.End}, Expression: x}
		case OPERATOR:
			if op := p.text(t); (op == "++" || op == "--") && !t.Space {
				p.next()
				return &UpdateOp{Span: Span{start, t.End}, Expression: x, Op: op}
			}
		}
		if implicit && canCallImplicitly(x) && p.implicitArgsFollow() {
			x = p.implicitCall(x, start)
			afterImplicit = true
			continue
		}
		return x
	}
}

func (p *parser) implicitCall(fn Node, start int) Node {
	args := p.implicitArgs()
	return &FunctionApplication{Span: Span{start, p.prevEnd()}, Function: fn, Arguments: args, Implicit: true}
}

func canCallImplicitly(x Node) bool {
	switch x.(type) {
	case *Identifier, *MemberAccessOp, *SoakedMemberAccessOp, *ProtoMemberAccessOp,
		*SoakedProtoMemberAccessOp, *DynamicMemberAccessOp, *SoakedDynamicMemberAccessOp, *Super:
		return true
	}
	return false
}

// implicitArgsFollow reports whether the current token starts the
// arguments of a call written without parentheses.
func (p *parser) implicitArgsFollow() bool {
	t := p.tok()
	if t.NewLine {
		return !p.header && t.Kind != EOF && p.indent[p.pos] > p.stmtIndent && p.isObjectKey(p.pos)
	}
	if !t.Space {
		return false
	}
	switch t.Kind {
	case IDENT, NUMBER, STRING, STRING_START, REGEX, JS, AT, THIS, SUPER, NULL, UNDEFINED, BOOL,
		LBRACKET, LBRACE, LPAREN, ARROW, FATARROW, NEW, TYPEOF, DELETE, CLASS:
		return true
	case NOT:
		switch p.peek(1).Kind {
		case IN, OF, INSTANCEOF:
			return false
		}
		return true
	case OPERATOR:
		switch p.text(t) {
		case "!", "~":
			return true
		case "-", "+":
			return !p.peek(1).Space
		}
	}
	return false
}

func (p *parser) implicitArgs() []Node {
	p.implicitDepth++
	defer func() { p.implicitDepth-- }()
	if p.tok().NewLine {
		return []Node{p.implicitObject()}
	}
	var args []Node
	for {
		args = append(args, p.argument())
		if p.at(COMMA) && !p.tok().NewLine {
			p.next()
			continue
		}
		return args
	}
}

func (p *parser) arguments() []Node {
	p.expect(CALL_START, "(")
	var args []Node
	for !p.at(CALL_END) {
		args = append(args, p.argument())
		if p.at(COMMA) {
			p.next()
			continue
		}
		if p.at(CALL_END) {
			break
		}
		if !p.tok().NewLine {
			p.errorf(p.tok(), "expected , or ) in argument list, found %s", p.describe(p.tok()))
		}
	}
	p.next()
	return args
}

func (p *parser) argument() Node {
	start := p.tok().Start
	x := p.expression()
	if p.at(ELLIPSIS) && !p.tok().Space {
		p.next()
		return &Spread{Span: Span{start, p.prevEnd()}, Expression: x}
	}
	return x
}

// isObjectKey reports whether the token at index i starts a key: value pair.
func (p *parser) isObjectKey(i int) bool {
	at := func(j int) Token {
		if j < len(p.toks) {
			return p.toks[j]
		}
		return p.toks[len(p.toks)-1]
	}
	switch at(i).Kind {
	case IDENT:
		if at(i+1).Kind == COLON {
			return true
		}
		fallthrough
	case THIS:
		return p.classKeys && at(i+1).Kind == DOT && at(i+2).Kind == IDENT && !at(i+2).Space && at(i+3).Kind == COLON
	case STRING, NUMBER:
		return at(i+1).Kind == COLON
	case AT:
		return at(i+1).Kind == IDENT && !at(i+1).Space && at(i+2).Kind == COLON
	}
	return false
}

func (p *parser) primary() Node {
	t := p.tok()
	switch t.Kind {
	case IDENT, NUMBER, STRING, AT, THIS:
		if p.isObjectKey(p.pos) {
			return p.implicitObject()
		}
	}
	switch t.Kind {
	case IDENT:
		p.next()
		return &Identifier{Span: Span{t.Start, t.End}, Name: p.text(t)}
	case NUMBER:
		p.next()
		return &Number{Span: Span{t.Start, t.End}, Raw: p.text(t)}
	case STRING:
		p.next()
		return &String{Span: Span{t.Start, t.End}, Raw: p.text(t)}
	case STRING_START:
		return p.template()
	case REGEX:
		p.next()
		return &Regex{Span: Span{t.Start, t.End}, Raw: p.text(t)}
	case JS:
		p.next()
		raw := p.text(t)
		return &JavaScript{Span: Span{t.Start, t.End}, Code: raw[1 : len(raw)-1]}
	case BOOL:
		p.next()
		raw := p.text(t)
		return &Bool{Span: Span{t.Start, t.End}, Raw: raw, Value: raw == "true" || raw == "yes" || raw == "on"}
	case NULL:
		p.next()
		return &Null{Span{t.Start, t.End}}
	case UNDEFINED:
		p.next()
		return &Undefined{Span{t.Start, t.End}}
	case THIS:
		p.next()
		return &This{Span: Span{t.Start, t.End}}
	case AT:
		p.next()
		this := &This{Span: Span{t.Start, t.End}, Shorthand: true}
		if n := p.tok(); n.Kind == IDENT && !n.Space {
			id := p.memberName()
			return &MemberAccessOp{Span: Span{t.Start, id.Hi}, Expression: this, Member: id}
		}
		return this
	case SUPER:
		p.next()
		return &Super{Span{t.Start, t.End}}
	case LBRACKET:
		return p.array()
	case LBRACE:
		return p.object()
	case LPAREN:
		if p.isParams() {
			return p.function()
		}
		return p.paren()
	case ARROW, FATARROW:
		return p.function()
	case IF, UNLESS:
		return p.conditional()
	case WHILE, UNTIL, LOOP:
		return p.while()
	case FOR:
		return p.forLoop(-1, nil)
	case SWITCH:
		return p.switchExpr()
	case TRY:
		return p.try()
	case CLASS:
		return p.class()
	case THROW:
		p.next()
		x := p.expression()
		return &Throw{Span: Span{t.Start, p.prevEnd()}, Expression: x}
	}
	p.unexpected()
	return nil
}

func (p *parser) template() Node {
	start := p.next()
	tl := &TemplateLiteral{}
	for {
		t := p.tok()
		switch t.Kind {
		case STRING_CONTENT:
			p.next()
			tl.Quasis = append(tl.Quasis, Span{t.Start, t.End})
		case INTERP_START:
			p.next()
			if p.at(INTERP_END) {
				p.errorf(p.tok(), "empty interpolation")
			}
			tl.Expressions = append(tl.Expressions, p.expression())
			p.expect(INTERP_END, "}")
		case STRING_END:
			p.next()
			tl.Span = Span{start.Start, t.End}
			return tl
		default:
			p.unexpected()
		}
	}
}

func (p *parser) array() Node {
	start := p.next()
	a := &ArrayInitialiser{}
	if !p.at(RBRACKET) {
		first := p.element()
		if _, spread := first.(*Spread); !spread && (p.at(RANGE) || p.at(ELLIPSIS)) {
			t := p.next()
			right := p.expression()
			p.expect(RBRACKET, "]")
			return &Range{Span: Span{start.Start, p.prevEnd()}, Left: first, Right: right, Inclusive: t.Kind == RANGE}
		}
		a.Members = append(a.Members, first)
		for {
			if p.at(COMMA) {
				p.next()
			} else if !p.tok().NewLine {
				break
			}
			if p.at(RBRACKET) {
				break
			}
			a.Members = append(a.Members, p.element())
		}
	}
	p.expect(RBRACKET, "]")
	a.Span = Span{start.Start, p.prevEnd()}
	return a
}

func (p *parser) element() Node {
	start := p.tok().Start
	x := p.expression()
	if p.at(ELLIPSIS) && !p.tok().Space {
		switch n := p.peek(1); {
		case n.Kind == COMMA, n.Kind == RBRACKET, n.NewLine:
			p.next()
			return &Spread{Span: Span{start, p.prevEnd()}, Expression: x}
		}
	}
	return x
}

func (p *parser) objectKey() Node {
	t := p.tok()
	switch t.Kind {
	case IDENT, THIS:
		p.next()
		var x Node = &Identifier{Span: Span{t.Start, t.End}, Name: p.text(t)}
		if t.Kind == THIS {
			x = &This{Span: Span{t.Start, t.End}}
		}
		if !p.classKeys || !p.at(DOT) {
			if t.Kind == THIS {
				p.errorf(t, "expected object key, found %s", p.describe(t))
			}
			return x
		}
		p.next()
		id := p.memberName()
		return &MemberAccessOp{Span: Span{t.Start, id.Hi}, Expression: x, Member: id}
	case STRING:
		p.next()
		return &String{Span: Span{t.Start, t.End}, Raw: p.text(t)}
	case NUMBER:
		p.next()
		return &Number{Span: Span{t.Start, t.End}, Raw: p.text(t)}
	case AT:
		p.next()
		this := &This{Span: Span{t.Start, t.End}, Shorthand: true}
		id := p.memberName()
		return &MemberAccessOp{Span: Span{t.Start, id.Hi}, Expression: this, Member: id}
	}
	p.errorf(t, "expected object key, found %s", p.describe(t))
	return nil
}

func (p *parser) object() Node {
	start := p.next()
	o := &ObjectInitialiser{}
	for !p.at(RBRACE) {
		key := p.objectKey()
		m := &ObjectMember{Key: key}
		if p.at(COLON) {
			p.next()
			m.Expression = p.expression()
		} else if _, ok := key.(*Identifier); !ok {
			if _, ok := key.(*MemberAccessOp); !ok {
				p.errorf(p.tok(), "expected :, found %s", p.describe(p.tok()))
			}
		}
		m.Span = Span{key.Pos(), p.prevEnd()}
		o.Members = append(o.Members, m)
		if p.at(COMMA) {
			p.next()
			continue
		}
		if p.at(RBRACE) {
			break
		}
		if !p.tok().NewLine {
			p.errorf(p.tok(), "expected , or } in object, found %s", p.describe(p.tok()))
		}
	}
	p.next()
	o.Span = Span{start.Start, p.prevEnd()}
	return o
}

// implicitObject parses key: value pairs written without braces.
// Pairs continue after a comma, or on a following line whose key
// is aligned with the first key.
func (p *parser) implicitObject() Node {
	first := p.tok()
	o := &ObjectInitialiser{Implicit: true}
	for {
		key := p.objectKey()
		p.expect(COLON, ":")
		value := p.expression()
		o.Members = append(o.Members, &ObjectMember{Span: Span{key.Pos(), p.prevEnd()}, Key: key, Expression: value})
		if p.at(COMMA) && p.isObjectKey(p.pos+1) {
			p.next()
			continue
		}
		if t := p.tok(); t.NewLine && t.Col == first.Col && p.isObjectKey(p.pos) {
			continue
		}
		break
	}
	o.Span = Span{first.Start, p.prevEnd()}
	return o
}

func (p *parser) paren() Node {
	p.next()
	if p.at(RPAREN) {
		p.errorf(p.tok(), "empty parentheses")
	}
	x := p.statement()
	for p.at(SEMICOLON) {
		p.next()
		y := p.statement()
		x = &SeqOp{Span: Span{x.Pos(), y.End()}, Left: x, Right: y}
	}
	p.expect(RPAREN, ")")
	return x
}

// isParams reports whether the parenthesis at the current position
// opens a function parameter list.
func (p *parser) isParams() bool {
	depth := 0
	for i := p.pos; i < len(p.toks); i++ {
		switch k := p.toks[i].Kind; {
		case k == LPAREN || k == CALL_START || k == LBRACKET || k == INDEX_START || k == LBRACE || k == INTERP_START:
			depth++
		case isCloser(k):
			depth--
			if depth == 0 {
				n := p.toks[i+1].Kind
				return n == ARROW || n == FATARROW
			}
		case k == EOF:
			return false
		}
	}
	return false
}

func (p *parser) function() Node {
	start := p.tok()
	indent := p.indent[p.pos]
	f := &Function{}
	save := p.header
	p.header = false
	defer func() { p.header = save }()
	if p.at(LPAREN) {
		p.next()
		for !p.at(RPAREN) {
			f.Params = append(f.Params, p.param())
			if p.at(COMMA) {
				p.next()
			} else if !p.at(RPAREN) {
				p.errorf(p.tok(), "expected , or ) in parameter list, found %s", p.describe(p.tok()))
			}
		}
		p.next()
	}
	arrow := p.next()
	f.Bound = arrow.Kind == FATARROW
	p.funcs = append(p.funcs, f)
	classKeys := p.classKeys
	p.classKeys = false
	f.Body = p.funcBody(indent)
	p.classKeys = classKeys
	p.funcs = p.funcs[:len(p.funcs)-1]
	f.Span = Span{start.Start, p.prevEnd()}
	return f
}

func (p *parser) funcBody(indent int) *Block {
	t := p.tok()
	if t.Kind == EOF {
		return nil
	}
	if t.NewLine {
		if p.indent[p.pos] > indent {
			return p.block(p.indent[p.pos])
		}
		return nil
	}
	if isCloser(t.Kind) || endsBlock(t.Kind) || t.Kind == COMMA || t.Kind == SEMICOLON {
		return nil
	}
	s := p.statement()
	return &Block{Span: Span{s.Pos(), s.End()}, Statements: []Node{s}, Inline: true}
}

func (p *parser) param() Node {
	start := p.tok()
	var x Node
	switch start.Kind {
	case IDENT:
		p.next()
		x = &Identifier{Span: Span{start.Start, start.End}, Name: p.text(start)}
	case AT:
		p.next()
		this := &This{Span: Span{start.Start, start.End}, Shorthand: true}
		id := p.memberName()
		x = &MemberAccessOp{Span: Span{start.Start, id.Hi}, Expression: this, Member: id}
	case LBRACKET:
		x = p.array()
	case LBRACE:
		x = p.object()
	default:
		p.errorf(start, "invalid parameter %s", p.describe(start))
	}
	switch {
	case p.at(ELLIPSIS):
		p.next()
		return &Spread{Span: Span{start.Start, p.prevEnd()}, Expression: x}
	case p.at(ASSIGN):
		p.next()
		d := p.expression()
		return &DefaultParam{Span: Span{start.Start, p.prevEnd()}, Param: x, Default: d}
	}
	return x
}

// assignee parses a loop variable or catch binding.
func (p *parser) assignee() Node {
	t := p.tok()
	switch t.Kind {
	case IDENT:
		p.next()
		return &Identifier{Span: Span{t.Start, t.End}, Name: p.text(t)}
	case AT:
		p.next()
		this := &This{Span: Span{t.Start, t.End}, Shorthand: true}
		id := p.memberName()
		return &MemberAccessOp{Span: Span{t.Start, id.Hi}, Expression: this, Member: id}
	case LBRACKET:
		return p.array()
	case LBRACE:
		return p.object()
	}
	p.errorf(t, "expected variable, found %s", p.describe(t))
	return nil
}

func (p *parser) conditional() Node {
	t := p.next()
	indent := p.indent[p.pos-1]
	c := &Conditional{Unless: t.Kind == UNLESS}
	c.Condition = p.headerExpr()
	c.Consequent = p.body(indent)
	if c.Consequent == nil {
		c.Consequent = emptyBlock(p.prevEnd())
	}
	if p.at(ELSE) && (!p.tok().NewLine || p.indent[p.pos] == indent) {
		p.next()
		if (p.at(IF) || p.at(UNLESS)) && !p.tok().NewLine {
			c.Alternate = p.conditional()
		} else if b := p.looseBody(indent); b != nil {
			c.Alternate = b
		} else {
			c.Alternate = emptyBlock(p.prevEnd())
		}
	}
	c.Span = Span{t.Start, p.prevEnd()}
	return c
}

func (p *parser) while() Node {
	t := p.next()
	indent := p.indent[p.pos-1]
	w := &While{Until: t.Kind == UNTIL, Loop: t.Kind == LOOP}
	if !w.Loop {
		w.Condition = p.headerExpr()
		if p.at(WHEN) {
			p.next()
			w.Guard = p.headerExpr()
		}
		w.Body = p.body(indent)
	} else {
		w.Body = p.looseBody(indent)
	}
	if w.Body == nil {
		w.Body = emptyBlock(p.prevEnd())
	}
	w.Span = Span{t.Start, p.prevEnd()}
	return w
}

// forLoop parses a for loop. For the postfix form, lo is the start
// of the statement and body is the statement itself.
func (p *parser) forLoop(lo int, body *Block) Node {
	t := p.next()
	indent := p.indent[p.pos-1]
	if body == nil {
		lo = t.Start
	}
	own := false
	if p.at(OWN) {
		p.next()
		own = true
	}
	first := p.assignee()
	var second Node
	if p.at(COMMA) {
		p.next()
		second = p.assignee()
	}
	var n Node
	switch {
	case p.at(IN):
		if own {
			p.errorf(p.tok(), "own is only allowed in for ... of loops")
		}
		p.next()
		f := &ForIn{ValAssignee: first, KeyAssignee: second, Postfix: body != nil}
		f.Target = p.headerExpr()
		for {
			if p.at(BY) && f.Step == nil {
				p.next()
				f.Step = p.headerExpr()
				continue
			}
			if p.at(WHEN) && f.Filter == nil {
				p.next()
				f.Filter = p.headerExpr()
				continue
			}
			break
		}
		f.Body = p.loopBody(indent, body)
		f.Span = Span{lo, p.prevEnd()}
		n = f
	case p.at(OF):
		p.next()
		f := &ForOf{KeyAssignee: first, ValAssignee: second, Own: own, Postfix: body != nil}
		f.Target = p.headerExpr()
		if p.at(WHEN) {
			p.next()
			f.Filter = p.headerExpr()
		}
		f.Body = p.loopBody(indent, body)
		f.Span = Span{lo, p.prevEnd()}
		n = f
	default:
		p.errorf(p.tok(), "expected in or of, found %s", p.describe(p.tok()))
	}
	return n
}

func (p *parser) loopBody(indent int, body *Block) *Block {
	if body != nil {
		return body
	}
	if b := p.body(indent); b != nil {
		return b
	}
	return emptyBlock(p.prevEnd())
}

func (p *parser) switchExpr() Node {
	t := p.next()
	indent := p.indent[p.pos-1]
	s := &Switch{}
	if !isTerminator(p.tok()) {
		s.Expression = p.headerExpr()
	}
	if !p.tok().NewLine || p.at(EOF) || p.indent[p.pos] <= indent {
		p.errorf(p.tok(), "expected indented when clauses, found %s", p.describe(p.tok()))
	}
	caseIndent := p.indent[p.pos]
	for p.at(WHEN) && p.tok().NewLine && p.indent[p.pos] == caseIndent {
		w := p.next()
		c := &SwitchCase{}
		for {
			c.Conditions = append(c.Conditions, p.headerExpr())
			if p.at(COMMA) {
				p.next()
				continue
			}
			break
		}
		c.Consequent = p.body(caseIndent)
		if c.Consequent == nil {
			p.errorf(p.tok(), "expected body of when clause, found %s", p.describe(p.tok()))
		}
		c.Span = Span{w.Start, p.prevEnd()}
		s.Cases = append(s.Cases, c)
	}
	if len(s.Cases) == 0 {
		p.errorf(p.tok(), "expected when, found %s", p.describe(p.tok()))
	}
	if p.at(ELSE) && p.tok().NewLine && p.indent[p.pos] == caseIndent {
		p.next()
		s.Alternate = p.looseBody(caseIndent)
		if s.Alternate == nil {
			s.Alternate = emptyBlock(p.prevEnd())
		}
	}
	s.Span = Span{t.Start, p.prevEnd()}
	return s
}

func (p *parser) try() Node {
	t := p.next()
	indent := p.indent[p.pos-1]
	tr := &Try{}
	tr.Body = p.looseBody(indent)
	if tr.Body == nil {
		tr.Body = emptyBlock(p.prevEnd())
	}
	if p.at(CATCH) && (!p.tok().NewLine || p.indent[p.pos] == indent) {
		p.next()
		tr.HasCatch = true
		if !isTerminator(p.tok()) {
			tr.CatchAssignee = p.assignee()
		}
		tr.CatchBody = p.body(indent)
	}
	if p.at(FINALLY) && (!p.tok().NewLine || p.indent[p.pos] == indent) {
		p.next()
		tr.HasFinally = true
		tr.FinallyBody = p.looseBody(indent)
		if tr.FinallyBody == nil {
			tr.FinallyBody = emptyBlock(p.prevEnd())
		}
	}
	tr.Span = Span{t.Start, p.prevEnd()}
	return tr
}

func (p *parser) class() Node {
	t := p.next()
	indent := p.indent[p.pos-1]
	c := &Class{}
	if p.at(IDENT) && !p.tok().NewLine {
		start := p.tok().Start
		var name Node = p.primary()
		for p.at(DOT) && !p.tok().NewLine {
			name = p.access(name, start)
		}
		c.NameAssignee = name
	}
	if p.at(EXTENDS) {
		p.next()
		start := p.tok().Start
		c.Parent = p.chain(p.primary(), start, false)
	}
	if t := p.tok(); t.NewLine && t.Kind != EOF && p.indent[p.pos] > indent {
		classKeys := p.classKeys
		p.classKeys = true
		c.Body = p.classBody(p.block(p.indent[p.pos]))
		p.classKeys = classKeys
	}
	c.Span = Span{t.Start, p.prevEnd()}
	return c
}

// classBody splits the implicit objects of a class body into members.
func (p *parser) classBody(b *Block) *Block {
	var stmts []Node
	for _, s := range b.Statements {
		o, ok := s.(*ObjectInitialiser)
		if !ok || !o.Implicit {
			stmts = append(stmts, s)
			continue
		}
		for _, m := range o.Members {
			m := m.(*ObjectMember)
			if id, ok := m.Key.(*Identifier); ok && id.Name == "constructor" {
				stmts = append(stmts, &Constructor{Span: m.Span, Assignee: m.Key, Expression: m.Expression})
				continue
			}
			stmts = append(stmts, &ClassProtoAssignOp{Span: m.Span, Assignee: m.Key, Expression: m.Expression})
		}
	}
	b.Statements = stmts
	return b
}
