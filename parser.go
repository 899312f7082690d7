package evreactor

import (
	"strconv"
	"strings"

	"github.com/evreactor/evreactor/internal/codetable"
)

// Parse reads configuration text in the binding DSL described in the
// package doc and returns the parsed bindings. Parsing is all-or-nothing:
// a single malformed binding anywhere in src discards the whole result, so
// the caller never has to unwind a partial config.
func Parse(src string) ([]*Binding, error) {
	p := &parser{src: src, line: 1, col: 1}
	p.whitespace()

	var bindings []*Binding
	for p.peek() != 0 {
		b, err := p.binding()
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, p.errHere(ErrExpectedBinding)
		}
		bindings = append(bindings, b)
	}

	if len(bindings) == 0 {
		return nil, ErrNoBindings
	}
	return bindings, nil
}

// parser is a hand-rolled recursive-descent reader over the DSL grammar,
// grounded directly on the reference implementation's parser.c. Every
// production takes a snapshot of the cursor on entry and restores it before
// any "this alternative doesn't apply, try the next one" return (nil, nil);
// a (nil, error) return is unconditionally terminal - the whole Parse call
// fails, so there is nothing left to restore for.
type parser struct {
	src  string
	pos  int
	line int
	col  int
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekN(n int) string {
	end := p.pos + n
	if end > len(p.src) {
		end = len(p.src)
	}
	return p.src[p.pos:end]
}

func (p *parser) advance() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	c := p.src[p.pos]
	p.pos++
	if c == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	return c
}

func (p *parser) errAt(at *parser, err error) *ParseError {
	return &ParseError{Line: at.line, Column: at.col, Err: err}
}

func (p *parser) errHere(err error) *ParseError {
	return &ParseError{Line: p.line, Column: p.col, Err: err}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isNameChar(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// isValueChar is deliberately permissive - it gathers a maximal token for
// strconv.ParseInt (base 0) to validate, the same division of labor the
// reference parser gets from strtoul's own prefix handling.
func isValueChar(b byte) bool {
	return isDigit(b) ||
		b == 'x' || b == 'X' ||
		(b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// comment consumes a "#" line comment through (and including) its trailing
// newline, if one is present at the cursor.
func (p *parser) comment() bool {
	if p.peek() != '#' {
		return false
	}
	for p.peek() != 0 && p.peek() != '\n' {
		p.advance()
	}
	if p.peek() != 0 {
		p.advance()
	}
	return true
}

// whitespace elides runs of space and "#" comments, in any interleaving -
// including immediately after a token like "<=", which is how a
// comment-only line right after a binding's arrow ends up silently skipped
// in favor of the next line's text as the command (spec: this is the
// documented behavior, not something to special-case away).
func (p *parser) whitespace() {
	for {
		for isSpace(p.peek()) {
			p.advance()
		}
		if !p.comment() {
			break
		}
	}
}

// consumeChar consumes ch if present, eliding trailing whitespace/comments,
// and reports whether it matched.
func (p *parser) consumeChar(ch byte) bool {
	if p.peek() != ch {
		return false
	}
	p.advance()
	p.whitespace()
	return true
}

// duration parses an optional "[" UINT ("s"|"ms")? "]" qualifier. A bare
// number with no unit is milliseconds. A "[" not followed by a well-formed
// qualifier is a hard parse error (the reference implementation instead
// silently backtracks and lets the dangling "[" fail some later production
// - functionally equivalent, since both reject the input, but this reports
// the actual cause instead of a generic downstream mismatch).
func (p *parser) duration() (int64, error) {
	save := *p
	if !p.consumeChar('[') {
		return 0, nil
	}

	start := p.pos
	for isDigit(p.peek()) {
		p.advance()
	}
	numStr := p.src[start:p.pos]
	if numStr == "" {
		return 0, p.errAt(&save, ErrMalformedDuration)
	}
	dur, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return 0, p.errAt(&save, ErrMalformedDuration)
	}

	switch {
	case p.peek() == 's':
		dur *= 1000
		p.advance()
	case p.peekN(2) == "ms":
		p.advance()
		p.advance()
	}

	if !p.consumeChar(']') {
		return 0, p.errAt(&save, ErrMalformedDuration)
	}
	return dur, nil
}

// exprGroup matches "(" expr ")".
func (p *parser) exprGroup() (*Expr, error) {
	save := *p
	if !p.consumeChar('(') {
		return nil, nil
	}
	e, err := p.exprAny()
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, p.errAt(&save, ErrEmptyExpression)
	}
	if !p.consumeChar(')') {
		return nil, p.errAt(&save, ErrUnterminatedGroup)
	}
	return e, nil
}

// comparator parses an optional two-letter comparator code immediately
// after ":", defaulting to eq when none of the six codes match (the
// reference implementation's behavior for any other trailing text).
func (p *parser) comparator() Comparator {
	switch p.peekN(2) {
	case "eq":
		p.advance()
		p.advance()
		return CmpEQ
	case "ne":
		p.advance()
		p.advance()
		return CmpNE
	case "lt":
		p.advance()
		p.advance()
		return CmpLT
	case "gt":
		p.advance()
		p.advance()
		return CmpGT
	case "le":
		p.advance()
		p.advance()
		return CmpLE
	case "ge":
		p.advance()
		p.advance()
		return CmpGE
	default:
		return CmpEQ
	}
}

// exprEvent matches a bare NAME, optionally followed by ":cmp VALUE", e.g.
// "KEY_A" (sugar for "KEY_A:eq 1") or "ABS_X:ge 200".
func (p *parser) exprEvent() (*Expr, error) {
	save := *p

	start := p.pos
	for isNameChar(p.peek()) {
		p.advance()
	}
	name := p.src[start:p.pos]
	if name == "" {
		*p = save
		return nil, nil
	}

	evType, code, ok := codetable.Lookup(name)
	if !ok {
		return nil, p.errAt(&save, ErrUnknownEventName)
	}
	p.whitespace()

	var cmp Comparator
	var value int64
	if p.consumeChar(':') {
		cmp = p.comparator()

		// strtoul (and thus the reference parser) skips leading whitespace
		// before the numeral itself - "eq 200" and "eq200" are equivalent.
		for isSpace(p.peek()) {
			p.advance()
		}

		numStart := p.pos
		for isValueChar(p.peek()) {
			p.advance()
		}
		numStr := p.src[numStart:p.pos]
		if numStr == "" {
			return nil, p.errHere(ErrMalformedValue)
		}
		v, err := strconv.ParseInt(numStr, 0, 64)
		if err != nil {
			return nil, p.errAt(&save, ErrMalformedValue)
		}
		value = v
		p.whitespace()
	} else {
		cmp = CmpEQ
		value = 1
	}

	return NewPrimary(NewTypecode(evType, code), cmp, int32(value)), nil
}

// exprPostfix matches a group or event atom, optionally wrapped in a
// duration qualifier.
func (p *parser) exprPostfix() (*Expr, error) {
	e, err := p.exprGroup()
	if err != nil {
		return nil, err
	}
	if e == nil {
		e, err = p.exprEvent()
		if err != nil {
			return nil, err
		}
	}
	if e == nil {
		return nil, nil
	}

	dur, err := p.duration()
	if err != nil {
		return nil, err
	}
	if dur != 0 {
		e = NewDur(dur, e)
	}
	return e, nil
}

// exprNot matches "!" primary.
func (p *parser) exprNot() (*Expr, error) {
	save := *p
	if !p.consumeChar('!') {
		return nil, nil
	}
	child, err := p.exprPrimary()
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, p.errAt(&save, ErrEmptyExpression)
	}
	return NewNot(child), nil
}

// exprPrimary matches a negation or a postfix atom - the tightest-binding
// level of the grammar.
func (p *parser) exprPrimary() (*Expr, error) {
	e, err := p.exprNot()
	if err != nil {
		return nil, err
	}
	if e != nil {
		return e, nil
	}
	return p.exprPostfix()
}

// seq implements left-associative "term (CH term)*" folding for the three
// binary operator levels, sharing one implementation across and/xor/or the
// same way the reference parser's psr_seq does. A dangling operator with
// no following term (e.g. "KEY_A &") is a hard parse error; the reference
// C loops on this input forever because it never advances its saved cursor
// on a failed right-hand side; this only fails to parse.
func (p *parser) seq(ch byte, mk func(l, r *Expr) *Expr, term func() (*Expr, error)) (*Expr, error) {
	left, err := term()
	if err != nil {
		return nil, err
	}
	if left == nil {
		return nil, nil
	}

	for {
		save := *p
		if !p.consumeChar(ch) {
			break
		}
		right, err := term()
		if err != nil {
			return nil, err
		}
		if right == nil {
			return nil, p.errAt(&save, ErrEmptyExpression)
		}
		left = mk(left, right)
	}
	return left, nil
}

func (p *parser) exprAnd() (*Expr, error) { return p.seq('&', NewAnd, p.exprPrimary) }
func (p *parser) exprXor() (*Expr, error) { return p.seq('^', NewXor, p.exprAnd) }
func (p *parser) exprOr() (*Expr, error)  { return p.seq('|', NewOr, p.exprXor) }
func (p *parser) exprAny() (*Expr, error) { return p.exprOr() }

// binding matches "expr <= COMMAND\n", where COMMAND is every byte up to
// (not including) the next newline or end of input.
func (p *parser) binding() (*Binding, error) {
	e, err := p.exprAny()
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}

	if p.peekN(2) != "<=" {
		return nil, p.errHere(ErrMissingArrow)
	}
	p.advance()
	p.advance()
	p.whitespace()

	start := p.pos
	for p.peek() != 0 && p.peek() != '\n' {
		p.advance()
	}
	cmd := p.src[start:p.pos]
	if p.peek() != 0 {
		p.advance()
	}
	p.whitespace()

	return &Binding{Expr: e, Command: strings.TrimSuffix(cmd, "\r")}, nil
}
