package evreactor

import (
	"errors"
	"fmt"
)

// Standard errors returned by this package. Use [errors.Is] to test for
// them; parse failures are additionally wrapped with position information
// via [ParseError].
var (
	// ErrUnknownEventName is returned when the parser encounters a NAME
	// token that isn't present in the code table.
	ErrUnknownEventName = errors.New("evreactor: unknown event name")

	// ErrUnterminatedGroup is returned for a "(" without a matching ")".
	ErrUnterminatedGroup = errors.New("evreactor: unterminated group")

	// ErrMissingArrow is returned when a binding's expression isn't
	// followed by "<=".
	ErrMissingArrow = errors.New("evreactor: missing '<=' after expression")

	// ErrEmptyExpression is returned when an expression is expected but
	// none is found (e.g. "!" with nothing after it, or "()" ).
	ErrEmptyExpression = errors.New("evreactor: expected expression")

	// ErrMalformedDuration is returned for a "[" qualifier that doesn't
	// parse as UINT ("s"|"ms")? "]".
	ErrMalformedDuration = errors.New("evreactor: malformed duration qualifier")

	// ErrNoBindings is returned by [Parse] when the configuration text
	// contains no bindings at all (not itself a failure, but callers that
	// require at least one binding can check for it).
	ErrNoBindings = errors.New("evreactor: no bindings")

	// ErrExpectedBinding is returned when the parser is positioned at
	// trailing, non-whitespace text that doesn't begin a valid binding.
	ErrExpectedBinding = errors.New("evreactor: expected binding")

	// ErrMalformedValue is returned for a ":cmp" comparator qualifier not
	// followed by a parseable integer literal.
	ErrMalformedValue = errors.New("evreactor: malformed comparison value")
)

// ParseError reports a parse failure at a specific line and column of the
// configuration text. Parsing is all-or-nothing at the file level: a single
// ParseError anywhere discards the whole parse (spec: "Parse failure...
// yields no bindings").
type ParseError struct {
	Line, Column int
	Err          error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("evreactor: %d:%d: %v", e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InitError is returned by [NewContext] when a binding's expression tree
// cannot be resolved into a valid Context. The reference implementation
// this package is modeled on can fail here only on allocation failure (which
// Go's runtime reports as a panic, not an error). Here NewContext returns
// InitError for a binding whose Expr is nil; nil children deeper inside a
// hand-built tree are not checked.
type InitError struct {
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("evreactor: init: %v", e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
