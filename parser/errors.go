package parser

import (
	"fmt"

	"github.com/urwithajit9/nginx-discovery/token"
)

// Error is a parse failure. The parser reports only the first
// syntactic error it encounters and does not attempt recovery.
type Error struct {
	// Kind-specific fields; exactly one group is populated depending
	// on which constructor built this Error, except for a wrapped lexer
	// failure, which sets only Cause and Position.
	UnexpectedToken bool
	Got             string
	Expected        string

	UnterminatedBlock bool
	OpenedAt          token.Position

	EmptyDirective bool

	NestingTooDeep bool
	Limit          int

	Position token.Position
	Cause    error // wraps a *lexer.Error when lexing failed mid-parse
}

func (e *Error) Error() string {
	switch {
	case e.UnterminatedBlock:
		return fmt.Sprintf("unterminated block opened at %s: reached end of input before matching '}'", e.OpenedAt)
	case e.EmptyDirective:
		return fmt.Sprintf("empty directive at %s", e.Position)
	case e.NestingTooDeep:
		return fmt.Sprintf("block nesting exceeds configured maximum of %d at %s", e.Limit, e.Position)
	case e.UnexpectedToken:
		return fmt.Sprintf("unexpected token %s at %s, expected %s", e.Got, e.Position, e.Expected)
	case e.Cause != nil:
		return fmt.Sprintf("%v", e.Cause)
	default:
		return fmt.Sprintf("parse error at %s", e.Position)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

func errUnexpectedToken(pos token.Position, got, expected string) *Error {
	return &Error{UnexpectedToken: true, Got: got, Expected: expected, Position: pos}
}

func errUnterminatedBlock(openedAt token.Position) *Error {
	return &Error{UnterminatedBlock: true, OpenedAt: openedAt, Position: openedAt}
}

func errEmptyDirective(pos token.Position) *Error {
	return &Error{EmptyDirective: true, Position: pos}
}

func errNestingTooDeep(pos token.Position, limit int) *Error {
	return &Error{NestingTooDeep: true, Limit: limit, Position: pos}
}

func errFromLex(cause error, pos token.Position) *Error {
	return &Error{Cause: cause, Position: pos}
}
