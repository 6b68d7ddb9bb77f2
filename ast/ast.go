// Package ast defines the syntax tree the parser produces: a Config
// made of Directives, each optionally holding a nested Block of
// further Directives. The tree is not a CST — comments and whitespace
// are not retained here, and it is never round-tripped back to source
// text byte-exact.
package ast

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urwithajit9/nginx-discovery/token"
)

// Config is the root of a parsed configuration.
type Config struct {
	Directives []*Directive
}

// Directive is a named configuration statement with zero or more
// arguments, optionally introducing a Block. Block is non-nil if and
// only if the directive was introduced by a "{ ... }" pair in source.
type Directive struct {
	Name     string
	Args     []Argument
	Block    *Block
	Position token.Position
}

// Block is a "{ ... }"-delimited sequence of directives.
type Block struct {
	Directives []*Directive
}

// ArgKind tags the surface form an Argument was written in.
type ArgKind int

const (
	// Bareword is an unquoted identifier-shaped argument.
	Bareword ArgKind = iota
	// Quoted is a '"'- or '\''-delimited string argument.
	Quoted
	// Var is a $name or ${name} argument.
	Var
	// Num is an integer or integer-with-unit argument.
	Num
)

// Argument is one positional value in a Directive's argument list. Its
// surface kind is preserved; consumers may lowercase or coerce values
// as their own logic requires.
type Argument struct {
	Kind  ArgKind
	Value string
	Quote token.QuoteKind // only meaningful when Kind == Quoted
}

// String returns the argument's bare text value, regardless of kind.
func (a Argument) String() string { return a.Value }

// AsBytes parses a Num argument written with an NGINX size suffix
// (10m, 1g, 512k, or a bare byte count) into a byte count, using the
// same unit table as client_max_body_size and similar directives. It
// returns an error for any argument that isn't shaped like a size.
func (a Argument) AsBytes() (uint64, error) {
	v := a.Value
	// humanize reads a bare k/m/g suffix as a power of 1000; NGINX sizes
	// are powers of 1024, which humanize spells ki/mi/gi.
	if n := len(v); n > 0 && (v[n-1] < '0' || v[n-1] > '9') {
		v += "i"
	}
	return humanize.ParseBytes(v)
}

// AsInt parses a Num argument as a plain integer, ignoring any trailing
// unit letter. It returns an error if the argument isn't a Num or has
// no leading digits.
func (a Argument) AsInt() (int64, error) {
	if a.Kind != Num {
		return 0, strconv.ErrSyntax
	}
	digits := strings.TrimRightFunc(a.Value, func(r rune) bool {
		return r < '0' || r > '9'
	})
	if digits == "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(digits, 10, 64)
}

// fromToken converts a lexed Token into the Argument it represents.
// The caller is responsible for only calling this on argument-shaped
// token kinds (Identifier, QuotedString, Variable, Number).
func fromToken(t token.Token) Argument {
	switch t.Kind {
	case token.QuotedString:
		return Argument{Kind: Quoted, Value: t.Text, Quote: t.Quote}
	case token.Variable:
		return Argument{Kind: Var, Value: t.Text}
	case token.Number:
		return Argument{Kind: Num, Value: t.Text}
	default:
		return Argument{Kind: Bareword, Value: t.Text}
	}
}

// FromToken is the exported form of fromToken, used by the parser
// package to build Arguments from the token stream.
func FromToken(t token.Token) Argument { return fromToken(t) }
