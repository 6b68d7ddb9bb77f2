// Package parser turns a lexed token stream into an ast.Config: a
// recursive-descent parser with a single token of lookahead, no error
// recovery, and a configurable maximum block-nesting depth.
package parser

import (
	"github.com/urwithajit9/nginx-discovery/ast"
	"github.com/urwithajit9/nginx-discovery/lexer"
	"github.com/urwithajit9/nginx-discovery/token"
)

// DefaultMaxNestingDepth is the nesting guard applied when no
// Option overrides it.
const DefaultMaxNestingDepth = 100

// Option configures a parse call.
type Option func(*config)

type config struct {
	maxNestingDepth int
}

func defaultConfig() config {
	return config{maxNestingDepth: DefaultMaxNestingDepth}
}

// WithMaxNestingDepth overrides the default maximum block-nesting
// depth (100). Exceeding it fails with a NestingTooDeep error rather
// than recursing without bound.
func WithMaxNestingDepth(n int) Option {
	return func(c *config) { c.maxNestingDepth = n }
}

type parser struct {
	tokens []token.Token
	pos    int
	cfg    config
}

func newParser(tokens []token.Token, opts ...Option) *parser {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Comments are transparent to the grammar: they never appear
	// between a directive's name and its arguments, so we drop them
	// once, up front, rather than threading skip-logic through every
	// call site.
	filtered := make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind != token.Comment {
			filtered = append(filtered, t)
		}
	}
	return &parser{tokens: filtered, cfg: cfg}
}

func (p *parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EndOfInput}
	}
	return p.tokens[p.pos]
}

func (p *parser) advance() { p.pos++ }

func describe(t token.Token) string {
	if t.Kind == token.EndOfInput {
		return "end of input"
	}
	return t.Kind.String() + " '" + t.Text + "'"
}

// Parse lexes and parses src with no originating file path.
func Parse(src []byte, opts ...Option) (*ast.Config, error) {
	return ParseWithSource(src, "", opts...)
}

// ParseWithSource lexes and parses src, attaching file to every
// reported position. Lexer failures are surfaced as a ParseError
// wrapping the originating *lexer.Error.
func ParseWithSource(src []byte, file string, opts ...Option) (*ast.Config, error) {
	tokens, err := lexer.Tokenize(src, file)
	if err != nil {
		pos := token.Position{File: file}
		if lexErr, ok := err.(*lexer.Error); ok {
			pos = lexErr.Position
		}
		return nil, errFromLex(err, pos)
	}
	p := newParser(tokens, opts...)
	return p.parseConfig()
}

func (p *parser) parseConfig() (*ast.Config, error) {
	var directives []*ast.Directive
	for p.cur().Kind != token.EndOfInput {
		if p.cur().Kind == token.CloseBrace {
			return nil, errUnexpectedToken(p.cur().Position, describe(p.cur()), "a directive or end of input")
		}
		d, err := p.parseDirective(0)
		if err != nil {
			return nil, err
		}
		directives = append(directives, d)
	}
	return &ast.Config{Directives: directives}, nil
}

// parseDirective parses one "name arg* (';' | block)" production. depth
// is the nesting level this directive itself lives at (0 at the top).
func (p *parser) parseDirective(depth int) (*ast.Directive, error) {
	if p.cur().Kind == token.Semicolon {
		pos := p.cur().Position
		return nil, errEmptyDirective(pos)
	}
	if p.cur().Kind != token.Identifier {
		return nil, errUnexpectedToken(p.cur().Position, describe(p.cur()), "a directive name")
	}

	name := p.cur().Text
	pos := p.cur().Position
	p.advance()

	var args []ast.Argument
	for {
		switch p.cur().Kind {
		case token.Semicolon:
			p.advance()
			return &ast.Directive{Name: name, Args: args, Position: pos}, nil
		case token.OpenBrace:
			openedAt := p.cur().Position
			if depth+1 > p.cfg.maxNestingDepth {
				return nil, errNestingTooDeep(openedAt, p.cfg.maxNestingDepth)
			}
			p.advance()
			block, err := p.parseBlockBody(openedAt, depth+1)
			if err != nil {
				return nil, err
			}
			return &ast.Directive{Name: name, Args: args, Block: block, Position: pos}, nil
		case token.CloseBrace:
			return nil, errUnexpectedToken(p.cur().Position, describe(p.cur()), "';' or '{' after directive arguments")
		case token.EndOfInput:
			return nil, errUnexpectedToken(p.cur().Position, describe(p.cur()), "';' or '{' after directive arguments")
		default:
			args = append(args, ast.FromToken(p.cur()))
			p.advance()
		}
	}
}

func (p *parser) parseBlockBody(openedAt token.Position, depth int) (*ast.Block, error) {
	var directives []*ast.Directive
	for {
		switch p.cur().Kind {
		case token.EndOfInput:
			return nil, errUnterminatedBlock(openedAt)
		case token.CloseBrace:
			p.advance()
			return &ast.Block{Directives: directives}, nil
		default:
			d, err := p.parseDirective(depth)
			if err != nil {
				return nil, err
			}
			directives = append(directives, d)
		}
	}
}
