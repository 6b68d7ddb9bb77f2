// Package lexer turns NGINX configuration source text into a stream
// of positioned tokens. It runs in a single pass over the input bytes
// with a small, bounded amount of lookahead — never more than is
// needed to disambiguate a number from an identifier or to find a
// variable's closing brace.
package lexer

import (
	"github.com/urwithajit9/nginx-discovery/token"
)

// Lexer scans a fixed source buffer into tokens. The zero value is not
// usable; construct one with New.
type Lexer struct {
	src  []byte
	file string

	pos    int // byte offset of the next unread byte
	line   int
	column int
}

// New prepares a Lexer over src. file is attached to every token's
// Position and may be empty for in-memory or anonymous sources.
func New(src []byte, file string) *Lexer {
	return &Lexer{src: src, file: file, pos: 0, line: 1, column: 1}
}

func isUnitLetter(b byte) bool {
	switch b {
	case 'k', 'K', 'm', 'M', 'g', 'G', 's', 'h', 'd':
		return true
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// isIdentStart reports whether b may begin a bareword, per the
// grammar's identifier-start class: anything but whitespace, digits,
// quotes, '$', '{', '}', ';' and '#'.
func isIdentStart(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return false
	case '"', '\'', '$', '{', '}', ';', '#':
		return false
	}
	if isDigit(b) {
		return false
	}
	return true
}

// isIdentContinue reports whether b may continue a bareword once
// started: identifier-start characters, plus digits and the extra
// punctuation NGINX paths, addresses and directive names commonly use.
func isIdentContinue(b byte) bool {
	if isDigit(b) {
		return true
	}
	switch b {
	case '.', '_', '-', '/', ':', '*', '=', '@', '~', '+', '%', ',', '?', '!':
		return true
	}
	if b >= 0x80 {
		return true
	}
	return isIdentStart(b)
}

func (l *Lexer) eof() bool { return l.pos >= len(l.src) }

func (l *Lexer) peek() byte {
	if l.eof() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(offset int) byte {
	i := l.pos + offset
	if i < 0 || i >= len(l.src) {
		return 0
	}
	return l.src[i]
}

// position returns the Position of the next unread byte.
func (l *Lexer) position() token.Position {
	return token.Position{Line: l.line, Column: l.column, Offset: l.pos, File: l.file}
}

// advance consumes and returns the next byte, updating line/column
// bookkeeping. \r is folded into the following \n so that a \r\n pair
// counts as a single line break.
func (l *Lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.column = 1
	} else if b == '\r' {
		// don't move the column; \n (if any) does the line break.
	} else {
		l.column++
	}
	return b
}

func (l *Lexer) skipWhitespace() {
	for !l.eof() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

// Next scans and returns the next token. Once it has returned a token
// of Kind EndOfInput, every subsequent call returns the same thing.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()

	if l.eof() {
		return token.Token{Kind: token.EndOfInput, Position: l.position()}, nil
	}

	start := l.position()
	b := l.peek()

	switch {
	case b == '#':
		return l.lexComment(start), nil
	case b == '"' || b == '\'':
		return l.lexQuoted(start)
	case b == '$':
		return l.lexVariable(start)
	case b == '{':
		l.advance()
		return token.Token{Kind: token.OpenBrace, Text: "{", Position: start}, nil
	case b == '}':
		l.advance()
		return token.Token{Kind: token.CloseBrace, Text: "}", Position: start}, nil
	case b == ';':
		l.advance()
		return token.Token{Kind: token.Semicolon, Text: ";", Position: start}, nil
	case isDigit(b):
		return l.lexNumberOrIdentifier(start), nil
	default:
		return l.lexIdentifier(start), nil
	}
}

func (l *Lexer) lexComment(start token.Position) token.Token {
	l.advance() // '#'
	begin := l.pos
	for !l.eof() && l.peek() != '\n' {
		l.advance()
	}
	return token.Token{Kind: token.Comment, Text: string(l.src[begin:l.pos]), Position: start}
}

// lexQuoted consumes a "..." or '...' string, processing the escapes
// documented in the token grammar: \\, \", \', \n, \t. Any other
// backslash sequence passes through as the two literal characters.
func (l *Lexer) lexQuoted(start token.Position) (token.Token, error) {
	quote := l.advance() // consume opening quote
	var text []byte
	for {
		if l.eof() {
			return token.Token{}, newError(UnterminatedString, start, "string starting at %s was never closed", start)
		}
		b := l.peek()
		if b == quote {
			l.advance()
			break
		}
		if b == '\\' {
			l.advance()
			if l.eof() {
				return token.Token{}, newError(UnterminatedString, start, "string starting at %s was never closed", start)
			}
			esc := l.advance()
			switch esc {
			case '\\':
				text = append(text, '\\')
			case '"':
				text = append(text, '"')
			case '\'':
				text = append(text, '\'')
			case 'n':
				text = append(text, '\n')
			case 't':
				text = append(text, '\t')
			default:
				text = append(text, '\\', esc)
			}
			continue
		}
		text = append(text, l.advance())
	}
	return token.Token{Kind: token.QuotedString, Text: string(text), Quote: token.QuoteKind(quote), Position: start}, nil
}

// lexVariable consumes $name or ${name}, stripping the sigil and any
// braces from the emitted token text.
func (l *Lexer) lexVariable(start token.Position) (token.Token, error) {
	l.advance() // '$'
	if l.peek() == '{' {
		l.advance() // '{'
		begin := l.pos
		for {
			if l.eof() {
				return token.Token{}, newError(UnterminatedVariable, start, "variable starting at %s was never closed", start)
			}
			if l.peek() == '}' {
				name := string(l.src[begin:l.pos])
				l.advance() // '}'
				return token.Token{Kind: token.Variable, Text: name, Position: start}, nil
			}
			l.advance()
		}
	}
	begin := l.pos
	for !l.eof() && isIdentContinue(l.peek()) {
		l.advance()
	}
	return token.Token{Kind: token.Variable, Text: string(l.src[begin:l.pos]), Position: start}, nil
}

// lexNumberOrIdentifier implements the digit-dispatch rule: a run of
// digits is a Number if it is immediately followed by at most one
// recognized unit letter that itself ends the token; otherwise the
// whole run (digits included) is relexed as an Identifier, since NGINX
// paths and addresses may start with a digit.
func (l *Lexer) lexNumberOrIdentifier(start token.Position) token.Token {
	begin := l.pos
	for !l.eof() && isDigit(l.peek()) {
		l.advance()
	}

	next := l.peek()
	if next == 0 || !isIdentContinue(next) {
		// digits only, nothing else attached: a clean Number.
		return token.Token{Kind: token.Number, Text: string(l.src[begin:l.pos]), Position: start}
	}

	if isUnitLetter(next) && !isIdentContinue(l.peekAt(1)) {
		// digits + single unit letter, then the token ends: Number.
		l.advance()
		return token.Token{Kind: token.Number, Text: string(l.src[begin:l.pos]), Position: start}
	}

	// Anything else attached to the digits (a non-unit letter, another
	// digit run broken by punctuation, etc.) makes this a bareword.
	for !l.eof() && isIdentContinue(l.peek()) {
		l.advance()
	}
	return token.Token{Kind: token.Identifier, Text: string(l.src[begin:l.pos]), Position: start}
}

func (l *Lexer) lexIdentifier(start token.Position) token.Token {
	begin := l.pos
	for !l.eof() && isIdentContinue(l.peek()) {
		l.advance()
	}
	if l.pos == begin {
		// A byte that is neither whitespace, punctuation we recognize,
		// nor identifier-continue (shouldn't happen given the classes
		// above cover every remaining byte value, but guard anyway).
		l.advance()
	}
	return token.Token{Kind: token.Identifier, Text: string(l.src[begin:l.pos]), Position: start}
}

// Tokenize lexes all of src in one call and returns the full token
// stream, always ending in a single EndOfInput token. It fails fast on
// the first lex error.
func Tokenize(src []byte, file string) ([]token.Token, error) {
	l := New(src, file)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EndOfInput {
			return tokens, nil
		}
	}
}
