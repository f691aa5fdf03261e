// Package lexer converts source text into tokens.
//
// The lexer makes a single forward pass over the input, classifying each
// character as it goes. Parentheses, digit runs, ASCII letter runs and
// double-quoted strings each produce a token; whitespace is skipped and any
// other character fails the whole operation with a *errors.LexError.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Relsola/moon/errors"
	"github.com/Relsola/moon/token"
)

// Option is a configuration function for a Lexer.
type Option func(*Lexer)

// WithFilename sets the file name recorded in token positions.
func WithFilename(filename string) Option {
	return func(l *Lexer) {
		l.filename = filename
	}
}

// Lexer holds our object-state.
type Lexer struct {
	// The input being lexed
	input string

	// byte offset of the next character to read
	pos int

	// 0-indexed line and column of the next character to read
	line   int
	column int

	// byte offset of the start of the current line
	lineStart int

	// position of the most recently consumed character
	last token.Position

	// The filename of the input
	filename string
}

// New returns a Lexer for the given input.
func New(input string, options ...Option) *Lexer {
	l := &Lexer{input: input}
	for _, opt := range options {
		opt(l)
	}
	return l
}

// Tokenize lexes the whole input and returns its tokens in source order.
// The returned slice never contains an EOF token.
func Tokenize(input string, options ...Option) ([]token.Token, error) {
	l := New(input, options...)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if tok.Type == token.EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// Filename returns the name of the file being lexed.
func (l *Lexer) Filename() string {
	return l.filename
}

// SetFilename sets the name of the file being lexed.
func (l *Lexer) SetFilename(filename string) {
	l.filename = filename
}

// Position returns the position of the next character to be read.
func (l *Lexer) Position() token.Position {
	return token.Position{
		Char:      l.pos,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.column,
		File:      l.filename,
	}
}

// Next returns the next token from the input. Once the input is exhausted it
// returns an EOF token on every call.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()
	start := l.Position()
	if l.atEOF() {
		return token.Token{Type: token.EOF, StartPosition: start, EndPosition: start}, nil
	}
	ch := l.peek()
	switch {
	case ch == '(' || ch == ')':
		l.advance()
		return l.newToken(token.PAREN, string(ch), start), nil
	case isDigit(ch):
		return l.newToken(token.NUMBER, l.readWhile(isDigit), start), nil
	case ch == '"':
		return l.readString(start), nil
	case isLetter(ch):
		return l.newToken(token.NAME, l.readWhile(isLetter), start), nil
	}
	line := LineText(l.input, start)
	if r, size := utf8.DecodeRuneInString(l.input[l.pos:]); r == utf8.RuneError && size == 1 {
		return token.Token{StartPosition: start, EndPosition: start},
			errors.NewInvalidByteError(l.input[l.pos], start, line)
	}
	return token.Token{StartPosition: start, EndPosition: start},
		errors.NewLexError(ch, start, line)
}

// GetLineText returns the line of source containing the given token.
func (l *Lexer) GetLineText(tok token.Token) string {
	return LineText(l.input, tok.StartPosition)
}

func (l *Lexer) newToken(typ token.Type, literal string, start token.Position) token.Token {
	return token.Token{
		Type:          typ,
		Literal:       literal,
		StartPosition: start,
		EndPosition:   l.last,
	}
}

// readString consumes a double-quoted string and returns it without the
// quotes. Input that ends before the closing quote ends the string.
func (l *Lexer) readString(start token.Position) token.Token {
	l.advance() // opening quote
	begin := l.pos
	for !l.atEOF() && l.peek() != '"' {
		l.advance()
	}
	value := l.input[begin:l.pos]
	if !l.atEOF() {
		l.advance() // closing quote
	}
	return l.newToken(token.STRING, value, start)
}

func (l *Lexer) readWhile(accept func(rune) bool) string {
	begin := l.pos
	for !l.atEOF() && accept(l.peek()) {
		l.advance()
	}
	return l.input[begin:l.pos]
}

func (l *Lexer) skipWhitespace() {
	for !l.atEOF() && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) peek() rune {
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

func (l *Lexer) advance() {
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.last = l.Position()
	l.pos += size
	if r == '\n' {
		l.line++
		l.column = 0
		l.lineStart = l.pos
	} else {
		l.column++
	}
}

// LineText returns the line of input containing pos, without its line
// terminator. A position on an empty trailing line reports the previous line
// so that end-of-input errors still show some context.
func LineText(input string, pos token.Position) string {
	if pos.LineStart > len(input) {
		return ""
	}
	rest := input[pos.LineStart:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	rest = strings.TrimSuffix(rest, "\r")
	if rest == "" && pos.LineStart > 0 {
		prev := input[:pos.LineStart-1]
		if i := strings.LastIndexByte(prev, '\n'); i >= 0 {
			prev = prev[i+1:]
		}
		return strings.TrimSuffix(prev, "\r")
	}
	return rest
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isLetter(ch rune) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}
