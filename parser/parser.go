// Package parser is used to generate the abstract syntax tree (AST) for a program.
//
// A parser is created by calling New() with a token sequence as input. The
// parser should then be used only once, by calling parser.Parse() to produce
// the AST. Each Parser owns its own cursor, so independent parses may run
// concurrently while a single Parser may not be shared.
package parser

import (
	"github.com/Relsola/moon/ast"
	"github.com/Relsola/moon/errors"
	"github.com/Relsola/moon/lexer"
	"github.com/Relsola/moon/token"
)

// DefaultMaxDepth is the default maximum nesting depth for call expressions.
const DefaultMaxDepth = 500

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name used when ParseString lexes its input.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithSource supplies the source text the tokens were lexed from, so that
// errors can quote the offending line.
func WithSource(source string) Option {
	return func(p *Parser) {
		p.source = source
	}
}

// WithMaxDepth sets the maximum nesting depth for call expressions.
// This prevents stack overflow on deeply nested input.
// The default is 500.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// Parser object
type Parser struct {
	// the tokens being parsed
	tokens []token.Token

	// index of the current token
	current int

	// current and maximum allowed call nesting depth
	depth    int
	maxDepth int

	// source text and filename, used for diagnostics only
	source   string
	filename string
}

// New returns a Parser for the given tokens.
func New(tokens []token.Token, options ...Option) *Parser {
	p := &Parser{
		tokens:   tokens,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Parse is shorthand for New(tokens, options...).Parse().
func Parse(tokens []token.Token, options ...Option) (*ast.Program, error) {
	return New(tokens, options...).Parse()
}

// ParseString lexes and parses the given source.
func ParseString(source string, options ...Option) (*ast.Program, error) {
	p := New(nil, options...)
	p.source = source
	tokens, err := lexer.Tokenize(source, lexer.WithFilename(p.filename))
	if err != nil {
		return nil, err
	}
	p.tokens = tokens
	return p.Parse()
}

// Parse the program provided via the tokens. Every node in the sequence
// becomes an element of the program body, in order. On error no AST is
// returned.
func (p *Parser) Parse() (*ast.Program, error) {
	program := &ast.Program{}
	for p.current < len(p.tokens) {
		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		program.Body = append(program.Body, node)
	}
	return program, nil
}

func (p *Parser) parseNode() (ast.Node, error) {
	tok, ok := p.curToken()
	if !ok {
		return nil, p.eofError("expression")
	}
	switch {
	case tok.Type == token.NUMBER:
		p.current++
		return &ast.NumberLiteral{ValuePos: tok.StartPosition, Value: tok.Literal}, nil
	case tok.Type == token.STRING:
		p.current++
		return &ast.StringLiteral{ValuePos: tok.StartPosition, Value: tok.Literal}, nil
	case tok.IsOpen():
		return p.parseCall(tok)
	}
	return nil, errors.NewUnexpectedToken(tok, p.lineText(tok.StartPosition))
}

// parseCall parses "(name param...)". The token after the opening paren is
// taken as the name whatever its type.
func (p *Parser) parseCall(open token.Token) (ast.Node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		return nil, errors.NewMaxDepthError(open, p.maxDepth, p.lineText(open.StartPosition))
	}
	p.current++

	name, ok := p.curToken()
	if !ok {
		return nil, p.unclosedError(open)
	}
	p.current++

	call := &ast.CallExpression{Lparen: open.StartPosition, Name: name.Literal}
	for {
		tok, ok := p.curToken()
		if !ok {
			return nil, p.unclosedError(open)
		}
		if tok.IsClose() {
			p.current++
			call.Rparen = tok.StartPosition
			return call, nil
		}
		param, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		call.Params = append(call.Params, param)
	}
}

// curToken returns the current token, or false once the tokens are exhausted.
func (p *Parser) curToken() (token.Token, bool) {
	if p.current >= len(p.tokens) {
		return token.Token{}, false
	}
	return p.tokens[p.current], true
}

// eofError reports input that ended while parsing the given construct.
func (p *Parser) eofError(context string) error {
	pos := p.endPos()
	return errors.NewUnexpectedEOF(context, pos, p.lineText(pos))
}

// unclosedError reports input that ended inside the call opened by open.
func (p *Parser) unclosedError(open token.Token) error {
	pos := p.endPos()
	return errors.NewUnclosedCall(open, pos, p.lineText(pos))
}

// endPos is the position just past the final token.
func (p *Parser) endPos() token.Position {
	pos := token.Position{File: p.filename}
	if n := len(p.tokens); n > 0 {
		pos = p.tokens[n-1].EndPosition
		pos.Char++
		pos.Column++
	}
	return pos
}

func (p *Parser) lineText(pos token.Position) string {
	if p.source == "" {
		return ""
	}
	return lexer.LineText(p.source, pos)
}
