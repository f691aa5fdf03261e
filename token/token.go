// Package token defines the tokens produced when lexing source code.
package token

import "fmt"

// Type describes the type of a token as a string.
type Type string

// Token types
const (
	PAREN  Type = "paren"
	NUMBER Type = "number"
	STRING Type = "string"
	NAME   Type = "name"

	// EOF is returned by the lexer once the input is exhausted. It is never
	// part of a tokenized sequence.
	EOF Type = "EOF"
)

// Position points to a particular location in an input string.
type Position struct {
	Char      int    // byte offset within the input
	LineStart int    // byte offset of the start of the current line
	Line      int    // 0-indexed line number
	Column    int    // 0-indexed column number
	File      string // filename
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// IsValid returns true if this position has been set.
func (p Position) IsValid() bool {
	return p.File != "" || p.Line > 0 || p.Column > 0 || p.Char > 0
}

// String returns the position as "file:line:column" or "line:column".
func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.LineNumber(), p.ColumnNumber())
	}
	return fmt.Sprintf("%d:%d", p.LineNumber(), p.ColumnNumber())
}

// NoPos is the zero value Position, representing an invalid/unset position.
var NoPos = Position{}

// Token represents one token lexed from the input source code.
type Token struct {
	Type          Type     `json:"type"`
	Literal       string   `json:"value"`
	StartPosition Position `json:"-"`
	EndPosition   Position `json:"-"`
}

// Is returns true if the token has the given type and literal.
func (t Token) Is(typ Type, literal string) bool {
	return t.Type == typ && t.Literal == literal
}

// IsOpen returns true for an opening paren.
func (t Token) IsOpen() bool {
	return t.Is(PAREN, "(")
}

// IsClose returns true for a closing paren.
func (t Token) IsClose() bool {
	return t.Is(PAREN, ")")
}

func (t Token) String() string {
	return fmt.Sprintf("%s%q", t.Type, t.Literal)
}
