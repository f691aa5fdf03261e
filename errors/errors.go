// Package errors defines the error types raised by each compiler stage.
//
// Every error is fatal to the compilation that raised it. Callers that only
// need a message can use Error(); callers that render diagnostics can use
// ToFormatted() together with a Formatter.
package errors

import (
	goerrors "errors"
	"fmt"
	"unicode/utf8"

	"github.com/Relsola/moon/token"
)

// FriendlyError is an interface for errors that have a human friendly message
// in addition to a the lower level default error message.
type FriendlyError interface {
	Error() string
	FriendlyErrorMessage() string
}

// FormattableError is an interface for errors that can be formatted with
// the enhanced error formatter (with colors, source context, etc).
type FormattableError interface {
	Error() string
	ToFormatted() *FormattedError
}

// FatalError is an interface for errors that may or may not be fatal.
type FatalError interface {
	Error() string
	IsFatal() bool
}

// CodedError is implemented by every stage error.
type CodedError interface {
	Error() string
	ErrorCode() ErrorCode
}

// LexError indicates an input character that belongs to no token class.
// Raw holds the offending byte when the input is not valid UTF-8; Char is
// then utf8.RuneError.
type LexError struct {
	Char       rune
	Raw        string
	Pos        token.Position
	SourceLine string
}

// NewLexError returns a LexError for the given character and position.
func NewLexError(ch rune, pos token.Position, sourceLine string) *LexError {
	return &LexError{Char: ch, Pos: pos, SourceLine: sourceLine}
}

// NewInvalidByteError returns a LexError for a byte that does not start a
// valid UTF-8 sequence.
func NewInvalidByteError(b byte, pos token.Position, sourceLine string) *LexError {
	return &LexError{Char: utf8.RuneError, Raw: string([]byte{b}), Pos: pos, SourceLine: sourceLine}
}

func (e *LexError) message() string {
	if e.Raw != "" {
		return fmt.Sprintf("invalid UTF-8 byte %#x", e.Raw[0])
	}
	return fmt.Sprintf("unrecognized character: %q", e.Char)
}

func (e *LexError) Error() string {
	return "lex error: " + e.message()
}

func (e *LexError) ErrorCode() ErrorCode { return E1001 }

func (e *LexError) IsFatal() bool { return true }

func (e *LexError) FriendlyErrorMessage() string {
	return NewFormatter(false).Format(e.ToFormatted())
}

// ToFormatted converts the error to a FormattedError for display.
func (e *LexError) ToFormatted() *FormattedError {
	fe := newFormatted(E1001, "lex error", e.message(), e.Pos, e.Pos, e.SourceLine)
	if e.Char == '\'' {
		fe.Hint = "strings are delimited by double quotes"
	}
	return fe
}

// ParseError indicates a token the parser cannot reduce, including running
// out of tokens while more were expected.
type ParseError struct {
	Code       ErrorCode
	TokenType  token.Type
	Literal    string
	Message    string
	Pos        token.Position
	End        token.Position
	SourceLine string
	Note       string
}

// NewUnexpectedToken returns a ParseError for a token that cannot start a node.
func NewUnexpectedToken(tok token.Token, sourceLine string) *ParseError {
	return &ParseError{
		Code:       E2001,
		TokenType:  tok.Type,
		Literal:    tok.Literal,
		Message:    fmt.Sprintf("cannot parse token of type %s (%q)", tok.Type, tok.Literal),
		Pos:        tok.StartPosition,
		End:        tok.EndPosition,
		SourceLine: sourceLine,
	}
}

// NewUnexpectedEOF returns a ParseError for input that ended while the
// parser still expected tokens.
func NewUnexpectedEOF(context string, pos token.Position, sourceLine string) *ParseError {
	return &ParseError{
		Code:       E2002,
		TokenType:  token.EOF,
		Message:    fmt.Sprintf("unexpected end of input while parsing %s", context),
		Pos:        pos,
		End:        pos,
		SourceLine: sourceLine,
	}
}

// NewUnclosedCall returns a ParseError for input that ended inside the call
// opened by open. pos is where more input was expected.
func NewUnclosedCall(open token.Token, pos token.Position, sourceLine string) *ParseError {
	err := NewUnexpectedEOF("call expression", pos, sourceLine)
	err.Note = fmt.Sprintf("the call opened at %s is never closed", open.StartPosition)
	return err
}

// NewMaxDepthError returns a ParseError for calls nested deeper than limit.
func NewMaxDepthError(tok token.Token, limit int, sourceLine string) *ParseError {
	return &ParseError{
		Code:       E2003,
		TokenType:  tok.Type,
		Literal:    tok.Literal,
		Message:    fmt.Sprintf("maximum nesting depth exceeded (%d)", limit),
		Pos:        tok.StartPosition,
		End:        tok.EndPosition,
		SourceLine: sourceLine,
	}
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Message
}

func (e *ParseError) ErrorCode() ErrorCode { return e.Code }

func (e *ParseError) IsFatal() bool { return true }

func (e *ParseError) FriendlyErrorMessage() string {
	return NewFormatter(false).Format(e.ToFormatted())
}

// ToFormatted converts the error to a FormattedError for display.
func (e *ParseError) ToFormatted() *FormattedError {
	fe := newFormatted(e.Code, "parse error", e.Message, e.Pos, e.End, e.SourceLine)
	switch {
	case e.Code == E2002:
		fe.Hint = "check that every '(' has a matching ')'"
	case e.TokenType == token.PAREN && e.Literal == ")":
		fe.Hint = "this ')' does not close any call expression"
	}
	fe.Note = e.Note
	return fe
}

// TransformError indicates a node kind the transformer does not know how to
// walk. The parser never produces such nodes.
type TransformError struct {
	Kind string
}

// NewTransformError returns a TransformError for the given node kind.
func NewTransformError(kind string) *TransformError {
	return &TransformError{Kind: kind}
}

func (e *TransformError) Error() string {
	return "transform error: unknown node type: " + e.Kind
}

func (e *TransformError) ErrorCode() ErrorCode { return E3001 }

func (e *TransformError) IsFatal() bool { return true }

func (e *TransformError) FriendlyErrorMessage() string {
	return NewFormatter(false).Format(e.ToFormatted())
}

// ToFormatted converts the error to a FormattedError for display.
func (e *TransformError) ToFormatted() *FormattedError {
	return &FormattedError{
		Code:    E3001,
		Kind:    "transform error",
		Message: "unknown node type: " + e.Kind,
	}
}

// CodeGenError indicates a node kind the code generator cannot render.
type CodeGenError struct {
	Kind string
}

// NewCodeGenError returns a CodeGenError for the given node kind.
func NewCodeGenError(kind string) *CodeGenError {
	return &CodeGenError{Kind: kind}
}

func (e *CodeGenError) Error() string {
	return "codegen error: unknown node type: " + e.Kind
}

func (e *CodeGenError) ErrorCode() ErrorCode { return E4001 }

func (e *CodeGenError) IsFatal() bool { return true }

func (e *CodeGenError) FriendlyErrorMessage() string {
	return NewFormatter(false).Format(e.ToFormatted())
}

// ToFormatted converts the error to a FormattedError for display.
func (e *CodeGenError) ToFormatted() *FormattedError {
	return &FormattedError{
		Code:    E4001,
		Kind:    "codegen error",
		Message: "unknown node type: " + e.Kind,
	}
}

// CodeOf returns the ErrorCode carried by err or any error it wraps, or an
// empty code if there is none.
func CodeOf(err error) ErrorCode {
	var coded CodedError
	if goerrors.As(err, &coded) {
		return coded.ErrorCode()
	}
	return ""
}

// Render formats err for display. Errors that carry diagnostics are rendered
// with the Formatter; anything else falls back to its Error() text.
func Render(err error, useColor bool) string {
	var fe FormattableError
	if goerrors.As(err, &fe) {
		return NewFormatter(useColor).Format(fe.ToFormatted())
	}
	return err.Error() + "\n"
}

func newFormatted(code ErrorCode, kind, msg string, start, end token.Position, line string) *FormattedError {
	fe := &FormattedError{
		Code:     code,
		Kind:     kind,
		Message:  msg,
		Filename: start.File,
	}
	if !start.IsValid() && line == "" {
		return fe
	}
	fe.Line = start.LineNumber()
	fe.Column = start.ColumnNumber()
	if end.Line == start.Line {
		fe.EndColumn = end.ColumnNumber()
	}
	fe.SourceLine = line
	return fe
}
