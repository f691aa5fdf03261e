package parser

import (
	goerrors "errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/Relsola/moon/ast"
	"github.com/Relsola/moon/errors"
	"github.com/Relsola/moon/lexer"
	"github.com/Relsola/moon/token"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var ignorePositions = cmpopts.IgnoreTypes(token.Position{})

func num(v string) *ast.NumberLiteral { return &ast.NumberLiteral{Value: v} }

func str(v string) *ast.StringLiteral { return &ast.StringLiteral{Value: v} }

func call(name string, params ...ast.Node) *ast.CallExpression {
	return &ast.CallExpression{Name: name, Params: params}
}

func program(body ...ast.Node) *ast.Program {
	return &ast.Program{Body: body}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected *ast.Program
	}{
		{"", &ast.Program{}},
		{"   \n\t ", &ast.Program{}},
		{"42", program(num("42"))},
		{`"hi"`, program(str("hi"))},
		{"(noop)", program(call("noop"))},
		{"(add 2 2)", program(call("add", num("2"), num("2")))},
		{
			"(add 2 (subtract 4 2))",
			program(call("add", num("2"), call("subtract", num("4"), num("2")))),
		},
		{`(concat "a" "b")`, program(call("concat", str("a"), str("b")))},
		{"(a 1)(b 2)", program(call("a", num("1")), call("b", num("2")))},
		{"1 2 (f)", program(num("1"), num("2"), call("f"))},
		{"(f (g (h 0)))", program(call("f", call("g", call("h", num("0")))))},
		// the head of a call is taken verbatim, whatever its type
		{"(42 1)", program(call("42", num("1")))},
		{"(( 1)", program(call("(", num("1")))},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseString(tt.input)
			require.Nil(t, err)
			if diff := cmp.Diff(tt.expected, result, ignorePositions); diff != "" {
				t.Errorf("unexpected AST (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseTokens(t *testing.T) {
	tokens := []token.Token{
		{Type: token.PAREN, Literal: "("},
		{Type: token.NAME, Literal: "add"},
		{Type: token.NUMBER, Literal: "2"},
		{Type: token.STRING, Literal: "x"},
		{Type: token.PAREN, Literal: ")"},
	}
	result, err := Parse(tokens)
	require.Nil(t, err)
	expected := program(call("add", num("2"), str("x")))
	if diff := cmp.Diff(expected, result, ignorePositions); diff != "" {
		t.Errorf("unexpected AST (-want +got):\n%s", diff)
	}
}

func TestParsePositions(t *testing.T) {
	result, err := ParseString("(add 2\n  \"s\")", WithFilename("main.moon"))
	require.Nil(t, err)
	require.Len(t, result.Body, 1)
	callExpr := result.Body[0].(*ast.CallExpression)
	require.Equal(t, "main.moon:1:1", callExpr.Pos().String())
	require.Equal(t, "main.moon:1:6", callExpr.Params[0].Pos().String())
	require.Equal(t, "main.moon:2:3", callExpr.Params[1].Pos().String())
	require.Equal(t, "main.moon:2:6", callExpr.Rparen.String())
	require.Equal(t, callExpr.Pos(), result.Pos())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input   string
		code    errors.ErrorCode
		message string
		pos     string
	}{
		{"(add 2", errors.E2002, "parse error: unexpected end of input while parsing call expression", "1:7"},
		{"(", errors.E2002, "parse error: unexpected end of input while parsing call expression", "1:2"},
		{"(add", errors.E2002, "parse error: unexpected end of input while parsing call expression", "1:5"},
		{"(add 2 (sub 1)", errors.E2002, "parse error: unexpected end of input while parsing call expression", "1:15"},
		{")", errors.E2001, `parse error: cannot parse token of type paren (")")`, "1:1"},
		{"add", errors.E2001, `parse error: cannot parse token of type name ("add")`, "1:1"},
		{"(add x)", errors.E2001, `parse error: cannot parse token of type name ("x")`, "1:6"},
		{"(a 1))", errors.E2001, `parse error: cannot parse token of type paren (")")`, "1:6"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseString(tt.input)
			require.Nil(t, result)
			require.NotNil(t, err)
			require.Equal(t, tt.message, err.Error())

			var parseErr *errors.ParseError
			require.True(t, goerrors.As(err, &parseErr))
			require.Equal(t, tt.code, parseErr.ErrorCode())
			require.Equal(t, tt.pos, parseErr.Pos.String())
		})
	}
}

func TestParseErrorSourceLine(t *testing.T) {
	_, err := ParseString("(ok 1)\n(add 2 )) ")
	var parseErr *errors.ParseError
	require.True(t, goerrors.As(err, &parseErr))
	require.Equal(t, "(add 2 )) ", parseErr.SourceLine)

	// without a source there is no line to quote
	tokens, lexErr := lexer.Tokenize(")")
	require.Nil(t, lexErr)
	_, err = Parse(tokens)
	require.True(t, goerrors.As(err, &parseErr))
	require.Equal(t, "", parseErr.SourceLine)

	_, err = Parse(tokens, WithSource(")"))
	require.True(t, goerrors.As(err, &parseErr))
	require.Equal(t, ")", parseErr.SourceLine)
}

func TestParseUnclosedCallNote(t *testing.T) {
	_, err := ParseString("(a 1)\n(add 2 (sub 1)", WithFilename("main.moon"))
	var parseErr *errors.ParseError
	require.True(t, goerrors.As(err, &parseErr))
	require.Equal(t, errors.E2002, parseErr.ErrorCode())
	require.Equal(t, "the call opened at main.moon:2:1 is never closed", parseErr.Note)
	require.Contains(t, parseErr.FriendlyErrorMessage(), "= note: the call opened at main.moon:2:1 is never closed")

	_, err = ParseString("(")
	require.True(t, goerrors.As(err, &parseErr))
	require.Equal(t, "the call opened at 1:1 is never closed", parseErr.Note)
}

func TestParseEOFTokenType(t *testing.T) {
	_, err := ParseString("(add 2")
	var parseErr *errors.ParseError
	require.True(t, goerrors.As(err, &parseErr))
	require.Equal(t, token.EOF, parseErr.TokenType)
}

func TestParseLexError(t *testing.T) {
	result, err := ParseString("(add 2 @)")
	require.Nil(t, result)
	var lexErr *errors.LexError
	require.True(t, goerrors.As(err, &lexErr))
	require.Equal(t, '@', lexErr.Char)
}

func TestMaxDepth(t *testing.T) {
	_, err := ParseString("(a (b (c 1)))", WithMaxDepth(3))
	require.Nil(t, err)

	_, err = ParseString("(a (b (c 1)))", WithMaxDepth(2))
	var parseErr *errors.ParseError
	require.True(t, goerrors.As(err, &parseErr))
	require.Equal(t, errors.E2003, parseErr.ErrorCode())
	require.Equal(t, "1:7", parseErr.Pos.String())
	require.Equal(t, "parse error: maximum nesting depth exceeded (2)", err.Error())
}

func TestDefaultMaxDepth(t *testing.T) {
	nest := func(n int) string {
		return strings.Repeat("(f ", n) + "0" + strings.Repeat(")", n)
	}
	_, err := ParseString(nest(DefaultMaxDepth))
	require.Nil(t, err)

	_, err = ParseString(nest(DefaultMaxDepth + 1))
	require.Equal(t, errors.E2003, errors.CodeOf(err))
}

func TestParseConcurrently(t *testing.T) {
	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			input := fmt.Sprintf("(add %d (subtract %d 2))", i, i+4)
			result, err := ParseString(input)
			if err != nil {
				errs[i] = err
				return
			}
			if got := result.String(); got != input {
				errs[i] = fmt.Errorf("got %q, want %q", got, input)
			}
		}()
	}
	wg.Wait()
	for _, err := range errs {
		require.Nil(t, err)
	}
}
