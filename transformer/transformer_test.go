package transformer

import (
	goerrors "errors"
	"testing"

	"github.com/Relsola/moon/ast"
	"github.com/Relsola/moon/errors"
	"github.com/Relsola/moon/parser"
	"github.com/Relsola/moon/target"
	"github.com/Relsola/moon/token"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type bogus struct{}

func (b *bogus) Kind() ast.Kind      { return "Bogus" }
func (b *bogus) Pos() token.Position { return token.NoPos }
func (b *bogus) String() string      { return "?" }

func parse(t *testing.T, source string) *ast.Program {
	t.Helper()
	program, err := parser.ParseString(source)
	require.Nil(t, err)
	return program
}

func call(name string, args ...target.Node) *target.CallExpression {
	if args == nil {
		args = []target.Node{}
	}
	return &target.CallExpression{Callee: &target.Identifier{Name: name}, Arguments: args}
}

func stmt(expr target.Node) *target.ExpressionStatement {
	return &target.ExpressionStatement{Expression: expr}
}

func num(v string) *target.NumberLiteral { return &target.NumberLiteral{Value: v} }

func TestTransform(t *testing.T) {
	tests := []struct {
		input    string
		expected *target.Program
	}{
		{"", &target.Program{Body: []target.Node{}}},
		{"(noop)", &target.Program{Body: []target.Node{stmt(call("noop"))}}},
		{
			"(add 2 (subtract 4 2))",
			&target.Program{Body: []target.Node{
				stmt(call("add", num("2"), call("subtract", num("4"), num("2")))),
			}},
		},
		{
			`(concat "a" "b")`,
			&target.Program{Body: []target.Node{
				stmt(call("concat", &target.StringLiteral{Value: "a"}, &target.StringLiteral{Value: "b"})),
			}},
		},
		{
			"(a 1)(b 2)",
			&target.Program{Body: []target.Node{
				stmt(call("a", num("1"))),
				stmt(call("b", num("2"))),
			}},
		},
		// top-level literals are carried over without a statement wrapper
		{"42", &target.Program{Body: []target.Node{num("42")}}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := Transform(parse(t, tt.input))
			require.Nil(t, err)
			if diff := cmp.Diff(tt.expected, result); diff != "" {
				t.Errorf("unexpected target tree (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTransformDoesNotModifyInput(t *testing.T) {
	program := parse(t, "(add 2 (subtract 4 2))")
	before := program.String()
	_, err := Transform(program)
	require.Nil(t, err)
	require.Equal(t, before, program.String())

	// transforming twice yields equal trees
	first, err := Transform(program)
	require.Nil(t, err)
	second, err := Transform(program)
	require.Nil(t, err)
	require.Empty(t, cmp.Diff(first, second))
}

func TestTransformUnknownNode(t *testing.T) {
	program := &ast.Program{Body: []ast.Node{
		&ast.CallExpression{Name: "f", Params: []ast.Node{&bogus{}}},
	}}
	result, err := Transform(program)
	require.Nil(t, result)
	var transformErr *errors.TransformError
	require.True(t, goerrors.As(err, &transformErr))
	require.Equal(t, "Bogus", transformErr.Kind)
	require.Equal(t, "transform error: unknown node type: Bogus", err.Error())

	result, err = Transform(nil)
	require.Nil(t, result)
	require.Equal(t, errors.E3001, errors.CodeOf(err))
}

func TestTransformerFunc(t *testing.T) {
	called := false
	tr := TransformerFunc(func(p *ast.Program) (*target.Program, error) {
		called = true
		return Transform(p)
	})
	result, err := tr.Transform(parse(t, "(f 1)"))
	require.Nil(t, err)
	require.True(t, called)
	require.Len(t, result.Body, 1)
}

func TestTransformerReturnsError(t *testing.T) {
	tr := TransformerFunc(func(p *ast.Program) (*target.Program, error) {
		return nil, goerrors.New("transform failed")
	})
	_, err := tr.Transform(parse(t, "(f 1)"))
	require.NotNil(t, err)
	require.Equal(t, "transform failed", err.Error())
}

func TestDefault(t *testing.T) {
	result, err := Default.Transform(parse(t, "(f 1)"))
	require.Nil(t, err)
	require.Equal(t, []target.Node{stmt(call("f", num("1")))}, result.Body)
}
