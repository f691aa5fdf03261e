// Package transformer rewrites a parsed AST into the target tree consumed by
// the code generator.
package transformer

import (
	"github.com/Relsola/moon/ast"
	"github.com/Relsola/moon/errors"
	"github.com/Relsola/moon/target"
)

// Transformer converts an AST into a target tree.
// Transformers receive ownership of the AST and must not retain it.
type Transformer interface {
	Transform(program *ast.Program) (*target.Program, error)
}

// TransformerFunc is an adapter to use a function as a Transformer.
type TransformerFunc func(*ast.Program) (*target.Program, error)

// Transform implements the Transformer interface.
func (f TransformerFunc) Transform(p *ast.Program) (*target.Program, error) {
	return f(p)
}

// Default is the Transformer used when none is configured.
var Default Transformer = TransformerFunc(Transform)

// scope is the collection a node's translation is appended to.
type scope = *[]target.Node

var visitor = &ast.Visitor[scope]{
	NumberLiteral: ast.Methods[*ast.NumberLiteral, scope]{
		Enter: func(node *ast.NumberLiteral, _ ast.Node, s scope) (scope, error) {
			*s = append(*s, &target.NumberLiteral{Value: node.Value})
			return s, nil
		},
	},
	StringLiteral: ast.Methods[*ast.StringLiteral, scope]{
		Enter: func(node *ast.StringLiteral, _ ast.Node, s scope) (scope, error) {
			*s = append(*s, &target.StringLiteral{Value: node.Value})
			return s, nil
		},
	},
	CallExpression: ast.Methods[*ast.CallExpression, scope]{
		Enter: func(node *ast.CallExpression, parent ast.Node, s scope) (scope, error) {
			expr := &target.CallExpression{
				Callee:    &target.Identifier{Name: node.Name},
				Arguments: []target.Node{},
			}
			// Only calls nested in another call stay bare expressions.
			if _, nested := parent.(*ast.CallExpression); nested {
				*s = append(*s, expr)
			} else {
				*s = append(*s, &target.ExpressionStatement{Expression: expr})
			}
			return &expr.Arguments, nil
		},
	},
}

// Transform builds a new target tree from program. The input is not
// modified. On error no partial tree is returned.
func Transform(program *ast.Program) (*target.Program, error) {
	if program == nil {
		return nil, errors.NewTransformError("<nil>")
	}
	out := &target.Program{Body: []target.Node{}}
	if err := ast.Traverse[scope](program, visitor, &out.Body); err != nil {
		return nil, err
	}
	return out, nil
}
