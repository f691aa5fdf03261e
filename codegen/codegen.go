// Package codegen renders a target tree as C-like source text.
//
// Rendering rules per node kind:
//
//	Program              each statement, joined by newlines
//	ExpressionStatement  the expression followed by ";"
//	CallExpression       callee(arg, arg, ...)
//	Identifier           the name, verbatim
//	NumberLiteral        the value, verbatim
//	StringLiteral        the value wrapped in double quotes
//
// Any other node fails with an *errors.CodeGenError.
package codegen

import (
	"strings"

	"github.com/Relsola/moon/errors"
	"github.com/Relsola/moon/target"
)

// Generate renders node and everything below it.
func Generate(node target.Node) (string, error) {
	var b strings.Builder
	if err := generate(&b, node); err != nil {
		return "", err
	}
	return b.String(), nil
}

func generate(b *strings.Builder, node target.Node) error {
	switch n := node.(type) {
	case *target.Program:
		for i, stmt := range n.Body {
			if i > 0 {
				b.WriteByte('\n')
			}
			if err := generate(b, stmt); err != nil {
				return err
			}
		}
	case *target.ExpressionStatement:
		if err := generate(b, n.Expression); err != nil {
			return err
		}
		b.WriteByte(';')
	case *target.CallExpression:
		if n.Callee == nil {
			return errors.NewCodeGenError("<nil>")
		}
		b.WriteString(n.Callee.Name)
		b.WriteByte('(')
		for i, arg := range n.Arguments {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := generate(b, arg); err != nil {
				return err
			}
		}
		b.WriteByte(')')
	case *target.Identifier:
		b.WriteString(n.Name)
	case *target.NumberLiteral:
		b.WriteString(n.Value)
	case *target.StringLiteral:
		b.WriteByte('"')
		b.WriteString(n.Value)
		b.WriteByte('"')
	default:
		return errors.NewCodeGenError(kindOf(node))
	}
	return nil
}

func kindOf(node target.Node) string {
	if node == nil {
		return "<nil>"
	}
	return string(node.Kind())
}
