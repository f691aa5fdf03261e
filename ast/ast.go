// Package ast defines the abstract syntax tree produced by the parser.
//
// The source language has exactly one composite construct, the call
// expression, plus number and string literals. A Program holds the
// top-level expressions in source order.
package ast

import (
	"encoding/json"
	"strings"

	"github.com/Relsola/moon/token"
)

// Kind is the tag of a node type.
type Kind string

// Node kinds
const (
	KindProgram        Kind = "Program"
	KindCallExpression Kind = "CallExpression"
	KindNumberLiteral  Kind = "NumberLiteral"
	KindStringLiteral  Kind = "StringLiteral"
)

// Node represents a portion of the syntax tree.
type Node interface {
	// Kind returns the tag of the node.
	Kind() Kind

	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// String returns a human friendly representation of the Node. This should
	// be similar to the original source code, but not necessarily identical.
	String() string
}

// Program is the root node of every parsed source.
type Program struct {
	Body []Node
}

func (p *Program) Kind() Kind { return KindProgram }

func (p *Program) Pos() token.Position {
	if len(p.Body) > 0 {
		return p.Body[0].Pos()
	}
	return token.NoPos
}

func (p *Program) String() string {
	lines := make([]string, 0, len(p.Body))
	for _, node := range p.Body {
		lines = append(lines, node.String())
	}
	return strings.Join(lines, "\n")
}

func (p *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type Kind   `json:"type"`
		Body []Node `json:"body"`
	}{KindProgram, nonNil(p.Body)})
}

// CallExpression represents "(name param...)".
type CallExpression struct {
	Lparen token.Position // position of "("
	Name   string         // the called name
	Params []Node         // the parameters, in order
	Rparen token.Position // position of ")"
}

func (x *CallExpression) Kind() Kind { return KindCallExpression }

func (x *CallExpression) Pos() token.Position { return x.Lparen }

func (x *CallExpression) String() string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(x.Name)
	for _, param := range x.Params {
		b.WriteString(" ")
		b.WriteString(param.String())
	}
	b.WriteString(")")
	return b.String()
}

func (x *CallExpression) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   Kind   `json:"type"`
		Name   string `json:"name"`
		Params []Node `json:"params"`
	}{KindCallExpression, x.Name, nonNil(x.Params)})
}

// NumberLiteral holds the digits of a number exactly as written.
type NumberLiteral struct {
	ValuePos token.Position
	Value    string
}

func (x *NumberLiteral) Kind() Kind { return KindNumberLiteral }

func (x *NumberLiteral) Pos() token.Position { return x.ValuePos }

func (x *NumberLiteral) String() string { return x.Value }

func (x *NumberLiteral) MarshalJSON() ([]byte, error) {
	return marshalLiteral(KindNumberLiteral, x.Value)
}

// StringLiteral holds the text between a pair of double quotes.
type StringLiteral struct {
	ValuePos token.Position
	Value    string
}

func (x *StringLiteral) Kind() Kind { return KindStringLiteral }

func (x *StringLiteral) Pos() token.Position { return x.ValuePos }

func (x *StringLiteral) String() string { return `"` + x.Value + `"` }

func (x *StringLiteral) MarshalJSON() ([]byte, error) {
	return marshalLiteral(KindStringLiteral, x.Value)
}

func marshalLiteral(kind Kind, value string) ([]byte, error) {
	return json.Marshal(struct {
		Type  Kind   `json:"type"`
		Value string `json:"value"`
	}{kind, value})
}

func nonNil(nodes []Node) []Node {
	if nodes == nil {
		return []Node{}
	}
	return nodes
}
