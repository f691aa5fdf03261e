package ast

import (
	"iter"

	"github.com/Relsola/moon/errors"
)

// Methods holds the callbacks a Visitor runs for one kind of node. Either
// callback may be nil.
//
// Enter runs before the node's children are traversed and returns the scope
// those children receive. Exit runs after the children, with the scope the
// node itself received.
type Methods[N Node, C any] struct {
	Enter func(node N, parent Node, scope C) (C, error)
	Exit  func(node N, parent Node, scope C) error
}

// Visitor maps every node kind to its callbacks. The type parameter C is the
// scope threaded from parents to children, e.g. the collection that a
// child's translation should be appended to.
type Visitor[C any] struct {
	Program        Methods[*Program, C]
	CallExpression Methods[*CallExpression, C]
	NumberLiteral  Methods[*NumberLiteral, C]
	StringLiteral  Methods[*StringLiteral, C]
}

// Traverse walks the tree rooted at root in depth-first order, running the
// visitor's callbacks for every node. The root is visited with a nil parent
// and the given scope. The first error returned by a callback stops the walk.
// A node of unknown kind fails with an *errors.TransformError.
func Traverse[C any](root Node, v *Visitor[C], scope C) error {
	return traverseNode(root, nil, v, scope)
}

func traverseNode[C any](node, parent Node, v *Visitor[C], scope C) error {
	switch n := node.(type) {
	case *Program:
		return visit(n, parent, v.Program, scope, func(inner C) error {
			return traverseArray(n.Body, n, v, inner)
		})
	case *CallExpression:
		return visit(n, parent, v.CallExpression, scope, func(inner C) error {
			return traverseArray(n.Params, n, v, inner)
		})
	case *NumberLiteral:
		return visit(n, parent, v.NumberLiteral, scope, nil)
	case *StringLiteral:
		return visit(n, parent, v.StringLiteral, scope, nil)
	default:
		return errors.NewTransformError(kindOf(node))
	}
}

func traverseArray[C any](nodes []Node, parent Node, v *Visitor[C], scope C) error {
	for _, child := range nodes {
		if err := traverseNode(child, parent, v, scope); err != nil {
			return err
		}
	}
	return nil
}

func visit[N Node, C any](node N, parent Node, m Methods[N, C], scope C, children func(C) error) error {
	inner := scope
	if m.Enter != nil {
		var err error
		if inner, err = m.Enter(node, parent, scope); err != nil {
			return err
		}
	}
	if children != nil {
		if err := children(inner); err != nil {
			return err
		}
	}
	if m.Exit != nil {
		return m.Exit(node, parent, scope)
	}
	return nil
}

func kindOf(node Node) string {
	if node == nil {
		return "<nil>"
	}
	return string(node.Kind())
}

// Inspect traverses an AST in depth-first order. It calls f(node) for each
// node; if f returns true, Inspect invokes f recursively for each of the
// children of node.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	for _, child := range children(node) {
		Inspect(child, f)
	}
}

// Preorder returns an iterator over all the nodes of the AST rooted at node
// in depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var walk func(Node) bool
		walk = func(n Node) bool {
			if !yield(n) {
				return false
			}
			for _, child := range children(n) {
				if !walk(child) {
					return false
				}
			}
			return true
		}
		if root != nil {
			walk(root)
		}
	}
}

func children(node Node) []Node {
	switch n := node.(type) {
	case *Program:
		return n.Body
	case *CallExpression:
		return n.Params
	}
	return nil
}
