package main

import (
	"fmt"
	"strings"

	"github.com/Relsola/moon"
	"github.com/Relsola/moon/ast"
	"github.com/Relsola/moon/target"
	"github.com/spf13/cobra"
)

func newAstCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ast [file]",
		Short: "Display the AST for source code",
		Long: `Display the AST for source code.

With --target the transformed tree handed to the code generator is shown
instead of the parsed one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: astHandler,
	}
	addInputFlags(cmd)
	cmd.Flags().Bool("target", false, "Show the transformed tree")
	return cmd
}

func astHandler(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args)
	if err != nil {
		return err
	}
	opts := append(compileOptions(), moon.WithFilename(src.Name))
	stages, err := moon.Trace(src.Code, opts...)
	if err != nil {
		return err
	}
	if showTarget, _ := cmd.Flags().GetBool("target"); showTarget {
		return writeOutput(cmd.OutOrStdout(), stages.Target, func() string {
			var b strings.Builder
			printTarget(&b, stages.Target, 0)
			return strings.TrimSuffix(b.String(), "\n")
		})
	}
	return writeOutput(cmd.OutOrStdout(), stages.AST, func() string {
		var b strings.Builder
		printAST(&b, stages.AST, 0)
		return strings.TrimSuffix(b.String(), "\n")
	})
}

func printAST(b *strings.Builder, node ast.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := node.(type) {
	case *ast.Program:
		fmt.Fprintf(b, "%sProgram\n", indent)
		for _, child := range n.Body {
			printAST(b, child, depth+1)
		}
	case *ast.CallExpression:
		fmt.Fprintf(b, "%sCallExpression %s\n", indent, n.Name)
		for _, param := range n.Params {
			printAST(b, param, depth+1)
		}
	case *ast.NumberLiteral:
		fmt.Fprintf(b, "%sNumberLiteral %s\n", indent, n.Value)
	case *ast.StringLiteral:
		fmt.Fprintf(b, "%sStringLiteral %q\n", indent, n.Value)
	}
}

func printTarget(b *strings.Builder, node target.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := node.(type) {
	case *target.Program:
		fmt.Fprintf(b, "%sProgram\n", indent)
		for _, child := range n.Body {
			printTarget(b, child, depth+1)
		}
	case *target.ExpressionStatement:
		fmt.Fprintf(b, "%sExpressionStatement\n", indent)
		printTarget(b, n.Expression, depth+1)
	case *target.CallExpression:
		fmt.Fprintf(b, "%sCallExpression\n", indent)
		printTarget(b, n.Callee, depth+1)
		for _, arg := range n.Arguments {
			printTarget(b, arg, depth+1)
		}
	case *target.Identifier:
		fmt.Fprintf(b, "%sIdentifier %s\n", indent, n.Name)
	case *target.NumberLiteral:
		fmt.Fprintf(b, "%sNumberLiteral %s\n", indent, n.Value)
	case *target.StringLiteral:
		fmt.Fprintf(b, "%sStringLiteral %q\n", indent, n.Value)
	}
}
