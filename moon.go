// Package moon compiles a small Lisp-like call language into C-like call
// syntax:
//
//	out, err := moon.Compile("(add 2 (subtract 4 2))")
//	// out == "add(2, subtract(4, 2));"
//
// Compilation runs four stages in order: lexer, parser, transformer and
// codegen. The first failing stage ends the compilation and its error is
// returned unchanged, so callers can match it with errors.As against the
// types in the errors package.
package moon

import (
	"github.com/Relsola/moon/ast"
	"github.com/Relsola/moon/codegen"
	"github.com/Relsola/moon/errors"
	"github.com/Relsola/moon/lexer"
	"github.com/Relsola/moon/parser"
	"github.com/Relsola/moon/target"
	"github.com/Relsola/moon/token"
	"github.com/rs/zerolog"
)

// Stages holds every artifact produced while compiling one source.
type Stages struct {
	Tokens []token.Token   `json:"tokens"`
	AST    *ast.Program    `json:"ast"`
	Target *target.Program `json:"target"`
	Output string          `json:"output"`
}

// Compile translates source and returns the generated code.
func Compile(source string, opts ...Option) (string, error) {
	stages, err := compile(source, collectOptions(opts...))
	if err != nil {
		return "", err
	}
	return stages.Output, nil
}

// Trace compiles source like Compile but also returns the intermediate
// tokens and trees.
func Trace(source string, opts ...Option) (*Stages, error) {
	return compile(source, collectOptions(opts...))
}

func compile(source string, o *options) (*Stages, error) {
	logger := o.stageLogger()

	tokens, err := lexer.Tokenize(source, lexer.WithFilename(o.filename))
	if err != nil {
		logger.Debug().Err(err).Msg("tokenize failed")
		return nil, err
	}
	if tokens == nil {
		tokens = []token.Token{}
	}
	logger.Debug().Int("tokens", len(tokens)).Msg("tokenized")

	program, err := parser.Parse(tokens, o.parserOpts(source)...)
	if err != nil {
		logger.Debug().Err(err).Msg("parse failed")
		return nil, err
	}
	logger.Debug().Int("nodes", countNodes(program)).Msg("parsed")

	tree, err := o.transformer.Transform(program)
	if err == nil && tree == nil {
		err = errors.NewTransformError("<nil>")
	}
	if err != nil {
		logger.Debug().Err(err).Msg("transform failed")
		return nil, err
	}
	logger.Debug().Int("statements", len(tree.Body)).Msg("transformed")

	output, err := codegen.Generate(tree)
	if err != nil {
		logger.Debug().Err(err).Msg("codegen failed")
		return nil, err
	}
	logger.Debug().Int("bytes", len(output)).Msg("generated")

	return &Stages{Tokens: tokens, AST: program, Target: tree, Output: output}, nil
}

func (o *options) stageLogger() zerolog.Logger {
	if o.filename == "" {
		return o.logger
	}
	return o.logger.With().Str("file", o.filename).Logger()
}

func countNodes(program *ast.Program) int {
	n := 0
	for range ast.Preorder(program) {
		n++
	}
	return n
}
