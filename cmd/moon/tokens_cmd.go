package main

import (
	"strings"

	"github.com/Relsola/moon/lexer"
	"github.com/Relsola/moon/token"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Display the tokens for source code",
		Args:  cobra.MaximumNArgs(1),
		RunE:  tokensHandler,
	}
	addInputFlags(cmd)
	return cmd
}

func tokensHandler(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args)
	if err != nil {
		return err
	}
	tokens, err := lexer.Tokenize(src.Code, lexer.WithFilename(src.Name))
	if err != nil {
		return err
	}
	if tokens == nil {
		tokens = []token.Token{}
	}
	return writeOutput(cmd.OutOrStdout(), tokens, func() string {
		parts := make([]string, len(tokens))
		for i, tok := range tokens {
			parts[i] = tok.String()
		}
		return strings.Join(parts, " ")
	})
}
