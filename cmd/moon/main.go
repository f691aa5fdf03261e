package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "moon",
		Short:         "Compile Lisp-like call expressions to C-like calls",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}
			processGlobalFlags()
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Config file (default is $HOME/.moon.yaml)")
	flags.Bool("no-color", false, "Disable colored output")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.Bool("log-json", false, "Write logs as JSON lines")
	flags.Int("max-depth", 0, "Maximum call nesting depth (0 uses the default)")
	flags.Int("workers", 0, "Files compiled concurrently (0 uses GOMAXPROCS)")
	flags.StringP("output", "o", "", "Output format (json, text)")
	for _, name := range []string{"config", "no-color", "log-level", "log-json", "max-depth", "workers", "output"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
	if err := root.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp)); err != nil {
		panic(err)
	}

	root.AddCommand(
		newCompileCmd(),
		newTokensCmd(),
		newAstCmd(),
		newReplCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprint(os.Stderr, renderError(err))
		os.Exit(1)
	}
}
