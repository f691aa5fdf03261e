package main

import (
	"encoding/json"
	goerrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Relsola/moon"
	"github.com/Relsola/moon/errors"
	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var outputFormatsCompletion = []string{"json", "text"}

var (
	red   = color.New(color.FgRed).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
)

func isTerminalIO() bool {
	stdin := os.Stdin.Fd()
	stdout := os.Stdout.Fd()
	inTerm := isatty.IsTerminal(stdin) || isatty.IsCygwinTerminal(stdin)
	outTerm := isatty.IsTerminal(stdout) || isatty.IsCygwinTerminal(stdout)
	return inTerm && outTerm
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// compileOptions returns the library options implied by the global flags.
func compileOptions() []moon.Option {
	return []moon.Option{
		moon.WithLogger(newLogger()),
		moon.WithMaxDepth(viper.GetInt("max-depth")),
		moon.WithWorkers(viper.GetInt("workers")),
	}
}

// renderError formats err for the terminal. Compiler diagnostics get the
// full source excerpt; batch failures are rendered one per file.
func renderError(err error) string {
	useColor := !color.NoColor && stderrIsTerminal()
	var merr *multierror.Error
	if goerrors.As(err, &merr) {
		var formatted []*errors.FormattedError
		for _, e := range merr.Errors {
			var fe errors.FormattableError
			if !goerrors.As(e, &fe) {
				return err.Error() + "\n"
			}
			formatted = append(formatted, fe.ToFormatted())
		}
		return errors.NewFormatter(useColor).FormatMultiple(formatted)
	}
	var fe errors.FormattableError
	if goerrors.As(err, &fe) {
		return errors.NewFormatter(useColor).Format(fe.ToFormatted())
	}
	return red(err.Error()) + "\n"
}

// writeOutput prints v in the requested format. Text output uses the
// value's fmt representation; JSON is colorized unless color is disabled.
func writeOutput(w io.Writer, v any, text func() string) error {
	switch strings.ToLower(viper.GetString("output")) {
	case "", "text":
		_, err := fmt.Fprintln(w, text())
		return err
	case "json":
		data, err := getOutputJSON(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return fmt.Errorf("unknown output format: %s", viper.GetString("output"))
	}
}

func getOutputJSON(v any) ([]byte, error) {
	if color.NoColor {
		return json.MarshalIndent(v, "", "  ")
	}
	return prettyjson.Marshal(v)
}

// readSources determines the input for a command. There are three
// possibilities:
// 1. --code <code>
// 2. --stdin (read code from stdin)
// 3. one or more paths as args
func readSources(cmd *cobra.Command, args []string) ([]moon.Source, error) {
	var codeFlagSet bool
	if f := cmd.Flags().Lookup("code"); f != nil && f.Changed {
		codeFlagSet = true
	}
	var stdinFlagSet bool
	if f := cmd.Flags().Lookup("stdin"); f != nil && f.Changed {
		stdinFlagSet = true
	}
	pathSupplied := len(args) > 0
	// Error if multiple input sources are specified
	if pathSupplied && (codeFlagSet || stdinFlagSet) {
		return nil, goerrors.New("multiple input sources specified")
	} else if codeFlagSet && stdinFlagSet {
		return nil, goerrors.New("multiple input sources specified")
	}
	switch {
	case stdinFlagSet:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		return []moon.Source{{Name: "<stdin>", Code: string(data)}}, nil
	case pathSupplied:
		sources := make([]moon.Source, 0, len(args))
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			sources = append(sources, moon.Source{Name: path, Code: string(data)})
		}
		return sources, nil
	case codeFlagSet:
		code, _ := cmd.Flags().GetString("code")
		return []moon.Source{{Code: code}}, nil
	}
	return nil, goerrors.New("no input: pass --code, --stdin or a file")
}

// readSource is readSources for commands taking a single input.
func readSource(cmd *cobra.Command, args []string) (moon.Source, error) {
	sources, err := readSources(cmd, args)
	if err != nil {
		return moon.Source{}, err
	}
	if len(sources) != 1 {
		return moon.Source{}, goerrors.New("expected a single input")
	}
	return sources[0], nil
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("code", "c", "", "Code to read")
	cmd.Flags().Bool("stdin", false, "Read code from stdin")
}
