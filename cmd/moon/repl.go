package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
	"github.com/Relsola/moon"
	"github.com/spf13/cobra"
)

const replPrompt = "moon> "

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Compile expressions interactively",
		Long: `Compile expressions interactively, one line at a time.

Type :quit or press Ctrl-D to exit. Up and Down walk the history.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := compileOptions()
			if isTerminalIO() {
				return runInteractiveRepl(os.Stdout, opts)
			}
			return runRepl(cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}
}

// evalLine compiles one line of input and writes the result. It reports
// whether the session should end.
func evalLine(w io.Writer, line string, opts []moon.Option) (quit bool) {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return false
	case ":quit", ":q", ":exit":
		return true
	}
	output, err := moon.Compile(line, opts...)
	if err != nil {
		fmt.Fprint(w, renderError(err))
		return false
	}
	if output != "" {
		fmt.Fprintln(w, output)
	}
	return false
}

// runRepl reads lines from r until EOF. It is used when no terminal is
// attached, e.g. when input is piped.
func runRepl(r io.Reader, w io.Writer, opts []moon.Option) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if evalLine(w, scanner.Text(), opts) {
			return nil
		}
	}
	return scanner.Err()
}

func runInteractiveRepl(w io.Writer, opts []moon.Option) error {
	fmt.Fprintf(w, "moon %s %s\r\n", version, faint("(:quit to exit)"))
	ed := &lineEditor{}
	ed.render(w)
	return keyboard.Listen(func(key keys.Key) (stop bool, err error) {
		line, submitted, quit := ed.handle(key)
		if quit {
			fmt.Fprint(w, "\r\n")
			return true, nil
		}
		if submitted {
			fmt.Fprint(w, "\r\n")
			var out strings.Builder
			quit = evalLine(&out, line, opts)
			// the terminal is in raw mode, so newlines need a carriage return
			fmt.Fprint(w, strings.ReplaceAll(out.String(), "\n", "\r\n"))
			if quit {
				return true, nil
			}
		}
		ed.render(w)
		return false, nil
	})
}

// lineEditor holds the state of the line being typed and the history of
// submitted lines.
type lineEditor struct {
	buf     []rune
	cursor  int
	history []string
	histIdx int // index into history while browsing, len(history) otherwise
}

// handle applies one key press. When the line is submitted it is returned
// with submitted set; quit is set on Ctrl-C, or Ctrl-D on an empty line.
func (e *lineEditor) handle(key keys.Key) (line string, submitted, quit bool) {
	switch key.Code {
	case keys.CtrlC:
		return "", false, true
	case keys.CtrlD:
		if len(e.buf) == 0 {
			return "", false, true
		}
	case keys.Enter:
		line = string(e.buf)
		if strings.TrimSpace(line) != "" {
			e.history = append(e.history, line)
		}
		e.histIdx = len(e.history)
		e.buf = e.buf[:0]
		e.cursor = 0
		return line, true, false
	case keys.RuneKey:
		e.insert(key.Runes...)
	case keys.Space:
		e.insert(' ')
	case keys.Backspace:
		if e.cursor > 0 {
			e.buf = append(e.buf[:e.cursor-1], e.buf[e.cursor:]...)
			e.cursor--
		}
	case keys.Left:
		if e.cursor > 0 {
			e.cursor--
		}
	case keys.Right:
		if e.cursor < len(e.buf) {
			e.cursor++
		}
	case keys.Up:
		if e.histIdx > 0 {
			e.histIdx--
			e.set(e.history[e.histIdx])
		}
	case keys.Down:
		if e.histIdx < len(e.history)-1 {
			e.histIdx++
			e.set(e.history[e.histIdx])
		} else {
			e.histIdx = len(e.history)
			e.set("")
		}
	case keys.Esc:
		e.set("")
	}
	return "", false, false
}

func (e *lineEditor) insert(runes ...rune) {
	tail := append([]rune{}, e.buf[e.cursor:]...)
	e.buf = append(append(e.buf[:e.cursor], runes...), tail...)
	e.cursor += len(runes)
}

func (e *lineEditor) set(line string) {
	e.buf = []rune(line)
	e.cursor = len(e.buf)
}

// render redraws the prompt and current line, leaving the terminal cursor at
// the editing position.
func (e *lineEditor) render(w io.Writer) {
	fmt.Fprintf(w, "\r\x1b[K%s%s", green(replPrompt), string(e.buf))
	if back := len(e.buf) - e.cursor; back > 0 {
		fmt.Fprintf(w, "\x1b[%dD", back)
	}
}
