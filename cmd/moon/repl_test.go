package main

import (
	"bytes"
	"testing"

	"atomicgo.dev/keyboard/keys"
	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func typeText(e *lineEditor, text string) {
	for _, r := range text {
		if r == ' ' {
			e.handle(keys.Key{Code: keys.Space})
			continue
		}
		e.handle(keys.Key{Code: keys.RuneKey, Runes: []rune{r}})
	}
}

func submit(e *lineEditor) string {
	line, submitted, quit := e.handle(keys.Key{Code: keys.Enter})
	if !submitted || quit {
		return "<not submitted>"
	}
	return line
}

func TestLineEditorTyping(t *testing.T) {
	e := &lineEditor{}
	typeText(e, "(add 1 2)")
	require.Equal(t, "(add 1 2)", submit(e))
	require.Empty(t, e.buf)
	require.Equal(t, 0, e.cursor)
}

func TestLineEditorCursor(t *testing.T) {
	e := &lineEditor{}
	typeText(e, "(ad 1)")
	for range 3 {
		e.handle(keys.Key{Code: keys.Left})
	}
	typeText(e, "d")
	require.Equal(t, "(add 1)", string(e.buf))

	e.handle(keys.Key{Code: keys.Right})
	e.handle(keys.Key{Code: keys.Backspace})
	require.Equal(t, "(add1)", string(e.buf))

	e.handle(keys.Key{Code: keys.Esc})
	require.Empty(t, e.buf)
}

func TestLineEditorHistory(t *testing.T) {
	e := &lineEditor{}
	typeText(e, "(a 1)")
	submit(e)
	typeText(e, "(b 2)")
	submit(e)
	submit(e) // blank lines are not recorded

	e.handle(keys.Key{Code: keys.Up})
	require.Equal(t, "(b 2)", string(e.buf))
	e.handle(keys.Key{Code: keys.Up})
	require.Equal(t, "(a 1)", string(e.buf))
	e.handle(keys.Key{Code: keys.Up})
	require.Equal(t, "(a 1)", string(e.buf))
	e.handle(keys.Key{Code: keys.Down})
	require.Equal(t, "(b 2)", string(e.buf))
	e.handle(keys.Key{Code: keys.Down})
	require.Empty(t, e.buf)
}

func TestLineEditorQuit(t *testing.T) {
	e := &lineEditor{}
	_, _, quit := e.handle(keys.Key{Code: keys.CtrlC})
	require.True(t, quit)

	typeText(e, "x")
	_, _, quit = e.handle(keys.Key{Code: keys.CtrlD})
	require.False(t, quit)

	e.handle(keys.Key{Code: keys.Backspace})
	_, _, quit = e.handle(keys.Key{Code: keys.CtrlD})
	require.True(t, quit)
}

func TestLineEditorRender(t *testing.T) {
	color.NoColor = true
	e := &lineEditor{}
	typeText(e, "(f)")
	e.handle(keys.Key{Code: keys.Left})
	var out bytes.Buffer
	e.render(&out)
	require.Equal(t, "\r\x1b[Kmoon> (f)\x1b[1D", out.String())
}

func TestEvalLine(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	require.False(t, evalLine(&out, "  (f 1)  ", nil))
	require.Equal(t, "f(1);\n", out.String())
	require.True(t, evalLine(&out, ":q", nil))
	require.False(t, evalLine(&out, "", nil))
}
