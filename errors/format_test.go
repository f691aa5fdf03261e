package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatWithFilenameAndHint(t *testing.T) {
	fe := &FormattedError{
		Code:       E2001,
		Kind:       "parse error",
		Message:    "cannot parse token",
		Filename:   "main.moon",
		Line:       2,
		Column:     3,
		EndColumn:  5,
		SourceLine: "  abc",
		Hint:       "remove it",
		Note:       "more context",
	}
	expected := "parse error[E2001]: cannot parse token\n" +
		"  --> main.moon:2:3\n" +
		"   |\n" +
		" 2 |   abc\n" +
		"   |   ^^^\n" +
		"   |\n" +
		"   = hint: remove it\n" +
		"   = note: more context\n"
	require.Equal(t, expected, NewFormatter(false).Format(fe))
}

func TestFormatWideGutter(t *testing.T) {
	fe := &FormattedError{
		Code:       E1001,
		Kind:       "lex error",
		Message:    "unrecognized character: '#'",
		Line:       120,
		Column:     2,
		SourceLine: "(#",
	}
	expected := "lex error[E1001]: unrecognized character: '#'\n" +
		"   --> 120:2\n" +
		"    |\n" +
		"120 | (#\n" +
		"    |  ^\n"
	require.Equal(t, expected, NewFormatter(false).Format(fe))
}

func TestFormatWithoutLocation(t *testing.T) {
	fe := &FormattedError{Kind: "error", Message: "boom"}
	require.Equal(t, "error: boom\n", NewFormatter(false).Format(fe))
}

func TestFormatMultiple(t *testing.T) {
	errs := []*FormattedError{
		{Kind: "error", Message: "first"},
		{Kind: "error", Message: "second"},
	}
	out := NewFormatter(false).FormatMultiple(errs)
	require.Contains(t, out, "error[1/2]: first\n")
	require.Contains(t, out, "error[2/2]: second\n")
	require.True(t, strings.HasSuffix(out, "found 2 errors\n"))

	require.Equal(t, "", NewFormatter(false).FormatMultiple(nil))
	require.Equal(t, "error: first\n", NewFormatter(false).FormatMultiple(errs[:1]))
}

func TestFormatColor(t *testing.T) {
	fe := &FormattedError{Kind: "error", Message: "boom"}
	out := NewFormatter(true).Format(fe)
	require.Contains(t, out, "\x1b[")
	require.Contains(t, out, "boom")
}
