package errors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Formatter renders diagnostics in a compiler-style layout:
//
//	parse error[E2002]: unexpected end of input while parsing call expression
//	  --> main.moon:1:7
//	   |
//	 1 | (add 2
//	   |       ^
//	   |
//	   = hint: check that every '(' has a matching ')'
//	   = note: the call opened at main.moon:1:1 is never closed
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool
}

// NewFormatter creates a new error formatter.
func NewFormatter(useColor bool) *Formatter {
	return &Formatter{UseColor: useColor}
}

var (
	styleLabel    = newPainter(color.FgHiRed, color.Bold)
	styleColon    = newPainter(color.FgRed)
	styleTag      = newPainter(color.FgHiBlack)
	styleGutter   = newPainter(color.FgHiBlack)
	styleLocation = newPainter(color.FgCyan)
	styleSource   = newPainter(color.FgWhite)
	styleCaret    = newPainter(color.FgHiRed)
	styleHint     = newPainter(color.FgHiYellow)
	styleNote     = newPainter(color.FgHiBlue)
)

// painter applies one color. The Formatter decides whether to call it, so
// the color is always enabled regardless of color.NoColor.
type painter struct {
	c *color.Color
}

func newPainter(attrs ...color.Attribute) painter {
	c := color.New(attrs...)
	c.EnableColor()
	return painter{c: c}
}

func (f *Formatter) paint(p painter, s string) string {
	if !f.UseColor {
		return s
	}
	return p.c.Sprint(s)
}

// FormattedError is an error broken into the parts a diagnostic shows.
type FormattedError struct {
	Code       ErrorCode
	Kind       string // "lex error", "parse error", ...
	Message    string
	Filename   string
	Line       int // 1-based, 0 when unknown
	Column     int // 1-based, 0 when unknown
	EndColumn  int // last underlined column on the same line
	SourceLine string
	Hint       string // how to fix the input
	Note       string // where related input lives
}

func (fe *FormattedError) location() string {
	switch {
	case fe.Filename != "" && fe.Line > 0:
		return fmt.Sprintf("%s:%d:%d", fe.Filename, fe.Line, fe.Column)
	case fe.Filename != "":
		return fe.Filename
	case fe.Line > 0:
		return fmt.Sprintf("%d:%d", fe.Line, fe.Column)
	}
	return ""
}

// Format renders a single diagnostic.
func (f *Formatter) Format(fe *FormattedError) string {
	var b strings.Builder
	f.write(&b, fe, "")
	return b.String()
}

// FormatMultiple renders several diagnostics followed by a count. Errors
// without a code are numbered in the header instead.
func (f *Formatter) FormatMultiple(errs []*FormattedError) string {
	switch len(errs) {
	case 0:
		return ""
	case 1:
		return f.Format(errs[0])
	}
	var b strings.Builder
	for i, fe := range errs {
		if i > 0 {
			b.WriteByte('\n')
		}
		f.write(&b, fe, fmt.Sprintf("%d/%d", i+1, len(errs)))
	}
	b.WriteByte('\n')
	b.WriteString(f.paint(styleLabel, fmt.Sprintf("found %d errors", len(errs))))
	b.WriteByte('\n')
	return b.String()
}

func (f *Formatter) write(b *strings.Builder, fe *FormattedError, seq string) {
	width := max(2, len(strconv.Itoa(fe.Line)))
	gutter := strings.Repeat(" ", width)
	bar := f.paint(styleGutter, " |")

	label := fe.Kind
	if label == "" {
		label = "error"
	}
	tag := string(fe.Code)
	if tag == "" {
		tag = seq
	}
	b.WriteString(f.paint(styleLabel, label))
	if tag != "" {
		b.WriteString(f.paint(styleTag, "["+tag+"]"))
	}
	b.WriteString(f.paint(styleColon, ": "))
	b.WriteString(fe.Message)
	b.WriteByte('\n')

	if loc := fe.location(); loc != "" {
		fmt.Fprintf(b, "%s%s %s\n", gutter, f.paint(styleLocation, "-->"), f.paint(styleLocation, loc))
	}

	if fe.SourceLine != "" {
		fmt.Fprintf(b, "%s%s\n", gutter, bar)
		lineNum := f.paint(styleGutter, fmt.Sprintf("%*d", width, fe.Line))
		fmt.Fprintf(b, "%s%s %s\n", lineNum, bar, f.paint(styleSource, fe.SourceLine))
		if fe.Column > 0 {
			carets := 1
			if fe.EndColumn > fe.Column {
				carets = fe.EndColumn - fe.Column + 1
			}
			fmt.Fprintf(b, "%s%s %s%s\n", gutter, bar,
				strings.Repeat(" ", fe.Column-1), f.paint(styleCaret, strings.Repeat("^", carets)))
		}
	}

	if fe.Hint != "" {
		fmt.Fprintf(b, "%s%s\n", gutter, bar)
		f.writeAnnotation(b, gutter, styleHint, "hint", fe.Hint)
	}
	if fe.Note != "" {
		f.writeAnnotation(b, gutter, styleNote, "note", fe.Note)
	}
}

func (f *Formatter) writeAnnotation(b *strings.Builder, gutter string, p painter, name, text string) {
	fmt.Fprintf(b, "%s%s%s%s\n", gutter, f.paint(styleGutter, " = "), f.paint(p, name+": "), text)
}
