package format

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Diagnostic is one parser message split into its location prefix and
// text. Line and Column are 1-based; both are 0 when the message has no
// position, as with resource errors.
type Diagnostic struct {
	File   string
	Line   int
	Column int
	Text   string
}

var messageRE = regexp.MustCompile(`^(.*?):(\d+):(\d+): (.*)$`)

// ParseMessage splits a "<file>:<line>:<column>: <text>" parser message.
// Messages without the position prefix come back with only Text set.
func ParseMessage(msg string) Diagnostic {
	m := messageRE.FindStringSubmatch(msg)
	if m == nil {
		return Diagnostic{Text: msg}
	}
	line, _ := strconv.Atoi(m[2])
	column, _ := strconv.Atoi(m[3])
	return Diagnostic{File: m[1], Line: line, Column: column, Text: m[4]}
}

// styles holds color formatters for diagnostic output
type styles struct {
	location *color.Color
	text     *color.Color
	marker   *color.Color
}

// newStyles creates color formatters for diagnostics
// enabled=false respects --color=never and the NO_COLOR env var
func newStyles(enabled bool) *styles {
	s := &styles{
		location: color.New(color.Bold),
		text:     color.New(color.FgHiRed),
		marker:   color.New(color.Bold, color.FgHiGreen),
	}

	if !enabled {
		s.location.DisableColor()
		s.text.DisableColor()
		s.marker.DisableColor()
	}

	return s
}

// DiagnosticWriter renders parser messages the way compilers do. When
// the source text is supplied, each positioned message gets the
// offending line with a caret under the reported column.
type DiagnosticWriter struct {
	w      io.Writer
	styles *styles
	source []string
}

func NewDiagnosticWriter(w io.Writer, colored bool) *DiagnosticWriter {
	return &DiagnosticWriter{w: w, styles: newStyles(colored)}
}

// WithSource supplies the text behind the messages so excerpts can be
// shown. Returns the writer for chaining.
func (d *DiagnosticWriter) WithSource(src []byte) *DiagnosticWriter {
	text := strings.ReplaceAll(string(src), "\r\n", "\n")
	d.source = strings.Split(text, "\n")
	return d
}

func (d *DiagnosticWriter) Print(msg string) {
	diag := ParseMessage(msg)
	if diag.Line == 0 {
		fmt.Fprintln(d.w, d.styles.text.Sprint(msg))
		return
	}

	fmt.Fprintf(d.w, "%s %s\n",
		d.styles.location.Sprintf("%s:%d:%d:", diag.File, diag.Line, diag.Column),
		d.styles.text.Sprint(diag.Text))
	d.printExcerpt(diag)
}

func (d *DiagnosticWriter) PrintAll(msgs []string) {
	for _, msg := range msgs {
		d.Print(msg)
	}
}

func (d *DiagnosticWriter) printExcerpt(diag Diagnostic) {
	if diag.Line > len(d.source) {
		return
	}
	// Tabs count one column in parser positions, so one space keeps
	// the caret aligned.
	line := strings.ReplaceAll(d.source[diag.Line-1], "\t", " ")
	fmt.Fprintf(d.w, "    %s\n", line)
	if diag.Column > 0 && diag.Column <= len(line)+1 {
		fmt.Fprintf(d.w, "    %s%s\n",
			strings.Repeat(" ", diag.Column-1),
			d.styles.marker.Sprint("^"))
	}
}
