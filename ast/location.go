package ast

import (
	"fmt"
	"strings"
)

// UnknownFilename is used in diagnostics and locations when the input
// carries no real path, such as in-memory strings.
const UnknownFilename = "<unknown>"

// SourceLocation describes an inclusive range within one named source
// unit. Lines and columns are 1-based; 0 means the coordinate is
// unknown. A location with FirstLine == 0 names a file but no position.
type SourceLocation struct {
	Filename    string
	FirstLine   int
	FirstColumn int
	LastLine    int
	LastColumn  int
}

// NewSourceLocation builds a location, collapsing an unset or backward
// end onto the start so the range is never decreasing.
func NewSourceLocation(filename string, firstLine, firstColumn, lastLine, lastColumn int) SourceLocation {
	l := SourceLocation{
		Filename:    filename,
		FirstLine:   firstLine,
		FirstColumn: firstColumn,
		LastLine:    lastLine,
		LastColumn:  lastColumn,
	}
	if l.LastLine < l.FirstLine {
		l.LastLine = l.FirstLine
		l.LastColumn = l.FirstColumn
	}
	if l.LastLine == l.FirstLine && l.LastColumn < l.FirstColumn {
		l.LastColumn = l.FirstColumn
	}
	return l
}

// ExpandToInclude grows the range forward so it encloses the given
// position. The first endpoint never moves and the range never shrinks;
// positions already enclosed leave the location unchanged.
func (l *SourceLocation) ExpandToInclude(line, column int) {
	if line > l.LastLine {
		l.LastLine = line
		l.LastColumn = column
	} else if line == l.LastLine && column > l.LastColumn {
		l.LastColumn = column
	}
}

// Known reports whether the location carries a real position rather
// than just a filename.
func (l SourceLocation) Known() bool {
	return l.FirstLine > 0
}

func (l SourceLocation) String() string {
	var b strings.Builder
	if l.Filename == "" {
		b.WriteString(UnknownFilename)
	} else {
		b.WriteString(l.Filename)
	}
	if l.FirstLine == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, ":%d", l.FirstLine)
	if l.FirstColumn > 0 {
		fmt.Fprintf(&b, ":%d", l.FirstColumn)
	}
	if l.LastLine > l.FirstLine {
		fmt.Fprintf(&b, "..%d", l.LastLine)
		if l.LastColumn > 0 {
			fmt.Fprintf(&b, ":%d", l.LastColumn)
		}
	} else if l.LastColumn > l.FirstColumn {
		fmt.Fprintf(&b, "..%d", l.LastColumn)
	}
	return b.String()
}
