package parser

import (
	"fmt"
	"io"
	"os"

	"github.com/qasmtools/cq/ast"
)

// DefaultMaxErrors bounds the diagnostics collected per parse before
// the parser gives up on pathological input. WithMaxErrors overrides
// it; zero or negative removes the bound.
const DefaultMaxErrors = 50

type Option func(*parseHelper)

// WithMaxErrors caps the number of diagnostics recorded by one parse.
// Once the cap is reached a final "too many errors" message is appended
// and parsing stops. n <= 0 disables the cap.
func WithMaxErrors(n int) Option {
	return func(h *parseHelper) {
		h.maxErrors = n
	}
}

type inputMode int

const (
	modeFile inputMode = iota
	modeReader
	modeString
)

// parseHelper drives one parse from construction to teardown. It binds
// exactly one input source, owns the lexer for the duration of the
// call, and is the error sink the grammar reports through. Helpers are
// never reused; every entry point builds a fresh one.
type parseHelper struct {
	mode      inputMode
	path      string
	reader    io.Reader
	data      string
	filename  string
	maxErrors int

	file      *os.File
	lx        *Lexer
	res       ParseResult
	truncated bool
}

func newParseHelper(mode inputMode, filename string, opts []Option) *parseHelper {
	if filename == "" {
		filename = ast.UnknownFilename
	}
	h := &parseHelper{
		mode:      mode,
		filename:  filename,
		maxErrors: DefaultMaxErrors,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// construct acquires the input and binds the lexer to it. On failure it
// records a single diagnostic and reports false, leaving the helper
// safe to destroy but unfit to parse.
func (h *parseHelper) construct() bool {
	switch h.mode {
	case modeFile:
		f, err := os.Open(h.path)
		if err != nil {
			h.pushError(fmt.Sprintf("cannot open %s: %v", h.path, err))
			return false
		}
		h.file = f
		data, err := io.ReadAll(f)
		if err != nil {
			h.pushError(fmt.Sprintf("cannot read %s: %v", h.path, err))
			return false
		}
		h.lx = NewLexer(data, h.filename)
	case modeReader:
		data, err := io.ReadAll(h.reader)
		if err != nil {
			h.pushError(fmt.Sprintf("cannot read %s: %v", h.filename, err))
			return false
		}
		h.lx = NewLexer(data, h.filename)
	case modeString:
		h.lx = NewLexer([]byte(h.data), h.filename)
	}
	return true
}

// parse runs the grammar to completion. The grammar reports problems
// through pushError and always leaves behind whatever tree it managed
// to build.
func (h *parseHelper) parse() {
	g := newGrammar(h, h.lx)
	h.res.Root = g.parseProgram()
}

// pushError appends one diagnostic in detection order, honoring the
// configured cap.
func (h *parseHelper) pushError(msg string) {
	if h.truncated {
		return
	}
	if h.maxErrors > 0 && len(h.res.Errors) >= h.maxErrors {
		h.truncated = true
		h.res.Errors = append(h.res.Errors, fmt.Sprintf("%s: too many errors, giving up", h.filename))
		return
	}
	h.res.Errors = append(h.res.Errors, msg)
}

// stopped reports whether the error cap has been hit and the grammar
// should wind down.
func (h *parseHelper) stopped() bool {
	return h.truncated
}

// destroy releases everything the helper acquired. Files opened by
// name are closed exactly once; caller-supplied readers are left
// untouched. Safe to call after a failed construct.
func (h *parseHelper) destroy() {
	if h.file != nil {
		h.file.Close()
		h.file = nil
	}
	h.lx = nil
}

func (h *parseHelper) run() ParseResult {
	defer h.destroy()
	if h.construct() {
		h.parse()
	}
	return h.res
}

// ParseFile opens and parses the named file. When the file cannot be
// opened or read the result carries a single error and no tree.
func ParseFile(filename string, opts ...Option) ParseResult {
	h := newParseHelper(modeFile, filename, opts)
	h.path = filename
	return h.run()
}

// ParseReader parses an already-open stream. The reader stays owned by
// the caller and is read to completion, never closed. filename is used
// for diagnostics only; empty means "<unknown>".
func ParseReader(r io.Reader, filename string, opts ...Option) ParseResult {
	h := newParseHelper(modeReader, filename, opts)
	h.reader = r
	return h.run()
}

// ParseString parses in-memory source text. filename is used for
// diagnostics only; empty means "<unknown>".
func ParseString(data, filename string, opts ...Option) ParseResult {
	h := newParseHelper(modeString, filename, opts)
	h.data = data
	return h.run()
}
