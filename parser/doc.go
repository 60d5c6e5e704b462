// Package parser turns cQASM source text into syntax trees with
// precise source locations and accumulated diagnostics.
//
// # Overview
//
// Parsing is a single blocking call: hand the package a file, a
// reader, or a string, and get back a ParseResult holding the tree
// and every problem found along the way. Malformed input never
// produces a panic or an error return; it produces diagnostics and,
// wherever recovery allowed, a partial tree.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Grammar   │
//	│ file/string │     │  (tokens)   │     │   (ast)     │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	       │                   │                   │
//	       ▼                   ▼                   ▼
//	┌─────────────────────────────────────────────────────┐
//	│        parse helper: resources + error sink         │
//	└─────────────────────────────────────────────────────┘
//
// A helper is constructed per call. It opens or adopts the input,
// binds a fresh lexer to it, runs the grammar, collects diagnostics
// through its error sink, and releases everything it opened on every
// exit path.
//
// # Results and Errors
//
// ParseResult.Errors holds plain strings in detection order, formatted
// as "file:line:column: message" when a position is known. An empty
// list is the sole success signal; the tree in Root may be present and
// partially usable even when errors were found, with ErrorStatement
// markers standing in for the regions that did not parse:
//
//	Program
//	├── Version 1.0
//	├── QubitsDecl 2
//	└── ErrorStatement("expected newline or ';' after statement...")
//
// Recovery is statement-level: after a failure the grammar skips ahead
// to the next newline or semicolon and resumes.
//
// # Entry Points
//
//	// ParseFile opens, reads, and closes the named file.
//	func ParseFile(filename string, opts ...Option) ParseResult
//
//	// ParseReader drains an already-open stream without closing it.
//	func ParseReader(r io.Reader, filename string, opts ...Option) ParseResult
//
//	// ParseString parses in-memory text.
//	func ParseString(data, filename string, opts ...Option) ParseResult
//
// Each call performs exactly one parse and retains no state afterward.
//
// # Thread Safety
//
// Nothing is shared between calls, so independent parses may run
// concurrently from different goroutines. The reader passed to
// ParseReader must not be touched by anyone else for the duration of
// the call.
//
// # Example Usage
//
//	res := parser.ParseString("version 1.0\nqubits 2\nh q[0]", "bell.cq")
//	if !res.Succeeded() {
//	    for _, msg := range res.Errors {
//	        fmt.Println(msg)
//	    }
//	}
//	fmt.Println(res.Root.Version().Text()) // "1.0"
package parser
