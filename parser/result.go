package parser

import "github.com/qasmtools/cq/ast"

// ParseResult is the outcome of one parse. Root may hold a partial
// tree with error markers even when Errors is non-empty; callers must
// treat an empty error list as the sole success signal.
type ParseResult struct {
	Root   *ast.Program
	Errors []string
}

// Succeeded reports whether the parse produced no diagnostics.
func (r ParseResult) Succeeded() bool {
	return len(r.Errors) == 0
}
