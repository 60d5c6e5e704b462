package format

import (
	"encoding"

	"github.com/qasmtools/cq/ast"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(prog *ast.Program) error
}
