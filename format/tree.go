package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/qasmtools/cq/ast"
)

// TreeEncoder renders the program as indented text, one node per line
// with its source location at the end.
type TreeEncoder struct {
	w    io.Writer
	prog *ast.Program
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(prog *ast.Program) error {
	e.prog = prog
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	writeTree(&sb, e.prog, 0)
	return []byte(sb.String()), nil
}

func writeTree(sb *strings.Builder, n ast.Node, depth int) {
	indent := strings.Repeat("  ", depth)

	switch node := n.(type) {
	case *ast.Program:
		fmt.Fprintf(sb, "%sprogram %s\n", indent, node.Loc)
		for _, stmt := range node.Statements {
			writeTree(sb, stmt, depth+1)
		}
	case *ast.Version:
		fmt.Fprintf(sb, "%sversion %s %s\n", indent, node.Text(), node.Loc)
	case *ast.QubitsDecl:
		fmt.Fprintf(sb, "%squbits %s\n", indent, node.Loc)
		writeTree(sb, node.Count, depth+1)
	case *ast.Mapping:
		fmt.Fprintf(sb, "%smap %s\n", indent, node.Loc)
		writeTree(sb, node.Target, depth+1)
		writeTree(sb, node.Alias, depth+1)
	case *ast.SubcircuitLabel:
		if node.Count != nil {
			fmt.Fprintf(sb, "%ssubcircuit %s(%d) %s\n", indent, node.Name.Name, node.Count.Value, node.Loc)
		} else {
			fmt.Fprintf(sb, "%ssubcircuit %s %s\n", indent, node.Name.Name, node.Loc)
		}
	case *ast.Instruction:
		fmt.Fprintf(sb, "%sinstruction %s %s\n", indent, node.Name.Name, node.Loc)
		for _, op := range node.Operands {
			writeTree(sb, op, depth+1)
		}
	case *ast.Bundle:
		fmt.Fprintf(sb, "%sbundle %s\n", indent, node.Loc)
		for _, item := range node.Items {
			writeTree(sb, item, depth+1)
		}
	case *ast.ErrorStatement:
		fmt.Fprintf(sb, "%serror %q %s\n", indent, node.Message, node.Loc)
	case *ast.Identifier:
		fmt.Fprintf(sb, "%sident %s %s\n", indent, node.Name, node.Loc)
	case *ast.IntLiteral:
		fmt.Fprintf(sb, "%sint %s %s\n", indent, node.String(), node.Loc)
	case *ast.FloatLiteral:
		fmt.Fprintf(sb, "%sfloat %s %s\n", indent, node.String(), node.Loc)
	case *ast.StringLiteral:
		fmt.Fprintf(sb, "%sstring %s %s\n", indent, node.String(), node.Loc)
	case *ast.IndexedRef:
		fmt.Fprintf(sb, "%sref %s %s\n", indent, node.String(), node.Loc)
	}
}
