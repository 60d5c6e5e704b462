package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/qasmtools/cq/ast"
)

type ASTJSONEncoder struct {
	w    io.Writer
	prog *ast.Program
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(prog *ast.Program) error {
	e.prog = prog
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(e.prog), "", "  ")
}

type astJSONNode struct {
	Kind     string         `json:"kind"`
	Location *astJSONLoc    `json:"location,omitempty"`
	Name     string         `json:"name,omitempty"`
	Value    string         `json:"value,omitempty"`
	Message  string         `json:"message,omitempty"`
	Children []*astJSONNode `json:"children,omitempty"`
}

type astJSONLoc struct {
	File        string `json:"file"`
	FirstLine   int    `json:"firstLine"`
	FirstColumn int    `json:"firstColumn"`
	LastLine    int    `json:"lastLine"`
	LastColumn  int    `json:"lastColumn"`
}

func nodeToJSON(n ast.Node) *astJSONNode {
	jn := &astJSONNode{}

	if loc := n.Location(); loc.Known() {
		jn.Location = &astJSONLoc{
			File:        loc.Filename,
			FirstLine:   loc.FirstLine,
			FirstColumn: loc.FirstColumn,
			LastLine:    loc.LastLine,
			LastColumn:  loc.LastColumn,
		}
	}

	switch node := n.(type) {
	case *ast.Program:
		jn.Kind = "Program"
		for _, stmt := range node.Statements {
			jn.Children = append(jn.Children, nodeToJSON(stmt))
		}
	case *ast.Version:
		jn.Kind = "Version"
		jn.Value = node.Text()
	case *ast.QubitsDecl:
		jn.Kind = "Qubits"
		jn.Children = append(jn.Children, nodeToJSON(node.Count))
	case *ast.Mapping:
		jn.Kind = "Map"
		jn.Children = append(jn.Children, nodeToJSON(node.Target), nodeToJSON(node.Alias))
	case *ast.SubcircuitLabel:
		jn.Kind = "Subcircuit"
		jn.Name = node.Name.Name
		if node.Count != nil {
			jn.Children = append(jn.Children, nodeToJSON(node.Count))
		}
	case *ast.Instruction:
		jn.Kind = "Instruction"
		jn.Name = node.Name.Name
		for _, op := range node.Operands {
			jn.Children = append(jn.Children, nodeToJSON(op))
		}
	case *ast.Bundle:
		jn.Kind = "Bundle"
		for _, item := range node.Items {
			jn.Children = append(jn.Children, nodeToJSON(item))
		}
	case *ast.ErrorStatement:
		jn.Kind = "Error"
		jn.Message = node.Message
	case *ast.Identifier:
		jn.Kind = "Identifier"
		jn.Name = node.Name
	case *ast.IntLiteral:
		jn.Kind = "Int"
		jn.Value = node.String()
	case *ast.FloatLiteral:
		jn.Kind = "Float"
		jn.Value = node.String()
	case *ast.StringLiteral:
		jn.Kind = "String"
		jn.Value = node.Value
	case *ast.IndexedRef:
		jn.Kind = "Ref"
		jn.Name = node.Target.Name
		for _, item := range node.Indices {
			jn.Children = append(jn.Children, nodeToJSON(item))
		}
	case *ast.IndexItem:
		jn.Kind = "Index"
		jn.Children = append(jn.Children, nodeToJSON(node.First))
		if node.Last != nil {
			jn.Children = append(jn.Children, nodeToJSON(node.Last))
		}
	default:
		jn.Kind = fmt.Sprintf("%T", n)
	}

	return jn
}
