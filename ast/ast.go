// Package ast defines the syntax tree produced by parsing cQASM source
// text, along with the source locations attached to every node.
//
// Trees may be partial: when the parser recovers from a syntax error it
// emits an ErrorStatement in place of the statement it could not build,
// so downstream tools can keep working with whatever did parse.
package ast

import (
	"strconv"
	"strings"
)

// Node is implemented by every syntax tree node.
type Node interface {
	Location() *SourceLocation
}

// Statement is a top-level program element.
type Statement interface {
	Node
	stmtNode()
}

// Expr is an instruction operand or other expression.
type Expr interface {
	Node
	String() string
	exprNode()
}

// NodeBase carries the source range common to all nodes.
type NodeBase struct {
	Loc SourceLocation
}

func (b *NodeBase) Location() *SourceLocation { return &b.Loc }

// Program is the root node of one parsed source unit. Statements appear
// in source order; version and qubit declarations are not required to
// come first at this layer.
type Program struct {
	NodeBase
	Statements []Statement
}

// Version returns the first version statement, or nil.
func (p *Program) Version() *Version {
	for _, s := range p.Statements {
		if v, ok := s.(*Version); ok {
			return v
		}
	}
	return nil
}

// Qubits returns the first qubit declaration, or nil.
func (p *Program) Qubits() *QubitsDecl {
	for _, s := range p.Statements {
		if q, ok := s.(*QubitsDecl); ok {
			return q
		}
	}
	return nil
}

// Version declares the language version, e.g. "version 1.0" has items
// [1, 0].
type Version struct {
	NodeBase
	Items []int
}

func (v *Version) stmtNode() {}

// Text renders the dotted version number.
func (v *Version) Text() string {
	parts := make([]string, len(v.Items))
	for i, item := range v.Items {
		parts[i] = strconv.Itoa(item)
	}
	return strings.Join(parts, ".")
}

// QubitsDecl declares the qubit register size, e.g. "qubits 5".
type QubitsDecl struct {
	NodeBase
	Count Expr
}

func (q *QubitsDecl) stmtNode() {}

// Mapping binds a name to an operand, e.g. "map q[0], data".
type Mapping struct {
	NodeBase
	Target Expr
	Alias  *Identifier
}

func (m *Mapping) stmtNode() {}

// SubcircuitLabel opens a named subcircuit, e.g. ".init" or
// ".measurement(100)". Count is nil when no iteration count is given.
type SubcircuitLabel struct {
	NodeBase
	Name  *Identifier
	Count *IntLiteral
}

func (s *SubcircuitLabel) stmtNode() {}

// Instruction is a single gate or directive with its operands, e.g.
// "x q[0]" or "c-x b[0], q[1]". Conditional gates are ordinary
// instructions whose name carries the "c-" prefix; decomposing them is
// left to semantic analysis.
type Instruction struct {
	NodeBase
	Name     *Identifier
	Operands []Expr
}

func (i *Instruction) stmtNode() {}

// Bundle groups instructions that execute in parallel, e.g.
// "{ x q[0] | y q[1] }".
type Bundle struct {
	NodeBase
	Items []*Instruction
}

func (b *Bundle) stmtNode() {}

// ErrorStatement marks a region the parser could not turn into a real
// statement. Message is the diagnostic text without its location
// prefix; the full message is also recorded in the parse result.
type ErrorStatement struct {
	NodeBase
	Message string
}

func (e *ErrorStatement) stmtNode() {}

// Identifier names a gate, register, or alias.
type Identifier struct {
	NodeBase
	Name string
}

func (i *Identifier) exprNode()      {}
func (i *Identifier) String() string { return i.Name }

// IntLiteral is an integer operand.
type IntLiteral struct {
	NodeBase
	Value int64
}

func (i *IntLiteral) exprNode()      {}
func (i *IntLiteral) String() string { return strconv.FormatInt(i.Value, 10) }

// FloatLiteral is a floating-point operand.
type FloatLiteral struct {
	NodeBase
	Value float64
}

func (f *FloatLiteral) exprNode()      {}
func (f *FloatLiteral) String() string { return strconv.FormatFloat(f.Value, 'g', -1, 64) }

// StringLiteral is a quoted operand with its escapes resolved.
type StringLiteral struct {
	NodeBase
	Value string
}

func (s *StringLiteral) exprNode()      {}
func (s *StringLiteral) String() string { return strconv.Quote(s.Value) }

// IndexedRef selects elements of a register, e.g. "q[0]" or
// "q[0:3,7]".
type IndexedRef struct {
	NodeBase
	Target  *Identifier
	Indices []*IndexItem
}

func (r *IndexedRef) exprNode() {}

func (r *IndexedRef) String() string {
	var b strings.Builder
	b.WriteString(r.Target.Name)
	b.WriteByte('[')
	for i, item := range r.Indices {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(item.String())
	}
	b.WriteByte(']')
	return b.String()
}

// IndexItem is one entry of an index list: a single index, or an
// inclusive range when Last is non-nil.
type IndexItem struct {
	NodeBase
	First Expr
	Last  Expr
}

func (it *IndexItem) String() string {
	if it.Last == nil {
		return it.First.String()
	}
	return it.First.String() + ":" + it.Last.String()
}
