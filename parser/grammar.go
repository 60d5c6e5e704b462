package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/qasmtools/cq/ast"
)

// grammar is the recursive descent driver. It pulls tokens from the
// lexer on demand so lexical and syntax errors reach the sink in the
// order they occur in the input, and it builds error-marker statements
// wherever recovery skips source text.
type grammar struct {
	h        *parseHelper
	lx       *Lexer
	file     string
	buf      []Token
	prev     Token
	consumed int
}

func newGrammar(h *parseHelper, lx *Lexer) *grammar {
	return &grammar{h: h, lx: lx, file: lx.file}
}

// fill buffers lookahead, dropping whitespace and comments and
// reporting lexer errors as they stream past.
func (g *grammar) fill(n int) {
	for len(g.buf) <= n {
		tok := g.lx.NextToken()
		switch tok.Kind {
		case TokenWhitespace, TokenComment:
			continue
		case TokenError:
			g.errorAt(tok.Span.Start, tok.Literal)
			continue
		}
		g.buf = append(g.buf, tok)
	}
}

func (g *grammar) peek() Token {
	g.fill(0)
	return g.buf[0]
}

func (g *grammar) advance() Token {
	tok := g.peek()
	if tok.Kind != TokenEOF {
		g.buf = g.buf[1:]
		g.prev = tok
		g.consumed++
	}
	return tok
}

func (g *grammar) check(kind TokenKind) bool {
	return g.peek().Kind == kind
}

func (g *grammar) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if g.check(kind) {
			return true
		}
	}
	return false
}

func (g *grammar) expect(kind TokenKind) *Token {
	tok := g.peek()
	if tok.Kind == kind {
		g.advance()
		return &tok
	}
	return nil
}

func (g *grammar) errorAt(pos Position, msg string) {
	g.h.pushError(fmt.Sprintf("%s:%d:%d: %s", g.file, pos.Line, pos.Column, msg))
}

func (g *grammar) locFrom(tok Token) ast.SourceLocation {
	return ast.NewSourceLocation(g.file,
		tok.Span.Start.Line, tok.Span.Start.Column,
		tok.Span.End.Line, tok.Span.End.Column)
}

// finish extends loc to cover the last consumed token.
func (g *grammar) finish(loc *ast.SourceLocation) {
	loc.ExpandToInclude(g.prev.Span.End.Line, g.prev.Span.End.Column)
}

func describe(tok Token) string {
	switch tok.Kind {
	case TokenEOF:
		return "end of input"
	case TokenNewline:
		return "end of line"
	case TokenIdent, TokenIntLiteral, TokenFloatLiteral, TokenStringLiteral:
		return fmt.Sprintf("%q", tok.Literal)
	}
	return fmt.Sprintf("%q", tok.Kind.String())
}

func (g *grammar) parseProgram() *ast.Program {
	prog := &ast.Program{}
	prog.Loc = ast.SourceLocation{Filename: g.file}

	for {
		g.skipSeparators()
		if g.check(TokenEOF) || g.h.stopped() {
			break
		}
		before := g.consumed

		g.addStatement(prog, g.parseStatement())

		if !g.check(TokenEOF) && !g.match(TokenNewline, TokenSemicolon) {
			tok := g.peek()
			g.addStatement(prog, g.errorStatement(g.locFrom(tok), tok,
				fmt.Sprintf("expected newline or ';' after statement, found %s", describe(tok))))
		}
		if g.consumed == before && !g.check(TokenEOF) {
			g.advance()
		}
	}
	return prog
}

func (g *grammar) addStatement(prog *ast.Program, stmt ast.Statement) {
	if stmt == nil {
		return
	}
	loc := stmt.Location()
	if !prog.Loc.Known() {
		prog.Loc = *loc
	} else {
		prog.Loc.ExpandToInclude(loc.LastLine, loc.LastColumn)
	}
	prog.Statements = append(prog.Statements, stmt)
}

func (g *grammar) skipSeparators() {
	for g.match(TokenNewline, TokenSemicolon) {
		g.advance()
	}
}

func (g *grammar) skipNewlines() {
	for g.check(TokenNewline) {
		g.advance()
	}
}

func (g *grammar) parseStatement() ast.Statement {
	switch g.peek().Kind {
	case TokenVersion:
		return g.parseVersion()
	case TokenQubits:
		return g.parseQubits()
	case TokenMap:
		return g.parseMapping()
	case TokenDot:
		return g.parseSubcircuitLabel()
	case TokenLBrace:
		return g.parseBundle()
	case TokenIdent:
		return g.parseInstruction()
	}
	tok := g.peek()
	return g.errorStatement(g.locFrom(tok), tok,
		fmt.Sprintf("expected statement, found %s", describe(tok)))
}

// errorStatement reports msg at tok, skips to the next statement
// separator, and returns a marker covering the abandoned region.
func (g *grammar) errorStatement(start ast.SourceLocation, at Token, msg string) *ast.ErrorStatement {
	g.errorAt(at.Span.Start, msg)
	return g.recoverStatement(start, msg)
}

// recoverStatement is errorStatement for failures that were already
// reported further down the call chain.
func (g *grammar) recoverStatement(start ast.SourceLocation, msg string) *ast.ErrorStatement {
	g.syncStatement()
	es := &ast.ErrorStatement{Message: msg}
	es.Loc = start
	g.finish(&es.Loc)
	return es
}

func (g *grammar) syncStatement() {
	for !g.match(TokenNewline, TokenSemicolon, TokenEOF) {
		g.advance()
	}
}

func (g *grammar) parseVersion() ast.Statement {
	kw := g.advance()
	loc := g.locFrom(kw)

	tok := g.peek()
	if tok.Kind != TokenIntLiteral && tok.Kind != TokenFloatLiteral {
		return g.errorStatement(loc, tok,
			fmt.Sprintf("expected version number after 'version', found %s", describe(tok)))
	}
	g.advance()

	items, err := versionItems(tok.Literal)
	if err != nil {
		return g.errorStatement(loc, tok, fmt.Sprintf("invalid version number %q", tok.Literal))
	}
	v := &ast.Version{Items: items}
	v.Loc = loc
	g.finish(&v.Loc)
	return v
}

func versionItems(literal string) ([]int, error) {
	parts := strings.Split(literal, ".")
	items := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		items[i] = n
	}
	return items, nil
}

func (g *grammar) parseQubits() ast.Statement {
	kw := g.advance()
	loc := g.locFrom(kw)

	count, msg := g.parseOperand()
	if msg != "" {
		return g.recoverStatement(loc, msg)
	}
	q := &ast.QubitsDecl{Count: count}
	q.Loc = loc
	g.finish(&q.Loc)
	return q
}

func (g *grammar) parseMapping() ast.Statement {
	kw := g.advance()
	loc := g.locFrom(kw)

	target, msg := g.parseOperand()
	if msg != "" {
		return g.recoverStatement(loc, msg)
	}
	if g.expect(TokenComma) == nil {
		tok := g.peek()
		return g.errorStatement(loc, tok,
			fmt.Sprintf("expected ',' after map target, found %s", describe(tok)))
	}
	aliasTok := g.expect(TokenIdent)
	if aliasTok == nil {
		tok := g.peek()
		return g.errorStatement(loc, tok,
			fmt.Sprintf("expected name after ',' in map, found %s", describe(tok)))
	}
	m := &ast.Mapping{Target: target, Alias: g.identifier(*aliasTok)}
	m.Loc = loc
	g.finish(&m.Loc)
	return m
}

func (g *grammar) parseSubcircuitLabel() ast.Statement {
	dot := g.advance()
	loc := g.locFrom(dot)

	nameTok := g.expect(TokenIdent)
	if nameTok == nil {
		tok := g.peek()
		return g.errorStatement(loc, tok,
			fmt.Sprintf("expected subcircuit name after '.', found %s", describe(tok)))
	}
	label := &ast.SubcircuitLabel{Name: g.identifier(*nameTok)}

	if g.check(TokenLParen) {
		g.advance()
		countTok := g.expect(TokenIntLiteral)
		if countTok == nil {
			tok := g.peek()
			return g.errorStatement(loc, tok,
				fmt.Sprintf("expected iteration count, found %s", describe(tok)))
		}
		count, msg := g.intLiteral(*countTok, *countTok, false)
		if msg != "" {
			return g.recoverStatement(loc, msg)
		}
		label.Count = count
		if g.expect(TokenRParen) == nil {
			tok := g.peek()
			return g.errorStatement(loc, tok,
				fmt.Sprintf("expected ')' after iteration count, found %s", describe(tok)))
		}
	}
	label.Loc = loc
	g.finish(&label.Loc)
	return label
}

func (g *grammar) parseBundle() ast.Statement {
	open := g.advance()
	loc := g.locFrom(open)
	bundle := &ast.Bundle{}

	g.skipNewlines()
	for {
		if !g.check(TokenIdent) {
			tok := g.peek()
			return g.errorStatement(loc, tok,
				fmt.Sprintf("expected instruction in bundle, found %s", describe(tok)))
		}
		inst, msg := g.parseBareInstruction()
		if msg != "" {
			return g.recoverStatement(loc, msg)
		}
		bundle.Items = append(bundle.Items, inst)
		g.skipNewlines()
		if g.check(TokenPipe) {
			g.advance()
			g.skipNewlines()
			continue
		}
		break
	}
	if g.expect(TokenRBrace) == nil {
		tok := g.peek()
		return g.errorStatement(loc, tok,
			fmt.Sprintf("expected '|' or '}' in bundle, found %s", describe(tok)))
	}
	bundle.Loc = loc
	g.finish(&bundle.Loc)
	return bundle
}

func (g *grammar) parseInstruction() ast.Statement {
	start := g.locFrom(g.peek())
	inst, msg := g.parseBareInstruction()
	if msg != "" {
		return g.recoverStatement(start, msg)
	}
	return inst
}

// parseBareInstruction parses a gate name and its operand list. The
// current token must be an identifier; bundles reuse this for each
// parallel item.
func (g *grammar) parseBareInstruction() (*ast.Instruction, string) {
	nameTok := g.advance()
	inst := &ast.Instruction{Name: g.identifier(nameTok)}
	inst.Loc = g.locFrom(nameTok)

	if g.startsOperand() {
		for {
			op, msg := g.parseOperand()
			if msg != "" {
				return nil, msg
			}
			inst.Operands = append(inst.Operands, op)
			if g.check(TokenComma) {
				g.advance()
				continue
			}
			break
		}
	}
	g.finish(&inst.Loc)
	return inst, ""
}

func (g *grammar) startsOperand() bool {
	return g.match(TokenIdent, TokenIntLiteral, TokenFloatLiteral, TokenStringLiteral, TokenMinus)
}

// parseOperand reports its own failures; a non-empty message means one
// diagnostic has been pushed and the caller should recover.
func (g *grammar) parseOperand() (ast.Expr, string) {
	tok := g.peek()
	switch tok.Kind {
	case TokenMinus:
		return g.parseNegatedLiteral()
	case TokenIntLiteral:
		g.advance()
		return exprOrMsg(g.intLiteral(tok, tok, false))
	case TokenFloatLiteral:
		g.advance()
		return g.floatLiteral(tok, tok, false)
	case TokenStringLiteral:
		g.advance()
		s := &ast.StringLiteral{Value: unquote(tok.Literal)}
		s.Loc = g.locFrom(tok)
		return s, ""
	case TokenIdent:
		return g.parseRef()
	}
	msg := fmt.Sprintf("expected operand, found %s", describe(tok))
	g.errorAt(tok.Span.Start, msg)
	return nil, msg
}

func (g *grammar) parseNegatedLiteral() (ast.Expr, string) {
	minus := g.advance()
	tok := g.peek()
	switch tok.Kind {
	case TokenIntLiteral:
		g.advance()
		return exprOrMsg(g.intLiteral(tok, minus, true))
	case TokenFloatLiteral:
		g.advance()
		return g.floatLiteral(tok, minus, true)
	}
	msg := fmt.Sprintf("expected number after '-', found %s", describe(tok))
	g.errorAt(tok.Span.Start, msg)
	return nil, msg
}

// exprOrMsg widens *ast.IntLiteral results to ast.Expr, keeping a nil
// pointer from becoming a non-nil interface.
func exprOrMsg(lit *ast.IntLiteral, msg string) (ast.Expr, string) {
	if lit == nil {
		return nil, msg
	}
	return lit, msg
}

func (g *grammar) intLiteral(numTok, startTok Token, negate bool) (*ast.IntLiteral, string) {
	v, err := strconv.ParseInt(numTok.Literal, 10, 64)
	if err != nil {
		msg := fmt.Sprintf("integer literal %q out of range", numTok.Literal)
		g.errorAt(numTok.Span.Start, msg)
		return nil, msg
	}
	if negate {
		v = -v
	}
	lit := &ast.IntLiteral{Value: v}
	lit.Loc = g.locFrom(startTok)
	lit.Loc.ExpandToInclude(numTok.Span.End.Line, numTok.Span.End.Column)
	return lit, ""
}

func (g *grammar) floatLiteral(numTok, startTok Token, negate bool) (ast.Expr, string) {
	v, err := strconv.ParseFloat(numTok.Literal, 64)
	if err != nil {
		msg := fmt.Sprintf("invalid float literal %q", numTok.Literal)
		g.errorAt(numTok.Span.Start, msg)
		return nil, msg
	}
	if negate {
		v = -v
	}
	lit := &ast.FloatLiteral{Value: v}
	lit.Loc = g.locFrom(startTok)
	lit.Loc.ExpandToInclude(numTok.Span.End.Line, numTok.Span.End.Column)
	return lit, ""
}

func (g *grammar) identifier(tok Token) *ast.Identifier {
	id := &ast.Identifier{Name: tok.Literal}
	id.Loc = g.locFrom(tok)
	return id
}

func (g *grammar) parseRef() (ast.Expr, string) {
	nameTok := g.advance()
	name := g.identifier(nameTok)
	if !g.check(TokenLBracket) {
		return name, ""
	}
	g.advance()

	ref := &ast.IndexedRef{Target: name}
	ref.Loc = name.Loc
	for {
		item, msg := g.parseIndexItem()
		if msg != "" {
			return nil, msg
		}
		ref.Indices = append(ref.Indices, item)
		if g.check(TokenComma) {
			g.advance()
			continue
		}
		break
	}
	if g.expect(TokenRBracket) == nil {
		tok := g.peek()
		msg := fmt.Sprintf("expected ']' in index list, found %s", describe(tok))
		g.errorAt(tok.Span.Start, msg)
		return nil, msg
	}
	g.finish(&ref.Loc)
	return ref, ""
}

func (g *grammar) parseIndexItem() (*ast.IndexItem, string) {
	first, msg := g.parseIndexBound()
	if msg != "" {
		return nil, msg
	}
	item := &ast.IndexItem{First: first}
	item.Loc = *first.Location()

	if g.check(TokenColon) {
		g.advance()
		last, msg := g.parseIndexBound()
		if msg != "" {
			return nil, msg
		}
		item.Last = last
		item.Loc.ExpandToInclude(last.Location().LastLine, last.Location().LastColumn)
	}
	return item, ""
}

func (g *grammar) parseIndexBound() (ast.Expr, string) {
	tok := g.peek()
	if tok.Kind != TokenIntLiteral {
		msg := fmt.Sprintf("expected index, found %s", describe(tok))
		g.errorAt(tok.Span.Start, msg)
		return nil, msg
	}
	g.advance()
	return exprOrMsg(g.intLiteral(tok, tok, false))
}

func unquote(literal string) string {
	body := literal[1 : len(literal)-1]
	if !strings.Contains(body, "\\") {
		return body
	}
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch != '\\' || i+1 == len(body) {
			b.WriteByte(ch)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(body[i])
		}
	}
	return b.String()
}
