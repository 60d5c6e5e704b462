package parser

import "fmt"

type Lexer struct {
	input      []byte
	file       string
	pos        int
	line       int
	column     int
	lastLine   int
	lastColumn int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:      input,
		file:       file,
		pos:        0,
		line:       1,
		column:     1,
		lastLine:   1,
		lastColumn: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

// last is the position of the most recently consumed byte.
func (l *Lexer) last() Position {
	return Position{
		File:   l.file,
		Offset: l.pos - 1,
		Line:   l.lastLine,
		Column: l.lastColumn,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	l.lastLine = l.line
	l.lastColumn = l.column
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: l.last()},
		Literal: string(l.input[start.Offset:l.pos]),
	}
}

func (l *Lexer) errorToken(start Position, msg string) Token {
	return Token{
		Kind:    TokenError,
		Span:    Span{Start: start, End: l.last()},
		Literal: msg,
	}
}

func (l *Lexer) NextToken() Token {
	start := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: Span{Start: start, End: start}}
	}

	ch := l.peek()

	switch {
	case ch == '\n':
		l.advance()
		return l.token(TokenNewline, start)
	case ch == ' ' || ch == '\t' || ch == '\r':
		return l.scanWhitespace(start)
	case ch == '#':
		return l.scanComment(start)
	case isLetter(ch):
		return l.scanIdentOrKeyword(start)
	case isDigit(ch):
		return l.scanNumber(start)
	case ch == '.' && isDigit(l.peekN(1)):
		return l.scanNumber(start)
	case ch == '"':
		return l.scanStringLiteral(start)
	}

	return l.scanOperator(start)
}

func (l *Lexer) scanWhitespace(start Position) Token {
	for {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' {
			l.advance()
		} else {
			break
		}
	}
	return l.token(TokenWhitespace, start)
}

func (l *Lexer) scanComment(start Position) Token {
	for l.peek() != 0 && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenComment, start)
}

// scanIdentOrKeyword admits '-' inside a name when more name characters
// follow, so conditional gates such as "c-x" lex as a single
// identifier while "q-" stops before the dash.
func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	l.advance()
	for {
		ch := l.peek()
		if isLetterOrDigit(ch) {
			l.advance()
			continue
		}
		if ch == '-' && isLetterOrDigit(l.peekN(1)) {
			l.advance()
			continue
		}
		break
	}
	tok := l.token(TokenIdent, start)
	tok.Kind = LookupKeyword(tok.Literal)
	return tok
}

func (l *Lexer) scanNumber(start Position) Token {
	kind := TokenIntLiteral
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		kind = TokenFloatLiteral
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	if ch := l.peek(); ch == 'e' || ch == 'E' {
		next := l.peekN(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekN(2))) {
			kind = TokenFloatLiteral
			l.advance()
			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}
			for isDigit(l.peek()) {
				l.advance()
			}
		}
	}
	return l.token(kind, start)
}

func (l *Lexer) scanStringLiteral(start Position) Token {
	l.advance()
	for {
		switch l.peek() {
		case 0, '\n':
			return l.errorToken(start, "unterminated string literal")
		case '\\':
			l.advance()
			l.advance()
		case '"':
			l.advance()
			return l.token(TokenStringLiteral, start)
		default:
			l.advance()
		}
	}
}

var operatorKinds = map[byte]TokenKind{
	'[': TokenLBracket,
	']': TokenRBracket,
	'{': TokenLBrace,
	'}': TokenRBrace,
	'(': TokenLParen,
	')': TokenRParen,
	',': TokenComma,
	':': TokenColon,
	';': TokenSemicolon,
	'|': TokenPipe,
	'.': TokenDot,
	'-': TokenMinus,
}

func (l *Lexer) scanOperator(start Position) Token {
	ch := l.advance()
	if kind, ok := operatorKinds[ch]; ok {
		return l.token(kind, start)
	}
	return l.errorToken(start, fmt.Sprintf("unrecognized character %q", ch))
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isLetterOrDigit(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}
