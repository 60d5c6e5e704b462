package parser

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

// Span covers a token from its first byte to its last byte, inclusive
// on both ends.
type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenNewline
	TokenWhitespace
	TokenComment

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral
	TokenStringLiteral

	// Keywords
	TokenVersion
	TokenQubits
	TokenMap

	// Punctuation
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
	TokenLParen
	TokenRParen
	TokenComma
	TokenColon
	TokenSemicolon
	TokenPipe
	TokenDot
	TokenMinus
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:           "EOF",
	TokenError:         "Error",
	TokenNewline:       "Newline",
	TokenWhitespace:    "Whitespace",
	TokenComment:       "Comment",
	TokenIdent:         "Identifier",
	TokenIntLiteral:    "IntLiteral",
	TokenFloatLiteral:  "FloatLiteral",
	TokenStringLiteral: "StringLiteral",
	TokenVersion:       "version",
	TokenQubits:        "qubits",
	TokenMap:           "map",
	TokenLBracket:      "[",
	TokenRBracket:      "]",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenComma:         ",",
	TokenColon:         ":",
	TokenSemicolon:     ";",
	TokenPipe:          "|",
	TokenDot:           ".",
	TokenMinus:         "-",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is one lexeme. Literal holds the raw source text, except for
// TokenError, where it holds the lexer's message instead.
type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

var keywords = map[string]TokenKind{
	"version": TokenVersion,
	"qubits":  TokenQubits,
	"map":     TokenMap,
}

// LookupKeyword returns the keyword kind for ident, or TokenIdent.
func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}
