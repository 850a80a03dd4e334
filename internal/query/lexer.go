// internal/query/lexer.go
package query

import (
	"strings"
	"unicode"
)

// TokenType clasifica los tokens de una consulta.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenWord
	TokenString // valor entre comillas, sin las comillas
	TokenEqual
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of query"
	case TokenWord:
		return "word"
	case TokenString:
		return "quoted string"
	case TokenEqual:
		return "'='"
	default:
		return "unknown"
	}
}

// Token is one lexical unit. Pos is the rune offset in the input.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// Keywords, matched case-insensitively.
const (
	kwSelect = "select"
	kwFrom   = "from"
	kwWhere  = "where"
	kwAnd    = "and"
	kwOr     = "or"
)

// Is reports whether the token is the keyword kw.
func (t Token) Is(kw string) bool {
	return t.Type == TokenWord && strings.EqualFold(t.Value, kw)
}

// IsKeyword reports whether the token is any reserved word.
func (t Token) IsKeyword() bool {
	return t.Is(kwSelect) || t.Is(kwFrom) || t.Is(kwWhere) || t.Is(kwAnd) || t.Is(kwOr)
}

// Lexer splits a query into whitespace-delimited words. '=' is a token of
// its own even without surrounding spaces, so "Vlan=10" lexes as three tokens.
// A word starting with ' or " runs to the matching quote and becomes one
// TokenString, spaces, '=' and keywords included. An unterminated quote is
// lexed as a plain word.
type Lexer struct {
	input []rune
	pos   int
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	return &Lexer{input: []rune(input)}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(l.input[l.pos]) {
		l.pos++
	}
}

// NextToken returns the next token; TokenEOF once the input is consumed.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos}
	}

	start := l.pos
	if l.input[l.pos] == '=' {
		l.pos++
		return Token{Type: TokenEqual, Value: "=", Pos: start}
	}
	if q := l.input[l.pos]; q == '"' || q == '\'' {
		if end := l.closingQuote(q); end > 0 {
			l.pos = end + 1
			return Token{Type: TokenString, Value: string(l.input[start+1 : end]), Pos: start}
		}
	}

	for l.pos < len(l.input) && !unicode.IsSpace(l.input[l.pos]) && l.input[l.pos] != '=' {
		l.pos++
	}
	return Token{Type: TokenWord, Value: string(l.input[start:l.pos]), Pos: start}
}

// closingQuote returns the index of the quote closing the one at l.pos, or -1.
func (l *Lexer) closingQuote(q rune) int {
	for i := l.pos + 1; i < len(l.input); i++ {
		if l.input[i] == q {
			return i
		}
	}
	return -1
}

// Tokenize returns all tokens of input, ending with TokenEOF.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}
