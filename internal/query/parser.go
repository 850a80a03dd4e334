// internal/query/parser.go
package query

import (
	"fmt"
	"strings"

	"netsql/internal/core/domain"
)

// Parse modes.
const (
	ModeStrict  = domain.ParseModeStrict
	ModeLenient = domain.ParseModeLenient
)

// SyntaxError describes why a query was rejected. It matches
// domain.ErrMalformedQuery with errors.Is.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at position %d: %s", domain.ErrMalformedQuery, e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return domain.ErrMalformedQuery
}

// Parser is a recursive-descent parser over the lexer's tokens.
type Parser struct {
	tokens []Token
	pos    int
	mode   domain.ParseMode
}

// NewParser creates a new parser
func NewParser(tokens []Token, mode domain.ParseMode) *Parser {
	return &Parser{tokens: tokens, mode: mode}
}

// Parse parses text in strict mode.
func Parse(text string) (domain.Query, error) {
	return ParseWithMode(text, ModeStrict)
}

// ParseWithMode parses text. In lenient mode a malformed condition ends the
// where clause and the conditions before it are kept; trailing words after
// the source name are ignored.
func ParseWithMode(text string, mode domain.ParseMode) (domain.Query, error) {
	return NewParser(Tokenize(text), mode).parseQuery()
}

func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		end := 0
		if n := len(p.tokens); n > 0 {
			end = p.tokens[n-1].Pos
		}
		return Token{Type: TokenEOF, Pos: end}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() {
	p.pos++
}

func (p *Parser) errorf(tok Token, format string, args ...any) error {
	return &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) parseQuery() (domain.Query, error) {
	var q domain.Query

	if !p.current().Is(kwSelect) {
		return q, p.errorf(p.current(), "query must start with select")
	}
	p.advance()

	fields, err := p.parseFieldList()
	if err != nil {
		return q, err
	}
	q.Fields = fields

	if !p.current().Is(kwFrom) {
		return q, p.errorf(p.current(), "expected from, got %s", describe(p.current()))
	}
	p.advance()

	tok := p.current()
	if tok.Type != TokenWord || tok.IsKeyword() {
		return q, p.errorf(tok, "missing data source name after from")
	}
	q.Source = tok.Value
	p.advance()

	switch tok := p.current(); {
	case tok.Type == TokenEOF:
		return q, nil
	case tok.Is(kwWhere):
		p.advance()
	case p.mode == ModeLenient:
		return q, nil
	default:
		return q, p.errorf(tok, "unexpected %s after data source name", describe(tok))
	}

	conds, err := p.parseConditionList()
	if err != nil {
		return q, err
	}
	q.Conditions = conds
	return q, nil
}

// parseFieldList reads the single token after select and splits it on ",".
func (p *Parser) parseFieldList() ([]string, error) {
	tok := p.current()
	if tok.Type != TokenWord || tok.Is(kwFrom) {
		return nil, p.errorf(tok, "missing field list after select")
	}
	p.advance()

	parts := strings.Split(tok.Value, ",")
	fields := make([]string, 0, len(parts))
	for _, f := range parts {
		if f == "" {
			if p.mode == ModeStrict {
				return nil, p.errorf(tok, "empty field name in %q", tok.Value)
			}
			continue
		}
		fields = append(fields, f)
	}
	if len(fields) == 0 {
		return nil, p.errorf(tok, "missing field list after select")
	}
	return fields, nil
}

// parseConditionList consumes the rest of the tokens, split on "and".
func (p *Parser) parseConditionList() ([]domain.Condition, error) {
	var groups [][]Token
	var group []Token
	for tok := p.current(); tok.Type != TokenEOF; tok = p.current() {
		p.advance()
		if tok.Is(kwAnd) {
			groups = append(groups, group)
			group = nil
			continue
		}
		group = append(group, tok)
	}
	groups = append(groups, group)

	conds := make([]domain.Condition, 0, len(groups))
	for _, g := range groups {
		c, err := p.parseCondition(g)
		if err != nil {
			if p.mode == ModeLenient {
				return conds, nil
			}
			return nil, err
		}
		conds = append(conds, c)
	}
	return conds, nil
}

// parseCondition parses `field-words = value-words (or value-words)*`.
func (p *Parser) parseCondition(tokens []Token) (domain.Condition, error) {
	var c domain.Condition

	if len(tokens) == 0 {
		return c, p.errorf(p.current(), "empty condition")
	}

	eq := -1
	for i, tok := range tokens {
		if tok.Type != TokenEqual {
			continue
		}
		if eq >= 0 {
			return c, p.errorf(tok, "condition has more than one '='")
		}
		eq = i
	}
	if eq < 0 {
		return c, p.errorf(tokens[0], "condition %q has no '='", joinWords(tokens))
	}

	c.Field = joinWords(tokens[:eq])
	if c.Field == "" {
		return c, p.errorf(tokens[eq], "condition has no field name before '='")
	}

	var alt []Token
	flush := func() {
		if v := joinWords(alt); v != "" {
			c.Values = append(c.Values, v)
		}
		alt = nil
	}
	for _, tok := range tokens[eq+1:] {
		if tok.Is(kwOr) {
			flush()
			continue
		}
		alt = append(alt, tok)
	}
	flush()

	if len(c.Values) == 0 {
		return c, p.errorf(tokens[eq], "condition on %q has no value", c.Field)
	}
	return c, nil
}

func joinWords(tokens []Token) string {
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.Value
	}
	return strings.Join(words, " ")
}

func describe(tok Token) string {
	if tok.Type == TokenWord || tok.Type == TokenString {
		return fmt.Sprintf("%q", tok.Value)
	}
	return tok.Type.String()
}
