package sql

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spaghetti-lover/persql/pkg/storage"
)

var (
	ErrSyntax                = errors.New("syntax error")
	ErrNegativeID            = errors.New("ID must be positive")
	ErrStringTooLong         = errors.New("string is too long")
	ErrUnrecognizedStatement = errors.New("unrecognized statement")
)

// Statement represents a prepared statement
type Statement interface {
	Type() string
}

// SelectStatement represents: select
type SelectStatement struct{}

func (s *SelectStatement) Type() string {
	return "SELECT"
}

// InsertStatement represents: insert <id> <username> <email>
type InsertStatement struct {
	Row storage.Row
}

func (s *InsertStatement) Type() string {
	return "INSERT"
}

// Parser parses tokens into statements
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a new parser
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens: tokens,
		pos:    0,
	}
}

// PrepareStatement tokenizes and parses one input line
func PrepareStatement(line string) (Statement, error) {
	return NewParser(NewTokenizer(line).Tokenize()).Parse()
}

// Parse parses tokens into a statement
func (p *Parser) Parse() (Statement, error) {
	token := p.current()

	if token.Type == TokenEOF {
		return nil, fmt.Errorf("empty statement: %w", ErrSyntax)
	}

	switch token.Keyword() {
	case "SELECT":
		return p.parseSelect()
	case "INSERT":
		return p.parseInsert()
	default:
		return nil, fmt.Errorf("%w: unrecognized keyword at start of '%s'", ErrUnrecognizedStatement, token.Value)
	}
}

// parseSelect parses: select
func (p *Parser) parseSelect() (Statement, error) {
	p.advance()

	if token := p.current(); token.Type != TokenEOF {
		return nil, fmt.Errorf("%w: unexpected '%s' after select", ErrSyntax, token.Value)
	}

	return &SelectStatement{}, nil
}

// parseInsert parses: insert <id> <username> <email>
// Words after the email are ignored.
func (p *Parser) parseInsert() (Statement, error) {
	p.advance()

	idToken := p.current()
	if idToken.Type == TokenEOF {
		return nil, fmt.Errorf("%w: insert needs an id, username and email", ErrSyntax)
	}
	if idToken.Type != TokenNumber {
		return nil, fmt.Errorf("%w: expected number for id, got '%s'", ErrSyntax, idToken.Value)
	}
	if strings.HasPrefix(idToken.Value, "-") {
		return nil, ErrNegativeID
	}

	id, err := strconv.ParseUint(idToken.Value, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id: %v", ErrSyntax, err)
	}
	p.advance()

	username := p.current()
	p.advance()
	email := p.current()
	p.advance()

	if username.Type == TokenEOF || email.Type == TokenEOF {
		return nil, fmt.Errorf("%w: insert needs an id, username and email", ErrSyntax)
	}

	row, err := storage.NewRow(uint32(id), username.Value, email.Value)
	if errors.Is(err, storage.ErrInvalidText) {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStringTooLong, err)
	}

	return &InsertStatement{Row: row}, nil
}

func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Value: ""}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() {
	p.pos++
}
