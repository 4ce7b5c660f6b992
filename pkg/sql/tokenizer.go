package sql

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType represents the type of token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenKeyword
	TokenNumber
	TokenWord
)

func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenKeyword:
		return "Keyword"
	case TokenNumber:
		return "Number"
	case TokenWord:
		return "Word"
	default:
		return "Unknown"
	}
}

var keywords = map[string]bool{
	"INSERT": true,
	"SELECT": true,
}

// Token represents a lexical token. Value keeps the input text as typed.
type Token struct {
	Type  TokenType
	Value string
}

// Keyword returns the upper cased keyword, or "" for non keyword tokens
func (t Token) Keyword() string {
	if t.Type != TokenKeyword {
		return ""
	}
	return strings.ToUpper(t.Value)
}

// Tokenizer breaks a statement line into whitespace separated tokens
type Tokenizer struct {
	input  string
	pos    int
	tokens []Token
}

// NewTokenizer creates a new tokenizer
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{
		input:  input,
		pos:    0,
		tokens: make([]Token, 0),
	}
}

// Tokenize converts input string into tokens, always ending with TokenEOF
func (t *Tokenizer) Tokenize() []Token {
	for t.pos < len(t.input) {
		if ch, size := t.peekRune(); unicode.IsSpace(ch) {
			t.pos += size
			continue
		}
		t.readWord()
	}

	t.tokens = append(t.tokens, Token{Type: TokenEOF, Value: ""})
	return t.tokens
}

// readWord reads up to the next whitespace and classifies the word
func (t *Tokenizer) readWord() {
	start := t.pos
	for t.pos < len(t.input) {
		ch, size := t.peekRune()
		if unicode.IsSpace(ch) {
			break
		}
		t.pos += size
	}

	value := t.input[start:t.pos]

	switch {
	case keywords[strings.ToUpper(value)]:
		t.tokens = append(t.tokens, Token{Type: TokenKeyword, Value: value})
	case isNumber(value):
		t.tokens = append(t.tokens, Token{Type: TokenNumber, Value: value})
	default:
		t.tokens = append(t.tokens, Token{Type: TokenWord, Value: value})
	}
}

// peekRune decodes the character at pos. Invalid bytes come back as
// utf8.RuneError with size 1 and are never whitespace.
func (t *Tokenizer) peekRune() (rune, int) {
	return utf8.DecodeRuneInString(t.input[t.pos:])
}

// isNumber accepts an optional leading minus followed by digits
func isNumber(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, ch := range s {
		if !unicode.IsDigit(ch) {
			return false
		}
	}
	return true
}
