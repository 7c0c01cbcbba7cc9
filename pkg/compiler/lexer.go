package compiler

import (
	"unicode/utf8"

	"github.com/akhildatla/bfvm/pkg/vm"
)

// Token is an instruction symbol together with where it was found.
type Token struct {
	Op  vm.Opcode
	Pos vm.Position
}

// Lexer scans program source. Every character other than the eight
// instruction symbols is a comment and produces no token.
type Lexer struct {
	input  string
	offset int
	line   int
	column int
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		line:   1,
		column: 1,
	}
}

// Tokenize returns all instruction tokens in source order.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok, ok := l.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Next returns the next instruction token, or false at end of input.
func (l *Lexer) Next() (Token, bool) {
	for l.offset < len(l.input) {
		pos := vm.Position{Offset: l.offset, Line: l.line, Column: l.column}
		r, size := utf8.DecodeRuneInString(l.input[l.offset:])
		l.offset += size

		if r == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}

		if op, ok := vm.OpcodeFromChar(r); ok {
			return Token{Op: op, Pos: pos}, true
		}
	}
	return Token{}, false
}

// Filter returns only the instruction characters of source, in order.
func Filter(source string) string {
	out := make([]byte, 0, len(source))
	for _, r := range source {
		if op, ok := vm.OpcodeFromChar(r); ok {
			out = append(out, op.Char())
		}
	}
	return string(out)
}
