// Package compiler builds loop-resolved programs from source text.
package compiler

import (
	"errors"
	"fmt"

	"github.com/akhildatla/bfvm/pkg/vm"
)

// Compile-time error kinds. They are always returned wrapped in an *Error.
var (
	ErrLoopStartUnbalanced = errors.New("unbalanced loop start")
	ErrLoopStopUnbalanced  = errors.New("unbalanced loop stop")
)

// Error reports an unbalanced bracket. Index counts instructions only, so
// comments in the source do not shift it; Pos points into the raw source.
type Error struct {
	Err   error
	Index int
	Pos   vm.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v at instruction %d (line %d, column %d)", e.Err, e.Index, e.Pos.Line, e.Pos.Column)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Compile compiles source text to a program.
func Compile(source string) (*vm.Program, error) {
	return CompileTokens(NewLexer(source).Tokenize())
}

// CompileTokens resolves loop brackets in a single pass. An unmatched "]" is
// reported as soon as it is seen; an unmatched "[" is reported after the
// pass, using the outermost one left open.
func CompileTokens(tokens []Token) (*vm.Program, error) {
	code := make([]vm.Instruction, len(tokens))
	positions := make([]vm.Position, len(tokens))
	var starts []int

	for i, tok := range tokens {
		code[i] = vm.NewInstruction(tok.Op)
		positions[i] = tok.Pos

		switch tok.Op {
		case vm.OpLoopStart:
			starts = append(starts, i)

		case vm.OpLoopStop:
			if len(starts) == 0 {
				return nil, &Error{Err: ErrLoopStopUnbalanced, Index: i, Pos: tok.Pos}
			}
			start := starts[len(starts)-1]
			starts = starts[:len(starts)-1]
			code[start].Target = i
			code[i].Target = start
		}
	}

	if len(starts) > 0 {
		first := starts[0]
		return nil, &Error{Err: ErrLoopStartUnbalanced, Index: first, Pos: positions[first]}
	}

	return &vm.Program{Code: code, Positions: positions}, nil
}
