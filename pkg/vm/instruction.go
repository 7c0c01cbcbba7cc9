package vm

import (
	"strconv"
	"strings"
)

// Unresolved marks a loop bracket whose partner has not been found yet.
// It never survives compilation.
const Unresolved = -1

// Instruction is a single decoded instruction.
//
// Target is only meaningful for loop brackets: a LOOP_START holds the index
// of its LOOP_STOP and vice versa.
type Instruction struct {
	Op     Opcode
	Target int
}

// NewInstruction creates an instruction. Loop brackets start unresolved.
func NewInstruction(op Opcode) Instruction {
	if op.IsLoop() {
		return Instruction{Op: op, Target: Unresolved}
	}
	return Instruction{Op: op}
}

// Describe returns the source character of the instruction. With
// showLoopMatch, brackets are annotated with their partner index ("[7", "0]").
func (i Instruction) Describe(showLoopMatch bool) string {
	c := string(i.Op.Char())
	if !showLoopMatch {
		return c
	}
	switch i.Op {
	case OpLoopStart:
		return c + strconv.Itoa(i.Target)
	case OpLoopStop:
		return strconv.Itoa(i.Target) + c
	}
	return c
}

// String returns a human-readable representation of the instruction.
func (i Instruction) String() string {
	if i.Op.IsLoop() {
		return i.Op.String() + " " + strconv.Itoa(i.Target)
	}
	return i.Op.String()
}

// Position locates an instruction in the original source text.
// Line and Column are 1-based; Offset is the 0-based byte offset.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Program is a compiled, loop-resolved instruction sequence.
type Program struct {
	Code []Instruction

	// Positions, when present, has one entry per instruction in Code.
	Positions []Position
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.Code)
}

// PositionOf returns the source position of the instruction at index i.
func (p *Program) PositionOf(i int) (Position, bool) {
	if i < 0 || i >= len(p.Positions) {
		return Position{}, false
	}
	return p.Positions[i], true
}

// Source returns the program as instruction characters only.
func (p *Program) Source() string {
	return p.describe(false)
}

// Annotated returns the program with loop brackets annotated by their partner.
func (p *Program) Annotated() string {
	return p.describe(true)
}

func (p *Program) describe(showLoopMatch bool) string {
	var sb strings.Builder
	for _, inst := range p.Code {
		sb.WriteString(inst.Describe(showLoopMatch))
	}
	return sb.String()
}
