package vm

// Opcode represents a VM instruction opcode.
type Opcode uint8

const (
	OpMoveRight Opcode = iota // dp++
	OpMoveLeft                // dp--
	OpIncrement               // tape[dp]++ (mod 256)
	OpDecrement               // tape[dp]-- (mod 256)
	OpPut                     // output <- tape[dp]
	OpGet                     // tape[dp] <- input
	OpLoopStart               // if tape[dp] == 0: ip = target
	OpLoopStop                // ip = target - 1

	numOpcodes
)

// opcodeChars is indexed by Opcode.
const opcodeChars = "><+-.,[]"

// String returns the string representation of an opcode.
func (o Opcode) String() string {
	switch o {
	case OpMoveRight:
		return "MOVE_RIGHT"
	case OpMoveLeft:
		return "MOVE_LEFT"
	case OpIncrement:
		return "INC"
	case OpDecrement:
		return "DEC"
	case OpPut:
		return "PUT"
	case OpGet:
		return "GET"
	case OpLoopStart:
		return "LOOP_START"
	case OpLoopStop:
		return "LOOP_STOP"
	default:
		return "UNKNOWN"
	}
}

// Char returns the source character of an opcode, or 0 for an invalid opcode.
func (o Opcode) Char() byte {
	if !o.Valid() {
		return 0
	}
	return opcodeChars[o]
}

// Valid reports whether o is one of the eight instruction opcodes.
func (o Opcode) Valid() bool {
	return o < numOpcodes
}

// IsLoop reports whether o is a loop bracket.
func (o Opcode) IsLoop() bool {
	return o == OpLoopStart || o == OpLoopStop
}

// OpcodeFromChar converts a source character to an opcode.
// Characters other than the eight instruction symbols are not opcodes.
func OpcodeFromChar(c rune) (Opcode, bool) {
	switch c {
	case '>':
		return OpMoveRight, true
	case '<':
		return OpMoveLeft, true
	case '+':
		return OpIncrement, true
	case '-':
		return OpDecrement, true
	case '.':
		return OpPut, true
	case ',':
		return OpGet, true
	case '[':
		return OpLoopStart, true
	case ']':
		return OpLoopStop, true
	default:
		return 0, false
	}
}

// OpcodeFromString converts a mnemonic (as printed by String) to an opcode.
func OpcodeFromString(s string) (Opcode, bool) {
	for o := Opcode(0); o < numOpcodes; o++ {
		if o.String() == s {
			return o, true
		}
	}
	return 0, false
}
