package vm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Bytecode file format:
// - Magic: "BFBC" (4 bytes)
// - Version: uint16
// - NumInstructions: uint32
// - Instructions: NumInstructions x (opcode uint8, target int32)
//
// All integers are little endian. Source positions are not stored.

const (
	BytecodeMagic   = "BFBC"
	BytecodeVersion = 1
)

var (
	ErrInvalidMagic      = errors.New("invalid bytecode magic")
	ErrInvalidVersion    = errors.New("unsupported bytecode version")
	ErrInvalidOpcode     = errors.New("invalid opcode")
	ErrInvalidLoopTarget = errors.New("invalid loop target")
)

// SerializeProgram serializes a Program to bytecode format.
func SerializeProgram(p *Program) ([]byte, error) {
	buf := new(bytes.Buffer)

	buf.WriteString(BytecodeMagic)

	if err := binary.Write(buf, binary.LittleEndian, uint16(BytecodeVersion)); err != nil {
		return nil, fmt.Errorf("writing version: %w", err)
	}

	if err := binary.Write(buf, binary.LittleEndian, uint32(len(p.Code))); err != nil {
		return nil, fmt.Errorf("writing instruction count: %w", err)
	}
	for i, inst := range p.Code {
		if !inst.Op.Valid() {
			return nil, fmt.Errorf("instruction %d: %w", i, ErrInvalidOpcode)
		}
		buf.WriteByte(byte(inst.Op))
		if err := binary.Write(buf, binary.LittleEndian, int32(inst.Target)); err != nil {
			return nil, fmt.Errorf("writing instruction %d: %w", i, err)
		}
	}

	return buf.Bytes(), nil
}

// DeserializeProgram deserializes bytecode to a Program. Loop targets are
// checked so that a hand-edited file cannot make the VM jump out of range.
func DeserializeProgram(data []byte) (*Program, error) {
	buf := bytes.NewReader(data)

	magic := make([]byte, 4)
	if _, err := io.ReadFull(buf, magic); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if string(magic) != BytecodeMagic {
		return nil, ErrInvalidMagic
	}

	var version uint16
	if err := binary.Read(buf, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}
	if version != BytecodeVersion {
		return nil, ErrInvalidVersion
	}

	var numInst uint32
	if err := binary.Read(buf, binary.LittleEndian, &numInst); err != nil {
		return nil, fmt.Errorf("reading instruction count: %w", err)
	}
	// Each instruction takes 5 bytes; reject counts the payload cannot hold
	// before allocating.
	if int64(numInst)*5 > int64(buf.Len()) {
		return nil, fmt.Errorf("reading instructions: %w", io.ErrUnexpectedEOF)
	}

	code := make([]Instruction, numInst)
	for i := range code {
		op, err := buf.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("reading instruction %d: %w", i, err)
		}
		var target int32
		if err := binary.Read(buf, binary.LittleEndian, &target); err != nil {
			return nil, fmt.Errorf("reading instruction %d: %w", i, err)
		}
		if !Opcode(op).Valid() {
			return nil, fmt.Errorf("instruction %d: %w: 0x%02X", i, ErrInvalidOpcode, op)
		}
		code[i] = Instruction{Op: Opcode(op), Target: int(target)}
	}

	if err := validateLoops(code); err != nil {
		return nil, err
	}

	return &Program{Code: code}, nil
}

// validateLoops checks that every bracket points at a bracket of the other
// kind which points back, and that each start comes before its stop.
func validateLoops(code []Instruction) error {
	for i, inst := range code {
		var want Opcode
		switch inst.Op {
		case OpLoopStart:
			want = OpLoopStop
		case OpLoopStop:
			want = OpLoopStart
		default:
			continue
		}
		t := inst.Target
		if t < 0 || t >= len(code) || code[t].Op != want || code[t].Target != i ||
			(inst.Op == OpLoopStart && t <= i) || (inst.Op == OpLoopStop && t >= i) {
			return fmt.Errorf("instruction %d: %w: %d", i, ErrInvalidLoopTarget, t)
		}
	}
	return nil
}

// Disassemble renders a Program as one instruction per line.
func Disassemble(p *Program) string {
	var buf bytes.Buffer

	buf.WriteString("; Disassembled from BFBC bytecode\n")
	buf.WriteString(fmt.Sprintf("; %d instructions\n\n", len(p.Code)))

	for i, inst := range p.Code {
		if inst.Op.IsLoop() {
			buf.WriteString(fmt.Sprintf("%04d: %-10s %04d\n", i, inst.Op, inst.Target))
		} else {
			buf.WriteString(fmt.Sprintf("%04d: %s\n", i, inst.Op))
		}
	}

	return buf.String()
}
