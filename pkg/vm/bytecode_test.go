package vm

import (
	"errors"
	"strings"
	"testing"
)

// loopProgram is "+[->+<]" with resolved brackets.
func loopProgram() *Program {
	return &Program{
		Code: []Instruction{
			{Op: OpIncrement},
			{Op: OpLoopStart, Target: 6},
			{Op: OpDecrement},
			{Op: OpMoveRight},
			{Op: OpIncrement},
			{Op: OpMoveLeft},
			{Op: OpLoopStop, Target: 1},
		},
	}
}

func TestSerializeDeserialize_Simple(t *testing.T) {
	program := loopProgram()

	data, err := SerializeProgram(program)
	if err != nil {
		t.Fatalf("SerializeProgram failed: %v", err)
	}

	if string(data[:4]) != BytecodeMagic {
		t.Errorf("expected magic %q, got %q", BytecodeMagic, string(data[:4]))
	}
	if len(data) != 4+2+4+5*len(program.Code) {
		t.Errorf("unexpected bytecode length %d", len(data))
	}

	restored, err := DeserializeProgram(data)
	if err != nil {
		t.Fatalf("DeserializeProgram failed: %v", err)
	}

	if len(restored.Code) != len(program.Code) {
		t.Fatalf("expected %d instructions, got %d", len(program.Code), len(restored.Code))
	}
	for i := range program.Code {
		if restored.Code[i] != program.Code[i] {
			t.Errorf("instruction %d: expected %v, got %v", i, program.Code[i], restored.Code[i])
		}
	}
}

func TestSerializeDeserialize_Empty(t *testing.T) {
	data, err := SerializeProgram(&Program{})
	if err != nil {
		t.Fatalf("SerializeProgram failed: %v", err)
	}
	restored, err := DeserializeProgram(data)
	if err != nil {
		t.Fatalf("DeserializeProgram failed: %v", err)
	}
	if restored.Len() != 0 {
		t.Errorf("expected empty program, got %d instructions", restored.Len())
	}
}

func TestSerialize_InvalidOpcode(t *testing.T) {
	_, err := SerializeProgram(&Program{Code: []Instruction{{Op: Opcode(99)}}})
	if !errors.Is(err, ErrInvalidOpcode) {
		t.Errorf("expected ErrInvalidOpcode, got %v", err)
	}
}

func TestDeserialize_InvalidMagic(t *testing.T) {
	_, err := DeserializeProgram([]byte("XXXX\x01\x00\x00\x00\x00\x00"))
	if !errors.Is(err, ErrInvalidMagic) {
		t.Errorf("expected ErrInvalidMagic, got %v", err)
	}
}

func TestDeserialize_InvalidVersion(t *testing.T) {
	_, err := DeserializeProgram([]byte("BFBC\x09\x00\x00\x00\x00\x00"))
	if !errors.Is(err, ErrInvalidVersion) {
		t.Errorf("expected ErrInvalidVersion, got %v", err)
	}
}

func TestDeserialize_Truncated(t *testing.T) {
	data, err := SerializeProgram(loopProgram())
	if err != nil {
		t.Fatalf("SerializeProgram failed: %v", err)
	}
	for _, n := range []int{0, 3, 5, 9, len(data) - 1} {
		if _, err := DeserializeProgram(data[:n]); err == nil {
			t.Errorf("expected error for %d bytes", n)
		}
	}
}

func TestDeserialize_InvalidOpcode(t *testing.T) {
	data, err := SerializeProgram(loopProgram())
	if err != nil {
		t.Fatalf("SerializeProgram failed: %v", err)
	}
	data[10] = 0x7F
	if _, err := DeserializeProgram(data); !errors.Is(err, ErrInvalidOpcode) {
		t.Errorf("expected ErrInvalidOpcode, got %v", err)
	}
}

func TestDeserialize_InvalidLoopTarget(t *testing.T) {
	tests := []struct {
		name string
		code []Instruction
	}{
		{"out of range", []Instruction{{Op: OpLoopStart, Target: 5}, {Op: OpLoopStop, Target: 0}}},
		{"negative", []Instruction{{Op: OpLoopStart, Target: -1}, {Op: OpLoopStop, Target: 0}}},
		{"wrong kind", []Instruction{{Op: OpLoopStart, Target: 1}, {Op: OpIncrement}}},
		{"not mutual", []Instruction{
			{Op: OpLoopStart, Target: 3},
			{Op: OpLoopStart, Target: 2},
			{Op: OpLoopStop, Target: 1},
			{Op: OpLoopStop, Target: 1},
		}},
		{"stop before start", []Instruction{{Op: OpLoopStop, Target: 1}, {Op: OpLoopStart, Target: 0}}},
		{"self target", []Instruction{{Op: OpLoopStart, Target: 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := SerializeProgram(&Program{Code: tt.code})
			if err != nil {
				t.Fatalf("SerializeProgram failed: %v", err)
			}
			if _, err := DeserializeProgram(data); !errors.Is(err, ErrInvalidLoopTarget) {
				t.Errorf("expected ErrInvalidLoopTarget, got %v", err)
			}
		})
	}
}

func TestDisassemble(t *testing.T) {
	asm := Disassemble(loopProgram())

	for _, want := range []string{
		"; 7 instructions",
		"0000: INC",
		"0001: LOOP_START 0006",
		"0003: MOVE_RIGHT",
		"0006: LOOP_STOP  0001",
	} {
		if !strings.Contains(asm, want) {
			t.Errorf("expected disassembly to contain %q, got:\n%s", want, asm)
		}
	}
}
