// Package vm implements the tape virtual machine.
//
// The VM executes a compiled Program over a fixed-size tape of 8-bit cells:
//   - a data pointer addressing the current cell
//   - an instruction pointer into the program
//   - a FIFO input buffer and an append-only output buffer
//
// Basic usage:
//
//	program, err := compiler.Compile("++++++[>++++++<-]>.")
//	v, err := vm.NewVM(program, nil, vm.DefaultTapeSize)
//	out, err := v.Run()
//
// Stepping:
//
//	for v.CanContinue() {
//	    b, ok, err := v.Step()
//	    ...
//	}
//
// A VM is not safe for concurrent use.
package vm

import (
	"time"
)

// DefaultTapeSize is the number of cells allocated when the caller has no
// preference.
const DefaultTapeSize = 30000

// ExecutionStats contains metrics about VM execution for observability.
type ExecutionStats struct {
	StepsExecuted   int64          // Total instructions executed
	ExecutionTimeNs int64          // Time spent inside Run, in nanoseconds
	OutputBytes     int            // Bytes written by PUT
	InputBytes      int            // Bytes consumed by GET
	OpCounts        map[string]int // Count of each opcode executed
}

// VM represents the virtual machine.
type VM struct {
	program *Program
	code    []Instruction
	ip      int // Instruction pointer

	tape []byte
	dp   int // Data pointer; may leave the tape, which faults the run

	input  []byte
	output []byte

	stepCount int64
	fault     error

	stats        ExecutionStats
	statsEnabled bool
}

// NewVM creates a VM for an already compiled program.
// The input is copied; it is consumed front to back and never replenished.
func NewVM(program *Program, input []byte, tapeSize int) (*VM, error) {
	if program == nil {
		return nil, ErrNilProgram
	}
	if tapeSize <= 0 {
		return nil, ErrInvalidTapeSize
	}
	return &VM{
		program: program,
		code:    program.Code,
		tape:    make([]byte, tapeSize),
		input:   append([]byte(nil), input...),
	}, nil
}

// EnableStats enables execution statistics collection.
func (vm *VM) EnableStats() {
	vm.statsEnabled = true
	vm.stats = ExecutionStats{
		OpCounts: make(map[string]int),
	}
}

// Stats returns the execution statistics.
// Returns nil if stats were not enabled via EnableStats().
func (vm *VM) Stats() *ExecutionStats {
	if !vm.statsEnabled {
		return nil
	}
	return &vm.stats
}

// CanContinue reports whether the instruction pointer is inside the program.
func (vm *VM) CanContinue() bool {
	return vm.ip >= 0 && vm.ip < len(vm.code)
}

// Step executes exactly one instruction. It returns the byte written by a
// PUT instruction and true, or 0 and false for every other instruction.
//
// Callers must check CanContinue first; stepping a finished program returns
// ErrProgramTerminated. After a runtime fault the VM is left as it was at the
// failing step and every further Step returns the same fault.
func (vm *VM) Step() (byte, bool, error) {
	if vm.fault != nil {
		return 0, false, vm.fault
	}
	if !vm.CanContinue() {
		return 0, false, ErrProgramTerminated
	}

	vm.stepCount++

	inst := vm.code[vm.ip]

	if vm.statsEnabled {
		vm.stats.StepsExecuted++
		vm.stats.OpCounts[inst.Op.String()]++
	}

	var (
		put    byte
		hasPut bool
	)

	switch inst.Op {
	case OpMoveRight:
		vm.dp++

	case OpMoveLeft:
		vm.dp--

	case OpIncrement:
		vm.tape[vm.dp]++

	case OpDecrement:
		vm.tape[vm.dp]--

	case OpPut:
		put, hasPut = vm.tape[vm.dp], true
		vm.output = append(vm.output, put)
		if vm.statsEnabled {
			vm.stats.OutputBytes++
		}

	case OpGet:
		if len(vm.input) == 0 {
			vm.fault = newRuntimeError(ErrCannotReadEmptyInputBuffer, vm.ip)
			return 0, false, vm.fault
		}
		vm.tape[vm.dp] = vm.input[0]
		vm.input = vm.input[1:]
		if vm.statsEnabled {
			vm.stats.InputBytes++
		}

	case OpLoopStart:
		if vm.tape[vm.dp] == 0 {
			vm.ip = inst.Target
		}

	case OpLoopStop:
		vm.ip = inst.Target - 1
	}

	vm.ip++

	if vm.dp < 0 {
		vm.fault = newRuntimeError(ErrDataPointerBelowZero, vm.ip)
		return put, hasPut, vm.fault
	}
	if vm.dp >= len(vm.tape) {
		vm.fault = newRuntimeError(ErrDataPointerBeyondBounds, vm.ip)
		return put, hasPut, vm.fault
	}

	return put, hasPut, nil
}

// Run steps the program until it walks past its last instruction and returns
// the whole output as text. The first runtime fault stops the run; output
// produced before it stays available through Output.
func (vm *VM) Run() (string, error) {
	var startTime time.Time
	if vm.statsEnabled {
		startTime = time.Now()
		defer func() {
			vm.stats.ExecutionTimeNs += time.Since(startTime).Nanoseconds()
		}()
	}

	for vm.CanContinue() {
		if _, _, err := vm.Step(); err != nil {
			return vm.OutputString(), err
		}
	}
	return vm.OutputString(), nil
}

// Output returns the bytes written so far.
func (vm *VM) Output() []byte {
	return vm.output
}

// OutputString decodes the output treating every byte as one code point
// (U+0000 to U+00FF); multi-byte UTF-8 sequences are not combined.
func (vm *VM) OutputString() string {
	return BytesToString(vm.output)
}

// BytesToString maps each byte to the rune with the same numeric value.
func BytesToString(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}

// Steps returns the number of instructions executed so far.
func (vm *VM) Steps() int64 {
	return vm.stepCount
}

// IP returns the instruction pointer.
func (vm *VM) IP() int {
	return vm.ip
}

// DataPointer returns the data pointer. It is only outside the tape after a
// pointer fault.
func (vm *VM) DataPointer() int {
	return vm.dp
}

// Tape returns the tape. The slice is shared with the VM.
func (vm *VM) Tape() []byte {
	return vm.tape
}

// Program returns the program being executed.
func (vm *VM) Program() *Program {
	return vm.program
}

// RemainingInput returns the input bytes not consumed yet.
func (vm *VM) RemainingInput() []byte {
	return vm.input
}

// Fault returns the runtime error that stopped the VM, if any.
func (vm *VM) Fault() error {
	return vm.fault
}
