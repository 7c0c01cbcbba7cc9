package vm

import (
	"fmt"
	"io"
	"strings"
)

// DumpStep writes the step counter.
func (vm *VM) DumpStep(w io.Writer) {
	fmt.Fprintln(w, "STEP:", vm.stepCount)
}

// DumpInstructions writes the program with a caret under the instruction
// pointer.
func (vm *VM) DumpInstructions(w io.Writer) {
	fmt.Fprintln(w, "PROG:", vm.program.Source())
	fmt.Fprintf(w, "%s^ %d\n", strings.Repeat(" ", 6+vm.ip), vm.ip)
}

// DumpData writes the tape in hex up to and including cell upTo (the whole
// tape when upTo is negative), with a marker under the data pointer.
func (vm *VM) DumpData(w io.Writer, upTo int) {
	cells := vm.tape
	if upTo >= 0 && upTo+1 < len(cells) {
		cells = cells[:upTo+1]
	}
	fmt.Fprintln(w, "DATA:", hexBytes(cells))
	pad := 6 + 3*vm.dp
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(w, "%s^^ %d\n", strings.Repeat(" ", pad), vm.dp)
}

// DumpSummary writes the step count and the output as hex and text.
func (vm *VM) DumpSummary(w io.Writer) {
	fmt.Fprintf(w, "SUMMARY: program stopped after %d step(s) with output:\n", vm.stepCount)
	fmt.Fprintf(w, "    HEX: %s\n", hexBytes(vm.output))
	fmt.Fprintf(w, "    STR: %s\n", vm.OutputString())
}

func hexBytes(b []byte) string {
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = fmt.Sprintf("%02X", c)
	}
	return strings.Join(parts, " ")
}
