package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/akhildatla/bfvm/pkg/compiler"
	"github.com/akhildatla/bfvm/pkg/embed"
	"github.com/akhildatla/bfvm/pkg/vm"
)

func addMachineFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "input text, consumed as UTF-8 bytes")
	cmd.Flags().Int("tape", vm.DefaultTapeSize, "number of tape cells")
	cmd.Flags().Int("max-steps", 0, "stop after this many steps (0: unlimited)")
	cmd.Flags().Duration("timeout", 0, "stop after this long (0: no timeout)")
	cmd.Flags().Bool("stats", false, "print execution statistics to stderr")
}

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] file.bf",
		Short: "Execute a program.",
		Long:  "Execute a source file, a .bfbc bytecode file, or the inline program given with -e.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				program *vm.Program
				err     error
			)
			switch eval := GetString(cmd, "eval"); {
			case eval != "" && len(args) == 0:
				program, err = compiler.Compile(eval)
			case eval == "" && len(args) == 1:
				program, err = loadProgram(args[0])
			default:
				return errors.New("expected either a file or -e")
			}
			if err != nil {
				return err
			}
			return a.execute(cmd, program)
		},
	}
	cmd.Flags().StringP("eval", "e", "", "program text to run")
	addMachineFlags(cmd)
	return cmd
}

func newExecCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec [flags] file.bfbc",
		Short: "Execute compiled bytecode.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readFile(args[0])
			if err != nil {
				return err
			}
			program, err := vm.DeserializeProgram(data)
			if err != nil {
				return fmt.Errorf("deserializing: %w", err)
			}
			return a.execute(cmd, program)
		},
	}
	addMachineFlags(cmd)
	return cmd
}

// newMachine builds a VM using the machine flags, falling back to the
// configuration for flags not given.
func (a *app) newMachine(cmd *cobra.Command, program *vm.Program) (*vm.VM, error) {
	input := stringOr(cmd, "input", a.cfg.Machine.Input)
	tape := intOr(cmd, "tape", a.cfg.Machine.TapeSize)
	return vm.NewVM(program, []byte(input), tape)
}

func (a *app) execute(cmd *cobra.Command, program *vm.Program) error {
	machine, err := a.newMachine(cmd, program)
	if err != nil {
		return err
	}
	stats := GetFlag(cmd, "stats")
	if stats {
		machine.EnableStats()
	}

	maxSteps := int64(intOr(cmd, "max-steps", a.cfg.Machine.MaxSteps))
	timeout := a.cfg.Machine.Timeout.Duration
	if cmd.Flags().Changed("timeout") {
		timeout = GetDuration(cmd, "timeout")
	}

	start := time.Now()
	out, err := embed.Drive(machine,
		embed.WithMaxSteps(maxSteps),
		embed.WithTimeout(timeout),
		embed.WithContext(cmd.Context()),
	)
	writeOutput(cmd.OutOrStdout(), out)
	if stats {
		printStats(cmd.ErrOrStderr(), machine.Stats(), time.Since(start))
	}
	return err
}

func printStats(w io.Writer, s *vm.ExecutionStats, elapsed time.Duration) {
	fmt.Fprintf(w, "steps:   %d\n", s.StepsExecuted)
	fmt.Fprintf(w, "input:   %d byte(s)\n", s.InputBytes)
	fmt.Fprintf(w, "output:  %d byte(s)\n", s.OutputBytes)
	fmt.Fprintf(w, "elapsed: %v\n", elapsed)

	ops := make([]string, 0, len(s.OpCounts))
	for op := range s.OpCounts {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	for _, op := range ops {
		fmt.Fprintf(w, "  %-10s %d\n", op, s.OpCounts[op])
	}
}
