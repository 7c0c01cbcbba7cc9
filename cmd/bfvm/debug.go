package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDebugCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug [flags] file.bf",
		Short: "Step through a program, dumping the machine after every step.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := loadProgram(args[0])
			if err != nil {
				return err
			}
			machine, err := a.newMachine(cmd, program)
			if err != nil {
				return err
			}

			var (
				out   = cmd.OutOrStdout()
				cells = GetInt(cmd, "cells")
				quiet = GetFlag(cmd, "quiet")
				limit = int64(intOr(cmd, "max-steps", a.cfg.Machine.MaxSteps))
			)
			for machine.CanContinue() {
				if limit > 0 && machine.Steps() >= limit {
					fmt.Fprintf(out, "stopped after %d step(s)\n", limit)
					break
				}
				b, ok, err := machine.Step()
				if !quiet {
					machine.DumpStep(out)
					machine.DumpInstructions(out)
					machine.DumpData(out, cells-1)
				}
				if ok {
					fmt.Fprintf(out, "OUT: %02X %q\n", b, rune(b))
				}
				if err != nil {
					machine.DumpSummary(out)
					return err
				}
			}
			machine.DumpSummary(out)
			return nil
		},
	}
	cmd.Flags().StringP("input", "i", "", "input text, consumed as UTF-8 bytes")
	cmd.Flags().Int("tape", 0, "number of tape cells (default from configuration)")
	cmd.Flags().Int("cells", 16, "number of tape cells to dump")
	cmd.Flags().Int("max-steps", 0, "stop after this many steps (0: unlimited)")
	cmd.Flags().BoolP("quiet", "q", false, "only print output bytes and the summary")
	return cmd
}
