package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/akhildatla/bfvm/pkg/repl"
)

func newReplCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.paletteFlag(cmd)
			if err != nil {
				return err
			}
			r := repl.New()
			r.SetInput(stringOr(cmd, "input", a.cfg.Machine.Input))
			r.SetTapeSize(intOr(cmd, "tape", a.cfg.Machine.TapeSize))
			r.SetMaxSteps(int64(intOr(cmd, "max-steps", a.cfg.Machine.MaxSteps)))
			r.SetPalette(p)
			// No banner when input is piped in.
			r.SetQuiet(!isTerminal(os.Stdin))
			r.Start(cmd.InOrStdin(), cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().StringP("input", "i", "", "input given to every line")
	cmd.Flags().Int("tape", 0, "number of tape cells (default from configuration)")
	cmd.Flags().Int("max-steps", 0, "stop each line after this many steps (0: unlimited)")
	addPaletteFlag(cmd)
	return cmd
}
