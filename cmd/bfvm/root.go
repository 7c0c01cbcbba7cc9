package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/akhildatla/bfvm/pkg/config"
)

// app carries state shared by every command of one invocation.
type app struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default()}

	root := &cobra.Command{
		Use:           "bfvm",
		Short:         "A tape machine for eight-instruction programs.",
		Long:          "Run, debug and compile eight-instruction tape programs, and read or draw them as images.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if GetFlag(cmd, "verbose") {
				log.SetLevel(log.DebugLevel)
			}
			return a.loadConfig(GetString(cmd, "config"))
		},
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	root.PersistentFlags().String("config", "", "configuration file (default: nearest "+config.FileName+")")

	root.AddCommand(
		newRunCmd(a),
		newExecCmd(a),
		newDebugCmd(a),
		newCompileCmd(a),
		newDisasmCmd(a),
		newEncodeCmd(a),
		newDecodeCmd(a),
		newTraceCmd(a),
		newReplCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) loadConfig(path string) error {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.FindAndLoad(".")
	}
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		log.Debugf("using configuration %s", cfg.Path)
	}
	a.cfg = cfg
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "bfvm version %s\n", version)
			if commit != "none" {
				fmt.Fprintf(out, "  commit: %s\n", commit)
			}
			if date != "unknown" {
				fmt.Fprintf(out, "  built:  %s\n", date)
			}
		},
	}
}
