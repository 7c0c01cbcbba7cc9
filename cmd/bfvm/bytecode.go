package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/akhildatla/bfvm/pkg/compiler"
	"github.com/akhildatla/bfvm/pkg/vm"
)

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func newCompileCmd(_ *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [flags] file.bf",
		Short: "Compile a program to bytecode (.bfbc).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			outputPath := GetString(cmd, "output")
			if outputPath == "" {
				outputPath = replaceExt(inputPath, ".bfbc")
			}
			log.Debugf("compiling %s -> %s", inputPath, outputPath)

			source, err := readFile(inputPath)
			if err != nil {
				return err
			}
			program, err := compiler.Compile(string(source))
			if err != nil {
				return fmt.Errorf("compiling: %w", err)
			}
			bytecode, err := vm.SerializeProgram(program)
			if err != nil {
				return fmt.Errorf("serializing: %w", err)
			}
			if err := os.WriteFile(outputPath, bytecode, 0644); err != nil {
				return fmt.Errorf("writing bytecode: %w", err)
			}

			log.Debugf("compiled %d instructions, %d bytes", program.Len(), len(bytecode))
			fmt.Fprintf(cmd.OutOrStdout(), "Compiled: %s\n", outputPath)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "output file (default: input with .bfbc extension)")
	return cmd
}

func newDisasmCmd(_ *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disasm [flags] file.bfbc",
		Short: "Disassemble bytecode.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bytecode, err := readFile(args[0])
			if err != nil {
				return err
			}
			program, err := vm.DeserializeProgram(bytecode)
			if err != nil {
				return fmt.Errorf("deserializing: %w", err)
			}

			asm := vm.Disassemble(program)
			if output := GetString(cmd, "output"); output != "" {
				if err := os.WriteFile(output, []byte(asm), 0644); err != nil {
					return fmt.Errorf("writing output: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Disassembled to: %s\n", output)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), asm)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	return cmd
}
